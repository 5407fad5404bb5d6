// Package ffmpeg supervises external encoder subprocesses. It owns process
// spawning and cooperative cancellation, defensive decoding of the
// locale-dependent diagnostic stream, and the rolling-buffer progress parser
// that turns ffmpeg's time markers into a position ratio.
package ffmpeg
