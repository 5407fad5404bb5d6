// Package capture models capture requests and builds the ffmpeg argument
// lists for the capture and transcode phases. It knows each platform's
// screen grab API but never executes anything, which keeps it testable
// without a live encoder.
package capture
