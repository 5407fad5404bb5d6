//go:build windows

package ffmpeg

import "os"

// terminate stops the process. Windows has no SIGTERM equivalent that
// console subprocesses reliably honor, so this kills outright; the temp file
// cleanup path tolerates a truncated container.
func terminate(proc *os.Process) error {
	if proc == nil {
		return nil
	}
	return proc.Kill()
}
