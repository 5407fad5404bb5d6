//go:build unix

package ffmpeg

import (
	"os"

	"golang.org/x/sys/unix"
)

// terminate asks the process to stop gracefully so ffmpeg can finalize its
// output container. The caller still waits for exit; exec.Cmd escalates to
// SIGKILL after WaitDelay.
func terminate(proc *os.Process) error {
	if proc == nil {
		return nil
	}
	return unix.Kill(proc.Pid, unix.SIGTERM)
}
