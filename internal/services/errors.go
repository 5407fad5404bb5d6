package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrAlreadyRunning is returned when a second recording is requested
	// while one is in flight.
	ErrAlreadyRunning = errors.New("recording already in progress")
	// ErrEncoderUnavailable is returned when the ffmpeg binary cannot be
	// located before a recording starts.
	ErrEncoderUnavailable = errors.New("encoder unavailable")
	// ErrSpawn marks failures where the OS refused to start a subprocess.
	ErrSpawn = errors.New("process spawn failed")
	// ErrProcess marks subprocesses that started but exited non-zero.
	ErrProcess = errors.New("process failed")
	// ErrClipboard marks the non-fatal condition where every clipboard
	// strategy failed and only the file path was copied.
	ErrClipboard = errors.New("clipboard unavailable")
	// ErrInternal is the catch-all for unexpected failures inside the
	// pipeline; it never crashes the host process.
	ErrInternal = errors.New("internal error")
)

// Wrap builds an error message that includes component context while tagging
// it with the provided marker for later classification. The marker should be
// one of the exported sentinel errors above.
func Wrap(marker error, component, operation, message string, err error) error {
	detail := buildDetail(component, operation, message)
	if marker == nil {
		marker = ErrInternal
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

func buildDetail(component, operation, message string) string {
	parts := make([]string, 0, 3)
	if component = strings.TrimSpace(component); component != "" {
		parts = append(parts, component)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
