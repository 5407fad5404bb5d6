package ffmpeg

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"strings"
	"time"

	"gifcast/internal/logging"
	"gifcast/internal/services"
)

var commandContext = exec.CommandContext

// ExitError reports an encoder process that started but exited non-zero.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit code %d", e.Code)
}

// Runner supervises a single ffmpeg invocation: it spawns the process,
// streams decoded diagnostic output incrementally, and resolves to the
// process exit status. Cancellation is cooperative; cancelling the context
// sends a graceful termination signal and Run still waits for exit.
type Runner struct {
	binary string
	logger *slog.Logger
}

// Option configures the runner.
type Option func(*Runner)

// WithBinary overrides the default binary name.
func WithBinary(binary string) Option {
	return func(r *Runner) {
		if strings.TrimSpace(binary) != "" {
			r.binary = binary
		}
	}
}

// NewRunner constructs a runner using defaults.
func NewRunner(logger *slog.Logger, opts ...Option) *Runner {
	runner := &Runner{
		binary: "ffmpeg",
		logger: logging.NewComponentLogger(logger, "ffmpeg"),
	}
	for _, opt := range opts {
		opt(runner)
	}
	return runner
}

// Binary returns the configured executable name or path.
func (r *Runner) Binary() string { return r.binary }

// Run executes the binary with args. Diagnostic output (ffmpeg writes its
// progress to stderr) is decoded and delivered to onOutput chunk by chunk
// while the process is still running. A non-zero exit is surfaced as
// services.ErrProcess wrapping an *ExitError; an OS-level start failure as
// services.ErrSpawn.
func (r *Runner) Run(ctx context.Context, args []string, onOutput func(string)) error {
	cmd := commandContext(ctx, r.binary, args...) //nolint:gosec
	cmd.Stdout = io.Discard
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return services.Wrap(services.ErrSpawn, "ffmpeg", "stderr pipe", "", err)
	}
	cmd.Cancel = func() error {
		return terminate(cmd.Process)
	}
	cmd.WaitDelay = 5 * time.Second

	if err := cmd.Start(); err != nil {
		return services.Wrap(services.ErrSpawn, "ffmpeg", "start", r.binary, err)
	}
	r.logger.Debug("process started", logging.String("binary", r.binary), logging.Int("args", len(args)))

	buf := make([]byte, 4096)
	for {
		n, readErr := stderr.Read(buf)
		if n > 0 && onOutput != nil {
			onOutput(DecodeText(buf[:n]))
		}
		if readErr != nil {
			if !errors.Is(readErr, io.EOF) && !errors.Is(readErr, io.ErrClosedPipe) {
				r.logger.Debug("diagnostic stream closed", logging.Error(readErr))
			}
			break
		}
	}

	if err := cmd.Wait(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			code := exitErr.ExitCode()
			return services.Wrap(services.ErrProcess, "ffmpeg", "run", "", &ExitError{Code: code})
		}
		return services.Wrap(services.ErrSpawn, "ffmpeg", "wait", "", err)
	}
	return nil
}
