package notify

import (
	"context"
	"fmt"
	"io"
)

// Console renders pipeline events as plain lines, used by the CLI trigger.
type Console struct {
	Out io.Writer
}

func (c Console) Started(_ context.Context, format string) error {
	fmt.Fprintf(c.Out, "recording %s clip...\n", format)
	return nil
}

func (c Console) Progress(_ context.Context, percent int) error {
	fmt.Fprintf(c.Out, "\rprogress: %3d%%", percent)
	return nil
}

func (c Console) Completed(_ context.Context, outputPath string) error {
	fmt.Fprintf(c.Out, "\rdone: %s\n", outputPath)
	return nil
}

func (c Console) Failed(_ context.Context, err error) error {
	fmt.Fprintf(c.Out, "\rfailed: %v\n", err)
	return nil
}
