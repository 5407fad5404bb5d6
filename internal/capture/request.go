package capture

import (
	"fmt"
	"strings"

	"gifcast/internal/display"
)

// Format identifies the user-requested output container.
type Format string

const (
	FormatGIF  Format = "gif"
	FormatMP4  Format = "mp4"
	FormatWebM Format = "webm"
)

// NativeContainerExt is the extension of the container the capture phase
// records into before any transcoding.
const NativeContainerExt = "mp4"

// ParseFormat normalizes a format string.
func ParseFormat(value string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(value))) {
	case FormatGIF:
		return FormatGIF, nil
	case FormatMP4:
		return FormatMP4, nil
	case FormatWebM:
		return FormatWebM, nil
	default:
		return "", fmt.Errorf("unsupported format %q (want gif, mp4, or webm)", value)
	}
}

// Native reports whether the format matches the capture container, meaning
// finalization is a rename rather than a transcode.
func (f Format) Native() bool { return f == FormatMP4 }

// Ext returns the output file extension for the format.
func (f Format) Ext() string { return string(f) }

// Request describes one capture job. Immutable once accepted by the
// pipeline.
type Request struct {
	DurationSeconds int
	FrameRate       int
	OutputWidth     int
	Format          Format
	// Region, when non-nil, limits capture to a physical-pixel subrectangle
	// of the display. Nil captures the full screen.
	Region *display.PhysicalRegion
}

// Validate checks the request against encoder constraints.
func (r Request) Validate() error {
	if r.DurationSeconds <= 0 {
		return fmt.Errorf("duration must be positive (got %d)", r.DurationSeconds)
	}
	if r.FrameRate < 10 || r.FrameRate > 60 {
		return fmt.Errorf("frame rate must be between 10 and 60 (got %d)", r.FrameRate)
	}
	if r.OutputWidth < 320 || r.OutputWidth > 1920 {
		return fmt.Errorf("output width must be between 320 and 1920 (got %d)", r.OutputWidth)
	}
	if _, err := ParseFormat(string(r.Format)); err != nil {
		return err
	}
	if r.Region != nil {
		if r.Region.Width <= 0 || r.Region.Height <= 0 {
			return fmt.Errorf("region must have positive dimensions (got %dx%d)", r.Region.Width, r.Region.Height)
		}
		if r.Region.Width%2 != 0 || r.Region.Height%2 != 0 {
			return fmt.Errorf("region dimensions must be even (got %dx%d)", r.Region.Width, r.Region.Height)
		}
	}
	return nil
}
