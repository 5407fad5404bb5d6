package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateCapture(); err != nil {
		return err
	}
	if err := c.validateEncoder(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateCapture() error {
	if c.Capture.DurationSeconds <= 0 {
		return errors.New("capture.duration_seconds must be positive")
	}
	if c.Capture.FrameRate < minFrameRate || c.Capture.FrameRate > maxFrameRate {
		return fmt.Errorf("capture.frame_rate must be between %d and %d", minFrameRate, maxFrameRate)
	}
	if c.Capture.OutputWidth < minOutputWidth || c.Capture.OutputWidth > maxOutputWidth {
		return fmt.Errorf("capture.output_width must be between %d and %d", minOutputWidth, maxOutputWidth)
	}
	switch c.Capture.Format {
	case "gif", "mp4", "webm":
	default:
		return fmt.Errorf("capture.format must be gif, mp4, or webm (got %q)", c.Capture.Format)
	}
	if c.Capture.DisplayScale < 1 {
		return errors.New("capture.display_scale must be >= 1")
	}
	return nil
}

func (c *Config) validateEncoder() error {
	if c.Encoder.Binary == "" {
		return errors.New("encoder.binary must be set")
	}
	return nil
}
