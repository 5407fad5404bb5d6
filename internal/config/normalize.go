package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeCapture()
	c.normalizeEncoder()
	c.normalizeClipboard()
	c.normalizeNotifications()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.OutputDir) == "" {
		c.Paths.OutputDir = defaultOutputDir
	}
	if c.Paths.OutputDir, err = expandPath(c.Paths.OutputDir); err != nil {
		return fmt.Errorf("paths.output_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeCapture() {
	if c.Capture.DurationSeconds <= 0 {
		c.Capture.DurationSeconds = defaultDurationSeconds
	}
	if c.Capture.FrameRate == 0 {
		c.Capture.FrameRate = defaultFrameRate
	}
	if c.Capture.OutputWidth == 0 {
		c.Capture.OutputWidth = defaultOutputWidth
	}
	c.Capture.Format = strings.ToLower(strings.TrimSpace(c.Capture.Format))
	if c.Capture.Format == "" {
		c.Capture.Format = defaultFormat
	}
	if c.Capture.DisplayScale == 0 {
		c.Capture.DisplayScale = defaultDisplayScale
	}
	if c.Capture.SettleDelayMS < 0 {
		c.Capture.SettleDelayMS = defaultCaptureSettleMS
	}
}

func (c *Config) normalizeEncoder() {
	c.Encoder.Binary = strings.TrimSpace(c.Encoder.Binary)
	if c.Encoder.Binary == "" {
		c.Encoder.Binary = defaultEncoderBinary
	}
}

func (c *Config) normalizeClipboard() {
	c.Clipboard.Tool = strings.TrimSpace(c.Clipboard.Tool)
	if c.Clipboard.SettleDelayMS < 0 {
		c.Clipboard.SettleDelayMS = defaultClipboardSettleMS
	}
}

func (c *Config) normalizeNotifications() {
	c.Notifications.NtfyTopic = strings.TrimSpace(c.Notifications.NtfyTopic)
	if c.Notifications.RequestTimeout <= 0 {
		c.Notifications.RequestTimeout = defaultNotifyTimeoutSecs
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
