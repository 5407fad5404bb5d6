package config

const (
	defaultOutputDir           = "~/Videos/gifcast"
	defaultLogDir              = "~/.local/share/gifcast/logs"
	defaultDurationSeconds     = 5
	defaultFrameRate           = 15
	defaultOutputWidth         = 640
	defaultFormat              = "gif"
	defaultDisplayScale        = 1.0
	defaultCaptureSettleMS     = 500
	defaultClipboardSettleMS   = 250
	defaultEncoderBinary       = "ffmpeg"
	defaultNotifyTimeoutSecs   = 10
	defaultLogFormat           = "console"
	defaultLogLevel            = "info"
	minFrameRate               = 10
	maxFrameRate               = 60
	minOutputWidth             = 320
	maxOutputWidth             = 1920
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			OutputDir: defaultOutputDir,
			LogDir:    defaultLogDir,
		},
		Capture: Capture{
			DurationSeconds: defaultDurationSeconds,
			FrameRate:       defaultFrameRate,
			OutputWidth:     defaultOutputWidth,
			Format:          defaultFormat,
			DisplayScale:    defaultDisplayScale,
			SettleDelayMS:   defaultCaptureSettleMS,
		},
		Encoder: Encoder{
			Binary: defaultEncoderBinary,
		},
		Clipboard: Clipboard{
			Enabled:       true,
			SettleDelayMS: defaultClipboardSettleMS,
		},
		Notifications: Notifications{
			RequestTimeout: defaultNotifyTimeoutSecs,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
