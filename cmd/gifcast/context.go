package main

import (
	"io"
	"log/slog"
	"runtime"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"gifcast/internal/clipboard"
	"gifcast/internal/config"
	"gifcast/internal/ffmpeg"
	"gifcast/internal/history"
	"gifcast/internal/logging"
	"gifcast/internal/notify"
	"gifcast/internal/pipeline"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// buildPipeline wires the recording pipeline for a CLI run. The returned
// cleanup closes the history store and must run after the pipeline finishes.
func buildPipeline(cfg *config.Config, logger *slog.Logger, out io.Writer) (*pipeline.Pipeline, func(), error) {
	runner := ffmpeg.NewRunner(logger, ffmpeg.WithBinary(cfg.Encoder.Binary))

	opts := []pipeline.Option{
		pipeline.WithRunner(runner),
		pipeline.WithNotifier(notify.Multi(notify.Console{Out: out}, notify.NewService(cfg))),
	}

	if cfg.Clipboard.Enabled {
		backend, err := clipboard.NewCommandBackend(runtime.GOOS, cfg.Clipboard.Tool)
		if err != nil {
			logger.Warn("clipboard unavailable", logging.Error(err))
		} else {
			opts = append(opts, pipeline.WithClipboard(clipboard.NewWriter(backend, runner, logger)))
		}
	}

	cleanup := func() {}
	store, err := history.Open(cfg)
	if err != nil {
		logger.Warn("history store unavailable", logging.Error(err))
	} else {
		opts = append(opts, pipeline.WithHistory(store))
		cleanup = func() { _ = store.Close() }
	}

	p, err := pipeline.New(cfg, logger, opts...)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	return p, cleanup, nil
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
