package main

import (
	"fmt"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"gifcast/internal/capture"
	"gifcast/internal/display"
	"gifcast/internal/logging"
	"gifcast/internal/pipeline"
)

func newRecordCommand(ctx *commandContext) *cobra.Command {
	var (
		duration    int
		fps         int
		width       int
		format      string
		region      string
		scale       float64
		noClipboard bool
	)

	cmd := &cobra.Command{
		Use:   "record",
		Short: "Record a screen clip",
		Long: `Record the full screen or a region for a fixed duration and save it as a
GIF, MP4, or WebM clip. Interrupt with Ctrl-C to cancel; the partial
recording is discarded.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("scale") {
				cfg.Capture.DisplayScale = scale
			}
			if noClipboard {
				cfg.Clipboard.Enabled = false
			}

			logger, err := logging.NewFromConfig(cfg)
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}

			p, cleanup, err := buildPipeline(cfg, logger, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			defer cleanup()

			req := p.DefaultRequest()
			if cmd.Flags().Changed("duration") {
				req.DurationSeconds = duration
			}
			if cmd.Flags().Changed("fps") {
				req.FrameRate = fps
			}
			if cmd.Flags().Changed("width") {
				req.OutputWidth = width
			}
			if cmd.Flags().Changed("format") {
				parsed, err := capture.ParseFormat(format)
				if err != nil {
					return err
				}
				req.Format = parsed
			}

			signalCtx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			if strings.TrimSpace(region) != "" {
				rect, err := parseRegion(region)
				if err != nil {
					return err
				}
				outcome, err := p.StartRegionCapture(signalCtx, rect, req)
				return reportOutcome(cmd, outcome, err)
			}
			outcome, err := p.StartCapture(signalCtx, req)
			return reportOutcome(cmd, outcome, err)
		},
	}

	cmd.Flags().IntVarP(&duration, "duration", "d", 0, "Clip length in seconds")
	cmd.Flags().IntVar(&fps, "fps", 0, "Capture frame rate (10-60)")
	cmd.Flags().IntVarP(&width, "width", "w", 0, "Output width in pixels (320-1920)")
	cmd.Flags().StringVarP(&format, "format", "f", "", "Output format: gif, mp4, or webm")
	cmd.Flags().StringVarP(&region, "region", "r", "", "Capture region as X,Y,WxH in logical pixels")
	cmd.Flags().Float64Var(&scale, "scale", 0, "Display scale factor override")
	cmd.Flags().BoolVar(&noClipboard, "no-clipboard", false, "Skip clipboard placement")

	return cmd
}

// parseRegion reads a selection rectangle in the form "X,Y,WxH", in logical
// pixels. Scaling to physical pixels happens inside the pipeline.
func parseRegion(value string) (display.Rect, error) {
	parts := strings.Split(strings.TrimSpace(value), ",")
	if len(parts) != 3 {
		return display.Rect{}, fmt.Errorf("invalid region %q (want X,Y,WxH)", value)
	}
	x, errX := strconv.Atoi(strings.TrimSpace(parts[0]))
	y, errY := strconv.Atoi(strings.TrimSpace(parts[1]))
	if errX != nil || errY != nil {
		return display.Rect{}, fmt.Errorf("invalid region origin in %q", value)
	}

	dims := strings.Split(strings.TrimSpace(parts[2]), "x")
	if len(dims) != 2 {
		return display.Rect{}, fmt.Errorf("invalid region size in %q (want WxH)", value)
	}
	w, errW := strconv.Atoi(strings.TrimSpace(dims[0]))
	h, errH := strconv.Atoi(strings.TrimSpace(dims[1]))
	if errW != nil || errH != nil || w <= 0 || h <= 0 {
		return display.Rect{}, fmt.Errorf("invalid region size in %q", value)
	}
	return display.Rect{X: x, Y: y, Width: w, Height: h}, nil
}

func reportOutcome(cmd *cobra.Command, outcome pipeline.Outcome, err error) error {
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if outcome.Clipboard != nil {
		if outcome.Clipboard.Degraded {
			fmt.Fprintln(out, "clipboard holds the file path; paste the clip from disk")
		} else {
			fmt.Fprintf(out, "copied to clipboard (%s)\n", outcome.Clipboard.Strategy)
		}
	}
	return nil
}
