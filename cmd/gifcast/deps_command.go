package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"gifcast/internal/deps"
	"gifcast/internal/services"
)

func newDepsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "deps",
		Short: "Check external tool availability",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)

			encoder := deps.ResolveEncoder(cfg.Encoder.Binary)
			clipboardTools := deps.CheckBinaries(deps.ClipboardRequirements(runtime.GOOS))

			for _, line := range renderSectionHeader("Required", colorize) {
				fmt.Fprintln(out, line)
			}
			fmt.Fprintln(out, renderDepLine(encoder, colorize))

			if len(clipboardTools) > 0 {
				fmt.Fprintln(out)
				for _, line := range renderSectionHeader("Clipboard (optional)", colorize) {
					fmt.Fprintln(out, line)
				}
				for _, status := range clipboardTools {
					fmt.Fprintln(out, renderDepLine(status, colorize))
				}
			}

			if !encoder.Available {
				return services.Wrap(services.ErrEncoderUnavailable, "deps", "check", encoder.Detail, nil)
			}
			return nil
		},
	}
}

func renderDepLine(status deps.Status, colorize bool) string {
	kind := statusOK
	message := status.Command
	if !status.Available {
		kind = statusError
		if status.Optional {
			kind = statusWarn
		}
		message = status.Detail
	}
	return renderStatusLine(status.Name, kind, message, colorize)
}
