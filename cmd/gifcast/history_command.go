package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"gifcast/internal/history"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent recordings",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			store, err := history.Open(cfg)
			if err != nil {
				return fmt.Errorf("open history: %w", err)
			}
			defer store.Close()

			entries, err := store.Recent(cmd.Context(), limit)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintln(out, "No recordings yet")
				return nil
			}
			fmt.Fprintln(out, renderHistoryTable(entries))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum entries to show")
	return cmd
}

func renderHistoryTable(entries []history.Entry) string {
	headers := []string{"When", "Format", "Length", "Width", "Region", "Result", "Output"}

	rows := make([][]string, 0, len(entries))
	for _, entry := range entries {
		result := entry.Phase
		detail := entry.OutputPath
		if entry.ErrorMessage != "" {
			detail = entry.ErrorMessage
		}
		rows = append(rows, []string{
			formatHistoryTime(entry.CreatedAt),
			entry.Format,
			strconv.Itoa(entry.DurationSeconds) + "s",
			strconv.Itoa(entry.OutputWidth),
			yesNo(entry.HasRegion),
			result,
			detail,
		})
	}
	return renderTable(headers, rows, 2, 3)
}

func formatHistoryTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format("2006-01-02 15:04")
}
