package cli

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/doeshing/trendpost/internal/app"
	"github.com/doeshing/trendpost/internal/domain"
)

const (
	msgNoHistoryRecorded = "No history recorded yet."
	msgHistoryCleared    = "History cleared."
)

func newHistoryCommand(opts *Options) *cobra.Command {
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect recorded generations",
	}

	historyCmd.AddCommand(
		newHistoryListCommand(opts),
		newHistoryPathCommand(opts),
		newHistoryClearCommand(opts),
	)
	return historyCmd
}

func newHistoryListCommand(opts *Options) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the most recent generations, oldest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			if limit < 0 {
				return fmt.Errorf("--limit must be >= 0")
			}
			return withContainer(cmd, opts, func(container *app.Container) error {
				return listHistoryEntries(cmd, container, limit)
			})
		},
	}

	cmd.Flags().IntVar(&limit, "limit", domain.DefaultHistoryLimit, "Max entries to show (0 shows all)")
	return cmd
}

func newHistoryPathCommand(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the history location",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withContainer(cmd, opts, func(container *app.Container) error {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), container.HistoryStore.Path())
				return err
			})
		},
	}
}

func newHistoryClearCommand(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete all recorded generations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withContainer(cmd, opts, func(container *app.Container) error {
				if err := container.HistoryStore.Clear(cmd.Context()); err != nil {
					return fmt.Errorf("failed to clear history: %w", err)
				}
				_, err := fmt.Fprintln(cmd.OutOrStdout(), msgHistoryCleared)
				return err
			})
		},
	}
}

func listHistoryEntries(cmd *cobra.Command, container *app.Container, limit int) error {
	records, err := container.HistoryStore.Records(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to retrieve history records: %w", err)
	}

	out := cmd.OutOrStdout()
	if len(records) == 0 {
		_, err := fmt.Fprintln(out, msgNoHistoryRecorded)
		return err
	}
	if limit > 0 && len(records) > limit {
		records = records[len(records)-limit:]
	}
	for _, rec := range records {
		writeRecord(out, rec)
	}
	return nil
}

func writeRecord(out io.Writer, rec domain.GenerationRecord) {
	when := rec.Timestamp
	if t := rec.Time(); !t.IsZero() {
		when = fmt.Sprintf("%s (%s)", rec.Timestamp, humanize.Time(t))
	}
	fmt.Fprintf(out, "[%s] %s\n", when, rec.Subject)
	if rec.ModelVersion != nil {
		fmt.Fprintf(out, "  model: %s\n", *rec.ModelVersion)
	}
	fmt.Fprintf(out, "  %s\n\n", rec.Result)
}
