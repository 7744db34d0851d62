package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/artpar/pmctl/internal/history"
	"github.com/artpar/pmctl/internal/render"
)

// NewHistoryCommand creates the history command group.
func NewHistoryCommand(settings *Settings) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect recent pmctl invocations",
	}

	cmd.AddCommand(newHistoryListCommand(settings))
	cmd.AddCommand(newHistoryClearCommand(settings))

	return cmd
}

// historyListOptions holds options for the history list command.
type historyListOptions struct {
	Limit int
}

func newHistoryListCommand(settings *Settings) *cobra.Command {
	opts := &historyListOptions{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent invocations, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistoryList(cmd, settings, opts, jsonMode(cmd))
		},
	}

	cmd.Flags().IntVarP(&opts.Limit, "limit", "n", 20, "Maximum entries to show (0 for all)")

	return cmd
}

func runHistoryList(cmd *cobra.Command, settings *Settings, opts *historyListOptions, jsonOut bool) error {
	store, err := settings.historyStore()
	if err != nil {
		return fmt.Errorf("failed to open history: %w", err)
	}
	defer store.Close()

	entries, err := store.List(cmd.Context(), opts.Limit)
	if err != nil {
		return err
	}

	if jsonOut {
		if entries == nil {
			entries = []history.Entry{}
		}
		return printJSON(cmd, entries)
	}

	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		status := "ok"
		if e.Error != "" {
			status = truncate(e.Error, 40)
		}
		rows = append(rows, []string{
			e.Timestamp.Local().Format(time.DateTime),
			e.Profile,
			e.Command,
			truncate(e.Resource, 24),
			fmt.Sprintf("%dms", e.DurationMS),
			status,
		})
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, render.Table("History", []string{"TIME", "PROFILE", "COMMAND", "RESOURCE", "DURATION", "RESULT"}, rows))
	fmt.Fprintf(out, "\nTotal shown: %d\n", len(entries))
	return nil
}

func newHistoryClearCommand(settings *Settings) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete all recorded invocations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := settings.historyStore()
			if err != nil {
				return fmt.Errorf("failed to open history: %w", err)
			}
			defer store.Close()

			if err := store.Clear(cmd.Context()); err != nil {
				return err
			}
			checkf(cmd, "History cleared.")
			return nil
		},
	}
}
