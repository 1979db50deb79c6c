package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dmoraes/inscrito/internal/identity"
	"github.com/dmoraes/inscrito/internal/journal"
)

// HistoryOptions holds flags for the history command.
type HistoryOptions struct {
	*RootOptions
	Event string
	Limit int
}

// NewHistoryCommand creates the history command, reading the audit journal.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HistoryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show the audit journal",
		Long: `Show the mutation history recorded in the audit journal, oldest first.

Example:
  inscrito history --limit 20
  inscrito history --event "Go Workshop"`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Event, "event", "", "only entries for this event")
	cmd.Flags().IntVar(&opts.Limit, "limit", 0, "maximum entries to show (0 = all)")

	return cmd
}

func runHistory(cmd *cobra.Command, opts *HistoryOptions) error {
	cfg, err := opts.resolveConfig()
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load configuration", err)
	}
	if cfg.JournalFile == "" {
		return NewExitError(ExitCommandError, "no journal configured")
	}

	j, err := journal.Open(cfg.JournalFile)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open journal", err)
	}
	defer j.Close()

	f := newFormatter(cmd, opts.RootOptions)

	var entries []journal.Entry
	if opts.Event != "" {
		entries, err = j.ListByEntity(cmd.Context(), "event", identity.NormalizeKey(opts.Event), opts.Limit)
	} else {
		entries, err = j.List(cmd.Context(), opts.Limit)
	}
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read journal", err)
	}

	if opts.Format == "json" {
		return f.Success(entries)
	}
	fmt.Fprint(cmd.OutOrStdout(), renderHistory(entries))
	return nil
}
