package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/dmoraes/inscrito/internal/config"
	"github.com/dmoraes/inscrito/internal/engine"
	"github.com/dmoraes/inscrito/internal/journal"
	"github.com/dmoraes/inscrito/internal/store"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose    bool
	Format     string // "json" | "text"
	ConfigFile string
	DataDir    string
	Journal    string
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the inscrito CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "inscrito",
		Short: "Event enrollment manager",
		Long: `Manage an event catalog, student and coordinator profiles, and
capacity-limited enrollments backed by plain JSON documents.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			logLevel := slog.LevelWarn
			if opts.Verbose {
				logLevel = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
				Level: logLevel,
			})))
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.ConfigFile, "config", "inscrito.yaml", "path to config file")
	cmd.PersistentFlags().StringVar(&opts.DataDir, "data-dir", "", "override the data directory")
	cmd.PersistentFlags().StringVar(&opts.Journal, "journal", "", "override the journal path")

	cmd.AddCommand(NewCreateCommand(opts))
	cmd.AddCommand(NewListCommand(opts))
	cmd.AddCommand(NewSearchCommand(opts))
	cmd.AddCommand(NewRenameCommand(opts))
	cmd.AddCommand(NewUpdateCommand(opts))
	cmd.AddCommand(NewDeleteCommand(opts))
	cmd.AddCommand(NewRosterCommand(opts))
	cmd.AddCommand(NewEnrollCommand(opts))
	cmd.AddCommand(NewUnenrollCommand(opts))
	cmd.AddCommand(NewRemoveCommand(opts))
	cmd.AddCommand(NewRegisterCommand(opts))
	cmd.AddCommand(NewProfilesCommand(opts))
	cmd.AddCommand(NewStudentCommand(opts))
	cmd.AddCommand(NewHistoryCommand(opts))

	return cmd
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}

// resolveConfig loads the config file and applies flag overrides.
func (o *RootOptions) resolveConfig() (config.Config, error) {
	cfg, err := config.Load(o.ConfigFile)
	if err != nil {
		return config.Config{}, err
	}
	if o.DataDir != "" {
		cfg.DataDir = o.DataDir
	}
	if o.Journal != "" {
		cfg.JournalFile = o.Journal
	}
	return cfg, nil
}

// buildEngine opens the store and journal per the resolved configuration.
// A journal that fails to open is logged and skipped; auditing is
// best-effort and never blocks the documents.
func (o *RootOptions) buildEngine() (*engine.Engine, func(), error) {
	cfg, err := o.resolveConfig()
	if err != nil {
		return nil, nil, WrapExitError(ExitCommandError, "failed to load configuration", err)
	}

	st, err := store.Open(cfg.DataDir)
	if err != nil {
		return nil, nil, WrapExitError(ExitCommandError, "failed to open data directory", err)
	}
	slog.Debug("documents ready", "dir", st.Dir())

	engineOpts := []engine.Option{}
	cleanup := func() {}
	if cfg.JournalFile != "" {
		j, err := journal.Open(cfg.JournalFile)
		if err != nil {
			slog.Warn("journal unavailable, continuing without audit trail", "path", cfg.JournalFile, "error", err)
		} else {
			engineOpts = append(engineOpts, engine.WithJournal(j))
			cleanup = func() {
				if err := j.Close(); err != nil {
					slog.Error("error closing journal", "error", err)
				}
			}
		}
	}

	return engine.New(st, engineOpts...), cleanup, nil
}
