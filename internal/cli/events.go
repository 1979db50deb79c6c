package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/dmoraes/inscrito/internal/engine"
	"github.com/dmoraes/inscrito/internal/model"
)

// CreateOptions holds flags for the create command.
type CreateOptions struct {
	*RootOptions
	Date           string
	Description    string
	Capacity       int
	AllowDuplicate bool
}

// NewCreateCommand creates the create command.
func NewCreateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CreateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create an event",
		Long: `Create an event with a date, capacity, and optional description.

An event identical to an existing one (same name, date, description, and
capacity, compared case-insensitively on the name) is reported as a
duplicate and not inserted unless --force is given.

Example:
  inscrito create "Go Workshop" --date 01/10/2026 --capacity 30
  inscrito create "Go Workshop" --date 01/10/2026 --capacity 30 --force`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCreate(cmd, opts, args[0])
		},
	}

	cmd.Flags().StringVar(&opts.Date, "date", "", "event date as DD/MM/YYYY (required)")
	cmd.Flags().StringVar(&opts.Description, "description", "", "event description")
	cmd.Flags().IntVar(&opts.Capacity, "capacity", 0, "maximum enrollment (required)")
	cmd.Flags().BoolVar(&opts.AllowDuplicate, "force", false, "insert even when an identical event exists")
	_ = cmd.MarkFlagRequired("date")
	_ = cmd.MarkFlagRequired("capacity")

	return cmd
}

func runCreate(cmd *cobra.Command, opts *CreateOptions, name string) error {
	e, cleanup, err := opts.buildEngine()
	if err != nil {
		return err
	}
	defer cleanup()
	f := newFormatter(cmd, opts.RootOptions)

	res, err := e.CreateEvent(cmd.Context(), engine.CreateEventInput{
		Name:           name,
		Date:           opts.Date,
		Description:    opts.Description,
		Capacity:       opts.Capacity,
		AllowDuplicate: opts.AllowDuplicate,
	})
	if err != nil {
		return reportEngineError(f, err)
	}

	if res.Conflict {
		if opts.Format == "json" {
			_ = f.Error("DUPLICATE_EVENT", "an identical event already exists", res.Event)
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), "An identical event already exists; rerun with --force to insert anyway.")
		}
		return NewExitError(ExitFailure, "duplicate event")
	}

	if opts.Format == "json" {
		return f.Success(res.Event)
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Event created.")
	fmt.Fprint(cmd.OutOrStdout(), renderEvent(&res.Event))
	return nil
}

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "list",
		Short:         "List all events",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, cleanup, err := rootOpts.buildEngine()
			if err != nil {
				return err
			}
			defer cleanup()
			f := newFormatter(cmd, rootOpts)

			events, err := e.ListEvents(cmd.Context())
			if err != nil {
				return reportEngineError(f, err)
			}
			if rootOpts.Format == "json" {
				return f.Success(events)
			}
			fmt.Fprint(cmd.OutOrStdout(), renderEvents(events))
			return nil
		},
	}
}

// NewSearchCommand creates the search command.
func NewSearchCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "search <term>",
		Short: "Search events by name or display position",
		Long: `Search the catalog. A numeric term selects the event at that 1-based
position in the listing; any other term matches names case-insensitively
as a substring.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, cleanup, err := rootOpts.buildEngine()
			if err != nil {
				return err
			}
			defer cleanup()
			f := newFormatter(cmd, rootOpts)

			matches, err := e.SearchEvents(cmd.Context(), args[0])
			if err != nil {
				return reportEngineError(f, err)
			}
			if rootOpts.Format == "json" {
				return f.Success(matches)
			}
			if len(matches) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no matches")
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), renderEvents(matches))
			return nil
		},
	}
}

// NewRenameCommand creates the rename command.
func NewRenameCommand(rootOpts *RootOptions) *cobra.Command {
	var pick int

	cmd := &cobra.Command{
		Use:   "rename <term> <new-name>",
		Short: "Rename an event",
		Long: `Rename an event found by search term. The roster and every enrolled
profile's subscription list follow the new name. When the term matches
several events, the candidates are listed and --pick selects one.`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, cleanup, err := rootOpts.buildEngine()
			if err != nil {
				return err
			}
			defer cleanup()
			f := newFormatter(cmd, rootOpts)

			target, err := resolveEvent(cmd, f, e, args[0], pick)
			if err != nil {
				return err
			}
			event, err := e.RenameEvent(cmd.Context(), target.Name, args[1])
			if err != nil {
				return reportEngineError(f, err)
			}
			if rootOpts.Format == "json" {
				return f.Success(event)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Event renamed to %s.\n", event.Name)
			return nil
		},
	}

	addPickFlag(cmd, &pick)
	return cmd
}

// UpdateOptions holds flags for the update command.
type UpdateOptions struct {
	*RootOptions
	Field string
	Value string
	Pick  int
}

// NewUpdateCommand creates the update command.
func NewUpdateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &UpdateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "update <term>",
		Short: "Update one field of an event",
		Long: `Update a single field of an event found by search term: name, date,
description, or capacity.

A capacity below the current enrollment is rejected. A name change behaves
exactly like rename. When the term matches several events, the candidates
are listed and --pick selects one.

Example:
  inscrito update "Go Workshop" --field date --value 15/10/2026
  inscrito update workshop --pick 2 --field capacity --value 50`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUpdate(cmd, opts, args[0])
		},
	}

	cmd.Flags().StringVar(&opts.Field, "field", "", "field to change: name|date|description|capacity (required)")
	cmd.Flags().StringVar(&opts.Value, "value", "", "new value (required)")
	addPickFlag(cmd, &opts.Pick)
	_ = cmd.MarkFlagRequired("field")
	_ = cmd.MarkFlagRequired("value")

	return cmd
}

func runUpdate(cmd *cobra.Command, opts *UpdateOptions, term string) error {
	e, cleanup, err := opts.buildEngine()
	if err != nil {
		return err
	}
	defer cleanup()
	f := newFormatter(cmd, opts.RootOptions)

	field, err := model.ParseEventField(opts.Field)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid --field", err)
	}
	value := model.FieldValue{Text: opts.Value}
	if field == model.FieldCapacity {
		capacity, err := parseIntValue(opts.Value)
		if err != nil {
			return WrapExitError(ExitCommandError, "invalid --value for capacity", err)
		}
		value = model.FieldValue{Capacity: capacity}
	}

	target, err := resolveEvent(cmd, f, e, term, opts.Pick)
	if err != nil {
		return err
	}
	event, err := e.UpdateEvent(cmd.Context(), target.Name, field, value)
	if err != nil {
		return reportEngineError(f, err)
	}
	if opts.Format == "json" {
		return f.Success(event)
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Event updated.")
	fmt.Fprint(cmd.OutOrStdout(), renderEvent(event))
	return nil
}

// NewDeleteCommand creates the delete command.
func NewDeleteCommand(rootOpts *RootOptions) *cobra.Command {
	var pick int

	cmd := &cobra.Command{
		Use:   "delete <term>",
		Short: "Delete an event",
		Long: `Delete an event found by search term. Its roster is removed and the
event disappears from every profile's subscription list. When the term
matches several events, the candidates are listed and --pick selects one.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, cleanup, err := rootOpts.buildEngine()
			if err != nil {
				return err
			}
			defer cleanup()
			f := newFormatter(cmd, rootOpts)

			target, err := resolveEvent(cmd, f, e, args[0], pick)
			if err != nil {
				return err
			}
			removed, err := e.DeleteEvent(cmd.Context(), target.Name)
			if err != nil {
				return reportEngineError(f, err)
			}
			if rootOpts.Format == "json" {
				return f.Success(removed)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Event %s deleted.\n", removed.Name)
			return nil
		},
	}

	addPickFlag(cmd, &pick)
	return cmd
}

// NewRosterCommand creates the roster command.
func NewRosterCommand(rootOpts *RootOptions) *cobra.Command {
	var pick int

	cmd := &cobra.Command{
		Use:           "roster <term>",
		Short:         "Show an event's enrollment roster",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, cleanup, err := rootOpts.buildEngine()
			if err != nil {
				return err
			}
			defer cleanup()
			f := newFormatter(cmd, rootOpts)

			target, err := resolveEvent(cmd, f, e, args[0], pick)
			if err != nil {
				return err
			}
			roster, err := e.EventRoster(cmd.Context(), target.Name)
			if err != nil {
				return reportEngineError(f, err)
			}
			if rootOpts.Format == "json" {
				return f.Success(roster)
			}
			fmt.Fprint(cmd.OutOrStdout(), renderRoster(target.Name, roster))
			return nil
		},
	}

	addPickFlag(cmd, &pick)
	return cmd
}

func parseIntValue(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%q is not an integer", s)
	}
	return n, nil
}
