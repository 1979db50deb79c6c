package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

// NewEnrollCommand creates the enroll command.
func NewEnrollCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "enroll <event> <student-id>",
		Short: "Enroll a student in an event",
		Long: `Enroll a student in an event. Fails when the event is full or the
student is already enrolled. The roster record id is 1-based and
contiguous.

Example:
  inscrito enroll "Go Workshop" 3`,
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

			record, err := e.Enroll(cmd.Context(), args[0], args[1])
			if err != nil {
				return reportEngineError(f, err)
			}
			if rootOpts.Format == "json" {
				return f.Success(record)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Enrolled %s (record #%d).\n", record.Name, record.ID)
			return nil
		},
	}
}

// NewUnenrollCommand creates the unenroll command.
func NewUnenrollCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "unenroll <event> <student-id>",
		Short:         "Remove a student's enrollment",
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

			if err := e.Unenroll(cmd.Context(), args[0], args[1]); err != nil {
				return reportEngineError(f, err)
			}
			if rootOpts.Format == "json" {
				return f.Success(map[string]string{"event": args[0], "student": args[1]})
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Enrollment removed.")
			return nil
		},
	}
}

// NewRemoveCommand creates the remove command, the coordinator-side removal
// of a roster record by its 1-based id.
func NewRemoveCommand(rootOpts *RootOptions) *cobra.Command {
	var pick int

	cmd := &cobra.Command{
		Use:   "remove <term> <record-id>",
		Short: "Remove a roster record by id",
		Long: `Remove the roster record with the given 1-based id from an event found
by search term. The remaining records are renumbered so ids stay
contiguous. When the term matches several events, the candidates are
listed and --pick selects one.`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			recordID, err := strconv.Atoi(args[1])
			if err != nil {
				return WrapExitError(ExitCommandError, "invalid record id", err)
			}

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
			removed, err := e.RemoveEnrollment(cmd.Context(), target.Name, recordID)
			if err != nil {
				return reportEngineError(f, err)
			}
			if rootOpts.Format == "json" {
				return f.Success(removed)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s from the roster.\n", removed.Name)
			return nil
		},
	}

	addPickFlag(cmd, &pick)
	return cmd
}
