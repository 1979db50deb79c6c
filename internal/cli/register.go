package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dmoraes/inscrito/internal/engine"
	"github.com/dmoraes/inscrito/internal/model"
)

// RegisterOptions holds flags for the register command.
type RegisterOptions struct {
	*RootOptions
	Email  string
	Course string
}

// NewRegisterCommand creates the register command with its student and
// coordinator subcommands.
func NewRegisterCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register a student or coordinator profile",
	}
	cmd.AddCommand(newRegisterRoleCommand(rootOpts, model.RoleStudent))
	cmd.AddCommand(newRegisterRoleCommand(rootOpts, model.RoleCoordinator))
	return cmd
}

func newRegisterRoleCommand(rootOpts *RootOptions, role model.Role) *cobra.Command {
	opts := &RegisterOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   fmt.Sprintf("%s <name>", role),
		Short: fmt.Sprintf("Register a %s profile", role),
		Long: fmt.Sprintf(`Register a %s profile. The email must be unique across students and
coordinators, compared case-insensitively. Ids are sequential per
collection.

Example:
  inscrito register %s "Ana Lima" --email ana@example.com`, role, role),
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRegister(cmd, opts, role, args[0])
		},
	}

	cmd.Flags().StringVar(&opts.Email, "email", "", "profile email (required)")
	_ = cmd.MarkFlagRequired("email")
	if role == model.RoleStudent {
		cmd.Flags().StringVar(&opts.Course, "course", "", "student course")
	}

	return cmd
}

func runRegister(cmd *cobra.Command, opts *RegisterOptions, role model.Role, name string) error {
	e, cleanup, err := opts.buildEngine()
	if err != nil {
		return err
	}
	defer cleanup()
	f := newFormatter(cmd, opts.RootOptions)

	in := engine.RegisterProfileInput{Name: name, Email: opts.Email, Course: opts.Course}
	var profile *model.Profile
	if role == model.RoleCoordinator {
		profile, err = e.RegisterCoordinator(cmd.Context(), in)
	} else {
		profile, err = e.RegisterStudent(cmd.Context(), in)
	}
	if err != nil {
		return reportEngineError(f, err)
	}

	if opts.Format == "json" {
		return f.Success(profile)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Registered %s with id %s.\n", role, profile.ID)
	fmt.Fprint(cmd.OutOrStdout(), renderProfile(profile))
	return nil
}

// NewStudentCommand creates the student command, showing one profile with
// its subscriptions.
func NewStudentCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "student <id>",
		Short:         "Show a student profile",
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

			profile, err := e.GetStudent(cmd.Context(), args[0])
			if err != nil {
				return reportEngineError(f, err)
			}
			if rootOpts.Format == "json" {
				return f.Success(profile)
			}
			fmt.Fprint(cmd.OutOrStdout(), renderProfile(profile))
			return nil
		},
	}
}

// NewProfilesCommand creates the profiles command, listing one collection.
func NewProfilesCommand(rootOpts *RootOptions) *cobra.Command {
	var roleFlag string

	cmd := &cobra.Command{
		Use:           "profiles",
		Short:         "List student or coordinator profiles",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			role := model.Role(roleFlag)
			if role != model.RoleStudent && role != model.RoleCoordinator {
				return NewExitError(ExitCommandError,
					fmt.Sprintf("invalid --role %q: must be student or coordinator", roleFlag))
			}

			e, cleanup, err := rootOpts.buildEngine()
			if err != nil {
				return err
			}
			defer cleanup()
			f := newFormatter(cmd, rootOpts)

			profiles, err := e.ListProfiles(cmd.Context(), role)
			if err != nil {
				return reportEngineError(f, err)
			}
			if rootOpts.Format == "json" {
				return f.Success(profiles)
			}
			fmt.Fprint(cmd.OutOrStdout(), renderProfiles(role, profiles))
			return nil
		},
	}

	cmd.Flags().StringVar(&roleFlag, "role", "student", "collection to list: student|coordinator")
	return cmd
}
