package cli

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/studio-bookings/internal/domain"
	"github.com/heartmarshall/studio-bookings/internal/transport/wire"
)

// --- login / logout / me ---

func newLoginCommand(opts *RootOptions) *cobra.Command {
	var email, password string
	var passwordStdin bool

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and print an operator token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if passwordStdin {
				line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if err != nil && line == "" {
					return fmt.Errorf("read password from stdin: %w", err)
				}
				password = strings.TrimRight(line, "\r\n")
			}
			if email == "" || password == "" {
				return errors.New("--email and a password (--password or --password-stdin) are required")
			}

			sess, err := opts.client().Login(cmd.Context(), email, password)
			if err != nil {
				return describe(err)
			}
			return opts.printer(cmd.OutOrStdout()).login(sess)
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "operator email")
	cmd.Flags().StringVar(&password, "password", "", "operator password")
	cmd.Flags().BoolVar(&passwordStdin, "password-stdin", false, "read the password from stdin")
	return cmd
}

func newLogoutCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Revoke the current operator token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sess, err := opts.session()
			if err != nil {
				return err
			}
			if err := opts.client().Logout(cmd.Context(), sess); err != nil {
				return describe(err)
			}
			return opts.printer(cmd.OutOrStdout()).message("logged out")
		},
	}
}

func newMeCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "me",
		Short: "Show the operator behind the current token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sess, err := opts.session()
			if err != nil {
				return err
			}
			admin, err := opts.client().Me(cmd.Context(), sess)
			if err != nil {
				return describe(err)
			}
			return opts.printer(cmd.OutOrStdout()).admin(*admin)
		},
	}
}

// --- list / set-status / stats ---

func newListCommand(opts *RootOptions) *cobra.Command {
	var status string

	cmd := &cobra.Command{
		Use:   "list <appointments|classes>",
		Short: "List records of one kind, newest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := domain.ParseKind(args[0])
			if err != nil {
				return describe(err)
			}
			var filter domain.Status
			if status != "" {
				if filter, err = domain.ParseStatus(status); err != nil {
					return describe(err)
				}
			}
			sess, err := opts.session()
			if err != nil {
				return err
			}

			recs, err := opts.client().List(cmd.Context(), sess, kind, filter)
			if err != nil {
				return describe(err)
			}
			return opts.printer(cmd.OutOrStdout()).records(kind, recs)
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "only show records in this status")
	return cmd
}

func newSetStatusCommand(opts *RootOptions) *cobra.Command {
	var expect string

	cmd := &cobra.Command{
		Use:   "set-status <appointments|classes> <id> <pending|confirmed|cancelled|completed>",
		Short: "Move a record to a new status",
		Example: `  bookingctl set-status appointments 5f0c... confirmed
  bookingctl set-status classes 9a1e... completed --expect confirmed`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := domain.ParseKind(args[0])
			if err != nil {
				return describe(err)
			}
			status, err := domain.ParseStatus(args[2])
			if err != nil {
				return describe(err)
			}
			var expected *domain.Status
			if expect != "" {
				s, err := domain.ParseStatus(expect)
				if err != nil {
					return describe(err)
				}
				expected = &s
			}
			sess, err := opts.session()
			if err != nil {
				return err
			}

			rec, err := opts.client().SetStatus(cmd.Context(), sess, kind, args[1], status, expected)
			if err != nil {
				return describe(err)
			}
			return opts.printer(cmd.OutOrStdout()).record(rec)
		},
	}

	cmd.Flags().StringVar(&expect, "expect", "", "fail unless the record is still in this status")
	return cmd
}

func newStatsCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show per-status counts for both kinds",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sess, err := opts.session()
			if err != nil {
				return err
			}
			stats, err := opts.client().Stats(cmd.Context(), sess)
			if err != nil {
				return describe(err)
			}
			return opts.printer(cmd.OutOrStdout()).stats(stats)
		},
	}
}

// --- submit ---

func newSubmitCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Submit a public booking form",
	}
	cmd.AddCommand(newSubmitAppointmentCommand(opts), newSubmitClassCommand(opts))
	return cmd
}

func newSubmitAppointmentCommand(opts *RootOptions) *cobra.Command {
	var req wire.AppointmentRequest

	cmd := &cobra.Command{
		Use:   "appointment",
		Short: "Book an appointment",
		Long: "Book an appointment.\n\nServices: " + strings.Join(domain.Services, ", ") +
			"\nTime slots: " + strings.Join(domain.TimeSlots, ", "),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rec, err := opts.client().SubmitAppointment(cmd.Context(), req)
			if err != nil {
				return describe(err)
			}
			return opts.printer(cmd.OutOrStdout()).record(rec)
		},
	}

	cmd.Flags().StringVar(&req.Name, "name", "", "full name")
	cmd.Flags().StringVar(&req.Email, "email", "", "email address")
	cmd.Flags().StringVar(&req.Phone, "phone", "", "phone number")
	cmd.Flags().StringVar(&req.Service, "service", "", "service")
	cmd.Flags().StringVar(&req.AppointmentDate, "date", "", "appointment date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&req.AppointmentTime, "time", "", "time slot")
	cmd.Flags().StringVar(&req.Message, "message", "", "optional message")
	return cmd
}

func newSubmitClassCommand(opts *RootOptions) *cobra.Command {
	var req wire.EnrollmentRequest

	cmd := &cobra.Command{
		Use:   "class",
		Short: "Enroll in a makeup class",
		Long: "Enroll in a makeup class.\n\nClasses: " + strings.Join(domain.ClassTypes, ", ") +
			"\nExperience: " + strings.Join(domain.ExperienceLevels, ", ") +
			"\nSchedules: " + strings.Join(domain.Schedules, ", "),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rec, err := opts.client().SubmitEnrollment(cmd.Context(), req)
			if err != nil {
				return describe(err)
			}
			return opts.printer(cmd.OutOrStdout()).record(rec)
		},
	}

	cmd.Flags().StringVar(&req.Name, "name", "", "full name")
	cmd.Flags().StringVar(&req.Email, "email", "", "email address")
	cmd.Flags().StringVar(&req.Phone, "phone", "", "phone number")
	cmd.Flags().StringVar(&req.ClassType, "class-type", "", "class type")
	cmd.Flags().StringVar(&req.ExperienceLevel, "experience", "", "experience level")
	cmd.Flags().StringVar(&req.PreferredSchedule, "schedule", "", "preferred schedule")
	cmd.Flags().StringVar(&req.Goals, "goals", "", "optional goals")
	return cmd
}

// describe turns API errors into operator-facing messages.
func describe(err error) error {
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		parts := make([]string, 0, len(ve.Errors))
		for _, f := range ve.Errors {
			parts = append(parts, f.Field+": "+f.Message)
		}
		return fmt.Errorf("invalid input: %s", strings.Join(parts, "; "))
	case errors.Is(err, domain.ErrUnauthorized):
		return fmt.Errorf("not authorized, log in again: %w", err)
	case errors.Is(err, domain.ErrNotFound):
		return fmt.Errorf("record not found: %w", err)
	case errors.Is(err, domain.ErrConflict):
		return fmt.Errorf("record changed since you last looked, refresh and retry: %w", err)
	}
	return err
}
