// Package cli implements bookingctl, the operator command line client.
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/studio-bookings/internal/config"
	"github.com/heartmarshall/studio-bookings/internal/domain"
	"github.com/heartmarshall/studio-bookings/internal/operator"
)

// RootOptions holds global flags for all commands. Empty flags fall back to
// the BOOKING_* environment.
type RootOptions struct {
	APIURL  string
	Token   string
	Format  string
	Timeout time.Duration
	Verbose bool

	cfg *config.ClientConfig
	log *slog.Logger
}

// NewRootCommand creates the root command for bookingctl.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "bookingctl",
		Short: "Operator console for studio bookings",
		Long: `Operator console for studio bookings.

Log in once and export the printed token for the rest of the session:
  export BOOKING_TOKEN=$(bookingctl login --email owner@studio.test --password-stdin --format json | jq -r .token)`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.resolve(cmd.ErrOrStderr())
		},
	}

	cmd.PersistentFlags().StringVar(&opts.APIURL, "api-url", "", "API base URL (env BOOKING_API_URL)")
	cmd.PersistentFlags().StringVar(&opts.Token, "token", "", "operator bearer token (env BOOKING_TOKEN)")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "", "output format: text|json|yaml (env BOOKING_FORMAT)")
	cmd.PersistentFlags().DurationVar(&opts.Timeout, "timeout", 0, "per-request timeout (env BOOKING_REQUEST_TIMEOUT)")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "log API requests to stderr")

	cmd.AddCommand(
		newLoginCommand(opts),
		newLogoutCommand(opts),
		newMeCommand(opts),
		newListCommand(opts),
		newSetStatusCommand(opts),
		newStatsCommand(opts),
		newWatchCommand(opts),
		newSubmitCommand(opts),
		newVersionCommand(),
	)

	return cmd
}

func (o *RootOptions) resolve(stderr io.Writer) error {
	cfg, err := config.LoadClient()
	if err != nil {
		return err
	}
	if o.APIURL != "" {
		cfg.APIURL = o.APIURL
	}
	if o.Token != "" {
		cfg.Token = o.Token
	}
	if o.Format != "" {
		cfg.Format = strings.ToLower(o.Format)
	}
	if o.Timeout > 0 {
		cfg.RequestTimeout = o.Timeout
	}
	if err := config.ValidateFormat(cfg.Format); err != nil {
		return err
	}
	o.cfg = cfg

	level := slog.LevelWarn
	if o.Verbose {
		level = slog.LevelDebug
	}
	o.log = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	return nil
}

func (o *RootOptions) client() *operator.Client {
	return operator.NewClient(o.cfg.APIURL, o.cfg.RequestTimeout, o.log)
}

// session wraps the configured token. The CLI never stores tokens; they
// live in the caller's environment for the shell session.
func (o *RootOptions) session() (*domain.OperatorSession, error) {
	if strings.TrimSpace(o.cfg.Token) == "" {
		return nil, fmt.Errorf("not logged in: run bookingctl login and export BOOKING_TOKEN, or pass --token")
	}
	return &domain.OperatorSession{Token: o.cfg.Token}, nil
}

func (o *RootOptions) printer(w io.Writer) *printer {
	return &printer{format: o.cfg.Format, w: w}
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the client version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), "bookingctl", Version)
			return err
		},
	}
}

// Version is set via ldflags at build time.
var Version = "dev"
