package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/studio-bookings/internal/config"
	"github.com/heartmarshall/studio-bookings/internal/domain"
	"github.com/heartmarshall/studio-bookings/internal/operator"
)

func newWatchCommand(opts *RootOptions) *cobra.Command {
	var status string
	var interval time.Duration
	var once bool

	cmd := &cobra.Command{
		Use:   "watch [appointments|classes|dashboard]",
		Short: "Keep a live view of records, reprinting on every change",
		Long: `Keep a live view of records, reprinting on every change.

Both record lists and the dashboard are polled on their own timers. A run
of failed polls marks the view out of sync until a poll succeeds again.

While a record list is shown, status changes can be typed on stdin, one
per line:

  set <id> <status> [--expect <status>]

Without --expect the change only applies if the record is still in the
status the view last showed. The view is patched once the server
confirms the change.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target := "appointments"
			if len(args) == 1 {
				target = args[0]
			}
			var kind domain.Kind
			if target != operator.DashboardView {
				k, err := domain.ParseKind(target)
				if err != nil {
					return describe(err)
				}
				kind, target = k, k.Plural()
			}
			var filter domain.Status
			if status != "" {
				s, err := domain.ParseStatus(status)
				if err != nil {
					return describe(err)
				}
				filter = s
			}
			sess, err := opts.session()
			if err != nil {
				return err
			}
			if interval <= 0 {
				interval = opts.cfg.PollInterval
			}

			w := &watcher{
				target:  target,
				kind:    kind,
				filter:  filter,
				printer: opts.printer(cmd.OutOrStdout()),
				out:     cmd.OutOrStdout(),
				notes:   &streamNotifier{w: cmd.ErrOrStderr()},
				changes: make(chan struct{}, 1),
			}
			syncer := operator.NewSyncer(opts.client(), sess, operator.SyncOptions{
				Interval:       interval,
				Timeout:        opts.cfg.RequestTimeout,
				OutOfSyncAfter: opts.cfg.OutOfSyncAfter,
				Notifier:       w.notes,
				OnChange:       w.onChange,
			}, opts.log)
			w.syncer = syncer

			if once {
				syncer.Refresh(cmd.Context())
				return w.render()
			}
			return w.run(cmd.Context(), cmd.InOrStdin())
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "only show records in this status")
	cmd.Flags().DurationVar(&interval, "interval", 0, "poll interval (env BOOKING_POLL_INTERVAL)")
	cmd.Flags().BoolVar(&once, "once", false, "poll once, print, and exit")
	return cmd
}

type watcher struct {
	target  string
	kind    domain.Kind
	filter  domain.Status
	syncer  *operator.Syncer
	printer *printer
	out     io.Writer
	notes   *streamNotifier
	changes chan struct{}
}

func (w *watcher) onChange(view string) {
	if view != w.target {
		return
	}
	select {
	case w.changes <- struct{}{}:
	default:
	}
}

func (w *watcher) run(ctx context.Context, in io.Reader) error {
	g, ctx := errgroup.WithContext(ctx)
	lines := readLines(ctx, in)

	g.Go(func() error { return w.syncer.Run(ctx) })
	g.Go(func() error {
		for {
			select {
			case <-ctx.Done():
				return nil
			case <-w.changes:
				if err := w.render(); err != nil {
					return err
				}
			case line, ok := <-lines:
				if !ok {
					lines = nil
					continue
				}
				if err := w.exec(ctx, line); err != nil {
					return err
				}
			}
		}
	})
	return g.Wait()
}

// readLines feeds stdin to the watch loop. The reader goroutine is not
// joined: a terminal read cannot be interrupted.
func readLines(ctx context.Context, in io.Reader) <-chan string {
	lines := make(chan string)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(in)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-ctx.Done():
				return
			}
		}
	}()
	return lines
}

const setUsage = "usage: set <id> <status> [--expect <status>]"

// exec runs one stdin command. Bad input and rejected changes are reported
// on stderr and the watch goes on; only output failures stop it.
func (w *watcher) exec(ctx context.Context, line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	if fields[0] != "set" {
		w.notes.line("! unknown command %q, %s", fields[0], setUsage)
		return nil
	}
	if w.target == operator.DashboardView {
		w.notes.line("! set needs a record list, watch appointments or classes")
		return nil
	}

	id, status, expected, err := parseSet(fields[1:])
	if err != nil {
		w.notes.line("! %v", err)
		return nil
	}
	if expected == nil {
		if uid, err := uuid.Parse(id); err == nil {
			if cur, ok := w.syncer.View(w.kind).Get(uid); ok {
				expected = &cur.Status
			}
		}
	}

	// Failures reach the notifier.
	rec, err := w.syncer.SetStatus(ctx, w.kind, id, status, expected)
	if err != nil {
		return nil
	}
	return w.printer.record(rec)
}

func parseSet(args []string) (string, domain.Status, *domain.Status, error) {
	var expect string
	switch {
	case len(args) == 2:
	case len(args) == 4 && args[2] == "--expect":
		expect = args[3]
	default:
		return "", "", nil, errors.New(setUsage)
	}

	status, err := domain.ParseStatus(args[1])
	if err != nil {
		return "", "", nil, err
	}
	if expect == "" {
		return args[0], status, nil, nil
	}
	exp, err := domain.ParseStatus(expect)
	if err != nil {
		return "", "", nil, err
	}
	return args[0], status, &exp, nil
}

func (w *watcher) render() error {
	text := w.printer.format == config.FormatText
	if text && w.syncer.OutOfSync() {
		if n := w.syncer.Failures(w.target); n > 0 {
			fmt.Fprintf(w.out, "! out of sync after %d failed polls: showing the last successful poll\n", n)
		} else {
			fmt.Fprintln(w.out, "! out of sync: showing the last successful poll")
		}
	}

	if w.target == operator.DashboardView {
		dash := w.syncer.Dashboard()
		if loaded, at := dash.Loaded(); text && loaded {
			fmt.Fprintf(w.out, "== dashboard (synced %s) ==\n", formatTime(at))
		}
		return w.printer.stats(dash.Stats())
	}

	view := w.syncer.View(w.kind)
	recs := view.Snapshot()
	if w.filter != "" {
		recs = view.Filter(w.filter)
	}
	if loaded, at := view.Loaded(); text && loaded {
		c := view.Counts()
		fmt.Fprintf(w.out, "== %s (synced %s) %d total, %d pending, %d confirmed ==\n",
			w.target, formatTime(at), c.Total, c.Pending, c.Confirmed)
	}
	return w.printer.records(w.kind, recs)
}

// streamNotifier writes operator notifications as single lines.
type streamNotifier struct {
	mu sync.Mutex
	w  io.Writer
}

func (n *streamNotifier) AuthFailed(err error) {
	n.line("! session rejected, log in again: %v", err)
}

func (n *streamNotifier) MutationFailed(kind domain.Kind, id string, err error) {
	n.line("! could not update %s %s: %v", kind, id, err)
}

func (n *streamNotifier) SyncStateChanged(view string, inSync bool, err error) {
	if inSync {
		n.line("%s back in sync", view)
		return
	}
	n.line("! %s out of sync: %v", view, err)
}

func (n *streamNotifier) line(format string, args ...any) {
	n.mu.Lock()
	defer n.mu.Unlock()
	fmt.Fprintf(n.w, format+"\n", args...)
}
