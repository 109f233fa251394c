package operator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/studio-bookings/internal/domain"
)

// DashboardView is the name the dashboard poll reports under.
const DashboardView = "dashboard"

type recordAPI interface {
	List(ctx context.Context, sess *domain.OperatorSession, kind domain.Kind, status domain.Status) ([]domain.Record, error)
	SetStatus(ctx context.Context, sess *domain.OperatorSession, kind domain.Kind, id string, status domain.Status, expected *domain.Status) (domain.Record, error)
}

// SyncOptions tunes a Syncer. Zero values fall back to defaults.
type SyncOptions struct {
	Interval       time.Duration
	Timeout        time.Duration
	OutOfSyncAfter int
	Notifier       Notifier
	// OnChange is called with the view name after a poll or patch lands.
	OnChange func(view string)
}

// Syncer keeps one View per kind plus the dashboard fresh. Each view has
// its own ticker; each tick polls in its own goroutine so a slow request
// never delays the next tick.
type Syncer struct {
	api  recordAPI
	sess *domain.OperatorSession
	opts SyncOptions
	log  *slog.Logger
	now  func() time.Time

	views map[domain.Kind]*View
	dash  *Dashboard
	seq   atomic.Uint64

	mu        sync.Mutex
	failures  map[string]int
	outOfSync map[string]bool

	polls sync.WaitGroup
}

// NewSyncer creates a Syncer for the given session.
func NewSyncer(api recordAPI, sess *domain.OperatorSession, opts SyncOptions, logger *slog.Logger) *Syncer {
	if opts.Interval <= 0 {
		opts.Interval = 2 * time.Second
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.OutOfSyncAfter < 1 {
		opts.OutOfSyncAfter = 3
	}
	log := logger.With("component", "operator.syncer")
	if opts.Notifier == nil {
		opts.Notifier = NewLogNotifier(logger)
	}

	views := make(map[domain.Kind]*View)
	for _, k := range domain.AllKinds() {
		views[k] = NewView(k)
	}

	return &Syncer{
		api:       api,
		sess:      sess,
		opts:      opts,
		log:       log,
		now:       time.Now,
		views:     views,
		dash:      &Dashboard{},
		failures:  map[string]int{},
		outOfSync: map[string]bool{},
	}
}

// View returns the local view of kind, or nil for an unknown kind.
func (s *Syncer) View(kind domain.Kind) *View { return s.views[kind] }

// Dashboard returns the dashboard aggregate.
func (s *Syncer) Dashboard() *Dashboard { return s.dash }

// OutOfSync reports whether any view has crossed the failure threshold.
func (s *Syncer) OutOfSync() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, v := range s.outOfSync {
		if v {
			return true
		}
	}
	return false
}

// Failures returns the current consecutive failure count of a view.
func (s *Syncer) Failures(view string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.failures[view]
}

// Run polls every view immediately and then on each tick until ctx is
// cancelled. It waits for in-flight polls before returning.
func (s *Syncer) Run(ctx context.Context) error {
	defer s.polls.Wait()

	g, ctx := errgroup.WithContext(ctx)
	for _, k := range domain.AllKinds() {
		g.Go(func() error {
			s.loop(ctx, func(ctx context.Context) { s.pollView(ctx, k) })
			return nil
		})
	}
	g.Go(func() error {
		s.loop(ctx, s.pollDashboard)
		return nil
	})
	return g.Wait()
}

// Refresh polls every view once and waits for the results.
func (s *Syncer) Refresh(ctx context.Context) {
	var wg sync.WaitGroup
	for _, k := range domain.AllKinds() {
		wg.Go(func() { s.pollView(ctx, k) })
	}
	wg.Go(func() { s.pollDashboard(ctx) })
	wg.Wait()
}

func (s *Syncer) loop(ctx context.Context, poll func(context.Context)) {
	s.spawn(ctx, poll)

	ticker := time.NewTicker(s.opts.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.spawn(ctx, poll)
		}
	}
}

func (s *Syncer) spawn(ctx context.Context, poll func(context.Context)) {
	s.polls.Go(func() { poll(ctx) })
}

func (s *Syncer) pollView(parent context.Context, kind domain.Kind) {
	name := kind.Plural()
	seq := s.seq.Add(1)

	ctx, cancel := context.WithTimeout(parent, s.opts.Timeout)
	defer cancel()

	recs, err := s.api.List(ctx, s.sess, kind, "")
	if err != nil {
		// Shutting down is not a sync failure.
		if parent.Err() != nil {
			return
		}
		s.pollFailed(ctx, name, err)
		return
	}

	if s.views[kind].Replace(seq, recs, s.now()) {
		s.changed(name)
	}
	s.pollSucceeded(name)
}

// pollDashboard rebuilds the per-status counts from both lists.
func (s *Syncer) pollDashboard(parent context.Context) {
	seq := s.seq.Add(1)

	ctx, cancel := context.WithTimeout(parent, s.opts.Timeout)
	defer cancel()

	kinds := domain.AllKinds()
	counts := make([]domain.StatusCounts, len(kinds))

	g, gctx := errgroup.WithContext(ctx)
	for i, k := range kinds {
		g.Go(func() error {
			recs, err := s.api.List(gctx, s.sess, k, "")
			if err != nil {
				return fmt.Errorf("%s: %w", k.Plural(), err)
			}
			counts[i] = domain.CountRecords(recs)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		if parent.Err() != nil {
			return
		}
		s.pollFailed(ctx, DashboardView, err)
		return
	}

	var stats domain.Stats
	for i, k := range kinds {
		*stats.For(k) = counts[i]
	}
	if s.dash.Replace(seq, stats, s.now()) {
		s.changed(DashboardView)
	}
	s.pollSucceeded(DashboardView)
}

// SetStatus sends a status change and patches the local view only after
// the server confirms it. On failure the view is left untouched.
func (s *Syncer) SetStatus(ctx context.Context, kind domain.Kind, id string, status domain.Status, expected *domain.Status) (domain.Record, error) {
	ctx, cancel := context.WithTimeout(ctx, s.opts.Timeout)
	defer cancel()

	rec, err := s.api.SetStatus(ctx, s.sess, kind, id, status, expected)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			s.opts.Notifier.AuthFailed(err)
		}
		s.opts.Notifier.MutationFailed(kind, id, err)
		return domain.Record{}, err
	}

	if v := s.views[kind]; v != nil && v.Patch(rec) {
		s.changed(kind.Plural())
	}
	return rec, nil
}

func (s *Syncer) pollFailed(ctx context.Context, view string, err error) {
	if errors.Is(err, domain.ErrUnauthorized) {
		s.opts.Notifier.AuthFailed(err)
	}

	s.mu.Lock()
	s.failures[view]++
	n := s.failures[view]
	flip := n >= s.opts.OutOfSyncAfter && !s.outOfSync[view]
	if flip {
		s.outOfSync[view] = true
	}
	s.mu.Unlock()

	s.log.DebugContext(ctx, "poll failed",
		slog.String("view", view),
		slog.Int("consecutive_failures", n),
		slog.String("error", err.Error()),
	)
	if flip {
		s.opts.Notifier.SyncStateChanged(view, false, err)
	}
}

func (s *Syncer) pollSucceeded(view string) {
	s.mu.Lock()
	s.failures[view] = 0
	recovered := s.outOfSync[view]
	s.outOfSync[view] = false
	s.mu.Unlock()

	if recovered {
		s.opts.Notifier.SyncStateChanged(view, true, nil)
	}
}

func (s *Syncer) changed(view string) {
	if s.opts.OnChange != nil {
		s.opts.OnChange(view)
	}
}
