package operator

import (
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/studio-bookings/internal/domain"
)

// View is the local copy of every record of one kind. Polls replace it
// wholesale; confirmed mutations patch single records in place.
type View struct {
	kind domain.Kind

	mu       sync.RWMutex
	records  []domain.Record
	index    map[uuid.UUID]int
	seq      uint64
	loaded   bool
	syncedAt time.Time
}

// NewView creates an empty view for kind.
func NewView(kind domain.Kind) *View {
	return &View{kind: kind, index: map[uuid.UUID]int{}}
}

// Kind returns the record kind this view holds.
func (v *View) Kind() domain.Kind { return v.kind }

// Replace swaps in the result of a poll started with sequence number seq.
// A poll that started before the one already applied is dropped and
// Replace reports false.
func (v *View) Replace(seq uint64, recs []domain.Record, at time.Time) bool {
	next := make([]domain.Record, 0, len(recs))
	for _, r := range recs {
		if r.Kind == v.kind {
			next = append(next, r)
		}
	}
	sortNewestFirst(next)

	index := make(map[uuid.UUID]int, len(next))
	for i, r := range next {
		index[r.ID] = i
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	if v.loaded && seq < v.seq {
		return false
	}
	v.records = next
	v.index = index
	v.seq = seq
	v.loaded = true
	v.syncedAt = at
	return true
}

// Patch overwrites a single record the server has confirmed. Records the
// view has not seen yet are left for the next poll.
func (v *View) Patch(rec domain.Record) bool {
	if rec.Kind != v.kind {
		return false
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	i, ok := v.index[rec.ID]
	if !ok {
		return false
	}
	v.records[i] = rec
	return true
}

// Get returns one record by id.
func (v *View) Get(id uuid.UUID) (domain.Record, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()

	i, ok := v.index[id]
	if !ok {
		return domain.Record{}, false
	}
	return v.records[i], true
}

// Snapshot returns a copy of the records, newest first.
func (v *View) Snapshot() []domain.Record {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return slices.Clone(v.records)
}

// Filter returns the records currently in status, newest first.
func (v *View) Filter(status domain.Status) []domain.Record {
	v.mu.RLock()
	defer v.mu.RUnlock()

	out := make([]domain.Record, 0)
	for _, r := range v.records {
		if r.Status == status {
			out = append(out, r)
		}
	}
	return out
}

// Counts tallies the view by status.
func (v *View) Counts() domain.StatusCounts {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return domain.CountRecords(v.records)
}

// Loaded reports whether at least one poll has been applied, and when the
// latest one landed.
func (v *View) Loaded() (bool, time.Time) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.loaded, v.syncedAt
}

// Dashboard holds the per-kind status counts rebuilt from both lists.
type Dashboard struct {
	mu       sync.RWMutex
	stats    domain.Stats
	seq      uint64
	loaded   bool
	syncedAt time.Time
}

// Replace stores stats computed by the poll started with sequence seq.
func (d *Dashboard) Replace(seq uint64, stats domain.Stats, at time.Time) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.loaded && seq < d.seq {
		return false
	}
	d.stats = stats
	d.seq = seq
	d.loaded = true
	d.syncedAt = at
	return true
}

// Stats returns the latest aggregate.
func (d *Dashboard) Stats() domain.Stats {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.stats
}

// Loaded reports whether a dashboard poll has landed yet.
func (d *Dashboard) Loaded() (bool, time.Time) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.loaded, d.syncedAt
}

func sortNewestFirst(recs []domain.Record) {
	slices.SortStableFunc(recs, func(a, b domain.Record) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
}
