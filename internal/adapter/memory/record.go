// Package memory implements the stores in process memory. Data does not
// survive a restart; it backs tests and single-node demos.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/heartmarshall/studio-bookings/internal/domain"
)

// RecordStore is a thread-safe Record Store. A single lock covers every
// record, so set_status calls on one id are serialized.
type RecordStore struct {
	mu      sync.RWMutex
	records map[uuid.UUID]*domain.Record
}

// NewRecordStore returns an empty store.
func NewRecordStore() *RecordStore {
	return &RecordStore{records: make(map[uuid.UUID]*domain.Record)}
}

// Create stores a copy of rec. Ids are unique across kinds.
func (s *RecordStore) Create(ctx context.Context, rec *domain.Record) (*domain.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	stored := rec.Clone()

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.records[stored.ID]; ok {
		return nil, fmt.Errorf("record %s: %w", stored.ID, domain.ErrAlreadyExists)
	}
	s.records[stored.ID] = &stored

	out := stored.Clone()
	return &out, nil
}

// List returns copies of every record matching filter, newest first.
func (s *RecordStore) List(ctx context.Context, filter domain.RecordFilter) ([]domain.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	out := make([]domain.Record, 0, len(s.records))
	for _, rec := range s.records {
		if filter.Matches(*rec) {
			out = append(out, rec.Clone())
		}
	}
	s.mu.RUnlock()

	sortNewestFirst(out)
	return out, nil
}

// SetStatus applies change under the store lock.
func (s *RecordStore) SetStatus(ctx context.Context, change domain.StatusChange) (*domain.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[change.ID]
	if !ok || rec.Kind != change.Kind {
		return nil, fmt.Errorf("record %s: %w", change.ID, domain.ErrNotFound)
	}
	if err := change.Check(rec.Status); err != nil {
		return nil, fmt.Errorf("record %s: %w", change.ID, err)
	}

	rec.Status = change.Status
	rec.UpdatedAt = rec.Touch(change.At)

	out := rec.Clone()
	return &out, nil
}

// Counts tallies every record by kind and status.
func (s *RecordStore) Counts(ctx context.Context) (domain.Stats, error) {
	var stats domain.Stats
	if err := ctx.Err(); err != nil {
		return stats, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, rec := range s.records {
		if c := stats.For(rec.Kind); c != nil {
			c.Add(rec.Status)
		}
	}
	return stats, nil
}

func sortNewestFirst(recs []domain.Record) {
	sort.Slice(recs, func(i, j int) bool {
		if !recs[i].CreatedAt.Equal(recs[j].CreatedAt) {
			return recs[i].CreatedAt.After(recs[j].CreatedAt)
		}
		return recs[i].ID.String() < recs[j].ID.String()
	})
}
