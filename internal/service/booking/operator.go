package booking

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/studio-bookings/internal/domain"
)

// ListRecords returns the records of one kind, newest first. The token is
// authorized before the store is touched.
func (s *Service) ListRecords(ctx context.Context, token string, input ListInput) ([]domain.Record, error) {
	if _, err := s.authz.Authorize(ctx, token); err != nil {
		return nil, err
	}

	if !input.Kind.IsValid() {
		return nil, domain.NewValidationError("kind", "unknown record kind")
	}

	filter := domain.RecordFilter{Kind: input.Kind}
	if raw := strings.TrimSpace(input.Status); raw != "" {
		st, err := domain.ParseStatus(raw)
		if err != nil {
			return nil, err
		}
		filter.Status = &st
	}

	records, err := s.records.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("booking.ListRecords: %w", err)
	}

	sort.SliceStable(records, func(a, b int) bool {
		return records[a].CreatedAt.After(records[b].CreatedAt)
	})
	return records, nil
}

// SetStatus moves a record to a new status on behalf of an operator.
// Every status may move to every status unless a stricter policy was
// configured. A malformed id is reported as not found.
func (s *Service) SetStatus(ctx context.Context, token string, input SetStatusInput) (*domain.Record, error) {
	admin, err := s.authz.Authorize(ctx, token)
	if err != nil {
		return nil, err
	}

	if !input.Kind.IsValid() {
		return nil, domain.NewValidationError("kind", "unknown record kind")
	}

	target, err := domain.ParseStatus(input.Status)
	if err != nil {
		return nil, err
	}

	var expected *domain.Status
	if raw := strings.TrimSpace(input.ExpectedStatus); raw != "" {
		st, err := domain.ParseStatus(raw)
		if err != nil {
			return nil, err
		}
		expected = &st
	}

	id, err := uuid.Parse(strings.TrimSpace(input.ID))
	if err != nil {
		return nil, fmt.Errorf("%s %q: %w", input.Kind, input.ID, domain.ErrNotFound)
	}

	rec, err := s.records.SetStatus(ctx, domain.StatusChange{
		Kind:   input.Kind,
		ID:     id,
		Status: target,
		At:     s.now(),
		Guard:  domain.NewStatusGuard(s.policy, target, expected),
	})
	if err != nil {
		return nil, fmt.Errorf("booking.SetStatus: %w", err)
	}

	s.log.InfoContext(ctx, "record status changed",
		slog.String("kind", input.Kind.String()),
		slog.String("record_id", id.String()),
		slog.String("status", target.String()),
		slog.String("admin_id", admin.ID.String()))

	return rec, nil
}

// Stats returns per-kind, per-status record counts for the dashboard.
func (s *Service) Stats(ctx context.Context, token string) (domain.Stats, error) {
	if _, err := s.authz.Authorize(ctx, token); err != nil {
		return domain.Stats{}, err
	}

	stats, err := s.records.Counts(ctx)
	if err != nil {
		return domain.Stats{}, fmt.Errorf("booking.Stats: %w", err)
	}
	return stats, nil
}
