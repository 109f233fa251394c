// Package booking implements the public Submission Gateway and the
// operator-facing record operations.
package booking

import (
	"context"
	"log/slog"
	"time"

	"github.com/heartmarshall/studio-bookings/internal/domain"
)

// recordRepo defines the Record Store interface needed by the booking service.
type recordRepo interface {
	Create(ctx context.Context, rec *domain.Record) (*domain.Record, error)
	List(ctx context.Context, filter domain.RecordFilter) ([]domain.Record, error)
	SetStatus(ctx context.Context, change domain.StatusChange) (*domain.Record, error)
	Counts(ctx context.Context) (domain.Stats, error)
}

// authorizer resolves an operator bearer token.
type authorizer interface {
	Authorize(ctx context.Context, token string) (*domain.Admin, error)
}

// Service implements booking operations.
type Service struct {
	log     *slog.Logger
	records recordRepo
	authz   authorizer
	policy  domain.TransitionPolicy
	now     func() time.Time
}

// NewService creates a new booking service. A nil policy allows every
// transition.
func NewService(logger *slog.Logger, records recordRepo, authz authorizer, policy domain.TransitionPolicy) *Service {
	if policy == nil {
		policy = domain.FullyConnected
	}
	return &Service{
		log:     logger.With("service", "booking"),
		records: records,
		authz:   authz,
		policy:  policy,
		now:     time.Now,
	}
}
