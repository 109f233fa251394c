// Package session is the operator Session Manager: it exchanges credentials
// for bearer tokens and authorizes every operator call.
package session

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/studio-bookings/internal/auth"
	"github.com/heartmarshall/studio-bookings/internal/domain"
)

// adminRepo defines the admin repository interface needed by the session service.
type adminRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Admin, error)
	GetByEmail(ctx context.Context, email string) (*domain.Admin, error)
	Create(ctx context.Context, a *domain.Admin) (*domain.Admin, error)
}

// sessionRepo defines the session repository interface needed by the session service.
type sessionRepo interface {
	Create(ctx context.Context, s *domain.Session) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Session, error)
	Revoke(ctx context.Context, id uuid.UUID, at time.Time) error
}

// tokenManager defines the bearer token interface needed by the session service.
type tokenManager interface {
	GenerateAccessToken(adminID, sessionID uuid.UUID, issuedAt time.Time) (string, error)
	ValidateAccessToken(token string) (auth.Claims, error)
	ExpiresAt(issuedAt time.Time) *time.Time
}

// passwordHasher defines the password hashing interface needed by the session service.
type passwordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) bool
}

// Service implements operator authentication.
type Service struct {
	log      *slog.Logger
	admins   adminRepo
	sessions sessionRepo
	tokens   tokenManager
	hasher   passwordHasher
	now      func() time.Time
}

// NewService creates a new session service instance.
func NewService(
	logger *slog.Logger,
	admins adminRepo,
	sessions sessionRepo,
	tokens tokenManager,
	hasher passwordHasher,
) *Service {
	return &Service{
		log:      logger.With("service", "session"),
		admins:   admins,
		sessions: sessions,
		tokens:   tokens,
		hasher:   hasher,
		now:      time.Now,
	}
}

// publicAdmin strips the password hash before an admin leaves the service.
func publicAdmin(a *domain.Admin) *domain.Admin {
	out := *a
	out.PasswordHash = ""
	return &out
}
