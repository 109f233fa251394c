package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/studio-bookings/internal/domain"
)

// Authenticate exchanges email and password for an operator session.
// An unknown email and a wrong password both return ErrUnauthorized after a
// bcrypt comparison of the same cost.
func (s *Service) Authenticate(ctx context.Context, input LoginInput) (*domain.OperatorSession, error) {
	input.Email = normalizeEmail(input.Email)

	if err := input.Validate(); err != nil {
		return nil, err
	}

	admin, err := s.admins.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.hasher.Compare("", input.Password)
			return nil, domain.ErrUnauthorized
		}
		return nil, fmt.Errorf("session.Authenticate get admin: %w", err)
	}

	if !s.hasher.Compare(admin.PasswordHash, input.Password) {
		return nil, domain.ErrUnauthorized
	}

	now := domain.Timestamp(s.now())
	sess := &domain.Session{
		ID:        uuid.New(),
		AdminID:   admin.ID,
		CreatedAt: now,
		ExpiresAt: s.tokens.ExpiresAt(now),
	}

	token, err := s.tokens.GenerateAccessToken(admin.ID, sess.ID, now)
	if err != nil {
		return nil, fmt.Errorf("session.Authenticate issue token: %w", err)
	}

	if err := s.sessions.Create(ctx, sess); err != nil {
		return nil, fmt.Errorf("session.Authenticate store session: %w", err)
	}

	s.log.InfoContext(ctx, "operator logged in",
		slog.String("admin_id", admin.ID.String()),
		slog.String("session_id", sess.ID.String()))

	return &domain.OperatorSession{
		Token:     token,
		Admin:     *publicAdmin(admin),
		ExpiresAt: sess.ExpiresAt,
	}, nil
}
