package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/heartmarshall/studio-bookings/internal/domain"
)

// Authorize resolves a bearer token to the admin it was issued for.
// Absent, malformed, expired, revoked and unknown tokens all return
// ErrUnauthorized.
func (s *Service) Authorize(ctx context.Context, token string) (*domain.Admin, error) {
	sess, err := s.resolve(ctx, token)
	if err != nil {
		return nil, err
	}

	if sess.IsRevoked() || sess.IsExpired(s.now()) {
		return nil, domain.ErrUnauthorized
	}

	admin, err := s.admins.GetByID(ctx, sess.AdminID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, fmt.Errorf("session.Authorize get admin: %w", err)
	}

	return publicAdmin(admin), nil
}

// Logout revokes the session behind token. Logging out twice is not an error.
func (s *Service) Logout(ctx context.Context, token string) error {
	sess, err := s.resolve(ctx, token)
	if err != nil {
		return err
	}

	if err := s.sessions.Revoke(ctx, sess.ID, domain.Timestamp(s.now())); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrUnauthorized
		}
		return fmt.Errorf("session.Logout: %w", err)
	}

	s.log.InfoContext(ctx, "operator logged out",
		slog.String("admin_id", sess.AdminID.String()),
		slog.String("session_id", sess.ID.String()))
	return nil
}

// resolve validates the token signature and loads the session row it names.
func (s *Service) resolve(ctx context.Context, token string) (*domain.Session, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, domain.ErrUnauthorized
	}

	claims, err := s.tokens.ValidateAccessToken(token)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}

	sess, err := s.sessions.GetByID(ctx, claims.SessionID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, fmt.Errorf("session lookup: %w", err)
	}

	if sess.AdminID != claims.AdminID {
		return nil, domain.ErrUnauthorized
	}
	return sess, nil
}
