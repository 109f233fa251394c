package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/studio-bookings/internal/config"
	"github.com/heartmarshall/studio-bookings/internal/domain"
)

// EnsureBootstrapAdmin creates the configured operator when no admin with
// that email exists. It returns the stored admin, or nil when bootstrap is
// disabled. An existing account is left untouched.
func (s *Service) EnsureBootstrapAdmin(ctx context.Context, cfg config.BootstrapAdmin) (*domain.Admin, error) {
	if !cfg.Enabled() {
		return nil, nil
	}
	email := normalizeEmail(cfg.Email)

	existing, err := s.admins.GetByEmail(ctx, email)
	if err == nil {
		return publicAdmin(existing), nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("session.EnsureBootstrapAdmin get admin: %w", err)
	}

	hash := strings.TrimSpace(cfg.PasswordHash)
	if hash == "" {
		hash, err = s.hasher.Hash(cfg.Password)
		if err != nil {
			return nil, fmt.Errorf("session.EnsureBootstrapAdmin: %w", err)
		}
	}

	created, err := s.admins.Create(ctx, &domain.Admin{
		ID:           uuid.New(),
		Email:        email,
		Name:         cfg.Name,
		PasswordHash: hash,
		CreatedAt:    domain.Timestamp(s.now()),
	})
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			existing, getErr := s.admins.GetByEmail(ctx, email)
			if getErr != nil {
				return nil, fmt.Errorf("session.EnsureBootstrapAdmin re-read: %w", getErr)
			}
			return publicAdmin(existing), nil
		}
		return nil, fmt.Errorf("session.EnsureBootstrapAdmin create: %w", err)
	}

	s.log.InfoContext(ctx, "bootstrap operator created",
		slog.String("admin_id", created.ID.String()),
		slog.String("email", created.Email))

	return publicAdmin(created), nil
}
