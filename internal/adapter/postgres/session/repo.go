// Package session implements operator session persistence on PostgreSQL.
package session

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	postgres "github.com/heartmarshall/studio-bookings/internal/adapter/postgres"
	"github.com/heartmarshall/studio-bookings/internal/domain"
)

// Repo provides operator session persistence backed by PostgreSQL.
type Repo struct {
	db postgres.DB
}

// New creates a new session repository.
func New(db postgres.DB) *Repo {
	return &Repo{db: db}
}

const sessionColumns = `id, admin_id, created_at, expires_at, revoked_at`

const createSQL = `
INSERT INTO admin_sessions (id, admin_id, created_at, expires_at)
VALUES ($1, $2, $3, $4)`

const getByIDSQL = `
SELECT ` + sessionColumns + `
FROM admin_sessions
WHERE id = $1`

// Revoking an already revoked session keeps the first revocation time.
const revokeSQL = `
UPDATE admin_sessions
SET revoked_at = COALESCE(revoked_at, $2)
WHERE id = $1`

// Create inserts a new session.
func (r *Repo) Create(ctx context.Context, s *domain.Session) error {
	_, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, createSQL,
		s.ID, s.AdminID, s.CreatedAt.UTC(), s.ExpiresAt,
	)
	if err != nil {
		return postgres.MapError(err, "session", s.ID)
	}
	return nil
}

// GetByID returns a session by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Session, error) {
	row := postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, getByIDSQL, id)

	s, err := scanSession(row)
	if err != nil {
		return nil, postgres.MapError(err, "session", id)
	}
	return s, nil
}

// Revoke marks the session as logged out at the given time.
// Returns domain.ErrNotFound if the session does not exist.
func (r *Repo) Revoke(ctx context.Context, id uuid.UUID, at time.Time) error {
	ct, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, revokeSQL, id, at.UTC())
	if err != nil {
		return postgres.MapError(err, "session", id)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("session %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

func scanSession(row pgx.Row) (*domain.Session, error) {
	var s domain.Session
	if err := row.Scan(&s.ID, &s.AdminID, &s.CreatedAt, &s.ExpiresAt, &s.RevokedAt); err != nil {
		return nil, err
	}
	s.CreatedAt = s.CreatedAt.UTC()
	return &s, nil
}
