package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/studio-bookings/internal/domain"
)

const (
	sessionInsert = `INSERT INTO admin_sessions (id, admin_id, created_at, expires_at) VALUES (?, ?, ?, ?)`
	sessionByID   = `SELECT id, admin_id, created_at, expires_at, revoked_at FROM admin_sessions WHERE id = ?`
	sessionRevoke = `UPDATE admin_sessions SET revoked_at = COALESCE(revoked_at, ?) WHERE id = ?`
)

// SessionRepo stores operator sessions on SQLite.
type SessionRepo struct {
	d *DB
}

// NewSessionRepo creates a session repository on d.
func NewSessionRepo(d *DB) *SessionRepo {
	return &SessionRepo{d: d}
}

func (r *SessionRepo) Create(ctx context.Context, s *domain.Session) error {
	_, err := r.d.db.ExecContext(ctx, sessionInsert,
		s.ID.String(), s.AdminID.String(), toMicros(s.CreatedAt), nullMicros(s.ExpiresAt),
	)
	return mapError(err, "session", s.ID)
}

func (r *SessionRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Session, error) {
	var (
		sid, adminID       string
		createdAt          int64
		expires, revokedAt sql.NullInt64
	)
	err := r.d.db.QueryRowContext(ctx, sessionByID, id.String()).
		Scan(&sid, &adminID, &createdAt, &expires, &revokedAt)
	if err != nil {
		return nil, mapError(err, "session", id)
	}

	parsedAdmin, err := uuid.Parse(adminID)
	if err != nil {
		return nil, fmt.Errorf("session %s: parse admin id: %w", id, err)
	}

	return &domain.Session{
		ID:        id,
		AdminID:   parsedAdmin,
		CreatedAt: fromMicros(createdAt),
		ExpiresAt: timePtr(expires),
		RevokedAt: timePtr(revokedAt),
	}, nil
}

// Revoke marks the session as logged out. The first revocation time wins.
func (r *SessionRepo) Revoke(ctx context.Context, id uuid.UUID, at time.Time) error {
	res, err := r.d.db.ExecContext(ctx, sessionRevoke, toMicros(at), id.String())
	if err != nil {
		return mapError(err, "session", id)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return mapError(err, "session", id)
	}
	if n == 0 {
		return fmt.Errorf("session %s: %w", id, domain.ErrNotFound)
	}
	return nil
}
