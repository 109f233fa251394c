package sqlite

import (
	"context"

	"github.com/google/uuid"

	"github.com/heartmarshall/studio-bookings/internal/domain"
)

const (
	adminColumns = `id, email, name, password_hash, created_at`
	adminByID    = `SELECT ` + adminColumns + ` FROM admins WHERE id = ?`
	adminByEmail = `SELECT ` + adminColumns + ` FROM admins WHERE email = ?`
	adminInsert  = `INSERT INTO admins (id, email, name, password_hash, created_at) VALUES (?, ?, ?, ?, ?)`
)

// AdminRepo stores operator accounts on SQLite.
type AdminRepo struct {
	d *DB
}

// NewAdminRepo creates an admin repository on d.
func NewAdminRepo(d *DB) *AdminRepo {
	return &AdminRepo{d: d}
}

func (r *AdminRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Admin, error) {
	a, err := scanAdmin(r.d.db.QueryRowContext(ctx, adminByID, id.String()))
	if err != nil {
		return nil, mapError(err, "admin", id)
	}
	return a, nil
}

// GetByEmail matches case-insensitively (the column is NOCASE).
func (r *AdminRepo) GetByEmail(ctx context.Context, email string) (*domain.Admin, error) {
	a, err := scanAdmin(r.d.db.QueryRowContext(ctx, adminByEmail, email))
	if err != nil {
		return nil, mapError(err, "admin", email)
	}
	return a, nil
}

func (r *AdminRepo) Create(ctx context.Context, a *domain.Admin) (*domain.Admin, error) {
	_, err := r.d.db.ExecContext(ctx, adminInsert,
		a.ID.String(), a.Email, a.Name, a.PasswordHash, toMicros(a.CreatedAt),
	)
	if err != nil {
		return nil, mapError(err, "admin", a.Email)
	}
	return r.GetByID(ctx, a.ID)
}

func scanAdmin(row rowScanner) (*domain.Admin, error) {
	var (
		a         domain.Admin
		id        string
		createdAt int64
	)
	if err := row.Scan(&id, &a.Email, &a.Name, &a.PasswordHash, &createdAt); err != nil {
		return nil, err
	}
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}
	a.ID = parsed
	a.CreatedAt = fromMicros(createdAt)
	return &a, nil
}
