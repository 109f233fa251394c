// Package admin implements operator account persistence on PostgreSQL.
package admin

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	postgres "github.com/heartmarshall/studio-bookings/internal/adapter/postgres"
	"github.com/heartmarshall/studio-bookings/internal/domain"
)

// Repo provides admin persistence backed by PostgreSQL.
type Repo struct {
	db postgres.DB
}

// New creates a new admin repository.
func New(db postgres.DB) *Repo {
	return &Repo{db: db}
}

const adminColumns = `id, email, name, password_hash, created_at`

const createSQL = `
INSERT INTO admins (id, email, name, password_hash, created_at)
VALUES ($1, $2, $3, $4, $5)
RETURNING ` + adminColumns

const getByIDSQL = `
SELECT ` + adminColumns + `
FROM admins
WHERE id = $1`

const getByEmailSQL = `
SELECT ` + adminColumns + `
FROM admins
WHERE lower(email) = lower($1)`

// GetByID returns an admin by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Admin, error) {
	row := postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, getByIDSQL, id)

	a, err := scanAdmin(row)
	if err != nil {
		return nil, postgres.MapError(err, "admin", id)
	}
	return a, nil
}

// GetByEmail returns an admin by email, case-insensitively.
func (r *Repo) GetByEmail(ctx context.Context, email string) (*domain.Admin, error) {
	row := postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, getByEmailSQL, email)

	a, err := scanAdmin(row)
	if err != nil {
		return nil, postgres.MapError(err, "admin", email)
	}
	return a, nil
}

// Create inserts a new admin. A duplicate email yields domain.ErrAlreadyExists.
func (r *Repo) Create(ctx context.Context, a *domain.Admin) (*domain.Admin, error) {
	row := postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, createSQL,
		a.ID, a.Email, a.Name, a.PasswordHash, a.CreatedAt.UTC().Truncate(time.Microsecond),
	)

	created, err := scanAdmin(row)
	if err != nil {
		return nil, postgres.MapError(err, "admin", a.ID)
	}
	return created, nil
}

func scanAdmin(row pgx.Row) (*domain.Admin, error) {
	var a domain.Admin
	if err := row.Scan(&a.ID, &a.Email, &a.Name, &a.PasswordHash, &a.CreatedAt); err != nil {
		return nil, err
	}
	a.CreatedAt = a.CreatedAt.UTC()
	return &a, nil
}
