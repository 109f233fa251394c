package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/studio-bookings/internal/domain"
)

// SeedAdmin inserts an operator account and returns it. Sessions reference
// admins by foreign key, so session tests need one first.
func SeedAdmin(t *testing.T, pool *pgxpool.Pool) domain.Admin {
	t.Helper()

	id := uuid.New()
	admin := domain.Admin{
		ID:           id,
		Email:        "operator-" + id.String()[:8] + "@studio.test",
		Name:         "Front Desk",
		PasswordHash: "$2a$04$not.a.real.hash",
		CreatedAt:    time.Now().UTC().Truncate(time.Microsecond),
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO admins (id, email, name, password_hash, created_at) VALUES ($1, $2, $3, $4, $5)`,
		admin.ID, admin.Email, admin.Name, admin.PasswordHash, admin.CreatedAt,
	)
	if err != nil {
		t.Fatalf("seed admin: %v", err)
	}
	return admin
}
