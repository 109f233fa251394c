// Package testhelper gives each integration test its own PostgreSQL
// database, cloned from a migrated template inside one shared container.
package testhelper

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"fmt"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib" // database/sql driver for goose
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/heartmarshall/studio-bookings/migrations"
)

const templateDB = "bookings_template"

type cluster struct {
	base  url.URL
	admin *pgxpool.Pool
}

var (
	startOnce sync.Once
	shared    *cluster
	startErr  error

	// CREATE DATABASE ... TEMPLATE fails when two clones run at once.
	cloneMu sync.Mutex
)

// SetupTestDB returns a pool on a fresh database that already has every
// migration applied. The database is dropped when the test ends. Tests
// are skipped under -short or when Docker is unavailable.
func SetupTestDB(t *testing.T) *pgxpool.Pool {
	t.Helper()

	if testing.Short() {
		t.Skip("postgres integration test skipped in -short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	startOnce.Do(func() { shared, startErr = startCluster() })
	if startErr != nil {
		t.Skipf("postgres unavailable: %v", startErr)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	name, err := shared.clone(ctx)
	if err != nil {
		t.Fatalf("clone test database: %v", err)
	}

	pool, err := pgxpool.New(ctx, shared.dsn(name))
	if err != nil {
		t.Fatalf("connect %s: %v", name, err)
	}

	t.Cleanup(func() {
		pool.Close()
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		drop := "DROP DATABASE IF EXISTS " + pgx.Identifier{name}.Sanitize() + " WITH (FORCE)"
		if _, err := shared.admin.Exec(ctx, drop); err != nil {
			t.Logf("drop %s: %v", name, err)
		}
	})

	return pool
}

func (c *cluster) dsn(database string) string {
	u := c.base
	u.Path = "/" + database
	return u.String()
}

func (c *cluster) clone(ctx context.Context) (string, error) {
	var b [6]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "", err
	}
	name := "test_" + hex.EncodeToString(b[:])

	cloneMu.Lock()
	defer cloneMu.Unlock()

	stmt := fmt.Sprintf("CREATE DATABASE %s TEMPLATE %s",
		pgx.Identifier{name}.Sanitize(), pgx.Identifier{templateDB}.Sanitize())
	if _, err := c.admin.Exec(ctx, stmt); err != nil {
		return "", err
	}
	return name, nil
}

func startCluster() (*cluster, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "postgres:17-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "studio",
				"POSTGRES_PASSWORD": "studio",
				"POSTGRES_DB":       "postgres",
			},
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(time.Minute),
		},
		Started: true,
	})
	if err != nil {
		return nil, fmt.Errorf("start container: %w", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		return nil, fmt.Errorf("container host: %w", err)
	}
	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		return nil, fmt.Errorf("container port: %w", err)
	}

	c := &cluster{base: url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword("studio", "studio"),
		Host:     host + ":" + port.Port(),
		RawQuery: "sslmode=disable",
	}}

	c.admin, err = pgxpool.New(ctx, c.dsn("postgres"))
	if err != nil {
		return nil, fmt.Errorf("connect admin db: %w", err)
	}
	if _, err := c.admin.Exec(ctx, "CREATE DATABASE "+pgx.Identifier{templateDB}.Sanitize()); err != nil {
		return nil, fmt.Errorf("create template: %w", err)
	}

	if err := migrateTemplate(ctx, c.dsn(templateDB)); err != nil {
		return nil, err
	}
	return c, nil
}

// migrateTemplate must close every connection to the template before
// returning or later clones fail.
func migrateTemplate(ctx context.Context, dsn string) error {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return fmt.Errorf("open template: %w", err)
	}
	defer db.Close()

	if _, err := migrations.Up(ctx, db, migrations.Postgres); err != nil {
		return fmt.Errorf("migrate template: %w", err)
	}
	return nil
}
