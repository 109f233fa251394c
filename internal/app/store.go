package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/studio-bookings/internal/adapter/memory"
	"github.com/heartmarshall/studio-bookings/internal/adapter/postgres"
	pgadmin "github.com/heartmarshall/studio-bookings/internal/adapter/postgres/admin"
	pgrecord "github.com/heartmarshall/studio-bookings/internal/adapter/postgres/record"
	pgsession "github.com/heartmarshall/studio-bookings/internal/adapter/postgres/session"
	"github.com/heartmarshall/studio-bookings/internal/adapter/sqlite"
	"github.com/heartmarshall/studio-bookings/internal/config"
	"github.com/heartmarshall/studio-bookings/internal/domain"
)

type recordStore interface {
	Create(ctx context.Context, rec *domain.Record) (*domain.Record, error)
	List(ctx context.Context, filter domain.RecordFilter) ([]domain.Record, error)
	SetStatus(ctx context.Context, change domain.StatusChange) (*domain.Record, error)
	Counts(ctx context.Context) (domain.Stats, error)
}

type adminStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Admin, error)
	GetByEmail(ctx context.Context, email string) (*domain.Admin, error)
	Create(ctx context.Context, a *domain.Admin) (*domain.Admin, error)
}

type sessionStore interface {
	Create(ctx context.Context, s *domain.Session) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Session, error)
	Revoke(ctx context.Context, id uuid.UUID, at time.Time) error
}

// stores bundles the three repositories of one backend.
type stores struct {
	driver   string
	records  recordStore
	admins   adminStore
	sessions sessionStore
	ping     func(ctx context.Context) error
	close    func()
}

// Ping checks the backing store.
func (s *stores) Ping(ctx context.Context) error {
	return s.ping(ctx)
}

func openStores(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*stores, error) {
	switch cfg.Store.Driver {
	case config.DriverMemory:
		logger.Warn("using in-memory store, records are lost on restart")
		return &stores{
			driver:   config.DriverMemory,
			records:  memory.NewRecordStore(),
			admins:   memory.NewAdminStore(),
			sessions: memory.NewSessionStore(),
			ping:     func(context.Context) error { return nil },
			close:    func() {},
		}, nil

	case config.DriverSQLite:
		db, err := sqlite.Open(ctx, cfg.Store.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("open sqlite store: %w", err)
		}
		logger.Info("sqlite store ready", slog.String("path", cfg.Store.SQLitePath))
		return &stores{
			driver:   config.DriverSQLite,
			records:  sqlite.NewRecordRepo(db),
			admins:   sqlite.NewAdminRepo(db),
			sessions: sqlite.NewSessionRepo(db),
			ping:     db.Ping,
			close:    func() { _ = db.Close() },
		}, nil

	case config.DriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("open postgres store: %w", err)
		}
		applied, err := postgres.Migrate(ctx, pool)
		if err != nil {
			pool.Close()
			return nil, fmt.Errorf("migrate postgres store: %w", err)
		}
		logger.Info("postgres store ready", slog.Int("migrations_applied", applied))
		return &stores{
			driver:   config.DriverPostgres,
			records:  pgrecord.New(pool),
			admins:   pgadmin.New(pool),
			sessions: pgsession.New(pool),
			ping:     pool.Ping,
			close:    pool.Close,
		}, nil
	}
	return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
}
