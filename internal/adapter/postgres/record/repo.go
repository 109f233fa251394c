// Package record implements the Record Store on PostgreSQL.
package record

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	postgres "github.com/heartmarshall/studio-bookings/internal/adapter/postgres"
	"github.com/heartmarshall/studio-bookings/internal/domain"
)

const table = "booking_records"

// columns is the select list shared by every read. Kind-specific columns
// are coalesced so a row always scans into plain strings.
var columns = []string{
	"id",
	"kind",
	"status",
	"name",
	"email",
	"phone",
	"COALESCE(service, '')",
	"COALESCE(to_char(appointment_date, 'YYYY-MM-DD'), '')",
	"COALESCE(appointment_time, '')",
	"COALESCE(message, '')",
	"COALESCE(class_type, '')",
	"COALESCE(experience_level, '')",
	"COALESCE(preferred_schedule, '')",
	"COALESCE(goals, '')",
	"created_at",
	"updated_at",
}

// Repo provides record persistence backed by PostgreSQL.
type Repo struct {
	db postgres.DB
	tx *postgres.TxManager
	sb squirrel.StatementBuilderType
}

// New creates a new record repository.
func New(db postgres.DB) *Repo {
	return &Repo{
		db: db,
		tx: postgres.NewTxManager(db),
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts rec and returns the stored row.
func (r *Repo) Create(ctx context.Context, rec *domain.Record) (*domain.Record, error) {
	values := map[string]any{
		"id":         rec.ID,
		"kind":       string(rec.Kind),
		"status":     string(rec.Status),
		"name":       rec.Contact.Name,
		"email":      rec.Contact.Email,
		"phone":      rec.Contact.Phone,
		"created_at": rec.CreatedAt,
		"updated_at": rec.UpdatedAt,
	}
	if a := rec.Appointment; a != nil {
		values["service"] = a.Service
		values["appointment_date"] = a.Date
		values["appointment_time"] = a.Time
		values["message"] = a.Message
	}
	if e := rec.Enrollment; e != nil {
		values["class_type"] = e.ClassType
		values["experience_level"] = e.ExperienceLevel
		values["preferred_schedule"] = e.PreferredSchedule
		values["goals"] = e.Goals
	}

	query, args, err := r.sb.Insert(table).
		SetMap(values).
		Suffix("RETURNING " + joinColumns()).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("record.Create build: %w", err)
	}

	q := postgres.QuerierFromCtx(ctx, r.db)
	out, err := scanRecord(q.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, postgres.MapError(err, "record", rec.ID)
	}
	return out, nil
}

// List returns every record matching filter, newest first.
func (r *Repo) List(ctx context.Context, filter domain.RecordFilter) ([]domain.Record, error) {
	sel := r.sb.Select(columns...).
		From(table).
		Where(squirrel.Eq{"kind": string(filter.Kind)}).
		OrderBy("created_at DESC", "id")
	if filter.Status != nil {
		sel = sel.Where(squirrel.Eq{"status": string(*filter.Status)})
	}

	query, args, err := sel.ToSql()
	if err != nil {
		return nil, fmt.Errorf("record.List build: %w", err)
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.db).Query(ctx, query, args...)
	if err != nil {
		return nil, postgres.MapError(err, "records", filter.Kind)
	}
	defer rows.Close()

	out := make([]domain.Record, 0)
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, postgres.MapError(err, "records", filter.Kind)
		}
		out = append(out, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapError(err, "records", filter.Kind)
	}
	return out, nil
}

// SetStatus locks the row, runs the change guard against its current
// status and writes the new status with a strictly later updated_at.
func (r *Repo) SetStatus(ctx context.Context, change domain.StatusChange) (*domain.Record, error) {
	var out *domain.Record

	err := r.tx.RunInTx(ctx, func(ctx context.Context) error {
		q := postgres.QuerierFromCtx(ctx, r.db)

		lockSQL, lockArgs, err := r.sb.Select("status", "updated_at").
			From(table).
			Where(squirrel.Eq{"id": change.ID, "kind": string(change.Kind)}).
			Suffix("FOR UPDATE").
			ToSql()
		if err != nil {
			return fmt.Errorf("build lock: %w", err)
		}

		var (
			current   string
			updatedAt time.Time
		)
		if err := q.QueryRow(ctx, lockSQL, lockArgs...).Scan(&current, &updatedAt); err != nil {
			return err
		}

		if err := change.Check(domain.Status(current)); err != nil {
			return err
		}

		next := domain.NextUpdatedAt(updatedAt.UTC(), change.At)

		updSQL, updArgs, err := r.sb.Update(table).
			Set("status", string(change.Status)).
			Set("updated_at", next).
			Where(squirrel.Eq{"id": change.ID}).
			Suffix("RETURNING " + joinColumns()).
			ToSql()
		if err != nil {
			return fmt.Errorf("build update: %w", err)
		}

		out, err = scanRecord(q.QueryRow(ctx, updSQL, updArgs...))
		return err
	})
	if err != nil {
		if isDomainError(err) {
			return nil, fmt.Errorf("record %s: %w", change.ID, err)
		}
		return nil, postgres.MapError(err, "record", change.ID)
	}
	return out, nil
}

// Counts tallies every record by kind and status.
func (r *Repo) Counts(ctx context.Context) (domain.Stats, error) {
	var stats domain.Stats

	query, args, err := r.sb.Select("kind", "status", "count(*)").
		From(table).
		GroupBy("kind", "status").
		ToSql()
	if err != nil {
		return stats, fmt.Errorf("record.Counts build: %w", err)
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.db).Query(ctx, query, args...)
	if err != nil {
		return stats, postgres.MapError(err, "records", "counts")
	}
	defer rows.Close()

	for rows.Next() {
		var (
			kind, status string
			n            int64
		)
		if err := rows.Scan(&kind, &status, &n); err != nil {
			return stats, postgres.MapError(err, "records", "counts")
		}
		if c := stats.For(domain.Kind(kind)); c != nil {
			c.AddN(domain.Status(status), int(n))
		}
	}
	if err := rows.Err(); err != nil {
		return stats, postgres.MapError(err, "records", "counts")
	}
	return stats, nil
}

func joinColumns() string {
	return strings.Join(columns, ", ")
}

func isDomainError(err error) bool {
	return errors.Is(err, domain.ErrConflict) ||
		errors.Is(err, domain.ErrTransitionNotAllowed) ||
		errors.Is(err, domain.ErrInvalidStatus)
}

func scanRecord(row pgx.Row) (*domain.Record, error) {
	var (
		id                                    uuid.UUID
		kind, status, name, email, phone      string
		service, date, slot, message          string
		classType, experience, schedule, goal string
		createdAt, updatedAt                  time.Time
	)
	err := row.Scan(
		&id, &kind, &status, &name, &email, &phone,
		&service, &date, &slot, &message,
		&classType, &experience, &schedule, &goal,
		&createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	rec := &domain.Record{
		ID:        id,
		Kind:      domain.Kind(kind),
		Status:    domain.Status(status),
		Contact:   domain.Contact{Name: name, Email: email, Phone: phone},
		CreatedAt: createdAt.UTC(),
		UpdatedAt: updatedAt.UTC(),
	}

	switch rec.Kind {
	case domain.KindAppointment:
		d, err := time.Parse(domain.DateLayout, date)
		if err != nil {
			return nil, fmt.Errorf("parse appointment_date %q: %w", date, err)
		}
		rec.Appointment = &domain.AppointmentDetails{Service: service, Date: d, Time: slot, Message: message}
	case domain.KindClass:
		rec.Enrollment = &domain.EnrollmentDetails{
			ClassType:         classType,
			ExperienceLevel:   experience,
			PreferredSchedule: schedule,
			Goals:             goal,
		}
	}

	return rec, nil
}
