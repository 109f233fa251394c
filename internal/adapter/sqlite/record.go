package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/heartmarshall/studio-bookings/internal/domain"
)

const recordsTable = "booking_records"

var recordColumns = []string{
	"id",
	"kind",
	"status",
	"name",
	"email",
	"phone",
	"COALESCE(service, '')",
	"COALESCE(appointment_date, '')",
	"COALESCE(appointment_time, '')",
	"COALESCE(message, '')",
	"COALESCE(class_type, '')",
	"COALESCE(experience_level, '')",
	"COALESCE(preferred_schedule, '')",
	"COALESCE(goals, '')",
	"created_at",
	"updated_at",
}

// RecordRepo is the Record Store on SQLite.
type RecordRepo struct {
	d *DB
}

// NewRecordRepo creates a record repository on d.
func NewRecordRepo(d *DB) *RecordRepo {
	return &RecordRepo{d: d}
}

type rowScanner interface {
	Scan(dest ...any) error
}

// Create inserts rec and returns the stored row.
func (r *RecordRepo) Create(ctx context.Context, rec *domain.Record) (*domain.Record, error) {
	values := map[string]any{
		"id":         rec.ID.String(),
		"kind":       string(rec.Kind),
		"status":     string(rec.Status),
		"name":       rec.Contact.Name,
		"email":      rec.Contact.Email,
		"phone":      rec.Contact.Phone,
		"created_at": toMicros(rec.CreatedAt),
		"updated_at": toMicros(rec.UpdatedAt),
	}
	if a := rec.Appointment; a != nil {
		values["service"] = a.Service
		values["appointment_date"] = a.Date.Format(domain.DateLayout)
		values["appointment_time"] = a.Time
		values["message"] = a.Message
	}
	if e := rec.Enrollment; e != nil {
		values["class_type"] = e.ClassType
		values["experience_level"] = e.ExperienceLevel
		values["preferred_schedule"] = e.PreferredSchedule
		values["goals"] = e.Goals
	}

	query, args, err := r.d.sb.Insert(recordsTable).
		SetMap(values).
		Suffix("RETURNING " + strings.Join(recordColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("record.Create build: %w", err)
	}

	out, err := scanRecord(r.d.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, mapError(err, "record", rec.ID)
	}
	return out, nil
}

// List returns every record matching filter, newest first.
func (r *RecordRepo) List(ctx context.Context, filter domain.RecordFilter) ([]domain.Record, error) {
	sel := r.d.sb.Select(recordColumns...).
		From(recordsTable).
		Where(squirrel.Eq{"kind": string(filter.Kind)}).
		OrderBy("created_at DESC", "id")
	if filter.Status != nil {
		sel = sel.Where(squirrel.Eq{"status": string(*filter.Status)})
	}

	query, args, err := sel.ToSql()
	if err != nil {
		return nil, fmt.Errorf("record.List build: %w", err)
	}

	rows, err := r.d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapError(err, "records", filter.Kind)
	}
	defer rows.Close()

	out := make([]domain.Record, 0)
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, mapError(err, "records", filter.Kind)
		}
		out = append(out, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err, "records", filter.Kind)
	}
	return out, nil
}

// SetStatus reads the current row, runs the change guard and writes the new
// status in one transaction. The single connection serializes writers.
func (r *RecordRepo) SetStatus(ctx context.Context, change domain.StatusChange) (*domain.Record, error) {
	var out *domain.Record

	err := r.d.inTx(ctx, func(tx *sql.Tx) error {
		lockSQL, lockArgs, err := r.d.sb.Select("status", "updated_at").
			From(recordsTable).
			Where(squirrel.Eq{"id": change.ID.String(), "kind": string(change.Kind)}).
			ToSql()
		if err != nil {
			return fmt.Errorf("build select: %w", err)
		}

		var (
			current   string
			updatedAt int64
		)
		if err := tx.QueryRowContext(ctx, lockSQL, lockArgs...).Scan(&current, &updatedAt); err != nil {
			return err
		}

		if err := change.Check(domain.Status(current)); err != nil {
			return err
		}

		next := domain.NextUpdatedAt(fromMicros(updatedAt), change.At)

		updSQL, updArgs, err := r.d.sb.Update(recordsTable).
			Set("status", string(change.Status)).
			Set("updated_at", toMicros(next)).
			Where(squirrel.Eq{"id": change.ID.String()}).
			Suffix("RETURNING " + strings.Join(recordColumns, ", ")).
			ToSql()
		if err != nil {
			return fmt.Errorf("build update: %w", err)
		}

		out, err = scanRecord(tx.QueryRowContext(ctx, updSQL, updArgs...))
		return err
	})
	if err != nil {
		if errors.Is(err, domain.ErrConflict) || errors.Is(err, domain.ErrTransitionNotAllowed) {
			return nil, fmt.Errorf("record %s: %w", change.ID, err)
		}
		return nil, mapError(err, "record", change.ID)
	}
	return out, nil
}

// Counts tallies every record by kind and status.
func (r *RecordRepo) Counts(ctx context.Context) (domain.Stats, error) {
	var stats domain.Stats

	query, args, err := r.d.sb.Select("kind", "status", "count(*)").
		From(recordsTable).
		GroupBy("kind", "status").
		ToSql()
	if err != nil {
		return stats, fmt.Errorf("record.Counts build: %w", err)
	}

	rows, err := r.d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return stats, mapError(err, "records", "counts")
	}
	defer rows.Close()

	for rows.Next() {
		var (
			kind, status string
			n            int
		)
		if err := rows.Scan(&kind, &status, &n); err != nil {
			return stats, mapError(err, "records", "counts")
		}
		if c := stats.For(domain.Kind(kind)); c != nil {
			c.AddN(domain.Status(status), n)
		}
	}
	return stats, mapError(rows.Err(), "records", "counts")
}

func scanRecord(row rowScanner) (*domain.Record, error) {
	var (
		id                                    string
		kind, status, name, email, phone      string
		service, date, slot, message          string
		classType, experience, schedule, goal string
		createdAt, updatedAt                  int64
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

	parsedID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("parse id %q: %w", id, err)
	}

	rec := &domain.Record{
		ID:        parsedID,
		Kind:      domain.Kind(kind),
		Status:    domain.Status(status),
		Contact:   domain.Contact{Name: name, Email: email, Phone: phone},
		CreatedAt: fromMicros(createdAt),
		UpdatedAt: fromMicros(updatedAt),
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
