// Package storetest holds behaviour suites every store adapter must pass.
package storetest

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/studio-bookings/internal/domain"
)

// RecordStore is the Record Store contract.
type RecordStore interface {
	Create(ctx context.Context, rec *domain.Record) (*domain.Record, error)
	List(ctx context.Context, filter domain.RecordFilter) ([]domain.Record, error)
	SetStatus(ctx context.Context, change domain.StatusChange) (*domain.Record, error)
	Counts(ctx context.Context) (domain.Stats, error)
}

// AdminStore is the operator account contract.
type AdminStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Admin, error)
	GetByEmail(ctx context.Context, email string) (*domain.Admin, error)
	Create(ctx context.Context, a *domain.Admin) (*domain.Admin, error)
}

// SessionStore is the operator session contract.
type SessionStore interface {
	Create(ctx context.Context, s *domain.Session) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Session, error)
	Revoke(ctx context.Context, id uuid.UUID, at time.Time) error
}

// Appointment builds the appointment used across the suites.
func Appointment(now time.Time) domain.Record {
	rec := domain.NewRecord(domain.KindAppointment, domain.Contact{
		Name: "Aisha Bello", Email: "aisha@example.com", Phone: "08012345678",
	}, now)
	rec.Appointment = &domain.AppointmentDetails{
		Service: "Bridal Makeup",
		Date:    time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC),
		Time:    "11:00 AM",
	}
	return rec
}

// Enrollment builds the class enrollment used across the suites.
func Enrollment(now time.Time) domain.Record {
	rec := domain.NewRecord(domain.KindClass, domain.Contact{
		Name: "Tolu Ade", Email: "tolu@example.com", Phone: "08098765432",
	}, now)
	rec.Enrollment = &domain.EnrollmentDetails{
		ClassType:         "Beginner Basics",
		ExperienceLevel:   "Complete Beginner",
		PreferredSchedule: "Weekends",
		Goals:             "Do my own makeup for events",
	}
	return rec
}

// RunRecordStore exercises a fresh store returned by newStore.
func RunRecordStore(t *testing.T, newStore func(t *testing.T) RecordStore) {
	t.Helper()
	ctx := context.Background()
	base := time.Date(2024, 11, 20, 9, 0, 0, 0, time.UTC)

	t.Run("create is pending with equal timestamps", func(t *testing.T) {
		s := newStore(t)
		appt := Appointment(base)

		got, err := s.Create(ctx, &appt)
		require.NoError(t, err)
		assert.Equal(t, appt.ID, got.ID)
		assert.Equal(t, domain.StatusPending, got.Status)
		assert.True(t, got.CreatedAt.Equal(got.UpdatedAt))
		require.NotNil(t, got.Appointment)
		assert.Equal(t, "2024-12-01", got.Appointment.Date.Format(domain.DateLayout))
		assert.Equal(t, "11:00 AM", got.Appointment.Time)
	})

	t.Run("list is partitioned by kind", func(t *testing.T) {
		s := newStore(t)
		appt, enr := Appointment(base), Enrollment(base.Add(time.Second))
		_, err := s.Create(ctx, &appt)
		require.NoError(t, err)
		_, err = s.Create(ctx, &enr)
		require.NoError(t, err)

		appts, err := s.List(ctx, domain.RecordFilter{Kind: domain.KindAppointment})
		require.NoError(t, err)
		require.Len(t, appts, 1)
		assert.Equal(t, appt.ID, appts[0].ID)

		classes, err := s.List(ctx, domain.RecordFilter{Kind: domain.KindClass})
		require.NoError(t, err)
		require.Len(t, classes, 1)
		require.NotNil(t, classes[0].Enrollment)
		assert.Equal(t, "Weekends", classes[0].Enrollment.PreferredSchedule)
	})

	t.Run("list on empty store is empty not nil", func(t *testing.T) {
		s := newStore(t)
		got, err := s.List(ctx, domain.RecordFilter{Kind: domain.KindClass})
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("list filters by status", func(t *testing.T) {
		s := newStore(t)
		a1, a2 := Appointment(base), Appointment(base.Add(time.Minute))
		_, err := s.Create(ctx, &a1)
		require.NoError(t, err)
		_, err = s.Create(ctx, &a2)
		require.NoError(t, err)
		_, err = s.SetStatus(ctx, domain.StatusChange{Kind: domain.KindAppointment, ID: a2.ID, Status: domain.StatusConfirmed, At: base.Add(time.Hour)})
		require.NoError(t, err)

		confirmed := domain.StatusConfirmed
		got, err := s.List(ctx, domain.RecordFilter{Kind: domain.KindAppointment, Status: &confirmed})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, a2.ID, got[0].ID)
	})

	t.Run("every status strictly advances updated_at", func(t *testing.T) {
		s := newStore(t)
		appt := Appointment(base)
		created, err := s.Create(ctx, &appt)
		require.NoError(t, err)

		prev := created.UpdatedAt
		statuses := append(domain.AllStatuses(), domain.StatusPending, domain.StatusPending)
		for _, st := range statuses {
			// A frozen clock must still produce a strictly later updated_at.
			got, err := s.SetStatus(ctx, domain.StatusChange{Kind: domain.KindAppointment, ID: appt.ID, Status: st, At: base})
			require.NoError(t, err)
			assert.Equal(t, st, got.Status)
			assert.True(t, got.UpdatedAt.After(prev), "status %s: %v not after %v", st, got.UpdatedAt, prev)
			assert.True(t, got.CreatedAt.Equal(created.CreatedAt))
			assert.Equal(t, created.Contact, got.Contact)
			prev = got.UpdatedAt
		}
	})

	t.Run("unknown id or wrong kind is not found and changes nothing", func(t *testing.T) {
		s := newStore(t)
		appt := Appointment(base)
		_, err := s.Create(ctx, &appt)
		require.NoError(t, err)

		_, err = s.SetStatus(ctx, domain.StatusChange{Kind: domain.KindAppointment, ID: uuid.New(), Status: domain.StatusConfirmed, At: base})
		assert.True(t, errors.Is(err, domain.ErrNotFound), "got %v", err)

		_, err = s.SetStatus(ctx, domain.StatusChange{Kind: domain.KindClass, ID: appt.ID, Status: domain.StatusConfirmed, At: base})
		assert.True(t, errors.Is(err, domain.ErrNotFound), "got %v", err)

		got, err := s.List(ctx, domain.RecordFilter{Kind: domain.KindAppointment})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, domain.StatusPending, got[0].Status)
		assert.True(t, got[0].UpdatedAt.Equal(got[0].CreatedAt))
	})

	t.Run("guard failure leaves record untouched", func(t *testing.T) {
		s := newStore(t)
		appt := Appointment(base)
		_, err := s.Create(ctx, &appt)
		require.NoError(t, err)

		confirmed := domain.StatusConfirmed
		_, err = s.SetStatus(ctx, domain.StatusChange{
			Kind: domain.KindAppointment, ID: appt.ID, Status: domain.StatusCompleted, At: base.Add(time.Hour),
			Guard: domain.NewStatusGuard(nil, domain.StatusCompleted, &confirmed),
		})
		assert.True(t, errors.Is(err, domain.ErrConflict), "got %v", err)

		got, err := s.List(ctx, domain.RecordFilter{Kind: domain.KindAppointment})
		require.NoError(t, err)
		assert.Equal(t, domain.StatusPending, got[0].Status)
	})

	t.Run("concurrent set_status never tears", func(t *testing.T) {
		s := newStore(t)
		appt := Appointment(base)
		_, err := s.Create(ctx, &appt)
		require.NoError(t, err)

		var (
			wg      sync.WaitGroup
			mu      sync.Mutex
			results []domain.Record
		)
		statuses := domain.AllStatuses()
		for i := range 40 {
			wg.Add(1)
			go func(st domain.Status) {
				defer wg.Done()
				got, err := s.SetStatus(ctx, domain.StatusChange{Kind: domain.KindAppointment, ID: appt.ID, Status: st, At: time.Now()})
				if !assert.NoError(t, err) {
					return
				}
				mu.Lock()
				results = append(results, *got)
				mu.Unlock()
			}(statuses[i%len(statuses)])
		}
		wg.Wait()

		// The stored row must equal the result with the latest updated_at.
		var last domain.Record
		seen := make(map[time.Time]bool)
		for _, r := range results {
			assert.False(t, seen[r.UpdatedAt], "two writes share updated_at %v", r.UpdatedAt)
			seen[r.UpdatedAt] = true
			if r.UpdatedAt.After(last.UpdatedAt) {
				last = r
			}
		}

		got, err := s.List(ctx, domain.RecordFilter{Kind: domain.KindAppointment})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, last.Status, got[0].Status)
		assert.True(t, last.UpdatedAt.Equal(got[0].UpdatedAt))
	})

	t.Run("counts by kind and status", func(t *testing.T) {
		s := newStore(t)
		a1, a2, e1 := Appointment(base), Appointment(base), Enrollment(base)
		for _, r := range []*domain.Record{&a1, &a2, &e1} {
			_, err := s.Create(ctx, r)
			require.NoError(t, err)
		}
		_, err := s.SetStatus(ctx, domain.StatusChange{Kind: domain.KindClass, ID: e1.ID, Status: domain.StatusCancelled, At: base.Add(time.Hour)})
		require.NoError(t, err)

		stats, err := s.Counts(ctx)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusCounts{Total: 2, Pending: 2}, stats.Appointments)
		assert.Equal(t, domain.StatusCounts{Total: 1, Cancelled: 1}, stats.Classes)
	})
}

// RunAdminStore exercises a fresh admin store.
func RunAdminStore(t *testing.T, newStore func(t *testing.T) AdminStore) {
	t.Helper()
	ctx := context.Background()

	t.Run("create and fetch", func(t *testing.T) {
		s := newStore(t)
		a := &domain.Admin{ID: uuid.New(), Email: "Owner@Studio.test", Name: "Owner", PasswordHash: "h", CreatedAt: time.Now().UTC().Truncate(time.Microsecond)}
		_, err := s.Create(ctx, a)
		require.NoError(t, err)

		byEmail, err := s.GetByEmail(ctx, "owner@studio.test")
		require.NoError(t, err)
		assert.Equal(t, a.ID, byEmail.ID)
		assert.Equal(t, "h", byEmail.PasswordHash)

		byID, err := s.GetByID(ctx, a.ID)
		require.NoError(t, err)
		assert.Equal(t, "Owner", byID.Name)
	})

	t.Run("duplicate email", func(t *testing.T) {
		s := newStore(t)
		_, err := s.Create(ctx, &domain.Admin{ID: uuid.New(), Email: "a@studio.test", Name: "A", PasswordHash: "h", CreatedAt: time.Now()})
		require.NoError(t, err)
		_, err = s.Create(ctx, &domain.Admin{ID: uuid.New(), Email: "A@studio.test", Name: "B", PasswordHash: "h", CreatedAt: time.Now()})
		assert.True(t, errors.Is(err, domain.ErrAlreadyExists), "got %v", err)
	})

	t.Run("missing", func(t *testing.T) {
		s := newStore(t)
		_, err := s.GetByEmail(ctx, "nobody@studio.test")
		assert.True(t, errors.Is(err, domain.ErrNotFound), "got %v", err)
		_, err = s.GetByID(ctx, uuid.New())
		assert.True(t, errors.Is(err, domain.ErrNotFound), "got %v", err)
	})
}

// RunSessionStore exercises a fresh session store. seedAdmin must return
// the id of an existing admin.
func RunSessionStore(t *testing.T, newStore func(t *testing.T) (SessionStore, uuid.UUID)) {
	t.Helper()
	ctx := context.Background()
	now := time.Date(2024, 12, 1, 8, 0, 0, 0, time.UTC)

	t.Run("create, revoke twice", func(t *testing.T) {
		s, adminID := newStore(t)
		exp := now.Add(time.Hour)
		sess := &domain.Session{ID: uuid.New(), AdminID: adminID, CreatedAt: now, ExpiresAt: &exp}
		require.NoError(t, s.Create(ctx, sess))

		got, err := s.GetByID(ctx, sess.ID)
		require.NoError(t, err)
		assert.Equal(t, adminID, got.AdminID)
		require.NotNil(t, got.ExpiresAt)
		assert.True(t, got.ExpiresAt.Equal(exp))
		assert.False(t, got.IsRevoked())

		first := now.Add(time.Minute)
		require.NoError(t, s.Revoke(ctx, sess.ID, first))
		require.NoError(t, s.Revoke(ctx, sess.ID, now.Add(time.Hour)))

		got, err = s.GetByID(ctx, sess.ID)
		require.NoError(t, err)
		require.True(t, got.IsRevoked())
		assert.True(t, got.RevokedAt.Equal(first))
	})

	t.Run("unbounded session", func(t *testing.T) {
		s, adminID := newStore(t)
		sess := &domain.Session{ID: uuid.New(), AdminID: adminID, CreatedAt: now}
		require.NoError(t, s.Create(ctx, sess))

		got, err := s.GetByID(ctx, sess.ID)
		require.NoError(t, err)
		assert.Nil(t, got.ExpiresAt)
	})

	t.Run("unknown", func(t *testing.T) {
		s, _ := newStore(t)
		_, err := s.GetByID(ctx, uuid.New())
		assert.True(t, errors.Is(err, domain.ErrNotFound), "got %v", err)
		err = s.Revoke(ctx, uuid.New(), now)
		assert.True(t, errors.Is(err, domain.ErrNotFound), "got %v", err)
	})
}
