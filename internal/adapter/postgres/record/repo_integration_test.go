package record_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/studio-bookings/internal/adapter/postgres/record"
	"github.com/heartmarshall/studio-bookings/internal/adapter/postgres/testhelper"
	"github.com/heartmarshall/studio-bookings/internal/domain"
)

func seedAppointment(t *testing.T, repo *record.Repo) *domain.Record {
	t.Helper()

	rec := domain.NewRecord(domain.KindAppointment, domain.Contact{
		Name: "Aisha Bello", Email: "aisha@example.com", Phone: "08012345678",
	}, time.Now())
	rec.Appointment = &domain.AppointmentDetails{
		Service: "Bridal Makeup",
		Date:    time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC),
		Time:    "11:00 AM",
	}

	created, err := repo.Create(context.Background(), &rec)
	require.NoError(t, err)
	return created
}

func TestRepo_Integration_Lifecycle(t *testing.T) {
	t.Parallel()
	repo := record.New(testhelper.SetupTestDB(t))
	ctx := context.Background()

	rec := seedAppointment(t, repo)
	assert.Equal(t, domain.StatusPending, rec.Status)
	assert.True(t, rec.CreatedAt.Equal(rec.UpdatedAt))

	prev := rec.UpdatedAt
	for _, s := range []domain.Status{domain.StatusConfirmed, domain.StatusCompleted, domain.StatusCompleted} {
		got, err := repo.SetStatus(ctx, domain.StatusChange{Kind: domain.KindAppointment, ID: rec.ID, Status: s, At: time.Now()})
		require.NoError(t, err)
		assert.Equal(t, s, got.Status)
		assert.True(t, got.UpdatedAt.After(prev), "updated_at must strictly increase")
		assert.True(t, got.CreatedAt.Equal(rec.CreatedAt))
		prev = got.UpdatedAt
	}

	_, err := repo.SetStatus(ctx, domain.StatusChange{Kind: domain.KindClass, ID: rec.ID, Status: domain.StatusPending, At: time.Now()})
	assert.True(t, errors.Is(err, domain.ErrNotFound), "wrong kind must be NotFound, got %v", err)

	_, err = repo.SetStatus(ctx, domain.StatusChange{Kind: domain.KindAppointment, ID: uuid.New(), Status: domain.StatusPending, At: time.Now()})
	assert.True(t, errors.Is(err, domain.ErrNotFound), "got %v", err)
}

func TestRepo_Integration_ConcurrentSetStatus(t *testing.T) {
	t.Parallel()
	repo := record.New(testhelper.SetupTestDB(t))
	ctx := context.Background()

	rec := seedAppointment(t, repo)

	var wg sync.WaitGroup
	statuses := domain.AllStatuses()
	for i := range 20 {
		wg.Add(1)
		go func(s domain.Status) {
			defer wg.Done()
			_, err := repo.SetStatus(ctx, domain.StatusChange{Kind: domain.KindAppointment, ID: rec.ID, Status: s, At: time.Now()})
			assert.NoError(t, err)
		}(statuses[i%len(statuses)])
	}
	wg.Wait()

	list, err := repo.List(ctx, domain.RecordFilter{Kind: domain.KindAppointment})
	require.NoError(t, err)

	var found *domain.Record
	for i := range list {
		if list[i].ID == rec.ID {
			found = &list[i]
		}
	}
	require.NotNil(t, found)
	assert.True(t, found.Status.IsValid())
	assert.True(t, found.UpdatedAt.After(rec.UpdatedAt))
}
