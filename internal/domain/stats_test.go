package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCountRecords(t *testing.T) {
	t.Parallel()

	recs := []Record{
		{Status: StatusPending},
		{Status: StatusPending},
		{Status: StatusConfirmed},
		{Status: StatusCompleted},
		{Status: Status("bogus")},
	}

	c := CountRecords(recs)
	assert.Equal(t, StatusCounts{Total: 4, Pending: 2, Confirmed: 1, Completed: 1}, c)
	assert.Equal(t, 2, c.Get(StatusPending))
	assert.Equal(t, 0, c.Get(StatusCancelled))
}

func TestStats_For(t *testing.T) {
	t.Parallel()

	var s Stats
	s.For(KindClass).AddN(StatusCancelled, 3)

	assert.Equal(t, 3, s.Classes.Cancelled)
	assert.Equal(t, 0, s.Appointments.Total)
	assert.Nil(t, s.For(Kind("other")))
}

func TestSession_Lifecycle(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 12, 1, 12, 0, 0, 0, time.UTC)
	exp := now.Add(time.Hour)

	s := &Session{ExpiresAt: &exp}
	assert.False(t, s.IsExpired(now))
	assert.True(t, s.IsExpired(exp))
	assert.False(t, s.IsRevoked())

	unbounded := &Session{}
	assert.False(t, unbounded.IsExpired(now.Add(24*365*time.Hour)))
}
