package operator

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/studio-bookings/internal/domain"
	"github.com/heartmarshall/studio-bookings/internal/transport/wire"
	"github.com/heartmarshall/studio-bookings/pkg/ctxutil"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL+"/", time.Second, discardLogger())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestClient_Login(t *testing.T) {
	t.Parallel()

	adminID := uuid.New()
	exp := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/admin/login", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"))

		var req wire.LoginRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, wire.LoginRequest{Email: "owner@studio.test", Password: "secret"}, req)

		writeJSON(w, http.StatusOK, wire.LoginResponse{
			Success: true, Token: "tok",
			Admin:     wire.Admin{ID: adminID.String(), Name: "Owner", Email: "owner@studio.test"},
			ExpiresAt: &exp,
		})
	})

	sess, err := c.Login(context.Background(), "owner@studio.test", "secret")
	require.NoError(t, err)
	assert.Equal(t, "tok", sess.Token)
	assert.Equal(t, adminID, sess.Admin.ID)
	assert.Equal(t, "Owner", sess.Admin.Name)
	require.NotNil(t, sess.ExpiresAt)
	assert.True(t, exp.Equal(*sess.ExpiresAt))
}

func TestClient_LoginRejected(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusUnauthorized, wire.ErrorResponse{Message: "invalid email or password"})
	})

	_, err := c.Login(context.Background(), "owner@studio.test", "wrong")
	require.ErrorIs(t, err, domain.ErrUnauthorized)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Equal(t, "invalid email or password", apiErr.Message)
}

func TestClient_ListSendsTokenAndFilter(t *testing.T) {
	t.Parallel()

	rec := makeRecord(domain.KindClass, "Tolu", 0)
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/admin/classes", r.URL.Path)
		assert.Equal(t, "confirmed", r.URL.Query().Get("status"))
		assert.Equal(t, "Bearer token-1", r.Header.Get("Authorization"))
		assert.Equal(t, "req-42", r.Header.Get(requestIDHeader))
		writeJSON(w, http.StatusOK, wire.NewListResponse(domain.KindClass, wire.FromRecords([]domain.Record{rec})))
	})

	ctx := ctxutil.WithRequestID(context.Background(), "req-42")
	recs, err := c.List(ctx, testSession, domain.KindClass, domain.StatusConfirmed)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, rec.ID, recs[0].ID)
	assert.Equal(t, "Beginner Basics", recs[0].Enrollment.ClassType)
}

func TestClient_NoSessionNeverCallsServer(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		writeJSON(w, http.StatusOK, wire.ListResponse{Success: true})
	})
	ctx := context.Background()

	for _, sess := range []*domain.OperatorSession{nil, {Token: "  "}} {
		_, err := c.List(ctx, sess, domain.KindAppointment, "")
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
		_, err = c.SetStatus(ctx, sess, domain.KindAppointment, uuid.NewString(), domain.StatusConfirmed, nil)
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
		_, err = c.Stats(ctx, sess)
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
		assert.ErrorIs(t, c.Logout(ctx, sess), domain.ErrUnauthorized)
	}
	assert.Zero(t, hits.Load())
}

func TestClient_SetStatus(t *testing.T) {
	t.Parallel()

	rec := makeRecord(domain.KindAppointment, "Aisha Bello", 0)
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/admin/appointments/"+rec.ID.String()+"/status", r.URL.Path)

		var req wire.StatusRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, wire.StatusRequest{Status: "confirmed", ExpectedStatus: "pending"}, req)

		out := rec
		out.Status = domain.StatusConfirmed
		out.UpdatedAt = rec.UpdatedAt.Add(time.Second)
		writeJSON(w, http.StatusOK, wire.RecordResponse{Success: true, Data: wire.FromRecord(out)})
	})

	expected := domain.StatusPending
	got, err := c.SetStatus(context.Background(), testSession, domain.KindAppointment, rec.ID.String(), domain.StatusConfirmed, &expected)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusConfirmed, got.Status)
	assert.True(t, got.UpdatedAt.After(rec.UpdatedAt))
}

func TestClient_ErrorMapping(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		status int
		body   wire.ErrorResponse
		want   error
	}{
		{"validation", http.StatusBadRequest, wire.ErrorResponse{Message: "validation failed", Errors: []wire.FieldError{{Field: "email", Message: "required"}}}, domain.ErrValidation},
		{"invalid status", http.StatusBadRequest, wire.ErrorResponse{Message: "invalid status"}, domain.ErrInvalidStatus},
		{"bad body", http.StatusBadRequest, wire.ErrorResponse{Message: "invalid request body"}, domain.ErrValidation},
		{"unauthorized", http.StatusUnauthorized, wire.ErrorResponse{Message: "unauthorized"}, domain.ErrUnauthorized},
		{"not found", http.StatusNotFound, wire.ErrorResponse{Message: "record not found"}, domain.ErrNotFound},
		{"conflict", http.StatusConflict, wire.ErrorResponse{Message: "record status has changed"}, domain.ErrConflict},
		{"transition", http.StatusConflict, wire.ErrorResponse{Message: "status transition not allowed"}, domain.ErrTransitionNotAllowed},
		{"rate limited", http.StatusTooManyRequests, wire.ErrorResponse{Message: "too many requests"}, ErrRateLimited},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
				writeJSON(w, tt.status, tt.body)
			})
			_, err := c.SetStatus(context.Background(), testSession, domain.KindAppointment, uuid.NewString(), domain.StatusConfirmed, nil)
			require.ErrorIs(t, err, tt.want)
		})
	}

	t.Run("validation fields survive", func(t *testing.T) {
		t.Parallel()

		c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, http.StatusBadRequest, wire.ErrorResponse{
				Message: "validation failed",
				Errors:  []wire.FieldError{{Field: "appointment_time", Message: "unknown time slot"}},
			})
		})
		_, err := c.SubmitAppointment(context.Background(), wire.AppointmentRequest{})

		var ve *domain.ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, []domain.FieldError{{Field: "appointment_time", Message: "unknown time slot"}}, ve.Errors)
	})

	t.Run("server error", func(t *testing.T) {
		t.Parallel()

		c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		})
		_, err := c.Stats(context.Background(), testSession)

		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
		assert.Nil(t, errors.Unwrap(apiErr))
	})
}

func TestClient_TimeoutIsAFailure(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(srv.Close)
	t.Cleanup(func() { close(release) })

	c := NewClient(srv.URL, 20*time.Millisecond, discardLogger())
	start := time.Now()
	_, err := c.List(context.Background(), testSession, domain.KindAppointment, "")

	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), time.Second)
}

func TestClient_StatsAndMe(t *testing.T) {
	t.Parallel()

	adminID := uuid.New()
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/admin/stats":
			writeJSON(w, http.StatusOK, wire.StatsResponse{Success: true, Stats: wire.Stats{
				Appointments: wire.Counts{Total: 3, Pending: 1, Completed: 2},
			}})
		case "/api/admin/me":
			writeJSON(w, http.StatusOK, wire.AdminResponse{Success: true, Admin: wire.Admin{ID: adminID.String(), Name: "Owner"}})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	})

	stats, err := c.Stats(context.Background(), testSession)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCounts{Total: 3, Pending: 1, Completed: 2}, stats.Appointments)

	admin, err := c.Me(context.Background(), testSession)
	require.NoError(t, err)
	assert.Equal(t, adminID, admin.ID)
}
