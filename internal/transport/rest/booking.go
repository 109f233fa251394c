package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/heartmarshall/studio-bookings/internal/domain"
	"github.com/heartmarshall/studio-bookings/internal/service/booking"
	"github.com/heartmarshall/studio-bookings/internal/transport/wire"
	"github.com/heartmarshall/studio-bookings/pkg/ctxutil"
)

// bookingService defines the minimal interface needed by BookingHandler.
type bookingService interface {
	SubmitAppointment(ctx context.Context, input booking.AppointmentInput) (*domain.Record, error)
	SubmitEnrollment(ctx context.Context, input booking.EnrollmentInput) (*domain.Record, error)
	ListRecords(ctx context.Context, token string, input booking.ListInput) ([]domain.Record, error)
	SetStatus(ctx context.Context, token string, input booking.SetStatusInput) (*domain.Record, error)
	Stats(ctx context.Context, token string) (domain.Stats, error)
}

// BookingHandler serves public submissions and operator record endpoints.
type BookingHandler struct {
	svc bookingService
	log *slog.Logger
}

// NewBookingHandler creates a BookingHandler.
func NewBookingHandler(svc bookingService, logger *slog.Logger) *BookingHandler {
	return &BookingHandler{svc: svc, log: logger.With("handler", "booking")}
}

// SubmitAppointment handles POST /api/appointments.
func (h *BookingHandler) SubmitAppointment(w http.ResponseWriter, r *http.Request) {
	var req wire.AppointmentRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	rec, err := h.svc.SubmitAppointment(r.Context(), booking.AppointmentInput{
		Contact: booking.ContactInput{Name: req.Name, Email: req.Email, Phone: req.Phone},
		Service: req.Service,
		Date:    req.AppointmentDate,
		Time:    req.AppointmentTime,
		Message: req.Message,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, wire.RecordResponse{
		Success: true,
		Message: "appointment booked",
		Data:    wire.FromRecord(*rec),
	})
}

// SubmitEnrollment handles POST /api/classes.
func (h *BookingHandler) SubmitEnrollment(w http.ResponseWriter, r *http.Request) {
	var req wire.EnrollmentRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	rec, err := h.svc.SubmitEnrollment(r.Context(), booking.EnrollmentInput{
		Contact:           booking.ContactInput{Name: req.Name, Email: req.Email, Phone: req.Phone},
		ClassType:         req.ClassType,
		ExperienceLevel:   req.ExperienceLevel,
		PreferredSchedule: req.PreferredSchedule,
		Goals:             req.Goals,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, wire.RecordResponse{
		Success: true,
		Message: "enrollment received",
		Data:    wire.FromRecord(*rec),
	})
}

// List handles GET /api/admin/{appointments|classes}?status=...
func (h *BookingHandler) List(kind domain.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, _ := ctxutil.TokenFromCtx(r.Context())
		records, err := h.svc.ListRecords(r.Context(), token, booking.ListInput{
			Kind:   kind,
			Status: r.URL.Query().Get("status"),
		})
		if err != nil {
			handleError(h.log, w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, wire.NewListResponse(kind, wire.FromRecords(records)))
	}
}

// SetStatus handles PUT /api/admin/{appointments|classes}/{id}/status.
func (h *BookingHandler) SetStatus(kind domain.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, _ := ctxutil.TokenFromCtx(r.Context())

		var req wire.StatusRequest
		if err := decodeBody(w, r, &req); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		rec, err := h.svc.SetStatus(r.Context(), token, booking.SetStatusInput{
			Kind:           kind,
			ID:             chi.URLParam(r, "id"),
			Status:         req.Status,
			ExpectedStatus: req.ExpectedStatus,
		})
		if err != nil {
			handleError(h.log, w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, wire.RecordResponse{Success: true, Data: wire.FromRecord(*rec)})
	}
}

// Stats handles GET /api/admin/stats.
func (h *BookingHandler) Stats(w http.ResponseWriter, r *http.Request) {
	token, _ := ctxutil.TokenFromCtx(r.Context())
	stats, err := h.svc.Stats(r.Context(), token)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, wire.StatsResponse{Success: true, Stats: wire.FromStats(stats)})
}
