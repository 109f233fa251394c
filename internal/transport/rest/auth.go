package rest

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/studio-bookings/internal/domain"
	"github.com/heartmarshall/studio-bookings/internal/service/session"
	"github.com/heartmarshall/studio-bookings/internal/transport/wire"
	"github.com/heartmarshall/studio-bookings/pkg/ctxutil"
)

// sessionService defines the minimal interface needed by AuthHandler.
type sessionService interface {
	Authenticate(ctx context.Context, input session.LoginInput) (*domain.OperatorSession, error)
	Authorize(ctx context.Context, token string) (*domain.Admin, error)
	Logout(ctx context.Context, token string) error
}

// AuthHandler serves operator login, logout and profile endpoints.
type AuthHandler struct {
	svc sessionService
	log *slog.Logger
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(svc sessionService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{svc: svc, log: logger.With("handler", "auth")}
}

// Login handles POST /api/admin/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req wire.LoginRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	sess, err := h.svc.Authenticate(r.Context(), session.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			writeError(w, http.StatusUnauthorized, "invalid email or password")
			return
		}
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, wire.LoginResponse{
		Success:   true,
		Token:     sess.Token,
		Admin:     wire.FromAdmin(sess.Admin),
		ExpiresAt: sess.ExpiresAt,
	})
}

// Logout handles POST /api/admin/logout.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	token, _ := ctxutil.TokenFromCtx(r.Context())
	if err := h.svc.Logout(r.Context(), token); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, wire.MessageResponse{Success: true, Message: "logged out"})
}

// Me handles GET /api/admin/me.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	token, _ := ctxutil.TokenFromCtx(r.Context())
	admin, err := h.svc.Authorize(r.Context(), token)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, wire.AdminResponse{Success: true, Admin: wire.FromAdmin(*admin)})
}
