package rest

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/heartmarshall/studio-bookings/internal/config"
	"github.com/heartmarshall/studio-bookings/internal/domain"
	"github.com/heartmarshall/studio-bookings/internal/transport/middleware"
)

// RouterDeps carries everything NewRouter mounts.
type RouterDeps struct {
	Logger      *slog.Logger
	CORS        config.CORSConfig
	RateLimit   config.RateLimitConfig
	RateLimiter *middleware.RateLimiter // nil disables rate limiting

	Health  *HealthHandler
	Auth    *AuthHandler
	Booking *BookingHandler
}

// NewRouter builds the HTTP API.
func NewRouter(d RouterDeps) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.RequestID(),
		middleware.Logger(d.Logger, "/live", "/ready"),
		middleware.Recovery(d.Logger),
		middleware.CORS(d.CORS),
	)

	limit := func(scope string, perMinute int) func(http.Handler) http.Handler {
		if d.RateLimiter == nil {
			return func(next http.Handler) http.Handler { return next }
		}
		return d.RateLimiter.Limit(scope, perMinute)
	}

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	r.Get("/live", d.Health.Live)
	r.Get("/ready", d.Health.Ready)
	r.Get("/health", d.Health.Health)

	r.Route("/api", func(r chi.Router) {
		submit := limit("submit", d.RateLimit.SubmitPerMinute)
		r.With(submit).Post("/appointments", d.Booking.SubmitAppointment)
		r.With(submit).Post("/classes", d.Booking.SubmitEnrollment)

		r.Route("/admin", func(r chi.Router) {
			r.With(limit("login", d.RateLimit.LoginPerMinute)).Post("/login", d.Auth.Login)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireBearer)

				r.Post("/logout", d.Auth.Logout)
				r.Get("/me", d.Auth.Me)
				r.Get("/stats", d.Booking.Stats)

				for _, kind := range domain.AllKinds() {
					r.Get("/"+kind.Plural(), d.Booking.List(kind))
					r.Put("/"+kind.Plural()+"/{id}/status", d.Booking.SetStatus(kind))
				}
			})
		})
	})

	return r
}
