package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"

	"github.com/heartmarshall/studio-bookings/internal/auth"
	"github.com/heartmarshall/studio-bookings/internal/config"
	"github.com/heartmarshall/studio-bookings/internal/service/booking"
	"github.com/heartmarshall/studio-bookings/internal/service/session"
	"github.com/heartmarshall/studio-bookings/internal/transport/middleware"
	"github.com/heartmarshall/studio-bookings/internal/transport/rest"
)

// Run is the server entry point. It loads configuration, opens the
// configured store, bootstraps the operator account and serves the HTTP
// API until ctx is cancelled.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)
	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("store", cfg.Store.Driver),
		slog.String("log_level", cfg.Log.Level),
	)

	a, err := New(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close()

	addr := net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port))
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	return a.Serve(ctx, ln)
}

// App is a fully wired server.
type App struct {
	cfg     *config.Config
	log     *slog.Logger
	stores  *stores
	limiter *middleware.RateLimiter
	handler http.Handler
}

// New opens the store and wires services and transport.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	st, err := openStores(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	hasher, err := auth.NewPasswordHasher(cfg.Auth.PasswordHashCost)
	if err != nil {
		st.close()
		return nil, fmt.Errorf("password hasher: %w", err)
	}
	tokens := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.SessionTTL)

	sessions := session.NewService(logger, st.admins, st.sessions, tokens, hasher)
	admin, err := sessions.EnsureBootstrapAdmin(ctx, cfg.Auth.Bootstrap)
	if err != nil {
		st.close()
		return nil, fmt.Errorf("bootstrap operator: %w", err)
	}
	if admin == nil {
		logger.Warn("no bootstrap operator configured, operator login needs an existing account")
	}

	bookings := booking.NewService(logger, st.records, sessions, nil)

	limiter := middleware.NewRateLimiter(cfg.RateLimit.CleanupInterval)

	handler := rest.NewRouter(rest.RouterDeps{
		Logger:      logger,
		CORS:        cfg.CORS,
		RateLimit:   cfg.RateLimit,
		RateLimiter: limiter,
		Health:      rest.NewHealthHandler(st, st.driver, Version),
		Auth:        rest.NewAuthHandler(sessions, logger),
		Booking:     rest.NewBookingHandler(bookings, logger),
	})

	return &App{
		cfg:     cfg,
		log:     logger,
		stores:  st,
		limiter: limiter,
		handler: handler,
	}, nil
}

// Handler returns the HTTP handler.
func (a *App) Handler() http.Handler { return a.handler }

// Serve accepts connections on ln until ctx is cancelled, then drains
// in-flight requests within the configured shutdown timeout.
func (a *App) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:      a.handler,
		ReadTimeout:  a.cfg.Server.ReadTimeout,
		WriteTimeout: a.cfg.Server.WriteTimeout,
		IdleTimeout:  a.cfg.Server.IdleTimeout,
	}

	serveDone := make(chan error, 1)
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveDone <- err
		}
		close(serveDone)
	}()

	a.log.Info("http server listening", slog.String("address", ln.Addr().String()))

	select {
	case <-ctx.Done():
		a.log.Info("http server shutting down")
	case err := <-serveDone:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), a.cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		a.log.Error("http server shutdown error", slog.String("error", err.Error()))
		return fmt.Errorf("http server shutdown: %w", err)
	}

	a.log.Info("http server stopped")
	return nil
}

// Close releases the store and background workers.
func (a *App) Close() {
	a.limiter.Stop()
	a.stores.close()
}
