package rest

import (
	"context"
	"net/http"
	"time"
)

const probeTimeout = 3 * time.Second

type storePinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler serves the liveness, readiness and full health probes.
type HealthHandler struct {
	store   storePinger
	driver  string
	version string
	started time.Time
	now     func() time.Time
}

// NewHealthHandler creates a HealthHandler. driver names the store backend
// in the full health report.
func NewHealthHandler(store storePinger, driver, version string) *HealthHandler {
	return &HealthHandler{
		store:   store,
		driver:  driver,
		version: version,
		started: time.Now(),
		now:     time.Now,
	}
}

// HealthResponse is the JSON body of every probe.
type HealthResponse struct {
	Status     string                `json:"status"`
	Version    string                `json:"version,omitempty"`
	Uptime     string                `json:"uptime,omitempty"`
	Components map[string]CompStatus `json:"components,omitempty"`
	Timestamp  time.Time             `json:"timestamp"`
}

// CompStatus reports one dependency.
type CompStatus struct {
	Status  string `json:"status"`
	Driver  string `json:"driver,omitempty"`
	Latency string `json:"latency,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Live answers 200 while the process is serving.
func (h *HealthHandler) Live(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", Timestamp: h.now()})
}

// Ready answers 503 when the record store cannot be reached.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	store := h.checkStore(r.Context())
	writeJSON(w, httpStatusFor(store.Status), HealthResponse{
		Status:    store.Status,
		Timestamp: h.now(),
	})
}

// Health is Ready plus version, uptime and per-component detail.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	store := h.checkStore(r.Context())
	now := h.now()
	writeJSON(w, httpStatusFor(store.Status), HealthResponse{
		Status:     store.Status,
		Version:    h.version,
		Uptime:     now.Sub(h.started).Truncate(time.Second).String(),
		Components: map[string]CompStatus{"store": store},
		Timestamp:  now,
	})
}

func (h *HealthHandler) checkStore(ctx context.Context) CompStatus {
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	start := time.Now()
	if err := h.store.Ping(ctx); err != nil {
		return CompStatus{Status: "down", Driver: h.driver, Error: err.Error()}
	}
	return CompStatus{Status: "ok", Driver: h.driver, Latency: time.Since(start).String()}
}

func httpStatusFor(status string) int {
	if status == "ok" {
		return http.StatusOK
	}
	return http.StatusServiceUnavailable
}
