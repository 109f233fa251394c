// Package operator is the client side of the operator console: an HTTP
// API client, thread-safe local views of each record kind, and a Syncer
// that keeps those views fresh by polling.
package operator

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/studio-bookings/internal/domain"
	"github.com/heartmarshall/studio-bookings/internal/transport/wire"
	"github.com/heartmarshall/studio-bookings/pkg/ctxutil"
)

const (
	defaultTimeout  = 5 * time.Second
	maxResponseBody = 4 << 20
	requestIDHeader = "X-Request-Id"
)

// ErrRateLimited is returned when the server answers 429.
var ErrRateLimited = errors.New("rate limited")

// APIError is a non-2xx answer from the server. It unwraps to the domain
// sentinel matching the status code, so callers can use errors.Is.
type APIError struct {
	StatusCode int
	Message    string
	err        error
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api: status %d", e.StatusCode)
	}
	return fmt.Sprintf("api: status %d: %s", e.StatusCode, e.Message)
}

func (e *APIError) Unwrap() error { return e.err }

// Client talks to the bookings HTTP API. Every request is bounded by the
// configured timeout; there are no retries.
type Client struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
	log        *slog.Logger
}

// NewClient creates a Client for the API at baseURL.
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
		timeout:    timeout,
		log:        logger.With("component", "operator.client"),
	}
}

// Login exchanges credentials for an operator session.
func (c *Client) Login(ctx context.Context, email, password string) (*domain.OperatorSession, error) {
	var resp wire.LoginResponse
	err := c.do(ctx, http.MethodPost, "/api/admin/login", "", wire.LoginRequest{Email: email, Password: password}, &resp)
	if err != nil {
		return nil, fmt.Errorf("operator.Login: %w", err)
	}

	admin, err := adminFromWire(resp.Admin)
	if err != nil {
		return nil, fmt.Errorf("operator.Login: %w", err)
	}
	return &domain.OperatorSession{Token: resp.Token, Admin: admin, ExpiresAt: resp.ExpiresAt}, nil
}

// Logout revokes the session on the server.
func (c *Client) Logout(ctx context.Context, sess *domain.OperatorSession) error {
	token, err := tokenOf(sess)
	if err != nil {
		return fmt.Errorf("operator.Logout: %w", err)
	}
	if err := c.do(ctx, http.MethodPost, "/api/admin/logout", token, nil, nil); err != nil {
		return fmt.Errorf("operator.Logout: %w", err)
	}
	return nil
}

// Me returns the admin behind the session.
func (c *Client) Me(ctx context.Context, sess *domain.OperatorSession) (*domain.Admin, error) {
	token, err := tokenOf(sess)
	if err != nil {
		return nil, fmt.Errorf("operator.Me: %w", err)
	}
	var resp wire.AdminResponse
	if err := c.do(ctx, http.MethodGet, "/api/admin/me", token, nil, &resp); err != nil {
		return nil, fmt.Errorf("operator.Me: %w", err)
	}
	admin, err := adminFromWire(resp.Admin)
	if err != nil {
		return nil, fmt.Errorf("operator.Me: %w", err)
	}
	return &admin, nil
}

// List fetches every record of kind, optionally narrowed to one status.
// An empty status means all.
func (c *Client) List(ctx context.Context, sess *domain.OperatorSession, kind domain.Kind, status domain.Status) ([]domain.Record, error) {
	token, err := tokenOf(sess)
	if err != nil {
		return nil, fmt.Errorf("operator.List: %w", err)
	}

	path := "/api/admin/" + kind.Plural()
	if status != "" {
		path += "?" + url.Values{"status": {status.String()}}.Encode()
	}

	var resp wire.ListResponse
	if err := c.do(ctx, http.MethodGet, path, token, nil, &resp); err != nil {
		return nil, fmt.Errorf("operator.List %s: %w", kind, err)
	}

	recs, err := wire.ToDomainRecords(resp.Records(kind))
	if err != nil {
		return nil, fmt.Errorf("operator.List %s: %w", kind, err)
	}
	return recs, nil
}

// SetStatus moves one record. When expected is non-nil the server rejects
// the change with a conflict unless the record is still in that status.
func (c *Client) SetStatus(ctx context.Context, sess *domain.OperatorSession, kind domain.Kind, id string, status domain.Status, expected *domain.Status) (domain.Record, error) {
	token, err := tokenOf(sess)
	if err != nil {
		return domain.Record{}, fmt.Errorf("operator.SetStatus: %w", err)
	}

	body := wire.StatusRequest{Status: status.String()}
	if expected != nil {
		body.ExpectedStatus = expected.String()
	}

	var resp wire.RecordResponse
	path := "/api/admin/" + kind.Plural() + "/" + url.PathEscape(id) + "/status"
	if err := c.do(ctx, http.MethodPut, path, token, body, &resp); err != nil {
		return domain.Record{}, fmt.Errorf("operator.SetStatus %s %s: %w", kind, id, err)
	}

	rec, err := resp.Data.ToDomain()
	if err != nil {
		return domain.Record{}, fmt.Errorf("operator.SetStatus %s %s: %w", kind, id, err)
	}
	return rec, nil
}

// Stats fetches the server-side dashboard aggregate.
func (c *Client) Stats(ctx context.Context, sess *domain.OperatorSession) (domain.Stats, error) {
	token, err := tokenOf(sess)
	if err != nil {
		return domain.Stats{}, fmt.Errorf("operator.Stats: %w", err)
	}
	var resp wire.StatsResponse
	if err := c.do(ctx, http.MethodGet, "/api/admin/stats", token, nil, &resp); err != nil {
		return domain.Stats{}, fmt.Errorf("operator.Stats: %w", err)
	}
	return resp.Stats.ToDomain(), nil
}

// SubmitAppointment posts the public appointment form.
func (c *Client) SubmitAppointment(ctx context.Context, req wire.AppointmentRequest) (domain.Record, error) {
	return c.submit(ctx, "/api/appointments", req)
}

// SubmitEnrollment posts the public class enrollment form.
func (c *Client) SubmitEnrollment(ctx context.Context, req wire.EnrollmentRequest) (domain.Record, error) {
	return c.submit(ctx, "/api/classes", req)
}

func (c *Client) submit(ctx context.Context, path string, body any) (domain.Record, error) {
	var resp wire.RecordResponse
	if err := c.do(ctx, http.MethodPost, path, "", body, &resp); err != nil {
		return domain.Record{}, fmt.Errorf("operator.Submit: %w", err)
	}
	rec, err := resp.Data.ToDomain()
	if err != nil {
		return domain.Record{}, fmt.Errorf("operator.Submit: %w", err)
	}
	return rec, nil
}

// do sends one request and decodes a 2xx body into out (when non-nil).
func (c *Client) do(ctx context.Context, method, path, token string, body, out any) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var rdr io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		rdr = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rdr)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if id := ctxutil.RequestIDFromCtx(ctx); id != "" {
		req.Header.Set(requestIDHeader, id)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.DebugContext(ctx, "api request failed",
			slog.String("method", method),
			slog.String("path", path),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}

	c.log.DebugContext(ctx, "api request",
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", resp.StatusCode),
		slog.Duration("duration", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp.StatusCode, data)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// decodeError maps an error envelope back onto the domain sentinels.
func decodeError(status int, data []byte) error {
	var env wire.ErrorResponse
	_ = json.Unmarshal(data, &env)

	apiErr := &APIError{StatusCode: status, Message: env.Message}
	switch status {
	case http.StatusBadRequest:
		switch {
		case len(env.Errors) > 0:
			fields := make([]domain.FieldError, 0, len(env.Errors))
			for _, f := range env.Errors {
				fields = append(fields, domain.FieldError{Field: f.Field, Message: f.Message})
			}
			apiErr.err = domain.NewValidationErrors(fields)
		case env.Message == "invalid status":
			apiErr.err = domain.ErrInvalidStatus
		default:
			apiErr.err = domain.ErrValidation
		}
	case http.StatusUnauthorized:
		apiErr.err = domain.ErrUnauthorized
	case http.StatusNotFound:
		apiErr.err = domain.ErrNotFound
	case http.StatusConflict:
		if env.Message == "status transition not allowed" {
			apiErr.err = domain.ErrTransitionNotAllowed
		} else {
			apiErr.err = domain.ErrConflict
		}
	case http.StatusTooManyRequests:
		apiErr.err = ErrRateLimited
	}
	return apiErr
}

func tokenOf(sess *domain.OperatorSession) (string, error) {
	if sess == nil || strings.TrimSpace(sess.Token) == "" {
		return "", domain.ErrUnauthorized
	}
	return sess.Token, nil
}

func adminFromWire(a wire.Admin) (domain.Admin, error) {
	id, err := uuid.Parse(a.ID)
	if err != nil {
		return domain.Admin{}, fmt.Errorf("admin id %q: %w", a.ID, err)
	}
	return domain.Admin{ID: id, Name: a.Name, Email: a.Email}, nil
}
