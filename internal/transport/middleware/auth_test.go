package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/heartmarshall/studio-bookings/pkg/ctxutil"
)

func TestRequireBearer(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantToken  string
	}{
		{"valid", "Bearer abc.def", http.StatusOK, "abc.def"},
		{"lowercase scheme", "bearer abc.def", http.StatusOK, "abc.def"},
		{"extra spaces", "Bearer   abc.def  ", http.StatusOK, "abc.def"},
		{"missing header", "", http.StatusUnauthorized, ""},
		{"basic scheme", "Basic dXNlcjpwYXNz", http.StatusUnauthorized, ""},
		{"scheme only", "Bearer", http.StatusUnauthorized, ""},
		{"empty token", "Bearer    ", http.StatusUnauthorized, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var gotToken string
			called := false
			handler := RequireBearer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
				gotToken, _ = ctxutil.TokenFromCtx(r.Context())
				w.WriteHeader(http.StatusOK)
			}))

			req := httptest.NewRequest(http.MethodGet, "/api/admin/appointments", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusOK {
				assert.True(t, called)
				assert.Equal(t, tt.wantToken, gotToken)
				return
			}
			assert.False(t, called, "handler must not run without a token")
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			assert.NotEmpty(t, rec.Header().Get("WWW-Authenticate"))
			assert.JSONEq(t, `{"success":false,"message":"authentication required"}`, rec.Body.String())
		})
	}
}
