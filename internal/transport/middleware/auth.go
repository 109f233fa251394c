package middleware

import (
	"net/http"
	"strings"

	"github.com/heartmarshall/studio-bookings/pkg/ctxutil"
)

// RequireBearer rejects requests without an Authorization bearer token and
// stores the token in the context. Validating it is left to the service
// layer, which authorizes every operator call itself.
func RequireBearer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := extractBearerToken(r)
		if token == "" {
			w.Header().Set("WWW-Authenticate", `Bearer realm="studio-bookings"`)
			writeError(w, http.StatusUnauthorized, "authentication required")
			return
		}
		ctx := ctxutil.WithToken(r.Context(), token)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func extractBearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	scheme, token, ok := strings.Cut(auth, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
