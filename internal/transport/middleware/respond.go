package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/heartmarshall/studio-bookings/internal/transport/wire"
)

// writeError writes the API error envelope. Middleware answers in the same
// shape as the handlers so clients parse one format.
func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(wire.ErrorResponse{Success: false, Message: message})
}
