package httpx

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// Logger returns a middleware that logs one line per request, tagged with
// a generated request id.
func Logger() func(handler http.Handler) http.Handler {
	return func(handler http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			requestID := uuid.NewString()

			saw := &statusAwareResponseWriter{ResponseWriter: w}
			handler.ServeHTTP(saw, r)

			status := saw.status
			if status == 0 {
				status = http.StatusOK
			}

			slog.InfoContext(r.Context(), "HTTP request",
				"request_id", requestID,
				"method", r.Method,
				"path", r.URL.Path,
				"status", status,
				"duration_ms", time.Since(start).Milliseconds())
		})
	}
}
