package middleware

import (
	"net/http"
	"strings"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// Logger returns a middleware that logs every request with its status and duration.
func Logger(logger *zap.SugaredLogger) func(http.Handler) http.Handler {
	// Strip CR/LF from user-supplied values to prevent log injection
	sanitize := strings.NewReplacer("\n", "", "\r", "").Replace

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// Capture the status code written by the handler
			wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

			next.ServeHTTP(wrapped, r)

			fields := []any{
				"method", sanitize(r.Method),
				"path", sanitize(r.URL.Path),
				"status", wrapped.statusCode,
				"duration", time.Since(start),
			}
			if id := chimiddleware.GetReqID(r.Context()); id != "" {
				fields = append(fields, "request_id", id)
			}

			switch {
			case wrapped.statusCode >= http.StatusInternalServerError:
				logger.Errorw("request failed", fields...)
			case wrapped.statusCode >= http.StatusBadRequest:
				logger.Warnw("request rejected", fields...)
			default:
				logger.Infow("request handled", fields...)
			}
		})
	}
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
