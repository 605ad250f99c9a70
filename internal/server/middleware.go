// internal/server/middleware.go
package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"jobsearch-ops/internal/common/metrics"
)

// statusRecorder captures the response status for logging and metrics.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (s *Server) withMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := r.Header.Get("X-Request-Id")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set("X-Request-Id", requestID)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		defer func() {
			if err := recover(); err != nil {
				s.logger.Error("handler panic", map[string]interface{}{
					"requestId": requestID,
					"path":      r.URL.Path,
					"panic":     fmt.Sprintf("%v", err),
				})
				http.Error(rec, "internal server error", http.StatusInternalServerError)
			}

			duration := time.Since(start)
			metrics.HTTPRequests.WithLabelValues(r.URL.Path, fmt.Sprintf("%d", rec.status)).Inc()
			metrics.HTTPRequestDuration.WithLabelValues(r.URL.Path).Observe(duration.Seconds())

			s.logger.Debug("request handled", map[string]interface{}{
				"requestId": requestID,
				"method":    r.Method,
				"path":      r.URL.Path,
				"status":    rec.status,
				"duration":  duration.String(),
			})
		}()

		next.ServeHTTP(rec, r)
	})
}
