// internal/server/server.go
package server

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"jobsearch-ops/internal/common/config"
	"jobsearch-ops/internal/common/logger"
	"jobsearch-ops/internal/models"
)

// ReportSource provides the latest check report. Doctor satisfies it.
type ReportSource interface {
	Latest() *models.Report
}

// Server is the container-facing HTTP surface: liveness, readiness, the
// latest check report, and Prometheus metrics.
type Server struct {
	config  config.ServerConfig
	reports ReportSource
	logger  logger.Logger
	httpSrv *http.Server
}

func New(cfg config.ServerConfig, reports ReportSource, log logger.Logger) *Server {
	s := &Server{
		config:  cfg,
		reports: reports,
		logger:  log.WithFields(map[string]interface{}{"component": "server"}),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", s.handleHealthz)
	mux.HandleFunc("GET /readyz", s.handleReadyz)
	mux.HandleFunc("GET /api/v1/report", s.handleReport)
	mux.Handle("GET /metrics", promhttp.Handler())

	s.httpSrv = &http.Server{
		Addr:         cfg.Addr(),
		Handler:      s.withMiddleware(mux),
		ReadTimeout:  config.GetDuration(cfg.ReadTimeout),
		WriteTimeout: config.GetDuration(cfg.WriteTimeout),
	}

	return s
}

// Start blocks serving until the listener fails or Shutdown is called.
func (s *Server) Start() error {
	s.logger.Info("http server listening", map[string]interface{}{
		"addr": s.config.Addr(),
	})
	err := s.httpSrv.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Shutdown drains in-flight requests within the configured deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	deadline, cancel := context.WithTimeout(ctx, config.GetDuration(s.config.ShutdownTimeout))
	defer cancel()
	return s.httpSrv.Shutdown(deadline)
}

// Handler exposes the full middleware-wrapped handler (used by tests).
func (s *Server) Handler() http.Handler {
	return s.httpSrv.Handler
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleReadyz(w http.ResponseWriter, r *http.Request) {
	report := s.reports.Latest()
	if report == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "starting",
			"reason": "no check run has completed yet",
		})
		return
	}
	if !report.Healthy() {
		writeJSON(w, http.StatusServiceUnavailable, map[string]interface{}{
			"status": "not-ready",
			"runId":  report.RunID,
			"failed": report.Failed,
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status": "ready",
		"runId":  report.RunID,
	})
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	report := s.reports.Latest()
	if report == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"error": "no check run has completed yet",
		})
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
