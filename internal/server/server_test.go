// internal/server/server_test.go
package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobsearch-ops/internal/common/config"
	"jobsearch-ops/internal/common/logger"
	"jobsearch-ops/internal/models"
)

type stubReports struct {
	report *models.Report
}

func (s *stubReports) Latest() *models.Report { return s.report }

func createServer(t *testing.T, reports ReportSource) *Server {
	t.Helper()
	cfg := config.ServerConfig{Host: "127.0.0.1", Port: 8080, ShutdownTimeout: 1000}
	return New(cfg, reports, logger.NewTestLogger(t))
}

func doRequest(t *testing.T, srv *Server, method, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func healthyReport() *models.Report {
	r := &models.Report{
		RunID: "run-1",
		Results: []models.CheckResult{
			{ID: "tectonic-binary", Status: models.StatusPass, Severity: models.SeverityFatal},
		},
	}
	r.Summarize()
	return r
}

func unhealthyReport() *models.Report {
	r := &models.Report{
		RunID: "run-2",
		Results: []models.CheckResult{
			{ID: "tectonic-binary", Status: models.StatusFail, Severity: models.SeverityFatal},
		},
	}
	r.Summarize()
	return r
}

func TestHealthz(t *testing.T) {
	srv := createServer(t, &stubReports{})

	rec := doRequest(t, srv, http.MethodGet, "/healthz")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
}

func TestReadyz(t *testing.T) {
	tests := []struct {
		name           string
		report         *models.Report
		expectedCode   int
		expectedStatus string
	}{
		{
			name:           "before first run",
			report:         nil,
			expectedCode:   http.StatusServiceUnavailable,
			expectedStatus: "starting",
		},
		{
			name:           "healthy",
			report:         healthyReport(),
			expectedCode:   http.StatusOK,
			expectedStatus: "ready",
		},
		{
			name:           "fatal failure",
			report:         unhealthyReport(),
			expectedCode:   http.StatusServiceUnavailable,
			expectedStatus: "not-ready",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := createServer(t, &stubReports{report: tt.report})

			rec := doRequest(t, srv, http.MethodGet, "/readyz")
			assert.Equal(t, tt.expectedCode, rec.Code)

			var body map[string]interface{}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.expectedStatus, body["status"])
		})
	}
}

func TestReport(t *testing.T) {
	t.Run("before first run", func(t *testing.T) {
		srv := createServer(t, &stubReports{})

		rec := doRequest(t, srv, http.MethodGet, "/api/v1/report")
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})

	t.Run("serves the latest report", func(t *testing.T) {
		srv := createServer(t, &stubReports{report: healthyReport()})

		rec := doRequest(t, srv, http.MethodGet, "/api/v1/report")
		require.Equal(t, http.StatusOK, rec.Code)

		var report models.Report
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
		assert.Equal(t, "run-1", report.RunID)
		require.Len(t, report.Results, 1)
		assert.Equal(t, "tectonic-binary", report.Results[0].ID)
	})
}

func TestMetricsEndpoint(t *testing.T) {
	srv := createServer(t, &stubReports{})

	rec := doRequest(t, srv, http.MethodGet, "/metrics")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}

func TestRequestIDPropagation(t *testing.T) {
	srv := createServer(t, &stubReports{})

	t.Run("generated when absent", func(t *testing.T) {
		rec := doRequest(t, srv, http.MethodGet, "/healthz")
		assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))
	})

	t.Run("echoed when present", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
		req.Header.Set("X-Request-Id", "req-123")
		rec := httptest.NewRecorder()
		srv.Handler().ServeHTTP(rec, req)

		assert.Equal(t, "req-123", rec.Header().Get("X-Request-Id"))
	})
}

func TestUnknownRoute(t *testing.T) {
	srv := createServer(t, &stubReports{})

	rec := doRequest(t, srv, http.MethodGet, "/nope")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
