// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ChecksCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "doctor_checks_completed_total",
			Help: "Total number of checks completed by id",
		},
		[]string{"check_id"},
	)

	ChecksFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "doctor_checks_failed_total",
			Help: "Total number of checks failed by id and category",
		},
		[]string{"check_id", "category"},
	)

	CheckDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "doctor_check_duration_seconds",
			Help: "Duration of check execution in seconds",
		},
		[]string{"check_id"},
	)

	SuiteStatus = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "doctor_suite_healthy",
			Help: "1 when the latest suite run has no fatal failures",
		},
	)

	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests by path and status",
		},
		[]string{"path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "http_request_duration_seconds",
			Help: "Duration of HTTP request handling in seconds",
		},
		[]string{"path"},
	)
)
