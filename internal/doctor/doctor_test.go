// internal/doctor/doctor_test.go
package doctor

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobsearch-ops/internal/common/logger"
	"jobsearch-ops/internal/models"
	"jobsearch-ops/pkg/registry"
)

// stubCheck returns a canned result, optionally after a delay.
type stubCheck struct {
	id     string
	status models.Status
	delay  time.Duration
	panics bool
}

func (s *stubCheck) ID() string { return s.id }

func (s *stubCheck) Run(ctx context.Context) *models.CheckResult {
	if s.panics {
		panic("boom")
	}
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			// Keep blocking past the deadline; the runner must not wait for us.
			<-time.After(s.delay)
		}
	}
	return &models.CheckResult{ID: s.id, Status: s.status, Detail: "stub"}
}

func createDoctor(t *testing.T) *Doctor {
	t.Helper()
	return New(5*time.Second, nil, logger.NewTestLogger(t))
}

func def(id, severity string) registry.CheckDefinition {
	return registry.CheckDefinition{ID: id, Category: "test", Severity: severity, Enabled: true}
}

func TestRun_ReportShape(t *testing.T) {
	doc := createDoctor(t)
	doc.Register(def("alpha", "fatal"), &stubCheck{id: "alpha", status: models.StatusPass})
	doc.Register(def("beta", "warning"), &stubCheck{id: "beta", status: models.StatusWarn})
	doc.Register(def("gamma", "fatal"), &stubCheck{id: "gamma", status: models.StatusFail})

	report := doc.Run(context.Background())
	require.NotNil(t, report)

	assert.NotEmpty(t, report.RunID)
	assert.False(t, report.StartedAt.IsZero())
	assert.False(t, report.FinishedAt.Before(report.StartedAt))

	// Registration order is report order even though checks run concurrently.
	require.Len(t, report.Results, 3)
	assert.Equal(t, "alpha", report.Results[0].ID)
	assert.Equal(t, "beta", report.Results[1].ID)
	assert.Equal(t, "gamma", report.Results[2].ID)

	assert.Equal(t, models.StatusFail, report.Status)
	assert.Equal(t, 1, report.Passed)
	assert.Equal(t, 1, report.Warned)
	assert.Equal(t, 1, report.Failed)
	assert.False(t, report.Healthy())
}

func TestRun_SeverityStamping(t *testing.T) {
	doc := createDoctor(t)
	doc.Register(def("fatal-check", "fatal"), &stubCheck{id: "fatal-check", status: models.StatusPass})
	doc.Register(def("warn-check", "warning"), &stubCheck{id: "warn-check", status: models.StatusPass})
	doc.Register(def("typo-check", "severe"), &stubCheck{id: "typo-check", status: models.StatusPass})

	report := doc.Run(context.Background())

	assert.Equal(t, models.SeverityFatal, report.Results[0].Severity)
	assert.Equal(t, models.SeverityWarning, report.Results[1].Severity)
	// Unknown severities downgrade to warning rather than blocking readiness.
	assert.Equal(t, models.SeverityWarning, report.Results[2].Severity)
}

func TestRun_NonFatalFailureStaysHealthy(t *testing.T) {
	doc := createDoctor(t)
	doc.Register(def("optional", "warning"), &stubCheck{id: "optional", status: models.StatusFail})

	report := doc.Run(context.Background())

	assert.Equal(t, models.StatusWarn, report.Status)
	assert.True(t, report.Healthy())
}

func TestRun_Timeout(t *testing.T) {
	doc := createDoctor(t)
	slow := def("slow", "fatal")
	slow.Timeout = "50ms"
	doc.Register(slow, &stubCheck{id: "slow", status: models.StatusPass, delay: 5 * time.Second})

	start := time.Now()
	report := doc.Run(context.Background())

	assert.Less(t, time.Since(start), 2*time.Second, "run must not wait for the stuck check")
	require.Len(t, report.Results, 1)
	assert.Equal(t, models.StatusFail, report.Results[0].Status)
	assert.Contains(t, report.Results[0].Detail, "timed out")
}

func TestRun_PanicIsContained(t *testing.T) {
	doc := createDoctor(t)
	doc.Register(def("panicky", "fatal"), &stubCheck{id: "panicky", panics: true})
	doc.Register(def("steady", "fatal"), &stubCheck{id: "steady", status: models.StatusPass})

	report := doc.Run(context.Background())

	require.Len(t, report.Results, 2)
	assert.Equal(t, models.StatusFail, report.Results[0].Status)
	assert.Equal(t, "check panicked", report.Results[0].Detail)
	assert.Contains(t, report.Results[0].Error, "boom")
	assert.Equal(t, models.StatusPass, report.Results[1].Status)
}

func TestLatest(t *testing.T) {
	doc := createDoctor(t)
	doc.Register(def("alpha", "fatal"), &stubCheck{id: "alpha", status: models.StatusPass})

	assert.Nil(t, doc.Latest(), "no report before the first run")

	report := doc.Run(context.Background())
	assert.Same(t, report, doc.Latest())
}

func TestChecks(t *testing.T) {
	doc := createDoctor(t)
	assert.Equal(t, 0, doc.Checks())

	doc.Register(def("alpha", "fatal"), &stubCheck{id: "alpha"})
	doc.Register(def("beta", "warning"), &stubCheck{id: "beta"})
	assert.Equal(t, 2, doc.Checks())
}
