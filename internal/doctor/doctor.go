// internal/doctor/doctor.go
package doctor

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"jobsearch-ops/internal/common/logger"
	"jobsearch-ops/internal/common/metrics"
	"jobsearch-ops/internal/common/observability"
	"jobsearch-ops/internal/models"
	"jobsearch-ops/pkg/registry"
)

// Check is a single environment verification.
type Check interface {
	ID() string
	Run(ctx context.Context) *models.CheckResult
}

type entry struct {
	check Check
	def   registry.CheckDefinition
}

// Doctor runs the registered check suite and keeps the latest report.
type Doctor struct {
	entries        []entry
	defaultTimeout time.Duration
	logger         logger.Logger
	obs            *observability.Observability

	mu     sync.RWMutex
	latest *models.Report
}

func New(defaultTimeout time.Duration, obs *observability.Observability, log logger.Logger) *Doctor {
	return &Doctor{
		defaultTimeout: defaultTimeout,
		obs:            obs,
		logger:         log.WithFields(map[string]interface{}{"component": "doctor"}),
	}
}

// Register adds a check with its registry definition. Registration order is
// report order.
func (d *Doctor) Register(def registry.CheckDefinition, check Check) {
	d.entries = append(d.entries, entry{check: check, def: def})
}

// Checks returns the number of registered checks.
func (d *Doctor) Checks() int {
	return len(d.entries)
}

// Run executes all registered checks concurrently and returns the report.
// A check timing out or panicking yields a fail result for that check; the
// run itself always completes.
func (d *Doctor) Run(ctx context.Context) *models.Report {
	report := &models.Report{
		RunID:     uuid.NewString(),
		StartedAt: time.Now().UTC(),
		Results:   make([]models.CheckResult, len(d.entries)),
	}

	g, gctx := errgroup.WithContext(ctx)
	for idx, e := range d.entries {
		g.Go(func() error {
			report.Results[idx] = *d.runOne(gctx, e)
			return nil
		})
	}
	g.Wait()

	report.FinishedAt = time.Now().UTC()
	report.Summarize()

	d.record(ctx, report)

	d.mu.Lock()
	d.latest = report
	d.mu.Unlock()

	return report
}

// Latest returns the most recent report, or nil before the first run.
func (d *Doctor) Latest() *models.Report {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.latest
}

func (d *Doctor) runOne(ctx context.Context, e entry) (result *models.CheckResult) {
	timeout := e.def.TimeoutOrDefault(d.defaultTimeout)
	checkCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	defer func() { d.finalize(result, e.def) }()

	done := make(chan *models.CheckResult, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- &models.CheckResult{
					ID:     e.check.ID(),
					Status: models.StatusFail,
					Detail: "check panicked",
					Error:  fmt.Sprintf("%v", r),
				}
			}
		}()
		done <- e.check.Run(checkCtx)
	}()

	select {
	case result = <-done:
	case <-checkCtx.Done():
		result = &models.CheckResult{
			ID:     e.check.ID(),
			Status: models.StatusFail,
			Detail: fmt.Sprintf("check timed out after %s", timeout),
			Error:  checkCtx.Err().Error(),
		}
	}
	result.Duration = time.Since(start)
	return result
}

// finalize stamps registry metadata onto the result and records metrics.
func (d *Doctor) finalize(result *models.CheckResult, def registry.CheckDefinition) {
	if result == nil {
		return
	}
	if result.Category == "" {
		result.Category = def.Category
	}
	result.Severity = models.Severity(def.Severity)
	if !result.Severity.Valid() {
		result.Severity = models.SeverityWarning
	}

	metrics.ChecksCompleted.WithLabelValues(result.ID).Inc()
	metrics.CheckDuration.WithLabelValues(result.ID).Observe(result.Duration.Seconds())
	if result.Status == models.StatusFail {
		metrics.ChecksFailed.WithLabelValues(result.ID, result.Category).Inc()
		d.logger.Warn("check failed", map[string]interface{}{
			"checkId": result.ID,
			"detail":  result.Detail,
			"error":   result.Error,
		})
	}
}

func (d *Doctor) record(ctx context.Context, report *models.Report) {
	if report.Healthy() {
		metrics.SuiteStatus.Set(1)
	} else {
		metrics.SuiteStatus.Set(0)
	}

	if d.obs != nil {
		status := string(report.Status)
		d.obs.RecordSuiteRun(ctx, status)
		d.obs.RecordSuiteDuration(ctx, report.FinishedAt.Sub(report.StartedAt), status)
	}

	d.logger.Info("suite run complete", map[string]interface{}{
		"runId":  report.RunID,
		"status": string(report.Status),
		"passed": report.Passed,
		"warned": report.Warned,
		"failed": report.Failed,
	})
}
