// internal/models/report.go
package models

import (
	"time"

	apperrors "jobsearch-ops/internal/common/errors"
)

// CheckResult is the outcome of a single environment check.
type CheckResult struct {
	ID       string                 `json:"id"`
	Category string                 `json:"category"`
	Severity Severity               `json:"severity"`
	Status   Status                 `json:"status"`
	Code     apperrors.ErrorCode    `json:"code,omitempty"`
	Detail   string                 `json:"detail,omitempty"`
	Error    string                 `json:"error,omitempty"`
	Observed map[string]interface{} `json:"observed,omitempty"`
	Duration time.Duration          `json:"durationNs"`
}

// Fatal reports whether this result should block readiness.
func (r *CheckResult) Fatal() bool {
	return r.Status == StatusFail && r.Severity == SeverityFatal
}

// Report aggregates the results of one suite run.
type Report struct {
	RunID      string        `json:"runId"`
	StartedAt  time.Time     `json:"startedAt"`
	FinishedAt time.Time     `json:"finishedAt"`
	Status     Status        `json:"status"`
	Passed     int           `json:"passed"`
	Warned     int           `json:"warned"`
	Failed     int           `json:"failed"`
	Results    []CheckResult `json:"results"`
}

// Healthy reports whether the run has no fatal failures. Warnings and
// non-fatal failures do not affect readiness.
func (r *Report) Healthy() bool {
	for i := range r.Results {
		if r.Results[i].Fatal() {
			return false
		}
	}
	return true
}

// Summarize recomputes the counters and overall status from the results.
// Non-fatal failures degrade the overall status to warn, not fail.
func (r *Report) Summarize() {
	r.Passed, r.Warned, r.Failed = 0, 0, 0
	r.Status = StatusPass

	for i := range r.Results {
		res := &r.Results[i]
		switch res.Status {
		case StatusPass:
			r.Passed++
		case StatusWarn:
			r.Warned++
			r.Status = r.Status.Worse(StatusWarn)
		case StatusFail:
			r.Failed++
			if res.Severity == SeverityFatal {
				r.Status = r.Status.Worse(StatusFail)
			} else {
				r.Status = r.Status.Worse(StatusWarn)
			}
		}
	}
}
