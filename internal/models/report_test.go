// internal/models/report_test.go
package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusWorse(t *testing.T) {
	assert.Equal(t, StatusFail, StatusPass.Worse(StatusFail))
	assert.Equal(t, StatusFail, StatusFail.Worse(StatusWarn))
	assert.Equal(t, StatusWarn, StatusPass.Worse(StatusWarn))
	assert.Equal(t, StatusPass, StatusPass.Worse(StatusPass))
}

func TestStatusValid(t *testing.T) {
	assert.True(t, StatusPass.Valid())
	assert.True(t, StatusWarn.Valid())
	assert.True(t, StatusFail.Valid())
	assert.False(t, Status("ok").Valid())
}

func TestSeverityValid(t *testing.T) {
	assert.True(t, SeverityFatal.Valid())
	assert.True(t, SeverityWarning.Valid())
	assert.False(t, Severity("critical").Valid())
}

func TestCheckResultFatal(t *testing.T) {
	tests := []struct {
		name     string
		status   Status
		severity Severity
		expected bool
	}{
		{name: "fatal failure", status: StatusFail, severity: SeverityFatal, expected: true},
		{name: "non-fatal failure", status: StatusFail, severity: SeverityWarning, expected: false},
		{name: "fatal check passing", status: StatusPass, severity: SeverityFatal, expected: false},
		{name: "fatal check warning", status: StatusWarn, severity: SeverityFatal, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := &CheckResult{Status: tt.status, Severity: tt.severity}
			assert.Equal(t, tt.expected, res.Fatal())
		})
	}
}

func TestReportSummarize(t *testing.T) {
	tests := []struct {
		name           string
		results        []CheckResult
		expectedStatus Status
		expectedCounts [3]int // passed, warned, failed
		healthy        bool
	}{
		{
			name: "all passing",
			results: []CheckResult{
				{Status: StatusPass, Severity: SeverityFatal},
				{Status: StatusPass, Severity: SeverityWarning},
			},
			expectedStatus: StatusPass,
			expectedCounts: [3]int{2, 0, 0},
			healthy:        true,
		},
		{
			name: "warning degrades overall",
			results: []CheckResult{
				{Status: StatusPass, Severity: SeverityFatal},
				{Status: StatusWarn, Severity: SeverityWarning},
			},
			expectedStatus: StatusWarn,
			expectedCounts: [3]int{1, 1, 0},
			healthy:        true,
		},
		{
			name: "non-fatal failure only warns overall and stays ready",
			results: []CheckResult{
				{Status: StatusPass, Severity: SeverityFatal},
				{Status: StatusFail, Severity: SeverityWarning},
			},
			expectedStatus: StatusWarn,
			expectedCounts: [3]int{1, 0, 1},
			healthy:        true,
		},
		{
			name: "fatal failure fails overall and blocks readiness",
			results: []CheckResult{
				{Status: StatusPass, Severity: SeverityFatal},
				{Status: StatusFail, Severity: SeverityFatal},
			},
			expectedStatus: StatusFail,
			expectedCounts: [3]int{1, 0, 1},
			healthy:        false,
		},
		{
			name:           "empty run",
			results:        nil,
			expectedStatus: StatusPass,
			expectedCounts: [3]int{0, 0, 0},
			healthy:        true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := &Report{Results: tt.results}
			report.Summarize()

			assert.Equal(t, tt.expectedStatus, report.Status)
			assert.Equal(t, tt.expectedCounts[0], report.Passed)
			assert.Equal(t, tt.expectedCounts[1], report.Warned)
			assert.Equal(t, tt.expectedCounts[2], report.Failed)
			assert.Equal(t, tt.healthy, report.Healthy())
		})
	}
}
