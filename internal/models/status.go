// internal/models/status.go
package models

// Status is the outcome of a single check or a whole suite run.
type Status string

const (
	StatusPass Status = "pass"
	StatusWarn Status = "warn"
	StatusFail Status = "fail"
)

// Valid reports whether s is a known status value.
func (s Status) Valid() bool {
	switch s {
	case StatusPass, StatusWarn, StatusFail:
		return true
	}
	return false
}

// Worse returns the more severe of the two statuses.
func (s Status) Worse(other Status) Status {
	if s.rank() >= other.rank() {
		return s
	}
	return other
}

func (s Status) rank() int {
	switch s {
	case StatusFail:
		return 2
	case StatusWarn:
		return 1
	default:
		return 0
	}
}

// Severity classifies how a check failure affects readiness.
type Severity string

const (
	SeverityFatal   Severity = "fatal"
	SeverityWarning Severity = "warning"
)

// Valid reports whether v is a known severity value.
func (v Severity) Valid() bool {
	return v == SeverityFatal || v == SeverityWarning
}
