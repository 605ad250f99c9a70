// Package errors provides standardized error handling for the ops toolkit.
package errors

import (
	"fmt"
	"strings"
	"time"
)

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	// Toolchain / installer
	ErrCodeTectonicNotFound      ErrorCode = "TECTONIC_NOT_FOUND"
	ErrCodePackageManagerMissing ErrorCode = "PACKAGE_MANAGER_MISSING"
	ErrCodeUnsupportedPlatform   ErrorCode = "UNSUPPORTED_PLATFORM"
	ErrCodeInstallCommandFailed  ErrorCode = "INSTALL_COMMAND_FAILED"

	// Credentials
	ErrCodeCredentialsFileMissing ErrorCode = "CREDENTIALS_FILE_MISSING"
	ErrCodeCredentialsInvalid     ErrorCode = "CREDENTIALS_INVALID"
	ErrCodeTokenExpired           ErrorCode = "TOKEN_EXPIRED"

	// Configuration / registry
	ErrCodeConfigInvalid   ErrorCode = "CONFIG_INVALID"
	ErrCodeRegistryInvalid ErrorCode = "REGISTRY_INVALID"

	// Storage / network
	ErrCodeSessionStoreUnavailable ErrorCode = "SESSION_STORE_UNAVAILABLE"
	ErrCodeProbeTimeout            ErrorCode = "PROBE_TIMEOUT"
	ErrCodeProbeFailed             ErrorCode = "PROBE_FAILED"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// ==========================
// Error Constructors
// ==========================

// NewTectonicNotFoundError reports that the Tectonic binary is not on PATH.
func NewTectonicNotFoundError(binary string) *StandardError {
	return &StandardError{
		Code:      ErrCodeTectonicNotFound,
		Message:   "Tectonic binary not found on PATH",
		Details:   fmt.Sprintf("binary: %s", binary),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewPackageManagerMissingError reports that no supported package manager exists.
func NewPackageManagerMissingError(manager string) *StandardError {
	return &StandardError{
		Code:      ErrCodePackageManagerMissing,
		Message:   "Required package manager not found",
		Details:   fmt.Sprintf("manager: %s", manager),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewUnsupportedPlatformError reports an OS the installer cannot handle.
func NewUnsupportedPlatformError(goos string) *StandardError {
	return &StandardError{
		Code:      ErrCodeUnsupportedPlatform,
		Message:   "No automated install path for this platform",
		Details:   fmt.Sprintf("os: %s", goos),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewInstallCommandFailedError wraps a failed package manager invocation.
func NewInstallCommandFailedError(command string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeInstallCommandFailed,
		Message:   "Install command failed",
		Details:   fmt.Sprintf("command: %s, error: %s", command, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewCredentialsFileMissingError reports a missing credentials or token file.
func NewCredentialsFileMissingError(path string) *StandardError {
	return &StandardError{
		Code:      ErrCodeCredentialsFileMissing,
		Message:   "Credentials file not found",
		Details:   fmt.Sprintf("path: %s", path),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewCredentialsInvalidError reports a credentials file that failed validation.
func NewCredentialsInvalidError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeCredentialsInvalid,
		Message:   "Credentials file failed validation",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewTokenExpiredError reports an OAuth token past its expiry.
func NewTokenExpiredError(expiry time.Time) *StandardError {
	return &StandardError{
		Code:      ErrCodeTokenExpired,
		Message:   "OAuth token has expired, re-authentication needed",
		Details:   fmt.Sprintf("expiry: %s", expiry.Format(time.RFC3339)),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewConfigInvalidError reports a configuration validation failure.
func NewConfigInvalidError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeConfigInvalid,
		Message:   "Configuration validation failed",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewRegistryInvalidError reports a check-registry file that failed validation.
func NewRegistryInvalidError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeRegistryInvalid,
		Message:   "Check registry failed validation",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewSessionStoreUnavailableError wraps a session-store open/write failure.
func NewSessionStoreUnavailableError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeSessionStoreUnavailable,
		Message:   "Session store unavailable",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewProbeTimeoutError reports a reachability probe that exceeded its deadline.
func NewProbeTimeoutError(service string) *StandardError {
	return &StandardError{
		Code:      ErrCodeProbeTimeout,
		Message:   fmt.Sprintf("Service '%s' probe timeout", service),
		Details:   "probe exceeded timeout threshold",
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewProbeFailedError wraps a failed reachability probe.
func NewProbeFailedError(service string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeProbeFailed,
		Message:   fmt.Sprintf("Service '%s' unreachable", service),
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// Utility Functions
// ==========================

// IsRetryableErrorCode checks if an error code is retryable.
func IsRetryableErrorCode(code ErrorCode) bool {
	switch code {
	case ErrCodeInstallCommandFailed,
		ErrCodeSessionStoreUnavailable,
		ErrCodeProbeTimeout,
		ErrCodeProbeFailed:
		return true
	default:
		return false
	}
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "TECTONIC") || strings.Contains(codeStr, "PACKAGE") ||
		strings.Contains(codeStr, "PLATFORM") || strings.Contains(codeStr, "INSTALL"):
		return "TOOLCHAIN"
	case strings.Contains(codeStr, "CREDENTIALS") || strings.Contains(codeStr, "TOKEN"):
		return "CREDENTIALS"
	case strings.Contains(codeStr, "CONFIG") || strings.Contains(codeStr, "REGISTRY"):
		return "CONFIG"
	case strings.Contains(codeStr, "SESSION"):
		return "STORAGE"
	case strings.Contains(codeStr, "PROBE"):
		return "NETWORK"
	default:
		return "OTHER"
	}
}
