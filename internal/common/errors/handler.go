// internal/common/errors/handler.go
package errors

import (
	"errors"
	"time"
)

// ErrorHandler normalizes arbitrary errors into StandardError and maps them
// to process exit codes for the CLI entrypoints.
type ErrorHandler struct {
	logger Logger
}

type Logger interface {
	Error(msg string, fields map[string]interface{})
}

func NewErrorHandler(logger Logger) *ErrorHandler {
	return &ErrorHandler{logger: logger}
}

// Normalize ensures we always have a StandardError.
func (h *ErrorHandler) Normalize(err error) *StandardError {
	var stdErr *StandardError
	if errors.As(err, &stdErr) {
		return stdErr
	}
	return &StandardError{
		Code:      "INTERNAL_ERROR",
		Message:   "Unexpected error",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// Handle logs the error and returns the exit code the process should use.
// Unrecoverable conditions terminate non-zero; there is no partial-failure
// recovery on the CLI paths.
func (h *ErrorHandler) Handle(err error) int {
	if err == nil {
		return 0
	}

	stdErr := h.Normalize(err)
	h.logger.Error(stdErr.Message, map[string]interface{}{
		"errorCode": string(stdErr.Code),
		"category":  GetErrorCategory(stdErr.Code),
		"details":   stdErr.Details,
		"retryable": stdErr.Retryable,
	})

	return 1
}
