// Package errors provides standardized error handling for the data
// collection pipeline.
package errors

import (
	"errors"
	"fmt"
	"time"
)

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeFetchFailed       ErrorCode = "FETCH_FAILED"
	ErrCodeFetchTimeout      ErrorCode = "FETCH_TIMEOUT"
	ErrCodeSourceUnavailable ErrorCode = "SOURCE_UNAVAILABLE"
	ErrCodeUnexpectedContent ErrorCode = "UNEXPECTED_CONTENT"

	ErrCodeParseFailed     ErrorCode = "PARSE_FAILED"
	ErrCodeNormalizeFailed ErrorCode = "NORMALIZE_FAILED"

	ErrCodeInvalidParams    ErrorCode = "INVALID_PARAMS"
	ErrCodeUnknownCollector ErrorCode = "UNKNOWN_COLLECTOR"

	ErrCodeCacheUnavailable ErrorCode = "CACHE_UNAVAILABLE"
	ErrCodeInternal         ErrorCode = "INTERNAL_ERROR"
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

// NewFetchFailedError creates a retryable fetch error.
func NewFetchFailedError(source string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeFetchFailed,
		Message:   "Failed to fetch from source",
		Details:   fmt.Sprintf("source: %s, error: %s", source, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewFetchTimeoutError creates a retryable timeout error.
func NewFetchTimeoutError(source string) *StandardError {
	return &StandardError{
		Code:      ErrCodeFetchTimeout,
		Message:   "Source fetch timed out",
		Details:   fmt.Sprintf("source: %s", source),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewSourceUnavailableError creates a retryable availability error.
func NewSourceUnavailableError(source string, statusCode int) *StandardError {
	return &StandardError{
		Code:      ErrCodeSourceUnavailable,
		Message:   "Source is unavailable",
		Details:   fmt.Sprintf("source: %s, status: %d", source, statusCode),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewUnexpectedContentError creates a non-retryable content-type error.
func NewUnexpectedContentError(source, contentType string) *StandardError {
	return &StandardError{
		Code:      ErrCodeUnexpectedContent,
		Message:   "Source returned unexpected content",
		Details:   fmt.Sprintf("source: %s, content-type: %s", source, contentType),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewParseFailedError creates a non-retryable parse error.
func NewParseFailedError(source string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeParseFailed,
		Message:   "Failed to parse source payload",
		Details:   fmt.Sprintf("source: %s, error: %s", source, err.Error()),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewNormalizeFailedError creates a non-retryable normalization error.
func NewNormalizeFailedError(collector string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeNormalizeFailed,
		Message:   "Failed to normalize raw item",
		Details:   fmt.Sprintf("collector: %s, error: %s", collector, err.Error()),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewInvalidParamsError creates a non-retryable parameter validation error.
func NewInvalidParamsError(collector, details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidParams,
		Message:   "Invalid collector parameters",
		Details:   fmt.Sprintf("collector: %s, %s", collector, details),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewCacheUnavailableError creates a retryable cache error.
func NewCacheUnavailableError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeCacheUnavailable,
		Message:   "Cache backend unavailable",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewInternalError wraps an unexpected error.
func NewInternalError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeInternal,
		Message:   "Unexpected internal error",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// IsRetryable reports whether err should be retried by the collection
// runner. Unclassified errors are treated as retryable so transient
// network failures surfaced by the standard library still get their
// backoff attempts.
func IsRetryable(err error) bool {
	var stdErr *StandardError
	if errors.As(err, &stdErr) {
		return stdErr.Retryable
	}
	return true
}

// CodeOf extracts the error code, defaulting to INTERNAL_ERROR.
func CodeOf(err error) ErrorCode {
	var stdErr *StandardError
	if errors.As(err, &stdErr) {
		return stdErr.Code
	}
	return ErrCodeInternal
}
