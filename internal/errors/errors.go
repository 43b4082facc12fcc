// Package errors classifies failures by retryability so the background
// cleanup queue can decide whether to retry a job. Foreground SDK calls do
// not retry; they propagate these errors unchanged.
package errors

import (
	stderrors "errors"
	"fmt"
)

// Category determines how the cleanup queue treats a failed job.
type Category int

const (
	// Recoverable failures are retried with exponential backoff: 5xx
	// responses, 408/429, and network-level errors.
	Recoverable Category = iota

	// Irrecoverable failures are dropped immediately: the remaining 4xx
	// client errors.
	Irrecoverable
)

func (c Category) String() string {
	switch c {
	case Recoverable:
		return "recoverable"
	case Irrecoverable:
		return "irrecoverable"
	default:
		return fmt.Sprintf("unknown(%d)", int(c))
	}
}

// ClassifiedError wraps an error with retryability metadata.
type ClassifiedError struct {
	Category   Category
	StatusCode int    // HTTP status, 0 for network-level errors
	Body       string // response body, kept for debugging
	Underlying error
}

func (e *ClassifiedError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("[%s] http %d: %v", e.Category, e.StatusCode, e.Underlying)
	}
	return fmt.Sprintf("[%s] %v", e.Category, e.Underlying)
}

func (e *ClassifiedError) Unwrap() error { return e.Underlying }

// NewHTTPError classifies a non-success HTTP response.
func NewHTTPError(operation string, statusCode int, body string) *ClassifiedError {
	return &ClassifiedError{
		Category:   categoryFor(statusCode),
		StatusCode: statusCode,
		Body:       body,
		Underlying: fmt.Errorf("%s: status %d", operation, statusCode),
	}
}

// NewNetworkError classifies a transport-level failure; these may be
// transient, so they are always recoverable.
func NewNetworkError(operation string, err error) *ClassifiedError {
	return &ClassifiedError{
		Category:   Recoverable,
		Underlying: fmt.Errorf("%s: %w", operation, err),
	}
}

// IsIrrecoverable reports whether err (or anything it wraps) is classified
// as not worth retrying.
func IsIrrecoverable(err error) bool {
	var ce *ClassifiedError
	if stderrors.As(err, &ce) {
		return ce.Category == Irrecoverable
	}
	return false
}

func categoryFor(statusCode int) Category {
	switch {
	case statusCode == 408 || statusCode == 429:
		return Recoverable
	case statusCode >= 400 && statusCode < 500:
		return Irrecoverable
	default:
		// 5xx and anything unexpected: be conservative and retry.
		return Recoverable
	}
}
