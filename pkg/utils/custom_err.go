package utils

import (
	"context"
	"errors"
	"fmt"
)

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrItineraryNotFound = errors.New("itinerary not found")
	ErrInvalidPage       = errors.New("invalid page parameter")
	ErrInvalidPageSize   = errors.New("invalid page size parameter")
	ErrDatabaseError     = errors.New("database error")
	ErrForbidden         = errors.New("forbidden")
)

// TransientServiceError marks a failure that a fresh attempt against the
// model collaborator may resolve: network errors, timeouts, rate limits, 5xx.
type TransientServiceError struct {
	Op  string
	Err error
}

func (e *TransientServiceError) Error() string {
	return fmt.Sprintf("transient service error during %s: %v", e.Op, e.Err)
}

func (e *TransientServiceError) Unwrap() error { return e.Err }

// MalformedResponseError means no parseable JSON value could be recovered
// from the model output. Retryable: a re-prompt may produce cleaner text.
type MalformedResponseError struct {
	Reason string
	Err    error
}

func (e *MalformedResponseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed model response: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("malformed model response: %s", e.Reason)
}

func (e *MalformedResponseError) Unwrap() error { return e.Err }

// SchemaValidationError means well-formed JSON violated a domain invariant.
// Field names the offending path; Index is the zero-based activity (or day)
// index, -1 when not applicable. Never retried.
type SchemaValidationError struct {
	Field  string
	Index  int
	Reason string
}

func (e *SchemaValidationError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("schema validation failed: %s[%d]: %s", e.Field, e.Index, e.Reason)
	}
	return fmt.Sprintf("schema validation failed: %s: %s", e.Field, e.Reason)
}

// AssemblyInconsistencyError reports a mismatch between what the chunk
// merge accumulated and what the assembled result actually contains (day
// count, date order, or activity totals). Indicates a chunk-boundary bug;
// fatal for the request.
type AssemblyInconsistencyError struct {
	Expected string
	Actual   string
}

func (e *AssemblyInconsistencyError) Error() string {
	return fmt.Sprintf("assembly inconsistency: expected %s, got %s", e.Expected, e.Actual)
}

// NewTransientError wraps err as a transient failure of op.
func NewTransientError(op string, err error) error {
	return &TransientServiceError{Op: op, Err: err}
}

// NewMalformedError builds a MalformedResponseError with an optional cause.
func NewMalformedError(reason string, err error) error {
	return &MalformedResponseError{Reason: reason, Err: err}
}

// NewValidationError builds a SchemaValidationError for field at index.
func NewValidationError(field string, index int, format string, args ...any) error {
	return &SchemaValidationError{Field: field, Index: index, Reason: fmt.Sprintf(format, args...)}
}

// IsRetryable reports whether the retry orchestrator may re-run the failed
// operation. Classification is by error kind only, never by message text:
// schema/assembly failures and caller cancellation are terminal, everything
// else (transient, malformed, generic service errors) earns another attempt.
// Tagged variants are checked before the bare context sentinels: a
// TransientServiceError routinely wraps context.DeadlineExceeded from an
// expired per-call timeout, and that expiry must stay retryable. A bare
// context error only reaches the orchestrator when the caller's own context
// died, which no retry can fix.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	var schemaErr *SchemaValidationError
	if errors.As(err, &schemaErr) {
		return false
	}
	var assemblyErr *AssemblyInconsistencyError
	if errors.As(err, &assemblyErr) {
		return false
	}
	var transientErr *TransientServiceError
	if errors.As(err, &transientErr) {
		return true
	}
	var malformedErr *MalformedResponseError
	if errors.As(err, &malformedErr) {
		return true
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	return true
}
