package errors

import (
	"errors"
	"fmt"
)

// AppError is the unified halokit error type.
type AppError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// Retryable indicates if the operation can be retried by the caller.
	Retryable bool `json:"retryable"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *AppError) Unwrap() error { return e.Cause }

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates a new AppError with automatic retryable detection.
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:      code,
		Message:   message,
		Retryable: IsRetryableCode(code),
	}
}

// CodeOf returns the error code of err if it is (or wraps) an AppError,
// or ErrCodeInternal otherwise.
func CodeOf(err error) ErrorCode {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ErrCodeInternal
}

// --- Common Error Constructors ---

// UnknownAction creates a new AppError for a failed registry lookup.
// kind is the registry kind ("callback", "filter", "quantity", "recipe").
func UnknownAction(kind, name string) *AppError {
	return &AppError{
		Code: ErrCodeUnknownAction, Message: fmt.Sprintf("unknown %s %q", kind, name),
		Retryable: false,
		Details:   map[string]any{"kind": kind, "name": name},
	}
}

// ActionFailed creates a new AppError for an action that raised during a run.
// The offending action is identified by kind, name, and the object index it
// was processing.
func ActionFailed(kind, name string, index int, cause error) *AppError {
	return &AppError{
		Code: ErrCodeActionFailed, Message: fmt.Sprintf("%s %q failed on object %d", kind, name, index),
		Retryable: false, Cause: cause,
		Details: map[string]any{"kind": kind, "name": name, "index": index},
	}
}

// InvalidActionKind creates a new AppError for an unrecognized action kind.
func InvalidActionKind(kind string) *AppError {
	return &AppError{
		Code: ErrCodeInvalidActionKind, Message: fmt.Sprintf("action must be a callback, filter, or quantity (got %q)", kind),
		Retryable: false,
		Details:   map[string]any{"kind": kind},
	}
}

// PipelineFrozen creates a new AppError for a configuration call made while
// a run is in progress.
func PipelineFrozen(op string) *AppError {
	return &AppError{
		Code: ErrCodePipelineFrozen, Message: fmt.Sprintf("cannot %s while a run is in progress", op),
		Retryable: false,
		Details:   map[string]any{"operation": op},
	}
}

// SourceError creates a new AppError for a chunk source failure.
func SourceError(op string, cause error) *AppError {
	return &AppError{
		Code: ErrCodeSource, Message: fmt.Sprintf("object source failed during %s", op),
		Retryable: true, Cause: cause,
		Details: map[string]any{"operation": op},
	}
}

// CatalogWrite creates a new AppError for a failed catalog write.
func CatalogWrite(path string, cause error) *AppError {
	return &AppError{
		Code: ErrCodeCatalogWrite, Message: fmt.Sprintf("writing catalog %s failed", path),
		Retryable: true, Cause: cause,
		Details: map[string]any{"path": path},
	}
}

// InvalidInput creates a new AppError for invalid input.
func InvalidInput(field, reason string) *AppError {
	details := make(map[string]any)
	if field != "" {
		details["field"] = field
	}
	return &AppError{
		Code: ErrCodeInvalidInput, Message: fmt.Sprintf("invalid input: %s", reason),
		Retryable: false, Details: details,
	}
}

// Validation creates a new AppError for validation errors.
func Validation(message string) *AppError {
	return &AppError{
		Code: ErrCodeInvalidInput, Message: message,
		Retryable: false,
	}
}

// MissingField creates a new AppError for a missing required field.
func MissingField(field string) *AppError {
	return &AppError{
		Code: ErrCodeMissingField, Message: fmt.Sprintf("missing required field: %s", field),
		Retryable: false,
		Details:   map[string]any{"field": field},
	}
}

// Internal creates a new AppError for an unexpected internal error.
func Internal(cause error) *AppError {
	return &AppError{
		Code: ErrCodeInternal, Message: "an unexpected error occurred",
		Retryable: false, Cause: cause,
	}
}
