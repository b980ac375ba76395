package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Configuration errors (surfaced at Add* time, never deferred to a run)
const (
	// ErrCodeUnknownAction indicates a registry lookup by name failed.
	ErrCodeUnknownAction ErrorCode = "UNKNOWN_ACTION"
	// ErrCodeInvalidInput indicates a configuration value is invalid.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
	// ErrCodeMissingField indicates a required configuration field is missing.
	ErrCodeMissingField ErrorCode = "MISSING_FIELD"
	// ErrCodePipelineFrozen indicates an attempt to modify the action list
	// while a run is in progress.
	ErrCodePipelineFrozen ErrorCode = "PIPELINE_FROZEN"
)

// Execution errors (fatal for the worker's run)
const (
	// ErrCodeActionFailed indicates a callback, filter, or quantity raised.
	ErrCodeActionFailed ErrorCode = "ACTION_FAILED"
	// ErrCodeInvalidActionKind indicates an action of unrecognized kind was
	// encountered. This is a programming invariant violation.
	ErrCodeInvalidActionKind ErrorCode = "INVALID_ACTION_KIND"
)

// I/O errors
const (
	// ErrCodeSource indicates chunk delivery or field materialization failed.
	ErrCodeSource ErrorCode = "SOURCE_ERROR"
	// ErrCodeCatalogWrite indicates the catalog artifact could not be written.
	ErrCodeCatalogWrite ErrorCode = "CATALOG_WRITE_ERROR"
)

// Internal errors
const (
	// ErrCodeInternal indicates an unexpected internal error.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

var retryableCodes = map[ErrorCode]bool{
	ErrCodeSource:       true,
	ErrCodeCatalogWrite: true,
}

// IsRetryableCode returns true if the error code indicates a retryable error.
// The engine itself never retries; the flag is advice for callers that own
// the run loop.
func IsRetryableCode(code ErrorCode) bool {
	return retryableCodes[code]
}
