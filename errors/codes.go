package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Configuration errors, rejected before any work begins.
const (
	// ErrCodeInvalidConfig indicates a configuration value is out of range.
	ErrCodeInvalidConfig ErrorCode = "INVALID_CONFIG"
)

// Execution errors
const (
	// ErrCodeItemFailed indicates a single item could not be processed.
	// Item failures are local to one sink and never cancel sibling workers.
	ErrCodeItemFailed ErrorCode = "ITEM_FAILED"
	// ErrCodeWorkerFailed indicates a worker terminated abnormally.
	ErrCodeWorkerFailed ErrorCode = "WORKER_FAILED"
	// ErrCodeCanceled indicates the execution was canceled from outside.
	ErrCodeCanceled ErrorCode = "CANCELED"
)

// Internal errors
const (
	// ErrCodeInternal indicates a broken invariant inside the engine.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)
