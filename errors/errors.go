package errors

import (
	stderrors "errors"
	"fmt"
)

// AppError is the unified error type returned by streamfusion packages.
type AppError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
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

// Is reports whether target is an AppError with the same code.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	return ok && t.Code == e.Code
}

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetails merges the provided details into the error and returns the receiver.
func (e *AppError) WithDetails(details map[string]any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	for k, v := range details {
		e.Details[k] = v
	}
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

// New creates a new AppError.
func New(code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// --- Constructors ---

// InvalidConfig creates an error for a configuration field that is out of range.
func InvalidConfig(field, reason string) *AppError {
	details := make(map[string]any)
	if field != "" {
		details["field"] = field
	}
	msg := reason
	if field != "" {
		msg = fmt.Sprintf("%s %s", field, reason)
	}
	return &AppError{
		Code: ErrCodeInvalidConfig, Message: msg, Details: details,
	}
}

// Validation creates an INVALID_CONFIG error carrying a pre-built message.
func Validation(message string) *AppError {
	return &AppError{Code: ErrCodeInvalidConfig, Message: message}
}

// ItemFailed wraps an item-level failure raised inside a pipeline stage.
func ItemFailed(cause error) *AppError {
	return &AppError{
		Code: ErrCodeItemFailed, Message: "item could not be processed", Cause: cause,
	}
}

// WorkerFailed creates an error for a worker that terminated abnormally.
func WorkerFailed(worker int, cause error) *AppError {
	return &AppError{
		Code: ErrCodeWorkerFailed, Message: fmt.Sprintf("worker %d terminated abnormally", worker),
		Details: map[string]any{"worker": worker}, Cause: cause,
	}
}

// Canceled creates an error for an execution abandoned by its caller.
func Canceled(cause error) *AppError {
	return &AppError{
		Code: ErrCodeCanceled, Message: "execution canceled", Cause: cause,
	}
}

// Internal creates an error for a broken engine invariant.
func Internal(cause error) *AppError {
	return &AppError{
		Code: ErrCodeInternal, Message: "an unexpected engine error occurred", Cause: cause,
	}
}

// --- Inspection ---

// AsAppError converts an error to an AppError if possible.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsCode reports whether err, or any error it wraps, is an AppError with code.
func IsCode(err error, code ErrorCode) bool {
	return stderrors.Is(err, &AppError{Code: code})
}
