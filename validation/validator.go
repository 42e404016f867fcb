package validation

import (
	"strings"

	"github.com/kbukum/streamfusion/errors"
)

// FieldError describes one rejected field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Checker accumulates checks on constructor arguments and reports every
// failure in a single INVALID_CONFIG error.
type Checker struct {
	fields []FieldError
}

// New returns an empty Checker.
func New() *Checker { return &Checker{} }

// Positive rejects field unless value is greater than zero.
func (c *Checker) Positive(field string, value int) *Checker {
	if value <= 0 {
		c.fields = append(c.fields, FieldError{Field: field, Message: "must be greater than zero"})
	}
	return c
}

// Failed reports whether any check failed.
func (c *Checker) Failed() bool { return len(c.fields) > 0 }

// Fields returns the failed checks in the order they were made.
func (c *Checker) Fields() []FieldError { return c.fields }

// Err returns nil when every check passed.
func (c *Checker) Err() error {
	if !c.Failed() {
		return nil
	}
	return invalid(c.fields)
}

// Positive checks a single argument. It is the form used by constructors
// taking one size or interval.
func Positive(field string, value int) error {
	return New().Positive(field, value).Err()
}

// invalid folds field failures into one error. A single failure is also
// exposed under the "field" detail.
func invalid(fields []FieldError) *errors.AppError {
	messages := make([]string, len(fields))
	for i, f := range fields {
		messages[i] = f.Field + ": " + f.Message
	}
	appErr := errors.Validation(strings.Join(messages, "; ")).
		WithDetail("fields", fields)
	if len(fields) == 1 {
		appErr.WithDetail("field", fields[0].Field)
	}
	return appErr
}
