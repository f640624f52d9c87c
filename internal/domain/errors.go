package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors shared by services and repositories.
var (
	ErrNotFound        = errors.New("not found")
	ErrInvalidInput    = errors.New("invalid input")
	ErrCapacityReached = errors.New("event is full")
	ErrImportFailed    = errors.New("import failed")
)

// ValidationError describes user input that was rejected before any write.
// It matches ErrInvalidInput with errors.Is.
type ValidationError struct {
	Field   string
	Message string
}

// NewValidationError returns a ValidationError for field with a user-facing message.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

// ImportError reports that a bulk import was aborted as a whole.
// It matches ErrImportFailed with errors.Is and exposes the cause with errors.Unwrap.
type ImportError struct {
	Err error
}

func (e *ImportError) Error() string {
	return fmt.Sprintf("import failed: %v", e.Err)
}

func (e *ImportError) Unwrap() []error { return []error{ErrImportFailed, e.Err} }
