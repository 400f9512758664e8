package models

import (
	"errors"
	"fmt"
)

// ErrProjectNotFound is returned when an operation references an identifier
// with no matching project document.
var ErrProjectNotFound = errors.New("project not found")

// ValidationError reports a missing or malformed input field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid field %q: %s", e.Field, e.Message)
}

// NewValidationError builds a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
