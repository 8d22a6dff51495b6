package store

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by lookups that find no matching row. For
// session lookups it also covers rows that exist but are inactive:
// callers must not be able to distinguish the two cases.
var ErrNotFound = errors.New("record not found")

// ValidationError reports a required field that was missing or empty on
// an insert. The operation was not performed and no row was written.
type ValidationError struct {
	// Field is the column-level name of the offending field.
	Field string

	// Reason is a human-readable description.
	Reason string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s: %s", e.Field, e.Reason)
}

// IsValidationError returns true if the error is a validation failure.
// Uses errors.As to handle wrapped errors.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// missingField builds the ValidationError for an absent required field.
func missingField(field string) *ValidationError {
	return &ValidationError{Field: field, Reason: "required field is missing"}
}
