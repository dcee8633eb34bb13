// Package apperrors defines the error taxonomy shared by repositories,
// services and handlers. Handlers map these onto HTTP status codes; anything
// unrecognized is logged and surfaced as a generic server error.
package apperrors

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidReference indicates a malformed entity id.
	ErrInvalidReference = errors.New("invalid reference")
	// ErrNotFound indicates the referenced entity does not exist.
	ErrNotFound = errors.New("not found")
	// ErrCapacityExceeded indicates the event has no remaining volunteer slots.
	ErrCapacityExceeded = errors.New("event is already full")
	// ErrDuplicateAssignment indicates the (volunteer, event) pair already exists.
	ErrDuplicateAssignment = errors.New("volunteer already assigned to this event")
	// ErrDuplicateEmail indicates a registration with an email already in use.
	ErrDuplicateEmail = errors.New("user already exists")
	// ErrInvalidCredentials indicates a failed login attempt.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrStoreUnavailable indicates an underlying persistence failure.
	ErrStoreUnavailable = errors.New("store unavailable")
)

// ValidationError carries a field-to-message map covering every violated
// field, not just the first.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %d field(s)", len(e.Fields))
}

// NewValidationError builds a ValidationError from a field map
func NewValidationError(fields map[string]string) *ValidationError {
	return &ValidationError{Fields: fields}
}

// AsValidation unwraps err into a *ValidationError if possible
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
