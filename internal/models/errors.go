package models

import (
	"errors"
	"fmt"
)

// Sentinel errors for the engine's failure taxonomy. Repositories and
// services wrap these with context; handlers map them to HTTP statuses.
var (
	// ErrValidation rejects malformed input before any I/O
	ErrValidation = errors.New("validation failed")

	// ErrOverlap means the requested window is no longer available.
	// Callers should re-query availability rather than retry blindly.
	ErrOverlap = errors.New("reservation window overlaps an active reservation")

	// ErrNotFound means the referenced court or reservation does not exist
	ErrNotFound = errors.New("not found")

	// ErrPermission means the actor is not allowed to perform the operation
	ErrPermission = errors.New("permission denied")

	// ErrNoPricingCoverage means part of the requested window is not
	// covered by any pricing rule
	ErrNoPricingCoverage = errors.New("no pricing rule covers the requested window")
)

// NewValidationError wraps ErrValidation with a field-level message
func NewValidationError(msg string) error {
	return fmt.Errorf("%w: %s", ErrValidation, msg)
}
