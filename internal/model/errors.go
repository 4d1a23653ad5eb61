package model

import (
	"errors"
	"fmt"
)

// Common errors used across the application
var (
	// ErrInvalidInput covers malformed identifiers, missing or out-of-range fields
	// and malformed request shapes
	ErrInvalidInput = errors.New("invalid input")

	// ErrEmptyBody is returned when a create request supplies no fields at all
	ErrEmptyBody = fmt.Errorf("%w: request body is empty", ErrInvalidInput)

	// Player errors
	ErrPlayerNotFound = errors.New("player not found")
)

// InvalidField builds an ErrInvalidInput describing a single bad field
func InvalidField(field, reason string) error {
	return fmt.Errorf("%w: %s %s", ErrInvalidInput, field, reason)
}
