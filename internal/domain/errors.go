package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrNotFound is returned when a referenced profile, link or social does not exist.
	ErrNotFound = errors.New("not found")
	// ErrForbidden is returned on ownership mismatch or plan restriction.
	ErrForbidden = errors.New("forbidden")
	// ErrQuotaExceeded is returned when the plan limit for an item kind is reached.
	ErrQuotaExceeded = errors.New("limit reached")
	// ErrHandleTaken is returned when another profile already binds the handle.
	ErrHandleTaken = errors.New("handle already in use")
	// ErrStoreUnavailable marks failures of the backing store that are safe to retry.
	ErrStoreUnavailable = errors.New("store unavailable")
)

// ValidationError describes malformed or missing input, keyed by field name.
type ValidationError struct {
	Fields map[string]string
}

// NewValidationError creates a validation error for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: message}}
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}

	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return strings.Join(parts, "; ")
}

// ForbiddenError carries the reason an actor may not perform an operation.
type ForbiddenError struct {
	Reason string
}

func (e *ForbiddenError) Error() string {
	return "forbidden: " + e.Reason
}

func (e *ForbiddenError) Unwrap() error {
	return ErrForbidden
}
