package board

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound — the referenced prompt or comment does not exist.
	ErrNotFound = errors.New("not found")
	// ErrCapacityExceeded — the global per-entity row ceiling is reached.
	// The ceiling is a soft cap (see Service); requests past it are
	// rejected, never queued.
	ErrCapacityExceeded = errors.New("capacity exceeded")
)

// ValidationError reports a malformed or out-of-range field. It is terminal
// to the request and always raised before any persistence mutation.
type ValidationError struct {
	Field  string
	Detail string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Detail)
}

func invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Detail: fmt.Sprintf(format, args...)}
}
