package cvmath

import (
	"errors"
	"fmt"
)

// Common errors.
var (
	ErrShapeMismatch  = errors.New("shape mismatch")
	ErrSingularMatrix = errors.New("matrix is singular")
)

// ShapeError reports an operation applied to incompatibly shaped operands.
// It wraps ErrShapeMismatch so callers can match with errors.Is.
type ShapeError struct {
	Op   string // operation that failed
	Want string // expected shape
	Got  string // offending shape
}

// Error implements the error interface.
func (e *ShapeError) Error() string {
	return fmt.Sprintf("%s: %v: want %s, got %s", e.Op, ErrShapeMismatch, e.Want, e.Got)
}

// Unwrap returns ErrShapeMismatch.
func (e *ShapeError) Unwrap() error { return ErrShapeMismatch }
