package rep

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedRepresentation is returned when an operation has no
	// defined result for the representation it was asked on.
	ErrUnsupportedRepresentation = errors.New("rep: unsupported representation")

	// ErrMixedState is returned when a ket is requested from a density
	// matrix whose purity is below one.
	ErrMixedState = errors.New("rep: state is mixed")
)

// UnsupportedError carries the operation and the representation it was
// attempted on.
type UnsupportedError struct {
	Op   string
	Have string
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("rep: %s not supported for %s representation", e.Op, e.Have)
}

func (e *UnsupportedError) Unwrap() error { return ErrUnsupportedRepresentation }
