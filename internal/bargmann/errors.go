package bargmann

import (
	"errors"
	"fmt"
)

// ErrSingularContraction is returned when the coupling block of a marked
// variable pair is non-invertible. This signals a degenerate physical
// configuration and is never swallowed.
var ErrSingularContraction = errors.New("singular contraction")

// ContractionError carries the marked pair whose coupling block could not
// be inverted. It wraps ErrSingularContraction.
type ContractionError struct {
	SelfIndex, OtherIndex int
}

// Error implements the error interface.
func (e *ContractionError) Error() string {
	return fmt.Sprintf("%v: coupling block of marked pair (%d, %d) is non-invertible",
		ErrSingularContraction, e.SelfIndex, e.OtherIndex)
}

// Unwrap returns ErrSingularContraction.
func (e *ContractionError) Unwrap() error { return ErrSingularContraction }
