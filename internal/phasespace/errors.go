package phasespace

import (
	"errors"
	"fmt"
)

// ErrInvalidModes is the sentinel for mode-index errors.
var ErrInvalidModes = errors.New("invalid modes")

// InvalidModesError reports a mode list that does not fit the state it is
// applied to. It wraps ErrInvalidModes.
type InvalidModesError struct {
	Modes    []int // offending mode list
	NumModes int   // number of modes of the state
}

// Error implements the error interface.
func (e *InvalidModesError) Error() string {
	return fmt.Sprintf("%v: modes %v on a %d-mode state", ErrInvalidModes, e.Modes, e.NumModes)
}

// Unwrap returns ErrInvalidModes.
func (e *InvalidModesError) Unwrap() error { return ErrInvalidModes }

// checkModes validates that every mode index is in [0, n) with no repeats.
func checkModes(modes []int, n int) error {
	seen := make(map[int]bool, len(modes))
	for _, m := range modes {
		if m < 0 || m >= n || seen[m] {
			return &InvalidModesError{Modes: modes, NumModes: n}
		}
		seen[m] = true
	}
	return nil
}
