package circuit

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidModes is returned when a mode list does not fit the
	// component it is applied to.
	ErrInvalidModes = errors.New("circuit: invalid modes")

	// ErrIncompatibleWires is returned when two components cannot be
	// joined: colliding uncontracted wires, or mismatched kinds for the
	// requested composition.
	ErrIncompatibleWires = errors.New("circuit: incompatible wires")
)

// ModesError reports a bad mode list along with what was expected.
type ModesError struct {
	Op   string
	Want int
	Got  []int
}

func (e *ModesError) Error() string {
	return fmt.Sprintf("circuit: %s expects %d modes, got %v", e.Op, e.Want, e.Got)
}

func (e *ModesError) Unwrap() error { return ErrInvalidModes }
