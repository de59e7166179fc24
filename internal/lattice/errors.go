package lattice

import (
	"errors"
	"fmt"
)

var (
	// ErrCombinatorialOverflow is returned when the requested cutoff and
	// mode count would allocate a lattice larger than MaxLatticeCells.
	ErrCombinatorialOverflow = errors.New("lattice: photon-number lattice too large")

	// ErrShapeMismatch is returned when a triple's dimension does not
	// match the requested tensor shape.
	ErrShapeMismatch = errors.New("lattice: shape mismatch")
)

// MaxLatticeCells bounds the number of complex amplitude cells a single
// recurrence may allocate, gradient storage included.
var MaxLatticeCells = 1 << 26

// OverflowError reports the lattice size that tripped the bound.
type OverflowError struct {
	Modes  int
	Cutoff int
	Cells  int
}

func (e *OverflowError) Error() string {
	return fmt.Sprintf("lattice: %d modes at cutoff %d need %d cells (max %d)",
		e.Modes, e.Cutoff, e.Cells, MaxLatticeCells)
}

func (e *OverflowError) Unwrap() error { return ErrCombinatorialOverflow }
