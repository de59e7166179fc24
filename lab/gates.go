package lab

import (
	"github.com/lattica-dev/lattica/internal/bargmann"
	"github.com/lattica-dev/lattica/internal/circuit"
)

// Unitary is a gate component with ket-side input and output wires.
// Composing it after a density matrix silently adds its adjoint on the
// bra side.
type Unitary struct {
	C   *circuit.Component
	lab *Lab
}

func (l *Lab) newUnitary(name string, t bargmann.Triple, modes []int) *Unitary {
	c, err := circuit.New(name, t, circuit.NewWires(nil, nil, modes, modes))
	if err != nil {
		panic(err)
	}
	return &Unitary{C: c, lab: l}
}

// Dgate returns displacement gates with alpha = x + iy per mode.
func (l *Lab) Dgate(x, y []float64, modes ...int) *Unitary {
	n := paramLen(modes, x, y)
	return l.newUnitary("Dgate", bargmann.Displacement(x, y, l.be), defaultModes(modes, n))
}

// Sgate returns squeezing gates with magnitude r and angle delta per mode.
func (l *Lab) Sgate(r, delta []float64, modes ...int) *Unitary {
	n := paramLen(modes, r, delta)
	return l.newUnitary("Sgate", bargmann.Squeezing(r, delta, l.be), defaultModes(modes, n))
}

// Rgate returns phase rotations by theta per mode.
func (l *Lab) Rgate(theta []float64, modes ...int) *Unitary {
	n := paramLen(modes, theta)
	return l.newUnitary("Rgate", bargmann.Rotation(theta, l.be), defaultModes(modes, n))
}

// BSgate returns a beamsplitter on a pair of modes.
func (l *Lab) BSgate(theta, phi float64, modes ...int) *Unitary {
	return l.newUnitary("BSgate", bargmann.BeamSplitter(theta, phi, l.be), defaultModes(modes, 2))
}

// S2gate returns a two-mode squeezing gate on a pair of modes.
func (l *Lab) S2gate(r, phi float64, modes ...int) *Unitary {
	return l.newUnitary("S2gate", bargmann.TwoModeSqueezing(r, phi, l.be), defaultModes(modes, 2))
}

// On relabels the gate onto other modes.
func (u *Unitary) On(modes []int) (*Unitary, error) {
	c, err := u.C.On(modes)
	if err != nil {
		return nil, err
	}
	return &Unitary{C: c, lab: u.lab}, nil
}

// Then chains another unitary after this one.
func (u *Unitary) Then(next *Unitary) (*Unitary, error) {
	c, err := u.C.Compose(next.C)
	if err != nil {
		return nil, err
	}
	return &Unitary{C: c, lab: u.lab}, nil
}
