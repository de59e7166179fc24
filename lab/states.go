package lab

import (
	"fmt"

	"github.com/lattica-dev/lattica/internal/bargmann"
	"github.com/lattica-dev/lattica/internal/circuit"
	"github.com/lattica-dev/lattica/internal/lattice"
	"github.com/lattica-dev/lattica/internal/rep"
)

// Ket is a pure state component with ket-side output wires only.
type Ket struct {
	C   *circuit.Component
	lab *Lab
}

// DM is a mixed state component with bra and ket output wires.
type DM struct {
	C   *circuit.Component
	lab *Lab
}

func (l *Lab) newKet(name string, t bargmann.Triple, modes []int) *Ket {
	c, err := circuit.New(name, t, circuit.NewWires(nil, nil, modes, nil))
	if err != nil {
		panic(err) // constructors always size triples to their modes
	}
	return &Ket{C: c, lab: l}
}

func (l *Lab) newDM(name string, t bargmann.Triple, modes []int) *DM {
	c, err := circuit.New(name, t, circuit.NewWires(modes, nil, modes, nil))
	if err != nil {
		panic(err)
	}
	return &DM{C: c, lab: l}
}

// Vacuum returns the n-mode vacuum state.
func (l *Lab) Vacuum(n int, modes ...int) *Ket {
	return l.newKet("Vac", bargmann.Vacuum(n, l.be), defaultModes(modes, n))
}

// Coherent returns coherent states with displacement alpha = x + iy per
// mode. Scalar parameters broadcast across modes.
func (l *Lab) Coherent(x, y []float64, modes ...int) *Ket {
	n := paramLen(modes, x, y)
	return l.newKet("Coherent", bargmann.Coherent(x, y, l.be), defaultModes(modes, n))
}

// SqueezedVacuum returns squeezed vacuum states with magnitude r and angle
// phi per mode.
func (l *Lab) SqueezedVacuum(r, phi []float64, modes ...int) *Ket {
	n := paramLen(modes, r, phi)
	return l.newKet("Sq", bargmann.SqueezedVacuum(r, phi, l.be), defaultModes(modes, n))
}

// DisplacedSqueezed returns displaced squeezed states.
func (l *Lab) DisplacedSqueezed(r, phi, x, y []float64, modes ...int) *Ket {
	n := paramLen(modes, r, phi, x, y)
	return l.newKet("DispSq", bargmann.DisplacedSqueezed(r, phi, x, y, l.be), defaultModes(modes, n))
}

// TwoModeSqueezedVacuum returns the two-mode squeezed vacuum on a pair of
// modes.
func (l *Lab) TwoModeSqueezedVacuum(r, phi float64, modes ...int) *Ket {
	return l.newKet("TMSV", bargmann.TwoModeSqueezedVacuum(r, phi, l.be), defaultModes(modes, 2))
}

// Thermal returns thermal states with mean photon number nbar per mode.
func (l *Lab) Thermal(nbar []float64, modes ...int) *DM {
	n := paramLen(modes, nbar)
	return l.newDM("Thermal", bargmann.Thermal(nbar, l.be), defaultModes(modes, n))
}

// Number returns the photon-number eigenstate |n1 .. nM> truncated at
// cutoff, as a Fock-represented component.
func (l *Lab) Number(ns []int, cutoff int, modes ...int) (*Ket, error) {
	shape := make([]int, len(ns))
	for i, n := range ns {
		if n < 0 || n >= cutoff {
			return nil, fmt.Errorf("lab: photon number %d outside cutoff %d", n, cutoff)
		}
		shape[i] = cutoff
	}
	t := lattice.NewFockTensor(shape...)
	t.Set(1, ns...)
	c, err := circuit.NewFock("Number", t, circuit.NewWires(nil, nil, defaultModes(modes, len(ns)), nil))
	if err != nil {
		return nil, err
	}
	return &Ket{C: c, lab: l}, nil
}

// DM lifts the ket to its density matrix.
func (k *Ket) DM() (*DM, error) {
	c, err := k.C.Adjoint().Contract(k.C)
	if err != nil {
		return nil, err
	}
	return &DM{C: c, lab: k.lab}, nil
}

// Apply runs the ket through a unitary and stays pure.
func (k *Ket) Apply(u *Unitary) (*Ket, error) {
	c, err := k.C.Compose(u.C)
	if err != nil {
		return nil, err
	}
	return &Ket{C: c, lab: k.lab}, nil
}

// Through runs the ket through a channel; the result is mixed.
func (k *Ket) Through(ch *Channel) (*DM, error) {
	c, err := k.C.Compose(ch.C)
	if err != nil {
		return nil, err
	}
	return &DM{C: c, lab: k.lab}, nil
}

// Fock materializes the ket at the given per-mode shape.
func (k *Ket) Fock(shape []int) (*rep.Fock, error) {
	c, err := k.C.ToFock(shape)
	if err != nil {
		return nil, err
	}
	return &rep.Fock{Tensor: c.Tensor(), Layout: rep.LayoutKet}, nil
}

// Probabilities returns the photon-number probabilities up to cutoff,
// using the compact diagonal recurrence.
func (k *Ket) Probabilities(cutoff int) (*lattice.FockTensor, error) {
	t, ok := k.C.Triple()
	if !ok {
		f, err := k.Fock(nil)
		if err != nil {
			return nil, err
		}
		probs, shape, err := rep.Probabilities(f)
		if err != nil {
			return nil, err
		}
		out := lattice.NewFockTensor(shape...)
		for i, p := range probs {
			out.Data()[i] = complex(p, 0)
		}
		return out, nil
	}
	src := &rep.Bargmann{Triple: t, Layout: rep.LayoutKet}
	return rep.DiagonalProbabilities(src, cutoff, k.lab.parts, k.lab.be)
}

// Apply runs the density matrix through a unitary.
func (d *DM) Apply(u *Unitary) (*DM, error) {
	c, err := d.C.Compose(u.C)
	if err != nil {
		return nil, err
	}
	return &DM{C: c, lab: d.lab}, nil
}

// Through runs the density matrix through a channel.
func (d *DM) Through(ch *Channel) (*DM, error) {
	c, err := d.C.Compose(ch.C)
	if err != nil {
		return nil, err
	}
	return &DM{C: c, lab: d.lab}, nil
}

// Fock materializes the density matrix at the given shape (2M axes, bra
// block first).
func (d *DM) Fock(shape []int) (*rep.Fock, error) {
	c, err := d.C.ToFock(shape)
	if err != nil {
		return nil, err
	}
	return &rep.Fock{Tensor: c.Tensor(), Layout: rep.LayoutDM}, nil
}

// Probabilities returns the photon-number probabilities up to cutoff
// without materializing the full density matrix.
func (d *DM) Probabilities(cutoff int) (*lattice.FockTensor, error) {
	t, ok := d.C.Triple()
	if !ok {
		f := &rep.Fock{Tensor: d.C.Tensor(), Layout: rep.LayoutDM}
		probs, shape, err := rep.Probabilities(f)
		if err != nil {
			return nil, err
		}
		out := lattice.NewFockTensor(shape...)
		for i, p := range probs {
			out.Data()[i] = complex(p, 0)
		}
		return out, nil
	}
	src := &rep.Bargmann{Triple: t, Layout: rep.LayoutDM}
	return rep.DiagonalProbabilities(src, cutoff, d.lab.parts, d.lab.be)
}

// Purity computes tr(rho^2) of the state truncated at cutoff.
func (d *DM) Purity(cutoff int) (float64, error) {
	shape := make([]int, d.C.Wires().NumWires())
	for i := range shape {
		shape[i] = cutoff
	}
	f, err := d.Fock(shape)
	if err != nil {
		return 0, err
	}
	return rep.FockPurity(f.Tensor), nil
}
