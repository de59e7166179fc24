package rep

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/lattica-dev/lattica/internal/bargmann"
	"github.com/lattica-dev/lattica/internal/lattice"
	"github.com/lattica-dev/lattica/internal/phasespace"
)

// Layout states what kind of object the variables of a representation
// describe, and with it how many variables each mode contributes.
type Layout int

const (
	LayoutKet     Layout = iota // one variable per mode
	LayoutDM                    // two variables per mode, bra block first
	LayoutUnitary               // two variables per mode, outputs first
	LayoutChannel               // four variables per mode
)

// VarsPerMode returns the number of Bargmann variables one mode occupies
// under the layout.
func (l Layout) VarsPerMode() int {
	switch l {
	case LayoutKet:
		return 1
	case LayoutDM, LayoutUnitary:
		return 2
	case LayoutChannel:
		return 4
	}
	panic(fmt.Sprintf("rep: unknown layout %d", int(l)))
}

func (l Layout) String() string {
	switch l {
	case LayoutKet:
		return "ket"
	case LayoutDM:
		return "dm"
	case LayoutUnitary:
		return "unitary"
	case LayoutChannel:
		return "channel"
	}
	return fmt.Sprintf("layout(%d)", int(l))
}

// Representation is the closed set of data layouts a quantum object can be
// carried in. Converters switch exhaustively over the four variants.
type Representation interface {
	Modes() int
	Name() string
	sealedRepresentation()
}

// Gaussian holds a phase-space description: real covariance matrix and
// mean vector in xxpp ordering, under a fixed hbar convention.
type Gaussian struct {
	Cov   *mat.Dense
	Means *mat.VecDense
	HBar  float64
}

func (g *Gaussian) Modes() int            { return g.Means.Len() / 2 }
func (g *Gaussian) Name() string          { return "gaussian" }
func (g *Gaussian) sealedRepresentation() {}

// Purity returns the purity of the Gaussian state.
func (g *Gaussian) Purity() float64 {
	return phasespace.Purity(g.Cov, g.HBar)
}

// IsPure reports whether the state saturates the purity bound within tol.
func (g *Gaussian) IsPure(tol float64) bool {
	return g.Purity() > 1-tol
}

// Bargmann holds a batched exponential-quadratic triple plus the layout of
// its variables.
type Bargmann struct {
	Triple bargmann.Triple
	Layout Layout
}

func (b *Bargmann) Modes() int            { return b.Triple.Dim() / b.Layout.VarsPerMode() }
func (b *Bargmann) Name() string          { return "bargmann" }
func (b *Bargmann) sealedRepresentation() {}

// Fock holds a dense photon-number tensor. A ket tensor has one axis per
// mode; a density matrix has 2M axes, bra block first.
type Fock struct {
	Tensor *lattice.FockTensor
	Layout Layout
}

func (f *Fock) Modes() int            { return f.Tensor.Rank() / f.Layout.VarsPerMode() }
func (f *Fock) Name() string          { return "fock" }
func (f *Fock) sealedRepresentation() {}

// Quadrature holds the wavefunction of a state over dimensionless
// quadrature variables x/sqrt(hbar), still in exponential-quadratic form:
// the triple's leading variables are the evaluation points.
type Quadrature struct {
	Triple bargmann.Triple
	Layout Layout
	Phi    float64 // quadrature angle
}

func (q *Quadrature) Modes() int            { return q.Triple.Dim() / q.Layout.VarsPerMode() }
func (q *Quadrature) Name() string          { return "quadrature" }
func (q *Quadrature) sealedRepresentation() {}
