package rep

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lattica-dev/lattica/internal/backend/cpu"
	"github.com/lattica-dev/lattica/internal/bargmann"
	"github.com/lattica-dev/lattica/internal/phasespace"
)

const hbar = 2.0

func gaussianCoherent(x, y float64) *Gaussian {
	cov, means := phasespace.CoherentState([]float64{x}, []float64{y}, hbar)
	return &Gaussian{Cov: cov, Means: means, HBar: hbar}
}

func TestToBargmannCoherent(t *testing.T) {
	be := cpu.New()
	g := gaussianCoherent(0.3, -0.2)

	b, err := ToBargmann(g, be)
	require.NoError(t, err)
	assert.Equal(t, LayoutKet, b.Layout)
	assert.Equal(t, 1, b.Modes())

	want := bargmann.Coherent([]float64{0.3}, []float64{-0.2}, be)
	assert.True(t, b.Triple.EqualWithin(want, 1e-9), "phase-space coherent state must map onto the holomorphic one")
}

func TestToBargmannSqueezedVacuum(t *testing.T) {
	be := cpu.New()
	cov, means := phasespace.SqueezedVacuumState([]float64{0.6}, []float64{0.8}, hbar)
	g := &Gaussian{Cov: cov, Means: means, HBar: hbar}

	b, err := ToBargmann(g, be)
	require.NoError(t, err)
	assert.Equal(t, LayoutKet, b.Layout)

	want := bargmann.SqueezedVacuum([]float64{0.6}, []float64{0.8}, be)
	assert.True(t, b.Triple.EqualWithin(want, 1e-9))
}

func TestToBargmannThermalIsDM(t *testing.T) {
	be := cpu.New()
	cov, means := phasespace.ThermalState([]float64{0.8}, hbar)
	g := &Gaussian{Cov: cov, Means: means, HBar: hbar}
	require.False(t, g.IsPure(1e-6))

	b, err := ToBargmann(g, be)
	require.NoError(t, err)
	assert.Equal(t, LayoutDM, b.Layout)

	want := bargmann.Thermal([]float64{0.8}, be)
	assert.True(t, b.Triple.EqualWithin(want, 1e-9))
}

func TestToFockCoherentAmplitudes(t *testing.T) {
	be := cpu.New()
	alpha := complex(0.7, 0.4)
	g := gaussianCoherent(real(alpha), imag(alpha))

	const cutoff = 20
	f, err := ToFock(g, []int{cutoff}, be)
	require.NoError(t, err)
	require.Equal(t, LayoutKet, f.Layout)

	n2 := real(alpha)*real(alpha) + imag(alpha)*imag(alpha)
	c := complex(math.Exp(-n2/2), 0)
	fact := 1.0
	pow := complex128(1)
	for n := 0; n < cutoff; n++ {
		if n > 0 {
			fact *= float64(n)
			pow *= alpha
		}
		want := c * pow / complex(math.Sqrt(fact), 0)
		assert.InDelta(t, 0, cmplx.Abs(f.Tensor.At(n)-want), 1e-6, "amplitude %d", n)
	}
	assert.InDelta(t, 1, f.Tensor.Norm2(), 1e-6)
}

func TestToFockThermalDiagonal(t *testing.T) {
	be := cpu.New()
	nbar := 0.6
	cov, means := phasespace.ThermalState([]float64{nbar}, hbar)
	g := &Gaussian{Cov: cov, Means: means, HBar: hbar}

	const cutoff = 18
	f, err := ToFock(g, []int{cutoff, cutoff}, be)
	require.NoError(t, err)
	require.Equal(t, LayoutDM, f.Layout)

	for n := 0; n < cutoff; n++ {
		want := math.Pow(nbar/(nbar+1), float64(n)) / (nbar + 1)
		assert.InDelta(t, want, real(f.Tensor.At(n, n)), 1e-9, "thermal occupation %d", n)
	}
	assert.InDelta(t, 1, real(f.Tensor.Trace()), 1e-6)
}

func TestDiagonalProbabilitiesCoherent(t *testing.T) {
	be := cpu.New()
	alpha := 1.1
	g := gaussianCoherent(alpha, 0)

	const cutoff = 16
	probs, err := DiagonalProbabilities(g, cutoff, nil, be)
	require.NoError(t, err)
	require.Equal(t, []int{cutoff}, probs.Shape())

	n2 := alpha * alpha
	fact := 1.0
	pow := 1.0
	for n := 0; n < cutoff; n++ {
		if n > 0 {
			fact *= float64(n)
			pow *= n2
		}
		want := math.Exp(-n2) * pow / fact
		assert.InDelta(t, want, real(probs.At(n)), 1e-9, "P(%d)", n)
	}
}

func TestDiagonalProbabilitiesMatchesFullTensor(t *testing.T) {
	be := cpu.New()
	cov, means := phasespace.ThermalState([]float64{0.4}, hbar)
	g := &Gaussian{Cov: cov, Means: means, HBar: hbar}

	const cutoff = 10
	probs, err := DiagonalProbabilities(g, cutoff, nil, be)
	require.NoError(t, err)
	full, err := ToFock(g, []int{cutoff, cutoff}, be)
	require.NoError(t, err)

	for n := 0; n < cutoff; n++ {
		assert.InDelta(t, real(full.Tensor.At(n, n)), real(probs.At(n)), 1e-9)
	}
}

func TestKetTripleToDM(t *testing.T) {
	be := cpu.New()
	ket := &Bargmann{Triple: bargmann.Coherent([]float64{0.5}, []float64{0.1}, be), Layout: LayoutKet}

	dm, err := KetTripleToDM(ket)
	require.NoError(t, err)
	assert.Equal(t, LayoutDM, dm.Layout)
	assert.Equal(t, 2, dm.Triple.Dim())

	// bra variable carries the conjugated displacement
	assert.InDelta(t, 0, cmplx.Abs(dm.Triple.B(0)[0]-complex(0.5, -0.1)), 1e-12)
	assert.InDelta(t, 0, cmplx.Abs(dm.Triple.B(0)[1]-complex(0.5, 0.1)), 1e-12)

	_, err = KetTripleToDM(dm)
	assert.Error(t, err, "lifting a density matrix again is rejected")
}

func TestToQuadratureVacuum(t *testing.T) {
	be := cpu.New()
	cov, means := phasespace.VacuumState(1, hbar)
	g := &Gaussian{Cov: cov, Means: means, HBar: hbar}

	q, err := ToQuadrature(g, 0, hbar, be)
	require.NoError(t, err)
	require.Equal(t, 1, q.Triple.Dim())

	// psi_0(u) = (pi hbar)^(-1/4) exp(-u^2/2) in dimensionless units
	assert.InDelta(t, -1, real(q.Triple.A(0).At(0, 0)), 1e-9)
	assert.InDelta(t, 0, cmplx.Abs(q.Triple.B(0)[0]), 1e-9)
	assert.InDelta(t, math.Pow(math.Pi*hbar, -0.25), real(q.Triple.C(0)), 1e-9)
}

func TestToQuadratureRotationInvariantVacuum(t *testing.T) {
	be := cpu.New()
	cov, means := phasespace.VacuumState(1, hbar)
	g := &Gaussian{Cov: cov, Means: means, HBar: hbar}

	q0, err := ToQuadrature(g, 0, hbar, be)
	require.NoError(t, err)
	q1, err := ToQuadrature(g, 0.7, hbar, be)
	require.NoError(t, err)
	assert.True(t, q0.Triple.EqualWithin(q1.Triple, 1e-9), "the vacuum has no preferred quadrature")
}

func TestGaussianPurity(t *testing.T) {
	g := gaussianCoherent(1, 1)
	assert.InDelta(t, 1, g.Purity(), 1e-12)
	assert.True(t, g.IsPure(1e-6))

	cov, means := phasespace.ThermalState([]float64{2}, hbar)
	th := &Gaussian{Cov: cov, Means: means, HBar: hbar}
	assert.InDelta(t, 0.2, th.Purity(), 1e-12)
	assert.False(t, th.IsPure(1e-6))
}

func TestToBargmannUnsupported(t *testing.T) {
	be := cpu.New()
	f := &Fock{Tensor: nil, Layout: LayoutKet}
	_, err := ToBargmann(f, be)
	assert.ErrorIs(t, err, ErrUnsupportedRepresentation)
}
