package lattice

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lattica-dev/lattica/internal/cvmath"
)

// coherentDMInterleaved builds the density-matrix functional of a coherent
// state over interleaved (ket, bra) variables for one mode.
func coherentDMInterleaved(alpha complex128) (cvmath.Matrix, cvmath.Vector, complex128) {
	a := cvmath.NewMatrix(2, 2)
	b := cvmath.Vector{alpha, cmplx.Conj(alpha)}
	n2 := real(alpha)*real(alpha) + imag(alpha)*imag(alpha)
	return a, b, complex(math.Exp(-n2), 0)
}

func TestDiagonalAmplitudesCoherentIsPoisson(t *testing.T) {
	alpha := complex(0.9, 0.4)
	a, b, c := coherentDMInterleaved(alpha)

	const cutoff = 15
	g, _, _, err := DiagonalAmplitudes(a, b, c, 1, cutoff, nil)
	require.NoError(t, err)
	require.Equal(t, []int{cutoff}, g.Shape())

	n2 := real(alpha)*real(alpha) + imag(alpha)*imag(alpha)
	fact := 1.0
	pow := 1.0
	total := 0.0
	for n := 0; n < cutoff; n++ {
		if n > 0 {
			fact *= float64(n)
			pow *= n2
		}
		want := math.Exp(-n2) * pow / fact
		assert.InDelta(t, want, real(g.At(n)), 1e-9, "P(%d)", n)
		assert.InDelta(t, 0, imag(g.At(n)), 1e-9)
		total += want
	}
	assert.InDelta(t, 1, total, 1e-4, "Poisson tail beyond the cutoff is negligible")
}

func TestDiagonalAgreesWithFullTensorOneMode(t *testing.T) {
	// A generic symmetric functional, not a product state.
	a, err := cvmath.MatrixFromSlice(2, 2, []complex128{
		0.1 + 0.05i, 0.4,
		0.4, 0.1 - 0.05i,
	})
	require.NoError(t, err)
	b := cvmath.Vector{0.2 + 0.1i, 0.2 - 0.1i}
	c := complex(0.7, 0)

	const cutoff = 8
	full, err := Amplitudes(a, b, c, []int{cutoff, cutoff})
	require.NoError(t, err)
	diag, _, _, err := DiagonalAmplitudes(a, b, c, 1, cutoff, nil)
	require.NoError(t, err)

	for n := 0; n < cutoff; n++ {
		assert.InDelta(t, 0, cmplx.Abs(diag.At(n)-full.At(n, n)), 1e-9, "count %d", n)
	}
}

func TestDiagonalAgreesWithFullTensorTwoModes(t *testing.T) {
	// Two-mode squeezed vacuum density matrix, interleaved (ket0, bra0,
	// ket1, bra1): correlated across modes, so every lattice block of the
	// compact sweep participates.
	r := 0.7
	tanh := complex(math.Tanh(r), 0)
	sech2 := complex(1/(math.Cosh(r)*math.Cosh(r)), 0)

	a := cvmath.NewMatrix(4, 4)
	a.Set(0, 2, tanh)
	a.Set(2, 0, tanh)
	a.Set(1, 3, tanh)
	a.Set(3, 1, tanh)
	b := cvmath.NewVector(4)

	const cutoff = 6
	full, err := Amplitudes(a, b, sech2, []int{cutoff, cutoff, cutoff, cutoff})
	require.NoError(t, err)
	diag, _, _, err := DiagonalAmplitudes(a, b, sech2, 2, cutoff, nil)
	require.NoError(t, err)
	require.Equal(t, []int{cutoff, cutoff}, diag.Shape())

	for n0 := 0; n0 < cutoff; n0++ {
		for n1 := 0; n1 < cutoff; n1++ {
			assert.InDelta(t, 0, cmplx.Abs(diag.At(n0, n1)-full.At(n0, n0, n1, n1)), 1e-9,
				"counts (%d,%d)", n0, n1)
		}
	}

	// The joint distribution of the two-mode squeezed vacuum is perfectly
	// correlated and geometric on the diagonal.
	th := math.Tanh(r)
	for n := 0; n < cutoff; n++ {
		want := math.Pow(th, 2*float64(n)) / (math.Cosh(r) * math.Cosh(r))
		assert.InDelta(t, want, real(diag.At(n, n)), 1e-9)
	}
	assert.InDelta(t, 0, cmplx.Abs(diag.At(0, 1)), 1e-9, "uncorrelated counts are impossible")
}

func TestDiagonalAmplitudesDisplacedCrossTerms(t *testing.T) {
	// Displaced squeezed state: A and b both non-zero, exercising every
	// recurrence branch with gradients.
	r, alpha := 0.35, complex(0.4, -0.2)
	tanh := complex(math.Tanh(r), 0)

	// ket triple
	ak := cvmath.NewMatrix(1, 1)
	ak.Set(0, 0, -tanh)
	bk := cvmath.Vector{alpha + cmplx.Conj(alpha)*tanh}
	ck := cmplx.Exp(-0.5*alpha*cmplx.Conj(alpha)-0.5*cmplx.Conj(alpha)*cmplx.Conj(alpha)*tanh) /
		cmplx.Sqrt(complex(math.Cosh(r), 0))

	// dm over interleaved (ket, bra)
	a := cvmath.NewMatrix(2, 2)
	a.Set(0, 0, ak.At(0, 0))
	a.Set(1, 1, cmplx.Conj(ak.At(0, 0)))
	b := cvmath.Vector{bk[0], cmplx.Conj(bk[0])}
	c := ck * cmplx.Conj(ck)

	const cutoff = 10
	full, err := Amplitudes(a, b, c, []int{cutoff, cutoff})
	require.NoError(t, err)
	diag, _, _, err := DiagonalAmplitudes(a, b, c, 1, cutoff, nil)
	require.NoError(t, err)

	total := 0.0
	for n := 0; n < cutoff; n++ {
		assert.InDelta(t, 0, cmplx.Abs(diag.At(n)-full.At(n, n)), 1e-9, "count %d", n)
		total += real(diag.At(n))
	}
	// The distribution is normalized only up to the truncated tail, which
	// carries about 1e-5 of weight for this state at this cutoff.
	assert.InDelta(t, 1, total, 1e-4, "probabilities sum to one below the cutoff")
}

func TestDiagonalAmplitudesGradMatchesFiniteDifference(t *testing.T) {
	alpha := complex(0.6, 0)
	a, b, c := coherentDMInterleaved(alpha)

	const cutoff = 6
	g, dA, dB, err := DiagonalAmplitudes(a, b, c, 1, cutoff, nil)
	require.NoError(t, err)
	require.Equal(t, []int{cutoff, 2, 2}, dA.Shape())
	require.Equal(t, []int{cutoff, 2}, dB.Shape())

	eps := 1e-6
	bPlus := b.Clone()
	bPlus[0] += complex(eps, 0)
	gPlus, _, _, err := DiagonalAmplitudes(a, bPlus, c, 1, cutoff, nil)
	require.NoError(t, err)

	for n := 1; n < cutoff; n++ {
		fd := (gPlus.At(n) - g.At(n)) / complex(eps, 0)
		assert.InDelta(t, 0, cmplx.Abs(dB.At(n, 0)-fd), 1e-4, "dB[0] at count %d", n)
	}

	aPlus := a.Clone()
	aPlus.Set(0, 1, aPlus.At(0, 1)+complex(eps, 0))
	aPlus.Set(1, 0, aPlus.At(1, 0)+complex(eps, 0))
	gPlusA, _, _, err := DiagonalAmplitudes(aPlus, b, c, 1, cutoff, nil)
	require.NoError(t, err)
	for n := 1; n < cutoff; n++ {
		fd := (gPlusA.At(n) - g.At(n)) / complex(eps, 0)
		grad := dA.At(n, 0, 1) + dA.At(n, 1, 0)
		assert.InDelta(t, 0, cmplx.Abs(grad-fd), 1e-4, "dA off-diagonal at count %d", n)
	}
}

func TestDiagonalAmplitudesCutoffOne(t *testing.T) {
	a, b, c := coherentDMInterleaved(0.3)
	g, _, _, err := DiagonalAmplitudes(a, b, c, 1, 1, nil)
	require.NoError(t, err)
	require.Equal(t, []int{1}, g.Shape())
	assert.InDelta(t, 0, cmplx.Abs(g.At(0)-c), 1e-12)
}

func TestInterleavePerm(t *testing.T) {
	assert.Equal(t, []int{1, 0}, InterleavePerm(1))
	assert.Equal(t, []int{2, 0, 3, 1}, InterleavePerm(2))
}

func TestNewRecurrenceStateValidation(t *testing.T) {
	_, err := NewRecurrenceState(cvmath.NewMatrix(3, 3), cvmath.NewVector(3), 1, 1, 4, nil)
	assert.ErrorIs(t, err, cvmath.ErrShapeMismatch)
}
