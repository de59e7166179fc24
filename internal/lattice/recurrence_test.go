package lattice

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lattica-dev/lattica/internal/cvmath"
)

func TestAmplitudesVacuum(t *testing.T) {
	g, err := Amplitudes(cvmath.NewMatrix(1, 1), cvmath.NewVector(1), 1, []int{5})
	require.NoError(t, err)

	assert.Equal(t, complex128(1), g.At(0))
	for n := 1; n < 5; n++ {
		assert.Equal(t, complex128(0), g.At(n))
	}
}

func TestAmplitudesCoherent(t *testing.T) {
	// A=0, b=alpha, c=exp(-|alpha|^2/2): G[n] = c alpha^n / sqrt(n!)
	alpha := complex(0.8, -0.3)
	c := cmplx.Exp(complex(-0.5*(real(alpha)*real(alpha)+imag(alpha)*imag(alpha)), 0))
	b := cvmath.Vector{alpha}

	const cutoff = 20
	g, err := Amplitudes(cvmath.NewMatrix(1, 1), b, c, []int{cutoff})
	require.NoError(t, err)

	fact := 1.0
	pow := complex128(1)
	for n := 0; n < cutoff; n++ {
		if n > 0 {
			fact *= float64(n)
			pow *= alpha
		}
		want := c * pow / complex(math.Sqrt(fact), 0)
		assert.InDelta(t, 0, cmplx.Abs(g.At(n)-want), 1e-9, "amplitude %d", n)
	}
	assert.InDelta(t, 1, g.Norm2(), 1e-9, "coherent state is normalized at cutoff 20")
}

func TestAmplitudesSqueezedVacuumParity(t *testing.T) {
	// A = -tanh(r), c = 1/sqrt(cosh r): only even photon numbers appear.
	r := 0.6
	a := cvmath.NewMatrix(1, 1)
	a.Set(0, 0, complex(-math.Tanh(r), 0))
	c := complex(1/math.Sqrt(math.Cosh(r)), 0)

	g, err := Amplitudes(a, cvmath.NewVector(1), c, []int{12})
	require.NoError(t, err)

	for n := 1; n < 12; n += 2 {
		assert.InDelta(t, 0, cmplx.Abs(g.At(n)), 1e-12, "odd amplitude %d", n)
	}
	// G[2]/G[0] = -tanh(r)/sqrt(2)
	ratio := g.At(2) / g.At(0)
	assert.InDelta(t, -math.Tanh(r)/math.Sqrt2, real(ratio), 1e-12)
}

func TestAmplitudesTwoModeComplete(t *testing.T) {
	// Every cell of a two-mode squeezed vacuum tensor is finite.
	tanh := complex(math.Tanh(0.9), 0)
	a := cvmath.NewMatrix(2, 2)
	a.Set(0, 1, tanh)
	a.Set(1, 0, tanh)
	c := complex(1/math.Cosh(0.9), 0)

	g, err := Amplitudes(a, cvmath.NewVector(2), c, []int{8, 8})
	require.NoError(t, err)

	for n0 := 0; n0 < 8; n0++ {
		for n1 := 0; n1 < 8; n1++ {
			v := g.At(n0, n1)
			require.False(t, cmplx.IsNaN(v) || cmplx.IsInf(v), "cell (%d,%d)", n0, n1)
			if n0 != n1 {
				assert.InDelta(t, 0, cmplx.Abs(v), 1e-12, "off-diagonal (%d,%d) must vanish", n0, n1)
			}
		}
	}
	// G[n,n] = c tanh^n
	want := c * tanh * tanh
	assert.InDelta(t, 0, cmplx.Abs(g.At(2, 2)-want), 1e-12)
}

func TestAmplitudesWithGradCoherent(t *testing.T) {
	alpha := complex(0.5, 0.2)
	b := cvmath.Vector{alpha}

	g, dA, dB, err := AmplitudesWithGrad(cvmath.NewMatrix(1, 1), b, 1, []int{6})
	require.NoError(t, err)
	assert.Equal(t, []int{6, 1, 1}, dA.Shape())
	assert.Equal(t, []int{6, 1}, dB.Shape())

	// G[n] = alpha^n / sqrt(n!), so dG[n]/db = n alpha^(n-1) / sqrt(n!).
	for n := 1; n < 6; n++ {
		want := complex(float64(n), 0) * g.At(n) / alpha
		assert.InDelta(t, 0, cmplx.Abs(dB.At(n, 0)-want), 1e-9, "dB at %d", n)
	}
	// With A = 0 no cell depends on A up to first order except through the
	// two-step recurrence term: dG[2]/dA = G[0] / sqrt(2) ... chain checked
	// against a finite difference.
	eps := 1e-6
	aPlus := cvmath.NewMatrix(1, 1)
	aPlus.Set(0, 0, complex(eps, 0))
	gPlus, err := Amplitudes(aPlus, b, 1, []int{6})
	require.NoError(t, err)
	fd := (gPlus.At(2) - g.At(2)) / complex(eps, 0)
	assert.InDelta(t, 0, cmplx.Abs(dA.At(2, 0, 0)-fd), 1e-5)
}

func TestAmplitudesShapeMismatch(t *testing.T) {
	_, err := Amplitudes(cvmath.NewMatrix(2, 2), cvmath.NewVector(2), 1, []int{4})
	assert.ErrorIs(t, err, cvmath.ErrShapeMismatch)
}

func TestAmplitudesOverflow(t *testing.T) {
	saved := MaxLatticeCells
	MaxLatticeCells = 100
	defer func() { MaxLatticeCells = saved }()

	_, err := Amplitudes(cvmath.NewMatrix(2, 2), cvmath.NewVector(2), 1, []int{20, 20})
	assert.ErrorIs(t, err, ErrCombinatorialOverflow)
}
