package bargmann

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lattica-dev/lattica/internal/backend/cpu"
	"github.com/lattica-dev/lattica/internal/cvmath"
)

func TestVacuumValue(t *testing.T) {
	be := cpu.New()
	v := Vacuum(2, be)

	val, err := v.Value(cvmath.NewVector(2))
	require.NoError(t, err)
	assert.InDelta(t, 1, real(val), 1e-12, "vacuum functional is 1 at the origin")
	assert.InDelta(t, 0, imag(val), 1e-12)
}

func TestCoherentTriple(t *testing.T) {
	be := cpu.New()
	c := Coherent([]float64{0.3}, []float64{-0.4}, be)

	assert.Equal(t, 1, c.Dim())
	assert.InDelta(t, 0.3, real(c.B(0)[0]), 1e-12)
	assert.InDelta(t, -0.4, imag(c.B(0)[0]), 1e-12)
	// |alpha|^2 = 0.25
	assert.InDelta(t, math.Exp(-0.125), real(c.C(0)), 1e-12)
	assert.Equal(t, complex128(0), c.A(0).At(0, 0))
}

func TestAddScaleNeg(t *testing.T) {
	be := cpu.New()
	v := Vacuum(1, be)

	sum, err := v.Add(v.Scale(2))
	require.NoError(t, err)
	assert.Equal(t, 2, sum.BatchSize())

	val, err := sum.Value(cvmath.NewVector(1))
	require.NoError(t, err)
	assert.InDelta(t, 3, real(val), 1e-12)

	zero, err := v.Add(v.Neg())
	require.NoError(t, err)
	zval, err := zero.Value(cvmath.Vector{0.2 + 0.1i})
	require.NoError(t, err)
	assert.InDelta(t, 0, cmplx.Abs(zval), 1e-12)
}

func TestMulMatchesPointwiseProduct(t *testing.T) {
	be := cpu.New()
	a := Coherent([]float64{0.5}, []float64{0}, be)
	b := SqueezedVacuum([]float64{0.3}, []float64{0.7}, be)

	prod, err := a.Mul(b)
	require.NoError(t, err)

	x := cvmath.Vector{0.4 - 0.2i}
	va, err := a.Value(x)
	require.NoError(t, err)
	vb, err := b.Value(x)
	require.NoError(t, err)
	vp, err := prod.Value(x)
	require.NoError(t, err)
	assert.InDelta(t, 0, cmplx.Abs(vp-va*vb), 1e-12)
}

func TestTensorDisjointVariables(t *testing.T) {
	be := cpu.New()
	a := Coherent([]float64{0.5}, []float64{0}, be)
	b := Coherent([]float64{0}, []float64{0.25}, be)

	joint := a.Tensor(b)
	assert.Equal(t, 2, joint.Dim())
	assert.InDelta(t, 0.5, real(joint.B(0)[0]), 1e-12)
	assert.InDelta(t, 0.25, imag(joint.B(0)[1]), 1e-12)
}

func TestReorder(t *testing.T) {
	be := cpu.New()
	a := Coherent([]float64{0.1, 0.2}, []float64{0, 0}, be)

	swapped, err := a.Reorder([]int{1, 0})
	require.NoError(t, err)
	assert.InDelta(t, 0.2, real(swapped.B(0)[0]), 1e-12)
	assert.InDelta(t, 0.1, real(swapped.B(0)[1]), 1e-12)

	_, err = a.Reorder([]int{0})
	assert.Error(t, err)
}

func TestSimplifyMergesEqualEntries(t *testing.T) {
	be := cpu.New()
	v := Vacuum(1, be)

	sum, err := v.Add(v)
	require.NoError(t, err)
	require.Equal(t, 2, sum.BatchSize())

	merged := sum.Simplify(1e-9)
	assert.Equal(t, 1, merged.BatchSize())
	assert.InDelta(t, 2, real(merged.C(0)), 1e-12)
}

func TestSimplifyKeepsDistinctEntries(t *testing.T) {
	be := cpu.New()
	a := Coherent([]float64{0.1}, []float64{0}, be)
	b := Coherent([]float64{0.9}, []float64{0}, be)

	sum, err := a.Add(b)
	require.NoError(t, err)
	assert.Equal(t, 2, sum.Simplify(1e-9).BatchSize())
}

func TestEqualWithinIgnoresBatchOrder(t *testing.T) {
	be := cpu.New()
	a := Coherent([]float64{0.1}, []float64{0}, be)
	b := Coherent([]float64{0.9}, []float64{0}, be)

	ab, err := a.Add(b)
	require.NoError(t, err)
	ba, err := b.Add(a)
	require.NoError(t, err)
	assert.True(t, ab.EqualWithin(ba, 1e-12))
}
