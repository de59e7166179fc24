package cpu

import (
	"math/cmplx"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lattica-dev/lattica/internal/cvmath"
)

func mustMatrix(t *testing.T, rows, cols int, data []complex128) cvmath.Matrix {
	t.Helper()
	m, err := cvmath.MatrixFromSlice(rows, cols, data)
	require.NoError(t, err)
	return m
}

func TestMatMul(t *testing.T) {
	be := New()
	a := mustMatrix(t, 2, 2, []complex128{1, 2, 3, 4})
	b := mustMatrix(t, 2, 2, []complex128{0, 1i, 1, 0})

	c := be.MatMul(a, b)
	assert.Equal(t, complex128(2), c.At(0, 0))
	assert.Equal(t, complex128(1i), c.At(0, 1))
	assert.Equal(t, complex128(4), c.At(1, 0))
	assert.Equal(t, complex128(3i), c.At(1, 1))
}

func TestMatVec(t *testing.T) {
	be := New()
	a := mustMatrix(t, 2, 2, []complex128{1, 2, 3, 4})
	x := cvmath.Vector{1i, 1}

	y := be.MatVec(a, x)
	assert.Equal(t, 2+1i, y[0])
	assert.Equal(t, 4+3i, y[1])
}

func TestDet(t *testing.T) {
	be := New()

	assert.InDelta(t, 1, real(be.Det(cvmath.Eye(3))), 1e-12)

	a := mustMatrix(t, 2, 2, []complex128{1, 2, 3, 4})
	assert.InDelta(t, -2, real(be.Det(a)), 1e-12)

	// Complex determinant: diag(i, 2) -> 2i.
	d := cvmath.Diag(cvmath.Vector{1i, 2})
	assert.InDelta(t, 0, cmplx.Abs(be.Det(d)-2i), 1e-12)

	singular := mustMatrix(t, 2, 2, []complex128{1, 2, 2, 4})
	assert.Equal(t, complex128(0), be.Det(singular))
}

func TestInv(t *testing.T) {
	be := New()
	a := mustMatrix(t, 2, 2, []complex128{2, 1i, -1i, 3})

	inv, err := be.Inv(a)
	require.NoError(t, err)

	prod := be.MatMul(a, inv)
	assert.True(t, prod.EqualWithin(cvmath.Eye(2), 1e-12), "A @ inv(A) must be identity")
}

func TestInvSingular(t *testing.T) {
	be := New()
	a := mustMatrix(t, 2, 2, []complex128{1, 1, 1, 1})
	_, err := be.Inv(a)
	assert.ErrorIs(t, err, cvmath.ErrSingularMatrix)
}

func TestSolve(t *testing.T) {
	be := New()
	a := mustMatrix(t, 3, 3, []complex128{
		2, 0, 1,
		0, 1i, 0,
		1, 0, 1,
	})
	rhs := cvmath.Vector{3, 2i, 2}

	x, err := be.Solve(a, rhs)
	require.NoError(t, err)

	back := be.MatVec(a, x)
	assert.True(t, back.EqualWithin(rhs, 1e-12))
}

func TestBlockDiag(t *testing.T) {
	be := New()
	a := cvmath.Eye(1).Scale(2)
	b := mustMatrix(t, 2, 2, []complex128{1, 1, 1, 1})

	out := be.BlockDiag(a, b)
	assert.Equal(t, 3, out.Rows())
	assert.Equal(t, complex128(2), out.At(0, 0))
	assert.Equal(t, complex128(0), out.At(0, 1))
	assert.Equal(t, complex128(1), out.At(2, 2))
}

func TestKron(t *testing.T) {
	be := New()
	a := mustMatrix(t, 2, 2, []complex128{1, 0, 0, 2})
	b := cvmath.Eye(2)

	out := be.Kron(a, b)
	assert.Equal(t, 4, out.Rows())
	assert.Equal(t, complex128(1), out.At(0, 0))
	assert.Equal(t, complex128(2), out.At(2, 2))
	assert.Equal(t, complex128(2), out.At(3, 3))
	assert.Equal(t, complex128(0), out.At(0, 2))
}
