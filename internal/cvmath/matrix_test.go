package cvmath

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatrixFromSlice(t *testing.T) {
	m, err := MatrixFromSlice(2, 2, []complex128{1, 2, 3, 4})
	require.NoError(t, err)
	assert.Equal(t, complex128(1), m.At(0, 0))
	assert.Equal(t, complex128(2), m.At(0, 1))
	assert.Equal(t, complex128(3), m.At(1, 0))
	assert.Equal(t, complex128(4), m.At(1, 1))

	_, err = MatrixFromSlice(2, 2, []complex128{1, 2, 3})
	assert.Error(t, err, "length mismatch should be rejected")
}

func TestMatrixTransposeConj(t *testing.T) {
	m, err := MatrixFromSlice(2, 2, []complex128{1 + 1i, 2, 3, 4 - 2i})
	require.NoError(t, err)

	tr := m.T()
	assert.Equal(t, complex128(3), tr.At(0, 1))
	assert.Equal(t, complex128(2), tr.At(1, 0))

	cj := m.Conj()
	assert.Equal(t, 1-1i, cj.At(0, 0))
	assert.Equal(t, 4+2i, cj.At(1, 1))

	dg := m.Dagger()
	assert.Equal(t, complex128(3), dg.At(0, 1))
	assert.Equal(t, 4+2i, dg.At(1, 1))
}

func TestMatrixCloneIndependent(t *testing.T) {
	m := Eye(2)
	c := m.Clone()
	c.Set(0, 0, 5)
	assert.Equal(t, complex128(1), m.At(0, 0), "clone must not share storage")
}

func TestMatrixSubmatrix(t *testing.T) {
	m, err := MatrixFromSlice(3, 3, []complex128{
		1, 2, 3,
		4, 5, 6,
		7, 8, 9,
	})
	require.NoError(t, err)

	s := m.Submatrix([]int{0, 2}, []int{1, 2})
	assert.Equal(t, 2, s.Rows())
	assert.Equal(t, 2, s.Cols())
	assert.Equal(t, complex128(2), s.At(0, 0))
	assert.Equal(t, complex128(9), s.At(1, 1))
}

func TestDiag(t *testing.T) {
	d := Diag(Vector{1, 2i})
	assert.Equal(t, complex128(1), d.At(0, 0))
	assert.Equal(t, complex128(2i), d.At(1, 1))
	assert.Equal(t, complex128(0), d.At(0, 1))
}

func TestMatrixEqualWithin(t *testing.T) {
	a := Eye(2)
	b := Eye(2)
	b.Set(0, 0, 1+1e-12)
	assert.True(t, a.EqualWithin(b, 1e-9))
	b.Set(0, 0, 1.1)
	assert.False(t, a.EqualWithin(b, 1e-9))
}

func TestVectorOps(t *testing.T) {
	v := Vector{1, 2i}
	w := Vector{3, 4}

	sum := v.Add(w)
	assert.Equal(t, complex128(4), sum[0])
	assert.Equal(t, 4+2i, sum[1])

	assert.Equal(t, 3+8i, v.Dot(w))

	c := v.Conj()
	assert.Equal(t, complex128(-2i), c[1])

	g := Vector{10, 20, 30}.Gather([]int{2, 0})
	assert.Equal(t, Vector{30, 10}, g)

	cat := v.Concat(w)
	assert.Len(t, cat, 4)
	assert.Equal(t, complex128(4), cat[3])
}
