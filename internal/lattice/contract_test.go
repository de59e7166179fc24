package lattice

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContractMatrixProduct(t *testing.T) {
	// (2x3) @ (3x2) as a tensordot over the inner axis.
	a := FockTensorFrom([]complex128{1, 2, 3, 4, 5, 6}, 2, 3)
	b := FockTensorFrom([]complex128{1, 0, 0, 1, 1, 1}, 3, 2)

	out, err := Contract(a, b, []int{1}, []int{0})
	require.NoError(t, err)
	require.Equal(t, []int{2, 2}, out.Shape())

	assert.Equal(t, complex128(4), out.At(0, 0))
	assert.Equal(t, complex128(5), out.At(0, 1))
	assert.Equal(t, complex128(10), out.At(1, 0))
	assert.Equal(t, complex128(11), out.At(1, 1))
}

func TestContractFullOverlapIsScalar(t *testing.T) {
	a := FockTensorFrom([]complex128{1, 2i}, 2)
	b := FockTensorFrom([]complex128{3, 1}, 2)

	out, err := Contract(a, b, []int{0}, []int{0})
	require.NoError(t, err)
	require.Equal(t, []int{1}, out.Shape())
	assert.Equal(t, 3+2i, out.At(0))
}

func TestContractCommonRange(t *testing.T) {
	// Mismatched cutoffs sum over the shorter axis.
	a := FockTensorFrom([]complex128{1, 1, 1, 1}, 4)
	b := FockTensorFrom([]complex128{2, 2}, 2)

	out, err := Contract(a, b, []int{0}, []int{0})
	require.NoError(t, err)
	assert.Equal(t, complex128(4), out.At(0))
}

func TestContractMultipleAxes(t *testing.T) {
	a := NewFockTensor(2, 2, 3)
	a.Set(5, 1, 0, 2)
	b := NewFockTensor(2, 2)
	b.Set(2, 1, 0)

	out, err := Contract(a, b, []int{0, 1}, []int{0, 1})
	require.NoError(t, err)
	require.Equal(t, []int{3}, out.Shape())
	assert.Equal(t, complex128(10), out.At(2))
}

func TestContractErrors(t *testing.T) {
	a := NewFockTensor(2, 2)
	b := NewFockTensor(2)

	_, err := Contract(a, b, []int{0, 1}, []int{0})
	assert.ErrorIs(t, err, ErrShapeMismatch, "axis count mismatch")

	_, err = Contract(a, b, []int{3}, []int{0})
	assert.ErrorIs(t, err, ErrShapeMismatch, "axis out of range")

	_, err = Contract(a, a, []int{0, 0}, []int{0, 1})
	assert.ErrorIs(t, err, ErrShapeMismatch, "repeated axis")
}
