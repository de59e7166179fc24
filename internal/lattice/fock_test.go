package lattice

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFockTensorIndexing(t *testing.T) {
	g := NewFockTensor(2, 3)
	g.Set(5, 1, 2)

	assert.Equal(t, complex128(5), g.At(1, 2))
	assert.Equal(t, complex128(0), g.At(0, 0))
	assert.Equal(t, 6, g.NumElements())
	assert.Equal(t, []int{2, 3}, g.Shape())
	assert.Equal(t, 2, g.Rank())
}

func TestFockTensorFromSharesData(t *testing.T) {
	data := []complex128{1, 2, 3, 4}
	g := FockTensorFrom(data, 2, 2)
	data[3] = 9
	assert.Equal(t, complex128(9), g.At(1, 1), "wrapping must not copy")
}

func TestFockTensorConjScaleAdd(t *testing.T) {
	g := FockTensorFrom([]complex128{1 + 1i, 2}, 2)

	c := g.Conj()
	assert.Equal(t, 1-1i, c.At(0))
	assert.Equal(t, 1+1i, g.At(0), "Conj must not mutate the receiver")

	s := g.Scale(2i)
	assert.Equal(t, -2+2i, s.At(0))

	sum := g.Add(g)
	assert.Equal(t, complex128(4), sum.At(1))
}

func TestFockTensorReorder(t *testing.T) {
	g := NewFockTensor(2, 3)
	g.Set(7, 1, 2)

	r := g.Reorder([]int{1, 0})
	assert.Equal(t, []int{3, 2}, r.Shape())
	assert.Equal(t, complex128(7), r.At(2, 1))
}

func TestFockTensorDiagonal(t *testing.T) {
	// dm layout over one mode: axes (bra, ket)
	g := NewFockTensor(3, 3)
	for i := 0; i < 3; i++ {
		g.Set(complex(float64(i+1), 0), i, i)
	}
	g.Set(9, 0, 2)

	d := g.Diagonal()
	assert.Equal(t, []int{3}, d.Shape())
	assert.Equal(t, complex128(2), d.At(1))
}

func TestFockTensorPartialTrace(t *testing.T) {
	// two-mode dm, axes (bra0, bra1, ket0, ket1); trace out mode 1
	g := NewFockTensor(2, 2, 2, 2)
	g.Set(1, 0, 0, 0, 0)
	g.Set(1, 0, 1, 0, 1)
	g.Set(5, 1, 0, 1, 0)

	r := g.PartialTrace([]int{1})
	assert.Equal(t, []int{2, 2}, r.Shape())
	assert.Equal(t, complex128(2), r.At(0, 0), "sums bra1 == ket1")
	assert.Equal(t, complex128(5), r.At(1, 1))
}

func TestFockTensorTraceAndNorm(t *testing.T) {
	g := NewFockTensor(2, 2)
	g.Set(0.25, 0, 0)
	g.Set(0.75, 1, 1)
	g.Set(0.1i, 0, 1)

	assert.InDelta(t, 1, real(g.Trace()), 1e-12)
	assert.InDelta(t, 0.25*0.25+0.75*0.75+0.1*0.1, g.Norm2(), 1e-12)
}

func TestFockTensorOutOfRangePanics(t *testing.T) {
	g := NewFockTensor(2, 2)
	require.Panics(t, func() { g.At(2, 0) })
	require.Panics(t, func() { g.At(0) })
}
