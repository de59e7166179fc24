package circuit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWiresSortsBlocks(t *testing.T) {
	w := NewWires(nil, nil, []int{2, 0, 1}, []int{1, 0})
	assert.Equal(t, []int{0, 1, 2}, w.OutKet)
	assert.Equal(t, []int{0, 1}, w.InKet)
	assert.Equal(t, 5, w.NumWires())
}

func TestNewWiresPanicsOnDuplicate(t *testing.T) {
	assert.Panics(t, func() { NewWires(nil, nil, []int{1, 1}, nil) })
}

func TestWiresModesUnion(t *testing.T) {
	w := NewWires([]int{0, 2}, []int{2}, []int{0, 2}, []int{2, 3})
	assert.Equal(t, []int{0, 2, 3}, w.Modes())
	assert.True(t, w.HasBra())
	assert.True(t, w.HasKet())

	ket := NewWires(nil, nil, []int{0}, nil)
	assert.False(t, ket.HasBra())
	assert.True(t, ket.HasKet())
}

func TestWiresAdjointAndDual(t *testing.T) {
	w := NewWires([]int{0}, []int{1}, []int{2}, []int{3})

	adj := w.Adjoint()
	assert.Equal(t, []int{2}, adj.OutBra)
	assert.Equal(t, []int{3}, adj.InBra)
	assert.Equal(t, []int{0}, adj.OutKet)
	assert.Equal(t, []int{1}, adj.InKet)

	dual := w.Dual()
	assert.Equal(t, []int{1}, dual.OutBra)
	assert.Equal(t, []int{0}, dual.InBra)
	assert.Equal(t, []int{3}, dual.OutKet)
	assert.Equal(t, []int{2}, dual.InKet)

	assert.True(t, w.Adjoint().Adjoint().Equal(w))
	assert.True(t, w.Dual().Dual().Equal(w))
}

func TestMatmulKetThroughGate(t *testing.T) {
	state := NewWires(nil, nil, []int{0}, nil)
	gate := NewWires(nil, nil, []int{0}, []int{0})

	joined, selfIdx, otherIdx, perm, err := state.Matmul(gate)
	require.NoError(t, err)
	assert.Equal(t, []int{0}, selfIdx)
	assert.Equal(t, []int{1}, otherIdx, "gate input sits after its output variable")
	assert.Equal(t, []int{0}, joined.OutKet)
	assert.Empty(t, joined.InKet)
	assert.Equal(t, []int{0}, perm)
}

func TestMatmulPartialOverlap(t *testing.T) {
	// two-mode gate followed by a single-mode gate on mode 1
	front := NewWires(nil, nil, []int{0, 1}, []int{0, 1})
	back := NewWires(nil, nil, []int{1}, []int{1})

	joined, selfIdx, otherIdx, perm, err := front.Matmul(back)
	require.NoError(t, err)
	assert.Equal(t, []int{1}, selfIdx, "front's out wire for mode 1")
	assert.Equal(t, []int{1}, otherIdx, "back's in wire for mode 1")
	assert.Equal(t, []int{0, 1}, joined.OutKet)
	assert.Equal(t, []int{0, 1}, joined.InKet)

	// raw result order: front survivors (out0, in0, in1) then back's out1;
	// canonical order wants out0, out1, in0, in1
	assert.Equal(t, []int{0, 3, 1, 2}, perm)
}

func TestMatmulBraAndKetPairs(t *testing.T) {
	// density matrix meeting a channel on one mode
	dm := NewWires([]int{0}, nil, []int{0}, nil)
	ch := NewWires([]int{0}, []int{0}, []int{0}, []int{0})

	joined, selfIdx, otherIdx, perm, err := dm.Matmul(ch)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1}, selfIdx, "bra pair first, then ket pair")
	assert.Equal(t, []int{1, 3}, otherIdx)
	assert.Equal(t, []int{0}, joined.OutBra)
	assert.Equal(t, []int{0}, joined.OutKet)
	assert.Equal(t, []int{0, 1}, perm)
}

func TestMatmulCollision(t *testing.T) {
	a := NewWires(nil, nil, []int{0}, nil)
	b := NewWires(nil, nil, []int{0}, nil)
	_, _, _, _, err := a.Matmul(b)
	assert.ErrorIs(t, err, ErrIncompatibleWires, "two uncontracted ket-out wires on the same mode")
}

func TestMatmulDisjointIsTensorProduct(t *testing.T) {
	a := NewWires(nil, nil, []int{0}, nil)
	b := NewWires(nil, nil, []int{1}, nil)

	joined, selfIdx, otherIdx, perm, err := a.Matmul(b)
	require.NoError(t, err)
	assert.Empty(t, selfIdx)
	assert.Empty(t, otherIdx)
	assert.Equal(t, []int{0, 1}, joined.OutKet)
	assert.Equal(t, []int{0, 1}, perm)
}
