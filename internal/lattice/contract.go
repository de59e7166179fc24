package lattice

import (
	"fmt"

	"github.com/lattica-dev/lattica/internal/parallel"
)

// Contract sums two tensors over paired axes (axesA[k] of a against
// axesB[k] of b) and returns the tensor over the remaining axes of a
// followed by the remaining axes of b. Paired axes of different lengths
// are summed over their common range.
func Contract(a, b *FockTensor, axesA, axesB []int) (*FockTensor, error) {
	if len(axesA) != len(axesB) {
		return nil, fmt.Errorf("lattice: %d axes against %d: %w", len(axesA), len(axesB), ErrShapeMismatch)
	}
	pairedA := make(map[int]int, len(axesA)) // axis of a -> pair slot
	pairedB := make(map[int]int, len(axesB))
	for k := range axesA {
		if axesA[k] < 0 || axesA[k] >= a.Rank() || axesB[k] < 0 || axesB[k] >= b.Rank() {
			return nil, fmt.Errorf("lattice: contraction axes (%d,%d) out of range: %w",
				axesA[k], axesB[k], ErrShapeMismatch)
		}
		if _, dup := pairedA[axesA[k]]; dup {
			return nil, fmt.Errorf("lattice: repeated contraction axis %d: %w", axesA[k], ErrShapeMismatch)
		}
		if _, dup := pairedB[axesB[k]]; dup {
			return nil, fmt.Errorf("lattice: repeated contraction axis %d: %w", axesB[k], ErrShapeMismatch)
		}
		pairedA[axesA[k]] = k
		pairedB[axesB[k]] = k
	}

	var freeA, freeB []int
	for i := 0; i < a.Rank(); i++ {
		if _, ok := pairedA[i]; !ok {
			freeA = append(freeA, i)
		}
	}
	for i := 0; i < b.Rank(); i++ {
		if _, ok := pairedB[i]; !ok {
			freeB = append(freeB, i)
		}
	}

	sumShape := make([]int, len(axesA))
	for k := range axesA {
		sumShape[k] = a.shape[axesA[k]]
		if b.shape[axesB[k]] < sumShape[k] {
			sumShape[k] = b.shape[axesB[k]]
		}
	}

	outShape := make([]int, 0, len(freeA)+len(freeB))
	for _, ax := range freeA {
		outShape = append(outShape, a.shape[ax])
	}
	for _, ax := range freeB {
		outShape = append(outShape, b.shape[ax])
	}
	if len(outShape) == 0 {
		outShape = []int{1}
	}
	out := NewFockTensor(outShape...)

	sumStrides := rowMajorStrides(sumShape)
	sumCells := 1
	for _, s := range sumShape {
		sumCells *= s
	}

	// Output cells are independent; each worker carries its own index
	// scratch.
	parallel.ForChunks(len(out.data), func(start, end int) {
		idxA := make([]int, a.Rank())
		idxB := make([]int, b.Rank())
		outIdx := make([]int, len(outShape))
		sumIdx := make([]int, len(sumShape))
		for flat := start; flat < end; flat++ {
			unravel(flat, out.strides, outIdx)
			for i, ax := range freeA {
				idxA[ax] = outIdx[i]
			}
			for i, ax := range freeB {
				idxB[ax] = outIdx[len(freeA)+i]
			}
			var acc complex128
			for sf := 0; sf < sumCells; sf++ {
				unravel(sf, sumStrides, sumIdx)
				for k := range axesA {
					idxA[axesA[k]] = sumIdx[k]
					idxB[axesB[k]] = sumIdx[k]
				}
				acc += a.data[a.offset(idxA)] * b.data[b.offset(idxB)]
			}
			out.data[flat] = acc
		}
	}, parallel.DefaultConfig())
	return out, nil
}
