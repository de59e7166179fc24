package lattice

import (
	"fmt"
	"math/cmplx"
)

// FockTensor is a dense complex tensor over photon-number indices, stored
// row-major in a flat slice.
type FockTensor struct {
	shape   []int
	strides []int
	data    []complex128
}

// NewFockTensor allocates a zero tensor with the given shape.
func NewFockTensor(shape ...int) *FockTensor {
	n := 1
	for _, s := range shape {
		if s <= 0 {
			panic(fmt.Sprintf("lattice: invalid tensor dimension %d", s))
		}
		n *= s
	}
	return &FockTensor{
		shape:   append([]int(nil), shape...),
		strides: rowMajorStrides(shape),
		data:    make([]complex128, n),
	}
}

// FockTensorFrom wraps an existing flat slice. The slice is not copied.
func FockTensorFrom(data []complex128, shape ...int) *FockTensor {
	n := 1
	for _, s := range shape {
		n *= s
	}
	if n != len(data) {
		panic(fmt.Sprintf("lattice: data length %d does not match shape %v", len(data), shape))
	}
	return &FockTensor{
		shape:   append([]int(nil), shape...),
		strides: rowMajorStrides(shape),
		data:    data,
	}
}

func rowMajorStrides(shape []int) []int {
	strides := make([]int, len(shape))
	acc := 1
	for i := len(shape) - 1; i >= 0; i-- {
		strides[i] = acc
		acc *= shape[i]
	}
	return strides
}

// Shape returns the tensor dimensions. The slice must not be mutated.
func (t *FockTensor) Shape() []int { return t.shape }

// Rank returns the number of indices.
func (t *FockTensor) Rank() int { return len(t.shape) }

// NumElements returns the total cell count.
func (t *FockTensor) NumElements() int { return len(t.data) }

// Data exposes the flat backing slice in row-major order.
func (t *FockTensor) Data() []complex128 { return t.data }

func (t *FockTensor) offset(idx []int) int {
	if len(idx) != len(t.shape) {
		panic(fmt.Sprintf("lattice: index rank %d for tensor rank %d", len(idx), len(t.shape)))
	}
	off := 0
	for i, n := range idx {
		if n < 0 || n >= t.shape[i] {
			panic(fmt.Sprintf("lattice: index %v out of range for shape %v", idx, t.shape))
		}
		off += n * t.strides[i]
	}
	return off
}

// At returns the amplitude at the given photon-number index.
func (t *FockTensor) At(idx ...int) complex128 { return t.data[t.offset(idx)] }

// Set stores an amplitude at the given photon-number index.
func (t *FockTensor) Set(v complex128, idx ...int) { t.data[t.offset(idx)] = v }

// Conj returns a new tensor with every amplitude conjugated.
func (t *FockTensor) Conj() *FockTensor {
	out := NewFockTensor(t.shape...)
	for i, v := range t.data {
		out.data[i] = cmplx.Conj(v)
	}
	return out
}

// Scale returns a new tensor with every amplitude multiplied by s.
func (t *FockTensor) Scale(s complex128) *FockTensor {
	out := NewFockTensor(t.shape...)
	for i, v := range t.data {
		out.data[i] = s * v
	}
	return out
}

// Add returns the elementwise sum of t and u, which must share a shape.
func (t *FockTensor) Add(u *FockTensor) *FockTensor {
	if !equalInts(t.shape, u.shape) {
		panic(fmt.Sprintf("lattice: cannot add tensors with shapes %v and %v", t.shape, u.shape))
	}
	out := NewFockTensor(t.shape...)
	for i := range t.data {
		out.data[i] = t.data[i] + u.data[i]
	}
	return out
}

// Reorder permutes the tensor indices so that new index i reads old index
// perm[i].
func (t *FockTensor) Reorder(perm []int) *FockTensor {
	if len(perm) != len(t.shape) {
		panic(fmt.Sprintf("lattice: permutation length %d for rank %d", len(perm), len(t.shape)))
	}
	shape := make([]int, len(perm))
	for i, p := range perm {
		shape[i] = t.shape[p]
	}
	out := NewFockTensor(shape...)
	idx := make([]int, len(shape))
	old := make([]int, len(shape))
	for flat := range out.data {
		unravel(flat, out.strides, idx)
		for i, p := range perm {
			old[p] = idx[i]
		}
		out.data[flat] = t.data[t.offset(old)]
	}
	return out
}

// Diagonal extracts the diagonal of a density-matrix tensor laid out as
// (bra indices, ket indices): entry n of the result is t[n, n].
func (t *FockTensor) Diagonal() *FockTensor {
	if len(t.shape)%2 != 0 {
		panic("lattice: diagonal of a tensor with odd rank")
	}
	m := len(t.shape) / 2
	for i := 0; i < m; i++ {
		if t.shape[i] != t.shape[m+i] {
			panic(fmt.Sprintf("lattice: diagonal of non-square shape %v", t.shape))
		}
	}
	out := NewFockTensor(t.shape[:m]...)
	idx := make([]int, 2*m)
	half := make([]int, m)
	for flat := range out.data {
		unravel(flat, out.strides, half)
		copy(idx[:m], half)
		copy(idx[m:], half)
		out.data[flat] = t.data[t.offset(idx)]
	}
	return out
}

// PartialTrace traces out the listed modes of a density-matrix tensor laid
// out as (bra indices, ket indices) over m modes each.
func (t *FockTensor) PartialTrace(modes []int) *FockTensor {
	if len(t.shape)%2 != 0 {
		panic("lattice: partial trace of a tensor with odd rank")
	}
	m := len(t.shape) / 2
	traced := make(map[int]bool, len(modes))
	for _, md := range modes {
		if md < 0 || md >= m {
			panic(fmt.Sprintf("lattice: traced mode %d out of range for %d modes", md, m))
		}
		traced[md] = true
	}
	var keep []int
	for i := 0; i < m; i++ {
		if !traced[i] {
			keep = append(keep, i)
		}
	}
	outShape := make([]int, 0, 2*len(keep))
	for _, k := range keep {
		outShape = append(outShape, t.shape[k])
	}
	for _, k := range keep {
		outShape = append(outShape, t.shape[m+k])
	}
	if len(outShape) == 0 {
		outShape = []int{1}
	}
	out := NewFockTensor(outShape...)
	idx := make([]int, 2*m)
	outIdx := make([]int, len(outShape))
	for flat, v := range t.data {
		unravel(flat, t.strides, idx)
		diag := true
		for _, md := range modes {
			if idx[md] != idx[m+md] {
				diag = false
				break
			}
		}
		if !diag {
			continue
		}
		if len(keep) == 0 {
			out.data[0] += v
			continue
		}
		for i, k := range keep {
			outIdx[i] = idx[k]
			outIdx[len(keep)+i] = idx[m+k]
		}
		out.data[out.offset(outIdx)] += v
	}
	return out
}

// Norm2 returns the sum of squared magnitudes of all amplitudes.
func (t *FockTensor) Norm2() float64 {
	var s float64
	for _, v := range t.data {
		s += real(v)*real(v) + imag(v)*imag(v)
	}
	return s
}

// Trace sums the diagonal of a density-matrix tensor.
func (t *FockTensor) Trace() complex128 {
	d := t.Diagonal()
	var s complex128
	for _, v := range d.data {
		s += v
	}
	return s
}

func unravel(flat int, strides []int, out []int) {
	for i, s := range strides {
		out[i] = flat / s
		flat %= s
	}
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
