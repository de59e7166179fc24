package lattice

import (
	"fmt"
	"math"

	"github.com/lattica-dev/lattica/internal/cvmath"
)

// RecurrenceState holds the working arrays of the compact diagonal
// recurrence for one (a, b, g0) functional. The functional has 2M
// variables in interleaved order, two per mode, and the sweep fills only
// the lattice blocks needed to reach the diagonal cells:
//
//	arr0  diagonal cells (n1 n1, n2 n2, ...), the output
//	arr1  cells one step off the diagonal in a single variable
//	arr2  cells two steps off the diagonal in a single mode
//	arr11 cells one step off the diagonal in two distinct modes,
//	      one slice per sign pattern of the two steps
//
// Gradient blocks with respect to every entry of a and b ride along with
// each value block.
type RecurrenceState struct {
	m      int
	cutoff int
	a      cvmath.Matrix
	b      cvmath.Vector
	g0     complex128
	parts  *PartitionTable

	arr0  *latticeBlock
	arr1  *latticeBlock
	arr2  *latticeBlock
	arr11 *latticeBlock

	strides0    []int // strides of the [cutoff]^M diagonal index
	tailStride1 []int // strides of an M-1 mode tail
	tailStride2 []int // strides of an M-2 mode tail
	staggered   []int

	// per-pivot workspace
	gIn   []complex128
	gInDA [][]complex128
	gInDB [][]complex128
}

// latticeBlock is one value array plus its gradient arrays. Cell i of val
// owns dA[i*g2:(i+1)*g2] and dB[i*g1:(i+1)*g1] where g1 = 2M, g2 = (2M)^2.
type latticeBlock struct {
	val []complex128
	dA  []complex128
	dB  []complex128
}

func newLatticeBlock(cells, dim int) *latticeBlock {
	return &latticeBlock{
		val: make([]complex128, cells),
		dA:  make([]complex128, cells*dim*dim),
		dB:  make([]complex128, cells*dim),
	}
}

// NewRecurrenceState validates the inputs and allocates the lattice blocks.
// The matrix a must be 2*modes square with b of matching length, variables
// interleaved so that indices 2i and 2i+1 belong to mode i. The partition
// table may be shared across states; pass nil to allocate a private one.
func NewRecurrenceState(a cvmath.Matrix, b cvmath.Vector, g0 complex128, modes, cutoff int, parts *PartitionTable) (*RecurrenceState, error) {
	dim := 2 * modes
	if r, c := a.Rows(), a.Cols(); r != dim || c != dim || len(b) != dim {
		return nil, &cvmath.ShapeError{Op: "lattice.NewRecurrenceState",
			Want: fmt.Sprintf("%dx%d A and b of length %d", dim, dim, dim),
			Got:  fmt.Sprintf("%dx%d A, b of length %d", r, c, len(b))}
	}
	if parts == nil {
		parts = NewPartitionTable()
	}

	pow := func(base, exp int) int {
		n := 1
		for i := 0; i < exp; i++ {
			n *= base
		}
		return n
	}
	cells0 := pow(cutoff, modes)
	cells1 := dim * (cutoff - 1) * pow(cutoff, modes-1)
	cells2 := modes * (cutoff - 2) * pow(cutoff, modes-1)
	cells11 := 0
	if modes > 1 {
		cells11 = 3 * (modes * (modes - 1) / 2) * (cutoff - 1) * (cutoff - 1) * pow(cutoff, modes-2)
	}
	if cells2 < 0 {
		cells2 = 0
	}
	total := (cells0 + cells1 + cells2 + cells11) * (1 + dim*dim + dim)
	if total > MaxLatticeCells {
		return nil, &OverflowError{Modes: modes, Cutoff: cutoff, Cells: total}
	}

	s := &RecurrenceState{
		m:      modes,
		cutoff: cutoff,
		a:      a,
		b:      b,
		g0:     g0,
		parts:  parts,
		arr0:   newLatticeBlock(cells0, dim),
		arr1:   newLatticeBlock(cells1, dim),
		arr2:   newLatticeBlock(cells2, dim),
		arr11:  newLatticeBlock(cells11, dim),
		gIn:    make([]complex128, dim),
		gInDA:  make([][]complex128, dim),
		gInDB:  make([][]complex128, dim),
	}
	for i := range s.gInDA {
		s.gInDA[i] = make([]complex128, dim*dim)
		s.gInDB[i] = make([]complex128, dim)
	}
	s.strides0 = rowMajorStrides(shapeOf(cutoff, modes))
	if modes > 1 {
		s.tailStride1 = rowMajorStrides(shapeOf(cutoff, modes-1))
	}
	if modes > 2 {
		s.tailStride2 = rowMajorStrides(shapeOf(cutoff, modes-2))
	}
	s.staggered = make([]int, dim)
	for i := 0; i < dim; i += 2 {
		s.staggered[i] = i + 1
		s.staggered[i+1] = i
	}
	return s, nil
}

func shapeOf(cutoff, n int) []int {
	shape := make([]int, n)
	for i := range shape {
		shape[i] = cutoff
	}
	return shape
}

// Run sweeps the lattice layer by layer of constant total photon number and
// returns the diagonal amplitudes with shape [cutoff]^M along with their
// gradients, shaped [cutoff]^M x 2M x 2M and [cutoff]^M x 2M.
func (s *RecurrenceState) Run() (g, dA, dB *FockTensor) {
	s.arr0.val[0] = s.g0
	for count := 0; count < (s.cutoff-1)*s.m; count++ {
		for _, params := range s.parts.Get(s.m, count) {
			if maxInt(params) >= s.cutoff {
				continue
			}
			// The off-diagonal pivots of a layer read arr1 cells the
			// diagonal pivot of the same params just wrote.
			s.applyDiagonalPivot(params)
			for d := 0; d < s.m; d++ {
				if params[d] < s.cutoff-1 {
					s.applyOffDiagonalPivot(params, d)
				}
			}
		}
	}
	dim := 2 * s.m
	shape := shapeOf(s.cutoff, s.m)
	g = FockTensorFrom(s.arr0.val, shape...)
	dA = FockTensorFrom(s.arr0.dA, append(append([]int(nil), shape...), dim, dim)...)
	dB = FockTensorFrom(s.arr0.dB, append(append([]int(nil), shape...), dim)...)
	return g, dA, dB
}

// DiagonalAmplitudes runs the compact recurrence in one call. See
// RecurrenceState for the layout of a, b and the returned gradients.
func DiagonalAmplitudes(a cvmath.Matrix, b cvmath.Vector, g0 complex128, modes, cutoff int, parts *PartitionTable) (g, dA, dB *FockTensor, err error) {
	s, err := NewRecurrenceState(a, b, g0, modes, cutoff, parts)
	if err != nil {
		return nil, nil, nil, err
	}
	g, dA, dB = s.Run()
	return g, dA, dB, nil
}

// offset helpers

func (s *RecurrenceState) off0(params []int) int {
	off := 0
	for k, p := range params {
		off += p * s.strides0[k]
	}
	return off
}

// tail1 flattens the photon numbers of every mode except excl.
func (s *RecurrenceState) tail1(excl int, params []int) int {
	off, pos := 0, 0
	for x := 0; x < s.m; x++ {
		if x == excl {
			continue
		}
		off += params[x] * s.tailStride1[pos]
		pos++
	}
	return off
}

// tail2 flattens the photon numbers of every mode except excl0 < excl1.
func (s *RecurrenceState) tail2(excl0, excl1 int, params []int) int {
	off, pos := 0, 0
	for x := 0; x < s.m; x++ {
		if x == excl0 || x == excl1 {
			continue
		}
		off += params[x] * s.tailStride2[pos]
		pos++
	}
	return off
}

func (s *RecurrenceState) off1(slot, k int, params []int) int {
	c := s.cutoff
	cells := 1
	if s.m > 1 {
		cells = s.tailStride1[0] * c // cutoff^(M-1)
	}
	return slot*(c-1)*cells + k*cells + s.tailOrZero1(slot/2, params)
}

func (s *RecurrenceState) tailOrZero1(excl int, params []int) int {
	if s.m == 1 {
		return 0
	}
	return s.tail1(excl, params)
}

func (s *RecurrenceState) off2(d, k int, params []int) int {
	c := s.cutoff
	cells := 1
	if s.m > 1 {
		cells = s.tailStride1[0] * c
	}
	return d*(c-2)*cells + k*cells + s.tailOrZero1(d, params)
}

// pairIndex enumerates the strictly-upper-triangular mode pairs row by row.
func (s *RecurrenceState) pairIndex(i, j int) int {
	return i*s.m - i*(i+1)/2 + j - i - 1
}

func (s *RecurrenceState) off11(color, pair, k1, k2 int, params []int, excl0, excl1 int) int {
	c := s.cutoff
	cells := 1
	if s.m > 2 {
		cells = s.tailStride2[0] * c // cutoff^(M-2)
	}
	pairs := s.m * (s.m - 1) / 2
	tail := 0
	if s.m > 2 {
		tail = s.tail2(excl0, excl1, params)
	}
	return color*pairs*(c-1)*(c-1)*cells +
		pair*(c-1)*(c-1)*cells + k1*(c-1)*cells + k2*cells + tail
}

// pivot application

func (s *RecurrenceState) resetInputs() {
	for i := range s.gIn {
		s.gIn[i] = 0
		zero(s.gInDA[i])
		zero(s.gInDB[i])
	}
}

func zero(xs []complex128) {
	for i := range xs {
		xs[i] = 0
	}
}

func (s *RecurrenceState) loadInput(i int, src *latticeBlock, off int) {
	dim := 2 * s.m
	s.gIn[i] = src.val[off]
	copy(s.gInDA[i], src.dA[off*dim*dim:(off+1)*dim*dim])
	copy(s.gInDB[i], src.dB[off*dim:(off+1)*dim])
}

func (s *RecurrenceState) scaleInputs(kl []float64) {
	for i, k := range kl {
		ck := complex(k, 0)
		s.gIn[i] *= ck
		for j := range s.gInDA[i] {
			s.gInDA[i][j] *= ck
		}
		for j := range s.gInDB[i] {
			s.gInDB[i][j] *= ck
		}
	}
}

// writeCell evaluates the recurrence step along variable i and stores value
// and gradients into cell off of dst. pivotVal and the pivot gradient
// slices belong to the cell the step starts from; gIn holds the already
// K-scaled lower neighbors.
func (s *RecurrenceState) writeCell(dst *latticeBlock, off, i int, ki float64, pivotVal complex128, pivotDA, pivotDB []complex128) {
	dim := 2 * s.m
	inv := complex(1/ki, 0)

	val := pivotVal * s.b[i]
	for l := 0; l < dim; l++ {
		val += s.a.At(i, l) * s.gIn[l]
	}
	dst.val[off] = val * inv

	dA := dst.dA[off*dim*dim : (off+1)*dim*dim]
	dB := dst.dB[off*dim : (off+1)*dim]
	bi := s.b[i]
	for k := range dA {
		dA[k] = pivotDA[k] * bi
	}
	for k := range dB {
		dB[k] = pivotDB[k] * bi
	}
	dB[i] += pivotVal
	for l := 0; l < dim; l++ {
		ail := s.a.At(i, l)
		if ail != 0 {
			gda, gdb := s.gInDA[l], s.gInDB[l]
			for k := range dA {
				dA[k] += ail * gda[k]
			}
			for k := range dB {
				dB[k] += ail * gdb[k]
			}
		}
		dA[i*dim+l] += s.gIn[l]
	}
	for k := range dA {
		dA[k] *= inv
	}
	for k := range dB {
		dB[k] *= inv
	}
}

// applyDiagonalPivot steps off a diagonal cell (n1 n1, n2 n2, ...) in every
// variable, filling arr1 cells of the same layer.
func (s *RecurrenceState) applyDiagonalPivot(params []int) {
	dim := 2 * s.m
	kl := make([]float64, dim)
	ki := make([]float64, dim)
	for i := 0; i < dim; i++ {
		kl[i] = math.Sqrt(float64(params[i/2]))
		ki[i] = math.Sqrt(float64(params[i/2]) + 1)
	}

	pivotOff := s.off0(params)
	pivotVal := s.arr0.val[pivotOff]
	pivotDA := s.arr0.dA[pivotOff*dim*dim : (pivotOff+1)*dim*dim]
	pivotDB := s.arr0.dB[pivotOff*dim : (pivotOff+1)*dim]

	s.resetInputs()
	for i := 0; i < dim; i++ {
		if params[i/2] > 0 {
			s.loadInput(i, s.arr1, s.off1(s.staggered[i], params[i/2]-1, params))
		}
	}
	s.scaleInputs(kl)

	for i := 0; i < dim; i++ {
		if params[i/2]+1 < s.cutoff {
			s.writeCell(s.arr1, s.off1(i, params[i/2], params), i, ki[i], pivotVal, pivotDA, pivotDB)
		}
	}
}

// applyOffDiagonalPivot steps off an arr1 cell with one extra photon in
// variable 2d, filling the next diagonal cell along with arr2 and arr11
// cells of the same layer.
func (s *RecurrenceState) applyOffDiagonalPivot(params []int, d int) {
	dim := 2 * s.m
	kl := make([]float64, dim)
	ki := make([]float64, dim)
	for i := 0; i < dim; i++ {
		n := params[i/2]
		if i == 2*d {
			n++
		}
		kl[i] = math.Sqrt(float64(n))
		ki[i] = math.Sqrt(float64(n) + 1)
	}

	pivotOff := s.off1(2*d, params[d], params)
	pivotVal := s.arr1.val[pivotOff]
	pivotDA := s.arr1.dA[pivotOff*dim*dim : (pivotOff+1)*dim*dim]
	pivotDB := s.arr1.dB[pivotOff*dim : (pivotOff+1)*dim]

	s.resetInputs()
	s.loadInput(2*d, s.arr0, s.off0(params))
	if params[d] > 0 {
		s.loadInput(2*d+1, s.arr2, s.off2(d, params[d]-1, params))
	}
	for i := d + 1; i < s.m; i++ {
		if params[i] > 0 {
			pair := s.pairIndex(d, i)
			s.loadInput(2*i, s.arr11, s.off11(1, pair, params[d], params[i]-1, params, d, i))
			s.loadInput(2*i+1, s.arr11, s.off11(0, pair, params[d], params[i]-1, params, d, i))
		}
	}
	for i := 0; i < d; i++ {
		if params[i] > 0 {
			pair := s.pairIndex(i, d)
			s.loadInput(2*i, s.arr11, s.off11(2, pair, params[i]-1, params[d], params, i, d))
			s.loadInput(2*i+1, s.arr11, s.off11(0, pair, params[i]-1, params[d], params, i, d))
		}
	}
	s.scaleInputs(kl)

	// The next diagonal cell is written once, by the pivot whose offset
	// mode is the first excited one.
	firstExcited := d == 0
	if !firstExcited {
		firstExcited = true
		for x := 0; x < d; x++ {
			if params[x] != 0 {
				firstExcited = false
				break
			}
		}
	}
	if firstExcited {
		next := make([]int, s.m)
		copy(next, params)
		next[d]++
		s.writeCell(s.arr0, s.off0(next), 2*d+1, ki[2*d+1], pivotVal, pivotDA, pivotDB)
	}

	if params[d]+2 < s.cutoff {
		s.writeCell(s.arr2, s.off2(d, params[d], params), 2*d, ki[2*d], pivotVal, pivotDA, pivotDB)
	}

	for i := d + 1; i < s.m; i++ {
		if params[i]+1 < s.cutoff {
			pair := s.pairIndex(d, i)
			s.writeCell(s.arr11, s.off11(0, pair, params[d], params[i], params, d, i), 2*i, ki[2*i], pivotVal, pivotDA, pivotDB)
			s.writeCell(s.arr11, s.off11(1, pair, params[d], params[i], params, d, i), 2*i+1, ki[2*i+1], pivotVal, pivotDA, pivotDB)
		}
	}
	for i := 0; i < d; i++ {
		if params[i]+1 < s.cutoff {
			pair := s.pairIndex(i, d)
			s.writeCell(s.arr11, s.off11(2, pair, params[i], params[d], params, i, d), 2*i+1, ki[2*i+1], pivotVal, pivotDA, pivotDB)
		}
	}
}

// InterleavePerm returns the permutation that turns block variable order
// (all of one group, then all of the other) into the interleaved order the
// compact recurrence expects: new variable 2i reads old variable modes+i
// and new variable 2i+1 reads old variable i.
func InterleavePerm(modes int) []int {
	perm := make([]int, 2*modes)
	for i := 0; i < modes; i++ {
		perm[2*i] = modes + i
		perm[2*i+1] = i
	}
	return perm
}
