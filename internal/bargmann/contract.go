package bargmann

import (
	"fmt"
	"math/cmplx"

	"github.com/lattica-dev/lattica/internal/cvmath"
)

// Contract eliminates the marked variable pairs between t and other and
// returns the reduced triple. The k-th marked index of t pairs with the
// k-th marked index of other; each pair is integrated out through the
// Gaussian-integral identity
//
//	A' = Abar - D M^-1 D^T
//	b' = bbar - D M^-1 bm
//	c' = c * exp(-bm^T M^-1 bm / 2) / sqrt(-det M)
//
// where M is the 2x2 coupling block of the pair (cross entries offset by
// -1, encoding the delta-function identity) and D holds the pair's columns
// restricted to the surviving variables.
//
// Contraction is associative and independent of the order in which the
// marked pairs are processed. A ContractionError is returned when some
// coupling block is non-invertible.
func (t Triple) Contract(other Triple) (Triple, error) {
	if len(t.marked) != len(other.marked) {
		return Triple{}, &cvmath.ShapeError{Op: "Contract",
			Want: fmt.Sprintf("%d marked indices on both sides", len(t.marked)),
			Got:  fmt.Sprintf("%d on the right-hand side", len(other.marked))}
	}
	joint := t.Tensor(other)
	offset := t.Dim()

	// pos maps surviving joint variables to their original joint index.
	pos := make([]int, joint.Dim())
	for i := range pos {
		pos[i] = i
	}
	find := func(orig int) int {
		for i, v := range pos {
			if v == orig {
				return i
			}
		}
		return -1
	}

	for k := range t.marked {
		p := find(t.marked[k])
		q := find(offset + other.marked[k])
		if p < 0 || q < 0 {
			return Triple{}, &cvmath.ShapeError{Op: "Contract",
				Want: "distinct marked indices",
				Got:  fmt.Sprintf("pair (%d, %d) already eliminated", t.marked[k], other.marked[k])}
		}
		for entry := range joint.a {
			a, b, c, err := eliminate(t.be, joint.a[entry], joint.b[entry], joint.c[entry], p, q)
			if err != nil {
				return Triple{}, &ContractionError{SelfIndex: t.marked[k], OtherIndex: other.marked[k]}
			}
			joint.a[entry], joint.b[entry], joint.c[entry] = a, b, c
		}
		// Drop the two eliminated variables from the survivor map. Higher
		// positions shift down, which keeps self variables ahead of other
		// variables for the remaining pairs.
		pos = append(pos[:q], pos[q+1:]...)
		pos = append(pos[:p], pos[p+1:]...)
	}
	joint.marked = nil
	return joint, nil
}

// eliminate integrates out the conjugate variable pair at positions p < q
// of a single batch entry.
func eliminate(be cvmath.Backend, a cvmath.Matrix, b cvmath.Vector, c complex128, p, q int) (cvmath.Matrix, cvmath.Vector, complex128, error) {
	dim := a.Rows()
	noij := make([]int, 0, dim-2)
	for i := 0; i < dim; i++ {
		if i != p && i != q {
			noij = append(noij, i)
		}
	}

	m := cvmath.NewMatrix(2, 2)
	m.Set(0, 0, a.At(p, p))
	m.Set(0, 1, a.At(q, p)-1)
	m.Set(1, 0, a.At(p, q)-1)
	m.Set(1, 1, a.At(q, q))
	minv, err := be.Inv(m)
	if err != nil {
		return cvmath.Matrix{}, nil, 0, err
	}

	abar := a.Submatrix(noij, noij)
	bbar := b.Gather(noij)
	d := a.Submatrix(noij, []int{p, q})
	bm := cvmath.Vector{b[p], b[q]}

	// A' = Abar - D Minv D^T
	newA := abar.Sub(be.MatMul(be.MatMul(d, minv), d.T()))
	// b' = bbar - D Minv bm
	minvBm := be.MatVec(minv, bm)
	newB := bbar.Sub(be.MatVec(d, minvBm))
	// c' = c exp(-bm Minv bm / 2) / sqrt(-det M)
	detM := m.At(0, 0)*m.At(1, 1) - m.At(0, 1)*m.At(1, 0)
	newC := c * cmplx.Exp(-0.5*bm.Dot(minvBm)) / cmplx.Sqrt(-detM)
	return newA, newB, newC, nil
}
