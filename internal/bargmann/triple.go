package bargmann

import (
	"fmt"
	"math/cmplx"

	"github.com/lattica-dev/lattica/internal/cvmath"
)

// Triple is a batched (A, b, c) exponential-quadratic functional.
// All batch entries share the same variable dimensionality.
type Triple struct {
	a []cvmath.Matrix
	b []cvmath.Vector
	c []complex128

	be cvmath.Backend

	// marked is the transient contraction-index annotation set by Mark.
	// It designates which variables pair up in the next Contract call and
	// is not part of the persistent value.
	marked []int
}

// New builds a triple from batched components. When c is nil, every
// coefficient defaults to 1. All batch entries must agree on the variable
// dimension; violations return a ShapeError wrapping ErrShapeMismatch.
func New(a []cvmath.Matrix, b []cvmath.Vector, c []complex128, be cvmath.Backend) (Triple, error) {
	if len(a) == 0 || len(a) != len(b) {
		return Triple{}, &cvmath.ShapeError{Op: "bargmann.New",
			Want: "equal non-empty A and b batches",
			Got:  fmt.Sprintf("len(A)=%d, len(b)=%d", len(a), len(b))}
	}
	if c == nil {
		c = make([]complex128, len(a))
		for i := range c {
			c[i] = 1
		}
	}
	if len(c) != len(a) {
		return Triple{}, &cvmath.ShapeError{Op: "bargmann.New",
			Want: fmt.Sprintf("len(c)=%d", len(a)), Got: fmt.Sprintf("len(c)=%d", len(c))}
	}
	dim := a[0].Rows()
	for i := range a {
		if !a[i].IsSquare() || a[i].Rows() != dim || len(b[i]) != dim {
			return Triple{}, &cvmath.ShapeError{Op: "bargmann.New",
				Want: fmt.Sprintf("square A and b of dim %d in batch entry %d", dim, i),
				Got:  fmt.Sprintf("A %dx%d, b len %d", a[i].Rows(), a[i].Cols(), len(b[i]))}
		}
	}
	return Triple{a: a, b: b, c: c, be: be}, nil
}

// FromSingle builds an unbatched triple from one (A, b, c).
func FromSingle(a cvmath.Matrix, b cvmath.Vector, c complex128, be cvmath.Backend) (Triple, error) {
	return New([]cvmath.Matrix{a}, []cvmath.Vector{b}, []complex128{c}, be)
}

// Dim returns the variable dimensionality.
func (t Triple) Dim() int { return t.a[0].Rows() }

// BatchSize returns the number of summed terms.
func (t Triple) BatchSize() int { return len(t.a) }

// A returns the quadratic coefficient of batch entry i.
func (t Triple) A(i int) cvmath.Matrix { return t.a[i] }

// B returns the linear coefficient of batch entry i.
func (t Triple) B(i int) cvmath.Vector { return t.b[i] }

// C returns the constant of batch entry i.
func (t Triple) C(i int) complex128 { return t.c[i] }

// Backend returns the compute backend of this triple.
func (t Triple) Backend() cvmath.Backend { return t.be }

// Value evaluates the represented function at the point x.
func (t Triple) Value(x cvmath.Vector) (complex128, error) {
	if len(x) != t.Dim() {
		return 0, &cvmath.ShapeError{Op: "Value",
			Want: fmt.Sprintf("point of dim %d", t.Dim()), Got: fmt.Sprintf("dim %d", len(x))}
	}
	var val complex128
	for i := range t.a {
		ax := t.be.MatVec(t.a[i], x)
		val += t.c[i] * cmplx.Exp(0.5*x.Dot(ax)+x.Dot(t.b[i]))
	}
	return val, nil
}

// Add returns the sum of the two functionals by concatenating batches.
// The variable dimensions must agree.
func (t Triple) Add(other Triple) (Triple, error) {
	if t.Dim() != other.Dim() {
		return Triple{}, &cvmath.ShapeError{Op: "Add",
			Want: fmt.Sprintf("dim %d", t.Dim()), Got: fmt.Sprintf("dim %d", other.Dim())}
	}
	a := append(append([]cvmath.Matrix{}, t.a...), other.a...)
	b := append(append([]cvmath.Vector{}, t.b...), other.b...)
	c := append(append([]complex128{}, t.c...), other.c...)
	return Triple{a: a, b: b, c: c, be: t.be}, nil
}

// Neg returns the functional with all coefficients negated.
func (t Triple) Neg() Triple { return t.Scale(-1) }

// Scale multiplies every coefficient by s; A and b are untouched.
func (t Triple) Scale(s complex128) Triple {
	c := make([]complex128, len(t.c))
	for i, v := range t.c {
		c[i] = s * v
	}
	return Triple{a: t.a, b: t.b, c: c, be: t.be}
}

// Mul returns the product of the two functionals over the same variables:
// pairwise A sums, b sums and c products over the batch cross product.
func (t Triple) Mul(other Triple) (Triple, error) {
	if t.Dim() != other.Dim() {
		return Triple{}, &cvmath.ShapeError{Op: "Mul",
			Want: fmt.Sprintf("dim %d", t.Dim()), Got: fmt.Sprintf("dim %d", other.Dim())}
	}
	n := len(t.a) * len(other.a)
	a := make([]cvmath.Matrix, 0, n)
	b := make([]cvmath.Vector, 0, n)
	c := make([]complex128, 0, n)
	for i := range t.a {
		for j := range other.a {
			a = append(a, t.a[i].Add(other.a[j]))
			b = append(b, t.b[i].Add(other.b[j]))
			c = append(c, t.c[i]*other.c[j])
		}
	}
	return Triple{a: a, b: b, c: c, be: t.be}, nil
}

// Tensor returns the product of the two functionals on disjoint variables:
// block-diagonal A, concatenated b, multiplied c, over the batch cross
// product.
func (t Triple) Tensor(other Triple) Triple {
	n := len(t.a) * len(other.a)
	a := make([]cvmath.Matrix, 0, n)
	b := make([]cvmath.Vector, 0, n)
	c := make([]complex128, 0, n)
	for i := range t.a {
		for j := range other.a {
			a = append(a, t.be.BlockDiag(t.a[i], other.a[j]))
			b = append(b, t.b[i].Concat(other.b[j]))
			c = append(c, t.c[i]*other.c[j])
		}
	}
	return Triple{a: a, b: b, c: c, be: t.be}
}

// Conj returns the complex conjugate of the functional.
func (t Triple) Conj() Triple {
	a := make([]cvmath.Matrix, len(t.a))
	b := make([]cvmath.Vector, len(t.b))
	c := make([]complex128, len(t.c))
	for i := range t.a {
		a[i] = t.a[i].Conj()
		b[i] = t.b[i].Conj()
		c[i] = cmplx.Conj(t.c[i])
	}
	return Triple{a: a, b: b, c: c, be: t.be}
}

// Reorder permutes the variables of the functional.
func (t Triple) Reorder(perm []int) (Triple, error) {
	if len(perm) != t.Dim() {
		return Triple{}, &cvmath.ShapeError{Op: "Reorder",
			Want: fmt.Sprintf("permutation of length %d", t.Dim()),
			Got:  fmt.Sprintf("length %d", len(perm))}
	}
	a := make([]cvmath.Matrix, len(t.a))
	b := make([]cvmath.Vector, len(t.b))
	for i := range t.a {
		a[i] = t.a[i].Submatrix(perm, perm)
		b[i] = t.b[i].Gather(perm)
	}
	return Triple{a: a, b: b, c: append([]complex128{}, t.c...), be: t.be}, nil
}

// Mark annotates a subset of variable indices for the next contraction.
// It returns a view; A, b and c are untouched.
func (t Triple) Mark(indices ...int) Triple {
	for _, i := range indices {
		if i < 0 || i >= t.Dim() {
			panic(fmt.Sprintf("bargmann: marked index %d out of range for dim %d", i, t.Dim()))
		}
	}
	out := t
	out.marked = append([]int{}, indices...)
	return out
}

// Marked returns the currently marked indices.
func (t Triple) Marked() []int { return t.marked }

// EqualWithin reports whether the two triples represent numerically equal
// data within tol, up to batch reordering.
func (t Triple) EqualWithin(other Triple, tol float64) bool {
	if t.Dim() != other.Dim() || t.BatchSize() != other.BatchSize() {
		return false
	}
	used := make([]bool, other.BatchSize())
outer:
	for i := range t.a {
		for j := range other.a {
			if used[j] {
				continue
			}
			if t.a[i].EqualWithin(other.a[j], tol) &&
				t.b[i].EqualWithin(other.b[j], tol) &&
				cmplx.Abs(t.c[i]-other.c[j]) <= tol {
				used[j] = true
				continue outer
			}
		}
		return false
	}
	return true
}

// String returns a compact description.
func (t Triple) String() string {
	return fmt.Sprintf("Triple(dim=%d, batch=%d)", t.Dim(), t.BatchSize())
}
