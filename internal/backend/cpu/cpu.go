package cpu

import (
	"fmt"
	"math/cmplx"

	"github.com/lattica-dev/lattica/internal/cvmath"
)

// Backend is the pure-Go complex128 compute backend.
type Backend struct{}

// Compile-time check that Backend implements cvmath.Backend.
var _ cvmath.Backend = (*Backend)(nil)

// New creates a new CPU backend.
func New() *Backend { return &Backend{} }

// Name identifies the backend implementation.
func (b *Backend) Name() string { return "cpu" }

// MatMul returns x @ y.
func (b *Backend) MatMul(x, y cvmath.Matrix) cvmath.Matrix {
	if x.Cols() != y.Rows() {
		panic(fmt.Sprintf("cpu: MatMul inner dimension mismatch: %dx%d @ %dx%d",
			x.Rows(), x.Cols(), y.Rows(), y.Cols()))
	}
	out := cvmath.NewMatrix(x.Rows(), y.Cols())
	for i := 0; i < x.Rows(); i++ {
		for k := 0; k < x.Cols(); k++ {
			xv := x.At(i, k)
			if xv == 0 {
				continue
			}
			for j := 0; j < y.Cols(); j++ {
				out.Set(i, j, out.At(i, j)+xv*y.At(k, j))
			}
		}
	}
	return out
}

// MatVec returns a @ x.
func (b *Backend) MatVec(a cvmath.Matrix, x cvmath.Vector) cvmath.Vector {
	if a.Cols() != len(x) {
		panic(fmt.Sprintf("cpu: MatVec dimension mismatch: %dx%d @ %d", a.Rows(), a.Cols(), len(x)))
	}
	out := cvmath.NewVector(a.Rows())
	for i := 0; i < a.Rows(); i++ {
		var acc complex128
		for j := 0; j < a.Cols(); j++ {
			acc += a.At(i, j) * x[j]
		}
		out[i] = acc
	}
	return out
}

// lu computes an in-place LU factorization with partial pivoting.
// Returns the permutation sign and ErrSingularMatrix if a pivot vanishes.
func lu(m cvmath.Matrix) (perm []int, sign complex128, err error) {
	n := m.Rows()
	perm = make([]int, n)
	for i := range perm {
		perm[i] = i
	}
	sign = 1
	for col := 0; col < n; col++ {
		// pivot row: largest magnitude in the column
		p := col
		best := cmplx.Abs(m.At(col, col))
		for r := col + 1; r < n; r++ {
			if v := cmplx.Abs(m.At(r, col)); v > best {
				best, p = v, r
			}
		}
		if best == 0 {
			return nil, 0, cvmath.ErrSingularMatrix
		}
		if p != col {
			for j := 0; j < n; j++ {
				tmp := m.At(col, j)
				m.Set(col, j, m.At(p, j))
				m.Set(p, j, tmp)
			}
			perm[col], perm[p] = perm[p], perm[col]
			sign = -sign
		}
		pivot := m.At(col, col)
		for r := col + 1; r < n; r++ {
			f := m.At(r, col) / pivot
			m.Set(r, col, f)
			for j := col + 1; j < n; j++ {
				m.Set(r, j, m.At(r, j)-f*m.At(col, j))
			}
		}
	}
	return perm, sign, nil
}

// Det returns the determinant of the square matrix a.
func (b *Backend) Det(a cvmath.Matrix) complex128 {
	if !a.IsSquare() {
		panic(fmt.Sprintf("cpu: Det of non-square %dx%d matrix", a.Rows(), a.Cols()))
	}
	m := a.Clone()
	_, sign, err := lu(m)
	if err != nil {
		return 0
	}
	det := sign
	for i := 0; i < m.Rows(); i++ {
		det *= m.At(i, i)
	}
	return det
}

// Inv returns the inverse of the square matrix a.
func (b *Backend) Inv(a cvmath.Matrix) (cvmath.Matrix, error) {
	if !a.IsSquare() {
		return cvmath.Matrix{}, &cvmath.ShapeError{Op: "Inv", Want: "square matrix",
			Got: fmt.Sprintf("%dx%d", a.Rows(), a.Cols())}
	}
	n := a.Rows()
	m := a.Clone()
	perm, _, err := lu(m)
	if err != nil {
		return cvmath.Matrix{}, err
	}
	out := cvmath.NewMatrix(n, n)
	rhs := cvmath.NewVector(n)
	for col := 0; col < n; col++ {
		for i := range rhs {
			rhs[i] = 0
		}
		rhs[col] = 1
		x := luSolve(m, perm, rhs)
		for i := 0; i < n; i++ {
			out.Set(i, col, x[i])
		}
	}
	return out, nil
}

// Solve returns x such that a @ x = rhs.
func (b *Backend) Solve(a cvmath.Matrix, rhs cvmath.Vector) (cvmath.Vector, error) {
	if !a.IsSquare() || a.Rows() != len(rhs) {
		return nil, &cvmath.ShapeError{Op: "Solve",
			Want: fmt.Sprintf("square matrix matching rhs length %d", len(rhs)),
			Got:  fmt.Sprintf("%dx%d", a.Rows(), a.Cols())}
	}
	m := a.Clone()
	perm, _, err := lu(m)
	if err != nil {
		return nil, err
	}
	return luSolve(m, perm, rhs), nil
}

func luSolve(m cvmath.Matrix, perm []int, rhs cvmath.Vector) cvmath.Vector {
	n := m.Rows()
	x := cvmath.NewVector(n)
	// forward substitution with permuted rhs
	for i := 0; i < n; i++ {
		acc := rhs[perm[i]]
		for j := 0; j < i; j++ {
			acc -= m.At(i, j) * x[j]
		}
		x[i] = acc
	}
	// back substitution
	for i := n - 1; i >= 0; i-- {
		acc := x[i]
		for j := i + 1; j < n; j++ {
			acc -= m.At(i, j) * x[j]
		}
		x[i] = acc / m.At(i, i)
	}
	return x
}

// BlockDiag returns the block-diagonal combination of x and y.
func (b *Backend) BlockDiag(x, y cvmath.Matrix) cvmath.Matrix {
	out := cvmath.NewMatrix(x.Rows()+y.Rows(), x.Cols()+y.Cols())
	for i := 0; i < x.Rows(); i++ {
		for j := 0; j < x.Cols(); j++ {
			out.Set(i, j, x.At(i, j))
		}
	}
	for i := 0; i < y.Rows(); i++ {
		for j := 0; j < y.Cols(); j++ {
			out.Set(x.Rows()+i, x.Cols()+j, y.At(i, j))
		}
	}
	return out
}

// Kron returns the Kronecker product of x and y.
func (b *Backend) Kron(x, y cvmath.Matrix) cvmath.Matrix {
	out := cvmath.NewMatrix(x.Rows()*y.Rows(), x.Cols()*y.Cols())
	for i := 0; i < x.Rows(); i++ {
		for j := 0; j < x.Cols(); j++ {
			xv := x.At(i, j)
			for k := 0; k < y.Rows(); k++ {
				for l := 0; l < y.Cols(); l++ {
					out.Set(i*y.Rows()+k, j*y.Cols()+l, xv*y.At(k, l))
				}
			}
		}
	}
	return out
}
