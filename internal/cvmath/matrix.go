package cvmath

import (
	"fmt"
	"math/cmplx"
)

// Matrix is a dense row-major complex matrix with value semantics.
// Structural helpers (transpose, conjugation, element access) are methods;
// numerically heavy operations go through a Backend.
type Matrix struct {
	rows, cols int
	data       []complex128
}

// NewMatrix returns a zero-initialized rows x cols matrix.
func NewMatrix(rows, cols int) Matrix {
	if rows < 0 || cols < 0 {
		panic(fmt.Sprintf("cvmath: negative matrix dimensions %dx%d", rows, cols))
	}
	return Matrix{rows: rows, cols: cols, data: make([]complex128, rows*cols)}
}

// MatrixFromSlice builds a matrix from row-major data. The slice is copied.
func MatrixFromSlice(rows, cols int, data []complex128) (Matrix, error) {
	if len(data) != rows*cols {
		return Matrix{}, &ShapeError{
			Op:   "MatrixFromSlice",
			Want: fmt.Sprintf("%d elements for %dx%d", rows*cols, rows, cols),
			Got:  fmt.Sprintf("%d elements", len(data)),
		}
	}
	m := NewMatrix(rows, cols)
	copy(m.data, data)
	return m, nil
}

// Eye returns the n x n identity matrix.
func Eye(n int) Matrix {
	m := NewMatrix(n, n)
	for i := 0; i < n; i++ {
		m.data[i*n+i] = 1
	}
	return m
}

// Diag returns a square matrix with d on the diagonal.
func Diag(d Vector) Matrix {
	n := len(d)
	m := NewMatrix(n, n)
	for i, v := range d {
		m.data[i*n+i] = v
	}
	return m
}

// Rows returns the number of rows.
func (m Matrix) Rows() int { return m.rows }

// Cols returns the number of columns.
func (m Matrix) Cols() int { return m.cols }

// IsSquare reports whether the matrix is square.
func (m Matrix) IsSquare() bool { return m.rows == m.cols }

// At returns the element at (i, j). Panics if out of bounds.
func (m Matrix) At(i, j int) complex128 {
	m.check(i, j)
	return m.data[i*m.cols+j]
}

// Set writes the element at (i, j). Panics if out of bounds.
func (m Matrix) Set(i, j int, v complex128) {
	m.check(i, j)
	m.data[i*m.cols+j] = v
}

func (m Matrix) check(i, j int) {
	if i < 0 || i >= m.rows || j < 0 || j >= m.cols {
		panic(fmt.Sprintf("cvmath: index (%d,%d) out of bounds for %dx%d matrix", i, j, m.rows, m.cols))
	}
}

// Row returns a copy of row i.
func (m Matrix) Row(i int) Vector {
	out := make(Vector, m.cols)
	copy(out, m.data[i*m.cols:(i+1)*m.cols])
	return out
}

// Data returns the underlying row-major slice. Mutations are visible to the
// matrix; callers that need isolation should Clone first.
func (m Matrix) Data() []complex128 { return m.data }

// Clone returns a deep copy.
func (m Matrix) Clone() Matrix {
	out := NewMatrix(m.rows, m.cols)
	copy(out.data, m.data)
	return out
}

// T returns the transpose.
func (m Matrix) T() Matrix {
	out := NewMatrix(m.cols, m.rows)
	for i := 0; i < m.rows; i++ {
		for j := 0; j < m.cols; j++ {
			out.data[j*out.cols+i] = m.data[i*m.cols+j]
		}
	}
	return out
}

// Conj returns the elementwise complex conjugate.
func (m Matrix) Conj() Matrix {
	out := NewMatrix(m.rows, m.cols)
	for i, v := range m.data {
		out.data[i] = cmplx.Conj(v)
	}
	return out
}

// Dagger returns the conjugate transpose.
func (m Matrix) Dagger() Matrix { return m.Conj().T() }

// Add returns m + other. Panics on shape mismatch.
func (m Matrix) Add(other Matrix) Matrix {
	if m.rows != other.rows || m.cols != other.cols {
		panic(shapePanic("Add", m, other))
	}
	out := NewMatrix(m.rows, m.cols)
	for i := range m.data {
		out.data[i] = m.data[i] + other.data[i]
	}
	return out
}

// Sub returns m - other. Panics on shape mismatch.
func (m Matrix) Sub(other Matrix) Matrix {
	if m.rows != other.rows || m.cols != other.cols {
		panic(shapePanic("Sub", m, other))
	}
	out := NewMatrix(m.rows, m.cols)
	for i := range m.data {
		out.data[i] = m.data[i] - other.data[i]
	}
	return out
}

// Scale returns s * m.
func (m Matrix) Scale(s complex128) Matrix {
	out := NewMatrix(m.rows, m.cols)
	for i, v := range m.data {
		out.data[i] = s * v
	}
	return out
}

// Submatrix gathers the given rows and columns, in order.
// Panics if an index is out of range.
func (m Matrix) Submatrix(rows, cols []int) Matrix {
	out := NewMatrix(len(rows), len(cols))
	for i, r := range rows {
		for j, c := range cols {
			out.data[i*out.cols+j] = m.At(r, c)
		}
	}
	return out
}

// EqualWithin reports whether m and other agree elementwise within tol.
func (m Matrix) EqualWithin(other Matrix, tol float64) bool {
	if m.rows != other.rows || m.cols != other.cols {
		return false
	}
	for i := range m.data {
		if cmplx.Abs(m.data[i]-other.data[i]) > tol {
			return false
		}
	}
	return true
}

// String returns a compact human-readable form.
func (m Matrix) String() string {
	return fmt.Sprintf("Matrix(%dx%d)%v", m.rows, m.cols, m.data)
}

func shapePanic(op string, a, b Matrix) string {
	return fmt.Sprintf("cvmath: %s shape mismatch: %dx%d vs %dx%d", op, a.rows, a.cols, b.rows, b.cols)
}
