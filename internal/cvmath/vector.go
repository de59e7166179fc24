package cvmath

import "math/cmplx"

// Vector is a dense complex vector.
type Vector []complex128

// NewVector returns a zero-initialized vector of length n.
func NewVector(n int) Vector { return make(Vector, n) }

// Clone returns a deep copy.
func (v Vector) Clone() Vector {
	out := make(Vector, len(v))
	copy(out, v)
	return out
}

// Conj returns the elementwise complex conjugate.
func (v Vector) Conj() Vector {
	out := make(Vector, len(v))
	for i, x := range v {
		out[i] = cmplx.Conj(x)
	}
	return out
}

// Add returns v + other. Panics on length mismatch.
func (v Vector) Add(other Vector) Vector {
	if len(v) != len(other) {
		panic("cvmath: Add length mismatch")
	}
	out := make(Vector, len(v))
	for i := range v {
		out[i] = v[i] + other[i]
	}
	return out
}

// Sub returns v - other. Panics on length mismatch.
func (v Vector) Sub(other Vector) Vector {
	if len(v) != len(other) {
		panic("cvmath: Sub length mismatch")
	}
	out := make(Vector, len(v))
	for i := range v {
		out[i] = v[i] - other[i]
	}
	return out
}

// Scale returns s * v.
func (v Vector) Scale(s complex128) Vector {
	out := make(Vector, len(v))
	for i, x := range v {
		out[i] = s * x
	}
	return out
}

// Dot returns the unconjugated bilinear product sum_i v_i * other_i.
func (v Vector) Dot(other Vector) complex128 {
	if len(v) != len(other) {
		panic("cvmath: Dot length mismatch")
	}
	var acc complex128
	for i := range v {
		acc += v[i] * other[i]
	}
	return acc
}

// Concat returns the concatenation of v and other.
func (v Vector) Concat(other Vector) Vector {
	out := make(Vector, 0, len(v)+len(other))
	out = append(out, v...)
	out = append(out, other...)
	return out
}

// Gather returns the elements at the given indices, in order.
func (v Vector) Gather(idx []int) Vector {
	out := make(Vector, len(idx))
	for i, k := range idx {
		out[i] = v[k]
	}
	return out
}

// EqualWithin reports whether v and other agree elementwise within tol.
func (v Vector) EqualWithin(other Vector, tol float64) bool {
	if len(v) != len(other) {
		return false
	}
	for i := range v {
		if cmplx.Abs(v[i]-other[i]) > tol {
			return false
		}
	}
	return true
}
