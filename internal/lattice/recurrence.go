package lattice

import (
	"fmt"
	"math"

	"github.com/lattica-dev/lattica/internal/cvmath"
)

// Amplitudes fills the dense Fock tensor of an exponential-quadratic
// functional with matrix a, vector b and scalar c, one cell per
// photon-number index up to the requested shape. The dimension of a and b
// must equal the tensor rank.
//
// Each cell follows from its lower neighbors along the axis of its first
// non-zero index:
//
//	G[n] = (b_i G[n-e_i] + sum_j a_ij sqrt(n_j - d_ij) G[n-e_i-e_j]) / sqrt(n_i)
func Amplitudes(a cvmath.Matrix, b cvmath.Vector, c complex128, shape []int) (*FockTensor, error) {
	g, _, _, err := run(a, b, c, shape, false)
	return g, err
}

// AmplitudesWithGrad is Amplitudes plus the gradients of every cell with
// respect to the entries of a and b, accumulated forward through the
// recurrence. The gradient tensors carry the cell shape followed by (D, D)
// for a and (D,) for b, where D is the tensor rank.
func AmplitudesWithGrad(a cvmath.Matrix, b cvmath.Vector, c complex128, shape []int) (g, dA, dB *FockTensor, err error) {
	return run(a, b, c, shape, true)
}

func run(a cvmath.Matrix, b cvmath.Vector, c complex128, shape []int, grad bool) (*FockTensor, *FockTensor, *FockTensor, error) {
	dim := len(shape)
	if r, cc := a.Rows(), a.Cols(); r != dim || cc != dim || len(b) != dim {
		return nil, nil, nil, &cvmath.ShapeError{Op: "lattice.Amplitudes",
			Want: fmt.Sprintf("%dx%d A and b of length %d", dim, dim, dim),
			Got:  fmt.Sprintf("%dx%d A, b of length %d", r, cc, len(b))}
	}
	cells := 1
	for _, s := range shape {
		cells *= s
	}
	weight := 1
	if grad {
		weight += dim*dim + dim
	}
	if cells*weight > MaxLatticeCells {
		return nil, nil, nil, &OverflowError{Modes: dim, Cutoff: maxInt(shape), Cells: cells * weight}
	}

	g := NewFockTensor(shape...)
	var dA, dB *FockTensor
	if grad {
		dA = NewFockTensor(append(append([]int(nil), shape...), dim, dim)...)
		dB = NewFockTensor(append(append([]int(nil), shape...), dim)...)
	}

	g.data[0] = c
	idx := make([]int, dim)
	for flat := 1; flat < cells; flat++ {
		unravel(flat, g.strides, idx)
		i := 0
		for idx[i] == 0 {
			i++
		}
		// Predecessor n = idx - e_i sits at a lower flat offset, so it
		// is already filled.
		base := flat - g.strides[i]
		val := b[i] * g.data[base]
		for j := 0; j < dim; j++ {
			nj := idx[j]
			if j == i {
				nj--
			}
			if nj == 0 {
				continue
			}
			val += a.At(i, j) * complex(math.Sqrt(float64(nj)), 0) * g.data[base-g.strides[j]]
		}
		norm := complex(1/math.Sqrt(float64(idx[i])), 0)
		g.data[flat] = val * norm

		if !grad {
			continue
		}
		blockA := dim * dim
		outA := dA.data[flat*blockA : (flat+1)*blockA]
		outB := dB.data[flat*dim : (flat+1)*dim]
		inA := dA.data[base*blockA : (base+1)*blockA]
		inB := dB.data[base*dim : (base+1)*dim]
		for k := 0; k < blockA; k++ {
			outA[k] = b[i] * inA[k]
		}
		for k := 0; k < dim; k++ {
			outB[k] = b[i] * inB[k]
		}
		outB[i] += g.data[base]
		for j := 0; j < dim; j++ {
			nj := idx[j]
			if j == i {
				nj--
			}
			if nj == 0 {
				continue
			}
			w := complex(math.Sqrt(float64(nj)), 0)
			prev := base - g.strides[j]
			pA := dA.data[prev*blockA : (prev+1)*blockA]
			pB := dB.data[prev*dim : (prev+1)*dim]
			aij := a.At(i, j)
			for k := 0; k < blockA; k++ {
				outA[k] += aij * w * pA[k]
			}
			for k := 0; k < dim; k++ {
				outB[k] += aij * w * pB[k]
			}
			outA[i*dim+j] += w * g.data[prev]
		}
		for k := 0; k < blockA; k++ {
			outA[k] *= norm
		}
		for k := 0; k < dim; k++ {
			outB[k] *= norm
		}
	}
	return g, dA, dB, nil
}

func maxInt(xs []int) int {
	m := 0
	for _, x := range xs {
		if x > m {
			m = x
		}
	}
	return m
}
