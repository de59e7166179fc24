package rep

import (
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/mat"

	"github.com/lattica-dev/lattica/internal/bargmann"
	"github.com/lattica-dev/lattica/internal/cvmath"
	"github.com/lattica-dev/lattica/internal/lattice"
)

// purityTol is the purity defect below which a Gaussian state is converted
// as a ket rather than a density matrix.
const purityTol = 1e-6

// rotmat maps xxpp phase-space coordinates to the holomorphic pairs
// (alpha, conj alpha): (1/sqrt2) [[I, iI], [I, -iI]].
func rotmat(n int) cvmath.Matrix {
	r := cvmath.NewMatrix(2*n, 2*n)
	s := complex(1/math.Sqrt2, 0)
	for i := 0; i < n; i++ {
		r.Set(i, i, s)
		r.Set(i, n+i, s*1i)
		r.Set(n+i, i, s)
		r.Set(n+i, n+i, -s*1i)
	}
	return r
}

// xmat swaps the two halves of the holomorphic variable blocks.
func xmat(n int) cvmath.Matrix {
	x := cvmath.NewMatrix(2*n, 2*n)
	for i := 0; i < n; i++ {
		x.Set(i, n+i, 1)
		x.Set(n+i, i, 1)
	}
	return x
}

func complexMatrix(m *mat.Dense, scale float64) cvmath.Matrix {
	r, c := m.Dims()
	out := cvmath.NewMatrix(r, c)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			out.Set(i, j, complex(m.At(i, j)*scale, 0))
		}
	}
	return out
}

func complexVector(v *mat.VecDense, scale float64) cvmath.Vector {
	out := cvmath.NewVector(v.Len())
	for i := range out {
		out[i] = complex(v.AtVec(i)*scale, 0)
	}
	return out
}

// wignerTriple turns Wigner covariance and means into a Bargmann triple,
// either over M variables (ket, pure states only) or over 2M variables
// (density matrix, bra block first). The sign convention is fixed so that
// the returned triple feeds the amplitude recurrence directly: a coherent
// state comes out as (A=0, b=alpha, c=exp(-|alpha|^2/2)).
func wignerTriple(cov *mat.Dense, means *mat.VecDense, hbar float64, full bool, be cvmath.Backend) (cvmath.Matrix, cvmath.Vector, complex128, error) {
	n2, _ := cov.Dims()
	n := n2 / 2

	r := rotmat(n)
	sigma := be.MatMul(be.MatMul(r, complexMatrix(cov, 1/hbar)), r.Dagger())
	beta := be.MatVec(r, complexVector(means, 1/math.Sqrt(hbar)))

	q := sigma.Add(cvmath.Eye(n2).Scale(0.5))
	qinv, err := be.Inv(q)
	if err != nil {
		return cvmath.Matrix{}, nil, 0, err
	}
	detQ := be.Det(q)
	a := be.MatMul(xmat(n), cvmath.Eye(n2).Sub(qinv))

	if !full {
		idx := make([]int, n)
		for i := range idx {
			idx[i] = i
		}
		ah := a.Submatrix(idx, idx)
		bh := cvmath.NewVector(n)
		for i := 0; i < n; i++ {
			bh[i] = beta[n+i]
			for j := 0; j < n; j++ {
				bh[i] -= ah.At(i, j) * beta[j]
			}
		}
		var expo complex128
		for i := 0; i < n; i++ {
			expo -= 0.5 * beta[i] * bh[i]
		}
		c := cmplx.Exp(expo) / cmplx.Sqrt(cmplx.Sqrt(detQ))
		return ah.Conj(), bh.Conj(), cmplx.Conj(c), nil
	}

	bf := cvmath.NewVector(n2)
	for i := 0; i < n2; i++ {
		for j := 0; j < n2; j++ {
			bf[i] += qinv.At(j, i) * cmplx.Conj(beta[j])
		}
	}
	var expo complex128
	for i := 0; i < n2; i++ {
		for j := 0; j < n2; j++ {
			expo -= 0.5 * cmplx.Conj(beta[i]) * qinv.At(i, j) * beta[j]
		}
	}
	c := cmplx.Exp(expo) / cmplx.Sqrt(detQ)

	// Conjugate, then move the conjugated block first so the density
	// matrix comes out bra block first.
	ac, bc := a.Conj(), bf.Conj()
	perm := make([]int, n2)
	for i := 0; i < n; i++ {
		perm[i] = n + i
		perm[n+i] = i
	}
	return ac.Submatrix(perm, perm), bc.Gather(perm), cmplx.Conj(c), nil
}

// ToBargmann converts a representation to its Bargmann triple. Gaussian
// states become kets when pure and density matrices otherwise; Fock and
// quadrature data have no exact Bargmann form.
func ToBargmann(r Representation, be cvmath.Backend) (*Bargmann, error) {
	switch v := r.(type) {
	case *Bargmann:
		return v, nil
	case *Gaussian:
		full := !v.IsPure(purityTol)
		a, b, c, err := wignerTriple(v.Cov, v.Means, v.HBar, full, be)
		if err != nil {
			return nil, err
		}
		t, err := bargmann.FromSingle(a, b, c, be)
		if err != nil {
			return nil, err
		}
		layout := LayoutKet
		if full {
			layout = LayoutDM
		}
		return &Bargmann{Triple: t, Layout: layout}, nil
	case *Fock:
		return nil, &UnsupportedError{Op: "ToBargmann", Have: v.Name()}
	case *Quadrature:
		return nil, &UnsupportedError{Op: "ToBargmann", Have: v.Name()}
	}
	return nil, &UnsupportedError{Op: "ToBargmann", Have: r.Name()}
}

// ToFock materializes a representation as a dense photon-number tensor
// with the given per-variable shape. Batched Bargmann triples are summed
// entry by entry.
func ToFock(r Representation, shape []int, be cvmath.Backend) (*Fock, error) {
	switch v := r.(type) {
	case *Fock:
		return v, nil
	case *Bargmann:
		var sum *lattice.FockTensor
		for i := 0; i < v.Triple.BatchSize(); i++ {
			g, err := lattice.Amplitudes(v.Triple.A(i), v.Triple.B(i), v.Triple.C(i), shape)
			if err != nil {
				return nil, err
			}
			if sum == nil {
				sum = g
			} else {
				sum = sum.Add(g)
			}
		}
		return &Fock{Tensor: sum, Layout: v.Layout}, nil
	case *Gaussian:
		b, err := ToBargmann(v, be)
		if err != nil {
			return nil, err
		}
		return ToFock(b, shape, be)
	case *Quadrature:
		return nil, &UnsupportedError{Op: "ToFock", Have: v.Name()}
	}
	return nil, &UnsupportedError{Op: "ToFock", Have: r.Name()}
}

// ToQuadrature rewrites a ket or density matrix as a wavefunction over the
// rotated quadrature x_phi, by contracting every variable against the
// quadrature projection kernel. The result stays in exponential-quadratic
// form with the evaluation points as free variables.
func ToQuadrature(r Representation, phi, hbar float64, be cvmath.Backend) (*Quadrature, error) {
	var src *Bargmann
	switch v := r.(type) {
	case *Quadrature:
		return v, nil
	case *Bargmann:
		src = v
	case *Gaussian:
		b, err := ToBargmann(v, be)
		if err != nil {
			return nil, err
		}
		src = b
	case *Fock:
		return nil, &UnsupportedError{Op: "ToQuadrature", Have: v.Name()}
	}
	if src.Layout != LayoutKet && src.Layout != LayoutDM {
		return nil, &UnsupportedError{Op: "ToQuadrature", Have: src.Layout.String()}
	}

	t := src.Triple
	modes := src.Modes()
	dim := t.Dim()

	if phi != 0 {
		angles := make([]float64, modes)
		for i := range angles {
			angles[i] = -phi
		}
		rot := bargmann.Rotation(angles, be)
		var err error
		if src.Layout == LayoutKet {
			t, err = rot.Mark(rangeInts(modes, 2*modes)...).Contract(t.Mark(rangeInts(0, modes)...))
		} else {
			ch := rot.Conj().Tensor(rot) // bra-out, bra-in, ket-out, ket-in
			marks := append(rangeInts(modes, 2*modes), rangeInts(3*modes, 4*modes)...)
			t, err = ch.Mark(marks...).Contract(t.Mark(rangeInts(0, dim)...))
		}
		if err != nil {
			return nil, err
		}
	}

	kernel := bargmann.QuadratureKernel(hbar, be)
	bank := kernel
	for i := 1; i < dim; i++ {
		bank = bank.Tensor(kernel)
	}
	zs := make([]int, dim)
	for i := range zs {
		zs[i] = 2*i + 1
	}
	out, err := bank.Mark(zs...).Contract(t.Mark(rangeInts(0, dim)...))
	if err != nil {
		return nil, err
	}
	return &Quadrature{Triple: out, Layout: src.Layout, Phi: phi}, nil
}

// KetTripleToDM lifts a ket-layout Bargmann object to its density matrix,
// bra block first.
func KetTripleToDM(b *Bargmann) (*Bargmann, error) {
	if b.Layout != LayoutKet {
		return nil, &UnsupportedError{Op: "KetTripleToDM", Have: b.Layout.String()}
	}
	return &Bargmann{Triple: b.Triple.Conj().Tensor(b.Triple), Layout: LayoutDM}, nil
}

// DiagonalProbabilities computes the photon-number-resolved probabilities
// of a state up to the cutoff, one probability per joint photon count,
// without filling the full density-matrix tensor. Kets are lifted to
// density matrices first; batched triples are summed.
func DiagonalProbabilities(r Representation, cutoff int, parts *lattice.PartitionTable, be cvmath.Backend) (*lattice.FockTensor, error) {
	var src *Bargmann
	switch v := r.(type) {
	case *Bargmann:
		src = v
	case *Gaussian:
		b, err := ToBargmann(v, be)
		if err != nil {
			return nil, err
		}
		src = b
	default:
		return nil, &UnsupportedError{Op: "DiagonalProbabilities", Have: r.Name()}
	}
	if src.Layout == LayoutKet {
		dm, err := KetTripleToDM(src)
		if err != nil {
			return nil, err
		}
		src = dm
	}
	if src.Layout != LayoutDM {
		return nil, &UnsupportedError{Op: "DiagonalProbabilities", Have: src.Layout.String()}
	}

	modes := src.Modes()
	perm := lattice.InterleavePerm(modes)
	var sum *lattice.FockTensor
	for i := 0; i < src.Triple.BatchSize(); i++ {
		entry, err := bargmann.FromSingle(src.Triple.A(i), src.Triple.B(i), src.Triple.C(i), be)
		if err != nil {
			return nil, err
		}
		entry, err = entry.Reorder(perm)
		if err != nil {
			return nil, err
		}
		g, _, _, err := lattice.DiagonalAmplitudes(entry.A(0), entry.B(0), entry.C(0), modes, cutoff, parts)
		if err != nil {
			return nil, err
		}
		if sum == nil {
			sum = g
		} else {
			sum = sum.Add(g)
		}
	}
	return sum, nil
}

func rangeInts(lo, hi int) []int {
	out := make([]int, 0, hi-lo)
	for i := lo; i < hi; i++ {
		out = append(out, i)
	}
	return out
}
