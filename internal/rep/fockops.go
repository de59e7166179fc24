package rep

import (
	"math"
	"math/cmplx"

	"github.com/lattica-dev/lattica/internal/lattice"
)

// KetToDM forms the density matrix of a ket tensor, bra indices first:
// dm[m, n] = conj(psi[m]) * psi[n].
func KetToDM(ket *lattice.FockTensor) *lattice.FockTensor {
	shape := ket.Shape()
	dm := lattice.NewFockTensor(append(append([]int(nil), shape...), shape...)...)
	kd, dd := ket.Data(), dm.Data()
	n := len(kd)
	for m := 0; m < n; m++ {
		cm := cmplx.Conj(kd[m])
		row := dd[m*n : (m+1)*n]
		for j := 0; j < n; j++ {
			row[j] = cm * kd[j]
		}
	}
	return dm
}

// DMToKet recovers the ket of a pure density matrix. The ket is read off
// the column through the largest diagonal entry, with the global phase
// chosen so that entry is real positive. Returns ErrMixedState when the
// purity falls below one by more than purityTol.
func DMToKet(dm *lattice.FockTensor) (*lattice.FockTensor, error) {
	p := FockPurity(dm)
	if math.Abs(p-1) > purityTol {
		return nil, ErrMixedState
	}
	shape := dm.Shape()
	half := shape[:len(shape)/2]
	n := 1
	for _, s := range half {
		n *= s
	}
	data := dm.Data()
	tr := dm.Trace()

	best, bestVal := 0, 0.0
	for j := 0; j < n; j++ {
		if v := real(data[j*n+j]); v > bestVal {
			best, bestVal = j, v
		}
	}
	psiJ := math.Sqrt(bestVal / real(tr))
	ket := lattice.NewFockTensor(half...)
	kd := ket.Data()
	for m := 0; m < n; m++ {
		kd[m] = cmplx.Conj(data[m*n+best]) / complex(real(tr)*psiJ, 0)
	}
	return ket, nil
}

// Probabilities extracts the photon-number probabilities of a Fock object:
// squared magnitudes for a ket, the real diagonal for a density matrix.
func Probabilities(f *Fock) ([]float64, []int, error) {
	switch f.Layout {
	case LayoutKet:
		data := f.Tensor.Data()
		probs := make([]float64, len(data))
		for i, v := range data {
			probs[i] = real(v)*real(v) + imag(v)*imag(v)
		}
		return probs, f.Tensor.Shape(), nil
	case LayoutDM:
		diag := f.Tensor.Diagonal()
		data := diag.Data()
		probs := make([]float64, len(data))
		for i, v := range data {
			probs[i] = real(v)
		}
		return probs, diag.Shape(), nil
	}
	return nil, nil, &UnsupportedError{Op: "Probabilities", Have: f.Layout.String()}
}

// FockPurity returns tr(rho^2)/tr(rho)^2 of a density-matrix tensor.
func FockPurity(dm *lattice.FockTensor) float64 {
	tr := real(dm.Trace())
	var sq float64
	for _, v := range dm.Data() {
		sq += real(v)*real(v) + imag(v)*imag(v)
	}
	return sq / (tr * tr)
}

// Normalize rescales a Fock object in place-free fashion: kets to unit
// norm, density matrices to unit trace.
func Normalize(f *Fock) (*Fock, error) {
	switch f.Layout {
	case LayoutKet:
		n := math.Sqrt(f.Tensor.Norm2())
		return &Fock{Tensor: f.Tensor.Scale(complex(1/n, 0)), Layout: LayoutKet}, nil
	case LayoutDM:
		tr := f.Tensor.Trace()
		return &Fock{Tensor: f.Tensor.Scale(1 / tr), Layout: LayoutDM}, nil
	}
	return nil, &UnsupportedError{Op: "Normalize", Have: f.Layout.String()}
}

// Fidelity computes the overlap of two Fock states. Both kets gives
// |<a|b>|^2; a ket against a density matrix gives <a|rho|a>. Mixed-mixed
// fidelity needs a matrix square root and is not supported. Tensors with
// different cutoffs are compared on the common lower-left corner.
func Fidelity(a, b *Fock) (float64, error) {
	switch {
	case a.Layout == LayoutKet && b.Layout == LayoutKet:
		var dot complex128
		forEachCommon(a.Tensor, b.Tensor, func(va, vb complex128) {
			dot += cmplx.Conj(va) * vb
		})
		return real(dot)*real(dot) + imag(dot)*imag(dot), nil
	case a.Layout == LayoutKet && b.Layout == LayoutDM:
		return ketDMFidelity(a.Tensor, b.Tensor)
	case a.Layout == LayoutDM && b.Layout == LayoutKet:
		return ketDMFidelity(b.Tensor, a.Tensor)
	}
	return 0, &UnsupportedError{Op: "Fidelity", Have: a.Layout.String() + "/" + b.Layout.String()}
}

// ketDMFidelity evaluates <psi|rho|psi> with the bra-first density matrix
// convention rho[m, n] = conj(psi_m) psi_n.
func ketDMFidelity(ket, dm *lattice.FockTensor) (float64, error) {
	half := dm.Shape()[:dm.Rank()/2]
	kshape := ket.Shape()
	if len(kshape) != len(half) {
		return 0, &UnsupportedError{Op: "Fidelity", Have: "mismatched mode counts"}
	}
	common := make([]int, len(half))
	for i := range common {
		common[i] = minI(half[i], kshape[i])
	}
	n := 1
	for _, s := range common {
		n *= s
	}
	var fid complex128
	mi := make([]int, len(common))
	ni := make([]int, len(common))
	full := make([]int, 2*len(common))
	strides := rowStrides(common)
	for mf := 0; mf < n; mf++ {
		unravelIdx(mf, strides, mi)
		for nf := 0; nf < n; nf++ {
			unravelIdx(nf, strides, ni)
			copy(full[:len(mi)], mi)
			copy(full[len(mi):], ni)
			fid += ket.At(mi...) * dm.At(full...) * cmplx.Conj(ket.At(ni...))
		}
	}
	return real(fid), nil
}

func forEachCommon(a, b *lattice.FockTensor, fn func(va, vb complex128)) {
	common := make([]int, a.Rank())
	for i := range common {
		common[i] = minI(a.Shape()[i], b.Shape()[i])
	}
	n := 1
	for _, s := range common {
		n *= s
	}
	idx := make([]int, len(common))
	strides := rowStrides(common)
	for f := 0; f < n; f++ {
		unravelIdx(f, strides, idx)
		fn(a.At(idx...), b.At(idx...))
	}
}

func rowStrides(shape []int) []int {
	s := make([]int, len(shape))
	acc := 1
	for i := len(shape) - 1; i >= 0; i-- {
		s[i] = acc
		acc *= shape[i]
	}
	return s
}

func unravelIdx(flat int, strides, out []int) {
	for i, s := range strides {
		out[i] = flat / s
		flat %= s
	}
}

func minI(a, b int) int {
	if a < b {
		return a
	}
	return b
}
