package phasespace

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// broadcast expands scalar-or-per-mode parameter lists to a common length.
// Single-element slices are tiled; everything else must already agree.
func broadcast(params ...[]float64) ([][]float64, int) {
	n := 1
	for _, p := range params {
		if len(p) > n {
			n = len(p)
		}
	}
	out := make([][]float64, len(params))
	for i, p := range params {
		switch len(p) {
		case n:
			out[i] = p
		case 1:
			tiled := make([]float64, n)
			for j := range tiled {
				tiled[j] = p[0]
			}
			out[i] = tiled
		default:
			panic("phasespace: parameter lengths must be 1 or equal")
		}
	}
	return out, n
}

// VacuumState returns the covariance matrix and means vector of the
// n-mode vacuum.
func VacuumState(n int, hbar float64) (*mat.Dense, *mat.VecDense) {
	cov := mat.NewDense(2*n, 2*n, nil)
	for i := 0; i < 2*n; i++ {
		cov.Set(i, i, hbar/2)
	}
	return cov, mat.NewVecDense(2*n, nil)
}

// CoherentState returns the covariance and means of coherent states with
// displacement alpha = x + iy per mode.
func CoherentState(x, y []float64, hbar float64) (*mat.Dense, *mat.VecDense) {
	p, n := broadcast(x, y)
	x, y = p[0], p[1]
	cov, means := VacuumState(n, hbar)
	s := math.Sqrt(2 * hbar)
	for i := 0; i < n; i++ {
		means.SetVec(i, s*x[i])
		means.SetVec(n+i, s*y[i])
	}
	return cov, means
}

// SqueezedVacuumState returns the covariance and means of squeezed vacuum
// states with magnitude r and angle phi per mode.
func SqueezedVacuumState(r, phi []float64, hbar float64) (*mat.Dense, *mat.VecDense) {
	S := SqueezingSymplectic(r, phi)
	n := S.RawMatrix().Rows / 2
	var cov mat.Dense
	cov.Mul(S, S.T())
	cov.Scale(hbar/2, &cov)
	return &cov, mat.NewVecDense(2*n, nil)
}

// ThermalState returns the covariance and means of thermal states with
// mean photon number nbar per mode.
func ThermalState(nbar []float64, hbar float64) (*mat.Dense, *mat.VecDense) {
	n := len(nbar)
	cov := mat.NewDense(2*n, 2*n, nil)
	for i, nb := range nbar {
		g := (2*nb + 1) * hbar / 2
		cov.Set(i, i, g)
		cov.Set(n+i, n+i, g)
	}
	return cov, mat.NewVecDense(2*n, nil)
}

// DisplacedSqueezedState returns the covariance and means of displaced
// squeezed states with squeezing (r, phi) and displacement x + iy per mode.
func DisplacedSqueezedState(r, phi, x, y []float64, hbar float64) (*mat.Dense, *mat.VecDense) {
	p, n := broadcast(r, phi, x, y)
	r, phi, x, y = p[0], p[1], p[2], p[3]
	cov, _ := SqueezedVacuumState(r, phi, hbar)
	means := mat.NewVecDense(2*n, nil)
	s := math.Sqrt(2 * hbar)
	for i := 0; i < n; i++ {
		means.SetVec(i, s*x[i])
		means.SetVec(n+i, s*y[i])
	}
	return cov, means
}

// TwoModeSqueezedVacuumState returns the covariance and means of the
// two-mode squeezed vacuum with magnitude r and angle phi.
func TwoModeSqueezedVacuumState(r, phi float64, hbar float64) (*mat.Dense, *mat.VecDense) {
	S := TwoModeSqueezingSymplectic(r, phi)
	var cov mat.Dense
	cov.Mul(S, S.T())
	cov.Scale(hbar/2, &cov)
	return &cov, mat.NewVecDense(4, nil)
}
