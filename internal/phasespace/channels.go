package phasespace

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// embedMatrix places the 2m x 2m xxpp matrix X (acting on the given modes)
// into a 2n x 2n matrix that is the identity elsewhere.
func embedMatrix(X *mat.Dense, modes []int, n int) *mat.Dense {
	m := len(modes)
	full := mat.NewDense(2*n, 2*n, nil)
	for i := 0; i < 2*n; i++ {
		full.Set(i, i, 1)
	}
	idx := make([]int, 2*m)
	for i, mode := range modes {
		idx[i] = mode
		idx[m+i] = n + mode
	}
	for i := 0; i < 2*m; i++ {
		for j := 0; j < 2*m; j++ {
			full.Set(idx[i], idx[j], X.At(i, j))
		}
	}
	return full
}

// embedAdd adds the 2m x 2m matrix Y (acting on the given modes) into a
// zero 2n x 2n matrix.
func embedAdd(Y *mat.Dense, modes []int, n int) *mat.Dense {
	m := len(modes)
	full := mat.NewDense(2*n, 2*n, nil)
	idx := make([]int, 2*m)
	for i, mode := range modes {
		idx[i] = mode
		idx[m+i] = n + mode
	}
	for i := 0; i < 2*m; i++ {
		for j := 0; j < 2*m; j++ {
			full.Set(idx[i], idx[j], Y.At(i, j))
		}
	}
	return full
}

// tileSingleMode expands a single-mode 2x2 xxpp matrix to act identically
// on m modes.
func tileSingleMode(X *mat.Dense, m int) *mat.Dense {
	out := mat.NewDense(2*m, 2*m, nil)
	for i := 0; i < m; i++ {
		out.Set(i, i, X.At(0, 0))
		out.Set(i, m+i, X.At(0, 1))
		out.Set(m+i, i, X.At(1, 0))
		out.Set(m+i, m+i, X.At(1, 1))
	}
	return out
}

// CPTP applies a Gaussian CPTP channel, cov -> X cov X^T + Y and
// means -> X means + d, on the given modes of an n-mode state. X, Y and d
// may be nil (identity, zero noise, zero displacement). A single-mode X or
// Y is applied in parallel to every listed mode.
func CPTP(cov *mat.Dense, means *mat.VecDense, X, Y *mat.Dense, d *mat.VecDense, modes []int) (*mat.Dense, *mat.VecDense, error) {
	n := cov.RawMatrix().Rows / 2
	if err := checkModes(modes, n); err != nil {
		return nil, nil, err
	}
	m := len(modes)
	if X != nil && X.RawMatrix().Rows == 2 && m > 1 {
		X = tileSingleMode(X, m)
	}
	if Y != nil && Y.RawMatrix().Rows == 2 && m > 1 {
		Y = tileSingleMode(Y, m)
	}

	newCov := mat.DenseCopyOf(cov)
	newMeans := mat.VecDenseCopyOf(means)
	if X != nil {
		full := embedMatrix(X, modes, n)
		var tmp mat.Dense
		tmp.Mul(full, newCov)
		newCov.Mul(&tmp, full.T())
		var mv mat.VecDense
		mv.MulVec(full, newMeans)
		newMeans.CopyVec(&mv)
	}
	if Y != nil {
		newCov.Add(newCov, embedAdd(Y, modes, n))
	}
	if d != nil {
		md := len(modes)
		for i, mode := range modes {
			newMeans.SetVec(mode, newMeans.AtVec(mode)+d.AtVec(i))
			newMeans.SetVec(n+mode, newMeans.AtVec(n+mode)+d.AtVec(md+i))
		}
	}
	return newCov, newMeans, nil
}

// LossX returns the X matrix of the lossy bosonic channel with the given
// transmissivity per mode.
func LossX(transmissivity []float64) *mat.Dense {
	n := len(transmissivity)
	X := mat.NewDense(2*n, 2*n, nil)
	for i, t := range transmissivity {
		s := math.Sqrt(t)
		X.Set(i, i, s)
		X.Set(n+i, n+i, s)
	}
	return X
}

// LossY returns the Y (noise) matrix of the lossy bosonic channel with the
// given transmissivity per mode.
func LossY(transmissivity []float64, hbar float64) *mat.Dense {
	n := len(transmissivity)
	Y := mat.NewDense(2*n, 2*n, nil)
	for i, t := range transmissivity {
		g := (1 - t) * hbar / 2
		Y.Set(i, i, g)
		Y.Set(n+i, n+i, g)
	}
	return Y
}
