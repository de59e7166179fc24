package phasespace

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// NumberMeans returns the mean photon number of each mode.
func NumberMeans(cov *mat.Dense, means *mat.VecDense, hbar float64) []float64 {
	n := means.Len() / 2
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		x, p := means.AtVec(i), means.AtVec(n+i)
		out[i] = (x*x+p*p+cov.At(i, i)+cov.At(n+i, n+i))/(2*hbar) - 0.5
	}
	return out
}

// NumberCov returns the covariance matrix of the photon numbers of each
// pair of modes.
func NumberCov(cov *mat.Dense, means *mat.VecDense, hbar float64) *mat.Dense {
	n := means.Len() / 2
	// mCm[i][j] = cov[i][j] * means[i] * means[j]
	mCm := func(i, j int) float64 { return cov.At(i, j) * means.AtVec(i) * means.AtVec(j) }
	out := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			cc := 0.0
			for _, p := range [4][2]int{{i, j}, {n + i, n + j}, {i, n + j}, {n + i, j}} {
				c := cov.At(p[0], p[1])
				cc += (c*c + 2*mCm(p[0], p[1])) / (2 * hbar * hbar)
			}
			out.Set(i, j, cc)
		}
		out.Set(i, i, out.At(i, i)-0.25)
	}
	return out
}

// Autocutoffs suggests a per-mode Fock cutoff from the photon-number mean
// and standard deviation, clipped to [minCutoff, maxCutoff].
func Autocutoffs(cov *mat.Dense, means *mat.VecDense, hbar float64, minCutoff, maxCutoff int, stdevFactor float64) []int {
	nm := NumberMeans(cov, means, hbar)
	ncov := NumberCov(cov, means, hbar)
	out := make([]int, len(nm))
	for i := range nm {
		stdev := math.Sqrt(math.Max(ncov.At(i, i), 0))
		c := minCutoff + int(nm[i]+stdev*stdevFactor)
		if c < minCutoff {
			c = minCutoff
		}
		if c > maxCutoff {
			c = maxCutoff
		}
		out[i] = c
	}
	return out
}
