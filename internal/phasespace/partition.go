package phasespace

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// xpIndices maps a mode list to the corresponding xxpp row/column indices.
func xpIndices(modes []int, n int) []int {
	idx := make([]int, 0, 2*len(modes))
	for _, m := range modes {
		idx = append(idx, m)
	}
	for _, m := range modes {
		idx = append(idx, n+m)
	}
	return idx
}

func complement(modes []int, n int) []int {
	in := make(map[int]bool, len(modes))
	for _, m := range modes {
		in[m] = true
	}
	out := make([]int, 0, n-len(modes))
	for i := 0; i < n; i++ {
		if !in[i] {
			out = append(out, i)
		}
	}
	return out
}

// gather returns nil for an empty index set; gonum refuses zero-sized
// matrices.
func gather(m *mat.Dense, rows, cols []int) *mat.Dense {
	if len(rows) == 0 || len(cols) == 0 {
		return nil
	}
	out := mat.NewDense(len(rows), len(cols), nil)
	for i, r := range rows {
		for j, c := range cols {
			out.Set(i, j, m.At(r, c))
		}
	}
	return out
}

func gatherVec(v *mat.VecDense, idx []int) *mat.VecDense {
	if len(idx) == 0 {
		return nil
	}
	out := mat.NewVecDense(len(idx), nil)
	for i, k := range idx {
		out.SetVec(i, v.AtVec(k))
	}
	return out
}

// Trace discards the given modes and returns the reduced covariance and
// means of the remaining ones. Discarding every mode leaves nothing:
// both results are nil.
func Trace(cov *mat.Dense, means *mat.VecDense, discard []int) (*mat.Dense, *mat.VecDense, error) {
	n := cov.RawMatrix().Rows / 2
	if err := checkModes(discard, n); err != nil {
		return nil, nil, err
	}
	keep := xpIndices(complement(discard, n), n)
	if len(keep) == 0 {
		return nil, nil, nil
	}
	return gather(cov, keep, keep), gatherVec(means, keep), nil
}

// PartitionCov splits the covariance into the block of modesA, the block of
// the complementary modes, and the cross block (A rows, complement columns).
// Blocks over an empty mode set come back nil.
func PartitionCov(cov *mat.Dense, modesA []int) (A, B, AB *mat.Dense, err error) {
	n := cov.RawMatrix().Rows / 2
	if err := checkModes(modesA, n); err != nil {
		return nil, nil, nil, err
	}
	aIdx := xpIndices(modesA, n)
	bIdx := xpIndices(complement(modesA, n), n)
	return gather(cov, aIdx, aIdx), gather(cov, bIdx, bIdx), gather(cov, aIdx, bIdx), nil
}

// PartitionMeans splits the means vector into the modesA part and the
// complementary part.
func PartitionMeans(means *mat.VecDense, modesA []int) (a, b *mat.VecDense, err error) {
	n := means.Len() / 2
	if err := checkModes(modesA, n); err != nil {
		return nil, nil, err
	}
	return gatherVec(means, xpIndices(modesA, n)), gatherVec(means, xpIndices(complement(modesA, n), n)), nil
}

// Purity returns 1 / sqrt(det((2/hbar) cov)). The result is NaN when the
// covariance is not positive definite.
func Purity(cov *mat.Dense, hbar float64) float64 {
	var scaled mat.Dense
	scaled.Scale(2/hbar, cov)
	return 1 / math.Sqrt(mat.Det(&scaled))
}
