package phasespace

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// GeneralDyne computes a general-dyne measurement of the given modes,
// projecting them onto the Gaussian state (projCov, projMeans), where
// projMeans is the measurement outcome. It returns the outcome probability
// density together with the covariance and means of the remaining modes.
//
// The update is the Schur complement of the measured block: with A the
// remaining block, B the measured block and AB the cross block,
//
//	newCov   = A - AB (B + projCov)^-1 AB^T
//	newMeans = a + AB (B + projCov)^-1 (projMeans - b)
//
// The probability is a density over the outcome vector in xxpp phase-space
// coordinates: exp(-d^T (B + projCov)^-1 d) / (pi^nB sqrt(det(B + projCov)))
// with d = projMeans - b, so integrating over all outcomes gives 1.
//
// Measuring every mode leaves no conditional state; newCov and newMeans are
// then nil. An error is returned when B + projCov is singular, which signals
// a measure-zero projector configuration.
func GeneralDyne(cov *mat.Dense, means *mat.VecDense, projCov *mat.Dense, projMeans *mat.VecDense, modes []int) (prob float64, newCov *mat.Dense, newMeans *mat.VecDense, err error) {
	n := cov.RawMatrix().Rows / 2
	if err := checkModes(modes, n); err != nil {
		return 0, nil, nil, err
	}
	nB := len(modes)
	if projCov.RawMatrix().Rows != 2*nB || projMeans.Len() != 2*nB {
		return 0, nil, nil, &InvalidModesError{Modes: modes, NumModes: projCov.RawMatrix().Rows / 2}
	}
	remaining := complement(modes, n)

	if len(remaining) == 0 {
		// Every mode is measured: the full covariance is the measured
		// block and no conditional state remains.
		var sum mat.Dense
		sum.Add(cov, projCov)
		var inv mat.Dense
		if err := inv.Inverse(&sum); err != nil {
			return 0, nil, nil, fmt.Errorf("general-dyne: measured block plus projector is singular: %w", err)
		}
		var diff mat.VecDense
		diff.SubVec(projMeans, means)
		prob = outcomeDensity(&inv, &sum, &diff, nB)
		return prob, nil, nil, nil
	}

	A, B, AB, err := PartitionCov(cov, remaining)
	if err != nil {
		return 0, nil, nil, err
	}
	a, b, err := PartitionMeans(means, remaining)
	if err != nil {
		return 0, nil, nil, err
	}

	var sum mat.Dense
	sum.Add(B, projCov)
	var inv mat.Dense
	if err := inv.Inverse(&sum); err != nil {
		return 0, nil, nil, fmt.Errorf("general-dyne: measured block plus projector is singular: %w", err)
	}

	var ABinv mat.Dense
	ABinv.Mul(AB, &inv)

	newCov = mat.NewDense(2*len(remaining), 2*len(remaining), nil)
	var tmp mat.Dense
	tmp.Mul(&ABinv, AB.T())
	newCov.Sub(A, &tmp)

	var diff mat.VecDense
	diff.SubVec(projMeans, b)
	newMeans = mat.NewVecDense(a.Len(), nil)
	var shift mat.VecDense
	shift.MulVec(&ABinv, &diff)
	newMeans.AddVec(a, &shift)

	prob = outcomeDensity(&inv, &sum, &diff, nB)
	return prob, newCov, newMeans, nil
}

func outcomeDensity(inv, sum *mat.Dense, diff *mat.VecDense, nB int) float64 {
	var invDiff mat.VecDense
	invDiff.MulVec(inv, diff)
	exponent := -mat.Dot(&invDiff, diff)
	norm := math.Pow(math.Pi, float64(nB)) * math.Sqrt(mat.Det(sum))
	return math.Exp(exponent) / norm
}
