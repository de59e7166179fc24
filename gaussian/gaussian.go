// Copyright 2026 Lattica Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package gaussian provides the public API for phase-space covariance
// computations: Gaussian state constructors, symplectic transformations,
// Gaussian channels, general-dyne measurement, and photon-number moments.
//
// All functions use the xxpp quadrature ordering and take hbar explicitly;
// the lab package wires them to the configured convention.
package gaussian

import (
	"gonum.org/v1/gonum/mat"

	"github.com/lattica-dev/lattica/internal/phasespace"
)

// ErrInvalidModes is the sentinel for mode lists that do not fit the
// covariance dimensions.
var ErrInvalidModes = phasespace.ErrInvalidModes

// InvalidModesError reports the offending operation and mode list.
type InvalidModesError = phasespace.InvalidModesError

// States.

func Vacuum(n int, hbar float64) (*mat.Dense, *mat.VecDense) {
	return phasespace.VacuumState(n, hbar)
}

func Coherent(x, y []float64, hbar float64) (*mat.Dense, *mat.VecDense) {
	return phasespace.CoherentState(x, y, hbar)
}

func SqueezedVacuum(r, phi []float64, hbar float64) (*mat.Dense, *mat.VecDense) {
	return phasespace.SqueezedVacuumState(r, phi, hbar)
}

func Thermal(nbar []float64, hbar float64) (*mat.Dense, *mat.VecDense) {
	return phasespace.ThermalState(nbar, hbar)
}

func DisplacedSqueezed(r, phi, x, y []float64, hbar float64) (*mat.Dense, *mat.VecDense) {
	return phasespace.DisplacedSqueezedState(r, phi, x, y, hbar)
}

func TwoModeSqueezedVacuum(r, phi, hbar float64) (*mat.Dense, *mat.VecDense) {
	return phasespace.TwoModeSqueezedVacuumState(r, phi, hbar)
}

// Symplectics and displacements.

func RotationSymplectic(angle []float64) *mat.Dense {
	return phasespace.RotationSymplectic(angle)
}

func SqueezingSymplectic(r, phi []float64) *mat.Dense {
	return phasespace.SqueezingSymplectic(r, phi)
}

func BeamSplitterSymplectic(theta, phi float64) *mat.Dense {
	return phasespace.BeamSplitterSymplectic(theta, phi)
}

func TwoModeSqueezingSymplectic(r, phi float64) *mat.Dense {
	return phasespace.TwoModeSqueezingSymplectic(r, phi)
}

func MachZehnderSymplectic(phiA, phiB float64, internal bool) *mat.Dense {
	return phasespace.MachZehnderSymplectic(phiA, phiB, internal)
}

func Displacement(x, y []float64, hbar float64) *mat.VecDense {
	return phasespace.Displacement(x, y, hbar)
}

// Channels.

// CPTP applies cov -> X cov X^T + Y and means -> X means + d on the given
// modes. X tiles across modes when given in single-mode form; nil Y and d
// are treated as zero.
func CPTP(cov *mat.Dense, means *mat.VecDense, X, Y *mat.Dense, d *mat.VecDense, modes []int) (*mat.Dense, *mat.VecDense, error) {
	return phasespace.CPTP(cov, means, X, Y, d, modes)
}

// LossX and LossY build the CPTP pair for pure loss at the given
// transmissivities.
func LossX(transmissivity []float64) *mat.Dense { return phasespace.LossX(transmissivity) }

func LossY(transmissivity []float64, hbar float64) *mat.Dense {
	return phasespace.LossY(transmissivity, hbar)
}

// Partial operations and measurement.

// Trace discards the listed modes.
func Trace(cov *mat.Dense, means *mat.VecDense, discard []int) (*mat.Dense, *mat.VecDense, error) {
	return phasespace.Trace(cov, means, discard)
}

// GeneralDyne projects the given modes onto a Gaussian projector and
// returns the outcome probability density and the conditional state of the
// remaining modes. Measuring every mode leaves a nil conditional state.
func GeneralDyne(cov *mat.Dense, means *mat.VecDense, projCov *mat.Dense, projMeans *mat.VecDense, modes []int) (float64, *mat.Dense, *mat.VecDense, error) {
	return phasespace.GeneralDyne(cov, means, projCov, projMeans, modes)
}

// Moments.

// NumberMeans returns per-mode mean photon numbers.
func NumberMeans(cov *mat.Dense, means *mat.VecDense, hbar float64) []float64 {
	return phasespace.NumberMeans(cov, means, hbar)
}

// NumberCov returns the photon-number covariance matrix.
func NumberCov(cov *mat.Dense, means *mat.VecDense, hbar float64) *mat.Dense {
	return phasespace.NumberCov(cov, means, hbar)
}

// Purity returns tr(rho^2) from the covariance matrix alone.
func Purity(cov *mat.Dense, hbar float64) float64 {
	return phasespace.Purity(cov, hbar)
}

// Autocutoffs picks per-mode Fock cutoffs from photon-number statistics.
func Autocutoffs(cov *mat.Dense, means *mat.VecDense, hbar float64, minCutoff, maxCutoff int, stdevFactor float64) []int {
	return phasespace.Autocutoffs(cov, means, hbar, minCutoff, maxCutoff, stdevFactor)
}
