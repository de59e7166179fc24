// Copyright 2026 Lattica Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package bargmann provides the public API for holomorphic (A, b, c)
// triples: the closed-form representation of Gaussian objects as batched
// exponentials of quadratic forms.
//
// A triple encodes sum_i c_i * exp(x^T A_i x / 2 + x^T b_i), the function
// whose Taylor coefficients are the Fock amplitudes of the state or
// transformation it represents. Triples compose in closed form: Tensor
// joins disjoint variable sets, Contract integrates pairs of variables
// against each other, and Reorder permutes variables.
//
// Example:
//
//	be := cpu.New()
//	psi := bargmann.SqueezedVacuum([]float64{0.5}, []float64{0}, be)
//	d := bargmann.Displacement([]float64{0.1}, []float64{0}, be)
//	out, err := d.Mark(1).Contract(psi.Mark(0))
package bargmann

import (
	"github.com/lattica-dev/lattica/internal/bargmann"
	"github.com/lattica-dev/lattica/internal/cvmath"
)

// Triple is a batched holomorphic (A, b, c) triple.
type Triple = bargmann.Triple

// ContractionError reports a singular coupling block during contraction.
type ContractionError = bargmann.ContractionError

// ErrSingularContraction is the sentinel wrapped by ContractionError.
var ErrSingularContraction = bargmann.ErrSingularContraction

// New builds a batched triple from per-batch A matrices, b vectors, and
// c scalars.
func New(a []cvmath.Matrix, b []cvmath.Vector, c []complex128, be cvmath.Backend) (Triple, error) {
	return bargmann.New(a, b, c, be)
}

// FromSingle builds a batch-1 triple.
func FromSingle(a cvmath.Matrix, b cvmath.Vector, c complex128, be cvmath.Backend) (Triple, error) {
	return bargmann.FromSingle(a, b, c, be)
}

// State constructors.

func Vacuum(n int, be cvmath.Backend) Triple { return bargmann.Vacuum(n, be) }

func Coherent(x, y []float64, be cvmath.Backend) Triple { return bargmann.Coherent(x, y, be) }

func SqueezedVacuum(r, phi []float64, be cvmath.Backend) Triple {
	return bargmann.SqueezedVacuum(r, phi, be)
}

func DisplacedSqueezed(r, phi, x, y []float64, be cvmath.Backend) Triple {
	return bargmann.DisplacedSqueezed(r, phi, x, y, be)
}

func TwoModeSqueezedVacuum(r, phi float64, be cvmath.Backend) Triple {
	return bargmann.TwoModeSqueezedVacuum(r, phi, be)
}

func Thermal(nbar []float64, be cvmath.Backend) Triple { return bargmann.Thermal(nbar, be) }

// Transformation constructors.

func Rotation(theta []float64, be cvmath.Backend) Triple { return bargmann.Rotation(theta, be) }

func Displacement(x, y []float64, be cvmath.Backend) Triple {
	return bargmann.Displacement(x, y, be)
}

func Squeezing(r, delta []float64, be cvmath.Backend) Triple {
	return bargmann.Squeezing(r, delta, be)
}

func TwoModeSqueezing(r, phi float64, be cvmath.Backend) Triple {
	return bargmann.TwoModeSqueezing(r, phi, be)
}

func BeamSplitter(theta, phi float64, be cvmath.Backend) Triple {
	return bargmann.BeamSplitter(theta, phi, be)
}

func Attenuator(transmissivity []float64, be cvmath.Backend) Triple {
	return bargmann.Attenuator(transmissivity, be)
}

func Amplifier(gain []float64, be cvmath.Backend) Triple {
	return bargmann.Amplifier(gain, be)
}
