// Copyright 2026 Lattica Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package fock provides the public API for operations on Fock-amplitude
// tensors: ket/density-matrix conversion, probabilities, purity,
// normalization, and fidelity.
package fock

import (
	"github.com/lattica-dev/lattica/internal/lattice"
	"github.com/lattica-dev/lattica/internal/rep"
)

// Representation wrappers.

// Layout tags what a tensor's axes mean.
type Layout = rep.Layout

// Layout values.
const (
	LayoutKet     = rep.LayoutKet
	LayoutDM      = rep.LayoutDM
	LayoutUnitary = rep.LayoutUnitary
	LayoutChannel = rep.LayoutChannel
)

// Fock pairs an amplitude tensor with its layout.
type Fock = rep.Fock

// ErrMixedState is returned when a pure-state operation meets a mixed
// density matrix.
var ErrMixedState = rep.ErrMixedState

// KetToDM forms the density matrix |psi><psi| of a ket tensor, with the
// conjugated bra block first.
func KetToDM(ket *lattice.FockTensor) *lattice.FockTensor { return rep.KetToDM(ket) }

// DMToKet extracts the ket of a pure density matrix. Mixed states return
// ErrMixedState.
func DMToKet(dm *lattice.FockTensor) (*lattice.FockTensor, error) { return rep.DMToKet(dm) }

// Probabilities returns the photon-number distribution of a ket or
// density matrix together with its per-mode shape.
func Probabilities(f *Fock) ([]float64, []int, error) { return rep.Probabilities(f) }

// Purity returns tr(rho^2) / tr(rho)^2 of a density-matrix tensor.
func Purity(dm *lattice.FockTensor) float64 { return rep.FockPurity(dm) }

// Normalize rescales a ket to unit norm or a density matrix to unit trace.
func Normalize(f *Fock) (*Fock, error) { return rep.Normalize(f) }

// Fidelity computes the fidelity between two states; at least one must be
// a ket.
func Fidelity(a, b *Fock) (float64, error) { return rep.Fidelity(a, b) }
