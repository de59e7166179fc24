// Copyright 2026 Lattica Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package lattice provides the public API for Fock-space tensors and the
// recurrence engines that fill them from holomorphic triples.
//
// Two engines are exposed. Amplitudes fills the full amplitude tensor over
// a rectangular cutoff box. DiagonalAmplitudes computes only the diagonal
// of a density matrix, which is all photon-number detection needs, in far
// less memory than the full tensor.
//
// Example:
//
//	g, err := lattice.Amplitudes(a, b, c, []int{cutoff})
package lattice

import (
	"github.com/lattica-dev/lattica/internal/cvmath"
	"github.com/lattica-dev/lattica/internal/lattice"
)

// FockTensor is a dense row-major complex tensor indexed by photon numbers.
type FockTensor = lattice.FockTensor

// PartitionTable caches weak-composition enumerations across calls.
type PartitionTable = lattice.PartitionTable

// OverflowError reports a tensor too large for the configured cell limit.
type OverflowError = lattice.OverflowError

// Sentinel errors.
var (
	ErrCombinatorialOverflow = lattice.ErrCombinatorialOverflow
	ErrShapeMismatch         = lattice.ErrShapeMismatch
)

// NewFockTensor allocates a zero tensor with the given shape.
func NewFockTensor(shape ...int) *FockTensor { return lattice.NewFockTensor(shape...) }

// FockTensorFrom wraps existing data without copying.
func FockTensorFrom(data []complex128, shape ...int) *FockTensor {
	return lattice.FockTensorFrom(data, shape...)
}

// NewPartitionTable returns an empty, concurrency-safe partition cache.
func NewPartitionTable() *PartitionTable { return lattice.NewPartitionTable() }

// Amplitudes fills the full Fock amplitude tensor of a single (A, b, c)
// exponential over the given cutoff box.
func Amplitudes(a cvmath.Matrix, b cvmath.Vector, c complex128, shape []int) (*FockTensor, error) {
	return lattice.Amplitudes(a, b, c, shape)
}

// AmplitudesWithGrad also returns the gradients of every amplitude with
// respect to the entries of A and b.
func AmplitudesWithGrad(a cvmath.Matrix, b cvmath.Vector, c complex128, shape []int) (g, dA, dB *FockTensor, err error) {
	return lattice.AmplitudesWithGrad(a, b, c, shape)
}

// DiagonalAmplitudes computes the photon-number diagonal of a density
// matrix directly from its (A, b, c) triple, along with the gradients of
// the diagonal with respect to A and b.
func DiagonalAmplitudes(a cvmath.Matrix, b cvmath.Vector, c complex128, modes, cutoff int, parts *PartitionTable) (g, dA, dB *FockTensor, err error) {
	return lattice.DiagonalAmplitudes(a, b, c, modes, cutoff, parts)
}

// Contract sums paired axes of two tensors, tensordot style.
func Contract(a, b *FockTensor, axesA, axesB []int) (*FockTensor, error) {
	return lattice.Contract(a, b, axesA, axesB)
}

// InterleavePerm maps block order (bra block then ket block) onto the
// interleaved variable order used by the diagonal engine.
func InterleavePerm(modes int) []int { return lattice.InterleavePerm(modes) }
