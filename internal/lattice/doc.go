// Package lattice materializes Fock-basis amplitude tensors from Bargmann
// (A, b, c) data by walking the photon-number lattice with the
// multidimensional Hermite recurrence.
//
// Two engines are provided. Amplitudes fills the full tensor over all
// variables and is what state and gate conversions use. DiagonalAmplitudes
// is the compact engine for photon-number-resolved probabilities of density
// matrices: it tiles the lattice into diagonal and near-diagonal blocks
// (arr0/arr1/arr2/arr11) and sweeps them layer by layer of constant total
// photon number, so the full dense tensor over 2M variables is never
// allocated. Both engines thread gradients with respect to A and b through
// the recurrence alongside the values.
//
// The integer-partition enumeration that drives the sweep is cached in a
// PartitionTable, which callers own and may share across invocations.
package lattice
