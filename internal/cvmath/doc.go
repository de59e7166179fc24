// Package cvmath provides the dense complex linear algebra that the
// Bargmann and Fock layers are built on.
//
// The package is split into two halves: plain value types (Matrix, Vector)
// that own their data and support cheap structural operations, and the
// Backend interface through which all numerically heavy operations
// (products, inversion, determinants) are dispatched. Backends live under
// internal/backend; the default pure-Go implementation is
// internal/backend/cpu.
//
// All data is complex128. Real-valued phase-space algebra does not go
// through this package; it lives in internal/phasespace on top of gonum.
package cvmath
