// Package cpu provides the pure-Go complex linear algebra backend.
//
// Inversion, determinants and solves use LU decomposition with partial
// pivoting. gonum's mat package covers the real-valued side of the library
// but has no complex factorizations, which is why the LU lives here.
package cpu
