// Package rep defines the concrete representations a quantum object can be
// held in (Gaussian phase-space, Bargmann, Fock, quadrature wavefunction)
// and the converters between them. Representation is a closed interface:
// every converter switches exhaustively over the four variants and returns
// ErrUnsupportedRepresentation for directions that have no exact
// counterpart, such as recovering Gaussian data from a truncated Fock
// tensor.
package rep
