// Package phasespace implements the covariance-matrix / means-vector
// algebra of Gaussian states: state constructors, symplectic transforms,
// CPTP channels, partial traces and general-dyne measurements.
//
// Quadrature ordering is xxpp: for N modes the vector is
// (x_1 .. x_N, p_1 .. p_N) and matrices are 2N x 2N. Everything is real;
// the linear algebra is gonum's mat package.
package phasespace
