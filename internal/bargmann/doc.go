// Package bargmann implements the holomorphic exponential-quadratic
// representation of Gaussian-derived quantum objects: batched (A, b, c)
// triples parametrizing functions of the form
//
//	F(x) = sum_i c_i * exp(x^T A_i x / 2 + x^T b_i)
//
// The batch dimension indexes a sum of terms, so batch concatenation is
// addition of functionals. Triples are immutable values: every algebraic
// operation returns a new triple.
//
// The central operation is Contract, which eliminates marked pairs of
// variables between two triples through the closed-form Gaussian-integral
// identity. Composition of states, unitaries and channels in the circuit
// layer reduces to this one operation.
package bargmann
