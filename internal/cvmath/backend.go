package cvmath

// Backend is the interface that compute backends implement for the complex
// dense operations the representation layers need. Structural operations
// (transpose, conjugation, gather) stay on the value types; everything with
// nontrivial numerics is routed here so it can be swapped out or
// instrumented in one place.
type Backend interface {
	// MatMul returns a @ b. Panics on inner-dimension mismatch.
	MatMul(a, b Matrix) Matrix

	// MatVec returns a @ x. Panics on dimension mismatch.
	MatVec(a Matrix, x Vector) Vector

	// Inv returns the inverse of the square matrix a, or
	// ErrSingularMatrix if a is not invertible.
	Inv(a Matrix) (Matrix, error)

	// Det returns the determinant of the square matrix a.
	Det(a Matrix) complex128

	// Solve returns x such that a @ x = b, or ErrSingularMatrix.
	Solve(a Matrix, b Vector) (Vector, error)

	// BlockDiag returns the block-diagonal combination of a and b.
	BlockDiag(a, b Matrix) Matrix

	// Kron returns the Kronecker product of a and b.
	Kron(a, b Matrix) Matrix

	// Name identifies the backend implementation.
	Name() string
}
