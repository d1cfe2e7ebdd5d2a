package linalg

import "errors"

// Failure kinds reported by the solver core. Every error returned from
// this package wraps one of these with the operation name and offending
// values; match with errors.Is.
var (
	ErrDimensionMismatch  = errors.New("operand dimensions do not conform")
	ErrMissingDiagonal    = errors.New("triangular matrix has no diagonal entry")
	ErrZeroDiagonal       = errors.New("zero diagonal entry")
	ErrUnsupportedBackend = errors.New("no backend registered for device")
	ErrSingularPivot      = errors.New("zero pivot during factorization")
)
