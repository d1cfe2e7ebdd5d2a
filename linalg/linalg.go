// Copyright 2025 The Laminar Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package linalg

import (
	"github.com/laminar-la/laminar/internal/linalg"
	"github.com/laminar-la/laminar/matrix"
)

// Type aliases for public API

// ShapeTag selects the triangle of the system matrix a solve reads and
// whether the diagonal is implicit.
type ShapeTag = linalg.ShapeTag

// Solver tags. Unit tags treat the diagonal as all ones and never read a
// stored diagonal entry.
const (
	Lower     ShapeTag = linalg.Lower
	UnitLower ShapeTag = linalg.UnitLower
	Upper     ShapeTag = linalg.Upper
	UnitUpper ShapeTag = linalg.UnitUpper
)

// RowStat selects the per-row quantity extracted by RowStats.
type RowStat = linalg.RowStat

// Row statistics modes.
const (
	RowNormInf  RowStat = linalg.RowNormInf  // largest absolute entry
	RowNorm1    RowStat = linalg.RowNorm1    // sum of absolute entries
	RowNorm2    RowStat = linalg.RowNorm2    // Euclidean norm
	RowDiagonal RowStat = linalg.RowDiagonal // diagonal entry, 0 when absent
)

// Sentinel errors. Operations wrap these with context; match with
// errors.Is.
var (
	ErrDimensionMismatch  = linalg.ErrDimensionMismatch
	ErrMissingDiagonal    = linalg.ErrMissingDiagonal
	ErrZeroDiagonal       = linalg.ErrZeroDiagonal
	ErrUnsupportedBackend = linalg.ErrUnsupportedBackend
	ErrSingularPivot      = linalg.ErrSingularPivot
)

// Dense solvers

// InplaceSolve solves a*x = b in place, overwriting b with the solution
// column by column. Transposed systems are solved by passing a stride
// view (Dense.T) with the flipped tag; no data moves.
//
// Example:
//
//	// a is lower triangular; solve transpose(a)*x = b.
//	err := linalg.InplaceSolve(a.T(), b, linalg.Upper)
func InplaceSolve(a, b *matrix.Dense, tag ShapeTag) error {
	return linalg.InplaceSolve(a, b, tag)
}

// InplaceSolveVec solves a*x = v in place for a single right-hand side.
func InplaceSolveVec(a *matrix.Dense, v *matrix.Vector, tag ShapeTag) error {
	return linalg.InplaceSolveVec(a, v, tag)
}

// Solve returns the solution of a*x = b without modifying b.
func Solve(a, b *matrix.Dense, tag ShapeTag) (*matrix.Dense, error) {
	return linalg.Solve(a, b, tag)
}

// SolveVec returns the solution of a*x = v without modifying v.
func SolveVec(a *matrix.Dense, v *matrix.Vector, tag ShapeTag) (*matrix.Vector, error) {
	return linalg.SolveVec(a, v, tag)
}

// LU factorization

// LUFactorize overwrites a with its LU factors, no pivoting: the unit
// lower factor fills the strict lower triangle, the upper factor the
// rest. Fails with ErrSingularPivot when an elimination step meets a
// zero pivot; a is left partially factored in that case.
func LUFactorize(a *matrix.Dense) error {
	return linalg.LUFactorize(a)
}

// LUSubstitute finishes an LU solve: given factors packed into a by
// LUFactorize, it overwrites b with the solution of the original system.
// The forward sweep uses the implicit unit diagonal, the backward sweep
// the stored one.
//
// Example:
//
//	if err := linalg.LUFactorize(a); err != nil {
//	    return err
//	}
//	if err := linalg.LUSubstitute(a, b); err != nil {
//	    return err
//	}
//	// b now holds the solution, one column per right-hand side.
func LUSubstitute(a, b *matrix.Dense) error {
	return linalg.LUSubstitute(a, b)
}

// LUSubstituteVec is LUSubstitute for a single right-hand side.
func LUSubstituteVec(a *matrix.Dense, v *matrix.Vector) error {
	return linalg.LUSubstituteVec(a, v)
}

// Sparse solvers

// InplaceSolveCSR solves a*x = v in place, reading the tagged triangle
// of the sparse system. Entries outside the tagged triangle are ignored.
func InplaceSolveCSR(a *matrix.CSR, v *matrix.Vector, tag ShapeTag) error {
	return linalg.InplaceSolveCSR(a, v, tag)
}

// InplaceSolveCSRTrans solves transpose(a)*x = v in place. tag describes
// the triangle of a as stored: a Lower tag here is equivalent to a
// direct Upper solve on the explicitly transposed matrix.
func InplaceSolveCSRTrans(a *matrix.CSR, v *matrix.Vector, tag ShapeTag) error {
	return linalg.InplaceSolveCSRTrans(a, v, tag)
}

// SolveCSR returns the solution of a*x = v without modifying v.
func SolveCSR(a *matrix.CSR, v *matrix.Vector, tag ShapeTag) (*matrix.Vector, error) {
	return linalg.SolveCSR(a, v, tag)
}

// SolveCSRTrans returns the solution of transpose(a)*x = v without
// modifying v.
func SolveCSRTrans(a *matrix.CSR, v *matrix.Vector, tag ShapeTag) (*matrix.Vector, error) {
	return linalg.SolveCSRTrans(a, v, tag)
}

// MatVecCSR computes a*x into a fresh vector.
func MatVecCSR(a *matrix.CSR, x *matrix.Vector) (*matrix.Vector, error) {
	return linalg.MatVecCSR(a, x)
}

// RowStats extracts the per-row quantity selected by mode into a fresh
// vector of a.Rows() elements. The diagonal mode stores 0 for rows
// without a stored diagonal entry and never fails on structure.
func RowStats(a *matrix.CSR, mode RowStat) (*matrix.Vector, error) {
	return linalg.RowStats(a, mode)
}
