package linalg

import (
	"fmt"

	"github.com/laminar-la/laminar/internal/matrix"
)

// InplaceSolve solves a*x = b in place, overwriting b with the solution
// column by column. Transposed operands are passed as stride views
// (Dense.T), so all four orientation combinations route through here.
func InplaceSolve(a, b *matrix.Dense, tag ShapeTag) error {
	const op = "linalg.InplaceSolve"
	if err := checkSquare(op, a); err != nil {
		return err
	}
	if a.Cols() != b.Rows() {
		return fmt.Errorf("%s: system is %dx%d but rhs has %d rows: %w",
			op, a.Rows(), a.Cols(), b.Rows(), ErrDimensionMismatch)
	}
	sameDType(op, a.DType(), b.DType())
	be, err := route(op, a.Device(), b.Device())
	if err != nil {
		return err
	}
	return be.DenseSolve(a, b, tag)
}

// InplaceSolveVec solves a*x = v in place for a single right-hand side.
func InplaceSolveVec(a *matrix.Dense, v *matrix.Vector, tag ShapeTag) error {
	const op = "linalg.InplaceSolveVec"
	if err := checkSquare(op, a); err != nil {
		return err
	}
	if a.Cols() != v.Len() {
		return fmt.Errorf("%s: system is %dx%d but rhs has %d elements: %w",
			op, a.Rows(), a.Cols(), v.Len(), ErrDimensionMismatch)
	}
	sameDType(op, a.DType(), v.DType())
	be, err := route(op, a.Device(), v.Device())
	if err != nil {
		return err
	}
	return be.DenseSolveVec(a, v, tag)
}

// Solve returns the solution of a*x = b without modifying b.
func Solve(a, b *matrix.Dense, tag ShapeTag) (*matrix.Dense, error) {
	x := b.Clone()
	if err := InplaceSolve(a, x, tag); err != nil {
		return nil, err
	}
	return x, nil
}

// SolveVec returns the solution of a*x = v without modifying v.
func SolveVec(a *matrix.Dense, v *matrix.Vector, tag ShapeTag) (*matrix.Vector, error) {
	x := v.Clone()
	if err := InplaceSolveVec(a, x, tag); err != nil {
		return nil, err
	}
	return x, nil
}

// LUFactorize overwrites a with its LU factors, no pivoting: the unit
// lower factor fills the strict lower triangle, the upper factor the
// rest. Fails with ErrSingularPivot when an elimination step meets a zero
// pivot; a is left partially factored in that case.
func LUFactorize(a *matrix.Dense) error {
	const op = "linalg.LUFactorize"
	if err := checkSquare(op, a); err != nil {
		return err
	}
	be, err := backendFor(op, a.Device())
	if err != nil {
		return err
	}
	return be.LUFactorize(a)
}

// LUSubstitute finishes an LU solve: given factors packed into a by
// LUFactorize, it overwrites b with the solution of the original system.
// The forward sweep uses the implicit unit diagonal, the backward sweep
// the stored one.
func LUSubstitute(a, b *matrix.Dense) error {
	const op = "linalg.LUSubstitute"
	if err := checkSquare(op, a); err != nil {
		return err
	}
	if a.Cols() != b.Rows() {
		return fmt.Errorf("%s: system is %dx%d but rhs has %d rows: %w",
			op, a.Rows(), a.Cols(), b.Rows(), ErrDimensionMismatch)
	}
	sameDType(op, a.DType(), b.DType())
	be, err := route(op, a.Device(), b.Device())
	if err != nil {
		return err
	}
	if err := be.DenseSolve(a, b, UnitLower); err != nil {
		return err
	}
	return be.DenseSolve(a, b, Upper)
}

// LUSubstituteVec is LUSubstitute for a single right-hand side.
func LUSubstituteVec(a *matrix.Dense, v *matrix.Vector) error {
	const op = "linalg.LUSubstituteVec"
	if err := checkSquare(op, a); err != nil {
		return err
	}
	if a.Cols() != v.Len() {
		return fmt.Errorf("%s: system is %dx%d but rhs has %d elements: %w",
			op, a.Rows(), a.Cols(), v.Len(), ErrDimensionMismatch)
	}
	sameDType(op, a.DType(), v.DType())
	be, err := route(op, a.Device(), v.Device())
	if err != nil {
		return err
	}
	if err := be.DenseSolveVec(a, v, UnitLower); err != nil {
		return err
	}
	return be.DenseSolveVec(a, v, Upper)
}

// InplaceSolveCSR solves a*x = v in place, reading the tagged triangle of
// the sparse system. Entries outside the tagged triangle are ignored.
func InplaceSolveCSR(a *matrix.CSR, v *matrix.Vector, tag ShapeTag) error {
	const op = "linalg.InplaceSolveCSR"
	if err := checkSparse(op, a, v); err != nil {
		return err
	}
	be, err := route(op, a.Device(), v.Device())
	if err != nil {
		return err
	}
	return be.CSRSolve(a, v, tag)
}

// InplaceSolveCSRTrans solves transpose(a)*x = v in place. tag describes
// the triangle of a as stored: a Lower tag here is equivalent to a direct
// Upper solve on the explicitly transposed matrix.
func InplaceSolveCSRTrans(a *matrix.CSR, v *matrix.Vector, tag ShapeTag) error {
	const op = "linalg.InplaceSolveCSRTrans"
	if err := checkSparse(op, a, v); err != nil {
		return err
	}
	be, err := route(op, a.Device(), v.Device())
	if err != nil {
		return err
	}
	return be.CSRSolveTrans(a, v, tag)
}

// SolveCSR returns the solution of a*x = v without modifying v.
func SolveCSR(a *matrix.CSR, v *matrix.Vector, tag ShapeTag) (*matrix.Vector, error) {
	x := v.Clone()
	if err := InplaceSolveCSR(a, x, tag); err != nil {
		return nil, err
	}
	return x, nil
}

// SolveCSRTrans returns the solution of transpose(a)*x = v without
// modifying v.
func SolveCSRTrans(a *matrix.CSR, v *matrix.Vector, tag ShapeTag) (*matrix.Vector, error) {
	x := v.Clone()
	if err := InplaceSolveCSRTrans(a, x, tag); err != nil {
		return nil, err
	}
	return x, nil
}

// MatVecCSR computes a*x into a fresh vector.
func MatVecCSR(a *matrix.CSR, x *matrix.Vector) (*matrix.Vector, error) {
	const op = "linalg.MatVecCSR"
	if a.Cols() != x.Len() {
		return nil, fmt.Errorf("%s: matrix is %dx%d but vector has %d elements: %w",
			op, a.Rows(), a.Cols(), x.Len(), ErrDimensionMismatch)
	}
	sameDType(op, a.DType(), x.DType())
	be, err := route(op, a.Device(), x.Device())
	if err != nil {
		return nil, err
	}
	result, err := matrix.NewVector(a.Rows(), a.DType(), a.Device())
	if err != nil {
		return nil, err
	}
	if err := be.CSRMatVec(a, x, result); err != nil {
		return nil, err
	}
	return result, nil
}

// RowStats extracts the per-row quantity selected by mode into a fresh
// vector of a.Rows() elements. The diagonal mode stores 0 for rows
// without a stored diagonal entry and never fails on structure.
func RowStats(a *matrix.CSR, mode RowStat) (*matrix.Vector, error) {
	const op = "linalg.RowStats"
	be, err := backendFor(op, a.Device())
	if err != nil {
		return nil, err
	}
	result, err := matrix.NewVector(a.Rows(), a.DType(), a.Device())
	if err != nil {
		return nil, err
	}
	if err := be.RowStats(a, mode, result); err != nil {
		return nil, err
	}
	return result, nil
}

func checkSparse(op string, a *matrix.CSR, v *matrix.Vector) error {
	if err := checkSquare(op, a); err != nil {
		return err
	}
	if a.Cols() != v.Len() {
		return fmt.Errorf("%s: system is %dx%d but rhs has %d elements: %w",
			op, a.Rows(), a.Cols(), v.Len(), ErrDimensionMismatch)
	}
	sameDType(op, a.DType(), v.DType())
	return nil
}
