package host

import (
	"fmt"

	"github.com/laminar-la/laminar/internal/linalg"
	"github.com/laminar-la/laminar/internal/matrix"
	"github.com/laminar-la/laminar/internal/parallel"
)

// CSRSolve solves a*x = v in place. Rows are swept in tag order and each
// row's stored entries are scanned once, in storage order; entries on the
// wrong side of the diagonal are skipped. Non-unit tags validate the
// whole diagonal before the first write, so a failed call leaves v
// untouched.
func (h *Backend) CSRSolve(a *matrix.CSR, v *matrix.Vector, tag linalg.ShapeTag) error {
	const op = "host.CSRSolve"
	if !tag.IsUnit() {
		if err := csrDiagonalErr(op, a); err != nil {
			return err
		}
	}
	switch a.DType() {
	case matrix.Float32:
		csrSolve(a.RowPtr(), a.ColIdx(), a.AsFloat32(), v.AsFloat32(), tag)
	case matrix.Float64:
		csrSolve(a.RowPtr(), a.ColIdx(), a.AsFloat64(), v.AsFloat64(), tag)
	default:
		panic(op + ": unsupported dtype " + a.DType().String())
	}
	return nil
}

// CSRSolveTrans solves transpose(a)*x = v in place without materializing
// the transpose: stored rows are walked as columns of the transposed
// system and updates scatter to the remaining unknowns. tag describes
// the stored triangle of a, so a Lower tag runs the backward sweep of
// the upper system it transposes into.
func (h *Backend) CSRSolveTrans(a *matrix.CSR, v *matrix.Vector, tag linalg.ShapeTag) error {
	const op = "host.CSRSolveTrans"
	if !tag.IsUnit() {
		// The transpose shares the diagonal of a.
		if err := csrDiagonalErr(op, a); err != nil {
			return err
		}
	}
	switch a.DType() {
	case matrix.Float32:
		csrSolveTrans(a.RowPtr(), a.ColIdx(), a.AsFloat32(), v.AsFloat32(), tag)
	case matrix.Float64:
		csrSolveTrans(a.RowPtr(), a.ColIdx(), a.AsFloat64(), v.AsFloat64(), tag)
	default:
		panic(op + ": unsupported dtype " + a.DType().String())
	}
	return nil
}

// CSRMatVec computes result = a*x, one dot product per row.
func (h *Backend) CSRMatVec(a *matrix.CSR, x, result *matrix.Vector) error {
	const op = "host.CSRMatVec"
	switch a.DType() {
	case matrix.Float32:
		csrMatVec(h.par, a.RowPtr(), a.ColIdx(), a.AsFloat32(), x.AsFloat32(), result.AsFloat32())
	case matrix.Float64:
		csrMatVec(h.par, a.RowPtr(), a.ColIdx(), a.AsFloat64(), x.AsFloat64(), result.AsFloat64())
	default:
		panic(op + ": unsupported dtype " + a.DType().String())
	}
	return nil
}

func csrSolve[T matrix.Float](rowPtr, colIdx []int32, vals, x []T, tag linalg.ShapeTag) {
	switch tag {
	case linalg.UnitLower:
		csrUnitLowerSolve(rowPtr, colIdx, vals, x)
	case linalg.Lower:
		csrLowerSolve(rowPtr, colIdx, vals, x)
	case linalg.UnitUpper:
		csrUnitUpperSolve(rowPtr, colIdx, vals, x)
	case linalg.Upper:
		csrUpperSolve(rowPtr, colIdx, vals, x)
	}
}

func csrSolveTrans[T matrix.Float](rowPtr, colIdx []int32, vals, x []T, tag linalg.ShapeTag) {
	switch tag {
	case linalg.UnitLower:
		csrUnitLowerSolveTrans(rowPtr, colIdx, vals, x)
	case linalg.Lower:
		csrLowerSolveTrans(rowPtr, colIdx, vals, x)
	case linalg.UnitUpper:
		csrUnitUpperSolveTrans(rowPtr, colIdx, vals, x)
	case linalg.Upper:
		csrUpperSolveTrans(rowPtr, colIdx, vals, x)
	}
}

// csrUnitLowerSolve sweeps rows forward. Row 0 needs no update under a
// unit diagonal, so the sweep starts at row 1.
func csrUnitLowerSolve[T matrix.Float](rowPtr, colIdx []int32, vals, x []T) {
	n := len(rowPtr) - 1
	if n < 2 {
		return
	}
	rowBegin := rowPtr[1]
	for row := 1; row < n; row++ {
		entry := x[row]
		rowEnd := rowPtr[row+1]
		for i := rowBegin; i < rowEnd; i++ {
			if col := int(colIdx[i]); col < row {
				entry -= x[col] * vals[i]
			}
		}
		x[row] = entry
		rowBegin = rowEnd
	}
}

// csrLowerSolve sweeps rows forward, picking up the diagonal entry in
// the same scan that accumulates the substitution.
func csrLowerSolve[T matrix.Float](rowPtr, colIdx []int32, vals, x []T) {
	n := len(rowPtr) - 1
	rowBegin := rowPtr[0]
	for row := 0; row < n; row++ {
		entry := x[row]
		rowEnd := rowPtr[row+1]
		var diag T
		for i := rowBegin; i < rowEnd; i++ {
			col := int(colIdx[i])
			if col < row {
				entry -= x[col] * vals[i]
			} else if col == row {
				diag = vals[i]
			}
		}
		x[row] = entry / diag
		rowBegin = rowEnd
	}
}

// csrUnitUpperSolve sweeps rows backward starting below the last row,
// which needs no update under a unit diagonal.
func csrUnitUpperSolve[T matrix.Float](rowPtr, colIdx []int32, vals, x []T) {
	n := len(rowPtr) - 1
	for row2 := 1; row2 < n; row2++ {
		row := n - row2 - 1
		entry := x[row]
		for i := rowPtr[row]; i < rowPtr[row+1]; i++ {
			if col := int(colIdx[i]); col > row {
				entry -= x[col] * vals[i]
			}
		}
		x[row] = entry
	}
}

func csrUpperSolve[T matrix.Float](rowPtr, colIdx []int32, vals, x []T) {
	n := len(rowPtr) - 1
	for row2 := 0; row2 < n; row2++ {
		row := n - row2 - 1
		entry := x[row]
		var diag T
		for i := rowPtr[row]; i < rowPtr[row+1]; i++ {
			col := int(colIdx[i])
			if col > row {
				entry -= x[col] * vals[i]
			} else if col == row {
				diag = vals[i]
			}
		}
		x[row] = entry / diag
	}
}

// csrUnitLowerSolveTrans solves against a stored unit-lower matrix whose
// transpose is unit upper: columns of the transpose are walked backward,
// x[col] is final the moment it is visited, and its contribution scatters
// to the earlier unknowns.
func csrUnitLowerSolveTrans[T matrix.Float](rowPtr, colIdx []int32, vals, x []T) {
	n := len(rowPtr) - 1
	for col2 := 0; col2 < n; col2++ {
		col := n - col2 - 1
		entry := x[col]
		for i := rowPtr[col]; i < rowPtr[col+1]; i++ {
			if row := int(colIdx[i]); row < col {
				x[row] -= entry * vals[i]
			}
		}
	}
}

// csrLowerSolveTrans locates the diagonal first, then finalizes x[col]
// and scatters. The first stored diagonal entry wins.
func csrLowerSolveTrans[T matrix.Float](rowPtr, colIdx []int32, vals, x []T) {
	n := len(rowPtr) - 1
	for col2 := 0; col2 < n; col2++ {
		col := n - col2 - 1
		var diag T
		for i := rowPtr[col]; i < rowPtr[col+1]; i++ {
			if int(colIdx[i]) == col {
				diag = vals[i]
				break
			}
		}
		entry := x[col] / diag
		x[col] = entry
		for i := rowPtr[col]; i < rowPtr[col+1]; i++ {
			if row := int(colIdx[i]); row < col {
				x[row] -= entry * vals[i]
			}
		}
	}
}

// csrUnitUpperSolveTrans is the forward mirror: the transpose of a stored
// unit-upper matrix is unit lower, so columns are walked forward and each
// finalized x[col] scatters to the later unknowns.
func csrUnitUpperSolveTrans[T matrix.Float](rowPtr, colIdx []int32, vals, x []T) {
	n := len(rowPtr) - 1
	colBegin := rowPtr[0]
	for col := 0; col < n; col++ {
		entry := x[col]
		colEnd := rowPtr[col+1]
		for i := colBegin; i < colEnd; i++ {
			if row := int(colIdx[i]); row > col {
				x[row] -= entry * vals[i]
			}
		}
		colBegin = colEnd
	}
}

func csrUpperSolveTrans[T matrix.Float](rowPtr, colIdx []int32, vals, x []T) {
	n := len(rowPtr) - 1
	colBegin := rowPtr[0]
	for col := 0; col < n; col++ {
		colEnd := rowPtr[col+1]
		var diag T
		for i := colBegin; i < colEnd; i++ {
			if int(colIdx[i]) == col {
				diag = vals[i]
				break
			}
		}
		entry := x[col] / diag
		x[col] = entry
		for i := colBegin; i < colEnd; i++ {
			if row := int(colIdx[i]); row > col {
				x[row] -= entry * vals[i]
			}
		}
		colBegin = colEnd
	}
}

func csrMatVec[T matrix.Float](par parallel.Config, rowPtr, colIdx []int32, vals, x, result []T) {
	parallel.For(len(rowPtr)-1, func(row int) {
		var dot T
		for i := rowPtr[row]; i < rowPtr[row+1]; i++ {
			dot += vals[i] * x[colIdx[i]]
		}
		result[row] = dot
	}, par)
}

// csrDiagonalErr reports the first row whose diagonal entry is missing
// or zero. Non-unit solves run only after this passes, so they never
// mutate the right-hand side on failure.
func csrDiagonalErr(op string, a *matrix.CSR) error {
	switch a.DType() {
	case matrix.Float32:
		return csrDiagonalScan(op, a.RowPtr(), a.ColIdx(), a.AsFloat32())
	case matrix.Float64:
		return csrDiagonalScan(op, a.RowPtr(), a.ColIdx(), a.AsFloat64())
	default:
		panic(op + ": unsupported dtype " + a.DType().String())
	}
}

func csrDiagonalScan[T matrix.Float](op string, rowPtr, colIdx []int32, vals []T) error {
	for row := 0; row < len(rowPtr)-1; row++ {
		found := false
		for i := rowPtr[row]; i < rowPtr[row+1]; i++ {
			if int(colIdx[i]) == row {
				if vals[i] == 0 {
					return fmt.Errorf("%s: row %d: %w", op, row, linalg.ErrZeroDiagonal)
				}
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("%s: row %d: %w", op, row, linalg.ErrMissingDiagonal)
		}
	}
	return nil
}
