package webgpu

import (
	"fmt"
	"math"

	"github.com/laminar-la/laminar/internal/linalg"
	"github.com/laminar-la/laminar/internal/matrix"
)

// DenseSolve solves a*x = b in place, overwriting b with x. Non-unit
// tags validate the diagonal before dispatch, so a failed call leaves b
// untouched.
func (b *Backend) DenseSolve(a, rhs *matrix.Dense, tag linalg.ShapeTag) error {
	const op = "webgpu.DenseSolve"
	if a.DType() == matrix.Float64 {
		return b.host.DenseSolve(a, rhs, tag)
	}
	if !tag.IsUnit() {
		if err := denseDiagonalErr(op, a); err != nil {
			return err
		}
	}
	return b.runDenseSolve(a, rhs.Data(), rhs.Cols(), rhs.RowStride(), rhs.ColStride(), tag)
}

// DenseSolveVec is DenseSolve for a single right-hand side.
func (b *Backend) DenseSolveVec(a *matrix.Dense, v *matrix.Vector, tag linalg.ShapeTag) error {
	const op = "webgpu.DenseSolveVec"
	if a.DType() == matrix.Float64 {
		return b.host.DenseSolveVec(a, v, tag)
	}
	if !tag.IsUnit() {
		if err := denseDiagonalErr(op, a); err != nil {
			return err
		}
	}
	return b.runDenseSolve(a, v.Data(), 1, 1, 1, tag)
}

// LUFactorize overwrites a with its unpivoted LU factors. The device
// kernel runs every elimination step; a vanishing pivot poisons all
// later entries instead of stopping the sweep, so breakdown is detected
// by scanning the factored diagonal after readback.
func (b *Backend) LUFactorize(a *matrix.Dense) error {
	const op = "webgpu.LUFactorize"
	if a.DType() == matrix.Float64 {
		return b.host.LUFactorize(a)
	}
	if err := b.runLUFactorize(a); err != nil {
		return err
	}
	vals := a.AsFloat32()
	rs, cs := a.RowStride(), a.ColStride()
	for k := 0; k < a.Rows(); k++ {
		d := float64(vals[k*rs+k*cs])
		if d == 0 || math.IsNaN(d) || math.IsInf(d, 0) {
			return fmt.Errorf("%s: step %d: %w", op, k, linalg.ErrSingularPivot)
		}
	}
	return nil
}

// CSRSolve solves a*x = v in place for a sparse triangular a.
func (b *Backend) CSRSolve(a *matrix.CSR, v *matrix.Vector, tag linalg.ShapeTag) error {
	const op = "webgpu.CSRSolve"
	if a.DType() == matrix.Float64 {
		return b.host.CSRSolve(a, v, tag)
	}
	if !tag.IsUnit() {
		if err := csrDiagonalErr(op, a); err != nil {
			return err
		}
	}
	return b.runCSRSolve("csr_solve", csrSolveShader, a, v, tag)
}

// CSRSolveTrans solves transpose(a)*x = v in place. tag describes the
// stored triangle of a, before transposition.
func (b *Backend) CSRSolveTrans(a *matrix.CSR, v *matrix.Vector, tag linalg.ShapeTag) error {
	const op = "webgpu.CSRSolveTrans"
	if a.DType() == matrix.Float64 {
		return b.host.CSRSolveTrans(a, v, tag)
	}
	if !tag.IsUnit() {
		// The transpose shares the diagonal of a.
		if err := csrDiagonalErr(op, a); err != nil {
			return err
		}
	}
	return b.runCSRSolve("csr_trans_solve", csrTransSolveShader, a, v, tag)
}

// CSRMatVec computes result = a*x.
func (b *Backend) CSRMatVec(a *matrix.CSR, x, result *matrix.Vector) error {
	if a.DType() == matrix.Float64 {
		return b.host.CSRMatVec(a, x, result)
	}
	return b.runCSRMatVec(a, x, result)
}

// RowStats fills result with the per-row quantity selected by mode.
func (b *Backend) RowStats(a *matrix.CSR, mode linalg.RowStat, result *matrix.Vector) error {
	if a.DType() == matrix.Float64 {
		return b.host.RowStats(a, mode, result)
	}
	return b.runRowStats(a, mode, result)
}

// denseDiagonalErr reports the first zero diagonal entry.
func denseDiagonalErr(op string, a *matrix.Dense) error {
	vals := a.AsFloat32()
	rs, cs := a.RowStride(), a.ColStride()
	for k := 0; k < a.Rows(); k++ {
		if vals[k*rs+k*cs] == 0 {
			return fmt.Errorf("%s: row %d: %w", op, k, linalg.ErrZeroDiagonal)
		}
	}
	return nil
}

// csrDiagonalErr reports the first row whose diagonal entry is missing
// or zero. Index arrays are host-resident, so validation never touches
// the device.
func csrDiagonalErr(op string, a *matrix.CSR) error {
	rowPtr, colIdx, vals := a.RowPtr(), a.ColIdx(), a.AsFloat32()
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
