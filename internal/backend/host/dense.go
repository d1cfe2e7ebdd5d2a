package host

import (
	"fmt"

	"github.com/laminar-la/laminar/internal/linalg"
	"github.com/laminar-la/laminar/internal/matrix"
	"github.com/laminar-la/laminar/internal/parallel"
)

// DenseSolve solves a*x = b in place, one right-hand-side column at a
// time. Non-unit tags check the whole diagonal before the first write,
// so a failed call leaves b untouched.
func (h *Backend) DenseSolve(a, b *matrix.Dense, tag linalg.ShapeTag) error {
	const op = "host.DenseSolve"
	switch a.DType() {
	case matrix.Float32:
		return denseSolve(op, h.par, a.AsFloat32(), dims(a), b.AsFloat32(), dims(b), tag)
	case matrix.Float64:
		return denseSolve(op, h.par, a.AsFloat64(), dims(a), b.AsFloat64(), dims(b), tag)
	default:
		panic(op + ": unsupported dtype " + a.DType().String())
	}
}

// DenseSolveVec is DenseSolve for a single right-hand side.
func (h *Backend) DenseSolveVec(a *matrix.Dense, v *matrix.Vector, tag linalg.ShapeTag) error {
	const op = "host.DenseSolveVec"
	switch a.DType() {
	case matrix.Float32:
		return denseSolveVec(op, a.AsFloat32(), dims(a), v.AsFloat32(), tag)
	case matrix.Float64:
		return denseSolveVec(op, a.AsFloat64(), dims(a), v.AsFloat64(), tag)
	default:
		panic(op + ": unsupported dtype " + a.DType().String())
	}
}

func denseSolve[T matrix.Float](op string, par parallel.Config, a []T, ad strides, b []T, bd strides, tag linalg.ShapeTag) error {
	if !tag.IsUnit() {
		if err := denseDiagonalErr(op, a, ad); err != nil {
			return err
		}
	}
	// Each rhs column runs the same recurrence independently.
	parallel.For(bd.cols, func(c int) {
		solveColumn(a, ad, b, c*bd.cs, bd.rs, tag)
	}, par)
	return nil
}

func denseSolveVec[T matrix.Float](op string, a []T, ad strides, x []T, tag linalg.ShapeTag) error {
	if !tag.IsUnit() {
		if err := denseDiagonalErr(op, a, ad); err != nil {
			return err
		}
	}
	solveColumn(a, ad, x, 0, 1, tag)
	return nil
}

// solveColumn runs the triangular recurrence on one right-hand side laid
// out at x[x0 + row*xs]: forward rows for lower tags, backward for upper,
// dividing by the diagonal unless it is implicit.
func solveColumn[T matrix.Float](a []T, ad strides, x []T, x0, xs int, tag linalg.ShapeTag) {
	n := ad.rows
	unit := tag.IsUnit()
	if tag.IsUpper() {
		for row := n - 1; row >= 0; row-- {
			entry := x[x0+row*xs]
			for col := row + 1; col < n; col++ {
				entry -= a[row*ad.rs+col*ad.cs] * x[x0+col*xs]
			}
			if !unit {
				entry /= a[row*ad.rs+row*ad.cs]
			}
			x[x0+row*xs] = entry
		}
		return
	}
	for row := 0; row < n; row++ {
		entry := x[x0+row*xs]
		for col := 0; col < row; col++ {
			entry -= a[row*ad.rs+col*ad.cs] * x[x0+col*xs]
		}
		if !unit {
			entry /= a[row*ad.rs+row*ad.cs]
		}
		x[x0+row*xs] = entry
	}
}

// denseDiagonalErr reports the first zero diagonal entry. A square dense
// matrix always has the storage location, so only the value can be bad.
func denseDiagonalErr[T matrix.Float](op string, a []T, ad strides) error {
	for k := 0; k < ad.rows; k++ {
		if a[k*ad.rs+k*ad.cs] == 0 {
			return fmt.Errorf("%s: row %d: %w", op, k, linalg.ErrZeroDiagonal)
		}
	}
	return nil
}
