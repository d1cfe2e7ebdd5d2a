package linalg

import (
	"fmt"

	"github.com/laminar-la/laminar/internal/matrix"
)

// RowScaling is the row-norm companion of Jacobi: application divides
// each vector element by the selected norm of the matching matrix row.
// Same contract as Jacobi otherwise: built once, applied with a plain
// element loop and no backend dispatch.
type RowScaling struct {
	scale *matrix.Vector
}

// NewRowScaling builds per-row scale factors from the selected norm.
// mode must be one of the norm statistics; diagonal extraction is the
// job of NewJacobiCSR. A zero row norm fails with ErrZeroDiagonal, since
// an empty row can no more be scaled than a zero diagonal divided.
func NewRowScaling(a *matrix.CSR, mode RowStat) (*RowScaling, error) {
	const op = "linalg.NewRowScaling"
	if mode == RowDiagonal {
		panic(op + ": RowDiagonal is not a norm")
	}
	scale, err := RowStats(a, mode)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if row := firstZero(scale); row >= 0 {
		return nil, fmt.Errorf("%s: row %d has zero norm: %w", op, row, ErrZeroDiagonal)
	}
	return &RowScaling{scale: scale}, nil
}

// Apply divides v elementwise by the row norms, in place.
func (r *RowScaling) Apply(v *matrix.Vector) error {
	const op = "linalg.RowScaling.Apply"
	if v.Len() != r.scale.Len() {
		return fmt.Errorf("%s: vector has %d elements, scale has %d: %w",
			op, v.Len(), r.scale.Len(), ErrDimensionMismatch)
	}
	sameDType(op, v.DType(), r.scale.DType())
	switch v.DType() {
	case matrix.Float32:
		divideBy(v.AsFloat32(), r.scale.AsFloat32())
	case matrix.Float64:
		divideBy(v.AsFloat64(), r.scale.AsFloat64())
	}
	return nil
}

// Scale returns the snapshotted row norms. The vector is the backing
// storage of the preconditioner, not a copy.
func (r *RowScaling) Scale() *matrix.Vector { return r.scale }
