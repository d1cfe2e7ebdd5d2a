package linalg

import (
	"fmt"

	"github.com/laminar-la/laminar/internal/matrix"
)

// Jacobi is the diagonal preconditioner: application divides each vector
// element by the matching diagonal entry of the system matrix.
//
// Construction snapshots the diagonal; Apply is a plain element loop over
// host-visible memory with no backend dispatch.
type Jacobi struct {
	diag *matrix.Vector
}

// NewJacobi builds the preconditioner from the diagonal of a dense
// matrix. A row beyond the last column has no diagonal position and
// fails with ErrMissingDiagonal; a stored zero fails with
// ErrZeroDiagonal. Both are construction-time failures, so a Jacobi
// value that exists can always be applied.
func NewJacobi(a *matrix.Dense) (*Jacobi, error) {
	const op = "linalg.NewJacobi"
	diag, err := matrix.NewVector(a.Rows(), a.DType(), a.Device())
	if err != nil {
		return nil, err
	}
	switch a.DType() {
	case matrix.Float32:
		err = snapDiag(op, diag.AsFloat32(), a.AsFloat32(), a.Rows(), a.Cols(), a.RowStride(), a.ColStride())
	case matrix.Float64:
		err = snapDiag(op, diag.AsFloat64(), a.AsFloat64(), a.Rows(), a.Cols(), a.RowStride(), a.ColStride())
	}
	if err != nil {
		return nil, err
	}
	return &Jacobi{diag: diag}, nil
}

// NewJacobiCSR builds the preconditioner from the diagonal of a sparse
// matrix, extracted through the row-statistics engine of its backend.
// The extractor reports 0 for both a stored zero and a structurally
// absent diagonal; either way the division is poisoned, so both fail
// with ErrZeroDiagonal.
func NewJacobiCSR(a *matrix.CSR) (*Jacobi, error) {
	const op = "linalg.NewJacobiCSR"
	diag, err := RowStats(a, RowDiagonal)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if row := firstZero(diag); row >= 0 {
		return nil, fmt.Errorf("%s: row %d: %w", op, row, ErrZeroDiagonal)
	}
	return &Jacobi{diag: diag}, nil
}

// Apply divides v elementwise by the snapshotted diagonal, in place.
func (j *Jacobi) Apply(v *matrix.Vector) error {
	const op = "linalg.Jacobi.Apply"
	if v.Len() != j.diag.Len() {
		return fmt.Errorf("%s: vector has %d elements, diagonal has %d: %w",
			op, v.Len(), j.diag.Len(), ErrDimensionMismatch)
	}
	sameDType(op, v.DType(), j.diag.DType())
	switch v.DType() {
	case matrix.Float32:
		divideBy(v.AsFloat32(), j.diag.AsFloat32())
	case matrix.Float64:
		divideBy(v.AsFloat64(), j.diag.AsFloat64())
	}
	return nil
}

// Diag returns the snapshotted diagonal. The vector is the backing
// storage of the preconditioner, not a copy.
func (j *Jacobi) Diag() *matrix.Vector { return j.diag }

func snapDiag[T matrix.Float](op string, dst, src []T, rows, cols, rstride, cstride int) error {
	for r := 0; r < rows; r++ {
		if r >= cols {
			return fmt.Errorf("%s: row %d: %w", op, r, ErrMissingDiagonal)
		}
		v := src[r*rstride+r*cstride]
		if v == 0 {
			return fmt.Errorf("%s: row %d: %w", op, r, ErrZeroDiagonal)
		}
		dst[r] = v
	}
	return nil
}

// firstZero returns the index of the first zero element, or -1.
func firstZero(v *matrix.Vector) int {
	switch v.DType() {
	case matrix.Float32:
		for i, x := range v.AsFloat32() {
			if x == 0 {
				return i
			}
		}
	case matrix.Float64:
		for i, x := range v.AsFloat64() {
			if x == 0 {
				return i
			}
		}
	}
	return -1
}

func divideBy[T matrix.Float](v, by []T) {
	for i := range v {
		v[i] /= by[i]
	}
}
