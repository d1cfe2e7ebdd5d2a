package host

import (
	"math"

	"github.com/laminar-la/laminar/internal/linalg"
	"github.com/laminar-la/laminar/internal/matrix"
	"github.com/laminar-la/laminar/internal/parallel"
)

// RowStats extracts one quantity per row in a single pass over the row's
// stored entries. The diagonal mode takes the first stored diagonal
// entry and reports 0 when the row has none.
func (h *Backend) RowStats(a *matrix.CSR, mode linalg.RowStat, result *matrix.Vector) error {
	const op = "host.RowStats"
	switch a.DType() {
	case matrix.Float32:
		rowStats(h.par, a.RowPtr(), a.ColIdx(), a.AsFloat32(), result.AsFloat32(), mode)
	case matrix.Float64:
		rowStats(h.par, a.RowPtr(), a.ColIdx(), a.AsFloat64(), result.AsFloat64(), mode)
	default:
		panic(op + ": unsupported dtype " + a.DType().String())
	}
	return nil
}

func rowStats[T matrix.Float](par parallel.Config, rowPtr, colIdx []int32, vals, result []T, mode linalg.RowStat) {
	parallel.For(len(rowPtr)-1, func(row int) {
		var value T
		rowEnd := rowPtr[row+1]
		switch mode {
		case linalg.RowNormInf:
			for i := rowPtr[row]; i < rowEnd; i++ {
				if a := abs(vals[i]); a > value {
					value = a
				}
			}
		case linalg.RowNorm1:
			for i := rowPtr[row]; i < rowEnd; i++ {
				value += abs(vals[i])
			}
		case linalg.RowNorm2:
			for i := rowPtr[row]; i < rowEnd; i++ {
				value += vals[i] * vals[i]
			}
			value = T(math.Sqrt(float64(value)))
		case linalg.RowDiagonal:
			for i := rowPtr[row]; i < rowEnd; i++ {
				if int(colIdx[i]) == row {
					value = vals[i]
					break
				}
			}
		}
		result[row] = value
	}, par)
}

func abs[T matrix.Float](v T) T {
	if v < 0 {
		return -v
	}
	return v
}
