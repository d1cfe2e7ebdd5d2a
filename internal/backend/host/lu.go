package host

import (
	"fmt"

	"github.com/laminar-la/laminar/internal/linalg"
	"github.com/laminar-la/laminar/internal/matrix"
)

// LUFactorize overwrites a with its unpivoted LU factors: multipliers of
// the unit lower factor below the diagonal, the upper factor on and above
// it. A zero pivot stops elimination with ErrSingularPivot; the steps
// already applied remain in a.
func (h *Backend) LUFactorize(a *matrix.Dense) error {
	const op = "host.LUFactorize"
	switch a.DType() {
	case matrix.Float32:
		return luFactorize(op, a.AsFloat32(), dims(a))
	case matrix.Float64:
		return luFactorize(op, a.AsFloat64(), dims(a))
	default:
		panic(op + ": unsupported dtype " + a.DType().String())
	}
}

func luFactorize[T matrix.Float](op string, a []T, ad strides) error {
	n := ad.rows
	for k := 0; k < n; k++ {
		pivot := a[k*ad.rs+k*ad.cs]
		if pivot == 0 {
			// The final pivot is checked too: it eliminates nothing, but
			// a zero there makes the upper factor singular and the
			// following substitution divide by zero.
			return fmt.Errorf("%s: step %d: %w", op, k, linalg.ErrSingularPivot)
		}
		for i := k + 1; i < n; i++ {
			factor := a[i*ad.rs+k*ad.cs] / pivot
			a[i*ad.rs+k*ad.cs] = factor
			for j := k + 1; j < n; j++ {
				a[i*ad.rs+j*ad.cs] -= factor * a[k*ad.rs+j*ad.cs]
			}
		}
	}
	return nil
}
