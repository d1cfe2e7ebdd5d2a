// Package host implements the sequential host backend.
package host

import (
	"github.com/laminar-la/laminar/internal/linalg"
	"github.com/laminar-la/laminar/internal/matrix"
	"github.com/laminar-la/laminar/internal/parallel"
)

// Backend runs every kernel on host memory. Execution is sequential and
// deterministic by default: one goroutine, fixed traversal orders, no
// reordering of floating-point accumulation. SetParallel fans out only
// sweeps whose rows or columns are independent of each other, so
// enabling workers cannot change any result bit.
type Backend struct {
	par parallel.Config
}

var _ linalg.Backend = (*Backend)(nil)

// New creates a sequential host backend.
func New() *Backend {
	return &Backend{}
}

// SetParallel configures worker fan-out for the row-independent sweeps:
// row statistics, sparse mat-vec, and the right-hand-side columns of a
// dense matrix solve. Triangular recurrences over a single vector always
// stay sequential.
func (h *Backend) SetParallel(cfg parallel.Config) {
	h.par = cfg
}

// Name returns the backend name.
func (h *Backend) Name() string { return "host" }

// Device returns the memory space this backend serves.
func (h *Backend) Device() matrix.Device { return matrix.Host }

// strides carries the extents and element strides of a dense operand.
type strides struct {
	rows, cols int
	rs, cs     int
}

func dims(d *matrix.Dense) strides {
	return strides{d.Rows(), d.Cols(), d.RowStride(), d.ColStride()}
}
