package linalg

import (
	"fmt"
	"sync"

	"github.com/laminar-la/laminar/internal/matrix"
)

// Backend is the capability contract a compute engine fulfills. Every
// operation mutates its output operand in place and is synchronous: when
// a call returns, results are visible in the container's buffer.
//
// Dimension and device preconditions are validated by the dispatch layer
// in this package; implementations may assume conformant operands.
type Backend interface {
	// DenseSolve solves a*x = b in place, overwriting b with x. Only the
	// triangle of a selected by tag is read.
	DenseSolve(a, b *matrix.Dense, tag ShapeTag) error
	// DenseSolveVec is DenseSolve for a single right-hand side.
	DenseSolveVec(a *matrix.Dense, v *matrix.Vector, tag ShapeTag) error
	// LUFactorize overwrites a with its unpivoted LU factors: unit lower
	// triangle below the diagonal, upper triangle on and above it.
	LUFactorize(a *matrix.Dense) error
	// CSRSolve solves a*x = v in place for a sparse triangular a.
	CSRSolve(a *matrix.CSR, v *matrix.Vector, tag ShapeTag) error
	// CSRSolveTrans solves transpose(a)*x = v in place. tag describes the
	// stored triangle of a, before transposition.
	CSRSolveTrans(a *matrix.CSR, v *matrix.Vector, tag ShapeTag) error
	// CSRMatVec computes result = a*x.
	CSRMatVec(a *matrix.CSR, x, result *matrix.Vector) error
	// RowStats fills result with the per-row quantity selected by mode.
	RowStats(a *matrix.CSR, mode RowStat, result *matrix.Vector) error

	// Metadata
	Name() string
	Device() matrix.Device
}

var (
	backendsMu sync.RWMutex
	backends   = make(map[matrix.Device]Backend)
)

// Register makes a backend available to operands tagged with its device.
// Registering a second backend for the same device replaces the first.
func Register(b Backend) {
	backendsMu.Lock()
	defer backendsMu.Unlock()
	backends[b.Device()] = b
}

// Backends describes the registered backends, ordered by device.
func Backends() []string {
	backendsMu.RLock()
	defer backendsMu.RUnlock()
	out := make([]string, 0, len(backends))
	for d := matrix.Host; d <= matrix.WebGPU; d++ {
		if b, ok := backends[d]; ok {
			out = append(out, fmt.Sprintf("%s (%s)", b.Name(), d))
		}
	}
	return out
}

// backendFor resolves the backend serving a device.
func backendFor(op string, d matrix.Device) (Backend, error) {
	backendsMu.RLock()
	b, ok := backends[d]
	backendsMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%s: device %s: %w", op, d, ErrUnsupportedBackend)
	}
	return b, nil
}

// route resolves the backend after checking that all operands share one
// device. No single engine can see buffers from two memory spaces.
func route(op string, devs ...matrix.Device) (Backend, error) {
	for _, d := range devs[1:] {
		if d != devs[0] {
			return nil, fmt.Errorf("%s: operands on %s and %s: %w", op, devs[0], d, ErrUnsupportedBackend)
		}
	}
	return backendFor(op, devs[0])
}

// sameDType panics on mixed element types. Unlike device routing this is
// not a runtime condition: the typed constructors make it impossible to
// hit without reinterpreting buffers by hand.
func sameDType(op string, a, b matrix.DataType) {
	if a != b {
		panic(fmt.Sprintf("%s: operand dtypes differ: %s vs %s", op, a, b))
	}
}

type extents interface {
	Rows() int
	Cols() int
}

func checkSquare(op string, m extents) error {
	if m.Rows() != m.Cols() {
		return fmt.Errorf("%s: system matrix is %dx%d, want square: %w",
			op, m.Rows(), m.Cols(), ErrDimensionMismatch)
	}
	return nil
}
