// Copyright 2025 The Laminar Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package linalg

import (
	"github.com/laminar-la/laminar/internal/backend/host"
	"github.com/laminar-la/laminar/internal/linalg"
	"github.com/laminar-la/laminar/matrix"
)

// Backend defines the interface a compute engine must implement to serve
// operands tagged with its device.
//
// Implementations:
//   - backend/host: sequential pure Go, optional worker fan-out
//   - backend/webgpu: cross-platform GPU compute via WebGPU
//
// Every operation mutates its output operand in place and is synchronous:
// when a call returns, results are visible in the container's buffer.
// Dimension and device preconditions are validated by this package before
// dispatch; implementations may assume conformant operands.
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

	// Metadata.
	Name() string          // Backend name (e.g. "host", "webgpu").
	Device() matrix.Device // Device the backend serves.
}

// Compile-time check that the internal contract satisfies the public one.
var _ Backend = linalg.Backend(nil)

// Register makes a backend available to operands tagged with its device.
// Registering a second backend for the same device replaces the first.
func Register(b Backend) {
	linalg.Register(b)
}

// Backends describes the registered backends, ordered by device.
//
// Example:
//
//	for _, b := range linalg.Backends() {
//	    fmt.Println(b) // "host (Host)", "webgpu (WebGPU)", ...
//	}
func Backends() []string {
	return linalg.Backends()
}

// The host backend has no construction-time failure mode, so it is
// registered on import and host-tagged operands always dispatch.
func init() {
	linalg.Register(host.New())
}
