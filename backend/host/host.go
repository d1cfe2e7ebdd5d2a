// Copyright 2025 The Laminar Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package host provides the sequential host backend.
//
// The host backend runs every kernel in pure Go on host memory and is
// registered automatically when the linalg package is imported, so most
// programs never construct one. Build one explicitly to enable worker
// fan-out for the row-independent sweeps:
//
//	cpu := host.New()
//	cpu.SetParallel(host.DefaultConfig())
//	linalg.Register(cpu)
//
// Fan-out never changes results: only sweeps whose rows or columns are
// independent of each other are chunked across workers, and every index
// runs exactly once, so the floating-point accumulation order is the
// same with and without workers.
package host

import (
	internalhost "github.com/laminar-la/laminar/internal/backend/host"
	"github.com/laminar-la/laminar/internal/parallel"
	"github.com/laminar-la/laminar/linalg"
)

// Backend runs every kernel on host memory. Execution is sequential and
// deterministic by default.
type Backend = internalhost.Backend

// Compile-time check that Backend implements linalg.Backend.
var _ linalg.Backend = (*Backend)(nil)

// Config controls worker fan-out for the row-independent sweeps: row
// statistics, sparse mat-vec, and the right-hand-side columns of a dense
// matrix solve. Triangular recurrences over a single vector always stay
// sequential.
type Config = parallel.Config

// New creates a sequential host backend.
func New() *Backend {
	return internalhost.New()
}

// DefaultConfig returns a fan-out configuration based on CPU count.
func DefaultConfig() Config {
	return parallel.DefaultConfig()
}
