// Copyright 2025 The Laminar Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package linalg provides triangular solvers, LU factorization, row
// statistics, and preconditioners over the matrix containers.
//
// # Overview
//
// Every operation is in-place at the core: solves overwrite the
// right-hand side with the solution, and LUFactorize overwrites the
// system matrix with its packed factors. Allocating variants (Solve,
// SolveVec, SolveCSR, SolveCSRTrans) clone the right-hand side first.
//
// A ShapeTag selects the triangle a solve reads and whether the diagonal
// is implicit:
//   - Lower, Upper: stored diagonal, divided by during substitution
//   - UnitLower, UnitUpper: implicit unit diagonal, never read
//
// Entries outside the tagged triangle are ignored, so a full matrix can
// serve as both factors of its own factorization.
//
// # Basic Usage
//
//	import (
//	    "github.com/laminar-la/laminar/linalg"
//	    "github.com/laminar-la/laminar/matrix"
//	)
//
//	func main() {
//	    a, _ := matrix.NewDenseFrom(2, 2, []float64{4, 3, 6, 3}, matrix.Host)
//	    v := matrix.NewVectorFrom([]float64{10, 12}, matrix.Host)
//
//	    if err := linalg.LUFactorize(a); err != nil {
//	        log.Fatal(err)
//	    }
//	    if err := linalg.LUSubstituteVec(a, v); err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Println(v.AsFloat64()) // solution of the original system
//	}
//
// # Backends
//
// Operations dispatch on the device tag of their operands. Importing
// this package registers the host backend, so host-tagged containers
// work with no further setup. GPU execution is opt-in:
//
//	gpu, err := webgpu.New() // registers the backend when it succeeds
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer gpu.Release()
//
// All operands of one call must share a device; mixing devices returns
// ErrUnsupportedBackend.
//
// # Errors
//
// Structural failures are reported through sentinel errors that wrap
// operation context: match them with errors.Is. A failed in-place
// operation either leaves the output untouched (validation failures,
// detected before substitution starts) or documents what was clobbered
// (LUFactorize on a singular matrix).
package linalg
