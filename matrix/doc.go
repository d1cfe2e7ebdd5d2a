// Copyright 2025 The Laminar Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package matrix provides the operand containers for laminar solvers.
//
// # Overview
//
// Three containers cover every operation in the library:
//   - Dense: strided dense matrix with zero-copy transposed views
//   - Vector: contiguous one-dimensional container
//   - CSR: sparse matrix in compressed sparse row form
//
// Containers carry their element type (Float32 or Float64) and the device
// their buffer is tagged with. Operations in the linalg package dispatch
// on the device tag, so the same call runs on the host backend or on a
// GPU depending only on where the operands were allocated.
//
// # Basic Usage
//
//	import (
//	    "github.com/laminar-la/laminar/linalg"
//	    "github.com/laminar-la/laminar/matrix"
//	)
//
//	func main() {
//	    a, _ := matrix.NewDenseFrom(3, 3, []float64{
//	        2, 1, 1,
//	        0, 3, 1,
//	        0, 0, 4,
//	    }, matrix.Host)
//	    v := matrix.NewVectorFrom([]float64{4, 4, 4}, matrix.Host)
//
//	    x, err := linalg.SolveVec(a, v, linalg.Upper)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Println(x.AsFloat64()) // [1 1 1]
//	}
//
// # Transposed Views
//
// Dense.T returns a transposed view over the same buffer by swapping
// extents and strides. Solving against a.T() solves the transposed
// system without copying the matrix, and writes through a view are
// visible in the original.
//
// # Data Types
//
// Containers hold float32 or float64 elements. The generic constructors
// and accessors (NewDenseFrom, NewVectorFrom, NewCSRFrom, At, Set) infer
// the runtime DataType from the Go scalar type. Mixing element types
// across the operands of one operation is a programming error and
// panics; mixing devices is a runtime condition and returns an error.
package matrix
