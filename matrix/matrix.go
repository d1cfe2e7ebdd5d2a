// Copyright 2025 The Laminar Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package matrix

import (
	"github.com/laminar-la/laminar/internal/matrix"
)

// Type aliases for public API

// Float is the scalar constraint for container constructors and element
// accessors. Supported types: float32, float64.
type Float = matrix.Float

// DataType represents the element type of a container.
type DataType = matrix.DataType

// Element type constants.
const (
	Float32 DataType = matrix.Float32
	Float64 DataType = matrix.Float64
)

// Device represents the memory space a container's buffer is tagged with.
type Device = matrix.Device

// Device constants. Host and WebGPU have backends in this repository;
// the remaining tags exist so dispatch rejects them cleanly.
const (
	Host   Device = matrix.Host
	CUDA   Device = matrix.CUDA
	Vulkan Device = matrix.Vulkan
	Metal  Device = matrix.Metal
	WebGPU Device = matrix.WebGPU
)

// Dense is a two-dimensional strided matrix over a flat buffer.
//
// Element (r, c) lives at buffer index r*RowStride() + c*ColStride().
// A freshly constructed Dense is contiguous row-major; T returns a
// zero-copy transposed view by swapping extents and strides.
//
// Example:
//
//	a, err := matrix.NewDenseFrom(2, 2, []float64{4, 3, 6, 3}, matrix.Host)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	at := a.T() // transposed view, shares a's buffer
type Dense = matrix.Dense

// Vector is a one-dimensional contiguous container.
type Vector = matrix.Vector

// CSR is a sparse matrix in compressed sparse row format.
//
// Row r owns the entries in [RowPtr()[r], RowPtr()[r+1]); each entry is a
// (ColIdx()[i], value[i]) pair. Entries within a row may appear in any
// order. Index arrays always live on the host even for device-tagged
// matrices; only the value buffer belongs to Device().
type CSR = matrix.CSR

// Creation functions

// NewDense allocates a zeroed rows x cols matrix in row-major order.
func NewDense(rows, cols int, dtype DataType, device Device) (*Dense, error) {
	return matrix.NewDense(rows, cols, dtype, device)
}

// NewDenseFrom builds a row-major matrix from the given elements.
// len(elems) must equal rows*cols.
//
// Example:
//
//	a, err := matrix.NewDenseFrom(2, 3, []float32{
//	    1, 2, 3,
//	    4, 5, 6,
//	}, matrix.Host)
func NewDenseFrom[T Float](rows, cols int, elems []T, device Device) (*Dense, error) {
	return matrix.NewDenseFrom(rows, cols, elems, device)
}

// NewVector allocates a zeroed vector of n elements.
func NewVector(n int, dtype DataType, device Device) (*Vector, error) {
	return matrix.NewVector(n, dtype, device)
}

// NewVectorFrom builds a vector holding a copy of elems.
func NewVectorFrom[T Float](elems []T, device Device) *Vector {
	return matrix.NewVectorFrom(elems, device)
}

// NewCSRFrom builds a CSR matrix from prebuilt index arrays and values.
// rowPtr must have rows+1 entries, start at 0, be non-decreasing, and end
// at len(vals); colIdx and vals must have equal length and every column
// index must lie in [0, cols).
//
// Example:
//
//	// [[2, 0], [1, 3]]
//	a, err := matrix.NewCSRFrom(2, 2,
//	    []int32{0, 1, 3},
//	    []int32{0, 0, 1},
//	    []float64{2, 1, 3},
//	    matrix.Host)
func NewCSRFrom[T Float](rows, cols int, rowPtr, colIdx []int32, vals []T, device Device) (*CSR, error) {
	return matrix.NewCSRFrom(rows, cols, rowPtr, colIdx, vals, device)
}

// Element access

// At returns element (r, c) of a dense matrix. Convenience for
// construction and tests; kernels index the typed slices directly.
func At[T Float](d *Dense, r, c int) T {
	return matrix.At[T](d, r, c)
}

// Set stores v at element (r, c) of a dense matrix.
func Set[T Float](d *Dense, r, c int, v T) {
	matrix.Set(d, r, c, v)
}

// TypeOf returns the runtime DataType for a scalar type T.
func TypeOf[T Float]() DataType {
	return matrix.TypeOf[T]()
}
