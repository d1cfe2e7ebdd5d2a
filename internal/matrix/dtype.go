// Package matrix provides the operand containers shared by all laminar backends.
package matrix

import (
	"fmt"
	"unsafe"

	"golang.org/x/exp/constraints"
)

// Float is the scalar constraint for all numeric kernels.
type Float = constraints.Float

// DataType represents runtime element type information for containers.
type DataType int

// Supported element types.
const (
	Float32 DataType = iota
	Float64
)

// Size returns the byte size of one element.
func (dt DataType) Size() int {
	switch dt {
	case Float32:
		return 4
	case Float64:
		return 8
	default:
		panic("unknown data type")
	}
}

// String returns a human-readable name for the data type.
func (dt DataType) String() string {
	switch dt {
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	default:
		return "unknown"
	}
}

// TypeOf returns the runtime DataType for a scalar type T.
func TypeOf[T Float]() DataType {
	switch any(T(0)).(type) {
	case float32:
		return Float32
	case float64:
		return Float64
	default:
		panic("unsupported scalar type")
	}
}

// slice reinterprets raw bytes as []T after checking the runtime type tag.
func slice[T Float](data []byte, dtype DataType) []T {
	if TypeOf[T]() != dtype {
		panic(fmt.Sprintf("container dtype is %s, not %s", dtype, TypeOf[T]()))
	}
	if len(data) == 0 {
		return nil
	}
	//nolint:gosec // unsafe.Slice for zero-copy access, length derived from the buffer itself
	return unsafe.Slice((*T)(unsafe.Pointer(&data[0])), len(data)/dtype.Size())
}
