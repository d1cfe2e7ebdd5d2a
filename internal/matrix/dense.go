package matrix

import "fmt"

// Dense is a two-dimensional strided matrix over a flat buffer.
//
// Element (r, c) lives at buffer index r*RowStride() + c*ColStride().
// A freshly constructed Dense is contiguous row-major; T returns a
// zero-copy transposed view by swapping extents and strides, so any
// routine written against the strides handles both orientations.
type Dense struct {
	data    []byte
	rows    int
	cols    int
	rstride int // element stride between consecutive rows
	cstride int // element stride between consecutive columns
	dtype   DataType
	device  Device
}

// NewDense allocates a zeroed rows x cols matrix in row-major order.
func NewDense(rows, cols int, dtype DataType, device Device) (*Dense, error) {
	if rows < 0 || cols < 0 {
		return nil, fmt.Errorf("invalid dense extents %dx%d", rows, cols)
	}
	return &Dense{
		data:    make([]byte, rows*cols*dtype.Size()),
		rows:    rows,
		cols:    cols,
		rstride: cols,
		cstride: 1,
		dtype:   dtype,
		device:  device,
	}, nil
}

// NewDenseFrom builds a row-major matrix from the given elements.
// len(elems) must equal rows*cols.
func NewDenseFrom[T Float](rows, cols int, elems []T, device Device) (*Dense, error) {
	if len(elems) != rows*cols {
		return nil, fmt.Errorf("dense data length %d does not match extents %dx%d", len(elems), rows, cols)
	}
	d, err := NewDense(rows, cols, TypeOf[T](), device)
	if err != nil {
		return nil, err
	}
	copy(slice[T](d.data, d.dtype), elems)
	return d, nil
}

// Rows returns the number of rows.
func (d *Dense) Rows() int { return d.rows }

// Cols returns the number of columns.
func (d *Dense) Cols() int { return d.cols }

// RowStride returns the element stride between consecutive rows.
func (d *Dense) RowStride() int { return d.rstride }

// ColStride returns the element stride between consecutive columns.
func (d *Dense) ColStride() int { return d.cstride }

// DType returns the element type.
func (d *Dense) DType() DataType { return d.dtype }

// Device returns the memory space the buffer lives in.
func (d *Dense) Device() Device { return d.device }

// NumElements returns rows*cols.
func (d *Dense) NumElements() int { return d.rows * d.cols }

// Data returns the raw backing buffer.
// WARNING: direct access to underlying memory. Use with caution.
func (d *Dense) Data() []byte { return d.data }

// AsFloat32 interprets the buffer as []float32.
// Panics if the dtype is not Float32.
func (d *Dense) AsFloat32() []float32 { return slice[float32](d.data, d.dtype) }

// AsFloat64 interprets the buffer as []float64.
// Panics if the dtype is not Float64.
func (d *Dense) AsFloat64() []float64 { return slice[float64](d.data, d.dtype) }

// T returns a transposed view sharing the receiver's storage.
// Writes through the view are visible in the original.
func (d *Dense) T() *Dense {
	return &Dense{
		data:    d.data,
		rows:    d.cols,
		cols:    d.rows,
		rstride: d.cstride,
		cstride: d.rstride,
		dtype:   d.dtype,
		device:  d.device,
	}
}

// Clone returns a contiguous row-major deep copy. Cloning a transposed
// view materializes it.
func (d *Dense) Clone() *Dense {
	out, _ := NewDense(d.rows, d.cols, d.dtype, d.device)
	if d.rstride == d.cols && d.cstride == 1 {
		copy(out.data, d.data)
		return out
	}
	switch d.dtype {
	case Float32:
		gather(out.AsFloat32(), d.AsFloat32(), d.rows, d.cols, d.rstride, d.cstride)
	case Float64:
		gather(out.AsFloat64(), d.AsFloat64(), d.rows, d.cols, d.rstride, d.cstride)
	}
	return out
}

// At returns element (r, c). Convenience for construction and tests;
// kernels index the typed slices directly.
func At[T Float](d *Dense, r, c int) T {
	return slice[T](d.data, d.dtype)[r*d.rstride+c*d.cstride]
}

// Set stores v at element (r, c).
func Set[T Float](d *Dense, r, c int, v T) {
	slice[T](d.data, d.dtype)[r*d.rstride+c*d.cstride] = v
}

func gather[T Float](dst, src []T, rows, cols, rstride, cstride int) {
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			dst[r*cols+c] = src[r*rstride+c*cstride]
		}
	}
}
