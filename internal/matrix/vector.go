package matrix

import "fmt"

// Vector is a one-dimensional contiguous container.
type Vector struct {
	data   []byte
	n      int
	dtype  DataType
	device Device
}

// NewVector allocates a zeroed vector of n elements.
func NewVector(n int, dtype DataType, device Device) (*Vector, error) {
	if n < 0 {
		return nil, fmt.Errorf("invalid vector length %d", n)
	}
	return &Vector{
		data:   make([]byte, n*dtype.Size()),
		n:      n,
		dtype:  dtype,
		device: device,
	}, nil
}

// NewVectorFrom builds a vector holding a copy of elems.
func NewVectorFrom[T Float](elems []T, device Device) *Vector {
	v, _ := NewVector(len(elems), TypeOf[T](), device)
	copy(slice[T](v.data, v.dtype), elems)
	return v
}

// Len returns the number of elements.
func (v *Vector) Len() int { return v.n }

// DType returns the element type.
func (v *Vector) DType() DataType { return v.dtype }

// Device returns the memory space the buffer lives in.
func (v *Vector) Device() Device { return v.device }

// Data returns the raw backing buffer.
// WARNING: direct access to underlying memory. Use with caution.
func (v *Vector) Data() []byte { return v.data }

// AsFloat32 interprets the buffer as []float32.
// Panics if the dtype is not Float32.
func (v *Vector) AsFloat32() []float32 { return slice[float32](v.data, v.dtype) }

// AsFloat64 interprets the buffer as []float64.
// Panics if the dtype is not Float64.
func (v *Vector) AsFloat64() []float64 { return slice[float64](v.data, v.dtype) }

// Clone returns a deep copy.
func (v *Vector) Clone() *Vector {
	out, _ := NewVector(v.n, v.dtype, v.device)
	copy(out.data, v.data)
	return out
}
