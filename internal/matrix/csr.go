package matrix

import "fmt"

// CSR is a sparse matrix in compressed sparse row format.
//
// Row r owns the entries in [RowPtr()[r], RowPtr()[r+1]); each entry is a
// (ColIdx()[i], value[i]) pair. Entries within a row may appear in any
// order. Index arrays always live on the host even for device-tagged
// matrices; only the value buffer belongs to Device().
type CSR struct {
	data   []byte // nonzero values
	rowPtr []int32
	colIdx []int32
	rows   int
	cols   int
	dtype  DataType
	device Device
}

// NewCSRFrom builds a CSR matrix from prebuilt index arrays and values.
// rowPtr must have rows+1 entries, start at 0, be non-decreasing, and end
// at len(vals); colIdx and vals must have equal length and every column
// index must lie in [0, cols).
func NewCSRFrom[T Float](rows, cols int, rowPtr, colIdx []int32, vals []T, device Device) (*CSR, error) {
	if rows < 0 || cols < 0 {
		return nil, fmt.Errorf("invalid csr extents %dx%d", rows, cols)
	}
	if len(rowPtr) != rows+1 {
		return nil, fmt.Errorf("csr row pointer length %d, want %d", len(rowPtr), rows+1)
	}
	if rowPtr[0] != 0 {
		return nil, fmt.Errorf("csr row pointer must start at 0, got %d", rowPtr[0])
	}
	for r := 0; r < rows; r++ {
		if rowPtr[r+1] < rowPtr[r] {
			return nil, fmt.Errorf("csr row pointer decreases at row %d", r)
		}
	}
	if int(rowPtr[rows]) != len(colIdx) || len(colIdx) != len(vals) {
		return nil, fmt.Errorf("csr entry count mismatch: rowPtr ends at %d, %d columns, %d values",
			rowPtr[rows], len(colIdx), len(vals))
	}
	// Kernels index vectors by these without further checks.
	for i, c := range colIdx {
		if c < 0 || int(c) >= cols {
			return nil, fmt.Errorf("csr column index %d at entry %d outside [0, %d)", c, i, cols)
		}
	}
	m := &CSR{
		data:   make([]byte, len(vals)*TypeOf[T]().Size()),
		rowPtr: append([]int32(nil), rowPtr...),
		colIdx: append([]int32(nil), colIdx...),
		rows:   rows,
		cols:   cols,
		dtype:  TypeOf[T](),
		device: device,
	}
	copy(slice[T](m.data, m.dtype), vals)
	return m, nil
}

// Rows returns the number of rows.
func (m *CSR) Rows() int { return m.rows }

// Cols returns the number of columns.
func (m *CSR) Cols() int { return m.cols }

// NNZ returns the number of stored entries.
func (m *CSR) NNZ() int { return len(m.colIdx) }

// RowPtr returns the row pointer array (rows+1 entries).
func (m *CSR) RowPtr() []int32 { return m.rowPtr }

// ColIdx returns the column index array (one entry per nonzero).
func (m *CSR) ColIdx() []int32 { return m.colIdx }

// DType returns the element type.
func (m *CSR) DType() DataType { return m.dtype }

// Device returns the memory space the value buffer lives in.
func (m *CSR) Device() Device { return m.device }

// Data returns the raw value buffer.
// WARNING: direct access to underlying memory. Use with caution.
func (m *CSR) Data() []byte { return m.data }

// AsFloat32 interprets the value buffer as []float32.
// Panics if the dtype is not Float32.
func (m *CSR) AsFloat32() []float32 { return slice[float32](m.data, m.dtype) }

// AsFloat64 interprets the value buffer as []float64.
// Panics if the dtype is not Float64.
func (m *CSR) AsFloat64() []float64 { return slice[float64](m.data, m.dtype) }
