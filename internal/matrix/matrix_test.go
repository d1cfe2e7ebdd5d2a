package matrix

import (
	"testing"
)

func TestDenseRowMajorLayout(t *testing.T) {
	d, err := NewDenseFrom(2, 3, []float64{
		1, 2, 3,
		4, 5, 6,
	}, Host)
	if err != nil {
		t.Fatalf("NewDenseFrom: %v", err)
	}

	if d.Rows() != 2 || d.Cols() != 3 {
		t.Errorf("extents = %dx%d, want 2x3", d.Rows(), d.Cols())
	}
	if d.RowStride() != 3 || d.ColStride() != 1 {
		t.Errorf("strides = (%d, %d), want (3, 1)", d.RowStride(), d.ColStride())
	}
	if got := At[float64](d, 1, 2); got != 6 {
		t.Errorf("At(1,2) = %v, want 6", got)
	}
}

func TestDenseFromLengthMismatch(t *testing.T) {
	if _, err := NewDenseFrom(2, 2, []float32{1, 2, 3}, Host); err == nil {
		t.Error("expected error for 3 elements in a 2x2 matrix")
	}
}

func TestDenseAsFloat32ZeroCopy(t *testing.T) {
	d, _ := NewDense(2, 2, Float32, Host)
	data := d.AsFloat32()

	if len(data) != 4 {
		t.Errorf("AsFloat32 length = %d, want 4", len(data))
	}

	// Modify and verify zero-copy
	data[0] = 42
	if d.AsFloat32()[0] != 42 {
		t.Error("AsFloat32 should return zero-copy slice")
	}
}

func TestDenseAccessorPanicsOnWrongType(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("AsFloat64 on a Float32 matrix should panic")
		}
	}()
	d, _ := NewDense(1, 1, Float32, Host)
	d.AsFloat64()
}

func TestDenseTransposedView(t *testing.T) {
	d, _ := NewDenseFrom(2, 3, []float32{
		1, 2, 3,
		4, 5, 6,
	}, Host)
	tr := d.T()

	if tr.Rows() != 3 || tr.Cols() != 2 {
		t.Errorf("transposed extents = %dx%d, want 3x2", tr.Rows(), tr.Cols())
	}
	if got := At[float32](tr, 2, 0); got != 3 {
		t.Errorf("T At(2,0) = %v, want 3", got)
	}

	// Writes through the view land in the original storage.
	Set[float32](tr, 0, 1, 40)
	if got := At[float32](d, 1, 0); got != 40 {
		t.Errorf("original At(1,0) after view write = %v, want 40", got)
	}
}

func TestDenseCloneMaterializesView(t *testing.T) {
	d, _ := NewDenseFrom(2, 3, []float64{
		1, 2, 3,
		4, 5, 6,
	}, Host)
	c := d.T().Clone()

	if c.RowStride() != 2 || c.ColStride() != 1 {
		t.Errorf("clone strides = (%d, %d), want contiguous (2, 1)", c.RowStride(), c.ColStride())
	}
	want := []float64{1, 4, 2, 5, 3, 6}
	got := c.AsFloat64()
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("clone[%d] = %v, want %v", i, got[i], want[i])
		}
	}

	// Deep copy: the clone does not alias the source.
	got[0] = -1
	if At[float64](d, 0, 0) == -1 {
		t.Error("clone should not share storage with the source")
	}
}

func TestVectorBasics(t *testing.T) {
	v := NewVectorFrom([]float32{1, 2, 3}, Host)

	if v.Len() != 3 {
		t.Errorf("Len = %d, want 3", v.Len())
	}
	if v.DType() != Float32 {
		t.Errorf("DType = %s, want float32", v.DType())
	}

	c := v.Clone()
	c.AsFloat32()[0] = 9
	if v.AsFloat32()[0] != 1 {
		t.Error("Clone should not share storage")
	}
}

func TestCSRConstruction(t *testing.T) {
	// [ 2 0 0 ]
	// [ 0 3 1 ]
	m, err := NewCSRFrom(2, 3,
		[]int32{0, 1, 3},
		[]int32{0, 1, 2},
		[]float64{2, 3, 1}, Host)
	if err != nil {
		t.Fatalf("NewCSRFrom: %v", err)
	}
	if m.NNZ() != 3 {
		t.Errorf("NNZ = %d, want 3", m.NNZ())
	}
	if m.Rows() != 2 || m.Cols() != 3 {
		t.Errorf("extents = %dx%d, want 2x3", m.Rows(), m.Cols())
	}
}

func TestCSRValidation(t *testing.T) {
	tests := []struct {
		name   string
		rows   int
		rowPtr []int32
		colIdx []int32
		vals   []float32
	}{
		{"short row pointer", 2, []int32{0, 1}, []int32{0}, []float32{1}},
		{"nonzero origin", 2, []int32{1, 1, 2}, []int32{0}, []float32{1}},
		{"decreasing row pointer", 2, []int32{0, 2, 1}, []int32{0, 1}, []float32{1, 2}},
		{"entry count mismatch", 2, []int32{0, 1, 2}, []int32{0}, []float32{1}},
		{"column index beyond cols", 2, []int32{0, 1, 2}, []int32{0, 5}, []float32{1, 2}},
		{"negative column index", 2, []int32{0, 1, 2}, []int32{0, -1}, []float32{1, 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewCSRFrom(tt.rows, 3, tt.rowPtr, tt.colIdx, tt.vals, Host); err == nil {
				t.Error("expected construction error")
			}
		})
	}
}

func TestDeviceString(t *testing.T) {
	if Host.String() != "Host" || WebGPU.String() != "WebGPU" {
		t.Errorf("Device names wrong: %s, %s", Host, WebGPU)
	}
	if Device(99).String() != "Unknown" {
		t.Errorf("out-of-range device = %s, want Unknown", Device(99))
	}
}
