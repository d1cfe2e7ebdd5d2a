package host

import (
	"bytes"
	"errors"
	"math"
	"testing"

	"github.com/laminar-la/laminar/internal/linalg"
	"github.com/laminar-la/laminar/internal/matrix"
	"github.com/laminar-la/laminar/internal/parallel"
)

func TestCSRSolve(t *testing.T) {
	be := New()

	t.Run("unit lower", func(t *testing.T) {
		// Rows hold only the strict lower triangle; the unit diagonal
		// is implied and never stored.
		a := mustCSR(t, 3, 3, []int32{0, 0, 1, 3}, []int32{0, 0, 1}, []float64{2, 1, 3})
		v := vec(1, 1, 1)
		if err := be.CSRSolve(a, v, linalg.UnitLower); err != nil {
			t.Fatalf("CSRSolve: %v", err)
		}
		wantVec(t, v, []float64{1, -1, 3})
	})

	t.Run("lower", func(t *testing.T) {
		a := mustCSR(t, 3, 3,
			[]int32{0, 1, 3, 6},
			[]int32{0, 0, 1, 0, 1, 2},
			[]float64{2, 1, 3, 1, 1, 4})
		v := vec(2, 4, 6)
		if err := be.CSRSolve(a, v, linalg.Lower); err != nil {
			t.Fatalf("CSRSolve: %v", err)
		}
		wantVec(t, v, []float64{1, 1, 1})
	})

	t.Run("upper", func(t *testing.T) {
		a := mustCSR(t, 3, 3,
			[]int32{0, 3, 5, 6},
			[]int32{0, 1, 2, 1, 2, 2},
			[]float64{2, 1, 1, 3, 1, 4})
		v := vec(4, 4, 4)
		if err := be.CSRSolve(a, v, linalg.Upper); err != nil {
			t.Fatalf("CSRSolve: %v", err)
		}
		wantVec(t, v, []float64{1, 1, 1})
	})

	t.Run("unit upper ignores stored diagonal", func(t *testing.T) {
		a := mustCSR(t, 2, 2, []int32{0, 2, 3}, []int32{0, 1, 1}, []float64{9, 2, 9})
		v := vec(5, 1)
		if err := be.CSRSolve(a, v, linalg.UnitUpper); err != nil {
			t.Fatalf("CSRSolve: %v", err)
		}
		wantVec(t, v, []float64{3, 1})
	})

	t.Run("entries outside the triangle are ignored", func(t *testing.T) {
		full := func() *matrix.CSR {
			return mustCSR(t, 2, 2,
				[]int32{0, 2, 4},
				[]int32{0, 1, 0, 1},
				[]float64{2, 9, 1, 4})
		}
		v := vec(2, 5)
		if err := be.CSRSolve(full(), v, linalg.Lower); err != nil {
			t.Fatalf("CSRSolve lower: %v", err)
		}
		wantVec(t, v, []float64{1, 1})

		v = vec(11, 4)
		if err := be.CSRSolve(full(), v, linalg.Upper); err != nil {
			t.Fatalf("CSRSolve upper: %v", err)
		}
		wantVec(t, v, []float64{1, 1})
	})

	t.Run("row entries in any order", func(t *testing.T) {
		// Row 1 stores its diagonal before the off-diagonal entry.
		a := mustCSR(t, 2, 2, []int32{0, 1, 3}, []int32{0, 1, 0}, []float64{2, 4, 1})
		v := vec(2, 5)
		if err := be.CSRSolve(a, v, linalg.Lower); err != nil {
			t.Fatalf("CSRSolve: %v", err)
		}
		wantVec(t, v, []float64{1, 1})
	})
}

func TestCSRSolveDiagonalErrors(t *testing.T) {
	be := New()

	t.Run("missing diagonal", func(t *testing.T) {
		a := mustCSR(t, 2, 2, []int32{0, 1, 2}, []int32{0, 0}, []float64{2, 1})
		v := vec(7, 8)
		if err := be.CSRSolve(a, v, linalg.Lower); !errors.Is(err, linalg.ErrMissingDiagonal) {
			t.Fatalf("err = %v, want ErrMissingDiagonal", err)
		}
		wantVec(t, v, []float64{7, 8})
	})

	t.Run("stored zero diagonal", func(t *testing.T) {
		a := mustCSR(t, 2, 2, []int32{0, 1, 3}, []int32{0, 0, 1}, []float64{2, 1, 0})
		v := vec(7, 8)
		if err := be.CSRSolve(a, v, linalg.Lower); !errors.Is(err, linalg.ErrZeroDiagonal) {
			t.Fatalf("err = %v, want ErrZeroDiagonal", err)
		}
		wantVec(t, v, []float64{7, 8})
	})

	t.Run("transposed solve shares the diagonal", func(t *testing.T) {
		a := mustCSR(t, 2, 2, []int32{0, 1, 2}, []int32{0, 0}, []float64{2, 1})
		v := vec(7, 8)
		if err := be.CSRSolveTrans(a, v, linalg.Lower); !errors.Is(err, linalg.ErrMissingDiagonal) {
			t.Fatalf("err = %v, want ErrMissingDiagonal", err)
		}
		wantVec(t, v, []float64{7, 8})
	})

	t.Run("unit tags never inspect the diagonal", func(t *testing.T) {
		a := mustCSR(t, 2, 2, []int32{0, 0, 1}, []int32{0}, []float64{2})
		v := vec(1, 1)
		if err := be.CSRSolve(a, v, linalg.UnitLower); err != nil {
			t.Fatalf("CSRSolve: %v", err)
		}
		wantVec(t, v, []float64{1, -1})
	})
}

func TestCSRSolveTrans(t *testing.T) {
	be := New()
	tests := []struct {
		name     string
		stored   func(t *testing.T) *matrix.CSR
		tag      linalg.ShapeTag
		explicit func(t *testing.T) *matrix.CSR
		flipped  linalg.ShapeTag
		b        []float64
		want     []float64
	}{
		{
			name: "lower",
			stored: func(t *testing.T) *matrix.CSR {
				return mustCSR(t, 3, 3,
					[]int32{0, 1, 3, 6},
					[]int32{0, 0, 1, 0, 1, 2},
					[]float64{2, 1, 3, 1, 1, 4})
			},
			tag: linalg.Lower,
			explicit: func(t *testing.T) *matrix.CSR {
				return mustCSR(t, 3, 3,
					[]int32{0, 3, 5, 6},
					[]int32{0, 1, 2, 1, 2, 2},
					[]float64{2, 1, 1, 3, 1, 4})
			},
			flipped: linalg.Upper,
			b:       []float64{4, 4, 4},
			want:    []float64{1, 1, 1},
		},
		{
			name: "unit lower",
			stored: func(t *testing.T) *matrix.CSR {
				return mustCSR(t, 3, 3, []int32{0, 0, 1, 3}, []int32{0, 0, 1}, []float64{2, 1, 3})
			},
			tag: linalg.UnitLower,
			explicit: func(t *testing.T) *matrix.CSR {
				return mustCSR(t, 3, 3, []int32{0, 2, 3, 3}, []int32{1, 2, 2}, []float64{2, 1, 3})
			},
			flipped: linalg.UnitUpper,
			b:       []float64{1, 1, 1},
			want:    []float64{4, -2, 1},
		},
		{
			name: "upper",
			stored: func(t *testing.T) *matrix.CSR {
				return mustCSR(t, 3, 3,
					[]int32{0, 3, 5, 6},
					[]int32{0, 1, 2, 1, 2, 2},
					[]float64{2, 1, 1, 3, 1, 4})
			},
			tag: linalg.Upper,
			explicit: func(t *testing.T) *matrix.CSR {
				return mustCSR(t, 3, 3,
					[]int32{0, 1, 3, 6},
					[]int32{0, 0, 1, 0, 1, 2},
					[]float64{2, 1, 3, 1, 1, 4})
			},
			flipped: linalg.Lower,
			b:       []float64{2, 4, 6},
			want:    []float64{1, 1, 1},
		},
		{
			name: "unit upper",
			stored: func(t *testing.T) *matrix.CSR {
				return mustCSR(t, 3, 3, []int32{0, 2, 3, 3}, []int32{1, 2, 2}, []float64{2, 1, 3})
			},
			tag: linalg.UnitUpper,
			explicit: func(t *testing.T) *matrix.CSR {
				return mustCSR(t, 3, 3, []int32{0, 0, 1, 3}, []int32{0, 0, 1}, []float64{2, 1, 3})
			},
			flipped: linalg.UnitLower,
			b:       []float64{1, 1, 1},
			want:    []float64{1, -1, 3},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			viaTrans := vec(tt.b...)
			if err := be.CSRSolveTrans(tt.stored(t), viaTrans, tt.tag); err != nil {
				t.Fatalf("CSRSolveTrans: %v", err)
			}
			wantVec(t, viaTrans, tt.want)

			// Solving against the explicitly transposed matrix must
			// land on the same solution.
			direct := vec(tt.b...)
			if err := be.CSRSolve(tt.explicit(t), direct, tt.flipped); err != nil {
				t.Fatalf("CSRSolve: %v", err)
			}
			g, d := viaTrans.AsFloat64(), direct.AsFloat64()
			for i := range g {
				if math.Abs(g[i]-d[i]) > epsilon {
					t.Errorf("x[%d]: trans %v vs explicit %v", i, g[i], d[i])
				}
			}
		})
	}
}

func TestCSRMatVec(t *testing.T) {
	be := New()
	a := mustCSR(t, 2, 3, []int32{0, 2, 3}, []int32{0, 2, 1}, []float64{2, 1, 3})
	x := vec(1, 2, 3)
	y := vec(0, 0)
	if err := be.CSRMatVec(a, x, y); err != nil {
		t.Fatalf("CSRMatVec: %v", err)
	}
	wantVec(t, y, []float64{5, 6})
}

func TestCSRMatVecParallelMatchesSequential(t *testing.T) {
	const n = 300
	rowPtr := make([]int32, n+1)
	var colIdx []int32
	var vals []float64
	for i := 0; i < n; i++ {
		rowPtr[i] = int32(len(colIdx))
		if i > 0 {
			colIdx = append(colIdx, int32(i-1))
			vals = append(vals, -1)
		}
		colIdx = append(colIdx, int32(i))
		vals = append(vals, float64(i%7+2))
		if i < n-1 {
			colIdx = append(colIdx, int32(i+1))
			vals = append(vals, -0.5)
		}
	}
	rowPtr[n] = int32(len(colIdx))
	a, err := matrix.NewCSRFrom(n, n, rowPtr, colIdx, vals, matrix.Host)
	if err != nil {
		t.Fatalf("NewCSRFrom: %v", err)
	}
	xs := make([]float64, n)
	for i := range xs {
		xs[i] = float64(i%11) - 5
	}
	x := matrix.NewVectorFrom(xs, matrix.Host)

	seq := vec(make([]float64, n)...)
	if err := New().CSRMatVec(a, x, seq); err != nil {
		t.Fatalf("sequential CSRMatVec: %v", err)
	}

	par := vec(make([]float64, n)...)
	pb := New()
	pb.SetParallel(parallel.Config{Enabled: true, NumWorkers: 4, MinChunkSize: 1})
	if err := pb.CSRMatVec(a, x, par); err != nil {
		t.Fatalf("parallel CSRMatVec: %v", err)
	}

	// Every row is an independent dot product with a fixed entry order,
	// so fan-out must reproduce the sequential bytes.
	if !bytes.Equal(seq.Data(), par.Data()) {
		t.Error("parallel mat-vec differs from sequential mat-vec")
	}
}
