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

func TestDenseSolveVec(t *testing.T) {
	be := New()

	t.Run("upper", func(t *testing.T) {
		a := mustDense(t, 3, 3, []float64{
			2, 1, 1,
			0, 3, 1,
			0, 0, 4,
		})
		v := vec(4, 4, 4)
		if err := be.DenseSolveVec(a, v, linalg.Upper); err != nil {
			t.Fatalf("DenseSolveVec: %v", err)
		}
		wantVec(t, v, []float64{1, 1, 1})
	})

	t.Run("lower", func(t *testing.T) {
		a := mustDense(t, 3, 3, []float64{
			2, 0, 0,
			1, 3, 0,
			1, 1, 4,
		})
		v := vec(2, 4, 6)
		if err := be.DenseSolveVec(a, v, linalg.Lower); err != nil {
			t.Fatalf("DenseSolveVec: %v", err)
		}
		wantVec(t, v, []float64{1, 1, 1})
	})

	t.Run("unit lower ignores stored diagonal", func(t *testing.T) {
		a := mustDense(t, 2, 2, []float64{
			5, 0,
			2, 7,
		})
		v := vec(1, 1)
		if err := be.DenseSolveVec(a, v, linalg.UnitLower); err != nil {
			t.Fatalf("DenseSolveVec: %v", err)
		}
		wantVec(t, v, []float64{1, -1})
	})

	t.Run("unit upper ignores stored diagonal", func(t *testing.T) {
		a := mustDense(t, 2, 2, []float64{
			9, 2,
			0, 9,
		})
		v := vec(3, 1)
		if err := be.DenseSolveVec(a, v, linalg.UnitUpper); err != nil {
			t.Fatalf("DenseSolveVec: %v", err)
		}
		wantVec(t, v, []float64{1, 1})
	})
}

func TestDenseSolveZeroDiagonal(t *testing.T) {
	be := New()
	a := mustDense(t, 2, 2, []float64{
		2, 1,
		0, 0,
	})
	v := vec(5, 7)
	err := be.DenseSolveVec(a, v, linalg.Upper)
	if !errors.Is(err, linalg.ErrZeroDiagonal) {
		t.Fatalf("err = %v, want ErrZeroDiagonal", err)
	}
	// The scan runs before any substitution, so a failed call must not
	// touch the right-hand side.
	wantVec(t, v, []float64{5, 7})
}

func TestDenseSolveMatrixRHS(t *testing.T) {
	be := New()
	a := mustDense(t, 3, 3, []float64{
		2, 1, 1,
		0, 3, 1,
		0, 0, 4,
	})

	t.Run("two columns", func(t *testing.T) {
		b := mustDense(t, 3, 2, []float64{
			4, 5,
			4, 5,
			4, 8,
		})
		if err := be.DenseSolve(a, b, linalg.Upper); err != nil {
			t.Fatalf("DenseSolve: %v", err)
		}
		want := []float64{
			1, 1,
			1, 1,
			1, 2,
		}
		got := b.AsFloat64()
		for i := range want {
			if math.Abs(got[i]-want[i]) > epsilon {
				t.Errorf("x[%d] = %v, want %v", i, got[i], want[i])
			}
		}
	})

	t.Run("transposed view rhs", func(t *testing.T) {
		bt := mustDense(t, 2, 3, []float64{
			4, 4, 4,
			5, 5, 8,
		})
		b := bt.T()
		if err := be.DenseSolve(a, b, linalg.Upper); err != nil {
			t.Fatalf("DenseSolve: %v", err)
		}
		want := [3][2]float64{{1, 1}, {1, 1}, {1, 2}}
		for r := 0; r < 3; r++ {
			for c := 0; c < 2; c++ {
				if got := matrix.At[float64](b, r, c); math.Abs(got-want[r][c]) > epsilon {
					t.Errorf("x[%d][%d] = %v, want %v", r, c, got, want[r][c])
				}
			}
		}
	})
}

func TestDenseSolveTransposedSystem(t *testing.T) {
	be := New()
	// Solving with the transposed view of a lower matrix is the same
	// problem as the upper solve above.
	a := mustDense(t, 3, 3, []float64{
		2, 0, 0,
		1, 3, 0,
		1, 1, 4,
	})
	v := vec(4, 4, 4)
	if err := be.DenseSolveVec(a.T(), v, linalg.Upper); err != nil {
		t.Fatalf("DenseSolveVec: %v", err)
	}
	wantVec(t, v, []float64{1, 1, 1})
}

func TestDenseSolveFloat32(t *testing.T) {
	const epsilon32 = 1e-5
	be := New()
	a, err := matrix.NewDenseFrom(3, 3, []float32{
		2, 1, 1,
		0, 3, 1,
		0, 0, 4,
	}, matrix.Host)
	if err != nil {
		t.Fatalf("NewDenseFrom: %v", err)
	}
	v := matrix.NewVectorFrom([]float32{4, 4, 4}, matrix.Host)
	if err := be.DenseSolveVec(a, v, linalg.Upper); err != nil {
		t.Fatalf("DenseSolveVec: %v", err)
	}
	for i, want := range []float32{1, 1, 1} {
		if got := v.AsFloat32()[i]; math.Abs(float64(got-want)) > epsilon32 {
			t.Errorf("x[%d] = %v, want %v", i, got, want)
		}
	}
}

func TestDenseSolveParallelMatchesSequential(t *testing.T) {
	const n, nrhs = 16, 7
	a, err := matrix.NewDense(n, n, matrix.Float64, matrix.Host)
	if err != nil {
		t.Fatalf("NewDense: %v", err)
	}
	for r := 0; r < n; r++ {
		matrix.Set(a, r, r, float64(r+2))
		for c := r + 1; c < n; c++ {
			matrix.Set(a, r, c, 1/float64(1+r+c))
		}
	}
	b, err := matrix.NewDense(n, nrhs, matrix.Float64, matrix.Host)
	if err != nil {
		t.Fatalf("NewDense: %v", err)
	}
	for r := 0; r < n; r++ {
		for c := 0; c < nrhs; c++ {
			matrix.Set(b, r, c, float64(r*nrhs+c)/3)
		}
	}

	seq := b.Clone()
	if err := New().DenseSolve(a, seq, linalg.Upper); err != nil {
		t.Fatalf("sequential DenseSolve: %v", err)
	}

	par := b.Clone()
	pb := New()
	pb.SetParallel(parallel.Config{Enabled: true, NumWorkers: 4, MinChunkSize: 1})
	if err := pb.DenseSolve(a, par, linalg.Upper); err != nil {
		t.Fatalf("parallel DenseSolve: %v", err)
	}

	// Fan-out is per right-hand-side column; each column runs the same
	// sequential recurrence, so the bytes must match exactly.
	if !bytes.Equal(seq.Data(), par.Data()) {
		t.Error("parallel solve differs from sequential solve")
	}
}
