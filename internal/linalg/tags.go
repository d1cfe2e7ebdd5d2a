// Package linalg implements the solver core: shape tags, backend dispatch,
// triangular solves, LU factorization, row statistics, and preconditioners.
package linalg

// ShapeTag selects the triangle of the system matrix a solve reads and
// whether the diagonal is implicit.
type ShapeTag int

// Solver tags. Unit tags treat the diagonal as all ones and never read a
// stored diagonal entry.
const (
	Lower ShapeTag = iota
	UnitLower
	Upper
	UnitUpper
)

// IsUpper reports whether the tag addresses the upper triangle.
func (t ShapeTag) IsUpper() bool { return t == Upper || t == UnitUpper }

// IsUnit reports whether the diagonal is implicit.
func (t ShapeTag) IsUnit() bool { return t == UnitLower || t == UnitUpper }

// String returns the tag name.
func (t ShapeTag) String() string {
	switch t {
	case Lower:
		return "Lower"
	case UnitLower:
		return "UnitLower"
	case Upper:
		return "Upper"
	case UnitUpper:
		return "UnitUpper"
	default:
		return "Unknown"
	}
}

// RowStat selects the per-row quantity extracted by RowStats.
type RowStat int

// Row statistics modes.
const (
	RowNormInf RowStat = iota
	RowNorm1
	RowNorm2
	RowDiagonal
)

// String returns the mode name.
func (s RowStat) String() string {
	switch s {
	case RowNormInf:
		return "RowNormInf"
	case RowNorm1:
		return "RowNorm1"
	case RowNorm2:
		return "RowNorm2"
	case RowDiagonal:
		return "RowDiagonal"
	default:
		return "Unknown"
	}
}
