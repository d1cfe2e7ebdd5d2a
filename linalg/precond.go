// Copyright 2025 The Laminar Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package linalg

import (
	"github.com/laminar-la/laminar/internal/linalg"
	"github.com/laminar-la/laminar/matrix"
)

// Jacobi is the diagonal preconditioner: application divides each vector
// element by the matching diagonal entry of the system matrix.
//
// Construction snapshots the diagonal, so a Jacobi value that exists can
// always be applied. Apply is a plain element loop over host-visible
// memory with no backend dispatch.
//
// Example:
//
//	precond, err := linalg.NewJacobiCSR(a)
//	if err != nil {
//	    return err // zero or missing diagonal
//	}
//	if err := precond.Apply(residual); err != nil {
//	    return err
//	}
type Jacobi = linalg.Jacobi

// NewJacobi builds the preconditioner from the diagonal of a dense
// matrix. A row beyond the last column fails with ErrMissingDiagonal; a
// stored zero fails with ErrZeroDiagonal.
func NewJacobi(a *matrix.Dense) (*Jacobi, error) {
	return linalg.NewJacobi(a)
}

// NewJacobiCSR builds the preconditioner from the diagonal of a sparse
// matrix, extracted through the row-statistics engine of its backend.
// A structurally absent diagonal entry and a stored zero both fail with
// ErrZeroDiagonal.
func NewJacobiCSR(a *matrix.CSR) (*Jacobi, error) {
	return linalg.NewJacobiCSR(a)
}

// RowScaling is the row-norm companion of Jacobi: application divides
// each vector element by the selected norm of the matching matrix row.
type RowScaling = linalg.RowScaling

// NewRowScaling builds per-row scale factors from the selected norm.
// mode must be one of the norm statistics; diagonal extraction is the
// job of NewJacobiCSR. A zero row norm fails with ErrZeroDiagonal.
func NewRowScaling(a *matrix.CSR, mode RowStat) (*RowScaling, error) {
	return linalg.NewRowScaling(a, mode)
}
