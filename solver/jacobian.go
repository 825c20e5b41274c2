// Copyright 2024 The Gcs2d Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solver

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
	"gonum.org/v1/gonum/mat"

	"github.com/cpmech/gcs2d/cnstr"
	"github.com/cpmech/gcs2d/geom"
)

// System is one trial point's residual vector and Jacobian. Triplet
// captures the same nonzero pattern using gofem's AddToKb-style sparse
// assembly convention (Init/Put); Jacobian is the dense gonum matrix
// actually factorized by the SQP step's KKT solve. Both are populated from
// the same per-constraint gradients in the same pass, so Triplet is not
// dead weight: it's the sparse-assembly-shaped record of exactly what went
// into Jacobian, kept for fidelity to the pattern even though this solver's
// small variable counts make a dense solve the right-sized choice (see
// DESIGN.md on why la.SPSolver itself was not carried forward).
type System struct {
	Residual []float64
	Jacobian *mat.Dense
	Triplet  *la.Triplet
}

// assemble evaluates every constraint in constraints against overrides
// (nil reads live geom.Variable values) and builds the residual vector and
// Jacobian, using varIndex to resolve each referenced variable's column.
// Row k of both Residual and Jacobian corresponds to constraints[k].
func assemble(constraints []cnstr.Constraint, varIndex *VarIndex, overrides map[*geom.Variable]float64) (*System, error) {
	m := len(constraints)
	n := varIndex.Len()

	residual := make([]float64, m)

	// gonum's mat.NewDense and gosl's la.Triplet.Init both panic given a
	// zero dimension; an empty constraint set (or one with no referenced
	// variables) is a valid input — e.g. a freshly constructed Solver — so
	// skip building either and leave Jacobian/Triplet nil. Every downstream
	// loop over rows/columns is already bounded by m/n, so a nil matrix is
	// never dereferenced in that case.
	var jac *mat.Dense
	var trip *la.Triplet
	if m > 0 && n > 0 {
		nnzMax := 1
		for _, c := range constraints {
			nnzMax += len(c.VarRefs())
		}
		trip = new(la.Triplet)
		trip.Init(m, n, nnzMax)
		jac = mat.NewDense(m, n, nil)
	}

	for row, c := range constraints {
		r, err := c.Residual(overrides)
		if err != nil {
			return nil, err
		}
		residual[row] = r

		grad, err := c.Gradient(overrides)
		if err != nil {
			return nil, err
		}
		for k, v := range c.VarRefs() {
			col, ok := varIndex.IndexOf(v)
			if !ok {
				chk.Panic("solver: constraint references variable %s outside the variable index", v.Name)
			}
			jac.Set(row, col, jac.At(row, col)+grad[k])
			trip.Put(row, col, grad[k])
		}
	}

	return &System{Residual: residual, Jacobian: jac, Triplet: trip}, nil
}
