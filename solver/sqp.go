// Copyright 2024 The Gcs2d Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solver

import (
	"math"

	"github.com/cpmech/gosl/rnd"
	"gonum.org/v1/gonum/mat"

	"github.com/cpmech/gcs2d/cnstr"
	"github.com/cpmech/gcs2d/geom"
)

// bestEffortRetries is how many jittered restarts Solve attempts once the
// straight run fails to converge and the caller asked for bestEffort.
const bestEffortRetries = 3

// bestEffortJitter bounds the random perturbation (in each coordinate,
// absolute) applied to the starting point before a retry.
const bestEffortJitter = 1e-2

// Solve drives the current configuration toward the nearest point (in
// Euclidean distance) satisfying every live constraint's residual=0, via
// sequential quadratic programming on the Lagrangian of
// minimize 0.5*||x-x0||² subject to g(x)=0. Because the objective is
// exactly quadratic with Hessian I, a single Newton step on the KKT
// stationarity conditions per iteration is the exact SQP step, no
// line-search or trust region is needed for this problem shape.
//
// Trial coordinates are tracked in a local slice and only fed to
// constraints through Residual/Gradient's overrides map — the optimizer
// never mutates the underlying geom.Variable values mid-iteration, per the
// read-only-during-evaluation discipline that keeps this loop safe to run
// against the same geometry graph the rest of the package observes.
// Variables are written back only once Solve returns, and only if it
// converged or the caller opted into bestEffort.
//
// maxIter bounds the number of Newton steps per attempt. bestEffort, when
// true, means two things: first, that a stalled or non-converging run
// should be retried a bounded number of times from a randomly jittered
// starting point (the KKT system can be exactly singular for a pathological
// initial configuration even when a nearby configuration solves cleanly);
// second, that once every attempt is exhausted, Solve commits whichever
// attempt got closest instead of returning a *NonConvergenceError and
// leaving the geometry untouched.
func (s *Solver) Solve(maxIter int, bestEffort bool) (*Result, error) {
	vars := s.varIndex.Variables()
	n := len(vars)
	x0 := make([]float64, n)
	for i, v := range vars {
		x0[i] = v.Value
	}
	constraints := s.allConstraints()

	x, result, err := s.runIterations(x0, x0, constraints, maxIter)
	if err != nil {
		return nil, err
	}

	if !result.Converged && bestEffort {
		bestX, bestResult := x, result
		rnd.Init(0)
		for attempt := 0; attempt < bestEffortRetries && !bestResult.Converged; attempt++ {
			start := make([]float64, n)
			for i := range start {
				start[i] = x0[i] + rnd.Float64(-bestEffortJitter, bestEffortJitter)
			}
			candX, candResult, err := s.runIterations(start, x0, constraints, maxIter)
			if err != nil {
				return nil, err
			}
			if candResult.Converged || candResult.ResidualNorm < bestResult.ResidualNorm {
				bestX, bestResult = candX, candResult
			}
		}
		x, result = bestX, bestResult
	}

	if result.Converged || bestEffort {
		for i, v := range vars {
			v.Value = x[i]
		}
	}
	if !result.Converged && !bestEffort {
		return result, &NonConvergenceError{Iterations: result.Iterations, ResidualNorm: result.ResidualNorm}
	}
	return result, nil
}

// runIterations runs the Newton loop from starting point x, measuring
// distance from x0 (which may differ from x when retrying from a jittered
// start: the objective always minimizes distance from the true initial
// configuration, not from the retry's perturbed starting guess).
func (s *Solver) runIterations(x, x0 []float64, constraints []cnstr.Constraint, maxIter int) ([]float64, *Result, error) {
	n := len(x)
	m := len(constraints)
	lambda := make([]float64, m)
	x = append([]float64(nil), x...)

	result := &Result{}
	iter := 0
	for ; iter < maxIter; iter++ {
		overrides := make(map[*geom.Variable]float64, n)
		for i, v := range s.varIndex.Variables() {
			overrides[v] = x[i]
		}

		sys, err := assemble(constraints, s.varIndex, overrides)
		if err != nil {
			return nil, nil, err
		}
		result.ResidualNorm = residualNorm(sys.Residual)

		if allWithinTolerance(constraints, sys.Residual) {
			result.Converged = true
			break
		}

		step, ok := kktStep(n, m, x, x0, lambda, sys.Jacobian, sys.Residual)
		if !ok {
			// singular KKT matrix: stop iterating rather than propagate NaNs
			break
		}
		for i := 0; i < n; i++ {
			x[i] += step.AtVec(i)
		}
		for row := 0; row < m; row++ {
			lambda[row] += step.AtVec(n + row)
		}
	}
	result.Iterations = iter
	return x, result, nil
}

// kktStep solves the KKT linear system for one Newton step:
//
//	[ I   Jᵀ ] [dx]   [ -(x-x0) - Jᵀλ ]
//	[ J   0  ] [dλ] = [ -g(x)         ]
func kktStep(n, m int, x, x0, lambda []float64, jac *mat.Dense, residual []float64) (*mat.VecDense, bool) {
	p := n + m
	if p == 0 {
		return mat.NewVecDense(0, nil), true
	}

	A := mat.NewDense(p, p, nil)
	for i := 0; i < n; i++ {
		A.Set(i, i, 1)
	}
	for row := 0; row < m; row++ {
		for col := 0; col < n; col++ {
			g := jac.At(row, col)
			A.Set(col, n+row, g)
			A.Set(n+row, col, g)
		}
	}

	b := mat.NewVecDense(p, nil)
	for i := 0; i < n; i++ {
		jTLambda := 0.0
		for row := 0; row < m; row++ {
			jTLambda += jac.At(row, i) * lambda[row]
		}
		b.SetVec(i, -(x[i]-x0[i]) - jTLambda)
	}
	for row := 0; row < m; row++ {
		b.SetVec(n+row, -residual[row])
	}

	var sol mat.VecDense
	if err := sol.SolveVec(A, b); err != nil {
		return nil, false
	}
	return &sol, true
}

func allWithinTolerance(constraints []cnstr.Constraint, residual []float64) bool {
	for i, c := range constraints {
		if math.Abs(residual[i]) > c.Tolerance() {
			return false
		}
	}
	return true
}

// residualNorm returns the residual infinity-norm, max|r_i|, the quantity
// Solve reports in Result.ResidualNorm and NonConvergenceError.
func residualNorm(residual []float64) float64 {
	max := 0.0
	for _, r := range residual {
		if a := math.Abs(r); a > max {
			max = a
		}
	}
	return max
}
