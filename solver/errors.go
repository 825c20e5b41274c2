// Copyright 2024 The Gcs2d Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solver

import "github.com/cpmech/gosl/io"

// AlreadyRegisteredError reports that AddConstraint was called with a
// constraint already tracked by the solver.
type AlreadyRegisteredError struct {
	Msg string
}

func (e *AlreadyRegisteredError) Error() string {
	return io.Sf("solver: already registered: %s", e.Msg)
}

// NotRegisteredError reports that RemoveConstraint was called with a
// constraint the solver does not currently track.
type NotRegisteredError struct {
	Msg string
}

func (e *NotRegisteredError) Error() string {
	return io.Sf("solver: not registered: %s", e.Msg)
}

// NonConvergenceError reports that Solve stopped (after maxIter Newton
// steps, or earlier on a singular KKT system) without driving every
// constraint's residual within its own tolerance, and the caller did not
// request best-effort behavior.
type NonConvergenceError struct {
	Iterations   int
	ResidualNorm float64
}

func (e *NonConvergenceError) Error() string {
	return io.Sf("solver: did not converge after %d iterations (residual norm %g)",
		e.Iterations, e.ResidualNorm)
}
