// Copyright 2024 The Gcs2d Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solver

// Result reports the outcome of a Solve call.
type Result struct {
	Converged    bool
	Iterations   int
	ResidualNorm float64
}
