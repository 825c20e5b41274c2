// Copyright 2024 The Gcs2d Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package cnstr implements the constraint layer: the concrete constraint
// kinds (VariableFixed, VariablesEqual, Length, Angle, Perpendicular, and
// the Vertical/Horizontal specializations of VariablesEqual), their residual
// evaluators, and the per-kind Block storage the solver assembles its
// Jacobian from. It follows the per-kind registry/evaluator shape of
// BookmarkSciencePrrojects-gofem's msolid model allocator and ele element
// factory: each Kind is a self-contained unit of residual+gradient logic
// keyed by a small enum, not a single monolithic switch spread across the
// solver.
package cnstr

// Kind identifies a constraint's evaluator and parameter schema.
type Kind int

const (
	KindVariableFixed Kind = iota
	KindVariablesEqual
	KindLength
	KindAngle
	KindPerpendicular
)

func (k Kind) String() string {
	switch k {
	case KindVariableFixed:
		return "variable-fixed"
	case KindVariablesEqual:
		return "variables-equal"
	case KindLength:
		return "length"
	case KindAngle:
		return "angle"
	case KindPerpendicular:
		return "perpendicular"
	default:
		return "unknown"
	}
}

// HasAnalyticJacobian reports whether this kind's residual is represented as
// an expr.Node (and therefore differentiated symbolically via expr.Diff) or
// whether the solver must fall back to the autodiff package's reverse-mode
// tape. Angle is the one kind that needs the fallback: atan2 has no node in
// expr's closed Kind enumeration.
func (k Kind) HasAnalyticJacobian() bool {
	return k != KindAngle
}
