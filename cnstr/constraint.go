// Copyright 2024 The Gcs2d Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cnstr

import (
	"github.com/cpmech/gcs2d/expr"
	"github.com/cpmech/gcs2d/geom"
)

// DefaultTolerance is the residual tolerance a constraint gets when its
// constructor is called with tol<=0.
const DefaultTolerance = 1e-9

// Constraint is satisfied by the solver when Residual evaluates to (within
// Tolerance of) zero. VarRefs fixes the order in which Gradient's entries
// correspond to solver variables; duplicates are allowed (a constraint may
// reference the same geom.Variable more than once only if its geometry
// legitimately shares a point, e.g. a closed polyline's wrap-around
// segment) and the solver sums contributions per variable when assembling
// its Jacobian.
//
// Residual and Gradient both accept an overrides map so the solver can
// probe a trial coordinate vector during an SQP step without writing it
// into the live geom.Variable fields it will only commit on convergence;
// see expr.Node.Eval for the same convention at the expression layer.
type Constraint interface {
	Kind() Kind
	VarRefs() []*geom.Variable
	Tolerance() float64
	Residual(overrides map[*geom.Variable]float64) (float64, error)
	Gradient(overrides map[*geom.Variable]float64) ([]float64, error)
}

// exprBacked implements Residual/Gradient for every constraint kind whose
// residual can be expressed as a single expr.Node: VariableFixed,
// VariablesEqual, Length, Perpendicular. Angle is the exception; see
// Angle's own Residual/Gradient in residual.go.
type exprBacked struct {
	node *expr.Node
	vars []*geom.Variable
}

func (e *exprBacked) VarRefs() []*geom.Variable {
	return e.vars
}

func (e *exprBacked) Residual(overrides map[*geom.Variable]float64) (float64, error) {
	return e.node.Eval(overrides)
}

// Gradient places the full partial derivative for each distinct variable at
// its first VarRefs entry and 0 at any repeated entry, since the solver sums
// the entries of a repeated variable into one Jacobian column.
func (e *exprBacked) Gradient(overrides map[*geom.Variable]float64) ([]float64, error) {
	grad := make([]float64, len(e.vars))
	seen := make(map[*geom.Variable]bool, len(e.vars))
	for i, v := range e.vars {
		if seen[v] {
			continue
		}
		seen[v] = true
		g, err := e.node.Diff(v).Eval(overrides)
		if err != nil {
			return nil, err
		}
		grad[i] = g
	}
	return grad, nil
}

func resolveTol(tol float64) float64 {
	if tol <= 0 {
		return DefaultTolerance
	}
	return tol
}

// VariableFixed pins a single variable to a target value: residual is
// v.Value - target.
type VariableFixed struct {
	exprBacked
	V      *geom.Variable
	Target float64
	tol    float64
}

// NewVariableFixed constructs a VariableFixed constraint. tol<=0 uses
// DefaultTolerance.
func NewVariableFixed(v *geom.Variable, target, tol float64) *VariableFixed {
	node := expr.Sub(expr.Var(v), expr.Const(target))
	return &VariableFixed{
		exprBacked: exprBacked{node: node, vars: []*geom.Variable{v}},
		V:          v,
		Target:     target,
		tol:        resolveTol(tol),
	}
}

func (c *VariableFixed) Kind() Kind        { return KindVariableFixed }
func (c *VariableFixed) Tolerance() float64 { return c.tol }

// VariablesEqual ties two variables together: residual is a.Value - b.Value.
type VariablesEqual struct {
	exprBacked
	A, B *geom.Variable
	tol  float64
}

// NewVariablesEqual constructs a VariablesEqual constraint. tol<=0 uses
// DefaultTolerance.
func NewVariablesEqual(a, b *geom.Variable, tol float64) *VariablesEqual {
	node := expr.Sub(expr.Var(a), expr.Var(b))
	return &VariablesEqual{
		exprBacked: exprBacked{node: node, vars: []*geom.Variable{a, b}},
		A:          a,
		B:          b,
		tol:        resolveTol(tol),
	}
}

func (c *VariablesEqual) Kind() Kind        { return KindVariablesEqual }
func (c *VariablesEqual) Tolerance() float64 { return c.tol }

// Vertical constrains line's two endpoints to share an X coordinate. It is
// a VariablesEqual constraint over line.A.X and line.B.X, not a new kind:
// the original implementation this package descends from built Vertical and
// Horizontal the same way, as thin convenience constructors rather than
// distinct evaluators.
func Vertical(line *geom.LineSegment, tol float64) *VariablesEqual {
	return NewVariablesEqual(line.A.X, line.B.X, tol)
}

// Horizontal constrains line's two endpoints to share a Y coordinate.
func Horizontal(line *geom.LineSegment, tol float64) *VariablesEqual {
	return NewVariablesEqual(line.A.Y, line.B.Y, tol)
}

// Length pins a line segment's length: residual is
// sqrt((bx-ax)²+(by-ay)²) - length.
type Length struct {
	exprBacked
	Line *geom.LineSegment
	L    float64
	tol  float64
}

// NewLength constructs a Length constraint. tol<=0 uses DefaultTolerance.
func NewLength(line *geom.LineSegment, length, tol float64) *Length {
	dx := expr.Sub(expr.Var(line.B.X), expr.Var(line.A.X))
	dy := expr.Sub(expr.Var(line.B.Y), expr.Var(line.A.Y))
	node := expr.Sub(expr.Sqrt(expr.Add(expr.Sq(dx), expr.Sq(dy))), expr.Const(length))
	vars := []*geom.Variable{line.A.X, line.A.Y, line.B.X, line.B.Y}
	return &Length{
		exprBacked: exprBacked{node: node, vars: vars},
		Line:       line,
		L:          length,
		tol:        resolveTol(tol),
	}
}

func (c *Length) Kind() Kind        { return KindLength }
func (c *Length) Tolerance() float64 { return c.tol }

// Perpendicular pins two line segments to meet at a right angle. Rather
// than a direct dot-product-equals-zero residual, it uses the Pythagorean
// identity |d1-d2|² = |d1|²+|d2|² (which holds exactly when d1·d2=0),
// expressed entirely through Sub/Sq/Sqrt/Add so it stays representable in
// the expr package's closed node set and differentiates the same way
// Length does, without a dedicated dot-product node.
type Perpendicular struct {
	exprBacked
	Line1, Line2 *geom.LineSegment
	tol          float64
}

// NewPerpendicular constructs a Perpendicular constraint. tol<=0 uses
// DefaultTolerance.
func NewPerpendicular(line1, line2 *geom.LineSegment, tol float64) *Perpendicular {
	dx1 := expr.Sub(expr.Var(line1.B.X), expr.Var(line1.A.X))
	dy1 := expr.Sub(expr.Var(line1.B.Y), expr.Var(line1.A.Y))
	dx2 := expr.Sub(expr.Var(line2.B.X), expr.Var(line2.A.X))
	dy2 := expr.Sub(expr.Var(line2.B.Y), expr.Var(line2.A.Y))

	len1Sq := expr.Add(expr.Sq(dx1), expr.Sq(dy1))
	len2Sq := expr.Add(expr.Sq(dx2), expr.Sq(dy2))
	diffSq := expr.Add(expr.Sq(expr.Sub(dx1, dx2)), expr.Sq(expr.Sub(dy1, dy2)))

	node := expr.Sub(expr.Sqrt(diffSq), expr.Sqrt(expr.Add(len1Sq, len2Sq)))
	vars := []*geom.Variable{
		line1.A.X, line1.A.Y, line1.B.X, line1.B.Y,
		line2.A.X, line2.A.Y, line2.B.X, line2.B.Y,
	}
	return &Perpendicular{
		exprBacked: exprBacked{node: node, vars: vars},
		Line1:      line1,
		Line2:      line2,
		tol:        resolveTol(tol),
	}
}

func (c *Perpendicular) Kind() Kind        { return KindPerpendicular }
func (c *Perpendicular) Tolerance() float64 { return c.tol }
