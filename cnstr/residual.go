// Copyright 2024 The Gcs2d Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cnstr

import (
	"math"

	"github.com/cpmech/gcs2d/autodiff"
	"github.com/cpmech/gcs2d/geom"
)

// Angle pins a line segment's direction to a target angle (radians,
// measured from the positive X axis). Its residual wraps
// atan2(by-ay, bx-ax) - theta into [-π,π), which has no representation in
// expr's closed node set (no Atan2 node), so unlike its siblings it does
// not embed exprBacked: Gradient falls back to the autodiff package's
// reverse-mode tape instead of expr.Node.Diff.
type Angle struct {
	Line  *geom.LineSegment
	Theta float64
	tol   float64
}

// NewAngle constructs an Angle constraint. tol<=0 uses DefaultTolerance.
func NewAngle(line *geom.LineSegment, theta, tol float64) *Angle {
	return &Angle{Line: line, Theta: theta, tol: resolveTol(tol)}
}

func (c *Angle) Kind() Kind        { return KindAngle }
func (c *Angle) Tolerance() float64 { return c.tol }

func (c *Angle) VarRefs() []*geom.Variable {
	return []*geom.Variable{c.Line.A.X, c.Line.A.Y, c.Line.B.X, c.Line.B.Y}
}

func resolvedValue(v *geom.Variable, overrides map[*geom.Variable]float64) float64 {
	if overrides != nil {
		if x, ok := overrides[v]; ok {
			return x
		}
	}
	return v.Value
}

func wrapAngle(a float64) float64 {
	a = math.Mod(a+math.Pi, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a - math.Pi
}

// Residual computes wrap(atan2(dy,dx) - theta). A degenerate (zero-length)
// segment has no direction, so it reports a *DegenerateError rather than an
// arbitrary atan2(0,0)=0.
func (c *Angle) Residual(overrides map[*geom.Variable]float64) (float64, error) {
	ax := resolvedValue(c.Line.A.X, overrides)
	ay := resolvedValue(c.Line.A.Y, overrides)
	bx := resolvedValue(c.Line.B.X, overrides)
	by := resolvedValue(c.Line.B.Y, overrides)
	dx, dy := bx-ax, by-ay
	if dx == 0 && dy == 0 {
		return 0, newDegenerateError("angle", "line %s has zero length, direction is undefined", c.Line.Name)
	}
	return wrapAngle(math.Atan2(dy, dx) - c.Theta), nil
}

// Gradient differentiates the wrapped atan2 residual via the autodiff
// package's reverse-mode tape, in VarRefs order (ax, ay, bx, by).
func (c *Angle) Gradient(overrides map[*geom.Variable]float64) ([]float64, error) {
	ax := resolvedValue(c.Line.A.X, overrides)
	ay := resolvedValue(c.Line.A.Y, overrides)
	bx := resolvedValue(c.Line.B.X, overrides)
	by := resolvedValue(c.Line.B.Y, overrides)
	if bx-ax == 0 && by-ay == 0 {
		return nil, newDegenerateError("angle", "line %s has zero length, direction is undefined", c.Line.Name)
	}

	theta := c.Theta
	_, grad := autodiff.Gradient([]float64{ax, ay, bx, by}, func(v []*autodiff.Node) *autodiff.Node {
		dx := v[2].Sub(v[0])
		dy := v[3].Sub(v[1])
		angle := autodiff.Atan2(dy, dx)
		return angle.SubConst(theta).WrapAngle()
	})
	return grad, nil
}
