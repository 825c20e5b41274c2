// Copyright 2024 The Gcs2d Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cnstr

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/num"

	"github.com/cpmech/gcs2d/geom"
)

// checkGradient compares a constraint's analytic Gradient against the
// central-difference approximation of Residual, varying one VarRefs entry
// at a time. Grounded on the same pattern expr's diff_test.go uses for
// expression derivatives.
func checkGradient(tst *testing.T, label string, c Constraint, tol float64) {
	ana, err := c.Gradient(nil)
	if err != nil {
		tst.Fatalf("%s: analytic gradient failed: %v", label, err)
	}
	for i, v := range c.VarRefs() {
		orig := v.Value
		numd, err := num.DerivCentral(func(x float64, args ...interface{}) float64 {
			v.Value = x
			r, _ := c.Residual(nil)
			v.Value = orig
			return r
		}, orig, 1e-6)
		if err != nil {
			tst.Fatalf("%s: numeric derivative failed: %v", label, err)
		}
		chk.AnaNum(tst, label, tol, ana[i], numd, false)
	}
}

func TestVariableFixedResidual(tst *testing.T) {
	chk.PrintTitle("VariableFixedResidual")
	v := geom.NewVariable("v", 3)
	c := NewVariableFixed(v, 5, 0)
	r, err := c.Residual(nil)
	if err != nil {
		tst.Fatalf("unexpected error: %v", err)
	}
	chk.Scalar(tst, "residual", 1e-15, r, -2)
	checkGradient(tst, "variable-fixed", c, 1e-9)
}

func TestVariablesEqualResidual(tst *testing.T) {
	chk.PrintTitle("VariablesEqualResidual")
	a := geom.NewVariable("a", 1)
	b := geom.NewVariable("b", 4)
	c := NewVariablesEqual(a, b, 0)
	r, err := c.Residual(nil)
	if err != nil {
		tst.Fatalf("unexpected error: %v", err)
	}
	chk.Scalar(tst, "residual", 1e-15, r, -3)
	checkGradient(tst, "variables-equal", c, 1e-9)
}

func TestVerticalAndHorizontal(tst *testing.T) {
	chk.PrintTitle("VerticalAndHorizontal")
	line := geom.NewLineSegment("l", geom.NewPoint("p0", 1, 2), geom.NewPoint("p1", 1, 9))
	v := Vertical(line, 0)
	r, err := v.Residual(nil)
	if err != nil {
		tst.Fatalf("unexpected error: %v", err)
	}
	chk.Scalar(tst, "vertical residual", 1e-15, r, 0)

	h := Horizontal(line, 0)
	r, err = h.Residual(nil)
	if err != nil {
		tst.Fatalf("unexpected error: %v", err)
	}
	chk.Scalar(tst, "horizontal residual", 1e-15, r, 2-9)
}

func TestLengthResidualAndGradient(tst *testing.T) {
	chk.PrintTitle("LengthResidualAndGradient")
	line := geom.NewLineSegment("l", geom.NewPoint("p0", 0, 0), geom.NewPoint("p1", 3, 4))
	c := NewLength(line, 5, 0)
	r, err := c.Residual(nil)
	if err != nil {
		tst.Fatalf("unexpected error: %v", err)
	}
	chk.Scalar(tst, "residual at target length", 1e-12, r, 0)

	line.B.X.Value = 6
	checkGradient(tst, "length", c, 1e-9)
}

func TestPerpendicularResidualAndGradient(tst *testing.T) {
	chk.PrintTitle("PerpendicularResidualAndGradient")
	l1 := geom.NewLineSegment("l1", geom.NewPoint("a0", 0, 0), geom.NewPoint("a1", 1, 0))
	l2 := geom.NewLineSegment("l2", geom.NewPoint("b0", 0, 0), geom.NewPoint("b1", 0, 1))
	c := NewPerpendicular(l1, l2, 0)
	r, err := c.Residual(nil)
	if err != nil {
		tst.Fatalf("unexpected error: %v", err)
	}
	chk.Scalar(tst, "residual for perpendicular lines", 1e-12, r, 0)

	l2.B.Y.Value = 0.7
	checkGradient(tst, "perpendicular", c, 1e-9)
}

func TestAngleResidualAndGradient(tst *testing.T) {
	chk.PrintTitle("AngleResidualAndGradient")
	line := geom.NewLineSegment("l", geom.NewPoint("a", 0, 0), geom.NewPoint("b", 1, 1))
	c := NewAngle(line, math.Pi/4, 0)
	r, err := c.Residual(nil)
	if err != nil {
		tst.Fatalf("unexpected error: %v", err)
	}
	chk.Scalar(tst, "residual at target angle", 1e-12, r, 0)

	line.B.X.Value = 2
	checkGradient(tst, "angle", c, 1e-6)
}

func TestAngleDegenerateLineReportsError(tst *testing.T) {
	chk.PrintTitle("AngleDegenerateLineReportsError")
	p := geom.NewPoint("p", 1, 1)
	line := geom.NewLineSegment("l", p, p)
	c := NewAngle(line, 0, 0)
	if _, err := c.Residual(nil); err == nil {
		tst.Fatal("zero-length line should report a degenerate error")
	}
	if _, err := c.Gradient(nil); err == nil {
		tst.Fatal("zero-length line should report a degenerate error from Gradient too")
	}
}
