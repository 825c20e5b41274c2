// Copyright 2024 The Gcs2d Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package autodiff

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/num"
)

func TestGradientOfAtan2(tst *testing.T) {
	chk.PrintTitle("GradientOfAtan2")

	dx, dy := 1.3, 0.7
	_, grad := Gradient([]float64{dy, dx}, func(v []*Node) *Node {
		return Atan2(v[0], v[1])
	})

	numDdy, err := num.DerivCentral(func(x float64, args ...interface{}) float64 {
		return math.Atan2(x, dx)
	}, dy, 1e-6)
	if err != nil {
		tst.Fatalf("numeric derivative failed: %v", err)
	}
	numDdx, err := num.DerivCentral(func(x float64, args ...interface{}) float64 {
		return math.Atan2(dy, x)
	}, dx, 1e-6)
	if err != nil {
		tst.Fatalf("numeric derivative failed: %v", err)
	}

	chk.AnaNum(tst, "d(atan2)/d(dy)", 1e-6, grad[0], numDdy, false)
	chk.AnaNum(tst, "d(atan2)/d(dx)", 1e-6, grad[1], numDdx, false)
}

func TestWrapAngleIsIdentityAwayFromJump(tst *testing.T) {
	chk.PrintTitle("WrapAngleIsIdentityAwayFromJump")

	_, grad := Gradient([]float64{0.3}, func(v []*Node) *Node {
		return v[0].WrapAngle()
	})
	chk.Scalar(tst, "d(wrap)/da", 1e-15, grad[0], 1)
}

func TestAngleResidualGradientMatchesFiniteDifference(tst *testing.T) {
	chk.PrintTitle("AngleResidualGradientMatchesFiniteDifference")

	ax, ay, bx, by := 0.0, 0.0, 3.0, 1.5
	theta := 0.4

	residual := func(ax, ay, bx, by float64) float64 {
		r := math.Atan2(by-ay, bx-ax) - theta
		r = math.Mod(r+math.Pi, 2*math.Pi)
		if r < 0 {
			r += 2 * math.Pi
		}
		return r - math.Pi
	}

	_, grad := Gradient([]float64{ax, ay, bx, by}, func(v []*Node) *Node {
		dx := v[2].Sub(v[0])
		dy := v[3].Sub(v[1])
		angle := Atan2(dy, dx)
		return angle.SubConst(theta).WrapAngle()
	})

	inputs := []float64{ax, ay, bx, by}
	for i, label := range []string{"ax", "ay", "bx", "by"} {
		x := inputs
		numd, err := num.DerivCentral(func(h float64, args ...interface{}) float64 {
			saved := x[i]
			x[i] = h
			r := residual(x[0], x[1], x[2], x[3])
			x[i] = saved
			return r
		}, inputs[i], 1e-6)
		if err != nil {
			tst.Fatalf("numeric derivative failed: %v", err)
		}
		chk.AnaNum(tst, "d(residual)/d("+label+")", 1e-6, grad[i], numd, false)
	}
}
