// Copyright 2024 The Gcs2d Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

func TestBuildResolvesPointsLinesAndConstraints(tst *testing.T) {
	chk.PrintTitle("BuildResolvesPointsLinesAndConstraints")

	data := &SceneData{
		Points: []PointData{
			{Name: "a", X: 0, Y: 0},
			{Name: "b", X: 3, Y: 0},
		},
		Lines: []LineData{
			{Name: "ab", A: "a", B: "b"},
		},
		Constraints: []ConstraintData{
			{Kind: "length", Line: "ab", Length: 5},
			{Kind: "variable-fixed", Var: "a.x", Target: 0},
			{Kind: "variable-fixed", Var: "a.y", Target: 0},
		},
	}

	g, err := Build(data)
	if err != nil {
		tst.Fatalf("unexpected error: %v", err)
	}
	if _, ok := g.Lines["ab"]; !ok {
		tst.Fatal("line ab should have been built")
	}
	chk.IntAssert(g.Solver.ConstraintCount(), 3)

	result, err := g.Solver.Solve(50, false)
	if err != nil {
		tst.Fatalf("unexpected solve error: %v", err)
	}
	if !result.Converged {
		tst.Fatal("expected convergence")
	}
	chk.Scalar(tst, "b.x after solve", 1e-6, g.Points["b"].X.Value, 5)
}

func TestBuildReportsUnknownLineReference(tst *testing.T) {
	chk.PrintTitle("BuildReportsUnknownLineReference")
	data := &SceneData{
		Lines: []LineData{{Name: "l", A: "missing", B: "alsoMissing"}},
	}
	if _, err := Build(data); err == nil {
		tst.Fatal("expected an error for an unresolvable point reference")
	}
}

func TestBuildReportsUnknownConstraintKind(tst *testing.T) {
	chk.PrintTitle("BuildReportsUnknownConstraintKind")
	data := &SceneData{
		Points:      []PointData{{Name: "a", X: 0, Y: 0}},
		Constraints: []ConstraintData{{Kind: "not-a-real-kind"}},
	}
	if _, err := Build(data); err == nil {
		tst.Fatal("expected an error for an unknown constraint kind")
	}
}
