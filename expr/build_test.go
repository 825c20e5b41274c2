// Copyright 2024 The Gcs2d Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package expr

import (
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/gcs2d/geom"
)

func TestBuilderSimplifications(tst *testing.T) {
	chk.PrintTitle("BuilderSimplifications")

	x := Var(geom.NewVariable("x", 1))
	y := Var(geom.NewVariable("y", 2))
	z := Var(geom.NewVariable("z", 3))

	// mul(0,x) == Const(0)
	if !Mul(0.0, x).Equal(Const(0)) {
		tst.Fatal("mul(0,x) should fold to Const(0)")
	}

	// mul(1,x,y,z) == mul(x,y,z)
	if !Mul(1.0, x, y, z).Equal(Mul(x, y, z)) {
		tst.Fatal("mul(1,x,y,z) should equal mul(x,y,z)")
	}

	// add(0,x) == x
	if !Add(0.0, x).Equal(x) {
		tst.Fatal("add(0,x) should fold to x")
	}

	// add(x,1,2,3) == add(x,6)
	if !Add(x, 1.0, 2.0, 3.0).Equal(Add(x, 6.0)) {
		tst.Fatal("add(x,1,2,3) should equal add(x,6)")
	}

	// neg(neg(x)) == x
	if !Neg(Neg(x)).Equal(x) {
		tst.Fatal("neg(neg(x)) should fold to x")
	}

	// inv(inv(x)) == x
	if !Inverse(Inverse(x)).Equal(x) {
		tst.Fatal("inv(inv(x)) should fold to x")
	}

	// neg(mul(2,x)) == mul(-2,x)
	if !Neg(Mul(2.0, x)).Equal(Mul(-2.0, x)) {
		tst.Fatal("neg(mul(2,x)) should equal mul(-2,x)")
	}

	// constant-only expressions fold to a Const carrying the exact value
	c := Add(Mul(2.0, 3.0), Sub(5.0, 1.0))
	if c.Kind() != KConst {
		tst.Fatalf("constant-only expression should fold to Const, got %v", c.Kind())
	}
	chk.Scalar(tst, "const fold", 1e-15, c.ConstValue(), 10)

	// Pow rewrites
	if !Pow(x, 0).Equal(Const(1)) {
		tst.Fatal("pow(x,0) should be Const(1)")
	}
	if !Pow(x, 1).Equal(x) {
		tst.Fatal("pow(x,1) should be x")
	}
	if Pow(x, -1).Kind() != KInverse {
		tst.Fatal("pow(x,-1) should be Inverse(x)")
	}
	if Pow(x, 0.5).Kind() != KSqrt {
		tst.Fatal("pow(x,0.5) should be Sqrt(x)")
	}
	if Pow(x, 2).Kind() != KSq {
		tst.Fatal("pow(x,2) should be Sq(x)")
	}
	nested := Pow(Pow(x, 3), 2)
	if nested.Kind() != KPow || nested.ConstValue() != 6 {
		tst.Fatalf("pow(pow(x,3),2) should collapse to pow(x,6), got %v^%g", nested.Kind(), nested.ConstValue())
	}
}

func TestAddFlattensNesting(tst *testing.T) {
	chk.PrintTitle("AddFlattensNesting")
	x := Var(geom.NewVariable("x", 1))
	y := Var(geom.NewVariable("y", 2))
	z := Var(geom.NewVariable("z", 3))
	nested := Add(Add(x, y), z)
	flat := Add(x, y, z)
	if !nested.Equal(flat) {
		tst.Fatal("nested Add should flatten to the same shape as a flat Add")
	}
	if len(nested.Children()) != 3 {
		tst.Fatalf("expected 3 flattened children, got %d", len(nested.Children()))
	}
}

func TestMulFlattensNesting(tst *testing.T) {
	chk.PrintTitle("MulFlattensNesting")
	x := Var(geom.NewVariable("x", 1))
	y := Var(geom.NewVariable("y", 2))
	z := Var(geom.NewVariable("z", 3))
	nested := Mul(Mul(x, y), z)
	flat := Mul(x, y, z)
	if !nested.Equal(flat) {
		tst.Fatal("nested Mul should flatten to the same shape as a flat Mul")
	}
}

func TestDivByOneElided(tst *testing.T) {
	chk.PrintTitle("DivByOneElided")
	x := Var(geom.NewVariable("x", 5))
	if !Div(x, 1.0).Equal(x) {
		tst.Fatal("div(x,1) should fold to x")
	}
}

func TestDotProduct(tst *testing.T) {
	chk.PrintTitle("DotProduct")
	ax := geom.NewVariable("ax", 1)
	ay := geom.NewVariable("ay", 2)
	bx := geom.NewVariable("bx", 3)
	by := geom.NewVariable("by", 4)
	e := DotProduct(Var(ax), Var(ay), Var(bx), Var(by))
	v, err := e.Value()
	if err != nil {
		tst.Fatalf("unexpected error: %v", err)
	}
	chk.Scalar(tst, "dot", 1e-15, v, 1*3+2*4)
}
