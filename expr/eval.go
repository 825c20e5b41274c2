// Copyright 2024 The Gcs2d Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package expr

import (
	"math"

	"github.com/cpmech/gcs2d/geom"
)

// Value evaluates the node against the current values of the variables it
// references. It is equivalent to Eval(nil).
func (n *Node) Value() (float64, error) {
	return n.Eval(nil)
}

// Eval evaluates the node, using overrides[v] in place of v.Value wherever
// the variable appears, and falling back to v.Value for any variable not
// present in overrides. A nil overrides map evaluates purely against live
// variable state, same as Value.
//
// This indirection lets the solver probe trial coordinate vectors during an
// optimization step without writing them into the actual geom.Variable
// fields: callbacks driven by the optimizer only read solver state, they
// never mutate it mid-iteration. Add uses Kahan-compensated summation to
// reduce rounding error over long chains of terms. Domain violations (sqrt
// of a negative number, division by zero, acos outside [-1,1], pow of a
// negative base with a non-integer exponent) are reported as a
// *NumericError rather than silently producing NaN.
func (n *Node) Eval(overrides map[*geom.Variable]float64) (float64, error) {
	switch n.kind {
	case KConst:
		return n.constVal, nil

	case KVar:
		if overrides != nil {
			if v, ok := overrides[n.v]; ok {
				return v, nil
			}
		}
		return n.v.Value, nil

	case KAdd:
		sum, comp := 0.0, 0.0
		for _, c := range n.children {
			v, err := c.Eval(overrides)
			if err != nil {
				return 0, err
			}
			y := v - comp
			t := sum + y
			comp = (t - sum) - y
			sum = t
		}
		return sum, nil

	case KMul:
		prod := 1.0
		for _, c := range n.children {
			v, err := c.Eval(overrides)
			if err != nil {
				return 0, err
			}
			prod *= v
		}
		return prod, nil

	case KNeg:
		v, err := n.children[0].Eval(overrides)
		if err != nil {
			return 0, err
		}
		return -v, nil

	case KSub:
		a, err := n.children[0].Eval(overrides)
		if err != nil {
			return 0, err
		}
		b, err := n.children[1].Eval(overrides)
		if err != nil {
			return 0, err
		}
		return a - b, nil

	case KDiv:
		a, err := n.children[0].Eval(overrides)
		if err != nil {
			return 0, err
		}
		b, err := n.children[1].Eval(overrides)
		if err != nil {
			return 0, err
		}
		if b == 0 {
			return 0, newNumericError("div", "division by zero")
		}
		return a / b, nil

	case KPow:
		v, err := n.children[0].Eval(overrides)
		if err != nil {
			return 0, err
		}
		if v == 0 && n.constVal < 0 {
			return 0, newNumericError("pow", "zero base with negative exponent %g", n.constVal)
		}
		if v < 0 && n.constVal != math.Trunc(n.constVal) {
			return 0, newNumericError("pow", "negative base %g with non-integer exponent %g", v, n.constVal)
		}
		return math.Pow(v, n.constVal), nil

	case KSq:
		v, err := n.children[0].Eval(overrides)
		if err != nil {
			return 0, err
		}
		return v * v, nil

	case KSqrt:
		v, err := n.children[0].Eval(overrides)
		if err != nil {
			return 0, err
		}
		if v < 0 {
			return 0, newNumericError("sqrt", "negative argument %g", v)
		}
		return math.Sqrt(v), nil

	case KInverse:
		v, err := n.children[0].Eval(overrides)
		if err != nil {
			return 0, err
		}
		if v == 0 {
			return 0, newNumericError("inverse", "argument is zero")
		}
		return 1 / v, nil

	case KAcos:
		v, err := n.children[0].Eval(overrides)
		if err != nil {
			return 0, err
		}
		if v < -1 || v > 1 {
			return 0, newNumericError("acos", "argument %g outside [-1,1]", v)
		}
		return math.Acos(v), nil
	}
	panic("expr: unreachable node kind")
}
