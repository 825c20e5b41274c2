// Copyright 2024 The Gcs2d Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package expr

import "github.com/cpmech/gcs2d/geom"

// Variables returns the set of variables this node transitively depends
// on. The returned map is a fresh copy; callers may treat its keys as the
// set membership test.
func (n *Node) Variables() map[*geom.Variable]bool {
	out := make(map[*geom.Variable]bool, len(n.vars))
	for v := range n.vars {
		out[v] = true
	}
	return out
}

// DependsOn reports whether v appears anywhere in this node's subtree.
func (n *Node) DependsOn(v *geom.Variable) bool {
	return n.vars[v]
}

// Diff returns the partial derivative of this node with respect to v, as
// another expression node. Results are memoized per (node, variable): a
// repeated Diff(v) call on the same node returns the cached node instead of
// rebuilding it. If v does not appear in the node's subtree, the result is
// Const(0) without recursing into children.
func (n *Node) Diff(v *geom.Variable) *Node {
	if !n.vars[v] {
		return constNode(0)
	}
	if n.diffCache == nil {
		n.diffCache = make(map[*geom.Variable]*Node)
	}
	if d, ok := n.diffCache[v]; ok {
		return d
	}

	var d *Node
	switch n.kind {
	case KConst:
		d = constNode(0)

	case KVar:
		d = constNode(1)

	case KAdd:
		terms := make([]Arg, len(n.children))
		for i, c := range n.children {
			terms[i] = c.Diff(v)
		}
		d = Add(terms...)

	case KMul:
		terms := make([]Arg, 0, len(n.children))
		for i := range n.children {
			factors := make([]Arg, 0, len(n.children))
			factors = append(factors, n.children[i].Diff(v))
			for j, c := range n.children {
				if j != i {
					factors = append(factors, c)
				}
			}
			terms = append(terms, Mul(factors...))
		}
		d = Add(terms...)

	case KNeg:
		d = Neg(n.children[0].Diff(v))

	case KSub:
		d = Sub(n.children[0].Diff(v), n.children[1].Diff(v))

	case KDiv:
		a, b := n.children[0], n.children[1]
		d = Div(Sub(Mul(a.Diff(v), b), Mul(a, b.Diff(v))), Sq(b))

	case KPow:
		f := n.children[0]
		d = Mul(n.constVal, Pow(f, n.constVal-1), f.Diff(v))

	case KSq:
		f := n.children[0]
		d = Mul(2.0, f, f.Diff(v))

	case KSqrt:
		f := n.children[0]
		d = Div(f.Diff(v), Mul(2.0, Sqrt(f)))

	case KInverse:
		f := n.children[0]
		d = Neg(Div(f.Diff(v), Sq(f)))

	case KAcos:
		f := n.children[0]
		d = Neg(Div(f.Diff(v), Sqrt(Sub(1.0, Sq(f)))))

	default:
		panic("expr: unreachable node kind")
	}

	n.diffCache[v] = d
	return d
}

// DiffValues evaluates the partial derivative of this node with respect to
// every variable it depends on, returning the numeric gradient. It fails
// with the first *NumericError encountered (e.g. a derivative singularity
// such as differentiating Sqrt at 0 or Acos at ±1).
func (n *Node) DiffValues() (map[*geom.Variable]float64, error) {
	return n.DiffValuesAt(nil)
}

// DiffValuesAt is DiffValues evaluated against overrides instead of live
// variable state; see Eval.
func (n *Node) DiffValuesAt(overrides map[*geom.Variable]float64) (map[*geom.Variable]float64, error) {
	out := make(map[*geom.Variable]float64, len(n.vars))
	for v := range n.vars {
		val, err := n.Diff(v).Eval(overrides)
		if err != nil {
			return nil, err
		}
		out[v] = val
	}
	return out, nil
}
