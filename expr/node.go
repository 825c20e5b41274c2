// Copyright 2024 The Gcs2d Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package expr implements the symbolic expression DAG used to represent
// constraint residuals and their partial derivatives: a small closed set of
// node kinds, each evaluated and differentiated through an exhaustive
// switch rather than dynamic dispatch (see DESIGN.md).
package expr

import (
	"github.com/cpmech/gosl/io"

	"github.com/cpmech/gcs2d/geom"
)

// Kind tags the variant a Node holds. The set is closed; there is no
// provision for user-defined node kinds.
type Kind int

const (
	KConst Kind = iota
	KVar
	KAdd
	KMul
	KNeg
	KSub
	KDiv
	KPow
	KSq
	KSqrt
	KInverse
	KAcos
)

func (k Kind) String() string {
	switch k {
	case KConst:
		return "Const"
	case KVar:
		return "Var"
	case KAdd:
		return "Add"
	case KMul:
		return "Mul"
	case KNeg:
		return "Neg"
	case KSub:
		return "Sub"
	case KDiv:
		return "Div"
	case KPow:
		return "Pow"
	case KSq:
		return "Sq"
	case KSqrt:
		return "Sqrt"
	case KInverse:
		return "Inverse"
	case KAcos:
		return "Acos"
	default:
		return "?"
	}
}

// Node is one immutable arithmetic expression node. Nodes form a DAG: a
// node owns its children, and because expressions are only ever built
// bottom-up from already-constructed children, cycles are impossible.
//
// Add and Mul are n-ary (children holds every term/factor); Sub, Div and
// Pow are binary-or-unary (children[0], optionally children[1]); Neg, Sq,
// Sqrt, Inverse and Acos are unary (children[0]). Pow additionally carries
// its (constant) exponent in constVal.
type Node struct {
	kind     Kind
	children []*Node
	constVal float64        // KConst: the value. KPow: the exponent.
	v        *geom.Variable // KVar only

	vars map[*geom.Variable]bool // transitive variable set, cached at construction

	// diffCache memoizes Diff(v) per variable; built lazily since most
	// nodes are never differentiated with respect to most variables.
	diffCache map[*geom.Variable]*Node
}

// Arg is anything a builder factory accepts: a *Node, or a numeric literal
// (float64 or int) that gets lifted to a Const node.
type Arg interface{}

func lift(a Arg) *Node {
	switch x := a.(type) {
	case *Node:
		return x
	case float64:
		return constNode(x)
	case int:
		return constNode(float64(x))
	default:
		panic(io.Sf("expr: invalid argument of type %T, want *Node, float64 or int", a))
	}
}

func liftAll(args []Arg) []*Node {
	out := make([]*Node, len(args))
	for i, a := range args {
		out[i] = lift(a)
	}
	return out
}

func constNode(x float64) *Node {
	return &Node{kind: KConst, constVal: x, vars: map[*geom.Variable]bool{}}
}

func varNode(v *geom.Variable) *Node {
	return &Node{kind: KVar, v: v, vars: map[*geom.Variable]bool{v: true}}
}

// newNode allocates a node of the given kind over the given children,
// computing its transitive variable set as the union of its children's.
func newNode(kind Kind, children []*Node, constVal float64) *Node {
	vars := make(map[*geom.Variable]bool)
	for _, c := range children {
		for v := range c.vars {
			vars[v] = true
		}
	}
	return &Node{kind: kind, children: children, constVal: constVal, vars: vars}
}

// Const builds a constant node.
func Const(x float64) *Node { return constNode(x) }

// Var builds a node referencing a single variable.
func Var(v *geom.Variable) *Node { return varNode(v) }

// Kind returns the node's variant tag.
func (n *Node) Kind() Kind { return n.kind }

// Children returns the node's children (empty for Const and Var).
func (n *Node) Children() []*Node { return n.children }

// ConstValue returns the node's constant payload: the value itself for
// KConst, or the exponent for KPow. Meaningless for other kinds.
func (n *Node) ConstValue() float64 { return n.constVal }

// Equal reports whether two nodes are structurally identical: same kind,
// same constant/variable payload, and recursively equal children in the
// same order. It is not a semantic/value equality check (e.g. Add(x,y) and
// Add(y,x) are not Equal even though they evaluate to the same value) --
// algebraic builder output is deterministic in child order, so this is
// sufficient to test the simplification rules of the builder.
func (n *Node) Equal(o *Node) bool {
	if n == o {
		return true
	}
	if n == nil || o == nil {
		return false
	}
	if n.kind != o.kind {
		return false
	}
	switch n.kind {
	case KConst:
		return n.constVal == o.constVal
	case KVar:
		return n.v == o.v
	case KPow:
		if n.constVal != o.constVal {
			return false
		}
	}
	if len(n.children) != len(o.children) {
		return false
	}
	for i := range n.children {
		if !n.children[i].Equal(o.children[i]) {
			return false
		}
	}
	return true
}

// String renders a debugging form of the expression tree, not meant to be
// parsed back.
func (n *Node) String() string {
	switch n.kind {
	case KConst:
		return io.Sf("%g", n.constVal)
	case KVar:
		return n.v.Name
	case KPow:
		return io.Sf("pow(%v, %g)", n.children[0], n.constVal)
	}
	parts := make([]string, len(n.children))
	for i, c := range n.children {
		parts[i] = c.String()
	}
	s := n.kind.String() + "("
	for i, p := range parts {
		if i > 0 {
			s += ", "
		}
		s += p
	}
	return s + ")"
}
