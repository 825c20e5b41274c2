// Copyright 2024 The Gcs2d Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package autodiff provides a minimal reverse-mode (Wengert-list) automatic
// differentiation tape, used by constraint kinds whose residual cannot be
// expressed as an expr.Node tree because it needs an operation outside that
// package's closed node set (atan2, angle wrapping). The original solver
// this package descends from leaned on Python's autograd library for the
// same purpose; this is the from-scratch Go equivalent, scoped to exactly
// the operations the angle constraint needs.
package autodiff

import "math"

// Tape records a sequence of elementary operations so that Backprop can walk
// it in reverse to accumulate adjoints. Each node stores up to two parent
// indices and the partial derivative of the node's value with respect to
// each parent; a parent index of -1 means "no such parent".
type Tape struct {
	values   []float64
	parents  [][2]int
	partials [][2]float64
}

// NewTape returns an empty recording tape.
func NewTape() *Tape {
	return &Tape{}
}

// Node is a handle to one value recorded on a Tape.
type Node struct {
	tape *Tape
	idx  int
}

// Value returns the node's recorded value.
func (n *Node) Value() float64 {
	return n.tape.values[n.idx]
}

func (t *Tape) push(value float64, p0, p1 int, d0, d1 float64) *Node {
	idx := len(t.values)
	t.values = append(t.values, value)
	t.parents = append(t.parents, [2]int{p0, p1})
	t.partials = append(t.partials, [2]float64{d0, d1})
	return &Node{tape: t, idx: idx}
}

// NewVar introduces an independent input variable onto the tape.
func (t *Tape) NewVar(value float64) *Node {
	return t.push(value, -1, -1, 0, 0)
}

// Add returns a+b.
func (a *Node) Add(b *Node) *Node {
	return a.tape.push(a.Value()+b.Value(), a.idx, b.idx, 1, 1)
}

// Sub returns a-b.
func (a *Node) Sub(b *Node) *Node {
	return a.tape.push(a.Value()-b.Value(), a.idx, b.idx, 1, -1)
}

// Mul returns a*b.
func (a *Node) Mul(b *Node) *Node {
	return a.tape.push(a.Value()*b.Value(), a.idx, b.idx, b.Value(), a.Value())
}

// Neg returns -a.
func (a *Node) Neg() *Node {
	return a.tape.push(-a.Value(), a.idx, -1, -1, 0)
}

// SubConst returns a-c for a plain float64 constant c (zero gradient).
func (a *Node) SubConst(c float64) *Node {
	return a.tape.push(a.Value()-c, a.idx, -1, 1, 0)
}

// Atan2 returns atan2(y, x), recording the standard partials
// d/dy = x/(x²+y²), d/dx = -y/(x²+y²).
func Atan2(y, x *Node) *Node {
	v := math.Atan2(y.Value(), x.Value())
	r2 := x.Value()*x.Value() + y.Value()*y.Value()
	return y.tape.push(v, y.idx, x.idx, x.Value()/r2, -y.Value()/r2)
}

// WrapAngle maps a into [-π,π) via ((a+π) mod 2π) - π. The wrapped value is
// piecewise-linear with unit slope everywhere except at the measure-zero
// jump itself, so its recorded partial is 1.
func (a *Node) WrapAngle() *Node {
	v := a.Value() + math.Pi
	v = math.Mod(v, 2*math.Pi)
	if v < 0 {
		v += 2 * math.Pi
	}
	v -= math.Pi
	return a.tape.push(v, a.idx, -1, 1, 0)
}

// Backprop seeds the adjoint of out to 1 and propagates it back through
// every recorded node, returning the adjoint (partial derivative of out)
// with respect to every node on the tape, indexed by tape position.
func (t *Tape) Backprop(out *Node) []float64 {
	grad := make([]float64, len(t.values))
	grad[out.idx] = 1
	for i := len(t.values) - 1; i >= 0; i-- {
		g := grad[i]
		if g == 0 {
			continue
		}
		p0, p1 := t.parents[i][0], t.parents[i][1]
		d0, d1 := t.partials[i][0], t.partials[i][1]
		if p0 >= 0 {
			grad[p0] += g * d0
		}
		if p1 >= 0 {
			grad[p1] += g * d1
		}
	}
	return grad
}

// Gradient builds a fresh tape, lifts inputs onto it, runs f, and returns
// both f's value and its gradient with respect to inputs, in the same
// order.
func Gradient(inputs []float64, f func(vars []*Node) *Node) (value float64, grad []float64) {
	tape := NewTape()
	vars := make([]*Node, len(inputs))
	for i, x := range inputs {
		vars[i] = tape.NewVar(x)
	}
	out := f(vars)
	adj := tape.Backprop(out)
	grad = make([]float64, len(inputs))
	for i, v := range vars {
		grad[i] = adj[v.idx]
	}
	return out.Value(), grad
}
