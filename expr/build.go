// Copyright 2024 The Gcs2d Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package expr

import "math"

// Add builds a flattened, constant-folded n-ary sum. Any Add child of an
// argument is flattened into the top-level term list; the constant part is
// reduced to a single value and elided if zero; if only one term remains it
// is returned directly instead of a one-child Add node.
func Add(terms ...Arg) *Node {
	nodes := liftAll(terms)
	var flat []*Node
	for _, n := range nodes {
		if n.kind == KAdd {
			flat = append(flat, n.children...)
		} else {
			flat = append(flat, n)
		}
	}

	// Kahan-compensated reduction of the constant part.
	sum, comp := 0.0, 0.0
	var rest []*Node
	for _, n := range flat {
		if n.kind == KConst {
			y := n.constVal - comp
			t := sum + y
			comp = (t - sum) - y
			sum = t
		} else {
			rest = append(rest, n)
		}
	}

	if len(rest) == 0 {
		return constNode(sum)
	}
	if sum != 0 {
		rest = append(rest, constNode(sum))
	}
	if len(rest) == 1 {
		return rest[0]
	}
	return newNode(KAdd, rest, 0)
}

// Mul builds a flattened, constant-folded n-ary product. Any Mul child of
// an argument is flattened; the constant part is reduced to a single
// value. A zero constant factor collapses the whole product to Const(0); a
// constant factor of 1 is elided.
func Mul(factors ...Arg) *Node {
	nodes := liftAll(factors)
	var flat []*Node
	for _, n := range nodes {
		if n.kind == KMul {
			flat = append(flat, n.children...)
		} else {
			flat = append(flat, n)
		}
	}

	prod := 1.0
	var rest []*Node
	for _, n := range flat {
		if n.kind == KConst {
			prod *= n.constVal
		} else {
			rest = append(rest, n)
		}
	}

	if prod == 0 {
		return constNode(0)
	}
	if len(rest) == 0 {
		return constNode(prod)
	}
	if prod != 1 {
		rest = append(rest, constNode(prod))
	}
	if len(rest) == 1 {
		return rest[0]
	}
	return newNode(KMul, rest, 0)
}

// Neg builds the additive inverse. Neg(Neg(x)) collapses to x; Neg(Mul(..))
// is rewritten into Mul(Const(-1), ..) so the sign folds into the product's
// constant factor instead of sitting in an extra layer.
func Neg(a Arg) *Node {
	n := lift(a)
	switch n.kind {
	case KConst:
		return constNode(-n.constVal)
	case KNeg:
		return n.children[0]
	case KMul:
		args := make([]Arg, 0, len(n.children)+1)
		args = append(args, -1.0)
		for _, c := range n.children {
			args = append(args, c)
		}
		return Mul(args...)
	default:
		return newNode(KNeg, []*Node{n}, 0)
	}
}

// Sub builds f - g.
func Sub(a, b Arg) *Node {
	an, bn := lift(a), lift(b)
	if an.kind == KConst && bn.kind == KConst {
		return constNode(an.constVal - bn.constVal)
	}
	if bn.kind == KConst && bn.constVal == 0 {
		return an
	}
	return newNode(KSub, []*Node{an, bn}, 0)
}

// Div builds f / g. Division by the constant 1 is elided.
func Div(a, b Arg) *Node {
	an, bn := lift(a), lift(b)
	if bn.kind == KConst {
		if an.kind == KConst {
			return constNode(an.constVal / bn.constVal)
		}
		if bn.constVal == 1 {
			return an
		}
	}
	return newNode(KDiv, []*Node{an, bn}, 0)
}

// Pow builds f^p for a constant exponent p, applying the rewrites of
// spec.md §3: Pow(_,0)=1, Pow(x,1)=x, Pow(x,-1)=Inverse(x), Pow(x,1/2)
// =Sqrt(x), Pow(x,2)=Sq(x), and Pow(Pow(x,a),b)=Pow(x,a*b).
func Pow(a Arg, p float64) *Node {
	n := lift(a)
	if n.kind == KConst {
		if v := math.Pow(n.constVal, p); !math.IsNaN(v) {
			return constNode(v)
		}
	}
	if n.kind == KPow {
		return Pow(n.children[0], n.constVal*p)
	}
	switch p {
	case 0:
		return constNode(1)
	case 1:
		return n
	case -1:
		return Inverse(n)
	case 0.5:
		return Sqrt(n)
	case 2:
		return Sq(n)
	}
	return newNode(KPow, []*Node{n}, p)
}

// tryFoldUnary folds a unary node to a constant when its child is constant
// and the operation is defined there (ok==true); otherwise it builds a
// regular node and defers any domain check to Value().
func tryFoldUnary(kind Kind, n *Node, f func(float64) (float64, bool)) *Node {
	if n.kind == KConst {
		if v, ok := f(n.constVal); ok {
			return constNode(v)
		}
	}
	return newNode(kind, []*Node{n}, 0)
}

// Sq builds f².
func Sq(a Arg) *Node {
	n := lift(a)
	return tryFoldUnary(KSq, n, func(x float64) (float64, bool) { return x * x, true })
}

// Sqrt builds √f.
func Sqrt(a Arg) *Node {
	n := lift(a)
	return tryFoldUnary(KSqrt, n, func(x float64) (float64, bool) {
		if x < 0 {
			return 0, false
		}
		return math.Sqrt(x), true
	})
}

// Inverse builds 1/f. Inverse(Inverse(x)) collapses to x.
func Inverse(a Arg) *Node {
	n := lift(a)
	if n.kind == KInverse {
		return n.children[0]
	}
	return tryFoldUnary(KInverse, n, func(x float64) (float64, bool) {
		if x == 0 {
			return 0, false
		}
		return 1 / x, true
	})
}

// Acos builds arccos(f).
func Acos(a Arg) *Node {
	n := lift(a)
	return tryFoldUnary(KAcos, n, func(x float64) (float64, bool) {
		if x < -1 || x > 1 {
			return 0, false
		}
		return math.Acos(x), true
	})
}

// DotProduct builds ax*bx + ay*by, the dot product of vectors (ax,ay) and
// (bx,by).
func DotProduct(ax, ay, bx, by Arg) *Node {
	return Add(Mul(ax, bx), Mul(ay, by))
}
