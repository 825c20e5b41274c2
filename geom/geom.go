// Copyright 2024 The Gcs2d Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package geom implements the geometric primitive records: Variable, Point,
// LineSegment and Polyline. These are pure data; all solving happens in the
// cnstr and solver packages.
package geom

import "github.com/cpmech/gosl/io"

// Variable is a named, mutable scalar. Identity is by pointer, not value;
// two variables with the same name and value are still distinct degrees of
// freedom.
type Variable struct {
	Name  string
	Value float64
}

// NewVariable allocates a new named variable with an initial value.
func NewVariable(name string, value float64) *Variable {
	return &Variable{Name: name, Value: value}
}

// String implements fmt.Stringer.
func (v *Variable) String() string {
	return io.Sf("%s=%g", v.Name, v.Value)
}

// Point is a pair of coordinate variables.
type Point struct {
	Name string
	X, Y *Variable
}

// NewPoint allocates a point with two fresh variables named "<name>.x" and
// "<name>.y".
func NewPoint(name string, x, y float64) *Point {
	return &Point{
		Name: name,
		X:    NewVariable(name+".x", x),
		Y:    NewVariable(name+".y", y),
	}
}

// Variables returns the point's two coordinate variables, in (x, y) order.
func (p *Point) Variables() []*Variable {
	return []*Variable{p.X, p.Y}
}

// String implements fmt.Stringer.
func (p *Point) String() string {
	return io.Sf("%s(%g, %g)", p.Name, p.X.Value, p.Y.Value)
}

// LineSegment connects two points.
type LineSegment struct {
	Name string
	A, B *Point
}

// NewLineSegment allocates a segment between two existing points.
func NewLineSegment(name string, a, b *Point) *LineSegment {
	return &LineSegment{Name: name, A: a, B: b}
}

// Variables returns the four coordinate variables of the segment's two
// endpoints, in (ax, ay, bx, by) order.
func (l *LineSegment) Variables() []*Variable {
	return []*Variable{l.A.X, l.A.Y, l.B.X, l.B.Y}
}

// Dx returns the current (numeric) x-extent of the segment.
func (l *LineSegment) Dx() float64 { return l.B.X.Value - l.A.X.Value }

// Dy returns the current (numeric) y-extent of the segment.
func (l *LineSegment) Dy() float64 { return l.B.Y.Value - l.A.Y.Value }

// Polyline is a closed ring of points and the segments connecting them; the
// last point is connected back to the first.
type Polyline struct {
	Name     string
	Points   []*Point
	Segments []*LineSegment
}

// NewPolyline builds a closed polyline from a list of (x, y) coordinate
// pairs. The ring is closed automatically: a segment is added from the last
// point back to the first.
func NewPolyline(name string, coords [][2]float64) *Polyline {
	p := &Polyline{Name: name}
	p.Points = make([]*Point, len(coords))
	for i, c := range coords {
		p.Points[i] = NewPoint(io.Sf("%s[%d]", name, i), c[0], c[1])
	}
	for i := 0; i < len(p.Points)-1; i++ {
		p.Segments = append(p.Segments, NewLineSegment(io.Sf("%s.seg%d", name, i), p.Points[i], p.Points[i+1]))
	}
	if len(p.Points) > 1 {
		p.Segments = append(p.Segments, NewLineSegment(
			io.Sf("%s.seg%d", name, len(p.Points)-1), p.Points[len(p.Points)-1], p.Points[0]))
	}
	return p
}

// Variables returns every coordinate variable of every point on the ring,
// in point order.
func (p *Polyline) Variables() []*Variable {
	vars := make([]*Variable, 0, 2*len(p.Points))
	for _, pt := range p.Points {
		vars = append(vars, pt.Variables()...)
	}
	return vars
}
