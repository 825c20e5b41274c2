// Copyright 2024 The Gcs2d Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config loads a JSON scene definition — named points, line
// segments, polylines and the constraints over them — and builds the
// corresponding geom/cnstr/solver graph. It follows gofem's inp.Data
// convention: JSON-tagged input structs decoded with the standard library's
// encoding/json (gofem itself reaches for stdlib json here, not a
// third-party library, for exactly this kind of simulation input), with a
// small named-lookup factory (here, by point/line/variable name) resolving
// cross-references the way inp.Data resolves function/model names.
package config

import (
	"encoding/json"
	"os"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"

	"github.com/cpmech/gcs2d/cnstr"
	"github.com/cpmech/gcs2d/geom"
	"github.com/cpmech/gcs2d/solver"
)

// PointData is one named point's initial coordinates.
type PointData struct {
	Name string  `json:"name"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}

// LineData connects two previously defined points by name.
type LineData struct {
	Name string `json:"name"`
	A    string `json:"a"`
	B    string `json:"b"`
}

// PolylineData is a named closed ring of coordinates; see geom.NewPolyline.
type PolylineData struct {
	Name   string       `json:"name"`
	Coords [][2]float64 `json:"coords"`
}

// ConstraintData is one constraint entry. Kind selects which of the other
// fields apply:
//
//	"variable-fixed"   Var, Target, Tol
//	"variables-equal"  VarA, VarB, Tol
//	"length"           Line, Length, Tol
//	"angle"            Line, Angle, Tol
//	"perpendicular"    LineA, LineB, Tol
//	"vertical"         Line, Tol
//	"horizontal"       Line, Tol
//
// Var/VarA/VarB reference a variable by "<point>.x" or "<point>.y".
type ConstraintData struct {
	Kind   string  `json:"kind"`
	Var    string  `json:"var,omitempty"`
	VarA   string  `json:"varA,omitempty"`
	VarB   string  `json:"varB,omitempty"`
	Line   string  `json:"line,omitempty"`
	LineA  string  `json:"lineA,omitempty"`
	LineB  string  `json:"lineB,omitempty"`
	Target float64 `json:"target,omitempty"`
	Length float64 `json:"length,omitempty"`
	Angle  float64 `json:"angle,omitempty"`
	Tol    float64 `json:"tol,omitempty"`
}

// SceneData is the top-level JSON document shape.
type SceneData struct {
	Points      []PointData      `json:"points"`
	Lines       []LineData       `json:"lines"`
	Polylines   []PolylineData   `json:"polylines"`
	Constraints []ConstraintData `json:"constraints"`
}

// Load reads and decodes a scene definition from path.
func Load(path string) (*SceneData, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var data SceneData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, chk.Err("config: failed to parse %s: %v", path, err)
	}
	return &data, nil
}

// Graph is the constructed geometry and solver for a loaded scene, keyed
// by name for downstream lookups (e.g. tools/gensvg.go resolving which
// points/lines to render).
type Graph struct {
	Points    map[string]*geom.Point
	Lines     map[string]*geom.LineSegment
	Polylines map[string]*geom.Polyline
	Solver    *solver.Solver
}

// Build constructs the geometry graph and solver described by data. Every
// constraint kind resolves its variable/line references against the
// points and lines built from data.Points/data.Lines/data.Polylines; an
// unresolvable name reports an error.
func Build(data *SceneData) (*Graph, error) {
	g := &Graph{
		Points:    map[string]*geom.Point{},
		Lines:     map[string]*geom.LineSegment{},
		Polylines: map[string]*geom.Polyline{},
		Solver:    solver.New(),
	}

	for _, pd := range data.Points {
		g.Points[pd.Name] = geom.NewPoint(pd.Name, pd.X, pd.Y)
	}
	for _, ld := range data.Lines {
		a, ok := g.Points[ld.A]
		if !ok {
			return nil, chk.Err("config: line %q references unknown point %q", ld.Name, ld.A)
		}
		b, ok := g.Points[ld.B]
		if !ok {
			return nil, chk.Err("config: line %q references unknown point %q", ld.Name, ld.B)
		}
		g.Lines[ld.Name] = geom.NewLineSegment(ld.Name, a, b)
	}
	for _, pld := range data.Polylines {
		poly := geom.NewPolyline(pld.Name, pld.Coords)
		g.Polylines[pld.Name] = poly
		for i, p := range poly.Points {
			g.Points[io.Sf("%s[%d]", pld.Name, i)] = p
		}
		for i, l := range poly.Segments {
			g.Lines[io.Sf("%s.seg%d", pld.Name, i)] = l
		}
	}

	for _, cd := range data.Constraints {
		c, err := buildConstraint(g, cd)
		if err != nil {
			return nil, err
		}
		if err := g.Solver.AddConstraint(c); err != nil {
			return nil, err
		}
	}

	return g, nil
}

func (g *Graph) variable(name string) (*geom.Variable, error) {
	if len(name) < 2 {
		return nil, chk.Err("config: invalid variable reference %q", name)
	}
	pointName, axis := name[:len(name)-2], name[len(name)-1]
	p, ok := g.Points[pointName]
	if !ok {
		return nil, chk.Err("config: variable reference %q names unknown point %q", name, pointName)
	}
	switch axis {
	case 'x':
		return p.X, nil
	case 'y':
		return p.Y, nil
	default:
		return nil, chk.Err("config: variable reference %q must end in .x or .y", name)
	}
}

func buildConstraint(g *Graph, cd ConstraintData) (cnstr.Constraint, error) {
	switch cd.Kind {
	case "variable-fixed":
		v, err := g.variable(cd.Var)
		if err != nil {
			return nil, err
		}
		return cnstr.NewVariableFixed(v, cd.Target, cd.Tol), nil

	case "variables-equal":
		a, err := g.variable(cd.VarA)
		if err != nil {
			return nil, err
		}
		b, err := g.variable(cd.VarB)
		if err != nil {
			return nil, err
		}
		return cnstr.NewVariablesEqual(a, b, cd.Tol), nil

	case "length":
		line, ok := g.Lines[cd.Line]
		if !ok {
			return nil, chk.Err("config: length constraint references unknown line %q", cd.Line)
		}
		return cnstr.NewLength(line, cd.Length, cd.Tol), nil

	case "angle":
		line, ok := g.Lines[cd.Line]
		if !ok {
			return nil, chk.Err("config: angle constraint references unknown line %q", cd.Line)
		}
		return cnstr.NewAngle(line, cd.Angle, cd.Tol), nil

	case "perpendicular":
		a, ok := g.Lines[cd.LineA]
		if !ok {
			return nil, chk.Err("config: perpendicular constraint references unknown line %q", cd.LineA)
		}
		b, ok := g.Lines[cd.LineB]
		if !ok {
			return nil, chk.Err("config: perpendicular constraint references unknown line %q", cd.LineB)
		}
		return cnstr.NewPerpendicular(a, b, cd.Tol), nil

	case "vertical":
		line, ok := g.Lines[cd.Line]
		if !ok {
			return nil, chk.Err("config: vertical constraint references unknown line %q", cd.Line)
		}
		return cnstr.Vertical(line, cd.Tol), nil

	case "horizontal":
		line, ok := g.Lines[cd.Line]
		if !ok {
			return nil, chk.Err("config: horizontal constraint references unknown line %q", cd.Line)
		}
		return cnstr.Horizontal(line, cd.Tol), nil

	default:
		return nil, chk.Err("config: unknown constraint kind %q", cd.Kind)
	}
}
