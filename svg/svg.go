// Copyright 2024 The Gcs2d Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package svg renders a solved geometry scene to an inline SVG document,
// the way gofem's tools/GenVtu.go assembles a visualization file by
// formatting text into a bytes.Buffer rather than driving a graphics
// library: the document's shape is entirely fixed, so there is no parsing
// or dynamic schema that would call for encoding/xml.
package svg

import (
	"bytes"

	"github.com/cpmech/gosl/io"

	"github.com/cpmech/gcs2d/geom"
)

// Scene is everything svg.Export needs to render: the points and segments
// of a solved (or in-progress) sketch, plus a Scale factor mapping model
// units to pixels.
type Scene struct {
	Points   []*geom.Point
	Segments []*geom.LineSegment
	Scale    float64
}

const controlPointSize = 10

// Export renders scene to an SVG document. Every point is drawn as a
// centered controlPointSize×controlPointSize "cp" rect; every segment as a
// "primitives" line. Coordinates are scaled by scene.Scale (defaulting to 1
// when zero).
func Export(scene *Scene) string {
	scale := scene.Scale
	if scale == 0 {
		scale = 1
	}

	var buf bytes.Buffer
	buf.WriteString(`<svg xmlns="http://www.w3.org/2000/svg">` + "\n")
	buf.WriteString("<style>.primitives{stroke:black}.cp{fill:none;stroke:orange}</style>\n")

	for _, l := range scene.Segments {
		buf.WriteString(io.Sf(
			`<line class="primitives" x1="%g" y1="%g" x2="%g" y2="%g"/>`+"\n",
			l.A.X.Value*scale, l.A.Y.Value*scale, l.B.X.Value*scale, l.B.Y.Value*scale))
	}

	half := controlPointSize / 2.0
	for _, p := range scene.Points {
		x, y := p.X.Value*scale, p.Y.Value*scale
		buf.WriteString(io.Sf(
			`<rect class="cp" x="%g" y="%g" width="%d" height="%d"/>`+"\n",
			x-half, y-half, controlPointSize, controlPointSize))
	}

	buf.WriteString("</svg>\n")
	return buf.String()
}
