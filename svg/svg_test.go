// Copyright 2024 The Gcs2d Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package svg

import (
	"strings"
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/gcs2d/geom"
)

func TestExportContainsOneLinePerSegmentAndOneRectPerPoint(tst *testing.T) {
	chk.PrintTitle("ExportContainsOneLinePerSegmentAndOneRectPerPoint")

	a := geom.NewPoint("a", 0, 0)
	b := geom.NewPoint("b", 10, 0)
	line := geom.NewLineSegment("ab", a, b)

	scene := &Scene{Points: []*geom.Point{a, b}, Segments: []*geom.LineSegment{line}, Scale: 2}
	out := Export(scene)

	if !strings.HasPrefix(out, "<svg") {
		tst.Fatal("document should start with an <svg> tag")
	}
	if strings.Count(out, "<line") != 1 {
		tst.Fatalf("expected exactly one <line>, got:\n%s", out)
	}
	if strings.Count(out, "<rect") != 2 {
		tst.Fatalf("expected exactly two <rect> control points, got:\n%s", out)
	}
	if !strings.Contains(out, `x2="20"`) {
		tst.Fatalf("segment endpoint should be scaled by Scale, got:\n%s", out)
	}
}

func TestExportDefaultsScaleToOne(tst *testing.T) {
	chk.PrintTitle("ExportDefaultsScaleToOne")
	p := geom.NewPoint("p", 3, 4)
	scene := &Scene{Points: []*geom.Point{p}}
	out := Export(scene)
	if !strings.Contains(out, `x="-2"`) {
		tst.Fatalf("expected unscaled x=3-half=-2, got:\n%s", out)
	}
}
