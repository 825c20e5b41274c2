// Copyright 2024 The Gcs2d Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build ignore

// gensvg loads a scene definition, solves it, and writes the result as an
// SVG file. Grounded on gofem's tools/GenVtu.go: flag-based CLI arguments,
// io.Pf progress reporting, and a deferred chk.Panic/recover boundary at
// main instead of threading error returns through a one-shot command.
package main

import (
	"flag"
	"os"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"

	"github.com/cpmech/gcs2d/config"
	"github.com/cpmech/gcs2d/svg"
)

func main() {
	defer func() {
		if err := recover(); err != nil {
			io.Pf("gensvg: FAILED: %v\n", err)
			os.Exit(1)
		}
	}()

	scenefn := "scene.json"
	outfn := "scene.svg"
	maxIter := 50
	bestEffort := false
	scale := 10.0

	flag.Parse()
	if len(flag.Args()) > 0 {
		scenefn = flag.Arg(0)
	}
	if len(flag.Args()) > 1 {
		outfn = flag.Arg(1)
	}

	io.Pf("\nInput data\n")
	io.Pf("==========\n")
	io.Pf("  scenefn = %30s // scene definition filename\n", scenefn)
	io.Pf("  outfn   = %30s // SVG output filename\n", outfn)
	io.Pf("\n")

	data, err := config.Load(scenefn)
	if err != nil {
		chk.Panic("%v", err)
	}

	graph, err := config.Build(data)
	if err != nil {
		chk.Panic("%v", err)
	}

	result, err := graph.Solver.Solve(maxIter, bestEffort)
	if err != nil {
		chk.Panic("%v", err)
	}
	io.Pf("solved: converged=%v iterations=%d residual=%g\n",
		result.Converged, result.Iterations, result.ResidualNorm)

	scene := &svg.Scene{Scale: scale}
	for _, p := range graph.Points {
		scene.Points = append(scene.Points, p)
	}
	for _, l := range graph.Lines {
		scene.Segments = append(scene.Segments, l)
	}

	if err := os.WriteFile(outfn, []byte(svg.Export(scene)), 0644); err != nil {
		chk.Panic("%v", err)
	}
	io.Pf("wrote %s\n", outfn)
}
