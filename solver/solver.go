// Copyright 2024 The Gcs2d Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package solver assembles the constraint graph built from cnstr and geom
// into a single optimization problem — minimize distance from the initial
// configuration subject to every live constraint's residual being zero —
// and drives it to a solution via sequential quadratic programming. Its
// bookkeeping (VarIndex, per-kind cnstr.Block storage) follows the same
// amortized-removal discipline gofem uses for its element/equation
// numbering, adapted from FEM degrees of freedom to sketch coordinates.
package solver

import (
	"github.com/cpmech/gcs2d/cnstr"
)

// autoSolveMaxIter bounds the Newton iterations of the synchronous solve
// AddConstraint/RemoveConstraint trigger while AutoSolve is on.
const autoSolveMaxIter = 50

// Solver owns the live constraint set and the variable index it implies.
// Debug, when true, runs VarIndex's self-check assertion after every
// mutation, mirroring msolid.Driver.CheckD/VerD's guarded invariant check.
//
// AutoSolve, when true (the default), runs Solve synchronously at the end
// of AddConstraint and RemoveConstraint. That solve is best-effort (see
// autoSolve), so the geometry is written back even when it does not satisfy
// every live constraint. Callers doing a
// batch of edits should set it to false first and call Solve once at the
// end, then restore it.
type Solver struct {
	varIndex  *VarIndex
	blocks    map[cnstr.Kind]*cnstr.Block
	Debug     bool
	AutoSolve bool
}

var allKinds = []cnstr.Kind{
	cnstr.KindVariableFixed,
	cnstr.KindVariablesEqual,
	cnstr.KindLength,
	cnstr.KindAngle,
	cnstr.KindPerpendicular,
}

// New returns an empty solver with one block pre-allocated per constraint
// kind.
func New() *Solver {
	blocks := make(map[cnstr.Kind]*cnstr.Block, len(allKinds))
	for _, k := range allKinds {
		blocks[k] = cnstr.NewBlock(k)
	}
	return &Solver{varIndex: NewVarIndex(), blocks: blocks, AutoSolve: true}
}

// VariableCount returns the number of distinct variables referenced by at
// least one live constraint.
func (s *Solver) VariableCount() int {
	return s.varIndex.Len()
}

// ConstraintCount returns the total number of live constraints across all
// kinds.
func (s *Solver) ConstraintCount() int {
	n := 0
	for _, b := range s.blocks {
		n += b.Len()
	}
	return n
}

// AddConstraint registers c with the solver, retaining every variable it
// references in the variable index. It fails with *AlreadyRegisteredError
// if c is already tracked.
func (s *Solver) AddConstraint(c cnstr.Constraint) error {
	block := s.blocks[c.Kind()]
	if _, ok := block.SlotOf(c); ok {
		return &AlreadyRegisteredError{Msg: c.Kind().String() + " constraint already added"}
	}
	block.Append(c)
	for _, v := range c.VarRefs() {
		s.varIndex.Retain(v)
	}
	if s.Debug {
		s.varIndex.selfCheck()
	}
	return s.autoSolve()
}

// RemoveConstraint unregisters c, releasing every variable it referenced;
// any variable no longer referenced by any other live constraint drops out
// of the variable index. It fails with *NotRegisteredError if c is not
// currently tracked.
func (s *Solver) RemoveConstraint(c cnstr.Constraint) error {
	block := s.blocks[c.Kind()]
	slot, ok := block.SlotOf(c)
	if !ok {
		return &NotRegisteredError{Msg: c.Kind().String() + " constraint not found"}
	}
	removed, _ := block.FastPop(slot)
	for _, v := range removed.VarRefs() {
		s.varIndex.Release(v)
	}
	if s.Debug {
		s.varIndex.selfCheck()
	}
	return s.autoSolve()
}

// autoSolve runs a best-effort solve when AutoSolve is enabled. It is
// best-effort (rather than plain Solve) because auto-solve fires on every
// edit, including the intermediate states of a multi-constraint construction
// that isn't satisfiable yet on its own; a bare non-convergence there
// shouldn't surface as an error from AddConstraint/RemoveConstraint, only a
// genuine evaluation failure (e.g. a degenerate constraint) should.
func (s *Solver) autoSolve() error {
	if !s.AutoSolve {
		return nil
	}
	_, err := s.Solve(autoSolveMaxIter, true)
	return err
}

func (s *Solver) allConstraints() []cnstr.Constraint {
	out := make([]cnstr.Constraint, 0, s.ConstraintCount())
	for _, k := range allKinds {
		out = append(out, s.blocks[k].All()...)
	}
	return out
}
