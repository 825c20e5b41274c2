// Copyright 2024 The Gcs2d Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solver

import (
	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/gcs2d/dynarray"
	"github.com/cpmech/gcs2d/geom"
)

// VarIndex is an ordered, bijective variable-to-column index: every
// variable referenced by at least one live constraint occupies exactly one
// column of the solver's coordinate vector, and the index tracks how many
// constraints currently reference it so a variable drops out the moment
// nothing constrains it anymore. This is the Go counterpart of the Python
// IndexedDict this solver's reference design builds its variable bookkeeping
// on: an order-preserving dict/list pair supporting O(1) amortized removal
// by swapping the removed slot's occupant with the last one instead of
// shifting everything after it down.
type VarIndex struct {
	vars     *dynarray.DynArray[*geom.Variable]
	index    map[*geom.Variable]int
	refcount map[*geom.Variable]int
}

// NewVarIndex returns an empty index.
func NewVarIndex() *VarIndex {
	return &VarIndex{
		vars:     dynarray.New[*geom.Variable](),
		index:    map[*geom.Variable]int{},
		refcount: map[*geom.Variable]int{},
	}
}

// Len returns the number of distinct variables currently indexed.
func (vi *VarIndex) Len() int {
	return vi.vars.Len()
}

// IndexOf returns v's current column and whether v is indexed at all. The
// column can change whenever some other variable is removed via Release,
// so callers must look this up fresh each time they assemble a Jacobian,
// never cache it across mutations.
func (vi *VarIndex) IndexOf(v *geom.Variable) (int, bool) {
	i, ok := vi.index[v]
	return i, ok
}

// At returns the variable occupying column i.
func (vi *VarIndex) At(i int) *geom.Variable {
	return vi.vars.At(i)
}

// Variables returns every indexed variable in column order. The returned
// slice aliases internal storage and must not be retained across a
// mutating call.
func (vi *VarIndex) Variables() []*geom.Variable {
	return vi.vars.Slice()
}

// Retain records one more constraint referencing v, inserting v into the
// index (at the next free column) the first time it's seen.
func (vi *VarIndex) Retain(v *geom.Variable) {
	vi.refcount[v]++
	if _, ok := vi.index[v]; !ok {
		idx := vi.vars.Append(v)
		vi.index[v] = idx
	}
}

// Release records that one fewer constraint references v. Once v's
// refcount reaches zero it is fast-popped out of the index: swapped with
// whatever variable currently occupies the last column, then popped, in
// O(1). The index map is repaired in the same step, so IndexOf immediately
// reflects the swapped-in variable's new column; there is nothing left for
// a caller to repair afterwards. Release reports whether v was actually
// removed from the index (false if other constraints still reference it).
func (vi *VarIndex) Release(v *geom.Variable) bool {
	n, ok := vi.refcount[v]
	if !ok {
		chk.Panic("solver: Release called on variable %s with no outstanding references", v.Name)
	}
	n--
	if n > 0 {
		vi.refcount[v] = n
		return false
	}
	delete(vi.refcount, v)

	i, ok := vi.index[v]
	if !ok {
		chk.Panic("solver: variable %s missing from index despite a tracked refcount", v.Name)
	}
	_, movedFrom := vi.vars.SwapRemove(i)
	delete(vi.index, v)
	if movedFrom >= 0 {
		moved := vi.vars.At(i)
		vi.index[moved] = i
	}
	return true
}

// selfCheck verifies the index/slice bijection: every indexed variable's
// stored column must point back to the slot that actually holds it, and
// the two containers must agree on size. Mirrors
// msolid.Driver.CheckD/VerD's guarded post-mutation assertion.
func (vi *VarIndex) selfCheck() {
	if len(vi.index) != vi.vars.Len() {
		chk.Panic("solver: VarIndex size mismatch: %d indexed, %d stored", len(vi.index), vi.vars.Len())
	}
	for v, i := range vi.index {
		if vi.vars.At(i) != v {
			chk.Panic("solver: VarIndex column %d does not hold the variable it claims to", i)
		}
	}
}
