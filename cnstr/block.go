// Copyright 2024 The Gcs2d Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cnstr

import (
	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/gcs2d/dynarray"
	"github.com/cpmech/gcs2d/geom"
)

// Block packs every live constraint of one Kind into a single dynamic
// array, mirroring the per-kind storage of BookmarkSciencePrrojects-gofem's
// element/model registries: instead of one interface slice holding every
// constraint kind interleaved, each kind gets its own densely packed block,
// which keeps FastPop a same-kind swap-with-last instead of a search across
// mixed kinds.
type Block struct {
	kind        Kind
	constraints *dynarray.DynArray[Constraint]
	slots       map[Constraint]int
}

// NewBlock returns an empty Block for kind.
func NewBlock(kind Kind) *Block {
	return &Block{kind: kind, constraints: dynarray.New[Constraint](), slots: map[Constraint]int{}}
}

// SlotOf returns c's current slot in the block, and whether c is present at
// all. A constraint's slot can move (via FastPop on some other constraint),
// so callers must look this up fresh rather than cache it.
func (b *Block) SlotOf(c Constraint) (int, bool) {
	i, ok := b.slots[c]
	return i, ok
}

// Kind returns the kind every constraint in this block shares.
func (b *Block) Kind() Kind {
	return b.kind
}

// Len returns the number of live constraints in the block.
func (b *Block) Len() int {
	return b.constraints.Len()
}

// At returns the constraint at slot i.
func (b *Block) At(i int) Constraint {
	return b.constraints.At(i)
}

// All returns every live constraint in the block, in slot order. The
// returned slice aliases the block's storage and must not be retained
// across a mutating call.
func (b *Block) All() []Constraint {
	return b.constraints.Slice()
}

// Append adds c to the block, panicking if c's kind does not match the
// block's (a caller bug, not a recoverable condition). It returns c's slot.
func (b *Block) Append(c Constraint) int {
	if c.Kind() != b.kind {
		chk.Panic("cnstr: block kind mismatch: block holds %v, got %v", b.kind, c.Kind())
	}
	slot := b.constraints.Append(c)
	b.slots[c] = slot
	return slot
}

// FastPop removes the constraint at slot i in O(1) by swapping the last
// slot into i and popping, the same swap-with-last-then-repair scheme the
// solver's variable index uses. movedFrom is the slot the moved constraint
// used to occupy, or -1 if i was already last slot (nothing moved); the
// solver uses it to repair any slot-keyed bookkeeping it holds on the
// constraint that got relocated.
func (b *Block) FastPop(i int) (removed Constraint, movedFrom int) {
	removed, movedFrom = b.constraints.SwapRemove(i)
	delete(b.slots, removed)
	if movedFrom >= 0 {
		b.slots[b.constraints.At(i)] = i
	}
	return removed, movedFrom
}

// Residuals evaluates every constraint in the block against overrides (nil
// reads live geom.Variable state), returning one residual per slot in slot
// order. It fails on the first error encountered.
func (b *Block) Residuals(overrides map[*geom.Variable]float64) ([]float64, error) {
	out := make([]float64, b.constraints.Len())
	for i, c := range b.constraints.Slice() {
		r, err := c.Residual(overrides)
		if err != nil {
			return nil, err
		}
		out[i] = r
	}
	return out, nil
}
