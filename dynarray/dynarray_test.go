// Copyright 2024 The Gcs2d Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dynarray

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

func TestAppendAndGrowth(tst *testing.T) {
	chk.PrintTitle("AppendAndGrowth")
	d := New[int]()
	chk.IntAssert(d.Cap(), MinReserve)
	for i := 0; i < MinReserve; i++ {
		d.Append(i)
	}
	chk.IntAssert(d.Len(), MinReserve)
	chk.IntAssert(d.Cap(), MinReserve)
	d.Append(MinReserve)
	if d.Cap() <= MinReserve {
		tst.Fatalf("expected capacity growth past %d, got %d", MinReserve, d.Cap())
	}
}

func TestSwapRemoveReportsMovedIndex(tst *testing.T) {
	chk.PrintTitle("SwapRemoveReportsMovedIndex")
	d := New[string]()
	d.Append("a")
	d.Append("b")
	d.Append("c")

	removed, movedFrom := d.SwapRemove(0)
	chk.IntAssert(len(removed), len("a"))
	chk.IntAssert(movedFrom, 2)
	chk.IntAssert(d.Len(), 2)
	if d.At(0) != "c" {
		tst.Fatalf("expected last element swapped into freed slot, got %s", d.At(0))
	}

	_, movedFrom = d.SwapRemove(d.Len() - 1)
	chk.IntAssert(movedFrom, -1)
}

func TestPopNRemovesInOldestFirstOrder(tst *testing.T) {
	chk.PrintTitle("PopNRemovesInOldestFirstOrder")
	d := New[int]()
	for i := 0; i < 5; i++ {
		d.Append(i)
	}
	popped := d.PopN(3)
	chk.IntAssert(len(popped), 3)
	for i, v := range popped {
		chk.IntAssert(v, i+2)
	}
	chk.IntAssert(d.Len(), 2)
}

func TestReserveGrowsCapacityWithoutChangingLen(tst *testing.T) {
	chk.PrintTitle("ReserveGrowsCapacityWithoutChangingLen")
	d := New[int]()
	d.Append(1)
	d.Reserve(64)
	chk.IntAssert(d.Len(), 1)
	if d.Cap() < 64 {
		tst.Fatalf("expected capacity >= 64, got %d", d.Cap())
	}
}

func TestShrinkNeverDropsBelowMinReserve(tst *testing.T) {
	chk.PrintTitle("ShrinkNeverDropsBelowMinReserve")
	d := New[int]()
	for i := 0; i < 40; i++ {
		d.Append(i)
	}
	for d.Len() > 0 {
		d.Pop()
	}
	if d.Cap() < MinReserve {
		tst.Fatalf("capacity shrank below MinReserve: %d", d.Cap())
	}
}
