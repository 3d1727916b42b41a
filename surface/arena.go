// Copyright (c) 2024 mStar
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package surface

import "fmt"

// Handle references an item slot in an Arena. A handle carries the
// generation of the slot at allocation time so a stale handle to a freed
// and reused slot resolves to nothing.
type Handle struct {
	index      uint32
	generation uint32
}

// NilHandle never resolves.
var NilHandle = Handle{}

func (h Handle) String() string {
	return fmt.Sprintf("%d#%d", h.index, h.generation)
}

type slot[K comparable] struct {
	item       *Item[K]
	generation uint32
}

// Arena is the single owner of all live items.
type Arena[K comparable] struct {
	slots []slot[K]
	free  []uint32
	live  int
}

// alloc stores a fresh item and returns it
func (a *Arena[K]) alloc(identity K) *Item[K] {
	var index uint32
	if n := len(a.free); n > 0 {
		index = a.free[n-1]
		a.free = a.free[:n-1]
	} else {
		// Generation 0 is reserved for NilHandle
		a.slots = append(a.slots, slot[K]{generation: 1})
		index = uint32(len(a.slots) - 1)
	}

	s := &a.slots[index]
	s.item = &Item[K]{
		identity: identity,
		handle:   Handle{index: index, generation: s.generation},
		layer:    LayerNone,
	}
	a.live++
	return s.item
}

// Resolve returns the live item for h.
func (a *Arena[K]) Resolve(h Handle) (*Item[K], bool) {
	if int(h.index) >= len(a.slots) {
		return nil, false
	}
	s := a.slots[h.index]
	if s.item == nil || s.generation != h.generation {
		return nil, false
	}
	return s.item, true
}

// release frees the slot of h, invalidating every copy of h.
func (a *Arena[K]) release(h Handle) bool {
	if _, ok := a.Resolve(h); !ok {
		return false
	}
	s := &a.slots[h.index]
	s.item = nil
	s.generation++
	if s.generation == 0 {
		s.generation = 1
	}
	a.free = append(a.free, h.index)
	a.live--
	return true
}

// Len returns the number of live items.
func (a *Arena[K]) Len() int {
	return a.live
}
