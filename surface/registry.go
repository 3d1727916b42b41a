// Copyright (c) 2024 mStar
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package surface

import (
	"errors"
	"fmt"
	"iter"
	"slices"
)

var ErrDuplicateSurface = errors.New("surface already registered")

// Registry maps native surface identities to their items. It is the only
// authority on whether a surface still exists.
type Registry[K comparable] struct {
	arena    Arena[K]
	byID     map[K]Handle
	sequence []K // Registration order, for stable iteration
}

func NewRegistry[K comparable]() *Registry[K] {
	return &Registry[K]{
		byID: make(map[K]Handle),
	}
}

// Register creates a new item for identity. Registering an identity that
// is still live fails with ErrDuplicateSurface.
func (r *Registry[K]) Register(identity K) (*Item[K], error) {
	if _, ok := r.byID[identity]; ok {
		return nil, fmt.Errorf("register %v: %w", identity, ErrDuplicateSurface)
	}
	item := r.arena.alloc(identity)
	r.byID[identity] = item.handle
	r.sequence = append(r.sequence, identity)
	return item, nil
}

func (r *Registry[K]) Lookup(identity K) (*Item[K], bool) {
	h, ok := r.byID[identity]
	if !ok {
		return nil, false
	}
	return r.arena.Resolve(h)
}

// Resolve returns the item for a handle previously handed out by this
// registry, if that item is still alive.
func (r *Registry[K]) Resolve(h Handle) (*Item[K], bool) {
	return r.arena.Resolve(h)
}

// Remove destroys the item for identity and reports whether there was
// one. The caller must already have taken the item out of any layer.
func (r *Registry[K]) Remove(identity K) bool {
	h, ok := r.byID[identity]
	if !ok {
		return false
	}
	delete(r.byID, identity)
	if i := slices.Index(r.sequence, identity); i >= 0 {
		r.sequence = slices.Delete(r.sequence, i, i+1)
	}
	return r.arena.release(h)
}

func (r *Registry[K]) Len() int {
	return r.arena.Len()
}

// All yields the live items in registration order.
func (r *Registry[K]) All() iter.Seq[*Item[K]] {
	return func(yield func(*Item[K]) bool) {
		for _, id := range slices.Clone(r.sequence) {
			item, ok := r.Lookup(id)
			if !ok {
				continue
			}
			if !yield(item) {
				return
			}
		}
	}
}
