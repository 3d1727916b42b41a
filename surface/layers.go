// Copyright (c) 2024 mStar
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package surface

import (
	"iter"
	"slices"
)

// drawOrder is the order in which layers make up the drawable list.
// The cursor layer is composited separately and never part of it.
var drawOrder = [...]Layer{
	LayerBackground,
	LayerBottom,
	LayerApplication,
	LayerTop,
	LayerOverlay,
}

// LayerIndex keeps, per layer, the items assigned to it in the order they
// were assigned. Within a layer the oldest item is the farthest back.
type LayerIndex[K comparable] struct {
	registry *Registry[K]
	buckets  [numLayers][]Handle
}

func NewLayerIndex[K comparable](registry *Registry[K]) *LayerIndex[K] {
	return &LayerIndex[K]{registry: registry}
}

// Assign appends item to layer. An item that already sits in a layer is
// taken out of it first, so assigning is also how an item is raised to
// the front of its layer.
func (idx *LayerIndex[K]) Assign(item *Item[K], layer Layer) {
	idx.Remove(item)
	if !layer.Valid() {
		return
	}
	idx.buckets[layer] = append(idx.buckets[layer], item.handle)
	item.layer = layer
}

// Remove takes item out of whatever layer holds it. Items in no layer
// are ignored.
func (idx *LayerIndex[K]) Remove(item *Item[K]) {
	if item.layer.Valid() {
		if idx.removeFrom(item.layer, item.handle) {
			item.layer = LayerNone
			return
		}
	}

	// The recorded layer was out of date; fall back to a full scan.
	for l := range idx.buckets {
		if idx.removeFrom(Layer(l), item.handle) {
			break
		}
	}
	item.layer = LayerNone
}

func (idx *LayerIndex[K]) removeFrom(layer Layer, h Handle) bool {
	bucket := idx.buckets[layer]
	i := slices.Index(bucket, h)
	if i < 0 {
		return false
	}
	idx.buckets[layer] = slices.Delete(bucket, i, i+1)
	return true
}

// Layer returns the items in one layer, back to front.
func (idx *LayerIndex[K]) Layer(layer Layer) iter.Seq[*Item[K]] {
	return func(yield func(*Item[K]) bool) {
		if !layer.Valid() {
			return
		}
		for _, h := range slices.Clone(idx.buckets[layer]) {
			item, ok := idx.registry.Resolve(h)
			if !ok {
				continue
			}
			if !yield(item) {
				return
			}
		}
	}
}

// OrderedDrawables yields everything to draw, back to front. Cursor
// surfaces are skipped even when they ended up in a regular layer. The
// sequence reads the index each time it is ranged over.
func (idx *LayerIndex[K]) OrderedDrawables() iter.Seq[*Item[K]] {
	return func(yield func(*Item[K]) bool) {
		for _, layer := range drawOrder {
			for item := range idx.Layer(layer) {
				if item.cursor {
					continue
				}
				if !yield(item) {
					return
				}
			}
		}
	}
}

// Len returns the number of items in layer.
func (idx *LayerIndex[K]) Len(layer Layer) int {
	if !layer.Valid() {
		return 0
	}
	return len(idx.buckets[layer])
}
