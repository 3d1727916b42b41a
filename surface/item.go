// Copyright (c) 2024 mStar
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package surface

// Item is the compositor's record of one client drawable. The identity is
// owned by the transport and only ever used as a lookup key.
type Item[K comparable] struct {
	identity K
	handle   Handle

	shell   Shell
	layer   Layer
	primary bool
	cursor  bool
}

func (item *Item[K]) Identity() K {
	return item.identity
}

// Handle returns the arena slot of the item. Handles of destroyed items
// never resolve again.
func (item *Item[K]) Handle() Handle {
	return item.handle
}

func (item *Item[K]) Shell() Shell {
	return item.shell
}

// SetShell binds a shell extension, replacing any previous binding.
func (item *Item[K]) SetShell(shell Shell) {
	item.shell = shell
}

// Layer returns the layer the item was classified into, LayerNone if it
// never was.
func (item *Item[K]) Layer() Layer {
	return item.layer
}

// IsPrimary is only meaningful to the renderer.
func (item *Item[K]) IsPrimary() bool {
	return item.primary
}

func (item *Item[K]) SetPrimary(primary bool) {
	item.primary = primary
}

func (item *Item[K]) IsCursor() bool {
	return item.cursor
}

func (item *Item[K]) SetCursor(cursor bool) {
	item.cursor = cursor
}
