// Copyright (c) 2024 mStar
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package compositor

import "github.com/ikeydoherty/budgie-rd/surface"

// Window is the rendering side of the compositor. It turns items into
// on-screen views and schedules frames.
type Window[K comparable] interface {
	// MapSurface creates a view for item. first is true if this is the
	// first view the item has.
	MapSurface(item *surface.Item[K]) (first bool, err error)
	// UnmapSurface drops every view of item
	UnmapSurface(item *surface.Item[K])
	// Shows reports whether item has a view in this window
	Shows(item *surface.Item[K]) bool
	// ScheduleDraw asks for a new frame. It must not block.
	ScheduleDraw()
}
