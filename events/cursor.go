// Copyright (c) 2024 mStar
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package events

// CursorImage follows the surface clients use as cursor image. A surface
// is registered while it is the image and forgotten when it is replaced
// or destroyed, whichever comes first.
type CursorImage[K comparable] struct {
	current K
	active  bool
}

// Set makes identity the cursor image, or clears the image if none is
// set. It returns the notifications the change causes. added reports that
// identity just started being tracked, the caller has to report its
// destruction through Destroyed from then on.
func (c *CursorImage[K]) Set(identity K, none bool) (ns []Notification[K], added bool) {
	if c.active && (none || c.current != identity) {
		ns = append(ns, c.forget())
	}
	if none || c.active {
		return ns, false
	}
	c.current, c.active = identity, true
	return append(ns, SurfaceCreated[K]{Identity: identity, Cursor: true}), true
}

// Destroyed reports that the surface identity is gone. Nothing happens
// unless it is the current image.
func (c *CursorImage[K]) Destroyed(identity K) []Notification[K] {
	if !c.active || c.current != identity {
		return nil
	}
	return []Notification[K]{c.forget()}
}

// Current returns the surface used as cursor image right now.
func (c *CursorImage[K]) Current() (K, bool) {
	return c.current, c.active
}

func (c *CursorImage[K]) forget() Notification[K] {
	n := SurfaceDestroyed[K]{Identity: c.current}
	var zero K
	c.current, c.active = zero, false
	return n
}
