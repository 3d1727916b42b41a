// Copyright (c) 2024 mStar
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package compositor

import "github.com/ikeydoherty/budgie-rd/surface"

// Scene is a retained scene graph holding a node per surface.
type Scene[K comparable] interface {
	// SetVisible enables or disables the node of item
	SetVisible(item *surface.Item[K], visible bool)
	// RaiseToTop puts the node of item in front of all others
	RaiseToTop(item *surface.Item[K])
}

// Restack makes scene match what scope draws. Registered surfaces that are
// not drawn get hidden, the drawn ones are shown and raised back to front
// so the last drawable ends up on top. It returns the number of visible
// surfaces.
func (c *Controller[K]) Restack(scope Window[K], scene Scene[K]) int {
	drawn := make(map[surface.Handle]bool)
	for item := range c.Renderables(scope) {
		drawn[item.Handle()] = true
	}
	for item := range c.registry.All() {
		if !drawn[item.Handle()] {
			scene.SetVisible(item, false)
		}
	}
	for item := range c.Renderables(scope) {
		scene.SetVisible(item, true)
		scene.RaiseToTop(item)
	}
	return len(drawn)
}
