// Copyright (c) 2024 mStar
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package surface

import (
	"fmt"
	"strings"
)

// Layer is a coarse stacking category. Layers are drawn back to front
// in ascending order.
type Layer int

const (
	LayerNone = Layer(iota - 1)
	LayerBackground
	LayerBottom
	LayerApplication
	LayerTop
	LayerOverlay
	LayerCursor

	// Number of real layers, LayerNone not included
	numLayers = int(LayerCursor) + 1
)

var layerNames = [...]string{
	"background",
	"bottom",
	"application",
	"top",
	"overlay",
	"cursor",
}

func (l Layer) String() string {
	if !l.Valid() {
		if l == LayerNone {
			return "none"
		}
		return fmt.Sprintf("Layer(%d)", int(l))
	}
	return layerNames[l]
}

// Valid reports whether l names one of the real layers.
func (l Layer) Valid() bool {
	return l >= LayerBackground && l <= LayerCursor
}

// ParseLayer returns the layer with the given name, as printed by String.
func ParseLayer(name string) (Layer, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "none" || name == "" {
		return LayerNone, nil
	}
	for l, n := range layerNames {
		if n == name {
			return Layer(l), nil
		}
	}
	return LayerNone, fmt.Errorf("unknown layer %q", name)
}
