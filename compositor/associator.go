// Copyright (c) 2024 mStar
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package compositor

import (
	"fmt"

	"github.com/ikeydoherty/budgie-rd/surface"
	"github.com/sirupsen/logrus"
)

// ShellAssociator binds shell extension objects to registered surfaces.
type ShellAssociator[K comparable] struct {
	registry *surface.Registry[K]
	layers   *surface.LayerIndex[K]
	redraw   func()
}

func NewShellAssociator[K comparable](registry *surface.Registry[K], layers *surface.LayerIndex[K], redraw func()) *ShellAssociator[K] {
	if redraw == nil {
		redraw = func() {}
	}
	return &ShellAssociator[K]{
		registry: registry,
		layers:   layers,
		redraw:   redraw,
	}
}

func (a *ShellAssociator[K]) lookup(native K, kind surface.ShellKind) (*surface.Item[K], error) {
	item, ok := a.registry.Lookup(native)
	if !ok {
		logrus.WithFields(logrus.Fields{
			"surface": native,
			"shell":   kind,
		}).Warnln("Cannot bind shell to unknown surface")
		return nil, fmt.Errorf("bind %s shell to %v: %w", kind, native, ErrUnknownSurface)
	}
	return item, nil
}

// BindLegacyShell binds ext to the surface and puts the surface into the
// application layer. Legacy shell windows are always plain application
// windows.
func (a *ShellAssociator[K]) BindLegacyShell(native K, ext any) error {
	item, err := a.lookup(native, surface.ShellLegacy)
	if err != nil {
		return err
	}
	item.SetShell(surface.LegacyShell(ext))
	a.layers.Assign(item, surface.LayerApplication)
	logrus.WithFields(logrus.Fields{
		"surface": native,
		"layer":   item.Layer(),
	}).Debugln("New legacy shell surface")

	a.redraw()
	return nil
}

// BindExtensionShell binds ext to the surface. The surface is left
// without a layer; classifying extension shell windows is a policy
// decision that is not made here.
func (a *ShellAssociator[K]) BindExtensionShell(native K, ext any) error {
	item, err := a.lookup(native, surface.ShellExtension)
	if err != nil {
		return err
	}
	item.SetShell(surface.ExtensionShell(ext))
	logrus.WithField("surface", native).Debugln("New extension shell surface")
	return nil
}
