// Copyright (c) 2024 mStar
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package compositor

import (
	"fmt"
	"iter"

	"github.com/ikeydoherty/budgie-rd/common/ipc"
	"github.com/ikeydoherty/budgie-rd/surface"
	"github.com/sirupsen/logrus"
)

// Controller tracks every surface the transport reports and hands the
// renderer the surfaces to draw each frame. It must only be used from a
// single goroutine, the one notifications are delivered on.
type Controller[K comparable] struct {
	registry *surface.Registry[K]
	layers   *surface.LayerIndex[K]
	shells   *ShellAssociator[K]
	window   Window[K]

	extensionLayer surface.Layer
}

type Option[K comparable] func(*Controller[K])

// WithExtensionShellLayer classifies extension shell surfaces into layer
// once they are bound. By default they get no layer.
func WithExtensionShellLayer[K comparable](layer surface.Layer) Option[K] {
	return func(c *Controller[K]) {
		c.extensionLayer = layer
	}
}

func NewController[K comparable](window Window[K], opts ...Option[K]) *Controller[K] {
	c := &Controller[K]{
		registry:       surface.NewRegistry[K](),
		window:         window,
		extensionLayer: surface.LayerNone,
	}
	c.layers = surface.NewLayerIndex(c.registry)
	c.shells = NewShellAssociator(c.registry, c.layers, c.RequestRedraw)
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SurfaceCreated registers a new surface and maps a view for it.
func (c *Controller[K]) SurfaceCreated(identity K, cursor bool) error {
	item, err := c.registry.Register(identity)
	if err != nil {
		logrus.WithError(err).WithField("surface", identity).Errorln("Refusing to register surface")
		return err
	}
	item.SetCursor(cursor)

	if cursor {
		logrus.WithField("surface", identity).Debugln("New cursor surface")
	} else {
		logrus.WithField("surface", identity).Debugln("New surface")
	}

	// Surfaces get mapped right away. Ideally this would wait for a shell
	// so it is known which output they belong on.
	c.mapSurface(item)
	return nil
}

// mapSurface asks the window for a view of item. A failure leaves the
// item unmapped, it is tried again once the item gets a layer or
// MapPending is called.
func (c *Controller[K]) mapSurface(item *surface.Item[K]) bool {
	if c.window.Shows(item) {
		return true
	}
	first, err := c.window.MapSurface(item)
	if err != nil {
		logrus.WithError(err).WithField("surface", item.Identity()).Warnln("Failed to map surface")
		return false
	}
	if first {
		item.SetPrimary(true)
	}
	return true
}

// MapPending maps every surface the window doesn't show yet, for example
// those created before the window had an output. It returns how many got
// mapped.
func (c *Controller[K]) MapPending() int {
	mapped := 0
	for item := range c.registry.All() {
		if c.window.Shows(item) {
			continue
		}
		if c.mapSurface(item) {
			mapped++
		}
	}
	if mapped > 0 {
		c.RequestRedraw()
	}
	return mapped
}

// LegacyShellSurfaceCreated binds a legacy shell surface to its surface.
func (c *Controller[K]) LegacyShellSurfaceCreated(native K, ext any) error {
	if err := c.shells.BindLegacyShell(native, ext); err != nil {
		return err
	}
	item, _ := c.registry.Lookup(native)
	c.mapSurface(item)
	return nil
}

// ExtensionShellSurfaceCreated binds an extension shell surface to its
// surface. Unless an extension shell layer was configured nothing about
// the drawable list changes, so there is no redraw.
func (c *Controller[K]) ExtensionShellSurfaceCreated(native K, ext any) error {
	if err := c.shells.BindExtensionShell(native, ext); err != nil {
		return err
	}
	if !c.extensionLayer.Valid() {
		return nil
	}
	item, _ := c.registry.Lookup(native)
	c.mapSurface(item)
	c.layers.Assign(item, c.extensionLayer)
	c.RequestRedraw()
	return nil
}

// SurfaceDestroyed forgets a surface. The surface leaves its layer before
// it leaves the registry so the drawable list never refers to a dead
// item.
func (c *Controller[K]) SurfaceDestroyed(identity K) error {
	item, ok := c.registry.Lookup(identity)
	if !ok {
		logrus.WithField("surface", identity).Warnln("Accounting error, unknown surface")
		return fmt.Errorf("destroy %v: %w", identity, ErrAccountingError)
	}

	logrus.WithFields(logrus.Fields{
		"surface": identity,
		"handle":  item.Handle(),
		"layer":   item.Layer(),
	}).Debugln("Surface removed")
	c.layers.Remove(item)
	c.window.UnmapSurface(item)
	c.registry.Remove(identity)

	c.RequestRedraw()
	return nil
}

// Raise moves a classified surface to the front of its layer.
func (c *Controller[K]) Raise(identity K) error {
	item, ok := c.registry.Lookup(identity)
	if !ok {
		logrus.WithField("surface", identity).Warnln("Cannot raise unknown surface")
		return fmt.Errorf("raise %v: %w", identity, ErrUnknownSurface)
	}
	layer := item.Layer()
	if !layer.Valid() {
		return nil
	}
	c.mapSurface(item)
	c.layers.Assign(item, layer)
	c.RequestRedraw()
	return nil
}

// Renderables yields what scope should draw this frame, back to front.
// A nil scope means every window. The sequence must not be kept past the
// frame it was requested for.
func (c *Controller[K]) Renderables(scope Window[K]) iter.Seq[*surface.Item[K]] {
	drawables := c.layers.OrderedDrawables()
	if scope == nil {
		return drawables
	}
	return func(yield func(*surface.Item[K]) bool) {
		for item := range drawables {
			if !scope.Shows(item) {
				continue
			}
			if !yield(item) {
				return
			}
		}
	}
}

func (c *Controller[K]) RequestRedraw() {
	c.window.ScheduleDraw()
}

// Lookup returns the item registered for identity.
func (c *Controller[K]) Lookup(identity K) (*surface.Item[K], bool) {
	return c.registry.Lookup(identity)
}

// Surfaces yields every registered surface in registration order.
func (c *Controller[K]) Surfaces() iter.Seq[*surface.Item[K]] {
	return c.registry.All()
}

// Len returns the number of registered surfaces.
func (c *Controller[K]) Len() int {
	return c.registry.Len()
}

// Snapshot describes the current state for inspection.
func (c *Controller[K]) Snapshot() ipc.Snapshot {
	snap := ipc.Snapshot{
		Surfaces:  []ipc.SurfaceInfo{},
		DrawOrder: []string{},
	}
	for item := range c.registry.All() {
		snap.Surfaces = append(snap.Surfaces, ipc.SurfaceInfo{
			Identity: fmt.Sprint(item.Identity()),
			Handle:   item.Handle().String(),
			Layer:    item.Layer().String(),
			Shell:    item.Shell().Kind.String(),
			Title:    item.Shell().Title(),
			Primary:  item.IsPrimary(),
			Cursor:   item.IsCursor(),
		})
	}
	for item := range c.Renderables(nil) {
		snap.DrawOrder = append(snap.DrawOrder, fmt.Sprint(item.Identity()))
	}
	return snap
}
