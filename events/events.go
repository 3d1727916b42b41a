// Copyright (c) 2024 mStar
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

// Package events carries transport notifications to the goroutine that
// owns the compositor state.
package events

import "fmt"

// Handler reacts to transport notifications. compositor.Controller is the
// one that matters.
type Handler[K comparable] interface {
	SurfaceCreated(identity K, cursor bool) error
	LegacyShellSurfaceCreated(native K, ext any) error
	ExtensionShellSurfaceCreated(native K, ext any) error
	SurfaceDestroyed(identity K) error
}

// Notification is a single message from the transport.
type Notification[K comparable] interface {
	Apply(h Handler[K]) error
	String() string
}

type SurfaceCreated[K comparable] struct {
	Identity K
	Cursor   bool
}

func (n SurfaceCreated[K]) Apply(h Handler[K]) error {
	return h.SurfaceCreated(n.Identity, n.Cursor)
}

func (n SurfaceCreated[K]) String() string {
	return fmt.Sprintf("surface created %v (cursor: %v)", n.Identity, n.Cursor)
}

type LegacyShellSurfaceCreated[K comparable] struct {
	Surface   K
	Extension any
}

func (n LegacyShellSurfaceCreated[K]) Apply(h Handler[K]) error {
	return h.LegacyShellSurfaceCreated(n.Surface, n.Extension)
}

func (n LegacyShellSurfaceCreated[K]) String() string {
	return fmt.Sprintf("legacy shell surface created for %v", n.Surface)
}

type ExtensionShellSurfaceCreated[K comparable] struct {
	Surface   K
	Extension any
}

func (n ExtensionShellSurfaceCreated[K]) Apply(h Handler[K]) error {
	return h.ExtensionShellSurfaceCreated(n.Surface, n.Extension)
}

func (n ExtensionShellSurfaceCreated[K]) String() string {
	return fmt.Sprintf("extension shell surface created for %v", n.Surface)
}

type SurfaceDestroyed[K comparable] struct {
	Identity K
}

func (n SurfaceDestroyed[K]) Apply(h Handler[K]) error {
	return h.SurfaceDestroyed(n.Identity)
}

func (n SurfaceDestroyed[K]) String() string {
	return fmt.Sprintf("surface destroyed %v", n.Identity)
}

// call runs arbitrary code in order with the other notifications.
type call[K comparable] struct {
	f    func() error
	done chan error
}

func (n call[K]) Apply(Handler[K]) error {
	err := n.f()
	if n.done != nil {
		n.done <- err
	}
	return err
}

func (n call[K]) String() string {
	return "call"
}
