// Copyright (c) 2024 mStar
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package surface

type ShellKind int

const (
	ShellUnbound = ShellKind(iota)
	// wl_shell style shell surface
	ShellLegacy
	// xdg_shell style shell surface
	ShellExtension
)

func (k ShellKind) String() string {
	switch k {
	case ShellUnbound:
		return "unbound"
	case ShellLegacy:
		return "legacy"
	case ShellExtension:
		return "extension"
	default:
		return "unknown"
	}
}

// Shell is the shell extension bound to an item. The zero value is
// unbound. Extension holds the protocol object exactly as the transport
// handed it over; the core never looks inside it.
type Shell struct {
	Kind      ShellKind
	Extension any
}

// LegacyShell returns a Shell bound to a legacy shell surface.
func LegacyShell(ext any) Shell {
	return Shell{Kind: ShellLegacy, Extension: ext}
}

// ExtensionShell returns a Shell bound to an extension shell surface.
func ExtensionShell(ext any) Shell {
	return Shell{Kind: ShellExtension, Extension: ext}
}

// Titled is implemented by shell extensions that know their window title.
type Titled interface {
	Title() string
}

// Title returns the title of the bound extension, if it has one.
func (s Shell) Title() string {
	if t, ok := s.Extension.(Titled); ok {
		return t.Title()
	}
	return ""
}
