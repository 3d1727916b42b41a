// Copyright (c) 2024 mStar
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

// Package output provides the window the compositor renders into: one
// output, the views mapped onto it and the signal used to schedule
// frames.
package output

import (
	"errors"
	"fmt"

	"deedles.dev/ximage/geom"
	"github.com/ikeydoherty/budgie-rd/common/ipc"
	"github.com/ikeydoherty/budgie-rd/config"
	"github.com/ikeydoherty/budgie-rd/surface"
)

var ErrNoOutput = errors.New("window has no output")

// Output is a display area in layout coordinates.
type Output struct {
	Name   string
	Bounds geom.Rect[int]
	// Refresh rate in millihertz
	Refresh int
}

// FromConfig builds the output described by conf.
func FromConfig(conf config.OutputConfig) Output {
	return Output{
		Name:    conf.Name,
		Bounds:  geom.Rt(0, 0, conf.Width, conf.Height).Add(geom.Pt(conf.X, conf.Y)),
		Refresh: conf.Refresh,
	}
}

func (out Output) Info() ipc.OutputInfo {
	return ipc.OutputInfo{
		Name: out.Name,
		X:    out.Bounds.Min.X,
		Y:    out.Bounds.Min.Y,
		Mode: ipc.OutputMode{
			Width:       out.Bounds.Dx(),
			Height:      out.Bounds.Dy(),
			RefreshRate: out.Refresh,
		},
	}
}

func (out Output) String() string {
	return fmt.Sprintf("%s %dx%d@%d", out.Name, out.Bounds.Dx(), out.Bounds.Dy(), out.Refresh)
}

// View is an on-screen representation of a surface.
type View struct {
	Handle   surface.Handle
	Position geom.Point[int]
	Primary  bool
}
