// Copyright (c) 2024 mStar
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ikeydoherty/budgie-rd/surface"
	"github.com/sirupsen/logrus"
)

type StartType int

const (
	// Tells budgie-rd to start a repl in parallel for interacting with it
	START_REPL = StartType(iota)
	// Tells budgie-rd to execute a specific command on startup
	START_SINGLE_COMMAND
	// Tells budgie-rd to start without any specific targets
	START_NONE
)

var startTypeNames = map[StartType]string{
	START_REPL:           "repl",
	START_SINGLE_COMMAND: "command",
	START_NONE:           "none",
}

func (s StartType) MarshalText() ([]byte, error) {
	name, ok := startTypeNames[s]
	if !ok {
		return nil, fmt.Errorf("unknown start type %d", int(s))
	}
	return []byte(name), nil
}

func (s *StartType) UnmarshalText(text []byte) error {
	for t, name := range startTypeNames {
		if strings.EqualFold(name, string(text)) {
			*s = t
			return nil
		}
	}
	return fmt.Errorf("unknown start type %q", text)
}

// OutputConfig describes the output the compositor creates for itself.
type OutputConfig struct {
	Name string `env:"NAME" toml:"name,omitempty"`
	// Mode size in pixel
	Width  int `env:"WIDTH" toml:"width,omitempty"`
	Height int `env:"HEIGHT" toml:"height,omitempty"`
	// Refresh rate in millihertz
	Refresh int `env:"REFRESH" toml:"refresh,omitempty"`
	// Position in the output layout
	X int `env:"X" toml:"x"`
	Y int `env:"Y" toml:"y"`
}

type Config struct {
	StartType StartType `env:"START_TYPE" toml:"start_type,omitempty"`
	// What command to execute on start. Only matters if StartType is set to START_SINGLE_COMMAND
	StartCommand string `env:"START_COMMAND" toml:"start_command,omitempty"`
	// One of logrus' level names
	LogLevel string `env:"LOG_LEVEL" toml:"log_level,omitempty"`
	// Layer extension shell (xdg) surfaces are put into once bound. "none"
	// leaves them unclassified, and so undrawn, until something else decides
	ExtensionLayer string `env:"EXTENSION_SHELL_LAYER" toml:"extension_shell_layer,omitempty"`
	// Run without a wlroots backend, surfaces are then only created through the repl
	Headless bool `env:"HEADLESS" toml:"headless,omitempty"`

	Output OutputConfig `envPrefix:"OUTPUT_" toml:"output"`
}

// Default returns the configuration used when nothing else is given: one
// 1024x768 output at 60Hz sitting at the origin.
func Default() Config {
	return Config{
		StartType:      START_REPL,
		LogLevel:       logrus.InfoLevel.String(),
		ExtensionLayer: surface.LayerNone.String(),
		Output: OutputConfig{
			Name:    "HEADLESS-1",
			Width:   1024,
			Height:  768,
			Refresh: 60000,
		},
	}
}

var ErrInvalid = errors.New("invalid config")

// Validate checks that the config can be used to start a compositor.
func (c *Config) Validate() error {
	var errs []error
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.ExtensionShellLayer(); err != nil {
		errs = append(errs, err)
	}
	if c.Output.Width <= 0 || c.Output.Height <= 0 {
		errs = append(errs, fmt.Errorf("output size %dx%d", c.Output.Width, c.Output.Height))
	}
	if c.Output.Refresh <= 0 {
		errs = append(errs, fmt.Errorf("output refresh %d", c.Output.Refresh))
	}
	if c.StartType == START_SINGLE_COMMAND && c.StartCommand == "" {
		errs = append(errs, errors.New("start type command without start_command"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalid, errors.Join(errs...))
	}
	return nil
}

// Level returns the configured log level, info if it doesn't parse.
func (c *Config) Level() logrus.Level {
	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return logrus.InfoLevel
	}
	return level
}

// ExtensionShellLayer returns the parsed extension shell layer.
func (c *Config) ExtensionShellLayer() (surface.Layer, error) {
	layer, err := surface.ParseLayer(c.ExtensionLayer)
	if err != nil {
		return surface.LayerNone, fmt.Errorf("extension_shell_layer: %w", err)
	}
	if layer == surface.LayerCursor {
		return surface.LayerNone, errors.New("extension_shell_layer: cursor layer is reserved for cursor surfaces")
	}
	return layer, nil
}

// ExtensionShellLayerOr is ExtensionShellLayer with none replaced by
// fallback. It is meant for transports where extension shell surfaces are
// the only windows there are.
func (c *Config) ExtensionShellLayerOr(fallback surface.Layer) (surface.Layer, error) {
	layer, err := c.ExtensionShellLayer()
	if err != nil {
		return layer, err
	}
	if !layer.Valid() {
		return fallback, nil
	}
	return layer, nil
}
