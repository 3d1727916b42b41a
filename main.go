// Copyright (c) 2024 mStar
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package main

import (
	"flag"
	"os"

	"github.com/ikeydoherty/budgie-rd/config"
	"github.com/sirupsen/logrus"
)

var (
	configPath *string = flag.String(
		"config",
		"",
		"Path to the config file. Searches $XDG_CONFIG_HOME and $XDG_CONFIG_DIRS for "+config.DefaultPath+" if empty",
	)
	toolMode *bool = flag.Bool("tool", false, "Start as a tool instead of a compositor")
	help     *bool = flag.Bool("help", false, "Show the help message")
	headless *bool = flag.Bool("headless", false, "Run without a wlroots backend, surfaces are driven from the repl")
)

func main() {
	flag.Parse()
	logrus.SetOutput(os.Stderr)

	conf, err := config.Load(*configPath)
	if err != nil {
		logrus.WithError(err).Fatal("loading config")
	}
	logrus.SetLevel(conf.Level())
	if *headless {
		conf.Headless = true
	}

	switch {
	case *toolMode:
		utilMain(conf)
	case *help:
		flag.Usage()
	case conf.Headless:
		headlessMain(conf)
	default:
		wlMain(conf)
	}
}
