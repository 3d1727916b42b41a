package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/ikeydoherty/budgie-rd/compositor"
	"github.com/ikeydoherty/budgie-rd/config"
	"github.com/ikeydoherty/budgie-rd/events"
	"github.com/ikeydoherty/budgie-rd/output"
	"github.com/ikeydoherty/budgie-rd/repl"
	"github.com/ikeydoherty/budgie-rd/surface"
	"github.com/sirupsen/logrus"
)

// headlessMain runs the compositor core without a display server. The
// repl plays the part of the protocol layer, surfaces are named by the
// strings typed into it.
func headlessMain(conf *config.Config) {
	window := output.NewWindow[string]()
	window.SetOutput(output.FromConfig(conf.Output))
	defer window.Close()

	layer, err := conf.ExtensionShellLayer()
	if err != nil {
		logrus.WithError(err).Fatal("creating compositor")
	}
	ctl := newController[string](window, layer)
	queue := events.NewQueue[string](ctl, events.DefaultSize)

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stopSignals()
	ctx, stop := context.WithCancel(sigCtx)
	defer stop()

	frames, err := window.Frames("headless")
	if err != nil {
		logrus.WithError(err).Fatal("subscribing to frames")
	}
	go func() {
		for range frames {
			logrus.Debugln("Frame scheduled")
		}
	}()

	surfaces := &repl.Surfaces[string]{
		Controller: ctl,
		Queue:      queue,
		Parse:      func(name string) (string, error) { return name, nil },
	}
	go func() {
		replRunner(surfaces, true, stop)
		stop()
	}()

	logrus.WithField("output", conf.Output.Name).Infoln("Running headless compositor")
	if err = queue.Run(ctx); err != nil && ctx.Err() == nil {
		logrus.WithError(err).Errorln("Control loop stopped")
	}
}

// newController builds the compositor core for window, putting extension
// shell surfaces into layer.
func newController[K comparable](window compositor.Window[K], layer surface.Layer) *compositor.Controller[K] {
	return compositor.NewController(window, compositor.WithExtensionShellLayer[K](layer))
}
