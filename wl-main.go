package main

import (
	"fmt"
	"os"

	"github.com/ikeydoherty/budgie-rd/config"
	"github.com/ikeydoherty/budgie-rd/repl"
	"github.com/sirupsen/logrus"
	"github.com/swaywm/go-wlroots/wlroots"
)

func fatal(msg string, err error) {
	fmt.Printf("error %s: %s\n", msg, err)
	os.Exit(1)
}

// surfaceByName finds the registered wlr_surface printed as name.
func (server *Server) surfaceByName(name string) (wlroots.Surface, error) {
	for item := range server.compositor.Surfaces() {
		if fmt.Sprint(item.Identity()) == name {
			return item.Identity(), nil
		}
	}
	var none wlroots.Surface
	return none, fmt.Errorf("no surface named %s", name)
}

func wlMain(conf *config.Config) {
	wlroots.OnLog(wlroots.LogImportanceError, func(importance wlroots.LogImportance, msg string) {
		switch importance {
		case wlroots.LogImportanceDebug:
			logrus.Debugln(msg)
		case wlroots.LogImportanceInfo:
			logrus.Infoln(msg)
		case wlroots.LogImportanceError:
			logrus.Errorln(msg)
		case wlroots.LogImportanceSilent:
			return
		}
	})

	// start the server
	server, err := NewServer(conf)
	if err != nil {
		fatal("initializing server", err)
	}
	if err = server.Start(); err != nil {
		fatal("starting server", err)
	}

	switch conf.StartType {
	case config.START_REPL:
		surfaces := &repl.Surfaces[wlroots.Surface]{
			Controller: server.compositor,
			Queue:      server.queue,
			Parse:      server.surfaceByName,
		}
		go replRunner(surfaces, false, server.Stop)
	case config.START_SINGLE_COMMAND:
		startSingleCommand(conf.StartCommand)
	}

	// start the wayland event loop
	if err = server.Run(); err != nil {
		fatal("running server", err)
	}
}
