package main

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/ikeydoherty/budgie-rd/repl"
	"github.com/ikeydoherty/budgie-rd/util/wrappers"
	"github.com/sirupsen/logrus"
)

// replRunner runs the command repl on stdio until it ends or quit is
// typed. transport enables the commands that fake protocol notifications.
func replRunner[K comparable](surfaces *repl.Surfaces[K], transport bool, stop func()) {
	// Give repl some wrappers around stdin and stdout so that it closes those instead of stdin & stdout themselves
	commandRepl := repl.NewRepl(wrappers.NewReaderWrapper(os.Stdin), wrappers.NewWriterWrapper(os.Stdout))
	surfaces.Register(commandRepl)
	if transport {
		surfaces.RegisterTransport(commandRepl)
	}
	commandRepl.Handle("run", runCommand)
	commandRepl.Handle("quit", func([]string, *repl.Repl) (string, error) {
		stop()
		return "Quitting", repl.ErrStop
	})

	logrus.WithField("commands", commandRepl.Commands()).Debugln("Starting repl")
	if err := commandRepl.Run(nil); err != nil {
		logrus.WithError(err).Errorln("Repl stopped")
	}
}

func runCommand(args []string, r *repl.Repl) (string, error) {
	if len(args) == 0 {
		return "Usage: run <command> [args...]", nil
	}
	cmdString := strings.Join(args, " ")
	cmd := exec.Command(args[0], args[1:]...)
	cmd.Stdout = r.Output
	cmd.Stderr = r.Output
	go startCommand(cmd, cmdString)
	return "Running " + args[0], nil
}

func startCommand(cmd *exec.Cmd, cmdString string) {
	err := cmd.Start()
	if err != nil {
		logrus.WithError(err).WithField("command", cmdString).Errorln("Command failed to start")
		return
	}
	err = cmd.Wait()
	if exiterr, ok := err.(*exec.ExitError); ok {
		logrus.WithError(err).WithFields(logrus.Fields{
			"exit-code": exiterr.ExitCode(),
			"command":   cmdString,
		}).Warningln("Bad command completion")
	}
}

// startSingleCommand runs the configured start command with the
// compositor's environment.
func startSingleCommand(command string) {
	parts := strings.Fields(command)
	if len(parts) == 0 {
		return
	}
	cmd := exec.Command(parts[0], parts[1:]...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	go startCommand(cmd, command)
	fmt.Fprintf(os.Stderr, "Started %s\n", parts[0])
}
