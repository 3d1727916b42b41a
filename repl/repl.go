// Copyright (c) 2024 mStar
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package repl

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
)

type MessageHandler func(string, *Repl) (string, error)

// Command handles one repl command. args doesn't include the command name
type Command func(args []string, r *Repl) (string, error)

// ErrStop can be returned by a handler to end the repl without it counting as failure
var ErrStop = errors.New("repl stopped")

// ReadCloser combines the Reader and Closer interfaces
type ReadCloser interface {
	io.Reader
	io.Closer
}

type Repl struct {
	Input    ReadCloser
	Output   io.WriteCloser
	scanner  *bufio.Scanner
	writer   *bufio.Writer
	commands map[string]Command
}

// Creates a new repl
// If no input is given, stdin will be used
// If no output is given, stdout will be used
// Note: The given reader and writer will be closed if the repl is started and then stops
func NewRepl(in ReadCloser, out io.WriteCloser) *Repl {
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = os.Stdout
	}
	return &Repl{
		Input:    in,
		Output:   out,
		scanner:  bufio.NewScanner(in),
		writer:   bufio.NewWriter(out),
		commands: make(map[string]Command),
	}
}

// Handle registers cmd under name, replacing any earlier command with that name
func (r *Repl) Handle(name string, cmd Command) {
	r.commands[name] = cmd
}

// Commands returns the names of all registered commands, sorted
func (r *Repl) Commands() []string {
	names := make([]string, 0, len(r.commands))
	for name := range r.commands {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Dispatch runs the registered command named by the first word of line
func (r *Repl) Dispatch(line string, _ *Repl) (string, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "", nil
	}
	cmd, ok := r.commands[fields[0]]
	if !ok {
		return fmt.Sprintf("Unknown command %q, known: %s", fields[0], strings.Join(r.Commands(), ", ")), nil
	}
	return cmd(fields[1:], r)
}

// Starts the repl
// Blocks execution until the repl closes
// All input will be passed to the handler func, Dispatch if it is nil
// If it receives an error from the message handler or during writing, it calls Close
func (r *Repl) Run(onMessage MessageHandler) error {
	if onMessage == nil {
		onMessage = r.Dispatch
	}
	for r.scanner.Scan() {
		newMessage := r.scanner.Text()
		res, err := onMessage(newMessage, r)
		if errors.Is(err, ErrStop) {
			r.write(res)
			r.Close()
			return nil
		}
		if err != nil {
			r.Close()
			return fmt.Errorf("message handler errored out on message \"%s\": %w", newMessage, err)
		}
		if err = r.write(res); err != nil {
			r.Close()
			return err
		}
	}
	return r.scanner.Err()
}

func (r *Repl) write(res string) error {
	if res == "" {
		return nil
	}
	if _, err := r.writer.WriteString(res + "\n"); err != nil {
		return fmt.Errorf("failed to write result \"%s\": %w", res, err)
	}
	if err := r.writer.Flush(); err != nil {
		return fmt.Errorf("failed to flush writer: %w", err)
	}
	return nil
}

// Close stops the repl if it was still running
// This will also close the reader and writer
func (r *Repl) Close() {
	r.Input.Close()
	r.Output.Close()
}
