package repl

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ikeydoherty/budgie-rd/common/ipc"
	"github.com/ikeydoherty/budgie-rd/compositor"
	"github.com/ikeydoherty/budgie-rd/events"
	"github.com/ikeydoherty/budgie-rd/util"
	"gopkg.in/yaml.v3"
)

// How long a command waits for the compositor to get to it
const callTimeout = 5 * time.Second

var ErrUsage = errors.New("bad arguments")

// Title is a stand-in shell extension for surfaces created from the repl.
type Title string

func (t Title) Title() string {
	return string(t)
}

// Surfaces wires the surface commands of a repl to a compositor. Every
// command runs on the compositor's control goroutine through Queue. Parse
// turns a command argument into a surface identity, it also runs on the
// control goroutine.
type Surfaces[K comparable] struct {
	Controller *compositor.Controller[K]
	Queue      *events.Queue[K]
	Parse      func(string) (K, error)
}

// Register adds the inspection commands list, draw, dump and raise.
func (s *Surfaces[K]) Register(r *Repl) {
	r.Handle("list", s.list)
	r.Handle("draw", s.draw)
	r.Handle("dump", s.dump)
	r.Handle("raise", s.raise)
}

// RegisterTransport adds commands that stand in for the protocol layer:
// create, shell, xdg and destroy.
func (s *Surfaces[K]) RegisterTransport(r *Repl) {
	r.Handle("create", s.create)
	r.Handle("shell", s.shell)
	r.Handle("xdg", s.xdg)
	r.Handle("destroy", s.destroy)
}

func (s *Surfaces[K]) call(f func() error) error {
	ctx, cancel := context.WithTimeout(context.Background(), callTimeout)
	defer cancel()
	return s.Queue.Call(ctx, f)
}

func (s *Surfaces[K]) snapshot() (snap ipc.Snapshot, err error) {
	err = s.call(func() error {
		snap = s.Controller.Snapshot()
		return nil
	})
	return snap, err
}

// name takes the surface name from the first argument, remaining ones go
// into rest
func name(args []string, rest ...*string) (string, error) {
	var n string
	if util.Unpack(args, &n) == 0 {
		return "", fmt.Errorf("%w: missing surface", ErrUsage)
	}
	if len(args) > 1 {
		util.Unpack(args[1:], rest...)
	}
	return n, nil
}

// with resolves name and runs f with the identity, both on the control
// goroutine.
func (s *Surfaces[K]) with(name string, f func(K) error) error {
	return s.call(func() error {
		id, err := s.Parse(name)
		if err != nil {
			return err
		}
		return f(id)
	})
}

// result turns the outcome of a compositor call into repl output. Errors
// the compositor recovers from are reported, not fatal to the repl.
func result(err error, ok string) (string, error) {
	if err != nil {
		return "Error: " + err.Error(), nil
	}
	return ok, nil
}

func (s *Surfaces[K]) list([]string, *Repl) (string, error) {
	snap, err := s.snapshot()
	if err != nil {
		return result(err, "")
	}
	if len(snap.Surfaces) == 0 {
		return "No surfaces", nil
	}
	var b strings.Builder
	for i, info := range snap.Surfaces {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%s [%s] layer=%s shell=%s", info.Identity, info.Handle, info.Layer, info.Shell)
		if info.Title != "" {
			fmt.Fprintf(&b, " title=%q", info.Title)
		}
		if info.Primary {
			b.WriteString(" primary")
		}
		if info.Cursor {
			b.WriteString(" cursor")
		}
	}
	return b.String(), nil
}

func (s *Surfaces[K]) draw([]string, *Repl) (string, error) {
	snap, err := s.snapshot()
	if err != nil {
		return result(err, "")
	}
	return "Draw order: [" + strings.Join(snap.DrawOrder, " ") + "]", nil
}

func (s *Surfaces[K]) dump([]string, *Repl) (string, error) {
	snap, err := s.snapshot()
	if err != nil {
		return result(err, "")
	}
	data, err := yaml.Marshal(snap)
	if err != nil {
		return "", fmt.Errorf("encode snapshot: %w", err)
	}
	return strings.TrimSuffix(string(data), "\n"), nil
}

func (s *Surfaces[K]) raise(args []string, _ *Repl) (string, error) {
	n, err := name(args)
	if err != nil {
		return result(err, "")
	}
	return result(s.with(n, s.Controller.Raise), "Raised "+n)
}

func (s *Surfaces[K]) create(args []string, _ *Repl) (string, error) {
	var kind string
	n, err := name(args, &kind)
	if err != nil {
		return result(err, "")
	}
	cursor := kind == "cursor"
	return result(s.with(n, func(id K) error {
		return s.Controller.SurfaceCreated(id, cursor)
	}), "Created "+n)
}

func (s *Surfaces[K]) shell(args []string, _ *Repl) (string, error) {
	var title string
	n, err := name(args, &title)
	if err != nil {
		return result(err, "")
	}
	return result(s.with(n, func(id K) error {
		return s.Controller.LegacyShellSurfaceCreated(id, Title(title))
	}), "Bound legacy shell to "+n)
}

func (s *Surfaces[K]) xdg(args []string, _ *Repl) (string, error) {
	var title string
	n, err := name(args, &title)
	if err != nil {
		return result(err, "")
	}
	return result(s.with(n, func(id K) error {
		return s.Controller.ExtensionShellSurfaceCreated(id, Title(title))
	}), "Bound extension shell to "+n)
}

func (s *Surfaces[K]) destroy(args []string, _ *Repl) (string, error) {
	n, err := name(args)
	if err != nil {
		return result(err, "")
	}
	return result(s.with(n, s.Controller.SurfaceDestroyed), "Destroyed "+n)
}
