package repl

import (
	"context"
	"strings"
	"testing"

	"github.com/ikeydoherty/budgie-rd/common/ipc"
	"github.com/ikeydoherty/budgie-rd/compositor"
	"github.com/ikeydoherty/budgie-rd/config"
	"github.com/ikeydoherty/budgie-rd/events"
	"github.com/ikeydoherty/budgie-rd/output"
	"gopkg.in/yaml.v3"
)

// runScript feeds script to a repl wired to a fresh headless compositor and
// returns the output lines.
func runScript(t *testing.T, script string) []string {
	t.Helper()
	window := output.NewWindow[string]()
	window.SetOutput(output.FromConfig(config.Default().Output))
	ctl := compositor.NewController[string](window)
	queue := events.NewQueue[string](ctl, 0)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go queue.Run(ctx)

	r, out := newTestRepl(script)
	s := &Surfaces[string]{
		Controller: ctl,
		Queue:      queue,
		Parse:      func(name string) (string, error) { return name, nil },
	}
	s.Register(r)
	s.RegisterTransport(r)
	if err := r.Run(nil); err != nil {
		t.Fatalf("Run returned %s", err)
	}
	return strings.Split(strings.TrimSpace(out.String()), "\n")
}

func TestSurfaceCommands(t *testing.T) {
	lines := runScript(t, strings.Join([]string{
		"list",
		"create a",
		"create b",
		"create pointer cursor",
		"shell a Terminal",
		"shell b",
		"xdg pointer",
		"draw",
		"raise a",
		"draw",
		"destroy b",
		"draw",
	}, "\n"))

	want := []string{
		"No surfaces",
		"Created a",
		"Created b",
		"Created pointer",
		"Bound legacy shell to a",
		"Bound legacy shell to b",
		"Bound extension shell to pointer",
		"Draw order: [a b]",
		"Raised a",
		"Draw order: [b a]",
		"Destroyed b",
		"Draw order: [a]",
	}
	if len(lines) != len(want) {
		t.Fatalf("Got %d lines: %q", len(lines), lines)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("Line %d is %q, expected %q", i, lines[i], want[i])
		}
	}
}

func TestSurfaceCommandErrors(t *testing.T) {
	lines := runScript(t, "create a\ncreate a\nshell ghost\ndestroy ghost\nraise\n")
	if len(lines) != 5 {
		t.Fatalf("Got %d lines: %q", len(lines), lines)
	}
	for i, substr := range []string{"", "already registered", "unknown surface", "accounting error", "missing surface"} {
		if i == 0 {
			continue
		}
		if !strings.HasPrefix(lines[i], "Error: ") || !strings.Contains(lines[i], substr) {
			t.Errorf("Line %d is %q, expected an error about %q", i, lines[i], substr)
		}
	}
}

func TestListAndDump(t *testing.T) {
	lines := runScript(t, "create a\nshell a Editor\nlist\ndump\n")
	if lines[2] != `a [0#1] layer=application shell=legacy title="Editor" primary` {
		t.Errorf("list printed %q", lines[2])
	}

	var snap ipc.Snapshot
	if err := yaml.Unmarshal([]byte(strings.Join(lines[3:], "\n")), &snap); err != nil {
		t.Fatalf("dump isn't valid yaml: %s", err)
	}
	if len(snap.Surfaces) != 1 || snap.Surfaces[0].Title != "Editor" {
		t.Errorf("dump decoded to %+v", snap)
	}
	if len(snap.DrawOrder) != 1 || snap.DrawOrder[0] != "a" {
		t.Errorf("dump draw order is %v", snap.DrawOrder)
	}
}
