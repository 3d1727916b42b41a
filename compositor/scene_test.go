package compositor

import (
	"slices"
	"testing"

	"github.com/ikeydoherty/budgie-rd/surface"
)

// fakeScene keeps a stack of nodes, bottom first.
type fakeScene struct {
	stack   []string
	visible map[string]bool
}

func newFakeScene(ids ...string) *fakeScene {
	s := &fakeScene{visible: map[string]bool{}}
	for _, id := range ids {
		s.stack = append(s.stack, id)
		s.visible[id] = true
	}
	return s
}

func (s *fakeScene) SetVisible(item *surface.Item[string], visible bool) {
	s.visible[item.Identity()] = visible
}

func (s *fakeScene) RaiseToTop(item *surface.Item[string]) {
	s.stack = slices.DeleteFunc(s.stack, func(id string) bool { return id == item.Identity() })
	s.stack = append(s.stack, item.Identity())
}

func (s *fakeScene) shown() []string {
	var ids []string
	for _, id := range s.stack {
		if s.visible[id] {
			ids = append(ids, id)
		}
	}
	return ids
}

func TestRestackHidesUnlayered(t *testing.T) {
	w := newFakeWindow()
	c := NewController[string](w)
	c.SurfaceCreated("a", false)
	c.SurfaceCreated("b", false)
	c.SurfaceCreated("cursor", true)
	c.ExtensionShellSurfaceCreated("a", nil)
	c.LegacyShellSurfaceCreated("b", nil)

	scene := newFakeScene("a", "b", "cursor")
	if n := c.Restack(w, scene); n != 1 {
		t.Errorf("Restack shows %d surfaces instead of 1", n)
	}
	if got := scene.shown(); !slices.Equal(got, []string{"b"}) {
		t.Errorf("Scene shows %v, expected [b]", got)
	}
}

func TestRestackFollowsDrawOrder(t *testing.T) {
	w := newFakeWindow()
	c := NewController[string](w, WithExtensionShellLayer[string](surface.LayerApplication))
	for _, id := range []string{"a", "b", "c"} {
		c.SurfaceCreated(id, false)
		c.ExtensionShellSurfaceCreated(id, nil)
	}
	scene := newFakeScene("c", "b", "a")

	c.Restack(w, scene)
	if got := scene.shown(); !slices.Equal(got, []string{"a", "b", "c"}) {
		t.Errorf("Scene stack is %v, expected [a b c]", got)
	}

	c.Raise("a")
	c.Restack(w, scene)
	if got := scene.shown(); !slices.Equal(got, []string{"b", "c", "a"}) {
		t.Errorf("Scene stack after raise is %v, expected [b c a]", got)
	}
}

func TestRestackScope(t *testing.T) {
	w := newFakeWindow()
	c := NewController[string](w)
	c.SurfaceCreated("a", false)
	c.LegacyShellSurfaceCreated("a", nil)
	delete(w.mapped, "a")

	scene := newFakeScene("a")
	c.Restack(w, scene)
	if got := scene.shown(); len(got) != 0 {
		t.Errorf("Scene shows %v for a surface the window doesn't", got)
	}
}
