package output

import (
	"errors"
	"slices"
	"testing"

	"deedles.dev/ximage/geom"
	"github.com/ikeydoherty/budgie-rd/compositor"
	"github.com/ikeydoherty/budgie-rd/config"
	"github.com/ikeydoherty/budgie-rd/surface"
)

func newWindow(t *testing.T) (*Window[string], *surface.Registry[string]) {
	t.Helper()
	w := NewWindow[string]()
	conf := config.Default().Output
	conf.X, conf.Y = 10, 20
	w.SetOutput(FromConfig(conf))
	return w, surface.NewRegistry[string]()
}

func TestFromConfig(t *testing.T) {
	out := FromConfig(config.Default().Output)
	if out.Bounds != geom.Rt(0, 0, 1024, 768) {
		t.Errorf("Bounds are %v", out.Bounds)
	}
	info := out.Info()
	if info.Mode.Width != 1024 || info.Mode.Height != 768 || info.Mode.RefreshRate != 60000 {
		t.Errorf("Mode is %+v", info.Mode)
	}
}

func TestMapSurface(t *testing.T) {
	w, reg := newWindow(t)
	item, _ := reg.Register("a")

	first, err := w.MapSurface(item)
	if err != nil || !first {
		t.Fatalf("First map returned %v, %v", first, err)
	}
	view, ok := w.View(item)
	if !ok {
		t.Fatalf("No view after mapping")
	}
	if view.Position != geom.Pt(10, 20) {
		t.Errorf("View placed at %v instead of the output origin", view.Position)
	}

	first, err = w.MapSurface(item)
	if err != nil || first {
		t.Errorf("Second map returned %v, %v", first, err)
	}

	w.UnmapSurface(item)
	if w.Shows(item) {
		t.Errorf("Window still shows an unmapped surface")
	}
}

func TestMapWithoutOutput(t *testing.T) {
	w := NewWindow[string]()
	item, _ := surface.NewRegistry[string]().Register("a")
	if _, err := w.MapSurface(item); !errors.Is(err, ErrNoOutput) {
		t.Errorf("Map without output returned %v", err)
	}
}

func TestSurfaceCreatedBeforeOutput(t *testing.T) {
	w := NewWindow[string]()
	ctl := compositor.NewController[string](w)
	ctl.SurfaceCreated("a", false)
	ctl.SurfaceCreated("b", false)

	w.SetOutput(FromConfig(config.Default().Output))
	ctl.LegacyShellSurfaceCreated("a", nil)

	var drawn []string
	for item := range ctl.Renderables(w) {
		drawn = append(drawn, item.Identity())
	}
	if !slices.Equal(drawn, []string{"a"}) {
		t.Errorf("Window draws %v, expected [a]", drawn)
	}

	if n := ctl.MapPending(); n != 1 {
		t.Errorf("MapPending mapped %d surfaces instead of 1", n)
	}
	b, _ := ctl.Lookup("b")
	if !w.Shows(b) {
		t.Errorf("Window doesn't show b after MapPending")
	}
}

func TestScheduleDraw(t *testing.T) {
	w, _ := newWindow(t)
	frames, err := w.Frames("test")
	if err != nil {
		t.Fatalf("Frames failed: %s", err)
	}

	w.ScheduleDraw()
	w.ScheduleDraw()
	<-frames
	select {
	case <-frames:
		t.Errorf("Two draw requests produced two frames")
	default:
	}

	w.Close()
	if _, ok := <-frames; ok {
		t.Errorf("Frame channel still open after Close")
	}
}
