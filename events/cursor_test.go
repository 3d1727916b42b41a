package events

import (
	"slices"
	"testing"

	"github.com/ikeydoherty/budgie-rd/compositor"
	"github.com/ikeydoherty/budgie-rd/output"
)

func names(ns []Notification[string]) []string {
	out := []string{}
	for _, n := range ns {
		out = append(out, n.String())
	}
	return out
}

func TestCursorImageReplace(t *testing.T) {
	var c CursorImage[string]

	ns, added := c.Set("a", false)
	if !added || !slices.Equal(names(ns), []string{"surface created a (cursor: true)"}) {
		t.Errorf("First image gave %v, %v", names(ns), added)
	}
	if ns, added = c.Set("a", false); added || len(ns) != 0 {
		t.Errorf("Setting the same image again gave %v, %v", names(ns), added)
	}

	ns, added = c.Set("b", false)
	want := []string{"surface destroyed a", "surface created b (cursor: true)"}
	if !added || !slices.Equal(names(ns), want) {
		t.Errorf("Replacing the image gave %v, %v", names(ns), added)
	}
	if ns := c.Destroyed("a"); len(ns) != 0 {
		t.Errorf("Destroying a replaced image gave %v", names(ns))
	}

	ns, _ = c.Set("", true)
	if !slices.Equal(names(ns), []string{"surface destroyed b"}) {
		t.Errorf("Clearing the image gave %v", names(ns))
	}
	if _, ok := c.Current(); ok {
		t.Errorf("Cleared image still current")
	}
	if ns, added = c.Set("", true); added || len(ns) != 0 {
		t.Errorf("Clearing twice gave %v, %v", names(ns), added)
	}
}

func TestCursorImageDestroyed(t *testing.T) {
	var c CursorImage[string]
	c.Set("a", false)

	ns := c.Destroyed("a")
	if !slices.Equal(names(ns), []string{"surface destroyed a"}) {
		t.Errorf("Destroying the image gave %v", names(ns))
	}
	if _, ok := c.Current(); ok {
		t.Errorf("Destroyed image still current")
	}
	if ns := c.Destroyed("a"); len(ns) != 0 {
		t.Errorf("Destroying twice gave %v", names(ns))
	}
}

func TestDestroyedCursorIdentityReusable(t *testing.T) {
	window := output.NewWindow[string]()
	ctl := compositor.NewController[string](window)
	var c CursorImage[string]

	ns, _ := c.Set("s", false)
	ns = append(ns, c.Destroyed("s")...)
	for _, n := range ns {
		n.Apply(ctl)
	}

	// A window reusing the identity of the dead cursor surface
	err := SurfaceCreated[string]{Identity: "s"}.Apply(ctl)
	if err != nil {
		t.Fatalf("Registering a reused identity failed: %s", err)
	}
	item, _ := ctl.Lookup("s")
	if item.IsCursor() {
		t.Errorf("Reused identity still marked as cursor")
	}
	if ctl.Len() != 1 {
		t.Errorf("%d surfaces registered instead of 1", ctl.Len())
	}
}
