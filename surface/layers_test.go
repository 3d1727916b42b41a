package surface

import (
	"iter"
	"slices"
	"testing"
)

func identities[K comparable](seq iter.Seq[*Item[K]]) []K {
	var ids []K
	for item := range seq {
		ids = append(ids, item.Identity())
	}
	return ids
}

func newIndex(t *testing.T, ids ...string) (*Registry[string], *LayerIndex[string], map[string]*Item[string]) {
	t.Helper()
	reg := NewRegistry[string]()
	items := make(map[string]*Item[string], len(ids))
	for _, id := range ids {
		item, err := reg.Register(id)
		if err != nil {
			t.Fatalf("Register %s failed: %s", id, err)
		}
		items[id] = item
	}
	return reg, NewLayerIndex(reg), items
}

func TestOrderedDrawablesEmpty(t *testing.T) {
	_, idx, _ := newIndex(t, "a")
	if got := identities(idx.OrderedDrawables()); len(got) != 0 {
		t.Errorf("Unassigned surface is drawable: %v", got)
	}
}

func TestOrderedDrawablesLayerOrder(t *testing.T) {
	_, idx, items := newIndex(t, "overlay", "app", "bg", "top", "bottom")
	idx.Assign(items["overlay"], LayerOverlay)
	idx.Assign(items["app"], LayerApplication)
	idx.Assign(items["bg"], LayerBackground)
	idx.Assign(items["top"], LayerTop)
	idx.Assign(items["bottom"], LayerBottom)

	want := []string{"bg", "bottom", "app", "top", "overlay"}
	if got := identities(idx.OrderedDrawables()); !slices.Equal(got, want) {
		t.Errorf("Draw order is %v, expected %v", got, want)
	}
}

func TestOrderedDrawablesInsertionOrder(t *testing.T) {
	_, idx, items := newIndex(t, "a", "b", "c")
	idx.Assign(items["a"], LayerApplication)
	idx.Assign(items["b"], LayerApplication)
	idx.Assign(items["c"], LayerApplication)
	idx.Assign(items["a"], LayerApplication)

	want := []string{"b", "c", "a"}
	if got := identities(idx.OrderedDrawables()); !slices.Equal(got, want) {
		t.Errorf("Draw order is %v, expected %v", got, want)
	}
}

func TestOrderedDrawablesRestartable(t *testing.T) {
	_, idx, items := newIndex(t, "a", "b")
	idx.Assign(items["a"], LayerApplication)
	seq := idx.OrderedDrawables()

	if got := identities(seq); !slices.Equal(got, []string{"a"}) {
		t.Errorf("First pass yielded %v", got)
	}
	idx.Assign(items["b"], LayerTop)
	if got := identities(seq); !slices.Equal(got, []string{"a", "b"}) {
		t.Errorf("Second pass yielded %v", got)
	}
}

func TestCursorExclusion(t *testing.T) {
	_, idx, items := newIndex(t, "cursor", "pointer-image", "app")
	items["cursor"].SetCursor(true)
	items["pointer-image"].SetCursor(true)
	idx.Assign(items["cursor"], LayerApplication)
	idx.Assign(items["pointer-image"], LayerCursor)
	idx.Assign(items["app"], LayerApplication)

	if got := identities(idx.OrderedDrawables()); !slices.Equal(got, []string{"app"}) {
		t.Errorf("Draw order is %v, expected only app", got)
	}
	if idx.Len(LayerCursor) != 1 {
		t.Errorf("Cursor layer holds %d items instead of 1", idx.Len(LayerCursor))
	}
}

func TestCursorLayerNotDrawn(t *testing.T) {
	_, idx, items := newIndex(t, "a")
	idx.Assign(items["a"], LayerCursor)
	if got := identities(idx.OrderedDrawables()); len(got) != 0 {
		t.Errorf("Cursor layer item is drawable: %v", got)
	}
}

func TestLayerExclusivity(t *testing.T) {
	_, idx, items := newIndex(t, "a", "b")
	a := items["a"]
	steps := []Layer{LayerApplication, LayerTop, LayerTop, LayerBackground, LayerNone, LayerOverlay, LayerApplication}
	for i, layer := range steps {
		idx.Assign(a, layer)
		if i%2 == 0 {
			idx.Assign(items["b"], layer)
		}

		count := 0
		for l := LayerBackground; l <= LayerCursor; l++ {
			for item := range idx.Layer(l) {
				if item == a {
					count++
					if l != layer {
						t.Errorf("Step %d: item found in %s, expected %s", i, l, layer)
					}
				}
			}
		}
		want := 1
		if layer == LayerNone {
			want = 0
		}
		if count != want {
			t.Errorf("Step %d: item appears %d times, expected %d", i, count, want)
		}
		if a.Layer() != layer {
			t.Errorf("Step %d: item reports layer %s, expected %s", i, a.Layer(), layer)
		}
	}
}

func TestLayerRemove(t *testing.T) {
	_, idx, items := newIndex(t, "a", "b")
	idx.Assign(items["a"], LayerApplication)
	idx.Assign(items["b"], LayerApplication)

	idx.Remove(items["a"])
	idx.Remove(items["a"])
	if got := identities(idx.OrderedDrawables()); !slices.Equal(got, []string{"b"}) {
		t.Errorf("Draw order is %v, expected [b]", got)
	}
	if items["a"].Layer() != LayerNone {
		t.Errorf("Removed item still reports layer %s", items["a"].Layer())
	}
}

func TestDestroyedItemsNotDrawn(t *testing.T) {
	reg, idx, items := newIndex(t, "a", "b")
	idx.Assign(items["a"], LayerApplication)
	idx.Assign(items["b"], LayerApplication)

	idx.Remove(items["a"])
	reg.Remove("a")
	for item := range idx.OrderedDrawables() {
		if _, ok := reg.Lookup(item.Identity()); !ok {
			t.Errorf("Drawable %s is not registered", item.Identity())
		}
	}
}

func TestLayerString(t *testing.T) {
	tests := map[Layer]string{
		LayerNone:        "none",
		LayerBackground:  "background",
		LayerApplication: "application",
		LayerCursor:      "cursor",
		Layer(42):        "Layer(42)",
	}
	for layer, want := range tests {
		if got := layer.String(); got != want {
			t.Errorf("Layer(%d).String() = %q, expected %q", int(layer), got, want)
		}
	}
}

func TestParseLayer(t *testing.T) {
	for l := LayerNone; l <= LayerCursor; l++ {
		got, err := ParseLayer(l.String())
		if err != nil || got != l {
			t.Errorf("ParseLayer(%q) = %s, %v", l.String(), got, err)
		}
	}
	if got, err := ParseLayer(" Top "); err != nil || got != LayerTop {
		t.Errorf("ParseLayer didn't normalise input: %s, %v", got, err)
	}
	if _, err := ParseLayer("sideways"); err == nil {
		t.Errorf("ParseLayer accepted an unknown layer")
	}
}
