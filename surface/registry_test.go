package surface

import (
	"errors"
	"testing"
)

func TestRegistryRegister(t *testing.T) {
	reg := NewRegistry[string]()
	item, err := reg.Register("a")
	if err != nil {
		t.Fatalf("Register failed: %s", err)
	}
	if item.Identity() != "a" {
		t.Errorf("Identity is %q instead of \"a\"", item.Identity())
	}
	if item.Layer() != LayerNone {
		t.Errorf("New item has layer %s instead of none", item.Layer())
	}
	if item.Shell().Kind != ShellUnbound {
		t.Errorf("New item has shell %s instead of unbound", item.Shell().Kind)
	}
	if got, ok := reg.Lookup("a"); !ok || got != item {
		t.Errorf("Lookup didn't return the registered item")
	}
}

func TestRegistryDuplicate(t *testing.T) {
	reg := NewRegistry[string]()
	first, _ := reg.Register("a")
	_, err := reg.Register("a")
	if !errors.Is(err, ErrDuplicateSurface) {
		t.Errorf("Expected ErrDuplicateSurface, got %v", err)
	}
	if got, _ := reg.Lookup("a"); got != first {
		t.Errorf("Duplicate register replaced the original item")
	}
	if reg.Len() != 1 {
		t.Errorf("Registry has %d items instead of 1", reg.Len())
	}
}

func TestRegistryRemove(t *testing.T) {
	reg := NewRegistry[string]()
	item, _ := reg.Register("a")
	h := item.Handle()

	if !reg.Remove("a") {
		t.Errorf("Remove of a live surface returned false")
	}
	if reg.Remove("a") {
		t.Errorf("Second remove returned true")
	}
	if _, ok := reg.Lookup("a"); ok {
		t.Errorf("Lookup found a removed surface")
	}
	if _, ok := reg.Resolve(h); ok {
		t.Errorf("Stale handle still resolves")
	}
}

func TestRegistryReuseAfterRemove(t *testing.T) {
	reg := NewRegistry[string]()
	old, _ := reg.Register("a")
	oldHandle := old.Handle()
	reg.Remove("a")

	item, err := reg.Register("a")
	if err != nil {
		t.Fatalf("Re-register after remove failed: %s", err)
	}
	if item == old {
		t.Errorf("Re-registered identity got the old item back")
	}
	if item.Handle() == oldHandle {
		t.Errorf("Reused slot kept the old generation")
	}
	if _, ok := reg.Resolve(oldHandle); ok {
		t.Errorf("Old handle resolves to the new item")
	}
}

// Lookup must agree with the net effect of any register/remove sequence.
func TestRegistryBijection(t *testing.T) {
	type op struct {
		register bool
		id       string
	}
	ops := []op{
		{true, "a"}, {true, "b"}, {false, "a"}, {true, "c"},
		{true, "a"}, {false, "b"}, {false, "x"}, {true, "b"},
		{false, "c"}, {true, "a"}, {false, "b"},
	}

	reg := NewRegistry[string]()
	want := map[string]bool{}
	for i, o := range ops {
		if o.register {
			_, err := reg.Register(o.id)
			if want[o.id] != (err != nil) {
				t.Errorf("Step %d: register %s returned %v", i, o.id, err)
			}
			want[o.id] = true
		} else {
			if got := reg.Remove(o.id); got != want[o.id] {
				t.Errorf("Step %d: remove %s returned %v", i, o.id, got)
			}
			want[o.id] = false
		}

		live := 0
		for _, id := range []string{"a", "b", "c", "x"} {
			item, ok := reg.Lookup(id)
			if ok != want[id] {
				t.Errorf("Step %d: lookup %s returned %v, expected %v", i, id, ok, want[id])
			}
			if ok {
				live++
				if item.Identity() != id {
					t.Errorf("Step %d: lookup %s returned item for %s", i, id, item.Identity())
				}
			}
		}
		if reg.Len() != live {
			t.Errorf("Step %d: Len is %d, expected %d", i, reg.Len(), live)
		}
	}
}

func TestRegistryAllOrder(t *testing.T) {
	reg := NewRegistry[string]()
	for _, id := range []string{"a", "b", "c"} {
		reg.Register(id)
	}
	reg.Remove("b")
	reg.Register("d")

	var got []string
	for item := range reg.All() {
		got = append(got, item.Identity())
	}
	want := []string{"a", "c", "d"}
	if len(got) != len(want) {
		t.Fatalf("All yielded %v, expected %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("All yielded %v, expected %v", got, want)
			break
		}
	}
}
