package entity

import "testing"

func TestRegistryAddGet(t *testing.T) {
	r := NewRegistry()
	cat := NewEntity("cat", "Cat", TypeNPC)
	h := r.Add(cat)

	if h.IsZero() {
		t.Fatal("Expected non-zero handle")
	}
	got, ok := r.Get(h)
	if !ok || got != cat {
		t.Errorf("Get(h) = %v, %v, want cat, true", got, ok)
	}
	if byID, ok := r.Lookup("cat"); !ok || byID != h {
		t.Errorf("Lookup(cat) = %v, %v, want %v, true", byID, ok, h)
	}
	if r.Len() != 1 {
		t.Errorf("Len() = %d, want 1", r.Len())
	}
}

func TestRegistryZeroHandle(t *testing.T) {
	r := NewRegistry()
	if _, ok := r.Get(Handle{}); ok {
		t.Error("Expected zero handle not to resolve")
	}
}

func TestRegistryRemoveInvalidatesHandle(t *testing.T) {
	r := NewRegistry()
	old := r.Add(NewEntity("cat", "Cat", TypeNPC))

	if !r.Remove(old) {
		t.Fatal("Expected Remove to succeed")
	}
	if _, ok := r.Get(old); ok {
		t.Error("Expected removed handle not to resolve")
	}
	if r.Remove(old) {
		t.Error("Expected second Remove to fail")
	}

	// The slot is reused but the stale handle must stay dead.
	dog := NewEntity("dog", "Dog", TypeNPC)
	fresh := r.Add(dog)
	if _, ok := r.Get(old); ok {
		t.Error("Expected stale handle not to resolve after slot reuse")
	}
	if got, ok := r.Get(fresh); !ok || got != dog {
		t.Errorf("Get(fresh) = %v, %v, want dog, true", got, ok)
	}
	if _, ok := r.Lookup("cat"); ok {
		t.Error("Expected removed ID to be gone")
	}
}

func TestRegistryEachOrder(t *testing.T) {
	r := NewRegistry()
	r.Add(NewEntity("a", "A", TypePlayer))
	b := r.Add(NewEntity("b", "B", TypeNPC))
	r.Add(NewEntity("c", "C", TypeNPC))
	r.Remove(b)

	var ids []string
	r.Each(func(_ Handle, e *Entity) {
		ids = append(ids, e.ID)
	})
	if len(ids) != 2 || ids[0] != "a" || ids[1] != "c" {
		t.Errorf("Each order = %v, want [a c]", ids)
	}
}

func TestIsInteractable(t *testing.T) {
	tests := []struct {
		name     string
		entity   *Entity
		expected bool
	}{
		{"player", &Entity{Type: TypePlayer, DialogueName: "x"}, false},
		{"npc with dialogue", &Entity{Type: TypeNPC, DialogueName: "cat_one"}, true},
		{"npc without dialogue", &Entity{Type: TypeNPC}, false},
	}

	for _, tt := range tests {
		if got := tt.entity.IsInteractable(); got != tt.expected {
			t.Errorf("%s: IsInteractable() = %v, want %v", tt.name, got, tt.expected)
		}
	}
}
