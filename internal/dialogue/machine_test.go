package dialogue

import (
	"errors"
	"testing"

	"chosenoffset.com/tuxtown/internal/core/effect"
	"chosenoffset.com/tuxtown/internal/core/gamestate"
	"chosenoffset.com/tuxtown/internal/entity"
)

type countingResumer struct {
	calls int
}

func (r *countingResumer) ResumeAfterDialogue(gs *gamestate.GameState, fx *effect.List) {
	r.calls++
	fx.Add(effect.Command{Kind: effect.ResumePhysics})
}

func newCatMachine(t *testing.T) (*Machine, *countingResumer, *gamestate.GameState) {
	t.Helper()
	c, err := ParseCatalog([]byte(catJSON))
	if err != nil {
		t.Fatal(err)
	}
	r := &countingResumer{}
	gs := gamestate.New()
	gs.Touch.Touching = true
	gs.Touch.Entity = entity.NewRegistry().Add(entity.NewEntity("cat", "Cat", entity.TypeNPC))
	gs.Touch.DialogueName = "cat_one"
	return NewMachine(c, r), r, gs
}

func TestCheckOpensSession(t *testing.T) {
	m, _, gs := newCatMachine(t)
	var fx effect.List

	if err := m.Check(gs, true, &fx); err != nil {
		t.Fatalf("Check failed: %v", err)
	}
	if !m.IsOpen() {
		t.Fatal("Expected session to open")
	}
	if gs.Active {
		t.Error("Expected control to be inactive during dialogue")
	}
	if m.Session().Index != 0 {
		t.Errorf("Expected index 0, got %d", m.Session().Index)
	}
	show := fx.Find(effect.ShowDialogue)
	if show == nil || show.Author != "Cat" || show.Text != "Meow" || show.Index != 0 {
		t.Errorf("Expected first message to be shown, got %+v", show)
	}
}

func TestCheckRequiresTouchAndAction(t *testing.T) {
	tests := []struct {
		name     string
		touching bool
		action   bool
		active   bool
	}{
		{"no touch", false, true, true},
		{"no action", true, false, true},
		{"inactive", true, true, false},
	}

	for _, tt := range tests {
		m, _, gs := newCatMachine(t)
		gs.Touch.Touching = tt.touching
		gs.Active = tt.active
		var fx effect.List
		if err := m.Check(gs, tt.action, &fx); err != nil {
			t.Errorf("%s: unexpected error %v", tt.name, err)
		}
		if m.IsOpen() {
			t.Errorf("%s: expected no session", tt.name)
		}
		if len(fx) != 0 {
			t.Errorf("%s: expected no effects, got %v", tt.name, fx)
		}
	}
}

func TestAdvanceThroughSession(t *testing.T) {
	m, r, gs := newCatMachine(t)
	var fx effect.List
	m.Check(gs, true, &fx)

	fx = nil
	m.Advance(gs, &fx)
	if !m.IsOpen() {
		t.Fatal("Expected session to stay open after first advance")
	}
	if m.Session().Index != 1 {
		t.Errorf("Expected index 1, got %d", m.Session().Index)
	}
	show := fx.Find(effect.ShowDialogue)
	if show == nil || show.Text != "Meow again" {
		t.Errorf("Expected second message, got %+v", show)
	}

	fx = nil
	m.Advance(gs, &fx)
	if m.IsOpen() {
		t.Fatal("Expected session to close after last advance")
	}
	if !gs.Active {
		t.Error("Expected control to be active again")
	}
	if !fx.Has(effect.HideDialogue) {
		t.Error("Expected dialogue to be hidden")
	}
	if r.calls != 1 || !fx.Has(effect.ResumePhysics) {
		t.Errorf("Expected resume path to run once, got %d calls", r.calls)
	}
	e, _ := m.catalog.Get("cat_one")
	if !e.PlayerCanTrigger {
		t.Error("Expected playerCanTrigger to be true after completion")
	}
}

func TestSessionNeedsExactlyNAdvances(t *testing.T) {
	for n := 1; n <= 4; n++ {
		msgs := make([]Message, n)
		for i := range msgs {
			msgs[i] = Message{Author: "A", Text: "line"}
		}
		c, err := NewCatalog([]Entry{{Name: "d", PlayerCanTrigger: true, OnCompletion: PolicyDestroy, Messages: msgs}})
		if err != nil {
			t.Fatal(err)
		}
		m := NewMachine(c, nil)
		gs := gamestate.New()
		var fx effect.List
		if err := m.Open(gs, "d", &fx); err != nil {
			t.Fatal(err)
		}

		for i := 1; i < n; i++ {
			m.Advance(gs, &fx)
			if !m.IsOpen() {
				t.Fatalf("n=%d: session closed after %d advances", n, i)
			}
		}
		m.Advance(gs, &fx)
		if m.IsOpen() {
			t.Errorf("n=%d: session still open after %d advances", n, n)
		}
		if !gs.Active {
			t.Errorf("n=%d: expected control to be active", n)
		}
	}
}

func TestIndexNeverDecreases(t *testing.T) {
	m, _, gs := newCatMachine(t)
	var fx effect.List
	m.Check(gs, true, &fx)

	last := m.Session().Index
	for m.IsOpen() {
		m.Advance(gs, &fx)
		if m.IsOpen() {
			idx := m.Session().Index
			if idx < last || idx > len(m.Session().Entry.Messages)-1 {
				t.Fatalf("Index out of order: %d after %d", idx, last)
			}
			last = idx
		}
	}
}

func TestOpenNotFoundLeavesStateUnchanged(t *testing.T) {
	m, r, gs := newCatMachine(t)
	gs.Touch.DialogueName = "dog_one"
	var fx effect.List

	err := m.Check(gs, true, &fx)
	if !errors.Is(err, ErrDialogueNotFound) {
		t.Fatalf("Expected ErrDialogueNotFound, got %v", err)
	}
	if !gs.Active {
		t.Error("Expected control to stay active")
	}
	if m.IsOpen() || len(fx) != 0 || r.calls != 0 {
		t.Error("Expected no session and no effects")
	}
}

func TestPlayerCannotTrigger(t *testing.T) {
	m, _, gs := newCatMachine(t)
	e, _ := m.catalog.Get("cat_one")
	e.PlayerCanTrigger = false
	var fx effect.List

	if err := m.Check(gs, true, &fx); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if m.IsOpen() || !gs.Active || len(fx) != 0 {
		t.Error("Expected no session and no state change")
	}
}

func TestActionMustBeReleasedBeforeReopen(t *testing.T) {
	m, _, gs := newCatMachine(t)
	var fx effect.List

	m.Check(gs, true, &fx)
	m.Advance(gs, &fx)
	m.Advance(gs, &fx)
	if m.IsOpen() {
		t.Fatal("Expected session to be closed")
	}

	// Action still held from the first press: no retrigger
	if err := m.Check(gs, true, &fx); err != nil {
		t.Fatal(err)
	}
	if m.IsOpen() {
		t.Fatal("Expected held action key not to reopen the dialogue")
	}

	m.Check(gs, false, &fx)
	m.Check(gs, true, &fx)
	if !m.IsOpen() {
		t.Error("Expected a fresh press to reopen the dialogue")
	}
}

func TestOpenWhileOpenIsIgnored(t *testing.T) {
	m, _, gs := newCatMachine(t)
	var fx effect.List
	m.Open(gs, "cat_one", &fx)
	m.Advance(gs, &fx)

	fx = nil
	if err := m.Open(gs, "cat_one", &fx); err != nil {
		t.Fatal(err)
	}
	if m.Session().Index != 1 || len(fx) != 0 {
		t.Error("Expected second Open to leave the session alone")
	}
}

func TestAdvanceWhileClosed(t *testing.T) {
	m, r, gs := newCatMachine(t)
	var fx effect.List
	m.Advance(gs, &fx)
	if len(fx) != 0 || r.calls != 0 || !gs.Active {
		t.Error("Expected advance while closed to do nothing")
	}
}
