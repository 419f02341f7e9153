package dialogue

import (
	"log"

	"chosenoffset.com/tuxtown/internal/core/effect"
	"chosenoffset.com/tuxtown/internal/core/gamestate"
)

// Resumer restores the world when a dialogue completes.
type Resumer interface {
	ResumeAfterDialogue(gs *gamestate.GameState, fx *effect.List)
}

// Session is an open dialogue.
type Session struct {
	Entry *Entry
	Index int
}

// Current returns the message being shown.
func (s *Session) Current() Message {
	return s.Entry.Messages[s.Index]
}

// IsLast reports whether the current message is the final one.
func (s *Session) IsLast() bool {
	return s.Index == len(s.Entry.Messages)-1
}

// Machine runs dialogue sessions. It is either closed or holds one session.
type Machine struct {
	catalog *Catalog
	resumer Resumer
	session *Session
}

// NewMachine creates a closed machine over catalog.
func NewMachine(catalog *Catalog, resumer Resumer) *Machine {
	return &Machine{
		catalog: catalog,
		resumer: resumer,
	}
}

// IsOpen reports whether a session is in progress.
func (m *Machine) IsOpen() bool {
	return m.session != nil
}

// Catalog returns the catalog the machine opens entries from.
func (m *Machine) Catalog() *Catalog {
	return m.catalog
}

// Session returns the open session, or nil.
func (m *Machine) Session() *Session {
	return m.session
}

// Check runs the per-frame open test: the player must be touching an
// interactable, control must be active, no session may be open, and the
// action key must have gone from released to pressed since the last frame.
func (m *Machine) Check(gs *gamestate.GameState, actionDown bool, fx *effect.List) error {
	pressed := actionDown && !gs.ActionHeld
	gs.ActionHeld = actionDown

	if !pressed || !gs.Touch.Touching || !gs.Active || m.IsOpen() {
		return nil
	}
	return m.Open(gs, gs.Touch.DialogueName, fx)
}

// Open starts the named dialogue. A missing entry is an error and leaves the
// state untouched; an entry the player may not trigger is silently skipped.
func (m *Machine) Open(gs *gamestate.GameState, name string, fx *effect.List) error {
	if m.IsOpen() {
		return nil
	}
	entry, err := m.catalog.Get(name)
	if err != nil {
		return err
	}
	if !entry.PlayerCanTrigger {
		return nil
	}

	gs.Active = false
	m.session = &Session{Entry: entry}
	log.Printf("[Dialogue] Opened %q (%d messages)", entry.Name, len(entry.Messages))
	m.show(fx)
	return nil
}

// Advance handles the advance event: show the next message, or complete
// the session after the last one. It does nothing while closed.
func (m *Machine) Advance(gs *gamestate.GameState, fx *effect.List) {
	if m.session == nil {
		return
	}
	if !m.session.IsLast() {
		m.session.Index++
		m.show(fx)
		return
	}
	m.complete(gs, fx)
}

func (m *Machine) show(fx *effect.List) {
	msg := m.session.Current()
	fx.Add(effect.Command{
		Kind:     effect.ShowDialogue,
		Dialogue: m.session.Entry.Name,
		Author:   msg.Author,
		Text:     msg.Text,
		Index:    m.session.Index,
	})
}

func (m *Machine) complete(gs *gamestate.GameState, fx *effect.List) {
	entry := m.session.Entry
	switch entry.OnCompletion {
	case PolicyDestroy:
		fx.Add(effect.Command{Kind: effect.HideDialogue, Dialogue: entry.Name})
		if m.resumer != nil {
			m.resumer.ResumeAfterDialogue(gs, fx)
		}
		gs.Active = true
		entry.PlayerCanTrigger = true
		m.session = nil
		log.Printf("[Dialogue] Completed %q", entry.Name)
	default:
		// Unreachable for catalogs built by NewCatalog
		log.Printf("[Dialogue] Unhandled completion policy %v for %q", entry.OnCompletion, entry.Name)
	}
}
