// Package interaction detects when the player is touching something it can
// talk to. The result is a Signal recomputed every frame.
package interaction

import "chosenoffset.com/tuxtown/internal/entity"

// Signal is the per-frame touch state.
//
// Touching is only true for frames in which an overlap was found. Entity and
// DialogueName survive EndFrame so the pause logic can still find the entity
// that was touched last.
type Signal struct {
	Touching     bool
	Entity       entity.Handle
	DialogueName string
}

// HasEntity reports whether something has been touched at least once.
func (s *Signal) HasEntity() bool {
	return !s.Entity.IsZero()
}

// Candidate is an entity the player might touch.
type Candidate struct {
	Handle       entity.Handle
	DialogueName string
}

// World answers overlap questions. Candidates must be returned in the order
// the physics collaborator reports overlaps; the first hit wins.
type World interface {
	Player() entity.Handle
	Candidates() []Candidate
	Overlaps(a, b entity.Handle) bool
}

// Detector runs the overlap check.
type Detector struct{}

// NewDetector creates a detector
func NewDetector() *Detector {
	return &Detector{}
}

// Detect tests the player against every candidate and records the first
// overlap in sig. It returns whether anything was touched.
func (d *Detector) Detect(w World, sig *Signal) bool {
	player := w.Player()
	if player.IsZero() {
		return false
	}
	for _, c := range w.Candidates() {
		if c.Handle == player || c.DialogueName == "" {
			continue
		}
		if w.Overlaps(player, c.Handle) {
			sig.Touching = true
			sig.Entity = c.Handle
			sig.DialogueName = c.DialogueName
			return true
		}
	}
	return false
}

// EndFrame clears the touching flag ahead of the next frame.
func (d *Detector) EndFrame(sig *Signal) {
	sig.Touching = false
}
