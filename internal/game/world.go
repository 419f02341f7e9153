package game

import (
	"chosenoffset.com/tuxtown/internal/engine/physics"
	"chosenoffset.com/tuxtown/internal/entity"
	"chosenoffset.com/tuxtown/internal/interaction"
)

// World is the live scene: the entity registry plus the physics bodies the
// entities own. It is what the frame loop sees.
type World struct {
	*entity.Registry
	Physics *physics.World

	player entity.Handle
}

// NewWorld creates an empty world over a physics world.
func NewWorld(phys *physics.World) *World {
	return &World{Registry: entity.NewRegistry(), Physics: phys}
}

// SetPlayer records which entity the player controls.
func (w *World) SetPlayer(h entity.Handle) {
	w.player = h
}

// Player returns the player handle.
func (w *World) Player() entity.Handle {
	return w.player
}

// Candidates lists every live entity that can start a dialogue.
func (w *World) Candidates() []interaction.Candidate {
	var out []interaction.Candidate
	w.Each(func(h entity.Handle, e *entity.Entity) {
		if h == w.player || !e.IsInteractable() {
			return
		}
		out = append(out, interaction.Candidate{Handle: h, DialogueName: e.DialogueName})
	})
	return out
}

// Overlaps reports whether the bodies of two live entities intersect.
func (w *World) Overlaps(a, b entity.Handle) bool {
	ea, ok := w.Get(a)
	if !ok || ea.Body == nil {
		return false
	}
	eb, ok := w.Get(b)
	if !ok || eb.Body == nil {
		return false
	}
	return w.Physics.Overlaps(ea.Body, eb.Body)
}

// Destroy removes an entity and its body.
func (w *World) Destroy(h entity.Handle) bool {
	e, ok := w.Get(h)
	if !ok {
		return false
	}
	if e.Body != nil {
		w.Physics.RemoveBody(e.Body)
	}
	return w.Remove(h)
}
