// Package gamestate holds the state shared by the per-frame systems.
// One GameState exists per play session and is threaded through every
// system call of a tick; nothing here is global.
package gamestate

import "chosenoffset.com/tuxtown/internal/interaction"

// GameState is the explicit context of a play session.
type GameState struct {
	// Active is true while player input drives movement and false while a
	// dialogue session owns control.
	Active bool

	// Touch is rewritten by the interaction detector every frame.
	Touch interaction.Signal

	// ActionHeld remembers the action key level from the previous frame so
	// dialogue only opens on a released to pressed edge.
	ActionHeld bool
}

// New creates the state for a fresh scene. Control starts active.
func New() *GameState {
	return &GameState{Active: true}
}

// Reset returns the state to scene start.
func (gs *GameState) Reset() {
	*gs = GameState{Active: true}
}
