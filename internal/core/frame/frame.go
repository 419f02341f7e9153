// Package frame runs one game tick: interaction, dialogue, movement and pause
// reconciliation, in that order, over an explicit GameState.
package frame

import (
	"chosenoffset.com/tuxtown/internal/core/effect"
	"chosenoffset.com/tuxtown/internal/core/gamestate"
	"chosenoffset.com/tuxtown/internal/dialogue"
	"chosenoffset.com/tuxtown/internal/entity"
	"chosenoffset.com/tuxtown/internal/interaction"
	"chosenoffset.com/tuxtown/internal/movement"
	"chosenoffset.com/tuxtown/internal/pause"
)

// World is the scene as seen by the tick.
type World interface {
	interaction.World
	pause.Resolver
}

// Input is everything sampled from the keyboard for one tick.
type Input struct {
	Move   movement.Input
	Action bool // Action key level this frame
}

// Loop owns the per-session state and the systems that act on it.
type Loop struct {
	State *gamestate.GameState

	world    World
	detector *interaction.Detector
	dialogue *dialogue.Machine
	movement *movement.Controller
	pause    *pause.Orchestrator
}

// NewLoop wires the systems together over a fresh GameState.
func NewLoop(world World, catalog *dialogue.Catalog, speed float64) *Loop {
	orchestrator := pause.NewOrchestrator(world)
	return &Loop{
		State:    gamestate.New(),
		world:    world,
		detector: interaction.NewDetector(),
		dialogue: dialogue.NewMachine(catalog, orchestrator),
		movement: movement.NewController(speed),
		pause:    orchestrator,
	}
}

// Dialogue exposes the dialogue machine for inspection.
func (l *Loop) Dialogue() *dialogue.Machine {
	return l.dialogue
}

// Tick runs one frame. A dialogue configuration error aborts only the open
// attempt: the rest of the frame still runs and the error is returned.
func (l *Loop) Tick(in Input) (effect.List, error) {
	var fx effect.List
	gs := l.State

	l.detector.Detect(l.world, &gs.Touch)
	err := l.dialogue.Check(gs, in.Action, &fx)
	l.movement.Update(l.world.Player(), gs.Active, in.Move, &fx)
	l.pause.Reconcile(gs, &fx)
	l.detector.EndFrame(&gs.Touch)

	return fx, err
}

// Advance delivers the advance event. The host must call it between ticks.
func (l *Loop) Advance() effect.List {
	var fx effect.List
	l.dialogue.Advance(l.State, &fx)
	return fx
}

// Player returns the handle of the player entity.
func (l *Loop) Player() entity.Handle {
	return l.world.Player()
}
