// Package pause keeps physics, animation and NPC motion paused or running in
// step with dialogue and with what the player is touching.
package pause

import (
	"chosenoffset.com/tuxtown/internal/core/effect"
	"chosenoffset.com/tuxtown/internal/core/gamestate"
	"chosenoffset.com/tuxtown/internal/entity"
)

// Resolver tells whether a handle still refers to a live entity.
// *entity.Registry satisfies it.
type Resolver interface {
	Get(h entity.Handle) (*entity.Entity, bool)
}

// Orchestrator issues pause and resume commands. Every command it emits is
// safe to repeat; the engine treats re-pausing and re-resuming as no-ops.
type Orchestrator struct {
	entities Resolver
}

// NewOrchestrator creates an orchestrator resolving handles through entities.
func NewOrchestrator(entities Resolver) *Orchestrator {
	return &Orchestrator{entities: entities}
}

// Reconcile runs last in the frame.
//
//   - dialogue open: freeze all animation, physics, and the touched entity's motion
//   - touching, dialogue closed: freeze only the touched entity
//   - otherwise: let the last touched entity move again
func (o *Orchestrator) Reconcile(gs *gamestate.GameState, fx *effect.List) {
	target, ok := o.target(gs)

	switch {
	case !gs.Active:
		fx.Add(effect.Command{Kind: effect.PauseAllAnims})
		fx.Add(effect.Command{Kind: effect.PausePhysics})
		if ok {
			fx.Add(effect.Command{Kind: effect.PauseMotion, Entity: target})
		}
	case gs.Touch.Touching:
		if ok {
			fx.Add(effect.Command{Kind: effect.PauseMotion, Entity: target})
			fx.Add(effect.Command{Kind: effect.PauseAnim, Entity: target})
		}
	case ok:
		fx.Add(effect.Command{Kind: effect.ResumeMotion, Entity: target})
		fx.Add(effect.Command{Kind: effect.ResumeAnim, Entity: target})
	}
}

// ResumeAfterDialogue is the resume path run when a dialogue completes.
func (o *Orchestrator) ResumeAfterDialogue(gs *gamestate.GameState, fx *effect.List) {
	fx.Add(effect.Command{Kind: effect.ResumeAllAnims})
	fx.Add(effect.Command{Kind: effect.ResumePhysics})
	if target, ok := o.target(gs); ok {
		fx.Add(effect.Command{Kind: effect.ResumeMotion, Entity: target})
	}
}

// target returns the touched or last touched entity if it still exists.
func (o *Orchestrator) target(gs *gamestate.GameState) (entity.Handle, bool) {
	h := gs.Touch.Entity
	if h.IsZero() {
		return h, false
	}
	if _, ok := o.entities.Get(h); !ok {
		return h, false
	}
	return h, true
}
