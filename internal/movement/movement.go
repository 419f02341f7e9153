// Package movement turns directional input into player velocity and
// walk animation requests.
package movement

import (
	"chosenoffset.com/tuxtown/internal/core/effect"
	"chosenoffset.com/tuxtown/internal/entity"
)

// DefaultSpeed is the walking speed in pixels per second.
const DefaultSpeed = 150.0

// Walk animation keys.
const (
	AnimWalkDown      = "walk-down"
	AnimWalkUp        = "walk-up"
	AnimWalkRightLeft = "walk-right-left"
)

// Input is the directional state sampled this frame. Each direction is
// already the OR of its arrow key and its letter key.
type Input struct {
	Down, Up, Left, Right bool
}

// State is the movement state for one frame.
type State int

const (
	Idle State = iota
	MovingDown
	MovingUp
	MovingLeft
	MovingRight
)

// String returns a readable name for the state.
func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case MovingDown:
		return "moving_down"
	case MovingUp:
		return "moving_up"
	case MovingLeft:
		return "moving_left"
	case MovingRight:
		return "moving_right"
	default:
		return "unknown"
	}
}

// Resolve picks the state for an input. Down beats up beats left beats right,
// so opposite keys held together resolve the same way every time.
func Resolve(in Input) State {
	switch {
	case in.Down:
		return MovingDown
	case in.Up:
		return MovingUp
	case in.Left:
		return MovingLeft
	case in.Right:
		return MovingRight
	default:
		return Idle
	}
}

// Controller drives the player entity.
type Controller struct {
	Speed float64
}

// NewController creates a controller. A non-positive speed uses DefaultSpeed.
func NewController(speed float64) *Controller {
	if speed <= 0 {
		speed = DefaultSpeed
	}
	return &Controller{Speed: speed}
}

// Update computes this frame's movement for player and appends the commands
// to fx. The state is recomputed from scratch every frame.
func (c *Controller) Update(player entity.Handle, active bool, in Input, fx *effect.List) State {
	if !active {
		// Animation is left alone; the pause logic freezes it globally
		fx.Add(effect.Command{Kind: effect.SetVelocity, Entity: player})
		return Idle
	}

	state := Resolve(in)
	var vx, vy float64
	var anim string
	flip := false

	switch state {
	case MovingDown:
		vy, anim = c.Speed, AnimWalkDown
	case MovingUp:
		vy, anim = -c.Speed, AnimWalkUp
	case MovingLeft:
		vx, anim = -c.Speed, AnimWalkRightLeft
	case MovingRight:
		vx, anim = c.Speed, AnimWalkRightLeft
		flip = true
	case Idle:
		fx.Add(effect.Command{Kind: effect.SetVelocity, Entity: player})
		fx.Add(effect.Command{Kind: effect.PauseAnim, Entity: player})
		return Idle
	}

	fx.Add(effect.Command{Kind: effect.SetVelocity, Entity: player, VX: vx, VY: vy})
	fx.Add(effect.Command{Kind: effect.PlayAnim, Entity: player, Anim: anim, FlipX: flip})
	return state
}
