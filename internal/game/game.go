package game

import (
	"context"
	"log"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"chosenoffset.com/tuxtown/internal/core/effect"
	"chosenoffset.com/tuxtown/internal/core/frame"
	"chosenoffset.com/tuxtown/internal/engine/anim"
	"chosenoffset.com/tuxtown/internal/entity"
	"chosenoffset.com/tuxtown/internal/movement"
	"chosenoffset.com/tuxtown/internal/render"
	"chosenoffset.com/tuxtown/internal/ui/dialoguebox"
	"chosenoffset.com/tuxtown/internal/world/atlas"
	"chosenoffset.com/tuxtown/internal/world/maploader"
)

// Game holds all scene state and applies what each tick asks for.
type Game struct {
	ScreenWidth  int
	ScreenHeight int
	TPS          int

	GameMap *maploader.Map
	World   *World
	Camera  Camera
	Sheets  *atlas.Manager
	Anims   *anim.Library
	Loop    *frame.Loop

	Renderer    render.Renderer
	InputMgr    render.InputManager
	DialogueBox *dialoguebox.Box

	ctx     context.Context
	tracer  trace.Tracer
	session trace.Span // Open dialogue session, nil when closed

	// Debug
	FrameCount int
}

// Update runs one tick: a pending advance first, then the frame loop, then
// the engine collaborators.
func (g *Game) Update() error {
	g.FrameCount++

	if g.InputMgr.IsPointerJustReleased() {
		g.apply(g.Loop.Advance())
	}

	fx, err := g.Loop.Tick(g.readInput())
	if err != nil {
		log.Printf("[Game] Dialogue could not open: %v", err)
	}
	g.apply(fx)

	dt := 1.0 / float64(g.TPS)
	g.World.Physics.Step(dt)
	g.World.Each(func(_ entity.Handle, e *entity.Entity) {
		if e.Motion != nil {
			e.Motion.Update(time.Duration(dt * float64(time.Second)))
		}
		if e.Anim != nil {
			e.Anim.Update(dt)
		}
	})

	g.UpdateCamera()
	return nil
}

// readInput samples the keys the frame loop reads.
func (g *Game) readInput() frame.Input {
	in := g.InputMgr
	return frame.Input{
		Move: movement.Input{
			Down:  in.IsKeyPressed(render.KeyS) || in.IsKeyPressed(render.KeyDown),
			Up:    in.IsKeyPressed(render.KeyW) || in.IsKeyPressed(render.KeyUp),
			Left:  in.IsKeyPressed(render.KeyA) || in.IsKeyPressed(render.KeyLeft),
			Right: in.IsKeyPressed(render.KeyD) || in.IsKeyPressed(render.KeyRight),
		},
		Action: in.IsKeyPressed(render.KeyEnter),
	}
}

// apply hands each command to the collaborator that owns it. Commands for
// entities that no longer exist are dropped.
func (g *Game) apply(fx effect.List) {
	for _, c := range fx {
		switch c.Kind {
		case effect.PauseAllAnims:
			g.Anims.PauseAll()
		case effect.ResumeAllAnims:
			g.Anims.ResumeAll()
		case effect.PausePhysics:
			g.World.Physics.Pause()
		case effect.ResumePhysics:
			g.World.Physics.Resume()
		case effect.ShowDialogue:
			g.DialogueBox.Show(c.Author, c.Text)
			g.traceMessage(c)
		case effect.HideDialogue:
			g.DialogueBox.Hide()
			g.endSession()
		default:
			g.applyToEntity(c)
		}
	}
}

func (g *Game) applyToEntity(c effect.Command) {
	e, ok := g.World.Get(c.Entity)
	if !ok {
		return
	}

	switch c.Kind {
	case effect.SetVelocity:
		if e.Body != nil {
			e.Body.SetVelocity(c.VX, c.VY)
		}
	case effect.PlayAnim:
		if e.Anim == nil {
			return
		}
		if err := e.Anim.Play(c.Anim, true); err != nil {
			log.Printf("[Game] %s: %v", e.ID, err)
			return
		}
		e.FlipX = c.FlipX
	case effect.PauseAnim:
		if e.Anim != nil {
			e.Anim.Pause()
		}
	case effect.ResumeAnim:
		if e.Anim != nil {
			e.Anim.Resume()
		}
	case effect.PauseMotion:
		if e.Motion != nil {
			e.Motion.Pause()
		}
	case effect.ResumeMotion:
		if e.Motion != nil {
			e.Motion.Resume()
		}
	}
}

// traceMessage opens a session span on the first message and records each
// later message as an event on it.
func (g *Game) traceMessage(c effect.Command) {
	if c.Index == 0 || g.session == nil {
		g.endSession()
		attrs := []attribute.KeyValue{attribute.String("dialogue.name", c.Dialogue)}
		if entry, err := g.Loop.Dialogue().Catalog().Get(c.Dialogue); err == nil {
			attrs = append(attrs, attribute.Int("dialogue.messages", len(entry.Messages)))
		}
		_, g.session = g.tracer.Start(g.ctx, "dialogue.session", trace.WithAttributes(attrs...))
		return
	}
	g.session.AddEvent("dialogue.advance", trace.WithAttributes(attribute.Int("dialogue.index", c.Index)))
}

func (g *Game) endSession() {
	if g.session == nil {
		return
	}
	g.session.End()
	g.session = nil
}

// Layout returns the game's logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.ScreenWidth, g.ScreenHeight
}

// UpdateCamera updates the camera to follow the player.
func (g *Game) UpdateCamera() {
	player, ok := g.World.Get(g.World.Player())
	if !ok || player.Body == nil {
		return
	}
	mapW, mapH := g.GameMap.PixelSize()
	g.Camera.Follow(player.Body.X, player.Body.Y, g.ScreenWidth, g.ScreenHeight, mapW, mapH)
}
