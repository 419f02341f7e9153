package game

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/trace"

	"chosenoffset.com/tuxtown/internal/core/frame"
	"chosenoffset.com/tuxtown/internal/dialogue"
	"chosenoffset.com/tuxtown/internal/engine/anim"
	"chosenoffset.com/tuxtown/internal/engine/physics"
	"chosenoffset.com/tuxtown/internal/engine/tween"
	"chosenoffset.com/tuxtown/internal/entity"
	"chosenoffset.com/tuxtown/internal/render"
	"chosenoffset.com/tuxtown/internal/ui/dialoguebox"
	"chosenoffset.com/tuxtown/internal/world/atlas"
	"chosenoffset.com/tuxtown/internal/world/maploader"
)

// Player body size. Smaller than a tile so the player fits through gaps.
const (
	playerID         = "player"
	playerName       = "Ash"
	playerSheet      = "ash"
	playerBodyWidth  = 20
	playerBodyHeight = 28
)

// Content is the decoded game data a scene is built from.
type Content struct {
	Map        *maploader.MapData
	Tileset    *atlas.AtlasConfig
	Sheets     []atlas.AtlasConfig
	Animations []anim.Definition
	Catalog    *dialogue.Catalog
}

// Options carries the runtime settings and backends.
type Options struct {
	ScreenWidth  int
	ScreenHeight int
	TPS          int
	PlayerSpeed  float64

	Renderer render.Renderer
	Input    render.InputManager
	Loader   render.ResourceLoader
	Tracer   trace.Tracer
}

// New builds the scene: map, sprites, animations, player and NPCs.
func New(ctx context.Context, content Content, opts Options) (*Game, error) {
	tileset, err := atlas.Load(content.Tileset, opts.Loader)
	if err != nil {
		return nil, err
	}
	gameMap, err := maploader.New(content.Map, tileset)
	if err != nil {
		return nil, err
	}

	sheets := atlas.NewManager()
	if err := sheets.LoadAll(content.Sheets, opts.Loader); err != nil {
		return nil, err
	}

	anims := anim.NewLibrary()
	for _, def := range content.Animations {
		sheet, ok := sheets.GetAtlasByName(def.Sheet)
		if !ok {
			return nil, fmt.Errorf("animation %s: unknown sheet %s", def.Key, def.Sheet)
		}
		if def.End >= sheet.FrameCount() {
			return nil, fmt.Errorf("animation %s: frame %d outside sheet %s (%d frames)",
				def.Key, def.End, def.Sheet, sheet.FrameCount())
		}
		if err := anims.Create(def); err != nil {
			return nil, err
		}
	}

	world := NewWorld(physics.NewWorld(gameMap.CollisionGrid()))

	spawn := content.Map.PlayerSpawn
	player := entity.NewEntity(playerID, playerName, entity.TypePlayer)
	player.Sprite = playerSheet
	player.Body = world.Physics.AddBody(spawn.X, spawn.Y, playerBodyWidth, playerBodyHeight, true)
	player.Anim = anims.NewPlayer()
	world.SetPlayer(world.Add(player))

	for _, npc := range content.Map.NPCs {
		if err := spawnNPC(world, anims, sheets, npc); err != nil {
			return nil, err
		}
	}

	g := &Game{
		ScreenWidth:  opts.ScreenWidth,
		ScreenHeight: opts.ScreenHeight,
		TPS:          opts.TPS,
		GameMap:      gameMap,
		World:        world,
		Sheets:       sheets,
		Anims:        anims,
		Loop:         frame.NewLoop(world, content.Catalog, opts.PlayerSpeed),
		Renderer:     opts.Renderer,
		InputMgr:     opts.Input,
		DialogueBox:  dialoguebox.New(opts.Renderer),
		ctx:          ctx,
		tracer:       opts.Tracer,
	}
	if g.TPS <= 0 {
		g.TPS = 60
	}
	g.UpdateCamera()
	return g, nil
}

// spawnNPC adds an NPC, starts its animation and its patrol if it has one.
func spawnNPC(world *World, anims *anim.Library, sheets *atlas.Manager, npc maploader.NPC) error {
	sheet, ok := sheets.GetAtlasByName(npc.Sprite)
	if !ok {
		return fmt.Errorf("npc %s: unknown sprite %s", npc.ID, npc.Sprite)
	}

	e := entity.NewEntity(npc.ID, npc.Name, entity.TypeNPC)
	e.Sprite = npc.Sprite
	e.DialogueName = npc.Dialogue
	e.Body = world.Physics.AddBody(npc.X, npc.Y,
		float64(sheet.Config.TileWidth), float64(sheet.Config.TileHeight), false)
	e.Anim = anims.NewPlayer()

	if npc.Animation != "" {
		if err := e.Anim.Play(npc.Animation, false); err != nil {
			return fmt.Errorf("npc %s: %w", npc.ID, err)
		}
	}

	if p := npc.Patrol; p != nil {
		body := e.Body
		motion, err := tween.New(tween.Config{
			From:     npc.X,
			To:       p.ToX,
			Duration: time.Duration(p.DurationMS) * time.Millisecond,
			Yoyo:     true,
			Repeat:   tween.RepeatForever,
			Set:      func(v float64) { body.X = v },
			OnYoyo:   func() { e.FlipX = true },
			OnRepeat: func() { e.FlipX = false },
		})
		if err != nil {
			return fmt.Errorf("npc %s: %w", npc.ID, err)
		}
		e.Motion = motion
	}

	world.Add(e)
	return nil
}
