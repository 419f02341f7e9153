package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"
	"go.opentelemetry.io/otel/trace"

	"chosenoffset.com/tuxtown/internal/config"
	"chosenoffset.com/tuxtown/internal/game"
	"chosenoffset.com/tuxtown/internal/gamedata"
	"chosenoffset.com/tuxtown/internal/placeholders"
	ebitenrender "chosenoffset.com/tuxtown/internal/render/ebiten"
	"chosenoffset.com/tuxtown/internal/telemetry"
)

func main() {
	// A missing .env is fine; the environment and defaults still apply
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx := context.Background()

	var tracer trace.Tracer
	if cfg.Telemetry {
		shutdown, err := telemetry.Setup(ctx)
		if err != nil {
			log.Fatalf("Failed to set up telemetry: %v", err)
		}
		defer func() {
			if err := shutdown(ctx); err != nil {
				log.Printf("Telemetry shutdown: %v", err)
			}
		}()
		tracer = telemetry.Tracer("dialogue")
	} else {
		tracer = telemetry.NoopTracer()
	}

	catalog, err := gamedata.LoadDialogues()
	if err != nil {
		log.Fatalf("Failed to load dialogues: %v", err)
	}
	sprites, err := gamedata.LoadSprites()
	if err != nil {
		log.Fatalf("Failed to load sprites: %v", err)
	}
	mapData, tileset, err := gamedata.LoadMap(cfg.Map)
	if err != nil {
		log.Fatalf("Failed to load map: %v", err)
	}
	log.Printf("Loaded map %s (%dx%d, %d NPCs, %d dialogues)",
		mapData.Name, mapData.Width, mapData.Height, len(mapData.NPCs), catalog.Len())

	// Initialize the renderer backend (ebiten)
	renderer := ebitenrender.NewRenderer()
	inputMgr := ebitenrender.NewInputManager()
	loader := ebitenrender.NewResourceLoader(cfg.AssetsDir, placeholders.Fallback)
	engine := ebitenrender.NewEngine()

	g, err := game.New(ctx, game.Content{
		Map:        mapData,
		Tileset:    tileset,
		Sheets:     sprites.Sheets,
		Animations: sprites.Animations,
		Catalog:    catalog,
	}, game.Options{
		ScreenWidth:  cfg.ScreenWidth,
		ScreenHeight: cfg.ScreenHeight,
		TPS:          cfg.TPS,
		PlayerSpeed:  cfg.PlayerSpeed,
		Renderer:     renderer,
		Input:        inputMgr,
		Loader:       loader,
		Tracer:       tracer,
	})
	if err != nil {
		log.Fatalf("Failed to build scene: %v", err)
	}

	// Set up the window
	engine.SetWindowSize(cfg.ScreenWidth, cfg.ScreenHeight)
	engine.SetWindowTitle(cfg.Title)
	engine.SetTPS(cfg.TPS)
	engine.SetWindowResizable(true)

	log.Println("Starting game...")
	if err := engine.RunGame(game.NewManager(g)); err != nil {
		log.Fatal(err)
	}
}
