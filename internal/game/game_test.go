package game

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"chosenoffset.com/tuxtown/internal/dialogue"
	"chosenoffset.com/tuxtown/internal/engine/anim"
	"chosenoffset.com/tuxtown/internal/entity"
	"chosenoffset.com/tuxtown/internal/render"
	"chosenoffset.com/tuxtown/internal/render/rendertest"
	"chosenoffset.com/tuxtown/internal/telemetry"
	"chosenoffset.com/tuxtown/internal/world/atlas"
	"chosenoffset.com/tuxtown/internal/world/maploader"
)

const testCatalog = `[
	{
		"name": "cat_one",
		"playerCanTrigger": true,
		"onCompletion": "destroy",
		"messages": [
			{"author": "Cat", "text": "Meow"},
			{"author": "Cat", "text": "Meow again"}
		]
	}
]`

// testMap builds a 20x10 map with a fence column at x=10 and the given NPCs.
func testMap(npcs string) string {
	row := func(fill, fence string) string {
		cells := make([]string, 20)
		for i := range cells {
			cells[i] = fmt.Sprintf("%q", fill)
		}
		if fence != "" {
			cells[10] = fmt.Sprintf("%q", fence)
		}
		return "[" + strings.Join(cells, ",") + "]"
	}
	layer := func(fill, fence string) string {
		rows := make([]string, 10)
		for i := range rows {
			rows[i] = row(fill, fence)
		}
		return "[" + strings.Join(rows, ",") + "]"
	}

	return fmt.Sprintf(`{
		"name": "test",
		"width": 20,
		"height": 10,
		"tile_size": 32,
		"tileset": "tiles.json",
		"player_spawn": {"x": 100, "y": 100},
		"npcs": [%s],
		"layers": {"below": %s, "world": %s, "above": %s}
	}`, npcs, layer("grass", ""), layer("", "fence"), layer("", ""))
}

const touchingCat = `{"id": "cat", "name": "Cat", "sprite": "cat", "x": 110, "y": 100,
	"dialogue": "cat_one", "animation": "cat-walk-right", "patrol": {"to_x": 200, "duration_ms": 3000}}`

const patrollingCat = `{"id": "cat", "name": "Cat", "sprite": "cat", "x": 100, "y": 250,
	"dialogue": "cat_one", "animation": "cat-walk-right", "patrol": {"to_x": 200, "duration_ms": 500}}`

type harness struct {
	game     *Game
	input    *rendertest.Input
	renderer *rendertest.Renderer
	spans    *tracetest.SpanRecorder
}

func testContent(t *testing.T, mapJSON string) Content {
	t.Helper()

	mapData, err := maploader.Parse([]byte(mapJSON))
	if err != nil {
		t.Fatalf("map: %v", err)
	}
	catalog, err := dialogue.ParseCatalog([]byte(testCatalog))
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}

	return Content{
		Map: mapData,
		Tileset: &atlas.AtlasConfig{
			Name: "tiles", ImagePath: "tiles.png", TileWidth: 32, TileHeight: 32,
			Tiles: []atlas.TileDefinition{
				{Name: "grass"},
				{Name: "fence", AtlasX: 1, Properties: map[string]interface{}{"collides": true}},
			},
		},
		Sheets: []atlas.AtlasConfig{
			{Name: "ash", ImagePath: "ash.png", TileWidth: 32, TileHeight: 32},
			{Name: "cat", ImagePath: "cats.png", TileWidth: 32, TileHeight: 32},
		},
		Animations: []anim.Definition{
			{Key: "walk-down", Sheet: "ash", Start: 0, End: 3, FrameRate: 6, Repeat: -1},
			{Key: "walk-up", Sheet: "ash", Start: 12, End: 15, FrameRate: 6, Repeat: -1},
			{Key: "walk-right-left", Sheet: "ash", Start: 4, End: 7, FrameRate: 6, Repeat: -1},
			{Key: "cat-walk-right", Sheet: "cat", Start: 24, End: 26, FrameRate: 6, Repeat: -1},
		},
		Catalog: catalog,
	}
}

func testLoader() *rendertest.Loader {
	return &rendertest.Loader{Images: map[string]*rendertest.Image{
		"tiles.png": rendertest.NewImage(64, 32),
		"ash.png":   rendertest.NewImage(128, 128),
		"cats.png":  rendertest.NewImage(96, 288),
	}}
}

func newHarness(t *testing.T, mapJSON string) *harness {
	t.Helper()

	spans := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(spans))
	h := &harness{
		input:    rendertest.NewInput(),
		renderer: &rendertest.Renderer{},
		spans:    spans,
	}

	var err error
	h.game, err = New(context.Background(), testContent(t, mapJSON), Options{
		ScreenWidth:  320,
		ScreenHeight: 240,
		TPS:          60,
		PlayerSpeed:  150,
		Renderer:     h.renderer,
		Input:        h.input,
		Loader:       testLoader(),
		Tracer:       tp.Tracer("test"),
	})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return h
}

func (h *harness) update(t *testing.T, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		if err := h.game.Update(); err != nil {
			t.Fatalf("Update failed: %v", err)
		}
	}
}

func (h *harness) entity(t *testing.T, id string) *entity.Entity {
	t.Helper()
	handle, ok := h.game.World.Lookup(id)
	if !ok {
		t.Fatalf("no entity %s", id)
	}
	e, _ := h.game.World.Get(handle)
	return e
}

// release sends one pointer release tick.
func (h *harness) release(t *testing.T) {
	t.Helper()
	h.input.Released = true
	h.update(t, 1)
	h.input.Released = false
}

func TestCatDialogueSession(t *testing.T) {
	h := newHarness(t, testMap(touchingCat))
	cat := h.entity(t, "cat")

	h.input.Held[render.KeyEnter] = true
	h.update(t, 1)

	box := h.game.DialogueBox
	if !box.IsVisible() || box.Author() != "Cat" || box.Text() != "Meow" {
		t.Fatalf("Expected (Cat, Meow), got visible=%v (%s, %s)", box.IsVisible(), box.Author(), box.Text())
	}
	if h.game.Loop.State.Active {
		t.Error("Expected control to pass to the dialogue")
	}
	if !h.game.World.Physics.IsPaused() || !h.game.Anims.Paused() || !cat.Motion.IsPaused() {
		t.Error("Expected physics, animation and the cat's patrol to be paused")
	}

	catX := cat.Body.X
	h.update(t, 30)
	if cat.Body.X != catX {
		t.Error("Expected the cat to stay put during the dialogue")
	}

	h.release(t)
	if box.Text() != "Meow again" {
		t.Errorf("Expected second message, got %q", box.Text())
	}

	h.release(t)
	if box.IsVisible() {
		t.Error("Expected the box to close after the last message")
	}
	if !h.game.Loop.State.Active {
		t.Error("Expected control to return to the player")
	}
	if h.game.World.Physics.IsPaused() || h.game.Anims.Paused() {
		t.Error("Expected physics and animation to resume")
	}
	// Still touching: the cat is held in place again by the next frame.
	if !cat.Motion.IsPaused() {
		t.Error("Expected the touched cat to stay stopped")
	}
	if h.game.Loop.Dialogue().IsOpen() {
		t.Error("Expected holding Enter not to reopen the dialogue")
	}

	ended := h.spans.Ended()
	if len(ended) != 1 {
		t.Fatalf("Expected 1 dialogue span, got %d", len(ended))
	}
	span := ended[0]
	if span.Name() != "dialogue.session" {
		t.Errorf("Expected span dialogue.session, got %s", span.Name())
	}
	attrs := map[string]string{}
	for _, kv := range span.Attributes() {
		attrs[string(kv.Key)] = kv.Value.Emit()
	}
	if attrs["dialogue.name"] != "cat_one" || attrs["dialogue.messages"] != "2" {
		t.Errorf("Unexpected span attributes: %v", attrs)
	}
	if len(span.Events()) != 1 {
		t.Errorf("Expected 1 advance event, got %d", len(span.Events()))
	}
}

func TestDialogueReopensAfterNewPress(t *testing.T) {
	h := newHarness(t, testMap(touchingCat))

	h.input.Held[render.KeyEnter] = true
	h.update(t, 1)
	h.release(t)
	h.release(t)

	h.input.Held[render.KeyEnter] = false
	h.update(t, 1)
	h.input.Held[render.KeyEnter] = true
	h.update(t, 1)

	if !h.game.DialogueBox.IsVisible() || h.game.DialogueBox.Text() != "Meow" {
		t.Error("Expected a fresh press to start the dialogue from the first message")
	}
}

func TestReleaseWhileClosedDoesNothing(t *testing.T) {
	h := newHarness(t, testMap(touchingCat))
	h.release(t)
	if h.game.DialogueBox.IsVisible() || !h.game.Loop.State.Active {
		t.Error("Expected a stray release to be ignored")
	}
}

func TestPlayerWalksAndCollides(t *testing.T) {
	h := newHarness(t, testMap(patrollingCat))
	player := h.entity(t, "player")
	startX := player.Body.X

	h.input.Held[render.KeyRight] = true
	h.update(t, 30)

	if player.Body.X <= startX {
		t.Fatalf("Expected the player to move right, x=%v", player.Body.X)
	}
	if !player.FlipX || player.Anim.CurrentKey() != "walk-right-left" {
		t.Errorf("Expected flipped walk-right-left, got flip=%v key=%s", player.FlipX, player.Anim.CurrentKey())
	}

	// The fence column starts at x=320
	h.update(t, 120)
	if right := player.Body.X + player.Body.W/2; right > 320 {
		t.Errorf("Expected the fence to stop the player, right edge at %v", right)
	}

	h.input.Held[render.KeyRight] = false
	h.update(t, 1)
	if player.Body.VX != 0 || player.Body.VY != 0 {
		t.Errorf("Expected zero velocity when idle, got (%v, %v)", player.Body.VX, player.Body.VY)
	}
	if !player.Anim.IsPaused() {
		t.Error("Expected the walk animation to freeze when idle")
	}
}

func TestCatPatrolFlipsOnYoyo(t *testing.T) {
	h := newHarness(t, testMap(patrollingCat))
	cat := h.entity(t, "cat")

	h.update(t, 15)
	if cat.Body.X <= 100 || cat.FlipX {
		t.Errorf("Expected the cat walking right unflipped, x=%v flip=%v", cat.Body.X, cat.FlipX)
	}

	h.update(t, 25)
	if !cat.FlipX {
		t.Error("Expected the cat to flip when turning back")
	}

	h.update(t, 25)
	if cat.FlipX {
		t.Error("Expected the cat to unflip on the next cycle")
	}
}

func TestMissingDialogueKeepsPlaying(t *testing.T) {
	npc := strings.Replace(touchingCat, `"cat_one"`, `"missing"`, 1)
	h := newHarness(t, testMap(npc))

	h.input.Held[render.KeyEnter] = true
	h.update(t, 1)

	if h.game.DialogueBox.IsVisible() || !h.game.Loop.State.Active {
		t.Error("Expected a missing dialogue to leave the game running")
	}
}

func TestDrawOrder(t *testing.T) {
	h := newHarness(t, testMap(touchingCat))
	screen := rendertest.NewImage(320, 240)

	h.game.Draw(screen)
	if len(screen.Draws) == 0 {
		t.Fatal("Expected tiles and sprites to be drawn")
	}
	if len(h.renderer.Texts) != 0 {
		t.Error("Expected no dialogue text while closed")
	}

	h.input.Held[render.KeyEnter] = true
	h.update(t, 1)
	h.game.Draw(screen)
	if got := h.renderer.TextsOn(); len(got) != 2 || got[0] != "Cat" || got[1] != "Meow" {
		t.Errorf("Expected dialogue text, got %v", got)
	}
}

func TestDestroyedCatIsIgnored(t *testing.T) {
	h := newHarness(t, testMap(touchingCat))
	handle, _ := h.game.World.Lookup("cat")

	h.update(t, 1)
	if !h.game.World.Destroy(handle) {
		t.Fatal("Expected the cat to be destroyed")
	}
	h.input.Held[render.KeyEnter] = true
	h.update(t, 2)

	if h.game.DialogueBox.IsVisible() {
		t.Error("Expected no dialogue with a destroyed cat")
	}
	if len(h.game.World.Candidates()) != 0 {
		t.Error("Expected no candidates left")
	}
}

func TestManagerQuitsOnEscape(t *testing.T) {
	h := newHarness(t, testMap(patrollingCat))
	m := NewManager(h.game)

	if err := m.Update(); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	h.input.Pressed[render.KeyEscape] = true
	if err := m.Update(); !errors.Is(err, render.ErrQuit) {
		t.Errorf("Expected ErrQuit, got %v", err)
	}
}

func TestManagerLayoutResizes(t *testing.T) {
	h := newHarness(t, testMap(patrollingCat))
	m := NewManager(h.game)

	w, hgt := m.Layout(640, 320)
	if w != 640 || hgt != 320 || h.game.ScreenWidth != 640 || h.game.ScreenHeight != 320 {
		t.Errorf("Expected the scene resized to 640x320, got %dx%d", h.game.ScreenWidth, h.game.ScreenHeight)
	}
	// Map is exactly 640x320, so the camera pins to the origin.
	if h.game.Camera.X != 0 || h.game.Camera.Y != 0 {
		t.Errorf("Expected camera at origin, got (%v, %v)", h.game.Camera.X, h.game.Camera.Y)
	}
}

func TestNewRejectsBadContent(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Content)
	}{
		{"frame outside sheet", func(c *Content) { c.Animations[3].End = 30 }},
		{"unknown sheet", func(c *Content) { c.Animations[0].Sheet = "dog" }},
		{"unknown npc sprite", func(c *Content) { c.Map.NPCs[0].Sprite = "dog" }},
		{"unknown npc animation", func(c *Content) { c.Map.NPCs[0].Animation = "cat-sleep" }},
	}

	for _, tt := range tests {
		content := testContent(t, testMap(patrollingCat))
		tt.mutate(&content)
		_, err := New(context.Background(), content, Options{
			Renderer: &rendertest.Renderer{},
			Input:    rendertest.NewInput(),
			Loader:   testLoader(),
			Tracer:   telemetry.NoopTracer(),
		})
		if err == nil {
			t.Errorf("%s: expected an error", tt.name)
		}
	}
}

func TestCameraFollow(t *testing.T) {
	tests := []struct {
		name  string
		x, y  float64
		wantX float64
		wantY float64
	}{
		{"centered", 400, 150, 240, 30},
		{"clamped low", 10, 10, 0, 0},
		{"clamped high", 630, 310, 320, 80},
	}
	for _, tt := range tests {
		var c Camera
		c.Follow(tt.x, tt.y, 320, 240, 640, 320)
		if c.X != tt.wantX || c.Y != tt.wantY {
			t.Errorf("%s: got (%v, %v), want (%v, %v)", tt.name, c.X, c.Y, tt.wantX, tt.wantY)
		}
	}
}
