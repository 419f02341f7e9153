// Package maploader reads tile maps: three tile layers, a player spawn and
// the NPCs placed on the map.
package maploader

import (
	"encoding/json"
	"fmt"

	"chosenoffset.com/tuxtown/internal/engine/physics"
	"chosenoffset.com/tuxtown/internal/render"
	"chosenoffset.com/tuxtown/internal/world/atlas"
)

// Layer names. Below and above sandwich the entities; world carries collision.
const (
	LayerBelow = "below"
	LayerWorld = "world"
	LayerAbove = "above"
)

// SpawnPoint defines a player or entity spawn location
type SpawnPoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Patrol moves an NPC back and forth along x.
type Patrol struct {
	ToX        float64 `json:"to_x"`
	DurationMS int     `json:"duration_ms"` // One leg
}

// NPC places a non-player character on the map.
type NPC struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Sprite    string  `json:"sprite"` // Spritesheet name
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Dialogue  string  `json:"dialogue"`  // Dialogue catalog entry, empty for none
	Animation string  `json:"animation"` // Animation played while moving
	Patrol    *Patrol `json:"patrol,omitempty"`
}

// Layers holds tile names indexed [y][x]; an empty name is an empty cell.
type Layers struct {
	Below [][]string `json:"below"`
	World [][]string `json:"world"`
	Above [][]string `json:"above"`
}

// MapData represents the map file
type MapData struct {
	Name        string     `json:"name"`
	Width       int        `json:"width"`     // In tiles
	Height      int        `json:"height"`    // In tiles
	TileSize    int        `json:"tile_size"` // Pixels per tile side
	Tileset     string     `json:"tileset"`   // Tileset config file
	PlayerSpawn SpawnPoint `json:"player_spawn"`
	NPCs        []NPC      `json:"npcs"`
	Layers      Layers     `json:"layers"`
}

// Parse decodes and validates map data.
func Parse(data []byte) (*MapData, error) {
	var mapData MapData
	if err := json.Unmarshal(data, &mapData); err != nil {
		return nil, fmt.Errorf("failed to parse map: %w", err)
	}
	if err := mapData.Validate(); err != nil {
		return nil, fmt.Errorf("invalid map data in %s: %w", mapData.Name, err)
	}
	return &mapData, nil
}

// Validate checks dimensions, layers, spawn and NPC placements
func (d *MapData) Validate() error {
	if d.Width <= 0 || d.Height <= 0 {
		return fmt.Errorf("invalid map dimensions: %dx%d", d.Width, d.Height)
	}

	if d.TileSize <= 0 {
		return fmt.Errorf("invalid tile size: %d", d.TileSize)
	}

	if d.Tileset == "" {
		return fmt.Errorf("tileset is required")
	}

	for _, layer := range []struct {
		name  string
		tiles [][]string
	}{
		{LayerBelow, d.Layers.Below},
		{LayerWorld, d.Layers.World},
		{LayerAbove, d.Layers.Above},
	} {
		if err := d.validateLayer(layer.name, layer.tiles); err != nil {
			return err
		}
	}

	if !d.inBounds(d.PlayerSpawn) {
		return fmt.Errorf("player spawn (%v, %v) is outside the map", d.PlayerSpawn.X, d.PlayerSpawn.Y)
	}

	seen := make(map[string]bool, len(d.NPCs))
	for _, npc := range d.NPCs {
		if npc.ID == "" {
			return fmt.Errorf("npc without id")
		}
		if seen[npc.ID] {
			return fmt.Errorf("duplicate npc %s", npc.ID)
		}
		seen[npc.ID] = true
		if npc.Sprite == "" {
			return fmt.Errorf("npc %s: sprite is required", npc.ID)
		}
		if !d.inBounds(SpawnPoint{X: npc.X, Y: npc.Y}) {
			return fmt.Errorf("npc %s at (%v, %v) is outside the map", npc.ID, npc.X, npc.Y)
		}
		if p := npc.Patrol; p != nil {
			if p.DurationMS <= 0 {
				return fmt.Errorf("npc %s: patrol duration must be positive", npc.ID)
			}
			if !d.inBounds(SpawnPoint{X: p.ToX, Y: npc.Y}) {
				return fmt.Errorf("npc %s: patrol leaves the map", npc.ID)
			}
		}
	}

	return nil
}

// validateLayer checks a tile layer has exactly Height rows of Width cells
func (d *MapData) validateLayer(name string, tiles [][]string) error {
	if len(tiles) != d.Height {
		return fmt.Errorf("layer %s height mismatch: expected %d, got %d", name, d.Height, len(tiles))
	}

	for y, row := range tiles {
		if len(row) != d.Width {
			return fmt.Errorf("layer %s width mismatch at row %d: expected %d, got %d", name, y, d.Width, len(row))
		}
	}

	return nil
}

func (d *MapData) inBounds(p SpawnPoint) bool {
	return p.X >= 0 && p.Y >= 0 &&
		p.X < float64(d.Width*d.TileSize) && p.Y < float64(d.Height*d.TileSize)
}

// Map represents a loaded map with its tileset
type Map struct {
	Data  *MapData
	Tiles *atlas.Atlas
}

// New binds map data to its tileset and checks every tile name resolves.
func New(data *MapData, tiles *atlas.Atlas) (*Map, error) {
	m := &Map{Data: data, Tiles: tiles}
	for _, name := range []string{LayerBelow, LayerWorld, LayerAbove} {
		layer := m.Layer(name)
		for y, row := range layer {
			for x, tileName := range row {
				if tileName == "" {
					continue
				}
				if _, ok := tiles.GetTile(tileName); !ok {
					return nil, fmt.Errorf("layer %s (%d, %d): tile not found in tileset: %s", name, x, y, tileName)
				}
			}
		}
	}
	return m, nil
}

// Layer returns the named tile layer, or nil for an unknown name
func (m *Map) Layer(name string) [][]string {
	switch name {
	case LayerBelow:
		return m.Data.Layers.Below
	case LayerWorld:
		return m.Data.Layers.World
	case LayerAbove:
		return m.Data.Layers.Above
	}
	return nil
}

// GetTileDefAt returns the tile definition at the given grid coordinates.
// Empty cells report false.
func (m *Map) GetTileDefAt(layer string, x, y int) (*atlas.TileDefinition, bool) {
	if x < 0 || x >= m.Data.Width || y < 0 || y >= m.Data.Height {
		return nil, false
	}
	tiles := m.Layer(layer)
	if tiles == nil || tiles[y][x] == "" {
		return nil, false
	}
	return m.Tiles.GetTile(tiles[y][x])
}

// PixelSize is the map extent in pixels.
func (m *Map) PixelSize() (width, height int) {
	return m.Data.Width * m.Data.TileSize, m.Data.Height * m.Data.TileSize
}

// CollisionGrid marks every world-layer tile whose collides property is set.
func (m *Map) CollisionGrid() *physics.Grid {
	grid := physics.NewGrid(m.Data.Width, m.Data.Height, m.Data.TileSize)
	for y := 0; y < m.Data.Height; y++ {
		for x := 0; x < m.Data.Width; x++ {
			if tile, ok := m.GetTileDefAt(LayerWorld, x, y); ok && tile.Collides() {
				grid.SetCollides(x, y, true)
			}
		}
	}
	return grid
}

// DrawLayer draws every tile of a layer visible in the view rectangle,
// offset by the camera position.
func (m *Map) DrawLayer(screen render.Image, layer string, camX, camY float64, viewW, viewH int) {
	size := m.Data.TileSize
	x0, y0 := max(int(camX)/size, 0), max(int(camY)/size, 0)
	x1 := min((int(camX)+viewW)/size+1, m.Data.Width)
	y1 := min((int(camY)+viewH)/size+1, m.Data.Height)

	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			tile, ok := m.GetTileDefAt(layer, x, y)
			if !ok {
				continue
			}
			m.Tiles.DrawTileDef(screen, tile, float64(x*size)-camX, float64(y*size)-camY)
		}
	}
}
