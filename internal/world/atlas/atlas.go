// Package atlas describes tilesets and spritesheets: a grid of equally sized
// cells cut from one image, optionally named and tagged with properties.
package atlas

import (
	"encoding/json"
	"fmt"
	"image"

	"chosenoffset.com/tuxtown/internal/render"
)

// PropCollides marks a tile the physics grid treats as solid.
const PropCollides = "collides"

// TileDefinition defines a single tile within an atlas
type TileDefinition struct {
	Name       string                 `json:"name"`       // Semantic name (e.g., "fence")
	AtlasX     int                    `json:"atlas_x"`    // X position in atlas (in tiles)
	AtlasY     int                    `json:"atlas_y"`    // Y position in atlas (in tiles)
	Properties map[string]interface{} `json:"properties"` // Custom properties (collides, type, etc.)
}

// AtlasConfig defines the JSON configuration for a tileset or spritesheet
type AtlasConfig struct {
	Name       string           `json:"name"`        // Atlas name
	Layer      string           `json:"layer"`       // Group this atlas belongs to (e.g., "tiles", "sprites")
	ImagePath  string           `json:"image_path"`  // Path to the atlas image, relative to the assets root
	TileWidth  int              `json:"tile_width"`  // Width of each tile in pixels
	TileHeight int              `json:"tile_height"` // Height of each tile in pixels
	Tiles      []TileDefinition `json:"tiles"`       // Named tiles; spritesheets may leave this empty
}

// Validate checks the configuration for missing or inconsistent fields.
func (c *AtlasConfig) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("atlas name is required")
	}
	if c.TileWidth <= 0 || c.TileHeight <= 0 {
		return fmt.Errorf("atlas %s: invalid tile dimensions: %dx%d", c.Name, c.TileWidth, c.TileHeight)
	}
	if c.ImagePath == "" {
		return fmt.Errorf("atlas %s: image_path is required", c.Name)
	}

	seen := make(map[string]bool, len(c.Tiles))
	for i, tile := range c.Tiles {
		if tile.Name == "" {
			return fmt.Errorf("atlas %s: tile %d has no name", c.Name, i)
		}
		if seen[tile.Name] {
			return fmt.Errorf("atlas %s: duplicate tile %s", c.Name, tile.Name)
		}
		if tile.AtlasX < 0 || tile.AtlasY < 0 {
			return fmt.Errorf("atlas %s: tile %s has negative position", c.Name, tile.Name)
		}
		seen[tile.Name] = true
	}
	return nil
}

// ParseConfig decodes and validates an atlas configuration.
func ParseConfig(data []byte) (*AtlasConfig, error) {
	var config AtlasConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse atlas config: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// Atlas represents a loaded atlas: its configuration and its image
type Atlas struct {
	Config      *AtlasConfig
	Image       render.Image
	TilesByName map[string]*TileDefinition // Quick lookup by name
}

// New pairs a validated configuration with its image.
func New(config *AtlasConfig, img render.Image) *Atlas {
	tilesByName := make(map[string]*TileDefinition, len(config.Tiles))
	for i := range config.Tiles {
		tile := &config.Tiles[i]
		tilesByName[tile.Name] = tile
	}

	return &Atlas{
		Config:      config,
		Image:       img,
		TilesByName: tilesByName,
	}
}

// Load reads an atlas image through loader using the configured image path.
func Load(config *AtlasConfig, loader render.ResourceLoader) (*Atlas, error) {
	img, err := loader.LoadImage(config.ImagePath)
	if err != nil {
		return nil, fmt.Errorf("failed to load atlas image %s: %w", config.ImagePath, err)
	}
	return New(config, img), nil
}

// GetTile returns a tile definition by name
func (a *Atlas) GetTile(name string) (*TileDefinition, bool) {
	tile, ok := a.TilesByName[name]
	return tile, ok
}

// Columns is the number of cells in one row of the image.
func (a *Atlas) Columns() int {
	w, _ := a.Image.Size()
	return w / a.Config.TileWidth
}

// FrameCount is the number of whole cells in the image.
func (a *Atlas) FrameCount() int {
	_, h := a.Image.Size()
	return a.Columns() * (h / a.Config.TileHeight)
}

// cell returns the sub-image at a grid position.
func (a *Atlas) cell(col, row int) render.Image {
	x := col * a.Config.TileWidth
	y := row * a.Config.TileHeight
	rect := image.Rect(x, y, x+a.Config.TileWidth, y+a.Config.TileHeight)
	return a.Image.SubImage(rect)
}

// GetTileSubImage returns the sub-image for a specific tile
func (a *Atlas) GetTileSubImage(tile *TileDefinition) render.Image {
	return a.cell(tile.AtlasX, tile.AtlasY)
}

// Frame returns the i-th cell counting left to right, top to bottom, the
// way spritesheet animations number their frames.
func (a *Atlas) Frame(i int) (render.Image, error) {
	cols := a.Columns()
	if cols == 0 || i < 0 || i >= a.FrameCount() {
		return nil, fmt.Errorf("atlas %s: frame %d out of range", a.Config.Name, i)
	}
	return a.cell(i%cols, i/cols), nil
}

// DrawTile draws a named tile at the given screen coordinates
func (a *Atlas) DrawTile(screen render.Image, tileName string, x, y float64) error {
	tile, ok := a.GetTile(tileName)
	if !ok {
		return fmt.Errorf("tile not found: %s", tileName)
	}
	a.DrawTileDef(screen, tile, x, y)
	return nil
}

// DrawTileDef draws a tile definition at the given screen coordinates
func (a *Atlas) DrawTileDef(screen render.Image, tile *TileDefinition, x, y float64) {
	opts := &render.DrawImageOptions{GeoM: render.NewGeoM()}
	opts.GeoM.Translate(x, y)
	screen.DrawImage(a.GetTileSubImage(tile), opts)
}

// GetTileProperty retrieves a property from a tile definition
func (td *TileDefinition) GetTileProperty(key string) (interface{}, bool) {
	if td.Properties == nil {
		return nil, false
	}
	val, ok := td.Properties[key]
	return val, ok
}

// GetTilePropertyBool retrieves a boolean property
func (td *TileDefinition) GetTilePropertyBool(key string, defaultVal bool) bool {
	val, ok := td.GetTileProperty(key)
	if !ok {
		return defaultVal
	}
	if boolVal, ok := val.(bool); ok {
		return boolVal
	}
	return defaultVal
}

// GetTilePropertyString retrieves a string property
func (td *TileDefinition) GetTilePropertyString(key string, defaultVal string) string {
	val, ok := td.GetTileProperty(key)
	if !ok {
		return defaultVal
	}
	if strVal, ok := val.(string); ok {
		return strVal
	}
	return defaultVal
}

// Collides reports whether the tile blocks movement.
func (td *TileDefinition) Collides() bool {
	return td.GetTilePropertyBool(PropCollides, false)
}
