package gamedata

import (
	"fmt"

	"chosenoffset.com/tuxtown/internal/dialogue"
	"chosenoffset.com/tuxtown/internal/engine/anim"
	"chosenoffset.com/tuxtown/internal/world/atlas"
	"chosenoffset.com/tuxtown/internal/world/maploader"
)

// DialoguesFile holds the dialogue catalog.
const DialoguesFile = "dialogues.json"

// SpritesFile lists spritesheets and the animations cut from them.
const SpritesFile = "sprites.json"

// Sprites is the decoded sprites file.
type Sprites struct {
	Sheets     []atlas.AtlasConfig `json:"sheets"`
	Animations []anim.Definition   `json:"animations"`
}

// Validate checks every sheet and that each animation names a known sheet.
func (s *Sprites) Validate() error {
	sheets := make(map[string]bool, len(s.Sheets))
	for i := range s.Sheets {
		if err := s.Sheets[i].Validate(); err != nil {
			return err
		}
		sheets[s.Sheets[i].Name] = true
	}
	for i := range s.Animations {
		def := &s.Animations[i]
		if err := def.Validate(); err != nil {
			return err
		}
		if !sheets[def.Sheet] {
			return fmt.Errorf("animation %s: unknown sheet %s", def.Key, def.Sheet)
		}
	}
	return nil
}

// LoadDialogues parses and validates the embedded dialogue catalog.
func LoadDialogues() (*dialogue.Catalog, error) {
	data, err := ReadFile(DialoguesFile)
	if err != nil {
		return nil, err
	}
	catalog, err := dialogue.ParseCatalog(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", DialoguesFile, err)
	}
	return catalog, nil
}

// LoadSprites loads and validates the spritesheet and animation list.
func LoadSprites() (*Sprites, error) {
	sprites, err := Load[Sprites](SpritesFile)
	if err != nil {
		return nil, err
	}
	if err := sprites.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", SpritesFile, err)
	}
	return &sprites, nil
}

// LoadMap loads a map file and the tileset config it references.
func LoadMap(filename string) (*maploader.MapData, *atlas.AtlasConfig, error) {
	data, err := ReadFile(filename)
	if err != nil {
		return nil, nil, err
	}
	mapData, err := maploader.Parse(data)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", filename, err)
	}

	raw, err := ReadFile(mapData.Tileset)
	if err != nil {
		return nil, nil, err
	}
	tileset, err := atlas.ParseConfig(raw)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", mapData.Tileset, err)
	}
	if tileset.TileWidth != mapData.TileSize || tileset.TileHeight != mapData.TileSize {
		return nil, nil, fmt.Errorf("%s: tileset %dx%d does not match map tile size %d",
			filename, tileset.TileWidth, tileset.TileHeight, mapData.TileSize)
	}

	return mapData, tileset, nil
}
