package placeholders

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"sort"
)

// Asset paths, relative to the assets directory, that placeholders can stand in for.
const (
	TilesetPath  = "tilesets/tiles.png"
	AshSheetPath = "sprites/ash.png"
	CatSheetPath = "sprites/cats.png"
)

// Sheet layout. Frame numbers run left to right, top to bottom.
const (
	TilesetColumns  = 4
	AshSheetColumns = 4 // Rows: down, right, left, up
	CatSheetColumns = 3
	CatSheetRows    = 9 // Walking right is the last row
)

// GenerateTileset builds the town tileset in the cell order tiles.json expects:
// grass, path, flowers, water / fence, tree trunk, tree top, house wall / roof.
func GenerateTileset() *image.RGBA {
	p := ColorPalette
	tiles := []*image.RGBA{
		CreatePatternedTile(p.Grass, Darken(p.Grass, 0.85), "dots"),
		CreatePatternedTile(p.Path, Darken(p.Path, 0.9), "dots"),
		CreatePatternedTile(p.Grass, p.Flowers, "dots"),
		CreatePatternedTile(p.Water, Lighten(p.Water, 0.4), "waves"),

		CreatePatternedTile(p.Grass, p.Fence, "rails"),
		CreateBorderedTile(p.TreeTrunk, Darken(p.TreeTrunk, 0.7), 2),
		CreateCircle(p.TreeTop, Darken(p.TreeTop, 0.7)),
		CreatePatternedTile(p.HouseWall, Darken(p.HouseWall, 0.8), "grid"),

		CreateBorderedTile(p.Roof, Darken(p.Roof, 0.7), 1),
	}
	return CreateAtlas(tiles, TilesetColumns)
}

// facing is the direction a character frame looks.
type facing int

const (
	faceDown facing = iota
	faceRight
	faceLeft
	faceUp
)

// characterFrame draws a small figure. step alternates the legs.
func characterFrame(dir facing, step int) *image.RGBA {
	p := ColorPalette
	img := image.NewRGBA(image.Rect(0, 0, TileSize, TileSize))

	// Head and body
	fillRect(img, 11, 4, 10, 9, Lighten(p.Ash, 0.6))
	fillRect(img, 11, 3, 10, 3, p.AshHair)
	fillRect(img, 9, 13, 14, 10, p.Ash)

	// Eyes show the facing direction
	switch dir {
	case faceDown:
		fillRect(img, 13, 8, 2, 2, p.Outline)
		fillRect(img, 17, 8, 2, 2, p.Outline)
	case faceRight:
		fillRect(img, 18, 8, 2, 2, p.Outline)
	case faceLeft:
		fillRect(img, 12, 8, 2, 2, p.Outline)
	case faceUp:
		fillRect(img, 11, 4, 10, 6, p.AshHair)
	}

	// Legs
	left, right := 4, 4
	switch step % 4 {
	case 1:
		left = 2
	case 3:
		right = 2
	}
	fillRect(img, 11, 23, 4, 4+left, Darken(p.Ash, 0.6))
	fillRect(img, 17, 23, 4, 4+right, Darken(p.Ash, 0.6))

	return img
}

// GenerateAshSheet builds the player sheet: four walk frames per direction.
func GenerateAshSheet() *image.RGBA {
	var frames []*image.RGBA
	for _, dir := range []facing{faceDown, faceRight, faceLeft, faceUp} {
		for step := 0; step < AshSheetColumns; step++ {
			frames = append(frames, characterFrame(dir, step))
		}
	}
	return CreateAtlas(frames, AshSheetColumns)
}

// catFrame draws a cat facing right. step moves the tail.
func catFrame(step int) *image.RGBA {
	p := ColorPalette
	img := image.NewRGBA(image.Rect(0, 0, TileSize, TileSize))

	// Body, head, ears, eye
	fillRect(img, 6, 16, 18, 9, p.Cat)
	fillRect(img, 20, 10, 9, 8, p.Cat)
	fillRect(img, 20, 7, 3, 3, Darken(p.Cat, 0.8))
	fillRect(img, 26, 7, 3, 3, Darken(p.Cat, 0.8))
	fillRect(img, 25, 12, 2, 2, p.Outline)

	// Tail
	fillRect(img, 2, 12+step*2, 4, 3, Darken(p.Cat, 0.8))

	for i, x := range []int{7, 12, 16, 21} {
		lift := 0
		if (i+step)%2 == 0 {
			lift = 1
		}
		fillRect(img, x, 25, 2, 4-lift, Darken(p.Cat, 0.7))
	}
	return img
}

// GenerateCatSheet builds the cat sheet. Every row holds the same three
// walk frames so any frame range cut from it shows a cat.
func GenerateCatSheet() *image.RGBA {
	frames := make([]*image.RGBA, 0, CatSheetColumns*CatSheetRows)
	for row := 0; row < CatSheetRows; row++ {
		for step := 0; step < CatSheetColumns; step++ {
			frames = append(frames, catFrame(step))
		}
	}
	return CreateAtlas(frames, CatSheetColumns)
}

var generators = map[string]func() *image.RGBA{
	TilesetPath:  GenerateTileset,
	AshSheetPath: GenerateAshSheet,
	CatSheetPath: GenerateCatSheet,
}

// Fallback returns the generated stand-in for an asset path.
func Fallback(path string) (image.Image, bool) {
	gen, ok := generators[filepath.ToSlash(path)]
	if !ok {
		return nil, false
	}
	return gen(), true
}

// Paths lists every asset path placeholders can generate, sorted.
func Paths() []string {
	paths := make([]string, 0, len(generators))
	for path := range generators {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}

// GenerateAndSave writes every placeholder under assetsDir
func GenerateAndSave(assetsDir string) error {
	fmt.Println("Generating placeholder art...")

	for _, path := range Paths() {
		full := filepath.Join(assetsDir, path)
		if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
			return fmt.Errorf("failed to create directory for %s: %w", full, err)
		}

		img := generators[path]()
		if err := SavePNG(img, full); err != nil {
			return fmt.Errorf("failed to save %s: %w", full, err)
		}
		b := img.Bounds()
		fmt.Printf("✓ Generated %s (%dx%d pixels, %d tiles @ %dpx)\n",
			full, b.Dx(), b.Dy(), (b.Dx()/TileSize)*(b.Dy()/TileSize), TileSize)
	}

	fmt.Println("Placeholder art generated successfully!")
	return nil
}
