package placeholders

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
)

// TileSize is the standard size for placeholder tiles and sprite frames
const TileSize = 32

// ColorPalette defines colors for the town placeholders
var ColorPalette = struct {
	// Ground
	Grass   color.RGBA
	Path    color.RGBA
	Flowers color.RGBA
	Water   color.RGBA

	// Structures
	Fence     color.RGBA
	TreeTrunk color.RGBA
	TreeTop   color.RGBA
	HouseWall color.RGBA
	Roof      color.RGBA

	// Characters
	Ash     color.RGBA
	AshHair color.RGBA
	Cat     color.RGBA
	Outline color.RGBA
}{
	Grass:   color.RGBA{90, 160, 70, 255},
	Path:    color.RGBA{200, 175, 120, 255},
	Flowers: color.RGBA{230, 90, 140, 255},
	Water:   color.RGBA{60, 120, 200, 255},

	Fence:     color.RGBA{150, 110, 70, 255},
	TreeTrunk: color.RGBA{110, 75, 45, 255},
	TreeTop:   color.RGBA{40, 110, 50, 200}, // Slightly see-through canopy
	HouseWall: color.RGBA{220, 210, 190, 255},
	Roof:      color.RGBA{170, 60, 50, 255},

	Ash:     color.RGBA{60, 90, 200, 255},
	AshHair: color.RGBA{40, 30, 20, 255},
	Cat:     color.RGBA{240, 160, 60, 255},
	Outline: color.RGBA{20, 20, 20, 255},
}

// CreateSolidTile creates a simple solid-colored tile
func CreateSolidTile(col color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, TileSize, TileSize))
	draw.Draw(img, img.Bounds(), &image.Uniform{col}, image.Point{}, draw.Src)
	return img
}

// CreateBorderedTile creates a tile with a border
func CreateBorderedTile(fillColor, borderColor color.RGBA, borderWidth int) *image.RGBA {
	img := CreateSolidTile(fillColor)

	for i := 0; i < borderWidth; i++ {
		for x := 0; x < TileSize; x++ {
			img.Set(x, i, borderColor)
			img.Set(x, TileSize-1-i, borderColor)
		}
		for y := 0; y < TileSize; y++ {
			img.Set(i, y, borderColor)
			img.Set(TileSize-1-i, y, borderColor)
		}
	}

	return img
}

// CreatePatternedTile creates a tile with a simple pattern
func CreatePatternedTile(baseColor, patternColor color.RGBA, pattern string) *image.RGBA {
	img := CreateSolidTile(baseColor)

	switch pattern {
	case "grid":
		for i := 0; i < TileSize; i += 8 {
			for x := 0; x < TileSize; x++ {
				img.Set(x, i, patternColor)
				img.Set(i, x, patternColor)
			}
		}
	case "dots":
		quarter := TileSize / 4
		threeQuarter := 3 * TileSize / 4
		dots := []image.Point{{quarter, quarter}, {threeQuarter, quarter}, {quarter, threeQuarter}, {threeQuarter, threeQuarter}}
		for _, p := range dots {
			fillRect(img, p.X, p.Y, 3, 3, patternColor)
		}
	case "waves":
		for y := 4; y < TileSize; y += 8 {
			for x := 0; x < TileSize; x++ {
				img.Set(x, y+(x/4)%2, patternColor)
			}
		}
	case "rails":
		for _, y := range []int{TileSize / 3, 2 * TileSize / 3} {
			fillRect(img, 0, y, TileSize, 2, patternColor)
		}
	}

	return img
}

// CreateCircle creates a transparent tile holding a filled, outlined circle
func CreateCircle(fillColor, outlineColor color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, TileSize, TileSize))

	center := TileSize / 2
	radius := TileSize/2 - 2

	for y := 0; y < TileSize; y++ {
		for x := 0; x < TileSize; x++ {
			dx := x - center
			dy := y - center
			distSq := dx*dx + dy*dy

			if distSq <= radius*radius {
				img.Set(x, y, fillColor)
			} else if distSq <= (radius+1)*(radius+1) {
				img.Set(x, y, outlineColor)
			}
		}
	}

	return img
}

// CreateAtlas lays tiles out left to right, top to bottom. Nil tiles stay
// transparent.
func CreateAtlas(tiles []*image.RGBA, columns int) *image.RGBA {
	tileCount := len(tiles)
	rows := (tileCount + columns - 1) / columns

	atlas := image.NewRGBA(image.Rect(0, 0, columns*TileSize, rows*TileSize))

	for i, tile := range tiles {
		if tile == nil {
			continue
		}

		x := (i % columns) * TileSize
		y := (i / columns) * TileSize

		destRect := image.Rect(x, y, x+TileSize, y+TileSize)
		draw.Draw(atlas, destRect, tile, image.Point{}, draw.Src)
	}

	return atlas
}

// SavePNG saves an image to a PNG file
func SavePNG(img image.Image, filepath string) error {
	file, err := os.Create(filepath)
	if err != nil {
		return err
	}
	defer file.Close()

	return png.Encode(file, img)
}

// Darken returns a darker version of a color
func Darken(c color.RGBA, factor float64) color.RGBA {
	return color.RGBA{
		R: uint8(float64(c.R) * factor),
		G: uint8(float64(c.G) * factor),
		B: uint8(float64(c.B) * factor),
		A: c.A,
	}
}

// Lighten returns a lighter version of a color
func Lighten(c color.RGBA, factor float64) color.RGBA {
	return color.RGBA{
		R: uint8(float64(c.R) + (255-float64(c.R))*factor),
		G: uint8(float64(c.G) + (255-float64(c.G))*factor),
		B: uint8(float64(c.B) + (255-float64(c.B))*factor),
		A: c.A,
	}
}

func fillRect(img *image.RGBA, x, y, w, h int, col color.RGBA) {
	draw.Draw(img, image.Rect(x, y, x+w, y+h), &image.Uniform{col}, image.Point{}, draw.Src)
}
