// Package rendertest provides in-memory render backends for tests.
package rendertest

import (
	"fmt"
	"image"
	"image/color"

	"chosenoffset.com/tuxtown/internal/render"
)

func init() {
	if render.NewGeoM == nil {
		render.NewGeoM = func() render.GeoM { return &GeoM{} }
	}
}

// GeoM records translation and scale.
type GeoM struct {
	TX, TY float64
	SX, SY float64
}

func (g *GeoM) Translate(tx, ty float64) { g.TX += tx; g.TY += ty }

func (g *GeoM) Scale(sx, sy float64) {
	if g.SX == 0 {
		g.SX, g.SY = 1, 1
	}
	g.SX *= sx
	g.SY *= sy
	g.TX *= sx
	g.TY *= sy
}

func (g *GeoM) Reset() { *g = GeoM{} }

// Draw is one DrawImage call seen by an Image.
type Draw struct {
	Src    *Image
	TX, TY float64
	SX, SY float64
}

// Image is a fake render.Image that records what is drawn onto it.
type Image struct {
	Rect     image.Rectangle
	Parent   *Image
	Draws    []Draw
	Filled   color.Color
	Disposed bool
}

// NewImage creates a blank fake image.
func NewImage(width, height int) *Image {
	return &Image{Rect: image.Rect(0, 0, width, height)}
}

func (i *Image) Bounds() image.Rectangle { return i.Rect }

func (i *Image) Size() (int, int) { return i.Rect.Dx(), i.Rect.Dy() }

func (i *Image) SubImage(r image.Rectangle) render.Image {
	return &Image{Rect: r.Intersect(i.Rect), Parent: i}
}

func (i *Image) Fill(clr color.Color) { i.Filled = clr }

func (i *Image) Clear() { i.Filled = nil; i.Draws = nil }

func (i *Image) DrawImage(src render.Image, opts *render.DrawImageOptions) {
	d := Draw{Src: src.(*Image), SX: 1, SY: 1}
	if opts != nil {
		if g, ok := opts.GeoM.(*GeoM); ok {
			d.TX, d.TY = g.TX, g.TY
			if g.SX != 0 {
				d.SX, d.SY = g.SX, g.SY
			}
		}
	}
	i.Draws = append(i.Draws, d)
}

func (i *Image) Dispose() { i.Disposed = true }

// Text is one DrawText call seen by a Renderer.
type Text struct {
	Dst  render.Image
	Text string
	X, Y int
}

// Renderer is a fake render.Renderer.
type Renderer struct {
	Texts []Text
	Rects int
}

func (r *Renderer) NewImage(width, height int) render.Image { return NewImage(width, height) }

func (r *Renderer) NewImageFromImage(src image.Image) render.Image {
	b := src.Bounds()
	return NewImage(b.Dx(), b.Dy())
}

func (r *Renderer) FillRect(dst render.Image, x, y, width, height float32, clr color.Color) {
	r.Rects++
}

func (r *Renderer) StrokeRect(dst render.Image, x, y, width, height, strokeWidth float32, clr color.Color) {
	r.Rects++
}

func (r *Renderer) DrawText(dst render.Image, text string, x, y int, clr color.Color, scale float64) {
	r.Texts = append(r.Texts, Text{Dst: dst, Text: text, X: x, Y: y})
}

func (r *Renderer) MeasureText(text string, scale float64) (int, int) {
	return int(float64(7*len(text)) * scale), int(13 * scale)
}

// TextsOn returns the strings drawn, in order.
func (r *Renderer) TextsOn() []string {
	out := make([]string, len(r.Texts))
	for i, t := range r.Texts {
		out[i] = t.Text
	}
	return out
}

// Input is a fake render.InputManager driven by the test.
type Input struct {
	Held     map[render.Key]bool
	Pressed  map[render.Key]bool
	Released bool
	X, Y     int
}

// NewInput creates an input with nothing held.
func NewInput() *Input {
	return &Input{Held: map[render.Key]bool{}, Pressed: map[render.Key]bool{}}
}

func (in *Input) IsKeyPressed(key render.Key) bool { return in.Held[key] }

func (in *Input) IsKeyJustPressed(key render.Key) bool { return in.Pressed[key] }

func (in *Input) IsPointerJustReleased() bool { return in.Released }

func (in *Input) GetCursorPosition() (int, int) { return in.X, in.Y }

// Loader is a fake render.ResourceLoader serving images by path.
type Loader struct {
	Images map[string]*Image
}

// LoadImage returns the registered image or an error.
func (l *Loader) LoadImage(path string) (render.Image, error) {
	img, ok := l.Images[path]
	if !ok {
		return nil, fmt.Errorf("rendertest: no image at %s", path)
	}
	return img, nil
}
