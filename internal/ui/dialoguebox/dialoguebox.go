// Package dialoguebox draws the speech box shown while a dialogue is open:
// a panel near the bottom of the view with the author above the message.
package dialoguebox

import (
	"image/color"
	"strings"

	"chosenoffset.com/tuxtown/internal/render"
)

// Box is the dialogue box UI
type Box struct {
	renderer render.Renderer

	// Dimensions
	Width, Height int
	OffsetY       int // Box center below the view center

	// Content
	visible bool
	author  string
	lines   []string

	// Visual settings
	bgColor     color.RGBA
	borderColor color.RGBA
	authorColor color.RGBA
	textColor   color.RGBA
	lineHeight  int
	padding     int
}

// New creates a hidden box drawn through r
func New(r render.Renderer) *Box {
	return &Box{
		renderer:    r,
		Width:       500,
		Height:      150,
		OffsetY:     160,
		bgColor:     color.RGBA{250, 245, 230, 235},
		borderColor: color.RGBA{70, 50, 40, 255},
		authorColor: color.RGBA{150, 60, 40, 255},
		textColor:   color.RGBA{30, 30, 30, 255},
		lineHeight:  18,
		padding:     16,
	}
}

// Show replaces the box content and makes it visible
func (b *Box) Show(author, text string) {
	b.visible = true
	b.author = author
	b.lines = b.wrapText(text, b.Width-b.padding*2)
}

// Hide removes the box from the screen
func (b *Box) Hide() {
	b.visible = false
	b.author = ""
	b.lines = nil
}

// IsVisible reports whether the box is on screen
func (b *Box) IsVisible() bool {
	return b.visible
}

// Author returns the author currently shown
func (b *Box) Author() string {
	return b.author
}

// Text returns the message currently shown, re-joined from its wrapped lines
func (b *Box) Text() string {
	return strings.Join(b.lines, " ")
}

// Draw draws the box centered horizontally on a screen of the given size
func (b *Box) Draw(screen render.Image, screenW, screenH int) {
	if !b.visible {
		return
	}

	x := screenW/2 - b.Width/2
	y := screenH/2 + b.OffsetY - b.Height/2
	if y+b.Height > screenH {
		y = screenH - b.Height
	}

	b.renderer.FillRect(screen, float32(x), float32(y), float32(b.Width), float32(b.Height), b.bgColor)
	b.renderer.StrokeRect(screen, float32(x), float32(y), float32(b.Width), float32(b.Height), 3, b.borderColor)

	tx := x + b.padding
	ty := y + b.padding
	b.renderer.DrawText(screen, b.author, tx, ty, b.authorColor, 1)
	ty += b.lineHeight + b.lineHeight/2

	maxLines := (b.Height - (ty - y) - b.padding/2) / b.lineHeight
	for i, line := range b.lines {
		if i >= maxLines {
			break
		}
		b.renderer.DrawText(screen, line, tx, ty, b.textColor, 1)
		ty += b.lineHeight
	}
}

func (b *Box) wrapText(text string, maxWidth int) []string {
	words := strings.Fields(text)
	var lines []string
	var currentLine string

	for _, word := range words {
		candidate := word
		if currentLine != "" {
			candidate = currentLine + " " + word
		}

		if w, _ := b.renderer.MeasureText(candidate, 1); w > maxWidth && currentLine != "" {
			lines = append(lines, currentLine)
			currentLine = word
		} else {
			currentLine = candidate
		}
	}

	if currentLine != "" {
		lines = append(lines, currentLine)
	}

	return lines
}
