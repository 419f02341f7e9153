package game

import (
	"image/color"
	"sort"

	"chosenoffset.com/tuxtown/internal/entity"
	"chosenoffset.com/tuxtown/internal/render"
	"chosenoffset.com/tuxtown/internal/world/maploader"
)

var backgroundColor = color.RGBA{90, 160, 70, 255}

// Draw renders the map layers around the entities, then the dialogue box.
func (g *Game) Draw(screen render.Image) {
	screen.Fill(backgroundColor)

	g.drawLayer(screen, maploader.LayerBelow)
	g.drawLayer(screen, maploader.LayerWorld)
	g.drawEntities(screen)
	g.drawLayer(screen, maploader.LayerAbove)

	g.DialogueBox.Draw(screen, g.ScreenWidth, g.ScreenHeight)
}

func (g *Game) drawLayer(screen render.Image, layer string) {
	g.GameMap.DrawLayer(screen, layer, g.Camera.X, g.Camera.Y, g.ScreenWidth, g.ScreenHeight)
}

// drawEntities draws entities back to front by their feet.
func (g *Game) drawEntities(screen render.Image) {
	var visible []*entity.Entity
	g.World.Each(func(_ entity.Handle, e *entity.Entity) {
		if e.Body != nil {
			visible = append(visible, e)
		}
	})
	sort.SliceStable(visible, func(i, j int) bool {
		return visible[i].Body.Y+visible[i].Body.H/2 < visible[j].Body.Y+visible[j].Body.H/2
	})

	for _, e := range visible {
		g.drawEntity(screen, e)
	}
}

func (g *Game) drawEntity(screen render.Image, e *entity.Entity) {
	sheet, frame := e.Sprite, 0
	if e.Anim != nil && e.Anim.Frame() >= 0 {
		sheet, frame = e.Anim.Sheet(), e.Anim.Frame()
	}

	img, err := g.Sheets.Frame(sheet, frame)
	if err != nil {
		return
	}
	w, h := img.Size()

	// Sprites are centered on their body
	x := e.Body.X - float64(w)/2 - g.Camera.X
	y := e.Body.Y - float64(h)/2 - g.Camera.Y

	opts := &render.DrawImageOptions{GeoM: render.NewGeoM()}
	if e.FlipX {
		opts.GeoM.Scale(-1, 1)
		opts.GeoM.Translate(float64(w), 0)
	}
	opts.GeoM.Translate(x, y)
	screen.DrawImage(img, opts)
}
