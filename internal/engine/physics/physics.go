// Package physics is a small arcade-style physics world: axis-aligned bodies
// with velocities, collision against a tile grid, and overlap tests.
package physics

// Rect is an axis-aligned rectangle in world pixels.
type Rect struct {
	X, Y, W, H float64 // Top-left corner and size
}

// Intersects reports whether two rectangles overlap with positive area.
func (r Rect) Intersects(o Rect) bool {
	return r.X < o.X+o.W && o.X < r.X+r.W &&
		r.Y < o.Y+o.H && o.Y < r.Y+r.H
}

// Body is a moving rectangle. X and Y are the center.
type Body struct {
	X, Y   float64
	W, H   float64
	VX, VY float64

	// CollideWorld makes the body stop at colliding tiles.
	CollideWorld bool
}

// SetVelocity sets both velocity components in pixels per second.
func (b *Body) SetVelocity(vx, vy float64) {
	b.VX = vx
	b.VY = vy
}

// Bounds returns the body's rectangle.
func (b *Body) Bounds() Rect {
	return Rect{X: b.X - b.W/2, Y: b.Y - b.H/2, W: b.W, H: b.H}
}

// Grid marks which map tiles block movement.
type Grid struct {
	Width, Height int
	TileSize      int
	cells         []bool
}

// NewGrid creates an empty collision grid
func NewGrid(width, height, tileSize int) *Grid {
	return &Grid{
		Width:    width,
		Height:   height,
		TileSize: tileSize,
		cells:    make([]bool, width*height),
	}
}

// SetCollides marks a tile as blocking or free. Out of range tiles are ignored.
func (g *Grid) SetCollides(x, y int, collides bool) {
	if x < 0 || x >= g.Width || y < 0 || y >= g.Height {
		return
	}
	g.cells[y*g.Width+x] = collides
}

// Collides reports whether a tile blocks movement. Tiles outside the map block.
func (g *Grid) Collides(x, y int) bool {
	if x < 0 || x >= g.Width || y < 0 || y >= g.Height {
		return true
	}
	return g.cells[y*g.Width+x]
}

// blocked reports whether any colliding tile intersects r.
func (g *Grid) blocked(r Rect) bool {
	ts := float64(g.TileSize)
	x0 := floorDiv(r.X, ts)
	y0 := floorDiv(r.Y, ts)
	// Subtract a hair so a rect flush against a tile edge doesn't touch it
	x1 := floorDiv(r.X+r.W-1e-9, ts)
	y1 := floorDiv(r.Y+r.H-1e-9, ts)
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			if g.Collides(x, y) {
				return true
			}
		}
	}
	return false
}

func floorDiv(v, size float64) int {
	q := int(v / size)
	if v < 0 && float64(q)*size != v {
		q--
	}
	return q
}

// World integrates bodies every step unless paused.
type World struct {
	grid   *Grid
	bodies []*Body
	paused bool
}

// NewWorld creates a world colliding against grid. grid may be nil.
func NewWorld(grid *Grid) *World {
	return &World{grid: grid}
}

// AddBody creates a body centered at (x, y).
func (w *World) AddBody(x, y, width, height float64, collideWorld bool) *Body {
	b := &Body{X: x, Y: y, W: width, H: height, CollideWorld: collideWorld}
	w.bodies = append(w.bodies, b)
	return b
}

// RemoveBody drops a body from the simulation.
func (w *World) RemoveBody(b *Body) {
	for i, other := range w.bodies {
		if other == b {
			w.bodies = append(w.bodies[:i], w.bodies[i+1:]...)
			return
		}
	}
}

// Pause stops integration. Pausing twice is a no-op.
func (w *World) Pause() {
	w.paused = true
}

// Resume restarts integration. Resuming a running world is a no-op.
func (w *World) Resume() {
	w.paused = false
}

// IsPaused reports whether the world is paused.
func (w *World) IsPaused() bool {
	return w.paused
}

// Step moves every body by its velocity over dt seconds.
// Each axis is resolved separately so bodies slide along walls.
func (w *World) Step(dt float64) {
	if w.paused {
		return
	}
	for _, b := range w.bodies {
		w.moveAxis(b, b.VX*dt, 0)
		w.moveAxis(b, 0, b.VY*dt)
	}
}

func (w *World) moveAxis(b *Body, dx, dy float64) {
	if dx == 0 && dy == 0 {
		return
	}
	startX, startY := b.X, b.Y
	b.X += dx
	b.Y += dy
	if !b.CollideWorld || w.grid == nil || !w.grid.blocked(b.Bounds()) {
		return
	}

	// Snap back against the tile edge we ran into
	ts := float64(w.grid.TileSize)
	r := b.Bounds()
	switch {
	case dx > 0:
		b.X = float64(floorDiv(r.X+r.W, ts))*ts - b.W/2
	case dx < 0:
		b.X = float64(floorDiv(r.X, ts)+1)*ts + b.W/2
	case dy > 0:
		b.Y = float64(floorDiv(r.Y+r.H, ts))*ts - b.H/2
	case dy < 0:
		b.Y = float64(floorDiv(r.Y, ts)+1)*ts + b.H/2
	}
	if w.grid.blocked(b.Bounds()) {
		// Started inside geometry; refuse the move entirely
		b.X, b.Y = startX, startY
	}
}

// Overlaps reports whether two bodies overlap.
func (w *World) Overlaps(a, b *Body) bool {
	if a == nil || b == nil {
		return false
	}
	return a.Bounds().Intersects(b.Bounds())
}
