package game

// Camera tracks the viewport position for scrolling large levels.
type Camera struct {
	X, Y float64 // Camera position (top-left corner of viewport in world coords)
}

// Follow centers the camera on (x, y), clamped so the view never leaves a
// map of mapW x mapH pixels. A map smaller than the view pins the camera at 0.
func (c *Camera) Follow(x, y float64, viewW, viewH, mapW, mapH int) {
	c.X = clamp(x-float64(viewW)/2, 0, float64(mapW-viewW))
	c.Y = clamp(y-float64(viewH)/2, 0, float64(mapH-viewH))
}

func clamp(v, lo, hi float64) float64 {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
