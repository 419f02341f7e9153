package game

import (
	"log"

	"chosenoffset.com/tuxtown/internal/render"
)

// Manager is the root render.Game: it owns the scene and the window-level
// keys and sizing around it.
type Manager struct {
	ScreenWidth  int
	ScreenHeight int
	Game         *Game
	InputMgr     render.InputManager
}

// NewManager wraps a loaded scene.
func NewManager(g *Game) *Manager {
	return &Manager{
		ScreenWidth:  g.ScreenWidth,
		ScreenHeight: g.ScreenHeight,
		Game:         g,
		InputMgr:     g.InputMgr,
	}
}

// Update quits on Escape and otherwise updates the scene.
func (m *Manager) Update() error {
	if m.InputMgr.IsKeyJustPressed(render.KeyEscape) {
		log.Println("[Game] Escape pressed, quitting")
		return render.ErrQuit
	}
	return m.Game.Update()
}

// Draw draws the scene.
func (m *Manager) Draw(screen render.Image) {
	m.Game.Draw(screen)
}

// Layout handles window resize.
func (m *Manager) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != m.ScreenWidth || outsideHeight != m.ScreenHeight {
		m.ScreenWidth = outsideWidth
		m.ScreenHeight = outsideHeight
		m.Game.ScreenWidth = outsideWidth
		m.Game.ScreenHeight = outsideHeight
		m.Game.UpdateCamera()
	}
	return outsideWidth, outsideHeight
}
