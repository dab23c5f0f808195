package game

import "chosenoffset.com/parrotpet/internal/render"

// Draw repaints the window when something changed. The screen keeps its
// pixels between frames, so an unchanged pet costs nothing.
func (m *Manager) Draw(screen render.Image) {
	if !m.dirty {
		return
	}
	screen.Clear()

	sp := m.layout.Sprite
	m.Sprites.Draw(screen, m.last.Frame, float64(sp.X), float64(sp.Y))

	if m.Bubble != nil {
		m.Bubble.Draw(screen, m.layout.Width/2, sp.Y)
	}
	m.dirty = false
}

// NeedsRedraw reports whether the next Draw will paint.
func (m *Manager) NeedsRedraw() bool {
	return m.dirty
}
