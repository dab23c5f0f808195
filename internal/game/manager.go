// Package game drives the pet: it feeds input to the state machine once per
// tick, moves the overlay window after it, and repaints only on change.
package game

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"chosenoffset.com/parrotpet/internal/pet"
	"chosenoffset.com/parrotpet/internal/render"
	"chosenoffset.com/parrotpet/internal/sprite"
	"chosenoffset.com/parrotpet/internal/ui/bubble"
)

// Config collects the Manager's collaborators. Scheduler and Chirper may be
// nil; Bubble is nil when the bubble feature is off.
type Config struct {
	Pet       Pet
	Scheduler Scheduler
	Chirper   Chirper
	Sprites   *sprite.Set
	Bubble    *bubble.Bubble
	Input     render.InputManager
	Window    render.Window
	Logger    *log.Logger
	Now       func() time.Time
}

// Manager implements render.Game for the pet window.
type Manager struct {
	ctx context.Context
	Config

	layout Layout
	last   pet.View
	dirty  bool
	ticks  uint64
}

// NewManager creates a manager and places the window over the pet's start
// position. The loop ends once ctx is cancelled.
func NewManager(ctx context.Context, cfg Config) *Manager {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}

	sw, sh := cfg.Sprites.Size()
	var bw, bh int
	if cfg.Bubble != nil {
		bw, bh = cfg.Bubble.Area()
	}

	m := &Manager{
		ctx:    ctx,
		Config: cfg,
		layout: NewLayout(sw, sh, bw, bh),
		last:   cfg.Pet.View(),
		dirty:  true,
	}
	m.Window.SetSize(m.layout.Width, m.layout.Height)
	m.Window.SetPosition(m.layout.WindowOrigin(m.last.Position))
	return m
}

// WindowLayout returns the window geometry.
func (m *Manager) WindowLayout() Layout {
	return m.layout
}

// Ticks returns the number of completed updates.
func (m *Manager) Ticks() uint64 {
	return m.ticks
}

// Update runs one tick.
func (m *Manager) Update() error {
	select {
	case <-m.ctx.Done():
		return render.ErrQuit
	default:
	}
	if m.Input.IsKeyJustPressed(render.KeyEscape) || m.Input.IsKeyJustPressed(render.KeyQ) {
		return render.ErrQuit
	}

	if m.Scheduler != nil && m.Scheduler.Tick(m.Now()) {
		m.Logger.Debug("Reminder due", "tick", m.ticks)
		if m.Chirper != nil {
			if err := m.Chirper.Chirp(); err != nil {
				m.Logger.Warn("Reminder chirp failed", "err", err)
			}
		}
	}

	before := m.Pet.State().Behavior
	if m.Pet.Update(m.snapshot()) {
		m.present(m.Pet.View())
	}
	if after := m.Pet.State().Behavior; after != before {
		m.Logger.Debug("Behavior changed", "from", before, "to", after)
	}

	m.updateBubble()
	m.ticks++
	return nil
}

// present forwards the parts of v that differ from what is on screen.
func (m *Manager) present(v pet.View) {
	if v.Position != m.last.Position {
		m.Window.SetPosition(m.layout.WindowOrigin(v.Position))
	}
	if v.Frame != m.last.Frame || v.BubbleVisible != m.last.BubbleVisible || v.BubbleText != m.last.BubbleText {
		m.dirty = true
	}
	m.last = v
}

func (m *Manager) updateBubble() {
	if m.Bubble == nil {
		return
	}
	switch {
	case m.last.BubbleVisible:
		m.Bubble.Show(m.last.BubbleText)
	case m.Bubble.Visible():
		m.Bubble.Hide()
		m.dirty = true
	}
	if m.Bubble.Animating() {
		m.Bubble.Update()
		m.dirty = true
	}
}

// snapshot captures this tick's input in screen coordinates.
func (m *Manager) snapshot() pet.Snapshot {
	wx, wy := m.Window.Position()
	cx, cy := m.Input.CursorPosition()
	cursor := pet.Point{X: wx + cx, Y: wy + cy}

	snap := pet.Snapshot{
		Cursor:   cursor,
		LeftDown: m.Input.IsMouseButtonPressed(render.MouseButtonLeft),
	}
	buttons := []struct {
		button  render.MouseButton
		pressed func(render.MouseButton) bool
		kind    pet.EventKind
	}{
		{render.MouseButtonLeft, m.Input.IsMouseButtonJustPressed, pet.LeftPress},
		{render.MouseButtonLeft, m.Input.IsMouseButtonJustReleased, pet.LeftRelease},
		{render.MouseButtonRight, m.Input.IsMouseButtonJustPressed, pet.RightPress},
	}
	for _, b := range buttons {
		if b.pressed(b.button) {
			snap.Events = append(snap.Events, pet.Event{Kind: b.kind, Pos: cursor, HasPos: true})
		}
	}
	return snap
}

// Layout implements render.Game. The window never resizes.
func (m *Manager) Layout(outsideWidth, outsideHeight int) (int, int) {
	return m.layout.Width, m.layout.Height
}
