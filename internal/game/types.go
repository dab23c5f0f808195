package game

import (
	"time"

	"chosenoffset.com/parrotpet/internal/pet"
)

// Scheduler produces reminders on a wall-clock interval.
type Scheduler interface {
	Tick(now time.Time) bool
}

// Chirper plays the reminder cue.
type Chirper interface {
	Chirp() error
}

// Pet is the state machine driven once per tick.
type Pet interface {
	Update(snap pet.Snapshot) bool
	View() pet.View
	State() pet.State
}

// Layout is the fixed window geometry. The sprite sits at the bottom centre
// with the bubble area above it.
type Layout struct {
	Width, Height int
	// Sprite is the top-left of the sprite inside the window.
	Sprite pet.Point
}

// WindowOrigin returns where the window goes for a sprite at anchor.
func (l Layout) WindowOrigin(anchor pet.Point) (x, y int) {
	return anchor.X - l.Sprite.X, anchor.Y - l.Sprite.Y
}

// NewLayout sizes the window for a sprite and an optional bubble area.
func NewLayout(spriteW, spriteH, bubbleW, bubbleH int) Layout {
	w := max(spriteW, bubbleW)
	return Layout{
		Width:  w,
		Height: bubbleH + spriteH,
		Sprite: pet.Point{X: (w - spriteW) / 2, Y: bubbleH},
	}
}
