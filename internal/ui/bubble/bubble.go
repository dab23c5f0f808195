// Package bubble draws the parrot's speech bubble: word-wrapped text in a
// rounded box with a small thought-trail towards the sprite, popping in on a
// spring.
package bubble

import (
	"image/color"
	"math"
	"strings"

	"github.com/charmbracelet/harmonica"

	"chosenoffset.com/parrotpet/internal/render"
)

// Spring tuning for the pop-in.
const (
	angularFrequency = 9.0
	dampingRatio     = 0.45

	settleThreshold = 0.005

	// Text is hidden while the box is this small.
	textMinScale = 0.6
)

// TailHeight is the space between the box and the sprite.
const TailHeight = 14

// Measurer measures rendered text.
type Measurer interface {
	MeasureText(text string, size float64) (width, height int)
}

// Style is the bubble appearance.
type Style struct {
	Width    int
	Padding  int
	FontSize float64
	MaxLines int
	Fill     color.Color
	Text     color.Color
}

// DefaultStyle returns a white bubble with dark text.
func DefaultStyle() Style {
	return Style{
		Width:    220,
		Padding:  8,
		FontSize: 14,
		MaxLines: 4,
		Fill:     color.RGBA{255, 255, 250, 240},
		Text:     color.RGBA{40, 40, 45, 255},
	}
}

// Wrap breaks text into lines no wider than maxWidth. A word wider than
// maxWidth gets a line of its own.
func Wrap(m Measurer, text string, maxWidth int, size float64) []string {
	var lines []string
	for _, para := range strings.Split(text, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		line := words[0]
		for _, w := range words[1:] {
			candidate := line + " " + w
			if cw, _ := m.MeasureText(candidate, size); cw <= maxWidth {
				line = candidate
				continue
			}
			lines = append(lines, line)
			line = w
		}
		lines = append(lines, line)
	}
	return lines
}

// Layout is a wrapped message and its box size.
type Layout struct {
	Lines  []string
	Width  int
	Height int
}

// Bubble is the animated speech bubble.
type Bubble struct {
	renderer   render.Renderer
	style      Style
	lineHeight int

	text   string
	layout Layout

	spring   harmonica.Spring
	scale    float64
	velocity float64
	target   float64
}

// New creates a hidden bubble animated at tps ticks per second.
func New(r render.Renderer, style Style, tps int) *Bubble {
	if style.MaxLines <= 0 {
		style.MaxLines = 1
	}
	_, lh := r.MeasureText("Ag", style.FontSize)
	return &Bubble{
		renderer:   r,
		style:      style,
		lineHeight: lh,
		spring:     harmonica.NewSpring(harmonica.FPS(tps), angularFrequency, dampingRatio),
	}
}

// Area returns the window space reserved above the sprite.
func (b *Bubble) Area() (width, height int) {
	return b.style.Width, b.style.MaxLines*b.lineHeight + 2*b.style.Padding + TailHeight
}

// LayoutText wraps text for the bubble, truncating past MaxLines.
func (b *Bubble) LayoutText(text string) Layout {
	inner := b.style.Width - 2*b.style.Padding
	lines := Wrap(b.renderer, text, inner, b.style.FontSize)
	if len(lines) > b.style.MaxLines {
		lines = lines[:b.style.MaxLines]
		lines[len(lines)-1] += "…"
	}

	width := 0
	for _, l := range lines {
		w, _ := b.renderer.MeasureText(l, b.style.FontSize)
		width = max(width, w)
	}
	return Layout{
		Lines:  lines,
		Width:  min(width, inner) + 2*b.style.Padding,
		Height: len(lines)*b.lineHeight + 2*b.style.Padding,
	}
}

// Show starts the pop-in for text. Showing the same text again is a no-op.
func (b *Bubble) Show(text string) {
	if b.target == 1 && text == b.text {
		return
	}
	b.text = text
	b.layout = b.LayoutText(text)
	b.scale, b.velocity, b.target = 0, 0, 1
}

// Hide removes the bubble at once.
func (b *Bubble) Hide() {
	b.text = ""
	b.layout = Layout{}
	b.scale, b.velocity, b.target = 0, 0, 0
}

// Visible reports whether the bubble is showing.
func (b *Bubble) Visible() bool {
	return b.target == 1
}

// Text returns the current message.
func (b *Bubble) Text() string {
	return b.text
}

// Update advances the spring by one tick.
func (b *Bubble) Update() {
	if !b.Animating() {
		return
	}
	b.scale, b.velocity = b.spring.Update(b.scale, b.velocity, b.target)
	if math.Abs(b.scale-b.target) < settleThreshold && math.Abs(b.velocity) < settleThreshold {
		b.scale, b.velocity = b.target, 0
	}
}

// Animating reports whether the spring is still moving.
func (b *Bubble) Animating() bool {
	return b.scale != b.target || b.velocity != 0
}

// Scale returns the current pop-in scale.
func (b *Bubble) Scale() float64 {
	return b.scale
}

// Draw paints the bubble so that its tail ends at (cx, bottom).
func (b *Bubble) Draw(dst render.Image, cx, bottom int) {
	if !b.Visible() || b.scale <= 0 {
		return
	}
	s := b.scale
	w := float64(b.layout.Width) * s
	h := float64(b.layout.Height) * s
	x := float64(cx) - w/2
	y := float64(bottom-TailHeight) - h

	b.fillRoundRect(dst, x, y, w, h, math.Min(10*s, h/2))

	// Thought trail towards the head.
	tx, ty := float32(cx), float32(bottom-TailHeight)
	b.renderer.FillCircle(dst, tx+6, ty+4, float32(4*s), b.style.Fill)
	b.renderer.FillCircle(dst, tx+2, ty+11, float32(2.5*s), b.style.Fill)

	if s < textMinScale {
		return
	}
	textX := int(math.Round(x)) + b.style.Padding
	textY := int(math.Round(y)) + b.style.Padding
	for i, line := range b.layout.Lines {
		b.renderer.DrawText(dst, line, textX, textY+i*b.lineHeight, b.style.Text, b.style.FontSize)
	}
}

func (b *Bubble) fillRoundRect(dst render.Image, x, y, w, h, r float64) {
	fx, fy, fw, fh, fr := float32(x), float32(y), float32(w), float32(h), float32(r)
	clr := b.style.Fill
	b.renderer.FillRect(dst, fx+fr, fy, fw-2*fr, fh, clr)
	b.renderer.FillRect(dst, fx, fy+fr, fw, fh-2*fr, clr)
	b.renderer.FillCircle(dst, fx+fr, fy+fr, fr, clr)
	b.renderer.FillCircle(dst, fx+fw-fr, fy+fr, fr, clr)
	b.renderer.FillCircle(dst, fx+fr, fy+fh-fr, fr, clr)
	b.renderer.FillCircle(dst, fx+fw-fr, fy+fh-fr, fr, clr)
}
