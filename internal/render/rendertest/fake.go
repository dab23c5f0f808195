// Package rendertest provides in-memory implementations of the render
// interfaces for tests. Nothing here touches a GPU or a window.
package rendertest

import (
	"image"
	"image/color"

	"chosenoffset.com/parrotpet/internal/render"
)

func init() {
	if render.NewGeoM == nil {
		render.NewGeoM = NewGeoM
	}
}

// GeoM is an affine matrix [A B TX; C D TY].
type GeoM struct {
	A, B, C, D, TX, TY float64
}

// NewGeoM returns an identity matrix.
func NewGeoM() render.GeoM {
	return &GeoM{A: 1, D: 1}
}

func (g *GeoM) Translate(tx, ty float64) {
	g.TX += tx
	g.TY += ty
}

func (g *GeoM) Scale(sx, sy float64) {
	g.A *= sx
	g.B *= sx
	g.TX *= sx
	g.C *= sy
	g.D *= sy
	g.TY *= sy
}

func (g *GeoM) Reset() {
	*g = GeoM{A: 1, D: 1}
}

// Apply transforms a point.
func (g *GeoM) Apply(x, y float64) (float64, float64) {
	return g.A*x + g.B*y + g.TX, g.C*x + g.D*y + g.TY
}

// DrawCall records one Image.DrawImage.
type DrawCall struct {
	Src  *Image
	GeoM GeoM
}

// Image is a recording render.Image.
type Image struct {
	Rect     image.Rectangle
	Parent   *Image
	Draws    []DrawCall
	Clears int
}

// NewImage returns a recording image of the given size.
func NewImage(width, height int) *Image {
	return &Image{Rect: image.Rect(0, 0, width, height)}
}

func (i *Image) Bounds() image.Rectangle { return i.Rect }

func (i *Image) Size() (int, int) { return i.Rect.Dx(), i.Rect.Dy() }

func (i *Image) SubImage(r image.Rectangle) render.Image {
	return &Image{Rect: r.Intersect(i.Rect), Parent: i}
}

func (i *Image) Clear() {
	i.Clears++
	i.Draws = nil
}

func (i *Image) DrawImage(src render.Image, opts *render.DrawImageOptions) {
	call := DrawCall{Src: src.(*Image), GeoM: GeoM{A: 1, D: 1}}
	if opts != nil && opts.GeoM != nil {
		call.GeoM = *opts.GeoM.(*GeoM)
	}
	i.Draws = append(i.Draws, call)
}

// TextCall records one Renderer.DrawText.
type TextCall struct {
	Text string
	X, Y int
	Size float64
}

// ShapeCall records one vector operation.
type ShapeCall struct {
	Kind                string // "rect" or "circle"
	X, Y, Width, Height float32
}

// Renderer is a recording render.Renderer. Text is measured as CharWidth
// pixels per byte and LineHeight pixels per line.
type Renderer struct {
	CharWidth  int
	LineHeight int
	Texts      []TextCall
	Shapes     []ShapeCall
}

// NewRenderer returns a renderer measuring 7x16 pixel glyphs.
func NewRenderer() *Renderer {
	return &Renderer{CharWidth: 7, LineHeight: 16}
}

func (r *Renderer) FillRect(dst render.Image, x, y, width, height float32, clr color.Color) {
	r.Shapes = append(r.Shapes, ShapeCall{Kind: "rect", X: x, Y: y, Width: width, Height: height})
}

func (r *Renderer) FillCircle(dst render.Image, x, y, radius float32, clr color.Color) {
	r.Shapes = append(r.Shapes, ShapeCall{Kind: "circle", X: x, Y: y, Width: 2 * radius, Height: 2 * radius})
}

func (r *Renderer) DrawText(dst render.Image, text string, x, y int, clr color.Color, size float64) {
	r.Texts = append(r.Texts, TextCall{Text: text, X: x, Y: y, Size: size})
}

func (r *Renderer) MeasureText(text string, size float64) (int, int) {
	lines, width, cur := 1, 0, 0
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			lines++
			cur = 0
			continue
		}
		cur += r.CharWidth
		width = max(width, cur)
	}
	return width, lines * r.LineHeight
}

// Reset forgets recorded calls.
func (r *Renderer) Reset() {
	r.Texts = nil
	r.Shapes = nil
}

// Input is a scriptable render.InputManager. Set the fields before each tick.
type Input struct {
	Cursor       image.Point
	Down         map[render.MouseButton]bool
	JustPressed  map[render.MouseButton]bool
	JustReleased map[render.MouseButton]bool
	Keys         map[render.Key]bool
}

// NewInput returns an idle input.
func NewInput() *Input {
	in := &Input{}
	in.Reset()
	return in
}

// Reset clears the edge-triggered state. Held buttons stay held.
func (in *Input) Reset() {
	if in.Down == nil {
		in.Down = make(map[render.MouseButton]bool)
	}
	in.JustPressed = make(map[render.MouseButton]bool)
	in.JustReleased = make(map[render.MouseButton]bool)
	in.Keys = make(map[render.Key]bool)
}

// Press starts a button press at the window-local point p.
func (in *Input) Press(b render.MouseButton, p image.Point) {
	in.Cursor = p
	in.Down[b] = true
	in.JustPressed[b] = true
}

// Release ends a button press at the window-local point p.
func (in *Input) Release(b render.MouseButton, p image.Point) {
	in.Cursor = p
	in.Down[b] = false
	in.JustReleased[b] = true
}

func (in *Input) IsKeyJustPressed(key render.Key) bool { return in.Keys[key] }

func (in *Input) CursorPosition() (int, int) { return in.Cursor.X, in.Cursor.Y }

func (in *Input) IsMouseButtonPressed(b render.MouseButton) bool { return in.Down[b] }

func (in *Input) IsMouseButtonJustPressed(b render.MouseButton) bool { return in.JustPressed[b] }

func (in *Input) IsMouseButtonJustReleased(b render.MouseButton) bool { return in.JustReleased[b] }

// Window is a render.Window that records moves.
type Window struct {
	X, Y          int
	Width, Height int
	Moves         int
}

func (w *Window) SetPosition(x, y int) {
	w.X, w.Y = x, y
	w.Moves++
}

func (w *Window) Position() (int, int) { return w.X, w.Y }

func (w *Window) SetSize(width, height int) { w.Width, w.Height = width, height }

// Loader is a render.ResourceLoader serving images from a map.
type Loader struct {
	Images map[string]*Image
}

func (l *Loader) LoadImage(path string) (render.Image, error) {
	img, ok := l.Images[path]
	if !ok {
		return nil, &LoadError{Path: path}
	}
	return img, nil
}

// LoadError is returned by Loader for unknown paths.
type LoadError struct {
	Path string
}

func (e *LoadError) Error() string { return "no image at " + e.Path }
