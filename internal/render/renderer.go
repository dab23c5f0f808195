// Package render defines the backend-neutral presentation interfaces used by
// the pet driver. The ebiten subpackage implements them.
package render

import (
	"errors"
	"image"
	"image/color"
)

// ErrQuit is returned from Game.Update to end the loop cleanly.
var ErrQuit = errors.New("quit requested")

// Renderer is the main rendering interface that abstracts the underlying
// graphics engine.
type Renderer interface {
	// Vector operations (for the speech bubble)
	FillRect(dst Image, x, y, width, height float32, clr color.Color)
	FillCircle(dst Image, x, y, radius float32, clr color.Color)

	// Text operations. size is the font size in pixels; y is the top of the
	// first line.
	DrawText(dst Image, text string, x, y int, clr color.Color, size float64)
	MeasureText(text string, size float64) (width, height int)
}

// Image represents a renderable image surface that can be drawn to or drawn from.
type Image interface {
	Bounds() image.Rectangle
	Size() (width, height int)

	SubImage(r image.Rectangle) Image

	Clear()

	DrawImage(src Image, opts *DrawImageOptions)
}

// DrawImageOptions contains options for drawing an image.
type DrawImageOptions struct {
	GeoM GeoM
}

// GeoM represents a geometric transformation matrix.
type GeoM interface {
	// Translate shifts the image by (tx, ty).
	Translate(tx, ty float64)

	// Scale scales the image by (sx, sy). A negative sx mirrors horizontally.
	Scale(sx, sy float64)

	// Reset resets the matrix to identity.
	Reset()
}

// NewGeoM creates a new geometric transformation matrix.
// This is implemented by the specific renderer backend.
var NewGeoM func() GeoM

// InputManager handles mouse and keyboard input. Cursor coordinates are
// relative to the window.
type InputManager interface {
	IsKeyJustPressed(key Key) bool
	CursorPosition() (x, y int)
	IsMouseButtonPressed(button MouseButton) bool
	IsMouseButtonJustPressed(button MouseButton) bool
	IsMouseButtonJustReleased(button MouseButton) bool
}

// Key represents a keyboard key.
type Key int

const (
	KeyEscape Key = iota
	KeyQ
)

// MouseButton represents a mouse button.
type MouseButton int

const (
	MouseButtonLeft MouseButton = iota
	MouseButtonRight
)

// ResourceLoader handles loading resources like images from disk.
type ResourceLoader interface {
	LoadImage(path string) (Image, error)
}

// Game represents the game interface that the engine will call.
type Game interface {
	// Update is called every tick. Returning ErrQuit ends the loop without
	// an error.
	Update() error

	// Draw is called every frame.
	Draw(screen Image)

	// Layout accepts the outside size and returns the logical screen size.
	Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int)
}

// Window is the OS window the pet lives in. Positions are in screen
// coordinates.
type Window interface {
	SetPosition(x, y int)
	Position() (x, y int)
	SetSize(width, height int)
}

// WindowOptions describes the overlay window created by Engine.RunGame.
type WindowOptions struct {
	Title          string
	Width, Height  int
	X, Y           int
	TPS            int
	Decorated      bool
	Floating       bool
	Transparent    bool
	SkipTaskbar    bool
	ClickThrough   bool // mouse events pass to the windows below
	RunUnfocused   bool
	ClearEachFrame bool
}

// Engine represents the game engine that manages the game loop and window.
type Engine interface {
	Window

	// ScreenSize returns the size of the monitor the window opens on. It may
	// be called before RunGame.
	ScreenSize() (width, height int)

	// RunGame runs the game loop with the provided game. This is a blocking
	// call that runs until the game ends.
	RunGame(game Game, opts WindowOptions) error
}
