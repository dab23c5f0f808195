// Package placeholders draws a procedural parrot sprite sheet and writes the
// starter files needed to run the pet from a fresh checkout.
package placeholders

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"
	"os"

	"chosenoffset.com/parrotpet/internal/pet"
)

// TileSize is the edge length of one parrot frame in the sheet.
const TileSize = 256

// ColorPalette defines the parrot colors.
var ColorPalette = struct {
	Body    color.RGBA
	Belly   color.RGBA
	Wing    color.RGBA
	Tail    color.RGBA
	Beak    color.RGBA
	Eye     color.RGBA
	EyeRing color.RGBA
	Feet    color.RGBA
}{
	Body:    color.RGBA{46, 170, 70, 255},   // Parrot green
	Belly:   color.RGBA{150, 210, 90, 255},  // Light yellow-green
	Wing:    color.RGBA{30, 110, 200, 255},  // Blue flight feathers
	Tail:    color.RGBA{210, 50, 40, 255},   // Red tail
	Beak:    color.RGBA{245, 190, 40, 255},  // Yellow beak
	Eye:     color.RGBA{20, 20, 25, 255},    // Pupil
	EyeRing: color.RGBA{250, 250, 245, 255}, // White ring
	Feet:    color.RGBA{120, 110, 100, 255}, // Grey feet
}

// Wing positions.
const (
	wingFolded = iota
	wingUp
	wingMid
	wingDown
)

// poseShape is what differs between frames.
type poseShape struct {
	headDrop int  // pixels the head sinks
	eyeOpen  bool // false draws a closed lid
	wing     int
	perched  bool // feet drawn
}

var poseShapes = map[pet.Pose]poseShape{
	pet.PoseNormal: {eyeOpen: true, wing: wingFolded, perched: true},
	pet.PoseLow:    {headDrop: 10, eyeOpen: false, wing: wingFolded, perched: true},
	pet.PoseFly0:   {eyeOpen: true, wing: wingUp},
	pet.PoseFly1:   {eyeOpen: true, wing: wingMid},
	pet.PoseFly2:   {eyeOpen: true, wing: wingDown},
}

// CreateParrotTile draws one frame. The parrot faces left.
func CreateParrotTile(pose pet.Pose) *image.RGBA {
	shape := poseShapes[pose]
	img := image.NewRGBA(image.Rect(0, 0, TileSize, TileSize))

	// Make background transparent
	draw.Draw(img, img.Bounds(), &image.Uniform{color.RGBA{0, 0, 0, 0}}, image.Point{}, draw.Src)

	p := ColorPalette

	// Tail fans out behind the body, down and to the right.
	fillTriangle(img, image.Pt(150, 150), image.Pt(236, 236), image.Pt(200, 246), p.Tail)
	fillTriangle(img, image.Pt(150, 150), image.Pt(220, 226), image.Pt(246, 214), Darken(p.Tail, 0.8))

	if shape.perched {
		fillEllipse(img, 110, 212, 6, 14, p.Feet)
		fillEllipse(img, 140, 212, 6, 14, p.Feet)
	}

	// Wing behind the body when raised.
	if shape.wing == wingUp {
		fillEllipse(img, 150, 70, 28, 62, p.Wing)
		fillEllipse(img, 150, 60, 18, 48, Lighten(p.Wing, 0.25))
	}

	fillEllipse(img, 128, 148, 52, 66, p.Body)
	fillEllipse(img, 110, 162, 30, 44, p.Belly)

	switch shape.wing {
	case wingFolded:
		fillEllipse(img, 150, 150, 26, 50, p.Wing)
		fillEllipse(img, 156, 170, 16, 30, Darken(p.Wing, 0.8))
	case wingMid:
		fillEllipse(img, 176, 130, 62, 20, p.Wing)
		fillEllipse(img, 186, 128, 44, 12, Lighten(p.Wing, 0.25))
	case wingDown:
		fillEllipse(img, 160, 196, 26, 52, p.Wing)
		fillEllipse(img, 162, 206, 16, 36, Darken(p.Wing, 0.8))
	}

	// Head and face.
	hx, hy := 96, 74+shape.headDrop
	fillCircle(img, hx, hy, 40, p.Body)
	fillTriangle(img, image.Pt(hx-34, hy-8), image.Pt(hx-66, hy+14), image.Pt(hx-30, hy+22), p.Beak)
	fillTriangle(img, image.Pt(hx-34, hy+12), image.Pt(hx-52, hy+18), image.Pt(hx-30, hy+24), Darken(p.Beak, 0.75))

	fillCircle(img, hx-12, hy-8, 11, p.EyeRing)
	if shape.eyeOpen {
		fillCircle(img, hx-14, hy-8, 6, p.Eye)
	} else {
		fillEllipse(img, hx-12, hy-6, 10, 2, p.Eye)
	}

	return img
}

// CreateSheet lays out every pose left to right in pet.Pose order.
func CreateSheet() *image.RGBA {
	tiles := make([]*image.RGBA, pet.PoseCount)
	for i := range tiles {
		tiles[i] = CreateParrotTile(pet.Pose(i))
	}
	return CreateAtlas(tiles, len(tiles))
}

// CreateAtlas creates a sprite atlas from multiple tiles
func CreateAtlas(tiles []*image.RGBA, columns int) *image.RGBA {
	rows := (len(tiles) + columns - 1) / columns
	atlas := image.NewRGBA(image.Rect(0, 0, columns*TileSize, rows*TileSize))

	for i, tile := range tiles {
		if tile == nil {
			continue
		}
		x := (i % columns) * TileSize
		y := (i / columns) * TileSize
		draw.Draw(atlas, image.Rect(x, y, x+TileSize, y+TileSize), tile, image.Point{}, draw.Src)
	}

	return atlas
}

// SavePNG saves an image to a PNG file
func SavePNG(img image.Image, filepath string) error {
	file, err := os.Create(filepath)
	if err != nil {
		return err
	}
	defer file.Close()

	return png.Encode(file, img)
}

// Darken returns a darker version of a color
func Darken(c color.RGBA, factor float64) color.RGBA {
	return color.RGBA{
		R: uint8(float64(c.R) * factor),
		G: uint8(float64(c.G) * factor),
		B: uint8(float64(c.B) * factor),
		A: c.A,
	}
}

// Lighten returns a lighter version of a color
func Lighten(c color.RGBA, factor float64) color.RGBA {
	return color.RGBA{
		R: uint8(float64(c.R) + (255-float64(c.R))*factor),
		G: uint8(float64(c.G) + (255-float64(c.G))*factor),
		B: uint8(float64(c.B) + (255-float64(c.B))*factor),
		A: c.A,
	}
}

func fillCircle(img *image.RGBA, cx, cy, r int, col color.RGBA) {
	fillEllipse(img, cx, cy, r, r, col)
}

func fillEllipse(img *image.RGBA, cx, cy, rx, ry int, col color.RGBA) {
	if rx <= 0 || ry <= 0 {
		return
	}
	for y := cy - ry; y <= cy+ry; y++ {
		dy := float64(y-cy) / float64(ry)
		half := int(math.Round(float64(rx) * math.Sqrt(math.Max(0, 1-dy*dy))))
		for x := cx - half; x <= cx+half; x++ {
			if image.Pt(x, y).In(img.Rect) {
				img.SetRGBA(x, y, col)
			}
		}
	}
}

func fillTriangle(img *image.RGBA, a, b, c image.Point, col color.RGBA) {
	minX := max(min(a.X, b.X, c.X), img.Rect.Min.X)
	maxX := min(max(a.X, b.X, c.X), img.Rect.Max.X-1)
	minY := max(min(a.Y, b.Y, c.Y), img.Rect.Min.Y)
	maxY := min(max(a.Y, b.Y, c.Y), img.Rect.Max.Y-1)

	edge := func(p, q, r image.Point) int {
		return (q.X-p.X)*(r.Y-p.Y) - (q.Y-p.Y)*(r.X-p.X)
	}
	area := edge(a, b, c)
	if area == 0 {
		return
	}
	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			pt := image.Pt(x, y)
			w0, w1, w2 := edge(b, c, pt), edge(c, a, pt), edge(a, b, pt)
			if area < 0 {
				w0, w1, w2 = -w0, -w1, -w2
			}
			if w0 >= 0 && w1 >= 0 && w2 >= 0 {
				img.SetRGBA(x, y, col)
			}
		}
	}
}
