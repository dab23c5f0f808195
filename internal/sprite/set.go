package sprite

import (
	"fmt"
	"math"

	"chosenoffset.com/parrotpet/internal/pet"
	"chosenoffset.com/parrotpet/internal/render"
)

// entry is one cell of the frame lookup table.
type entry struct {
	img      render.Image
	mirrored bool
}

// Set holds the parrot frames for both facings. The sheet art faces left;
// right-facing frames are the same images drawn mirrored.
type Set struct {
	name   string
	table  [pet.PoseCount][2]entry
	scale  float64
	width  int
	height int
}

// Load reads the sheet image named by cfg and slices it into a Set.
func Load(cfg *AtlasConfig, loader render.ResourceLoader, scale float64) (*Set, error) {
	sheet, err := loader.LoadImage(cfg.ImagePath)
	if err != nil {
		return nil, fmt.Errorf("failed to load sprite sheet %s: %w", cfg.ImagePath, err)
	}
	return NewSet(cfg, sheet, scale)
}

// NewSet slices sheet into the frame lookup table.
func NewSet(cfg *AtlasConfig, sheet render.Image, scale float64) (*Set, error) {
	if scale <= 0 {
		return nil, fmt.Errorf("invalid sprite scale %v", scale)
	}

	s := &Set{
		name:   cfg.Name,
		scale:  scale,
		width:  int(math.Round(float64(cfg.TileWidth) * scale)),
		height: int(math.Round(float64(cfg.TileHeight) * scale)),
	}

	bounds := sheet.Bounds()
	for i, name := range pet.PoseNames() {
		tile, ok := cfg.Tile(name)
		if !ok {
			return nil, fmt.Errorf("missing tile for pose %q", name)
		}
		rect := cfg.Rect(tile)
		if !rect.In(bounds) {
			return nil, fmt.Errorf("tile %q at %v lies outside the %v sheet", name, rect, bounds.Size())
		}
		img := sheet.SubImage(rect)
		s.table[i][pet.FacingLeft] = entry{img: img}
		s.table[i][pet.FacingRight] = entry{img: img, mirrored: true}
	}
	return s, nil
}

// Name returns the atlas name.
func (s *Set) Name() string {
	return s.name
}

// Size returns the on-screen sprite size after scaling.
func (s *Set) Size() (width, height int) {
	return s.width, s.height
}

// Bounds returns the collision geometry for a screen of the given size.
func (s *Set) Bounds(screenWidth, screenHeight int) pet.Bounds {
	return pet.Bounds{
		ScreenWidth:  screenWidth,
		ScreenHeight: screenHeight,
		SpriteWidth:  s.width,
		SpriteHeight: s.height,
	}
}

// Lookup returns the image for f and whether it has to be drawn mirrored.
func (s *Set) Lookup(f pet.Frame) (render.Image, bool) {
	if f.Pose < 0 || f.Pose >= pet.PoseCount {
		f.Pose = pet.PoseNormal
	}
	e := s.table[f.Pose][f.Facing&1]
	return e.img, e.mirrored
}

// Draw paints frame f with its top-left corner at (x, y).
func (s *Set) Draw(dst render.Image, f pet.Frame, x, y float64) {
	img, mirrored := s.Lookup(f)

	geoM := render.NewGeoM()
	if mirrored {
		geoM.Scale(-s.scale, s.scale)
		geoM.Translate(x+float64(s.width), y)
	} else {
		geoM.Scale(s.scale, s.scale)
		geoM.Translate(x, y)
	}
	dst.DrawImage(img, &render.DrawImageOptions{GeoM: geoM})
}
