// Package sprite loads the parrot sprite sheet and resolves state machine
// frames to drawable images.
package sprite

import (
	"encoding/json"
	"fmt"
	"image"
	"os"
	"path/filepath"

	"chosenoffset.com/parrotpet/internal/pet"
)

// TileDefinition defines a single pose within the sheet.
type TileDefinition struct {
	Name   string `json:"name"`    // pose name, e.g. "fly1"
	AtlasX int    `json:"atlas_x"` // column in the sheet (in tiles)
	AtlasY int    `json:"atlas_y"` // row in the sheet (in tiles)
}

// AtlasConfig is the JSON description of a sprite sheet.
type AtlasConfig struct {
	Name       string           `json:"name"`
	ImagePath  string           `json:"image_path"` // relative to the JSON file
	TileWidth  int              `json:"tile_width"`
	TileHeight int              `json:"tile_height"`
	Tiles      []TileDefinition `json:"tiles"`
}

// LoadAtlasConfig reads and validates an atlas description. ImagePath is
// returned resolved against the directory of configPath.
func LoadAtlasConfig(configPath string) (*AtlasConfig, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read atlas config %s: %w", configPath, err)
	}

	var config AtlasConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse atlas config %s: %w", configPath, err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("atlas config %s: %w", configPath, err)
	}

	if !filepath.IsAbs(config.ImagePath) {
		config.ImagePath = filepath.Join(filepath.Dir(configPath), config.ImagePath)
	}
	return &config, nil
}

// Validate checks the tile geometry and that every pose has a tile.
func (c *AtlasConfig) Validate() error {
	if c.TileWidth <= 0 || c.TileHeight <= 0 {
		return fmt.Errorf("invalid tile dimensions: %dx%d", c.TileWidth, c.TileHeight)
	}
	if c.ImagePath == "" {
		return fmt.Errorf("image_path is required in atlas config")
	}
	for _, name := range pet.PoseNames() {
		if _, ok := c.Tile(name); !ok {
			return fmt.Errorf("missing tile for pose %q", name)
		}
	}
	return nil
}

// Tile returns a tile definition by name.
func (c *AtlasConfig) Tile(name string) (TileDefinition, bool) {
	for _, t := range c.Tiles {
		if t.Name == name {
			return t, true
		}
	}
	return TileDefinition{}, false
}

// Rect returns the pixel rectangle of a tile within the sheet.
func (c *AtlasConfig) Rect(t TileDefinition) image.Rectangle {
	x := t.AtlasX * c.TileWidth
	y := t.AtlasY * c.TileHeight
	return image.Rect(x, y, x+c.TileWidth, y+c.TileHeight)
}
