package placeholders

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"chosenoffset.com/parrotpet/internal/pet"
	"chosenoffset.com/parrotpet/internal/sprite"
)

// SampleReminders are written to a new reminders file.
var SampleReminders = []string{
	"Time to drink some water!",
	"Stand up and stretch for a minute.",
	"Look away from the screen for 20 seconds.",
	"How is your posture?",
}

// SampleMessages are written to a new messages file.
var SampleMessages = []string{
	"Hi!",
	"Squawk!",
	"Pretty bird!",
	"Got any crackers?",
	"You're doing great, keep going.",
}

// Paths says where GenerateAndSave writes.
type Paths struct {
	Atlas     string // atlas JSON; the sheet PNG is written next to it
	Reminders string
	Messages  string
}

// SheetPath returns the PNG written next to the atlas JSON.
func (p Paths) SheetPath() string {
	return strings.TrimSuffix(p.Atlas, filepath.Ext(p.Atlas)) + ".png"
}

// AtlasConfig describes the sheet produced by CreateSheet.
func AtlasConfig(imagePath string) sprite.AtlasConfig {
	cfg := sprite.AtlasConfig{
		Name:       "parrot",
		ImagePath:  imagePath,
		TileWidth:  TileSize,
		TileHeight: TileSize,
	}
	for i, name := range pet.PoseNames() {
		cfg.Tiles = append(cfg.Tiles, sprite.TileDefinition{Name: name, AtlasX: i})
	}
	return cfg
}

// GenerateAndSave writes the parrot sheet, its atlas JSON and sample text
// files. Existing files are kept unless force is set. It returns the paths
// it wrote.
func GenerateAndSave(p Paths, force bool) ([]string, error) {
	var written []string

	sheetPath := p.SheetPath()
	if ok, err := shouldWrite(sheetPath, force); err != nil {
		return written, err
	} else if ok {
		if err := os.MkdirAll(filepath.Dir(sheetPath), 0o755); err != nil {
			return written, fmt.Errorf("failed to create assets directory: %w", err)
		}
		if err := SavePNG(CreateSheet(), sheetPath); err != nil {
			return written, fmt.Errorf("failed to save %s: %w", sheetPath, err)
		}
		written = append(written, sheetPath)
	}

	if ok, err := shouldWrite(p.Atlas, force); err != nil {
		return written, err
	} else if ok {
		data, err := json.MarshalIndent(AtlasConfig(filepath.Base(sheetPath)), "", "  ")
		if err != nil {
			return written, fmt.Errorf("failed to encode atlas: %w", err)
		}
		if err := writeFile(p.Atlas, append(data, '\n')); err != nil {
			return written, err
		}
		written = append(written, p.Atlas)
	}

	texts := []struct {
		path  string
		lines []string
	}{
		{p.Reminders, SampleReminders},
		{p.Messages, SampleMessages},
	}
	for _, txt := range texts {
		if ok, err := shouldWrite(txt.path, force); err != nil {
			return written, err
		} else if !ok {
			continue
		}
		if err := writeFile(txt.path, []byte(strings.Join(txt.lines, "\n")+"\n")); err != nil {
			return written, err
		}
		written = append(written, txt.path)
	}

	return written, nil
}

func shouldWrite(path string, force bool) (bool, error) {
	if force {
		return true, nil
	}
	_, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check %s: %w", path, err)
	}
	return false, nil
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
