// Package assets checks that every file a session needs is in place before
// the window opens.
package assets

import (
	"errors"
	"fmt"
	"os"

	"chosenoffset.com/parrotpet/internal/sprite"
)

// ErrMissingAsset is wrapped by every missing-file error from Scan.
var ErrMissingAsset = errors.New("missing asset")

// Paths are the configured asset locations.
type Paths struct {
	Atlas     string
	Reminders string
	Messages  string
}

// Entry is one discovered file.
type Entry struct {
	Role string // "atlas", "sheet", "reminders" or "messages"
	Path string
	Size int64
}

// Manifest lists the files found by Scan.
type Manifest struct {
	Entries []Entry
	Atlas   *sprite.AtlasConfig
}

// Path returns the path recorded for role.
func (m Manifest) Path(role string) (string, bool) {
	for _, e := range m.Entries {
		if e.Role == role {
			return e.Path, true
		}
	}
	return "", false
}

// Scan checks the atlas JSON, the sheet image it points at, and both text
// files. All problems are reported together.
func Scan(p Paths) (Manifest, error) {
	var m Manifest
	var errs []error

	if e, err := stat("atlas", p.Atlas); err != nil {
		errs = append(errs, err)
	} else {
		m.Entries = append(m.Entries, e)

		cfg, err := sprite.LoadAtlasConfig(p.Atlas)
		if err != nil {
			errs = append(errs, err)
		} else {
			m.Atlas = cfg
			if e, err := stat("sheet", cfg.ImagePath); err != nil {
				errs = append(errs, err)
			} else {
				m.Entries = append(m.Entries, e)
			}
		}
	}

	for _, f := range []struct{ role, path string }{
		{"reminders", p.Reminders},
		{"messages", p.Messages},
	} {
		if e, err := stat(f.role, f.path); err != nil {
			errs = append(errs, err)
		} else {
			m.Entries = append(m.Entries, e)
		}
	}

	return m, errors.Join(errs...)
}

func stat(role, path string) (Entry, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Entry{}, fmt.Errorf("%w: %s file %s not found", ErrMissingAsset, role, path)
		}
		return Entry{}, fmt.Errorf("failed to stat %s file %s: %w", role, path, err)
	}
	if info.IsDir() {
		return Entry{}, fmt.Errorf("%s path %s is a directory", role, path)
	}
	return Entry{Role: role, Path: path, Size: info.Size()}, nil
}
