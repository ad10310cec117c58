// Package preset persists named generation configurations as JSON
// files on a filesystem.
package preset

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/zarlcorp/core/pkg/zfilesystem"
	"github.com/zarlcorp/zdial/internal/serial"
)

const presetsDir = "presets"

// ErrNotFound is returned when a preset does not exist.
var ErrNotFound = errors.New("preset not found")

// Preset holds everything needed to repeat a generation run. Country
// keeps the raw identifier as typed (ISO code, name, or calling code)
// and is re-resolved on use.
type Preset struct {
	Name           string        `json:"name"`
	Country        string        `json:"country"`
	Count          int           `json:"count"`
	LocalLength    int           `json:"local_length"`
	Serial         serial.Config `json:"serial"`
	Strict         bool          `json:"strict"`
	FilenamePrefix string        `json:"filename_prefix,omitempty"`
	CreatedAt      time.Time     `json:"created_at"`
}

// Store manages preset files on a filesystem.
type Store struct {
	fs zfilesystem.ReadWriteFileFS
}

// Open opens or initializes a preset store.
func Open(fsys zfilesystem.ReadWriteFileFS) (*Store, error) {
	if err := fsys.MkdirAll(presetsDir, 0o700); err != nil {
		return nil, fmt.Errorf("open preset store: %w", err)
	}
	return &Store{fs: fsys}, nil
}

// Save writes a preset, overwriting any existing one with the same name.
func (s *Store) Save(p Preset) error {
	if err := validName(p.Name); err != nil {
		return err
	}

	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("save preset: marshal: %w", err)
	}

	if err := s.fs.WriteFile(presetPath(p.Name), data, 0o600); err != nil {
		return fmt.Errorf("save preset: write %s: %w", p.Name, err)
	}

	return nil
}

// Get returns a single preset by name.
func (s *Store) Get(name string) (Preset, error) {
	if err := validName(name); err != nil {
		return Preset{}, err
	}

	data, err := s.fs.ReadFile(presetPath(name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Preset{}, ErrNotFound
		}
		return Preset{}, fmt.Errorf("get preset: read %s: %w", name, err)
	}

	var p Preset
	if err := json.Unmarshal(data, &p); err != nil {
		return Preset{}, fmt.Errorf("get preset: unmarshal %s: %w", name, err)
	}

	return p, nil
}

// List returns all presets sorted by CreatedAt descending.
func (s *Store) List() ([]Preset, error) {
	var presets []Preset

	err := s.fs.WalkDir(presetsDir, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() || filepath.Ext(path) != ".json" {
			return nil
		}

		data, err := s.fs.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}

		var p Preset
		if err := json.Unmarshal(data, &p); err != nil {
			return fmt.Errorf("unmarshal %s: %w", path, err)
		}

		presets = append(presets, p)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list presets: %w", err)
	}

	sort.Slice(presets, func(i, j int) bool {
		return presets[i].CreatedAt.After(presets[j].CreatedAt)
	})

	return presets, nil
}

// Delete removes a preset by name.
func (s *Store) Delete(name string) error {
	if err := validName(name); err != nil {
		return err
	}

	if err := s.fs.Remove(presetPath(name)); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return ErrNotFound
		}
		return fmt.Errorf("delete preset: remove %s: %w", name, err)
	}

	return nil
}

// validName keeps preset names safe to use as filenames.
func validName(name string) error {
	if name == "" {
		return errors.New("preset name is required")
	}
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '-', r == '_':
		default:
			return fmt.Errorf("preset name %q may only contain letters, digits, '-' and '_'", name)
		}
	}
	if strings.HasPrefix(name, "-") {
		return fmt.Errorf("preset name %q may not start with '-'", name)
	}
	return nil
}

func presetPath(name string) string {
	return presetsDir + "/" + name + ".json"
}
