// Package preset stores per-device control snapshots in INI files, one
// section per preset slot.
package preset

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/ini.v1"
)

// ErrNoSection reports a preset slot the file does not have.
var ErrNoSection = errors.New("preset not found")

// Value is one control assignment. Load returns them in file order, which
// is also the order they must be applied in.
type Value struct {
	Key   string
	Value string
}

// DefaultDir returns the per-user preset directory.
func DefaultDir() string {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			home = "."
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "hu.irl.cameractrls")
}

// Store reads and writes preset files under one directory, one file per
// device.
type Store struct {
	dir string
}

func NewStore(dir string) *Store {
	if dir == "" {
		dir = DefaultDir()
	}
	return &Store{dir: dir}
}

// File returns the path of a device's preset file.
func (s *Store) File(id string) string {
	return filepath.Join(s.dir, id+".ini")
}

// Load returns one slot's assignments in file order.
func (s *Store) Load(id, section string) ([]Value, error) {
	file := s.File(id)
	f, err := ini.Load(file)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", file, err)
	}
	sec, err := f.GetSection(section)
	if err != nil {
		return nil, fmt.Errorf("load %s: %s: %w", file, section, ErrNoSection)
	}
	var out []Value
	for _, k := range sec.Keys() {
		out = append(out, Value{Key: k.Name(), Value: k.Value()})
	}
	return out, nil
}

// Save replaces one slot with the given assignments, keeping the file's
// other slots.
func (s *Store) Save(id, section string, values []Value) error {
	file := s.File(id)
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("save %s: %w", file, err)
	}
	f, err := ini.LooseLoad(file)
	if err != nil {
		return fmt.Errorf("save %s: %w", file, err)
	}
	f.DeleteSection(section)
	sec, err := f.NewSection(section)
	if err != nil {
		return fmt.Errorf("save %s: %w", file, err)
	}
	for _, v := range values {
		if _, err := sec.NewKey(v.Key, v.Value); err != nil {
			return fmt.Errorf("save %s: %w", file, err)
		}
	}
	if err := f.SaveTo(file); err != nil {
		return fmt.Errorf("save %s: %w", file, err)
	}
	return nil
}
