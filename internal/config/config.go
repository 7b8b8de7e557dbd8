// Package config loads .simdup.toml, the optional sibling configuration
// file that supplies defaults the CLI flags may override.
package config

import (
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/ludo-technologies/simdup/internal/constants"
)

// Config mirrors the cluster subcommand's flag surface. Pointer fields
// distinguish "absent from the file" from "explicitly set to the zero
// value", the same convention the teacher config loader used for booleans.
type Config struct {
	Blocks     int    `toml:"blocks"`
	Distance   int    `toml:"distance"`
	Format     string `toml:"format"`
	TextColumn string `toml:"text_column"`
	IDColumn   string `toml:"id_column"`
	Window     int    `toml:"window"`
	Sample     int    `toml:"sample"`
	Workers    int    `toml:"workers"`
	Progress   *bool  `toml:"progress"`
}

// Default returns the built-in defaults applied before any config file or
// CLI flag is considered.
func Default() *Config {
	return &Config{
		Blocks:     constants.DefaultBlocks,
		TextColumn: constants.DefaultTextColumn,
		IDColumn:   constants.DefaultIDColumn,
		Window:     constants.DefaultWindow,
		Workers:    constants.DefaultWorkers,
	}
}

// Loader loads a Config from a .simdup.toml file.
type Loader struct{}

// NewLoader creates a new config loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads path, merging it on top of Default(). A zero or negative int
// field in the file leaves the default untouched; an empty string field
// does too. Pointer-typed fields only override when set.
func (l *Loader) Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var file Config
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, err
	}

	l.merge(cfg, &file)
	return cfg, nil
}

// Find walks up from startDir looking for .simdup.toml, ruff-style.
// Returns "" if none is found.
func (l *Loader) Find(startDir string) string {
	dir := startDir
	for {
		candidate := filepath.Join(dir, ".simdup.toml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

func (l *Loader) merge(base, override *Config) {
	if override.Blocks > 0 {
		base.Blocks = override.Blocks
	}
	if override.Distance > 0 {
		base.Distance = override.Distance
	}
	if override.Format != "" {
		base.Format = override.Format
	}
	if override.TextColumn != "" {
		base.TextColumn = override.TextColumn
	}
	if override.IDColumn != "" {
		base.IDColumn = override.IDColumn
	}
	if override.Window > 0 {
		base.Window = override.Window
	}
	if override.Sample > 0 {
		base.Sample = override.Sample
	}
	if override.Workers > 0 {
		base.Workers = override.Workers
	}
	if override.Progress != nil {
		base.Progress = override.Progress
	}
}
