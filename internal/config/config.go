// Package config loads the CLI configuration file.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultPath is read when no --config flag is given.
const DefaultPath = "blockyard.yaml"

// Config is the content of blockyard.yaml.
type Config struct {
	LogLevel string `yaml:"log_level" json:"log_level"`
	Drag     Drag   `yaml:"drag" json:"drag"`
	Layout   Layout `yaml:"layout" json:"layout"`
}

// Drag tunes the drag-transfer state machine.
type Drag struct {
	GhostOffset float64 `yaml:"ghost_offset" json:"ghost_offset"`
}

// Layout tunes the outline projection used for hit testing.
type Layout struct {
	LineHeight   float64 `yaml:"line_height" json:"line_height"`
	Indent       float64 `yaml:"indent" json:"indent"`
	CharWidth    float64 `yaml:"char_width" json:"char_width"`
	PaletteWidth float64 `yaml:"palette_width" json:"palette_width"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		LogLevel: "info",
		Drag:     Drag{GhostOffset: 15},
		Layout: Layout{
			LineHeight:   20,
			Indent:       16,
			CharWidth:    8,
			PaletteWidth: 240,
		},
	}
}

// Load reads a YAML (or .json) file over the defaults.
// A missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	if strings.ToLower(filepath.Ext(path)) == ".json" {
		err = json.Unmarshal(data, &cfg)
	} else {
		err = yaml.Unmarshal(data, &cfg)
	}
	if err != nil {
		return cfg, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
	}
	return cfg, cfg.Validate()
}

// Validate rejects values the layout and drag code cannot work with.
func (c Config) Validate() error {
	var errs []error
	if c.Drag.GhostOffset < 0 {
		errs = append(errs, fmt.Errorf("drag.ghost_offset must not be negative, got %g", c.Drag.GhostOffset))
	}
	if c.Layout.LineHeight <= 0 {
		errs = append(errs, fmt.Errorf("layout.line_height must be positive, got %g", c.Layout.LineHeight))
	}
	if c.Layout.CharWidth <= 0 {
		errs = append(errs, fmt.Errorf("layout.char_width must be positive, got %g", c.Layout.CharWidth))
	}
	if c.Layout.Indent < 0 || c.Layout.PaletteWidth < 0 {
		errs = append(errs, errors.New("layout.indent and layout.palette_width must not be negative"))
	}
	return errors.Join(errs...)
}
