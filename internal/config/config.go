// Package config loads the optional TOML configuration file
// SPEC_FULL.md §0 adds on top of spec.md's core: the default theme
// name and the process-wide margins/minimums. Absence of a config
// file is not an error — built-in defaults apply.
//
// Grounded on Gaurav-Gosain-tuios/cmd/tuios/main.go's
// toml.Marshal/config-file round trip, using
// github.com/pelletier/go-toml/v2 with bare field names (no `toml:`
// tags appear anywhere in that repo either).
package config

import (
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Config holds every tunable spec.md leaves as a named constant.
// Field names double as the TOML keys.
type Config struct {
	Theme               string
	WindowMinimumWidth  int
	WindowMinimumHeight int
	LeftMargin          int
	RightMargin         int
	TopMargin           int
	BottomMargin        int
	SpacesPerTab        int
}

// Default returns the built-in configuration, matching the constants
// named throughout spec.md §4.1-§4.3.
func Default() Config {
	return Config{
		Theme:               "default",
		WindowMinimumWidth:  40,
		WindowMinimumHeight: 10,
		LeftMargin:          6,
		RightMargin:         6,
		TopMargin:           6,
		BottomMargin:        6,
		SpacesPerTab:        2,
	}
}

// Load reads path if it exists, overlaying its values onto Default().
// A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Save writes cfg to path as TOML, creating parent directories as
// needed.
func Save(path string, cfg Config) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
