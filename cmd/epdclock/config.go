// Copyright 2026 The Quillreader Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// PinConfig names the display control pins.
type PinConfig struct {
	DC   string `yaml:"dc"`
	CS   string `yaml:"cs"`
	RST  string `yaml:"rst"`
	Busy string `yaml:"busy"`
}

// Config is the top-level application configuration.
type Config struct {
	// SPIPort is the spireg port name. Empty selects the first
	// available port.
	SPIPort string `yaml:"spi_port"`

	// Pins overrides the default e-paper HAT wiring. Names are gpioreg
	// names ("P1_22", "GPIO25", ...); empty fields keep the defaults.
	Pins PinConfig `yaml:"pins"`

	// Listen is the HTTP listen address for the simulator preview.
	Listen string `yaml:"listen"`

	// Rotation is the logical drawing orientation in degrees. Supported
	// values are 0 (landscape, 800x480) and 270 (portrait, 480x800).
	Rotation int `yaml:"rotation"`

	// RedrawCron is the cron schedule for clock redraws.
	RedrawCron string `yaml:"redraw"`

	// FullRefreshCron is the cron schedule for ghost-clearing full
	// refreshes. The panel vendor recommends at least one per day.
	FullRefreshCron string `yaml:"full_refresh"`

	// FontPath is a TrueType font file for the clock face. Empty falls
	// back to a small built-in bitmap font.
	FontPath string `yaml:"font_path"`
}

// DefaultConfig returns an in-memory default configuration.
func DefaultConfig() *Config {
	return &Config{
		Listen:          "127.0.0.1:8080",
		Rotation:        0,
		RedrawCron:      "* * * * *",
		FullRefreshCron: "0 3 * * *",
	}
}

// Normalize fills in missing or invalid values so partially-filled
// configs still behave.
func (c *Config) Normalize() {
	if c.Listen == "" {
		c.Listen = "127.0.0.1:8080"
	}
	if c.Rotation != 0 && c.Rotation != 270 {
		c.Rotation = 0
	}
	if c.RedrawCron == "" {
		c.RedrawCron = "* * * * *"
	}
	if c.FullRefreshCron == "" {
		c.FullRefreshCron = "0 3 * * *"
	}
}

// LoadConfig loads configuration from the given YAML path. A missing
// file is a first run: a default config is written there and returned.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg := DefaultConfig()
			if err := SaveConfig(path, cfg); err != nil {
				return cfg, err
			}
			return cfg, nil
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	cfg.Normalize()

	return &cfg, nil
}

// SaveConfig writes the configuration to path, creating the parent
// directory if needed.
func SaveConfig(path string, cfg *Config) error {
	cfg.Normalize()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
