// Copyright 2026 The Quillreader Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigFirstRunWritesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf", "epdclock.yaml")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() failed: %v", err)
	}
	if cfg.RedrawCron != "* * * * *" {
		t.Errorf("RedrawCron = %q", cfg.RedrawCron)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("default config not written: %v", err)
	}

	// Second load reads the file back.
	cfg2, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() reload failed: %v", err)
	}
	if *cfg2 != *cfg {
		t.Errorf("reload = %+v, want %+v", cfg2, cfg)
	}
}

func TestLoadConfigNormalizes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "epdclock.yaml")
	if err := os.WriteFile(path, []byte("rotation: 90\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() failed: %v", err)
	}
	if cfg.Rotation != 0 {
		t.Errorf("Rotation = %d, want 0", cfg.Rotation)
	}
	if cfg.Listen == "" || cfg.FullRefreshCron == "" {
		t.Errorf("defaults not filled: %+v", cfg)
	}
}

func TestLoadConfigRejectsEmptyPath(t *testing.T) {
	if _, err := LoadConfig(""); err == nil {
		t.Error("LoadConfig(\"\") succeeded")
	}
}
