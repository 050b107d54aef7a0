package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/STRML/tscroll/internal/scroller"
)

func TestLoadReturnsDefaultOnFirstRun(t *testing.T) {
	// Use a temp directory as home
	tmpHome := t.TempDir()
	t.Setenv("HOME", tmpHome)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Version != 1 {
		t.Errorf("cfg.Version = %d, want 1", cfg.Version)
	}
	if cfg.Height != HeightAuto {
		t.Errorf("cfg.Height = %q, want auto", cfg.Height)
	}
	if !cfg.Scroller.RowHeight.IsAuto() {
		t.Errorf("cfg.Scroller.RowHeight = %v, want auto", cfg.Scroller.RowHeight)
	}
	if cfg.Scroller.ServerThrottleMs != 200 {
		t.Errorf("cfg.Scroller.ServerThrottleMs = %d, want 200", cfg.Scroller.ServerThrottleMs)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestSaveAndLoad(t *testing.T) {
	tmpHome := t.TempDir()
	t.Setenv("HOME", tmpHome)

	cfg := Default()
	cfg.Scroller.RowHeight = scroller.FixedRowHeight(2)
	cfg.Scroller.BufferFactor = 3
	cfg.Height = "30px"
	cfg.RowSeparators = true
	cfg.LastSource = "seq:100"

	if err := Save(cfg); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	// Verify file was created
	path := filepath.Join(tmpHome, configDir, configFile)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Fatal("Config file was not created")
	}

	// Load and verify
	loaded, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if loaded.Scroller.RowHeight.Value() != 2 {
		t.Errorf("loaded row height = %v, want 2", loaded.Scroller.RowHeight)
	}
	if loaded.Scroller.BufferFactor != 3 {
		t.Errorf("loaded.Scroller.BufferFactor = %v, want 3", loaded.Scroller.BufferFactor)
	}
	if loaded.Height != "30px" || !loaded.RowSeparators || loaded.LastSource != "seq:100" {
		t.Errorf("loaded = %+v", loaded)
	}
}

func TestLoadKeepsDefaultsForMissingFields(t *testing.T) {
	tmpHome := t.TempDir()
	t.Setenv("HOME", tmpHome)

	dir := filepath.Join(tmpHome, configDir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	data := `{"scroller": {"boundary_scale": 0.8, "debug": true}}`
	if err := os.WriteFile(filepath.Join(dir, configFile), []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Scroller.BoundaryScale != 0.8 || !cfg.Scroller.Debug {
		t.Errorf("cfg.Scroller = %+v, want scale 0.8 with debug", cfg.Scroller)
	}
	if cfg.Scroller.BufferFactor != 2 {
		t.Errorf("cfg.Scroller.BufferFactor = %v, want the default 2", cfg.Scroller.BufferFactor)
	}
	if cfg.Version != 1 {
		t.Errorf("cfg.Version = %d, want 1", cfg.Version)
	}
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	tmpHome := t.TempDir()
	t.Setenv("HOME", tmpHome)

	dir := filepath.Join(tmpHome, configDir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, configFile), []byte(`{"scroller": {"row_height": "tall"}}`), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(); err == nil {
		t.Error("Load() should fail for an unknown row height keyword")
	}
}

func TestToScroller(t *testing.T) {
	cfg := Default()
	cfg.Scroller.ServerThrottleMs = 50
	cfg.Scroller.Debug = true
	cfg.ChromeAllowance = 3

	sc := cfg.ToScroller()
	if sc.ServerThrottle != 50*time.Millisecond {
		t.Errorf("ServerThrottle = %v, want 50ms", sc.ServerThrottle)
	}
	if !sc.AutoHeight {
		t.Error("AutoHeight = false, want true for height auto")
	}
	if sc.ChromeAllowance != 3 || !sc.Debug {
		t.Errorf("ToScroller() = %+v", sc)
	}

	cfg.Height = "20px"
	if cfg.ToScroller().AutoHeight {
		t.Error("AutoHeight = true for a fixed height")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*GlobalConfig)
		wantErr bool
	}{
		{"defaults", func(*GlobalConfig) {}, false},
		{"scale out of range", func(c *GlobalConfig) { c.Scroller.BoundaryScale = 2 }, true},
		{"negative buffer", func(c *GlobalConfig) { c.Scroller.BufferFactor = -1 }, true},
		{"negative chrome", func(c *GlobalConfig) { c.ChromeAllowance = -1 }, true},
		{"fixed height", func(c *GlobalConfig) { c.Height = "20px" }, false},
		{"relative max height", func(c *GlobalConfig) { c.MaxHeight = "50vh" }, false},
		{"bad height", func(c *GlobalConfig) { c.Height = "tall" }, true},
		{"bad max height", func(c *GlobalConfig) { c.MaxHeight = "20" }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if err := cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestRememberSource(t *testing.T) {
	tmpHome := t.TempDir()
	t.Setenv("HOME", tmpHome)

	if err := RememberSource("csv:/tmp/x.csv"); err != nil {
		t.Fatalf("RememberSource() error = %v", err)
	}
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.LastSource != "csv:/tmp/x.csv" {
		t.Errorf("LastSource = %q", cfg.LastSource)
	}
}
