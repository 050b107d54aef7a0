package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/STRML/tscroll/internal/scroller"
)

// configMu protects concurrent config file access
var configMu sync.Mutex

const (
	configDir  = ".tscroll"
	configFile = "config.json"

	currentVersion = 1
)

// HeightAuto sizes the grid body to the terminal.
const HeightAuto = "auto"

// ScrollerConfig holds the windowing engine settings.
type ScrollerConfig struct {
	RowHeight        scroller.RowHeight `json:"row_height"`
	ServerThrottleMs int                `json:"server_throttle_ms"`
	BufferFactor     float64            `json:"buffer_factor"`
	BoundaryScale    float64            `json:"boundary_scale"`
	Debug            bool               `json:"debug"`
}

// GlobalConfig represents the tscroll settings and state
// stored in ~/.tscroll/config.json
type GlobalConfig struct {
	Version  int            `json:"version"`
	Scroller ScrollerConfig `json:"scroller"`

	// Height is "auto" or a length such as "20px" or "50vh".
	Height          string  `json:"height"`
	MaxHeight       string  `json:"max_height,omitempty"`
	ChromeAllowance float64 `json:"chrome_allowance"`
	RowSeparators   bool    `json:"row_separators"`

	LastSource string `json:"last_source,omitempty"`
}

// Default returns the configuration used on first run.
func Default() *GlobalConfig {
	d := scroller.DefaultConfig()
	return &GlobalConfig{
		Version: currentVersion,
		Scroller: ScrollerConfig{
			RowHeight:        d.RowHeight,
			ServerThrottleMs: int(d.ServerThrottle / time.Millisecond),
			BufferFactor:     d.BufferFactor,
			BoundaryScale:    d.BoundaryScale,
		},
		Height: HeightAuto,
	}
}

// ToScroller converts the file settings into an engine configuration.
func (c *GlobalConfig) ToScroller() scroller.Config {
	cfg := scroller.DefaultConfig()
	cfg.RowHeight = c.Scroller.RowHeight
	cfg.ServerThrottle = time.Duration(c.Scroller.ServerThrottleMs) * time.Millisecond
	cfg.BufferFactor = c.Scroller.BufferFactor
	cfg.BoundaryScale = c.Scroller.BoundaryScale
	cfg.Debug = c.Scroller.Debug
	cfg.AutoHeight = c.Height == HeightAuto
	cfg.ChromeAllowance = c.ChromeAllowance
	return cfg
}

// Validate reports settings the engine would reject.
func (c *GlobalConfig) Validate() error {
	if c.ChromeAllowance < 0 {
		return fmt.Errorf("chrome_allowance must not be negative, got %v", c.ChromeAllowance)
	}
	for name, v := range map[string]string{"height": c.Height, "max_height": c.MaxHeight} {
		if v != "" && v != HeightAuto && !scroller.IsLength(v) {
			return fmt.Errorf("%s must be \"auto\" or a length such as 20px or 50vh, got %q", name, v)
		}
	}
	return c.ToScroller().Validate()
}

// ConfigDir returns the path to the tscroll config directory (~/.tscroll)
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, configDir), nil
}

// ConfigPath returns the full path to the config file
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFile), nil
}

// Load loads the configuration from disk.
// Returns a default config if the file doesn't exist; fields missing from
// the file keep their defaults.
func Load() (*GlobalConfig, error) {
	configMu.Lock()
	defer configMu.Unlock()

	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}

	cfg := Default()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if cfg.Version == 0 {
		cfg.Version = currentVersion
	}
	return cfg, nil
}

// Save saves the configuration to disk
func Save(cfg *GlobalConfig) error {
	configMu.Lock()
	defer configMu.Unlock()

	dir, err := ConfigDir()
	if err != nil {
		return err
	}

	// Ensure config directory exists
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	path := filepath.Join(dir, configFile)

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// RememberSource records the last opened source spec.
func RememberSource(spec string) error {
	cfg, err := Load()
	if err != nil {
		cfg = Default()
	}
	cfg.LastSource = spec
	return Save(cfg)
}
