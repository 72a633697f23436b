package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	// Test window defaults
	if cfg.Window.Width != 1024 {
		t.Errorf("expected width 1024, got %d", cfg.Window.Width)
	}
	if cfg.Window.Height != 768 {
		t.Errorf("expected height 768, got %d", cfg.Window.Height)
	}
	if cfg.Window.Fullscreen {
		t.Error("expected fullscreen to be false by default")
	}

	// Test camera defaults
	if cfg.Camera.FOV != 30 {
		t.Errorf("expected fov 30, got %f", cfg.Camera.FOV)
	}
	if cfg.Camera.Near != 0.001 || cfg.Camera.Far != 500 {
		t.Errorf("expected clip range 0.001..500, got %f..%f", cfg.Camera.Near, cfg.Camera.Far)
	}
	if !cfg.Camera.InvertVertical {
		t.Error("expected invert_vertical to be true by default")
	}
	if cfg.Camera.Translation != [3]float32{0, 0, -10} {
		t.Errorf("expected translation (0,0,-10), got %v", cfg.Camera.Translation)
	}

	// Test widget defaults
	if cfg.Widgets.Proximity != 12 {
		t.Errorf("expected proximity 12, got %f", cfg.Widgets.Proximity)
	}

	// Test debug defaults
	if cfg.Debug.ShowBounds {
		t.Error("expected show_bounds to be false by default")
	}
	if cfg.Debug.ScreenshotDir != "screenshots" {
		t.Errorf("expected screenshot dir 'screenshots', got %s", cfg.Debug.ScreenshotDir)
	}

	// Test logging defaults
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	// Create temporary config file
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
scene: "scenes/arm.yaml"

window:
  width: 1920
  height: 1080
  fullscreen: true
  vsync: false

camera:
  fov: 45
  near: 0.1
  far: 100
  invert_vertical: false
  rotation: [10, 20, 0]
  translation: [0, 0, -5]
  state_file: ""

widgets:
  arcball_radius: 80
  proximity: 8
  show_constrain_axes: true

debug:
  show_bounds: true
  screenshot_dir: "/tmp/shots"

logging:
  level: "debug"
  log_file: "viewer.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	// Load config
	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Verify values were loaded
	if cfg.Scene != "scenes/arm.yaml" {
		t.Errorf("expected scene scenes/arm.yaml, got %s", cfg.Scene)
	}
	if cfg.Window.Width != 1920 || cfg.Window.Height != 1080 {
		t.Errorf("expected 1920x1080, got %dx%d", cfg.Window.Width, cfg.Window.Height)
	}
	if !cfg.Window.Fullscreen {
		t.Error("expected fullscreen to be true")
	}
	if cfg.Window.VSync {
		t.Error("expected vsync to be false")
	}

	if cfg.Camera.FOV != 45 {
		t.Errorf("expected fov 45, got %f", cfg.Camera.FOV)
	}
	if cfg.Camera.InvertVertical {
		t.Error("expected invert_vertical to be false")
	}
	if cfg.Camera.Rotation != [3]float32{10, 20, 0} {
		t.Errorf("expected rotation (10,20,0), got %v", cfg.Camera.Rotation)
	}
	if cfg.Camera.StateFile != "" {
		t.Errorf("expected state file disabled, got %q", cfg.Camera.StateFile)
	}
	// unset keys keep their defaults
	if cfg.Camera.TranSpeed != 0.005 {
		t.Errorf("expected default tran speed 0.005, got %f", cfg.Camera.TranSpeed)
	}

	if cfg.Widgets.ArcballRadius != 80 || cfg.Widgets.Proximity != 8 {
		t.Errorf("unexpected widget settings %+v", cfg.Widgets)
	}
	if !cfg.Widgets.ShowConstrainAxes {
		t.Error("expected show_constrain_axes to be true")
	}

	if !cfg.Debug.ShowBounds || cfg.Debug.ScreenshotDir != "/tmp/shots" {
		t.Errorf("unexpected debug settings %+v", cfg.Debug)
	}

	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "viewer.log" {
		t.Errorf("expected log file 'viewer.log', got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	// Create temporary config file with invalid YAML
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
window:
  width: not a number
  invalid syntax here
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	// Try to load - should error
	cfg := Default()
	err := loadFromFile(cfg, configPath)
	if err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	err := loadFromFile(cfg, "/nonexistent/path/config.yaml")
	if err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero width", func(c *Config) { c.Window.Width = 0 }},
		{"flat fov", func(c *Config) { c.Camera.FOV = 180 }},
		{"near behind eye", func(c *Config) { c.Camera.Near = 0 }},
		{"far before near", func(c *Config) { c.Camera.Far = c.Camera.Near }},
		{"no arcball", func(c *Config) { c.Widgets.ArcballRadius = -1 }},
		{"no proximity", func(c *Config) { c.Widgets.Proximity = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if !errors.Is(err, ErrInvalid) {
				t.Errorf("expected ErrInvalid, got %v", err)
			}
		})
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()

	// Just verify it returns a non-empty path
	// Actual path depends on OS
	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}

	// Verify path is absolute
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	// Save current directory
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	// Create temp directory and change to it
	tmpDir := t.TempDir()
	os.Chdir(tmpDir)
	t.Setenv("XDG_CONFIG_HOME", tmpDir)

	// No config file exists - should return empty
	path := findConfigFile()
	if path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	// Create config.yaml in current directory
	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte("window:\n  width: 800\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	// Should find it now
	path = findConfigFile()
	if path == "" {
		t.Error("expected to find config.yaml in current directory")
	}
}

func TestSaveToRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := Default()
	cfg.Camera.FOV = 50
	cfg.Camera.Rotation = [3]float32{1, 2, 3}

	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("failed to save config: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("failed to reload config: %v", err)
	}
	if loaded.Camera.FOV != 50 || loaded.Camera.Rotation != cfg.Camera.Rotation {
		t.Errorf("round trip lost camera settings: %+v", loaded.Camera)
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*testing.T, *Config)
		teardown func()
	}{
		{
			name: "debug flag",
			setup: func() {
				*flagDebug = true
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
				if !cfg.Widgets.ShowConstrainAxes {
					t.Error("expected constrain axes to be shown with debug flag")
				}
				if !cfg.Debug.ShowBounds {
					t.Error("expected bounds to be shown with debug flag")
				}
			},
			teardown: func() {
				*flagDebug = false
			},
		},
		{
			name: "windowed flag",
			setup: func() {
				*flagWindowed = true
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Window.Fullscreen {
					t.Error("expected fullscreen to be false with windowed flag")
				}
			},
			teardown: func() {
				*flagWindowed = false
			},
		},
		{
			name: "fullscreen flag",
			setup: func() {
				*flagFullscreen = true
			},
			verify: func(t *testing.T, cfg *Config) {
				if !cfg.Window.Fullscreen {
					t.Error("expected fullscreen to be true with fullscreen flag")
				}
			},
			teardown: func() {
				*flagFullscreen = false
			},
		},
		{
			name: "width and height flags",
			setup: func() {
				*flagWidth = 2560
				*flagHeight = 1440
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Window.Width != 2560 {
					t.Errorf("expected width 2560, got %d", cfg.Window.Width)
				}
				if cfg.Window.Height != 1440 {
					t.Errorf("expected height 1440, got %d", cfg.Window.Height)
				}
			},
			teardown: func() {
				*flagWidth = 0
				*flagHeight = 0
			},
		},
		{
			name: "fov, state and scene flags",
			setup: func() {
				*flagFOV = 60
				*flagState = "/tmp/view.bin"
				*flagScene = "arm.yaml"
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Camera.FOV != 60 {
					t.Errorf("expected fov 60, got %f", cfg.Camera.FOV)
				}
				if cfg.Camera.StateFile != "/tmp/view.bin" {
					t.Errorf("expected state file /tmp/view.bin, got %s", cfg.Camera.StateFile)
				}
				if cfg.Scene != "arm.yaml" {
					t.Errorf("expected scene arm.yaml, got %s", cfg.Scene)
				}
			},
			teardown: func() {
				*flagFOV = 0
				*flagState = ""
				*flagScene = ""
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Setup
			tt.setup()
			defer tt.teardown()

			// Apply flags to default config
			cfg := Default()
			applyFlags(cfg)

			// Verify
			tt.verify(t, cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	// Create temporary config file
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
window:
  width: 1600
  height: 900
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	// Set flag to override config file
	*flagConfig = configPath
	*flagWidth = 1920
	defer func() {
		*flagConfig = ""
		*flagWidth = 0
	}()

	// Load config
	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Width should be from flag (1920), not file (1600)
	if cfg.Window.Width != 1920 {
		t.Errorf("expected width 1920 from flag, got %d", cfg.Window.Width)
	}

	// Height should be from file (900) since no flag override
	if cfg.Window.Height != 900 {
		t.Errorf("expected height 900 from file, got %d", cfg.Window.Height)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte("camera:\n  fov: -5\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	defer func() { *flagConfig = "" }()

	if _, err := Load(); !errors.Is(err, ErrInvalid) {
		t.Errorf("expected ErrInvalid, got %v", err)
	}
}
