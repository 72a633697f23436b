// Package config handles viewer configuration loading and management.
package config

import (
	"errors"
	"fmt"
)

// ErrInvalid is returned by Validate for out-of-range settings.
var ErrInvalid = errors.New("invalid config")

// Config holds all viewer settings.
type Config struct {
	Scene   string        `yaml:"scene"` // scene file; empty shows the built-in demo
	Window  WindowConfig  `yaml:"window"`
	Camera  CameraConfig  `yaml:"camera"`
	Widgets WidgetsConfig `yaml:"widgets"`
	Debug   DebugConfig   `yaml:"debug"`
	Logging LoggingConfig `yaml:"logging"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
}

// CameraConfig holds the initial camera and its projection.
type CameraConfig struct {
	FOV            float32    `yaml:"fov"` // degrees
	Near           float32    `yaml:"near"`
	Far            float32    `yaml:"far"`
	InvertVertical bool       `yaml:"invert_vertical"`
	TranSpeed      float32    `yaml:"tran_speed"`
	Rotation       [3]float32 `yaml:"rotation"` // Euler angles, degrees
	Translation    [3]float32 `yaml:"translation"`
	StateFile      string     `yaml:"state_file"` // empty disables save/restore
}

// WidgetsConfig holds manipulator settings.
type WidgetsConfig struct {
	ArcballRadius     float32 `yaml:"arcball_radius"` // pixels
	Proximity         float32 `yaml:"proximity"`      // pixels
	ShowConstrainAxes bool    `yaml:"show_constrain_axes"`
}

// DebugConfig holds developer aids.
type DebugConfig struct {
	ShowBounds    bool   `yaml:"show_bounds"`    // wireframe of the selected node's mesh bounds
	ScreenshotDir string `yaml:"screenshot_dir"` // F12 writes PNGs here
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Width:      1024,
			Height:     768,
			Fullscreen: false,
			VSync:      true,
		},
		Camera: CameraConfig{
			FOV:            30,
			Near:           0.001,
			Far:            500,
			InvertVertical: true,
			TranSpeed:      0.005,
			Translation:    [3]float32{0, 0, -10},
			StateFile:      "camera.bin",
		},
		Widgets: WidgetsConfig{
			ArcballRadius:     100,
			Proximity:         12,
			ShowConstrainAxes: false,
		},
		Debug: DebugConfig{
			ShowBounds:    false,
			ScreenshotDir: "screenshots",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate reports the first setting that cannot drive a viewer.
func (c *Config) Validate() error {
	switch {
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return fmt.Errorf("%w: window size %dx%d", ErrInvalid, c.Window.Width, c.Window.Height)
	case c.Camera.FOV <= 0 || c.Camera.FOV >= 180:
		return fmt.Errorf("%w: fov %g", ErrInvalid, c.Camera.FOV)
	case c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near:
		return fmt.Errorf("%w: clip range %g..%g", ErrInvalid, c.Camera.Near, c.Camera.Far)
	case c.Widgets.ArcballRadius <= 0:
		return fmt.Errorf("%w: arcball radius %g", ErrInvalid, c.Widgets.ArcballRadius)
	case c.Widgets.Proximity <= 0:
		return fmt.Errorf("%w: proximity %g", ErrInvalid, c.Widgets.Proximity)
	}
	return nil
}
