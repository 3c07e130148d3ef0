// Package config handles viewer configuration loading and management.
package config

import (
	"errors"
	"fmt"
)

// Config holds all viewer settings.
type Config struct {
	Window  WindowConfig  `yaml:"window"`
	Assets  AssetsConfig  `yaml:"assets"`
	Render  RenderConfig  `yaml:"render"`
	Logging LoggingConfig `yaml:"logging"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Title      string `yaml:"title"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Fullscreen bool   `yaml:"fullscreen"`
	VSync      bool   `yaml:"vsync"`
}

// AssetsConfig selects the model to load and how to read it.
type AssetsConfig struct {
	Document  string `yaml:"document"`   // Path to the .gltf document
	Companion string `yaml:"companion"`  // Binary buffer file next to the document
	Exclude   string `yaml:"exclude"`    // Mesh name to skip (exact match)
	TexCoords bool   `yaml:"tex_coords"` // Also upload TEXCOORD_0
	Async     bool   `yaml:"async"`      // Parse on a worker goroutine
}

// RenderConfig holds per-frame drawing settings.
type RenderConfig struct {
	Scale          float32    `yaml:"scale"`
	SpinSpeed      float32    `yaml:"spin_speed"` // Degrees per second
	CameraDistance float32    `yaml:"camera_distance"`
	FOV            float32    `yaml:"fov"` // Vertical, degrees
	ClearColor     [3]float32 `yaml:"clear_color"`
	LightAzimuth   float32    `yaml:"light_azimuth"`   // Degrees around +Y
	LightElevation float32    `yaml:"light_elevation"` // Degrees above the horizon
	ScreenshotDir  string     `yaml:"screenshot_dir"`
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
			Title:      "Mesh Viewer",
			Width:      800,
			Height:     600,
			Fullscreen: false,
			VSync:      true,
		},
		Assets: AssetsConfig{
			Document:  "assets/bird/bird.gltf",
			Companion: "bird.bin",
			Exclude:   "Cube.001",
		},
		Render: RenderConfig{
			Scale:          0.2,
			SpinSpeed:      45,
			CameraDistance: 3,
			FOV:            45,
			ClearColor:     [3]float32{0.53, 0.81, 0.92},
			LightAzimuth:   30,
			LightElevation: 60,
			ScreenshotDir:  "screenshots",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate reports settings the viewer cannot run with.
func (c *Config) Validate() error {
	var errs []error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height))
	}
	if c.Assets.Document == "" {
		errs = append(errs, errors.New("assets.document is empty"))
	}
	if c.Render.Scale <= 0 {
		errs = append(errs, fmt.Errorf("render.scale %g must be positive", c.Render.Scale))
	}
	if c.Render.CameraDistance <= 0 {
		errs = append(errs, fmt.Errorf("render.camera_distance %g must be positive", c.Render.CameraDistance))
	}
	if c.Render.FOV <= 0 || c.Render.FOV >= 180 {
		errs = append(errs, fmt.Errorf("render.fov %g must be in (0, 180)", c.Render.FOV))
	}
	return errors.Join(errs...)
}
