// Package config loads and validates the viewer's startup constants.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"wireview/internal/camera"
	"wireview/internal/input"
	"wireview/internal/math3d"
	"wireview/internal/scene"
)

// Window describes the host window
type Window struct {
	Width      int    `toml:"width" yaml:"width"`
	Height     int    `toml:"height" yaml:"height"`
	Title      string `toml:"title" yaml:"title"`
	Background string `toml:"background" yaml:"background"`
}

// Config holds every constant the viewer reads at startup
type Config struct {
	FocalDistance    float64 `toml:"focal_distance" yaml:"focal_distance"`
	ScaleFactor      float64 `toml:"scale_factor" yaml:"scale_factor"`
	NearPlaneEpsilon float64 `toml:"near_plane_epsilon" yaml:"near_plane_epsilon"`

	DefaultRotationX float64 `toml:"default_rotation_x" yaml:"default_rotation_x"`
	DefaultRotationY float64 `toml:"default_rotation_y" yaml:"default_rotation_y"`
	DefaultRotationZ float64 `toml:"default_rotation_z" yaml:"default_rotation_z"`
	DefaultZoom      float64 `toml:"default_zoom" yaml:"default_zoom"`

	RotationSpeed  float64 `toml:"rotation_speed" yaml:"rotation_speed"`
	ZoomSpeed      float64 `toml:"zoom_speed" yaml:"zoom_speed"`
	PanSpeed       float64 `toml:"pan_speed" yaml:"pan_speed"`
	SmoothingBlend float64 `toml:"smoothing_blend" yaml:"smoothing_blend"`
	MinZoom        float64 `toml:"min_zoom" yaml:"min_zoom"`

	OffscreenThresholdMultiplier float64 `toml:"offscreen_threshold_multiplier" yaml:"offscreen_threshold_multiplier"`
	TargetFrameIntervalMs        int     `toml:"target_frame_interval_ms" yaml:"target_frame_interval_ms"`

	Window Window `toml:"window" yaml:"window"`
}

// Default returns the built-in configuration
func Default() Config {
	return Config{
		FocalDistance:    5,
		ScaleFactor:      100,
		NearPlaneEpsilon: 0.001,

		DefaultRotationX: 0.45,
		DefaultRotationY: 3.11,
		DefaultRotationZ: 0,
		DefaultZoom:      0.34,

		RotationSpeed:  0.01,
		ZoomSpeed:      0.1,
		PanSpeed:       5,
		SmoothingBlend: 0.12,
		MinZoom:        0.1,

		OffscreenThresholdMultiplier: 8,
		TargetFrameIntervalMs:        12,

		Window: Window{
			Width:      1200,
			Height:     800,
			Title:      "wireview",
			Background: "lightblue",
		},
	}
}

// Load reads a TOML or YAML file over the defaults and validates the result.
// Unknown keys are rejected.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		err = dec.Decode(&cfg)
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		err = dec.Decode(&cfg)
		if errors.Is(err, io.EOF) {
			err = nil
		}
	default:
		return cfg, fmt.Errorf("config %s: unsupported format %q (use .toml, .yaml or .yml)", path, ext)
	}
	if err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks every value the camera and projection depend on
func (c Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	for _, f := range []struct {
		key string
		v   float64
	}{
		{"focal_distance", c.FocalDistance},
		{"scale_factor", c.ScaleFactor},
		{"near_plane_epsilon", c.NearPlaneEpsilon},
		{"default_rotation_x", c.DefaultRotationX},
		{"default_rotation_y", c.DefaultRotationY},
		{"default_rotation_z", c.DefaultRotationZ},
		{"default_zoom", c.DefaultZoom},
		{"rotation_speed", c.RotationSpeed},
		{"zoom_speed", c.ZoomSpeed},
		{"pan_speed", c.PanSpeed},
		{"smoothing_blend", c.SmoothingBlend},
		{"min_zoom", c.MinZoom},
		{"offscreen_threshold_multiplier", c.OffscreenThresholdMultiplier},
	} {
		check(!math.IsInf(f.v, 0) && !math.IsNaN(f.v), "%s must be finite, got %v", f.key, f.v)
	}
	check(c.SmoothingBlend > 0 && c.SmoothingBlend <= 1, "smoothing_blend must be in (0, 1], got %v", c.SmoothingBlend)
	check(c.MinZoom > 0, "min_zoom must be positive, got %v", c.MinZoom)
	check(c.DefaultZoom >= c.MinZoom, "default_zoom %v is below min_zoom %v", c.DefaultZoom, c.MinZoom)
	check(c.FocalDistance > 0, "focal_distance must be positive, got %v", c.FocalDistance)
	check(c.ScaleFactor > 0, "scale_factor must be positive, got %v", c.ScaleFactor)
	check(c.NearPlaneEpsilon > 0, "near_plane_epsilon must be positive, got %v", c.NearPlaneEpsilon)
	check(c.OffscreenThresholdMultiplier > 0, "offscreen_threshold_multiplier must be positive, got %v", c.OffscreenThresholdMultiplier)
	check(c.TargetFrameIntervalMs > 0, "target_frame_interval_ms must be positive, got %v", c.TargetFrameIntervalMs)
	check(c.RotationSpeed >= 0, "rotation_speed must not be negative, got %v", c.RotationSpeed)
	check(c.ZoomSpeed >= 0, "zoom_speed must not be negative, got %v", c.ZoomSpeed)
	check(c.PanSpeed >= 0, "pan_speed must not be negative, got %v", c.PanSpeed)
	check(c.Window.Width > 0 && c.Window.Height > 0, "window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	_, ok := scene.Named(c.Window.Background)
	check(ok, "unknown background colour %q", c.Window.Background)

	return errors.Join(errs...)
}

// Projector builds the screen projection from the focal distance, scale and epsilon
func (c Config) Projector() math3d.Projector {
	return math3d.Projector{Focal: c.FocalDistance, Scale: c.ScaleFactor, Epsilon: c.NearPlaneEpsilon}
}

// Viewport builds the cull area from the window size and threshold multiplier
func (c Config) Viewport() math3d.Viewport {
	return math3d.Viewport{Width: c.Window.Width, Height: c.Window.Height, Multiplier: c.OffscreenThresholdMultiplier}
}

// CameraDefaults is the state the camera starts in and resets to
func (c Config) CameraDefaults() camera.State {
	return camera.State{
		RotationX: c.DefaultRotationX,
		RotationY: c.DefaultRotationY,
		RotationZ: c.DefaultRotationZ,
		Zoom:      c.DefaultZoom,
	}
}

// Camera builds a camera resting at the configured defaults
func (c Config) Camera() *camera.Camera {
	return camera.New(c.CameraDefaults(), c.SmoothingBlend, c.MinZoom)
}

// Mapper builds the key mapper from the configured speeds
func (c Config) Mapper() input.Mapper {
	return input.Mapper{RotationSpeed: c.RotationSpeed, ZoomSpeed: c.ZoomSpeed, PanSpeed: c.PanSpeed}
}

// Interval is the target time between frames
func (c Config) Interval() time.Duration {
	return time.Duration(c.TargetFrameIntervalMs) * time.Millisecond
}

// Background returns the window clear colour, black if the name is unknown
func (c Config) Background() color.RGBA {
	if col, ok := scene.Named(c.Window.Background); ok {
		return col
	}
	return color.RGBA{A: 0xff}
}
