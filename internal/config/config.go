// Package config handles viewer configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/taigrr/geodx/pkg/input"
	"github.com/taigrr/geodx/pkg/models"
	"github.com/taigrr/geodx/pkg/noise"
	"github.com/taigrr/geodx/pkg/render"
	"github.com/taigrr/geodx/pkg/scene"
)

// ErrInvalid is wrapped by every Validate failure.
var ErrInvalid = errors.New("invalid config")

// Config holds all viewer settings.
type Config struct {
	Mesh     MeshConfig     `yaml:"mesh"`
	Palette  PaletteConfig  `yaml:"palette"`
	Camera   CameraConfig   `yaml:"camera"`
	Controls ControlsConfig `yaml:"controls"`
	Render   RenderConfig   `yaml:"render"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// MeshConfig describes the planet geometry.
type MeshConfig struct {
	Radius       float64 `yaml:"radius"`
	Subdivisions int     `yaml:"subdivisions"`
	Seed         uint32  `yaml:"seed"`
	WeldEpsilon  float64 `yaml:"weld_epsilon"`
}

// PaletteConfig holds the terrain bands as hex colours.
type PaletteConfig struct {
	High      string  `yaml:"high"`
	Mid       string  `yaml:"mid"`
	Low       string  `yaml:"low"`
	HighAbove float64 `yaml:"high_above"`
	MidAbove  float64 `yaml:"mid_above"`
}

// CameraConfig holds the initial view.
type CameraConfig struct {
	FOV      float64 `yaml:"fov"`
	Distance float64 `yaml:"distance"`
}

// ControlsConfig holds interaction tuning.
type ControlsConfig struct {
	Scheme           string  `yaml:"scheme"`
	DragSensitivity  float64 `yaml:"drag_sensitivity"`
	OrbitStep        float64 `yaml:"orbit_step"`
	WheelSensitivity float64 `yaml:"wheel_sensitivity"`
	ZoomGain         float64 `yaml:"zoom_gain"`
	MinDistance      float64 `yaml:"min_distance"`
	MaxDistance      float64 `yaml:"max_distance"`
	Smoothing        bool    `yaml:"smoothing"`
}

// RenderConfig holds output settings.
type RenderConfig struct {
	FPS         int    `yaml:"fps"`
	Background  string `yaml:"background"`
	Shading     string `yaml:"shading"`
	Wireframe   bool   `yaml:"wireframe"`
	WireColor   string `yaml:"wire_color"`
	Supersample int    `yaml:"supersample"` // Snapshot anti-aliasing factor
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns the stock planet viewer settings.
func Default() *Config {
	ctl := input.DefaultSettings()
	return &Config{
		Mesh: MeshConfig{
			Radius:       500,
			Subdivisions: 4,
			Seed:         0,
			WeldEpsilon:  1e-9,
		},
		Palette: PaletteConfig{
			High:      "#008000",
			Mid:       "#ffe14b",
			Low:       "#000080",
			HighAbove: models.DefaultPalette.HighAbove,
			MidAbove:  models.DefaultPalette.MidAbove,
		},
		Camera: CameraConfig{
			FOV:      render.DefaultFOV,
			Distance: render.DefaultDistance,
		},
		Controls: ControlsConfig{
			Scheme:           ctl.Scheme.String(),
			DragSensitivity:  ctl.DragSensitivity,
			OrbitStep:        ctl.OrbitStep,
			WheelSensitivity: ctl.WheelSensitivity,
			ZoomGain:         ctl.ZoomGain,
			MinDistance:      ctl.MinDistance,
			MaxDistance:      ctl.MaxDistance,
			Smoothing:        ctl.Smoothing,
		},
		Render: RenderConfig{
			FPS:         ctl.FPS,
			Background:  "#080818",
			Shading:     render.ShadeSmooth.String(),
			WireColor:   "#ffffff",
			Supersample: 2,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Validate checks every setting that the scene would otherwise reject
// later, so errors name the offending key.
func (c *Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(c.Mesh.Radius > 0 && !math.IsInf(c.Mesh.Radius, 0), "mesh.radius must be positive, got %v", c.Mesh.Radius)
	check(c.Mesh.Subdivisions >= 0 && c.Mesh.Subdivisions <= models.MaxSubdivision,
		"mesh.subdivisions must be in [0, %d], got %d", models.MaxSubdivision, c.Mesh.Subdivisions)
	check(c.Mesh.WeldEpsilon >= 0, "mesh.weld_epsilon must not be negative, got %v", c.Mesh.WeldEpsilon)

	check(c.Camera.FOV > 0 && c.Camera.FOV < math.Pi, "camera.fov must be in (0, π), got %v", c.Camera.FOV)
	check(c.Camera.Distance > 0, "camera.distance must be positive, got %v", c.Camera.Distance)

	_, err := input.ParseScheme(c.Controls.Scheme)
	check(err == nil, "controls.scheme: %v", err)
	check(c.Controls.MinDistance > 0 && c.Controls.MinDistance <= c.Controls.MaxDistance,
		"controls.min_distance %v and max_distance %v must satisfy 0 < min <= max",
		c.Controls.MinDistance, c.Controls.MaxDistance)
	check(c.Controls.ZoomGain > 0, "controls.zoom_gain must be positive, got %v", c.Controls.ZoomGain)

	check(c.Render.FPS > 0, "render.fps must be positive, got %d", c.Render.FPS)
	check(c.Render.Supersample >= 1, "render.supersample must be at least 1, got %d", c.Render.Supersample)
	_, err = render.ParseShading(c.Render.Shading)
	check(err == nil, "render.shading: %v", err)

	for _, kv := range [][2]string{
		{"palette.high", c.Palette.High},
		{"palette.mid", c.Palette.Mid},
		{"palette.low", c.Palette.Low},
		{"render.background", c.Render.Background},
		{"render.wire_color", c.Render.WireColor},
	} {
		_, err := ParseColor(kv[1])
		check(err == nil, "%s: %v", kv[0], err)
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalid, errors.Join(errs...))
	}
	return nil
}

// ParseColor parses a #rrggbb or #rgb colour.
func ParseColor(hex string) (color.RGBA, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return color.RGBA{}, err
	}
	r, g, b := c.RGB255()
	return color.RGBA{r, g, b, 255}, nil
}

// ModelPalette converts the hex palette.
func (c *Config) ModelPalette() (models.Palette, error) {
	var p models.Palette
	var err error
	if p.High, err = ParseColor(c.Palette.High); err != nil {
		return p, fmt.Errorf("palette.high: %w", err)
	}
	if p.Mid, err = ParseColor(c.Palette.Mid); err != nil {
		return p, fmt.Errorf("palette.mid: %w", err)
	}
	if p.Low, err = ParseColor(c.Palette.Low); err != nil {
		return p, fmt.Errorf("palette.low: %w", err)
	}
	p.HighAbove = c.Palette.HighAbove
	p.MidAbove = c.Palette.MidAbove
	return p, nil
}

// InputSettings converts the controls section.
func (c *Config) InputSettings() (input.Settings, error) {
	scheme, err := input.ParseScheme(c.Controls.Scheme)
	if err != nil {
		return input.Settings{}, err
	}
	return input.Settings{
		Scheme:           scheme,
		DragSensitivity:  c.Controls.DragSensitivity,
		OrbitStep:        c.Controls.OrbitStep,
		WheelSensitivity: c.Controls.WheelSensitivity,
		ZoomGain:         c.Controls.ZoomGain,
		MinDistance:      c.Controls.MinDistance,
		MaxDistance:      c.Controls.MaxDistance,
		Smoothing:        c.Controls.Smoothing,
		FPS:              c.Render.FPS,
	}, nil
}

// SceneOptions validates the config and converts it for scene.New.
func (c *Config) SceneOptions() (scene.Options, error) {
	if err := c.Validate(); err != nil {
		return scene.Options{}, err
	}

	palette, err := c.ModelPalette()
	if err != nil {
		return scene.Options{}, err
	}
	controls, err := c.InputSettings()
	if err != nil {
		return scene.Options{}, err
	}
	bg, err := ParseColor(c.Render.Background)
	if err != nil {
		return scene.Options{}, err
	}

	return scene.Options{
		Radius:       c.Mesh.Radius,
		Subdivisions: c.Mesh.Subdivisions,
		Seed:         c.Mesh.Seed,
		WeldEpsilon:  c.Mesh.WeldEpsilon,
		Palette:      palette,
		Fractal:      noise.TerrainOctaves,
		FOV:          c.Camera.FOV,
		Distance:     c.Camera.Distance,
		Controls:     controls,
		Background:   bg,
	}, nil
}

// Rasterizer configures r from the render section.
func (c *Config) Rasterizer(r *render.Rasterizer) error {
	shading, err := render.ParseShading(c.Render.Shading)
	if err != nil {
		return err
	}
	wire, err := ParseColor(c.Render.WireColor)
	if err != nil {
		return fmt.Errorf("render.wire_color: %w", err)
	}
	r.Shading = shading
	r.Wireframe = c.Render.Wireframe
	r.WireColor = wire
	return nil
}
