package config

import (
	"fmt"
	"math"
	"os"

	"github.com/san-kum/springcurve/internal/physics"
	"github.com/san-kum/springcurve/internal/scene"
	"gopkg.in/yaml.v3"
)

const (
	DefaultFPS   = 60
	DefaultTheme = "cyberpunk"
)

type Config struct {
	Surface     SurfaceConfig     `yaml:"surface"`
	Physics     PhysicsConfig     `yaml:"physics"`
	Interaction InteractionConfig `yaml:"interaction"`
	Render      RenderConfig      `yaml:"render"`
	Pointer     []Waypoint        `yaml:"pointer,omitempty"`
}

type SurfaceConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Margin float64 `yaml:"margin"`
}

type PhysicsConfig struct {
	Stiffness float64 `yaml:"stiffness"`
	Damping   float64 `yaml:"damping"`
}

type InteractionConfig struct {
	PointOffset float64 `yaml:"point_offset"`
}

type RenderConfig struct {
	NumSamples      int     `yaml:"num_samples"`
	TangentInterval int     `yaml:"tangent_interval"`
	TangentLength   float64 `yaml:"tangent_length"`
	FPS             int     `yaml:"fps"`
	Theme           string  `yaml:"theme"`
}

// Waypoint pins the scripted pointer to (X, Y) at a frame. Headless runs
// interpolate between waypoints.
type Waypoint struct {
	Frame int     `yaml:"frame"`
	X     float64 `yaml:"x"`
	Y     float64 `yaml:"y"`
}

func DefaultConfig() *Config {
	return &Config{
		Surface: SurfaceConfig{
			Width:  scene.DefaultWidth,
			Height: scene.DefaultHeight,
			Margin: scene.DefaultMargin,
		},
		Physics: PhysicsConfig{
			Stiffness: physics.DefaultStiffness,
			Damping:   physics.DefaultDamping,
		},
		Interaction: InteractionConfig{
			PointOffset: scene.DefaultPointOffset,
		},
		Render: RenderConfig{
			NumSamples:      scene.DefaultNumSamples,
			TangentInterval: scene.DefaultTangentInterval,
			TangentLength:   scene.DefaultTangentLength,
			FPS:             DefaultFPS,
			Theme:           DefaultTheme,
		},
	}
}

func Load(path string) (*Config, error) {
	return LoadOnto(path, DefaultConfig())
}

// LoadOnto reads path over a copy of base, so keys missing from the file
// keep base's values.
func LoadOnto(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := base.Clone()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks every option against the range the scene and the spring
// law accept.
func (c *Config) Validate() error {
	if !physics.Stable(c.Physics.Stiffness, c.Physics.Damping) {
		return &BoundsError{
			Field: "physics",
			Value: fmt.Sprintf("stiffness=%g damping=%g", c.Physics.Stiffness, c.Physics.Damping),
			Want:  "both in (0,1)",
		}
	}
	if !finite(c.Interaction.PointOffset) || c.Interaction.PointOffset < 0 {
		return &BoundsError{Field: "interaction.point_offset", Value: fmt.Sprint(c.Interaction.PointOffset), Want: ">= 0"}
	}
	if c.Render.NumSamples < 1 {
		return &BoundsError{Field: "render.num_samples", Value: fmt.Sprint(c.Render.NumSamples), Want: ">= 1"}
	}
	if c.Render.TangentInterval < 1 {
		return &BoundsError{Field: "render.tangent_interval", Value: fmt.Sprint(c.Render.TangentInterval), Want: ">= 1"}
	}
	if !finite(c.Render.TangentLength) || c.Render.TangentLength < 0 {
		return &BoundsError{Field: "render.tangent_length", Value: fmt.Sprint(c.Render.TangentLength), Want: ">= 0"}
	}
	if c.Render.FPS <= 0 {
		return &BoundsError{Field: "render.fps", Value: fmt.Sprint(c.Render.FPS), Want: "> 0"}
	}
	if !finite(c.Surface.Width) || !finite(c.Surface.Height) || c.Surface.Width <= 0 || c.Surface.Height <= 0 {
		return &BoundsError{
			Field: "surface",
			Value: fmt.Sprintf("%gx%g", c.Surface.Width, c.Surface.Height),
			Want:  "positive width and height",
		}
	}
	if !finite(c.Surface.Margin) || c.Surface.Margin < 0 || 2*c.Surface.Margin >= c.Surface.Width {
		return &BoundsError{Field: "surface.margin", Value: fmt.Sprint(c.Surface.Margin), Want: "in [0, width/2)"}
	}
	for i, w := range c.Pointer {
		if !finite(w.X) || !finite(w.Y) {
			return &BoundsError{Field: fmt.Sprintf("pointer[%d]", i), Value: fmt.Sprintf("%g, %g", w.X, w.Y), Want: "finite coordinates"}
		}
	}
	for i := 1; i < len(c.Pointer); i++ {
		if c.Pointer[i].Frame <= c.Pointer[i-1].Frame {
			return &BoundsError{Field: fmt.Sprintf("pointer[%d].frame", i), Value: fmt.Sprint(c.Pointer[i].Frame), Want: "strictly increasing"}
		}
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Params converts the config into the per-frame scene constants.
func (c *Config) Params() scene.Params {
	return scene.Params{
		Stiffness:       c.Physics.Stiffness,
		Damping:         c.Physics.Damping,
		PointOffset:     c.Interaction.PointOffset,
		NumSamples:      c.Render.NumSamples,
		TangentInterval: c.Render.TangentInterval,
		TangentLength:   c.Render.TangentLength,
	}
}

// NewScene lays out a scene on the configured surface.
func (c *Config) NewScene() *scene.Scene {
	return scene.New(c.Surface.Width, c.Surface.Height, c.Surface.Margin)
}

// Center of the surface, where hosts park the pointer at start.
func (c *Config) Center() (float64, float64) {
	return c.Surface.Width / 2, c.Surface.Height / 2
}

func (c *Config) Clone() *Config {
	cp := *c
	cp.Pointer = append([]Waypoint(nil), c.Pointer...)
	return &cp
}
