package config

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
	if cfg.Physics.Stiffness != 0.1 {
		t.Errorf("expected stiffness 0.1, got %f", cfg.Physics.Stiffness)
	}
	if cfg.Physics.Damping != 0.88 {
		t.Errorf("expected damping 0.88, got %f", cfg.Physics.Damping)
	}
	if cfg.Render.NumSamples != 100 || cfg.Render.TangentInterval != 12 {
		t.Errorf("unexpected render defaults: %+v", cfg.Render)
	}
	if x, y := cfg.Center(); x != 400 || y != 250 {
		t.Errorf("center = (%f, %f), want (400, 250)", x, y)
	}
}

func TestParams(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Interaction.PointOffset = 60
	cfg.Render.TangentLength = 15

	p := cfg.Params()
	if p.Stiffness != cfg.Physics.Stiffness || p.Damping != cfg.Physics.Damping {
		t.Errorf("physics not carried over: %+v", p)
	}
	if p.PointOffset != 60 || p.TangentLength != 15 {
		t.Errorf("unexpected params: %+v", p)
	}
	if p.NumSamples != 100 || p.TangentInterval != 12 {
		t.Errorf("unexpected sampling params: %+v", p)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"zero stiffness", func(c *Config) { c.Physics.Stiffness = 0 }, "physics"},
		{"damping one", func(c *Config) { c.Physics.Damping = 1 }, "physics"},
		{"negative offset", func(c *Config) { c.Interaction.PointOffset = -1 }, "interaction.point_offset"},
		{"zero samples", func(c *Config) { c.Render.NumSamples = 0 }, "render.num_samples"},
		{"zero interval", func(c *Config) { c.Render.TangentInterval = 0 }, "render.tangent_interval"},
		{"negative tangent length", func(c *Config) { c.Render.TangentLength = -2 }, "render.tangent_length"},
		{"zero fps", func(c *Config) { c.Render.FPS = 0 }, "render.fps"},
		{"zero width", func(c *Config) { c.Surface.Width = 0 }, "surface"},
		{"margin too wide", func(c *Config) { c.Surface.Margin = 400 }, "surface.margin"},
		{"nan offset", func(c *Config) { c.Interaction.PointOffset = math.NaN() }, "interaction.point_offset"},
		{"infinite width", func(c *Config) { c.Surface.Width = math.Inf(1) }, "surface"},
		{"nan waypoint", func(c *Config) {
			c.Pointer = []Waypoint{{Frame: 0, X: 10, Y: 10}, {Frame: 5, X: math.NaN(), Y: 10}}
		}, "pointer[1]"},
		{"unordered pointer", func(c *Config) {
			c.Pointer = []Waypoint{{Frame: 10}, {Frame: 5}}
		}, "pointer[1].frame"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !errors.Is(err, ErrParameterBounds) {
				t.Errorf("expected ErrParameterBounds, got %v", err)
			}
			var be *BoundsError
			if !errors.As(err, &be) {
				t.Fatalf("expected *BoundsError, got %T", err)
			}
			if be.Field != tt.field {
				t.Errorf("field = %q, want %q", be.Field, tt.field)
			}
		})
	}
}

func TestLoadSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "curve.yaml")

	cfg := DefaultConfig()
	cfg.Physics.Stiffness = 0.07
	cfg.Render.Theme = "ocean"
	cfg.Pointer = []Waypoint{{Frame: 0, X: 100, Y: 100}, {Frame: 60, X: 700, Y: 400}}

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.Physics.Stiffness != 0.07 {
		t.Errorf("expected stiffness 0.07, got %f", loaded.Physics.Stiffness)
	}
	if loaded.Render.Theme != "ocean" {
		t.Errorf("expected theme ocean, got %s", loaded.Render.Theme)
	}
	if len(loaded.Pointer) != 2 || loaded.Pointer[1].X != 700 {
		t.Errorf("pointer script not round-tripped: %+v", loaded.Pointer)
	}
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	data := []byte("physics:\n  stiffness: 0.12\n  damping: 0.9\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Physics.Stiffness != 0.12 || cfg.Physics.Damping != 0.9 {
		t.Errorf("physics not loaded: %+v", cfg.Physics)
	}
	if cfg.Render.NumSamples != 100 || cfg.Surface.Width != 800 {
		t.Error("unset options should keep defaults")
	}
}

func TestLoadOnto_KeepsPresetPhysics(t *testing.T) {
	path := filepath.Join(t.TempDir(), "render.yaml")
	if err := os.WriteFile(path, []byte("render:\n  num_samples: 40\n"), 0644); err != nil {
		t.Fatal(err)
	}

	base := GetPreset("snappy")
	cfg, err := LoadOnto(path, base)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Physics != Presets["snappy"] {
		t.Errorf("preset physics lost: %+v", cfg.Physics)
	}
	if cfg.Render.NumSamples != 40 {
		t.Errorf("expected 40 samples, got %d", cfg.Render.NumSamples)
	}
	if base.Render.NumSamples != 100 {
		t.Error("base config should not be modified")
	}
}

func TestLoad_Invalid(t *testing.T) {
	dir := t.TempDir()

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("physics:\n  damping: 1.5\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(bad); !errors.Is(err, ErrParameterBounds) {
		t.Errorf("expected bounds error, got %v", err)
	}

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoad_NaNWaypoint(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nan.yaml")
	data := "pointer:\n  - {frame: 0, x: .nan, y: 250}\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); !errors.Is(err, ErrParameterBounds) {
		t.Errorf("expected ErrParameterBounds for a NaN waypoint, got %v", err)
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("snappy")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Physics.Stiffness != 0.15 {
		t.Errorf("expected stiffness 0.15, got %f", cfg.Physics.Stiffness)
	}
	if GetPreset("nonexistent") != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestPresetsAreValid(t *testing.T) {
	for _, name := range ListPresets() {
		if err := GetPreset(name).Validate(); err != nil {
			t.Errorf("preset %s invalid: %v", name, err)
		}
	}
}

func TestApplyPreset(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.ApplyPreset("floaty"); err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	if cfg.Physics.Damping != 0.92 {
		t.Errorf("expected damping 0.92, got %f", cfg.Physics.Damping)
	}

	if err := cfg.ApplyPreset("nope"); !errors.Is(err, ErrUnknownPreset) {
		t.Errorf("expected ErrUnknownPreset, got %v", err)
	}
}

func TestListPresets(t *testing.T) {
	names := ListPresets()
	if len(names) != len(Presets) {
		t.Fatalf("expected %d presets, got %d", len(Presets), len(names))
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] > names[i] {
			t.Errorf("presets not sorted: %v", names)
		}
	}
}

func TestClone(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Pointer = []Waypoint{{Frame: 0, X: 1, Y: 1}}

	cp := cfg.Clone()
	cp.Pointer[0].X = 99
	cp.Physics.Stiffness = 0.5

	if cfg.Pointer[0].X != 1 || cfg.Physics.Stiffness != 0.1 {
		t.Error("clone shares state with original")
	}
}
