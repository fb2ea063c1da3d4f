package config

import (
	"fmt"
	"sort"
)

// Presets tune the spring feel. Everything else keeps its default.
var Presets = map[string]PhysicsConfig{
	"default": {Stiffness: 0.1, Damping: 0.88},
	"snappy":  {Stiffness: 0.15, Damping: 0.8},
	"floaty":  {Stiffness: 0.05, Damping: 0.92},
	"jelly":   {Stiffness: 0.12, Damping: 0.95},
	"stiff":   {Stiffness: 0.3, Damping: 0.6},
}

// GetPreset returns the default config with the named preset's physics, or
// nil when the preset does not exist.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	cfg.Physics = p
	return cfg
}

// ApplyPreset overwrites the physics section of cfg.
func (c *Config) ApplyPreset(name string) error {
	p, ok := Presets[name]
	if !ok {
		return fmt.Errorf("%w: %s (available: %v)", ErrUnknownPreset, name, ListPresets())
	}
	c.Physics = p
	return nil
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
