package config

import (
	"maps"
	"slices"

	"github.com/san-kum/fixedstep/internal/collision"
)

var Presets = map[string]*Config{
	"drop": {
		Name: "drop", Repr: "float32", Timestep: DefaultTimestep,
		Gravity: Vec3{0, -10, 0},
		Frames:  FrameConfig{Count: 300, Dt: 1.0 / 60, MaxDt: 0.25},
		Bodies: []BodyConfig{
			{Name: "ball", Position: Vec3{0, 100, 0}, Mass: 1, Shape: ShapeConfig{Kind: "sphere", Radius: 0.5}},
		},
	},
	"drop-fixed": {
		Name: "drop-fixed", Repr: "q16.16", Timestep: 1.0 / 64,
		Gravity: Vec3{0, -10, 0},
		Frames:  FrameConfig{Count: 300, Dt: 1.0 / 60, MaxDt: 0.25},
		Bodies: []BodyConfig{
			{Name: "ball", Position: Vec3{0, 100, 0}, Mass: 1, Shape: ShapeConfig{Kind: "sphere", Radius: 0.5}},
		},
	},
	"mixed": {
		Name: "mixed", Repr: "float64", Timestep: DefaultTimestep,
		Gravity: Vec3{0, -10, 0},
		Frames:  FrameConfig{Count: 240, Dt: 1.0 / 60, Jitter: 0.3, MaxDt: 0.25},
		Bodies: []BodyConfig{
			{Name: "floor", Position: Vec3{0, 0, 0}, Mass: 0, Shape: ShapeConfig{Kind: "box", Dimensions: Vec3{20, 1, 20}}},
			{Name: "platform", Position: Vec3{-5, 10, 0}, Velocity: Vec3{0.05, 0, 0}, Mass: 5, Kinematic: true,
				Shape: ShapeConfig{Kind: "box", Dimensions: Vec3{2, 0.2, 2}}},
			{Name: "ball", Position: Vec3{0, 50, 0}, Velocity: Vec3{0.01, 0, 0}, Mass: 1, Shape: ShapeConfig{Kind: "sphere", Radius: 0.5}},
			{Name: "egg", Position: Vec3{3, 40, 0}, Mass: 2, Shape: ShapeConfig{Kind: "ellipsoid", Radii: Vec3{0.3, 0.5, 0.3}}},
			{Name: "parked", Position: Vec3{8, 30, 0}, Mass: 1, Inactive: true, Shape: ShapeConfig{Kind: "sphere", Radius: 1}},
		},
	},
	"projectile": {
		Name: "projectile", Repr: "float64", Timestep: 1.0 / 120,
		Gravity: Vec3{0, -9.81, 0},
		Frames:  FrameConfig{Count: 180, Dt: 1.0 / 30, MaxDt: 0.1},
		Bodies: []BodyConfig{
			{Name: "shell", Position: Vec3{0, 0, 0}, Velocity: Vec3{0.2, 0.4, 0}, Mass: 1, Shape: ShapeConfig{Kind: "sphere", Radius: 0.1}},
		},
	},
	"jitter": {
		Name: "jitter", Repr: "q32.32", Timestep: DefaultTimestep,
		Gravity: Vec3{0, -10, 0},
		Seed:    42,
		Frames:  FrameConfig{Count: 600, Dt: 1.0 / 60, Jitter: 0.9, MaxDt: 0.05},
		Bodies: []BodyConfig{
			{Name: "a", Position: Vec3{0, 10, 0}, Mass: 1, Shape: ShapeConfig{Kind: "sphere", Radius: 0.5}},
			{Name: "b", Position: Vec3{2, 20, 0}, Mass: 3, Shape: ShapeConfig{Kind: "box", Dimensions: Vec3{1, 1, 1}}},
		},
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := p.Clone()
	if cfg.Collision == (collision.Config{}) {
		cfg.Collision = collision.DefaultConfig()
	}
	if cfg.BodyCapacity == 0 {
		cfg.BodyCapacity = DefaultConfig().BodyCapacity
	}
	return cfg
}

func ListPresets() []string {
	return slices.Sorted(maps.Keys(Presets))
}
