package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/fixedstep/internal/collision"
	"github.com/san-kum/fixedstep/internal/scalar"
	"github.com/san-kum/fixedstep/internal/shape"
)

const (
	DefaultRepr       = "float32"
	DefaultTimestep   = 1.0 / 144
	DefaultGravityY   = -10.0
	DefaultFrameCount = 600
	DefaultFrameDt    = 1.0 / 60
	DefaultMaxFrameDt = 0.25
)

// Vec3 is written as a YAML sequence [x, y, z].
type Vec3 [3]float64

// Config describes a scene: the world settings, its bodies, and the frame
// times fed to the stepper. Values are float64 and converted to the chosen
// representation when the world is built.
type Config struct {
	Name         string           `yaml:"name"`
	Repr         string           `yaml:"repr" env:"FIXEDSTEP_REPR"`
	Timestep     float64          `yaml:"timestep" env:"FIXEDSTEP_TIMESTEP"`
	Gravity      Vec3             `yaml:"gravity,flow"`
	BodyCapacity int              `yaml:"body_capacity,omitempty"`
	Seed         int64            `yaml:"seed" env:"FIXEDSTEP_SEED"`
	Frames       FrameConfig      `yaml:"frames"`
	Collision    collision.Config `yaml:"collision"`
	Bodies       []BodyConfig     `yaml:"bodies"`
}

type FrameConfig struct {
	Count int     `yaml:"count" env:"FIXEDSTEP_FRAME_COUNT"`
	Dt    float64 `yaml:"dt" env:"FIXEDSTEP_FRAME_DT"`
	// Jitter scales each frame by a uniform factor in [1-Jitter, 1+Jitter].
	Jitter float64 `yaml:"jitter" env:"FIXEDSTEP_FRAME_JITTER"`
	// MaxDt clamps each frame before it reaches the stepper. Zero disables it.
	MaxDt float64 `yaml:"max_dt" env:"FIXEDSTEP_MAX_FRAME_DT"`
}

type BodyConfig struct {
	Name        string      `yaml:"name,omitempty"`
	Position    Vec3        `yaml:"position,flow"`
	Velocity    Vec3        `yaml:"velocity,flow"`
	AngVelocity Vec3        `yaml:"ang_velocity,flow,omitempty"`
	Mass        float64     `yaml:"mass"`
	Kinematic   bool        `yaml:"kinematic,omitempty"`
	Inactive    bool        `yaml:"inactive,omitempty"`
	Shape       ShapeConfig `yaml:"shape"`
}

type ShapeConfig struct {
	Kind       string  `yaml:"kind"`
	Radius     float64 `yaml:"radius,omitempty"`
	Radii      Vec3    `yaml:"radii,flow,omitempty"`
	Dimensions Vec3    `yaml:"dimensions,flow,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		Name:         "default",
		Repr:         DefaultRepr,
		Timestep:     DefaultTimestep,
		Gravity:      Vec3{0, DefaultGravityY, 0},
		BodyCapacity: 128,
		Frames: FrameConfig{
			Count: DefaultFrameCount,
			Dt:    DefaultFrameDt,
			MaxDt: DefaultMaxFrameDt,
		},
		Collision: collision.DefaultConfig(),
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
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

// Resolve loads a scene from a YAML file path or a preset name, applies
// environment overrides and validates the result.
func Resolve(nameOrPath string) (*Config, error) {
	var (
		cfg *Config
		err error
	)
	switch {
	case nameOrPath == "":
		cfg = GetPreset("drop")
	case strings.HasSuffix(nameOrPath, ".yaml"), strings.HasSuffix(nameOrPath, ".yml"):
		cfg, err = Load(nameOrPath)
		if err != nil {
			return nil, err
		}
	default:
		cfg = GetPreset(nameOrPath)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset %q (available: %s)", nameOrPath, strings.Join(ListPresets(), ", "))
		}
	}

	if err := ApplyEnv(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if _, err := scalar.ParseRepr(c.Repr); err != nil {
		return err
	}
	if c.Timestep <= 0 {
		return fmt.Errorf("timestep must be positive, got %v", c.Timestep)
	}
	if c.BodyCapacity < 0 {
		return fmt.Errorf("body_capacity must not be negative, got %d", c.BodyCapacity)
	}
	if c.Frames.Count < 0 {
		return fmt.Errorf("frames.count must not be negative, got %d", c.Frames.Count)
	}
	if c.Frames.Dt < 0 {
		return fmt.Errorf("frames.dt must not be negative, got %v", c.Frames.Dt)
	}
	if c.Frames.Jitter < 0 || c.Frames.Jitter >= 1 {
		return fmt.Errorf("frames.jitter must be in [0, 1), got %v", c.Frames.Jitter)
	}
	if c.Frames.MaxDt < 0 {
		return fmt.Errorf("frames.max_dt must not be negative, got %v", c.Frames.MaxDt)
	}
	for i, b := range c.Bodies {
		if _, err := ParseShapeKind(b.Shape.Kind); err != nil {
			return fmt.Errorf("bodies[%d]: %w", i, err)
		}
	}
	return nil
}

// ReprValue returns the parsed representation. Call Validate first.
func (c *Config) ReprValue() scalar.Repr {
	r, _ := scalar.ParseRepr(c.Repr)
	return r
}

// Clone returns a deep copy.
func (c *Config) Clone() *Config {
	out := *c
	out.Bodies = append([]BodyConfig(nil), c.Bodies...)
	return &out
}

// ParseShapeKind maps a shape name to its kind. An empty name is a sphere.
func ParseShapeKind(s string) (shape.Kind, error) {
	switch strings.ToLower(s) {
	case "sphere", "":
		return shape.KindSphere, nil
	case "ellipsoid":
		return shape.KindEllipsoid, nil
	case "box":
		return shape.KindBox, nil
	default:
		return 0, fmt.Errorf("unknown shape kind %q", s)
	}
}
