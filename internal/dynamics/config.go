package dynamics

import (
	"github.com/san-kum/fixedstep/internal/collision"
	"github.com/san-kum/fixedstep/internal/result"
	"github.com/san-kum/fixedstep/internal/scalar"
	"github.com/san-kum/fixedstep/internal/vecmath"
)

type Config[T scalar.Real[T]] struct {
	Collision     collision.Config
	FixedTimestep T
	Gravity       vecmath.Vec3[T]
	// BodyCapacity preallocates the arena. The arena grows past it.
	BodyCapacity int
}

// DefaultConfig steps at 144 Hz under gravity (0, -10, 0).
func DefaultConfig[T scalar.Real[T]]() Config[T] {
	var zero T
	return Config[T]{
		Collision:     collision.DefaultConfig(),
		FixedTimestep: scalar.One[T]().Div(scalar.FromInt[T](144)),
		Gravity:       vecmath.V3(zero, scalar.FromInt[T](-10), zero),
		BodyCapacity:  128,
	}
}

func (c Config[T]) validate() error {
	var zero T
	if c.FixedTimestep <= zero {
		return result.Errorf(result.InvalidArgs, "dynamics: fixed timestep must be positive, got %v", c.FixedTimestep.Float64())
	}
	if c.BodyCapacity < 0 {
		return result.Errorf(result.InvalidArgs, "dynamics: negative body capacity %d", c.BodyCapacity)
	}
	return nil
}
