package dynamics

import (
	"github.com/go-logr/logr"

	"github.com/san-kum/fixedstep/internal/collision"
	"github.com/san-kum/fixedstep/internal/scalar"
)

// CollisionWorld is what the stepper needs from its collision collaborator.
// *collision.World satisfies it.
type CollisionWorld[T scalar.Real[T]] interface {
	AddObject(*collision.Object[T]) error
	RemoveObject(*collision.Object[T]) error
	Close() error
}

// CollisionFactory initializes a collision world from its config.
type CollisionFactory[T scalar.Real[T]] func(collision.Config, logr.Logger) (CollisionWorld[T], error)

// DefaultCollision builds a *collision.World.
func DefaultCollision[T scalar.Real[T]](cfg collision.Config, log logr.Logger) (CollisionWorld[T], error) {
	w, err := collision.New[T](cfg, collision.WithLogger(log))
	if err != nil {
		return nil, err
	}
	return w, nil
}

type Option func(*settings)

type settings struct {
	log       logr.Logger
	collision any
}

func WithLogger(l logr.Logger) Option {
	return func(s *settings) { s.log = l }
}

// WithCollision replaces the collision world factory. The factory's scalar
// type must match the world's.
func WithCollision[T scalar.Real[T]](f CollisionFactory[T]) Option {
	return func(s *settings) { s.collision = f }
}
