package dynamics

import (
	"fmt"

	"github.com/san-kum/fixedstep/internal/scalar"
	"github.com/san-kum/fixedstep/internal/vecmath"
)

type Body[T scalar.Real[T]] struct {
	Position    vecmath.Vec3[T]
	Rotation    vecmath.Mat3[T]
	LinVelocity vecmath.Vec3[T]
	AngVelocity vecmath.Vec3[T]
	// Mass <= 0 makes the body static.
	Mass      T
	Kinematic bool
}

// NewBody returns a static body at the origin with identity rotation.
func NewBody[T scalar.Real[T]]() Body[T] {
	return Body[T]{Rotation: vecmath.Identity3[T]()}
}

func (b *Body[T]) Static() bool {
	var zero T
	return !b.Kinematic && b.Mass <= zero
}

func (b *Body[T]) Dynamic() bool {
	var zero T
	return !b.Kinematic && b.Mass > zero
}

// BodyID addresses a body slot. The generation makes IDs of deleted bodies
// stale even after their slot is reused. The zero BodyID is never valid.
type BodyID struct {
	index uint32
	gen   uint32
}

func (id BodyID) IsZero() bool { return id.gen == 0 }

// Index is the slot position, which is also the iteration order.
func (id BodyID) Index() int { return int(id.index) }

func (id BodyID) String() string {
	return fmt.Sprintf("body(%d#%d)", id.index, id.gen)
}

type slot[T scalar.Real[T]] struct {
	body   Body[T]
	gen    uint32
	alive  bool
	active bool
}
