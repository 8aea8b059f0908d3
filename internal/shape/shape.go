// Package shape defines the collidable shape variants.
package shape

import (
	"fmt"

	"github.com/san-kum/fixedstep/internal/result"
	"github.com/san-kum/fixedstep/internal/scalar"
	"github.com/san-kum/fixedstep/internal/vecmath"
)

type Kind uint8

const (
	KindSphere Kind = iota
	KindEllipsoid
	KindBox
)

func (k Kind) String() string {
	switch k {
	case KindSphere:
		return "sphere"
	case KindEllipsoid:
		return "ellipsoid"
	case KindBox:
		return "box"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Shape is implemented only by Sphere, Ellipsoid and Box.
type Shape[T scalar.Real[T]] interface {
	Kind() Kind
	sealed()
}

type Sphere[T scalar.Real[T]] struct {
	Radius T
}

type Ellipsoid[T scalar.Real[T]] struct {
	Radii vecmath.Vec3[T]
}

// Box is axis aligned in its own frame. Dimensions are full edge lengths.
type Box[T scalar.Real[T]] struct {
	Dimensions vecmath.Vec3[T]
}

func (Sphere[T]) Kind() Kind    { return KindSphere }
func (Ellipsoid[T]) Kind() Kind { return KindEllipsoid }
func (Box[T]) Kind() Kind       { return KindBox }

func (Sphere[T]) sealed()    {}
func (Ellipsoid[T]) sealed() {}
func (Box[T]) sealed()       {}

// Sizes are not validated; a negative radius is stored as given.

func NewSphere[T scalar.Real[T]](radius T) Sphere[T] {
	return Sphere[T]{Radius: radius}
}

func NewEllipsoid[T scalar.Real[T]](radii vecmath.Vec3[T]) Ellipsoid[T] {
	return Ellipsoid[T]{Radii: radii}
}

func NewBox[T scalar.Real[T]](dimensions vecmath.Vec3[T]) Box[T] {
	return Box[T]{Dimensions: dimensions}
}

// Extents returns the half extents of s along its local axes.
func Extents[T scalar.Real[T]](s Shape[T]) (vecmath.Vec3[T], error) {
	switch v := s.(type) {
	case Sphere[T]:
		return vecmath.V3(v.Radius, v.Radius, v.Radius), nil
	case Ellipsoid[T]:
		return v.Radii, nil
	case Box[T]:
		return v.Dimensions.Scale(scalar.FromFloat[T](0.5)), nil
	default:
		return vecmath.Vec3[T]{}, result.Errorf(result.InvalidArgs, "shape: unsupported shape %T", s)
	}
}

// BoundingRadius returns the radius of the smallest origin-centred sphere
// enclosing s.
func BoundingRadius[T scalar.Real[T]](s Shape[T]) (T, error) {
	e, err := Extents[T](s)
	if err != nil {
		var zero T
		return zero, err
	}
	if s.Kind() == KindBox {
		return e.Length(), nil
	}
	return max(e.X.Abs(), e.Y.Abs(), e.Z.Abs()), nil
}
