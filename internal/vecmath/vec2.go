package vecmath

import "github.com/san-kum/fixedstep/internal/scalar"

type Vec2[T scalar.Real[T]] struct {
	X, Y T
}

func V2[T scalar.Real[T]](x, y T) Vec2[T] {
	return Vec2[T]{x, y}
}

// Vec2FromAngle returns the unit vector (cos a, sin a).
func Vec2FromAngle[T scalar.Real[T]](a T) Vec2[T] {
	return Vec2[T]{a.Cos(), a.Sin()}
}

func Vec2FromArray[T scalar.Real[T]](a [2]T) Vec2[T] {
	return Vec2[T]{a[0], a[1]}
}

// Vec2FromSlice panics if s has fewer than two elements.
func Vec2FromSlice[T scalar.Real[T]](s []T) Vec2[T] {
	return Vec2FromArray([2]T(s))
}

func (v Vec2[T]) Array() [2]T { return [2]T{v.X, v.Y} }

func (v Vec2[T]) At(i int) T { return v.Array()[i] }

func (v Vec2[T]) Add(o Vec2[T]) Vec2[T] { return Vec2[T]{v.X.Add(o.X), v.Y.Add(o.Y)} }
func (v Vec2[T]) Sub(o Vec2[T]) Vec2[T] { return Vec2[T]{v.X.Sub(o.X), v.Y.Sub(o.Y)} }
func (v Vec2[T]) Mul(o Vec2[T]) Vec2[T] { return Vec2[T]{v.X.Mul(o.X), v.Y.Mul(o.Y)} }
func (v Vec2[T]) Div(o Vec2[T]) Vec2[T] { return Vec2[T]{v.X.Div(o.X), v.Y.Div(o.Y)} }
func (v Vec2[T]) Scale(s T) Vec2[T]     { return Vec2[T]{v.X.Mul(s), v.Y.Mul(s)} }
func (v Vec2[T]) Neg() Vec2[T]          { return Vec2[T]{v.X.Neg(), v.Y.Neg()} }

func (v Vec2[T]) Dot(o Vec2[T]) T {
	return v.X.Mul(o.X).Add(v.Y.Mul(o.Y))
}

func (v Vec2[T]) Length2() T { return v.Dot(v) }
func (v Vec2[T]) Length() T  { return v.Length2().Sqrt() }

func (v Vec2[T]) Distance2(o Vec2[T]) T { return o.Sub(v).Length2() }
func (v Vec2[T]) Distance(o Vec2[T]) T  { return o.Sub(v).Length() }

func (v Vec2[T]) Normalize() Vec2[T] {
	l := v.Length()
	return Vec2[T]{v.X.Div(l), v.Y.Div(l)}
}

// Rotate rotates v counter-clockwise by a radians.
func (v Vec2[T]) Rotate(a T) Vec2[T] {
	c, s := a.Cos(), a.Sin()
	return Vec2[T]{
		v.X.Mul(c).Sub(v.Y.Mul(s)),
		v.X.Mul(s).Add(v.Y.Mul(c)),
	}
}

// Perpendicular rotates v by +90 degrees.
func (v Vec2[T]) Perpendicular() Vec2[T] { return Vec2[T]{v.Y.Neg(), v.X} }

// PerpendicularRev rotates v by -90 degrees.
func (v Vec2[T]) PerpendicularRev() Vec2[T] { return Vec2[T]{v.Y, v.X.Neg()} }

// Angle returns the difference between the slope angles of a and b,
// atan(a.Y/a.X) - atan(b.Y/b.X). Vectors on the Y axis divide by zero.
func Angle[T scalar.Real[T]](a, b Vec2[T]) T {
	return a.Y.Div(a.X).Atan().Sub(b.Y.Div(b.X).Atan())
}

func (v Vec2[T]) ApproxEqual(o Vec2[T], tol float64) bool {
	return scalar.ApproxEqual(v.X, o.X, tol) && scalar.ApproxEqual(v.Y, o.Y, tol)
}
