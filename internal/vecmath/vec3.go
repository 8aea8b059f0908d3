package vecmath

import "github.com/san-kum/fixedstep/internal/scalar"

type Vec3[T scalar.Real[T]] struct {
	X, Y, Z T
}

func V3[T scalar.Real[T]](x, y, z T) Vec3[T] {
	return Vec3[T]{x, y, z}
}

func Vec3FromArray[T scalar.Real[T]](a [3]T) Vec3[T] {
	return Vec3[T]{a[0], a[1], a[2]}
}

// Vec3FromSlice panics if s has fewer than three elements.
func Vec3FromSlice[T scalar.Real[T]](s []T) Vec3[T] {
	return Vec3FromArray([3]T(s))
}

func (v Vec3[T]) Array() [3]T { return [3]T{v.X, v.Y, v.Z} }

func (v Vec3[T]) At(i int) T { return v.Array()[i] }

func (v Vec3[T]) XY() Vec2[T] { return Vec2[T]{v.X, v.Y} }

func (v Vec3[T]) Vec4(w T) Vec4[T] { return Vec4[T]{v.X, v.Y, v.Z, w} }

func (v Vec3[T]) Add(o Vec3[T]) Vec3[T] {
	return Vec3[T]{v.X.Add(o.X), v.Y.Add(o.Y), v.Z.Add(o.Z)}
}

func (v Vec3[T]) Sub(o Vec3[T]) Vec3[T] {
	return Vec3[T]{v.X.Sub(o.X), v.Y.Sub(o.Y), v.Z.Sub(o.Z)}
}

func (v Vec3[T]) Mul(o Vec3[T]) Vec3[T] {
	return Vec3[T]{v.X.Mul(o.X), v.Y.Mul(o.Y), v.Z.Mul(o.Z)}
}

func (v Vec3[T]) Div(o Vec3[T]) Vec3[T] {
	return Vec3[T]{v.X.Div(o.X), v.Y.Div(o.Y), v.Z.Div(o.Z)}
}

func (v Vec3[T]) Scale(s T) Vec3[T] {
	return Vec3[T]{v.X.Mul(s), v.Y.Mul(s), v.Z.Mul(s)}
}

func (v Vec3[T]) Neg() Vec3[T] {
	return Vec3[T]{v.X.Neg(), v.Y.Neg(), v.Z.Neg()}
}

func (v Vec3[T]) Dot(o Vec3[T]) T {
	return v.X.Mul(o.X).Add(v.Y.Mul(o.Y)).Add(v.Z.Mul(o.Z))
}

func (v Vec3[T]) Cross(o Vec3[T]) Vec3[T] {
	return Vec3[T]{
		v.Y.Mul(o.Z).Sub(v.Z.Mul(o.Y)),
		v.Z.Mul(o.X).Sub(v.X.Mul(o.Z)),
		v.X.Mul(o.Y).Sub(v.Y.Mul(o.X)),
	}
}

func (v Vec3[T]) Length2() T { return v.Dot(v) }
func (v Vec3[T]) Length() T  { return v.Length2().Sqrt() }

func (v Vec3[T]) Distance2(o Vec3[T]) T { return o.Sub(v).Length2() }
func (v Vec3[T]) Distance(o Vec3[T]) T  { return o.Sub(v).Length() }

func (v Vec3[T]) Normalize() Vec3[T] {
	l := v.Length()
	return Vec3[T]{v.X.Div(l), v.Y.Div(l), v.Z.Div(l)}
}

func (v Vec3[T]) ApproxEqual(o Vec3[T], tol float64) bool {
	return scalar.ApproxEqual(v.X, o.X, tol) &&
		scalar.ApproxEqual(v.Y, o.Y, tol) &&
		scalar.ApproxEqual(v.Z, o.Z, tol)
}

// ConvertVec3 re-encodes v in another scalar representation.
func ConvertVec3[To scalar.Real[To], From scalar.Real[From]](v Vec3[From]) Vec3[To] {
	return Vec3[To]{
		scalar.Convert[To](v.X),
		scalar.Convert[To](v.Y),
		scalar.Convert[To](v.Z),
	}
}
