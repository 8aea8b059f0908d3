package vecmath

import "github.com/san-kum/fixedstep/internal/scalar"

type Vec4[T scalar.Real[T]] struct {
	X, Y, Z, W T
}

func V4[T scalar.Real[T]](x, y, z, w T) Vec4[T] {
	return Vec4[T]{x, y, z, w}
}

func Vec4FromArray[T scalar.Real[T]](a [4]T) Vec4[T] {
	return Vec4[T]{a[0], a[1], a[2], a[3]}
}

// Vec4FromSlice panics if s has fewer than four elements.
func Vec4FromSlice[T scalar.Real[T]](s []T) Vec4[T] {
	return Vec4FromArray([4]T(s))
}

func (v Vec4[T]) Array() [4]T { return [4]T{v.X, v.Y, v.Z, v.W} }

func (v Vec4[T]) At(i int) T { return v.Array()[i] }

func (v Vec4[T]) XYZ() Vec3[T] { return Vec3[T]{v.X, v.Y, v.Z} }

func (v Vec4[T]) Add(o Vec4[T]) Vec4[T] {
	return Vec4[T]{v.X.Add(o.X), v.Y.Add(o.Y), v.Z.Add(o.Z), v.W.Add(o.W)}
}

func (v Vec4[T]) Sub(o Vec4[T]) Vec4[T] {
	return Vec4[T]{v.X.Sub(o.X), v.Y.Sub(o.Y), v.Z.Sub(o.Z), v.W.Sub(o.W)}
}

func (v Vec4[T]) Mul(o Vec4[T]) Vec4[T] {
	return Vec4[T]{v.X.Mul(o.X), v.Y.Mul(o.Y), v.Z.Mul(o.Z), v.W.Mul(o.W)}
}

func (v Vec4[T]) Div(o Vec4[T]) Vec4[T] {
	return Vec4[T]{v.X.Div(o.X), v.Y.Div(o.Y), v.Z.Div(o.Z), v.W.Div(o.W)}
}

func (v Vec4[T]) Scale(s T) Vec4[T] {
	return Vec4[T]{v.X.Mul(s), v.Y.Mul(s), v.Z.Mul(s), v.W.Mul(s)}
}

func (v Vec4[T]) Neg() Vec4[T] {
	return Vec4[T]{v.X.Neg(), v.Y.Neg(), v.Z.Neg(), v.W.Neg()}
}

func (v Vec4[T]) Dot(o Vec4[T]) T {
	return v.X.Mul(o.X).Add(v.Y.Mul(o.Y)).Add(v.Z.Mul(o.Z)).Add(v.W.Mul(o.W))
}

func (v Vec4[T]) Length2() T { return v.Dot(v) }
func (v Vec4[T]) Length() T  { return v.Length2().Sqrt() }

func (v Vec4[T]) Distance2(o Vec4[T]) T { return o.Sub(v).Length2() }
func (v Vec4[T]) Distance(o Vec4[T]) T  { return o.Sub(v).Length() }

func (v Vec4[T]) Normalize() Vec4[T] {
	l := v.Length()
	return Vec4[T]{v.X.Div(l), v.Y.Div(l), v.Z.Div(l), v.W.Div(l)}
}

func (v Vec4[T]) ApproxEqual(o Vec4[T], tol float64) bool {
	return scalar.ApproxEqual(v.X, o.X, tol) &&
		scalar.ApproxEqual(v.Y, o.Y, tol) &&
		scalar.ApproxEqual(v.Z, o.Z, tol) &&
		scalar.ApproxEqual(v.W, o.W, tol)
}
