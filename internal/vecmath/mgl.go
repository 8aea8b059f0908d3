package vecmath

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/fixedstep/internal/scalar"
)

// Conversions to and from mathgl. mathgl matrices are column-major flat
// arrays, so element (r, c) lives at index c*n + r in both layouts.

func (v Vec2[T]) MGL() mgl64.Vec2 {
	return mgl64.Vec2{v.X.Float64(), v.Y.Float64()}
}

func (v Vec3[T]) MGL() mgl64.Vec3 {
	return mgl64.Vec3{v.X.Float64(), v.Y.Float64(), v.Z.Float64()}
}

func (v Vec3[T]) MGL32() mgl32.Vec3 {
	return mgl32.Vec3{float32(v.X.Float64()), float32(v.Y.Float64()), float32(v.Z.Float64())}
}

func (v Vec4[T]) MGL() mgl64.Vec4 {
	return mgl64.Vec4{v.X.Float64(), v.Y.Float64(), v.Z.Float64(), v.W.Float64()}
}

func Vec3FromMGL[T scalar.Real[T]](v mgl64.Vec3) Vec3[T] {
	return Vec3[T]{scalar.FromFloat[T](v[0]), scalar.FromFloat[T](v[1]), scalar.FromFloat[T](v[2])}
}

func (m Mat3[T]) MGL() mgl64.Mat3 {
	var out mgl64.Mat3
	for c, col := range m.Cols {
		for r, e := range col.Array() {
			out[c*3+r] = e.Float64()
		}
	}
	return out
}

func Mat3FromMGL[T scalar.Real[T]](m mgl64.Mat3) Mat3[T] {
	var out Mat3[T]
	for c := range out.Cols {
		out.Cols[c] = Vec3[T]{
			scalar.FromFloat[T](m[c*3]),
			scalar.FromFloat[T](m[c*3+1]),
			scalar.FromFloat[T](m[c*3+2]),
		}
	}
	return out
}

func (m Mat4[T]) MGL() mgl64.Mat4 {
	var out mgl64.Mat4
	for c, col := range m.Cols {
		for r, e := range col.Array() {
			out[c*4+r] = e.Float64()
		}
	}
	return out
}
