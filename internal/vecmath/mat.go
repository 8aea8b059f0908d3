package vecmath

import "github.com/san-kum/fixedstep/internal/scalar"

// Mat3 is a 3x3 matrix stored as columns.
type Mat3[T scalar.Real[T]] struct {
	Cols [3]Vec3[T]
}

func Identity3[T scalar.Real[T]]() Mat3[T] {
	one, zero := scalar.One[T](), scalar.Zero[T]()
	return Mat3[T]{Cols: [3]Vec3[T]{
		{one, zero, zero},
		{zero, one, zero},
		{zero, zero, one},
	}}
}

// At returns the element in row r, column c.
func (m Mat3[T]) At(r, c int) T { return m.Cols[c].At(r) }

func (m Mat3[T]) Row(r int) Vec3[T] {
	return Vec3[T]{m.Cols[0].At(r), m.Cols[1].At(r), m.Cols[2].At(r)}
}

func (m Mat3[T]) Transpose() Mat3[T] {
	return Mat3[T]{Cols: [3]Vec3[T]{m.Row(0), m.Row(1), m.Row(2)}}
}

func (m Mat3[T]) MulVec(v Vec3[T]) Vec3[T] {
	return m.Cols[0].Scale(v.X).Add(m.Cols[1].Scale(v.Y)).Add(m.Cols[2].Scale(v.Z))
}

// Mul returns m*n.
func (m Mat3[T]) Mul(n Mat3[T]) Mat3[T] {
	return Mat3[T]{Cols: [3]Vec3[T]{
		m.MulVec(n.Cols[0]),
		m.MulVec(n.Cols[1]),
		m.MulVec(n.Cols[2]),
	}}
}

func Mat3RotationX[T scalar.Real[T]](a T) Mat3[T] {
	one, zero := scalar.One[T](), scalar.Zero[T]()
	c, s := a.Cos(), a.Sin()
	return Mat3[T]{Cols: [3]Vec3[T]{
		{one, zero, zero},
		{zero, c, s},
		{zero, s.Neg(), c},
	}}
}

func Mat3RotationY[T scalar.Real[T]](a T) Mat3[T] {
	one, zero := scalar.One[T](), scalar.Zero[T]()
	c, s := a.Cos(), a.Sin()
	return Mat3[T]{Cols: [3]Vec3[T]{
		{c, zero, s.Neg()},
		{zero, one, zero},
		{s, zero, c},
	}}
}

func Mat3RotationZ[T scalar.Real[T]](a T) Mat3[T] {
	one, zero := scalar.One[T](), scalar.Zero[T]()
	c, s := a.Cos(), a.Sin()
	return Mat3[T]{Cols: [3]Vec3[T]{
		{c, s, zero},
		{s.Neg(), c, zero},
		{zero, zero, one},
	}}
}

// Mat4 is a 4x4 matrix stored as columns.
type Mat4[T scalar.Real[T]] struct {
	Cols [4]Vec4[T]
}

func Identity4[T scalar.Real[T]]() Mat4[T] {
	one, zero := scalar.One[T](), scalar.Zero[T]()
	return Mat4[T]{Cols: [4]Vec4[T]{
		{one, zero, zero, zero},
		{zero, one, zero, zero},
		{zero, zero, one, zero},
		{zero, zero, zero, one},
	}}
}

// Mat4Translation returns the affine transform that adds t to a point.
func Mat4Translation[T scalar.Real[T]](t Vec3[T]) Mat4[T] {
	m := Identity4[T]()
	m.Cols[3] = t.Vec4(scalar.One[T]())
	return m
}

// Mat4FromMat3 embeds a rotation in the upper-left block of an identity.
func Mat4FromMat3[T scalar.Real[T]](r Mat3[T]) Mat4[T] {
	m := Identity4[T]()
	for i, c := range r.Cols {
		m.Cols[i] = c.Vec4(scalar.Zero[T]())
	}
	return m
}

func (m Mat4[T]) At(r, c int) T { return m.Cols[c].At(r) }

func (m Mat4[T]) Row(r int) Vec4[T] {
	return Vec4[T]{m.Cols[0].At(r), m.Cols[1].At(r), m.Cols[2].At(r), m.Cols[3].At(r)}
}

func (m Mat4[T]) Transpose() Mat4[T] {
	return Mat4[T]{Cols: [4]Vec4[T]{m.Row(0), m.Row(1), m.Row(2), m.Row(3)}}
}

func (m Mat4[T]) MulVec(v Vec4[T]) Vec4[T] {
	return m.Cols[0].Scale(v.X).
		Add(m.Cols[1].Scale(v.Y)).
		Add(m.Cols[2].Scale(v.Z)).
		Add(m.Cols[3].Scale(v.W))
}

// TransformPoint applies m to the point p (w = 1).
func (m Mat4[T]) TransformPoint(p Vec3[T]) Vec3[T] {
	return m.MulVec(p.Vec4(scalar.One[T]())).XYZ()
}

func (m Mat4[T]) Mul(n Mat4[T]) Mat4[T] {
	return Mat4[T]{Cols: [4]Vec4[T]{
		m.MulVec(n.Cols[0]),
		m.MulVec(n.Cols[1]),
		m.MulVec(n.Cols[2]),
		m.MulVec(n.Cols[3]),
	}}
}
