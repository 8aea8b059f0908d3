// Package geom implements 2D ray, line and segment queries over implicit
// lines A*x + B*y + C = 0.
//
// Queries return (value, ok). The value is the zero Hit whenever ok is false.
package geom

import (
	"github.com/san-kum/fixedstep/internal/scalar"
	"github.com/san-kum/fixedstep/internal/vecmath"
)

// Line is the implicit line A*x + B*y + C = 0. (A, B) is its normal.
type Line[T scalar.Real[T]] struct {
	A, B, C T
}

// Normal returns (A, B).
func (l Line[T]) Normal() vecmath.Vec2[T] {
	return vecmath.V2(l.A, l.B)
}

// Eval returns A*x + B*y + C, zero on the line and signed elsewhere.
func (l Line[T]) Eval(p vecmath.Vec2[T]) T {
	return l.A.Mul(p.X).Add(l.B.Mul(p.Y)).Add(l.C)
}

// Degenerate reports whether the normal is zero.
func (l Line[T]) Degenerate() bool {
	var zero T
	return l.A == zero && l.B == zero
}

type Ray[T scalar.Real[T]] struct {
	Origin vecmath.Vec2[T]
	Dir    vecmath.Vec2[T]
}

// At returns Origin + Dir*t.
func (r Ray[T]) At(t T) vecmath.Vec2[T] {
	return r.Origin.Add(r.Dir.Scale(t))
}

// Hit is the result of a successful query. Param is the ray parameter of
// Point.
type Hit[T scalar.Real[T]] struct {
	Point vecmath.Vec2[T]
	Param T
}

// LineThrough returns the implicit line through p0 and p1. It fails when the
// points coincide.
func LineThrough[T scalar.Real[T]](p0, p1 vecmath.Vec2[T]) (Line[T], bool) {
	d := p1.Sub(p0)
	var zero T
	if d.X == zero && d.Y == zero {
		return Line[T]{}, false
	}
	return Line[T]{
		A: d.Y.Neg(),
		B: d.X,
		C: d.Y.Mul(p0.X).Sub(d.X.Mul(p0.Y)),
	}, true
}

// RayLine intersects r with l. It misses when the ray is parallel to the line
// or the crossing lies behind the origin.
func RayLine[T scalar.Real[T]](r Ray[T], l Line[T]) (Hit[T], bool) {
	var zero T
	denom := l.A.Mul(r.Dir.X).Add(l.B.Mul(r.Dir.Y))
	if denom == zero {
		return Hit[T]{}, false
	}
	t := l.Eval(r.Origin).Neg().Div(denom)
	if t < zero {
		return Hit[T]{}, false
	}
	return Hit[T]{Point: r.At(t), Param: t}, true
}

// RaySegment intersects r with the closed segment p0-p1. Zero-length segments
// never hit.
func RaySegment[T scalar.Real[T]](r Ray[T], p0, p1 vecmath.Vec2[T]) (Hit[T], bool) {
	l, ok := LineThrough(p0, p1)
	if !ok {
		return Hit[T]{}, false
	}
	hit, ok := RayLine(r, l)
	if !ok {
		return Hit[T]{}, false
	}

	// Affine parameter along the segment, taken on the axis the segment spans.
	var s T
	if p0.X != p1.X {
		s = hit.Point.X.Sub(p0.X).Div(p1.X.Sub(p0.X))
	} else {
		s = hit.Point.Y.Sub(p0.Y).Div(p1.Y.Sub(p0.Y))
	}
	var zero T
	if s < zero || s > scalar.One[T]() {
		return Hit[T]{}, false
	}
	return hit, true
}

// ClosestPoint projects p onto l. A degenerate line returns p unchanged.
func ClosestPoint[T scalar.Real[T]](p vecmath.Vec2[T], l Line[T]) vecmath.Vec2[T] {
	if l.Degenerate() {
		return p
	}
	denom := l.A.Mul(l.A).Add(l.B.Mul(l.B))
	x := l.B.Mul(l.B.Mul(p.X).Sub(l.A.Mul(p.Y))).Sub(l.A.Mul(l.C)).Div(denom)
	y := l.A.Mul(l.A.Mul(p.Y).Sub(l.B.Mul(p.X))).Sub(l.B.Mul(l.C)).Div(denom)
	return vecmath.V2(x, y)
}

// Distance returns the unsigned distance from p to l.
func Distance[T scalar.Real[T]](p vecmath.Vec2[T], l Line[T]) T {
	return l.Eval(p).Abs().Div(l.Normal().Length())
}
