package scalar

import (
	"fmt"
	"math"
	"strings"
)

// Real is the constraint satisfied by every scalar representation.
//
// The underlying-type union lets generic code use comparison operators
// directly; ordering of fixed-point values matches their raw integers.
type Real[T any] interface {
	~float32 | ~float64 | ~int32 | ~int64

	Add(T) T
	Sub(T) T
	Mul(T) T
	Div(T) T
	Neg() T
	Abs() T
	Sqrt() T
	Sin() T
	Cos() T
	Tan() T
	Atan() T

	FromInt(int32) T
	FromFloat64(float64) T
	Float64() float64
	Repr() Repr
}

// Repr identifies a scalar representation.
type Repr uint8

const (
	ReprF32 Repr = iota
	ReprF64
	ReprQ16
	ReprQ32
)

// Reprs lists every representation in declaration order.
var Reprs = []Repr{ReprF32, ReprF64, ReprQ16, ReprQ32}

func (r Repr) String() string {
	switch r {
	case ReprF32:
		return "float32"
	case ReprF64:
		return "float64"
	case ReprQ16:
		return "q16.16"
	case ReprQ32:
		return "q32.32"
	default:
		return fmt.Sprintf("repr(%d)", uint8(r))
	}
}

// Fixed reports whether r is a fixed-point representation.
func (r Repr) Fixed() bool {
	return r == ReprQ16 || r == ReprQ32
}

// Tolerance is the absolute error allowed when comparing values computed
// through a short chain of operations in representation r.
func (r Repr) Tolerance() float64 {
	switch r {
	case ReprF32:
		return 1e-5
	case ReprF64:
		return 1e-9
	case ReprQ16:
		return 4.0 / float64(Q16One)
	case ReprQ32:
		return 4.0 / float64(Q32One)
	default:
		return 0
	}
}

// ParseRepr accepts the canonical names plus the bit-width aliases
// "fixed32" (16.16) and "fixed64" (32.32).
func ParseRepr(s string) (Repr, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "float32", "f32", "":
		return ReprF32, nil
	case "float64", "f64":
		return ReprF64, nil
	case "q16.16", "q16", "fixed32", "fixed16":
		return ReprQ16, nil
	case "q32.32", "q32", "fixed64":
		return ReprQ32, nil
	default:
		return 0, fmt.Errorf("unknown scalar representation: %q", s)
	}
}

// Zero returns the additive identity.
func Zero[T Real[T]]() T {
	var z T
	return z
}

// One returns the multiplicative identity.
func One[T Real[T]]() T {
	var z T
	return z.FromInt(1)
}

// FromInt converts an integer to T.
func FromInt[T Real[T]](i int32) T {
	var z T
	return z.FromInt(i)
}

// FromFloat converts a float64 to T, truncating toward zero for fixed point.
func FromFloat[T Real[T]](f float64) T {
	var z T
	return z.FromFloat64(f)
}

// Convert re-encodes x in another representation via float64. Lossy.
func Convert[To Real[To], From Real[From]](x From) To {
	var z To
	return z.FromFloat64(x.Float64())
}

// ReprOf returns the representation of T.
func ReprOf[T Real[T]]() Repr {
	var z T
	return z.Repr()
}

// ApproxEqual reports whether a and b differ by at most tol.
func ApproxEqual[T Real[T]](a, b T, tol float64) bool {
	return math.Abs(a.Float64()-b.Float64()) <= tol
}
