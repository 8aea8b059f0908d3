package scalar

import (
	"math"
	"math/big"
	"math/bits"
)

const (
	Q16Shift     = 16
	Q16One   Q16 = 1 << Q16Shift

	Q32Shift     = 32
	Q32One   Q32 = 1 << Q32Shift
)

// Q16 is a signed 16.16 fixed-point scalar.
type Q16 int32

func (x Q16) Add(y Q16) Q16 { return x + y }
func (x Q16) Sub(y Q16) Q16 { return x - y }
func (x Q16) Neg() Q16      { return -x }

// Mul multiplies through an int64 intermediate.
func (x Q16) Mul(y Q16) Q16 {
	return Q16((int64(x) * int64(y)) >> Q16Shift)
}

// Div divides through an int64 intermediate. Division by zero saturates.
// Quotients outside the int32 range wrap.
func (x Q16) Div(y Q16) Q16 {
	if y == 0 {
		switch {
		case x > 0:
			return math.MaxInt32
		case x < 0:
			return math.MinInt32
		default:
			return 0
		}
	}
	return Q16((int64(x) << Q16Shift) / int64(y))
}

func (x Q16) Abs() Q16 {
	if x < 0 {
		return -x
	}
	return x
}

// Sqrt is exact to the last bit: floor(sqrt(x << 16)). Non-positive input
// yields 0.
func (x Q16) Sqrt() Q16 {
	if x <= 0 {
		return 0
	}
	return Q16(isqrt64(uint64(x) << Q16Shift))
}

// TODO: replace the float round trip with a table-driven CORDIC so Q16 trig is
// reproducible across platforms.
func (x Q16) Sin() Q16  { return x.FromFloat64(math.Sin(x.Float64())) }
func (x Q16) Cos() Q16  { return x.FromFloat64(math.Cos(x.Float64())) }
func (x Q16) Tan() Q16  { return x.FromFloat64(math.Tan(x.Float64())) }
func (x Q16) Atan() Q16 { return x.FromFloat64(math.Atan(x.Float64())) }

func (Q16) FromInt(i int32) Q16       { return Q16(i) << Q16Shift }
func (Q16) FromFloat64(f float64) Q16 { return Q16(f * float64(Q16One)) }
func (x Q16) Float64() float64        { return float64(x) / float64(Q16One) }
func (Q16) Repr() Repr                { return ReprQ16 }

// ToQ32 widens x without loss.
func (x Q16) ToQ32() Q32 {
	return Q32(int64(x) << (Q32Shift - Q16Shift))
}

// Q32 is a signed 32.32 fixed-point scalar.
type Q32 int64

func (x Q32) Add(y Q32) Q32 { return x + y }
func (x Q32) Sub(y Q32) Q32 { return x - y }
func (x Q32) Neg() Q32      { return -x }

// Mul multiplies through a 128-bit intermediate. Products outside the int64
// range wrap.
func (x Q32) Mul(y Q32) Q32 {
	if x == 0 || y == 0 {
		return 0
	}
	negative := (x < 0) != (y < 0)
	hi, lo := bits.Mul64(magnitude(int64(x)), magnitude(int64(y)))
	// Q32.32 * Q32.32 = Q64.64; keep the middle 64 bits.
	r := Q32((hi << Q32Shift) | (lo >> Q32Shift))
	if negative {
		return -r
	}
	return r
}

// Div divides through a 128-bit intermediate. Division by zero and quotients
// that do not fit in int64 saturate.
func (x Q32) Div(y Q32) Q32 {
	negative := (x < 0) != (y < 0)
	if y == 0 {
		switch {
		case x > 0:
			return math.MaxInt64
		case x < 0:
			return math.MinInt64
		default:
			return 0
		}
	}
	ux, uy := magnitude(int64(x)), magnitude(int64(y))

	// x << 32 as 128 bits.
	hi := ux >> (64 - Q32Shift)
	lo := ux << Q32Shift
	if hi >= uy {
		return saturate64(negative)
	}

	quo, _ := bits.Div64(hi, lo, uy)
	if quo > math.MaxInt64 {
		if negative && quo == 1<<63 {
			return math.MinInt64
		}
		return saturate64(negative)
	}
	if negative {
		return -Q32(quo)
	}
	return Q32(quo)
}

func (x Q32) Abs() Q32 {
	if x < 0 {
		return -x
	}
	return x
}

// Sqrt is exact to the last bit: floor(sqrt(x << 32)). Non-positive input
// yields 0.
func (x Q32) Sqrt() Q32 {
	if x <= 0 {
		return 0
	}
	n := new(big.Int).Lsh(big.NewInt(int64(x)), Q32Shift)
	return Q32(n.Sqrt(n).Int64())
}

func (x Q32) Sin() Q32  { return x.FromFloat64(math.Sin(x.Float64())) }
func (x Q32) Cos() Q32  { return x.FromFloat64(math.Cos(x.Float64())) }
func (x Q32) Tan() Q32  { return x.FromFloat64(math.Tan(x.Float64())) }
func (x Q32) Atan() Q32 { return x.FromFloat64(math.Atan(x.Float64())) }

func (Q32) FromInt(i int32) Q32       { return Q32(int64(i) << Q32Shift) }
func (Q32) FromFloat64(f float64) Q32 { return Q32(f * float64(Q32One)) }
func (x Q32) Float64() float64        { return float64(x) / float64(Q32One) }
func (Q32) Repr() Repr                { return ReprQ32 }

// ToQ16 drops the low 16 fraction bits and the high 16 integer bits.
func (x Q32) ToQ16() Q16 {
	return Q16(int64(x) >> (Q32Shift - Q16Shift))
}

func magnitude(v int64) uint64 {
	u := uint64(v)
	if v < 0 {
		u = -u
	}
	return u
}

func saturate64(negative bool) Q32 {
	if negative {
		return math.MinInt64
	}
	return math.MaxInt64
}

// isqrt64 returns floor(sqrt(n)).
func isqrt64(n uint64) uint64 {
	if n < 2 {
		return n
	}
	x := uint64(1) << ((bits.Len64(n) + 1) / 2)
	for {
		y := (x + n/x) >> 1
		if y >= x {
			return x
		}
		x = y
	}
}
