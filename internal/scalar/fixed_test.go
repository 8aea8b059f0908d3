package scalar

import (
	"math"
	"testing"
)

func TestQ16FromFloatRoundTrip(t *testing.T) {
	lsb := 1.0 / float64(Q16One)
	for _, f := range []float64{0, 1, -1, 0.1, -0.1, 3.14159, -1234.5678, 32767.5} {
		got := Q16(0).FromFloat64(f).Float64()
		if math.Abs(got-f) > lsb {
			t.Errorf("Q16 round trip %v = %v", f, got)
		}
	}
}

func TestQ32FromFloatRoundTrip(t *testing.T) {
	lsb := 1.0 / float64(Q32One)
	for _, f := range []float64{0, 1, -1, 0.1, -0.1, 3.14159, -1234.5678} {
		got := Q32(0).FromFloat64(f).Float64()
		if math.Abs(got-f) > lsb+math.Abs(f)*1e-15 {
			t.Errorf("Q32 round trip %v = %v", f, got)
		}
	}
}

func TestQ16MulDiv(t *testing.T) {
	tests := []struct {
		name string
		a, b float64
		mul  float64
		div  float64
	}{
		{"positive", 3, 2, 6, 1.5},
		{"negative", -3, 2, -6, -1.5},
		{"both negative", -0.5, -0.25, 0.125, 2},
		{"fraction", 0.75, 4, 3, 0.1875},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, b := FromFloat[Q16](tt.a), FromFloat[Q16](tt.b)
			if got := a.Mul(b).Float64(); got != tt.mul {
				t.Errorf("Mul = %v, want %v", got, tt.mul)
			}
			if got := a.Div(b).Float64(); got != tt.div {
				t.Errorf("Div = %v, want %v", got, tt.div)
			}
		})
	}
}

func TestQ32MulDiv(t *testing.T) {
	tests := []struct {
		name string
		a, b float64
		mul  float64
		div  float64
	}{
		{"positive", 3, 2, 6, 1.5},
		{"negative", -3, 2, -6, -1.5},
		{"both negative", -0.5, -0.25, 0.125, 2},
		{"large", 100000, 3, 300000, 100000.0 / 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, b := FromFloat[Q32](tt.a), FromFloat[Q32](tt.b)
			if got := a.Mul(b).Float64(); math.Abs(got-tt.mul) > 1e-9 {
				t.Errorf("Mul = %v, want %v", got, tt.mul)
			}
			if got := a.Div(b).Float64(); math.Abs(got-tt.div) > 1e-9 {
				t.Errorf("Div = %v, want %v", got, tt.div)
			}
		})
	}
}

func TestDivideByZeroSaturates(t *testing.T) {
	if got := Q16One.Div(0); got != math.MaxInt32 {
		t.Errorf("Q16 1/0 = %d", got)
	}
	if got := Q16One.Neg().Div(0); got != math.MinInt32 {
		t.Errorf("Q16 -1/0 = %d", got)
	}
	if got := Q16(0).Div(0); got != 0 {
		t.Errorf("Q16 0/0 = %d", got)
	}
	if got := Q32One.Div(0); got != math.MaxInt64 {
		t.Errorf("Q32 1/0 = %d", got)
	}
	if got := Q32One.Neg().Div(0); got != math.MinInt64 {
		t.Errorf("Q32 -1/0 = %d", got)
	}
	if got := Q32(0).Div(0); got != 0 {
		t.Errorf("Q32 0/0 = %d", got)
	}
}

func TestQ32DivOverflowSaturates(t *testing.T) {
	big := FromInt[Q32](1 << 30)
	tiny := Q32(1)
	if got := big.Div(tiny); got != math.MaxInt64 {
		t.Errorf("overflowing quotient = %d, want MaxInt64", got)
	}
	if got := big.Neg().Div(tiny); got != math.MinInt64 {
		t.Errorf("overflowing negative quotient = %d, want MinInt64", got)
	}
}

func TestFixedSqrt(t *testing.T) {
	for _, f := range []float64{0.25, 1, 2, 10, 1000.5} {
		q16 := FromFloat[Q16](f).Sqrt().Float64()
		if math.Abs(q16-math.Sqrt(f)) > 2.0/float64(Q16One) {
			t.Errorf("Q16 sqrt(%v) = %v", f, q16)
		}
		q32 := FromFloat[Q32](f).Sqrt().Float64()
		if math.Abs(q32-math.Sqrt(f)) > 2.0/float64(Q32One) {
			t.Errorf("Q32 sqrt(%v) = %v", f, q32)
		}
	}
	if got := FromInt[Q16](-4).Sqrt(); got != 0 {
		t.Errorf("Q16 sqrt(-4) = %v, want 0", got)
	}
	if got := FromInt[Q32](-4).Sqrt(); got != 0 {
		t.Errorf("Q32 sqrt(-4) = %v, want 0", got)
	}
}

func TestWidenNarrow(t *testing.T) {
	q := FromFloat[Q16](-7.125)
	if got := q.ToQ32().Float64(); got != -7.125 {
		t.Errorf("ToQ32 = %v", got)
	}
	if got := q.ToQ32().ToQ16(); got != q {
		t.Errorf("ToQ16(ToQ32(q)) = %v, want %v", got, q)
	}
}

func TestIsqrt64(t *testing.T) {
	for _, n := range []uint64{0, 1, 2, 3, 4, 15, 16, 17, 1 << 40, 1<<47 - 1} {
		r := isqrt64(n)
		if r*r > n || (r+1)*(r+1) <= n {
			t.Errorf("isqrt64(%d) = %d", n, r)
		}
	}
}
