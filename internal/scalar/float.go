package scalar

import "math"

// F32 is a 32-bit floating-point scalar.
type F32 float32

func (x F32) Add(y F32) F32 { return x + y }
func (x F32) Sub(y F32) F32 { return x - y }
func (x F32) Mul(y F32) F32 { return x * y }
func (x F32) Div(y F32) F32 { return x / y }
func (x F32) Neg() F32      { return -x }

func (x F32) Abs() F32  { return F32(math.Abs(float64(x))) }
func (x F32) Sqrt() F32 { return F32(math.Sqrt(float64(x))) }
func (x F32) Sin() F32  { return F32(math.Sin(float64(x))) }
func (x F32) Cos() F32  { return F32(math.Cos(float64(x))) }
func (x F32) Tan() F32  { return F32(math.Tan(float64(x))) }
func (x F32) Atan() F32 { return F32(math.Atan(float64(x))) }

func (F32) FromInt(i int32) F32       { return F32(i) }
func (F32) FromFloat64(f float64) F32 { return F32(f) }
func (x F32) Float64() float64        { return float64(x) }
func (F32) Repr() Repr                { return ReprF32 }

// F64 is a 64-bit floating-point scalar.
type F64 float64

func (x F64) Add(y F64) F64 { return x + y }
func (x F64) Sub(y F64) F64 { return x - y }
func (x F64) Mul(y F64) F64 { return x * y }
func (x F64) Div(y F64) F64 { return x / y }
func (x F64) Neg() F64      { return -x }

func (x F64) Abs() F64  { return F64(math.Abs(float64(x))) }
func (x F64) Sqrt() F64 { return F64(math.Sqrt(float64(x))) }
func (x F64) Sin() F64  { return F64(math.Sin(float64(x))) }
func (x F64) Cos() F64  { return F64(math.Cos(float64(x))) }
func (x F64) Tan() F64  { return F64(math.Tan(float64(x))) }
func (x F64) Atan() F64 { return F64(math.Atan(float64(x))) }

func (F64) FromInt(i int32) F64       { return F64(i) }
func (F64) FromFloat64(f float64) F64 { return F64(f) }
func (x F64) Float64() float64        { return float64(x) }
func (F64) Repr() Repr                { return ReprF64 }
