// Package scalar provides the real-number abstraction used by the kernel.
//
// Four interchangeable representations share one operation set:
//
//   - [F32]: 32-bit IEEE float
//   - [F64]: 64-bit IEEE float
//   - [Q16]: signed 16.16 fixed point in an int32
//   - [Q32]: signed 32.32 fixed point in an int64
//
// Generic code constrains its type parameter with [Real] and is instantiated
// once per representation:
//
//	func Lerp[T scalar.Real[T]](a, b, t T) T {
//		return a.Add(b.Sub(a).Mul(t))
//	}
//
// # Fixed point
//
// Multiply and divide widen to twice the storage width before shifting.
// Division by zero saturates to the largest magnitude with the dividend's sign
// (0/0 yields 0) rather than faulting. Sin, Cos, Tan and Atan round-trip
// through float64, so fixed-point trigonometry is not bit-exact across
// platforms.
package scalar
