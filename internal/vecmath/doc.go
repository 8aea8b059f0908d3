// Package vecmath provides 2, 3 and 4 component vectors and 3x3 / 4x4
// column-major matrices generic over any scalar.Real representation.
//
// All types are small values; methods never allocate or mutate their
// receiver. Length, Distance and Normalize need Sqrt and are most precise for
// the floating-point representations. Normalize and Div do not guard against
// zero; with fixed point a zero divisor saturates.
package vecmath
