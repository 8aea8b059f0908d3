// Package dynamics implements the fixed-timestep world stepper.
//
// A World turns irregular frame deltas into a sequence of equal sub-steps.
// Each Step call adds dt to an accumulator and runs one sub-step per whole
// timestep it holds, so the final state depends only on the total time fed in,
// not on how it was split across calls. After Step returns the accumulator is
// in [0, timestep).
//
// A sub-step applies semi-implicit Euler to every active body in slot order:
//
//	v += gravity * timestep
//	p += v
//
// Velocity is therefore expressed per fixed step. Bodies with mass <= 0 are
// static and kinematic bodies are never touched. Angular velocity is stored
// but not integrated.
//
// A World is not safe for concurrent use.
package dynamics
