// Package viz renders running scenes in the terminal.
//
// [Model] is a Bubble Tea program that feeds real frame times into a
// [sim.Session], so the fixed-step accumulator sees the same uneven deltas
// a game loop would. Bodies are drawn as wireframes on a braille [Canvas]
// through a perspective [Camera].
//
// # Key Bindings
//
//	Space      - Pause/Resume
//	.          - Advance one timestep while paused
//	R          - Reopen the scene from its initial state
//	Arrows     - Orbit the camera
//	+/-        - Zoom
//	Tab        - Select the tracked body
//	T          - Cycle themes
//	Q          - Quit
package viz
