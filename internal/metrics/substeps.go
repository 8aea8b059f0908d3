package metrics

import "github.com/san-kum/fixedstep/internal/sim"

// Substeps reports the largest number of fixed sub-steps any single frame
// needed. A value well above frame dt / timestep points at frame spikes.
type Substeps struct {
	name string
	max  int
}

func NewSubsteps() *Substeps {
	return &Substeps{name: "max_substeps"}
}

func (s *Substeps) Name() string { return s.name }

func (s *Substeps) Observe(f sim.Frame) {
	s.max = max(s.max, f.Substeps)
}

func (s *Substeps) Value() float64 { return float64(s.max) }

func (s *Substeps) Reset() { s.max = 0 }

// Remainder reports the mean time left in the accumulator after a frame.
type Remainder struct {
	name    string
	sum     float64
	samples int
}

func NewRemainder() *Remainder {
	return &Remainder{name: "mean_remainder"}
}

func (r *Remainder) Name() string { return r.name }

func (r *Remainder) Observe(f sim.Frame) {
	r.sum += f.Accumulator
	r.samples++
}

func (r *Remainder) Value() float64 {
	if r.samples == 0 {
		return 0
	}
	return r.sum / float64(r.samples)
}

func (r *Remainder) Reset() {
	r.sum = 0
	r.samples = 0
}

// Default returns the metrics recorded for every CLI run.
func Default(gravity sim.Vec3) []sim.Metric {
	return []sim.Metric{
		NewEnergyDrift(gravity),
		NewSubsteps(),
		NewRemainder(),
		NewStability(1e6),
	}
}
