package metrics

import (
	"math"

	"github.com/san-kum/fixedstep/internal/sim"
)

// MechanicalEnergy sums 1/2 m|v|^2 - m g.p over the active dynamic bodies of
// f, using velocities as stored by the stepper.
func MechanicalEnergy(f sim.Frame, gravity sim.Vec3) float64 {
	total := 0.0
	for _, b := range f.Bodies {
		if !b.Active || b.Kinematic || b.Mass <= 0 {
			continue
		}
		v, p := b.Velocity, b.Position
		ke := 0.5 * b.Mass * (v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
		pe := -b.Mass * (gravity[0]*p[0] + gravity[1]*p[1] + gravity[2]*p[2])
		total += ke + pe
	}
	return total
}

// Energy reports the mean mechanical energy over observed frames.
type Energy struct {
	name        string
	gravity     sim.Vec3
	samples     int
	totalEnergy float64
}

func NewEnergy(gravity sim.Vec3) *Energy {
	return &Energy{
		name:    "energy",
		gravity: gravity,
	}
}

func (e *Energy) Name() string { return e.name }

func (e *Energy) Observe(f sim.Frame) {
	e.totalEnergy += MechanicalEnergy(f, e.gravity)
	e.samples++
}

func (e *Energy) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.totalEnergy / float64(e.samples)
}

func (e *Energy) Reset() {
	e.totalEnergy = 0
	e.samples = 0
}

// EnergyDrift reports the largest relative change in mechanical energy from
// the first observed frame.
type EnergyDrift struct {
	name          string
	gravity       sim.Vec3
	initialEnergy float64
	maxDrift      float64
	samples       int
}

func NewEnergyDrift(gravity sim.Vec3) *EnergyDrift {
	return &EnergyDrift{
		name:    "energy_drift",
		gravity: gravity,
	}
}

func (e *EnergyDrift) Name() string { return e.name }

func (e *EnergyDrift) Observe(f sim.Frame) {
	energy := MechanicalEnergy(f, e.gravity)

	if e.samples == 0 {
		e.initialEnergy = energy
	}
	e.samples++

	if e.initialEnergy != 0 {
		drift := math.Abs(energy-e.initialEnergy) / math.Abs(e.initialEnergy)
		e.maxDrift = math.Max(e.maxDrift, drift)
	}
}

func (e *EnergyDrift) Value() float64 {
	return e.maxDrift
}

func (e *EnergyDrift) Reset() {
	e.initialEnergy = 0
	e.maxDrift = 0
	e.samples = 0
}
