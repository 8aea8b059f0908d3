package sim

import (
	"math/rand"

	"github.com/san-kum/fixedstep/internal/config"
)

// Frames returns fc.Count frame deltas around fc.Dt. With jitter each delta is
// scaled by a uniform factor in [1-Jitter, 1+Jitter] drawn from seed, so the
// same inputs always give the same sequence.
func Frames(fc config.FrameConfig, seed int64) []float64 {
	out := make([]float64, fc.Count)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		dt := fc.Dt
		if fc.Jitter > 0 {
			dt *= 1 + fc.Jitter*(2*rng.Float64()-1)
		}
		out[i] = dt
	}
	return out
}
