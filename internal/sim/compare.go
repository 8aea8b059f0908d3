package sim

import (
	"context"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"golang.org/x/sync/errgroup"

	"github.com/san-kum/fixedstep/internal/config"
	"github.com/san-kum/fixedstep/internal/scalar"
)

// Comparison holds one run of the same scene per representation.
type Comparison struct {
	Scene     string
	Reference scalar.Repr
	Reprs     []scalar.Repr
	Results   map[scalar.Repr]*Result
	// Deviation is the largest final position distance of any body from the
	// reference run.
	Deviation map[scalar.Repr]float64
	// Drift is the same distance taken after every frame.
	Drift map[scalar.Repr][]float64
}

// Compare runs cfg once per representation on separate goroutines, each with
// its own world, feeding all of them the same frame sequence. The reference is
// float64 when it is among reprs, otherwise the first entry.
func Compare(ctx context.Context, cfg *config.Config, reprs []scalar.Repr, opts ...Option) (*Comparison, error) {
	if len(reprs) == 0 {
		return nil, fmt.Errorf("compare: no representations given")
	}
	frames := Frames(cfg.Frames, cfg.Seed)
	results := make([]*Result, len(reprs))

	g, ctx := errgroup.WithContext(ctx)
	for i, r := range reprs {
		g.Go(func() error {
			c := cfg.Clone()
			c.Repr = r.String()
			s, err := Open(c, opts...)
			if err != nil {
				return err
			}
			defer s.Close()

			res, err := New(s).Run(ctx, frames)
			if err != nil {
				return fmt.Errorf("%v: %w", r, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	cmp := &Comparison{
		Scene:     cfg.Name,
		Reference: reprs[0],
		Reprs:     reprs,
		Results:   make(map[scalar.Repr]*Result, len(reprs)),
		Deviation: make(map[scalar.Repr]float64, len(reprs)),
		Drift:     make(map[scalar.Repr][]float64, len(reprs)),
	}
	for i, r := range reprs {
		cmp.Results[r] = results[i]
		if r == scalar.ReprF64 {
			cmp.Reference = r
		}
	}

	ref := cmp.Results[cmp.Reference]
	for r, res := range cmp.Results {
		cmp.Deviation[r] = maxDeviation(ref.Final(), res.Final())
		drift := make([]float64, len(res.Frames))
		for i := range res.Frames {
			drift[i] = maxDeviation(ref.Frames[i], res.Frames[i])
		}
		cmp.Drift[r] = drift
	}
	return cmp, nil
}

func maxDeviation(a, b Frame) float64 {
	worst := 0.0
	for i := range min(len(a.Bodies), len(b.Bodies)) {
		d := mgl64.Vec3(a.Bodies[i].Position).Sub(mgl64.Vec3(b.Bodies[i].Position))
		worst = max(worst, d.Len())
	}
	return worst
}
