package sim

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/san-kum/fixedstep/internal/scalar"
)

func TestCompareDyadicSceneAgrees(t *testing.T) {
	cfg := dyadicScene("float32")
	c, err := Compare(context.Background(), cfg, scalar.Reprs)
	if err != nil {
		t.Fatalf("Compare: %v", err)
	}

	if c.Reference != scalar.ReprF64 {
		t.Errorf("Reference = %v, want float64", c.Reference)
	}
	for _, r := range scalar.Reprs {
		if c.Results[r] == nil {
			t.Fatalf("missing result for %v", r)
		}
		if c.Deviation[r] != 0 {
			t.Errorf("%v deviates by %v on exactly representable input", r, c.Deviation[r])
		}
		if len(c.Drift[r]) != cfg.Frames.Count {
			t.Errorf("%v drift has %d samples, want %d", r, len(c.Drift[r]), cfg.Frames.Count)
		}
		for i, d := range c.Drift[r] {
			if d != 0 {
				t.Errorf("%v drifts by %v at frame %d", r, d, i)
				break
			}
		}
	}
}

func TestCompareMatchesDirectRun(t *testing.T) {
	cfg := dyadicScene("float64")
	cfg.Frames.Jitter = 0.4
	cfg.Seed = 3

	c, err := Compare(context.Background(), cfg, []scalar.Repr{scalar.ReprF64, scalar.ReprF32})
	if err != nil {
		t.Fatal(err)
	}

	s := openScene(t, cfg)
	direct, err := New(s).Run(context.Background(), Frames(cfg.Frames, cfg.Seed))
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(direct, c.Results[scalar.ReprF64]); diff != "" {
		t.Errorf("concurrent run differs from direct run (-direct +compare):\n%s", diff)
	}
	if c.Deviation[scalar.ReprF32] > 1e-3 {
		t.Errorf("float32 deviation %v", c.Deviation[scalar.ReprF32])
	}
}

func TestCompareErrors(t *testing.T) {
	if _, err := Compare(context.Background(), dyadicScene("float32"), nil); err == nil {
		t.Error("expected error for empty repr list")
	}

	cfg := dyadicScene("float32")
	cfg.Timestep = 1e-6
	cfg.Frames.Count = 1
	if _, err := Compare(context.Background(), cfg, []scalar.Repr{scalar.ReprF32, scalar.ReprQ16}); err == nil {
		t.Error("expected error when one representation cannot open")
	}
}
