package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/san-kum/fixedstep/internal/config"
	"github.com/san-kum/fixedstep/internal/result"
	"github.com/san-kum/fixedstep/internal/sim"
)

var epoch = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func sampleResult() *sim.Result {
	body := func(y, vy float64) sim.BodyState {
		return sim.BodyState{Name: "ball", Position: sim.Vec3{0, y, 0}, Velocity: sim.Vec3{0, vy, 0}, Mass: 1, Active: true}
	}
	return &sim.Result{
		Scene:   "drop",
		Repr:    "float64",
		Initial: sim.Frame{Index: -1, Bodies: []sim.BodyState{body(10, 0)}},
		Frames: []sim.Frame{
			{Index: 0, Dt: 0.5, Substeps: 2, Time: 0.5, Bodies: []sim.BodyState{body(9.25, -0.5)}},
			{Index: 1, Dt: 0.5, Substeps: 2, Time: 1, Bodies: []sim.BodyState{body(7.5, -1)}},
		},
		Metrics:  map[string]float64{"max_substeps": 2},
		Substeps: 4,
	}
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	s := New(dir, WithClock(fixedClock(epoch)))
	cfg := config.GetPreset("drop")

	id, err := s.Save(sampleResult(), cfg)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if want := "drop_float64_1709294400"; id != want {
		t.Errorf("run id = %q, want %q", id, want)
	}

	for _, name := range []string{metadataFile, trajectoryFile, sceneFile} {
		if _, err := os.Stat(filepath.Join(dir, id, name)); err != nil {
			t.Errorf("missing %s: %v", name, err)
		}
	}

	meta, err := s.Load(id)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := RunMetadata{
		ID:        id,
		Scene:     "drop",
		Repr:      "float64",
		Timestamp: epoch,
		Seed:      cfg.Seed,
		Timestep:  cfg.Timestep,
		Frames:    2,
		Duration:  1,
		Substeps:  4,
		Bodies:    []string{"ball"},
		Metrics:   map[string]float64{"max_substeps": 2},
	}
	if diff := cmp.Diff(want, *meta); diff != "" {
		t.Errorf("metadata mismatch (-want +got):\n%s", diff)
	}

	scene, err := s.LoadScene(id)
	if err != nil {
		t.Fatalf("LoadScene: %v", err)
	}
	if scene.Name != cfg.Name || len(scene.Bodies) != len(cfg.Bodies) {
		t.Errorf("scene = %+v", scene)
	}
}

func TestSaveSameSecond(t *testing.T) {
	s := New(t.TempDir(), WithClock(fixedClock(epoch)))
	cfg := config.GetPreset("drop")

	a, err := s.Save(sampleResult(), cfg)
	if err != nil {
		t.Fatal(err)
	}
	b, err := s.Save(sampleResult(), cfg)
	if err != nil {
		t.Fatal(err)
	}
	if a == b {
		t.Errorf("two saves share id %q", a)
	}
	if b != a+"_1" {
		t.Errorf("second id = %q", b)
	}
}

func TestSaveNil(t *testing.T) {
	s := New(t.TempDir())
	if _, err := s.Save(nil, config.DefaultConfig()); !errors.Is(err, result.ErrInvalidArgs) {
		t.Errorf("Save(nil) error = %v", err)
	}
}

func TestLoadTrajectory(t *testing.T) {
	s := New(t.TempDir(), WithClock(fixedClock(epoch)))
	res := sampleResult()
	id, err := s.Save(res, config.GetPreset("drop"))
	if err != nil {
		t.Fatal(err)
	}

	frames, err := s.LoadTrajectory(id)
	if err != nil {
		t.Fatalf("LoadTrajectory: %v", err)
	}

	want := append([]sim.Frame{res.Initial}, res.Frames...)
	for i := range want {
		for j := range want[i].Bodies {
			// Only positions and velocities are recorded.
			want[i].Bodies[j].Mass = 0
			want[i].Bodies[j].Active = false
		}
	}
	if diff := cmp.Diff(want, frames); diff != "" {
		t.Errorf("trajectory mismatch (-want +got):\n%s", diff)
	}
}

func TestListOrdersByTime(t *testing.T) {
	dir := t.TempDir()
	cfg := config.GetPreset("drop")

	later := New(dir, WithClock(fixedClock(epoch.Add(time.Hour))))
	if _, err := later.Save(sampleResult(), cfg); err != nil {
		t.Fatal(err)
	}
	earlier := New(dir, WithClock(fixedClock(epoch)))
	if _, err := earlier.Save(sampleResult(), cfg); err != nil {
		t.Fatal(err)
	}
	if err := os.Mkdir(filepath.Join(dir, "junk"), 0755); err != nil {
		t.Fatal(err)
	}

	runs, err := earlier.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	if !runs[0].Timestamp.Before(runs[1].Timestamp) {
		t.Errorf("runs not sorted: %v, %v", runs[0].Timestamp, runs[1].Timestamp)
	}
}

func TestListMissingDir(t *testing.T) {
	runs, err := New(filepath.Join(t.TempDir(), "nope")).List()
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 0 {
		t.Errorf("expected no runs, got %d", len(runs))
	}
}

func TestLoadMissing(t *testing.T) {
	s := New(t.TempDir())
	if _, err := s.Load("ghost"); !errors.Is(err, result.ErrDoesNotExist) {
		t.Errorf("Load error = %v", err)
	}
	if _, err := s.LoadTrajectory("ghost"); !errors.Is(err, result.ErrDoesNotExist) {
		t.Errorf("LoadTrajectory error = %v", err)
	}
}

func TestSaveSimulatedRun(t *testing.T) {
	cfg := config.GetPreset("drop")
	sess, err := sim.Open(cfg)
	if err != nil {
		t.Fatal(err)
	}
	defer sess.Close()

	res, err := sim.New(sess).Run(context.Background(), sim.Frames(cfg.Frames, cfg.Seed)[:10])
	if err != nil {
		t.Fatal(err)
	}

	s := New(t.TempDir())
	id, err := s.Save(res, cfg)
	if err != nil {
		t.Fatal(err)
	}
	frames, err := s.LoadTrajectory(id)
	if err != nil {
		t.Fatal(err)
	}
	if len(frames) != 11 {
		t.Fatalf("expected 11 frames, got %d", len(frames))
	}
	if got, want := frames[10].Bodies[0].Position, res.Final().Bodies[0].Position; got != want {
		t.Errorf("final position = %v, want %v", got, want)
	}
}
