package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/san-kum/fixedstep/internal/scalar"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Repr != "float32" {
		t.Errorf("expected repr float32, got %s", cfg.Repr)
	}
	if cfg.Timestep != 1.0/144 {
		t.Errorf("expected timestep 1/144, got %v", cfg.Timestep)
	}
	if cfg.Gravity != (Vec3{0, -10, 0}) {
		t.Errorf("unexpected gravity %v", cfg.Gravity)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.yaml")
	want := GetPreset("mixed")

	if err := Save(path, want); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadFillsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	data := []byte("name: partial\nrepr: fixed64\nbodies:\n  - position: [1, 2, 3]\n    mass: 2\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Timestep != DefaultTimestep || cfg.Frames.Count != DefaultFrameCount {
		t.Errorf("defaults not kept: timestep=%v frames=%d", cfg.Timestep, cfg.Frames.Count)
	}
	if cfg.ReprValue() != scalar.ReprQ32 {
		t.Errorf("repr = %v, want q32.32", cfg.ReprValue())
	}
	if len(cfg.Bodies) != 1 || cfg.Bodies[0].Position != (Vec3{1, 2, 3}) {
		t.Errorf("bodies = %+v", cfg.Bodies)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	os.WriteFile(path, []byte("gravity: [1, 2]\n"), 0644)
	if _, err := Load(path); err == nil {
		t.Error("expected error for two-element gravity")
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("FIXEDSTEP_REPR", "q16.16")
	t.Setenv("FIXEDSTEP_TIMESTEP", "0.02")
	t.Setenv("FIXEDSTEP_FRAME_COUNT", "12")
	t.Setenv("FIXEDSTEP_MAX_FRAME_DT", "0.5")
	t.Setenv("FIXEDSTEP_SEED", "99")

	cfg := GetPreset("drop")
	if err := ApplyEnv(cfg); err != nil {
		t.Fatalf("ApplyEnv: %v", err)
	}

	if cfg.Repr != "q16.16" || cfg.Timestep != 0.02 || cfg.Seed != 99 {
		t.Errorf("top-level overrides not applied: %+v", cfg)
	}
	if cfg.Frames.Count != 12 || cfg.Frames.MaxDt != 0.5 {
		t.Errorf("frame overrides not applied: %+v", cfg.Frames)
	}
	if cfg.Frames.Dt != 1.0/60 {
		t.Errorf("unset variable changed frames.dt to %v", cfg.Frames.Dt)
	}
}

func TestApplyEnvBadValue(t *testing.T) {
	t.Setenv("FIXEDSTEP_FRAME_COUNT", "many")
	if err := ApplyEnv(DefaultConfig()); err == nil {
		t.Error("expected parse error")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"repr", func(c *Config) { c.Repr = "bf16" }},
		{"timestep", func(c *Config) { c.Timestep = 0 }},
		{"frame count", func(c *Config) { c.Frames.Count = -1 }},
		{"jitter", func(c *Config) { c.Frames.Jitter = 1 }},
		{"max dt", func(c *Config) { c.Frames.MaxDt = -0.1 }},
		{"shape", func(c *Config) { c.Bodies = []BodyConfig{{Shape: ShapeConfig{Kind: "torus"}}} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("drop")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if len(cfg.Bodies) != 1 || cfg.Bodies[0].Position[1] != 100 {
		t.Errorf("unexpected bodies %+v", cfg.Bodies)
	}

	cfg.Bodies[0].Mass = 50
	if Presets["drop"].Bodies[0].Mass != 1 {
		t.Error("GetPreset returned shared state")
	}
	if cfg.Collision.InitialCapacity == 0 {
		t.Error("preset collision config not defaulted")
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if cfg := GetPreset("nonexistent"); cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestPresetsValid(t *testing.T) {
	names := ListPresets()
	if len(names) != len(Presets) {
		t.Fatalf("ListPresets returned %d names", len(names))
	}
	for _, name := range names {
		if err := GetPreset(name).Validate(); err != nil {
			t.Errorf("preset %s: %v", name, err)
		}
	}
}

func TestResolve(t *testing.T) {
	cfg, err := Resolve("projectile")
	if err != nil || cfg.Name != "projectile" {
		t.Fatalf("Resolve(preset) = %v, %v", cfg, err)
	}

	if _, err := Resolve("nope"); err == nil {
		t.Error("expected error for unknown preset")
	}

	path := filepath.Join(t.TempDir(), "scene.yml")
	Save(path, GetPreset("jitter"))
	cfg, err = Resolve(path)
	if err != nil || cfg.Name != "jitter" {
		t.Errorf("Resolve(file) = %v, %v", cfg, err)
	}
}
