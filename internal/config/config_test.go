package config

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/dpsim/internal/dynamo"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.Dt != 0.5 || cfg.FPS != 60 {
		t.Errorf("expected dt 0.5 at 60 fps, got %v at %d", cfg.Dt, cfg.FPS)
	}
	if cfg.Window.Pivot != (dynamo.Point{X: 960, Y: 490}) {
		t.Errorf("unexpected pivot %+v", cfg.Window.Pivot)
	}

	p := cfg.Physics()
	if p.Gravity != -10.5 {
		t.Errorf("expected screen-frame gravity -10.5, got %v", p.Gravity)
	}
	if cfg.Params.Gravity != 10.5 {
		t.Error("Physics must not modify the stored magnitude")
	}

	x := cfg.InitialState()
	if x.Angle1 != math.Pi/2 || x.Angle2 != math.Pi/2 || x.AngularVelocity1 != 0 {
		t.Errorf("unexpected initial state %v", x)
	}
}

func TestPhysicsMathFrame(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Frame = FrameMath
	if g := cfg.Physics().Gravity; g != 10.5 {
		t.Errorf("expected +10.5 in math frame, got %v", g)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{"zero dt", func(c *Config) { c.Dt = 0 }, dynamo.ErrParameterBounds},
		{"zero fps", func(c *Config) { c.FPS = 0 }, dynamo.ErrParameterBounds},
		{"negative steps", func(c *Config) { c.Steps = -1 }, dynamo.ErrParameterBounds},
		{"zero mass", func(c *Config) { c.Params.Mass1 = 0 }, dynamo.ErrParameterBounds},
		{"negative length", func(c *Config) { c.Params.Length2 = -5 }, dynamo.ErrParameterBounds},
		{"signed gravity", func(c *Config) { c.Params.Gravity = -10 }, dynamo.ErrParameterBounds},
		{"bad frame", func(c *Config) { c.Frame = "polar" }, dynamo.ErrInvalidConfig},
		{"bad integrator", func(c *Config) { c.Integrator = "leapfrog" }, dynamo.ErrUnknownIntegrator},
		{"bad policy", func(c *Config) { c.Policy = "clamp" }, dynamo.ErrUnknownPolicy},
		{"inverted range", func(c *Config) { c.Sliders.Mass = Range{Min: 100, Max: 10} }, dynamo.ErrInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestLoadSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dpsim.yaml")

	cfg := DefaultConfig()
	cfg.Params.Mass2 = 80
	cfg.InitState.Omega1 = 0.25
	cfg.Frame = FrameMath

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if *loaded != *cfg {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", loaded, cfg)
	}
}

func TestLoadPartial(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	if err := os.WriteFile(path, []byte("dt: 0.25\nparams:\n  mass1: 30\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Dt != 0.25 || cfg.Params.Mass1 != 30 {
		t.Errorf("overrides not applied: %+v", cfg)
	}
	if cfg.FPS != DefaultFPS || cfg.Params.Length1 != DefaultLength {
		t.Errorf("defaults lost: %+v", cfg)
	}
}

func TestLoadHjson(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lab.hjson")
	data := []byte(`{
  # comments and quoteless strings are allowed
  frame: math
  fps: 30
  params: {
    mass2: 45
    gravity: 9.81
  }
}
`)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Frame != FrameMath || cfg.FPS != 30 {
		t.Errorf("expected math frame at 30 fps, got %q at %d", cfg.Frame, cfg.FPS)
	}
	if cfg.Params.Mass2 != 45 || cfg.Params.Gravity != 9.81 {
		t.Errorf("params not applied: %+v", cfg.Params)
	}
	if cfg.Params.Mass1 != DefaultMass || cfg.Dt != DefaultDt {
		t.Errorf("defaults lost: %+v", cfg)
	}
}

func TestLoadInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("dt: -1\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); !errors.Is(err, dynamo.ErrParameterBounds) {
		t.Errorf("expected ErrParameterBounds, got %v", err)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestRangeClamp(t *testing.T) {
	r := Range{Min: 10, Max: 100}
	for in, want := range map[float64]float64{5: 10, 50: 50, 150: 100} {
		if got := r.Clamp(in); got != want {
			t.Errorf("Clamp(%v) = %v, want %v", in, got, want)
		}
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("chaos")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.InitState.Theta1 != 3.0 {
		t.Errorf("expected theta1 3.0, got %f", cfg.InitState.Theta1)
	}

	// Mutating the copy must not leak into the table.
	cfg.InitState.Theta1 = 0
	if GetPreset("chaos").InitState.Theta1 != 3.0 {
		t.Error("GetPreset returned a shared config")
	}

	if GetPreset("nonexistent") != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestPresetsValid(t *testing.T) {
	names := ListPresets()
	if len(names) != len(Presets) {
		t.Fatalf("expected %d names, got %d", len(Presets), len(names))
	}
	for _, name := range names {
		if err := GetPreset(name).Validate(); err != nil {
			t.Errorf("preset %s invalid: %v", name, err)
		}
	}
}
