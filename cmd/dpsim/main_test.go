package main

import (
	"bytes"
	"encoding/csv"
	"math"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/san-kum/dpsim/internal/config"
	"github.com/san-kum/dpsim/internal/dynamo"
	"github.com/san-kum/dpsim/internal/sim"
)

func newTestCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "test"}
	addSimFlags(cmd)
	return cmd
}

func TestLoadConfigFlagsOverride(t *testing.T) {
	preset, configFile = "chaos", ""
	defer func() { preset = "" }()

	cmd := newTestCmd()
	if err := cmd.Flags().Set("m2", "30"); err != nil {
		t.Fatal(err)
	}
	if err := cmd.Flags().Set("policy", "propagate"); err != nil {
		t.Fatal(err)
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.InitState.Theta1 != 3.0 {
		t.Errorf("expected preset theta1 3.0, got %v", cfg.InitState.Theta1)
	}
	if cfg.Params.Mass2 != 30 {
		t.Errorf("expected m2 override 30, got %v", cfg.Params.Mass2)
	}
	if cfg.Params.Mass1 != 60 {
		t.Errorf("unset flag must not override, got m1=%v", cfg.Params.Mass1)
	}
	if cfg.Policy != "propagate" {
		t.Errorf("expected policy propagate, got %q", cfg.Policy)
	}
}

func TestLoadConfigRejects(t *testing.T) {
	tests := []struct {
		name   string
		preset string
		flag   string
		value  string
	}{
		{"unknown preset", "nope", "", ""},
		{"zero dt", "", "dt", "0"},
		{"negative length", "", "l1", "-5"},
		{"bad integrator", "", "integrator", "verlet"},
		{"bad frame", "", "frame", "polar"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			preset, configFile = tt.preset, ""
			defer func() { preset = "" }()

			cmd := newTestCmd()
			if tt.flag != "" {
				if err := cmd.Flags().Set(tt.flag, tt.value); err != nil {
					t.Fatal(err)
				}
			}
			if _, err := loadConfig(cmd); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestCSVRenderer(t *testing.T) {
	var buf bytes.Buffer
	r := &csvRenderer{w: csv.NewWriter(&buf)}

	err := r.Render(dynamo.Frame{
		Step:  3,
		Time:  1.5,
		State: dynamo.State{Angle1: 0.5},
		Bob1:  dynamo.Point{X: 840, Y: 430},
		Bob2:  dynamo.Point{X: 990, Y: 430},
	})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	fields := strings.Split(strings.TrimSpace(buf.String()), ",")
	if len(fields) != len(traceHeader) {
		t.Fatalf("expected %d fields, got %d: %q", len(traceHeader), len(fields), buf.String())
	}
	if fields[0] != "3" || fields[2] != "0.500000" || fields[6] != "840.000000" {
		t.Errorf("unexpected row %q", buf.String())
	}
}

func TestStartProfileMode(t *testing.T) {
	if p, err := startProfile(""); p != nil || err != nil {
		t.Errorf("empty mode should be a no-op, got %v, %v", p, err)
	}
	if _, err := startProfile("gpu"); err == nil {
		t.Error("expected error for unknown mode")
	}
}

func TestTraceSVGStopsAtLastFiniteState(t *testing.T) {
	cfg := config.DefaultConfig()
	p := dynamo.Params{Mass1: 60, Mass2: 60, Length1: 200, Length2: 200, Gravity: -10.5}
	result := &sim.Result{States: []dynamo.State{
		{Angle1: 0.5, Angle2: 1.0},
		{Angle1: 0.6, Angle2: 1.2},
		{Angle1: math.NaN(), Angle2: math.NaN()},
	}}

	svg := traceSVG(result, p, cfg)
	if svg == "" {
		t.Fatal("expected an SVG for a two-point path")
	}
	if strings.Contains(svg, "NaN") || strings.Contains(svg, "Inf") {
		t.Errorf("SVG carries non-finite coordinates:\n%s", svg)
	}
}
