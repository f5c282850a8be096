package config

import (
	"math"
	"sort"
)

type Preset struct {
	Description string
	Config      *Config
}

var Presets = map[string]Preset{
	"classic": {
		Description: "both arms horizontal, 60/60 mass, 200/200 length",
		Config:      withAngles(math.Pi/2, math.Pi/2),
	},
	"symmetric": {
		Description: "arms raised just short of horizontal",
		Config:      withAngles(1.5, 1.5),
	},
	"chaos": {
		Description: "both arms near upright",
		Config:      withAngles(3.0, 3.0),
	},
	"gentle": {
		Description: "small swings close to the normal modes",
		Config:      withAngles(0.3, 0.3),
	},
	"lab": {
		Description: "SI units, Y-up frame, fine time step",
		Config:      lab(),
	},
}

func withAngles(theta1, theta2 float64) *Config {
	cfg := DefaultConfig()
	cfg.InitState.Theta1 = theta1
	cfg.InitState.Theta2 = theta2
	return cfg
}

func lab() *Config {
	cfg := withAngles(2.0, 2.0)
	cfg.Frame = FrameMath
	cfg.Dt = 0.005
	cfg.Steps = 4000
	cfg.Params.Mass1, cfg.Params.Mass2 = 1, 1
	cfg.Params.Length1, cfg.Params.Length2 = 1, 1
	cfg.Params.Gravity = 9.81
	cfg.Sliders.Mass = Range{Min: 0.1, Max: 5}
	cfg.Sliders.Length = Range{Min: 0.2, Max: 3}
	return cfg
}

// GetPreset returns a copy of the named preset's config, or nil.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	return p.Config.Clone()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
