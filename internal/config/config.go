package config

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/hjson/hjson-go"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/dpsim/internal/dynamo"
	"github.com/san-kum/dpsim/internal/integrators"
	"github.com/san-kum/dpsim/internal/sim"
)

const (
	DefaultDt      = 0.5
	DefaultFPS     = 60
	DefaultSteps   = 2000
	DefaultWidth   = 1920
	DefaultHeight  = 1080
	DefaultMass    = 60.0
	DefaultLength  = 200.0
	DefaultGravity = 10.5

	MinMass    = 10.0
	MaxMass    = 100.0
	MinGravity = 1.0
	MaxGravity = 20.0
	MinLength  = 100.0
	MaxLength  = 300.0
)

// Frames select the sign convention of the host's Y axis.
const (
	FrameScreen = "screen" // Y grows downward; gravity is negated
	FrameMath   = "math"   // Y grows upward
)

type Config struct {
	Integrator string          `yaml:"integrator"`
	Policy     string          `yaml:"policy"`
	Frame      string          `yaml:"frame"`
	Dt         float64         `yaml:"dt"`
	FPS        int             `yaml:"fps"`
	Steps      int             `yaml:"steps"`
	Window     WindowConfig    `yaml:"window"`
	InitState  InitStateConfig `yaml:"init_state"`

	// Params holds the gravity magnitude; Physics applies the frame sign.
	Params  dynamo.Params `yaml:"params"`
	Sliders SliderConfig  `yaml:"sliders"`
}

type WindowConfig struct {
	Width  int          `yaml:"width"`
	Height int          `yaml:"height"`
	Pivot  dynamo.Point `yaml:"pivot"`
}

type InitStateConfig struct {
	Theta1 float64 `yaml:"theta1"`
	Theta2 float64 `yaml:"theta2"`
	Omega1 float64 `yaml:"omega1"`
	Omega2 float64 `yaml:"omega2"`
}

type Range struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// Clamp limits v to the range.
func (r Range) Clamp(v float64) float64 {
	return math.Max(r.Min, math.Min(r.Max, v))
}

type SliderConfig struct {
	Mass    Range `yaml:"mass"`
	Gravity Range `yaml:"gravity"`
	Length  Range `yaml:"length"`
}

func DefaultConfig() *Config {
	return &Config{
		Integrator: "rk4",
		Policy:     sim.PolicyFreeze.String(),
		Frame:      FrameScreen,
		Dt:         DefaultDt,
		FPS:        DefaultFPS,
		Steps:      DefaultSteps,
		Window: WindowConfig{
			Width:  DefaultWidth,
			Height: DefaultHeight,
			Pivot:  dynamo.Point{X: DefaultWidth / 2, Y: DefaultHeight/2 - 50},
		},
		InitState: InitStateConfig{
			Theta1: math.Pi / 2,
			Theta2: math.Pi / 2,
		},
		Params: dynamo.Params{
			Mass1:   DefaultMass,
			Mass2:   DefaultMass,
			Length1: DefaultLength,
			Length2: DefaultLength,
			Gravity: DefaultGravity,
		},
		Sliders: SliderConfig{
			Mass:    Range{Min: MinMass, Max: MaxMass},
			Gravity: Range{Min: MinGravity, Max: MaxGravity},
			Length:  Range{Min: MinLength, Max: MaxLength},
		},
	}
}

// Load reads a YAML file over the defaults and validates the result.
// Files ending in .hjson are read as Hjson.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if strings.EqualFold(filepath.Ext(path), ".hjson") {
		if data, err = hjsonToJSON(data); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// hjsonToJSON goes through a generic map; the JSON it produces is valid
// YAML, so the yaml tags still apply.
func hjsonToJSON(data []byte) ([]byte, error) {
	var m map[string]interface{}
	if err := hjson.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return json.Marshal(m)
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if !(c.Dt > 0) || math.IsInf(c.Dt, 0) {
		return fmt.Errorf("dt=%v: %w", c.Dt, dynamo.ErrParameterBounds)
	}
	if c.FPS <= 0 {
		return fmt.Errorf("fps=%d: %w", c.FPS, dynamo.ErrParameterBounds)
	}
	if c.Steps < 0 {
		return fmt.Errorf("steps=%d: %w", c.Steps, dynamo.ErrParameterBounds)
	}
	if c.Frame != FrameScreen && c.Frame != FrameMath {
		return fmt.Errorf("frame %q: %w", c.Frame, dynamo.ErrInvalidConfig)
	}
	if _, err := integrators.Lookup(c.Integrator); err != nil {
		return err
	}
	if _, err := sim.ParsePolicy(c.Policy); err != nil {
		return err
	}
	if err := c.Params.Validate(); err != nil {
		return err
	}
	if c.Params.Gravity < 0 {
		return fmt.Errorf("gravity is a magnitude, got %v: %w", c.Params.Gravity, dynamo.ErrParameterBounds)
	}
	for name, r := range map[string]Range{"mass": c.Sliders.Mass, "gravity": c.Sliders.Gravity, "length": c.Sliders.Length} {
		if !(r.Min > 0) || !(r.Max > r.Min) {
			return fmt.Errorf("%s slider range [%v, %v]: %w", name, r.Min, r.Max, dynamo.ErrInvalidConfig)
		}
	}
	return nil
}

// GravitySign is -1 in the screen frame and +1 otherwise.
func (c *Config) GravitySign() float64 {
	if c.Frame == FrameMath {
		return 1
	}
	return -1
}

// Physics returns the parameters as the equations of motion expect them.
func (c *Config) Physics() dynamo.Params {
	p := c.Params
	p.Gravity = c.GravitySign() * math.Abs(p.Gravity)
	return p
}

func (c *Config) InitialState() dynamo.State {
	return dynamo.State{
		Angle1:           c.InitState.Theta1,
		Angle2:           c.InitState.Theta2,
		AngularVelocity1: c.InitState.Omega1,
		AngularVelocity2: c.InitState.Omega2,
	}
}

func (c *Config) SimConfig() sim.Config {
	return sim.Config{Dt: c.Dt, Steps: c.Steps}
}

// Clone returns an independent copy.
func (c *Config) Clone() *Config {
	cp := *c
	return &cp
}
