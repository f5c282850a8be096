package viz

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/dpsim/internal/config"
	"github.com/san-kum/dpsim/internal/dynamo"
	"github.com/san-kum/dpsim/internal/integrators"
	"github.com/san-kum/dpsim/internal/metrics"
	"github.com/san-kum/dpsim/internal/physics"
	"github.com/san-kum/dpsim/internal/sim"
	"github.com/san-kum/dpsim/internal/ui"
)

const (
	canvasWidth     = 72
	canvasHeight    = 24
	trailLength     = 200
	historyCapacity = 600

	// Slider rows start under the title; the track begins after the
	// focus marker and a fixed-width label.
	sliderRow   = 1
	sliderCol   = 12
	sliderCells = 30
)

type TickMsg time.Time

type pixel struct{ x, y int }

// Model is the Bubble Tea model of the live simulation.
type Model struct {
	cfg    *config.Config
	sim    *sim.Simulator
	panel  *ui.Panel
	logger *log.Logger

	dyn   physics.DoublePendulum
	drift *metrics.EnergyDrift
	flips *metrics.Flips

	state   dynamo.State
	initial dynamo.State
	canvas  *Canvas
	trail   []pixel
	energy  []float64
	running bool
	err     error
}

// NewModel builds the live model from a validated config.
func NewModel(cfg *config.Config, logger *log.Logger) (Model, error) {
	integ, err := integrators.Lookup(cfg.Integrator)
	if err != nil {
		return Model{}, err
	}
	policy, err := sim.ParsePolicy(cfg.Policy)
	if err != nil {
		return Model{}, err
	}

	dyn := physics.NewDoublePendulum()
	s := sim.New(dyn, integ)
	s.SetPolicy(policy)

	drift := metrics.NewEnergyDrift(dyn)
	flips := metrics.NewFlips()
	s.AddMetric(drift)
	s.AddMetric(flips)

	layout := ui.Layout{
		X:       sliderCol,
		Y:       sliderRow,
		Spacing: 1,
		Width:   sliderCells,
		Inset:   1,
	}

	x0 := cfg.InitialState()
	return Model{
		cfg:     cfg,
		sim:     s,
		panel:   ui.NewPanel(cfg, layout),
		logger:  logger,
		dyn:     dyn,
		drift:   drift,
		flips:   flips,
		state:   x0,
		initial: x0,
		canvas:  NewCanvas(canvasWidth, canvasHeight),
		trail:   make([]pixel, 0, trailLength),
		energy:  make([]float64, 0, historyCapacity),
		running: true,
	}, nil
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.cfg.FPS), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

// Update handles input events and steps the simulation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.reset()
		case "c":
			m.trail = m.trail[:0]
		case "tab":
			m.panel.Cycle()
		case "up", "right", "k", "l":
			m.panel.Adjust(1)
		case "down", "left", "j", "h":
			m.panel.Adjust(-1)
		}
	case tea.MouseMsg:
		m.mouse(msg)
	case TickMsg:
		if m.running {
			m.step()
		}
		m.draw()
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) mouse(msg tea.MouseMsg) {
	x, y := float64(msg.X), float64(msg.Y)
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft && m.panel.Press(x, y) {
			m.panel.Drag(x)
		}
	case tea.MouseActionMotion:
		m.panel.Drag(x)
	case tea.MouseActionRelease:
		m.panel.Release()
	}
}

// step advances one fixed step with the sliders' current values.
func (m *Model) step() {
	p := m.panel.Snapshot()

	next, err := m.sim.Tick(m.state, p, m.cfg.Dt)
	switch {
	case errors.Is(err, dynamo.ErrNumericalInstability):
		if m.err == nil {
			m.logger.Warn("numerical instability", "err", err, "policy", m.sim.Policy())
		}
		m.err = err
	case err != nil:
		m.err = err
	default:
		if m.err != nil {
			m.logger.Info("simulation recovered", "step", m.sim.Steps())
		}
		m.err = nil
	}
	m.state = next

	if e := m.dyn.Energy(m.state, p); !math.IsNaN(e) && !math.IsInf(e, 0) {
		m.energy = append(m.energy, e)
		if len(m.energy) > historyCapacity {
			m.energy = m.energy[1:]
		}
	}
}

// reset restores the initial state and slider values.
func (m *Model) reset() {
	m.state = m.initial
	m.sim.Reset()
	m.panel.Reset()
	m.trail = m.trail[:0]
	m.energy = m.energy[:0]
	m.err = nil
}

// project maps a host-frame point, relative to the pivot, onto the canvas.
// Lengths are scaled so the longest possible pendulum still fits.
func (m *Model) project(pt dynamo.Point) pixel {
	cw, ch := m.canvas.PixelSize()
	reach := 2 * m.cfg.Sliders.Length.Max
	scale := float64(min(cw, ch)) / 2 / reach

	dx := (pt.X - m.cfg.Window.Pivot.X) * scale
	dy := (pt.Y - m.cfg.Window.Pivot.Y) * scale
	if m.cfg.Frame == config.FrameMath {
		dy = -dy
	}
	return pixel{cw/2 + int(math.Round(dx)), ch/2 + int(math.Round(dy))}
}

func (m *Model) draw() {
	m.canvas.Clear()
	if !m.state.IsFinite() {
		return
	}

	p := m.panel.Snapshot()
	bob1, bob2 := integrators.DerivePositions(m.state, p, m.cfg.Window.Pivot)

	pivot := m.project(m.cfg.Window.Pivot)
	b1 := m.project(bob1)
	b2 := m.project(bob2)

	if n := len(m.trail); n == 0 || m.trail[n-1] != b2 {
		m.trail = append(m.trail, b2)
		if len(m.trail) > trailLength {
			m.trail = m.trail[1:]
		}
	}
	for _, pt := range m.trail {
		m.canvas.Set(pt.x, pt.y)
	}

	m.canvas.FillDisc(pivot.x, pivot.y, 1)
	m.canvas.DrawLine(pivot.x, pivot.y, b1.x, b1.y)
	m.canvas.DrawLine(b1.x, b1.y, b2.x, b2.y)
	m.canvas.FillDisc(b1.x, b1.y, bobRadius(p.Mass1, m.cfg.Sliders.Mass))
	m.canvas.FillDisc(b2.x, b2.y, bobRadius(p.Mass2, m.cfg.Sliders.Mass))
}

// bobRadius grows from 1 to 3 sub-pixels across the mass range.
func bobRadius(mass float64, r config.Range) int {
	if r.Max <= r.Min {
		return 1
	}
	return 1 + int(math.Round(2*(r.Clamp(mass)-r.Min)/(r.Max-r.Min)))
}

func (m Model) viewSliders() string {
	var s strings.Builder
	for i, sl := range m.panel.Sliders() {
		marker := "  "
		label := fmt.Sprintf("%-9s ", sl.Label)
		if i == m.panel.ActiveIndex() {
			marker = "> "
			label = activeStyle.Render(label)
		} else {
			label = sliderLabelStyle.Render(label)
		}
		knob := int(math.Round(sl.Fraction() * float64(sliderCells-1)))
		s.WriteString(marker + label + sliderTrack(sliderCells, knob))
		s.WriteString(valueStyle.Render(fmt.Sprintf(" %6.1f", sl.Value())) + "\n")
	}
	return s.String()
}

func (m Model) viewStatus() string {
	switch {
	case m.err != nil:
		return statusUnstable.Render("UNSTABLE")
	case !m.running:
		return statusPaused.Render("PAUSED")
	default:
		return statusRunning.Render("RUNNING")
	}
}

// View renders the TUI interface.
// instabilityNotice tells the user how to get out of a failed step: a frozen
// state still responds to the sliders, a propagated NaN needs a reset.
func instabilityNotice(x dynamo.State) string {
	if !x.IsFinite() {
		return "numerical instability: press R to reset"
	}
	return "numerical instability: state frozen, adjust a slider"
}

func (m Model) View() string {
	var top strings.Builder
	top.WriteString(titleStyle.Render("DOUBLE PENDULUM") + "\n")
	top.WriteString(m.viewSliders())

	var s strings.Builder
	s.WriteString(m.viewStatus() + "\n\n")

	d1, d2 := m.state.Degrees()
	s.WriteString(labelStyle.Render("Time") + valueStyle.Render(fmt.Sprintf("%.1f", m.sim.Time())) + "\n")
	s.WriteString(labelStyle.Render("Step") + valueStyle.Render(fmt.Sprintf("%d", m.sim.Steps())) + "\n")
	s.WriteString(labelStyle.Render("Angle 1") + valueStyle.Render(fmt.Sprintf("%d°", d1)) + "\n")
	s.WriteString(labelStyle.Render("Angle 2") + valueStyle.Render(fmt.Sprintf("%d°", d2)) + "\n")
	s.WriteString(labelStyle.Render("Flips") + valueStyle.Render(fmt.Sprintf("%.0f", m.flips.Value())) + "\n")
	s.WriteString(labelStyle.Render("Drift") + valueStyle.Render(fmt.Sprintf("%.2e", m.drift.Value())) + "\n")

	if len(m.energy) > 1 {
		chart := asciigraph.Plot(m.energy, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Energy"))
		s.WriteString(graphStyle.Render(chart) + "\n")
	}
	if m.err != nil {
		s.WriteString(statusUnstable.Render(instabilityNotice(m.state)) + "\n")
	}
	s.WriteString(helpStyle.Render("\nSP:Pause R:Reset Q:Quit\nTab:Slider ↑↓:Tune C:Trail"))

	canvasView := canvasStyle.Render(m.canvas.String())
	statsView := statsStyle.Render(s.String())
	return top.String() + lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)
}

// Run starts the terminal host and blocks until the user quits.
func Run(cfg *config.Config, logger *log.Logger) error {
	m, err := NewModel(cfg, logger)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion()).Run()
	return err
}
