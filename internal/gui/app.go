package gui

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/dpsim/internal/config"
	"github.com/san-kum/dpsim/internal/dynamo"
	"github.com/san-kum/dpsim/internal/integrators"
	"github.com/san-kum/dpsim/internal/physics"
	"github.com/san-kum/dpsim/internal/sim"
	"github.com/san-kum/dpsim/internal/ui"
)

var (
	ColBg     = rl.NewColor(0, 0, 0, 255)
	ColArm    = rl.NewColor(255, 255, 255, 255)
	ColPivot  = rl.NewColor(255, 0, 0, 255)
	ColBob1   = rl.NewColor(0, 255, 0, 255)
	ColBob2   = rl.NewColor(0, 0, 255, 255)
	ColText   = rl.NewColor(255, 255, 255, 255)
	ColDim    = rl.NewColor(140, 140, 140, 255)
	ColWarn   = rl.NewColor(255, 80, 80, 255)
	ColActive = rl.NewColor(255, 200, 0, 255)
)

// App is the window host. It serves as the loop's input, parameter source
// and renderer, so every raylib call happens on the loop goroutine.
type App struct {
	cfg    *config.Config
	panel  *ui.Panel
	logger *log.Logger
	paused bool
}

func NewApp(cfg *config.Config, logger *log.Logger) *App {
	return &App{
		cfg:    cfg,
		panel:  ui.NewPanel(cfg, ui.WindowLayout(cfg.Window.Width)),
		logger: logger,
	}
}

// Run opens the window and blocks until it is closed or ctx ends.
func Run(ctx context.Context, cfg *config.Config, logger *log.Logger) error {
	integ, err := integrators.Lookup(cfg.Integrator)
	if err != nil {
		return err
	}
	policy, err := sim.ParsePolicy(cfg.Policy)
	if err != nil {
		return err
	}

	s := sim.New(physics.NewDoublePendulum(), integ)
	s.SetPolicy(policy)

	app := NewApp(cfg, logger)

	rl.SetTraceLogLevel(rl.LogWarning)
	rl.InitWindow(int32(cfg.Window.Width), int32(cfg.Window.Height), "Double Pendulum Simulation")
	defer rl.CloseWindow()
	rl.SetExitKey(0)

	loop := &sim.Loop{
		Sim:      s,
		Input:    app,
		Params:   app,
		Renderer: app,
		Logger:   logger,
		Pivot:    cfg.Window.Pivot,
		Dt:       cfg.Dt,
		FPS:      cfg.FPS,
	}

	logger.Info("window open", "width", cfg.Window.Width, "height", cfg.Window.Height, "dt", cfg.Dt)
	x, err := loop.Run(ctx, cfg.InitialState())
	logger.Info("window closed", "steps", s.Steps(), "state", x)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func (a *App) Poll() sim.Command {
	if rl.WindowShouldClose() || rl.IsKeyPressed(rl.KeyQ) {
		return sim.CommandQuit
	}

	mouse := rl.GetMousePosition()
	x, y := float64(mouse.X), float64(mouse.Y)
	if rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		a.panel.Press(x, y)
	}
	if rl.IsMouseButtonDown(rl.MouseButtonLeft) {
		a.panel.Drag(x)
	}
	if rl.IsMouseButtonReleased(rl.MouseButtonLeft) {
		a.panel.Release()
	}

	switch {
	case rl.IsKeyPressed(rl.KeySpace):
		a.paused = !a.paused
		return sim.CommandPause
	case rl.IsKeyPressed(rl.KeyR):
		a.panel.Reset()
		return sim.CommandReset
	case rl.IsKeyPressed(rl.KeyTab):
		a.panel.Cycle()
	case rl.IsKeyPressed(rl.KeyUp), rl.IsKeyPressed(rl.KeyRight):
		a.panel.Adjust(1)
	case rl.IsKeyPressed(rl.KeyDown), rl.IsKeyPressed(rl.KeyLeft):
		a.panel.Adjust(-1)
	}
	return sim.CommandNone
}

func (a *App) Snapshot() dynamo.Params { return a.panel.Snapshot() }

func (a *App) Render(f dynamo.Frame) error {
	rl.BeginDrawing()
	defer rl.EndDrawing()

	rl.ClearBackground(ColBg)

	if f.State.IsFinite() {
		a.drawPendulum(f)
	}
	a.drawSliders()
	a.drawHUD(f)
	return nil
}

func (a *App) drawPendulum(f dynamo.Frame) {
	pivot := a.toScreen(f.Pivot, f.Pivot)
	b1 := a.toScreen(f.Bob1, f.Pivot)
	b2 := a.toScreen(f.Bob2, f.Pivot)

	rl.DrawLineEx(pivot, b1, 5, ColArm)
	rl.DrawLineEx(b1, b2, 5, ColArm)
	rl.DrawCircleV(pivot, 5, ColPivot)
	rl.DrawCircleV(b1, bobRadius(f.Params.Mass1), ColBob1)
	rl.DrawCircleV(b2, bobRadius(f.Params.Mass2), ColBob2)
}

func (a *App) drawSliders() {
	for i, s := range a.panel.Sliders() {
		x, y := float32(s.X), float32(s.Y)
		col := ColText
		if i == a.panel.ActiveIndex() {
			col = ColActive
		}

		rl.DrawText(s.Label+":", int32(x)-100, int32(y)-8, 20, col)
		rl.DrawLineEx(rl.NewVector2(x-5, y), rl.NewVector2(x+float32(s.Width-s.Inset), y), 5, ColArm)

		knob := float32(s.KnobX())
		rl.DrawCircleV(rl.NewVector2(knob, y), 10, ColArm)
		rl.DrawText(fmt.Sprintf("%d", int(s.Value())), int32(knob)-10, int32(y)-30, 20, ColText)
	}
}

func (a *App) drawHUD(f dynamo.Frame) {
	d1, d2 := f.State.Degrees()
	rl.DrawText(fmt.Sprintf("Angle 1: %d deg   Angle 2: %d deg", d1, d2), 20, 20, 20, ColText)
	rl.DrawText(fmt.Sprintf("t = %.1f   step %d", f.Time, f.Step), 20, 45, 20, ColDim)

	if a.paused {
		rl.DrawText("PAUSED", 20, 70, 20, ColActive)
	}
	if f.Err != nil {
		msg := "numerical instability: state frozen, adjust a slider"
		if !f.State.IsFinite() {
			msg = "numerical instability: press R to reset"
		}
		rl.DrawText(msg, 20, int32(a.cfg.Window.Height)-40, 20, ColWarn)
	}
}
