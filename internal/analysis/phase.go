package analysis

import (
	"math"
	"strings"

	"github.com/san-kum/dpsim/internal/dynamo"
)

type Point2D struct{ X, Y float64 }

// PhasePortrait2D holds data for a 2D phase space plot. Indices follow
// State.Slice: 0 angle1, 1 angle2, 2 velocity1, 3 velocity2.
type PhasePortrait2D struct {
	XIndex, YIndex int
	Points         []Point2D
}

// GeneratePhasePortrait runs a simulation and records phase space trajectory
func GeneratePhasePortrait(
	dyn dynamo.System,
	integ dynamo.Integrator,
	x0 dynamo.State,
	p dynamo.Params,
	xIdx, yIdx int,
	dt, duration float64,
) *PhasePortrait2D {
	if xIdx < 0 || xIdx > 3 || yIdx < 0 || yIdx > 3 || dt <= 0 {
		return nil
	}

	steps := int(math.Round(duration / dt))
	portrait := &PhasePortrait2D{
		XIndex: xIdx,
		YIndex: yIdx,
		Points: make([]Point2D, 0, steps),
	}

	x := x0
	for i := 0; i < steps; i++ {
		x = integ.Step(dyn, x, p, dt)
		if !x.IsFinite() {
			break
		}
		s := x.Slice()
		portrait.Points = append(portrait.Points, Point2D{X: s[xIdx], Y: s[yIdx]})
	}

	return portrait
}

// PhasePortraitToASCII converts phase portrait to ASCII art
func PhasePortraitToASCII(portrait *PhasePortrait2D, width, height int) string {
	if portrait == nil || len(portrait.Points) == 0 || width <= 0 || height <= 0 {
		return ""
	}

	minX, maxX := portrait.Points[0].X, portrait.Points[0].X
	minY, maxY := portrait.Points[0].Y, portrait.Points[0].Y

	for _, p := range portrait.Points {
		minX = math.Min(minX, p.X)
		maxX = math.Max(maxX, p.X)
		minY = math.Min(minY, p.Y)
		maxY = math.Max(maxY, p.Y)
	}

	// Add padding
	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	maxX += rangeX * 0.1
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeX = maxX - minX
	rangeY = maxY - minY

	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = []rune(strings.Repeat(" ", width))
	}

	for _, p := range portrait.Points {
		col := int((p.X - minX) / rangeX * float64(width-1))
		row := height - 1 - int((p.Y-minY)/rangeY*float64(height-1))

		if row >= 0 && row < height && col >= 0 && col < width {
			canvas[row][col] = '•'
		}
	}

	// Draw axes if they cross the visible area
	if minX <= 0 && maxX >= 0 {
		col := int((0 - minX) / rangeX * float64(width-1))
		for row := 0; row < height; row++ {
			if col >= 0 && col < width && canvas[row][col] == ' ' {
				canvas[row][col] = '│'
			}
		}
	}
	if minY <= 0 && maxY >= 0 {
		row := height - 1 - int((0-minY)/rangeY*float64(height-1))
		for col := 0; col < width; col++ {
			if row >= 0 && row < height && canvas[row][col] == ' ' {
				canvas[row][col] = '─'
			}
		}
	}

	var sb strings.Builder
	for _, row := range canvas {
		sb.WriteString(string(row))
		sb.WriteRune('\n')
	}
	return sb.String()
}

// GeneratePoincareSection records (angle2, velocity2) each time angle1
// crosses zero moving in the positive direction. Points are linearly
// interpolated to the crossing.
func GeneratePoincareSection(
	dyn dynamo.System,
	integ dynamo.Integrator,
	x0 dynamo.State,
	p dynamo.Params,
	dt, duration float64,
) *PhasePortrait2D {
	if dt <= 0 {
		return nil
	}

	section := &PhasePortrait2D{XIndex: 1, YIndex: 3}

	x := x0
	steps := int(math.Round(duration / dt))
	for i := 0; i < steps; i++ {
		next := integ.Step(dyn, x, p, dt)
		if !next.IsFinite() {
			break
		}

		prev, curr := math.Remainder(x.Angle1, 2*math.Pi), math.Remainder(next.Angle1, 2*math.Pi)
		if prev < 0 && curr >= 0 && next.AngularVelocity1 > 0 {
			frac := -prev / (curr - prev)
			section.Points = append(section.Points, Point2D{
				X: x.Angle2 + frac*(next.Angle2-x.Angle2),
				Y: x.AngularVelocity2 + frac*(next.AngularVelocity2-x.AngularVelocity2),
			})
		}
		x = next
	}

	return section
}
