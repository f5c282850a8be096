package gui

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/dpsim/internal/config"
	"github.com/san-kum/dpsim/internal/dynamo"
)

// toScreen converts a host-frame point to window pixels. Raylib's Y axis
// points down, so a Y-up frame is mirrored about the pivot.
func (a *App) toScreen(pt, pivot dynamo.Point) rl.Vector2 {
	y := pt.Y
	if a.cfg.Frame == config.FrameMath {
		y = 2*pivot.Y - pt.Y
	}
	return rl.NewVector2(float32(pt.X), float32(y))
}

// bobRadius is a third of the mass, the size the bobs have always had.
func bobRadius(mass float64) float32 {
	return float32(mass / 3)
}
