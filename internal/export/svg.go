// Package export renders finished runs and analysis results as images.
package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/dpsim/internal/dynamo"
)

// Trace is what TrajectoryToSVG draws: the path of the outer bob and the
// pendulum in its final pose, all in host coordinates.
type Trace struct {
	Path  []dynamo.Point
	Pivot dynamo.Point
	Bob1  dynamo.Point
	Bob2  dynamo.Point
	// YUp marks a frame whose Y axis points up; SVG's points down.
	YUp bool
}

// TrajectoryToSVG fits the trace into a width x height image. Colors match
// the window view: white arms, red pivot, green and blue bobs.
func TrajectoryToSVG(tr Trace, width, height int, strokeColor string) string {
	if len(tr.Path) < 2 {
		return ""
	}

	// Bounds cover the path and the final pose.
	all := append([]dynamo.Point{tr.Pivot, tr.Bob1, tr.Bob2}, tr.Path...)
	minX, maxX := all[0].X, all[0].X
	minY, maxY := all[0].Y, all[0].Y
	for _, p := range all {
		if p.X < minX {
			minX = p.X
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
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

	project := func(p dynamo.Point) (float64, float64) {
		x := (p.X - minX) / rangeX * float64(width)
		y := (p.Y - minY) / rangeY * float64(height)
		if tr.YUp {
			y = float64(height) - y
		}
		return x, y
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#000000"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, strokeColor))

	for i, p := range tr.Path {
		x, y := project(p)
		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}
	sb.WriteString("\"/>\n")

	px, py := project(tr.Pivot)
	b1x, b1y := project(tr.Bob1)
	b2x, b2y := project(tr.Bob2)
	sb.WriteString(fmt.Sprintf(`<polyline fill="none" stroke="#ffffff" stroke-width="3" points="%.1f,%.1f %.1f,%.1f %.1f,%.1f"/>
<circle cx="%.1f" cy="%.1f" r="4" fill="#ff0000"/>
<circle cx="%.1f" cy="%.1f" r="8" fill="#00ff00"/>
<circle cx="%.1f" cy="%.1f" r="8" fill="#0000ff"/>
`, px, py, b1x, b1y, b2x, b2y, px, py, b1x, b1y, b2x, b2y))

	sb.WriteString("</svg>")
	return sb.String()
}
