package export

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/san-kum/dpsim/internal/analysis"
)

var (
	traceColor = color.RGBA{R: 0, G: 160, B: 220, A: 255}
	peakColor  = color.RGBA{R: 220, G: 40, B: 40, A: 255}
)

func stylePlot(p *plot.Plot, title, xLabel, yLabel string) {
	p.Title.Text = title
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel
	p.Title.TextStyle.Font.Size = vg.Points(16)
	p.Title.Padding = vg.Points(8)
	p.X.Padding = vg.Points(10)
	p.Y.Padding = vg.Points(10)
	p.Add(plotter.NewGrid())
}

// SavePhasePlot writes the portrait as a scatter plot. The image format
// follows the file extension (png, svg, pdf).
func SavePhasePlot(portrait *analysis.PhasePortrait2D, title, xLabel, yLabel, path string) error {
	if portrait == nil || len(portrait.Points) == 0 {
		return fmt.Errorf("no points to plot")
	}

	p := plot.New()
	stylePlot(p, title, xLabel, yLabel)

	pts := make(plotter.XYs, len(portrait.Points))
	for i, pt := range portrait.Points {
		pts[i].X, pts[i].Y = pt.X, pt.Y
	}
	scatter, err := plotter.NewScatter(pts)
	if err != nil {
		return err
	}
	scatter.GlyphStyle.Radius = vg.Points(0.8)
	scatter.GlyphStyle.Color = traceColor
	p.Add(scatter)

	return p.Save(6*vg.Inch, 6*vg.Inch, path)
}

// SaveSpectrumPlot draws the spectrum up to maxFreq (all of it when
// maxFreq <= 0) and marks the peak.
func SaveSpectrumPlot(ps analysis.Spectrum, maxFreq float64, title, path string) error {
	if len(ps.Freqs) < 2 {
		return fmt.Errorf("spectrum too short to plot")
	}

	p := plot.New()
	stylePlot(p, title, "frequency", "amplitude")

	pts := make(plotter.XYs, 0, len(ps.Freqs))
	for i, f := range ps.Freqs {
		if maxFreq > 0 && f > maxFreq {
			break
		}
		pts = append(pts, plotter.XY{X: f, Y: ps.Power[i]})
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return err
	}
	line.LineStyle.Width = vg.Points(1.5)
	line.LineStyle.Color = traceColor
	p.Add(line)

	if peak := ps.Peak(); peak > 0 {
		vline, err := plotter.NewLine(plotter.XYs{{X: peak, Y: 0}, {X: peak, Y: maxPower(pts)}})
		if err != nil {
			return err
		}
		vline.LineStyle.Color = peakColor
		vline.LineStyle.Dashes = []vg.Length{vg.Points(4), vg.Points(3)}
		p.Add(vline)
		p.Legend.Add(fmt.Sprintf("peak %.4f", peak), vline)
	}

	return p.Save(8*vg.Inch, 5*vg.Inch, path)
}

func maxPower(pts plotter.XYs) float64 {
	m := 0.0
	for _, pt := range pts {
		m = max(m, pt.Y)
	}
	return m
}
