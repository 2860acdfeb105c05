// Package chart renders role histograms as raster images. The rendering
// library is kept behind a narrow interface so callers never see plot
// internals.
package chart

import (
	"bytes"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// Renderer produces a bar-chart image for a set of labeled values.
type Renderer interface {
	RenderBarChart(labels []string, values []float64) ([]byte, error)
}

// BarRenderer renders a horizontal bar chart to an in-memory PNG.
type BarRenderer struct {
	Title  string
	XLabel string
	YLabel string
}

// NewBarRenderer creates a renderer with the panel's default labels.
func NewBarRenderer() *BarRenderer {
	return &BarRenderer{
		Title:  "Role distribution",
		XLabel: "Number of users",
		YLabel: "Roles",
	}
}

// RenderBarChart draws one horizontal bar per label, bar length = value.
// labels and values must have equal length; both may be empty, an empty
// chart is still a valid image.
func (r *BarRenderer) RenderBarChart(labels []string, values []float64) ([]byte, error) {
	p := plot.New()
	p.Title.Text = r.Title
	p.X.Label.Text = r.XLabel
	p.Y.Label.Text = r.YLabel

	// plotter.NewBarChart rejects an empty value set; an empty store still
	// renders a bare plot, which is a valid image.
	if len(values) > 0 {
		bars, err := plotter.NewBarChart(plotter.Values(values), vg.Points(18))
		if err != nil {
			return nil, err
		}
		bars.Horizontal = true
		bars.Color = color.RGBA{R: 135, G: 206, B: 235, A: 255}
		bars.LineStyle.Width = 0

		p.Add(bars)
		p.NominalY(labels...)
	}

	w, err := p.WriterTo(6*vg.Inch, 4*vg.Inch, "png")
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if _, err := w.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
