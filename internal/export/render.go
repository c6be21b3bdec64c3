// Package export renders chart options server-side into static images.
// Interactive features are a frontend concern; exports capture the data view
// only, so pie charts (which gonum/plot has no plotter for) are refused.
package export

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/vizkit/vizkit/backend-go/internal/chart"
)

// ErrUnsupportedKind marks chart kinds that have no static plot equivalent.
var ErrUnsupportedKind = errors.New("pie charts cannot be exported as static plots")

// Render builds a static image from a chart options document. Supported
// formats are "png" and "svg".
func Render(optionsJSON json.RawMessage, width, height int, format string) ([]byte, error) {
	if format != "png" && format != "svg" {
		return nil, fmt.Errorf("unsupported format %q", format)
	}

	engine := chart.NewEngine(nil)
	if err := engine.Configure(optionsJSON, float64(width), float64(height)); err != nil {
		return nil, err
	}

	p := plot.New()
	p.Add(plotter.NewGrid())

	spec := engine.Spec()
	switch ds := engine.Dataset().(type) {
	case *chart.SeriesData:
		if err := addSeries(p, spec, ds); err != nil {
			return nil, err
		}
	case *chart.PointData:
		if err := addPoints(p, ds); err != nil {
			return nil, err
		}
	case *chart.SliceData:
		return nil, ErrUnsupportedKind
	}

	p.Legend.Top = true
	if !spec.ShowLegend {
		p.Legend = plot.NewLegend()
	}

	wt, err := p.WriterTo(vg.Points(float64(width)), vg.Points(float64(height)), format)
	if err != nil {
		return nil, fmt.Errorf("create %s writer: %w", format, err)
	}

	var buf bytes.Buffer
	if _, err := wt.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("render %s: %w", format, err)
	}
	return buf.Bytes(), nil
}

func addSeries(p *plot.Plot, spec *chart.Spec, ds *chart.SeriesData) error {
	p.Y.Min = ds.YRange.Min
	p.Y.Max = ds.YRange.Max

	barWidth := vg.Points(16)
	for i, s := range ds.Series {
		if !s.Visible {
			continue
		}
		c := parseHexColor(s.Color)

		switch ds.ChartKind {
		case chart.KindBar:
			bars, err := plotter.NewBarChart(plotter.Values(s.Values), barWidth)
			if err != nil {
				return fmt.Errorf("bar series %d: %w", i, err)
			}
			bars.Color = c
			bars.LineStyle.Width = 0
			bars.Offset = barWidth * vg.Length(i)
			p.Add(bars)
			p.Legend.Add(s.Label, bars)

		default:
			line, err := plotter.NewLine(seriesXYs(s.Values))
			if err != nil {
				return fmt.Errorf("line series %d: %w", i, err)
			}
			line.Color = c
			line.Width = vg.Points(2)
			if ds.ChartKind == chart.KindArea {
				line.FillColor = withAlpha(c, 77)
			}
			p.Add(line)
			p.Legend.Add(s.Label, line)
		}
	}

	if len(spec.Labels) > 0 {
		p.NominalX(spec.Labels...)
	}
	return nil
}

func addPoints(p *plot.Plot, ds *chart.PointData) error {
	p.X.Min, p.X.Max = ds.XRange.Min, ds.XRange.Max
	p.Y.Min, p.Y.Max = ds.YRange.Min, ds.YRange.Max

	xys := make(plotter.XYs, len(ds.Points))
	for i, pt := range ds.Points {
		xys[i].X = pt.X
		xys[i].Y = pt.Y
	}

	scatter, err := plotter.NewScatter(xys)
	if err != nil {
		return fmt.Errorf("scatter: %w", err)
	}
	scatter.GlyphStyle.Radius = vg.Points(3)
	if len(ds.Points) > 0 {
		scatter.GlyphStyle.Color = parseHexColor(ds.Points[0].Color)
	}
	p.Add(scatter)
	return nil
}

func seriesXYs(values []float64) plotter.XYs {
	xys := make(plotter.XYs, len(values))
	for i, v := range values {
		xys[i].X = float64(i)
		xys[i].Y = v
	}
	return xys
}

// parseHexColor decodes a #RRGGBB string; malformed input falls back to black.
func parseHexColor(s string) color.RGBA {
	c := color.RGBA{A: 255}
	if len(s) != 7 || s[0] != '#' {
		return c
	}
	var r, g, b uint8
	if _, err := fmt.Sscanf(s[1:], "%02x%02x%02x", &r, &g, &b); err != nil {
		return c
	}
	c.R, c.G, c.B = r, g, b
	return c
}

func withAlpha(c color.RGBA, a uint8) color.RGBA {
	c.A = a
	return c
}
