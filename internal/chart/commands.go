package chart

import (
	"encoding/json"
	"fmt"
	"math"
)

// PathCommand is a single path segment for the frontend surface.
// Format matches Canvas2D: ["M", x, y], ["L", x, y], ["A", cx, cy, r, a0, a1], ["Z"].
type PathCommand []interface{}

// DrawCommand is one drawing operation for the external surface to execute.
// The engine compiles a buffer of these in painter's order; it never touches
// a concrete rendering backend itself.
type DrawCommand struct {
	Op          string        `json:"op"` // "save", "restore", "clip", "rect", "path", "arc", "text"
	Element     *ElementKey   `json:"element,omitempty"` // for hit correlation
	X           float64       `json:"x,omitempty"`
	Y           float64       `json:"y,omitempty"`
	Width       float64       `json:"width,omitempty"`
	Height      float64       `json:"height,omitempty"`
	Path        []PathCommand `json:"path,omitempty"`
	CX          float64       `json:"cx,omitempty"`
	CY          float64       `json:"cy,omitempty"`
	Radius      float64       `json:"radius,omitempty"`
	StartAngle  float64       `json:"startAngle,omitempty"`
	EndAngle    float64       `json:"endAngle,omitempty"`
	Text        string        `json:"text,omitempty"`
	Align       string        `json:"align,omitempty"`
	Fill        string        `json:"fill,omitempty"`
	Stroke      string        `json:"stroke,omitempty"`
	StrokeWidth float64       `json:"strokeWidth,omitempty"`
	Opacity     float64       `json:"opacity,omitempty"`
}

const (
	gridColor      = "#E5E7EB"
	axisColor      = "#9CA3AF"
	labelColor     = "#6B7280"
	highlightColor = "#111827"

	glyphRadius      = 4.0
	hoverGlyphRadius = 6.0
	gridDivisions    = 4
)

// Render compiles the current chart state into a draw-command buffer. It is
// a pure read of (processed data, scale, selection, progress); a failure
// inside one frame is recovered and reported instead of crashing the render
// loop.
func (e *Engine) Render() (cmds []DrawCommand) {
	if e.dataset == nil {
		return nil
	}
	defer func() {
		if r := recover(); r != nil {
			cmds = nil
			e.emit(Event{
				Type: EventError,
				Err:  &InteractionError{Op: "render", Err: fmt.Errorf("%v", r)},
			})
		}
	}()

	box := drawingBox(e.width, e.height, e.spec.Margin)
	opacity := 1.0
	if e.spec.Animated {
		opacity = e.progress
	}

	cmds = append(cmds, DrawCommand{Op: "save"})

	if _, isPie := e.dataset.(*SliceData); !isPie {
		if e.spec.ShowGrid {
			cmds = e.compileGrid(cmds, box)
		}
		if e.spec.ShowAxis {
			cmds = e.compileAxis(cmds, box)
		}
	}

	// Data geometry is clipped to the drawing box.
	cmds = append(cmds,
		DrawCommand{Op: "save"},
		DrawCommand{Op: "clip", X: box.X, Y: box.Y, Width: box.Width, Height: box.Height},
	)
	switch d := e.dataset.(type) {
	case *SeriesData:
		if d.ChartKind == KindBar {
			cmds = e.compileBars(cmds, d, box, opacity)
		} else {
			cmds = e.compileSeriesLines(cmds, d, box, opacity)
		}
	case *SliceData:
		cmds = e.compileSlices(cmds, d, box, opacity)
	case *PointData:
		cmds = e.compilePoints(cmds, d, box, opacity)
	}
	cmds = append(cmds, DrawCommand{Op: "restore"})

	if e.spec.ShowLegend {
		cmds = e.compileLegend(cmds, box)
	}
	if e.spec.ShowTooltips && e.tooltip.Visible {
		cmds = e.compileTooltip(cmds, box)
	}

	cmds = append(cmds, DrawCommand{Op: "restore"})
	return cmds
}

// RenderJSON serializes the draw-command buffer for the wasm bridge.
func (e *Engine) RenderJSON() string {
	data, err := json.Marshal(e.Render())
	if err != nil {
		return "[]"
	}
	return string(data)
}

func (e *Engine) compileGrid(cmds []DrawCommand, box Box) []DrawCommand {
	for i := 0; i <= gridDivisions; i++ {
		y := box.Y + box.Height*float64(i)/gridDivisions
		cmds = append(cmds, DrawCommand{
			Op: "path",
			Path: []PathCommand{
				{"M", box.X, y},
				{"L", box.X + box.Width, y},
			},
			Stroke:      gridColor,
			StrokeWidth: 1,
		})
	}
	return cmds
}

func (e *Engine) compileAxis(cmds []DrawCommand, box Box) []DrawCommand {
	cmds = append(cmds, DrawCommand{
		Op: "path",
		Path: []PathCommand{
			{"M", box.X, box.Y},
			{"L", box.X, box.Y + box.Height},
			{"L", box.X + box.Width, box.Y + box.Height},
		},
		Stroke:      axisColor,
		StrokeWidth: 1,
	})

	// Value labels down the left edge.
	yr, ok := e.valueRange()
	if ok {
		for i := 0; i <= gridDivisions; i++ {
			frac := float64(i) / gridDivisions
			v := yr.Max - frac*yr.Span()
			cmds = append(cmds, DrawCommand{
				Op:    "text",
				Text:  formatValue(round2(v)),
				X:     box.X - 6,
				Y:     box.Y + box.Height*frac,
				Fill:  labelColor,
				Align: "right",
			})
		}
	}

	// Index labels along the bottom, series charts only.
	if sc, ok := e.scale.(*SeriesScale); ok {
		for i := 0; i < sc.MaxLen && i < len(e.spec.Labels); i++ {
			cmds = append(cmds, DrawCommand{
				Op:    "text",
				Text:  e.spec.Labels[i],
				X:     box.X + sc.XAt(i),
				Y:     box.Y + box.Height + 16,
				Fill:  labelColor,
				Align: "center",
			})
		}
	}
	return cmds
}

func (e *Engine) compileSeriesLines(cmds []DrawCommand, d *SeriesData, box Box, opacity float64) []DrawCommand {
	sc := e.scale.(*SeriesScale)
	baseline := box.Y + sc.YAt(sc.YRange.Min)

	for si := range d.Series {
		s := &d.Series[si]
		if !s.Visible || len(s.Values) == 0 {
			continue
		}

		path := make([]PathCommand, 0, len(s.Values)+2)
		for i, v := range s.Values {
			op := "L"
			if i == 0 {
				op = "M"
			}
			path = append(path, PathCommand{op, box.X + sc.XAt(i), box.Y + sc.YAt(v)})
		}

		if d.ChartKind == KindArea {
			fillPath := append(append([]PathCommand(nil), path...),
				PathCommand{"L", box.X + sc.XAt(len(s.Values) - 1), baseline},
				PathCommand{"L", box.X + sc.XAt(0), baseline},
				PathCommand{"Z"},
			)
			cmds = append(cmds, DrawCommand{
				Op:      "path",
				Path:    fillPath,
				Fill:    s.Color,
				Opacity: 0.3 * opacity,
			})
		}

		cmds = append(cmds, DrawCommand{
			Op:          "path",
			Path:        path,
			Stroke:      s.Color,
			StrokeWidth: 2,
			Opacity:     opacity,
		})

		for i, v := range s.Values {
			key := ElementKey{Series: si, Index: i}
			cmds = append(cmds, e.glyph(key, box.X+sc.XAt(i), box.Y+sc.YAt(v), s.Color, opacity))
		}
	}
	return cmds
}

func (e *Engine) compileBars(cmds []DrawCommand, d *SeriesData, box Box, opacity float64) []DrawCommand {
	sc := e.scale.(*SeriesScale)
	baseline := sc.YAt(sc.YRange.Min)
	subWidth := sc.ColumnWidth / float64(len(d.Series))

	for si := range d.Series {
		s := &d.Series[si]
		if !s.Visible {
			continue
		}
		for i, v := range s.Values {
			top := sc.YAt(v)
			height := (baseline - top) * e.barProgress()
			key := ElementKey{Series: si, Index: i}
			cmd := DrawCommand{
				Op:      "rect",
				Element: &key,
				X:       box.X + float64(i)*sc.ColumnWidth + float64(si)*subWidth + 1,
				Y:       box.Y + baseline - height,
				Width:   subWidth - 2,
				Height:  height,
				Fill:    s.Color,
				Opacity: opacity,
			}
			if e.sel.IsSelected(key) || e.sel.IsHovered(key) {
				cmd.Stroke = highlightColor
				cmd.StrokeWidth = 2
			}
			cmds = append(cmds, cmd)
		}
	}
	return cmds
}

func (e *Engine) compileSlices(cmds []DrawCommand, d *SliceData, box Box, opacity float64) []DrawCommand {
	sc := e.scale.(*PieScale)
	cx := box.X + sc.CX
	cy := box.Y + sc.CY
	radius := sc.Radius
	if e.spec.Animated {
		radius *= e.progress
		opacity = 1
	}

	for i := range d.Slices {
		sl := &d.Slices[i]
		if !sl.Visible {
			continue
		}
		key := ElementKey{Series: i, Index: -1}
		cmd := DrawCommand{
			Op:      "path",
			Element: &key,
			Path: []PathCommand{
				{"M", cx, cy},
				{"A", cx, cy, radius, sl.StartAngle, sl.EndAngle},
				{"Z"},
			},
			Fill:    sl.Color,
			Opacity: opacity,
		}
		if e.sel.IsSelected(key) || e.sel.IsHovered(key) {
			cmd.Stroke = highlightColor
			cmd.StrokeWidth = 2
		}
		cmds = append(cmds, cmd)
	}
	return cmds
}

func (e *Engine) compilePoints(cmds []DrawCommand, d *PointData, box Box, opacity float64) []DrawCommand {
	sc := e.scale.(*XYScale)
	for i := range d.Points {
		p := &d.Points[i]
		key := ElementKey{Series: 0, Index: i}
		cmds = append(cmds, e.glyph(key, box.X+sc.XAt(p.X), box.Y+sc.YAt(p.Y), p.Color, opacity))
	}
	return cmds
}

// glyph emits one data-point circle, enlarged and outlined when hovered or
// selected.
func (e *Engine) glyph(key ElementKey, x, y float64, color string, opacity float64) DrawCommand {
	k := key
	cmd := DrawCommand{
		Op:         "arc",
		Element:    &k,
		CX:         x,
		CY:         y,
		Radius:     glyphRadius,
		StartAngle: 0,
		EndAngle:   2 * math.Pi,
		Fill:       color,
		Opacity:    opacity,
	}
	if e.sel.IsSelected(key) || e.sel.IsHovered(key) {
		cmd.Radius = hoverGlyphRadius
		cmd.Stroke = highlightColor
		cmd.StrokeWidth = 2
	}
	return cmd
}

func (e *Engine) compileLegend(cmds []DrawCommand, box Box) []DrawCommand {
	entries := legendEntries(e.dataset)
	if len(entries) == 0 {
		return cmds
	}

	const (
		swatch  = 10.0
		rowStep = 18.0
	)
	x := box.X + box.Width - 120
	y := box.Y + 4
	for _, entry := range entries {
		opacity := 1.0
		if !entry.Visible {
			opacity = 0.35
		}
		cmds = append(cmds,
			DrawCommand{
				Op: "rect", X: x, Y: y, Width: swatch, Height: swatch,
				Fill: entry.Color, Opacity: opacity,
			},
			DrawCommand{
				Op: "text", Text: entry.Label, X: x + swatch + 6, Y: y + swatch - 1,
				Fill: labelColor, Align: "left", Opacity: opacity,
			},
		)
		y += rowStep
	}
	return cmds
}

func (e *Engine) compileTooltip(cmds []DrawCommand, box Box) []DrawCommand {
	// No text measurement on this side of the surface boundary; the width
	// estimate tracks the frontend's default font closely enough.
	width := float64(len(e.tooltip.Text))*7 + 12
	x := box.X + e.tooltip.AnchorX + 10
	y := box.Y + e.tooltip.AnchorY - 28

	return append(cmds,
		DrawCommand{
			Op: "rect", X: x, Y: y, Width: width, Height: 22,
			Fill: highlightColor, Opacity: 0.9,
		},
		DrawCommand{
			Op: "text", Text: e.tooltip.Text, X: x + 6, Y: y + 15,
			Fill: "#FFFFFF", Align: "left",
		},
	)
}

// valueRange returns the value-axis range for series and scatter charts.
func (e *Engine) valueRange() (Range, bool) {
	switch d := e.dataset.(type) {
	case *SeriesData:
		return d.YRange, true
	case *PointData:
		return d.YRange, true
	}
	return Range{}, false
}

func (e *Engine) barProgress() float64 {
	if e.spec.Animated {
		return e.progress
	}
	return 1
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
