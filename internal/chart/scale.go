package chart

import "math"

// pieRadiusMargin keeps the pie rim clear of the drawing box edge.
const pieRadiusMargin = 10.0

// Scale maps processed data values onto drawing-box pixels. Like Dataset it
// is a closed variant; the scale kind always matches the dataset kind.
// All pixel results are relative to the drawing box origin.
type Scale interface {
	sealedScale()
}

// SeriesScale maps a categorical index axis and a shared value axis for
// line, area and bar charts.
type SeriesScale struct {
	Box         Box
	XStep       float64 // pixel distance between consecutive indices
	ColumnWidth float64 // pixel width of one bar column
	YRange      Range
	MaxLen      int
}

func (*SeriesScale) sealedScale() {}

// XAt returns the x pixel for an index. With a single-point axis every index
// maps to x=0.
func (s *SeriesScale) XAt(index int) float64 {
	return float64(index) * s.XStep
}

// YAt returns the y pixel for a value, inverted so larger values plot higher.
func (s *SeriesScale) YAt(v float64) float64 {
	return s.Box.Height - (v-s.YRange.Min)/s.YRange.Span()*s.Box.Height
}

// XYScale maps independent linear x and y axes for scatter charts.
type XYScale struct {
	Box    Box
	XRange Range
	YRange Range
}

func (*XYScale) sealedScale() {}

func (s *XYScale) XAt(x float64) float64 {
	return (x - s.XRange.Min) / s.XRange.Span() * s.Box.Width
}

func (s *XYScale) YAt(y float64) float64 {
	return s.Box.Height - (y-s.YRange.Min)/s.YRange.Span()*s.Box.Height
}

// PieScale positions the pie inside the drawing box.
type PieScale struct {
	CX     float64
	CY     float64
	Radius float64
}

func (*PieScale) sealedScale() {}

// computeScale derives the scale for a processed dataset and surface size.
// Degenerate denominators outside the single-point index case fail with
// *ScaleError rather than being clamped.
func computeScale(ds Dataset, width, height float64, m Margin) (Scale, error) {
	box := drawingBox(width, height, m)
	if box.IsEmpty() {
		return nil, &ScaleError{Kind: ds.Kind(), Reason: "margins leave no drawing area"}
	}

	switch d := ds.(type) {
	case *SeriesData:
		maxLen := d.MaxLen()
		if maxLen == 0 {
			return nil, &ScaleError{Kind: d.ChartKind, Reason: "series contain no values"}
		}
		if d.YRange.Span() <= 0 {
			return nil, &ScaleError{Kind: d.ChartKind, Reason: "degenerate value range"}
		}
		// A single-column axis collapses to x=0 instead of dividing by zero.
		step := 0.0
		if maxLen > 1 {
			step = box.Width / float64(maxLen-1)
		}
		return &SeriesScale{
			Box:         box,
			XStep:       step,
			ColumnWidth: box.Width / float64(maxLen),
			YRange:      d.YRange,
			MaxLen:      maxLen,
		}, nil

	case *SliceData:
		radius := math.Min(box.Width, box.Height)/2 - pieRadiusMargin
		if radius <= 0 {
			return nil, &ScaleError{Kind: KindPie, Reason: "drawing box too small for pie radius"}
		}
		return &PieScale{CX: box.Width / 2, CY: box.Height / 2, Radius: radius}, nil

	case *PointData:
		if d.XRange.Span() <= 0 {
			return nil, &ScaleError{Kind: KindScatter, Reason: "degenerate x range"}
		}
		if d.YRange.Span() <= 0 {
			return nil, &ScaleError{Kind: KindScatter, Reason: "degenerate y range"}
		}
		return &XYScale{Box: box, XRange: d.XRange, YRange: d.YRange}, nil
	}

	return nil, &ScaleError{Kind: ds.Kind(), Reason: "unknown dataset variant"}
}
