package chart

// Dataset is the processed, render-ready form of a chart's data. It is a
// closed variant: exactly one of SeriesData, SliceData or PointData, matching
// the chart family. The engine replaces the whole dataset on every SetData;
// there is no incremental patching.
type Dataset interface {
	Kind() Kind
	// ElementCount is the total number of hit-testable elements.
	ElementCount() int

	sealed()
}

// Range is a padded value interval for one axis.
type Range struct {
	Min float64
	Max float64
}

// Span returns Max - Min.
func (r Range) Span() float64 {
	return r.Max - r.Min
}

// Contains reports whether v lies inside the range, bounds inclusive.
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// Series is one ordered value sequence of a line, area or bar chart. Series
// in the same chart share the label axis by index but are independent in
// length.
type Series struct {
	Values  []float64
	Color   string
	Label   string
	Visible bool
}

// SeriesData is the processed form of line, area and bar charts.
type SeriesData struct {
	ChartKind Kind
	Series    []Series
	YRange    Range
}

func (d *SeriesData) Kind() Kind { return d.ChartKind }

func (d *SeriesData) ElementCount() int {
	n := 0
	for _, s := range d.Series {
		n += len(s.Values)
	}
	return n
}

func (*SeriesData) sealed() {}

// MaxLen returns the longest series length. It defines the shared index axis.
func (d *SeriesData) MaxLen() int {
	n := 0
	for _, s := range d.Series {
		if len(s.Values) > n {
			n = len(s.Values)
		}
	}
	return n
}

// Slice is one pie segment. Slices partition [0, 2π) contiguously in input
// order; that order is the tie-break for angular hit-testing.
type Slice struct {
	Value      float64
	Percentage float64
	StartAngle float64
	EndAngle   float64
	Color      string
	Label      string
	Visible    bool
}

// SliceData is the processed form of pie charts.
type SliceData struct {
	Slices []Slice
	Total  float64
}

func (d *SliceData) Kind() Kind        { return KindPie }
func (d *SliceData) ElementCount() int { return len(d.Slices) }
func (*SliceData) sealed()             {}

// Point is one scatter coordinate pair.
type Point struct {
	X     float64
	Y     float64
	Color string
	Label string
}

// PointData is the processed form of scatter charts.
type PointData struct {
	Points []Point
	XRange Range
	YRange Range
}

func (d *PointData) Kind() Kind        { return KindScatter }
func (d *PointData) ElementCount() int { return len(d.Points) }
func (*PointData) sealed()             {}
