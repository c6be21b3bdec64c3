package chart

import "math"

// hitTolerance is the maximum pixel distance, inclusive, for a pointer to be
// considered on a rendered point.
const hitTolerance = 10.0

// Descriptor identifies the logical data element under a pointer position.
// A fresh descriptor is built on every hit-test; stable identity comes from
// Key(), never from the descriptor pointer.
type Descriptor struct {
	Kind       Kind    `json:"kind"`
	Series     int     `json:"series"` // series index; slice index for pie
	Index      int     `json:"index"`  // point index within the series; -1 for pie
	Value      float64 `json:"value"`
	X          float64 `json:"x"` // data coordinates, scatter only
	Y          float64 `json:"y"`
	Label      string  `json:"label"`
	Percentage float64 `json:"percentage"` // pie only
	PX         float64 `json:"px"`         // pixel anchor, drawing-box local
	PY         float64 `json:"py"`
}

// ElementKey is the stable composite identity of a data element. Selection
// and hover state are keyed by it so that descriptors rebuilt across
// hit-test calls still compare equal.
type ElementKey struct {
	Series int `json:"series"`
	Index  int `json:"index"`
}

// Key returns the element's stable identity.
func (d *Descriptor) Key() ElementKey {
	return ElementKey{Series: d.Series, Index: d.Index}
}

// findElementAt inverse-maps a drawing-box coordinate to the nearest logical
// data element, or nil when nothing is within tolerance or bounds. It has no
// side effects. Matches are resolved first-wins: series order, then index
// order (input order for slices and scatter points) — a deliberate tie-break.
// Hidden series and slices are skipped.
func findElementAt(ds Dataset, scale Scale, lx, ly float64) *Descriptor {
	switch d := ds.(type) {
	case *SeriesData:
		sc := scale.(*SeriesScale)
		if d.ChartKind == KindBar {
			return hitTestBars(d, sc, lx, ly)
		}
		return hitTestSeriesPoints(d, sc, lx, ly)
	case *SliceData:
		return hitTestSlices(d, scale.(*PieScale), lx, ly)
	case *PointData:
		return hitTestPoints(d, scale.(*XYScale), lx, ly)
	}
	return nil
}

func hitTestSeriesPoints(d *SeriesData, sc *SeriesScale, lx, ly float64) *Descriptor {
	for si := range d.Series {
		s := &d.Series[si]
		if !s.Visible {
			continue
		}
		for i, v := range s.Values {
			px := sc.XAt(i)
			py := sc.YAt(v)
			if dist(lx, ly, px, py) <= hitTolerance {
				return &Descriptor{
					Kind:   d.ChartKind,
					Series: si,
					Index:  i,
					Value:  v,
					Label:  s.Label,
					PX:     px,
					PY:     py,
				}
			}
		}
	}
	return nil
}

func hitTestBars(d *SeriesData, sc *SeriesScale, lx, ly float64) *Descriptor {
	if lx < 0 || ly < 0 || ly > sc.Box.Height {
		return nil
	}
	col := int(math.Floor(lx / sc.ColumnWidth))
	if col < 0 || col >= sc.MaxLen {
		return nil
	}

	baseline := sc.YAt(sc.YRange.Min)
	for si := range d.Series {
		s := &d.Series[si]
		if !s.Visible || col >= len(s.Values) {
			continue
		}
		top := sc.YAt(s.Values[col])
		lo := math.Min(top, baseline)
		hi := math.Max(top, baseline)
		if ly >= lo && ly <= hi {
			return &Descriptor{
				Kind:   KindBar,
				Series: si,
				Index:  col,
				Value:  s.Values[col],
				Label:  s.Label,
				PX:     float64(col)*sc.ColumnWidth + sc.ColumnWidth/2,
				PY:     top,
			}
		}
	}
	return nil
}

func hitTestSlices(d *SliceData, sc *PieScale, lx, ly float64) *Descriptor {
	dx := lx - sc.CX
	dy := ly - sc.CY
	if math.Hypot(dx, dy) > sc.Radius {
		return nil
	}

	angle := math.Atan2(dy, dx)
	if angle < 0 {
		angle += 2 * math.Pi
	}
	for i := range d.Slices {
		sl := &d.Slices[i]
		if !sl.Visible {
			continue
		}
		if angle >= sl.StartAngle && angle < sl.EndAngle {
			mid := (sl.StartAngle + sl.EndAngle) / 2
			return &Descriptor{
				Kind:       KindPie,
				Series:     i,
				Index:      -1,
				Value:      sl.Value,
				Label:      sl.Label,
				Percentage: sl.Percentage,
				PX:         sc.CX + math.Cos(mid)*sc.Radius*0.6,
				PY:         sc.CY + math.Sin(mid)*sc.Radius*0.6,
			}
		}
	}
	return nil
}

func hitTestPoints(d *PointData, sc *XYScale, lx, ly float64) *Descriptor {
	for i := range d.Points {
		p := &d.Points[i]
		px := sc.XAt(p.X)
		py := sc.YAt(p.Y)
		if dist(lx, ly, px, py) <= hitTolerance {
			return &Descriptor{
				Kind:   KindScatter,
				Series: 0,
				Index:  i,
				Value:  p.Y,
				X:      p.X,
				Y:      p.Y,
				Label:  p.Label,
				PX:     px,
				PY:     py,
			}
		}
	}
	return nil
}
