package chart

import (
	"encoding/json"
	"fmt"
	"math"
)

// paddingRatio is added to each end of a computed data range before scaling
// so data never plots flush against the drawing box edges.
const paddingRatio = 0.1

// process validates raw data and normalizes it into the Dataset variant for
// the spec's kind. The returned dataset is complete; callers swap it in
// wholesale.
func process(spec *Spec, raw json.RawMessage) (Dataset, error) {
	parsed, err := parseData(spec.Kind, raw)
	if err != nil {
		return nil, err
	}

	switch {
	case spec.Kind.IsSeries():
		return processSeries(spec, parsed.rows)
	case spec.Kind == KindPie:
		return processSlices(spec, parsed.values)
	default:
		return processPoints(spec, parsed.pairs)
	}
}

// processSeries builds one Series per input row and the shared padded
// y-range. The range baseline is anchored at zero before padding, and the
// padded lower bound is floored at zero, so series charts always grow from
// the axis.
func processSeries(spec *Spec, rows [][]float64) (*SeriesData, error) {
	series := make([]Series, len(rows))
	lo, hi := math.Inf(1), math.Inf(-1)
	for i, row := range rows {
		for _, v := range row {
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
		label := spec.Label(i)
		if label == "" {
			label = fmt.Sprintf("Series %d", i+1)
		}
		series[i] = Series{
			Values:  append([]float64(nil), row...),
			Color:   spec.Color(i),
			Label:   label,
			Visible: true,
		}
	}

	base := math.Min(0, lo)
	pad := (hi - base) * paddingRatio
	return &SeriesData{
		ChartKind: spec.Kind,
		Series:    series,
		YRange: Range{
			Min: math.Max(0, base-pad),
			Max: hi + pad,
		},
	}, nil
}

// processSlices assigns percentages and contiguous angular spans in input
// order. A running angle keeps slices gap-free; the final end angle lands on
// 2π up to accumulated floating-point error.
func processSlices(spec *Spec, values []float64) (*SliceData, error) {
	total := 0.0
	for _, v := range values {
		total += v
	}
	if total <= 0 {
		return nil, shapeErr(KindPie, "slice values sum to zero")
	}

	slices := make([]Slice, len(values))
	angle := 0.0
	for i, v := range values {
		span := v / total * 2 * math.Pi
		slices[i] = Slice{
			Value:      v,
			Percentage: v / total * 100,
			StartAngle: angle,
			EndAngle:   angle + span,
			Color:      spec.Color(i),
			Label:      spec.Label(i),
			Visible:    true,
		}
		angle += span
	}
	return &SliceData{Slices: slices, Total: total}, nil
}

// processPoints computes independent padded x and y ranges. Scatter values
// may be negative, so there is no zero floor here.
func processPoints(spec *Spec, pairs [][2]float64) (*PointData, error) {
	points := make([]Point, len(pairs))
	xlo, xhi := math.Inf(1), math.Inf(-1)
	ylo, yhi := math.Inf(1), math.Inf(-1)
	for i, p := range pairs {
		xlo = math.Min(xlo, p[0])
		xhi = math.Max(xhi, p[0])
		ylo = math.Min(ylo, p[1])
		yhi = math.Max(yhi, p[1])
		points[i] = Point{
			X:     p[0],
			Y:     p[1],
			Color: spec.Color(i),
			Label: spec.Label(i),
		}
	}

	return &PointData{
		Points: points,
		XRange: paddedRange(xlo, xhi),
		YRange: paddedRange(ylo, yhi),
	}, nil
}

func paddedRange(lo, hi float64) Range {
	pad := (hi - lo) * paddingRatio
	return Range{Min: lo - pad, Max: hi + pad}
}
