package chart

import (
	"encoding/json"
	"math"
	"testing"
)

func almostEqual(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}

func mustSpec(t *testing.T, opts Options) *Spec {
	t.Helper()
	spec, err := NewSpec(opts)
	if err != nil {
		t.Fatal(err)
	}
	return spec
}

func mustProcess(t *testing.T, spec *Spec, raw string) Dataset {
	t.Helper()
	ds, err := process(spec, json.RawMessage(raw))
	if err != nil {
		t.Fatal(err)
	}
	return ds
}

func TestSeriesRangePaddingAndFloor(t *testing.T) {
	spec := mustSpec(t, Options{Kind: "line", Labels: []string{"a", "b", "c"}})
	ds := mustProcess(t, spec, `[1, 3, 2]`).(*SeriesData)

	// Baseline anchors at zero, 10% padding, lower bound floored at zero.
	if !almostEqual(ds.YRange.Min, 0, 1e-9) {
		t.Errorf("YRange.Min = %v, want 0", ds.YRange.Min)
	}
	if !almostEqual(ds.YRange.Max, 3.3, 1e-9) {
		t.Errorf("YRange.Max = %v, want 3.3", ds.YRange.Max)
	}
}

func TestSeriesRangeContainsAllValues(t *testing.T) {
	cases := [][]float64{
		{1, 3, 2},
		{0.5},
		{100, 200, 50, 75},
		{0, 0, 5},
	}
	for _, values := range cases {
		raw, _ := json.Marshal(values)
		spec := mustSpec(t, Options{Kind: "bar"})
		ds := mustProcess(t, spec, string(raw)).(*SeriesData)

		if ds.YRange.Min < 0 {
			t.Errorf("%v: range min %v below zero", values, ds.YRange.Min)
		}
		for _, v := range values {
			if !ds.YRange.Contains(v) {
				t.Errorf("%v: value %v outside range [%v, %v]",
					values, v, ds.YRange.Min, ds.YRange.Max)
			}
		}
	}
}

func TestSeriesLabelsAndPalette(t *testing.T) {
	spec := mustSpec(t, Options{
		Kind:   "line",
		Labels: []string{"first"},
		Colors: []string{"#111111", "#222222"},
	})
	ds := mustProcess(t, spec, `[[1, 2], [3, 4], [5, 6]]`).(*SeriesData)

	if got := ds.Series[0].Label; got != "first" {
		t.Errorf("series 0 label = %q", got)
	}
	if got := ds.Series[1].Label; got != "Series 2" {
		t.Errorf("series 1 label = %q, want default", got)
	}
	if got := ds.Series[2].Label; got != "Series 3" {
		t.Errorf("series 2 label = %q, want default", got)
	}

	// Palette cycles when shorter than the series count.
	if ds.Series[0].Color != "#111111" || ds.Series[1].Color != "#222222" {
		t.Error("palette not applied in order")
	}
	if ds.Series[2].Color != "#111111" {
		t.Errorf("series 2 color = %q, want cycled %q", ds.Series[2].Color, "#111111")
	}

	for i, s := range ds.Series {
		if !s.Visible {
			t.Errorf("series %d should start visible", i)
		}
	}
}

func TestPiePartition(t *testing.T) {
	spec := mustSpec(t, Options{Kind: "pie", Labels: []string{"a", "b", "c"}})
	ds := mustProcess(t, spec, `[1, 1, 2]`).(*SliceData)

	wantPct := []float64{25, 25, 50}
	wantStart := []float64{0, math.Pi / 2, math.Pi}
	wantEnd := []float64{math.Pi / 2, math.Pi, 2 * math.Pi}

	for i, sl := range ds.Slices {
		if !almostEqual(sl.Percentage, wantPct[i], 1e-6) {
			t.Errorf("slice %d percentage = %v, want %v", i, sl.Percentage, wantPct[i])
		}
		if !almostEqual(sl.StartAngle, wantStart[i], 1e-9) {
			t.Errorf("slice %d start = %v, want %v", i, sl.StartAngle, wantStart[i])
		}
		if !almostEqual(sl.EndAngle, wantEnd[i], 1e-9) {
			t.Errorf("slice %d end = %v, want %v", i, sl.EndAngle, wantEnd[i])
		}
	}
}

func TestPiePartitionProperty(t *testing.T) {
	inputs := [][]float64{
		{1, 1, 2},
		{3, 7},
		{0.1, 0.2, 0.3, 0.4},
		{5},
		{1, 0, 2}, // zero-valued slice is a legal degenerate span
	}
	for _, values := range inputs {
		raw, _ := json.Marshal(values)
		spec := mustSpec(t, Options{Kind: "pie"})
		ds := mustProcess(t, spec, string(raw)).(*SliceData)

		pctSum := 0.0
		prevEnd := 0.0
		for i, sl := range ds.Slices {
			pctSum += sl.Percentage
			if sl.StartAngle < prevEnd-1e-9 {
				t.Errorf("%v: slice %d starts before previous end", values, i)
			}
			if sl.EndAngle < sl.StartAngle {
				t.Errorf("%v: slice %d has negative span", values, i)
			}
			prevEnd = sl.EndAngle
		}
		if !almostEqual(pctSum, 100, 1e-6) {
			t.Errorf("%v: percentages sum to %v", values, pctSum)
		}
		last := ds.Slices[len(ds.Slices)-1]
		if !almostEqual(last.EndAngle, 2*math.Pi, 1e-9) {
			t.Errorf("%v: final end angle %v, want 2π", values, last.EndAngle)
		}
	}
}

func TestPieZeroTotalFails(t *testing.T) {
	spec := mustSpec(t, Options{Kind: "pie"})
	_, err := process(spec, json.RawMessage(`[0, 0, 0]`))
	if err == nil {
		t.Fatal("expected error for zero total")
	}
	if _, ok := err.(*DataShapeError); !ok {
		t.Fatalf("expected *DataShapeError, got %T", err)
	}
}

func TestScatterRangesNoZeroFloor(t *testing.T) {
	spec := mustSpec(t, Options{Kind: "scatter"})
	ds := mustProcess(t, spec, `[[-5, -10], [5, 10]]`).(*PointData)

	// 10% of span on both ends, negatives preserved.
	if !almostEqual(ds.XRange.Min, -6, 1e-9) || !almostEqual(ds.XRange.Max, 6, 1e-9) {
		t.Errorf("XRange = [%v, %v], want [-6, 6]", ds.XRange.Min, ds.XRange.Max)
	}
	if !almostEqual(ds.YRange.Min, -12, 1e-9) || !almostEqual(ds.YRange.Max, 12, 1e-9) {
		t.Errorf("YRange = [%v, %v], want [-12, 12]", ds.YRange.Min, ds.YRange.Max)
	}
}

func TestDatasetElementCounts(t *testing.T) {
	spec := mustSpec(t, Options{Kind: "line"})
	series := mustProcess(t, spec, `[[1, 2, 3], [4, 5]]`)
	if series.ElementCount() != 5 {
		t.Errorf("series element count = %d", series.ElementCount())
	}

	pieSpec := mustSpec(t, Options{Kind: "pie"})
	pie := mustProcess(t, pieSpec, `[1, 2]`)
	if pie.ElementCount() != 2 {
		t.Errorf("pie element count = %d", pie.ElementCount())
	}

	scatterSpec := mustSpec(t, Options{Kind: "scatter"})
	scatter := mustProcess(t, scatterSpec, `[[0, 0], [1, 1], [2, 2]]`)
	if scatter.ElementCount() != 3 {
		t.Errorf("scatter element count = %d", scatter.ElementCount())
	}
}
