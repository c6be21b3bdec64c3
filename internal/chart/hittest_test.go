package chart

import (
	"math"
	"reflect"
	"testing"
)

// lineFixture is the spec.md line scenario: data [1,3,2] over a 200x110
// drawing box, so value 3 at index 1 plots at pixel (100, 10).
func lineFixture(t *testing.T) (Dataset, Scale) {
	t.Helper()
	spec := mustSpec(t, Options{Kind: "line", Labels: []string{"a", "b", "c"}, Margin: &noMargin})
	ds := mustProcess(t, spec, `[1, 3, 2]`)
	scale, err := computeScale(ds, 200, 110, spec.Margin)
	if err != nil {
		t.Fatal(err)
	}
	return ds, scale
}

func TestHitTestLinePoint(t *testing.T) {
	ds, scale := lineFixture(t)

	desc := findElementAt(ds, scale, 100, 10)
	if desc == nil {
		t.Fatal("expected a hit at the value-3 point")
	}
	if desc.Series != 0 || desc.Index != 1 || desc.Value != 3 {
		t.Errorf("got {series:%d, index:%d, value:%v}, want {0, 1, 3}",
			desc.Series, desc.Index, desc.Value)
	}
}

func TestHitTestIdempotent(t *testing.T) {
	ds, scale := lineFixture(t)

	first := findElementAt(ds, scale, 100, 10)
	second := findElementAt(ds, scale, 100, 10)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated hit-test differs: %+v vs %+v", first, second)
	}
	if first.Key() != second.Key() {
		t.Error("descriptor keys differ across calls")
	}
}

func TestHitTestRoundTrip(t *testing.T) {
	ds, scale := lineFixture(t)
	sc := scale.(*SeriesScale)
	d := ds.(*SeriesData)

	for i, v := range d.Series[0].Values {
		px, py := sc.XAt(i), sc.YAt(v)
		desc := findElementAt(ds, scale, px, py)
		if desc == nil {
			t.Fatalf("no hit at rendered pixel of index %d", i)
		}
		if desc.Index != i || desc.Value != v {
			t.Errorf("round-trip index %d: got {index:%d, value:%v}", i, desc.Index, desc.Value)
		}
	}
}

func TestHitTestToleranceBoundary(t *testing.T) {
	ds, scale := lineFixture(t)

	// Exactly at tolerance distance is inclusive.
	if findElementAt(ds, scale, 110, 10) == nil {
		t.Error("hit at exactly 10px should match")
	}
	if findElementAt(ds, scale, 110.01, 10) != nil {
		t.Error("hit beyond 10px should miss")
	}
	if findElementAt(ds, scale, 150, 60) != nil {
		t.Error("hit far from every point should miss")
	}
}

func TestHitTestSeriesOrderTieBreak(t *testing.T) {
	// Two series sharing a point position: first series wins.
	spec := mustSpec(t, Options{Kind: "line", Margin: &noMargin})
	ds := mustProcess(t, spec, `[[5, 1], [5, 2]]`)
	scale, err := computeScale(ds, 200, 110, spec.Margin)
	if err != nil {
		t.Fatal(err)
	}
	sc := scale.(*SeriesScale)

	desc := findElementAt(ds, scale, sc.XAt(0), sc.YAt(5))
	if desc == nil || desc.Series != 0 {
		t.Errorf("expected series 0 to win the tie, got %+v", desc)
	}
}

func TestHitTestBars(t *testing.T) {
	spec := mustSpec(t, Options{Kind: "bar", Margin: &noMargin})
	ds := mustProcess(t, spec, `[[2, 4], [3, 1]]`)
	scale, err := computeScale(ds, 100, 110, spec.Margin)
	if err != nil {
		t.Fatal(err)
	}

	// YRange [0, 4.4] over 110px: value 2 tops at 60, value 3 at 35.
	cases := []struct {
		name       string
		x, y       float64
		wantSeries int
		wantMiss   bool
	}{
		{"first series wins shared column", 10, 70, 0, false},
		{"below first bar top, second spans it", 10, 40, 1, false},
		{"above both bars", 10, 20, 0, true},
		{"second column first series", 60, 50, 0, false},
		{"column out of range", 120, 50, 0, true},
		{"negative x", -5, 50, 0, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			desc := findElementAt(ds, scale, tc.x, tc.y)
			if tc.wantMiss {
				if desc != nil {
					t.Fatalf("expected miss, got %+v", desc)
				}
				return
			}
			if desc == nil {
				t.Fatal("expected hit")
			}
			if desc.Series != tc.wantSeries {
				t.Errorf("series = %d, want %d", desc.Series, tc.wantSeries)
			}
		})
	}
}

func TestHitTestPie(t *testing.T) {
	spec := mustSpec(t, Options{Kind: "pie", Labels: []string{"a", "b", "c"}, Margin: &noMargin})
	ds := mustProcess(t, spec, `[1, 1, 2]`)
	scale, err := computeScale(ds, 220, 220, spec.Margin)
	if err != nil {
		t.Fatal(err)
	}
	sc := scale.(*PieScale)

	at := func(angle, r float64) (float64, float64) {
		return sc.CX + math.Cos(angle)*r, sc.CY + math.Sin(angle)*r
	}

	cases := []struct {
		name      string
		angle, r  float64
		wantSlice int
		wantMiss  bool
	}{
		{"first quadrant", math.Pi / 4, 50, 0, false},
		{"second quadrant", 3 * math.Pi / 4, 50, 1, false},
		{"bottom half of partition", 3 * math.Pi / 2, 50, 2, false},
		{"on the rim", math.Pi / 4, sc.Radius, 0, false},
		{"beyond the rim", math.Pi / 4, sc.Radius + 1, 0, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			x, y := at(tc.angle, tc.r)
			desc := findElementAt(ds, scale, x, y)
			if tc.wantMiss {
				if desc != nil {
					t.Fatalf("expected miss, got %+v", desc)
				}
				return
			}
			if desc == nil {
				t.Fatal("expected hit")
			}
			if desc.Series != tc.wantSlice || desc.Index != -1 {
				t.Errorf("got {series:%d, index:%d}, want slice %d", desc.Series, desc.Index, tc.wantSlice)
			}
		})
	}
}

func TestHitTestPieBoundaryBelongsToNextSlice(t *testing.T) {
	spec := mustSpec(t, Options{Kind: "pie", Margin: &noMargin})
	ds := mustProcess(t, spec, `[1, 1, 2]`)
	scale, err := computeScale(ds, 220, 220, spec.Margin)
	if err != nil {
		t.Fatal(err)
	}
	sc := scale.(*PieScale)

	// Straight down from the center is exactly π/2: the end of slice 0 and
	// the start of slice 1. Half-open spans give it to slice 1.
	desc := findElementAt(ds, scale, sc.CX, sc.CY+50)
	if desc == nil || desc.Series != 1 {
		t.Errorf("boundary angle should belong to the next slice, got %+v", desc)
	}
}

func TestHitTestPieSkipsHiddenSlices(t *testing.T) {
	spec := mustSpec(t, Options{Kind: "pie", Margin: &noMargin})
	ds := mustProcess(t, spec, `[1, 1, 2]`)
	scale, err := computeScale(ds, 220, 220, spec.Margin)
	if err != nil {
		t.Fatal(err)
	}
	if err := toggleVisibility(ds, 0); err != nil {
		t.Fatal(err)
	}

	sc := scale.(*PieScale)
	x := sc.CX + math.Cos(math.Pi/4)*50
	y := sc.CY + math.Sin(math.Pi/4)*50
	if desc := findElementAt(ds, scale, x, y); desc != nil {
		t.Errorf("hidden slice should not hit, got %+v", desc)
	}
}

func TestHitTestScatterScenario(t *testing.T) {
	spec := mustSpec(t, Options{Kind: "scatter", Margin: &noMargin})
	ds := mustProcess(t, spec, `[[0, 0], [10, 10]]`)
	scale, err := computeScale(ds, 120, 120, spec.Margin)
	if err != nil {
		t.Fatal(err)
	}
	sc := scale.(*XYScale)

	px, py := sc.XAt(10), sc.YAt(10)
	desc := findElementAt(ds, scale, px, py)
	if desc == nil {
		t.Fatal("expected hit at pixel of (10, 10)")
	}
	if desc.Index != 1 || desc.X != 10 || desc.Y != 10 {
		t.Errorf("got {index:%d, x:%v, y:%v}, want second point", desc.Index, desc.X, desc.Y)
	}

	if miss := findElementAt(ds, scale, px-50, py); miss != nil {
		t.Errorf("pointer 50px away should miss, got %+v", miss)
	}
}
