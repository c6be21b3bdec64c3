package chart

import (
	"errors"
	"testing"
)

var noMargin = Margin{}

func TestSeriesScaleSteps(t *testing.T) {
	spec := mustSpec(t, Options{Kind: "line", Margin: &noMargin})
	ds := mustProcess(t, spec, `[1, 3, 2]`)

	scale, err := computeScale(ds, 200, 110, spec.Margin)
	if err != nil {
		t.Fatal(err)
	}
	sc := scale.(*SeriesScale)

	if !almostEqual(sc.XStep, 100, 1e-9) {
		t.Errorf("XStep = %v, want 100", sc.XStep)
	}
	if !almostEqual(sc.XAt(1), 100, 1e-9) {
		t.Errorf("XAt(1) = %v", sc.XAt(1))
	}
	// YRange is [0, 3.3] over a 110px box: value 3 plots at 10px from the top.
	if !almostEqual(sc.YAt(3), 10, 1e-9) {
		t.Errorf("YAt(3) = %v, want 10", sc.YAt(3))
	}
	if !almostEqual(sc.YAt(0), 110, 1e-9) {
		t.Errorf("YAt(0) = %v, want 110 (baseline)", sc.YAt(0))
	}
}

func TestSeriesScaleSinglePoint(t *testing.T) {
	spec := mustSpec(t, Options{Kind: "line", Margin: &noMargin})
	ds := mustProcess(t, spec, `[5]`)

	scale, err := computeScale(ds, 200, 100, spec.Margin)
	if err != nil {
		t.Fatalf("single-point axis must not fail: %v", err)
	}
	sc := scale.(*SeriesScale)
	if sc.XStep != 0 || sc.XAt(0) != 0 {
		t.Errorf("single point should sit at x=0, got step %v", sc.XStep)
	}
}

func TestSeriesScaleDegenerateRange(t *testing.T) {
	spec := mustSpec(t, Options{Kind: "bar", Margin: &noMargin})
	ds := mustProcess(t, spec, `[0, 0]`)

	_, err := computeScale(ds, 200, 100, spec.Margin)
	var scaleErr *ScaleError
	if !errors.As(err, &scaleErr) {
		t.Fatalf("expected *ScaleError for all-zero values, got %v", err)
	}
}

func TestScatterScaleDegenerateAxis(t *testing.T) {
	spec := mustSpec(t, Options{Kind: "scatter", Margin: &noMargin})
	ds := mustProcess(t, spec, `[[1, 2], [1, 5]]`) // flat x axis

	_, err := computeScale(ds, 200, 100, spec.Margin)
	var scaleErr *ScaleError
	if !errors.As(err, &scaleErr) {
		t.Fatalf("expected *ScaleError for flat x range, got %v", err)
	}
}

func TestPieScaleRadius(t *testing.T) {
	spec := mustSpec(t, Options{Kind: "pie", Margin: &noMargin})
	ds := mustProcess(t, spec, `[1, 1]`)

	scale, err := computeScale(ds, 220, 220, spec.Margin)
	if err != nil {
		t.Fatal(err)
	}
	sc := scale.(*PieScale)
	if !almostEqual(sc.Radius, 100, 1e-9) {
		t.Errorf("radius = %v, want min(220,220)/2 - 10 = 100", sc.Radius)
	}
	if !almostEqual(sc.CX, 110, 1e-9) || !almostEqual(sc.CY, 110, 1e-9) {
		t.Errorf("center = (%v, %v), want (110, 110)", sc.CX, sc.CY)
	}
}

func TestPieScaleTooSmall(t *testing.T) {
	spec := mustSpec(t, Options{Kind: "pie", Margin: &noMargin})
	ds := mustProcess(t, spec, `[1, 1]`)

	_, err := computeScale(ds, 15, 15, spec.Margin)
	var scaleErr *ScaleError
	if !errors.As(err, &scaleErr) {
		t.Fatalf("expected *ScaleError for tiny surface, got %v", err)
	}
}

func TestScaleEmptyDrawingBox(t *testing.T) {
	spec := mustSpec(t, Options{Kind: "line"})
	ds := mustProcess(t, spec, `[1, 2]`)

	// Default margins consume the whole 40x40 surface.
	_, err := computeScale(ds, 40, 40, spec.Margin)
	var scaleErr *ScaleError
	if !errors.As(err, &scaleErr) {
		t.Fatalf("expected *ScaleError for empty drawing box, got %v", err)
	}
}
