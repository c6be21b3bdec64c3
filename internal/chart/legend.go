package chart

import "fmt"

// LegendEntry is a read-only view over one series or slice.
type LegendEntry struct {
	Color   string `json:"color"`
	Label   string `json:"label"`
	Visible bool   `json:"visible"`
}

// legendEntries derives one entry per series or slice. Scatter charts carry
// no legend.
func legendEntries(ds Dataset) []LegendEntry {
	switch d := ds.(type) {
	case *SeriesData:
		entries := make([]LegendEntry, len(d.Series))
		for i, s := range d.Series {
			entries[i] = LegendEntry{Color: s.Color, Label: s.Label, Visible: s.Visible}
		}
		return entries
	case *SliceData:
		entries := make([]LegendEntry, len(d.Slices))
		for i, s := range d.Slices {
			entries[i] = LegendEntry{Color: s.Color, Label: s.Label, Visible: s.Visible}
		}
		return entries
	}
	return nil
}

// toggleVisibility flips the visible flag of a series or slice. Hidden
// entries are skipped by hit-testing and rendering, but ranges and scales
// are left alone so the axes do not jump.
func toggleVisibility(ds Dataset, index int) error {
	switch d := ds.(type) {
	case *SeriesData:
		if index < 0 || index >= len(d.Series) {
			return fmt.Errorf("legend index %d out of range", index)
		}
		d.Series[index].Visible = !d.Series[index].Visible
		return nil
	case *SliceData:
		if index < 0 || index >= len(d.Slices) {
			return fmt.Errorf("legend index %d out of range", index)
		}
		d.Slices[index].Visible = !d.Slices[index].Visible
		return nil
	}
	return fmt.Errorf("%s charts have no legend entries", ds.Kind())
}
