package chart

import "testing"

func TestFormatTooltip(t *testing.T) {
	cases := []struct {
		name string
		desc Descriptor
		want string
	}{
		{
			"series value",
			Descriptor{Kind: KindLine, Label: "Revenue", Value: 42},
			"Revenue: 42",
		},
		{
			"series fractional value",
			Descriptor{Kind: KindBar, Label: "Series 1", Value: 3.5},
			"Series 1: 3.5",
		},
		{
			"pie slice with percentage",
			Descriptor{Kind: KindPie, Label: "North", Value: 2, Percentage: 50},
			"North: 2 (50.0%)",
		},
		{
			"pie percentage rounds to one decimal",
			Descriptor{Kind: KindPie, Label: "East", Value: 1, Percentage: 33.333333},
			"East: 1 (33.3%)",
		},
		{
			"scatter coordinates",
			Descriptor{Kind: KindScatter, Label: "p", X: 10, Y: -2.5},
			"p: (10, -2.5)",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := FormatTooltip(&tc.desc); got != tc.want {
				t.Errorf("FormatTooltip = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestTooltipForAnchorsAtPixel(t *testing.T) {
	desc := &Descriptor{Kind: KindLine, Label: "a", Value: 3, PX: 100, PY: 10}
	tip := tooltipFor(desc)
	if !tip.Visible {
		t.Error("tooltip should be visible")
	}
	if tip.AnchorX != 100 || tip.AnchorY != 10 {
		t.Errorf("anchor = (%v, %v)", tip.AnchorX, tip.AnchorY)
	}
	if tip.Text != "a: 3" {
		t.Errorf("text = %q", tip.Text)
	}
}
