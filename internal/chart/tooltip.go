package chart

import (
	"fmt"
	"strconv"
)

// TooltipState is derived whenever the hovered element changes. It has no
// lifecycle of its own beyond the current hover.
type TooltipState struct {
	Visible bool    `json:"visible"`
	AnchorX float64 `json:"anchorX"`
	AnchorY float64 `json:"anchorY"`
	Text    string  `json:"text"`
}

// FormatTooltip renders the tooltip text for a hit descriptor.
func FormatTooltip(d *Descriptor) string {
	switch d.Kind {
	case KindPie:
		return fmt.Sprintf("%s: %s (%.1f%%)", d.Label, formatValue(d.Value), d.Percentage)
	case KindScatter:
		return fmt.Sprintf("%s: (%s, %s)", d.Label, formatValue(d.X), formatValue(d.Y))
	default:
		return fmt.Sprintf("%s: %s", d.Label, formatValue(d.Value))
	}
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// tooltipFor builds the state anchored at the descriptor's pixel position.
func tooltipFor(d *Descriptor) TooltipState {
	return TooltipState{
		Visible: true,
		AnchorX: d.PX,
		AnchorY: d.PY,
		Text:    FormatTooltip(d),
	}
}
