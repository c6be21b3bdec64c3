package chart

import (
	"encoding/json"
	"fmt"
)

// Kind identifies the chart family. It selects which processor and scale the
// engine builds; all per-kind behavior downstream dispatches on the Dataset
// variant, not on Kind.
type Kind uint8

const (
	KindLine Kind = iota
	KindArea
	KindBar
	KindPie
	KindScatter
)

var kindNames = map[Kind]string{
	KindLine:    "line",
	KindArea:    "area",
	KindBar:     "bar",
	KindPie:     "pie",
	KindScatter: "scatter",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// ParseKind maps a configuration string to a Kind.
func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if name == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown chart kind %q", s)
}

// IsSeries reports whether the kind plots ordered series on a shared index axis.
func (k Kind) IsSeries() bool {
	return k == KindLine || k == KindArea || k == KindBar
}

// Margin is the fixed inset between the surface edge and the drawing box.
type Margin struct {
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
	Left   float64 `json:"left"`
}

// DefaultMargin leaves room for the y-axis labels on the left and the x-axis
// labels below.
var DefaultMargin = Margin{Top: 20, Right: 20, Bottom: 40, Left: 50}

// DefaultPalette is cycled when a spec supplies fewer colors than series.
var DefaultPalette = []string{
	"#4F46E5", "#10B981", "#F59E0B", "#EF4444", "#8B5CF6",
	"#06B6D4", "#EC4899", "#84CC16", "#F97316", "#6366F1",
}

// Options is the JSON configuration surface accepted at construction and
// reconfiguration. Data stays raw here; the validator parses it against Kind.
type Options struct {
	Kind         string          `json:"kind"`
	Data         json.RawMessage `json:"data"`
	Labels       []string        `json:"labels,omitempty"`
	Colors       []string        `json:"colors,omitempty"`
	Margin       *Margin         `json:"margin,omitempty"`
	ShowLegend   *bool           `json:"showLegend,omitempty"`
	ShowAxis     *bool           `json:"showAxis,omitempty"`
	ShowGrid     *bool           `json:"showGrid,omitempty"`
	ShowTooltips *bool           `json:"showTooltips,omitempty"`
	Interactive  *bool           `json:"interactive,omitempty"`
	Animated     *bool           `json:"animated,omitempty"`
}

// Spec is the resolved, immutable chart configuration. The engine replaces
// the whole snapshot on reconfiguration; nothing mutates a Spec in place.
type Spec struct {
	Kind         Kind
	Labels       []string
	Palette      []string
	Margin       Margin
	ShowLegend   bool
	ShowAxis     bool
	ShowGrid     bool
	ShowTooltips bool
	Interactive  bool
	Animated     bool
}

// NewSpec resolves Options into a Spec, applying defaults for every omitted
// field. The data payload is not touched here.
func NewSpec(opts Options) (*Spec, error) {
	kind, err := ParseKind(opts.Kind)
	if err != nil {
		return nil, err
	}

	spec := &Spec{
		Kind:         kind,
		Labels:       append([]string(nil), opts.Labels...),
		Palette:      append([]string(nil), opts.Colors...),
		Margin:       DefaultMargin,
		ShowLegend:   true,
		ShowAxis:     true,
		ShowGrid:     true,
		ShowTooltips: true,
		Interactive:  true,
		Animated:     false,
	}
	if len(spec.Palette) == 0 {
		spec.Palette = DefaultPalette
	}
	if opts.Margin != nil {
		spec.Margin = *opts.Margin
	}
	if opts.ShowLegend != nil {
		spec.ShowLegend = *opts.ShowLegend
	}
	if opts.ShowAxis != nil {
		spec.ShowAxis = *opts.ShowAxis
	}
	if opts.ShowGrid != nil {
		spec.ShowGrid = *opts.ShowGrid
	}
	if opts.ShowTooltips != nil {
		spec.ShowTooltips = *opts.ShowTooltips
	}
	if opts.Interactive != nil {
		spec.Interactive = *opts.Interactive
	}
	if opts.Animated != nil {
		spec.Animated = *opts.Animated
	}
	return spec, nil
}

// ValidateOptions checks that an options document would configure a chart
// successfully, without building an engine. Persistence layers call this
// before storing a snapshot.
func ValidateOptions(raw json.RawMessage) error {
	var opts Options
	if err := json.Unmarshal(raw, &opts); err != nil {
		return fmt.Errorf("decode options: %w", err)
	}
	spec, err := NewSpec(opts)
	if err != nil {
		return err
	}
	_, err = process(spec, opts.Data)
	return err
}

// Color returns the palette entry for a series or slice index, cycling when
// the palette is shorter than the data.
func (s *Spec) Color(index int) string {
	return s.Palette[index%len(s.Palette)]
}

// Label returns the configured label for an index, or the empty string.
func (s *Spec) Label(index int) string {
	if index < len(s.Labels) {
		return s.Labels[index]
	}
	return ""
}
