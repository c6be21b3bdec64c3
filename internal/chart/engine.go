package chart

import (
	"encoding/json"
	"fmt"
)

// EventType names the interaction events the engine emits to its host.
type EventType string

const (
	EventDataPointHover   EventType = "dataPointHover"
	EventDataPointSelect  EventType = "dataPointSelect"
	EventSelectionCleared EventType = "selectionCleared"
	EventError            EventType = "error"
)

// Event is delivered synchronously to the engine's listener.
type Event struct {
	Type       EventType    `json:"type"`
	Descriptor *Descriptor  `json:"descriptor,omitempty"`
	Selection  []ElementKey `json:"selection,omitempty"`
	Message    string       `json:"message,omitempty"`
	Err        error        `json:"-"`
}

// Listener receives engine events. It must not call back into the engine.
type Listener func(Event)

// PointerEvent is a pointer interaction in surface-local coordinates.
type PointerEvent struct {
	Type       string  `json:"type"` // "move", "down", "up"
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	CtrlOrMeta bool    `json:"ctrlOrMeta"`
}

// Engine owns the chart state: the immutable spec snapshot, the processed
// dataset, the derived scale, and the selection and tooltip state. It never
// draws; it exposes the data a renderer needs and compiles draw commands for
// an external surface.
//
// All operations are synchronous and single-threaded: reconfiguration fully
// replaces processed state before returning, so a subsequent hit-test or
// render never observes a half-updated model.
type Engine struct {
	spec    *Spec
	dataset Dataset
	scale   Scale

	sel     *SelectionModel
	tooltip TooltipState

	width  float64
	height float64

	// progress is advanced by the external tween scheduler; the engine only
	// reads it while compiling draw commands.
	progress float64

	listener Listener
}

// NewEngine creates an engine with no chart configured. The listener may be
// nil.
func NewEngine(listener Listener) *Engine {
	return &Engine{
		sel:      NewSelectionModel(),
		progress: 1,
		listener: listener,
	}
}

// Configure replaces the whole chart from a JSON options payload. On any
// validation or scale failure the previously valid state is left untouched
// and the error is both returned and emitted as an error event.
func (e *Engine) Configure(optionsJSON []byte, width, height float64) error {
	var opts Options
	if err := json.Unmarshal(optionsJSON, &opts); err != nil {
		return e.fail(fmt.Errorf("parse chart options: %w", err))
	}

	spec, err := NewSpec(opts)
	if err != nil {
		return e.fail(err)
	}
	dataset, err := process(spec, opts.Data)
	if err != nil {
		return e.fail(err)
	}
	scale, err := computeScale(dataset, width, height, spec.Margin)
	if err != nil {
		return e.fail(err)
	}

	e.spec = spec
	e.dataset = dataset
	e.scale = scale
	e.width = width
	e.height = height
	e.resetInteraction()
	return nil
}

// SetData replaces the chart data under the current spec. Like Configure it
// is new-state-or-no-state.
func (e *Engine) SetData(raw json.RawMessage) error {
	if e.spec == nil {
		return e.fail(fmt.Errorf("chart is not configured"))
	}

	dataset, err := process(e.spec, raw)
	if err != nil {
		return e.fail(err)
	}
	scale, err := computeScale(dataset, e.width, e.height, e.spec.Margin)
	if err != nil {
		return e.fail(err)
	}

	e.dataset = dataset
	e.scale = scale
	e.resetInteraction()
	return nil
}

// Resize recomputes the scale for a new surface size. Processed data and
// selection survive a resize.
func (e *Engine) Resize(width, height float64) error {
	if e.dataset == nil {
		e.width, e.height = width, height
		return nil
	}
	scale, err := computeScale(e.dataset, width, height, e.spec.Margin)
	if err != nil {
		return e.fail(err)
	}
	e.scale = scale
	e.width, e.height = width, height
	return nil
}

// SetProgress stores the externally-owned animation progress, clamped to
// [0, 1].
func (e *Engine) SetProgress(p float64) {
	if p < 0 {
		p = 0
	}
	if p > 1 {
		p = 1
	}
	e.progress = p
}

// Progress returns the current animation progress.
func (e *Engine) Progress() float64 {
	return e.progress
}

// HitTest resolves a surface coordinate to the data element under it, or nil.
// Coordinates are translated into the drawing box before per-kind testing.
// The call has no side effects.
func (e *Engine) HitTest(x, y float64) *Descriptor {
	if e.dataset == nil {
		return nil
	}
	return findElementAt(e.dataset, e.scale, x-e.spec.Margin.Left, y-e.spec.Margin.Top)
}

// HandlePointer updates hover, selection and tooltip state from a pointer
// event. Failures inside hit-testing are recovered and reported as an
// InteractionError event instead of crashing the host.
func (e *Engine) HandlePointer(ev PointerEvent) {
	if e.dataset == nil || !e.spec.Interactive {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			e.emit(Event{
				Type: EventError,
				Err:  &InteractionError{Op: "pointer " + ev.Type, Err: fmt.Errorf("%v", r)},
			})
		}
	}()

	hit := e.HitTest(ev.X, ev.Y)

	switch ev.Type {
	case "move":
		changed := e.sel.SetHovered(hit)
		if hit == nil {
			e.tooltip = TooltipState{}
			return
		}
		if changed {
			if e.spec.ShowTooltips {
				e.tooltip = tooltipFor(hit)
			}
			e.emit(Event{Type: EventDataPointHover, Descriptor: hit})
		}

	case "down":
		if hit != nil {
			e.sel.ToggleSelected(hit, ev.CtrlOrMeta)
			e.emit(Event{Type: EventDataPointSelect, Descriptor: hit, Selection: e.sel.Keys()})
			return
		}
		if e.sel.Count() > 0 {
			e.sel.Clear()
			e.emit(Event{Type: EventSelectionCleared})
		}
	}
}

// HandleKey processes keyboard input. Escape clears the selection and hides
// the tooltip.
func (e *Engine) HandleKey(key string) {
	if key != "Escape" || e.dataset == nil {
		return
	}
	cleared := e.sel.Clear()
	e.tooltip = TooltipState{}
	if cleared {
		e.emit(Event{Type: EventSelectionCleared})
	}
}

// Spec returns the active configuration snapshot, or nil.
func (e *Engine) Spec() *Spec {
	return e.spec
}

// Dataset returns the processed data the renderer reads. Render passes must
// not mutate it.
func (e *Engine) Dataset() Dataset {
	return e.dataset
}

// Scale returns the active scale, or nil.
func (e *Engine) Scale() Scale {
	return e.scale
}

// Tooltip returns the current tooltip state.
func (e *Engine) Tooltip() TooltipState {
	return e.tooltip
}

// SelectedKeys returns the selected element keys in deterministic order.
func (e *Engine) SelectedKeys() []ElementKey {
	return e.sel.Keys()
}

// Legend returns the derived legend entries.
func (e *Engine) Legend() []LegendEntry {
	if e.dataset == nil {
		return nil
	}
	return legendEntries(e.dataset)
}

// ToggleLegendEntry flips visibility of one series or slice. The hidden
// entry is skipped by hit-testing and rendering; ranges and scales stay as
// they are.
func (e *Engine) ToggleLegendEntry(index int) error {
	if e.dataset == nil {
		return fmt.Errorf("chart is not configured")
	}
	return toggleVisibility(e.dataset, index)
}

func (e *Engine) resetInteraction() {
	e.sel.Clear()
	e.tooltip = TooltipState{}
}

func (e *Engine) emit(ev Event) {
	if e.listener != nil {
		e.listener(ev)
	}
}

func (e *Engine) fail(err error) error {
	e.emit(Event{Type: EventError, Message: err.Error(), Err: err})
	return err
}
