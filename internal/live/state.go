package live

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/vizkit/vizkit/backend-go/internal/chart"
)

// ChartState holds the authoritative chart options for a room. Every update
// is applied to a working copy and validated before it commits, so the state
// can never hold options the engine would reject.
type ChartState struct {
	mu        sync.RWMutex
	options   chart.Options
	serverSeq int64
	dirty     bool
}

// NewChartState decodes the persisted options document into room state.
func NewChartState(raw json.RawMessage) (*ChartState, error) {
	var opts chart.Options
	if err := json.Unmarshal(raw, &opts); err != nil {
		return nil, fmt.Errorf("decode chart options: %w", err)
	}
	return &ChartState{options: opts}, nil
}

// Options returns the current options serialized for the wire.
func (cs *ChartState) Options() (json.RawMessage, error) {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	return json.Marshal(cs.options)
}

func (cs *ChartState) ServerSeq() int64 {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	return cs.serverSeq
}

// Dirty reports whether the state has unsaved updates, and MarkSaved clears
// the flag after a successful persist.
func (cs *ChartState) Dirty() bool {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	return cs.dirty
}

func (cs *ChartState) MarkSaved() {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	cs.dirty = false
}

// ApplyUpdate applies an update and returns the new server sequence. A
// rejected update leaves the committed state untouched.
func (cs *ChartState) ApplyUpdate(up Update) (int64, error) {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	next := cs.options
	if err := applyUpdateTo(&next, up); err != nil {
		return 0, err
	}

	raw, err := json.Marshal(next)
	if err != nil {
		return 0, fmt.Errorf("marshal options: %w", err)
	}
	if err := chart.ValidateOptions(raw); err != nil {
		return 0, err
	}

	cs.options = next
	cs.serverSeq++
	cs.dirty = true
	return cs.serverSeq, nil
}

func applyUpdateTo(opts *chart.Options, up Update) error {
	switch up.Type {
	case "chart.replace":
		var replaced chart.Options
		if err := json.Unmarshal(up.Options, &replaced); err != nil {
			return fmt.Errorf("invalid options: %w", err)
		}
		*opts = replaced
		return nil
	case "chart.setData":
		if len(up.Data) == 0 {
			return fmt.Errorf("setData requires data")
		}
		opts.Data = append(json.RawMessage(nil), up.Data...)
		return nil
	case "chart.setKind":
		if _, err := chart.ParseKind(up.Kind); err != nil {
			return err
		}
		opts.Kind = up.Kind
		return nil
	case "chart.setLabels":
		opts.Labels = append([]string(nil), up.Labels...)
		return nil
	case "chart.setColors":
		opts.Colors = append([]string(nil), up.Colors...)
		return nil
	case "chart.setFlag":
		return applyFlag(opts, up.Flag, up.Value)
	default:
		return fmt.Errorf("unknown update type: %s", up.Type)
	}
}

func applyFlag(opts *chart.Options, flag string, value *bool) error {
	if value == nil {
		return fmt.Errorf("setFlag requires a value")
	}
	v := *value
	switch flag {
	case "showLegend":
		opts.ShowLegend = &v
	case "showAxis":
		opts.ShowAxis = &v
	case "showGrid":
		opts.ShowGrid = &v
	case "showTooltips":
		opts.ShowTooltips = &v
	case "interactive":
		opts.Interactive = &v
	case "animated":
		opts.Animated = &v
	default:
		return fmt.Errorf("unknown flag: %s", flag)
	}
	return nil
}

// ServerTimestamp returns the current server timestamp in milliseconds.
func ServerTimestamp() int64 {
	return time.Now().UnixMilli()
}
