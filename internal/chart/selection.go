package chart

import "sort"

// SelectionModel tracks the hovered element and the selected element set.
// Both are keyed by ElementKey: hit-testing builds a new descriptor on every
// call, so membership must compare stable identities, not descriptor
// pointers.
type SelectionModel struct {
	hovered  *ElementKey
	selected map[ElementKey]struct{}
}

func NewSelectionModel() *SelectionModel {
	return &SelectionModel{selected: make(map[ElementKey]struct{})}
}

// SetHovered records the element under the pointer, or clears the hover when
// d is nil. It reports whether the hovered element changed.
func (m *SelectionModel) SetHovered(d *Descriptor) bool {
	if d == nil {
		changed := m.hovered != nil
		m.hovered = nil
		return changed
	}
	key := d.Key()
	if m.hovered != nil && *m.hovered == key {
		return false
	}
	m.hovered = &key
	return true
}

// Hovered returns the hovered element key, or nil.
func (m *SelectionModel) Hovered() *ElementKey {
	return m.hovered
}

// ToggleSelected updates the selection with the element. Single-select
// (additive=false) replaces the selection; additive mode toggles membership.
func (m *SelectionModel) ToggleSelected(d *Descriptor, additive bool) {
	key := d.Key()
	if !additive {
		for k := range m.selected {
			delete(m.selected, k)
		}
		m.selected[key] = struct{}{}
		return
	}
	if _, ok := m.selected[key]; ok {
		delete(m.selected, key)
	} else {
		m.selected[key] = struct{}{}
	}
}

// IsSelected reports membership of an element key.
func (m *SelectionModel) IsSelected(key ElementKey) bool {
	_, ok := m.selected[key]
	return ok
}

// IsHovered reports whether the key is the hovered element.
func (m *SelectionModel) IsHovered(key ElementKey) bool {
	return m.hovered != nil && *m.hovered == key
}

// Clear removes all selection and hover state. It reports whether anything
// was cleared.
func (m *SelectionModel) Clear() bool {
	changed := m.hovered != nil || len(m.selected) > 0
	m.hovered = nil
	for k := range m.selected {
		delete(m.selected, k)
	}
	return changed
}

// Count returns the number of selected elements.
func (m *SelectionModel) Count() int {
	return len(m.selected)
}

// Keys returns the selected element keys in deterministic order.
func (m *SelectionModel) Keys() []ElementKey {
	keys := make([]ElementKey, 0, len(m.selected))
	for k := range m.selected {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Series != keys[j].Series {
			return keys[i].Series < keys[j].Series
		}
		return keys[i].Index < keys[j].Index
	})
	return keys
}
