package chart

import "testing"

func TestSelectionKeyedByStableIdentity(t *testing.T) {
	m := NewSelectionModel()

	// Two descriptors from independent hit-test calls, same logical element.
	first := &Descriptor{Kind: KindLine, Series: 0, Index: 1, Value: 3}
	second := &Descriptor{Kind: KindLine, Series: 0, Index: 1, Value: 3}

	m.ToggleSelected(first, false)
	if !m.IsSelected(second.Key()) {
		t.Error("freshly built descriptor for the same element must compare selected")
	}

	// Additive toggle on the rebuilt descriptor removes the same entry.
	m.ToggleSelected(second, true)
	if m.Count() != 0 {
		t.Errorf("toggle should have removed the entry, count = %d", m.Count())
	}
}

func TestSelectionSingleVsAdditive(t *testing.T) {
	m := NewSelectionModel()
	a := &Descriptor{Series: 0, Index: 0}
	b := &Descriptor{Series: 0, Index: 1}
	c := &Descriptor{Series: 1, Index: 0}

	m.ToggleSelected(a, false)
	m.ToggleSelected(b, true)
	m.ToggleSelected(c, true)
	if m.Count() != 3 {
		t.Fatalf("additive selection count = %d, want 3", m.Count())
	}

	// Single-select replaces everything.
	m.ToggleSelected(b, false)
	if m.Count() != 1 || !m.IsSelected(b.Key()) {
		t.Errorf("single select should leave only b, count = %d", m.Count())
	}

	keys := m.Keys()
	if len(keys) != 1 || keys[0] != (ElementKey{Series: 0, Index: 1}) {
		t.Errorf("keys = %v", keys)
	}
}

func TestSelectionHover(t *testing.T) {
	m := NewSelectionModel()
	d := &Descriptor{Series: 2, Index: 5}

	if !m.SetHovered(d) {
		t.Error("first hover should report a change")
	}
	if m.SetHovered(d) {
		t.Error("re-hovering the same element should not report a change")
	}
	if !m.IsHovered(d.Key()) {
		t.Error("element should be hovered")
	}
	if !m.SetHovered(nil) {
		t.Error("clearing hover should report a change")
	}
	if m.Hovered() != nil {
		t.Error("hover should be nil after clearing")
	}
}

func TestSelectionClear(t *testing.T) {
	m := NewSelectionModel()
	if m.Clear() {
		t.Error("clearing an empty model should report no change")
	}

	m.ToggleSelected(&Descriptor{Series: 0, Index: 0}, false)
	m.SetHovered(&Descriptor{Series: 0, Index: 1})
	if !m.Clear() {
		t.Error("clear should report a change")
	}
	if m.Count() != 0 || m.Hovered() != nil {
		t.Error("clear should empty both selection and hover")
	}
}
