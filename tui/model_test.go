package tui

import (
	"testing"

	"github.com/young1lin/label-layout/labels"
)

// newTestModel builds a picker with one-cell gaps so chip positions are easy
// to reason about: each default chip is 8 cells wide and 1 tall.
func newTestModel(t *testing.T, names ...string) Model {
	t.Helper()
	opts := labels.DefaultOptions()
	opts.Density = 1
	opts.HorizontalSpacing = 1
	opts.VerticalSpacing = 1

	layout := labels.New(opts)
	list := make([]labels.Label, 0, len(names))
	for _, name := range names {
		list = append(list, labels.Label{ID: name, Name: name})
	}
	layout.SetLabels(list)
	return NewModel(layout)
}

func TestNewModelFocusesFirstChip(t *testing.T) {
	m := newTestModel(t, "aa", "bb")

	if m.Focus() != 0 {
		t.Errorf("Focus() = %d, want 0", m.Focus())
	}
	chip, ok := m.Layout().Chip(0).(*labels.Chip)
	if !ok {
		t.Fatal("default factory should build *labels.Chip")
	}
	if !chip.Focused() {
		t.Error("first chip should be focused")
	}
}

func TestNewModelEmpty(t *testing.T) {
	m := NewModel(labels.New(labels.DefaultOptions()))

	if m.Focus() != -1 {
		t.Errorf("Focus() = %d, want -1", m.Focus())
	}
	if len(m.Checked()) != 0 {
		t.Errorf("Checked() = %v, want empty", m.Checked())
	}
}

func TestNewModelOptions(t *testing.T) {
	layout := labels.New(labels.DefaultOptions())
	styles := DefaultStyles()
	m := NewModel(layout, WithTitle("Topics"), WithConfirm(), WithStyles(styles))

	if m.title != "Topics" {
		t.Errorf("title = %q, want %q", m.title, "Topics")
	}
	if !m.confirm {
		t.Error("WithConfirm() should enable confirm mode")
	}
	if m.Init() != nil {
		t.Error("Init() should return nil")
	}
}

func TestEventQueueDrain(t *testing.T) {
	layout := labels.New(labels.DefaultOptions())
	q := &eventQueue{layout: layout}

	if q.drain() != nil {
		t.Error("drain() on an empty queue should return nil")
	}

	q.OnCheckChanged(labels.Label{ID: "a", Name: "A"}, true)
	cmd := q.drain()
	if cmd == nil {
		t.Fatal("drain() should return a command")
	}
	msg, ok := cmd().(CheckChangedMsg)
	if !ok {
		t.Fatalf("cmd() = %T, want CheckChangedMsg", cmd())
	}
	if msg.Label.ID != "a" || !msg.Checked {
		t.Errorf("msg = %+v", msg)
	}
	if len(q.msgs) != 0 {
		t.Error("drain() should empty the queue")
	}
}
