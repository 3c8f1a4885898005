package tui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/young1lin/label-layout/labels"
)

func key(s string) tea.KeyMsg {
	switch s {
	case "space":
		return tea.KeyMsg{Type: tea.KeySpace}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// press sends a key and returns the updated model and its command
func press(t *testing.T, m Model, k string) (Model, tea.Cmd) {
	t.Helper()
	result, cmd := m.Update(key(k))
	next, ok := result.(Model)
	if !ok {
		t.Fatal("Update() should return a Model")
	}
	return next, cmd
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	result, _ := m.Update(msg)
	next, ok := result.(Model)
	if !ok {
		t.Fatal("Update() should return a Model")
	}
	return next
}

func TestHandleKeyMsgQuit(t *testing.T) {
	for _, k := range []string{"q", "esc", "ctrl+c"} {
		t.Run(k, func(t *testing.T) {
			m := newTestModel(t, "aa")
			m, cmd := press(t, m, k)

			if !m.quitting {
				t.Errorf("%s should set quitting", k)
			}
			if cmd == nil {
				t.Errorf("%s should return tea.Quit cmd", k)
			}
			if m.Confirmed() {
				t.Errorf("%s should not confirm", k)
			}
		})
	}
}

func TestHorizontalFocus(t *testing.T) {
	tests := []struct {
		name string
		keys []string
		want int
	}{
		{"right", []string{"right"}, 1},
		{"l", []string{"l", "l"}, 2},
		{"stops at end", []string{"right", "right", "right", "right"}, 2},
		{"left stops at start", []string{"left"}, 0},
		{"h back", []string{"right", "right", "h"}, 1},
		{"end", []string{"G"}, 2},
		{"home", []string{"G", "g"}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestModel(t, "aa", "bb", "cc")
			for _, k := range tt.keys {
				m, _ = press(t, m, k)
			}
			if m.Focus() != tt.want {
				t.Errorf("Focus() = %d, want %d", m.Focus(), tt.want)
			}
		})
	}
}

func TestFocusSkipsHiddenChips(t *testing.T) {
	m := newTestModel(t, "aa", "bb", "cc")
	m.Layout().SetVisible(1, false)

	m, _ = press(t, m, "right")
	if m.Focus() != 2 {
		t.Errorf("Focus() = %d, want 2", m.Focus())
	}
}

func TestVerticalFocus(t *testing.T) {
	m := newTestModel(t, "aa", "bb", "cc")
	// 17 content cells fit two chips per row
	m = update(t, m, tea.WindowSizeMsg{Width: 17 + m.styles.Border.GetHorizontalFrameSize(), Height: 20})

	if rows := m.Layout().Rows(); rows != 2 {
		t.Fatalf("Rows() = %d, want 2", rows)
	}

	m, _ = press(t, m, "right")
	m, _ = press(t, m, "down")
	if m.Focus() != 2 {
		t.Errorf("down from bb: Focus() = %d, want 2", m.Focus())
	}

	m, _ = press(t, m, "up")
	if m.Focus() != 0 {
		t.Errorf("up from cc: Focus() = %d, want 0 (nearest center)", m.Focus())
	}

	m, _ = press(t, m, "k")
	if m.Focus() != 0 {
		t.Errorf("up on first row: Focus() = %d, want 0", m.Focus())
	}
}

func TestToggleEmitsCheckChanged(t *testing.T) {
	m := newTestModel(t, "aa", "bb")

	m, cmd := press(t, m, "space")
	if cmd == nil {
		t.Fatal("toggle should return a command")
	}
	msg, ok := cmd().(CheckChangedMsg)
	if !ok {
		t.Fatalf("cmd() = %T, want CheckChangedMsg", cmd())
	}
	if msg.Label.ID != "aa" || !msg.Checked {
		t.Errorf("msg = %+v, want aa checked", msg)
	}

	m = update(t, m, msg)
	if m.lastEvent != "checked aa" {
		t.Errorf("lastEvent = %q, want %q", m.lastEvent, "checked aa")
	}

	m, cmd = press(t, m, "enter")
	msg = cmd().(CheckChangedMsg)
	if msg.Checked {
		t.Error("second toggle should uncheck")
	}
	m = update(t, m, msg)
	if m.lastEvent != "unchecked aa" {
		t.Errorf("lastEvent = %q, want %q", m.lastEvent, "unchecked aa")
	}
	if len(m.Checked()) != 0 {
		t.Errorf("Checked() = %v, want empty", m.Checked())
	}
}

func TestToggleBeyondMax(t *testing.T) {
	m := newTestModel(t, "aa", "bb")
	m.Layout().SetMaxCheckCount(1)

	m, _ = press(t, m, "space")
	m, _ = press(t, m, "right")
	m, cmd := press(t, m, "space")

	if cmd == nil {
		t.Fatal("rejected check should return a command")
	}
	msg, ok := cmd().(BeyondMaxMsg)
	if !ok {
		t.Fatalf("cmd() = %T, want BeyondMaxMsg", cmd())
	}
	if msg.Max != 1 {
		t.Errorf("Max = %d, want 1", msg.Max)
	}
	if m.Layout().Chip(1).Checked() {
		t.Error("rejected chip should be reverted to unchecked")
	}

	m = update(t, m, msg)
	if !m.warn || !strings.Contains(m.lastEvent, "limit reached") {
		t.Errorf("lastEvent = %q warn = %v", m.lastEvent, m.warn)
	}
	if got := m.Checked(); len(got) != 1 || got[0] != "aa" {
		t.Errorf("Checked() = %v, want [aa]", got)
	}
}

func TestClearAll(t *testing.T) {
	m := newTestModel(t, "aa", "bb", "cc")
	m.Layout().SetChecked(0, true)
	m.Layout().SetChecked(2, true)
	m.events.drain()

	m, cmd := press(t, m, "a")
	if cmd == nil {
		t.Error("clearing checked chips should return a command")
	}
	if n := m.Layout().CheckedLabelsCount(); n != 0 {
		t.Errorf("CheckedLabelsCount() = %d, want 0", n)
	}

	_, cmd = press(t, m, "a")
	if cmd != nil {
		t.Error("clearing with nothing checked should not return a command")
	}
}

func TestEnterConfirms(t *testing.T) {
	layout := labels.New(labels.DefaultOptions())
	layout.SetLabels([]labels.Label{{ID: "a", Name: "A"}})
	m := NewModel(layout, WithConfirm())

	m, _ = press(t, m, "space")
	m, cmd := press(t, m, "enter")

	if !m.Confirmed() || !m.quitting {
		t.Error("enter in confirm mode should confirm and quit")
	}
	if cmd == nil {
		t.Error("enter in confirm mode should return tea.Quit cmd")
	}
	if got := m.Checked(); len(got) != 1 || got[0] != "a" {
		t.Errorf("Checked() = %v, want [a]", got)
	}
}

func TestLabelsLoadedMsg(t *testing.T) {
	m := newTestModel(t, "aa", "bb")
	m.Layout().SetChecked(0, true)
	m, _ = press(t, m, "right")

	m = update(t, m, LabelsLoadedMsg{
		Labels: []labels.Label{{ID: "x", Name: "x"}, {ID: "y", Name: "y"}, {ID: "z", Name: "z"}},
		Source: "labels.yaml",
	})

	if m.Layout().Len() != 3 {
		t.Errorf("Len() = %d, want 3", m.Layout().Len())
	}
	if m.Layout().CheckedLabelsCount() != 0 {
		t.Error("loading labels should clear the selection")
	}
	if m.Focus() != 0 {
		t.Errorf("Focus() = %d, want 0", m.Focus())
	}
	if m.source != "labels.yaml" {
		t.Errorf("source = %q", m.source)
	}
	if m.lastEvent != "loaded 3 labels" {
		t.Errorf("lastEvent = %q", m.lastEvent)
	}
}

func TestErrorMessages(t *testing.T) {
	m := newTestModel(t, "aa")

	m = update(t, m, ErrorMsg{Err: errors.New("bad yaml")})
	if m.err == nil || m.err.Error() != "bad yaml" {
		t.Errorf("err = %v, want bad yaml", m.err)
	}

	m = update(t, m, LabelsLoadedMsg{Labels: nil})
	if m.err != nil {
		t.Error("a successful load should clear the error")
	}

	cause := errors.New("inotify limit")
	m = update(t, m, WatcherFailedMsg{Err: cause})
	if !errors.Is(m.err, cause) {
		t.Errorf("err = %v, want wrapped %v", m.err, cause)
	}
}

func TestUnknownMessage(t *testing.T) {
	m := newTestModel(t, "aa")
	result, cmd := m.Update(struct{}{})
	if cmd != nil {
		t.Error("unknown message should not return a command")
	}
	if _, ok := result.(Model); !ok {
		t.Error("Update() should return a Model")
	}
}
