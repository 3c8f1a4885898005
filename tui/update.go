package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/young1lin/label-layout/internal/flow"
)

// Update handles incoming messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.remeasure()
		return m, nil

	case LabelsLoadedMsg:
		m.layout.SetLabels(msg.Labels)
		m.resetFocus()
		m.source = msg.Source
		m.lastEvent = fmt.Sprintf("loaded %d labels", len(msg.Labels))
		m.warn = false
		m.err = nil
		if m.width > 0 {
			m.remeasure()
		}
		return m, nil

	case CheckChangedMsg:
		if msg.Checked {
			m.lastEvent = "checked " + msg.Label.Name
		} else {
			m.lastEvent = "unchecked " + msg.Label.Name
		}
		m.warn = false
		return m, nil

	case BeyondMaxMsg:
		m.lastEvent = fmt.Sprintf("limit reached, at most %d", msg.Max)
		m.warn = true
		return m, nil

	case ErrorMsg:
		m.err = msg.Err
		return m, nil

	case WatcherFailedMsg:
		m.err = fmt.Errorf("watcher stopped: %w", msg.Err)
		return m, nil
	}

	return m, nil
}

// handleKeyMsg handles keyboard input
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		m.quitting = true
		return m, tea.Quit
	case "left", "h":
		m.moveFocus(m.step(-1))
	case "right", "l", "tab":
		m.moveFocus(m.step(1))
	case "up", "k":
		m.moveFocus(m.vertical(-1))
	case "down", "j":
		m.moveFocus(m.vertical(1))
	case "home", "g":
		m.resetFocus()
	case "end", "G":
		m.moveFocus(m.last())
	case " ":
		m.layout.Toggle(m.focus)
	case "enter":
		if m.confirm {
			m.confirmed = true
			m.quitting = true
			return m, tea.Quit
		}
		m.layout.Toggle(m.focus)
	case "a":
		m.layout.ClearChecked()
	}

	return m, m.events.drain()
}

// remeasure lays the chips out for the current window width
func (m *Model) remeasure() {
	width := flow.Unbounded()
	if w := m.contentWidth(); w > 0 {
		width = flow.AtMostSize(w)
	}
	m.layout.Arrange(m.layout.Measure(width, flow.Unbounded()))
}

// contentWidth is the window width minus the frame around the chips
func (m Model) contentWidth() int {
	if m.width <= 0 {
		return 0
	}
	w := m.width - m.styles.Border.GetHorizontalFrameSize()
	if w < 1 {
		w = 1
	}
	return w
}

func (m *Model) moveFocus(i int) {
	if i < 0 {
		return
	}
	m.focus = i
	m.layout.SetFocus(i)
}

// step returns the nearest visible chip in flow order, or -1
func (m Model) step(dir int) int {
	for i := m.focus + dir; i >= 0 && i < m.layout.Len(); i += dir {
		if m.layout.Chip(i).Visible() {
			return i
		}
	}
	return -1
}

func (m Model) last() int {
	for i := m.layout.Len() - 1; i >= 0; i-- {
		if m.layout.Chip(i).Visible() {
			return i
		}
	}
	return -1
}

// vertical returns the chip on the adjacent row whose center is closest to
// the focused chip's center, or -1 when there is no such row.
func (m Model) vertical(dir int) int {
	cur, ok := m.layout.ChipRect(m.focus)
	if !ok {
		return -1
	}
	center := cur.X + cur.W/2

	best, bestY, bestDist := -1, 0, 0
	for i := 0; i < m.layout.Len(); i++ {
		r, ok := m.layout.ChipRect(i)
		if !ok || (dir > 0 && r.Y <= cur.Y) || (dir < 0 && r.Y >= cur.Y) {
			continue
		}
		dist := abs(r.X + r.W/2 - center)
		switch {
		case best < 0,
			dir > 0 && r.Y < bestY,
			dir < 0 && r.Y > bestY,
			r.Y == bestY && dist < bestDist:
			best, bestY, bestDist = i, r.Y, dist
		}
	}
	return best
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
