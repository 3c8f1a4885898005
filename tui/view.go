package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/young1lin/label-layout/internal/selection"
)

// View renders the UI
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var sections []string

	// Header
	sections = append(sections, m.renderHeader())

	// Chips
	sections = append(sections, m.renderChips())

	// Selection status
	sections = append(sections, m.renderStatus())

	if m.err != nil {
		sections = append(sections, m.renderError())
	}

	// Footer
	sections = append(sections, m.renderFooter())

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)
	return m.styles.Border.Render(content)
}

// renderHeader renders the title and where the labels came from
func (m Model) renderHeader() string {
	header := m.styles.Title.Render(m.title)
	if m.source != "" {
		header += " " + m.styles.Subtitle.Render(m.source)
	}
	return header + "\n"
}

// renderChips renders the flow of chips at the window width
func (m Model) renderChips() string {
	if m.layout.Len() == 0 {
		return m.styles.Muted.Render("No labels")
	}
	return strings.TrimRight(m.layout.Render(m.contentWidth()), "\n")
}

// renderStatus renders the checked count against the cap and the last event
func (m Model) renderStatus() string {
	count := fmt.Sprintf("Selected %d/%s", m.layout.CheckedLabelsCount(), m.maxLabel())
	status := "\n" + m.styles.Highlight.Render(count)

	if m.lastEvent != "" {
		style := m.styles.Value
		if m.warn {
			style = m.styles.Warning
		}
		status += m.styles.Muted.Render(" · ") + style.Render(m.lastEvent)
	}
	return status
}

// renderError renders the error line
func (m Model) renderError() string {
	return m.styles.Error.Render(fmt.Sprintf("Error: %v", m.err))
}

// renderFooter renders the key help
func (m Model) renderFooter() string {
	enter := "enter toggle"
	if m.confirm {
		enter = "enter done"
	}
	help := []string{"←↓↑→ move", "space toggle", enter, "a clear", "q quit"}
	return m.styles.Muted.Render(strings.Join(help, " • "))
}

func (m Model) maxLabel() string {
	if n := m.layout.MaxCheckCount(); n != selection.Unbounded {
		return fmt.Sprint(n)
	}
	return "∞"
}
