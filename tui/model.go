package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/young1lin/label-layout/labels"
)

// Model is the picker state. The layout is shared by every copy of the
// model bubbletea passes around.
type Model struct {
	layout *labels.Layout
	events *eventQueue

	title   string
	confirm bool

	// Focused chip index, -1 when there are no chips
	focus int
	width int

	// State
	lastEvent string
	warn      bool
	source    string
	quitting  bool
	confirmed bool

	// Error state
	err error

	// Styles
	styles Styles
}

// eventQueue collects listener callbacks raised while handling a key so
// Update can turn them into messages.
type eventQueue struct {
	layout *labels.Layout
	msgs   []tea.Msg
}

func (q *eventQueue) OnCheckChanged(label labels.Label, isChecked bool) {
	q.msgs = append(q.msgs, CheckChangedMsg{Label: label, Checked: isChecked})
}

func (q *eventQueue) OnBeyondMaxCheckCount() {
	q.msgs = append(q.msgs, BeyondMaxMsg{Max: q.layout.MaxCheckCount()})
}

// drain returns the queued events as a command and empties the queue
func (q *eventQueue) drain() tea.Cmd {
	if len(q.msgs) == 0 {
		return nil
	}
	cmds := make([]tea.Cmd, 0, len(q.msgs))
	for _, msg := range q.msgs {
		msg := msg
		cmds = append(cmds, func() tea.Msg { return msg })
	}
	q.msgs = q.msgs[:0]
	if len(cmds) == 1 {
		return cmds[0]
	}
	return tea.Batch(cmds...)
}

// Styles contains the Lipgloss styles for the UI
type Styles struct {
	Border    lipgloss.Style
	Title     lipgloss.Style
	Subtitle  lipgloss.Style
	Value     lipgloss.Style
	Highlight lipgloss.Style
	Muted     lipgloss.Style
	Warning   lipgloss.Style
	Error     lipgloss.Style
}

// DefaultStyles returns the default UI styles
func DefaultStyles() Styles {
	var styles Styles

	// Color palette
	primaryColor := lipgloss.Color("86")    // Green
	secondaryColor := lipgloss.Color("239") // Grey
	errorColor := lipgloss.Color("196")     // Red
	warnColor := lipgloss.Color("208")      // Orange

	styles.Border = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(secondaryColor).
		Padding(0, 1)

	styles.Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("255"))

	styles.Subtitle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("243"))

	styles.Value = lipgloss.NewStyle().
		Foreground(lipgloss.Color("255"))

	styles.Highlight = lipgloss.NewStyle().
		Bold(true).
		Foreground(primaryColor)

	styles.Muted = lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))

	styles.Warning = lipgloss.NewStyle().
		Foreground(warnColor).
		Bold(true)

	styles.Error = lipgloss.NewStyle().
		Foreground(errorColor).
		Bold(true)

	return styles
}

// Option configures a Model
type Option func(*Model)

// WithTitle sets the header text
func WithTitle(title string) Option {
	return func(m *Model) { m.title = title }
}

// WithConfirm makes enter finish the picker instead of toggling
func WithConfirm() Option {
	return func(m *Model) { m.confirm = true }
}

// WithStyles overrides the default styles
func WithStyles(styles Styles) Option {
	return func(m *Model) { m.styles = styles }
}

// NewModel creates a picker over layout. The model installs itself as the
// layout's check listener.
func NewModel(layout *labels.Layout, opts ...Option) Model {
	m := Model{
		layout: layout,
		events: &eventQueue{layout: layout},
		title:  "Pick labels",
		focus:  -1,
		styles: DefaultStyles(),
	}
	for _, opt := range opts {
		opt(&m)
	}
	layout.SetOnCheckChangedListener(m.events)
	m.resetFocus()
	return m
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return nil
}

// Layout returns the layout the picker drives
func (m Model) Layout() *labels.Layout {
	return m.layout
}

// Confirmed reports whether the user finished with enter in confirm mode
func (m Model) Confirmed() bool {
	return m.confirmed
}

// Focus returns the focused chip index, -1 when nothing is focused
func (m Model) Focus() int {
	return m.focus
}

// Checked returns the ids of the checked labels in the order they were checked
func (m Model) Checked() []string {
	return m.layout.CheckedLabelIDs()
}

// resetFocus moves focus to the first visible chip
func (m *Model) resetFocus() {
	m.focus = -1
	for i := 0; i < m.layout.Len(); i++ {
		if m.layout.Chip(i).Visible() {
			m.focus = i
			break
		}
	}
	m.layout.SetFocus(m.focus)
}
