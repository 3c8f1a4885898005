package labels

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/young1lin/label-layout/internal/canvas"
	"github.com/young1lin/label-layout/internal/flow"
)

// Checkable is a chip the container can lay out and draw. The chip owns its
// checked state and reports every change to its toggle subscribers.
type Checkable interface {
	flow.Item

	// Measure computes and stores the chip's own size under the width
	// constraint of its parent.
	Measure(width flow.Spec) flow.Size
	// Draw paints the chip into rect.
	Draw(c *canvas.Canvas, rect flow.Rect)

	Label() Label
	Checked() bool
	// SetChecked changes the state and notifies subscribers when it differs.
	SetChecked(checked bool)
	Toggle()
	OnToggle(fn func(checked bool))
	SetVisible(visible bool)
}

// Focuser is implemented by chips that can show keyboard focus
type Focuser interface {
	SetFocused(focused bool)
}

// ChipFactory builds the chip for a label
type ChipFactory func(label Label) Checkable

// ChipStyle controls how the default chip looks
type ChipStyle struct {
	Border    lipgloss.Border
	HasBorder bool
	Unchecked lipgloss.Style
	Checked   lipgloss.Style
	Focused   lipgloss.Style
	// MaxWidth truncates long names; 0 disables truncation.
	MaxWidth int
}

// DefaultChipStyle returns a borderless chip with a green checked state
func DefaultChipStyle() ChipStyle {
	return ChipStyle{
		Unchecked: lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
		Checked:   lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true),
		Focused:   lipgloss.NewStyle().Reverse(true),
	}
}

// Factory returns a ChipFactory producing chips with this style
func (s ChipStyle) Factory() ChipFactory {
	return func(label Label) Checkable {
		return NewChip(label, s)
	}
}

// Chip is the default Checkable: a checkbox marker followed by the label name
type Chip struct {
	label   Label
	style   ChipStyle
	checked bool
	hidden  bool
	focused bool
	size    flow.Size
	subs    []func(bool)
}

// NewChip creates an unchecked chip
func NewChip(label Label, style ChipStyle) *Chip {
	return &Chip{label: label, style: style}
}

// Label implements Checkable
func (c *Chip) Label() Label { return c.label }

// Checked implements Checkable
func (c *Chip) Checked() bool { return c.checked }

// Size implements flow.Item
func (c *Chip) Size() flow.Size { return c.size }

// Visible implements flow.Item
func (c *Chip) Visible() bool { return !c.hidden }

// SetVisible implements Checkable
func (c *Chip) SetVisible(visible bool) { c.hidden = !visible }

// SetFocused implements Focuser
func (c *Chip) SetFocused(focused bool) { c.focused = focused }

// Focused reports whether the chip has keyboard focus
func (c *Chip) Focused() bool { return c.focused }

// OnToggle implements Checkable
func (c *Chip) OnToggle(fn func(checked bool)) {
	c.subs = append(c.subs, fn)
}

// SetChecked implements Checkable. Subscribers may call SetChecked again from
// inside the callback; that nested change is delivered before this call returns.
func (c *Chip) SetChecked(checked bool) {
	if c.checked == checked {
		return
	}
	c.checked = checked
	for _, fn := range c.subs {
		fn(checked)
	}
}

// Toggle implements Checkable
func (c *Chip) Toggle() {
	c.SetChecked(!c.checked)
}

// text is the single line of content, without border
func (c *Chip) text() string {
	marker := "[ ]"
	if c.checked {
		marker = "[x]"
	}
	name := c.label.Name
	if c.style.MaxWidth > 0 {
		name = canvas.Truncate(name, c.style.MaxWidth, "…")
	}
	return " " + marker + " " + name + " "
}

// Measure implements Checkable. The marker has the same width in both states,
// so toggling never changes the layout.
func (c *Chip) Measure(width flow.Spec) flow.Size {
	w := canvas.Measure(c.text())
	h := 1
	if c.style.HasBorder {
		w += 2
		h += 2
	}
	if width.Mode == flow.Exactly {
		w = width.Size
	}
	c.size = flow.Size{W: w, H: h}
	return c.size
}

func (c *Chip) currentStyle() lipgloss.Style {
	s := c.style.Unchecked
	if c.checked {
		s = c.style.Checked
	}
	if c.focused {
		s = c.style.Focused.Inherit(s)
	}
	return s
}

// Draw implements Checkable
func (c *Chip) Draw(cv *canvas.Canvas, rect flow.Rect) {
	if rect.Empty() {
		return
	}
	style := c.currentStyle()

	if !c.style.HasBorder {
		cv.SetString(rect.X, rect.Y, canvas.PadRight(c.text(), rect.W), style)
		return
	}

	b := c.style.Border
	inner := max(rect.W-2, 0)
	edge := c.style.Unchecked
	if c.checked {
		edge = c.style.Checked
	}
	cv.SetString(rect.X, rect.Y, b.TopLeft+strings.Repeat(b.Top, inner)+b.TopRight, edge)
	cv.SetString(rect.X, rect.Y+1, b.Left, edge)
	cv.SetString(rect.X+1, rect.Y+1, canvas.PadRight(c.text(), inner), style)
	cv.SetString(rect.X+1+inner, rect.Y+1, b.Right, edge)
	cv.SetString(rect.X, rect.Y+2, b.BottomLeft+strings.Repeat(b.Bottom, inner)+b.BottomRight, edge)
}
