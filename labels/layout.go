package labels

import (
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/young1lin/label-layout/internal/canvas"
	"github.com/young1lin/label-layout/internal/flow"
	"github.com/young1lin/label-layout/internal/selection"
)

// Layout holds the chips for a list of labels, lays them out in a wrapping
// flow and keeps the checked set within the configured cap.
//
// Layout is meant to be driven from one goroutine (the UI loop).
type Layout struct {
	opts    Options
	factory ChipFactory
	engine  *flow.Engine
	ledger  *selection.Ledger
	log     *zap.Logger

	labels []Label
	chips  []Checkable
	items  []flow.Item
	rects  []flow.Rect
	size   flow.Size

	// generation is bumped by SetLabels so toggles from discarded chips are dropped
	generation int

	widthSpec  flow.Spec
	heightSpec flow.Spec
	dirty      bool

	dividerHeight int
	dividerStyle  lipgloss.Style

	listener Listener
}

// New creates an empty layout
func New(opts Options) *Layout {
	factory := opts.ChipFactory
	if factory == nil {
		factory = DefaultChipStyle().Factory()
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.DividerRune == 0 {
		opts.DividerRune = '─'
	}

	style := lipgloss.NewStyle()
	if opts.DividerColor != nil {
		style = style.Foreground(opts.DividerColor)
	}

	return &Layout{
		opts:          opts,
		factory:       factory,
		engine:        opts.engine(),
		ledger:        selection.New(),
		log:           logger.Named("labels"),
		widthSpec:     flow.Unbounded(),
		heightSpec:    flow.Unbounded(),
		dirty:         true,
		dividerHeight: opts.DividerHeight.Cells(opts.density()),
		dividerStyle:  style,
	}
}

// SetLabels replaces every chip. The checked set is cleared, new chips are
// built through the chip factory and the layout is marked for a full
// remeasure. A nil or empty slice leaves the container empty.
func (l *Layout) SetLabels(labels []Label) {
	l.ledger.Reset()
	l.generation++
	gen := l.generation

	l.labels = make([]Label, len(labels))
	copy(l.labels, labels)
	l.chips = make([]Checkable, 0, len(labels))
	l.items = make([]flow.Item, 0, len(labels))
	l.rects = nil

	for _, label := range l.labels {
		chip := l.factory(label)
		chip.OnToggle(func(checked bool) {
			l.handleToggle(gen, chip, checked)
		})
		l.chips = append(l.chips, chip)
		l.items = append(l.items, chip)
	}
	l.dirty = true

	l.log.Debug("labels replaced", zap.Int("count", len(l.labels)), zap.Int("generation", gen))
}

// handleToggle feeds a chip's toggle event to the ledger and reacts to the
// decision.
func (l *Layout) handleToggle(gen int, chip Checkable, checked bool) {
	if gen != l.generation {
		return
	}
	label := chip.Label()
	decision := l.ledger.OnToggle(label.ID, checked)

	switch decision {
	case selection.Checked, selection.Unchecked:
		l.log.Debug("label toggled", zap.String("id", label.ID), zap.Stringer("decision", decision))
		if l.listener != nil {
			l.listener.OnCheckChanged(label, decision == selection.Checked)
		}
	case selection.Rejected:
		l.log.Info("check rejected, limit reached",
			zap.String("id", label.ID),
			zap.Int("max", l.ledger.MaxCount()))
		if l.listener != nil {
			l.listener.OnBeyondMaxCheckCount()
		}
		chip.SetChecked(false)
	}
}

// SetMaxCheckCount sets the cap. Current selections are not evicted.
func (l *Layout) SetMaxCheckCount(n int) {
	l.ledger.SetMaxCount(n)
}

// MaxCheckCount returns the cap
func (l *Layout) MaxCheckCount() int {
	return l.ledger.MaxCount()
}

// SetOnCheckChangedListener sets the observer; nil removes it
func (l *Layout) SetOnCheckChangedListener(listener Listener) {
	l.listener = listener
}

// CheckedLabelsCount returns the number of checked labels
func (l *Layout) CheckedLabelsCount() int {
	return l.ledger.Count()
}

// CheckedLabelIDs returns the ids of the checked labels
func (l *Layout) CheckedLabelIDs() []string {
	return l.ledger.CheckedIDs()
}

// CheckedIDsAsJSON returns the checked ids as a JSON array
func (l *Layout) CheckedIDsAsJSON() (string, error) {
	return l.ledger.CheckedIDsJSON()
}

// Labels returns the current labels
func (l *Layout) Labels() []Label {
	out := make([]Label, len(l.labels))
	copy(out, l.labels)
	return out
}

// Len returns the number of chips
func (l *Layout) Len() int {
	return len(l.chips)
}

// Chip returns chip i, or nil when out of range
func (l *Layout) Chip(i int) Checkable {
	if i < 0 || i >= len(l.chips) {
		return nil
	}
	return l.chips[i]
}

// Chips returns the chips in label order
func (l *Layout) Chips() []Checkable {
	out := make([]Checkable, len(l.chips))
	copy(out, l.chips)
	return out
}

// Toggle flips chip i as if the user clicked it
func (l *Layout) Toggle(i int) {
	if chip := l.Chip(i); chip != nil {
		chip.Toggle()
	}
}

// SetChecked drives chip i to the given state. The ledger may refuse a check,
// in which case the chip ends up unchecked.
func (l *Layout) SetChecked(i int, checked bool) {
	if chip := l.Chip(i); chip != nil {
		chip.SetChecked(checked)
	}
}

// ClearChecked unchecks every chip
func (l *Layout) ClearChecked() {
	for _, chip := range l.chips {
		chip.SetChecked(false)
	}
}

// SetVisible shows or hides chip i. Hidden chips take no space.
func (l *Layout) SetVisible(i int, visible bool) {
	chip := l.Chip(i)
	if chip == nil || chip.Visible() == visible {
		return
	}
	chip.SetVisible(visible)
	l.dirty = true
}

// SetFocus marks chip i as focused and clears focus elsewhere. Chips that do
// not implement Focuser are skipped.
func (l *Layout) SetFocus(i int) {
	for j, chip := range l.chips {
		if f, ok := chip.(Focuser); ok {
			f.SetFocused(j == i)
		}
	}
}

// Measure measures every chip and then the whole flow
func (l *Layout) Measure(width, height flow.Spec) flow.Size {
	l.widthSpec = width
	l.heightSpec = height

	childWidth := width
	if childWidth.Mode == flow.Exactly {
		childWidth.Mode = flow.AtMost
	}
	for _, chip := range l.chips {
		chip.Measure(childWidth)
	}
	l.size = l.engine.Measure(l.items, width, height)
	return l.size
}

// Arrange places the chips inside size
func (l *Layout) Arrange(size flow.Size) {
	l.size = size
	l.rects = l.engine.Place(l.items, size)
	l.dirty = false
}

// Relayout measures and arranges with the constraints of the previous Measure
func (l *Layout) Relayout() flow.Size {
	size := l.Measure(l.widthSpec, l.heightSpec)
	l.Arrange(size)
	return size
}

// Size returns the size from the last Measure or Arrange
func (l *Layout) Size() flow.Size {
	return l.size
}

// Rows returns the number of rows in the last layout
func (l *Layout) Rows() int {
	return l.engine.Rows()
}

// ChipRect returns where chip i was placed, and false when it is hidden,
// out of range or not yet arranged.
func (l *Layout) ChipRect(i int) (flow.Rect, bool) {
	if l.dirty {
		l.Relayout()
	}
	if i < 0 || i >= len(l.rects) || !l.chips[i].Visible() {
		return flow.Rect{}, false
	}
	return l.rects[i], true
}

// Draw paints dividers and then chips into c. Dividers go first so that a
// band thicker than the row gap never covers a chip.
func (l *Layout) Draw(c *canvas.Canvas) {
	if l.dirty {
		l.Relayout()
	}
	if l.opts.DividerEnabled && l.dividerHeight > 0 {
		for _, off := range l.engine.DividerOffsets() {
			band := flow.DividerBand(off, l.dividerHeight, l.size.W)
			c.Fill(band, l.opts.DividerRune, l.dividerStyle)
		}
	}
	for i, chip := range l.chips {
		if !chip.Visible() {
			continue
		}
		chip.Draw(c, l.rects[i])
	}
}

// Render lays the chips out for the given width and returns the drawn text.
// A width of zero or less means unbounded.
func (l *Layout) Render(width int) string {
	spec := flow.AtMostSize(width)
	if width <= 0 {
		spec = flow.Unbounded()
	}
	size := l.Measure(spec, flow.Unbounded())
	l.Arrange(size)

	c := canvas.New(size.W, size.H)
	l.Draw(c)
	return c.String()
}
