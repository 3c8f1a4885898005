package flow

import "sort"

// Engine measures and places items in a wrapping flow. The row-break set is
// rebuilt by every Measure call and is read-only between calls.
type Engine struct {
	hGap    int
	vGap    int
	padding Insets

	breaks     []int
	firstBreak int
	rows       int
}

// New creates an engine with the given gaps and padding
func New(hGap, vGap int, padding Insets) *Engine {
	return &Engine{hGap: hGap, vGap: vGap, padding: padding}
}

// HGap returns the horizontal gap between siblings
func (e *Engine) HGap() int { return e.hGap }

// VGap returns the vertical gap between rows
func (e *Engine) VGap() int { return e.vGap }

// Padding returns the content padding
func (e *Engine) Padding() Insets { return e.padding }

// halfGap is the distance from a row top back into the gap above it.
// Rounded up so an odd gap puts the divider inside the gap, not on the row.
func (e *Engine) halfGap() int {
	return (e.vGap + 1) / 2
}

// Measure computes the container size for items under the given constraints
// and records the row-break offsets used for divider drawing.
func (e *Engine) Measure(items []Item, width, height Spec) Size {
	limit := width.Size - e.padding.Horizontal()
	canWrap := width.Mode != Unspecified

	rowWidth := 0 // running width of the current row, trailing gap included
	rowMax := 0   // tallest item in the current row
	rowItems := 0 // visible items on the current row
	total := 0    // height of the closed rows, gaps included
	wrapped := 0  // number of row breaks taken
	visible := 0

	seen := make(map[int]struct{}, 4)
	e.breaks = e.breaks[:0]
	e.firstBreak = e.padding.Top - e.halfGap()

	for _, item := range items {
		if item.Visible() {
			sz := item.Size()
			// An item wider than the row still starts on the current row when
			// the row is empty.
			if canWrap && rowItems > 0 && rowWidth+sz.W > limit {
				total += rowMax + e.vGap
				rowWidth = sz.W
				rowMax = sz.H
				rowItems = 1
				wrapped++
			} else {
				rowWidth += sz.W
				rowMax = max(rowMax, sz.H)
				rowItems++
			}
			rowWidth += e.hGap
			visible++
		}

		off := e.padding.Top + total - e.halfGap()
		if _, ok := seen[off]; !ok {
			seen[off] = struct{}{}
			e.breaks = append(e.breaks, off)
		}
	}
	sort.Ints(e.breaks)

	if visible > 0 {
		e.rows = wrapped + 1
		rowWidth -= e.hGap
	} else {
		e.rows = 0
	}

	h := total + rowMax + e.padding.Vertical()

	var w int
	if wrapped == 0 {
		w = rowWidth + e.padding.Horizontal()
	} else {
		w = width.Size
	}

	if width.Mode == Exactly {
		w = width.Size
	}
	if height.Mode == Exactly {
		h = height.Size
	}
	return Size{W: w, H: h}
}

// Place positions every item inside size minus padding. Hidden items get a
// zero Rect. The wrap test is the same one Measure uses, so both passes agree
// on where rows start.
func (e *Engine) Place(items []Item, size Size) []Rect {
	left := e.padding.Left
	top := e.padding.Top
	right := size.W - e.padding.Right

	x, y := left, top
	rowMax := 0
	rowItems := 0

	rects := make([]Rect, len(items))
	for i, item := range items {
		if !item.Visible() {
			continue
		}
		sz := item.Size()
		if rowItems > 0 && x+sz.W > right {
			x = left
			y += rowMax + e.vGap
			rowMax = sz.H
			rowItems = 0
		} else {
			rowMax = max(rowMax, sz.H)
		}
		rects[i] = Rect{X: x, Y: y, W: sz.W, H: sz.H}
		x += sz.W + e.hGap
		rowItems++
	}
	return rects
}

// RowBreaks returns the offsets recorded by the last Measure, ascending.
// The first entry belongs to the row above the first row.
func (e *Engine) RowBreaks() []int {
	out := make([]int, len(e.breaks))
	copy(out, e.breaks)
	return out
}

// DividerOffsets returns the row breaks that separate two rows
func (e *Engine) DividerOffsets() []int {
	out := make([]int, 0, len(e.breaks))
	for _, off := range e.breaks {
		if off == e.firstBreak {
			continue
		}
		out = append(out, off)
	}
	return out
}

// Rows returns the number of rows produced by the last Measure
func (e *Engine) Rows() int {
	return e.rows
}

// DividerBand returns the band covered by a divider of the given thickness
// centred on off, spanning width cells.
func DividerBand(off, thickness, width int) Rect {
	return Rect{X: 0, Y: off - thickness/2, W: width, H: thickness}
}
