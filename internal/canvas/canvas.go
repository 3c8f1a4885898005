// Package canvas is a small cell grid that chips and dividers draw into.
// Each cell holds one rune and a style; wide runes occupy two cells.
package canvas

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/young1lin/label-layout/internal/flow"
)

type cell struct {
	r     rune
	style int
	cont  bool // right half of a wide rune
}

// Canvas is a fixed-size grid of styled cells
type Canvas struct {
	w      int
	h      int
	cells  []cell
	styles []lipgloss.Style
}

// New creates a blank canvas. Negative sizes are treated as zero.
func New(w, h int) *Canvas {
	w = max(w, 0)
	h = max(h, 0)
	c := &Canvas{
		w:      w,
		h:      h,
		cells:  make([]cell, w*h),
		styles: []lipgloss.Style{lipgloss.NewStyle()},
	}
	for i := range c.cells {
		c.cells[i] = cell{r: ' '}
	}
	return c
}

// Width returns the number of columns
func (c *Canvas) Width() int { return c.w }

// Height returns the number of rows
func (c *Canvas) Height() int { return c.h }

// Bounds returns the canvas as a rect at the origin
func (c *Canvas) Bounds() flow.Rect {
	return flow.Rect{W: c.w, H: c.h}
}

func (c *Canvas) addStyle(s lipgloss.Style) int {
	c.styles = append(c.styles, s)
	return len(c.styles) - 1
}

func (c *Canvas) inside(x, y int) bool {
	return x >= 0 && y >= 0 && x < c.w && y < c.h
}

func (c *Canvas) at(x, y int) *cell {
	return &c.cells[y*c.w+x]
}

// put writes r at (x,y), clearing any wide rune it partially overwrites
func (c *Canvas) put(x, y int, r rune, width, style int) {
	for i := 0; i < width; i++ {
		cur := c.at(x+i, y)
		if cur.cont && x+i > 0 {
			*c.at(x+i-1, y) = cell{r: ' '}
		}
		if !cur.cont && runewidth.RuneWidth(cur.r) == 2 && x+i+1 < c.w {
			*c.at(x+i+1, y) = cell{r: ' '}
		}
	}
	*c.at(x, y) = cell{r: r, style: style}
	if width == 2 {
		*c.at(x+1, y) = cell{r: ' ', style: style, cont: true}
	}
}

// Rune returns the rune stored at (x,y), or 0 outside the canvas
func (c *Canvas) Rune(x, y int) rune {
	if !c.inside(x, y) {
		return 0
	}
	return c.at(x, y).r
}

// SetString writes s starting at (x,y) and returns the number of columns
// advanced. Anything outside the canvas is clipped.
func (c *Canvas) SetString(x, y int, s string, style lipgloss.Style) int {
	id := c.addStyle(style)
	start := x
	for _, r := range s {
		rw := runewidth.RuneWidth(r)
		if rw == 0 {
			continue
		}
		if y >= 0 && y < c.h && x >= 0 && x+rw <= c.w {
			c.put(x, y, r, rw, id)
		}
		x += rw
	}
	return x - start
}

// Fill paints every cell of rect with ch. The rect is clipped to the canvas.
func (c *Canvas) Fill(rect flow.Rect, ch rune, style lipgloss.Style) {
	id := c.addStyle(style)
	rw := max(runewidth.RuneWidth(ch), 1)
	for y := max(rect.Y, 0); y < min(rect.Bottom(), c.h); y++ {
		for x := max(rect.X, 0); x+rw <= min(rect.Right(), c.w); x += rw {
			c.put(x, y, ch, rw, id)
		}
	}
}

// Line returns row y as plain text without styles
func (c *Canvas) Line(y int) string {
	if y < 0 || y >= c.h {
		return ""
	}
	var b strings.Builder
	for x := 0; x < c.w; x++ {
		cl := c.at(x, y)
		if cl.cont {
			continue
		}
		b.WriteRune(cl.r)
	}
	return b.String()
}

// String renders the canvas, one line per row, with styles applied to runs of
// cells that share a style.
func (c *Canvas) String() string {
	lines := make([]string, c.h)
	for y := 0; y < c.h; y++ {
		var b strings.Builder
		var run strings.Builder
		runStyle := 0

		flush := func() {
			if run.Len() == 0 {
				return
			}
			if runStyle == 0 {
				b.WriteString(run.String())
			} else {
				b.WriteString(c.styles[runStyle].Render(run.String()))
			}
			run.Reset()
		}

		for x := 0; x < c.w; x++ {
			cl := c.at(x, y)
			if cl.cont {
				continue
			}
			if cl.style != runStyle {
				flush()
				runStyle = cl.style
			}
			run.WriteRune(cl.r)
		}
		flush()
		lines[y] = b.String()
	}
	return strings.Join(lines, "\n")
}
