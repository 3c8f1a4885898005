package canvas

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Measure returns the display width of a string.
// Wide characters (CJK, most emoji) count as two cells.
func Measure(s string) int {
	return runewidth.StringWidth(s)
}

// PadRight adds spaces to the right of s up to width
func PadRight(s string, width int) string {
	currentWidth := Measure(s)
	if currentWidth >= width {
		return s
	}
	return s + strings.Repeat(" ", width-currentWidth)
}

// PadCenter centers s within width
func PadCenter(s string, width int) string {
	currentWidth := Measure(s)
	if currentWidth >= width {
		return s
	}
	padding := width - currentWidth
	left := padding / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", padding-left)
}

// Truncate cuts s to at most width cells, appending tail when it had to cut
func Truncate(s string, width int, tail string) string {
	if Measure(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, tail)
}
