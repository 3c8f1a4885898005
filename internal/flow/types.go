// Package flow implements a wrapping left-to-right, top-to-bottom layout.
// Children are laid out like words in a paragraph: a child that would overflow
// the available width starts a new row.
package flow

// Size is a width/height pair in cells
type Size struct {
	W int
	H int
}

// Rect is a placed box
type Rect struct {
	X int
	Y int
	W int
	H int
}

// Right returns the x coordinate just past the rect
func (r Rect) Right() int { return r.X + r.W }

// Bottom returns the y coordinate just past the rect
func (r Rect) Bottom() int { return r.Y + r.H }

// Empty reports whether the rect has no area
func (r Rect) Empty() bool { return r.W <= 0 || r.H <= 0 }

// Insets is padding around the content area
type Insets struct {
	Top    int
	Right  int
	Bottom int
	Left   int
}

// Horizontal returns Left + Right
func (i Insets) Horizontal() int { return i.Left + i.Right }

// Vertical returns Top + Bottom
func (i Insets) Vertical() int { return i.Top + i.Bottom }

// Uniform returns insets with the same value on every side
func Uniform(n int) Insets {
	return Insets{Top: n, Right: n, Bottom: n, Left: n}
}

// Mode describes how the parent constrains one axis
type Mode int

const (
	// Unspecified means no limit; the flow never wraps on this axis.
	Unspecified Mode = iota
	// AtMost means the content may use up to Size cells.
	AtMost
	// Exactly forces the final size regardless of content.
	Exactly
)

// Spec is a constraint on one axis
type Spec struct {
	Mode Mode
	Size int
}

// Unbounded returns an Unspecified spec
func Unbounded() Spec { return Spec{Mode: Unspecified} }

// AtMostSize returns an AtMost spec
func AtMostSize(n int) Spec { return Spec{Mode: AtMost, Size: n} }

// ExactSize returns an Exactly spec
func ExactSize(n int) Spec { return Spec{Mode: Exactly, Size: n} }

// Item is a child the engine can lay out. Size must already reflect the
// child's own measurement.
type Item interface {
	Size() Size
	Visible() bool
}

// Box is a plain Item, handy for callers that only have sizes
type Box struct {
	W      int
	H      int
	Hidden bool
}

// Size implements Item
func (b Box) Size() Size { return Size{W: b.W, H: b.H} }

// Visible implements Item
func (b Box) Visible() bool { return !b.Hidden }
