package labels

import (
	"math"

	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/young1lin/label-layout/internal/flow"
)

// Dimension is a density-independent length. Density converts it to cells.
type Dimension float64

// Cells converts d to whole cells, rounding to nearest
func (d Dimension) Cells(density float64) int {
	return int(math.Round(float64(d) * density))
}

// DefaultDensity maps density-independent units to terminal cells
const DefaultDensity = 0.25

// Options configures a Layout. It is read once by New.
type Options struct {
	HorizontalSpacing Dimension
	VerticalSpacing   Dimension
	Padding           Dimension
	Density           float64

	DividerEnabled bool
	DividerHeight  Dimension
	DividerColor   lipgloss.TerminalColor
	DividerRune    rune

	// ChipFactory builds the chip for each label. Nil uses NewChip with
	// DefaultChipStyle.
	ChipFactory ChipFactory

	Logger *zap.Logger
}

// DefaultOptions returns the stock configuration: 8 units between chips, 4
// between rows, dividers off, 2-unit light gray dividers.
func DefaultOptions() Options {
	return Options{
		HorizontalSpacing: 8,
		VerticalSpacing:   4,
		Padding:           0,
		Density:           DefaultDensity,
		DividerEnabled:    false,
		DividerHeight:     2,
		DividerColor:      lipgloss.Color("#ECECEC"),
		DividerRune:       '─',
	}
}

func (o Options) density() float64 {
	if o.Density <= 0 {
		return DefaultDensity
	}
	return o.Density
}

func (o Options) engine() *flow.Engine {
	d := o.density()
	return flow.New(
		o.HorizontalSpacing.Cells(d),
		o.VerticalSpacing.Cells(d),
		flow.Uniform(o.Padding.Cells(d)),
	)
}
