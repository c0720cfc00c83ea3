package chart

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/ironsheep/imagine-mcp/internal/palette"
)

// Style is the stroke pattern of a line.
type Style int

const (
	// Solid draws one continuous line.
	Solid Style = iota
	// Dashed alternates drawn and skipped runs, each spacing pixels long.
	Dashed
	// Dotted draws a filled dot every spacing pixels.
	Dotted
)

func (s Style) String() string {
	switch s {
	case Solid:
		return "solid"
	case Dashed:
		return "dashed"
	case Dotted:
		return "dotted"
	default:
		return fmt.Sprintf("Style(%d)", int(s))
	}
}

// ParseStyle maps "solid", "dashed" or "dotted" to a Style. The empty string
// is Solid.
func ParseStyle(s string) (Style, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "solid":
		return Solid, nil
	case "dashed", "dash":
		return Dashed, nil
	case "dotted", "dot":
		return Dotted, nil
	default:
		return Solid, fmt.Errorf("%w: unknown line style %q", ErrInvalidArgument, s)
	}
}

// LineStyle describes how a line is stroked. It is an immutable value.
type LineStyle struct {
	color     palette.Color
	style     Style
	thickness int
	spacing   float64
}

// NewLineStyle validates and builds a style. Thickness must be at least 1;
// spacing must be positive for dashed and dotted lines and is ignored for
// solid ones.
func NewLineStyle(c palette.Color, style Style, thickness int, spacing float64) (LineStyle, error) {
	if c.Palette() == nil {
		return LineStyle{}, fmt.Errorf("%w: line color is not set", ErrInvalidArgument)
	}
	if style < Solid || style > Dotted {
		return LineStyle{}, fmt.Errorf("%w: unknown line style %d", ErrInvalidArgument, int(style))
	}
	if thickness < 1 {
		return LineStyle{}, fmt.Errorf("%w: thickness %d must be >= 1", ErrInvalidArgument, thickness)
	}
	if style != Solid && (!finite(spacing) || spacing <= 0) {
		return LineStyle{}, fmt.Errorf("%w: %s line needs a positive spacing, got %v", ErrInvalidArgument, style, spacing)
	}
	return LineStyle{color: c, style: style, thickness: thickness, spacing: spacing}, nil
}

// DefaultLineStyle is a solid black line one pixel wide in palette p.
func DefaultLineStyle(p palette.Palette) LineStyle {
	return LineStyle{color: p.Convert(color.Black), style: Solid, thickness: 1, spacing: 1}
}

// Color is the stroke color.
func (s LineStyle) Color() palette.Color { return s.color }

// Style is the stroke pattern.
func (s LineStyle) Style() Style { return s.style }

// Thickness is the stroke width in pixels.
func (s LineStyle) Thickness() int { return s.thickness }

// Spacing is the dash length or dot interval in pixels.
func (s LineStyle) Spacing() float64 { return s.spacing }

// WithColor returns a copy of s drawn in c.
func (s LineStyle) WithColor(c palette.Color) LineStyle {
	s.color = c
	return s
}
