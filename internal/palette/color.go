package palette

import (
	"fmt"
	"image/color"
	"strings"
)

// Color is an immutable palette-tagged channel vector.
//
// Colors are comparable with ==; two colors are equal when they belong to the
// same palette and carry the same channel values and alpha. Color implements
// color.Color so it can be written straight into a draw.Image.
type Color struct {
	palette Palette
	values  [maxChannels]int
	n       int
	alpha   int
}

var _ color.Color = Color{}

// Palette returns the palette the color belongs to.
func (c Color) Palette() Palette { return c.palette }

// Alpha returns the opacity percentage (0-100).
func (c Color) Alpha() int { return c.alpha }

// IsOpaque reports whether alpha is 100.
func (c Color) IsOpaque() bool { return c.alpha == Opaque }

// Values returns the channel values in pixel-definition order.
func (c Color) Values() []int {
	out := make([]int, c.n)
	copy(out, c.values[:c.n])
	return out
}

// ValueAt returns the value of the i-th channel in pixel-definition order,
// or 0 when i is out of range.
func (c Color) ValueAt(i int) int {
	if i < 0 || i >= c.n {
		return 0
	}
	return c.values[i]
}

// Value returns the value of a single channel.
func (c Color) Value(ch Channel) (int, error) {
	if c.palette == nil {
		return 0, fmt.Errorf("%w: zero color has no channels", ErrInvalidArgument)
	}
	for i, d := range c.palette.PixelDefinition() {
		if d == ch {
			return c.values[i], nil
		}
	}
	return 0, fmt.Errorf("%w: channel %q not in %s palette", ErrInvalidArgument, ch, c.palette.Name())
}

// WithAlpha returns a copy of c with a different alpha.
func (c Color) WithAlpha(alpha int) (Color, error) {
	if c.palette == nil {
		return Color{}, fmt.Errorf("%w: zero color", ErrInvalidArgument)
	}
	vals := make([]float64, c.n)
	for i := 0; i < c.n; i++ {
		vals[i] = float64(c.values[i])
	}
	return c.palette.Color(vals, alpha)
}

// NRGBA converts the color to non-premultiplied 8-bit RGBA.
func (c Color) NRGBA() color.NRGBA {
	a := alphaToByte(c.alpha)
	if c.palette == nil {
		return color.NRGBA{}
	}
	switch c.palette.Name() {
	case NameCMYK:
		cm := color.CMYK{
			C: percentToByte(c.values[0]),
			M: percentToByte(c.values[1]),
			Y: percentToByte(c.values[2]),
			K: percentToByte(c.values[3]),
		}
		r, g, b := color.CMYKToRGB(cm.C, cm.M, cm.Y, cm.K)
		return color.NRGBA{R: r, G: g, B: b, A: a}
	case NameGrayscale:
		g := uint8(c.values[0])
		return color.NRGBA{R: g, G: g, B: g, A: a}
	default:
		return color.NRGBA{R: uint8(c.values[0]), G: uint8(c.values[1]), B: uint8(c.values[2]), A: a}
	}
}

// RGBA implements color.Color.
func (c Color) RGBA() (r, g, b, a uint32) {
	return c.NRGBA().RGBA()
}

// String renders the color as "rgb(255, 0, 0, 100%)".
func (c Color) String() string {
	if c.palette == nil {
		return "<nil color>"
	}
	parts := make([]string, 0, c.n)
	for _, v := range c.values[:c.n] {
		parts = append(parts, fmt.Sprint(v))
	}
	return fmt.Sprintf("%s(%s, %d%%)", c.palette.Name(), strings.Join(parts, ", "), c.alpha)
}

func percentToByte(v int) uint8 {
	return uint8((v*255 + 50) / 100)
}
