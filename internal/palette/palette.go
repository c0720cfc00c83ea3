// Package palette models the color spaces an image can be edited in.
//
// A Palette names its channels in order (its pixel definition), knows the
// legal range of each channel, and constructs immutable Color values from raw
// channel numbers. Engines that transform pixels channel-by-channel, such as
// the neighborhood filter, iterate PixelDefinition instead of switching on a
// palette name, so a new palette only has to implement this interface.
//
// Three palettes are provided:
//   - RGB: red, green, blue in 0-255, with alpha
//   - CMYK: cyan, magenta, yellow, keyline in 0-100, always opaque
//   - Grayscale: gray in 0-255, with alpha
//
// Alpha is an opacity percentage: 0 is fully transparent, 100 fully opaque.
package palette

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// ErrInvalidArgument is returned for malformed color input: wrong channel
// count, alpha outside 0-100, alpha on a palette without transparency, or an
// unparsable color string.
var ErrInvalidArgument = errors.New("palette: invalid argument")

// Channel identifies one component of a pixel.
type Channel string

// Channel identifiers used by the provided palettes.
const (
	Red     Channel = "red"
	Green   Channel = "green"
	Blue    Channel = "blue"
	Cyan    Channel = "cyan"
	Magenta Channel = "magenta"
	Yellow  Channel = "yellow"
	Keyline Channel = "keyline"
	Gray    Channel = "gray"
)

// Palette names.
const (
	NameRGB       = "rgb"
	NameCMYK      = "cmyk"
	NameGrayscale = "gray"
)

// Opaque is the alpha value of a fully opaque color.
const Opaque = 100

// maxChannels bounds the pixel definition length of any palette.
const maxChannels = 4

// Palette is a color model.
type Palette interface {
	// Name returns a short identifier such as "rgb".
	Name() string

	// PixelDefinition lists the channels in the order Color expects them.
	PixelDefinition() []Channel

	// SupportsAlpha reports whether colors may be translucent.
	SupportsAlpha() bool

	// Color builds a color from one value per channel. Values are rounded
	// and clamped into the channel range without error; only a wrong
	// number of values or an invalid alpha is rejected.
	Color(values []float64, alpha int) (Color, error)

	// Convert maps any color.Color into this palette.
	Convert(c color.Color) Color
}

// ByName returns the palette registered under name.
func ByName(name string) (Palette, error) {
	switch strings.ToLower(name) {
	case NameRGB:
		return RGB{}, nil
	case NameCMYK:
		return CMYK{}, nil
	case NameGrayscale, "grayscale":
		return Grayscale{}, nil
	default:
		return nil, fmt.Errorf("%w: unknown palette %q", ErrInvalidArgument, name)
	}
}

// Parse reads a hex color ("#RGB", "#RRGGBB" or "#RRGGBBAA") and converts it
// into p. The optional trailing byte is alpha (00 transparent, FF opaque).
func Parse(p Palette, hex string) (Color, error) {
	s := strings.TrimSpace(hex)
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}

	alpha := Opaque
	if len(s) == 9 {
		a, err := strconv.ParseUint(s[7:], 16, 8)
		if err != nil {
			return Color{}, fmt.Errorf("%w: bad alpha in %q", ErrInvalidArgument, hex)
		}
		alpha = int(math.Round(float64(a) * 100 / 255))
		s = s[:7]
	}

	c, err := colorful.Hex(s)
	if err != nil {
		return Color{}, fmt.Errorf("%w: %q: %v", ErrInvalidArgument, hex, err)
	}

	r, g, b := c.RGB255()
	converted := p.Convert(color.NRGBA{R: r, G: g, B: b, A: 255})
	if alpha == Opaque || !p.SupportsAlpha() {
		return converted, nil
	}
	return converted.WithAlpha(alpha)
}

// MustParse is like Parse but panics on error. Use it for literal colors.
func MustParse(p Palette, hex string) Color {
	c, err := Parse(p, hex)
	if err != nil {
		panic(err)
	}
	return c
}

// newColor validates arity and alpha, then rounds and clamps every value into
// [0, max].
func newColor(p Palette, max int, values []float64, alpha int) (Color, error) {
	def := p.PixelDefinition()
	if len(values) != len(def) {
		return Color{}, fmt.Errorf("%w: %s color takes %d values, got %d",
			ErrInvalidArgument, p.Name(), len(def), len(values))
	}
	if alpha < 0 || alpha > Opaque {
		return Color{}, fmt.Errorf("%w: alpha %d outside 0-100", ErrInvalidArgument, alpha)
	}
	if alpha != Opaque && !p.SupportsAlpha() {
		return Color{}, fmt.Errorf("%w: %s palette does not support alpha", ErrInvalidArgument, p.Name())
	}

	c := Color{palette: p, n: len(values), alpha: alpha}
	for i, v := range values {
		c.values[i] = clampChannel(v, max)
	}
	return c, nil
}

// clampChannel rounds v and limits it to [0, max]. NaN becomes 0 so that a
// degenerate computation never leaks into pixel data.
func clampChannel(v float64, max int) int {
	if math.IsNaN(v) {
		return 0
	}
	r := math.Round(v)
	if r < 0 {
		return 0
	}
	if r > float64(max) {
		return max
	}
	return int(r)
}

func alphaToByte(alpha int) uint8 {
	return uint8(math.Round(float64(alpha) * 255 / Opaque))
}

func byteToAlpha(a uint8) int {
	return int(math.Round(float64(a) * Opaque / 255))
}
