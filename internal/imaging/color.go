package imaging

import (
	"fmt"
	"image"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// RGBColor represents an RGB color with 8-bit components.
type RGBColor struct {
	R uint8 `json:"r"` // Red component (0-255)
	G uint8 `json:"g"` // Green component (0-255)
	B uint8 `json:"b"` // Blue component (0-255)
}

// HSLColor represents a color in HSL (Hue, Saturation, Lightness) color space.
type HSLColor struct {
	H int `json:"h"` // Hue: 0-360 degrees (0=red, 120=green, 240=blue)
	S int `json:"s"` // Saturation: 0-100 percent (0=gray, 100=vivid)
	L int `json:"l"` // Lightness: 0-100 percent (0=black, 50=normal, 100=white)
}

// ColorResult describes one pixel, both in the image palette and in the usual
// RGB based notations.
type ColorResult struct {
	Hex     string   `json:"hex"`     // Hex format "#RRGGBB" (no alpha)
	RGB     RGBColor `json:"rgb"`     // RGB components
	HSL     HSLColor `json:"hsl"`     // HSL representation
	Palette string   `json:"palette"` // Palette name of the image
	Values  []int    `json:"values"`  // Channel values in palette order
	Alpha   int      `json:"alpha"`   // Opacity percentage (0-100)
}

// SampleColor reads the color at (x, y).
//
// Coordinates are 0-based with origin at top-left:
//   - Valid X range: 0 to width-1
//   - Valid Y range: 0 to height-1
func SampleColor(img *Image, x, y int) (*ColorResult, error) {
	c, err := img.ColorAt(image.Pt(x, y))
	if err != nil {
		return nil, err
	}

	n := c.NRGBA()
	cf := colorful.Color{R: float64(n.R) / 255, G: float64(n.G) / 255, B: float64(n.B) / 255}
	h, s, l := cf.Hsl()
	if math.IsNaN(h) {
		h = 0
	}

	return &ColorResult{
		Hex:     fmt.Sprintf("#%02X%02X%02X", n.R, n.G, n.B),
		RGB:     RGBColor{R: n.R, G: n.G, B: n.B},
		HSL:     HSLColor{H: int(h), S: int(s * 100), L: int(l * 100)},
		Palette: img.Palette().Name(),
		Values:  c.Values(),
		Alpha:   c.Alpha(),
	}, nil
}

// LabeledPoint represents a pixel coordinate with an optional descriptive label.
type LabeledPoint struct {
	X     int    `json:"x"`               // X coordinate (0-based)
	Y     int    `json:"y"`               // Y coordinate (0-based)
	Label string `json:"label,omitempty"` // Optional descriptive label for this point
}

// LabeledColorResult combines a color sample with its location and optional label.
type LabeledColorResult struct {
	Label string      `json:"label,omitempty"`
	X     int         `json:"x"`
	Y     int         `json:"y"`
	Color ColorResult `json:"color"`
}

// MultiColorResult contains color samples from multiple points, in input order.
type MultiColorResult struct {
	Samples []LabeledColorResult `json:"samples"`
}

// SampleColorsMulti samples every point in order. On error no partial results
// are returned.
func SampleColorsMulti(img *Image, points []LabeledPoint) (*MultiColorResult, error) {
	results := make([]LabeledColorResult, 0, len(points))

	for _, p := range points {
		color, err := SampleColor(img, p.X, p.Y)
		if err != nil {
			return nil, fmt.Errorf("failed to sample point (%d,%d): %w", p.X, p.Y, err)
		}
		results = append(results, LabeledColorResult{
			Label: p.Label,
			X:     p.X,
			Y:     p.Y,
			Color: *color,
		})
	}

	return &MultiColorResult{Samples: results}, nil
}
