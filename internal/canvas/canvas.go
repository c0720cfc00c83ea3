// Package canvas defines the contracts between the pixel algorithms
// (neighborhood filters, chart layout, line plotting) and the image engine
// that owns the pixels.
//
// The algorithms only ever need to read a color, learn the image size, and
// issue a handful of drawing primitives. Keeping those needs in small
// interfaces lets the algorithms be tested against recording fakes and lets
// any engine that implements them be driven by the same code.
package canvas

import (
	"fmt"
	"image"
	"math"

	"github.com/ironsheep/imagine-mcp/internal/palette"
)

// Point is a pixel-space position. Coordinates are fractional so that chart
// projections keep sub-pixel precision until rasterization; they may be
// negative or lie beyond the canvas, in which case drawing is clipped.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

// Image rounds the point to the nearest integer pixel.
func (p Point) Image() image.Point {
	return image.Pt(int(math.Round(p.X)), int(math.Round(p.Y)))
}

// In reports whether the rounded point lies inside a canvas of size b.
func (p Point) In(b Box) bool {
	ip := p.Image()
	return ip.X >= 0 && ip.Y >= 0 && ip.X < b.Width && ip.Y < b.Height
}

func (p Point) String() string {
	return fmt.Sprintf("(%g, %g)", p.X, p.Y)
}

// Box is the size of a canvas in pixels.
type Box struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Surface is a readable image that exposes a Drawer for writing.
type Surface interface {
	// Size returns the canvas dimensions.
	Size() Box

	// ColorAt reads the pixel at p, expressed in the surface palette.
	ColorAt(p image.Point) (palette.Color, error)

	// Palette returns the active color model.
	Palette() palette.Palette

	// Draw returns the drawing primitives bound to this surface.
	Draw() Drawer
}

// Drawer is the set of primitives the plotting and filtering code relies on.
type Drawer interface {
	// Dot writes exactly one pixel, without blending or anti-aliasing.
	Dot(p Point, c palette.Color) error

	// Line strokes a straight segment of the given thickness.
	Line(p1, p2 Point, c palette.Color, thickness int) error

	// Ellipse draws an ellipse centered on center whose bounding box is size.
	// When fill is false only the outline, thickness pixels wide, is drawn.
	Ellipse(center Point, size Box, c palette.Color, fill bool, thickness int) error

	// Text draws s with its baseline origin at p, rotated by angle degrees.
	Text(s string, f Font, p Point, angle float64) error
}

// Font carries what the layout code needs to know about a typeface.
type Font interface {
	// Size returns the point size.
	Size() float64

	// Color returns the text color.
	Color() palette.Color
}
