package chart

import (
	"fmt"
	"math"

	"github.com/ironsheep/imagine-mcp/internal/canvas"
	"github.com/ironsheep/imagine-mcp/internal/logging"
)

// Layout holds the user-facing inputs of the data-to-pixel transform.
type Layout struct {
	// FitViewToData places the origin where the data needs it. When false
	// (the default) each axis is made symmetric around the origin using the
	// larger of its positive and negative extents, centering the origin.
	FitViewToData bool

	// MarginPercent is the outer margin on each side, as a share of the
	// canvas dimension. See NormalizePercent for accepted forms.
	MarginPercent float64

	// PaddingPercent is the inner padding between the margin and the data,
	// normalized like MarginPercent.
	PaddingPercent float64

	// LabelAxes reserves room for tick labels. It only takes effect when
	// Font is also set.
	LabelAxes bool

	// Font is used to size the label margin and to draw labels.
	Font canvas.Font
}

// Ranges are the data-space extents shown on each axis. Negative values are
// <= 0 and positive values >= 0.
type Ranges struct {
	PositiveX float64 `json:"positive_x"`
	NegativeX float64 `json:"negative_x"`
	PositiveY float64 `json:"positive_y"`
	NegativeY float64 `json:"negative_y"`
}

// Config is the affine transform from data space to pixel space for one
// canvas and one collection of data sets. It is computed once by NewConfig
// and read-only afterwards.
type Config struct {
	width, height    int
	marginX, marginY float64
	paddingX         float64
	paddingY         float64
	labelMargin      float64
	scaleX, scaleY   float64
	origin           canvas.Point
	ranges           Ranges
	configured       bool
}

// NormalizePercent turns a percentage into a fraction.
//
// Values strictly between 0 and 1 are taken as fractions already. Anything
// else is divided by 100, and a result whose magnitude exceeds 1 collapses to
// 0 rather than being clamped, so 150 means "no margin", not "full margin".
func NormalizePercent(p float64) float64 {
	if p > 0 && p < 1 {
		return p
	}
	f := p / 100
	if math.Abs(f) > 1 || math.IsNaN(f) {
		return 0
	}
	return f
}

// LabelMargin returns the pixel room reserved for tick labels: three
// characters of roughly 3/4 of the font size each.
func LabelMargin(labelAxes bool, f canvas.Font) float64 {
	if !labelAxes || f == nil {
		return 0
	}
	return f.Size() * 3 / 4 * 3
}

// NewConfig computes the transform for a canvas of the given size showing
// every point of sets.
//
// # Algorithm
//
//  1. Scan all sets for min/max x and y.
//  2. positiveX = max(maxX, 0), negativeX = min(minX, 0) (same for y). Unless
//     FitViewToData, both become ±max(|positive|, |negative|).
//  3. margin = marginPercent*dimension + labelMargin and
//     padding = paddingPercent*dimension, per axis.
//  4. scale = (dimension - 2*margin - 2*padding) / (positive + |negative|).
//  5. originX = marginX + paddingX + |negativeX|*scaleX and
//     originY = height - marginY - paddingY - |negativeY|*scaleY.
//  6. The ranges are widened outward by padding/scale so the padding shows
//     as data space.
//
// Errors:
//   - ErrInvalidConfiguration if the canvas is empty, no set holds a point,
//     or an axis range is zero or otherwise yields a scale factor that is not
//     finite and positive
func NewConfig(size canvas.Box, sets []*DataSet, layout Layout) (*Config, error) {
	if size.Width <= 0 || size.Height <= 0 {
		return nil, fmt.Errorf("%w: canvas %dx%d is empty", ErrInvalidConfiguration, size.Width, size.Height)
	}

	ext := emptyExtrema()
	points := 0
	for _, set := range sets {
		if set == nil {
			continue
		}
		if e, ok := set.Extrema(); ok {
			ext.merge(e)
			points += set.Len()
		}
	}
	if points == 0 {
		return nil, fmt.Errorf("%w: no data points", ErrInvalidConfiguration)
	}

	r := Ranges{
		PositiveX: math.Max(ext.MaxX, 0),
		NegativeX: math.Min(ext.MinX, 0),
		PositiveY: math.Max(ext.MaxY, 0),
		NegativeY: math.Min(ext.MinY, 0),
	}
	if !layout.FitViewToData {
		x := math.Max(r.PositiveX, math.Abs(r.NegativeX))
		y := math.Max(r.PositiveY, math.Abs(r.NegativeY))
		r.PositiveX, r.NegativeX = x, -x
		r.PositiveY, r.NegativeY = y, -y
	}
	xRange := r.PositiveX + math.Abs(r.NegativeX)
	yRange := r.PositiveY + math.Abs(r.NegativeY)

	w, h := float64(size.Width), float64(size.Height)
	margin := NormalizePercent(layout.MarginPercent)
	padding := NormalizePercent(layout.PaddingPercent)

	c := &Config{
		width:       size.Width,
		height:      size.Height,
		labelMargin: LabelMargin(layout.LabelAxes, layout.Font),
		paddingX:    padding * w,
		paddingY:    padding * h,
	}
	c.marginX = margin*w + c.labelMargin
	c.marginY = margin*h + c.labelMargin

	if xRange == 0 || yRange == 0 {
		return nil, fmt.Errorf("%w: data range is %gx%g", ErrInvalidConfiguration, xRange, yRange)
	}
	c.scaleX = (w - 2*c.marginX - 2*c.paddingX) / xRange
	c.scaleY = (h - 2*c.marginY - 2*c.paddingY) / yRange
	if !finite(c.scaleX) || !finite(c.scaleY) || c.scaleX <= 0 || c.scaleY <= 0 {
		return nil, fmt.Errorf("%w: scale factors %g, %g", ErrInvalidConfiguration, c.scaleX, c.scaleY)
	}

	leftoverX := c.paddingX / c.scaleX
	leftoverY := c.paddingY / c.scaleY

	c.origin = canvas.Point{
		X: c.marginX + c.paddingX + math.Abs(r.NegativeX)*c.scaleX,
		Y: h - c.marginY - c.paddingY - math.Abs(r.NegativeY)*c.scaleY,
	}

	r.NegativeX -= leftoverX
	r.PositiveX += leftoverX
	r.NegativeY -= leftoverY
	r.PositiveY += leftoverY
	c.ranges = r
	c.configured = true

	logging.Logger().Debug("chart configured",
		"scaleX", c.scaleX, "scaleY", c.scaleY,
		"origin", c.origin.String(),
		"x", fmt.Sprintf("[%g, %g]", r.NegativeX, r.PositiveX),
		"y", fmt.Sprintf("[%g, %g]", r.NegativeY, r.PositiveY))

	return c, nil
}

// Scale projects a data point onto the canvas:
//
//	(scaleX*x + originX, originY - scaleY*y)
//
// Projected points may be negative or beyond the canvas when the data lies
// outside the view; they are returned unchanged and clipping is left to the
// drawer.
//
// Errors:
//   - ErrNotConfigured on a Config not produced by NewConfig
//   - ErrInvalidArgument if p is not finite
func (c *Config) Scale(p DataPoint) (canvas.Point, error) {
	if c == nil || !c.configured {
		return canvas.Point{}, ErrNotConfigured
	}
	if !finite(p.X) || !finite(p.Y) {
		return canvas.Point{}, fmt.Errorf("%w: data point (%v, %v) is not finite", ErrInvalidArgument, p.X, p.Y)
	}
	return canvas.Point{
		X: c.scaleX*p.X + c.origin.X,
		Y: c.origin.Y - c.scaleY*p.Y,
	}, nil
}

// ScaleFactors returns pixels per data unit on each axis.
func (c *Config) ScaleFactors() (x, y float64) { return c.scaleX, c.scaleY }

// Origin returns the pixel position of data-space (0, 0).
func (c *Config) Origin() canvas.Point { return c.origin }

// Ranges returns the visible data-space extents, padding included.
func (c *Config) Ranges() Ranges { return c.ranges }

// Size returns the canvas size the transform was computed for.
func (c *Config) Size() canvas.Box { return canvas.Box{Width: c.width, Height: c.height} }

// Margins returns the pixel margin on each axis, label margin included.
func (c *Config) Margins() (x, y float64) { return c.marginX, c.marginY }

// Paddings returns the pixel padding on each axis.
func (c *Config) Paddings() (x, y float64) { return c.paddingX, c.paddingY }

// LabelMargin returns the pixel room reserved for tick labels.
func (c *Config) LabelMargin() float64 { return c.labelMargin }
