package chart

import (
	"fmt"
	"math"

	"github.com/ironsheep/imagine-mcp/internal/canvas"
)

// DrawResolution is the number of samples per horizontal extent used when
// walking a dashed or dotted segment.
const DrawResolution = 10

// thresholdTolerance absorbs float error when comparing a sampled distance
// against the spacing.
const thresholdTolerance = 1e-9

// LinePlotter strokes segments with a LineStyle using the primitives of a
// canvas.Drawer.
type LinePlotter struct {
	draw canvas.Drawer
}

// NewLinePlotter returns a plotter drawing through d.
func NewLinePlotter(d canvas.Drawer) *LinePlotter {
	return &LinePlotter{draw: d}
}

// Plot draws the segment p1-p2.
//
// Solid lines are a single Drawer.Line call. Dashed and dotted lines are
// sampled parametrically, always left to right (and top to bottom when
// vertical), so the pattern phase does not depend on argument order:
//
//   - non-vertical: x advances by max(1, dx/DrawResolution) and y follows
//     the line equation
//   - vertical: y advances by the spacing
//
// The squared distance from the last committed sample is compared with
// spacing². Each time it is reached a dotted line draws a filled dot of
// diameter thickness, and a dashed line commits the run, drawing it when the
// run is "on" and toggling between on and off. The first sample of a dotted
// line is always a dot.
func (lp *LinePlotter) Plot(p1, p2 canvas.Point, style LineStyle) error {
	if style.Color().Palette() == nil {
		return fmt.Errorf("%w: line style has no color", ErrInvalidArgument)
	}
	if style.Style() == Solid {
		return lp.draw.Line(p1, p2, style.Color(), style.Thickness())
	}
	if style.Spacing() <= 0 {
		return fmt.Errorf("%w: %s line needs a positive spacing", ErrInvalidArgument, style.Style())
	}

	samples := sampleSegment(p1, p2, style.Spacing())

	switch style.Style() {
	case Dashed:
		return lp.dashes(samples, style)
	case Dotted:
		return lp.dots(samples, style)
	default:
		return fmt.Errorf("%w: unknown line style %d", ErrInvalidArgument, int(style.Style()))
	}
}

// PlotCollection draws every remaining pair of pc. The cursor is consumed;
// call pc.Reset to plot the same chain again.
func (lp *LinePlotter) PlotCollection(pc *PointCollection, style LineStyle) error {
	for a, b, ok := pc.NextPair(); ok; a, b, ok = pc.NextPair() {
		if err := lp.Plot(a, b, style); err != nil {
			return err
		}
	}
	return nil
}

// Dot draws a single filled dot of diameter thickness at p.
func (lp *LinePlotter) Dot(p canvas.Point, style LineStyle) error {
	t := style.Thickness()
	return lp.draw.Ellipse(p, canvas.Box{Width: t, Height: t}, style.Color(), true, t)
}

// Label draws text with its baseline origin at p.
func (lp *LinePlotter) Label(p canvas.Point, text string, f canvas.Font) error {
	return lp.draw.Text(text, f, p, 0)
}

func (lp *LinePlotter) dashes(samples []canvas.Point, style LineStyle) error {
	limit := style.Spacing() * style.Spacing() * (1 - thresholdTolerance)
	last := samples[0]
	on := true
	for _, s := range samples[1:] {
		if dist2(last, s) < limit {
			continue
		}
		if on {
			if err := lp.draw.Line(last, s, style.Color(), style.Thickness()); err != nil {
				return err
			}
		}
		on = !on
		last = s
	}
	return nil
}

func (lp *LinePlotter) dots(samples []canvas.Point, style LineStyle) error {
	limit := style.Spacing() * style.Spacing() * (1 - thresholdTolerance)
	last := samples[0]
	if err := lp.Dot(last, style); err != nil {
		return err
	}
	for _, s := range samples[1:] {
		if dist2(last, s) < limit {
			continue
		}
		if err := lp.Dot(s, style); err != nil {
			return err
		}
		last = s
	}
	return nil
}

// sampleSegment walks p1-p2 and returns the sample positions, starting at
// the normalized first endpoint.
func sampleSegment(p1, p2 canvas.Point, spacing float64) []canvas.Point {
	if p1.X > p2.X {
		p1, p2 = p2, p1
	}

	if p1.X == p2.X {
		if p1.Y > p2.Y {
			p1, p2 = p2, p1
		}
		n := int(math.Floor((p2.Y-p1.Y)/spacing + thresholdTolerance))
		out := make([]canvas.Point, 0, n+1)
		for i := 0; i <= n; i++ {
			out = append(out, canvas.Point{X: p1.X, Y: p1.Y + float64(i)*spacing})
		}
		return out
	}

	dx := p2.X - p1.X
	slope := (p2.Y - p1.Y) / dx
	step := math.Max(1, dx/DrawResolution)

	n := int(math.Floor(dx/step + thresholdTolerance))
	out := make([]canvas.Point, 0, n+1)
	for i := 0; i <= n; i++ {
		off := float64(i) * step
		out = append(out, canvas.Point{X: p1.X + off, Y: p1.Y + slope*off})
	}
	return out
}

func dist2(a, b canvas.Point) float64 {
	dx := b.X - a.X
	dy := b.Y - a.Y
	return dx*dx + dy*dy
}
