// Package chart renders line charts onto any canvas.Surface.
//
// The package is split along the data flow of a render:
//
//   - DataSet collects data-space points and tracks their extrema.
//   - Config turns the extrema, the canvas size and the layout percentages
//     into an affine data-to-pixel transform (scale factors and origin).
//   - GridDrawer draws axes, border, ticks, grid lines and labels by
//     projecting tick positions through Config.Scale.
//   - LinePlotter strokes projected segments as solid, dashed or dotted
//     lines using the surface's Drawer primitives.
//
// LineChart wires the four together.
//
// # Coordinate System
//
// Data space has Y growing upward. Pixel space has (0,0) at the top-left with
// Y growing downward, so Config flips Y when projecting.
package chart

import (
	"errors"
	"fmt"

	"github.com/ironsheep/imagine-mcp/internal/canvas"
	"github.com/ironsheep/imagine-mcp/internal/logging"
)

var (
	// ErrInvalidArgument is returned for malformed input such as a
	// non-finite data point or an unusable line style.
	ErrInvalidArgument = errors.New("chart: invalid argument")

	// ErrInvalidConfiguration is returned when the data and layout cannot
	// produce a finite, positive scale factor on both axes.
	ErrInvalidConfiguration = errors.New("chart: invalid chart configuration")

	// ErrNotConfigured is returned when a Config is used before it has
	// been computed.
	ErrNotConfigured = errors.New("chart: transform not configured")
)

// Options configures a LineChart.
type Options struct {
	Layout Layout
	Grid   GridOptions

	// HideGrid skips the GridDrawer entirely.
	HideGrid bool
}

// DefaultOptions returns a centered layout with a 5% margin and 5% padding,
// drawing the full grid.
func DefaultOptions() Options {
	return Options{
		Layout: Layout{
			MarginPercent:  5,
			PaddingPercent: 5,
		},
	}
}

// LineChart draws data sets as connected lines over a grid.
type LineChart struct {
	opts Options
}

// NewLineChart returns a chart renderer. When Layout.LabelAxes is set and
// Grid.Font is nil, the layout font is used for labels.
func NewLineChart(opts Options) *LineChart {
	if opts.Layout.LabelAxes && opts.Grid.Font == nil {
		opts.Grid.Font = opts.Layout.Font
	}
	if !opts.Layout.LabelAxes {
		opts.Grid.Font = nil
	}
	return &LineChart{opts: opts}
}

// Render draws the grid and then every set onto s, in order, and returns the
// transform that was used. Nothing is drawn when the configuration is
// invalid.
//
// A set without a style is drawn as a solid black line. A set holding a
// single point is drawn as a dot.
func (c *LineChart) Render(s canvas.Surface, sets ...*DataSet) (*Config, error) {
	cfg, err := NewConfig(s.Size(), sets, c.opts.Layout)
	if err != nil {
		return nil, err
	}

	plotter := NewLinePlotter(s.Draw())

	if !c.opts.HideGrid {
		grid, err := NewGridDrawer(cfg, plotter, s.Palette(), c.opts.Grid)
		if err != nil {
			return nil, err
		}
		if err := grid.Draw(); err != nil {
			return nil, fmt.Errorf("failed to draw grid: %w", err)
		}
	}

	fallback := DefaultLineStyle(s.Palette())
	for i, set := range sets {
		if set == nil || set.Len() == 0 {
			continue
		}
		style, ok := set.Style()
		if !ok {
			style = fallback
		}

		pc := NewPointCollection()
		for _, p := range set.Points() {
			px, err := cfg.Scale(p)
			if err != nil {
				return nil, fmt.Errorf("data set %d: %w", i, err)
			}
			pc.Add(px)
		}

		if pc.Len() == 1 {
			if err := plotter.Dot(pc.points[0], style); err != nil {
				return nil, fmt.Errorf("data set %d: %w", i, err)
			}
			continue
		}
		if err := plotter.PlotCollection(pc, style); err != nil {
			return nil, fmt.Errorf("data set %d: %w", i, err)
		}
	}

	logging.Logger().Debug("line chart rendered", "sets", len(sets))
	return cfg, nil
}
