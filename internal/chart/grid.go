package chart

import (
	"fmt"
	"image/color"
	"strconv"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/imagine-mcp/internal/canvas"
	"github.com/ironsheep/imagine-mcp/internal/palette"
)

// DefaultScaleStep is the data-space distance between ticks.
const DefaultScaleStep = 5.0

// defaultTickSize is the half length of a tick mark in pixels.
const defaultTickSize = 3.0

// minTickPixels is the smallest on-canvas distance between ticks. Finer
// steps are coarsened by powers of ten.
const minTickPixels = 1.0

// gridLightening is how far grid lines are blended from the axis color
// toward white.
const gridLightening = 0.75

// GridOptions controls what the GridDrawer renders. The zero value draws
// everything with default steps; labels need a Font.
type GridOptions struct {
	// ScaleStepX and ScaleStepY are the tick spacing in data units.
	// Zero means DefaultScaleStep.
	ScaleStepX float64
	ScaleStepY float64

	// TickSize is the half length of tick marks in pixels. Zero means 3.
	TickSize float64

	// AxisStyle strokes the axes, border and ticks. Nil means a solid
	// one pixel black line.
	AxisStyle *LineStyle

	// GridStyle strokes background grid lines. Nil means AxisStyle,
	// solid, with its color lightened toward white.
	GridStyle *LineStyle

	// Font draws tick labels. Nil disables labels.
	Font canvas.Font

	HideAxes   bool
	HideBorder bool
	HideTicks  bool
	HideGrid   bool
}

// GridDrawer renders the chart furniture (grid lines, border, axes, ticks and
// labels) by mapping data-space tick positions through a Config.
type GridDrawer struct {
	cfg     *Config
	plotter *LinePlotter
	stepX   float64
	stepY   float64
	tick    float64
	axis    LineStyle
	grid    LineStyle
	font    canvas.Font

	hideAxes   bool
	hideBorder bool
	hideTicks  bool
	hideGrid   bool
}

// NewGridDrawer prepares a grid for cfg. p is the palette of the target
// surface, used for the default styles.
func NewGridDrawer(cfg *Config, plotter *LinePlotter, p palette.Palette, opts GridOptions) (*GridDrawer, error) {
	if cfg == nil || !cfg.configured {
		return nil, ErrNotConfigured
	}
	if plotter == nil {
		return nil, fmt.Errorf("%w: nil plotter", ErrInvalidArgument)
	}

	g := &GridDrawer{
		cfg:     cfg,
		plotter: plotter,
		stepX:   opts.ScaleStepX,
		stepY:   opts.ScaleStepY,
		tick:    opts.TickSize,
		font:    opts.Font,

		hideAxes:   opts.HideAxes,
		hideBorder: opts.HideBorder,
		hideTicks:  opts.HideTicks,
		hideGrid:   opts.HideGrid,
	}
	if g.stepX == 0 {
		g.stepX = DefaultScaleStep
	}
	if g.stepY == 0 {
		g.stepY = DefaultScaleStep
	}
	if !finite(g.stepX) || !finite(g.stepY) || g.stepX < 0 || g.stepY < 0 {
		return nil, fmt.Errorf("%w: scale steps must be positive, got %g, %g", ErrInvalidArgument, g.stepX, g.stepY)
	}
	if g.tick == 0 {
		g.tick = defaultTickSize
	}
	sx, sy := cfg.ScaleFactors()
	g.stepX = coarsen(g.stepX, sx)
	g.stepY = coarsen(g.stepY, sy)

	if opts.AxisStyle != nil {
		g.axis = *opts.AxisStyle
	} else {
		g.axis = DefaultLineStyle(p)
	}
	if opts.GridStyle != nil {
		g.grid = *opts.GridStyle
	} else {
		g.grid = g.axis.WithColor(lighten(p, g.axis.Color()))
		g.grid.style = Solid
	}
	return g, nil
}

// Draw renders the enabled elements, back to front: grid lines, border,
// axes, ticks, labels.
func (g *GridDrawer) Draw() error {
	steps := []struct {
		skip bool
		draw func() error
	}{
		{g.hideGrid, g.drawGrid},
		{g.hideBorder, g.drawBorder},
		{g.hideAxes, g.drawAxes},
		{g.hideTicks, g.drawTicks},
		{g.font == nil, g.drawLabels},
	}
	for _, s := range steps {
		if s.skip {
			continue
		}
		if err := s.draw(); err != nil {
			return err
		}
	}
	return nil
}

// TicksX returns the data-space x positions of ticks, origin excluded.
func (g *GridDrawer) TicksX() []float64 {
	r := g.cfg.Ranges()
	return tickPositions(g.stepX, r.NegativeX, r.PositiveX)
}

// TicksY returns the data-space y positions of ticks, origin excluded.
func (g *GridDrawer) TicksY() []float64 {
	r := g.cfg.Ranges()
	return tickPositions(g.stepY, r.NegativeY, r.PositiveY)
}

func (g *GridDrawer) drawGrid() error {
	r := g.cfg.Ranges()
	for _, x := range g.TicksX() {
		if err := g.segment(DataPoint{x, r.NegativeY}, DataPoint{x, r.PositiveY}, g.grid); err != nil {
			return err
		}
	}
	for _, y := range g.TicksY() {
		if err := g.segment(DataPoint{r.NegativeX, y}, DataPoint{r.PositiveX, y}, g.grid); err != nil {
			return err
		}
	}
	return nil
}

func (g *GridDrawer) drawBorder() error {
	size := g.cfg.Size()
	mx, my := g.cfg.Margins()
	w, h := float64(size.Width), float64(size.Height)

	pc := NewPointCollection(
		canvas.Pt(mx, my),
		canvas.Pt(w-mx, my),
		canvas.Pt(w-mx, h-my),
		canvas.Pt(mx, h-my),
		canvas.Pt(mx, my),
	)
	return g.plotter.PlotCollection(pc, g.axis)
}

func (g *GridDrawer) drawAxes() error {
	size := g.cfg.Size()
	o := g.cfg.Origin()
	if err := g.plotter.Plot(canvas.Pt(0, o.Y), canvas.Pt(float64(size.Width), o.Y), g.axis); err != nil {
		return err
	}
	return g.plotter.Plot(canvas.Pt(o.X, 0), canvas.Pt(o.X, float64(size.Height)), g.axis)
}

func (g *GridDrawer) drawTicks() error {
	for _, x := range g.TicksX() {
		p, err := g.cfg.Scale(DataPoint{x, 0})
		if err != nil {
			return err
		}
		if err := g.plotter.Plot(canvas.Pt(p.X, p.Y-g.tick), canvas.Pt(p.X, p.Y+g.tick), g.axis); err != nil {
			return err
		}
	}
	for _, y := range g.TicksY() {
		p, err := g.cfg.Scale(DataPoint{0, y})
		if err != nil {
			return err
		}
		if err := g.plotter.Plot(canvas.Pt(p.X-g.tick, p.Y), canvas.Pt(p.X+g.tick, p.Y), g.axis); err != nil {
			return err
		}
	}
	return nil
}

// drawLabels writes each tick value as a 3 character, left padded string:
// below the x axis, and to the left of the y axis.
func (g *GridDrawer) drawLabels() error {
	size := g.font.Size()
	charWidth := size * 3 / 4

	for _, x := range g.TicksX() {
		p, err := g.cfg.Scale(DataPoint{x, 0})
		if err != nil {
			return err
		}
		at := canvas.Pt(p.X-1.5*charWidth, p.Y+g.tick+size)
		if err := g.plotter.Label(at, TickLabel(x), g.font); err != nil {
			return err
		}
	}
	for _, y := range g.TicksY() {
		p, err := g.cfg.Scale(DataPoint{0, y})
		if err != nil {
			return err
		}
		at := canvas.Pt(p.X-g.tick-3*charWidth, p.Y+size/2)
		if err := g.plotter.Label(at, TickLabel(y), g.font); err != nil {
			return err
		}
	}
	return nil
}

func (g *GridDrawer) segment(a, b DataPoint, style LineStyle) error {
	pa, err := g.cfg.Scale(a)
	if err != nil {
		return err
	}
	pb, err := g.cfg.Scale(b)
	if err != nil {
		return err
	}
	return g.plotter.Plot(pa, pb, style)
}

// TickLabel formats a tick value left padded to three characters.
func TickLabel(v float64) string {
	return fmt.Sprintf("%3s", strconv.FormatFloat(v, 'f', -1, 64))
}

// coarsen multiplies step by ten until neighbouring ticks are at least
// minTickPixels apart at the given pixels-per-unit scale.
func coarsen(step, scale float64) float64 {
	if step <= 0 || !finite(scale) || scale <= 0 {
		return step
	}
	for step*scale < minTickPixels {
		step *= 10
	}
	return step
}

// tickPositions lists step multiples in (0, positive] and [negative, 0).
func tickPositions(step, negative, positive float64) []float64 {
	if step <= 0 {
		return nil
	}
	var out []float64
	for i := 1; ; i++ {
		v := float64(i) * step
		if v > positive+thresholdTolerance {
			break
		}
		out = append(out, v)
	}
	for i := 1; ; i++ {
		v := -float64(i) * step
		if v < negative-thresholdTolerance {
			break
		}
		out = append(out, v)
	}
	return out
}

// lighten blends c toward white in Lab space and converts back into p.
func lighten(p palette.Palette, c palette.Color) palette.Color {
	base, ok := colorful.MakeColor(c)
	if !ok {
		return c
	}
	white := colorful.Color{R: 1, G: 1, B: 1}
	r, gr, b := base.BlendLab(white, gridLightening).Clamped().RGB255()
	out := p.Convert(color.NRGBA{R: r, G: gr, B: b, A: 255})
	if c.Alpha() == palette.Opaque || !p.SupportsAlpha() {
		return out
	}
	if translucent, err := out.WithAlpha(c.Alpha()); err == nil {
		return translucent
	}
	return out
}
