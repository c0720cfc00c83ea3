package imaging

import (
	"fmt"
	"image/color"

	"github.com/ironsheep/imagine-mcp/internal/canvas"
	"github.com/ironsheep/imagine-mcp/internal/chart"
	"github.com/ironsheep/imagine-mcp/internal/palette"
)

// defaultLabelSize is the point size of coordinate labels.
const defaultLabelSize = 9

// GridOverlayOptions controls GridOverlay.
type GridOverlayOptions struct {
	// Spacing is the distance between grid lines in pixels.
	Spacing int

	// Color of the grid lines. The zero value is half transparent red.
	Color palette.Color

	// Style of the grid lines; dashed and dotted lines use Spacing/10
	// (at least 2) between marks.
	Style chart.Style

	// ShowCoordinates labels every intersection with its "x,y" position.
	ShowCoordinates bool

	// LabelSize is the label point size. Zero means 9.
	LabelSize float64
}

// GridOverlay draws a pixel-coordinate grid over a copy of img, one line
// every Spacing pixels starting at Spacing.
func (img *Image) GridOverlay(opts GridOverlayOptions) (*Image, error) {
	if opts.Spacing < 1 {
		return nil, fmt.Errorf("%w: grid spacing %d", ErrInvalidArgument, opts.Spacing)
	}
	c := opts.Color
	if c.Palette() == nil {
		red := palette.RGB{}.Convert(color.NRGBA{R: 255, A: 255})
		c, _ = red.WithAlpha(50)
	}
	style, err := chart.NewLineStyle(c, opts.Style, 1, float64(max(2, opts.Spacing/10)))
	if err != nil {
		return nil, err
	}

	out := img.Copy()
	d := out.Draw()
	plotter := chart.NewLinePlotter(d)
	width, height := float64(out.Width()), float64(out.Height())

	for x := opts.Spacing; x < out.Width(); x += opts.Spacing {
		if err := plotter.Plot(canvas.Pt(float64(x), 0), canvas.Pt(float64(x), height-1), style); err != nil {
			return nil, err
		}
	}
	for y := opts.Spacing; y < out.Height(); y += opts.Spacing {
		if err := plotter.Plot(canvas.Pt(0, float64(y)), canvas.Pt(width-1, float64(y)), style); err != nil {
			return nil, err
		}
	}

	if opts.ShowCoordinates {
		if err := drawCoordinates(out, plotter, opts); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// drawCoordinates writes "x,y" in white on a dark band just below and right
// of each intersection.
func drawCoordinates(img *Image, plotter *chart.LinePlotter, opts GridOverlayOptions) error {
	size := opts.LabelSize
	if size == 0 {
		size = defaultLabelSize
	}
	white := palette.RGB{}.Convert(color.White)
	f, err := NewFont(size, white)
	if err != nil {
		return err
	}
	band, err := palette.RGB{}.Color([]float64{0, 0, 0}, 70)
	if err != nil {
		return err
	}
	d := img.Draw()

	for y := opts.Spacing; y < img.Height(); y += opts.Spacing {
		for x := opts.Spacing; x < img.Width(); x += opts.Spacing {
			label := fmt.Sprintf("%d,%d", x, y)
			w, h, err := MeasureText(label, size)
			if err != nil {
				return err
			}
			top := float64(y + 2)
			mid := top + float64(h)/2
			if err := d.Line(canvas.Pt(float64(x+1), mid), canvas.Pt(float64(x+3+w), mid), band, h); err != nil {
				return err
			}
			if err := plotter.Label(canvas.Pt(float64(x+2), top+size), label, f); err != nil {
				return err
			}
		}
	}
	return nil
}
