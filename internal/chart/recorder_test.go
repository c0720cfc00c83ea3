package chart

import (
	"image"
	"image/color"

	"github.com/ironsheep/imagine-mcp/internal/canvas"
	"github.com/ironsheep/imagine-mcp/internal/palette"
)

type lineCall struct {
	P1, P2    canvas.Point
	Color     palette.Color
	Thickness int
}

type ellipseCall struct {
	Center canvas.Point
	Size   canvas.Box
	Fill   bool
}

type textCall struct {
	Text  string
	At    canvas.Point
	Angle float64
}

// recorder is a canvas.Surface whose Drawer only records calls.
type recorder struct {
	size     canvas.Box
	lines    []lineCall
	ellipses []ellipseCall
	texts    []textCall
	dots     int
}

func newRecorder(w, h int) *recorder {
	return &recorder{size: canvas.Box{Width: w, Height: h}}
}

func (r *recorder) Size() canvas.Box         { return r.size }
func (r *recorder) Palette() palette.Palette { return palette.RGB{} }
func (r *recorder) Draw() canvas.Drawer      { return r }

func (r *recorder) ColorAt(image.Point) (palette.Color, error) {
	return palette.RGB{}.Convert(color.White), nil
}

func (r *recorder) Dot(canvas.Point, palette.Color) error {
	r.dots++
	return nil
}

func (r *recorder) Line(p1, p2 canvas.Point, c palette.Color, thickness int) error {
	r.lines = append(r.lines, lineCall{P1: p1, P2: p2, Color: c, Thickness: thickness})
	return nil
}

func (r *recorder) Ellipse(center canvas.Point, size canvas.Box, _ palette.Color, fill bool, _ int) error {
	r.ellipses = append(r.ellipses, ellipseCall{Center: center, Size: size, Fill: fill})
	return nil
}

func (r *recorder) Text(s string, _ canvas.Font, p canvas.Point, angle float64) error {
	r.texts = append(r.texts, textCall{Text: s, At: p, Angle: angle})
	return nil
}

func (r *recorder) calls() int {
	return len(r.lines) + len(r.ellipses) + len(r.texts) + r.dots
}

type fakeFont struct{ size float64 }

func (f fakeFont) Size() float64 { return f.size }

func (f fakeFont) Color() palette.Color { return palette.RGB{}.Convert(color.Black) }
