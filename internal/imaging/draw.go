package imaging

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"
	"sync"

	"github.com/disintegration/imaging"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"github.com/ironsheep/imagine-mcp/internal/canvas"
	"github.com/ironsheep/imagine-mcp/internal/palette"
)

// kappa places cubic Bézier control points so four curves approximate an
// ellipse.
const kappa = 0.5522847498

// pixelCenter shifts integer coordinates onto pixel centers for the
// rasterizer, whose pixel (x, y) spans [x, x+1) x [y, y+1).
const pixelCenter = 0.5

var (
	regularOnce sync.Once
	regularFont *opentype.Font
	regularErr  error
)

// Font is a size and color for the bundled Go Regular typeface. It
// implements canvas.Font.
type Font struct {
	size  float64
	color palette.Color
}

// NewFont returns a Go Regular font of the given point size, drawn in c.
func NewFont(size float64, c palette.Color) (Font, error) {
	if size <= 0 || math.IsNaN(size) || math.IsInf(size, 0) {
		return Font{}, fmt.Errorf("%w: font size %v", ErrInvalidArgument, size)
	}
	if c.Palette() == nil {
		return Font{}, fmt.Errorf("%w: font color is not set", ErrInvalidArgument)
	}
	return Font{size: size, color: c}, nil
}

func (f Font) Size() float64        { return f.size }
func (f Font) Color() palette.Color { return f.color }

// face opens a new face at size points. Faces are not safe for concurrent
// use, so each call gets its own.
func face(size float64) (font.Face, error) {
	regularOnce.Do(func() {
		regularFont, regularErr = opentype.Parse(goregular.TTF)
	})
	if regularErr != nil {
		return nil, fmt.Errorf("failed to parse font: %w", regularErr)
	}
	return opentype.NewFace(regularFont, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}

// MeasureText returns the advance width and line height of s in pixels.
func MeasureText(s string, size float64) (width, height int, err error) {
	f, err := face(size)
	if err != nil {
		return 0, 0, err
	}
	defer f.Close()
	return font.MeasureString(f, s).Ceil(), f.Metrics().Height.Ceil(), nil
}

// drawer implements canvas.Drawer on an Image. Dot writes the exact pixel
// unless it already holds c;
// every other primitive is anti-aliased and composited over the existing
// pixels.
type drawer struct {
	img *Image
}

func (d *drawer) Dot(p canvas.Point, c palette.Color) error {
	if c.Palette() == nil {
		return fmt.Errorf("%w: dot color is not set", ErrInvalidArgument)
	}
	ip := p.Image()
	if !ip.In(d.img.pix.Bounds()) {
		return nil
	}
	// A color that already reads back from this pixel is left alone, so
	// palettes coarser than 8-bit NRGBA do not drift on rewrite.
	if d.img.pal.Convert(d.img.pix.NRGBAAt(ip.X, ip.Y)) == c {
		return nil
	}
	d.img.pix.SetNRGBA(ip.X, ip.Y, c.NRGBA())
	return nil
}

func (d *drawer) Line(p1, p2 canvas.Point, c palette.Color, thickness int) error {
	if c.Palette() == nil {
		return fmt.Errorf("%w: line color is not set", ErrInvalidArgument)
	}
	if thickness < 1 {
		return fmt.Errorf("%w: line thickness %d", ErrInvalidArgument, thickness)
	}

	half := float64(thickness) / 2
	x1, y1 := p1.X+pixelCenter, p1.Y+pixelCenter
	x2, y2 := p2.X+pixelCenter, p2.Y+pixelCenter
	dx, dy := x2-x1, y2-y1
	length := math.Hypot(dx, dy)

	z := d.rasterizer()
	if length == 0 {
		rectPath(z, x1-half, y1-half, x1+half, y1+half)
	} else {
		nx, ny := -dy/length*half, dx/length*half
		z.MoveTo(float32(x1+nx), float32(y1+ny))
		z.LineTo(float32(x2+nx), float32(y2+ny))
		z.LineTo(float32(x2-nx), float32(y2-ny))
		z.LineTo(float32(x1-nx), float32(y1-ny))
		z.ClosePath()
	}
	d.fill(z, c)
	return nil
}

func (d *drawer) Ellipse(center canvas.Point, size canvas.Box, c palette.Color, fill bool, thickness int) error {
	if c.Palette() == nil {
		return fmt.Errorf("%w: ellipse color is not set", ErrInvalidArgument)
	}
	if size.Width < 0 || size.Height < 0 {
		return fmt.Errorf("%w: ellipse size %dx%d", ErrInvalidArgument, size.Width, size.Height)
	}
	if size.Width == 0 || size.Height == 0 {
		return nil
	}
	if !fill && thickness < 1 {
		return fmt.Errorf("%w: outline thickness %d", ErrInvalidArgument, thickness)
	}

	cx, cy := center.X+pixelCenter, center.Y+pixelCenter
	rx, ry := float64(size.Width)/2, float64(size.Height)/2

	z := d.rasterizer()
	switch {
	case fill && size.Width == 1 && size.Height == 1:
		rectPath(z, cx-rx, cy-ry, cx+rx, cy+ry)
	case fill || float64(thickness) >= math.Min(rx, ry):
		ellipsePath(z, cx, cy, rx, ry, false)
	default:
		t := float64(thickness)
		ellipsePath(z, cx, cy, rx, ry, false)
		ellipsePath(z, cx, cy, rx-t, ry-t, true)
	}
	d.fill(z, c)
	return nil
}

// Text draws s with its baseline origin at p. A non-zero angle rotates the
// text counter-clockwise, in degrees, around the center of its bounding box.
func (d *drawer) Text(s string, f canvas.Font, p canvas.Point, angle float64) error {
	if f == nil {
		return fmt.Errorf("%w: nil font", ErrInvalidArgument)
	}
	if s == "" {
		return nil
	}
	ff, err := face(f.Size())
	if err != nil {
		return err
	}
	defer ff.Close()
	src := image.NewUniform(f.Color().NRGBA())

	if angle == 0 {
		fd := font.Drawer{Dst: d.img.pix, Src: src, Face: ff, Dot: toFixed(p)}
		fd.DrawString(s)
		return nil
	}

	bounds, _ := font.BoundString(ff, s)
	w := (bounds.Max.X - bounds.Min.X).Ceil()
	h := (bounds.Max.Y - bounds.Min.Y).Ceil()
	if w <= 0 || h <= 0 {
		return nil
	}
	tmp := image.NewNRGBA(image.Rect(0, 0, w, h))
	fd := font.Drawer{
		Dst:  tmp,
		Src:  src,
		Face: ff,
		Dot:  fixed.Point26_6{X: -bounds.Min.X, Y: -bounds.Min.Y},
	}
	fd.DrawString(s)

	rotated := imaging.Rotate(tmp, angle, color.Transparent)
	midX := p.X + float64(bounds.Min.X+bounds.Max.X)/128
	midY := p.Y + float64(bounds.Min.Y+bounds.Max.Y)/128
	at := image.Pt(
		int(math.Round(midX-float64(rotated.Bounds().Dx())/2)),
		int(math.Round(midY-float64(rotated.Bounds().Dy())/2)),
	)
	draw.Draw(d.img.pix, rotated.Bounds().Add(at), rotated, image.Point{}, draw.Over)
	return nil
}

func (d *drawer) rasterizer() *vector.Rasterizer {
	b := d.img.pix.Bounds()
	return vector.NewRasterizer(b.Dx(), b.Dy())
}

func (d *drawer) fill(z *vector.Rasterizer, c palette.Color) {
	z.DrawOp = draw.Over
	z.Draw(d.img.pix, d.img.pix.Bounds(), image.NewUniform(c.NRGBA()), image.Point{})
}

func rectPath(z *vector.Rasterizer, x0, y0, x1, y1 float64) {
	z.MoveTo(float32(x0), float32(y0))
	z.LineTo(float32(x1), float32(y0))
	z.LineTo(float32(x1), float32(y1))
	z.LineTo(float32(x0), float32(y1))
	z.ClosePath()
}

// ellipsePath adds a closed ellipse to z. reverse winds it the other way so
// it cuts a hole out of an enclosing path.
func ellipsePath(z *vector.Rasterizer, cx, cy, rx, ry float64, reverse bool) {
	kx, ky := kappa*rx, kappa*ry
	f := func(v float64) float32 { return float32(v) }

	z.MoveTo(f(cx+rx), f(cy))
	if !reverse {
		z.CubeTo(f(cx+rx), f(cy+ky), f(cx+kx), f(cy+ry), f(cx), f(cy+ry))
		z.CubeTo(f(cx-kx), f(cy+ry), f(cx-rx), f(cy+ky), f(cx-rx), f(cy))
		z.CubeTo(f(cx-rx), f(cy-ky), f(cx-kx), f(cy-ry), f(cx), f(cy-ry))
		z.CubeTo(f(cx+kx), f(cy-ry), f(cx+rx), f(cy-ky), f(cx+rx), f(cy))
	} else {
		z.CubeTo(f(cx+rx), f(cy-ky), f(cx+kx), f(cy-ry), f(cx), f(cy-ry))
		z.CubeTo(f(cx-kx), f(cy-ry), f(cx-rx), f(cy-ky), f(cx-rx), f(cy))
		z.CubeTo(f(cx-rx), f(cy+ky), f(cx-kx), f(cy+ry), f(cx), f(cy+ry))
		z.CubeTo(f(cx+kx), f(cy+ry), f(cx+rx), f(cy+ky), f(cx+rx), f(cy))
	}
	z.ClosePath()
}

func toFixed(p canvas.Point) fixed.Point26_6 {
	return fixed.Point26_6{
		X: fixed.Int26_6(math.Round(p.X * 64)),
		Y: fixed.Int26_6(math.Round(p.Y * 64)),
	}
}
