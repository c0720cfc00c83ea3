package imaging

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ironsheep/imagine-mcp/internal/palette"
)

var (
	red   = color.NRGBA{255, 0, 0, 255}
	green = color.NRGBA{0, 255, 0, 255}
	blue  = color.NRGBA{0, 0, 255, 255}
	white = color.NRGBA{255, 255, 255, 255}
	black = color.NRGBA{0, 0, 0, 255}
	gray  = color.NRGBA{128, 128, 128, 255}
)

// solidImage returns a width x height RGB image filled with c.
func solidImage(t *testing.T, width, height int, c color.Color) *Image {
	t.Helper()
	img, err := Create(width, height, palette.RGB{}, palette.RGB{}.Convert(c))
	require.NoError(t, err)
	return img
}

// patternImage has four quadrants: red top-left, green top-right, blue
// bottom-left, white bottom-right.
func patternImage(width, height int) *Image {
	pix := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			switch {
			case x < width/2 && y < height/2:
				pix.SetNRGBA(x, y, red)
			case y < height/2:
				pix.SetNRGBA(x, y, green)
			case x < width/2:
				pix.SetNRGBA(x, y, blue)
			default:
				pix.SetNRGBA(x, y, white)
			}
		}
	}
	return FromImage(pix, palette.RGB{})
}

// writePNG encodes src into dir/name and returns the path.
func writePNG(t *testing.T, dir, name string, src image.Image) string {
	t.Helper()
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, src))
	return path
}

func pixel(img *Image, x, y int) color.NRGBA {
	return img.Image().NRGBAAt(x, y)
}

// changed counts pixels that differ from c.
func changed(img *Image, c color.NRGBA) int {
	n := 0
	b := img.Image().Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if img.Image().NRGBAAt(x, y) != c {
				n++
			}
		}
	}
	return n
}
