package imaging

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironsheep/imagine-mcp/internal/canvas"
	"github.com/ironsheep/imagine-mcp/internal/palette"
)

func TestCreate(t *testing.T) {
	img := solidImage(t, 30, 20, red)

	assert.Equal(t, canvas.Box{Width: 30, Height: 20}, img.Size())
	assert.Equal(t, palette.NameRGB, img.Palette().Name())

	c, err := img.ColorAt(image.Pt(29, 19))
	require.NoError(t, err)
	assert.Equal(t, []int{255, 0, 0}, c.Values())
	assert.True(t, c.IsOpaque())
}

func TestCreate_DefaultBackground(t *testing.T) {
	img, err := Create(4, 4, palette.Grayscale{}, palette.Color{})
	require.NoError(t, err)

	c, err := img.ColorAt(image.Pt(0, 0))
	require.NoError(t, err)
	assert.Equal(t, []int{255}, c.Values())
	assert.Equal(t, palette.NameGrayscale, c.Palette().Name())
}

func TestCreate_Invalid(t *testing.T) {
	_, err := Create(0, 10, palette.RGB{}, palette.Color{})
	require.ErrorIs(t, err, ErrInvalidArgument)

	_, err = Create(10, -1, palette.RGB{}, palette.Color{})
	require.ErrorIs(t, err, ErrInvalidArgument)

	_, err = Create(10, 10, nil, palette.Color{})
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestColorAt_OutOfBounds(t *testing.T) {
	img := solidImage(t, 10, 10, white)

	for _, p := range []image.Point{{-1, 0}, {0, -1}, {10, 0}, {0, 10}} {
		_, err := img.ColorAt(p)
		assert.ErrorIs(t, err, ErrOutOfBounds, "%v", p)
	}
}

func TestFromImage_NormalizesBounds(t *testing.T) {
	src := image.NewNRGBA(image.Rect(5, 5, 15, 10))
	src.SetNRGBA(5, 5, blue)

	img := FromImage(src, nil)

	assert.Equal(t, image.Rect(0, 0, 10, 5), img.Image().Bounds())
	assert.Equal(t, blue, pixel(img, 0, 0))
	assert.Equal(t, palette.NameRGB, img.Palette().Name())
}

func TestCopy_IsIndependent(t *testing.T) {
	img := solidImage(t, 5, 5, white)
	cp := img.Copy()

	require.NoError(t, cp.Draw().Dot(canvas.Pt(2, 2), palette.RGB{}.Convert(black)))

	assert.Equal(t, black, pixel(cp, 2, 2))
	assert.Equal(t, white, pixel(img, 2, 2))
}

func TestWithPalette(t *testing.T) {
	img := solidImage(t, 3, 3, color.NRGBA{0, 0, 0, 255})

	cmyk := img.WithPalette(palette.CMYK{})
	c, err := cmyk.ColorAt(image.Pt(1, 1))
	require.NoError(t, err)
	assert.Equal(t, palette.NameCMYK, c.Palette().Name())
	assert.Equal(t, 100, c.Values()[3])

	assert.Equal(t, palette.NameRGB, img.Palette().Name())
}

func TestResult(t *testing.T) {
	img := patternImage(40, 20)

	result, err := img.Result()
	require.NoError(t, err)

	assert.Equal(t, 40, result.Width)
	assert.Equal(t, 20, result.Height)
	assert.Equal(t, "image/png", result.MimeType)
	assert.Equal(t, "rgb", result.Palette)

	data, err := base64.StdEncoding.DecodeString(result.ImageBase64)
	require.NoError(t, err)
	decoded, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)

	assert.Equal(t, image.Rect(0, 0, 40, 20), decoded.Bounds())
	r, g, b, _ := decoded.At(35, 15).RGBA()
	assert.Equal(t, [3]uint32{0xffff, 0xffff, 0xffff}, [3]uint32{r, g, b})
}
