package imaging

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironsheep/imagine-mcp/internal/palette"
)

func TestSampleColor_KnownColors(t *testing.T) {
	tests := []struct {
		name string
		c    color.NRGBA
		hex  string
		hsl  HSLColor
	}{
		{"red", red, "#FF0000", HSLColor{0, 100, 50}},
		{"green", green, "#00FF00", HSLColor{120, 100, 50}},
		{"blue", blue, "#0000FF", HSLColor{240, 100, 50}},
		{"white", white, "#FFFFFF", HSLColor{0, 0, 100}},
		{"black", black, "#000000", HSLColor{0, 0, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := solidImage(t, 3, 3, tt.c)

			result, err := SampleColor(img, 1, 1)
			require.NoError(t, err)

			assert.Equal(t, tt.hex, result.Hex)
			assert.Equal(t, RGBColor{tt.c.R, tt.c.G, tt.c.B}, result.RGB)
			assert.Equal(t, tt.hsl, result.HSL)
			assert.Equal(t, "rgb", result.Palette)
			assert.Equal(t, []int{int(tt.c.R), int(tt.c.G), int(tt.c.B)}, result.Values)
			assert.Equal(t, 100, result.Alpha)
		})
	}
}

func TestSampleColor_Translucent(t *testing.T) {
	pix := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	pix.SetNRGBA(0, 0, color.NRGBA{10, 20, 30, 128})

	result, err := SampleColor(FromImage(pix, palette.RGB{}), 0, 0)
	require.NoError(t, err)

	assert.Equal(t, "#0A141E", result.Hex)
	assert.Equal(t, 50, result.Alpha)
}

func TestSampleColor_OtherPalettes(t *testing.T) {
	img := solidImage(t, 2, 2, color.NRGBA{0, 0, 0, 255})

	result, err := SampleColor(img.WithPalette(palette.CMYK{}), 0, 0)
	require.NoError(t, err)
	assert.Equal(t, "cmyk", result.Palette)
	assert.Equal(t, []int{0, 0, 0, 100}, result.Values)

	result, err = SampleColor(img.WithPalette(palette.Grayscale{}), 1, 1)
	require.NoError(t, err)
	assert.Equal(t, "gray", result.Palette)
	assert.Equal(t, []int{0}, result.Values)
}

func TestSampleColor_OutOfBounds(t *testing.T) {
	img := solidImage(t, 10, 10, red)

	for _, p := range [][2]int{{-1, 0}, {0, -1}, {10, 0}, {0, 10}, {100, 100}} {
		_, err := SampleColor(img, p[0], p[1])
		assert.ErrorIs(t, err, ErrOutOfBounds, "%v", p)
	}
}

func TestSampleColor_EdgeCoordinates(t *testing.T) {
	img := patternImage(10, 10)

	for _, tc := range []struct {
		x, y int
		hex  string
	}{
		{0, 0, "#FF0000"},
		{9, 0, "#00FF00"},
		{0, 9, "#0000FF"},
		{9, 9, "#FFFFFF"},
	} {
		result, err := SampleColor(img, tc.x, tc.y)
		require.NoError(t, err)
		assert.Equal(t, tc.hex, result.Hex, "(%d,%d)", tc.x, tc.y)
	}
}

func TestSampleColorsMulti(t *testing.T) {
	img := patternImage(10, 10)

	result, err := SampleColorsMulti(img, []LabeledPoint{
		{X: 0, Y: 0, Label: "top-left"},
		{X: 9, Y: 9},
	})
	require.NoError(t, err)

	require.Len(t, result.Samples, 2)
	assert.Equal(t, "top-left", result.Samples[0].Label)
	assert.Equal(t, "#FF0000", result.Samples[0].Color.Hex)
	assert.Empty(t, result.Samples[1].Label)
	assert.Equal(t, "#FFFFFF", result.Samples[1].Color.Hex)

	empty, err := SampleColorsMulti(img, nil)
	require.NoError(t, err)
	assert.Empty(t, empty.Samples)

	_, err = SampleColorsMulti(img, []LabeledPoint{{X: 0, Y: 0}, {X: 50, Y: 0}})
	require.ErrorIs(t, err, ErrOutOfBounds)
}
