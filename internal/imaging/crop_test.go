package imaging

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCrop(t *testing.T) {
	img := patternImage(100, 100)

	result, err := img.Crop(0, 0, 50, 50, 1.0)
	require.NoError(t, err)

	assert.Equal(t, 50, result.Width())
	assert.Equal(t, 50, result.Height())
	assert.Zero(t, changed(result, red), "top-left quadrant is all red")
	assert.Equal(t, img.Palette(), result.Palette())
}

func TestCrop_WithScale(t *testing.T) {
	img := solidImage(t, 100, 100, red)

	tests := []struct {
		name          string
		x2, y2        int
		scale         float64
		width, height int
	}{
		{"scale up", 50, 50, 2.0, 100, 100},
		{"scale down", 100, 100, 0.5, 50, 50},
		{"zero scale ignored", 40, 20, 0, 40, 20},
		{"negative scale ignored", 40, 20, -3, 40, 20},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := img.Crop(0, 0, tt.x2, tt.y2, tt.scale)
			require.NoError(t, err)
			assert.Equal(t, tt.width, result.Width())
			assert.Equal(t, tt.height, result.Height())
		})
	}

	_, err := img.Crop(0, 0, 10, 10, 0.01)
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestCrop_OutOfBounds(t *testing.T) {
	img := solidImage(t, 100, 100, red)

	tests := []struct {
		name           string
		x1, y1, x2, y2 int
	}{
		{"negative x1", -1, 0, 50, 50},
		{"negative y1", 0, -1, 50, 50},
		{"x2 beyond width", 0, 0, 101, 50},
		{"y2 beyond height", 0, 0, 50, 101},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := img.Crop(tt.x1, tt.y1, tt.x2, tt.y2, 1.0)
			require.ErrorIs(t, err, ErrOutOfBounds)
		})
	}
}

func TestCrop_InvalidRegion(t *testing.T) {
	img := solidImage(t, 100, 100, red)

	for _, r := range [][4]int{{50, 0, 50, 50}, {0, 50, 50, 50}, {60, 0, 50, 50}} {
		_, err := img.Crop(r[0], r[1], r[2], r[3], 1.0)
		assert.ErrorIs(t, err, ErrInvalidArgument, "%v", r)
	}
}

func TestCrop_VerifyContent(t *testing.T) {
	img := patternImage(100, 100)

	result, err := img.Crop(40, 40, 60, 60, 1.0)
	require.NoError(t, err)

	assert.Equal(t, red, pixel(result, 0, 0))
	assert.Equal(t, green, pixel(result, 19, 0))
	assert.Equal(t, blue, pixel(result, 0, 19))
	assert.Equal(t, white, pixel(result, 19, 19))
}

func TestCropRegion(t *testing.T) {
	img := patternImage(100, 80)

	tests := []struct {
		region        string
		width, height int
		corner        color.NRGBA
	}{
		{"top-left", 50, 40, red},
		{"top-right", 50, 40, green},
		{"bottom-left", 50, 40, blue},
		{"bottom-right", 50, 40, white},
		{"top-half", 100, 40, red},
		{"bottom-half", 100, 40, blue},
		{"left-half", 50, 80, red},
		{"right-half", 50, 80, green},
		{"center", 50, 40, red},
	}
	for _, tt := range tests {
		t.Run(tt.region, func(t *testing.T) {
			result, err := img.CropRegion(tt.region, 1.0)
			require.NoError(t, err)
			assert.Equal(t, tt.width, result.Width())
			assert.Equal(t, tt.height, result.Height())
			assert.Equal(t, tt.corner, pixel(result, 0, 0))
		})
	}
}

func TestCropRegion_InvalidRegion(t *testing.T) {
	img := patternImage(10, 10)

	_, err := img.CropRegion("middle-ish", 1.0)
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestCropRegion_OddDimensions(t *testing.T) {
	img := patternImage(101, 99)

	left, err := img.CropRegion("left-half", 1.0)
	require.NoError(t, err)
	right, err := img.CropRegion("right-half", 1.0)
	require.NoError(t, err)

	assert.Equal(t, 101, left.Width()+right.Width())
	assert.Equal(t, 99, left.Height())
}
