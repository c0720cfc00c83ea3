package imaging

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"strings"

	"github.com/disintegration/imaging"

	"github.com/ironsheep/imagine-mcp/internal/palette"
)

// Filters maps resampling filter names accepted by Resize and Thumbnail.
var Filters = map[string]imaging.ResampleFilter{
	"nearest":  imaging.NearestNeighbor,
	"linear":   imaging.Linear,
	"catmull":  imaging.CatmullRom,
	"lanczos":  imaging.Lanczos,
	"box":      imaging.Box,
	"gaussian": imaging.Gaussian,
}

// ParseFilter looks up a resampling filter by name. The empty string is
// Lanczos.
func ParseFilter(name string) (imaging.ResampleFilter, error) {
	if name == "" {
		return imaging.Lanczos, nil
	}
	f, ok := Filters[strings.ToLower(name)]
	if !ok {
		return imaging.ResampleFilter{}, fmt.Errorf("%w: unknown filter %q", ErrInvalidArgument, name)
	}
	return f, nil
}

// Resize scales img to width x height. A zero width or height keeps the
// aspect ratio; both zero is an error.
func (img *Image) Resize(width, height int, filter imaging.ResampleFilter) (*Image, error) {
	if width < 0 || height < 0 || (width == 0 && height == 0) {
		return nil, fmt.Errorf("%w: resize to %dx%d", ErrInvalidArgument, width, height)
	}
	return &Image{pix: imaging.Resize(img.pix, width, height, filter), pal: img.pal}, nil
}

// Thumbnail scales and center-crops img to exactly width x height.
func (img *Image) Thumbnail(width, height int, filter imaging.ResampleFilter) (*Image, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: thumbnail size %dx%d", ErrInvalidArgument, width, height)
	}
	return &Image{pix: imaging.Thumbnail(img.pix, width, height, filter), pal: img.pal}, nil
}

// Rotate turns img counter-clockwise by angle degrees. The canvas grows to
// fit and uncovered corners are filled with background; a zero background is
// transparent.
func (img *Image) Rotate(angle float64, background palette.Color) (*Image, error) {
	if math.IsNaN(angle) || math.IsInf(angle, 0) {
		return nil, fmt.Errorf("%w: rotation angle %v", ErrInvalidArgument, angle)
	}
	var bg color.Color = color.Transparent
	if background.Palette() != nil {
		bg = background.NRGBA()
	}
	return &Image{pix: imaging.Rotate(img.pix, angle, bg), pal: img.pal}, nil
}

// FlipHorizontally mirrors img left to right.
func (img *Image) FlipHorizontally() *Image {
	return &Image{pix: imaging.FlipH(img.pix), pal: img.pal}
}

// FlipVertically mirrors img top to bottom.
func (img *Image) FlipVertically() *Image {
	return &Image{pix: imaging.FlipV(img.pix), pal: img.pal}
}

// Paste copies src onto a copy of img with its top-left corner at pos.
// opacity is a percentage; 100 replaces the covered pixels and lower values
// blend src over them.
func (img *Image) Paste(src *Image, pos image.Point, opacity int) (*Image, error) {
	if src == nil {
		return nil, fmt.Errorf("%w: nil source image", ErrInvalidArgument)
	}
	if opacity < 0 || opacity > palette.Opaque {
		return nil, fmt.Errorf("%w: opacity %d outside 0-100", ErrInvalidArgument, opacity)
	}
	if opacity == palette.Opaque {
		return &Image{pix: imaging.Paste(img.pix, src.pix, pos), pal: img.pal}, nil
	}
	return &Image{pix: imaging.Overlay(img.pix, src.pix, pos, float64(opacity)/100), pal: img.pal}, nil
}
