package imaging

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"

	"github.com/ironsheep/imagine-mcp/internal/canvas"
	"github.com/ironsheep/imagine-mcp/internal/palette"
)

var (
	// ErrInvalidArgument is returned for unusable sizes, regions and
	// parameters.
	ErrInvalidArgument = errors.New("imaging: invalid argument")

	// ErrOutOfBounds is returned when a coordinate or region lies outside
	// the image.
	ErrOutOfBounds = errors.New("imaging: out of bounds")

	// ErrUnsupportedFormat is returned when saving to an extension with no
	// encoder.
	ErrUnsupportedFormat = errors.New("imaging: unsupported format")
)

// Image is an editable raster in a given palette.
//
// Pixels are stored as non-premultiplied RGBA with the origin at (0,0).
// Reads convert each pixel into the palette, so a CMYK or grayscale Image
// reports colors in that model even though storage is RGBA.
type Image struct {
	pix *image.NRGBA
	pal palette.Palette
}

// Create returns a width x height image filled with background.
func Create(width, height int, p palette.Palette, background palette.Color) (*Image, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: image size %dx%d", ErrInvalidArgument, width, height)
	}
	if p == nil {
		return nil, fmt.Errorf("%w: nil palette", ErrInvalidArgument)
	}
	bg := background
	if bg.Palette() == nil {
		bg = p.Convert(color.White)
	}
	return &Image{pix: imaging.New(width, height, bg.NRGBA()), pal: p}, nil
}

// FromImage copies src into a new Image using palette p. The copy is
// translated so that its bounds start at (0,0).
func FromImage(src image.Image, p palette.Palette) *Image {
	if p == nil {
		p = palette.RGB{}
	}
	return &Image{pix: imaging.Clone(src), pal: p}
}

// Copy returns an independent clone of img.
func (img *Image) Copy() *Image {
	return &Image{pix: imaging.Clone(img.pix), pal: img.pal}
}

// Image exposes the underlying buffer for encoding and for the stdlib
// image/draw helpers.
func (img *Image) Image() *image.NRGBA { return img.pix }

// Width returns the image width in pixels.
func (img *Image) Width() int { return img.pix.Bounds().Dx() }

// Height returns the image height in pixels.
func (img *Image) Height() int { return img.pix.Bounds().Dy() }

// Size implements canvas.Surface.
func (img *Image) Size() canvas.Box {
	return canvas.Box{Width: img.Width(), Height: img.Height()}
}

// Palette implements canvas.Surface.
func (img *Image) Palette() palette.Palette { return img.pal }

// ColorAt implements canvas.Surface.
func (img *Image) ColorAt(p image.Point) (palette.Color, error) {
	if !p.In(img.pix.Bounds()) {
		return palette.Color{}, fmt.Errorf("%w: (%d,%d) outside %dx%d", ErrOutOfBounds, p.X, p.Y, img.Width(), img.Height())
	}
	return img.pal.Convert(img.pix.NRGBAAt(p.X, p.Y)), nil
}

// Draw implements canvas.Surface.
func (img *Image) Draw() canvas.Drawer { return &drawer{img: img} }

// WithPalette returns a copy of img that reads and writes in p.
func (img *Image) WithPalette(p palette.Palette) *Image {
	out := img.Copy()
	out.pal = p
	return out
}

// EncodePNG encodes the image as PNG.
func (img *Image) EncodePNG() ([]byte, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img.pix, imaging.PNG); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}
	return buf.Bytes(), nil
}

// ImageResult carries an encoded image back to an MCP client.
type ImageResult struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	Palette     string `json:"palette"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

// Result encodes img as a base64 PNG.
func (img *Image) Result() (*ImageResult, error) {
	data, err := img.EncodePNG()
	if err != nil {
		return nil, err
	}
	return &ImageResult{
		Width:       img.Width(),
		Height:      img.Height(),
		Palette:     img.pal.Name(),
		ImageBase64: base64.StdEncoding.EncodeToString(data),
		MimeType:    "image/png",
	}, nil
}
