package imaging

import (
	"fmt"
	"math"
	"strings"

	"github.com/anthonynsimon/bild/adjust"
	"github.com/anthonynsimon/bild/blur"
	"github.com/anthonynsimon/bild/effect"

	"github.com/ironsheep/imagine-mcp/internal/filter"
	"github.com/ironsheep/imagine-mcp/internal/logging"
	"github.com/ironsheep/imagine-mcp/internal/matrix"
)

// Negative inverts every color channel, keeping alpha.
func (img *Image) Negative() *Image {
	return FromImage(effect.Invert(img.pix), img.pal)
}

// Grayscale removes color using luminance weights. The palette is kept.
func (img *Image) Grayscale() *Image {
	return FromImage(effect.Grayscale(img.pix), img.pal)
}

// Sharpen applies a 3x3 sharpening kernel.
func (img *Image) Sharpen() *Image {
	return FromImage(effect.Sharpen(img.pix), img.pal)
}

// Blur applies a Gaussian blur of the given radius in pixels.
func (img *Image) Blur(radius float64) (*Image, error) {
	if radius <= 0 || !isFinite(radius) {
		return nil, fmt.Errorf("%w: blur radius %v", ErrInvalidArgument, radius)
	}
	return FromImage(blur.Gaussian(img.pix, radius), img.pal), nil
}

// Gamma applies gamma correction; values above 1 brighten.
func (img *Image) Gamma(gamma float64) (*Image, error) {
	if gamma <= 0 || !isFinite(gamma) {
		return nil, fmt.Errorf("%w: gamma %v", ErrInvalidArgument, gamma)
	}
	return FromImage(adjust.Gamma(img.pix, gamma), img.pal), nil
}

// Brightness shifts brightness by change, from -1 (black) to 1 (white).
func (img *Image) Brightness(change float64) (*Image, error) {
	if change < -1 || change > 1 || !isFinite(change) {
		return nil, fmt.Errorf("%w: brightness change %v outside [-1, 1]", ErrInvalidArgument, change)
	}
	return FromImage(adjust.Brightness(img.pix, change), img.pal), nil
}

// Contrast scales contrast by change, from -1 (flat gray) to 1.
func (img *Image) Contrast(change float64) (*Image, error) {
	if change < -1 || change > 1 || !isFinite(change) {
		return nil, fmt.Errorf("%w: contrast change %v outside [-1, 1]", ErrInvalidArgument, change)
	}
	return FromImage(adjust.Contrast(img.pix, change), img.pal), nil
}

// Convolve runs the neighborhood filter with kernel over a copy of img, in
// the image's palette. Border pixels that the kernel cannot cover are copied
// unchanged.
func (img *Image) Convolve(kernel *matrix.Matrix[float64]) (*Image, error) {
	n, err := filter.NewNeighborhood(kernel)
	if err != nil {
		return nil, err
	}
	return img.apply(n)
}

// DetectBorders runs one of the predefined border detection kernels over a
// copy of img.
func (img *Image) DetectBorders(v filter.BorderVariant) (*Image, error) {
	n, err := filter.NewBorderDetection(v)
	if err != nil {
		return nil, err
	}
	return img.apply(n)
}

// ApplyFilters runs fs in order over a copy of img.
func (img *Image) ApplyFilters(fs ...filter.Filter) (*Image, error) {
	return img.apply(filter.Chain(fs))
}

func (img *Image) apply(f filter.Filter) (*Image, error) {
	out := img.Copy()
	if err := f.Apply(out); err != nil {
		return nil, err
	}
	logging.Logger().Debug("filter applied", "filter", fmt.Sprintf("%T", f), "size", fmt.Sprintf("%dx%d", out.Width(), out.Height()))
	return out, nil
}

// Effects lists the names accepted by ApplyEffect.
var Effects = []string{"negative", "grayscale", "sharpen", "blur", "gamma", "brightness", "contrast"}

// ApplyEffect runs a named effect. amount is the blur radius, the gamma, or
// the brightness or contrast change; it is ignored by the other effects.
func (img *Image) ApplyEffect(name string, amount float64) (*Image, error) {
	switch strings.ToLower(name) {
	case "negative", "invert":
		return img.Negative(), nil
	case "grayscale", "greyscale":
		return img.Grayscale(), nil
	case "sharpen":
		return img.Sharpen(), nil
	case "blur":
		return img.Blur(amount)
	case "gamma":
		return img.Gamma(amount)
	case "brightness":
		return img.Brightness(amount)
	case "contrast":
		return img.Contrast(amount)
	default:
		return nil, fmt.Errorf("%w: unknown effect %q (want one of %s)", ErrInvalidArgument, name, strings.Join(Effects, ", "))
	}
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
