package palette

import (
	"image/color"
	"math"
)

// RGB is the red/green/blue palette with alpha.
type RGB struct{}

var rgbDefinition = []Channel{Red, Green, Blue}

func (RGB) Name() string { return NameRGB }

func (RGB) PixelDefinition() []Channel { return append([]Channel(nil), rgbDefinition...) }

func (RGB) SupportsAlpha() bool { return true }

func (p RGB) Color(values []float64, alpha int) (Color, error) {
	return newColor(p, 255, values, alpha)
}

func (p RGB) Convert(c color.Color) Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	out, _ := p.Color([]float64{float64(n.R), float64(n.G), float64(n.B)}, byteToAlpha(n.A))
	return out
}

// CMYK is the cyan/magenta/yellow/keyline palette. Values are percentages and
// colors are always opaque.
type CMYK struct{}

var cmykDefinition = []Channel{Cyan, Magenta, Yellow, Keyline}

func (CMYK) Name() string { return NameCMYK }

func (CMYK) PixelDefinition() []Channel { return append([]Channel(nil), cmykDefinition...) }

func (CMYK) SupportsAlpha() bool { return false }

func (p CMYK) Color(values []float64, alpha int) (Color, error) {
	return newColor(p, 100, values, alpha)
}

func (p CMYK) Convert(c color.Color) Color {
	n := color.CMYKModel.Convert(c).(color.CMYK)
	out, _ := p.Color([]float64{
		byteToPercent(n.C),
		byteToPercent(n.M),
		byteToPercent(n.Y),
		byteToPercent(n.K),
	}, Opaque)
	return out
}

// Grayscale is the single-channel gray palette with alpha.
type Grayscale struct{}

var grayDefinition = []Channel{Gray}

func (Grayscale) Name() string { return NameGrayscale }

func (Grayscale) PixelDefinition() []Channel { return append([]Channel(nil), grayDefinition...) }

func (Grayscale) SupportsAlpha() bool { return true }

func (p Grayscale) Color(values []float64, alpha int) (Color, error) {
	return newColor(p, 255, values, alpha)
}

func (p Grayscale) Convert(c color.Color) Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	g := color.GrayModel.Convert(color.NRGBA{R: n.R, G: n.G, B: n.B, A: 255}).(color.Gray)
	out, _ := p.Color([]float64{float64(g.Y)}, byteToAlpha(n.A))
	return out
}

func byteToPercent(v uint8) float64 {
	return math.Round(float64(v) * 100 / 255)
}
