package filter

import (
	"fmt"
	"image"

	"golang.org/x/exp/constraints"

	"github.com/ironsheep/imagine-mcp/internal/canvas"
	"github.com/ironsheep/imagine-mcp/internal/logging"
	"github.com/ironsheep/imagine-mcp/internal/matrix"
	"github.com/ironsheep/imagine-mcp/internal/palette"
)

// Neighborhood replaces every interior pixel with the kernel-weighted sum of
// its neighbors, channel by channel, in the surface's own palette.
//
// # Algorithm
//
//  1. Read the channel set from the palette's pixel definition.
//  2. Snapshot every source pixel into a Matrix[palette.Color]. All reads of
//     the pass come from this snapshot, so a written pixel is never read back
//     as a neighbor.
//  3. With dW = (kernelWidth-1)/2 and dH = (kernelHeight-1)/2, visit each
//     (x, y) with dW <= x < width-dW and dH <= y < height-dH.
//  4. Sum weight(kx, ky) * channel(snapshot(x+kx-dW, y+ky-dH)) per channel.
//  5. Build the color through the palette (which rounds and clamps) keeping
//     the center pixel's alpha, and write it with Drawer.Dot.
//
// Pixels closer than dW/dH to an edge are left exactly as they were: there is
// no wraparound and no edge extrapolation.
type Neighborhood struct {
	kernel *matrix.Matrix[float64]
}

// NewNeighborhood creates a filter for the given kernel. The kernel is copied,
// so later changes to it do not affect the filter.
//
// Kernels are normally odd-sized; even sizes are accepted and simply centered
// toward the top-left.
func NewNeighborhood(kernel *matrix.Matrix[float64]) (*Neighborhood, error) {
	if kernel == nil || kernel.Width() == 0 || kernel.Height() == 0 {
		return nil, fmt.Errorf("%w: kernel must have non-zero dimensions", ErrInvalidArgument)
	}
	k, err := matrix.New(kernel.Width(), kernel.Height(), kernel.Values()...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}
	return &Neighborhood{kernel: k}, nil
}

// KernelFrom converts an integer or floating point matrix into a kernel.
func KernelFrom[T constraints.Integer | constraints.Float](m *matrix.Matrix[T]) (*matrix.Matrix[float64], error) {
	if m == nil {
		return nil, fmt.Errorf("%w: nil kernel", ErrInvalidArgument)
	}
	src := m.Values()
	vals := make([]float64, len(src))
	for i, v := range src {
		vals[i] = float64(v)
	}
	k, err := matrix.New(m.Width(), m.Height(), vals...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}
	return k, nil
}

// Kernel returns a copy of the filter's kernel.
func (n *Neighborhood) Kernel() *matrix.Matrix[float64] {
	return matrix.MustNew(n.kernel.Width(), n.kernel.Height(), n.kernel.Values()...)
}

// Apply runs the convolution on s in place.
func (n *Neighborhood) Apply(s canvas.Surface) error {
	pal := s.Palette()
	if pal == nil {
		return fmt.Errorf("%w: surface has no palette", ErrUnsupportedPalette)
	}
	channels := pal.PixelDefinition()
	if len(channels) == 0 {
		return fmt.Errorf("%w: %s defines no channels", ErrUnsupportedPalette, pal.Name())
	}

	size := s.Size()
	if size.Width == 0 || size.Height == 0 {
		return nil
	}

	pixels, err := snapshot(s, size)
	if err != nil {
		return err
	}

	kw, kh := n.kernel.Width(), n.kernel.Height()
	dW := (kw - 1) / 2
	dH := (kh - 1) / 2
	weights := n.kernel.Values()

	logging.Logger().Debug("neighborhood filter",
		"palette", pal.Name(),
		"kernel", fmt.Sprintf("%dx%d", kw, kh),
		"size", fmt.Sprintf("%dx%d", size.Width, size.Height))

	draw := s.Draw()
	acc := make([]float64, len(channels))

	for y := dH; y < size.Height-dH; y++ {
		for x := dW; x < size.Width-dW; x++ {
			for i := range acc {
				acc[i] = 0
			}

			for ky := 0; ky < kh; ky++ {
				for kx := 0; kx < kw; kx++ {
					w := weights[ky*kw+kx]
					if w == 0 {
						continue
					}
					px, err := pixels.At(x+kx-dW, y+ky-dH)
					if err != nil {
						return err
					}
					for i := range channels {
						acc[i] += w * float64(px.ValueAt(i))
					}
				}
			}

			center, err := pixels.At(x, y)
			if err != nil {
				return err
			}
			c, err := pal.Color(acc, center.Alpha())
			if err != nil {
				return fmt.Errorf("pixel (%d,%d): %w", x, y, err)
			}
			if err := draw.Dot(canvas.Pt(float64(x), float64(y)), c); err != nil {
				return fmt.Errorf("pixel (%d,%d): %w", x, y, err)
			}
		}
	}

	return nil
}

// snapshot reads every pixel of s exactly once.
func snapshot(s canvas.Surface, size canvas.Box) (*matrix.Matrix[palette.Color], error) {
	m, err := matrix.New[palette.Color](size.Width, size.Height)
	if err != nil {
		return nil, err
	}
	for y := 0; y < size.Height; y++ {
		for x := 0; x < size.Width; x++ {
			c, err := s.ColorAt(image.Pt(x, y))
			if err != nil {
				return nil, fmt.Errorf("failed to read pixel (%d,%d): %w", x, y, err)
			}
			if err := m.Set(x, y, c); err != nil {
				return nil, err
			}
		}
	}
	return m, nil
}
