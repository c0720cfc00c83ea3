// Package filter implements pixel filters that run against any canvas.Surface.
//
// The central piece is Neighborhood, a spatial convolution that weighs each
// interior pixel's neighbors with a kernel matrix. Border detection is a
// Neighborhood fed with one of three predefined Laplacian kernels.
//
// Filters mutate the surface they are applied to and can be composed with
// Chain, which stops at the first failing step.
package filter

import (
	"errors"
	"fmt"

	"github.com/ironsheep/imagine-mcp/internal/canvas"
)

var (
	// ErrInvalidArgument is returned for malformed filter input such as an
	// empty kernel or an unknown border variant.
	ErrInvalidArgument = errors.New("filter: invalid argument")

	// ErrUnsupportedPalette is returned when the surface palette exposes no
	// channels the filter can work on.
	ErrUnsupportedPalette = errors.New("filter: unsupported palette")
)

// Filter mutates a surface in place.
type Filter interface {
	Apply(s canvas.Surface) error
}

// Func adapts a plain function to the Filter interface.
type Func func(s canvas.Surface) error

// Apply calls f(s).
func (f Func) Apply(s canvas.Surface) error { return f(s) }

// Chain applies filters in order.
type Chain []Filter

// Apply runs every filter on s, stopping at the first error.
func (c Chain) Apply(s canvas.Surface) error {
	for i, f := range c {
		if f == nil {
			return fmt.Errorf("%w: filter %d is nil", ErrInvalidArgument, i)
		}
		if err := f.Apply(s); err != nil {
			return fmt.Errorf("filter %d (%T): %w", i, f, err)
		}
	}
	return nil
}
