// Package matrix provides a dense, bounds-checked 2D grid of arbitrary values.
//
// A Matrix is the storage substrate for convolution kernels (Matrix[float64])
// and for per-pixel snapshots taken before an image is rewritten
// (Matrix[palette.Color]). Cells are addressed as (x, y) with x in
// [0, Width) and y in [0, Height), stored row-major at offset y*Width + x.
//
// Public accessors never panic on bad coordinates; they return ErrOutOfBounds
// wrapped with the offending position so callers can match it with errors.Is.
package matrix

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidArgument is returned when a matrix cannot be constructed from
	// the given shape or initial values.
	ErrInvalidArgument = errors.New("matrix: invalid argument")

	// ErrOutOfBounds is returned when an (x, y) access lies outside the matrix.
	ErrOutOfBounds = errors.New("matrix: index out of bounds")
)

// Matrix is a width×height grid of T values in row-major order.
//
// A Matrix is exclusively owned by its creator; it performs no locking.
type Matrix[T any] struct {
	width    int
	height   int
	elements []T
}

// New allocates a width×height matrix.
//
// When values are supplied their count must be exactly width*height; they are
// copied in row-major order (the first width values form row 0). Without
// values every cell holds the zero value of T.
//
// Errors:
//   - ErrInvalidArgument if width or height is not positive
//   - ErrInvalidArgument if len(values) is neither 0 nor width*height
func New[T any](width, height int, values ...T) (*Matrix[T], error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: dimensions %dx%d must be positive", ErrInvalidArgument, width, height)
	}

	size := width * height
	elements := make([]T, size)
	if len(values) > 0 {
		if len(values) != size {
			return nil, fmt.Errorf("%w: got %d values for a %dx%d matrix, want %d",
				ErrInvalidArgument, len(values), width, height, size)
		}
		copy(elements, values)
	}

	return &Matrix[T]{
		width:    width,
		height:   height,
		elements: elements,
	}, nil
}

// MustNew is like New but panics on error. It is meant for package-level
// fixtures such as predefined kernels whose shape is known to be valid.
func MustNew[T any](width, height int, values ...T) *Matrix[T] {
	m, err := New(width, height, values...)
	if err != nil {
		panic(err)
	}
	return m
}

// Width returns the number of columns.
func (m *Matrix[T]) Width() int { return m.width }

// Height returns the number of rows.
func (m *Matrix[T]) Height() int { return m.height }

// At returns the value stored at (x, y).
func (m *Matrix[T]) At(x, y int) (T, error) {
	i, err := m.offset("At", x, y)
	if err != nil {
		var zero T
		return zero, err
	}
	return m.elements[i], nil
}

// Set overwrites the value stored at (x, y).
func (m *Matrix[T]) Set(x, y int, value T) error {
	i, err := m.offset("Set", x, y)
	if err != nil {
		return err
	}
	m.elements[i] = value
	return nil
}

// Values returns a row-major copy of every cell.
func (m *Matrix[T]) Values() []T {
	out := make([]T, len(m.elements))
	copy(out, m.elements)
	return out
}

// String renders the matrix one row per line, e.g. "[0 1 0]\n[1 -4 1]\n...".
func (m *Matrix[T]) String() string {
	var sb strings.Builder
	for y := 0; y < m.height; y++ {
		row := m.elements[y*m.width : (y+1)*m.width]
		fmt.Fprintf(&sb, "%v\n", row)
	}
	return sb.String()
}

func (m *Matrix[T]) offset(method string, x, y int) (int, error) {
	if x < 0 || x >= m.width || y < 0 || y >= m.height {
		return 0, fmt.Errorf("Matrix.%s(%d,%d) on %dx%d: %w", method, x, y, m.width, m.height, ErrOutOfBounds)
	}
	return y*m.width + x, nil
}
