package filter

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironsheep/imagine-mcp/internal/canvas"
	"github.com/ironsheep/imagine-mcp/internal/palette"
)

func TestBorderKernel_Weights(t *testing.T) {
	tests := []struct {
		variant BorderVariant
		want    []float64
	}{
		{VariantOne, []float64{0, 1, 0, 1, -4, 1, 0, 1, 0}},
		{VariantTwo, []float64{1, 1, 1, 1, -8, 1, 1, 1, 1}},
		{VariantThree, []float64{-1, 2, -1, 2, -4, 2, -1, 2, -1}},
	}
	for _, tt := range tests {
		t.Run(tt.variant.String(), func(t *testing.T) {
			k, err := BorderKernel(tt.variant)
			require.NoError(t, err)
			assert.Equal(t, 3, k.Width())
			assert.Equal(t, 3, k.Height())
			assert.Equal(t, tt.want, k.Values())
		})
	}
}

func TestBorderKernel_FreshCopy(t *testing.T) {
	k, err := BorderKernel(VariantOne)
	require.NoError(t, err)
	require.NoError(t, k.Set(1, 1, 100))

	again, err := BorderKernel(VariantOne)
	require.NoError(t, err)
	v, _ := again.At(1, 1)
	assert.Equal(t, -4.0, v)
}

func TestBorderKernel_UnknownVariant(t *testing.T) {
	for _, v := range []BorderVariant{0, 4, -1} {
		_, err := BorderKernel(v)
		assert.ErrorIs(t, err, ErrInvalidArgument, "variant %d", v)

		_, err = NewBorderDetection(v)
		assert.ErrorIs(t, err, ErrInvalidArgument, "variant %d", v)
	}
}

func TestBorderDetection_UniformImageGoesBlack(t *testing.T) {
	for _, v := range []BorderVariant{VariantOne, VariantTwo, VariantThree} {
		t.Run(v.String(), func(t *testing.T) {
			s := newMemSurface(t, palette.Grayscale{}, 4, 4, func(x, y int) []float64 {
				return []float64{200}
			})
			f, err := NewBorderDetection(v)
			require.NoError(t, err)
			require.NoError(t, f.Apply(s))
			assert.Equal(t, []int{0}, s.at(1, 1).Values())
			assert.Equal(t, []int{200}, s.at(0, 0).Values())
		})
	}
}

func TestChain(t *testing.T) {
	var order []string
	record := func(name string) Filter {
		return Func(func(canvas.Surface) error {
			order = append(order, name)
			return nil
		})
	}
	boom := errors.New("boom")

	s := newMemSurface(t, palette.Grayscale{}, 1, 1, func(x, y int) []float64 { return []float64{0} })

	require.NoError(t, Chain{record("a"), record("b")}.Apply(s))
	assert.Equal(t, []string{"a", "b"}, order)

	order = nil
	err := Chain{record("a"), Func(func(canvas.Surface) error { return boom }), record("c")}.Apply(s)
	require.ErrorIs(t, err, boom)
	assert.Equal(t, []string{"a"}, order)

	require.ErrorIs(t, Chain{nil}.Apply(s), ErrInvalidArgument)
}
