package matrix_test

import (
	"testing"

	"github.com/ironsheep/imagine-mcp/internal/matrix"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_ZeroFilled(t *testing.T) {
	m, err := matrix.New[int](3, 2)
	require.NoError(t, err)
	require.Equal(t, 3, m.Width())
	require.Equal(t, 2, m.Height())

	for y := 0; y < 2; y++ {
		for x := 0; x < 3; x++ {
			v, err := m.At(x, y)
			require.NoError(t, err)
			assert.Zero(t, v)
		}
	}
}

func TestNew_RowMajorValues(t *testing.T) {
	m, err := matrix.New(3, 2, 1, 2, 3, 4, 5, 6)
	require.NoError(t, err)

	tests := []struct {
		x, y int
		want int
	}{
		{0, 0, 1},
		{2, 0, 3},
		{0, 1, 4},
		{2, 1, 6},
	}
	for _, tt := range tests {
		v, err := m.At(tt.x, tt.y)
		require.NoError(t, err)
		assert.Equal(t, tt.want, v, "At(%d,%d)", tt.x, tt.y)
	}
}

func TestNew_InvalidArguments(t *testing.T) {
	tests := []struct {
		name   string
		w, h   int
		values []float64
	}{
		{"zero width", 0, 3, nil},
		{"zero height", 3, 0, nil},
		{"negative", -1, 2, nil},
		{"too few values", 2, 2, []float64{1, 2, 3}},
		{"too many values", 2, 2, []float64{1, 2, 3, 4, 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := matrix.New(tt.w, tt.h, tt.values...)
			require.ErrorIs(t, err, matrix.ErrInvalidArgument)
		})
	}
}

func TestMustNew_Panics(t *testing.T) {
	assert.Panics(t, func() { matrix.MustNew[int](0, 0) })
	assert.NotPanics(t, func() { matrix.MustNew(1, 1, 7) })
}

func TestSet_OverwritesInPlace(t *testing.T) {
	m, err := matrix.New[string](2, 2)
	require.NoError(t, err)

	require.NoError(t, m.Set(1, 0, "a"))
	require.NoError(t, m.Set(1, 0, "b"))

	v, err := m.At(1, 0)
	require.NoError(t, err)
	assert.Equal(t, "b", v)
	assert.Equal(t, []string{"", "b", "", ""}, m.Values())
}

func TestAccess_OutOfBounds(t *testing.T) {
	m, err := matrix.New[int](4, 3)
	require.NoError(t, err)

	coords := [][2]int{{-1, 0}, {0, -1}, {4, 0}, {0, 3}, {4, 3}}
	for _, c := range coords {
		_, err := m.At(c[0], c[1])
		assert.ErrorIs(t, err, matrix.ErrOutOfBounds, "At(%d,%d)", c[0], c[1])

		err = m.Set(c[0], c[1], 1)
		assert.ErrorIs(t, err, matrix.ErrOutOfBounds, "Set(%d,%d)", c[0], c[1])
	}
}

func TestValues_IsCopy(t *testing.T) {
	m := matrix.MustNew(2, 1, 1.5, 2.5)
	vals := m.Values()
	vals[0] = 99

	v, err := m.At(0, 0)
	require.NoError(t, err)
	assert.Equal(t, 1.5, v)
}

func TestString(t *testing.T) {
	m := matrix.MustNew(3, 2, 0, 1, 0, 1, -4, 1)
	assert.Equal(t, "[0 1 0]\n[1 -4 1]\n", m.String())
}
