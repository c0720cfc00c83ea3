package chart

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironsheep/imagine-mcp/internal/canvas"
)

func mustSet(t *testing.T, points ...DataPoint) *DataSet {
	t.Helper()
	set, err := NewDataSet(nil, points...)
	require.NoError(t, err)
	return set
}

func TestNormalizePercent(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{0.25, 0.25},
		{0.999, 0.999},
		{1, 0.01},
		{10, 0.1},
		{100, 1},
		{150, 0},
		{-50, -0.5},
		{-150, 0},
		{math.NaN(), 0},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, NormalizePercent(tt.in), 1e-12, "NormalizePercent(%v)", tt.in)
	}
}

func TestLabelMargin(t *testing.T) {
	assert.Equal(t, 27.0, LabelMargin(true, fakeFont{12}))
	assert.Zero(t, LabelMargin(false, fakeFont{12}))
	assert.Zero(t, LabelMargin(true, nil))
}

func TestNewConfig_Centered(t *testing.T) {
	set := mustSet(t, DataPoint{-10, -5}, DataPoint{10, 5})

	cfg, err := NewConfig(canvas.Box{Width: 200, Height: 100}, []*DataSet{set}, Layout{})
	require.NoError(t, err)

	sx, sy := cfg.ScaleFactors()
	assert.Equal(t, 10.0, sx)
	assert.Equal(t, 10.0, sy)
	assert.Equal(t, canvas.Pt(100, 50), cfg.Origin())

	p, err := cfg.Scale(DataPoint{10, 5})
	require.NoError(t, err)
	assert.Equal(t, canvas.Pt(200, 0), p)

	p, err = cfg.Scale(DataPoint{-10, -5})
	require.NoError(t, err)
	assert.Equal(t, canvas.Pt(0, 100), p)
}

func TestNewConfig_Margin(t *testing.T) {
	set := mustSet(t, DataPoint{-10, -5}, DataPoint{10, 5})

	cfg, err := NewConfig(canvas.Box{Width: 200, Height: 100}, []*DataSet{set}, Layout{MarginPercent: 10})
	require.NoError(t, err)

	mx, my := cfg.Margins()
	assert.Equal(t, 20.0, mx)
	assert.Equal(t, 10.0, my)

	sx, sy := cfg.ScaleFactors()
	assert.Equal(t, 8.0, sx)
	assert.Equal(t, 8.0, sy)
	assert.Equal(t, canvas.Pt(100, 50), cfg.Origin())
}

func TestNewConfig_PaddingWidensRanges(t *testing.T) {
	set := mustSet(t, DataPoint{-10, -5}, DataPoint{10, 5})

	cfg, err := NewConfig(canvas.Box{Width: 200, Height: 100}, []*DataSet{set}, Layout{PaddingPercent: 0.05})
	require.NoError(t, err)

	sx, sy := cfg.ScaleFactors()
	assert.Equal(t, 9.0, sx)
	assert.Equal(t, 9.0, sy)
	assert.Equal(t, canvas.Pt(100, 50), cfg.Origin())

	r := cfg.Ranges()
	assert.InDelta(t, 10+10.0/9, r.PositiveX, 1e-9)
	assert.InDelta(t, -10-10.0/9, r.NegativeX, 1e-9)
	assert.InDelta(t, 5+5.0/9, r.PositiveY, 1e-9)
	assert.InDelta(t, -5-5.0/9, r.NegativeY, 1e-9)

	// The widened range exactly fills the canvas.
	p, err := cfg.Scale(DataPoint{r.PositiveX, r.NegativeY})
	require.NoError(t, err)
	assert.InDelta(t, 200, p.X, 1e-9)
	assert.InDelta(t, 100, p.Y, 1e-9)
}

func TestNewConfig_LabelMargin(t *testing.T) {
	set := mustSet(t, DataPoint{-10, -10}, DataPoint{10, 10})
	layout := Layout{LabelAxes: true, Font: fakeFont{12}}

	cfg, err := NewConfig(canvas.Box{Width: 254, Height: 254}, []*DataSet{set}, layout)
	require.NoError(t, err)

	assert.Equal(t, 27.0, cfg.LabelMargin())
	mx, my := cfg.Margins()
	assert.Equal(t, 27.0, mx)
	assert.Equal(t, 27.0, my)

	sx, _ := cfg.ScaleFactors()
	assert.Equal(t, 10.0, sx)
}

func TestNewConfig_FitViewToData(t *testing.T) {
	set := mustSet(t, DataPoint{2, 1}, DataPoint{12, 6})

	cfg, err := NewConfig(canvas.Box{Width: 240, Height: 120}, []*DataSet{set}, Layout{FitViewToData: true})
	require.NoError(t, err)

	sx, sy := cfg.ScaleFactors()
	assert.Equal(t, 20.0, sx)
	assert.Equal(t, 20.0, sy)
	assert.Equal(t, canvas.Pt(0, 120), cfg.Origin())

	r := cfg.Ranges()
	assert.Equal(t, Ranges{PositiveX: 12, NegativeX: 0, PositiveY: 6, NegativeY: 0}, r)
}

func TestNewConfig_SymmetricWhenCentered(t *testing.T) {
	rng := rand.New(rand.NewSource(3))

	for i := 0; i < 50; i++ {
		var sets []*DataSet
		for s := 0; s < 1+rng.Intn(3); s++ {
			set := mustSet(t)
			for p := 0; p < 1+rng.Intn(10); p++ {
				require.NoError(t, set.Add(DataPoint{
					X: rng.Float64()*200 - 50,
					Y: rng.Float64()*80 - 70,
				}))
			}
			sets = append(sets, set)
		}
		layout := Layout{MarginPercent: float64(rng.Intn(20)), PaddingPercent: rng.Float64() * 0.2}

		cfg, err := NewConfig(canvas.Box{Width: 640, Height: 480}, sets, layout)
		require.NoError(t, err)

		r := cfg.Ranges()
		assert.InDelta(t, r.PositiveX, math.Abs(r.NegativeX), 1e-9)
		assert.InDelta(t, r.PositiveY, math.Abs(r.NegativeY), 1e-9)

		origin, err := cfg.Scale(DataPoint{0, 0})
		require.NoError(t, err)
		assert.Equal(t, cfg.Origin(), origin)
	}
}

func TestNewConfig_ExtremaAcrossSets(t *testing.T) {
	a := mustSet(t, DataPoint{1, 1}, DataPoint{4, 2})
	b := mustSet(t, DataPoint{-8, 0}, DataPoint{0, 3})

	cfg, err := NewConfig(canvas.Box{Width: 160, Height: 60}, []*DataSet{a, nil, b}, Layout{FitViewToData: true})
	require.NoError(t, err)

	assert.Equal(t, Ranges{PositiveX: 4, NegativeX: -8, PositiveY: 3, NegativeY: 0}, cfg.Ranges())
	assert.InDelta(t, 8*160.0/12, cfg.Origin().X, 1e-9)
	assert.Equal(t, 60.0, cfg.Origin().Y)
}

func TestNewConfig_DegenerateRange(t *testing.T) {
	tests := []struct {
		name   string
		points []DataPoint
		layout Layout
	}{
		{"all x zero", []DataPoint{{0, 1}, {0, 5}}, Layout{}},
		{"all y zero", []DataPoint{{1, 0}, {5, 0}}, Layout{}},
		{"single origin point", []DataPoint{{0, 0}}, Layout{FitViewToData: true}},
		{"margins eat canvas", []DataPoint{{1, 1}}, Layout{MarginPercent: 60}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set := mustSet(t, tt.points...)
			cfg, err := NewConfig(canvas.Box{Width: 100, Height: 100}, []*DataSet{set}, tt.layout)
			require.ErrorIs(t, err, ErrInvalidConfiguration)
			assert.Nil(t, cfg)
		})
	}
}

func TestNewConfig_NoData(t *testing.T) {
	_, err := NewConfig(canvas.Box{Width: 100, Height: 100}, nil, Layout{})
	require.ErrorIs(t, err, ErrInvalidConfiguration)

	_, err = NewConfig(canvas.Box{Width: 100, Height: 100}, []*DataSet{mustSet(t)}, Layout{})
	require.ErrorIs(t, err, ErrInvalidConfiguration)

	_, err = NewConfig(canvas.Box{}, []*DataSet{mustSet(t, DataPoint{1, 1})}, Layout{})
	require.ErrorIs(t, err, ErrInvalidConfiguration)
}

func TestConfig_ScaleUnconfigured(t *testing.T) {
	var cfg Config
	_, err := cfg.Scale(DataPoint{1, 1})
	require.ErrorIs(t, err, ErrNotConfigured)

	var nilCfg *Config
	_, err = nilCfg.Scale(DataPoint{1, 1})
	require.ErrorIs(t, err, ErrNotConfigured)
}

func TestConfig_ScaleOutsideViewIsNotClamped(t *testing.T) {
	set := mustSet(t, DataPoint{-10, -5}, DataPoint{10, 5})
	cfg, err := NewConfig(canvas.Box{Width: 200, Height: 100}, []*DataSet{set}, Layout{})
	require.NoError(t, err)

	p, err := cfg.Scale(DataPoint{-20, 10})
	require.NoError(t, err)
	assert.Equal(t, canvas.Pt(-100, -50), p)

	_, err = cfg.Scale(DataPoint{math.Inf(1), 0})
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestDataSet(t *testing.T) {
	set := mustSet(t)
	_, ok := set.Extrema()
	assert.False(t, ok)

	require.NoError(t, set.Add(DataPoint{3, -1}))
	require.NoError(t, set.Add(DataPoint{-2, 4}))
	e, ok := set.Extrema()
	require.True(t, ok)
	assert.Equal(t, Extrema{MinX: -2, MaxX: 3, MinY: -1, MaxY: 4}, e)
	assert.Equal(t, []DataPoint{{3, -1}, {-2, 4}}, set.Points())

	require.ErrorIs(t, set.Add(DataPoint{math.NaN(), 0}), ErrInvalidArgument)
	assert.Equal(t, 2, set.Len())

	_, err := NewDataSet(nil, DataPoint{0, math.Inf(-1)})
	require.ErrorIs(t, err, ErrInvalidArgument)
}
