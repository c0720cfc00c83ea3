package chart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironsheep/imagine-mcp/internal/canvas"
)

func TestLineChart_RenderSetsOnly(t *testing.T) {
	r := newRecorder(200, 100)
	set := mustSet(t, DataPoint{-10, -5}, DataPoint{0, 0}, DataPoint{10, 5})

	cfg, err := NewLineChart(Options{HideGrid: true}).Render(r, set)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	require.Len(t, r.lines, 2)
	assert.Equal(t, canvas.Pt(0, 100), r.lines[0].P1)
	assert.Equal(t, canvas.Pt(100, 50), r.lines[0].P2)
	assert.Equal(t, canvas.Pt(200, 0), r.lines[1].P2)
	assert.Equal(t, black(), r.lines[0].Color)
}

func TestLineChart_RenderStyledSet(t *testing.T) {
	r := newRecorder(200, 100)
	style := mustStyle(t, Dashed, 1, 2)
	set, err := NewDataSet(&style, DataPoint{0, -5}, DataPoint{0, 5})
	require.NoError(t, err)
	anchor := mustSet(t, DataPoint{10, 0})

	_, err = NewLineChart(Options{HideGrid: true}).Render(r, set, anchor)
	require.NoError(t, err)

	// A 100 px vertical dashed line at spacing 2, then the anchor's dot.
	assert.Len(t, r.lines, 25)
	require.Len(t, r.ellipses, 1)
	assert.Equal(t, canvas.Pt(200, 50), r.ellipses[0].Center)
}

func TestLineChart_RenderWithGrid(t *testing.T) {
	r := newRecorder(200, 100)
	set := mustSet(t, DataPoint{-10, -5}, DataPoint{10, 5})

	_, err := NewLineChart(Options{}).Render(r, set)
	require.NoError(t, err)

	// Grid furniture first, the data line last.
	require.Len(t, r.lines, 19)
	last := r.lines[18]
	assert.Equal(t, canvas.Pt(0, 100), last.P1)
	assert.Equal(t, canvas.Pt(200, 0), last.P2)
	assert.Empty(t, r.texts)
}

func TestLineChart_Labels(t *testing.T) {
	set := mustSet(t, DataPoint{-10, -5}, DataPoint{10, 5})

	r := newRecorder(200, 100)
	_, err := NewLineChart(Options{Layout: Layout{LabelAxes: true, Font: fakeFont{4}}}).Render(r, set)
	require.NoError(t, err)
	assert.Len(t, r.texts, 6)

	r = newRecorder(200, 100)
	_, err = NewLineChart(Options{Grid: GridOptions{Font: fakeFont{4}}}).Render(r, set)
	require.NoError(t, err)
	assert.Empty(t, r.texts, "labels need LabelAxes")
}

func TestLineChart_InvalidConfigurationDrawsNothing(t *testing.T) {
	r := newRecorder(200, 100)

	_, err := NewLineChart(Options{}).Render(r, mustSet(t, DataPoint{0, 3}, DataPoint{0, 7}))
	require.ErrorIs(t, err, ErrInvalidConfiguration)

	_, err = NewLineChart(Options{}).Render(r)
	require.ErrorIs(t, err, ErrInvalidConfiguration)

	assert.Zero(t, r.calls())
}

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()

	assert.InDelta(t, 0.05, NormalizePercent(opts.Layout.MarginPercent), 1e-12)
	assert.InDelta(t, 0.05, NormalizePercent(opts.Layout.PaddingPercent), 1e-12)
	assert.False(t, opts.Layout.FitViewToData)
	assert.False(t, opts.HideGrid)
}
