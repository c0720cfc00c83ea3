package chart

import (
	"fmt"
	"math"

	"github.com/ironsheep/imagine-mcp/internal/canvas"
)

// DataPoint is a position in data space. Y grows upward.
type DataPoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Extrema is the bounding box of a set of data points.
type Extrema struct {
	MinX, MaxX float64
	MinY, MaxY float64
}

// emptyExtrema is the starting point of every min/max scan.
func emptyExtrema() Extrema {
	return Extrema{
		MinX: math.Inf(1), MaxX: math.Inf(-1),
		MinY: math.Inf(1), MaxY: math.Inf(-1),
	}
}

func (e *Extrema) include(p DataPoint) {
	e.MinX = math.Min(e.MinX, p.X)
	e.MaxX = math.Max(e.MaxX, p.X)
	e.MinY = math.Min(e.MinY, p.Y)
	e.MaxY = math.Max(e.MaxY, p.Y)
}

func (e *Extrema) merge(o Extrema) {
	e.MinX = math.Min(e.MinX, o.MinX)
	e.MaxX = math.Max(e.MaxX, o.MaxX)
	e.MinY = math.Min(e.MinY, o.MinY)
	e.MaxY = math.Max(e.MaxY, o.MaxY)
}

// DataSet is an ordered series of points plus an optional line style. It
// tracks its own extrema as points are added.
type DataSet struct {
	points  []DataPoint
	style   *LineStyle
	extrema Extrema
}

// NewDataSet builds a series. A nil style means the chart default is used.
// Points must be finite.
func NewDataSet(style *LineStyle, points ...DataPoint) (*DataSet, error) {
	d := &DataSet{extrema: emptyExtrema()}
	if style != nil {
		s := *style
		d.style = &s
	}
	for _, p := range points {
		if err := d.Add(p); err != nil {
			return nil, err
		}
	}
	return d, nil
}

// Add appends p to the series.
func (d *DataSet) Add(p DataPoint) error {
	if !finite(p.X) || !finite(p.Y) {
		return fmt.Errorf("%w: data point (%v, %v) is not finite", ErrInvalidArgument, p.X, p.Y)
	}
	d.points = append(d.points, p)
	d.extrema.include(p)
	return nil
}

// Len returns the number of points.
func (d *DataSet) Len() int { return len(d.points) }

// Points returns a copy of the points in insertion order.
func (d *DataSet) Points() []DataPoint {
	return append([]DataPoint(nil), d.points...)
}

// Style returns the series style, if one was set.
func (d *DataSet) Style() (LineStyle, bool) {
	if d.style == nil {
		return LineStyle{}, false
	}
	return *d.style, true
}

// Extrema returns the bounding box of the series; ok is false when it holds
// no points.
func (d *DataSet) Extrema() (e Extrema, ok bool) {
	return d.extrema, len(d.points) > 0
}

// PointCollection is a cursor over a chain of pixel points that yields
// consecutive pairs: (p0,p1), (p1,p2), ...
//
// Reading advances the cursor. Once exhausted, NextPair keeps returning
// ok == false until Reset is called; iterating again always needs an
// explicit Reset.
type PointCollection struct {
	points []canvas.Point
	pos    int
}

// NewPointCollection creates a cursor positioned on the first pair.
func NewPointCollection(points ...canvas.Point) *PointCollection {
	return &PointCollection{points: append([]canvas.Point(nil), points...)}
}

// Add appends a point to the chain.
func (pc *PointCollection) Add(p canvas.Point) {
	pc.points = append(pc.points, p)
}

// Len returns the number of points in the chain.
func (pc *PointCollection) Len() int { return len(pc.points) }

// NextPair returns the next segment and moves past it.
func (pc *PointCollection) NextPair() (a, b canvas.Point, ok bool) {
	if pc.pos+1 >= len(pc.points) {
		return canvas.Point{}, canvas.Point{}, false
	}
	a, b = pc.points[pc.pos], pc.points[pc.pos+1]
	pc.pos++
	return a, b, true
}

// Reset rewinds the cursor to the first pair.
func (pc *PointCollection) Reset() { pc.pos = 0 }

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
