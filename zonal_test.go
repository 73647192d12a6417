package lossrate

import (
	"errors"
	"math"
	"testing"

	vec2d "github.com/flywave/go3d/float64/vec2"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func square(minx, miny, maxx, maxy float64) [][]vec2d.T {
	return [][]vec2d.T{{{minx, miny}, {maxx, miny}, {maxx, maxy}, {minx, maxy}, {minx, miny}}}
}

func TestBoundary(t *testing.T) {
	a := assert.New(t)

	b, err := NewBoundary([][][]vec2d.T{square(0, 0, 2, 2)})
	require.NoError(t, err)
	a.Equal(vec2d.Rect{Min: vec2d.T{0, 0}, Max: vec2d.T{2, 2}}, b.Rect())
	a.True(b.Contains(1, 1))
	a.True(b.Contains(0.5, 1.5))
	a.False(b.Contains(2.5, 1))
	a.False(b.Contains(-1, -1))

	_, err = NewBoundary(nil)
	a.True(errors.Is(err, ErrNoPolygons))
}

func TestZonalMean(t *testing.T) {
	a := assert.New(t)

	b, err := NewBoundary([][][]vec2d.T{square(0, 0, 2, 2)})
	require.NoError(t, err)

	mean, cells, err := ZonalMean(testSoilGrid().Grid(), b)
	require.NoError(t, err)
	a.Equal(4, cells)
	a.InDelta(0.25, mean, 1e-12)
}

func TestZonalMeanSkipsNoData(t *testing.T) {
	a := assert.New(t)

	s := testSoilGrid()
	s.Values[4] = math.NaN()

	b, err := NewBoundary([][][]vec2d.T{square(0, 0, 2, 2)})
	require.NoError(t, err)

	mean, cells, err := ZonalMean(s.Grid(), b)
	require.NoError(t, err)
	a.Equal(3, cells)
	a.InDelta(0.2, mean, 1e-12)
}

func TestZonalMeanMultiPolygon(t *testing.T) {
	a := assert.New(t)

	b, err := NewBoundary([][][]vec2d.T{square(0, 0, 1, 1), square(2, 0, 3, 1), square(0, 0, 1, 1)})
	require.NoError(t, err)

	// overlapping polygons count a cell once
	mean, cells, err := ZonalMean(testSoilGrid().Grid(), b)
	require.NoError(t, err)
	a.Equal(2, cells)
	a.InDelta(0.5, mean, 1e-12)
}

func TestZonalMeanEmpty(t *testing.T) {
	b, err := NewBoundary([][][]vec2d.T{square(10, 10, 11, 11)})
	require.NoError(t, err)

	mean, cells, err := ZonalMean(testSoilGrid().Grid(), b)
	assert.True(t, errors.Is(err, ErrEmptyZone))
	assert.Equal(t, 0, cells)
	assert.True(t, math.IsNaN(mean))
}
