package lossrate

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	vec2d "github.com/flywave/go3d/float64/vec2"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const watershedGeoJSON = `{
  "type": "FeatureCollection",
  "features": [
    {
      "type": "Feature",
      "properties": {"name": "GLO"},
      "geometry": {
        "type": "Polygon",
        "coordinates": [[[0, 0], [2, 0], [2, 2], [0, 2], [0, 0]]]
      }
    }
  ]
}`

func TestParseGeoJSONBoundary(t *testing.T) {
	a := assert.New(t)

	b, err := ParseGeoJSONBoundary([]byte(watershedGeoJSON), 4326)
	require.NoError(t, err)
	a.Len(b.Polygons, 1)
	a.Equal(vec2d.Rect{Min: vec2d.T{0, 0}, Max: vec2d.T{2, 2}}, b.Rect())
	a.True(b.Contains(1.5, 0.5))
	a.False(b.Contains(2.5, 0.5))
}

func TestLoadBoundary(t *testing.T) {
	a := assert.New(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "GLO RAS Domain.geojson")
	require.NoError(t, os.WriteFile(path, []byte(watershedGeoJSON), 0644))

	b, err := LoadBoundary(path, 0)
	require.NoError(t, err)
	a.True(b.Contains(1, 1))

	_, err = LoadBoundary(filepath.Join(dir, "domain.kml"), 0)
	a.True(errors.Is(err, ErrUnsupportedFormat))

	_, err = LoadBoundary(filepath.Join(dir, "missing.geojson"), 0)
	a.Error(err)
}

func TestParseGeoJSONBoundaryNoPolygons(t *testing.T) {
	points := `{"type":"FeatureCollection","features":[{"type":"Feature","properties":{},"geometry":{"type":"Point","coordinates":[1,1]}}]}`
	_, err := ParseGeoJSONBoundary([]byte(points), 4326)
	assert.True(t, errors.Is(err, ErrNoPolygons))
}
