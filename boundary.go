package lossrate

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ctessum/geom"
	"github.com/ctessum/geom/encoding/shp"
	"github.com/ctessum/geom/proj"
	vec2d "github.com/flywave/go3d/float64/vec2"

	"github.com/flywave/go-geo"
	"github.com/flywave/go-geom/general"
)

// Boundary is the watershed outline in EPSG:4326.
type Boundary struct {
	Polygons geom.MultiPolygon
	rect     vec2d.Rect
}

// NewBoundary builds a boundary from polygons given as rings of lon/lat points.
func NewBoundary(polygons [][][]vec2d.T) (*Boundary, error) {
	mp := make(geom.MultiPolygon, 0, len(polygons))
	for _, rings := range polygons {
		poly := make(geom.Polygon, 0, len(rings))
		for _, ring := range rings {
			path := make(geom.Path, 0, len(ring))
			for _, p := range ring {
				path = append(path, geom.Point{X: p[0], Y: p[1]})
			}
			if len(path) > 0 {
				poly = append(poly, path)
			}
		}
		if len(poly) > 0 {
			mp = append(mp, poly)
		}
	}
	return newBoundary(mp)
}

func newBoundary(mp geom.MultiPolygon) (*Boundary, error) {
	if len(mp) == 0 {
		return nil, ErrNoPolygons
	}
	r := vec2d.Rect{Min: vec2d.MaxVal, Max: vec2d.MinVal}
	for _, poly := range mp {
		for _, path := range poly {
			for _, p := range path {
				v := vec2d.T{p.X, p.Y}
				r.Extend(&v)
			}
		}
	}
	return &Boundary{Polygons: mp, rect: r}, nil
}

func (b *Boundary) Rect() vec2d.Rect {
	return b.rect
}

// Contains reports whether the point is inside or on the edge of any polygon.
func (b *Boundary) Contains(lon, lat float64) bool {
	if lon < b.rect.Min[0] || lon > b.rect.Max[0] || lat < b.rect.Min[1] || lat > b.rect.Max[1] {
		return false
	}
	return geom.Point{X: lon, Y: lat}.Within(b.Polygons) != geom.Outside
}

// LoadBoundary reads a GeoJSON or shapefile boundary. epsg is the code of
// the GeoJSON coordinates, 0 meaning 4326; shapefiles use their .prj.
func LoadBoundary(path string, epsg int) (*Boundary, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".geojson", ".json":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read boundary: %w", err)
		}
		return ParseGeoJSONBoundary(data, epsg)
	case ".shp":
		return loadShapefile(path)
	}
	return nil, fmt.Errorf("%w: boundary %s", ErrUnsupportedFormat, path)
}

func ParseGeoJSONBoundary(data []byte, epsg int) (*Boundary, error) {
	fcs, err := general.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse boundary: %w", err)
	}

	var inputProj geo.Proj
	if epsg != 0 && epsg != 4326 {
		inputProj = geo.NewProj(epsg)
	}

	project := func(ring []vec2d.T) []vec2d.T {
		if inputProj != nil && !inputProj.Eq(epsg4326) {
			return inputProj.TransformTo(epsg4326, ring)
		}
		return ring
	}

	polygons := [][][]vec2d.T{}
	for _, feas := range fcs.Features {
		switch g := feas.Geometry.(type) {
		case *general.Polygon:
			rings := [][]vec2d.T{}
			for _, sli := range g.Sublines() {
				ring := []vec2d.T{}
				for _, pos := range sli.Subpoints() {
					ring = append(ring, vec2d.T{pos.X(), pos.Y()})
				}
				rings = append(rings, project(ring))
			}
			polygons = append(polygons, rings)
		case *general.MultiPolygon:
			for _, poly := range g.Polygons() {
				rings := [][]vec2d.T{}
				for _, sli := range poly.Sublines() {
					ring := []vec2d.T{}
					for _, pos := range sli.Subpoints() {
						ring = append(ring, vec2d.T{pos.X(), pos.Y()})
					}
					rings = append(rings, project(ring))
				}
				polygons = append(polygons, rings)
			}
		}
	}
	return NewBoundary(polygons)
}

func loadShapefile(path string) (*Boundary, error) {
	dec, err := shp.NewDecoder(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open boundary: %w", err)
	}
	defer dec.Close()

	var trans proj.Transformer
	if sr, err := dec.SR(); err == nil {
		dst, err := proj.Parse("+proj=longlat")
		if err != nil {
			return nil, err
		}
		if trans, err = sr.NewTransform(dst); err != nil {
			return nil, fmt.Errorf("failed to reproject boundary: %w", err)
		}
	}

	mp := geom.MultiPolygon{}
	for {
		g, _, more := dec.DecodeRowFields()
		if !more {
			break
		}
		if trans != nil {
			if g, err = g.Transform(trans); err != nil {
				return nil, fmt.Errorf("failed to reproject boundary: %w", err)
			}
		}
		if p, ok := g.(geom.Polygonal); ok {
			mp = append(mp, p.Polygons()...)
		}
	}
	if err := dec.Error(); err != nil {
		return nil, fmt.Errorf("failed to read boundary: %w", err)
	}
	return newBoundary(mp)
}
