package lossrate

import (
	"fmt"
	"math"
	"sort"

	vec2d "github.com/flywave/go3d/float64/vec2"
	vec3d "github.com/flywave/go3d/float64/vec3"
)

// SoilGrid is one gridded soil fraction variable on cell-center lon/lat
// coordinates, as stored in the source file. Values is row-major with one row
// per Lat entry. Missing cells are NaN.
type SoilGrid struct {
	Variable string
	Lon      []float64
	Lat      []float64
	Values   []float64
}

func (s *SoilGrid) Width() int {
	return len(s.Lon)
}

func (s *SoilGrid) Height() int {
	return len(s.Lat)
}

func (s *SoilGrid) Value(row, column int) float64 {
	return s.Values[row*s.Width()+column]
}

func step(coords []float64) float64 {
	if len(coords) < 2 {
		return default_resolution
	}
	return math.Abs(coords[len(coords)-1]-coords[0]) / float64(len(coords)-1)
}

func (s *SoilGrid) Resolution() [2]float64 {
	return [2]float64{step(s.Lon), step(s.Lat)}
}

func (s *SoilGrid) centers() vec2d.Rect {
	r := vec2d.Rect{Min: vec2d.MaxVal, Max: vec2d.MinVal}
	for _, lon := range s.Lon {
		for _, lat := range []float64{s.Lat[0], s.Lat[len(s.Lat)-1]} {
			p := vec2d.T{lon, lat}
			r.Extend(&p)
		}
	}
	return r
}

// Rect is the cell-edge extent of the grid.
func (s *SoilGrid) Rect() vec2d.Rect {
	res := s.Resolution()
	return PadRect(s.centers(), res[0]/2, res[1]/2)
}

func within(coords []float64, min, max float64) []int {
	ret := []int{}
	for i, c := range coords {
		if c >= min && c <= max {
			ret = append(ret, i)
		}
	}
	return ret
}

// Select keeps the cells whose lon and lat both fall inside r, inclusive.
func (s *SoilGrid) Select(r vec2d.Rect) (*SoilGrid, error) {
	lons := within(s.Lon, r.Min[0], r.Max[0])
	lats := within(s.Lat, r.Min[1], r.Max[1])
	if len(lons) == 0 || len(lats) == 0 {
		return nil, fmt.Errorf("%w: lon [%g, %g] lat [%g, %g]", ErrEmptySelection, r.Min[0], r.Max[0], r.Min[1], r.Max[1])
	}

	ret := &SoilGrid{
		Variable: s.Variable,
		Lon:      make([]float64, len(lons)),
		Lat:      make([]float64, len(lats)),
		Values:   make([]float64, 0, len(lons)*len(lats)),
	}
	for i, x := range lons {
		ret.Lon[i] = s.Lon[x]
	}
	for j, y := range lats {
		ret.Lat[j] = s.Lat[y]
		for _, x := range lons {
			ret.Values = append(ret.Values, s.Value(y, x))
		}
	}
	return ret, nil
}

func order(coords []float64, descending bool) []int {
	idx := make([]int, len(coords))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		if descending {
			return coords[idx[a]] > coords[idx[b]]
		}
		return coords[idx[a]] < coords[idx[b]]
	})
	return idx
}

// Grid returns the cells north-up and west to east in EPSG:4326.
func (s *SoilGrid) Grid() *Grid {
	grid := NewGrid(s.Width(), s.Height())
	grid.bounds = s.Rect()
	grid.PixelSize = s.Resolution()

	rows, cols := order(s.Lat, true), order(s.Lon, false)

	grid.Coordinates = make(Coordinates, 0, grid.Count)
	for _, y := range rows {
		for _, x := range cols {
			grid.Coordinates = append(grid.Coordinates, vec3d.T{s.Lon[x], s.Lat[y], math.NaN()})
		}
	}
	for row, y := range rows {
		for col, x := range cols {
			grid.SetValue(row, col, s.Value(y, x))
		}
	}
	return grid
}

// PadRect grows r by the pads on each side; negative pads shrink it.
func PadRect(r vec2d.Rect, lonPad, latPad float64) vec2d.Rect {
	return vec2d.Rect{
		Min: vec2d.T{r.Min[0] - lonPad, r.Min[1] - latPad},
		Max: vec2d.T{r.Max[0] + lonPad, r.Max[1] + latPad},
	}
}
