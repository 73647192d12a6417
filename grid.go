package lossrate

import (
	"math"

	vec2d "github.com/flywave/go3d/float64/vec2"
	vec3d "github.com/flywave/go3d/float64/vec3"

	"github.com/flywave/go-geo"
)

const (
	default_no_data     = float64(-9999)
	default_no_data_str = "-9999"
	default_resolution  = 0.25
)

var epsg4326 geo.Proj

func init() {
	epsg4326 = geo.NewProj(4326)
}

// Coordinates holds cell centers as {lon, lat, value}.
type Coordinates []vec3d.T

// Grid is a north-up raster: row 0 is the northernmost row.
type Grid struct {
	Width       int
	Height      int
	Coordinates Coordinates
	Count       int
	Minimum     float64
	Maximum     float64
	PixelSize   [2]float64
	NoData      *float64
	bounds      vec2d.Rect
	srs         geo.Proj
}

func NewGrid(width, height int) *Grid {
	return &Grid{Width: width, Height: height, Count: width * height, Minimum: math.Inf(1), Maximum: math.Inf(-1), srs: epsg4326}
}

func caclulatePixelSize(width, height int, bbox vec2d.Rect) [2]float64 {
	pixelSize := [2]float64{0, 0}
	pixelSize[0] = (bbox.Max[0] - bbox.Min[0]) / float64(width)
	pixelSize[1] = (bbox.Max[1] - bbox.Min[1]) / float64(height)
	return pixelSize
}

// CaclulateGrid lays out cell centers over the georeference bbox, values
// set to NaN.
func CaclulateGrid(width, height int, georef *geo.GeoReference) *Grid {
	grid := NewGrid(width, height)

	grid.srs = georef.GetSrs()
	grid.bounds = georef.GetBBox()

	coords := make(Coordinates, 0, grid.Count)

	grid.PixelSize = caclulatePixelSize(grid.Width, grid.Height, grid.bounds)

	for y := 0; y < grid.Height; y++ {
		latitude := grid.bounds.Max[1] - grid.PixelSize[1]*(float64(y)+0.5)
		for x := 0; x < grid.Width; x++ {
			longitude := grid.bounds.Min[0] + grid.PixelSize[0]*(float64(x)+0.5)
			coords = append(coords, vec3d.T{longitude, latitude, math.NaN()})
		}
	}

	grid.Coordinates = coords
	return grid
}

func (h *Grid) GetRect() vec2d.Rect {
	return h.bounds
}

func (h *Grid) Value(row, column int) float64 {
	return h.Coordinates[row*h.Width+column][2]
}

func (h *Grid) SetValue(row, column int, v float64) {
	h.Coordinates[row*h.Width+column][2] = v
	if math.IsNaN(v) {
		return
	}
	h.Minimum = math.Min(h.Minimum, v)
	h.Maximum = math.Max(h.Maximum, v)
}

// Valid counts cells holding data.
func (h *Grid) Valid() int {
	n := 0
	for i := range h.Coordinates {
		if !math.IsNaN(h.Coordinates[i][2]) {
			n++
		}
	}
	return n
}

// GetTileData returns row-major values with NaN replaced by the nodata value.
func (h *Grid) GetTileData() ([]float64, vec2d.Rect, geo.Proj) {
	tiledata := make([]float64, h.Width*h.Height)

	for y := 0; y < h.Height; y++ {
		for x := 0; x < h.Width; x++ {
			v := h.Value(y, x)
			if math.IsNaN(v) {
				v = default_no_data
			}
			tiledata[y*h.Width+x] = v
		}
	}

	return tiledata, h.bounds, h.srs
}
