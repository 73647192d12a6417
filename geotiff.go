package lossrate

import (
	"fmt"
	"image"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/flywave/go-cog"
	"github.com/flywave/go-geo"
)

// WriteGeoTIFF writes the grid as a single band float64 GeoTIFF in EPSG:4326
// with -9999 as nodata, tagged so GIS tools skip those cells.
func WriteGeoTIFF(path string, grid *Grid) error {
	tiledata, bbox, srs := grid.GetTileData()

	rect := image.Rect(0, 0, grid.Width, grid.Height)

	src := cog.NewSource(tiledata, &rect, cog.CTLZW)

	si := [2]uint32{uint32(grid.Width), uint32(grid.Height)}

	nodata := default_no_data_str

	if err := cog.WriteTile(path, src, bbox, srs, si, &nodata); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// ReadGeoTIFF reads the first band of an EPSG:4326 GeoTIFF back into a grid.
// Cells equal to the file's nodata tag become NaN.
func ReadGeoTIFF(path string) (*Grid, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	reader := cog.Read(path)
	if reader == nil || len(reader.Data) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}

	epsgcode, err := reader.GetEPSGCode(0)
	if err != nil {
		return nil, fmt.Errorf("failed to read crs of %s: %w", path, err)
	}
	if epsgcode != 4326 {
		return nil, fmt.Errorf("%w: EPSG:%d", ErrUnsupportedCRS, epsgcode)
	}

	si := reader.GetSize(0)
	width, height := int(si[0]), int(si[1])

	var data []float64
	switch d := reader.Data[0].(type) {
	case []float64:
		data = d
	case []float32:
		data = make([]float64, len(d))
		for i := range d {
			data[i] = float64(d[i])
		}
	default:
		return nil, fmt.Errorf("%w: sample type %T", ErrUnsupportedFormat, d)
	}
	if len(data) < width*height {
		return nil, fmt.Errorf("%w: %d samples for %dx%d", ErrUnsupportedFormat, len(data), width, height)
	}

	grid := CaclulateGrid(width, height, geo.NewGeoReference(reader.GetBounds(0), epsg4326))
	grid.NoData = parseNoData(reader.GetNoData(0))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			v := data[y*width+x]
			if grid.NoData != nil && v == *grid.NoData {
				v = math.NaN()
			}
			grid.SetValue(y, x, v)
		}
	}
	return grid, nil
}

// parseNoData reads the GDAL_NODATA value, nil when the tag is absent.
func parseNoData(nd interface{}) *float64 {
	var s string
	switch v := nd.(type) {
	case string:
		s = v
	case *string:
		if v == nil {
			return nil
		}
		s = *v
	case float64:
		return &v
	case *float64:
		return v
	default:
		return nil
	}
	s = strings.TrimRight(strings.TrimSpace(s), "\x00")
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &f
}

// ZonalMeanGeoTIFF is ZonalMean over a GeoTIFF on disk.
func ZonalMeanGeoTIFF(path string, boundary *Boundary) (float64, int, error) {
	grid, err := ReadGeoTIFF(path)
	if err != nil {
		return math.NaN(), 0, err
	}
	return ZonalMean(grid, boundary)
}
