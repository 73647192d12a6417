package lossrate

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// ZonalMean averages the cells of grid whose centers fall inside the
// boundary, skipping nodata. It returns the mean and the number of cells used.
func ZonalMean(grid *Grid, boundary *Boundary) (float64, int, error) {
	values := make([]float64, 0, grid.Count)
	for _, c := range grid.Coordinates {
		if math.IsNaN(c[2]) || c[2] == default_no_data {
			continue
		}
		if boundary.Contains(c[0], c[1]) {
			values = append(values, c[2])
		}
	}
	if len(values) == 0 {
		return math.NaN(), 0, ErrEmptyZone
	}
	return stat.Mean(values, nil), len(values), nil
}
