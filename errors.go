package lossrate

import "errors"

var (
	ErrMissingColumn     = errors.New("missing column")
	ErrEmptyZone         = errors.New("no raster cells inside boundary")
	ErrEmptySelection    = errors.New("selection contains no cells")
	ErrNoPolygons        = errors.New("boundary has no polygons")
	ErrUnsupportedFormat = errors.New("unsupported format")
	ErrUnsupportedCRS    = errors.New("unsupported crs")
)
