package lossrate

import (
	"fmt"
	"math"

	"go.uber.org/zap"
)

const (
	default_lon_pad     = -0.1
	default_lat_pad     = 0.1
	default_preview_pad = 1.0
	default_decimals    = int32(2)
)

type Options struct {
	SoilGrid      string
	Variable      *string
	Boundary      string
	BoundaryEPSG  *int
	LookupTable   string
	Output        string
	RasterOutput  *string
	PreviewOutput *string
	LonPad        *float64
	LatPad        *float64
	PreviewPad    *float64
	MeanSource    *MeanSource
	SandFraction  *float64
	Decimals      *int32
	Logger        *zap.Logger
}

type Processor struct {
	soilGrid      string
	variable      string
	boundary      string
	boundaryEPSG  int
	lookupTable   string
	output        string
	rasterOutput  string
	previewOutput string
	lonPad        float64
	latPad        float64
	previewPad    float64
	meanSource    MeanSource
	sandFraction  *float64
	decimals      int32
	logger        *zap.Logger
}

func NewProcessor(opts Options) *Processor {
	p := &Processor{
		soilGrid:     opts.SoilGrid,
		variable:     DefaultVariable,
		boundary:     opts.Boundary,
		boundaryEPSG: 4326,
		lookupTable:  opts.LookupTable,
		output:       opts.Output,
		lonPad:       default_lon_pad,
		latPad:       default_lat_pad,
		previewPad:   default_preview_pad,
		meanSource:   MeanMemory,
		sandFraction: opts.SandFraction,
		decimals:     default_decimals,
		logger:       opts.Logger,
	}

	if opts.Variable != nil && *opts.Variable != "" {
		p.variable = *opts.Variable
	}
	if opts.BoundaryEPSG != nil {
		p.boundaryEPSG = *opts.BoundaryEPSG
	}
	if opts.RasterOutput != nil {
		p.rasterOutput = *opts.RasterOutput
	}
	if opts.PreviewOutput != nil {
		p.previewOutput = *opts.PreviewOutput
	}
	if opts.LonPad != nil {
		p.lonPad = *opts.LonPad
	}
	if opts.LatPad != nil {
		p.latPad = *opts.LatPad
	}
	if opts.PreviewPad != nil {
		p.previewPad = *opts.PreviewPad
	}
	if opts.MeanSource != nil {
		p.meanSource = *opts.MeanSource
	}
	if opts.Decimals != nil {
		p.decimals = *opts.Decimals
	}
	if p.logger == nil {
		p.logger = zap.NewNop()
	}
	return p
}

// SandFraction reduces the soil grid to the mean sand fraction inside the
// boundary. A configured fraction takes precedence; the spatial stage still
// runs when a soil grid is set so its rasters get written.
func (p *Processor) SandFraction() (float64, MeanSource, int, error) {
	if p.soilGrid == "" {
		if p.sandFraction == nil {
			return math.NaN(), "", 0, fmt.Errorf("no soil grid and no sand fraction configured")
		}
		return *p.sandFraction, MeanFixed, 0, nil
	}

	mean, cells, err := p.reduce()
	if err != nil {
		if p.sandFraction == nil {
			return math.NaN(), "", 0, err
		}
		p.logger.Warn("Zonal mean failed, using configured sand fraction", zap.Error(err))
		return *p.sandFraction, MeanFixed, 0, nil
	}
	if p.sandFraction != nil {
		p.logger.Info("Using configured sand fraction",
			zap.Float64("configured", *p.sandFraction),
			zap.Float64("computed", mean))
		return *p.sandFraction, MeanFixed, cells, nil
	}
	return mean, p.meanSource, cells, nil
}

func (p *Processor) reduce() (float64, int, error) {
	p.logger.Debug("Loading soil grid", zap.String("path", p.soilGrid), zap.String("variable", p.variable))
	soil, err := LoadSoilGrid(p.soilGrid, p.variable)
	if err != nil {
		return 0, 0, err
	}

	p.logger.Debug("Loading boundary", zap.String("path", p.boundary), zap.Int("epsg", p.boundaryEPSG))
	boundary, err := LoadBoundary(p.boundary, p.boundaryEPSG)
	if err != nil {
		return 0, 0, err
	}
	bounds := boundary.Rect()
	p.logger.Info("Boundary loaded",
		zap.Int("polygons", len(boundary.Polygons)),
		zap.Float64s("bounds", []float64{bounds.Min[0], bounds.Min[1], bounds.Max[0], bounds.Max[1]}))

	if p.previewOutput != "" {
		preview, err := soil.Select(PadRect(bounds, p.previewPad, p.previewPad))
		if err != nil {
			return 0, 0, fmt.Errorf("preview extent: %w", err)
		}
		if err := WriteGeoTIFF(p.previewOutput, preview.Grid()); err != nil {
			return 0, 0, err
		}
		p.logger.Info("Preview raster written", zap.String("path", p.previewOutput))
	}

	extent, err := soil.Select(PadRect(bounds, p.lonPad, p.latPad))
	if err != nil {
		return 0, 0, fmt.Errorf("analysis extent: %w", err)
	}
	grid := extent.Grid()
	p.logger.Info("Analysis extent selected",
		zap.Int("width", grid.Width),
		zap.Int("height", grid.Height),
		zap.Int("valid", grid.Valid()),
		zap.Float64("min", grid.Minimum),
		zap.Float64("max", grid.Maximum))

	if p.rasterOutput != "" {
		if err := WriteGeoTIFF(p.rasterOutput, grid); err != nil {
			return 0, 0, err
		}
		p.logger.Info("Raster written", zap.String("path", p.rasterOutput))
	}

	var mean float64
	var cells int
	switch p.meanSource {
	case MeanGeoTIFF:
		if p.rasterOutput == "" {
			return 0, 0, fmt.Errorf("mean source %s needs a raster output", MeanGeoTIFF)
		}
		mean, cells, err = ZonalMeanGeoTIFF(p.rasterOutput, boundary)
	case MeanMemory:
		mean, cells, err = ZonalMean(grid, boundary)
	default:
		return 0, 0, fmt.Errorf("%w: mean source %q", ErrUnsupportedFormat, p.meanSource)
	}
	if err != nil {
		return 0, 0, err
	}
	p.logger.Info("Zonal mean computed", zap.Float64("mean", mean), zap.Int("cells", cells))
	return mean, cells, nil
}

func (p *Processor) Process() (*Result, error) {
	fraction, source, cells, err := p.SandFraction()
	if err != nil {
		return nil, err
	}
	if !InRange(fraction, 0, 1) {
		p.logger.Warn("Sand fraction outside [0, 1], interpolating anyway", zap.Float64("fraction", fraction))
	}

	p.logger.Info("Adjusting loss rate table",
		zap.String("input", p.lookupTable),
		zap.String("output", p.output),
		zap.Float64("fraction", fraction),
		zap.String("source", string(source)))

	table, err := AdjustFile(p.lookupTable, p.output, fraction, p.decimals)
	if err != nil {
		return nil, err
	}
	p.logger.Info("Loss rate table written", zap.String("path", p.output), zap.Int("rows", table.Len()))

	return &Result{SandFraction: fraction, Source: source, Cells: cells, Table: table}, nil
}
