package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	lossrate "github.com/flywave/go-lossrate"
)

// Config mirrors the lossrate.yaml run file.
type Config struct {
	SoilGrid      string   `yaml:"soil_grid"`
	Variable      string   `yaml:"variable"`
	Boundary      string   `yaml:"boundary"`
	BoundaryEPSG  int      `yaml:"boundary_epsg"`
	LookupTable   string   `yaml:"lookup_table"`
	OutputTable   string   `yaml:"output_table"`
	RasterOutput  string   `yaml:"raster_output"`
	PreviewOutput string   `yaml:"preview_output"`
	LonPad        float64  `yaml:"lon_pad"`
	LatPad        float64  `yaml:"lat_pad"`
	PreviewPad    float64  `yaml:"preview_pad"`
	MeanSource    string   `yaml:"mean_source"`
	SandFraction  *float64 `yaml:"sand_fraction"`
	Decimals      int32    `yaml:"decimals"`
}

func DefaultConfig() *Config {
	return &Config{
		SoilGrid:     "GLDASp4_soilfraction_025d.nc4",
		Variable:     lossrate.DefaultVariable,
		Boundary:     "GLO RAS Domain.geojson",
		BoundaryEPSG: 4326,
		LookupTable:  "FtWorthLossRateTable.csv",
		OutputTable:  "GLOLossRateTable.csv",
		RasterOutput: "GLDAS_soilfraction_sand.tif",
		LonPad:       -0.1,
		LatPad:       0.1,
		PreviewPad:   1.0,
		MeanSource:   string(lossrate.MeanMemory),
		Decimals:     2,
	}
}

// Load reads the YAML file at path over the defaults. A missing file yields
// the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch lossrate.MeanSource(c.MeanSource) {
	case lossrate.MeanMemory, lossrate.MeanGeoTIFF:
	default:
		return fmt.Errorf("invalid mean_source %q", c.MeanSource)
	}
	if c.LookupTable == "" || c.OutputTable == "" {
		return fmt.Errorf("lookup_table and output_table are required")
	}
	if c.SoilGrid == "" && c.SandFraction == nil {
		return fmt.Errorf("soil_grid or sand_fraction is required")
	}
	if c.SoilGrid != "" && c.Boundary == "" {
		return fmt.Errorf("boundary is required with soil_grid")
	}
	if c.Decimals < 0 {
		return fmt.Errorf("invalid decimals %d", c.Decimals)
	}
	return nil
}

// Options converts the config to processor options.
func (c *Config) Options() lossrate.Options {
	ms := lossrate.MeanSource(c.MeanSource)
	return lossrate.Options{
		SoilGrid:      c.SoilGrid,
		Variable:      &c.Variable,
		Boundary:      c.Boundary,
		BoundaryEPSG:  &c.BoundaryEPSG,
		LookupTable:   c.LookupTable,
		Output:        c.OutputTable,
		RasterOutput:  &c.RasterOutput,
		PreviewOutput: &c.PreviewOutput,
		LonPad:        &c.LonPad,
		LatPad:        &c.LatPad,
		PreviewPad:    &c.PreviewPad,
		MeanSource:    &ms,
		SandFraction:  c.SandFraction,
		Decimals:      &c.Decimals,
	}
}
