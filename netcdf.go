package lossrate

import (
	"fmt"
	"math"

	"github.com/fhs/go-netcdf/netcdf"
)

var fillAttrs = []string{"_FillValue", "missing_value"}

// LoadSoilGrid reads variable from the NetCDF file at path along with its
// lon and lat coordinate variables. Leading length-1 dimensions (time) are
// dropped; the last two dimensions must be lat and lon.
func LoadSoilGrid(path, variable string) (*SoilGrid, error) {
	if variable == "" {
		variable = DefaultVariable
	}

	ds, err := netcdf.OpenFile(path, netcdf.NOWRITE)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer ds.Close()

	lon, err := readCoordinate(ds, "lon")
	if err != nil {
		return nil, err
	}
	lat, err := readCoordinate(ds, "lat")
	if err != nil {
		return nil, err
	}

	v, err := ds.Var(variable)
	if err != nil {
		return nil, fmt.Errorf("failed to find variable %s: %w", variable, err)
	}
	if err := checkDims(v, len(lat), len(lon)); err != nil {
		return nil, fmt.Errorf("variable %s: %w", variable, err)
	}

	values, err := readFloat64s(v)
	if err != nil {
		return nil, fmt.Errorf("failed to read variable %s: %w", variable, err)
	}
	if fill, ok := fillValue(v); ok {
		for i := range values {
			if values[i] == fill {
				values[i] = math.NaN()
			}
		}
	}

	return &SoilGrid{Variable: variable, Lon: lon, Lat: lat, Values: values}, nil
}

func readCoordinate(ds netcdf.Dataset, name string) ([]float64, error) {
	v, err := ds.Var(name)
	if err != nil {
		return nil, fmt.Errorf("failed to find coordinate %s: %w", name, err)
	}
	data, err := readFloat64s(v)
	if err != nil {
		return nil, fmt.Errorf("failed to read coordinate %s: %w", name, err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("coordinate %s: %w", name, ErrEmptySelection)
	}
	return data, nil
}

func checkDims(v netcdf.Var, nlat, nlon int) error {
	dims, err := v.Dims()
	if err != nil {
		return err
	}
	if len(dims) < 2 {
		return fmt.Errorf("%w: want at least 2 dimensions, got %d", ErrUnsupportedFormat, len(dims))
	}
	lens := make([]uint64, len(dims))
	for i, d := range dims {
		if lens[i], err = d.Len(); err != nil {
			return err
		}
	}
	for i := 0; i < len(dims)-2; i++ {
		if lens[i] != 1 {
			name, _ := dims[i].Name()
			return fmt.Errorf("%w: dimension %s has length %d", ErrUnsupportedFormat, name, lens[i])
		}
	}
	if lens[len(dims)-2] != uint64(nlat) || lens[len(dims)-1] != uint64(nlon) {
		return fmt.Errorf("%w: shape does not match lat %d x lon %d", ErrUnsupportedFormat, nlat, nlon)
	}
	return nil
}

func readFloat64s(v netcdf.Var) ([]float64, error) {
	n, err := v.Len()
	if err != nil {
		return nil, err
	}
	t, err := v.Type()
	if err != nil {
		return nil, err
	}
	switch t {
	case netcdf.DOUBLE:
		data := make([]float64, n)
		if err := v.ReadFloat64s(data); err != nil {
			return nil, err
		}
		return data, nil
	case netcdf.FLOAT:
		buf := make([]float32, n)
		if err := v.ReadFloat32s(buf); err != nil {
			return nil, err
		}
		data := make([]float64, n)
		for i := range buf {
			data[i] = float64(buf[i])
		}
		return data, nil
	}
	return nil, fmt.Errorf("%w: variable type %v", ErrUnsupportedFormat, t)
}

func fillValue(v netcdf.Var) (float64, bool) {
	for _, name := range fillAttrs {
		a := v.Attr(name)
		n, err := a.Len()
		if err != nil || n == 0 {
			continue
		}
		t, err := a.Type()
		if err != nil {
			continue
		}
		switch t {
		case netcdf.DOUBLE:
			buf := make([]float64, n)
			if a.ReadFloat64s(buf) == nil {
				return buf[0], true
			}
		case netcdf.FLOAT:
			buf := make([]float32, n)
			if a.ReadFloat32s(buf) == nil {
				return float64(buf[0]), true
			}
		}
	}
	return 0, false
}
