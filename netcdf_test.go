package lossrate

import (
	"errors"
	"math"
	"path/filepath"
	"testing"

	"github.com/fhs/go-netcdf/netcdf"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeSoilNetCDF writes testSoilGrid as a GLDAS-shaped file: float32 values
// on (time, lat, lon) with a -9999 fill value.
func writeSoilNetCDF(t *testing.T, path string) {
	t.Helper()

	s := testSoilGrid()

	ds, err := netcdf.CreateFile(path, netcdf.CLOBBER|netcdf.NETCDF4)
	require.NoError(t, err)
	defer ds.Close()

	timeDim, err := ds.AddDim("time", 1)
	require.NoError(t, err)
	latDim, err := ds.AddDim("lat", uint64(len(s.Lat)))
	require.NoError(t, err)
	lonDim, err := ds.AddDim("lon", uint64(len(s.Lon)))
	require.NoError(t, err)

	latVar, err := ds.AddVar("lat", netcdf.DOUBLE, []netcdf.Dim{latDim})
	require.NoError(t, err)
	lonVar, err := ds.AddVar("lon", netcdf.DOUBLE, []netcdf.Dim{lonDim})
	require.NoError(t, err)
	dataVar, err := ds.AddVar(DefaultVariable, netcdf.FLOAT, []netcdf.Dim{timeDim, latDim, lonDim})
	require.NoError(t, err)
	require.NoError(t, dataVar.Attr("_FillValue").WriteFloat32s([]float32{-9999}))

	require.NoError(t, latVar.WriteFloat64s(s.Lat))
	require.NoError(t, lonVar.WriteFloat64s(s.Lon))

	values := make([]float32, len(s.Values))
	for i, v := range s.Values {
		if math.IsNaN(v) {
			values[i] = -9999
		} else {
			values[i] = float32(v)
		}
	}
	require.NoError(t, dataVar.WriteFloat32s(values))
}

func TestLoadSoilGrid(t *testing.T) {
	a := assert.New(t)

	path := filepath.Join(t.TempDir(), "GLDASp4_soilfraction_025d.nc4")
	writeSoilNetCDF(t, path)

	s, err := LoadSoilGrid(path, "")
	require.NoError(t, err)
	a.Equal(DefaultVariable, s.Variable)
	a.Equal([]float64{0.5, 1.5, 2.5}, s.Lon)
	a.Equal([]float64{0.5, 1.5, 2.5}, s.Lat)
	a.Len(s.Values, 9)
	a.InDelta(0.1, s.Value(0, 0), 1e-6)
	a.InDelta(0.4, s.Value(1, 1), 1e-6)
	a.True(math.IsNaN(s.Value(2, 2)))
}

func TestLoadSoilGridErrors(t *testing.T) {
	a := assert.New(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "soil.nc4")
	writeSoilNetCDF(t, path)

	_, err := LoadSoilGrid(path, "GLDAS_soilfraction_clay")
	a.Error(err)

	_, err = LoadSoilGrid(filepath.Join(dir, "missing.nc4"), "")
	a.Error(err)

	_, err = LoadSoilGrid(path, "lat")
	a.True(errors.Is(err, ErrUnsupportedFormat))
}
