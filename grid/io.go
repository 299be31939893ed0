package grid

import (
	"encoding/gob"
	"fmt"
	"os"

	"github.com/fhs/go-netcdf/netcdf"
)

// ReadNC loads a regular lat-lon raster from a NetCDF file. The
// coordinate variables are searched by the common names written by
// gridding tools; the field variable is the first 2D variable found
// when varname is empty.
func ReadNC(fp, varname string) (*Raster, error) {
	ds, err := netcdf.OpenFile(fp, netcdf.NOWRITE)
	if err != nil {
		return nil, fmt.Errorf(" grid.ReadNC %s: %v", fp, err)
	}
	defer ds.Close()

	lats, err := readAxis(ds, "lat", "latitude", "y")
	if err != nil {
		return nil, fmt.Errorf(" grid.ReadNC %s: %v", fp, err)
	}
	lons, err := readAxis(ds, "lon", "longitude", "x")
	if err != nil {
		return nil, fmt.Errorf(" grid.ReadNC %s: %v", fp, err)
	}

	var v netcdf.Var
	if varname != "" {
		if v, err = ds.Var(varname); err != nil {
			return nil, fmt.Errorf(" grid.ReadNC %s [%s]: %v", fp, varname, err)
		}
	} else {
		if v, err = firstGridVar(ds, len(lats), len(lons)); err != nil {
			return nil, fmt.Errorf(" grid.ReadNC %s: %v", fp, err)
		}
	}
	z := make([]float64, len(lats)*len(lons))
	if err := v.ReadFloat64s(z); err != nil {
		return nil, fmt.Errorf(" grid.ReadNC %s: %v", fp, err)
	}

	r := &Raster{Lats: lats, Lons: lons, Z: z}
	if len(lats) > 1 && lats[0] > lats[len(lats)-1] {
		r.flipRows()
	}
	return r, nil
}

// WriteNC saves the raster as a CF-style NetCDF file.
func (r *Raster) WriteNC(fp, varname string) error {
	ds, err := netcdf.CreateFile(fp, netcdf.CLOBBER)
	if err != nil {
		return fmt.Errorf(" Raster.WriteNC %s: %v", fp, err)
	}
	defer ds.Close()

	dlat, err := ds.AddDim("lat", uint64(len(r.Lats)))
	if err != nil {
		return fmt.Errorf(" Raster.WriteNC %s: %v", fp, err)
	}
	dlon, err := ds.AddDim("lon", uint64(len(r.Lons)))
	if err != nil {
		return fmt.Errorf(" Raster.WriteNC %s: %v", fp, err)
	}
	vlat, err := ds.AddVar("lat", netcdf.DOUBLE, []netcdf.Dim{dlat})
	if err != nil {
		return fmt.Errorf(" Raster.WriteNC %s: %v", fp, err)
	}
	vlon, err := ds.AddVar("lon", netcdf.DOUBLE, []netcdf.Dim{dlon})
	if err != nil {
		return fmt.Errorf(" Raster.WriteNC %s: %v", fp, err)
	}
	vz, err := ds.AddVar(varname, netcdf.DOUBLE, []netcdf.Dim{dlat, dlon})
	if err != nil {
		return fmt.Errorf(" Raster.WriteNC %s: %v", fp, err)
	}
	if err := vlat.WriteFloat64s(r.Lats); err != nil {
		return fmt.Errorf(" Raster.WriteNC %s: %v", fp, err)
	}
	if err := vlon.WriteFloat64s(r.Lons); err != nil {
		return fmt.Errorf(" Raster.WriteNC %s: %v", fp, err)
	}
	if err := vz.WriteFloat64s(r.Z); err != nil {
		return fmt.Errorf(" Raster.WriteNC %s: %v", fp, err)
	}
	return nil
}

func readAxis(ds netcdf.Dataset, names ...string) ([]float64, error) {
	for _, nam := range names {
		v, err := ds.Var(nam)
		if err != nil {
			continue
		}
		n, err := v.Len()
		if err != nil {
			return nil, err
		}
		o := make([]float64, n)
		if err := v.ReadFloat64s(o); err != nil {
			return nil, err
		}
		return o, nil
	}
	return nil, fmt.Errorf("coordinate variable not found (tried %v)", names)
}

func firstGridVar(ds netcdf.Dataset, nr, nc int) (netcdf.Var, error) {
	nv, err := ds.NVars()
	if err != nil {
		return netcdf.Var{}, err
	}
	for i := 0; i < nv; i++ {
		v := ds.VarN(i)
		dims, err := v.LenDims()
		if err != nil {
			continue
		}
		if len(dims) == 2 && dims[0] == uint64(nr) && dims[1] == uint64(nc) {
			return v, nil
		}
	}
	return netcdf.Var{}, fmt.Errorf("no %d x %d variable found", nr, nc)
}

func (r *Raster) flipRows() {
	nr, nc := len(r.Lats), len(r.Lons)
	for i, j := 0, nr-1; i < j; i, j = i+1, j-1 {
		r.Lats[i], r.Lats[j] = r.Lats[j], r.Lats[i]
		for k := 0; k < nc; k++ {
			r.Z[i*nc+k], r.Z[j*nc+k] = r.Z[j*nc+k], r.Z[i*nc+k]
		}
	}
}

// SaveGob caches the raster to a binary file.
func (r *Raster) SaveGob(fp string) error {
	f, err := os.Create(fp)
	if err != nil {
		return fmt.Errorf(" Raster.SaveGob %v", err)
	}
	defer f.Close()
	if err := gob.NewEncoder(f).Encode(*r); err != nil {
		return fmt.Errorf(" Raster.SaveGob %v", err)
	}
	return nil
}

// LoadGob reads a raster cached with SaveGob.
func LoadGob(fp string) (*Raster, error) {
	f, err := os.Open(fp)
	if err != nil {
		return nil, fmt.Errorf(" grid.LoadGob %v", err)
	}
	defer f.Close()
	var r Raster
	if err := gob.NewDecoder(f).Decode(&r); err != nil {
		return nil, fmt.Errorf(" grid.LoadGob %v", err)
	}
	return &r, nil
}
