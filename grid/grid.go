// Package grid holds regular latitude-longitude rasters of seafloor
// properties (crustal age, sediment thickness) and their sampling.
package grid

import (
	"fmt"
	"math"
)

// Raster is one gridded scalar field on a regular geographic grid.
// Rows run south to north, columns west to east; Z is row-major.
type Raster struct {
	Lats, Lons []float64
	Z          []float64
}

// Dataset is a set of named rasters for one reconstruction time.
type Dataset map[string]*Raster

func New(lats, lons []float64) *Raster {
	z := make([]float64, len(lats)*len(lons))
	for i := range z {
		z[i] = math.NaN()
	}
	return &Raster{Lats: lats, Lons: lons, Z: z}
}

func (r *Raster) At(i, j int) float64     { return r.Z[i*len(r.Lons)+j] }
func (r *Raster) Set(i, j int, v float64) { r.Z[i*len(r.Lons)+j] = v }
func (r *Raster) Nrow() int               { return len(r.Lats) }
func (r *Raster) Ncol() int               { return len(r.Lons) }

func (r *Raster) Copy() *Raster {
	return &Raster{
		Lats: append([]float64{}, r.Lats...),
		Lons: append([]float64{}, r.Lons...),
		Z:    append([]float64{}, r.Z...),
	}
}

func (d Dataset) Copy() Dataset {
	c := make(Dataset, len(d))
	for k, r := range d {
		c[k] = r.Copy()
	}
	return c
}

// Sample bilinearly interpolates the raster at one coordinate,
// returning NaN outside coverage or where any contributing node is
// undefined. Longitudes are taken modulo the grid's wrap when the
// grid spans the full circle.
func (r *Raster) Sample(lat, lon float64) float64 {
	nr, nc := len(r.Lats), len(r.Lons)
	if nr < 2 || nc < 2 {
		return math.NaN()
	}
	if lon < r.Lons[0] && r.Lons[nc-1]-r.Lons[0] >= 360.-1e-9 {
		lon += 360.
	}
	i, fi := locate(r.Lats, lat)
	j, fj := locate(r.Lons, lon)
	if i < 0 || j < 0 {
		return math.NaN()
	}
	z00 := r.At(i, j)
	z01 := r.At(i, j+1)
	z10 := r.At(i+1, j)
	z11 := r.At(i+1, j+1)
	return (z00*(1.-fi)+z10*fi)*(1.-fj) + (z01*(1.-fi)+z11*fi)*fj
}

// SampleMany samples the raster at coordinate arrays.
func (r *Raster) SampleMany(lats, lons []float64) ([]float64, error) {
	if len(lats) != len(lons) {
		return nil, fmt.Errorf("grid.SampleMany: %d lats, %d lons", len(lats), len(lons))
	}
	o := make([]float64, len(lats))
	for k := range lats {
		o[k] = r.Sample(lats[k], lons[k])
	}
	return o, nil
}

// locate returns the lower bracketing index and interpolation
// fraction of v in the ascending coordinate axis, or (-1,0) outside.
func locate(ax []float64, v float64) (int, float64) {
	n := len(ax)
	if v < ax[0] || v > ax[n-1] {
		return -1, 0.
	}
	lo, hi := 0, n-1
	for hi-lo > 1 {
		mid := (lo + hi) / 2
		if ax[mid] <= v {
			lo = mid
		} else {
			hi = mid
		}
	}
	if ax[hi] == ax[lo] {
		return lo, 0.
	}
	return lo, (v - ax[lo]) / (ax[hi] - ax[lo])
}
