package platefo

import "math"

// Points is the regular-grid sample table for one (time, case), used
// for gravitational-potential and mantle-drag area integration.
type Points struct {
	Lat, Lon  []float64
	PlateID   []int
	SegLenLat []float64 // meridional cell length [m]
	SegLenLon []float64 // zonal cell length [m], ∝ cos(lat)

	VLat, VLon, VMag []float64 // absolute velocity [cm/a]

	SeafloorAge []float64 // [Ma], NaN where unsampled
	U           []float64 // column gravitational potential energy [N/m]

	GPEFLat, GPEFLon, GPEFMag    []float64
	DragFLat, DragFLon, DragFMag []float64
}

func NewPoints(n int) *Points {
	z := func() []float64 { return make([]float64, n) }
	nan := func() []float64 {
		o := make([]float64, n)
		for i := range o {
			o[i] = math.NaN()
		}
		return o
	}
	return &Points{
		Lat: z(), Lon: z(), PlateID: make([]int, n),
		SegLenLat: z(), SegLenLon: z(),
		VLat: z(), VLon: z(), VMag: z(),
		SeafloorAge: nan(), U: z(),
		GPEFLat: z(), GPEFLon: z(), GPEFMag: z(),
		DragFLat: z(), DragFLon: z(), DragFMag: z(),
	}
}

func (p *Points) Len() int { return len(p.Lat) }

func (p *Points) Copy() *Points {
	cp := func(v []float64) []float64 { return append([]float64{}, v...) }
	return &Points{
		Lat: cp(p.Lat), Lon: cp(p.Lon), PlateID: append([]int{}, p.PlateID...),
		SegLenLat: cp(p.SegLenLat), SegLenLon: cp(p.SegLenLon),
		VLat: cp(p.VLat), VLon: cp(p.VLon), VMag: cp(p.VMag),
		SeafloorAge: cp(p.SeafloorAge), U: cp(p.U),
		GPEFLat: cp(p.GPEFLat), GPEFLon: cp(p.GPEFLon), GPEFMag: cp(p.GPEFMag),
		DragFLat: cp(p.DragFLat), DragFLon: cp(p.DragFLon), DragFMag: cp(p.DragFMag),
	}
}

// NewPointGrid lays out a regular geographic grid at the given
// spacing [°]. Zonal cell lengths shrink with cos(lat) so that the
// product SegLenLat×SegLenLon approximates true cell area.
func NewPointGrid(spacingDeg float64) *Points {
	var lats, lons []float64
	for lat := -90.; lat <= 90.; lat += spacingDeg {
		lats = append(lats, lat)
	}
	for lon := -180.; lon <= 180.; lon += spacingDeg {
		lons = append(lons, lon)
	}
	p := NewPoints(len(lats) * len(lons))
	dl := meanEarthRadius * deg2rad(spacingDeg)
	k := 0
	for _, lat := range lats {
		for _, lon := range lons {
			p.Lat[k], p.Lon[k] = lat, lon
			p.SegLenLat[k] = dl
			p.SegLenLon[k] = dl * math.Cos(deg2rad(lat))
			k++
		}
	}
	return p
}
