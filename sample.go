package platefo

import (
	"math"

	"github.com/thomas-schouten/PLATEFO/grid"
)

// sampling offsets [°] stepped ocean-ward along the trench normal
// until the age raster returns a value; trenches sit on the grid's
// masked margin so the first try often lands on a NaN cell.
var sampleOffsets = []float64{0., .5, 1., 1.5, 2., 2.5}

// offsetCoord displaces a coordinate by d degrees of arc along an
// azimuth.
func offsetCoord(lat, lon, aziDeg, d float64) (float64, float64) {
	dlat, dlon := MagAzi2LatLon(d, aziDeg)
	olat := lat + dlat
	clat := math.Cos(deg2rad(lat))
	if clat > .01 {
		olon := lon + dlon/clat
		for olon > 180. {
			olon -= 360.
		}
		for olon < -180. {
			olon += 360.
		}
		return olat, olon
	}
	return olat, lon
}

func sampleOceanward(r *grid.Raster, lat, lon, aziDeg float64) float64 {
	for _, d := range sampleOffsets {
		olat, olon := offsetCoord(lat, lon, aziDeg, d)
		if v := r.Sample(olat, olon); !math.IsNaN(v) {
			return v
		}
	}
	return math.NaN()
}

// SampleSlabs fills lower-plate age and, when the case requests it,
// sediment thickness at every trench segment. The lower plate lies
// ocean-ward of the trench, opposite the trench-normal azimuth.
func SampleSlabs(s *Slabs, seafloor grid.Dataset, c *Config) {
	age := seafloor[c.SeafloorAgeVariable]
	var sed *grid.Raster
	if c.SampleSedimentGrid != "" {
		sed = seafloor[c.SampleSedimentGrid]
	}
	for i := 0; i < s.Len(); i++ {
		azi := s.TrenchNormalAzimuth[i] + 180.
		if age != nil {
			s.LowerPlateAge[i] = sampleOceanward(age, s.Lat[i], s.Lon[i], azi)
		}
		if sed != nil {
			if v := sampleOceanward(sed, s.Lat[i], s.Lon[i], azi); !math.IsNaN(v) {
				s.SedimentThickness[i] = v
			}
		}
		s.SlabLength[i] = c.SlabLength
	}
}

// SampleUpperPlate fills upper-plate age arc-ward of the trench and
// flags continental arcs where the age raster is undefined. Active
// margin sediments, when configured, are added at continental arcs.
func SampleUpperPlate(s *Slabs, seafloor grid.Dataset, c *Config) {
	age := seafloor[c.SeafloorAgeVariable]
	if age == nil {
		return
	}
	for i := 0; i < s.Len(); i++ {
		a := sampleOceanward(age, s.Lat[i], s.Lon[i], s.TrenchNormalAzimuth[i])
		s.UpperPlateAge[i] = a
		s.ContinentalArc[i] = math.IsNaN(a)
		if s.ContinentalArc[i] && c.ActiveMarginSediments > 0. {
			s.SedimentThickness[i] += c.ActiveMarginSediments
		}
	}
}

// SampleAll runs slab, upper plate and point sampling in one pass.
func SampleAll(s *Slabs, p *Points, seafloor grid.Dataset, c *Config) {
	SampleSlabs(s, seafloor, c)
	SampleUpperPlate(s, seafloor, c)
	SamplePoints(p, seafloor, c)
}

// SamplePoints fills seafloor age at every grid point.
func SamplePoints(p *Points, seafloor grid.Dataset, c *Config) {
	age := seafloor[c.SeafloorAgeVariable]
	if age == nil {
		return
	}
	for i := 0; i < p.Len(); i++ {
		p.SeafloorAge[i] = age.Sample(p.Lat[i], p.Lon[i])
	}
}
