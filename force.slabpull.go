package platefo

import "math"

// ComputeSlabPullForce fills the slab pull force columns on the slab
// table. The pull scales with the negative buoyancy of the subducted
// lithosphere over the configured slab length and acts opposite to
// the trench-normal azimuth. Segments with unknown lower-plate age
// contribute nothing.
func ComputeSlabPullForce(s *Slabs, c *Config, m *Mech) {
	for i := 0; i < s.Len(); i++ {
		age := s.LowerPlateAge[i]
		if math.IsNaN(age) {
			s.SlabPullFMag[i], s.SlabPullFLat[i], s.SlabPullFLon[i] = 0., 0., 0.
			continue
		}
		h := m.LithThickness(age, c.SeafloorAgeProfile)
		s.LowerPlateThickness[i] = h

		drho := m.DrhoSlab
		if c.SedimentSubduction && h > 0. {
			frac := s.SedimentThickness[i] / h
			if frac > 1. {
				frac = 1.
			}
			s.SedimentFraction[i] = frac
			drho = m.DrhoSlab*(1.-frac) + m.DrhoSed*frac
		}

		f := drho * m.G * h * s.SlabLength[i]
		azi := s.TrenchNormalAzimuth[i] + 180.
		if azi >= 360. {
			azi -= 360.
		}
		flat, flon := MagAzi2LatLon(f, azi)
		s.SlabPullFMag[i] = f
		s.SlabPullFLat[i] = flat
		s.SlabPullFLon[i] = flon
	}
}
