package platefo

import "math"

// ComputeSlabBendForce fills the slab bend force columns. Bending
// resistance at the trench hinge opposes the convergence direction;
// the magnitude follows either a viscous or a plastic flexure law
// selected by the case's slab bend mechanism.
func ComputeSlabBendForce(s *Slabs, c *Config, m *Mech) {
	for i := 0; i < s.Len(); i++ {
		h := s.LowerPlateThickness[i]
		if math.IsNaN(h) {
			if math.IsNaN(s.LowerPlateAge[i]) {
				s.SlabBendFMag[i], s.SlabBendFLat[i], s.SlabBendFLon[i] = 0., 0., 0.
				continue
			}
			h = m.LithThickness(s.LowerPlateAge[i], c.SeafloorAgeProfile)
			s.LowerPlateThickness[i] = h
		}

		var f float64
		switch c.SlabBendMechanism {
		case Plastic:
			f = m.YieldStr * h * h / (6. * m.RadCurv)
		default: // viscous
			r := h / m.RadCurv
			f = 2. / 3. * r * r * r * m.LithVisc * s.VConvMag[i] * cma2ms
		}

		// oppose convergence
		vm := s.VConvMag[i]
		if vm == 0. {
			s.SlabBendFMag[i], s.SlabBendFLat[i], s.SlabBendFLon[i] = 0., 0., 0.
			continue
		}
		s.SlabBendFMag[i] = f
		s.SlabBendFLat[i] = -f * s.VConvLat[i] / vm
		s.SlabBendFLon[i] = -f * s.VConvLon[i] / vm
	}
}
