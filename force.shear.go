package platefo

import "math"

// ComputeInterfaceShearForce fills the interface shear force columns.
// Shear tractions along the subduction interface resist the relative
// motion of the lower plate; the effective interface viscosity mixes
// the sediment and rock end members by the sediment fraction.
func ComputeInterfaceShearForce(s *Slabs, c *Config, m *Mech) {
	contact := m.IntDepth / math.Sin(deg2rad(30.)) // downdip interface length
	for i := 0; i < s.Len(); i++ {
		vm := s.VConvMag[i]
		if vm == 0. || math.IsNaN(s.LowerPlateAge[i]) {
			s.IntShearFMag[i], s.IntShearFLat[i], s.IntShearFLon[i] = 0., 0., 0.
			continue
		}

		frac := s.SedimentFraction[i]
		var visc float64
		switch c.InterfaceMixing {
		case MixLog:
			visc = math.Pow(10., frac*math.Log10(m.SedVisc)+(1.-frac)*math.Log10(m.IntVisc))
		default: // linear
			visc = frac*m.SedVisc + (1.-frac)*m.IntVisc
		}

		f := visc / c.ShearZoneWidth * vm * cma2ms * contact
		s.IntShearFMag[i] = f
		s.IntShearFLat[i] = -f * s.VConvLat[i] / vm
		s.IntShearFLon[i] = -f * s.VConvLon[i] / vm
	}
}
