package platefo

import (
	"fmt"
	"math"
)

// ComputeGPEForce fills the point potential column U and its lateral
// gradient force. U is the depth-integrated weight of the crustal
// column down to the compensation depth; the force per unit area is
// the downslope gradient taken by central differences on the regular
// grid, wrapping in longitude. Points with no defined column (NaN
// seafloor age on a case without continental crust) contribute zero.
func ComputeGPEForce(p *Points, c *Config, m *Mech) error {
	nlat, nlon, err := p.gridShape(c.GridSpacing)
	if err != nil {
		return fmt.Errorf(" ComputeGPEForce %v", err)
	}

	for i := 0; i < p.Len(); i++ {
		p.U[i] = columnPotential(p.SeafloorAge[i], c, m)
	}

	for r := 0; r < nlat; r++ {
		for j := 0; j < nlon; j++ {
			k := r*nlon + j
			if math.IsNaN(p.U[k]) {
				p.GPEFLat[k], p.GPEFLon[k], p.GPEFMag[k] = 0., 0., 0.
				continue
			}

			// meridional gradient, one-sided at the poles
			rm, rp := r-1, r+1
			if rm < 0 {
				rm = 0
			}
			if rp > nlat-1 {
				rp = nlat - 1
			}
			dlat := float64(rp-rm) * p.SegLenLat[k]
			glat := gradient(p.U[rm*nlon+j], p.U[k], p.U[rp*nlon+j], dlat)

			// zonal gradient, wrapping at the date line
			jm, jp := j-1, j+1
			if jm < 0 {
				jm = nlon - 2
			}
			if jp > nlon-1 {
				jp = 1
			}
			dlon := 2. * p.SegLenLon[k]
			var glon float64
			if dlon > 0. {
				glon = gradient(p.U[r*nlon+jm], p.U[k], p.U[r*nlon+jp], dlon)
			}

			p.GPEFLat[k] = -glat
			p.GPEFLon[k] = -glon
			p.GPEFMag[k] = math.Hypot(glat, glon)
		}
	}
	return nil
}

// gradient is a central difference that degrades to one-sided when a
// neighbour is undefined, and to zero when both are.
func gradient(um, u0, up, d float64) float64 {
	switch {
	case d <= 0.:
		return 0.
	case !math.IsNaN(um) && !math.IsNaN(up):
		return (up - um) / d
	case !math.IsNaN(up):
		return (up - u0) / (d / 2.)
	case !math.IsNaN(um):
		return (u0 - um) / (d / 2.)
	default:
		return 0.
	}
}

// columnPotential integrates the overburden stress over the column
// to the compensation depth (the depth-moment form: a layer's weight
// counts by its height above compensation, so isostatically balanced
// columns with mass higher up carry more potential). Oceanic columns
// follow the age-dependent bathymetry and plate thickness;
// continental columns use the fixed crust/lithosphere structure when
// the case carries them.
func columnPotential(ageMa float64, c *Config, m *Mech) float64 {
	comp := m.L + m.OceanCrustThick // compensation depth

	wedge := func(rho, z0, z1 float64) float64 {
		if z1 > comp {
			z1 = comp
		}
		if z1 <= z0 {
			return 0.
		}
		return rho * m.G * (comp*(z1-z0) - .5*(z1*z1-z0*z0))
	}

	if math.IsNaN(ageMa) {
		if !c.ContinentalCrust {
			return math.NaN()
		}
		u := wedge(m.RhoC, 0., m.ContCrustThick)
		u += wedge(m.RhoL, m.ContCrustThick, m.ContLithThick)
		u += wedge(m.Rho0, m.ContLithThick, comp)
		return u
	}

	w := m.WaterDepth(ageMa)
	h := m.LithThickness(ageMa, c.SeafloorAgeProfile)
	u := wedge(m.RhoW, 0., w)
	u += wedge(m.RhoC, w, w+m.OceanCrustThick)
	u += wedge(m.RhoL, w+m.OceanCrustThick, w+h)
	u += wedge(m.Rho0, w+h, comp)
	return u
}

// gridShape recovers the (nlat, nlon) layout of a regular point grid
// from its spacing.
func (p *Points) gridShape(spacingDeg float64) (nlat, nlon int, err error) {
	nlat = int(math.Round(180./spacingDeg)) + 1
	nlon = int(math.Round(360./spacingDeg)) + 1
	if nlat*nlon != p.Len() {
		return 0, 0, fmt.Errorf("points: %d rows do not form a %g deg grid", p.Len(), spacingDeg)
	}
	return nlat, nlon, nil
}
