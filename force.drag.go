package platefo

import "math"

// ComputeMantleDragForce fills the point mantle drag force columns.
// Couette shear across the asthenosphere resists plate motion over
// the mantle: traction = -(eta/La) * v. For reconstructed motions the
// point velocities are already resolved from the rotation model; for
// synthetic motions the caller supplies the current solver iterate
// through the same columns.
func ComputeMantleDragForce(pts *Points, c *Config, m *Mech) {
	k := c.MantleViscosity / m.La
	for i := 0; i < pts.Len(); i++ {
		pts.DragFLat[i] = -k * pts.VLat[i] * cma2ms
		pts.DragFLon[i] = -k * pts.VLon[i] * cma2ms
		pts.DragFMag[i] = math.Hypot(pts.DragFLat[i], pts.DragFLon[i])
	}
}

// AssignPointVelocities sets every point's velocity from its owning
// plate's stage pole. The plate index is built once; points whose
// plateID has no plate row keep zero velocity.
func AssignPointVelocities(pts *Points, pl *Plates, dtMa float64) {
	ix := pl.Index()
	for i := 0; i < pts.Len(); i++ {
		j, ok := ix[pts.PlateID[i]]
		if !ok {
			pts.VLat[i], pts.VLon[i], pts.VMag[i] = 0., 0., 0.
			continue
		}
		vlat, vlon, vmag := polePointVelocity(pts.Lat[i], pts.Lon[i], pl.PoleLat[j], pl.PoleLon[j], pl.PoleAngle[j], dtMa)
		pts.VLat[i], pts.VLon[i], pts.VMag[i] = vlat, vlon, vmag
	}
}

// AssignSlabVelocities resolves the lower/upper/trench plate
// velocities at every slab point from the plate table's stage poles,
// then refreshes the convergence columns.
func AssignSlabVelocities(s *Slabs, pl *Plates, dtMa float64, stationaryTrenches bool) {
	ix := pl.Index()
	at := func(id int, lat, lon float64) (vlat, vlon, vmag, vazi float64) {
		j, ok := ix[id]
		if !ok {
			return 0., 0., 0., 0.
		}
		vlat, vlon, vmag = polePointVelocity(lat, lon, pl.PoleLat[j], pl.PoleLon[j], pl.PoleAngle[j], dtMa)
		_, vazi = LatLon2MagAzi(vlat, vlon)
		return
	}
	for i := 0; i < s.Len(); i++ {
		s.VLowerLat[i], s.VLowerLon[i], s.VLowerMag[i], s.VLowerAzi[i] = at(s.LowerPlateID[i], s.Lat[i], s.Lon[i])
		s.VUpperLat[i], s.VUpperLon[i], s.VUpperMag[i], s.VUpperAzi[i] = at(s.UpperPlateID[i], s.Lat[i], s.Lon[i])
		s.VTrenchLat[i], s.VTrenchLon[i], s.VTrenchMag[i], s.VTrenchAzi[i] = at(s.TrenchPlateID[i], s.Lat[i], s.Lon[i])
	}
	s.UpdateConvergence(stationaryTrenches)
}
