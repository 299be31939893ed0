package platefo

import "math"

// TorqueOnPlates folds per-row tangent-plane forces into whole-plate
// torque vectors about the planet centre. Each row's force [N/m or
// N/m²] is scaled by its integration weight wA*wB, rotated into the
// geocentric frame at the row's position and crossed with the
// position vector. Rows whose plateID has no plate row are skipped;
// magnitudes are taken once after all contributions are summed.
func TorqueOnPlates(pl *Plates, lat, lon []float64, plateIDs []int, fLat, fLon, wA, wB []float64, dst *TorqueSet) {
	ix := pl.Index()
	for j := range dst.X {
		dst.X[j], dst.Y[j], dst.Z[j] = 0., 0., 0.
	}
	for i := range lat {
		j, ok := ix[plateIDs[i]]
		if !ok {
			continue
		}
		w := wA[i] * wB[i]
		if w == 0. || (fLat[i] == 0. && fLon[i] == 0.) {
			continue
		}
		e, n := enuVectors(lat[i], lon[i])
		f := e.scale(fLon[i] * w).add(n.scale(fLat[i] * w))
		r := geocentric(lat[i], lon[i]).scale(meanEarthRadius)
		t := cross(r, f)
		dst.X[j] += t.X
		dst.Y[j] += t.Y
		dst.Z[j] += t.Z
	}
	for j := range dst.X {
		dst.Mag[j] = math.Sqrt(dst.X[j]*dst.X[j] + dst.Y[j]*dst.Y[j] + dst.Z[j]*dst.Z[j])
	}
}

// CentroidForce converts an accumulated torque into the equivalent
// tangential force at each plate's centroid, filling dst.
func CentroidForce(pl *Plates, src *TorqueSet, dst *ForceSet) {
	for j := 0; j < pl.Len(); j++ {
		r := geocentric(pl.CentroidLat[j], pl.CentroidLon[j])
		t := xyz{src.X[j], src.Y[j], src.Z[j]}
		// F = (T x r̂) / R
		f := cross(t, r).scale(1. / meanEarthRadius)
		vlat, vlon := localComponents(f, pl.CentroidLat[j], pl.CentroidLon[j])
		dst.Lat[j], dst.Lon[j] = vlat, vlon
		dst.Mag[j] = math.Hypot(vlat, vlon)
	}
}

// ResidualTorqueOnPlates sums the active driving and resistive
// torques per plate, applying the case's slab pull constant to the
// slab pull contribution. The residual is what an exact force
// balance would leave at zero.
func ResidualTorqueOnPlates(pl *Plates, c *Config) {
	for j := 0; j < pl.Len(); j++ {
		var x, y, z float64
		if c.SlabPullTorque {
			x += pl.SlabPullTorque.X[j] * c.SlabPullConstant
			y += pl.SlabPullTorque.Y[j] * c.SlabPullConstant
			z += pl.SlabPullTorque.Z[j] * c.SlabPullConstant
		}
		if c.GPETorque {
			x += pl.GPETorque.X[j]
			y += pl.GPETorque.Y[j]
			z += pl.GPETorque.Z[j]
		}
		if c.SlabBendTorque {
			x += pl.SlabBendTorque.X[j]
			y += pl.SlabBendTorque.Y[j]
			z += pl.SlabBendTorque.Z[j]
		}
		if c.InterfaceShearTorque {
			x += pl.IntShearTorque.X[j]
			y += pl.IntShearTorque.Y[j]
			z += pl.IntShearTorque.Z[j]
		}
		if c.MantleDragTorque {
			x += pl.MantleDragTorque.X[j]
			y += pl.MantleDragTorque.Y[j]
			z += pl.MantleDragTorque.Z[j]
		}
		pl.ResidualTorque.X[j], pl.ResidualTorque.Y[j], pl.ResidualTorque.Z[j] = x, y, z
		pl.ResidualTorque.Mag[j] = math.Sqrt(x*x + y*y + z*z)
	}
	CentroidForce(pl, &pl.ResidualTorque, &pl.ResidualForce)
}
