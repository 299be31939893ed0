package platefo

import "math"

// SolverState reports the outcome of the force-balance iteration.
type SolverState int

const (
	Iterating SolverState = iota
	Converged
	MaxIterationsExceeded
)

func (s SolverState) String() string {
	switch s {
	case Converged:
		return "converged"
	case MaxIterationsExceeded:
		return "max iterations exceeded"
	default:
		return "iterating"
	}
}

// SolveResult is the solver's report: non-convergence is a distinct
// recoverable outcome, the last iterate stays in the tables either
// way.
type SolveResult struct {
	State      SolverState
	Iterations int
	Delta      float64 // final max |Δ v_convergence| [cm/a]
}

// SolveForceBalance iterates the velocity-dependent torques to a
// self-consistent plate motion. Applies to cases where motions are
// derived rather than reconstructed: each pass recomputes the
// velocity-dependent forces from the previous iterate, balances the
// driving torques against mantle drag to update each plate's stage
// pole, and re-resolves convergence at the trenches. Convergence
// magnitudes are seeded at zero so the first pass is a pure slab
// pull / GPE start.
func SolveForceBalance(pl *Plates, s *Slabs, pts *Points, c *Config, m *Mech) SolveResult {
	for i := 0; i < s.Len(); i++ {
		s.VConvLat[i], s.VConvLon[i], s.VConvMag[i] = 0., 0., 0.
	}
	prev := make([]float64, s.Len())
	w1 := ones(s.Len())

	res := SolveResult{State: Iterating}
	for it := 1; it <= maxIter; it++ {
		if c.InterfaceShearTorque {
			ComputeInterfaceShearForce(s, c, m)
			TorqueOnPlates(pl, s.Lat, s.Lon, s.LowerPlateID, s.IntShearFLat, s.IntShearFLon, s.TrenchSegmentLength, w1, &pl.IntShearTorque)
		}
		if c.SlabBendTorque {
			ComputeSlabBendForce(s, c, m)
			TorqueOnPlates(pl, s.Lat, s.Lon, s.LowerPlateID, s.SlabBendFLat, s.SlabBendFLon, s.TrenchSegmentLength, w1, &pl.SlabBendTorque)
		}

		balancePlateRotation(pl, c, m)
		AssignPointVelocities(pts, pl, c.VelocityTimeStep)
		ComputeMantleDragForce(pts, c, m)
		TorqueOnPlates(pl, pts.Lat, pts.Lon, pts.PlateID, pts.DragFLat, pts.DragFLon, pts.SegLenLat, pts.SegLenLon, &pl.MantleDragTorque)
		CentroidForce(pl, &pl.MantleDragTorque, &pl.MantleDragForce)
		AssignSlabVelocities(s, pl, c.VelocityTimeStep, c.MantleStationaryTrenches)

		dmax := 0.
		for i := range prev {
			d := math.Abs(s.VConvMag[i] - prev[i])
			if math.IsNaN(d) { // diverged, not settled
				d = math.Inf(1)
			}
			if d > dmax {
				dmax = d
			}
			prev[i] = s.VConvMag[i]
		}
		res.Iterations, res.Delta = it, dmax
		if dmax < convTolerance {
			res.State = Converged
			return res
		}
	}
	res.State = MaxIterationsExceeded
	return res
}

// balancePlateRotation sets each plate's stage pole so that Couette
// drag over its area balances the driving torques: ω = T / (k R² A)
// with k = η/La. Plates with no area stay put.
func balancePlateRotation(pl *Plates, c *Config, m *Mech) {
	k := c.MantleViscosity / m.La
	dtSec := c.VelocityTimeStep * ma2sec
	for j := 0; j < pl.Len(); j++ {
		if pl.Area[j] <= 0. {
			continue
		}
		var tx, ty, tz float64
		if c.SlabPullTorque {
			tx += pl.SlabPullTorque.X[j] * c.SlabPullConstant
			ty += pl.SlabPullTorque.Y[j] * c.SlabPullConstant
			tz += pl.SlabPullTorque.Z[j] * c.SlabPullConstant
		}
		if c.GPETorque {
			tx += pl.GPETorque.X[j]
			ty += pl.GPETorque.Y[j]
			tz += pl.GPETorque.Z[j]
		}
		if c.SlabBendTorque {
			tx += pl.SlabBendTorque.X[j]
			ty += pl.SlabBendTorque.Y[j]
			tz += pl.SlabBendTorque.Z[j]
		}
		if c.InterfaceShearTorque {
			tx += pl.IntShearTorque.X[j]
			ty += pl.IntShearTorque.Y[j]
			tz += pl.IntShearTorque.Z[j]
		}

		s := 1. / (k * meanEarthRadius * meanEarthRadius * pl.Area[j])
		wx, wy, wz := tx*s, ty*s, tz*s // [rad/s]
		wmag := math.Sqrt(wx*wx + wy*wy + wz*wz)
		if wmag == 0. {
			pl.PoleAngle[j] = 0.
			pl.VLat[j], pl.VLon[j], pl.VMag[j] = 0., 0., 0.
			continue
		}
		pl.PoleLat[j] = rad2deg(math.Asin(wz / wmag))
		pl.PoleLon[j] = rad2deg(math.Atan2(wy, wx))
		pl.PoleAngle[j] = rad2deg(wmag * dtSec)
		pl.VLat[j], pl.VLon[j], pl.VMag[j] = polePointVelocity(pl.CentroidLat[j], pl.CentroidLon[j], pl.PoleLat[j], pl.PoleLon[j], pl.PoleAngle[j], c.VelocityTimeStep)
	}
}

func ones(n int) []float64 {
	o := make([]float64, n)
	for i := range o {
		o[i] = 1.
	}
	return o
}
