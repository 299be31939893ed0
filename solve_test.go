package platefo

import (
	"math"
	"testing"
)

// a single plate pulled by one trench segment, dragged by a handful
// of grid points
func solveScenario() (*Plates, *Slabs, *Points, *Config, *Mech) {
	m := NewMech()
	c := DefaultConfig("solve")
	c.ReconstructedMotions = false
	c.GPETorque = false
	c.SlabBendTorque = false
	c.InterfaceShearTorque = false

	pl := NewPlates(1)
	pl.PlateID[0] = 901
	pl.Area[0] = 1.e13
	pl.CentroidLat[0], pl.CentroidLon[0] = 10., 40.

	s := NewSlabs(1)
	s.Lat[0], s.Lon[0] = 0., 30.
	s.TrenchSegmentLength[0] = 250.e3
	s.TrenchNormalAzimuth[0] = 90.
	s.LowerPlateID[0], s.UpperPlateID[0], s.TrenchPlateID[0] = 901, 902, 902
	s.LowerPlateAge[0] = 80.
	s.SlabLength[0] = c.SlabLength

	pts := NewPoints(3)
	for i, ll := range [][2]float64{{5., 35.}, {10., 40.}, {15., 45.}} {
		pts.Lat[i], pts.Lon[i] = ll[0], ll[1]
		pts.PlateID[i] = 901
		pts.SegLenLat[i] = 1.e5
		pts.SegLenLon[i] = 1.e5 * math.Cos(deg2rad(ll[0]))
	}

	ComputeSlabPullForce(s, c, m)
	TorqueOnPlates(pl, s.Lat, s.Lon, s.LowerPlateID, s.SlabPullFLat, s.SlabPullFLon, s.TrenchSegmentLength, ones(1), &pl.SlabPullTorque)
	return pl, s, pts, c, m
}

func TestSolveConverges(t *testing.T) {
	pl, s, pts, c, m := solveScenario()
	r := SolveForceBalance(pl, s, pts, c, m)
	if r.State != Converged {
		t.Fatalf("state %v after %d iterations (delta %g)", r.State, r.Iterations, r.Delta)
	}
	if r.Delta >= convTolerance {
		t.Errorf("reported delta %g not under tolerance", r.Delta)
	}
	for i := 0; i < s.Len(); i++ {
		if h := math.Hypot(s.VConvLat[i], s.VConvLon[i]); math.Abs(h-s.VConvMag[i]) > 1e-9 {
			t.Errorf("row %d: convergence magnitude %g, components give %g", i, s.VConvMag[i], h)
		}
	}
}

func TestSolveIdempotentAtFixedPoint(t *testing.T) {
	pl, s, pts, c, m := solveScenario()
	if r := SolveForceBalance(pl, s, pts, c, m); r.State != Converged {
		t.Fatalf("first solve: %v", r.State)
	}
	v1 := append([]float64{}, s.VConvMag...)
	if r := SolveForceBalance(pl, s, pts, c, m); r.State != Converged {
		t.Fatalf("second solve: %v", r.State)
	}
	for i := range v1 {
		if math.Abs(s.VConvMag[i]-v1[i]) >= convTolerance {
			t.Errorf("row %d drifted %g between solves", i, math.Abs(s.VConvMag[i]-v1[i]))
		}
	}
}

func TestSolveReportsNonConvergence(t *testing.T) {
	pl, s, pts, c, m := solveScenario()
	// an absurdly stiff interface makes the shear feedback diverge
	c.InterfaceShearTorque = true
	m.IntVisc, m.SedVisc = 1.e32, 1.e32
	r := SolveForceBalance(pl, s, pts, c, m)
	if r.State != MaxIterationsExceeded {
		t.Fatalf("state %v, want max iterations exceeded", r.State)
	}
	if r.Iterations != maxIter {
		t.Errorf("iterations %d, want %d", r.Iterations, maxIter)
	}
	if r.Delta < convTolerance {
		t.Errorf("delta %g under tolerance yet not converged", r.Delta)
	}
}

func TestSolveSeedsZeroConvergence(t *testing.T) {
	pl, s, pts, c, m := solveScenario()
	s.VConvLat[0], s.VConvLon[0], s.VConvMag[0] = 99., 99., math.Hypot(99., 99.)
	r := SolveForceBalance(pl, s, pts, c, m)
	// the stale iterate must not leak into the result
	if r.State != Converged {
		t.Fatalf("state %v", r.State)
	}
	if s.VConvMag[0] > 50. {
		t.Errorf("converged magnitude %g suggests the seed was kept", s.VConvMag[0])
	}
}
