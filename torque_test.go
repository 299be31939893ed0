package platefo

import (
	"math"
	"testing"
)

func onePlate(id int) *Plates {
	p := NewPlates(1)
	p.PlateID[0] = id
	p.Area[0] = 1.e13
	return p
}

func TestTorqueEquatorNorthForce(t *testing.T) {
	p := onePlate(101)
	// unit northward force at (0°N, 0°E), weight w: r = R x̂, F = w ẑ,
	// T = r × F = -R w ŷ
	w := 2.5e5
	TorqueOnPlates(p, []float64{0.}, []float64{0.}, []int{101},
		[]float64{1.}, []float64{0.}, []float64{w}, []float64{1.}, &p.SlabPullTorque)
	want := meanEarthRadius * w
	if math.Abs(p.SlabPullTorque.X[0]) > 1e-6*want ||
		math.Abs(p.SlabPullTorque.Y[0]+want) > 1e-6*want ||
		math.Abs(p.SlabPullTorque.Z[0]) > 1e-6*want {
		t.Errorf("torque (%g, %g, %g), want (0, %g, 0)",
			p.SlabPullTorque.X[0], p.SlabPullTorque.Y[0], p.SlabPullTorque.Z[0], -want)
	}
	if math.Abs(p.SlabPullTorque.Mag[0]-want) > 1e-6*want {
		t.Errorf("magnitude %g, want %g", p.SlabPullTorque.Mag[0], want)
	}
}

func TestTorquePoleEastForce(t *testing.T) {
	p := onePlate(101)
	// unit eastward force at the north pole: r = R ẑ, F = ŷ (lon 0),
	// T = R ẑ × ŷ = -R x̂
	TorqueOnPlates(p, []float64{90.}, []float64{0.}, []int{101},
		[]float64{0.}, []float64{1.}, []float64{1.}, []float64{1.}, &p.GPETorque)
	want := meanEarthRadius
	if math.Abs(p.GPETorque.X[0]+want) > 1e-6*want ||
		math.Abs(p.GPETorque.Y[0]) > 1e-6*want ||
		math.Abs(p.GPETorque.Z[0]) > 1e-6*want {
		t.Errorf("torque (%g, %g, %g), want (%g, 0, 0)",
			p.GPETorque.X[0], p.GPETorque.Y[0], p.GPETorque.Z[0], -want)
	}
}

func TestTorque45NEastForce(t *testing.T) {
	p := onePlate(7)
	// eastward force at 45°N 0°E: T = R(r̂ × ê) = R n̂
	TorqueOnPlates(p, []float64{45.}, []float64{0.}, []int{7},
		[]float64{0.}, []float64{1.}, []float64{1.}, []float64{1.}, &p.GPETorque)
	n := math.Sqrt(2.) / 2.
	wantX, wantZ := -meanEarthRadius*n, meanEarthRadius*n
	if math.Abs(p.GPETorque.X[0]-wantX) > 1e-6*meanEarthRadius ||
		math.Abs(p.GPETorque.Y[0]) > 1e-6*meanEarthRadius ||
		math.Abs(p.GPETorque.Z[0]-wantZ) > 1e-6*meanEarthRadius {
		t.Errorf("torque (%g, %g, %g), want (%g, 0, %g)",
			p.GPETorque.X[0], p.GPETorque.Y[0], p.GPETorque.Z[0], wantX, wantZ)
	}
}

func TestTorqueUnknownPlateExcluded(t *testing.T) {
	p := onePlate(101)
	TorqueOnPlates(p, []float64{10.}, []float64{20.}, []int{101},
		[]float64{1.}, []float64{-2.}, []float64{1.e5}, []float64{1.}, &p.SlabPullTorque)
	ref := p.SlabPullTorque.Mag[0]

	// an extra row owned by an absent plate must change nothing
	TorqueOnPlates(p, []float64{10., -33.}, []float64{20., 140.}, []int{101, 999},
		[]float64{1., 5.}, []float64{-2., 5.}, []float64{1.e5, 1.e9}, []float64{1., 1.}, &p.SlabPullTorque)
	if p.SlabPullTorque.Mag[0] != ref {
		t.Errorf("magnitude moved from %g to %g with an unassigned row", ref, p.SlabPullTorque.Mag[0])
	}
}

func TestCentroidForcePerpendicular(t *testing.T) {
	p := onePlate(101)
	p.CentroidLat[0], p.CentroidLon[0] = 0., 0.
	TorqueOnPlates(p, []float64{0.}, []float64{0.}, []int{101},
		[]float64{1.}, []float64{0.}, []float64{1.}, []float64{1.}, &p.SlabPullTorque)
	CentroidForce(p, &p.SlabPullTorque, &p.SlabPullForce)
	// torque from a northward unit force at the centroid converts back
	// to a northward unit force there
	if math.Abs(p.SlabPullForce.Lat[0]-1.) > 1e-9 || math.Abs(p.SlabPullForce.Lon[0]) > 1e-9 {
		t.Errorf("centroid force (%g, %g), want (1, 0)", p.SlabPullForce.Lat[0], p.SlabPullForce.Lon[0])
	}
}
