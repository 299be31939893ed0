package platefo

import (
	"math"
	"path/filepath"
	"testing"
)

func TestPlatesCSVRoundTrip(t *testing.T) {
	fp := filepath.Join(t.TempDir(), "plates.csv")

	p := NewPlates(2)
	p.PlateID[0], p.PlateID[1] = 101, 901
	p.Name[0], p.Name[1] = "N America", "Pacific"
	p.Area[0], p.Area[1] = 5.5e13, 1.03e14
	p.CentroidLat[0], p.CentroidLon[0] = 45.5, -100.25
	p.VMag[1] = 7.5
	p.SlabPullTorque.Mag[1] = 1.6e26
	p.ResidualTorque.Mag[1] = 4.2e24

	if err := WritePlatesCSV(fp, p); err != nil {
		t.Fatal(err)
	}
	q, err := ReadPlatesCSV(fp)
	if err != nil {
		t.Fatal(err)
	}
	if q.Len() != p.Len() {
		t.Fatalf("read %d rows, wrote %d", q.Len(), p.Len())
	}
	for j := 0; j < p.Len(); j++ {
		if q.PlateID[j] != p.PlateID[j] || q.Name[j] != p.Name[j] {
			t.Errorf("row %d: got %d %q", j, q.PlateID[j], q.Name[j])
		}
		if math.Abs(q.Area[j]-p.Area[j])/p.Area[j] > 1e-6 {
			t.Errorf("row %d: area %g, wrote %g", j, q.Area[j], p.Area[j])
		}
	}
	if math.Abs(q.SlabPullTorque.Mag[1]-p.SlabPullTorque.Mag[1])/p.SlabPullTorque.Mag[1] > 1e-6 {
		t.Errorf("slab pull torque %g, wrote %g", q.SlabPullTorque.Mag[1], p.SlabPullTorque.Mag[1])
	}
}

func TestSlabsCSVRoundTrip(t *testing.T) {
	fp := filepath.Join(t.TempDir(), "slabs.csv")

	s := NewSlabs(2)
	s.Lat[0], s.Lon[0] = -12.5, 166.75
	s.TrenchSegmentLength[0] = 250.e3
	s.TrenchNormalAzimuth[0] = 87.5
	s.LowerPlateID[0], s.UpperPlateID[0], s.TrenchPlateID[0] = 901, 801, 801
	s.LowerPlateAge[0] = 85.
	s.LowerPlateAge[1] = math.NaN()
	s.SlabPullFMag[0] = 9.4e13

	if err := WriteSlabsCSV(fp, s); err != nil {
		t.Fatal(err)
	}
	q, err := ReadSlabsCSV(fp)
	if err != nil {
		t.Fatal(err)
	}
	if q.Len() != 2 {
		t.Fatalf("read %d rows", q.Len())
	}
	if q.LowerPlateID[0] != 901 || q.UpperPlateID[0] != 801 {
		t.Errorf("plate IDs %d %d", q.LowerPlateID[0], q.UpperPlateID[0])
	}
	if math.Abs(q.LowerPlateAge[0]-85.) > 1e-6 {
		t.Errorf("age %g", q.LowerPlateAge[0])
	}
	// undefined ages survive the trip
	if !math.IsNaN(q.LowerPlateAge[1]) {
		t.Errorf("row 1 age %g, want NaN", q.LowerPlateAge[1])
	}
}

func TestPointsCSVRoundTrip(t *testing.T) {
	fp := filepath.Join(t.TempDir(), "points.csv")

	p := NewPoints(1)
	p.Lat[0], p.Lon[0] = 30., -45.
	p.PlateID[0] = 101
	p.SeafloorAge[0] = 42.
	p.U[0] = -3.1e12

	if err := WritePointsCSV(fp, p); err != nil {
		t.Fatal(err)
	}
	q, err := ReadPointsCSV(fp)
	if err != nil {
		t.Fatal(err)
	}
	if q.Len() != 1 || q.PlateID[0] != 101 {
		t.Fatalf("read %d rows, plateID %d", q.Len(), q.PlateID[0])
	}
	if math.Abs(q.U[0]-p.U[0])/math.Abs(p.U[0]) > 1e-6 {
		t.Errorf("potential %g, wrote %g", q.U[0], p.U[0])
	}
}

func TestReadCSVMissingFileIsNil(t *testing.T) {
	fp := filepath.Join(t.TempDir(), "nope.csv")
	if p, err := ReadPlatesCSV(fp); p != nil || err != nil {
		t.Errorf("plates: %v %v", p, err)
	}
	if s, err := ReadSlabsCSV(fp); s != nil || err != nil {
		t.Errorf("slabs: %v %v", s, err)
	}
	if p, err := ReadPointsCSV(fp); p != nil || err != nil {
		t.Errorf("points: %v %v", p, err)
	}
}
