package platefo

import (
	"math"
	"testing"
)

func TestSlabPullNaNAgeZeroForce(t *testing.T) {
	m := NewMech()
	c := DefaultConfig("sp")
	s := NewSlabs(2)
	s.TrenchNormalAzimuth[0], s.TrenchNormalAzimuth[1] = 90., 90.
	s.SlabLength[0], s.SlabLength[1] = c.SlabLength, c.SlabLength
	s.LowerPlateAge[1] = 50.

	ComputeSlabPullForce(s, c, m)
	if s.SlabPullFMag[0] != 0. || s.SlabPullFLat[0] != 0. || s.SlabPullFLon[0] != 0. {
		t.Errorf("NaN age row produced force %g", s.SlabPullFMag[0])
	}
	if s.SlabPullFMag[1] <= 0. {
		t.Errorf("aged row produced no pull")
	}
	// pull acts opposite the trench normal: azimuth 90 pulls due west
	if s.SlabPullFLon[1] >= 0. {
		t.Errorf("pull longitude component %g, want westward", s.SlabPullFLon[1])
	}
}

func TestSlabPullSedimentsReduceDensityContrast(t *testing.T) {
	m := NewMech()
	if m.DrhoSed >= 0. {
		t.Fatalf("sediment-mantle contrast %g, want buoyant (negative)", m.DrhoSed)
	}
	c := DefaultConfig("sed")
	mk := func(sub bool, sed float64) float64 {
		cc := c.copy()
		cc.SedimentSubduction = sub
		s := NewSlabs(1)
		s.TrenchNormalAzimuth[0] = 0.
		s.SlabLength[0] = c.SlabLength
		s.LowerPlateAge[0] = 60.
		s.SedimentThickness[0] = sed
		ComputeSlabPullForce(s, cc, m)
		return s.SlabPullFMag[0]
	}
	bare := mk(false, 5.e3)
	with := mk(true, 5.e3)
	if with >= bare {
		t.Errorf("sediment-laden pull %g not below %g", with, bare)
	}
}

func TestGPEUniformFieldNoForce(t *testing.T) {
	m := NewMech()
	c := DefaultConfig("gpe")
	c.GridSpacing = 30.
	p := NewPointGrid(30.)
	for i := range p.SeafloorAge {
		p.SeafloorAge[i] = 40.
	}
	if err := ComputeGPEForce(p, c, m); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < p.Len(); i++ {
		if p.GPEFMag[i] > 1e-9 {
			t.Fatalf("uniform field produced force %g at row %d", p.GPEFMag[i], i)
		}
	}
}

func TestGPEDownslopeDirection(t *testing.T) {
	m := NewMech()
	c := DefaultConfig("gpe2")
	c.GridSpacing = 30.
	p := NewPointGrid(30.)
	// age (and so potential) increasing northward
	for i := range p.SeafloorAge {
		p.SeafloorAge[i] = 60. + p.Lat[i]/3.
	}
	if err := ComputeGPEForce(p, c, m); err != nil {
		t.Fatal(err)
	}
	// older seafloor is deeper and carries less potential, so the
	// force (down the potential gradient) points north; check an
	// interior row
	nlat, nlon, _ := p.gridShape(30.)
	k := (nlat/2)*nlon + nlon/2
	if p.GPEFLat[k] <= 0. {
		t.Errorf("interior point force lat component %g, want northward (%g)", p.GPEFLat[k], p.U[k])
	}
}

func TestGPEUndefinedColumnZero(t *testing.T) {
	m := NewMech()
	c := DefaultConfig("gpe3")
	c.GridSpacing = 30.
	p := NewPointGrid(30.)
	// ages left NaN and no continental crust: nothing to push
	if err := ComputeGPEForce(p, c, m); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < p.Len(); i++ {
		if p.GPEFMag[i] != 0. {
			t.Fatalf("undefined column produced force at row %d", i)
		}
	}
}

func TestMantleDragOpposesVelocity(t *testing.T) {
	m := NewMech()
	c := DefaultConfig("drag")
	p := NewPoints(1)
	p.VLat[0], p.VLon[0] = 3., -4.
	ComputeMantleDragForce(p, c, m)
	if p.DragFLat[0] >= 0. || p.DragFLon[0] <= 0. {
		t.Errorf("drag (%g, %g) does not oppose (3, -4)", p.DragFLat[0], p.DragFLon[0])
	}
	if math.Abs(p.DragFLat[0]/p.DragFLon[0]-(-3./4.)) > 1e-9 {
		t.Errorf("drag not antiparallel to velocity")
	}
}

func TestInterfaceShearOpposesConvergence(t *testing.T) {
	m := NewMech()
	c := DefaultConfig("shear")
	s := NewSlabs(1)
	s.LowerPlateAge[0] = 50.
	s.VConvLat[0], s.VConvLon[0] = 0., 5.
	s.VConvMag[0] = 5.
	ComputeInterfaceShearForce(s, c, m)
	if s.IntShearFLon[0] >= 0. || math.Abs(s.IntShearFLat[0]) > 1e-12 {
		t.Errorf("shear (%g, %g) does not oppose eastward convergence", s.IntShearFLat[0], s.IntShearFLon[0])
	}
}
