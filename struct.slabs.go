package platefo

import (
	"fmt"
	"math"
)

// Slabs is the trench-segment table for one (time, case): one row per
// tessellation point along the subduction zones.
type Slabs struct {
	Lat, Lon            []float64
	TrenchSegmentLength []float64 // [m]
	TrenchNormalAzimuth []float64 // [°] clockwise from north, in [0,360)

	LowerPlateID, UpperPlateID, TrenchPlateID []int

	// absolute velocities [cm/a] of the three plate roles
	VLowerLat, VLowerLon, VLowerMag, VLowerAzi     []float64
	VUpperLat, VUpperLon, VUpperMag, VUpperAzi     []float64
	VTrenchLat, VTrenchLon, VTrenchMag, VTrenchAzi []float64

	VConvLat, VConvLon, VConvMag []float64 // lower minus upper/trench [cm/a]

	UpperPlateAge       []float64 // [Ma], NaN when unsampled or continental
	UpperPlateThickness []float64
	ContinentalArc      []bool
	LowerPlateAge       []float64
	LowerPlateThickness []float64
	SedimentThickness   []float64 // [m]
	SedimentFraction    []float64
	SlabLength          []float64 // [m], configured constant

	SlabPullFMag, SlabPullFLat, SlabPullFLon []float64
	SlabBendFMag, SlabBendFLat, SlabBendFLon []float64
	IntShearFMag, IntShearFLat, IntShearFLon []float64
}

func NewSlabs(n int) *Slabs {
	z := func() []float64 { return make([]float64, n) }
	nan := func() []float64 {
		o := make([]float64, n)
		for i := range o {
			o[i] = math.NaN()
		}
		return o
	}
	return &Slabs{
		Lat: z(), Lon: z(), TrenchSegmentLength: z(), TrenchNormalAzimuth: z(),
		LowerPlateID: make([]int, n), UpperPlateID: make([]int, n), TrenchPlateID: make([]int, n),
		VLowerLat: z(), VLowerLon: z(), VLowerMag: z(), VLowerAzi: z(),
		VUpperLat: z(), VUpperLon: z(), VUpperMag: z(), VUpperAzi: z(),
		VTrenchLat: z(), VTrenchLon: z(), VTrenchMag: z(), VTrenchAzi: z(),
		VConvLat: z(), VConvLon: z(), VConvMag: z(),
		UpperPlateAge: nan(), UpperPlateThickness: z(), ContinentalArc: make([]bool, n),
		LowerPlateAge: nan(), LowerPlateThickness: nan(),
		SedimentThickness: z(), SedimentFraction: z(), SlabLength: z(),
		SlabPullFMag: z(), SlabPullFLat: z(), SlabPullFLon: z(),
		SlabBendFMag: z(), SlabBendFLat: z(), SlabBendFLon: z(),
		IntShearFMag: z(), IntShearFLat: z(), IntShearFLon: z(),
	}
}

func (s *Slabs) Len() int { return len(s.Lat) }

func (s *Slabs) Copy() *Slabs {
	cp := func(v []float64) []float64 { return append([]float64{}, v...) }
	cpi := func(v []int) []int { return append([]int{}, v...) }
	cpb := func(v []bool) []bool { return append([]bool{}, v...) }
	return &Slabs{
		Lat: cp(s.Lat), Lon: cp(s.Lon),
		TrenchSegmentLength: cp(s.TrenchSegmentLength), TrenchNormalAzimuth: cp(s.TrenchNormalAzimuth),
		LowerPlateID: cpi(s.LowerPlateID), UpperPlateID: cpi(s.UpperPlateID), TrenchPlateID: cpi(s.TrenchPlateID),
		VLowerLat: cp(s.VLowerLat), VLowerLon: cp(s.VLowerLon), VLowerMag: cp(s.VLowerMag), VLowerAzi: cp(s.VLowerAzi),
		VUpperLat: cp(s.VUpperLat), VUpperLon: cp(s.VUpperLon), VUpperMag: cp(s.VUpperMag), VUpperAzi: cp(s.VUpperAzi),
		VTrenchLat: cp(s.VTrenchLat), VTrenchLon: cp(s.VTrenchLon), VTrenchMag: cp(s.VTrenchMag), VTrenchAzi: cp(s.VTrenchAzi),
		VConvLat: cp(s.VConvLat), VConvLon: cp(s.VConvLon), VConvMag: cp(s.VConvMag),
		UpperPlateAge: cp(s.UpperPlateAge), UpperPlateThickness: cp(s.UpperPlateThickness), ContinentalArc: cpb(s.ContinentalArc),
		LowerPlateAge: cp(s.LowerPlateAge), LowerPlateThickness: cp(s.LowerPlateThickness),
		SedimentThickness: cp(s.SedimentThickness), SedimentFraction: cp(s.SedimentFraction), SlabLength: cp(s.SlabLength),
		SlabPullFMag: cp(s.SlabPullFMag), SlabPullFLat: cp(s.SlabPullFLat), SlabPullFLon: cp(s.SlabPullFLon),
		SlabBendFMag: cp(s.SlabBendFMag), SlabBendFLat: cp(s.SlabBendFLat), SlabBendFLon: cp(s.SlabBendFLon),
		IntShearFMag: cp(s.IntShearFMag), IntShearFLat: cp(s.IntShearFLat), IntShearFLon: cp(s.IntShearFLon),
	}
}

// Check validates the table invariants: positive segment lengths,
// azimuths in [0,360), convergence magnitude consistent with its
// components.
func (s *Slabs) Check() error {
	for i := range s.Lat {
		if s.TrenchSegmentLength[i] <= 0. {
			return fmt.Errorf("slabs.Check: row %d: trench segment length %g: must be positive", i, s.TrenchSegmentLength[i])
		}
		if a := s.TrenchNormalAzimuth[i]; a < 0. || a >= 360. {
			return fmt.Errorf("slabs.Check: row %d: trench normal azimuth %g outside [0,360)", i, a)
		}
		if m := math.Hypot(s.VConvLat[i], s.VConvLon[i]); math.Abs(m-s.VConvMag[i]) > 1e-9*(1.+m) {
			return fmt.Errorf("slabs.Check: row %d: convergence magnitude %g inconsistent with components (%g)", i, s.VConvMag[i], m)
		}
	}
	return nil
}

// UpdateConvergence recomputes the convergence velocity at every
// segment as lower-plate minus upper-plate velocity; with stationary
// trenches only the lower plate moves relative to the mantle.
func (s *Slabs) UpdateConvergence(stationaryTrenches bool) {
	for i := range s.Lat {
		vlat, vlon := s.VLowerLat[i], s.VLowerLon[i]
		if !stationaryTrenches {
			vlat -= s.VUpperLat[i]
			vlon -= s.VUpperLon[i]
		}
		s.VConvLat[i], s.VConvLon[i] = vlat, vlon
		s.VConvMag[i] = math.Hypot(vlat, vlon)
	}
}
