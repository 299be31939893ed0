// Package recon defines the contract with a plate reconstruction
// model: stage rotations and the geometries resolved from them.
package recon

import (
	"fmt"
	"math"
)

const (
	earthRadius = 6371.e3
	m2cm        = 100.
	ma2yr       = 1.e6
)

// Pole is a finite (or stage) Euler rotation.
type Pole struct {
	Lat, Lon float64 // pole position (deg)
	Angle    float64 // rotation angle (deg)
}

// Rotator supplies stage rotations from a reconstruction model.
// Implementations wrap whatever rotation file format the model uses.
type Rotator interface {
	// StagePole returns the rotation of movingID from fromMa to toMa
	// relative to anchorID.
	StagePole(movingID int, fromMa, toMa float64, anchorID int) (Pole, error)
}

// PointVelocity evaluates the surface velocity (cm/yr, east-north
// components) at (lat,lon) induced by the stage pole p taken over
// dtMa million years.
func PointVelocity(lat, lon float64, p Pole, dtMa float64) (vlat, vlon, vmag float64) {
	if dtMa == 0. {
		return 0., 0., 0.
	}
	d2r := math.Pi / 180.
	// angular velocity vector (rad/yr)
	w := p.Angle * d2r / (dtMa * ma2yr)
	wx := w * math.Cos(p.Lat*d2r) * math.Cos(p.Lon*d2r)
	wy := w * math.Cos(p.Lat*d2r) * math.Sin(p.Lon*d2r)
	wz := w * math.Sin(p.Lat*d2r)

	// position vector
	rx := earthRadius * math.Cos(lat*d2r) * math.Cos(lon*d2r)
	ry := earthRadius * math.Cos(lat*d2r) * math.Sin(lon*d2r)
	rz := earthRadius * math.Sin(lat*d2r)

	// v = w x r (m/yr)
	vx := wy*rz - wz*ry
	vy := wz*rx - wx*rz
	vz := wx*ry - wy*rx

	// project onto local east-north frame
	sla, cla := math.Sincos(lat * d2r)
	slo, clo := math.Sincos(lon * d2r)
	ve := -slo*vx + clo*vy
	vn := -sla*clo*vx - sla*slo*vy + cla*vz

	vlat = vn * m2cm
	vlon = ve * m2cm
	vmag = math.Hypot(vlat, vlon)
	return
}

// StaticRotator serves poles from a preloaded table, keyed on
// (movingID, anchorID, fromMa, toMa). It is the form produced when
// rotations are exported alongside the resolved geometries.
type StaticRotator struct {
	Poles map[PoleKey]Pole
}

type PoleKey struct {
	MovingID, AnchorID int
	FromMa, ToMa       float64
}

func (s *StaticRotator) StagePole(movingID int, fromMa, toMa float64, anchorID int) (Pole, error) {
	if p, ok := s.Poles[PoleKey{movingID, anchorID, fromMa, toMa}]; ok {
		return p, nil
	}
	return Pole{}, fmt.Errorf("recon.StagePole: no rotation for plate %d (%g to %g Ma, anchor %d)", movingID, fromMa, toMa, anchorID)
}
