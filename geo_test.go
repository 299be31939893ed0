package platefo

import (
	"math"
	"testing"
)

func TestMagAziRoundTrip(t *testing.T) {
	for _, azi := range []float64{0., 45., 90., 147., 233., 359.} {
		la, lo := MagAzi2LatLon(3.2, azi)
		m2, a2 := LatLon2MagAzi(la, lo)
		if math.Abs(m2-3.2) > 1e-12 {
			t.Errorf("azi %g: magnitude %g", azi, m2)
		}
		if math.Abs(a2-azi) > 1e-9 {
			t.Errorf("azi %g: returned %g", azi, a2)
		}
	}
}

func TestMagAziQuadrants(t *testing.T) {
	la, lo := MagAzi2LatLon(1., 0.) // due north
	if math.Abs(la-1.) > 1e-12 || math.Abs(lo) > 1e-12 {
		t.Errorf("north: (%g, %g)", la, lo)
	}
	la, lo = MagAzi2LatLon(1., 90.) // due east
	if math.Abs(la) > 1e-12 || math.Abs(lo-1.) > 1e-12 {
		t.Errorf("east: (%g, %g)", la, lo)
	}
	la, lo = MagAzi2LatLon(1., 180.) // due south
	if math.Abs(la+1.) > 1e-12 || math.Abs(lo) > 1e-12 {
		t.Errorf("south: (%g, %g)", la, lo)
	}
}

func TestEnuOrthonormal(t *testing.T) {
	for _, ll := range [][2]float64{{0., 0.}, {45., 30.}, {-60., -120.}, {89., 179.}} {
		e, n := enuVectors(ll[0], ll[1])
		r := geocentric(ll[0], ll[1])
		dot := func(a, b xyz) float64 { return a.X*b.X + a.Y*b.Y + a.Z*b.Z }
		if math.Abs(dot(e, n)) > 1e-12 || math.Abs(dot(e, r)) > 1e-12 || math.Abs(dot(n, r)) > 1e-12 {
			t.Errorf("(%g,%g): frame not orthogonal", ll[0], ll[1])
		}
		if math.Abs(e.mag()-1.) > 1e-12 || math.Abs(n.mag()-1.) > 1e-12 || math.Abs(r.mag()-1.) > 1e-12 {
			t.Errorf("(%g,%g): frame not unit", ll[0], ll[1])
		}
	}
}

func TestLocalComponentsInvertEnu(t *testing.T) {
	lat, lon := 37., -122.
	e, n := enuVectors(lat, lon)
	v := e.scale(2.5).add(n.scale(-1.25))
	vlat, vlon := localComponents(v, lat, lon)
	if math.Abs(vlat+1.25) > 1e-12 || math.Abs(vlon-2.5) > 1e-12 {
		t.Errorf("got (%g, %g)", vlat, vlon)
	}
}
