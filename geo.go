package platefo

import (
	"math"

	"github.com/thomas-schouten/PLATEFO/recon"
)

// Every force model expresses its output as magnitude plus lat/lon
// components through MagAzi2LatLon; azimuths are degrees clockwise
// from north. Keeping the conversion in one spot keeps the sign
// convention in one spot.

func deg2rad(d float64) float64 { return d * math.Pi / 180. }
func rad2deg(r float64) float64 { return r * 180. / math.Pi }

// MagAzi2LatLon converts a (magnitude, azimuth) pair to north (lat)
// and east (lon) components.
func MagAzi2LatLon(mag, aziDeg float64) (lat, lon float64) {
	a := deg2rad(aziDeg)
	return mag * math.Cos(a), mag * math.Sin(a)
}

// LatLon2MagAzi is the inverse; azimuth returned in [0,360).
func LatLon2MagAzi(lat, lon float64) (mag, aziDeg float64) {
	mag = math.Hypot(lat, lon)
	aziDeg = rad2deg(math.Atan2(lon, lat))
	if aziDeg < 0. {
		aziDeg += 360.
	}
	return
}

type xyz struct{ X, Y, Z float64 }

func (a xyz) add(b xyz) xyz       { return xyz{a.X + b.X, a.Y + b.Y, a.Z + b.Z} }
func (a xyz) sub(b xyz) xyz       { return xyz{a.X - b.X, a.Y - b.Y, a.Z - b.Z} }
func (a xyz) scale(s float64) xyz { return xyz{a.X * s, a.Y * s, a.Z * s} }
func (a xyz) mag() float64        { return math.Sqrt(a.X*a.X + a.Y*a.Y + a.Z*a.Z) }

func cross(a, b xyz) xyz {
	return xyz{
		a.Y*b.Z - a.Z*b.Y,
		a.Z*b.X - a.X*b.Z,
		a.X*b.Y - a.Y*b.X,
	}
}

// geocentric returns the unit position vector of a geographic
// coordinate in the Earth-centred Cartesian frame (x toward 0°N 0°E,
// z toward the north pole).
func geocentric(latDeg, lonDeg float64) xyz {
	phi, lam := deg2rad(latDeg), deg2rad(lonDeg)
	return xyz{
		math.Cos(phi) * math.Cos(lam),
		math.Cos(phi) * math.Sin(lam),
		math.Sin(phi),
	}
}

// enuVectors returns the local east and north unit vectors at a
// geographic coordinate, in the geocentric frame.
func enuVectors(latDeg, lonDeg float64) (east, north xyz) {
	phi, lam := deg2rad(latDeg), deg2rad(lonDeg)
	east = xyz{-math.Sin(lam), math.Cos(lam), 0.}
	north = xyz{-math.Sin(phi) * math.Cos(lam), -math.Sin(phi) * math.Sin(lam), math.Cos(phi)}
	return
}

// localComponents projects a geocentric vector onto the local
// east/north directions at (lat,lon), discarding the radial part.
func localComponents(v xyz, latDeg, lonDeg float64) (vlat, vlon float64) {
	e, n := enuVectors(latDeg, lonDeg)
	vlon = v.X*e.X + v.Y*e.Y + v.Z*e.Z
	vlat = v.X*n.X + v.Y*n.Y + v.Z*n.Z
	return
}

// polePointVelocity evaluates the surface velocity [cm/a] at a point
// induced by a stage pole taken over dtMa.
func polePointVelocity(lat, lon, poleLat, poleLon, poleAngle, dtMa float64) (vlat, vlon, vmag float64) {
	return recon.PointVelocity(lat, lon, recon.Pole{Lat: poleLat, Lon: poleLon, Angle: poleAngle}, dtMa)
}
