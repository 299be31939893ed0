package platefo

import (
	"fmt"
	"sort"
)

// TorqueSet holds one whole-plate torque kind: Cartesian components
// about the planet centre [N m] plus magnitude, one entry per plate.
type TorqueSet struct{ X, Y, Z, Mag []float64 }

// ForceSet holds the equivalent force at the plate centroid.
type ForceSet struct{ Lat, Lon, Mag []float64 }

func newTorqueSet(n int) TorqueSet {
	return TorqueSet{make([]float64, n), make([]float64, n), make([]float64, n), make([]float64, n)}
}
func newForceSet(n int) ForceSet {
	return ForceSet{make([]float64, n), make([]float64, n), make([]float64, n)}
}

func (t TorqueSet) copy() TorqueSet {
	return TorqueSet{append([]float64{}, t.X...), append([]float64{}, t.Y...), append([]float64{}, t.Z...), append([]float64{}, t.Mag...)}
}
func (f ForceSet) copy() ForceSet {
	return ForceSet{append([]float64{}, f.Lat...), append([]float64{}, f.Lon...), append([]float64{}, f.Mag...)}
}

// Plates is the per-plate table for one (reconstruction time, case):
// one row per distinct plateID.
type Plates struct {
	PlateID                     []int
	Area                        []float64 // [m²]
	PoleLat, PoleLon, PoleAngle []float64 // stage rotation [°, °, °/step]
	CentroidLat, CentroidLon    []float64
	VLat, VLon, VMag            []float64 // centroid velocity [cm/a]
	Name                        []string

	SlabPullTorque, GPETorque, SlabBendTorque TorqueSet
	IntShearTorque, MantleDragTorque          TorqueSet
	ResidualTorque                            TorqueSet
	SlabPullTorqueOpt, MantleDragTorqueOpt    TorqueSet

	SlabPullForce, GPEForce, SlabBendForce ForceSet
	IntShearForce, MantleDragForce         ForceSet
	ResidualForce                          ForceSet
}

func NewPlates(n int) *Plates {
	p := &Plates{
		PlateID:     make([]int, n),
		Area:        make([]float64, n),
		PoleLat:     make([]float64, n),
		PoleLon:     make([]float64, n),
		PoleAngle:   make([]float64, n),
		CentroidLat: make([]float64, n),
		CentroidLon: make([]float64, n),
		VLat:        make([]float64, n),
		VLon:        make([]float64, n),
		VMag:        make([]float64, n),
		Name:        make([]string, n),
	}
	p.SlabPullTorque, p.GPETorque, p.SlabBendTorque = newTorqueSet(n), newTorqueSet(n), newTorqueSet(n)
	p.IntShearTorque, p.MantleDragTorque, p.ResidualTorque = newTorqueSet(n), newTorqueSet(n), newTorqueSet(n)
	p.SlabPullTorqueOpt, p.MantleDragTorqueOpt = newTorqueSet(n), newTorqueSet(n)
	p.SlabPullForce, p.GPEForce, p.SlabBendForce = newForceSet(n), newForceSet(n), newForceSet(n)
	p.IntShearForce, p.MantleDragForce, p.ResidualForce = newForceSet(n), newForceSet(n), newForceSet(n)
	return p
}

func (p *Plates) Len() int { return len(p.PlateID) }

// Index builds the plateID-to-row lookup used by every aggregation
// pass; built once per call site, never per row.
func (p *Plates) Index() map[int]int {
	mx := make(map[int]int, len(p.PlateID))
	for i, id := range p.PlateID {
		mx[id] = i
	}
	return mx
}

// Copy returns an independent deep copy; equivalence-class broadcast
// relies on mutations of one case never reaching another.
func (p *Plates) Copy() *Plates {
	c := &Plates{
		PlateID:     append([]int{}, p.PlateID...),
		Area:        append([]float64{}, p.Area...),
		PoleLat:     append([]float64{}, p.PoleLat...),
		PoleLon:     append([]float64{}, p.PoleLon...),
		PoleAngle:   append([]float64{}, p.PoleAngle...),
		CentroidLat: append([]float64{}, p.CentroidLat...),
		CentroidLon: append([]float64{}, p.CentroidLon...),
		VLat:        append([]float64{}, p.VLat...),
		VLon:        append([]float64{}, p.VLon...),
		VMag:        append([]float64{}, p.VMag...),
		Name:        append([]string{}, p.Name...),
	}
	c.SlabPullTorque, c.GPETorque, c.SlabBendTorque = p.SlabPullTorque.copy(), p.GPETorque.copy(), p.SlabBendTorque.copy()
	c.IntShearTorque, c.MantleDragTorque, c.ResidualTorque = p.IntShearTorque.copy(), p.MantleDragTorque.copy(), p.ResidualTorque.copy()
	c.SlabPullTorqueOpt, c.MantleDragTorqueOpt = p.SlabPullTorqueOpt.copy(), p.MantleDragTorqueOpt.copy()
	c.SlabPullForce, c.GPEForce, c.SlabBendForce = p.SlabPullForce.copy(), p.GPEForce.copy(), p.SlabBendForce.copy()
	c.IntShearForce, c.MantleDragForce, c.ResidualForce = p.IntShearForce.copy(), p.MantleDragForce.copy(), p.ResidualForce.copy()
	return c
}

// Fragment is one resolved topological polygon: several fragments may
// share a plateID (topological networks carry their host plate's ID).
type Fragment struct {
	PlateID                     int
	Area                        float64 // [m²]
	PoleLat, PoleLon, PoleAngle float64
	CentroidLat, CentroidLon    float64
}

// PlatesFromFragments merges fragments into one row per plateID: the
// largest fragment supplies the geometric and kinematic attributes,
// areas are summed over all fragments with that ID. Rows come out
// sorted by plateID. velocities returns centroid velocity components
// [cm/a] for a stage pole; it is supplied by the recon collaborator.
func PlatesFromFragments(frags []Fragment, velocity func(lat, lon, poleLat, poleLon, poleAngle float64) (vlat, vlon, vmag float64)) *Plates {
	type agg struct {
		main Fragment
		area float64
	}
	m := make(map[int]*agg)
	for _, f := range frags {
		if a, ok := m[f.PlateID]; ok {
			a.area += f.Area
			if f.Area > a.main.Area {
				a.main = f
			}
		} else {
			m[f.PlateID] = &agg{main: f, area: f.Area}
		}
	}
	ids := make([]int, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	p := NewPlates(len(ids))
	for i, id := range ids {
		a := m[id]
		p.PlateID[i] = id
		p.Area[i] = a.area
		p.PoleLat[i], p.PoleLon[i], p.PoleAngle[i] = a.main.PoleLat, a.main.PoleLon, a.main.PoleAngle
		p.CentroidLat[i], p.CentroidLon[i] = a.main.CentroidLat, a.main.CentroidLon
		p.Name[i] = PlateName(id)
		if velocity != nil {
			p.VLat[i], p.VLon[i], p.VMag[i] = velocity(a.main.CentroidLat, a.main.CentroidLon, a.main.PoleLat, a.main.PoleLon, a.main.PoleAngle)
		}
	}
	return p
}

var plateNames = map[int]string{
	101: "N America", 201: "S America", 301: "Eurasia", 302: "Baltica",
	501: "India", 503: "Arabia", 511: "Capricorn", 701: "S Africa",
	702: "Madagascar", 709: "Somalia", 714: "NW Africa", 715: "NE Africa",
	801: "Australia", 802: "Antarctica", 901: "Pacific", 902: "Farallon",
	904: "Aluk", 909: "Cocos", 911: "Nazca", 918: "Kula", 919: "Phoenix",
	926: "Izanagi", 5400: "Burma", 5599: "Tethyan Himalaya",
	7520: "Argoland", 9002: "Farallon", 9006: "Izanami", 9009: "Izanagi",
	9010: "Pontus",
}

func PlateName(plateID int) string {
	if n, ok := plateNames[plateID]; ok {
		return n
	}
	return fmt.Sprintf("Unknown (%d)", plateID)
}
