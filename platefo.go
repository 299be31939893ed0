package platefo

import (
	"fmt"

	"github.com/thomas-schouten/PLATEFO/grid"
)

// GeometryProvider resolves plate geometries from a reconstruction
// model: the topological fragments making up each plate, and the
// tessellated trench segments.
type GeometryProvider interface {
	Fragments(timeMa float64, anchorPlateID int) ([]Fragment, error)
	TrenchSegments(timeMa, tesselationKm float64) (*Slabs, error)
}

// Domain holds every (reconstruction time, case) state of one model
// run.
type Domain struct {
	Name  string // reconstruction name
	Times []float64
	Cases []*Config
	Mech  *Mech

	Seafloor map[float64]grid.Dataset // per time
	States   map[float64]map[string]*State

	// solver reports per (time, case), filled for derived-motion cases
	Solves map[float64]map[string]SolveResult
}

// NewDomain assembles a domain over the given times and cases.
func NewDomain(name string, times []float64, cases []*Config, seafloor map[float64]grid.Dataset, m *Mech) *Domain {
	if m == nil {
		m = NewMech()
	}
	return &Domain{
		Name:     name,
		Times:    times,
		Cases:    cases,
		Mech:     m,
		Seafloor: seafloor,
		States:   make(map[float64]map[string]*State),
		Solves:   make(map[float64]map[string]SolveResult),
	}
}

func (d *Domain) hasTime(timeMa float64) bool {
	for _, t := range d.Times {
		if t == timeMa {
			return true
		}
	}
	return false
}

// State returns the tables of one (time, case), rejecting unknown
// keys before any computation touches them.
func (d *Domain) State(timeMa float64, caseName string) (*State, error) {
	if !d.hasTime(timeMa) {
		return nil, fmt.Errorf("Domain.State: time %g Ma not in domain", timeMa)
	}
	if sts, ok := d.States[timeMa]; ok {
		if st, ok := sts[caseName]; ok {
			return st, nil
		}
	}
	return nil, fmt.Errorf("Domain.State: unknown case %q at %g Ma", caseName, timeMa)
}

// Init builds (or reloads from cacheDir, when set) the entity tables
// for every (time, case). Cases equivalent for a sampling stage
// derive once and receive independent copies.
func (d *Domain) Init(gp GeometryProvider, cacheDir string) error {
	for _, t := range d.Times {
		d.States[t] = make(map[string]*State)
		d.Solves[t] = make(map[string]SolveResult)

		if cacheDir != "" {
			all := true
			for _, c := range d.Cases {
				st, err := LoadStateGob(StatePath(cacheDir, d.Name, c.Name, t))
				if err != nil {
					return fmt.Errorf("Domain.Init: %v", err)
				}
				if st == nil {
					all = false
					break
				}
				d.States[t][c.Name] = st
			}
			if all {
				continue
			}
		}

		if err := d.derive(gp, t); err != nil {
			return err
		}
	}
	return nil
}

// derive builds the tables of one time from the reconstruction
// model, sampling once per equivalence class.
func (d *Domain) derive(gp GeometryProvider, t float64) error {
	if gp == nil {
		return fmt.Errorf("Domain.derive %g Ma: no cached state and no geometry provider", t)
	}
	sf := d.Seafloor[t]

	for _, class := range GroupCases(d.Cases, StagePlates) {
		lead := class[0]
		frags, err := gp.Fragments(t, lead.AnchorPlateID)
		if err != nil {
			return fmt.Errorf("Domain.derive %g Ma case %s: %v", t, lead.Name, err)
		}
		dt := lead.VelocityTimeStep
		pl := PlatesFromFragments(frags, func(lat, lon, plat, plon, pang float64) (float64, float64, float64) {
			return polePointVelocity(lat, lon, plat, plon, pang, dt)
		})

		slabs, err := gp.TrenchSegments(t, lead.SlabTesselationSpacing)
		if err != nil {
			return fmt.Errorf("Domain.derive %g Ma case %s: %v", t, lead.Name, err)
		}
		AssignSlabVelocities(slabs, pl, dt, lead.MantleStationaryTrenches)

		pts := NewPointGrid(lead.GridSpacing)
		assignPointPlates(pts, frags)
		AssignPointVelocities(pts, pl, dt)

		st := &State{Plates: pl, Slabs: slabs, Points: pts}
		for _, c := range class {
			d.States[t][c.Name] = st.Copy()
		}
	}

	if sf != nil {
		for _, class := range GroupCases(d.Cases, StageSlabs) {
			lead := d.States[t][class[0].Name]
			SampleSlabs(lead.Slabs, sf, class[0])
			SampleUpperPlate(lead.Slabs, sf, class[0])
			for _, c := range class[1:] {
				d.States[t][c.Name].Slabs = lead.Slabs.Copy()
			}
		}
		for _, class := range GroupCases(d.Cases, StagePoints) {
			lead := d.States[t][class[0].Name]
			SamplePoints(lead.Points, sf, class[0])
			for _, c := range class[1:] {
				d.States[t][c.Name].Points = lead.Points.Copy()
			}
		}
	}
	return nil
}

// assignPointPlates tags each grid point with the plate whose
// fragment polygon covers it. Polygon containment belongs to the
// reconstruction collaborator; here the nearest fragment centroid
// stands in when no polygon test is available.
func assignPointPlates(pts *Points, frags []Fragment) {
	if len(frags) == 0 {
		return
	}
	for i := 0; i < pts.Len(); i++ {
		best, bid := -1., 0
		p := geocentric(pts.Lat[i], pts.Lon[i])
		for _, f := range frags {
			q := geocentric(f.CentroidLat, f.CentroidLon)
			d := p.X*q.X + p.Y*q.Y + p.Z*q.Z // cos of angular distance
			w := d * f.Area
			if w > best {
				best, bid = w, f.PlateID
			}
		}
		pts.PlateID[i] = bid
	}
}

// ComputeTorques runs the force and torque pipeline for every case
// at one time, computing once per equivalence class per stage and
// broadcasting value copies to the class members.
func (d *Domain) ComputeTorques(t float64) error {
	if !d.hasTime(t) {
		return fmt.Errorf("Domain.ComputeTorques: time %g Ma not in domain", t)
	}

	for _, class := range GroupCases(d.Cases, StageSlabPull) {
		lead, c := d.States[t][class[0].Name], class[0]
		if c.SlabPullTorque || c.SlabBendTorque {
			ComputeSlabPullForce(lead.Slabs, c, d.Mech)
			TorqueOnPlates(lead.Plates, lead.Slabs.Lat, lead.Slabs.Lon, lead.Slabs.LowerPlateID,
				lead.Slabs.SlabPullFLat, lead.Slabs.SlabPullFLon, lead.Slabs.TrenchSegmentLength, ones(lead.Slabs.Len()),
				&lead.Plates.SlabPullTorque)
			CentroidForce(lead.Plates, &lead.Plates.SlabPullTorque, &lead.Plates.SlabPullForce)
		}
		for _, cm := range class[1:] {
			st := d.States[t][cm.Name]
			copySlabPull(lead, st)
		}
	}

	for _, class := range GroupCases(d.Cases, StageGPE) {
		lead, c := d.States[t][class[0].Name], class[0]
		if c.GPETorque {
			if err := ComputeGPEForce(lead.Points, c, d.Mech); err != nil {
				return fmt.Errorf("Domain.ComputeTorques %g Ma case %s: %v", t, c.Name, err)
			}
			TorqueOnPlates(lead.Plates, lead.Points.Lat, lead.Points.Lon, lead.Points.PlateID,
				lead.Points.GPEFLat, lead.Points.GPEFLon, lead.Points.SegLenLat, lead.Points.SegLenLon,
				&lead.Plates.GPETorque)
			CentroidForce(lead.Plates, &lead.Plates.GPETorque, &lead.Plates.GPEForce)
		}
		for _, cm := range class[1:] {
			copyGPE(lead, d.States[t][cm.Name])
		}
	}

	// velocity-dependent torques run per case: reconstructed motions
	// evaluate directly, derived motions go through the force balance
	for _, c := range d.Cases {
		st := d.States[t][c.Name]
		if c.ReconstructedMotions {
			if c.SlabBendTorque {
				ComputeSlabBendForce(st.Slabs, c, d.Mech)
				TorqueOnPlates(st.Plates, st.Slabs.Lat, st.Slabs.Lon, st.Slabs.LowerPlateID,
					st.Slabs.SlabBendFLat, st.Slabs.SlabBendFLon, st.Slabs.TrenchSegmentLength, ones(st.Slabs.Len()),
					&st.Plates.SlabBendTorque)
				CentroidForce(st.Plates, &st.Plates.SlabBendTorque, &st.Plates.SlabBendForce)
			}
			if c.InterfaceShearTorque {
				ComputeInterfaceShearForce(st.Slabs, c, d.Mech)
				TorqueOnPlates(st.Plates, st.Slabs.Lat, st.Slabs.Lon, st.Slabs.LowerPlateID,
					st.Slabs.IntShearFLat, st.Slabs.IntShearFLon, st.Slabs.TrenchSegmentLength, ones(st.Slabs.Len()),
					&st.Plates.IntShearTorque)
				CentroidForce(st.Plates, &st.Plates.IntShearTorque, &st.Plates.IntShearForce)
			}
			if c.MantleDragTorque {
				ComputeMantleDragForce(st.Points, c, d.Mech)
				TorqueOnPlates(st.Plates, st.Points.Lat, st.Points.Lon, st.Points.PlateID,
					st.Points.DragFLat, st.Points.DragFLon, st.Points.SegLenLat, st.Points.SegLenLon,
					&st.Plates.MantleDragTorque)
				CentroidForce(st.Plates, &st.Plates.MantleDragTorque, &st.Plates.MantleDragForce)
			}
		} else if c.MantleDragTorque {
			d.Solves[t][c.Name] = SolveForceBalance(st.Plates, st.Slabs, st.Points, c, d.Mech)
		}
		ResidualTorqueOnPlates(st.Plates, c)
	}
	return nil
}

func copySlabPull(from, to *State) {
	cp := func(v []float64) []float64 { return append([]float64{}, v...) }
	to.Slabs.SlabPullFMag = cp(from.Slabs.SlabPullFMag)
	to.Slabs.SlabPullFLat = cp(from.Slabs.SlabPullFLat)
	to.Slabs.SlabPullFLon = cp(from.Slabs.SlabPullFLon)
	to.Slabs.LowerPlateThickness = cp(from.Slabs.LowerPlateThickness)
	to.Slabs.SedimentFraction = cp(from.Slabs.SedimentFraction)
	to.Plates.SlabPullTorque = from.Plates.SlabPullTorque.copy()
	to.Plates.SlabPullForce = from.Plates.SlabPullForce.copy()
}

func copyGPE(from, to *State) {
	cp := func(v []float64) []float64 { return append([]float64{}, v...) }
	to.Points.U = cp(from.Points.U)
	to.Points.GPEFLat = cp(from.Points.GPEFLat)
	to.Points.GPEFLon = cp(from.Points.GPEFLon)
	to.Points.GPEFMag = cp(from.Points.GPEFMag)
	to.Plates.GPETorque = from.Plates.GPETorque.copy()
	to.Plates.GPEForce = from.Plates.GPEForce.copy()
}

// Save caches every (time, case) state under dir.
func (d *Domain) Save(dir string) error {
	for _, t := range d.Times {
		for _, c := range d.Cases {
			if err := d.States[t][c.Name].SaveGob(StatePath(dir, d.Name, c.Name, t)); err != nil {
				return fmt.Errorf("Domain.Save: %v", err)
			}
		}
	}
	return nil
}
