package platefo

import (
	"encoding/gob"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/maseology/mmio"
)

const (
	platesCSVHeader = "plateID,name,area,centroid_lat,centroid_lon,v_mag,slab_pull_torque_mag,GPE_torque_mag,slab_bend_torque_mag,interface_shear_torque_mag,mantle_drag_torque_mag,residual_torque_mag,slab_pull_torque_opt_mag,mantle_drag_torque_opt_mag"
	slabsCSVHeader  = "lat,lon,trench_segment_length,trench_normal_azimuth,lower_plateID,upper_plateID,trench_plateID,v_convergence_mag,lower_plate_age,lower_plate_thickness,sediment_thickness,slab_pull_force_mag,slab_bend_force_mag,interface_shear_force_mag"
	pointsCSVHeader = "lat,lon,plateID,seafloor_age,U,v_mag,GPE_force_mag,mantle_drag_force_mag"
)

// State bundles the entity tables of one (reconstruction time, case).
type State struct {
	Plates *Plates
	Slabs  *Slabs
	Points *Points
}

func (st *State) Copy() *State {
	return &State{Plates: st.Plates.Copy(), Slabs: st.Slabs.Copy(), Points: st.Points.Copy()}
}

// StatePath names the cached state of one (time, case).
func StatePath(dir, reconName, caseName string, timeMa float64) string {
	return fmt.Sprintf("%s%s_%s_%gMa.gob", dir, reconName, caseName, timeMa)
}

func (st *State) SaveGob(fp string) error {
	f, err := os.Create(fp)
	if err != nil {
		return fmt.Errorf(" State.SaveGob %v", err)
	}
	defer f.Close()
	if err := gob.NewEncoder(f).Encode(st); err != nil {
		return fmt.Errorf(" State.SaveGob %v", err)
	}
	return nil
}

// LoadStateGob reads a cached state; a missing file is not an error,
// it just means the tables need deriving.
func LoadStateGob(fp string) (*State, error) {
	if _, ok := mmio.FileExists(fp); !ok {
		return nil, nil
	}
	f, err := os.Open(fp)
	if err != nil {
		return nil, fmt.Errorf(" LoadStateGob %v", err)
	}
	defer f.Close()
	var st State
	if err := gob.NewDecoder(f).Decode(&st); err != nil {
		return nil, fmt.Errorf(" LoadStateGob %v", err)
	}
	return &st, nil
}

// WritePlatesCSV exports the plate table with its torque magnitudes.
func WritePlatesCSV(fp string, p *Plates) error {
	lns := make([]string, 0, p.Len()+1)
	lns = append(lns, platesCSVHeader)
	for j := 0; j < p.Len(); j++ {
		lns = append(lns, fmt.Sprintf("%d,%s,%e,%f,%f,%f,%e,%e,%e,%e,%e,%e,%e,%e",
			p.PlateID[j], p.Name[j], p.Area[j], p.CentroidLat[j], p.CentroidLon[j], p.VMag[j],
			p.SlabPullTorque.Mag[j], p.GPETorque.Mag[j], p.SlabBendTorque.Mag[j],
			p.IntShearTorque.Mag[j], p.MantleDragTorque.Mag[j], p.ResidualTorque.Mag[j],
			p.SlabPullTorqueOpt.Mag[j], p.MantleDragTorqueOpt.Mag[j]))
	}
	if err := mmio.WriteLines(fp, lns); err != nil {
		return fmt.Errorf(" WritePlatesCSV %s: %v", fp, err)
	}
	return nil
}

// WriteSlabsCSV exports the trench-segment table with its force
// columns.
func WriteSlabsCSV(fp string, s *Slabs) error {
	lns := make([]string, 0, s.Len()+1)
	lns = append(lns, slabsCSVHeader)
	for i := 0; i < s.Len(); i++ {
		lns = append(lns, fmt.Sprintf("%f,%f,%f,%f,%d,%d,%d,%f,%f,%f,%f,%e,%e,%e",
			s.Lat[i], s.Lon[i], s.TrenchSegmentLength[i], s.TrenchNormalAzimuth[i],
			s.LowerPlateID[i], s.UpperPlateID[i], s.TrenchPlateID[i],
			s.VConvMag[i], s.LowerPlateAge[i], s.LowerPlateThickness[i], s.SedimentThickness[i],
			s.SlabPullFMag[i], s.SlabBendFMag[i], s.IntShearFMag[i]))
	}
	if err := mmio.WriteLines(fp, lns); err != nil {
		return fmt.Errorf(" WriteSlabsCSV %s: %v", fp, err)
	}
	return nil
}

// WritePointsCSV exports the grid-point table with its force columns.
func WritePointsCSV(fp string, p *Points) error {
	lns := make([]string, 0, p.Len()+1)
	lns = append(lns, pointsCSVHeader)
	for i := 0; i < p.Len(); i++ {
		lns = append(lns, fmt.Sprintf("%f,%f,%d,%f,%e,%f,%e,%e",
			p.Lat[i], p.Lon[i], p.PlateID[i], p.SeafloorAge[i], p.U[i], p.VMag[i], p.GPEFMag[i], p.DragFMag[i]))
	}
	if err := mmio.WriteLines(fp, lns); err != nil {
		return fmt.Errorf(" WritePointsCSV %s: %v", fp, err)
	}
	return nil
}

// readCSVRows loads a comma-delimited table and checks its header. A
// missing file returns nil rows, signalling the tables need deriving.
func readCSVRows(fp, header string) ([][]string, error) {
	if _, ok := mmio.FileExists(fp); !ok {
		return nil, nil
	}
	lns, err := mmio.ReadTextLines(fp)
	if err != nil {
		return nil, fmt.Errorf(" readCSVRows %s: %v", fp, err)
	}
	if len(lns) == 0 || strings.TrimSpace(lns[0]) != header {
		return nil, fmt.Errorf(" readCSVRows %s: unexpected header", fp)
	}
	nf := strings.Count(header, ",") + 1
	rows := make([][]string, 0, len(lns)-1)
	for _, ln := range lns[1:] {
		if len(strings.TrimSpace(ln)) == 0 {
			continue
		}
		sp := strings.Split(ln, ",")
		if len(sp) != nf {
			return nil, fmt.Errorf(" readCSVRows %s: row %d has %d fields, want %d", fp, len(rows)+2, len(sp), nf)
		}
		rows = append(rows, sp)
	}
	return rows, nil
}

// rowScan walks one CSV row left to right with a sticky parse error.
type rowScan struct {
	sp  []string
	i   int
	err error
}

func (r *rowScan) str() string {
	s := r.sp[r.i]
	r.i++
	return s
}

func (r *rowScan) num() float64 {
	s := r.str()
	v, err := strconv.ParseFloat(s, 64)
	if err != nil && r.err == nil {
		r.err = err
	}
	return v
}

func (r *rowScan) id() int { return int(r.num()) }

// ReadPlatesCSV loads a plate table written by WritePlatesCSV; a
// missing file returns (nil, nil).
func ReadPlatesCSV(fp string) (*Plates, error) {
	rows, err := readCSVRows(fp, platesCSVHeader)
	if err != nil || rows == nil {
		return nil, err
	}
	p := NewPlates(len(rows))
	for j, sp := range rows {
		r := rowScan{sp: sp}
		p.PlateID[j] = r.id()
		p.Name[j] = r.str()
		p.Area[j] = r.num()
		p.CentroidLat[j] = r.num()
		p.CentroidLon[j] = r.num()
		p.VMag[j] = r.num()
		p.SlabPullTorque.Mag[j] = r.num()
		p.GPETorque.Mag[j] = r.num()
		p.SlabBendTorque.Mag[j] = r.num()
		p.IntShearTorque.Mag[j] = r.num()
		p.MantleDragTorque.Mag[j] = r.num()
		p.ResidualTorque.Mag[j] = r.num()
		p.SlabPullTorqueOpt.Mag[j] = r.num()
		p.MantleDragTorqueOpt.Mag[j] = r.num()
		if r.err != nil {
			return nil, fmt.Errorf(" ReadPlatesCSV %s row %d: %v", fp, j+2, r.err)
		}
	}
	return p, nil
}

// ReadSlabsCSV loads a trench-segment table written by WriteSlabsCSV;
// a missing file returns (nil, nil).
func ReadSlabsCSV(fp string) (*Slabs, error) {
	rows, err := readCSVRows(fp, slabsCSVHeader)
	if err != nil || rows == nil {
		return nil, err
	}
	s := NewSlabs(len(rows))
	for i, sp := range rows {
		r := rowScan{sp: sp}
		s.Lat[i] = r.num()
		s.Lon[i] = r.num()
		s.TrenchSegmentLength[i] = r.num()
		s.TrenchNormalAzimuth[i] = r.num()
		s.LowerPlateID[i] = r.id()
		s.UpperPlateID[i] = r.id()
		s.TrenchPlateID[i] = r.id()
		s.VConvMag[i] = r.num()
		s.LowerPlateAge[i] = r.num()
		s.LowerPlateThickness[i] = r.num()
		s.SedimentThickness[i] = r.num()
		s.SlabPullFMag[i] = r.num()
		s.SlabBendFMag[i] = r.num()
		s.IntShearFMag[i] = r.num()
		if r.err != nil {
			return nil, fmt.Errorf(" ReadSlabsCSV %s row %d: %v", fp, i+2, r.err)
		}
	}
	return s, nil
}

// ReadPointsCSV loads a grid-point table written by WritePointsCSV; a
// missing file returns (nil, nil).
func ReadPointsCSV(fp string) (*Points, error) {
	rows, err := readCSVRows(fp, pointsCSVHeader)
	if err != nil || rows == nil {
		return nil, err
	}
	p := NewPoints(len(rows))
	for i, sp := range rows {
		r := rowScan{sp: sp}
		p.Lat[i] = r.num()
		p.Lon[i] = r.num()
		p.PlateID[i] = r.id()
		p.SeafloorAge[i] = r.num()
		p.U[i] = r.num()
		p.VMag[i] = r.num()
		p.GPEFMag[i] = r.num()
		p.DragFMag[i] = r.num()
		if r.err != nil {
			return nil, fmt.Errorf(" ReadPointsCSV %s row %d: %v", fp, i+2, r.err)
		}
	}
	return p, nil
}
