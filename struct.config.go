package platefo

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/maseology/mmio"
)

// Seafloor age profiles and slab bend mechanisms.
const (
	HalfSpaceCooling = "half space cooling"
	PlateModel       = "plate model"

	Viscous = "viscous"
	Plastic = "plastic"

	MixLinear = "linear"
	MixLog    = "log"
)

// Config is one named case: the closed set of options recognized by
// the computation. Every field has a default; unknown option names in
// a case file are a load-time error, never a silent fallback.
type Config struct {
	Name string

	SlabPullTorque       bool
	GPETorque            bool
	MantleDragTorque     bool
	SlabBendTorque       bool
	InterfaceShearTorque bool
	SlabBendMechanism    string
	ReconstructedMotions bool
	ContinentalCrust     bool

	SeafloorAgeVariable   string
	SeafloorAgeProfile    string
	SampleSedimentGrid    string  // raster variable name, empty disables
	ActiveMarginSediments float64 // uniform thickness [m] assigned at continental arcs
	SedimentSubduction    bool
	InterfaceMixing       string

	ShearZoneWidth   float64 // [m]
	SlabLength       float64 // [m]
	StrainRate       float64 // [1/s]
	SlabPullConstant float64
	MantleViscosity  float64 // [Pa s]

	SlabTesselationSpacing float64 // [km]
	GridSpacing            float64 // [°]
	MinimumPlateArea       float64 // [m²]
	AnchorPlateID          int
	VelocityTimeStep       float64 // [Ma]

	MantleStationaryTrenches bool
}

// DefaultConfig returns a case with every option at its documented
// default.
func DefaultConfig(name string) *Config {
	return &Config{
		Name:                     name,
		SlabPullTorque:           true,
		GPETorque:                true,
		MantleDragTorque:         true,
		SlabBendTorque:           false,
		InterfaceShearTorque:     false,
		SlabBendMechanism:        Viscous,
		ReconstructedMotions:     true,
		ContinentalCrust:         false,
		SeafloorAgeVariable:      "z",
		SeafloorAgeProfile:       HalfSpaceCooling,
		SampleSedimentGrid:       "",
		ActiveMarginSediments:    0.,
		SedimentSubduction:       false,
		InterfaceMixing:          MixLinear,
		ShearZoneWidth:           2.e3,
		SlabLength:               700.e3,
		StrainRate:               1.e-12,
		SlabPullConstant:         .0301,
		MantleViscosity:          8.97e18,
		SlabTesselationSpacing:   250.,
		GridSpacing:              1.,
		MinimumPlateArea:         7.5e12,
		AnchorPlateID:            0,
		VelocityTimeStep:         1.,
		MantleStationaryTrenches: false,
	}
}

func (c *Config) copy() *Config {
	c2 := *c
	return &c2
}

// ReadCases loads a case table from a comma-delimited file whose
// header names the options being overridden; the first column must be
// Name. Lines beginning with '#' are skipped.
func ReadCases(fp string) ([]*Config, error) {
	lns, err := mmio.ReadTextLines(fp)
	if err != nil {
		return nil, fmt.Errorf("ReadCases %s: %v", fp, err)
	}
	var hdr []string
	var out []*Config
	for _, ln := range lns {
		ln = strings.TrimSpace(ln)
		if len(ln) == 0 || strings.HasPrefix(ln, "#") {
			continue
		}
		sp := strings.Split(ln, ",")
		if hdr == nil {
			hdr = sp
			if strings.TrimSpace(hdr[0]) != "Name" {
				return nil, fmt.Errorf("ReadCases %s: first column must be Name", fp)
			}
			for _, h := range hdr[1:] {
				if !knownOption(strings.TrimSpace(h)) {
					return nil, fmt.Errorf("ReadCases %s: unknown option %q", fp, strings.TrimSpace(h))
				}
			}
			continue
		}
		if len(sp) != len(hdr) {
			return nil, fmt.Errorf("ReadCases %s: case %q has %d fields, header has %d", fp, sp[0], len(sp), len(hdr))
		}
		c := DefaultConfig(strings.TrimSpace(sp[0]))
		for j, h := range hdr[1:] {
			if err := c.set(strings.TrimSpace(h), strings.TrimSpace(sp[j+1])); err != nil {
				return nil, fmt.Errorf("ReadCases %s case %q: %v", fp, c.Name, err)
			}
		}
		out = append(out, c)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("ReadCases %s: no cases found", fp)
	}
	return out, nil
}

var optionNames = []string{
	"Slab pull torque", "GPE torque", "Mantle drag torque", "Slab bend torque",
	"Interface shear torque",
	"Slab bend mechanism", "Reconstructed motions", "Continental crust",
	"Seafloor age variable", "Seafloor age profile", "Sample sediment grid",
	"Active margin sediments", "Sediment subduction", "Interface mixing",
	"Shear zone width", "Slab length", "Strain rate", "Slab pull constant",
	"Mantle viscosity", "Slab tesselation spacing", "Grid spacing",
	"Minimum plate area", "Anchor plateID", "Velocity time step",
	"Mantle stationary trenches",
}

func knownOption(name string) bool {
	for _, o := range optionNames {
		if o == name {
			return true
		}
	}
	return false
}

func (c *Config) set(option, val string) error {
	b := func() (bool, error) {
		switch strings.ToUpper(val) {
		case "1", "TRUE":
			return true, nil
		case "0", "FALSE":
			return false, nil
		}
		return false, fmt.Errorf("option %q: not a boolean: %q", option, val)
	}
	f := func() (float64, error) {
		v, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return 0., fmt.Errorf("option %q: %v", option, err)
		}
		return v, nil
	}
	var err error
	switch option {
	case "Slab pull torque":
		c.SlabPullTorque, err = b()
	case "GPE torque":
		c.GPETorque, err = b()
	case "Mantle drag torque":
		c.MantleDragTorque, err = b()
	case "Slab bend torque":
		c.SlabBendTorque, err = b()
	case "Interface shear torque":
		c.InterfaceShearTorque, err = b()
	case "Slab bend mechanism":
		if val != Viscous && val != Plastic {
			return fmt.Errorf("option %q: unknown mechanism %q", option, val)
		}
		c.SlabBendMechanism = val
	case "Reconstructed motions":
		c.ReconstructedMotions, err = b()
	case "Continental crust":
		c.ContinentalCrust, err = b()
	case "Seafloor age variable":
		c.SeafloorAgeVariable = val
	case "Seafloor age profile":
		if val != HalfSpaceCooling && val != PlateModel {
			return fmt.Errorf("option %q: unknown profile %q", option, val)
		}
		c.SeafloorAgeProfile = val
	case "Sample sediment grid":
		c.SampleSedimentGrid = val
	case "Active margin sediments":
		c.ActiveMarginSediments, err = f()
	case "Sediment subduction":
		c.SedimentSubduction, err = b()
	case "Interface mixing":
		if val != MixLinear && val != MixLog {
			return fmt.Errorf("option %q: unknown mixing %q", option, val)
		}
		c.InterfaceMixing = val
	case "Shear zone width":
		c.ShearZoneWidth, err = f()
	case "Slab length":
		c.SlabLength, err = f()
	case "Strain rate":
		c.StrainRate, err = f()
	case "Slab pull constant":
		c.SlabPullConstant, err = f()
	case "Mantle viscosity":
		c.MantleViscosity, err = f()
	case "Slab tesselation spacing":
		c.SlabTesselationSpacing, err = f()
	case "Grid spacing":
		c.GridSpacing, err = f()
	case "Minimum plate area":
		c.MinimumPlateArea, err = f()
	case "Anchor plateID":
		var v float64
		if v, err = f(); err == nil {
			c.AnchorPlateID = int(v)
		}
	case "Velocity time step":
		c.VelocityTimeStep, err = f()
	case "Mantle stationary trenches":
		c.MantleStationaryTrenches, err = b()
	default:
		return fmt.Errorf("unknown option %q", option)
	}
	return err
}
