package platefo

import "math"

const (
	meanEarthRadius  = 6371.e3   // [m]
	equatorialCircum = 40075.e3  // [m]
	yr2sec           = 31557600. // 365.25 day year
	cma2ms           = .01 / yr2sec
	ma2sec           = 1.e6 * yr2sec

	convTolerance = 1e-2 // convergence-rate tolerance [cm/a]
	maxIter       = 100
)

// Mech holds the mechanical parameters of the lithosphere-mantle
// system. Values follow standard rheological estimates; every force
// model reads from here so units stay consistent (SI throughout).
type Mech struct {
	G        float64 // gravitational acceleration [m/s²]
	DT       float64 // mantle-surface temperature contrast [K]
	Rho0     float64 // reference mantle density [kg/m³]
	RhoW     float64 // water density
	RhoSW    float64 // seawater density
	RhoS     float64 // sediment density
	RhoC     float64 // continental crust density
	RhoL     float64 // oceanic lithosphere density
	Alpha    float64 // thermal expansivity [1/K]
	Kappa    float64 // thermal diffusivity [m²/s]
	RadCurv  float64 // slab bending radius of curvature [m]
	L        float64 // plate-model equilibrium thickness [m]
	La       float64 // asthenosphere thickness / drag lever arm [m]
	ViscA    float64 // reference asthenosphere viscosity [Pa s]
	LithVisc float64 // lithosphere viscosity [Pa s]
	YieldStr float64 // lithosphere yield stress [Pa]
	SedVisc  float64 // subducted sediment viscosity [Pa s]
	IntVisc  float64 // subduction interface viscosity [Pa s]
	IntDepth float64 // down-dip extent of the coupled interface [m]

	ContLithThick   float64 // continental lithosphere thickness [m]
	ContCrustThick  float64 // continental crust thickness [m]
	OceanCrustThick float64

	DrhoSlab float64 // slab-mantle density contrast [kg/m³]
	DrhoSed  float64 // sediment-mantle density contrast [kg/m³]
}

func NewMech() *Mech {
	m := &Mech{
		G:        9.81,
		DT:       1200.,
		Rho0:     3300.,
		RhoW:     1000.,
		RhoSW:    1022.,
		RhoS:     2650.,
		RhoC:     2868.,
		RhoL:     3412.,
		Alpha:    3.e-5,
		Kappa:    1.e-6,
		RadCurv:  390.e3,
		L:        130.e3,
		La:       200.e3,
		ViscA:    1.e20,
		LithVisc: 500.e20,
		YieldStr: 1050.e6,
		SedVisc:  1.e19,
		IntVisc:  5.e19,
		IntDepth: 100.e3,

		ContLithThick:   100.e3,
		ContCrustThick:  33.e3,
		OceanCrustThick: 8.e3,
	}
	m.DrhoSlab = m.Rho0 * m.Alpha * m.DT
	m.DrhoSed = m.RhoS - m.Rho0
	return m
}

// LithThickness returns the thermal thickness of oceanic lithosphere
// of the given age [Ma] under the requested age profile. NaN age
// returns NaN; callers decide whether that soft-fails to zero force.
func (m *Mech) LithThickness(ageMa float64, profile string) float64 {
	if math.IsNaN(ageMa) {
		return math.NaN()
	}
	h := 2.32 * math.Sqrt(m.Kappa*ageMa*ma2sec) // half-space cooling
	if profile == PlateModel && h > m.L {
		h = m.L
	}
	return h
}

// WaterDepth returns isostatic seafloor depth [m] from crustal age
// (age-depth relation of a cooling half space).
func (m *Mech) WaterDepth(ageMa float64) float64 {
	if math.IsNaN(ageMa) {
		return math.NaN()
	}
	return 2600. + 345.*math.Sqrt(ageMa)
}
