package platefo

import "fmt"

// Computation stages. Two cases are equivalent for a stage when every
// option that stage reads compares equal; the stage then runs once per
// class and the result is broadcast to the other members by deep copy.
type stage int

const (
	StagePlates stage = iota
	StageSlabs
	StagePoints
	StageSlabPull
	StageSlabBend
	StageInterfaceShear
	StageGPE
	StageMantleDrag
)

func stageKey(c *Config, s stage) string {
	switch s {
	case StagePlates:
		return fmt.Sprint(c.MinimumPlateArea, c.AnchorPlateID, c.VelocityTimeStep)
	case StageSlabs:
		return fmt.Sprint(c.SlabTesselationSpacing, c.SlabLength, c.AnchorPlateID, c.VelocityTimeStep,
			c.SeafloorAgeVariable, c.SampleSedimentGrid, c.ActiveMarginSediments)
	case StagePoints:
		return fmt.Sprint(c.GridSpacing, c.AnchorPlateID, c.VelocityTimeStep, c.SeafloorAgeVariable)
	case StageSlabPull:
		return fmt.Sprint(c.SlabPullTorque, c.SeafloorAgeProfile, c.StrainRate, c.InterfaceMixing,
			c.SampleSedimentGrid, c.ActiveMarginSediments, c.SedimentSubduction, c.SlabPullConstant)
	case StageSlabBend:
		return fmt.Sprint(c.SlabBendTorque, c.SlabBendMechanism, c.SeafloorAgeProfile)
	case StageInterfaceShear:
		return fmt.Sprint(c.InterfaceShearTorque, c.SampleSedimentGrid, c.ActiveMarginSediments,
			c.StrainRate, c.InterfaceMixing, c.ShearZoneWidth)
	case StageGPE:
		return fmt.Sprint(c.GPETorque, c.ContinentalCrust, c.SeafloorAgeProfile, c.GridSpacing)
	case StageMantleDrag:
		return fmt.Sprint(c.MantleDragTorque, c.ReconstructedMotions, c.MantleViscosity,
			c.MantleStationaryTrenches)
	}
	panic("platefo.stageKey: unknown stage")
}

// GroupCases partitions cases into equivalence classes for a stage,
// each class led by its first member in input order. Classes are
// recomputed on demand and never cached across option edits.
func GroupCases(cases []*Config, s stage) [][]*Config {
	var classes [][]*Config
	ik := make(map[string]int)
	for _, c := range cases {
		k := stageKey(c, s)
		if i, ok := ik[k]; ok {
			classes[i] = append(classes[i], c)
		} else {
			ik[k] = len(classes)
			classes = append(classes, []*Config{c})
		}
	}
	return classes
}
