package platefo

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/maseology/glbopt"
	mrg63k3a "github.com/maseology/goRNG/MRG63k3a"
	"github.com/thomas-schouten/PLATEFO/opt"
)

// OptResult reports a calibration sweep: the minimizing pair, the
// objective there, and the full sampled surface for inspection.
type OptResult struct {
	Viscosity        float64
	SlabPullConstant float64
	Objective        float64

	Viscs, SPConsts []float64
	Grid            []float64 // row-major [len(Viscs) x len(SPConsts)], NaN where a cell failed
}

func linspace(lo, hi float64, n int) []float64 {
	o := make([]float64, n)
	if n == 1 {
		o[0] = lo
		return o
	}
	d := (hi - lo) / float64(n-1)
	for i := range o {
		o[i] = lo + float64(i)*d
	}
	return o
}

// argmin returns the first row-major index of the smallest finite
// value, or -1 when every cell failed.
func argmin(g []float64) int {
	best, bi := math.Inf(1), -1
	for i, v := range g {
		if !math.IsNaN(v) && v < best {
			best, bi = v, i
		}
	}
	return bi
}

// residualObjective evaluates log10(|residual|/|driving|) over the
// kept plates for one (viscosity, slab pull constant) pair. Torques
// already aggregated in the plate table are rescaled: slab pull by
// the trial constant, mantle drag by the viscosity ratio against the
// case value the drag was computed with. Plate contributions are
// weighted by area, or by inverse area when areaWeighted is off.
func residualObjective(pl *Plates, c *Config, visc, spConst float64, areaWeighted bool) float64 {
	vr := visc / c.MantleViscosity
	var resNorm, driveNorm, wsum float64
	for j := 0; j < pl.Len(); j++ {
		var dx, dy, dz float64 // driving
		if c.SlabPullTorque {
			dx += pl.SlabPullTorque.X[j] * spConst
			dy += pl.SlabPullTorque.Y[j] * spConst
			dz += pl.SlabPullTorque.Z[j] * spConst
		}
		if c.GPETorque {
			dx += pl.GPETorque.X[j]
			dy += pl.GPETorque.Y[j]
			dz += pl.GPETorque.Z[j]
		}
		rx, ry, rz := dx, dy, dz
		if c.SlabBendTorque {
			rx += pl.SlabBendTorque.X[j]
			ry += pl.SlabBendTorque.Y[j]
			rz += pl.SlabBendTorque.Z[j]
		}
		if c.InterfaceShearTorque {
			rx += pl.IntShearTorque.X[j]
			ry += pl.IntShearTorque.Y[j]
			rz += pl.IntShearTorque.Z[j]
		}
		if c.MantleDragTorque {
			rx += pl.MantleDragTorque.X[j] * vr
			ry += pl.MantleDragTorque.Y[j] * vr
			rz += pl.MantleDragTorque.Z[j] * vr
		}
		if pl.Area[j] <= 0. {
			continue
		}
		w := 1. / pl.Area[j]
		if areaWeighted {
			w = pl.Area[j]
		}
		resNorm += w * math.Sqrt(rx*rx+ry*ry+rz*rz)
		driveNorm += w * math.Sqrt(dx*dx+dy*dy+dz*dz)
		wsum += w
	}
	if wsum == 0. || driveNorm == 0. {
		return math.NaN()
	}
	return math.Log10(resNorm / driveNorm)
}

// MinimizeResidualTorque grid-searches (mantle viscosity, slab pull
// constant) for the pair leaving the smallest residual torque,
// normalized by the driving torque. Plates outside plateIDs (nil
// keeps all) or under minArea are excluded, non-destructively. Ties
// go to the first row-major occurrence. The winning coefficients are
// written back into the optimised torque columns of the full table.
func MinimizeResidualTorque(pl *Plates, c *Config, viscRange [2]float64, gridSize int, plateIDs []int, minArea float64, areaWeighted bool) (OptResult, error) {
	sel := pl.Filter(plateIDs, minArea)
	if sel.Len() == 0 {
		return OptResult{}, fmt.Errorf("MinimizeResidualTorque %s: no plates retained", c.Name)
	}

	viscs := linspace(viscRange[0], viscRange[1], gridSize)
	spConsts := linspace(1.e-4, 1., gridSize)
	g := make([]float64, len(viscs)*len(spConsts))
	for i, v := range viscs {
		for j, sp := range spConsts {
			g[i*len(spConsts)+j] = residualObjective(sel, c, v, sp, areaWeighted)
		}
	}
	k := argmin(g)
	if k < 0 {
		return OptResult{Viscs: viscs, SPConsts: spConsts, Grid: g}, fmt.Errorf("MinimizeResidualTorque %s: no finite objective on the grid", c.Name)
	}
	o := OptResult{
		Viscosity:        viscs[k/len(spConsts)],
		SlabPullConstant: spConsts[k%len(spConsts)],
		Objective:        g[k],
		Viscs:            viscs,
		SPConsts:         spConsts,
		Grid:             g,
	}
	ApplyOptimalTorques(pl, c, o.Viscosity, o.SlabPullConstant)
	return o, nil
}

// ApplyOptimalTorques fills the optimised slab pull and mantle drag
// torque columns from calibrated coefficients.
func ApplyOptimalTorques(pl *Plates, c *Config, visc, spConst float64) {
	vr := visc / c.MantleViscosity
	for j := 0; j < pl.Len(); j++ {
		pl.SlabPullTorqueOpt.X[j] = pl.SlabPullTorque.X[j] * spConst
		pl.SlabPullTorqueOpt.Y[j] = pl.SlabPullTorque.Y[j] * spConst
		pl.SlabPullTorqueOpt.Z[j] = pl.SlabPullTorque.Z[j] * spConst
		pl.SlabPullTorqueOpt.Mag[j] = pl.SlabPullTorque.Mag[j] * spConst
		pl.MantleDragTorqueOpt.X[j] = pl.MantleDragTorque.X[j] * vr
		pl.MantleDragTorqueOpt.Y[j] = pl.MantleDragTorque.Y[j] * vr
		pl.MantleDragTorqueOpt.Z[j] = pl.MantleDragTorque.Z[j] * vr
		pl.MantleDragTorqueOpt.Mag[j] = pl.MantleDragTorque.Mag[j] * vr
	}
}

// CalibrateSCE refines the grid optimum with a shuffled complex
// evolution search over the same two parameters.
func CalibrateSCE(pl *Plates, c *Config, plateIDs []int, minArea float64, areaWeighted bool, ncmplx int) (visc, spConst, obj float64, err error) {
	sel := pl.Filter(plateIDs, minArea)
	if sel.Len() == 0 {
		return 0., 0., 0., fmt.Errorf("CalibrateSCE %s: no plates retained", c.Name)
	}
	rng := rand.New(mrg63k3a.New())
	rng.Seed(time.Now().UnixNano())
	gen := func(u []float64) float64 {
		v, sp := opt.Par2(u)
		f := residualObjective(sel, c, v, sp, areaWeighted)
		if math.IsNaN(f) {
			return math.Inf(1)
		}
		return f
	}
	uFinal, _ := glbopt.SCE(ncmplx, 2, rng, gen, true)
	visc, spConst = opt.Par2(uFinal)
	obj = residualObjective(sel, c, visc, spConst, areaWeighted)
	ApplyOptimalTorques(pl, c, visc, spConst)
	return visc, spConst, obj, nil
}
