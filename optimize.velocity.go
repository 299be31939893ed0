package platefo

import (
	"fmt"
	"math"
	"sync"

	"github.com/maseology/objfunc"
)

// VelocityTarget is the reference a velocity sweep is scored
// against: convergence magnitudes per retained slab row, usually the
// reconstructed motions of the same case or of a tagged reference
// case.
type VelocityTarget struct {
	VConvMag []float64
}

// TargetFromSlabs snapshots a slab table's convergence magnitudes.
func TargetFromSlabs(s *Slabs) VelocityTarget {
	return VelocityTarget{VConvMag: append([]float64{}, s.VConvMag...)}
}

// MinimizeResidualVelocity grid-searches (mantle viscosity, slab
// pull constant) for the pair whose predicted convergence velocities
// best match the target, by RMSE. Each grid cell works on its own
// deep copies; cells run concurrently and a failed cell (solver
// non-convergence) is excluded from the minimum rather than aborting
// the sweep. With useSolver the full force balance iterates inside
// every cell, otherwise a single balance pass predicts velocities.
func MinimizeResidualVelocity(pl *Plates, s *Slabs, pts *Points, c *Config, m *Mech, tgt VelocityTarget, viscRange [2]float64, gridSize int, useSolver bool, plateIDs []int, minArea float64) (OptResult, error) {
	selPl := pl.Filter(plateIDs, minArea)
	if selPl.Len() == 0 {
		return OptResult{}, fmt.Errorf("MinimizeResidualVelocity %s: no plates retained", c.Name)
	}
	selS := s.Filter(selPl)
	selP := pts.Filter(selPl)
	if len(tgt.VConvMag) != selS.Len() {
		return OptResult{}, fmt.Errorf("MinimizeResidualVelocity %s: target has %d rows, retained slabs %d", c.Name, len(tgt.VConvMag), selS.Len())
	}

	viscs := linspace(viscRange[0], viscRange[1], gridSize)
	spConsts := linspace(1.e-4, 1., gridSize)
	g := make([]float64, len(viscs)*len(spConsts))

	var wg sync.WaitGroup
	for i := range viscs {
		for j := range spConsts {
			wg.Add(1)
			go func(i, j int) {
				defer wg.Done()
				g[i*len(spConsts)+j] = velocityCell(selPl, selS, selP, c, m, viscs[i], spConsts[j], useSolver, tgt.VConvMag)
			}(i, j)
		}
	}
	wg.Wait()

	k := argmin(g)
	if k < 0 {
		return OptResult{Viscs: viscs, SPConsts: spConsts, Grid: g}, fmt.Errorf("MinimizeResidualVelocity %s: every grid cell failed", c.Name)
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

// velocityCell evaluates one (viscosity, slab pull constant) pair on
// independent table copies, returning NaN on failure.
func velocityCell(pl *Plates, s *Slabs, pts *Points, c *Config, m *Mech, visc, spConst float64, useSolver bool, ref []float64) float64 {
	cpl, cs, cpts := pl.Copy(), s.Copy(), pts.Copy()
	cc := c.copy()
	cc.MantleViscosity = visc
	cc.SlabPullConstant = spConst

	if useSolver {
		if r := SolveForceBalance(cpl, cs, cpts, cc, m); r.State != Converged {
			return math.NaN()
		}
	} else {
		balancePlateRotation(cpl, cc, m)
		AssignSlabVelocities(cs, cpl, cc.VelocityTimeStep, cc.MantleStationaryTrenches)
	}
	return objfunc.RMSE(ref, cs.VConvMag)
}
