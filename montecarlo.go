package platefo

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/maseology/mmio"
	"github.com/maseology/montecarlo/smpln"
	mrg63k3a "github.com/maseology/goRNG/MRG63k3a"
	"github.com/thomas-schouten/PLATEFO/opt"
)

// GenerateSamples draws a Latin hypercube over (mantle viscosity,
// slab pull constant), scores every sample against the residual
// torque objective and writes the sample space to fp as CSV. Returns
// the parameter sets and their objectives.
func GenerateSamples(pl *Plates, c *Config, plateIDs []int, minArea float64, areaWeighted bool, nsmpl int, fp string) ([][2]float64, []float64, error) {
	sel := pl.Filter(plateIDs, minArea)
	if sel.Len() == 0 {
		return nil, nil, fmt.Errorf("GenerateSamples %s: no plates retained", c.Name)
	}

	rng := rand.New(mrg63k3a.New())
	rng.Seed(time.Now().UnixNano())

	const ndim = 2
	sp := smpln.NewLHC(rng, nsmpl, ndim, false)

	pars := make([][2]float64, nsmpl)
	objs := make([]float64, nsmpl)
	lns := make([]string, 0, nsmpl+1)
	lns = append(lns, "viscosity,slab_pull_constant,objective")
	for k := 0; k < nsmpl; k++ {
		ut := make([]float64, ndim)
		for j := 0; j < ndim; j++ {
			ut[j] = sp.U[j][k]
		}
		v, spc := opt.Par2(ut)
		f := residualObjective(sel, c, v, spc, areaWeighted)
		pars[k] = [2]float64{v, spc}
		objs[k] = f
		lns = append(lns, fmt.Sprintf("%e,%f,%f", v, spc, f))
		fmt.Print(".")
	}
	fmt.Println()

	if fp != "" {
		if err := mmio.WriteLines(fp, lns); err != nil {
			return nil, nil, fmt.Errorf(" GenerateSamples %s: %v", fp, err)
		}
	}
	return pars, objs, nil
}
