package main

import (
	"fmt"
	"log"
	"runtime"

	"github.com/maseology/mmio"
	platefo "github.com/thomas-schouten/PLATEFO"
	"github.com/thomas-schouten/PLATEFO/grid"
)

func main() {

	const (
		reconName = "Muller2016"
		casefp    = "M:/PLATEFO/cases.csv"
		agedir    = "M:/PLATEFO/seafloor/" // <time>Ma.nc age grids
		cachedir  = "M:/PLATEFO/cache/"
		outdir    = "M:/PLATEFO/out/"
		gridSize  = 10
	)
	times := []float64{0., 5., 10., 15., 20., 25., 30.}
	viscRange := [2]float64{1.e18, 1.e21}

	fmt.Println("")
	tt := mmio.NewTimer()
	defer tt.Lap(fmt.Sprintf("\nRun complete. n processes: %v", runtime.GOMAXPROCS(0)))

	cases, err := platefo.ReadCases(casefp)
	if err != nil {
		log.Fatalf(" case load error: %v", err)
	}

	seafloor := make(map[float64]grid.Dataset)
	for _, t := range times {
		fp := fmt.Sprintf("%s%gMa.nc", agedir, t)
		if _, ok := mmio.FileExists(fp); !ok {
			continue
		}
		r, err := grid.ReadNC(fp, "")
		if err != nil {
			log.Fatalf(" seafloor age load error: %v", err)
		}
		seafloor[t] = grid.Dataset{"z": r}
	}

	dom := platefo.NewDomain(reconName, times, cases, seafloor, platefo.NewMech())
	if err := dom.Init(nil, cachedir); err != nil {
		log.Fatalf(" domain init error: %v", err)
	}
	tt.Print("domain load complete\n")

	if fails := dom.Evaluate(runtime.GOMAXPROCS(0)); len(fails) > 0 {
		fmt.Printf(" %d of %d times failed\n", len(fails), len(times))
	}
	tt.Print("torque computation complete\n")

	for _, t := range times {
		for _, c := range cases {
			st, err := dom.State(t, c.Name)
			if err != nil {
				log.Fatalf(" %v", err)
			}
			o, err := platefo.MinimizeResidualTorque(st.Plates, c, viscRange, gridSize, nil, c.MinimumPlateArea, true)
			if err != nil {
				fmt.Printf(" %g Ma case %s: %v\n", t, c.Name, err)
				continue
			}
			fmt.Printf(" %g Ma case %s: viscosity %.3e Pa s, slab pull constant %.2f%% (objective %.3f)\n",
				t, c.Name, o.Viscosity, o.SlabPullConstant*100., o.Objective)

			if err := platefo.WritePlatesCSV(fmt.Sprintf("%splates_%s_%s_%gMa.csv", outdir, reconName, c.Name, t), st.Plates); err != nil {
				log.Fatalf(" %v", err)
			}
			if err := platefo.WriteSlabsCSV(fmt.Sprintf("%sslabs_%s_%s_%gMa.csv", outdir, reconName, c.Name, t), st.Slabs); err != nil {
				log.Fatalf(" %v", err)
			}
		}
	}

	if err := dom.Save(cachedir); err != nil {
		log.Fatalf(" domain save error: %v", err)
	}
}
