package platefo

import (
	"fmt"
	"runtime"
	"sync"
)

// Evaluate runs the torque pipeline over every reconstruction time
// on a worker pool. Times are independent once the equivalence-class
// copies exist, so each worker owns its times' tables outright; a
// failed time never takes its siblings down.
func (d *Domain) Evaluate(nworkers int) map[float64]error {
	if nworkers <= 0 {
		nworkers = runtime.GOMAXPROCS(0)
	}

	type fail struct {
		t   float64
		err error
	}
	tasks := make(chan float64, len(d.Times))
	fails := make(chan fail, len(d.Times))

	var wg sync.WaitGroup
	for w := 0; w < nworkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for t := range tasks {
				if err := d.ComputeTorques(t); err != nil {
					fails <- fail{t, err}
				}
			}
		}()
	}
	for _, t := range d.Times {
		tasks <- t
	}
	close(tasks)
	wg.Wait()
	close(fails)

	out := make(map[float64]error)
	for f := range fails {
		fmt.Printf(" %g Ma failed: %v\n", f.t, f.err)
		out[f.t] = f.err
	}
	return out
}
