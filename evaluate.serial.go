package platefo

import (
	"fmt"

	"github.com/gosuri/uiprogress"
)

// EvaluateSerial runs the torque pipeline over every reconstruction
// time in order, no concurrency. Failed times are reported and
// skipped.
func (d *Domain) EvaluateSerial() map[float64]error {
	nt := len(d.Times)
	fails := make(map[float64]error)

	uiprogress.Start()
	timestep := make(chan string, 1)
	bar := uiprogress.AddBar(nt).AppendCompleted().PrependElapsed()
	bar.PrependFunc(func(b *uiprogress.Bar) string {
		return <-timestep
	})

	for _, t := range d.Times {
		timestep <- fmt.Sprintf("%g Ma", t)
		if err := d.ComputeTorques(t); err != nil {
			fails[t] = err
		}
		bar.Incr()
	}
	close(timestep)
	uiprogress.Stop()

	for t, err := range fails {
		fmt.Printf(" %g Ma failed: %v\n", t, err)
	}
	return fails
}
