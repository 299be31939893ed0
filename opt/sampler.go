package opt

import "github.com/maseology/mmaths"

// Par2 maps a 2D unit-hypercube sample to the calibrated pair.
func Par2(u []float64) (visc, spConst float64) {
	visc = mmaths.LogLinearTransform(1.e18, 1.e21, u[0]) // mantle viscosity [Pa s]
	spConst = mmaths.LinearTransform(1.e-4, 1., u[1])    // slab pull efficiency
	return
}
