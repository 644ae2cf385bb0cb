package spectral_test

import (
	"fmt"

	"github.com/katalvlaran/voxemit/spectral"
)

// ExampleProfile_IntegrateSpectrum integrates a flat 2 W/(sr·m³·nm) density
// over a 100 nm window and a single line over the window containing it.
func ExampleProfile_IntegrateSpectrum() {
	axis := []float64{400, 500, 600}

	cont, _ := spectral.NewProfile(axis, spectral.Continuous, false)
	v, _ := cont.IntegrateSpectrum([]float64{2, 2, 2}, 450, 550)
	fmt.Printf("continuous: %.1f\n", v)

	lines, _ := spectral.NewProfile(axis, spectral.Discrete, false)
	v, _ = lines.IntegrateSpectrum([]float64{0, 7, 0}, 450, 550)
	fmt.Printf("discrete: %.1f\n", v)

	// Output:
	// continuous: 200.0
	// discrete: 7.0
}
