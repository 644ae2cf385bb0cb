package emitter

import (
	"github.com/katalvlaran/voxemit/grid"
	"github.com/katalvlaran/voxemit/traverse"
)

// Integrator walks a segment for one kind of grid.
type Integrator interface {
	// System is the coordinate system the integrator handles.
	System() grid.System
	// Walk traverses start→end in grid-local coordinates.
	Walk(s traverse.Sampler, start, end grid.Point, loc traverse.Locator, lookup traverse.Lookup, samples []float64) traverse.Result
}

// CartesianIntegrator handles Cartesian grids.
type CartesianIntegrator struct{}

// System implements Integrator.
func (CartesianIntegrator) System() grid.System { return grid.Cartesian }

// Walk implements Integrator.
func (CartesianIntegrator) Walk(s traverse.Sampler, start, end grid.Point, loc traverse.Locator, lookup traverse.Lookup, samples []float64) traverse.Result {
	return walkChord(s, start, end, loc, lookup, samples)
}

// CylindricalIntegrator handles periodic cylindrical grids.
type CylindricalIntegrator struct{}

// System implements Integrator.
func (CylindricalIntegrator) System() grid.System { return grid.CylindricalPeriodic }

// Walk implements Integrator.
func (CylindricalIntegrator) Walk(s traverse.Sampler, start, end grid.Point, loc traverse.Locator, lookup traverse.Lookup, samples []float64) traverse.Result {
	return walkChord(s, start, end, loc, lookup, samples)
}

// walkChord samples the straight segment in Cartesian local coordinates for
// both systems; loc converts each sample to the grid's own axes. The two
// integrator types differ only in the system they accept.
func walkChord(s traverse.Sampler, start, end grid.Point, loc traverse.Locator, lookup traverse.Lookup, samples []float64) traverse.Result {
	return s.Walk(start, end, loc, lookup, samples)
}

// defaultIntegrator returns the integrator matching system.
func defaultIntegrator(system grid.System) Integrator {
	if system == grid.CylindricalPeriodic {
		return CylindricalIntegrator{}
	}

	return CartesianIntegrator{}
}
