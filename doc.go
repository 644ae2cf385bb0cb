// Package voxemit integrates spectral emission stored on regular voxel grids
// along rays.
//
// An emitter holds per-voxel spectra on a Cartesian or periodic cylindrical
// grid. For each ray it walks the segment through the grid, samples the
// containing voxel at a fixed step and adds length × integrated emission into
// the ray's spectral bins. Window integrals are cached once per window so
// repeated rays with the same spectral layout only pay for the walk.
//
// Packages:
//
//	matrix/     — Dense, CSR and COO storage with validation options
//	grid/       — point→voxel mapping for Cartesian and cylindrical grids
//	spectral/   — wavelength axis, continuous/discrete window integration
//	emission/   — per-voxel spectra from dense, sparse or voxel-map sources
//	cache/      — versioned single-window cache of integrated emission
//	traverse/   — fixed-step sampler state machine along a segment
//	emitter/    — the engine: Integrate, EmissionFunction, cache control
//	repository/ — JSON emitter definitions and snappy-compressed caches on disk
//	cmd/voxemit — batch renderer driven by a TOML file and the environment
//
// Quick start:
//
//	g, _ := emitter.NewGrid(grid.Cartesian, grid.Shape{2, 1, 1}, grid.Steps{1, 1, 1}, 0)
//	src, _ := emission.NewDense4D(spectra)
//	e, _ := emitter.New(g, []float64{400, 500, 600}, src)
//	ray := emitter.Window{Min: 400, Max: 600, N: 1}
//	s, _ := e.Integrate(emitter.NewSpectrum(ray), ray, start, end, nil)
package voxemit
