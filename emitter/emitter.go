package emitter

import (
	"fmt"

	"github.com/dustin/go-humanize"

	"github.com/katalvlaran/voxemit/cache"
	"github.com/katalvlaran/voxemit/emission"
	"github.com/katalvlaran/voxemit/grid"
	"github.com/katalvlaran/voxemit/matrix"
	"github.com/katalvlaran/voxemit/traverse"
)

// storage is what both emission forms provide to the emitter.
type storage interface {
	cache.Source
	Bytes() uint64
}

// Emitter integrates gridded emission along ray segments.
type Emitter struct {
	grid       *grid.Grid
	data       storage
	rowOf      func(voxel int) int
	legacy     bool
	cache      *cache.Cache
	sampler    traverse.Sampler
	integrator Integrator
	logger     Logger
}

// NewGrid builds a grid, tagging failures with the emitter error taxonomy.
// rmin is ignored for Cartesian grids.
func NewGrid(system grid.System, shape grid.Shape, steps grid.Steps, rmin float64) (*grid.Grid, error) {
	g, err := grid.New(system, shape, steps, grid.WithRMin(rmin))

	return g, wrap("NewGrid", err)
}

// New builds a sparse-store emitter from any emission source.
func New(g *grid.Grid, wavelengths []float64, src emission.Source, opts ...Option) (*Emitter, error) {
	o := gatherOptions(opts)
	store, err := emission.NewStore(g, wavelengths, src, o.store...)
	if err != nil {
		return nil, wrap("New", err)
	}
	e, err := newEmitter(g, store, func(voxel int) int { return voxel }, o)
	if err != nil {
		return nil, wrap("New", err)
	}
	o.logger.Infof("emitter: %s voxels, %d slots, %s entries (%s)",
		humanize.Comma(int64(g.VoxelCount())), store.Slots(),
		humanize.Comma(int64(store.NNZ())), humanize.Bytes(store.Bytes()))

	return e, nil
}

// NewLegacy builds an emitter over a dense voxel map and table.
// WithoutCompaction and WithSlotMapping have no effect.
func NewLegacy(g *grid.Grid, wavelengths []float64, vm *emission.VoxelMap, opts ...Option) (*Emitter, error) {
	o := gatherOptions(opts)
	table, err := emission.NewTable(g, wavelengths, vm, o.store...)
	if err != nil {
		return nil, wrap("NewLegacy", err)
	}
	e, err := newEmitter(g, table, table.Row, o)
	if err != nil {
		return nil, wrap("NewLegacy", err)
	}
	e.legacy = true
	o.logger.Infof("emitter (voxel map): %s voxels, %d table rows (%s)",
		humanize.Comma(int64(g.VoxelCount())), table.Rows(), humanize.Bytes(table.Bytes()))

	return e, nil
}

func newEmitter(g *grid.Grid, data storage, rowOf func(int) int, o options) (*Emitter, error) {
	step := o.step
	if !o.stepSet {
		step = traverse.DefaultStepFraction * g.MinStep()
	}
	sampler, err := traverse.NewSampler(step, o.minSamples)
	if err != nil {
		return nil, err
	}
	integrator := o.integrator
	if integrator == nil {
		integrator = defaultIntegrator(g.System())
	}

	return &Emitter{
		grid:       g,
		data:       data,
		rowOf:      rowOf,
		cache:      cache.New(data),
		sampler:    sampler,
		integrator: integrator,
		logger:     o.logger,
	}, nil
}

// Grid returns the emitter's grid.
func (e *Emitter) Grid() *grid.Grid { return e.grid }

// Sampler returns the traversal parameters.
func (e *Emitter) Sampler() traverse.Sampler { return e.sampler }

// Legacy reports whether the emitter uses the voxel-map storage.
func (e *Emitter) Legacy() bool { return e.legacy }

// CacheRows returns the row count a cache override must have: voxels for the
// sparse variant, table rows for the legacy one.
func (e *Emitter) CacheRows() int { return e.data.Rows() }

// Integrate adds the emission along world-space start→end into spectrum.
// toLocal maps world points into the grid frame; nil means Identity.
//
// Errors: ErrUnsupportedPairing when the integrator does not match the grid,
// ErrConfiguration for a spectrum that does not match the ray or an invalid
// window, ErrCapacityExceeded if the cache cannot be built.
func (e *Emitter) Integrate(spectrum *Spectrum, ray Ray, start, end grid.Point, toLocal Transform) (*Spectrum, error) {
	if e.integrator.System() != e.grid.System() {
		return spectrum, fmt.Errorf("Integrate: %T on %v grid: %w", e.integrator, e.grid.System(), ErrUnsupportedPairing)
	}
	snap, err := e.prepare(spectrum, ray)
	if err != nil {
		return spectrum, wrap("Integrate", err)
	}
	if snap.Empty() {
		return spectrum, nil
	}
	if toLocal == nil {
		toLocal = Identity{}
	}
	e.integrator.Walk(e.sampler, toLocal.Apply(start), toLocal.Apply(end), e.grid, e.lookup(snap), spectrum.Samples)

	return spectrum, nil
}

// EmissionFunction returns the cached emission of the voxel containing point,
// one value per bin of ray's window. Points outside the grid yield zeros.
func (e *Emitter) EmissionFunction(point grid.Point, ray Ray, toLocal Transform) (*Spectrum, error) {
	spectrum := NewSpectrum(ray)
	snap, err := e.prepare(spectrum, ray)
	if err != nil {
		return nil, wrap("EmissionFunction", err)
	}
	if toLocal == nil {
		toLocal = Identity{}
	}
	if voxel := e.grid.Locate(toLocal.Apply(point)); voxel >= 0 {
		e.lookup(snap).AddEmission(spectrum.Samples, voxel, 1)
	}

	return spectrum, nil
}

// prepare checks the spectrum and returns the cache for ray's window.
func (e *Emitter) prepare(spectrum *Spectrum, ray Ray) (*cache.Snapshot, error) {
	if err := spectrum.matches(ray); err != nil {
		return nil, err
	}
	hit := e.cache.Valid(ray.MinWavelength(), ray.MaxWavelength(), ray.Bins())
	snap, err := e.cache.Acquire(ray.MinWavelength(), ray.MaxWavelength(), ray.Bins())
	if err != nil {
		return nil, err
	}
	if !hit {
		e.logBuild(snap)
	}

	return snap, nil
}

func (e *Emitter) logBuild(s *cache.Snapshot) {
	e.logger.Debugf("cache v%d %v: %s entries (%s)",
		s.Version, s.Key, humanize.Comma(int64(s.M.NNZ())), humanize.Bytes(s.M.Bytes()))
}

func (e *Emitter) lookup(s *cache.Snapshot) traverse.Lookup {
	return rowLookup{snap: s, rowOf: e.rowOf}
}

// CacheBuild builds the cache for a window ahead of rendering. Without forced
// it is a no-op when the window is already cached.
func (e *Emitter) CacheBuild(minWavelength, maxWavelength float64, bins int, forced bool) error {
	if !forced && e.cache.Valid(minWavelength, maxWavelength, bins) {
		return nil
	}
	snap, err := e.cache.Build(minWavelength, maxWavelength, bins, forced)
	if err != nil {
		return wrap("CacheBuild", err)
	}
	e.logBuild(snap)

	return nil
}

// CacheOverride installs a pre-computed CacheRows()×bins matrix for the
// window. Its content is trusted.
func (e *Emitter) CacheOverride(m *matrix.CSR, minWavelength, maxWavelength float64) error {
	snap, err := e.cache.Override(m, minWavelength, maxWavelength)
	if err != nil {
		return wrap("CacheOverride", err)
	}
	e.logger.Infof("cache v%d %v overridden: %s entries", snap.Version, snap.Key, humanize.Comma(int64(snap.M.NNZ())))

	return nil
}

// CacheValid reports whether the cache holds exactly this window.
func (e *Emitter) CacheValid(minWavelength, maxWavelength float64, bins int) bool {
	return e.cache.Valid(minWavelength, maxWavelength, bins)
}

// CacheEmpty reports whether the current cache stores no emission.
func (e *Emitter) CacheEmpty() (bool, error) {
	empty, err := e.cache.Empty()

	return empty, wrap("CacheEmpty", err)
}

// CacheSnapshot returns the current cache generation, or nil.
func (e *Emitter) CacheSnapshot() *cache.Snapshot { return e.cache.Snapshot() }
