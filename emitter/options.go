package emitter

import (
	"github.com/katalvlaran/voxemit/emission"
	"github.com/katalvlaran/voxemit/spectral"
	"github.com/katalvlaran/voxemit/traverse"
)

// Option configures New and NewLegacy.
type Option func(*options)

type options struct {
	store      []emission.Option
	step       float64
	stepSet    bool // false means DefaultStepFraction × grid.MinStep()
	minSamples int
	integrator Integrator
	logger     Logger
}

func gatherOptions(opts []Option) options {
	o := options{minSamples: traverse.DefaultMinSamples, logger: nopLogger{}}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	return o
}

// WithModel selects the spectral model (default continuous).
func WithModel(m spectral.Model) Option {
	return func(o *options) { o.store = append(o.store, emission.WithModel(m)) }
}

// WithExtrapolation enables nearest-neighbour extrapolation of continuous spectra.
func WithExtrapolation(on bool) Option {
	return func(o *options) { o.store = append(o.store, emission.WithExtrapolation(on)) }
}

// WithoutCompaction keeps all-zero wavelength slots (sparse variant only).
func WithoutCompaction() Option {
	return func(o *options) { o.store = append(o.store, emission.WithoutCompaction()) }
}

// WithSlotMapping routes input slices to explicit slots (sparse variant only).
func WithSlotMapping(mapping []int) Option {
	return func(o *options) { o.store = append(o.store, emission.WithSlotMapping(mapping)) }
}

// WithStep sets the traversal sampling step in local length units.
func WithStep(step float64) Option {
	return func(o *options) { o.step, o.stepSet = step, true }
}

// WithMinSamples sets the minimum number of samples per segment (>= 2).
func WithMinSamples(n int) Option {
	return func(o *options) { o.minSamples = n }
}

// WithIntegrator replaces the integrator chosen from the grid system.
func WithIntegrator(i Integrator) Option {
	return func(o *options) { o.integrator = i }
}

// WithLogger receives construction and cache events. Nil restores the no-op logger.
func WithLogger(l Logger) Option {
	return func(o *options) {
		if l == nil {
			l = nopLogger{}
		}
		o.logger = l
	}
}
