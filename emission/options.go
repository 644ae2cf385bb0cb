package emission

import "github.com/katalvlaran/voxemit/spectral"

// Option configures NewStore and NewTable.
type Option func(*options)

type options struct {
	model       spectral.Model
	extrapolate bool
	compact     bool
	mapping     []int
}

func defaultOptions() options {
	return options{model: spectral.Continuous, compact: true}
}

func gatherOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	return o
}

// WithModel selects how stored samples are integrated (default Continuous).
func WithModel(m spectral.Model) Option {
	return func(o *options) { o.model = m }
}

// WithExtrapolation extends the end samples of a continuous spectrum beyond
// the wavelength axis. Ignored by the discrete model.
func WithExtrapolation(on bool) Option {
	return func(o *options) { o.extrapolate = on }
}

// WithoutCompaction keeps all-zero slots.
func WithoutCompaction() Option {
	return func(o *options) { o.compact = false }
}

// WithSlotMapping routes input slice s to final slot mapping[s]. The
// wavelength axis then describes the final slots, slices sharing a target are
// summed, and compaction is disabled. The mapping is copied.
func WithSlotMapping(mapping []int) Option {
	m := append([]int(nil), mapping...)

	return func(o *options) { o.mapping = m }
}
