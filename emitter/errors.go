package emitter

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/voxemit/cache"
	"github.com/katalvlaran/voxemit/grid"
	"github.com/katalvlaran/voxemit/matrix"
)

var (
	// ErrConfiguration indicates invalid construction parameters.
	ErrConfiguration = errors.New("emitter: invalid configuration")

	// ErrCapacityExceeded indicates more voxels or stored entries than a
	// 32-bit index can address. Partition the domain across several emitters.
	ErrCapacityExceeded = errors.New("emitter: capacity exceeded, partition the domain across several emitters")

	// ErrUnsupportedPairing indicates an integrator used with a grid system it
	// does not handle.
	ErrUnsupportedPairing = errors.New("emitter: integrator does not support this emitter")

	// ErrCacheOverrideMismatch indicates an override matrix that does not fit
	// the emitter.
	ErrCacheOverrideMismatch = errors.New("emitter: cache override does not match the emitter")
)

// wrap tags err with its taxonomy sentinel, keeping err matchable.
func wrap(ctx string, err error) error {
	if err == nil {
		return nil
	}
	var kind error
	switch {
	case errors.Is(err, grid.ErrCapacityExceeded), errors.Is(err, matrix.ErrCapacityExceeded):
		kind = ErrCapacityExceeded
	case errors.Is(err, cache.ErrOverrideMismatch):
		kind = ErrCacheOverrideMismatch
	default:
		kind = ErrConfiguration
	}

	return fmt.Errorf("%s: %w: %w", ctx, kind, err)
}
