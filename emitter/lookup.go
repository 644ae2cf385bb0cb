package emitter

import "github.com/katalvlaran/voxemit/cache"

// rowLookup reads cached emission for a voxel through a voxel → row mapping.
type rowLookup struct {
	snap  *cache.Snapshot
	rowOf func(voxel int) int
}

// AddEmission implements traverse.Lookup.
func (l rowLookup) AddEmission(samples []float64, voxel int, length float64) {
	r := l.rowOf(voxel)
	if r < 0 {
		return
	}
	bins, vals := l.snap.Row(r)
	for p, b := range bins {
		samples[b] += length * vals[p]
	}
}
