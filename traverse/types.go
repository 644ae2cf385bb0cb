package traverse

import (
	"fmt"

	"github.com/katalvlaran/voxemit/grid"
)

// State is a phase of one segment walk.
type State int

const (
	// Start measures the segment and picks the sample count.
	Start State = iota
	// Walking samples sub-step midpoints.
	Walking
	// Flush commits the accumulated length of one voxel.
	Flush
	// End terminates the walk.
	End
)

// String implements fmt.Stringer.
func (s State) String() string {
	switch s {
	case Start:
		return "start"
	case Walking:
		return "walking"
	case Flush:
		return "flush"
	case End:
		return "end"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Locator resolves a local-frame point to a voxel index, or -1 outside the
// grid. *grid.Grid implements it.
type Locator interface {
	Locate(p grid.Point) int
}

// Lookup adds the emission of one voxel, weighted by path length, into the
// per-bin samples. Implementations choose the storage (sparse cache rows or a
// voxel map into a table).
type Lookup interface {
	AddEmission(samples []float64, voxel int, length float64)
}

// LookupFunc adapts a function to Lookup.
type LookupFunc func(samples []float64, voxel int, length float64)

// AddEmission calls f.
func (f LookupFunc) AddEmission(samples []float64, voxel int, length float64) { f(samples, voxel, length) }

// Result summarizes one walk.
type Result struct {
	Samples int     // midpoints sampled
	Flushes int     // Lookup calls made
	Length  float64 // segment length
}
