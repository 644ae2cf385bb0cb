package traverse

import (
	"fmt"
	"math"

	"github.com/katalvlaran/voxemit/grid"
)

// Default sampling parameters.
const (
	// DefaultStepFraction of the grid's finest cell is the step used when
	// none is configured.
	DefaultStepFraction = 0.25
	// DefaultMinSamples is the numerical-integration minimum.
	DefaultMinSamples = 2

	// degenerateFraction of the step below which a segment is skipped.
	degenerateFraction = 0.1
)

// Sampler holds the fixed sampling parameters of a traversal.
type Sampler struct {
	Step       float64
	MinSamples int
}

// NewSampler validates step > 0 and minSamples >= 2.
func NewSampler(step float64, minSamples int) (Sampler, error) {
	if !(step > 0) || math.IsInf(step, 0) {
		return Sampler{}, fmt.Errorf("NewSampler: step %g: %w", step, ErrBadStep)
	}
	if minSamples < 2 {
		return Sampler{}, fmt.Errorf("NewSampler: %d samples: %w", minSamples, ErrBadMinSamples)
	}

	return Sampler{Step: step, MinSamples: minSamples}, nil
}

// Walk traverses the segment start→end (grid-local coordinates) and adds
// emission into samples through lookup. It never fails: out-of-grid samples
// contribute nothing.
//
// Complexity: O(n) Locate calls plus one Lookup call per voxel run.
func (s Sampler) Walk(start, end grid.Point, loc Locator, lookup Lookup, samples []float64) Result {
	w := walker{sampler: s, start: start, end: end, loc: loc, lookup: lookup, samples: samples}
	for st := Start; st != End; {
		st = w.next(st)
	}

	return w.res
}

// walker carries the state of one Walk.
type walker struct {
	sampler Sampler
	start   grid.Point
	end     grid.Point
	loc     Locator
	lookup  Lookup
	samples []float64

	delta   grid.Point // one sub-step
	dt      float64    // sub-step length
	n       int        // sample count
	q       int        // samples taken
	voxel   int        // voxel being accumulated
	pending int        // voxel that triggered the pending flush
	acc     float64    // accumulated length in voxel
	last    bool       // pending flush is the final one
	res     Result
}

func (w *walker) next(st State) State {
	switch st {
	case Start:
		d := w.end.Sub(w.start)
		length := math.Sqrt(d.X*d.X + d.Y*d.Y + d.Z*d.Z)
		w.res.Length = length
		if length < degenerateFraction*w.sampler.Step {
			return End
		}
		w.n = max(w.sampler.MinSamples, int(math.Floor(length/w.sampler.Step)))
		w.dt = length / float64(w.n)
		w.delta = d.Scale(1 / float64(w.n))
		w.voxel = w.sample()
		w.acc = w.dt

		return Walking

	case Walking:
		if w.q == w.n {
			w.last = true
			return Flush
		}
		v := w.sample()
		if v == w.voxel {
			w.acc += w.dt
			return Walking
		}
		w.pending = v

		return Flush

	case Flush:
		if w.voxel >= 0 {
			w.lookup.AddEmission(w.samples, w.voxel, w.acc)
			w.res.Flushes++
		}
		if w.last {
			return End
		}
		w.voxel, w.acc = w.pending, w.dt

		return Walking
	}

	return End
}

// sample locates the midpoint of sub-step q and advances q.
func (w *walker) sample() int {
	p := w.start.Add(w.delta.Scale(float64(w.q) + 0.5))
	w.q++
	w.res.Samples++

	return w.loc.Locate(p)
}
