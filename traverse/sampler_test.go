package traverse_test

import (
	"testing"

	"github.com/katalvlaran/voxemit/grid"
	"github.com/katalvlaran/voxemit/traverse"
	"github.com/stretchr/testify/require"
)

// table adds length × emission[voxel] into the samples and records each call.
type table struct {
	emission [][]float64
	calls    []call
}

type call struct {
	voxel  int
	length float64
}

func (tb *table) AddEmission(samples []float64, voxel int, length float64) {
	tb.calls = append(tb.calls, call{voxel, length})
	for b, e := range tb.emission[voxel] {
		samples[b] += length * e
	}
}

func cartesian(t *testing.T, shape grid.Shape) *grid.Grid {
	t.Helper()
	g, err := grid.NewCartesian(shape, grid.Steps{1, 1, 1})
	require.NoError(t, err)

	return g
}

//----------------------------------------------------------------------------//
// NewSampler Tests
//----------------------------------------------------------------------------//

// TestNewSampler_Errors rejects non-positive steps and fewer than two samples.
func TestNewSampler_Errors(t *testing.T) {
	_, err := traverse.NewSampler(0, 5)
	require.ErrorIs(t, err, traverse.ErrBadStep)
	_, err = traverse.NewSampler(-0.1, 5)
	require.ErrorIs(t, err, traverse.ErrBadStep)
	_, err = traverse.NewSampler(0.1, 1)
	require.ErrorIs(t, err, traverse.ErrBadMinSamples)

	s, err := traverse.NewSampler(0.1, 2)
	require.NoError(t, err)
	require.Equal(t, traverse.Sampler{Step: 0.1, MinSamples: 2}, s)
}

//----------------------------------------------------------------------------//
// Walk Tests
//----------------------------------------------------------------------------//

// TestWalk_SingleVoxel gives length × emission regardless of the sample count.
func TestWalk_SingleVoxel(t *testing.T) {
	g := cartesian(t, grid.Shape{1, 1, 1})
	start, end := grid.Point{X: 0.1, Y: 0.5, Z: 0.5}, grid.Point{X: 0.9, Y: 0.3, Z: 0.2}
	d := end.Sub(start)
	length := 0.0
	for _, c := range []float64{d.X, d.Y, d.Z} {
		length += c * c
	}

	for _, step := range []float64{0.5, 0.1, 0.013, 0.001} {
		for _, minSamples := range []int{2, 3, 10, 97} {
			s, err := traverse.NewSampler(step, minSamples)
			require.NoError(t, err)
			tb := &table{emission: [][]float64{{3, 5}}}
			out := make([]float64, 2)

			res := s.Walk(start, end, g, tb, out)
			require.Equal(t, 1, res.Flushes)
			require.GreaterOrEqual(t, res.Samples, minSamples)
			require.InDelta(t, res.Length*3, out[0], 1e-9, "step %g min %d", step, minSamples)
			require.InDelta(t, res.Length*5, out[1], 1e-9, "step %g min %d", step, minSamples)
			require.InDelta(t, length, res.Length*res.Length, 1e-12)
		}
	}
}

// TestWalk_TwoVoxels splits the segment at the shared face.
func TestWalk_TwoVoxels(t *testing.T) {
	g := cartesian(t, grid.Shape{2, 1, 1})
	start, end := grid.Point{X: 0.2, Y: 0.5, Z: 0.5}, grid.Point{X: 1.8, Y: 0.5, Z: 0.5}

	// A unit step leaves n = MinSamples; even counts keep the face between samples.
	for _, n := range []int{2, 4, 16, 64, 1000} {
		s, err := traverse.NewSampler(1, n)
		require.NoError(t, err)
		tb := &table{emission: [][]float64{{1, 2}, {10, 20}}}
		out := make([]float64, 2)

		res := s.Walk(start, end, g, tb, out)
		require.Equal(t, 2, res.Flushes)
		require.Equal(t, []int{0, 1}, []int{tb.calls[0].voxel, tb.calls[1].voxel})
		require.InDelta(t, 0.8, tb.calls[0].length, 1e-9)
		require.InDelta(t, 0.8, tb.calls[1].length, 1e-9)
		require.InDelta(t, 0.8*1+0.8*10, out[0], 1e-9)
		require.InDelta(t, 0.8*2+0.8*20, out[1], 1e-9)
	}
}

// TestWalk_Degenerate skips segments shorter than a tenth of the step.
func TestWalk_Degenerate(t *testing.T) {
	g := cartesian(t, grid.Shape{1, 1, 1})
	s, err := traverse.NewSampler(0.6, 5)
	require.NoError(t, err)
	tb := &table{emission: [][]float64{{1}}}
	out := []float64{7}

	res := s.Walk(grid.Point{X: 0.5, Y: 0.5, Z: 0.5}, grid.Point{X: 0.55, Y: 0.5, Z: 0.5}, g, tb, out)
	require.Zero(t, res.Samples)
	require.Zero(t, res.Flushes)
	require.Equal(t, []float64{7}, out)

	// Just above the threshold the walk runs with MinSamples.
	res = s.Walk(grid.Point{X: 0.5, Y: 0.5, Z: 0.5}, grid.Point{X: 0.57, Y: 0.5, Z: 0.5}, g, tb, out)
	require.Equal(t, 5, res.Samples)
	require.InDelta(t, 7+0.07, out[0], 1e-12)
}

// TestWalk_LeavesGrid ignores samples outside the grid.
func TestWalk_LeavesGrid(t *testing.T) {
	g := cartesian(t, grid.Shape{1, 1, 1})
	s, err := traverse.NewSampler(0.25, 2)
	require.NoError(t, err)
	tb := &table{emission: [][]float64{{2}}}
	out := make([]float64, 1)

	res := s.Walk(grid.Point{X: -1, Y: 0.5, Z: 0.5}, grid.Point{X: 0.5, Y: 0.5, Z: 0.5}, g, tb, out)
	require.Equal(t, 6, res.Samples)
	require.Equal(t, 1, res.Flushes)
	require.InDelta(t, 0.5*2, out[0], 1e-9)

	out[0] = 0
	res = s.Walk(grid.Point{X: 2, Y: 2, Z: 2}, grid.Point{X: 3, Y: 3, Z: 3}, g, tb, out)
	require.Zero(t, res.Flushes)
	require.Zero(t, out[0])
}

// TestWalk_Reentry flushes each run separately when the ray returns to a voxel.
func TestWalk_Reentry(t *testing.T) {
	g := cartesian(t, grid.Shape{2, 1, 1})
	s, err := traverse.NewSampler(0.1, 2)
	require.NoError(t, err)
	var voxels []int
	lookup := traverse.LookupFunc(func(_ []float64, voxel int, _ float64) { voxels = append(voxels, voxel) })

	// x runs 0.5 → 1.5 and back along a folded path made of two segments.
	s.Walk(grid.Point{X: 0.5, Y: 0.5, Z: 0.5}, grid.Point{X: 1.5, Y: 0.5, Z: 0.5}, g, lookup, nil)
	s.Walk(grid.Point{X: 1.5, Y: 0.5, Z: 0.5}, grid.Point{X: 0.5, Y: 0.5, Z: 0.5}, g, lookup, nil)
	require.Equal(t, []int{0, 1, 1, 0}, voxels)
}

// TestState_String names every state.
func TestState_String(t *testing.T) {
	names := []string{"start", "walking", "flush", "end"}
	for n, st := range []traverse.State{traverse.Start, traverse.Walking, traverse.Flush, traverse.End} {
		require.Equal(t, names[n], st.String())
	}
	require.Equal(t, "State(9)", traverse.State(9).String())
}
