package emission_test

import (
	"testing"

	"github.com/katalvlaran/voxemit/emission"
	"github.com/katalvlaran/voxemit/grid"
	"github.com/stretchr/testify/require"
)

// TestNewTable_SortsColumns permutes table columns to follow the sorted axis.
func TestNewTable_SortsColumns(t *testing.T) {
	g := line(t, 3)
	vm, err := emission.NewVoxelMap([][][]int{{{1}}, {{emission.Empty}}, {{0}}}, [][]float64{{1, 2, 3}, {4, 5, 6}})
	require.NoError(t, err)

	tab, err := emission.NewTable(g, []float64{600, 400, 500}, vm)
	require.NoError(t, err)
	require.Equal(t, []float64{400, 500, 600}, tab.Profile().Wavelengths())
	require.Equal(t, []float64{5, 6, 4}, tab.VoxelSpectrum(0))
	require.Equal(t, []float64{0, 0, 0}, tab.VoxelSpectrum(1))
	require.Equal(t, []float64{2, 3, 1}, tab.VoxelSpectrum(2))
	require.Equal(t, 2, tab.Rows())
	require.Equal(t, 1, tab.Row(0))

	// The caller's map is untouched.
	require.Equal(t, []float64{1, 2, 3}, vm.Table().Row(0))
}

// TestNewTable_MatchesStore integrates the same data through both storage forms.
func TestNewTable_MatchesStore(t *testing.T) {
	g, err := grid.NewCartesian(grid.Shape{2, 2, 1}, grid.Steps{1, 1, 1})
	require.NoError(t, err)
	vm, err := emission.NewVoxelMap([][][]int{{{0}, {1}}, {{emission.Empty}, {0}}}, [][]float64{{0, 2, 1}, {3, 0, 0}})
	require.NoError(t, err)
	axis := []float64{400, 500, 600}

	tab, err := emission.NewTable(g, axis, vm, emission.WithExtrapolation(true))
	require.NoError(t, err)
	store, err := emission.NewStore(g, axis, vm, emission.WithExtrapolation(true))
	require.NoError(t, err)

	for _, win := range [][2]float64{{350, 650}, {450, 460}, {590, 700}} {
		rows, err := tab.IntegrateWindow(win[0], win[1])
		require.NoError(t, err)
		voxels, err := store.IntegrateWindow(win[0], win[1])
		require.NoError(t, err)
		for v := 0; v < g.VoxelCount(); v++ {
			want := 0.0
			if r := tab.Row(v); r != emission.Empty {
				want = rows.At(r)
			}
			require.InDelta(t, want, voxels.At(v), 1e-9, "voxel %d window %v", v, win)
		}
	}
}

// TestNewTable_Errors rejects mismatched maps.
func TestNewTable_Errors(t *testing.T) {
	vm, err := emission.NewVoxelMap([][][]int{{{0}}}, [][]float64{{1, 2}})
	require.NoError(t, err)

	_, err = emission.NewTable(line(t, 2), []float64{1, 2}, vm)
	require.ErrorIs(t, err, emission.ErrShapeMismatch)

	_, err = emission.NewTable(line(t, 1), []float64{1}, vm)
	require.ErrorIs(t, err, emission.ErrShapeMismatch)

	_, err = emission.NewTable(line(t, 1), []float64{1, 2}, nil)
	require.ErrorIs(t, err, emission.ErrNilInput)
}
