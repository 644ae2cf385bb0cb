package emission_test

import (
	"testing"

	"github.com/katalvlaran/voxemit/emission"
	"github.com/katalvlaran/voxemit/grid"
	"github.com/katalvlaran/voxemit/matrix"
	"github.com/katalvlaran/voxemit/spectral"
	"github.com/stretchr/testify/require"
)

func line(t *testing.T, n int) *grid.Grid {
	t.Helper()
	g, err := grid.NewCartesian(grid.Shape{n, 1, 1}, grid.Steps{1, 1, 1})
	require.NoError(t, err)

	return g
}

// spectra builds an n×1×1 Dense4D from one spectrum per voxel.
func spectra(t *testing.T, per ...[]float64) *emission.Dense4D {
	t.Helper()
	nested := make([][][][]float64, len(per))
	for i, s := range per {
		nested[i] = [][][]float64{{s}}
	}
	d, err := emission.NewDense4D(nested)
	require.NoError(t, err)

	return d
}

//----------------------------------------------------------------------------//
// NewStore Tests
//----------------------------------------------------------------------------//

// TestNewStore_SortsAxis permutes slices when the axis arrives unsorted.
func TestNewStore_SortsAxis(t *testing.T) {
	s, err := emission.NewStore(line(t, 2), []float64{500, 400}, spectra(t, []float64{1, 2}, []float64{0, 3}))
	require.NoError(t, err)

	require.Equal(t, []float64{400, 500}, s.Wavelengths())
	require.Equal(t, []int{1, 0}, s.SlotMap())
	require.Equal(t, []float64{2, 1}, s.VoxelSpectrum(0))
	require.Equal(t, []float64{3, 0}, s.VoxelSpectrum(1))
	require.Equal(t, 3, s.NNZ())
	require.Equal(t, 2, s.Len())

	idx, vals := s.Column(0)
	require.Equal(t, []int32{0, 1}, idx)
	require.Equal(t, []float64{2, 3}, vals)
}

// TestNewStore_Errors covers every construction failure.
func TestNewStore_Errors(t *testing.T) {
	g := line(t, 2)
	good := spectra(t, []float64{1, 2}, []float64{3, 4})

	_, err := emission.NewStore(nil, []float64{1, 2}, good)
	require.ErrorIs(t, err, emission.ErrNilInput)

	_, err = emission.NewStore(line(t, 3), []float64{1, 2}, good)
	require.ErrorIs(t, err, emission.ErrShapeMismatch)

	_, err = emission.NewStore(g, []float64{1, 2, 3}, good)
	require.ErrorIs(t, err, emission.ErrShapeMismatch)

	_, err = emission.NewStore(g, []float64{400, 400}, good)
	require.ErrorIs(t, err, emission.ErrWavelengthAxis)

	_, err = emission.NewStore(g, []float64{-5, 400}, good)
	require.ErrorIs(t, err, emission.ErrWavelengthAxis)
	require.ErrorIs(t, err, spectral.ErrWavelengthAxis)

	_, err = emission.NewStore(g, []float64{1, 2}, spectra(t, []float64{1, -2}, []float64{3, 4}))
	require.ErrorIs(t, err, emission.ErrNegativeEmission)

	_, err = emission.NewStore(g, []float64{1, 2}, good, emission.WithModel(spectral.Model(5)))
	require.ErrorIs(t, err, spectral.ErrUnknownModel)
}

// TestNewStore_CompactDiscrete drops every line that carries no power.
func TestNewStore_CompactDiscrete(t *testing.T) {
	s, err := emission.NewStore(line(t, 1), []float64{400, 500, 600},
		spectra(t, []float64{0, 7, 0}), emission.WithModel(spectral.Discrete))
	require.NoError(t, err)
	require.Equal(t, []float64{500}, s.Wavelengths())
	require.Equal(t, []int{-1, 0, -1}, s.SlotMap())
}

// TestNewStore_CompactContinuous keeps zero samples next to emission and
// leaves every window integral unchanged.
func TestNewStore_CompactContinuous(t *testing.T) {
	g := line(t, 2)
	axis := []float64{400, 450, 500, 550, 600, 650}
	src := spectra(t, []float64{0, 0, 4, 0, 0, 0}, []float64{0, 0, 1, 2, 0, 0})

	for _, extrapolate := range []bool{false, true} {
		compact, err := emission.NewStore(g, axis, src, emission.WithExtrapolation(extrapolate))
		require.NoError(t, err)
		require.Equal(t, []float64{450, 500, 550, 600}, compact.Wavelengths())
		require.Equal(t, []int{-1, 0, 1, 2, 3, -1}, compact.SlotMap())

		full, err := emission.NewStore(g, axis, src, emission.WithExtrapolation(extrapolate), emission.WithoutCompaction())
		require.NoError(t, err)
		require.Equal(t, 6, full.Slots())

		for _, win := range [][2]float64{{300, 700}, {420, 480}, {470, 560}, {590, 640}, {100, 200}} {
			a, err := compact.IntegrateWindow(win[0], win[1])
			require.NoError(t, err)
			b, err := full.IntegrateWindow(win[0], win[1])
			require.NoError(t, err)
			require.Equal(t, b.Index, a.Index, "window %v", win)
			require.InDeltaSlice(t, b.Data, a.Data, 1e-9, "window %v", win)
		}
	}
}

// TestNewStore_SlotMapping sums slices that share a target and keeps empty slots.
func TestNewStore_SlotMapping(t *testing.T) {
	g := line(t, 1)
	src := spectra(t, []float64{1, 2, 0})

	s, err := emission.NewStore(g, []float64{400, 500, 600}, src, emission.WithSlotMapping([]int{0, 0, 2}))
	require.NoError(t, err)
	require.Equal(t, []float64{3, 0, 0}, s.VoxelSpectrum(0))
	require.Equal(t, 3, s.Slots())
	require.Equal(t, []int{0, 0, 2}, s.SlotMap())

	_, err = emission.NewStore(g, []float64{400, 500}, src, emission.WithSlotMapping([]int{0, 1}))
	require.ErrorIs(t, err, emission.ErrSlotMapping)

	_, err = emission.NewStore(g, []float64{400, 500}, src, emission.WithSlotMapping([]int{0, 1, 2}))
	require.ErrorIs(t, err, emission.ErrSlotMapping)
}

// TestNewStore_Sources ingests one dataset through every adapter.
func TestNewStore_Sources(t *testing.T) {
	g := line(t, 3)
	axis := []float64{400, 500}

	dense := spectra(t, []float64{1, 0}, []float64{0, 0}, []float64{1, 0})

	csr, err := matrix.NewCSR(3, 2, []int32{0, 1, 1, 2}, []int32{0, 0}, []float64{1, 1})
	require.NoError(t, err)
	sparse, err := emission.NewSparse(csr)
	require.NoError(t, err)

	vm, err := emission.NewVoxelMap([][][]int{{{0}}, {{emission.Empty}}, {{0}}}, [][]float64{{1, 0}})
	require.NoError(t, err)

	var want *emission.Store
	for name, src := range map[string]emission.Source{"dense": dense, "sparse": sparse, "map": vm} {
		s, err := emission.NewStore(g, axis, src, emission.WithoutCompaction())
		require.NoError(t, err, name)
		if want == nil {
			want = s
			continue
		}
		for v := 0; v < 3; v++ {
			require.Equal(t, want.VoxelSpectrum(v), s.VoxelSpectrum(v), "%s voxel %d", name, v)
		}
	}

	_, err = emission.NewSparse(nil)
	require.ErrorIs(t, err, emission.ErrNilInput)
}

//----------------------------------------------------------------------------//
// Source constructor Tests
//----------------------------------------------------------------------------//

// TestNewDense4D_Ragged rejects non-rectangular arrays.
func TestNewDense4D_Ragged(t *testing.T) {
	_, err := emission.NewDense4D(nil)
	require.ErrorIs(t, err, emission.ErrShapeMismatch)

	_, err = emission.NewDense4D([][][][]float64{{{{1, 2}, {3}}}})
	require.ErrorIs(t, err, emission.ErrShapeMismatch)

	_, err = emission.NewDense4DFlat(grid.Shape{2, 1, 1}, 2, []float64{1, 2, 3})
	require.ErrorIs(t, err, emission.ErrShapeMismatch)

	d, err := emission.NewDense4DFlat(grid.Shape{2, 1, 1}, 2, []float64{1, 2, 3, 4})
	require.NoError(t, err)
	require.Equal(t, grid.Shape{2, 1, 1}, d.Shape())
	require.Equal(t, 2, d.Voxels())
}

// TestNewVoxelMap_Errors rejects rows outside the table and negative values.
func TestNewVoxelMap_Errors(t *testing.T) {
	_, err := emission.NewVoxelMap([][][]int{{{1}}}, [][]float64{{1}})
	require.ErrorIs(t, err, emission.ErrShapeMismatch)

	_, err = emission.NewVoxelMap([][][]int{{{-2}}}, [][]float64{{1}})
	require.ErrorIs(t, err, emission.ErrShapeMismatch)

	_, err = emission.NewVoxelMap([][][]int{{{0}, {0, 0}}}, [][]float64{{1}})
	require.ErrorIs(t, err, emission.ErrShapeMismatch)

	_, err = emission.NewVoxelMap([][][]int{{{0}}}, [][]float64{{-1}})
	require.ErrorIs(t, err, emission.ErrNegativeEmission)

	vm, err := emission.NewVoxelMap([][][]int{{{0, emission.Empty}}}, [][]float64{{1, 2}})
	require.NoError(t, err)
	require.Equal(t, 0, vm.Row(0))
	require.Equal(t, emission.Empty, vm.Row(1))
	require.Equal(t, emission.Empty, vm.Row(99))
}
