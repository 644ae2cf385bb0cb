package grid_test

import (
	"errors"
	"math"
	"testing"

	"github.com/katalvlaran/voxemit/grid"
	"github.com/stretchr/testify/require"
)

//----------------------------------------------------------------------------//
// New Tests
//----------------------------------------------------------------------------//

// TestNew_Errors verifies that New rejects every invalid configuration.
func TestNew_Errors(t *testing.T) {
	cases := []struct {
		name   string
		system grid.System
		shape  grid.Shape
		steps  grid.Steps
		opts   []grid.Option
		err    error
	}{
		{"ZeroShape", grid.Cartesian, grid.Shape{0, 1, 1}, grid.Steps{1, 1, 1}, nil, grid.ErrBadShape},
		{"NegativeShape", grid.Cartesian, grid.Shape{1, -2, 1}, grid.Steps{1, 1, 1}, nil, grid.ErrBadShape},
		{"ZeroStep", grid.Cartesian, grid.Shape{1, 1, 1}, grid.Steps{1, 0, 1}, nil, grid.ErrBadStep},
		{"NaNStep", grid.Cartesian, grid.Shape{1, 1, 1}, grid.Steps{math.NaN(), 1, 1}, nil, grid.ErrBadStep},
		{"UnknownSystem", grid.System(7), grid.Shape{1, 1, 1}, grid.Steps{1, 1, 1}, nil, grid.ErrUnknownSystem},
		{"PeriodNotDivisor", grid.CylindricalPeriodic, grid.Shape{4, 7, 4}, grid.Steps{1, 10, 1}, nil, grid.ErrBadPeriod},
		{"PeriodTooLarge", grid.CylindricalPeriodic, grid.Shape{4, 4, 4}, grid.Steps{1, 120, 1}, nil, grid.ErrBadPeriod},
		{"NegativeRMin", grid.CylindricalPeriodic, grid.Shape{4, 1, 4}, grid.Steps{1, 360, 1}, []grid.Option{grid.WithRMin(-1)}, grid.ErrBadRMin},
		{"Capacity", grid.Cartesian, grid.Shape{2048, 2048, 1024}, grid.Steps{1, 1, 1}, nil, grid.ErrCapacityExceeded},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := grid.New(tc.system, tc.shape, tc.steps, tc.opts...)
			if !errors.Is(err, tc.err) {
				t.Errorf("New(%v, %v, %v) error = %v; want %v", tc.system, tc.shape, tc.steps, err, tc.err)
			}
		})
	}
}

// TestNew_PeriodDivisors accepts periods that divide 360 exactly or within tolerance.
func TestNew_PeriodDivisors(t *testing.T) {
	for _, tc := range []struct {
		n2   int
		dphi float64
	}{
		{1, 360}, {36, 10}, {4, 22.5}, {3, 40}, {1, 360.0005}, {6, 20.00001},
	} {
		g, err := grid.NewCylindrical(grid.Shape{2, tc.n2, 2}, grid.Steps{1, tc.dphi, 1}, 0)
		require.NoError(t, err, "n2=%d dphi=%g", tc.n2, tc.dphi)
		require.InDelta(t, float64(tc.n2)*tc.dphi, g.Period(), 1e-12)
	}
}

//----------------------------------------------------------------------------//
// VoxelIndex Tests
//----------------------------------------------------------------------------//

// TestVoxelIndex_RowMajor checks the flattening formula, uniqueness and the -1 sentinel.
func TestVoxelIndex_RowMajor(t *testing.T) {
	g, err := grid.NewCartesian(grid.Shape{3, 4, 5}, grid.Steps{1, 1, 1})
	require.NoError(t, err)
	require.Equal(t, 60, g.VoxelCount())

	seen := make(map[int]bool, g.VoxelCount())
	for i := 0; i < 3; i++ {
		for j := 0; j < 4; j++ {
			for k := 0; k < 5; k++ {
				idx := g.VoxelIndex(i, j, k)
				require.Equal(t, i*4*5+j*5+k, idx)
				require.False(t, seen[idx], "duplicate index %d", idx)
				seen[idx] = true

				ri, rj, rk := g.Indices(idx)
				require.Equal(t, [3]int{i, j, k}, [3]int{ri, rj, rk})
			}
		}
	}

	outside := [][3]int{{-1, 0, 0}, {3, 0, 0}, {0, -1, 0}, {0, 4, 0}, {0, 0, -1}, {0, 0, 5}}
	for _, c := range outside {
		require.Equal(t, -1, g.VoxelIndex(c[0], c[1], c[2]), "VoxelIndex%v", c)
	}
	i, j, k := g.Indices(60)
	require.Equal(t, [3]int{-1, -1, -1}, [3]int{i, j, k})
}

//----------------------------------------------------------------------------//
// Locate Tests
//----------------------------------------------------------------------------//

// TestLocate_Cartesian maps points to cells using floor(x/step).
func TestLocate_Cartesian(t *testing.T) {
	g, err := grid.NewCartesian(grid.Shape{2, 3, 4}, grid.Steps{0.5, 1, 2})
	require.NoError(t, err)

	require.Equal(t, g.VoxelIndex(0, 0, 0), g.Locate(grid.Point{X: 0.1, Y: 0.1, Z: 0.1}))
	require.Equal(t, g.VoxelIndex(1, 2, 3), g.Locate(grid.Point{X: 0.9, Y: 2.5, Z: 7.9}))
	require.Equal(t, -1, g.Locate(grid.Point{X: -0.01, Y: 0.5, Z: 0.5})) // below origin
	require.Equal(t, -1, g.Locate(grid.Point{X: 1.0, Y: 0.5, Z: 0.5}))   // past last cell
	require.Equal(t, -1, g.Locate(grid.Point{X: math.NaN()}))            // undefined input
	require.Equal(t, -1, g.Locate(grid.Point{X: 1e300}))                 // huge input

	c := g.CellCenter(1, 2, 3)
	require.Equal(t, g.VoxelIndex(1, 2, 3), g.Locate(c))
}

// TestLocate_Cylindrical checks radial offset, angle wrapping and periodic reduction.
func TestLocate_Cylindrical(t *testing.T) {
	// 4 radial cells of 1 m starting at r=2, 4 azimuthal cells of 30° (period 120°), 2 z cells.
	g, err := grid.NewCylindrical(grid.Shape{4, 4, 2}, grid.Steps{1, 30, 1}, 2)
	require.NoError(t, err)

	at := func(r, phiDeg, z float64) grid.Point {
		rad := phiDeg * math.Pi / 180
		return grid.Point{X: r * math.Cos(rad), Y: r * math.Sin(rad), Z: z}
	}

	require.Equal(t, g.VoxelIndex(0, 0, 0), g.Locate(at(2.5, 10, 0.5)))
	require.Equal(t, g.VoxelIndex(3, 1, 1), g.Locate(at(5.9, 45, 1.5)))
	require.Equal(t, g.VoxelIndex(1, 1, 0), g.Locate(at(3.5, 45+120, 0.5)))  // reduced by the period
	require.Equal(t, g.VoxelIndex(1, 3, 0), g.Locate(at(3.5, -15, 0.5)))     // 345° → 105° → j=3
	require.Equal(t, -1, g.Locate(at(1.5, 10, 0.5)))                         // inside rmin
	require.Equal(t, -1, g.Locate(at(6.5, 10, 0.5)))                         // beyond outer radius

	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			require.Equal(t, g.VoxelIndex(i, j, 1), g.Locate(g.CellCenter(i, j, 1)))
		}
	}
}

// TestLocate_Axisymmetric ensures n2 == 1 ignores the azimuthal angle entirely.
func TestLocate_Axisymmetric(t *testing.T) {
	g, err := grid.NewCylindrical(grid.Shape{5, 1, 3}, grid.Steps{0.2, 360, 0.5}, 0.1)
	require.NoError(t, err)

	want := g.VoxelIndex(2, 0, 1)
	for deg := -360.0; deg <= 720; deg += 7.5 {
		rad := deg * math.Pi / 180
		p := grid.Point{X: 0.6 * math.Cos(rad), Y: 0.6 * math.Sin(rad), Z: 0.75}
		require.Equal(t, want, g.Locate(p), "angle %g", deg)
	}
}

// TestMinStep reports the finest resolvable length for each system.
func TestMinStep(t *testing.T) {
	c, err := grid.NewCartesian(grid.Shape{1, 1, 1}, grid.Steps{0.3, 0.2, 0.5})
	require.NoError(t, err)
	require.Equal(t, 0.2, c.MinStep())

	axi, err := grid.NewCylindrical(grid.Shape{2, 1, 2}, grid.Steps{0.5, 360, 0.4}, 0)
	require.NoError(t, err)
	require.Equal(t, 0.4, axi.MinStep()) // azimuth ignored when axisymmetric

	cyl, err := grid.NewCylindrical(grid.Shape{4, 360, 1}, grid.Steps{1, 1, 1}, 0)
	require.NoError(t, err)
	require.InDelta(t, 0.5*math.Pi/180, cyl.MinStep(), 1e-12) // 1° arc at the inner ring centre r=0.5

	offset, err := grid.NewCylindrical(grid.Shape{3, 4, 2}, grid.Steps{2, 10, 3}, 1)
	require.NoError(t, err)
	require.InDelta(t, math.Pi/9, offset.MinStep(), 1e-12) // 10° arc at r=2, not at the outer r=7
}

// TestParseSystem round-trips the system names.
func TestParseSystem(t *testing.T) {
	for _, s := range []grid.System{grid.Cartesian, grid.CylindricalPeriodic} {
		got, err := grid.ParseSystem(s.String())
		require.NoError(t, err)
		require.Equal(t, s, got)
	}
	_, err := grid.ParseSystem("polar")
	require.ErrorIs(t, err, grid.ErrUnknownSystem)
}
