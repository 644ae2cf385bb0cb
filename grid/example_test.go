// File: grid/example_test.go
package grid_test

import (
	"fmt"

	"github.com/katalvlaran/voxemit/grid"
)

////////////////////////////////////////////////////////////////////////////////
// Example: Locate on a periodic cylindrical grid
////////////////////////////////////////////////////////////////////////////////

// ExampleGrid_Locate demonstrates periodic azimuthal indexing.
// Scenario:
//
//   - 2 radial cells of 0.5 m, 3 azimuthal cells of 30° (period 90°), 1 z cell.
//   - A point at 100° folds back to 10° and lands in azimuthal cell 0.
func ExampleGrid_Locate() {
	g, _ := grid.NewCylindrical(grid.Shape{2, 3, 1}, grid.Steps{0.5, 30, 1}, 0)

	p := grid.Point{X: -0.1302, Y: 0.7386, Z: 0.5} // r ≈ 0.75, φ ≈ 100°
	v := g.Locate(p)
	i, j, k := g.Indices(v)
	fmt.Println("voxel:", v, "cell:", i, j, k)

	// Output:
	// voxel: 3 cell: 1 0 0
}
