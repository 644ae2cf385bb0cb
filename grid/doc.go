// Package grid maps points in an emitter's local frame onto the voxels of a
// regular 3D grid.
//
// What:
//
//   - Grid wraps an immutable (shape, steps, coordinate system) triple.
//   - Cartesian grids index (x, y, z) directly: i = floor(x/s1), and so on.
//   - CylindricalPeriodic grids index (r, φ, z): r = sqrt(x²+y²) offset by RMin,
//     φ = atan2(y, x) in degrees, reduced modulo the period n2·s2, which must
//     divide 360. A single azimuthal cell (n2 == 1) is the axisymmetric fast path.
//   - Voxels are flattened row-major: i·n2·n3 + j·n3 + k.
//
// Boundary policy:
//
//	VoxelIndex returns -1 for any (i, j, k) outside the shape; that sentinel
//	means "no emission" to every caller. CellIndices performs no clamping, so a
//	point outside the declared volume yields out-of-range indices which then
//	resolve to -1. Callers remain responsible for feeding points in the local
//	frame; inconsistent steps can alias a point into the wrong cell.
//
// Capacity:
//
//	n1·n2·n3 must not exceed math.MaxInt32 (ErrCapacityExceeded). Larger
//	volumes must be partitioned across several emitters.
//
// Complexity:
//
//   - New: O(1).
//   - VoxelIndex, CellIndices, Locate: O(1), allocation-free.
package grid
