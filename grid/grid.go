// Package grid provides point→voxel mapping for regular Cartesian and
// periodic cylindrical grids.
package grid

import (
	"fmt"
	"math"
)

const radToDeg = 180 / math.Pi

// New constructs a Grid after validating every parameter.
// Returns ErrBadShape, ErrBadStep, ErrBadRMin, ErrBadPeriod, ErrUnknownSystem
// or ErrCapacityExceeded. Complexity: O(1).
func New(system System, shape Shape, steps Steps, opts ...Option) (*Grid, error) {
	var o options
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	if system != Cartesian && system != CylindricalPeriodic {
		return nil, fmt.Errorf("New(%v): %w", system, ErrUnknownSystem)
	}
	count := 1
	for axis := 0; axis < 3; axis++ {
		if shape[axis] <= 0 {
			return nil, fmt.Errorf("New: axis %d has %d cells: %w", axis+1, shape[axis], ErrBadShape)
		}
		if !(steps[axis] > 0) || math.IsInf(steps[axis], 0) {
			return nil, fmt.Errorf("New: axis %d step %g: %w", axis+1, steps[axis], ErrBadStep)
		}
		// Checked per axis so the product itself never overflows int.
		if shape[axis] > math.MaxInt32 || count > math.MaxInt32/shape[axis] {
			return nil, fmt.Errorf("New: shape %v: %w", shape, ErrCapacityExceeded)
		}
		count *= shape[axis]
	}
	g := &Grid{
		shape:   shape,
		steps:   steps,
		system:  system,
		stride1: shape[1] * shape[2],
		stride2: shape[2],
		count:   count,
	}
	if system == CylindricalPeriodic {
		if !(o.rmin >= 0) || math.IsInf(o.rmin, 0) {
			return nil, fmt.Errorf("New: rmin %g: %w", o.rmin, ErrBadRMin)
		}
		g.rmin = o.rmin
		g.period = float64(shape[1]) * steps[1]
		if !dividesFullTurn(g.period) {
			return nil, fmt.Errorf("New: period %g° (%d × %g°): %w", g.period, shape[1], steps[1], ErrBadPeriod)
		}
	}

	return g, nil
}

// NewCartesian is shorthand for New(Cartesian, shape, steps).
func NewCartesian(shape Shape, steps Steps) (*Grid, error) {
	return New(Cartesian, shape, steps)
}

// NewCylindrical is shorthand for New(CylindricalPeriodic, shape, steps, WithRMin(rmin)).
// steps[1] is the azimuthal cell size in degrees.
func NewCylindrical(shape Shape, steps Steps, rmin float64) (*Grid, error) {
	return New(CylindricalPeriodic, shape, steps, WithRMin(rmin))
}

// dividesFullTurn reports whether period divides 360° within PeriodTolerance.
func dividesFullTurn(period float64) bool {
	if period <= 0 || period > 360+PeriodTolerance {
		return false
	}
	rem := math.Mod(360, period)

	return rem < PeriodTolerance || period-rem < PeriodTolerance
}

// Shape returns (n1, n2, n3).
func (g *Grid) Shape() Shape { return g.shape }

// Steps returns (s1, s2, s3).
func (g *Grid) Steps() Steps { return g.steps }

// System returns the coordinate system tag.
func (g *Grid) System() System { return g.system }

// RMin returns the radial offset (0 for Cartesian grids).
func (g *Grid) RMin() float64 { return g.rmin }

// Period returns n2·s2 in degrees for cylindrical grids, 0 otherwise.
func (g *Grid) Period() float64 { return g.period }

// VoxelCount returns n1·n2·n3.
func (g *Grid) VoxelCount() int { return g.count }

// MinStep returns the smallest cell size along a length axis. For cylindrical
// grids the azimuthal step is converted to arc length at the centre of the
// innermost ring, where azimuthal cells are narrowest.
// Traversal uses it to pick a sampling step that resolves the finest cell.
func (g *Grid) MinStep() float64 {
	if g.system == Cartesian {
		return math.Min(g.steps[0], math.Min(g.steps[1], g.steps[2]))
	}
	m := math.Min(g.steps[0], g.steps[2])
	if g.shape[1] > 1 {
		inner := g.rmin + g.steps[0]/2
		m = math.Min(m, inner*g.steps[1]/radToDeg)
	}

	return m
}

// InBounds reports whether (i, j, k) lies within the grid shape.
// Complexity: O(1).
func (g *Grid) InBounds(i, j, k int) bool {
	return i >= 0 && i < g.shape[0] && j >= 0 && j < g.shape[1] && k >= 0 && k < g.shape[2]
}

// VoxelIndex flattens (i, j, k) row-major: i·n2·n3 + j·n3 + k.
// Returns -1 if any index is outside [0, shape).
// Complexity: O(1).
func (g *Grid) VoxelIndex(i, j, k int) int {
	if !g.InBounds(i, j, k) {
		return -1
	}

	return i*g.stride1 + j*g.stride2 + k
}

// Indices converts a voxel index back to (i, j, k). The input must be in
// [0, VoxelCount()); other values return (-1, -1, -1).
func (g *Grid) Indices(voxel int) (i, j, k int) {
	if voxel < 0 || voxel >= g.count {
		return -1, -1, -1
	}
	i = voxel / g.stride1
	rem := voxel - i*g.stride1
	j = rem / g.stride2

	return i, j, rem - j*g.stride2
}

// CellIndices maps a local-frame point to raw cell indices without bounds checks.
// Non-finite or huge coordinates map to -1 on the offending axis so the
// float→int conversion is always defined.
func (g *Grid) CellIndices(p Point) (i, j, k int) {
	if g.system == Cartesian {
		return cellOf(p.X, 0, g.steps[0]), cellOf(p.Y, 0, g.steps[1]), cellOf(p.Z, 0, g.steps[2])
	}

	r := math.Sqrt(p.X*p.X + p.Y*p.Y)
	i = cellOf(r, g.rmin, g.steps[0])
	if g.shape[1] == 1 {
		j = 0 // axisymmetric: angle is irrelevant
	} else {
		phi := math.Atan2(p.Y, p.X) * radToDeg
		if phi < 0 {
			phi += 360
		}
		j = cellOf(math.Mod(phi, g.period), 0, g.steps[1])
	}
	k = cellOf(p.Z, 0, g.steps[2])

	return i, j, k
}

// Locate returns the voxel index containing p, or -1 outside the grid.
// Complexity: O(1).
func (g *Grid) Locate(p Point) int {
	i, j, k := g.CellIndices(p)

	return g.VoxelIndex(i, j, k)
}

// CellCenter returns the local-frame centre of cell (i, j, k).
// For cylindrical grids the centre lies at azimuth (j+½)·s2 within the first period.
func (g *Grid) CellCenter(i, j, k int) Point {
	if g.system == Cartesian {
		return Point{
			X: (float64(i) + 0.5) * g.steps[0],
			Y: (float64(j) + 0.5) * g.steps[1],
			Z: (float64(k) + 0.5) * g.steps[2],
		}
	}
	r := g.rmin + (float64(i)+0.5)*g.steps[0]
	phi := (float64(j) + 0.5) * g.steps[1] / radToDeg

	return Point{
		X: r * math.Cos(phi),
		Y: r * math.Sin(phi),
		Z: (float64(k) + 0.5) * g.steps[2],
	}
}

// cellOf computes floor((v - origin)/step), mapping anything outside the int32
// range (including NaN) to -1.
func cellOf(v, origin, step float64) int {
	c := math.Floor((v - origin) / step)
	if !(c >= 0 && c <= math.MaxInt32) {
		return -1
	}

	return int(c)
}
