// Package grid defines core types, options, and constants for voxel grids.
package grid

import "fmt"

// System selects how local-frame points map onto grid axes.
type System int

const (
	// Cartesian uses (x, y, z) axes directly.
	Cartesian System = iota
	// CylindricalPeriodic uses (r, φ, z) with φ in degrees, periodic in n2·s2.
	CylindricalPeriodic
)

// String implements fmt.Stringer.
func (s System) String() string {
	switch s {
	case Cartesian:
		return "cartesian"
	case CylindricalPeriodic:
		return "cylindrical"
	default:
		return fmt.Sprintf("System(%d)", int(s))
	}
}

// ParseSystem converts "cartesian" / "cylindrical" back into a System.
func ParseSystem(name string) (System, error) {
	switch name {
	case "cartesian":
		return Cartesian, nil
	case "cylindrical":
		return CylindricalPeriodic, nil
	}

	return 0, fmt.Errorf("ParseSystem(%q): %w", name, ErrUnknownSystem)
}

// Shape is the number of cells along each axis (n1, n2, n3).
type Shape [3]int

// Steps is the cell size along each axis (s1, s2, s3).
// For CylindricalPeriodic grids s2 is in degrees.
type Steps [3]float64

// Point is a location in the emitter's local frame.
type Point struct {
	X, Y, Z float64
}

// Add returns p + q.
func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y, p.Z + q.Z} }

// Sub returns p - q.
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y, p.Z - q.Z} }

// Scale returns p·s.
func (p Point) Scale(s float64) Point { return Point{p.X * s, p.Y * s, p.Z * s} }

// PeriodTolerance is the slack, in degrees, allowed when checking that the
// cylindrical period divides 360.
const PeriodTolerance = 1e-3

// Option configures optional grid parameters.
type Option func(*options)

type options struct {
	rmin float64
}

// WithRMin offsets the radial axis of a cylindrical grid: i = floor((r - rmin)/dr).
// Ignored by Cartesian grids.
func WithRMin(rmin float64) Option {
	return func(o *options) { o.rmin = rmin }
}

// Grid is an immutable regular voxel grid.
// stride1 = n2·n3 and stride2 = n3 are precomputed for VoxelIndex.
type Grid struct {
	shape   Shape
	steps   Steps
	system  System
	rmin    float64
	period  float64 // n2·s2 in degrees (cylindrical only)
	stride1 int
	stride2 int
	count   int
}
