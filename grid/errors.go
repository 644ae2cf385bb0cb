package grid

import "errors"

var (
	// ErrBadShape indicates a non-positive grid dimension.
	ErrBadShape = errors.New("grid: shape dimensions must be > 0")
	// ErrBadStep indicates a non-positive or non-finite cell size.
	ErrBadStep = errors.New("grid: cell sizes must be finite and > 0")
	// ErrBadPeriod indicates a cylindrical period n2·s2 that does not divide 360 degrees.
	ErrBadPeriod = errors.New("grid: azimuthal period must divide 360 degrees")
	// ErrBadRMin indicates a negative or non-finite radial offset.
	ErrBadRMin = errors.New("grid: rmin must be finite and >= 0")
	// ErrUnknownSystem indicates an unsupported coordinate system tag.
	ErrUnknownSystem = errors.New("grid: unknown coordinate system")
	// ErrCapacityExceeded indicates n1·n2·n3 beyond the 32-bit voxel index space.
	ErrCapacityExceeded = errors.New("grid: voxel count exceeds 32-bit index capacity, partition the domain across several emitters")
)
