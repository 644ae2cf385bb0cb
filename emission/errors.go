package emission

import "errors"

var (
	// ErrNilInput indicates a nil grid or source.
	ErrNilInput = errors.New("emission: nil grid or source")

	// ErrShapeMismatch indicates emission data whose voxel or slot count does
	// not match the grid or the wavelength axis.
	ErrShapeMismatch = errors.New("emission: data shape does not match grid or wavelength axis")

	// ErrWavelengthAxis indicates a wavelength axis with duplicate, negative or
	// non-finite values.
	ErrWavelengthAxis = errors.New("emission: invalid wavelength axis")

	// ErrNegativeEmission indicates a negative or non-finite emission value.
	ErrNegativeEmission = errors.New("emission: emission values must be finite and >= 0")

	// ErrSlotMapping indicates a slot mapping with the wrong length or a
	// target outside the wavelength axis.
	ErrSlotMapping = errors.New("emission: invalid slot mapping")
)
