package spectral

import "errors"

var (
	// ErrBadWindow indicates a window that is empty, inverted or non-finite.
	ErrBadWindow = errors.New("spectral: window must satisfy 0 <= lower < upper < +Inf")

	// ErrWavelengthAxis indicates an axis that is not strictly ascending,
	// contains negative or non-finite values.
	ErrWavelengthAxis = errors.New("spectral: wavelength axis must be finite, non-negative and strictly ascending")

	// ErrShapeMismatch indicates stored data whose slot count differs from the axis length.
	ErrShapeMismatch = errors.New("spectral: slot count does not match the wavelength axis")

	// ErrUnknownModel indicates an unsupported spectral model.
	ErrUnknownModel = errors.New("spectral: unknown model")
)
