package traverse

import "errors"

var (
	// ErrBadStep indicates a non-positive or non-finite sampling step.
	ErrBadStep = errors.New("traverse: sampling step must be finite and > 0")

	// ErrBadMinSamples indicates fewer than two samples per segment.
	ErrBadMinSamples = errors.New("traverse: minimum sample count must be >= 2")
)
