package repository

import "errors"

var (
	// ErrNotFound indicates a missing group, emitter or cache file.
	ErrNotFound = errors.New("repository: not found")

	// ErrInvalidName indicates a group or emitter name that is empty or
	// contains path elements.
	ErrInvalidName = errors.New("repository: invalid name")

	// ErrInvalidDefinition indicates a definition whose arrays are inconsistent.
	ErrInvalidDefinition = errors.New("repository: invalid definition")

	// ErrCorrupt indicates a stored file that cannot be decoded.
	ErrCorrupt = errors.New("repository: corrupt file")
)
