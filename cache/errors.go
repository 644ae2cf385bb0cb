package cache

import "errors"

var (
	// ErrBadKey indicates a window with non-positive bins or an invalid range.
	ErrBadKey = errors.New("cache: key must satisfy 0 <= min < max < +Inf and bins > 0")

	// ErrOverrideMismatch indicates an override matrix whose row count or
	// index width does not fit the cache source.
	ErrOverrideMismatch = errors.New("cache: override matrix does not match the emission source")

	// ErrNotBuilt indicates a read from a cache that has never been built.
	ErrNotBuilt = errors.New("cache: not built")
)
