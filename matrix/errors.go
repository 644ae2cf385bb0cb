// SPDX-License-Identifier: MIT
// Package matrix: sentinel error set.
// All constructors and accessors return these sentinels, wrapped with call-site
// context via fmt.Errorf("ctx: %w", ErrX). Tests match them with errors.Is.

package matrix

import "errors"

var (
	// ErrInvalidDimensions indicates that requested matrix dimensions are non-positive.
	ErrInvalidDimensions = errors.New("matrix: dimensions must be > 0")

	// ErrOutOfRange indicates that an index (row or column) is outside valid bounds.
	ErrOutOfRange = errors.New("matrix: index out of range")

	// ErrDimensionMismatch indicates incompatible dimensions between operands.
	ErrDimensionMismatch = errors.New("matrix: dimension mismatch")

	// ErrNaNInf signals a NaN or ±Inf value where finite values are required.
	ErrNaNInf = errors.New("matrix: NaN or Inf encountered")

	// ErrNegative signals a negative value under the non-negative policy.
	ErrNegative = errors.New("matrix: negative value")

	// ErrNilMatrix indicates that a nil matrix (receiver or argument) was used.
	ErrNilMatrix = errors.New("matrix: nil receiver")

	// ErrMalformed indicates that raw CSR parts are structurally inconsistent
	// (indptr not monotone, column indices unsorted or out of range, length mismatch).
	ErrMalformed = errors.New("matrix: malformed compressed structure")

	// ErrCapacityExceeded indicates that a shape or the number of stored entries
	// does not fit the 32-bit index space. Partition the data across several
	// matrices; no other remedy exists.
	ErrCapacityExceeded = errors.New("matrix: 32-bit index capacity exceeded, partition the domain")
)
