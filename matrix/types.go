// SPDX-License-Identifier: MIT

// Package matrix: domain types shared by the dense and sparse layouts.
package matrix

import "math"

// MaxIndex is the largest row count, column count or stored-entry count a
// matrix may hold. Indices are stored as int32.
const MaxIndex = math.MaxInt32

// Matrix is the read-only surface shared by Dense and CSR.
//
// Complexity notes: Rows/Cols are O(1); At is O(1) for Dense and O(log k) for CSR.
type Matrix interface {
	// Rows returns the number of rows in the matrix.
	Rows() int

	// Cols returns the number of columns in the matrix.
	Cols() int

	// At retrieves the element at position (i, j).
	// Returns ErrOutOfRange if i or j is outside the matrix.
	At(i, j int) (float64, error)
}

// Compile-time assertions.
var (
	_ Matrix = (*Dense)(nil)
	_ Matrix = (*CSR)(nil)
)

// isNonFinite reports whether v is NaN or ±Inf.
func isNonFinite(v float64) bool {
	return math.IsNaN(v) || math.IsInf(v, 0)
}

// fitsIndex reports whether n can be used as a count in the int32 index space.
func fitsIndex(n int) bool {
	return n >= 0 && n <= MaxIndex
}
