// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//  - Single source of truth for structural checks on matrices and raw CSR parts.
//  - Return sentinel errors tagged with the validator name so call sites can wrap uniformly.
//
// Determinism & Performance:
//  - All checks are pure and allocate nothing.

package matrix

import "fmt"

// validatorErrorf wraps an underlying error with the given validator tag.
func validatorErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// ValidateNotNil ensures the matrix reference is non-nil.
// Handles typed nils (*CSR)(nil) and (*Dense)(nil) as well as a nil interface.
func ValidateNotNil(m Matrix) error {
	switch v := m.(type) {
	case nil:
		return validatorErrorf("ValidateNotNil", ErrNilMatrix)
	case *CSR:
		if v == nil {
			return validatorErrorf("ValidateNotNil", ErrNilMatrix)
		}
	case *Dense:
		if v == nil {
			return validatorErrorf("ValidateNotNil", ErrNilMatrix)
		}
	}

	return nil
}

// ValidateShape ensures m has exactly rows×cols. A negative expectation skips that axis.
func ValidateShape(m Matrix, rows, cols int) error {
	if err := ValidateNotNil(m); err != nil {
		return err
	}
	if rows >= 0 && m.Rows() != rows {
		return validatorErrorf(fmt.Sprintf("ValidateShape: Rows %d != %d", m.Rows(), rows), ErrDimensionMismatch)
	}
	if cols >= 0 && m.Cols() != cols {
		return validatorErrorf(fmt.Sprintf("ValidateShape: Cols %d != %d", m.Cols(), cols), ErrDimensionMismatch)
	}

	return nil
}

// ValidateVecLen ensures the vector length matches the required size n.
func ValidateVecLen(x []float64, n int) error {
	if x == nil {
		return validatorErrorf("ValidateVecLen", ErrNilMatrix)
	}
	if len(x) != n {
		return validatorErrorf("ValidateVecLen", ErrDimensionMismatch)
	}

	return nil
}

// ValidateCSRParts checks raw compressed arrays before they are trusted.
//
// Checks, in order:
//   - shape non-negative and within MaxIndex;
//   - len(indptr) == rows+1, indptr[0] == 0, indptr non-decreasing;
//   - indptr[rows] == len(indices) == len(data), within MaxIndex;
//   - column indices in [0, cols) and strictly ascending inside each row.
//
// Complexity: O(rows + nnz).
func ValidateCSRParts(rows, cols int, indptr, indices []int32, data []float64) error {
	const tag = "ValidateCSRParts"
	if rows < 0 || cols < 0 {
		return validatorErrorf(tag, ErrInvalidDimensions)
	}
	if !fitsIndex(rows) || !fitsIndex(cols) {
		return validatorErrorf(tag, ErrCapacityExceeded)
	}
	if !fitsIndex(len(data)) || !fitsIndex(len(indices)) {
		return validatorErrorf(tag, ErrCapacityExceeded)
	}
	if len(indptr) != rows+1 {
		return validatorErrorf(fmt.Sprintf("%s: indptr length %d, want %d", tag, len(indptr), rows+1), ErrMalformed)
	}
	if len(indices) != len(data) {
		return validatorErrorf(fmt.Sprintf("%s: %d indices vs %d values", tag, len(indices), len(data)), ErrMalformed)
	}
	if indptr[0] != 0 || int(indptr[rows]) != len(data) {
		return validatorErrorf(tag+": indptr bounds", ErrMalformed)
	}
	var i int
	var p int32
	for i = 0; i < rows; i++ {
		lo, hi := indptr[i], indptr[i+1]
		if hi < lo {
			return validatorErrorf(fmt.Sprintf("%s: indptr decreases at row %d", tag, i), ErrMalformed)
		}
		for p = lo; p < hi; p++ {
			j := indices[p]
			if j < 0 || int(j) >= cols {
				return validatorErrorf(fmt.Sprintf("%s: column %d in row %d", tag, j, i), ErrMalformed)
			}
			if p > lo && indices[p-1] >= j {
				return validatorErrorf(fmt.Sprintf("%s: unsorted columns in row %d", tag, i), ErrMalformed)
			}
		}
	}

	return nil
}
