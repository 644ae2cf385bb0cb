// SPDX-License-Identifier: MIT

// Package matrix - Dense storage (row-major) & safe accessors.
//
// Purpose:
//   - Provide a cache-friendly row-major buffer with the explicit index formula i*cols + j.
//   - Guarantee safety at the public surface: At/Set return errors instead of panicking.
//   - Expose Row(i) as a no-copy slice for hot loops that already validated i.
//
// Complexity quicksheet:
//   - NewDense: O(r*c) zero-init; At/Set: O(1); Row: O(1); Clone: O(r*c).
package matrix

import (
	"fmt"
	"strings"
)

// ---------- error context tags ----------

const (
	ctxAt    = "At"    // method tag used in error wrappers
	ctxSet   = "Set"   // method tag used in error wrappers
	ctxToCSR = "ToCSR" // method tag used in error wrappers
)

// ---------- Formatting literals ----------
const (
	_fmtRowOpen  = "["
	_fmtRowClose = "]\n"
	_fmtSep      = ", "
)

// denseErrorf wraps an error with a uniform Dense context and callsite indices.
func denseErrorf(method string, row, col int, err error) error {
	return fmt.Errorf("Dense.%s(%d,%d): %w", method, row, col, err)
}

// Dense is a concrete row-major matrix.
//   - r,c hold dimensions (rows, cols).
//   - data is a flat buffer of length r*c in row-major order (offset = i*c + j).
//   - opts carries the numeric policy enforced by Set.
type Dense struct {
	r, c int       // row and column counts (>0)
	data []float64 // contiguous row-major storage (len == r*c)
	opts Options   // numeric guard for Set
}

var _ fmt.Stringer = (*Dense)(nil)

// NewDense creates an r×c zero matrix using row-major storage.
//
// Implementation:
//   - Stage 1: validate rows>0 && cols>0; else ErrInvalidDimensions.
//   - Stage 2: allocate zero-filled buffer and resolve the numeric policy.
//
// Errors:
//   - ErrInvalidDimensions (shape contract violation).
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func NewDense(rows, cols int, opts ...Option) (*Dense, error) {
	// Validate shape.
	if rows <= 0 || cols <= 0 {
		return nil, ErrInvalidDimensions
	}

	return &Dense{
		r:    rows,
		c:    cols,
		data: make([]float64, rows*cols), // make() zero-fills deterministically
		opts: gatherOptions(opts...),
	}, nil
}

// NewDenseFrom copies a rectangular [][]float64 into a new Dense.
// Every value passes through the numeric policy.
//
// Errors:
//   - ErrInvalidDimensions for empty input.
//   - ErrDimensionMismatch for ragged rows.
//   - ErrNaNInf / ErrNegative under the active policy.
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func NewDenseFrom(rows [][]float64, opts ...Option) (*Dense, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, ErrInvalidDimensions
	}
	m, err := NewDense(len(rows), len(rows[0]), opts...)
	if err != nil {
		return nil, err
	}
	var i, j int
	for i = 0; i < m.r; i++ {
		if len(rows[i]) != m.c {
			return nil, fmt.Errorf("NewDenseFrom: row %d has %d values, want %d: %w", i, len(rows[i]), m.c, ErrDimensionMismatch)
		}
		for j = 0; j < m.c; j++ {
			if err = m.Set(i, j, rows[i][j]); err != nil {
				return nil, err
			}
		}
	}

	return m, nil
}

// Rows returns the row count.
func (m *Dense) Rows() int { return m.r }

// Cols returns the column count.
func (m *Dense) Cols() int { return m.c }

// Shape packs Rows() and Cols() into a single call for convenience.
func (m *Dense) Shape() (rows, cols int) { return m.r, m.c }

// indexOf computes the row-major offset or returns ErrOutOfRange.
func (m *Dense) indexOf(row, col int) (int, error) {
	if row < 0 || row >= m.r {
		return 0, ErrOutOfRange
	}
	if col < 0 || col >= m.c {
		return 0, ErrOutOfRange
	}

	// Row-major offset: i*c + j.
	return row*m.c + col, nil
}

// At returns the value at (row, col) or ErrOutOfRange.
// Complexity: O(1).
func (m *Dense) At(row, col int) (float64, error) {
	off, err := m.indexOf(row, col)
	if err != nil {
		return 0, denseErrorf(ctxAt, row, col, err) // wrap with context
	}

	return m.data[off], nil
}

// Set stores v at (row, col) or returns an error (bounds or numeric policy).
//
// Errors:
//   - ErrOutOfRange for bounds; ErrNaNInf / ErrNegative for rejected values.
//
// Complexity:
//   - Time O(1), Space O(1).
func (m *Dense) Set(row, col int, v float64) error {
	off, err := m.indexOf(row, col)
	if err != nil {
		return denseErrorf(ctxSet, row, col, err)
	}
	if err = m.opts.checkValue(v); err != nil {
		return denseErrorf(ctxSet, row, col, err)
	}
	m.data[off] = v // direct flat write

	return nil
}

// Row returns a no-copy slice of row i, or nil when i is out of range.
// Writes through the slice bypass the numeric policy; callers treat it as read-only.
// Complexity: O(1).
func (m *Dense) Row(i int) []float64 {
	if i < 0 || i >= m.r {
		return nil
	}

	return m.data[i*m.c : (i+1)*m.c : (i+1)*m.c]
}

// Clone returns a deep copy (new buffer, same numeric policy).
// Complexity: O(r*c).
func (m *Dense) Clone() *Dense {
	cp := make([]float64, len(m.data))
	copy(cp, m.data)

	return &Dense{r: m.r, c: m.c, data: cp, opts: m.opts}
}

// ToCSR compresses the table, skipping exact zeros.
//
// Errors:
//   - ErrCapacityExceeded when the shape or the non-zero count exceeds MaxIndex.
//
// Complexity:
//   - Time O(r*c), Space O(r + nnz).
func (m *Dense) ToCSR() (*CSR, error) {
	if !fitsIndex(m.r) || !fitsIndex(m.c) {
		return nil, fmt.Errorf("Dense.%s: shape %dx%d: %w", ctxToCSR, m.r, m.c, ErrCapacityExceeded)
	}
	indptr := make([]int32, m.r+1)
	nnz := 0
	var i, j int
	for i = 0; i < m.r; i++ {
		for _, v := range m.Row(i) {
			if v != 0 {
				nnz++
			}
		}
		if !fitsIndex(nnz) {
			return nil, fmt.Errorf("Dense.%s: %d stored entries: %w", ctxToCSR, nnz, ErrCapacityExceeded)
		}
		indptr[i+1] = int32(nnz)
	}
	indices := make([]int32, 0, nnz)
	data := make([]float64, 0, nnz)
	for i = 0; i < m.r; i++ {
		row := m.Row(i)
		for j = 0; j < m.c; j++ {
			if row[j] != 0 {
				indices = append(indices, int32(j))
				data = append(data, row[j])
			}
		}
	}

	return &CSR{r: m.r, c: m.c, indptr: indptr, indices: indices, data: data}, nil
}

// String renders rows as lines with comma-separated values.
// Intended for debugging; not for hot paths.
func (m *Dense) String() string {
	var b strings.Builder
	var i, j, base int
	for i = 0; i < m.r; i++ {
		b.WriteString(_fmtRowOpen)
		base = i * m.c
		for j = 0; j < m.c; j++ {
			b.WriteString(fmt.Sprintf("%g", m.data[base+j]))
			if j+1 < m.c {
				b.WriteString(_fmtSep)
			}
		}
		b.WriteString(_fmtRowClose)
	}

	return b.String()
}
