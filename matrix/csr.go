// SPDX-License-Identifier: MIT

// Package matrix - CSR storage (compressed sparse row, int32 indices).
//
// Layout:
//   - indptr has Rows()+1 entries; row i occupies [indptr[i], indptr[i+1]).
//   - indices holds column indices, strictly ascending within each row.
//   - data holds the stored values, aligned with indices.
//
// A CSR is immutable once constructed: every transformation returns a new value,
// so a *CSR may be shared by any number of concurrent readers.
package matrix

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

const (
	ctxNewCSR     = "NewCSR"
	ctxSelectRows = "SelectRows"
)

// CSR is a compressed sparse row matrix.
type CSR struct {
	r, c    int
	indptr  []int32
	indices []int32
	data    []float64
}

// NewCSR validates raw parts and wraps them into a CSR.
// The slices are copied; the caller keeps ownership of its inputs.
//
// Errors:
//   - ErrInvalidDimensions for negative shapes.
//   - ErrCapacityExceeded for shapes beyond MaxIndex.
//   - ErrMalformed for structurally inconsistent parts.
//   - ErrNaNInf / ErrNegative under the active numeric policy.
//
// Complexity:
//   - Time O(r + nnz), Space O(r + nnz).
func NewCSR(rows, cols int, indptr, indices []int32, data []float64, opts ...Option) (*CSR, error) {
	if err := ValidateCSRParts(rows, cols, indptr, indices, data); err != nil {
		return nil, fmt.Errorf("%s: %w", ctxNewCSR, err)
	}
	o := gatherOptions(opts...)
	for n, v := range data {
		if err := o.checkValue(v); err != nil {
			return nil, fmt.Errorf("%s: entry %d: %w", ctxNewCSR, n, err)
		}
	}

	return &CSR{
		r:       rows,
		c:       cols,
		indptr:  append([]int32(nil), indptr...),
		indices: append([]int32(nil), indices...),
		data:    append([]float64(nil), data...),
	}, nil
}

// NewEmptyCSR returns a rows×cols matrix with no stored entries.
func NewEmptyCSR(rows, cols int) (*CSR, error) {
	if rows < 0 || cols < 0 {
		return nil, ErrInvalidDimensions
	}
	if !fitsIndex(rows) || !fitsIndex(cols) {
		return nil, fmt.Errorf("NewEmptyCSR(%d,%d): %w", rows, cols, ErrCapacityExceeded)
	}

	return &CSR{r: rows, c: cols, indptr: make([]int32, rows+1)}, nil
}

// Rows returns the row count.
func (m *CSR) Rows() int { return m.r }

// Cols returns the column count.
func (m *CSR) Cols() int { return m.c }

// NNZ returns the number of stored entries.
func (m *CSR) NNZ() int { return len(m.data) }

// Shape packs Rows() and Cols().
func (m *CSR) Shape() (rows, cols int) { return m.r, m.c }

// RowNNZ returns the number of entries stored in row i (0 when out of range).
func (m *CSR) RowNNZ(i int) int {
	if i < 0 || i >= m.r {
		return 0
	}

	return int(m.indptr[i+1] - m.indptr[i])
}

// Row returns no-copy views of the column indices and values stored in row i.
// Out-of-range rows yield empty slices. Callers must not modify the result.
// Complexity: O(1).
func (m *CSR) Row(i int) ([]int32, []float64) {
	if i < 0 || i >= m.r {
		return nil, nil
	}
	lo, hi := m.indptr[i], m.indptr[i+1]

	return m.indices[lo:hi:hi], m.data[lo:hi:hi]
}

// At returns the value at (i, j); absent entries read as zero.
// Complexity: O(log k) for a row with k entries.
func (m *CSR) At(i, j int) (float64, error) {
	if i < 0 || i >= m.r || j < 0 || j >= m.c {
		return 0, fmt.Errorf("CSR.At(%d,%d): %w", i, j, ErrOutOfRange)
	}
	cols, vals := m.Row(i)
	n := sort.Search(len(cols), func(p int) bool { return int(cols[p]) >= j })
	if n < len(cols) && int(cols[n]) == j {
		return vals[n], nil
	}

	return 0, nil
}

// Transpose returns the c×r transpose, keeping column indices sorted.
// Complexity: O(r + c + nnz) (counting sort on the column index).
func (m *CSR) Transpose() *CSR {
	indptr := make([]int32, m.c+1)
	for _, j := range m.indices {
		indptr[j+1]++
	}
	for j := 0; j < m.c; j++ {
		indptr[j+1] += indptr[j]
	}
	next := append([]int32(nil), indptr[:m.c]...)
	indices := make([]int32, len(m.indices))
	data := make([]float64, len(m.data))
	var i int
	var p int32
	for i = 0; i < m.r; i++ {
		for p = m.indptr[i]; p < m.indptr[i+1]; p++ {
			j := m.indices[p]
			dst := next[j]
			indices[dst] = int32(i)
			data[dst] = m.data[p]
			next[j]++
		}
	}

	return &CSR{r: m.c, c: m.r, indptr: indptr, indices: indices, data: data}
}

// SelectRows builds a new matrix whose row n is row keep[n] of m.
// Duplicates are allowed; the result has len(keep) rows and the same columns.
//
// Errors:
//   - ErrOutOfRange if any index in keep is outside [0, Rows()).
//   - ErrCapacityExceeded if duplicated rows push the entry count beyond MaxIndex.
//
// Complexity:
//   - Time O(len(keep) + nnz'), Space O(len(keep) + nnz').
func (m *CSR) SelectRows(keep []int) (*CSR, error) {
	indptr := make([]int32, len(keep)+1)
	total := 0
	for n, i := range keep {
		if i < 0 || i >= m.r {
			return nil, fmt.Errorf("CSR.%s: row %d: %w", ctxSelectRows, i, ErrOutOfRange)
		}
		total += m.RowNNZ(i)
		if !fitsIndex(total) {
			return nil, fmt.Errorf("CSR.%s: %d stored entries: %w", ctxSelectRows, total, ErrCapacityExceeded)
		}
		indptr[n+1] = int32(total)
	}
	indices := make([]int32, 0, total)
	data := make([]float64, 0, total)
	for _, i := range keep {
		cols, vals := m.Row(i)
		indices = append(indices, cols...)
		data = append(data, vals...)
	}

	return &CSR{r: len(keep), c: m.c, indptr: indptr, indices: indices, data: data}, nil
}

// Parts returns copies of the raw arrays, suitable for serialization.
func (m *CSR) Parts() (indptr, indices []int32, data []float64) {
	return append([]int32(nil), m.indptr...),
		append([]int32(nil), m.indices...),
		append([]float64(nil), m.data...)
}

// Bytes estimates the heap footprint of the stored arrays.
func (m *CSR) Bytes() uint64 {
	return uint64(len(m.indptr))*4 + uint64(len(m.indices))*4 + uint64(len(m.data))*8
}

// Equal reports whether a and b have the same shape and bit-identical entries.
func (m *CSR) Equal(o *CSR) bool {
	if m == nil || o == nil {
		return m == o
	}
	if m.r != o.r || m.c != o.c || len(m.data) != len(o.data) {
		return false
	}
	for i := range m.indptr {
		if m.indptr[i] != o.indptr[i] {
			return false
		}
	}
	for p := range m.data {
		if m.indices[p] != o.indices[p] || math.Float64bits(m.data[p]) != math.Float64bits(o.data[p]) {
			return false
		}
	}

	return true
}

// ToDense expands the matrix. Intended for tests and small tables.
func (m *CSR) ToDense() (*Dense, error) {
	d, err := NewDense(m.r, m.c)
	if err != nil {
		return nil, err
	}
	for i := 0; i < m.r; i++ {
		cols, vals := m.Row(i)
		row := d.Row(i)
		for p, j := range cols {
			row[j] = vals[p]
		}
	}

	return d, nil
}

// String lists stored entries as "(i,j)=v", one row per line.
func (m *CSR) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "CSR %dx%d nnz=%d\n", m.r, m.c, len(m.data))
	for i := 0; i < m.r; i++ {
		cols, vals := m.Row(i)
		for p, j := range cols {
			fmt.Fprintf(&b, "(%d,%d)=%g\n", i, j, vals[p])
		}
	}

	return b.String()
}
