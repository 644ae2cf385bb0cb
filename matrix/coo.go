// SPDX-License-Identifier: MIT

// Package matrix - COO (triplet) builder.
//
// Purpose:
//   - Accept entries in any order, then emit a canonical CSR in one pass.
//   - Enforce the numeric policy and the int32 capacity limit at ingestion time,
//     so a too-large input fails before the expensive compression step.
//
// Determinism:
//   - Rows are bucketed with a stable counting sort; columns within a row are
//     sorted stably, and duplicates are summed in insertion order.
package matrix

import (
	"fmt"
	"sort"
)

const ctxAdd = "COO.Add"

// COO accumulates (row, col, value) triplets.
type COO struct {
	r, c int
	rows []int32
	cols []int32
	vals []float64
	opts Options
}

// NewCOO returns an empty builder for a rows×cols matrix.
//
// Errors:
//   - ErrInvalidDimensions for negative shapes.
//   - ErrCapacityExceeded for shapes beyond MaxIndex.
func NewCOO(rows, cols int, opts ...Option) (*COO, error) {
	if rows < 0 || cols < 0 {
		return nil, ErrInvalidDimensions
	}
	if !fitsIndex(rows) || !fitsIndex(cols) {
		return nil, fmt.Errorf("NewCOO(%d,%d): %w", rows, cols, ErrCapacityExceeded)
	}

	return &COO{r: rows, c: cols, opts: gatherOptions(opts...)}, nil
}

// Grow reserves room for n more entries.
func (b *COO) Grow(n int) {
	if n <= 0 {
		return
	}
	b.rows = append(make([]int32, 0, len(b.rows)+n), b.rows...)
	b.cols = append(make([]int32, 0, len(b.cols)+n), b.cols...)
	b.vals = append(make([]float64, 0, len(b.vals)+n), b.vals...)
}

// Len returns the number of buffered triplets (before duplicate merging).
func (b *COO) Len() int { return len(b.vals) }

// Add buffers one entry. Exact zeros are accepted and skipped.
//
// Errors:
//   - ErrOutOfRange for indices outside the shape.
//   - ErrNaNInf / ErrNegative under the active numeric policy.
//   - ErrCapacityExceeded once MaxIndex entries are buffered.
func (b *COO) Add(i, j int, v float64) error {
	if i < 0 || i >= b.r || j < 0 || j >= b.c {
		return fmt.Errorf("%s(%d,%d): %w", ctxAdd, i, j, ErrOutOfRange)
	}
	if err := b.opts.checkValue(v); err != nil {
		return fmt.Errorf("%s(%d,%d): %w", ctxAdd, i, j, err)
	}
	if v == 0 {
		return nil
	}
	if len(b.vals) >= MaxIndex {
		return fmt.Errorf("%s: %w", ctxAdd, ErrCapacityExceeded)
	}
	b.rows = append(b.rows, int32(i))
	b.cols = append(b.cols, int32(j))
	b.vals = append(b.vals, v)

	return nil
}

// ToCSR compresses the buffered triplets.
// Duplicates are summed; sums that cancel to exactly zero are dropped.
// The builder stays usable; ToCSR can be called again after more Adds.
//
// Complexity:
//   - Time O(r + nnz log k), Space O(r + nnz).
func (b *COO) ToCSR() (*CSR, error) {
	n := len(b.vals)
	// Stage 1: stable counting sort by row.
	counts := make([]int32, b.r+1)
	for _, i := range b.rows {
		counts[i+1]++
	}
	for i := 0; i < b.r; i++ {
		counts[i+1] += counts[i]
	}
	next := append([]int32(nil), counts[:b.r]...)
	order := make([]int32, n)
	for p, i := range b.rows {
		order[next[i]] = int32(p)
		next[i]++
	}

	// Stage 2: per row, stable sort by column then merge duplicates.
	indptr := make([]int32, b.r+1)
	indices := make([]int32, 0, n)
	data := make([]float64, 0, n)
	for i := 0; i < b.r; i++ {
		seg := order[counts[i]:counts[i+1]]
		sort.SliceStable(seg, func(x, y int) bool { return b.cols[seg[x]] < b.cols[seg[y]] })
		for q := 0; q < len(seg); {
			j := b.cols[seg[q]]
			sum := 0.0
			for q < len(seg) && b.cols[seg[q]] == j {
				sum += b.vals[seg[q]]
				q++
			}
			if sum != 0 {
				indices = append(indices, j)
				data = append(data, sum)
			}
		}
		indptr[i+1] = int32(len(data))
	}

	return &CSR{r: b.r, c: b.c, indptr: indptr, indices: indices, data: data}, nil
}
