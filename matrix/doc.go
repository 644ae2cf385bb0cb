// SPDX-License-Identifier: MIT

// Package matrix provides the storage primitives used by the voxemit engine.
//
// What:
//
//   - Dense: row-major float64 table with safe accessors (At/Set return errors).
//   - CSR: compressed sparse row matrix with int32 indices, immutable once built.
//   - COO: triplet builder that sorts, merges duplicates and emits a CSR.
//   - SparseVector: compact (index → value) column used by spectral integration.
//
// Why int32:
//
//	Emission stores routinely hold hundreds of millions of entries. Keeping the
//	index arrays at 32 bits halves their footprint; the price is a hard capacity
//	limit of MaxIndex rows, columns and stored entries per matrix. Exceeding it
//	returns ErrCapacityExceeded, and the only remedy is to partition the domain
//	across several matrices (several emitters).
//
// Determinism:
//
//   - COO.ToCSR merges duplicates in insertion order, so repeated builds from the
//     same input are bit-identical.
//   - No map iteration in any kernel.
//
// Complexity quicksheet:
//
//   - NewDense: O(r*c); At/Set: O(1).
//   - COO.Add: amortized O(1); COO.ToCSR: O(nnz log k) where k is the longest row.
//   - CSR.At: O(log k); CSR.Row: O(1); CSR.Transpose: O(r + c + nnz).
package matrix
