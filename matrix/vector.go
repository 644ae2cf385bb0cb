// SPDX-License-Identifier: MIT

package matrix

// SparseVector is a compact (index → value) column of logical length N.
// Index is strictly ascending; Data is aligned with Index.
type SparseVector struct {
	N     int
	Index []int32
	Data  []float64
}

// NNZ returns the number of stored entries.
func (v SparseVector) NNZ() int { return len(v.Data) }

// Dense expands the vector into a []float64 of length N.
func (v SparseVector) Dense() []float64 {
	out := make([]float64, v.N)
	for p, i := range v.Index {
		out[i] = v.Data[p]
	}

	return out
}

// At returns the value at i (zero when absent or out of range).
// Complexity: O(log nnz).
func (v SparseVector) At(i int) float64 {
	lo, hi := 0, len(v.Index)
	for lo < hi {
		mid := int(uint(lo+hi) >> 1)
		if int(v.Index[mid]) < i {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	if lo < len(v.Index) && int(v.Index[lo]) == i {
		return v.Data[lo]
	}

	return 0
}
