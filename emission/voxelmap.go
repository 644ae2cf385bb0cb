package emission

import (
	"fmt"

	"github.com/katalvlaran/voxemit/grid"
	"github.com/katalvlaran/voxemit/matrix"
)

// Empty marks a voxel with no table row.
const Empty = -1

// VoxelMap maps every voxel to a row of a dense emission table.
// Several voxels may share one row.
type VoxelMap struct {
	shape grid.Shape
	index []int32
	table *matrix.Dense
}

// NewVoxelMap validates a nested (i,j,k) → row map against a rows×slots table.
// Rows must be Empty or in [0, len(table)). Table values must be finite and
// non-negative.
func NewVoxelMap(index [][][]int, table [][]float64) (*VoxelMap, error) {
	n1 := len(index)
	if n1 == 0 || len(index[0]) == 0 || len(index[0][0]) == 0 {
		return nil, fmt.Errorf("NewVoxelMap: empty map: %w", ErrShapeMismatch)
	}
	n2, n3 := len(index[0]), len(index[0][0])
	flat := make([]int32, 0, n1*n2*n3)
	for i := range index {
		if len(index[i]) != n2 {
			return nil, fmt.Errorf("NewVoxelMap: [%d] has %d rows, want %d: %w", i, len(index[i]), n2, ErrShapeMismatch)
		}
		for j := range index[i] {
			if len(index[i][j]) != n3 {
				return nil, fmt.Errorf("NewVoxelMap: [%d][%d] has %d cells, want %d: %w", i, j, len(index[i][j]), n3, ErrShapeMismatch)
			}
			for _, row := range index[i][j] {
				if row < Empty || row > matrix.MaxIndex {
					return nil, fmt.Errorf("NewVoxelMap: row %d: %w", row, ErrShapeMismatch)
				}
				flat = append(flat, int32(row))
			}
		}
	}

	return NewVoxelMapFlat(grid.Shape{n1, n2, n3}, flat, table)
}

// NewVoxelMapFlat is NewVoxelMap for a map already flattened row-major.
// The index slice is retained.
func NewVoxelMapFlat(shape grid.Shape, index []int32, table [][]float64) (*VoxelMap, error) {
	if shape[0] <= 0 || shape[1] <= 0 || shape[2] <= 0 || len(index) != shape[0]*shape[1]*shape[2] {
		return nil, fmt.Errorf("NewVoxelMapFlat: %d entries for shape %v: %w", len(index), shape, ErrShapeMismatch)
	}
	t, err := matrix.NewDenseFrom(table, matrix.WithNonNegative())
	if err != nil {
		return nil, fmt.Errorf("NewVoxelMapFlat: table: %w: %w", classify(err), err)
	}
	for voxel, row := range index {
		if row < Empty || int(row) >= t.Rows() {
			return nil, fmt.Errorf("NewVoxelMapFlat: voxel %d → row %d outside %d table rows: %w", voxel, row, t.Rows(), ErrShapeMismatch)
		}
	}

	return &VoxelMap{shape: shape, index: index, table: t}, nil
}

// Shape returns (n1, n2, n3).
func (m *VoxelMap) Shape() grid.Shape { return m.shape }

// Voxels returns n1·n2·n3.
func (m *VoxelMap) Voxels() int { return len(m.index) }

// Slots returns the table column count.
func (m *VoxelMap) Slots() int { return m.table.Cols() }

// Rows returns the table row count.
func (m *VoxelMap) Rows() int { return m.table.Rows() }

// Row returns the table row of voxel, or Empty.
func (m *VoxelMap) Row(voxel int) int {
	if voxel < 0 || voxel >= len(m.index) {
		return Empty
	}

	return int(m.index[voxel])
}

// Table returns the emission table. Callers must not modify it.
func (m *VoxelMap) Table() *matrix.Dense { return m.table }

// Each visits every mapped voxel's non-zero table values.
func (m *VoxelMap) Each(fn func(voxel, slot int, v float64) error) error {
	for voxel, row := range m.index {
		if row == Empty {
			continue
		}
		for slot, v := range m.table.Row(int(row)) {
			if v == 0 {
				continue
			}
			if err := fn(voxel, slot, v); err != nil {
				return err
			}
		}
	}

	return nil
}
