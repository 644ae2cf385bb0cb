package emission

import (
	"fmt"

	"github.com/katalvlaran/voxemit/grid"
	"github.com/katalvlaran/voxemit/matrix"
)

// Source is one encoding of per-voxel emission.
type Source interface {
	// Voxels returns the number of voxels covered.
	Voxels() int
	// Slots returns the number of wavelength slices per voxel.
	Slots() int
	// Each calls fn for every non-zero entry, stopping at the first error.
	Each(fn func(voxel, slot int, v float64) error) error
}

// shaped is implemented by sources that know their 3D grid shape.
type shaped interface {
	Shape() grid.Shape
}

// Dense4D is a dense [i][j][k][slot] emission array stored flat.
type Dense4D struct {
	shape grid.Shape
	slots int
	data  []float64
}

// NewDense4D copies a rectangular nested array.
// Returns ErrShapeMismatch for empty or ragged input.
func NewDense4D(nested [][][][]float64) (*Dense4D, error) {
	n1 := len(nested)
	if n1 == 0 || len(nested[0]) == 0 || len(nested[0][0]) == 0 {
		return nil, fmt.Errorf("NewDense4D: empty array: %w", ErrShapeMismatch)
	}
	n2, n3, slots := len(nested[0]), len(nested[0][0]), len(nested[0][0][0])
	data := make([]float64, 0, n1*n2*n3*slots)
	for i := range nested {
		if len(nested[i]) != n2 {
			return nil, fmt.Errorf("NewDense4D: [%d] has %d rows, want %d: %w", i, len(nested[i]), n2, ErrShapeMismatch)
		}
		for j := range nested[i] {
			if len(nested[i][j]) != n3 {
				return nil, fmt.Errorf("NewDense4D: [%d][%d] has %d cells, want %d: %w", i, j, len(nested[i][j]), n3, ErrShapeMismatch)
			}
			for k := range nested[i][j] {
				if len(nested[i][j][k]) != slots {
					return nil, fmt.Errorf("NewDense4D: [%d][%d][%d] has %d slots, want %d: %w", i, j, k, len(nested[i][j][k]), slots, ErrShapeMismatch)
				}
				data = append(data, nested[i][j][k]...)
			}
		}
	}

	return &Dense4D{shape: grid.Shape{n1, n2, n3}, slots: slots, data: data}, nil
}

// NewDense4DFlat wraps data laid out as [i][j][k][slot] without copying.
func NewDense4DFlat(shape grid.Shape, slots int, data []float64) (*Dense4D, error) {
	if shape[0] <= 0 || shape[1] <= 0 || shape[2] <= 0 || slots < 0 ||
		len(data) != shape[0]*shape[1]*shape[2]*slots {
		return nil, fmt.Errorf("NewDense4DFlat: %v×%d with %d values: %w", shape, slots, len(data), ErrShapeMismatch)
	}

	return &Dense4D{shape: shape, slots: slots, data: data}, nil
}

// Shape returns (n1, n2, n3).
func (d *Dense4D) Shape() grid.Shape { return d.shape }

// Voxels returns n1·n2·n3.
func (d *Dense4D) Voxels() int { return d.shape[0] * d.shape[1] * d.shape[2] }

// Slots returns the wavelength slice count.
func (d *Dense4D) Slots() int { return d.slots }

// Each visits non-zero values in voxel order.
func (d *Dense4D) Each(fn func(voxel, slot int, v float64) error) error {
	if d.slots == 0 {
		return nil
	}
	for p, v := range d.data {
		if v == 0 {
			continue
		}
		if err := fn(p/d.slots, p%d.slots, v); err != nil {
			return err
		}
	}

	return nil
}

// Sparse adapts a voxels×slots CSR matrix.
type Sparse struct {
	m *matrix.CSR
}

// NewSparse wraps m. Rows are voxels, columns are wavelength slices.
func NewSparse(m *matrix.CSR) (*Sparse, error) {
	if m == nil {
		return nil, fmt.Errorf("NewSparse: %w", ErrNilInput)
	}

	return &Sparse{m: m}, nil
}

// Voxels returns the row count.
func (s *Sparse) Voxels() int { return s.m.Rows() }

// Slots returns the column count.
func (s *Sparse) Slots() int { return s.m.Cols() }

// Each visits stored entries in row order.
func (s *Sparse) Each(fn func(voxel, slot int, v float64) error) error {
	for i := 0; i < s.m.Rows(); i++ {
		cols, vals := s.m.Row(i)
		for p, j := range cols {
			if vals[p] == 0 {
				continue
			}
			if err := fn(i, int(j), vals[p]); err != nil {
				return err
			}
		}
	}

	return nil
}
