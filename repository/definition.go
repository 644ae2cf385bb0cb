package repository

import (
	"fmt"

	"github.com/katalvlaran/voxemit/emission"
	"github.com/katalvlaran/voxemit/emitter"
	"github.com/katalvlaran/voxemit/grid"
	"github.com/katalvlaran/voxemit/matrix"
	"github.com/katalvlaran/voxemit/spectral"
)

// Definition is the stored form of one emitter. Exactly one emission
// encoding must be present: Dense, Sparse, or VoxelMap with Table.
type Definition struct {
	System      string     `json:"system"` // "cartesian" or "cylindrical"
	Shape       grid.Shape `json:"shape"`
	Steps       grid.Steps `json:"steps"`
	RMin        float64    `json:"rmin,omitempty"`
	Wavelengths []float64  `json:"wavelengths"`
	Model       string     `json:"model"` // "continuous" or "discrete"
	Extrapolate bool       `json:"extrapolate,omitempty"`

	// Dense is [i][j][k][slot] flattened row-major.
	Dense []float64 `json:"dense,omitempty"`
	// Sparse is a voxels×slots CSR matrix.
	Sparse *CSR `json:"sparse,omitempty"`
	// VoxelMap maps each voxel (row-major) to a Table row, or -1.
	VoxelMap []int32    `json:"voxel_map,omitempty"`
	Table    [][]float64 `json:"table,omitempty"`
	// Legacy builds the voxel-map encoding as a legacy emitter.
	Legacy bool `json:"legacy,omitempty"`
}

// CSR is the stored form of a compressed sparse row matrix.
type CSR struct {
	Rows    int       `json:"rows"`
	Cols    int       `json:"cols"`
	Indptr  []int32   `json:"indptr"`
	Indices []int32   `json:"indices"`
	Data    []float64 `json:"data"`
}

// FromMatrix converts m into its stored form.
func FromMatrix(m *matrix.CSR) *CSR {
	indptr, indices, data := m.Parts()

	return &CSR{Rows: m.Rows(), Cols: m.Cols(), Indptr: indptr, Indices: indices, Data: data}
}

// Matrix validates and converts the stored form.
func (c *CSR) Matrix() (*matrix.CSR, error) {
	return matrix.NewCSR(c.Rows, c.Cols, c.Indptr, c.Indices, c.Data, matrix.WithNonNegative())
}

// Validate checks that every array agrees with the grid and the wavelength
// axis. It does not build the emitter.
func (d *Definition) Validate() error {
	if _, err := grid.ParseSystem(d.System); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDefinition, err)
	}
	if _, err := spectral.ParseModel(d.Model); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDefinition, err)
	}
	g, err := d.Grid()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDefinition, err)
	}
	voxels, slots := g.VoxelCount(), len(d.Wavelengths)

	encodings := 0
	if d.Dense != nil {
		encodings++
		if len(d.Dense) != voxels*slots {
			return fmt.Errorf("%w: dense has %d values, want %d×%d", ErrInvalidDefinition, len(d.Dense), voxels, slots)
		}
	}
	if d.Sparse != nil {
		encodings++
		if d.Sparse.Rows != voxels || d.Sparse.Cols != slots {
			return fmt.Errorf("%w: sparse is %dx%d, want %dx%d", ErrInvalidDefinition, d.Sparse.Rows, d.Sparse.Cols, voxels, slots)
		}
		if err := matrix.ValidateCSRParts(d.Sparse.Rows, d.Sparse.Cols, d.Sparse.Indptr, d.Sparse.Indices, d.Sparse.Data); err != nil {
			return fmt.Errorf("%w: sparse: %w", ErrInvalidDefinition, err)
		}
	}
	if d.VoxelMap != nil || d.Table != nil {
		encodings++
		if len(d.Table) == 0 {
			return fmt.Errorf("%w: voxel map without table rows", ErrInvalidDefinition)
		}
		if len(d.VoxelMap) != voxels {
			return fmt.Errorf("%w: voxel map has %d entries, want %d", ErrInvalidDefinition, len(d.VoxelMap), voxels)
		}
		for r, row := range d.Table {
			if len(row) != slots {
				return fmt.Errorf("%w: table row %d has %d values, want %d", ErrInvalidDefinition, r, len(row), slots)
			}
		}
		for v, r := range d.VoxelMap {
			if r < emission.Empty || int(r) >= len(d.Table) {
				return fmt.Errorf("%w: voxel %d maps to row %d of %d", ErrInvalidDefinition, v, r, len(d.Table))
			}
		}
	}
	if encodings != 1 {
		return fmt.Errorf("%w: %d emission encodings, want exactly one", ErrInvalidDefinition, encodings)
	}

	return nil
}

// Grid builds the definition's grid.
func (d *Definition) Grid() (*grid.Grid, error) {
	system, err := grid.ParseSystem(d.System)
	if err != nil {
		return nil, err
	}

	return emitter.NewGrid(system, d.Shape, d.Steps, d.RMin)
}

// Source returns the emission source of the definition.
func (d *Definition) Source() (emission.Source, error) {
	switch {
	case d.Dense != nil:
		return emission.NewDense4DFlat(d.Shape, len(d.Wavelengths), d.Dense)
	case d.Sparse != nil:
		m, err := d.Sparse.Matrix()
		if err != nil {
			return nil, err
		}
		return emission.NewSparse(m)
	default:
		return emission.NewVoxelMapFlat(d.Shape, d.VoxelMap, d.Table)
	}
}

// Build validates the definition and constructs its emitter. opts are applied
// after the stored model and extrapolation settings.
func (d *Definition) Build(opts ...emitter.Option) (*emitter.Emitter, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	g, err := d.Grid()
	if err != nil {
		return nil, err
	}
	model, err := spectral.ParseModel(d.Model)
	if err != nil {
		return nil, err
	}
	src, err := d.Source()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDefinition, err)
	}
	all := append([]emitter.Option{emitter.WithModel(model), emitter.WithExtrapolation(d.Extrapolate)}, opts...)
	if vm, ok := src.(*emission.VoxelMap); ok && d.Legacy {
		return emitter.NewLegacy(g, d.Wavelengths, vm, all...)
	}

	return emitter.New(g, d.Wavelengths, src, all...)
}
