package emission

import (
	"fmt"

	"github.com/katalvlaran/voxemit/grid"
	"github.com/katalvlaran/voxemit/matrix"
	"github.com/katalvlaran/voxemit/spectral"
)

// Table is the legacy dense store: a VoxelMap whose table keeps every
// wavelength slot. Cache rows are table rows, not voxels.
type Table struct {
	grid    *grid.Grid
	profile *spectral.Profile
	vm      *VoxelMap
}

// NewTable validates vm against g and sorts the table columns by wavelength.
// WithoutCompaction and WithSlotMapping do not apply.
func NewTable(g *grid.Grid, wavelengths []float64, vm *VoxelMap, opts ...Option) (*Table, error) {
	o := gatherOptions(opts)
	if g == nil || vm == nil {
		return nil, fmt.Errorf("NewTable: %w", ErrNilInput)
	}
	if err := checkShape(g, vm); err != nil {
		return nil, fmt.Errorf("NewTable: %w", err)
	}
	axis, slotOf, err := route(wavelengths, vm.Slots(), nil)
	if err != nil {
		return nil, fmt.Errorf("NewTable: %w", err)
	}
	profile, err := spectral.NewProfile(axis, o.model, o.extrapolate)
	if err != nil {
		return nil, fmt.Errorf("NewTable: %w", err)
	}

	sorted := vm
	if !identity(slotOf) {
		t, err := matrix.NewDense(vm.Rows(), vm.Slots())
		if err != nil {
			return nil, fmt.Errorf("NewTable: %w", err)
		}
		for r := 0; r < vm.Rows(); r++ {
			src, dst := vm.table.Row(r), t.Row(r)
			for s, v := range src {
				dst[slotOf[s]] = v
			}
		}
		sorted = &VoxelMap{shape: vm.shape, index: vm.index, table: t}
	}

	return &Table{grid: g, profile: profile, vm: sorted}, nil
}

func identity(perm []int) bool {
	for n, p := range perm {
		if n != p {
			return false
		}
	}

	return true
}

// Grid returns the grid the table is defined on.
func (t *Table) Grid() *grid.Grid { return t.grid }

// Profile returns the wavelength axis and spectral model.
func (t *Table) Profile() *spectral.Profile { return t.profile }

// Map returns the voxel map with columns in ascending wavelength order.
func (t *Table) Map() *VoxelMap { return t.vm }

// Rows returns the table row count.
func (t *Table) Rows() int { return t.vm.Rows() }

// Row returns the table row of voxel, or Empty.
func (t *Table) Row(voxel int) int { return t.vm.Row(voxel) }

// Bytes estimates the heap footprint of the map and table.
func (t *Table) Bytes() uint64 {
	return uint64(len(t.vm.index))*4 + uint64(t.vm.Rows()*t.vm.Slots())*8
}

// VoxelSpectrum returns the stored spectrum of one voxel.
func (t *Table) VoxelSpectrum(voxel int) []float64 {
	out := make([]float64, t.vm.Slots())
	if row := t.vm.Row(voxel); row != Empty {
		copy(out, t.vm.table.Row(row))
	}

	return out
}

// IntegrateWindow integrates every table row over [lower, upper).
func (t *Table) IntegrateWindow(lower, upper float64) (matrix.SparseVector, error) {
	return t.profile.IntegrateDense(t.vm.table, lower, upper)
}
