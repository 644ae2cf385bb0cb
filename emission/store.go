package emission

import (
	"errors"
	"fmt"
	"sort"

	"github.com/katalvlaran/voxemit/grid"
	"github.com/katalvlaran/voxemit/matrix"
	"github.com/katalvlaran/voxemit/spectral"
)

// Store is compressed per-voxel emission on a grid.
// Internally a slots×voxels CSR: row s is the sparse column of slot s.
type Store struct {
	grid        *grid.Grid
	profile     *spectral.Profile
	cols        *matrix.CSR
	slotMap     []int
	wavelengths []float64
}

// NewStore ingests src into a Store on g.
//
// Stages:
//   - Stage 1: check src against the grid shape and the wavelength axis.
//   - Stage 2: sort the axis ascending and route every input slice to its
//     final slot (or follow WithSlotMapping).
//   - Stage 3: collect entries into a COO builder, which enforces the
//     non-negative policy and the int32 entry limit.
//   - Stage 4: compress and drop all-zero slots that do not affect any integral.
//
// Errors: ErrNilInput, ErrShapeMismatch, ErrWavelengthAxis, ErrSlotMapping,
// ErrNegativeEmission, matrix.ErrCapacityExceeded, spectral.ErrUnknownModel.
//
// Complexity: O(nnz log nnz + slots log slots).
func NewStore(g *grid.Grid, wavelengths []float64, src Source, opts ...Option) (*Store, error) {
	o := gatherOptions(opts)
	if g == nil || src == nil {
		return nil, fmt.Errorf("NewStore: %w", ErrNilInput)
	}
	if err := checkShape(g, src); err != nil {
		return nil, fmt.Errorf("NewStore: %w", err)
	}

	// Stage 2: final axis and slice routing.
	axis, slotOf, err := route(wavelengths, src.Slots(), o.mapping)
	if err != nil {
		return nil, fmt.Errorf("NewStore: %w", err)
	}
	profile, err := spectral.NewProfile(axis, o.model, o.extrapolate)
	if err != nil {
		return nil, fmt.Errorf("NewStore: %w", err)
	}

	// Stage 3: collect.
	coo, err := matrix.NewCOO(len(axis), g.VoxelCount(), matrix.WithNonNegative())
	if err != nil {
		return nil, fmt.Errorf("NewStore: %w", err)
	}
	err = src.Each(func(voxel, slot int, v float64) error {
		if slot < 0 || slot >= len(slotOf) {
			return fmt.Errorf("slice %d of %d: %w", slot, len(slotOf), ErrShapeMismatch)
		}
		if err := coo.Add(slotOf[slot], voxel, v); err != nil {
			return fmt.Errorf("voxel %d slice %d: %w: %w", voxel, slot, classify(err), err)
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("NewStore: %w", err)
	}
	cols, err := coo.ToCSR()
	if err != nil {
		return nil, fmt.Errorf("NewStore: %w", err)
	}

	s := &Store{grid: g, profile: profile, cols: cols, slotMap: slotOf, wavelengths: axis}
	if o.compact && o.mapping == nil {
		if err = s.compact(o.model); err != nil {
			return nil, fmt.Errorf("NewStore: %w", err)
		}
	}

	return s, nil
}

// checkShape compares src with the grid.
func checkShape(g *grid.Grid, src Source) error {
	if sh, ok := src.(shaped); ok && sh.Shape() != g.Shape() {
		return fmt.Errorf("data shape %v, grid shape %v: %w", sh.Shape(), g.Shape(), ErrShapeMismatch)
	}
	if src.Voxels() != g.VoxelCount() {
		return fmt.Errorf("%d voxels of data, grid has %d: %w", src.Voxels(), g.VoxelCount(), ErrShapeMismatch)
	}

	return nil
}

// classify maps matrix ingestion errors onto this package's sentinels.
func classify(err error) error {
	switch {
	case errors.Is(err, matrix.ErrNegative), errors.Is(err, matrix.ErrNaNInf):
		return ErrNegativeEmission
	case errors.Is(err, matrix.ErrCapacityExceeded):
		return matrix.ErrCapacityExceeded
	default:
		return ErrShapeMismatch
	}
}

// route sorts the axis and returns the final axis plus, for every input
// slice, the index of its final slot.
func route(wavelengths []float64, slices int, mapping []int) ([]float64, []int, error) {
	if mapping == nil && len(wavelengths) != slices {
		return nil, nil, fmt.Errorf("%d wavelengths for %d slices: %w", len(wavelengths), slices, ErrShapeMismatch)
	}
	if mapping != nil && len(mapping) != slices {
		return nil, nil, fmt.Errorf("mapping of length %d for %d slices: %w", len(mapping), slices, ErrSlotMapping)
	}

	order := make([]int, len(wavelengths))
	for n := range order {
		order[n] = n
	}
	sort.SliceStable(order, func(a, b int) bool { return wavelengths[order[a]] < wavelengths[order[b]] })
	axis := make([]float64, len(order))
	rank := make([]int, len(order))
	for final, orig := range order {
		axis[final] = wavelengths[orig]
		rank[orig] = final
	}
	if err := spectral.ValidateAxis(axis); err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrWavelengthAxis, err)
	}

	slotOf := make([]int, slices)
	for s := range slotOf {
		target := s
		if mapping != nil {
			target = mapping[s]
			if target < 0 || target >= len(axis) {
				return nil, nil, fmt.Errorf("slice %d → slot %d outside %d wavelengths: %w", s, target, len(axis), ErrSlotMapping)
			}
		}
		slotOf[s] = rank[target]
	}

	return axis, slotOf, nil
}

// compact drops all-zero slots. A discrete line with no power is always
// removable; a continuous sample is removable only when both neighbours are
// zero too, otherwise the interpolant would change.
func (s *Store) compact(model spectral.Model) error {
	m := s.cols.Rows()
	empty := make([]bool, m)
	for k := range empty {
		empty[k] = s.cols.RowNNZ(k) == 0
	}
	keep := make([]int, 0, m)
	newIndex := make([]int, m)
	for k := 0; k < m; k++ {
		drop := empty[k]
		if drop && model == spectral.Continuous {
			drop = (k == 0 || empty[k-1]) && (k == m-1 || empty[k+1])
		}
		if drop {
			newIndex[k] = -1
			continue
		}
		newIndex[k] = len(keep)
		keep = append(keep, k)
	}
	if len(keep) == m {
		return nil
	}

	cols, err := s.cols.SelectRows(keep)
	if err != nil {
		return err
	}
	axis := make([]float64, len(keep))
	for n, k := range keep {
		axis[n] = s.wavelengths[k]
	}
	profile, err := spectral.NewProfile(axis, s.profile.Model(), s.profile.Extrapolate())
	if err != nil {
		return err
	}
	for n, k := range s.slotMap {
		s.slotMap[n] = newIndex[k]
	}
	s.cols, s.wavelengths, s.profile = cols, axis, profile

	return nil
}

// Grid returns the grid the store is defined on.
func (s *Store) Grid() *grid.Grid { return s.grid }

// Profile returns the wavelength axis and spectral model.
func (s *Store) Profile() *spectral.Profile { return s.profile }

// Wavelengths returns a copy of the final, ascending axis.
func (s *Store) Wavelengths() []float64 { return append([]float64(nil), s.wavelengths...) }

// Slots returns the number of stored wavelength slots.
func (s *Store) Slots() int { return s.cols.Rows() }

// Len returns the voxel count (the length of every column).
func (s *Store) Len() int { return s.cols.Cols() }

// Rows is Len; it makes a Store a cache source whose rows are voxels.
func (s *Store) Rows() int { return s.cols.Cols() }

// NNZ returns the number of stored entries.
func (s *Store) NNZ() int { return s.cols.NNZ() }

// Bytes estimates the heap footprint of the stored arrays.
func (s *Store) Bytes() uint64 { return s.cols.Bytes() }

// Column returns the voxel indices and values of one slot. The slices alias
// internal storage and must not be modified.
func (s *Store) Column(slot int) ([]int32, []float64) { return s.cols.Row(slot) }

// SlotMap returns, for every input slice, its final slot or -1 if compacted away.
func (s *Store) SlotMap() []int { return append([]int(nil), s.slotMap...) }

// VoxelSpectrum returns the stored spectrum of one voxel, one value per slot.
// Complexity: O(slots · log nnz).
func (s *Store) VoxelSpectrum(voxel int) []float64 {
	out := make([]float64, s.Slots())
	if voxel < 0 || voxel >= s.Len() {
		return out
	}
	for k := range out {
		out[k], _ = s.cols.At(k, voxel)
	}

	return out
}

// IntegrateWindow integrates every voxel over [lower, upper).
func (s *Store) IntegrateWindow(lower, upper float64) (matrix.SparseVector, error) {
	return s.profile.Integrate(s, lower, upper)
}
