package spectral

import (
	"fmt"
	"math"
	"sort"

	"github.com/katalvlaran/voxemit/matrix"
)

// Profile is an immutable wavelength axis plus its interpretation.
type Profile struct {
	wavelengths []float64
	model       Model
	extrapolate bool
}

// NewProfile validates the axis and returns a Profile.
// The axis must be strictly ascending, finite and non-negative; it is copied.
// An empty axis is legal and integrates to zero everywhere.
// extrapolate is ignored for the Discrete model.
func NewProfile(wavelengths []float64, model Model, extrapolate bool) (*Profile, error) {
	if model != Continuous && model != Discrete {
		return nil, fmt.Errorf("NewProfile: %v: %w", model, ErrUnknownModel)
	}
	if err := ValidateAxis(wavelengths); err != nil {
		return nil, err
	}

	return &Profile{
		wavelengths: append([]float64(nil), wavelengths...),
		model:       model,
		extrapolate: extrapolate && model == Continuous,
	}, nil
}

// ValidateAxis checks that w is finite, non-negative and strictly ascending.
func ValidateAxis(w []float64) error {
	for n, v := range w {
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return fmt.Errorf("ValidateAxis: wavelength[%d] = %g: %w", n, v, ErrWavelengthAxis)
		}
		if n > 0 && !(w[n-1] < v) {
			return fmt.Errorf("ValidateAxis: wavelength[%d] = %g after %g: %w", n, v, w[n-1], ErrWavelengthAxis)
		}
	}

	return nil
}

// Wavelengths returns a copy of the axis.
func (p *Profile) Wavelengths() []float64 { return append([]float64(nil), p.wavelengths...) }

// Slots returns the axis length.
func (p *Profile) Slots() int { return len(p.wavelengths) }

// Model returns the spectral model.
func (p *Profile) Model() Model { return p.model }

// Extrapolate reports whether nearest-neighbour extrapolation is active.
func (p *Profile) Extrapolate() bool { return p.extrapolate }

// checkWindow validates [lower, upper).
func checkWindow(lower, upper float64) error {
	if math.IsNaN(lower) || math.IsInf(upper, 0) || math.IsNaN(upper) || lower < 0 || !(lower < upper) {
		return fmt.Errorf("window [%g, %g): %w", lower, upper, ErrBadWindow)
	}

	return nil
}

// Weights returns the per-slot coefficients for the window [lower, upper),
// sorted by slot, without zero entries.
//
// Continuous: exact integral of the linear interpolant between bracketing axis
// points, clipped to the window; with extrapolation the end samples extend as
// constants. Discrete: weight 1 for every line with lower ≤ w < upper.
//
// Complexity: O(log m + s).
func (p *Profile) Weights(lower, upper float64) ([]Weight, error) {
	if err := checkWindow(lower, upper); err != nil {
		return nil, fmt.Errorf("Weights: %w", err)
	}
	w := p.wavelengths
	m := len(w)
	if m == 0 {
		return nil, nil
	}

	if p.model == Discrete {
		var out []Weight
		for k := sort.SearchFloat64s(w, lower); k < m && w[k] < upper; k++ {
			out = append(out, Weight{Slot: k, W: 1})
		}

		return out, nil
	}

	var out []Weight
	add := func(slot int, v float64) {
		if v == 0 {
			return
		}
		if n := len(out); n > 0 && out[n-1].Slot == slot {
			out[n-1].W += v
			return
		}
		out = append(out, Weight{Slot: slot, W: v})
	}

	if p.extrapolate && lower < w[0] {
		add(0, math.Min(upper, w[0])-lower)
	}
	// First interval whose right end lies beyond lower.
	k := sort.SearchFloat64s(w, lower) - 1
	if k < 0 {
		k = 0
	}
	for ; k < m-1 && w[k] < upper; k++ {
		x0 := math.Max(lower, w[k])
		x1 := math.Min(upper, w[k+1])
		if !(x1 > x0) {
			continue
		}
		span := x1 - x0
		h := w[k+1] - w[k]
		add(k, span*(2*w[k+1]-x0-x1)/(2*h))
		add(k+1, span*(x0+x1-2*w[k])/(2*h))
	}
	if p.extrapolate && upper > w[m-1] {
		add(m-1, upper-math.Max(lower, w[m-1]))
	}

	return out, nil
}

// IntegrateSpectrum integrates one stored spectrum (len == Slots()) over the window.
func (p *Profile) IntegrateSpectrum(values []float64, lower, upper float64) (float64, error) {
	if len(values) != len(p.wavelengths) {
		return 0, fmt.Errorf("IntegrateSpectrum: %d values for %d slots: %w", len(values), len(p.wavelengths), ErrShapeMismatch)
	}
	weights, err := p.Weights(lower, upper)
	if err != nil {
		return 0, err
	}
	sum := 0.0
	for _, wt := range weights {
		sum += wt.W * values[wt.Slot]
	}

	return sum, nil
}

// Integrate integrates every stored column over the window and returns the
// per-row totals as a sparse vector of length cols.Len().
// Entries are merged in slot order, so repeated calls are bit-identical.
func (p *Profile) Integrate(cols Columns, lower, upper float64) (matrix.SparseVector, error) {
	if cols.Slots() != len(p.wavelengths) {
		return matrix.SparseVector{}, fmt.Errorf("Integrate: %d slots for %d wavelengths: %w", cols.Slots(), len(p.wavelengths), ErrShapeMismatch)
	}
	weights, err := p.Weights(lower, upper)
	if err != nil {
		return matrix.SparseVector{}, err
	}
	out := matrix.SparseVector{N: cols.Len()}

	if len(weights) == 1 {
		idx, vals := cols.Column(weights[0].Slot)
		for n, r := range idx {
			if v := weights[0].W * vals[n]; v != 0 {
				out.Index = append(out.Index, r)
				out.Data = append(out.Data, v)
			}
		}

		return out, nil
	}

	total := 0
	for _, wt := range weights {
		idx, _ := cols.Column(wt.Slot)
		total += len(idx)
	}
	entries := make([]entry, 0, total)
	for _, wt := range weights {
		idx, vals := cols.Column(wt.Slot)
		for n, r := range idx {
			entries = append(entries, entry{row: r, v: wt.W * vals[n]})
		}
	}
	sort.SliceStable(entries, func(a, b int) bool { return entries[a].row < entries[b].row })
	for q := 0; q < len(entries); {
		r := entries[q].row
		sum := 0.0
		for q < len(entries) && entries[q].row == r {
			sum += entries[q].v
			q++
		}
		if sum != 0 {
			out.Index = append(out.Index, r)
			out.Data = append(out.Data, sum)
		}
	}

	return out, nil
}

type entry struct {
	row int32
	v   float64
}

// IntegrateDense integrates each row of a rows×slots table over the window.
// Used by the legacy voxel-map store, whose table is kept dense.
func (p *Profile) IntegrateDense(table *matrix.Dense, lower, upper float64) (matrix.SparseVector, error) {
	if table.Cols() != len(p.wavelengths) {
		return matrix.SparseVector{}, fmt.Errorf("IntegrateDense: %d columns for %d wavelengths: %w", table.Cols(), len(p.wavelengths), ErrShapeMismatch)
	}
	weights, err := p.Weights(lower, upper)
	if err != nil {
		return matrix.SparseVector{}, err
	}
	out := matrix.SparseVector{N: table.Rows()}
	if len(weights) == 0 {
		return out, nil
	}
	for r := 0; r < table.Rows(); r++ {
		row := table.Row(r)
		sum := 0.0
		for _, wt := range weights {
			sum += wt.W * row[wt.Slot]
		}
		if sum != 0 {
			out.Index = append(out.Index, int32(r))
			out.Data = append(out.Data, sum)
		}
	}

	return out, nil
}
