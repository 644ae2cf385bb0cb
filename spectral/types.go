package spectral

import "fmt"

// Model selects how stored samples are interpreted.
type Model int

const (
	// Continuous treats samples as a piecewise-linear spectral density.
	Continuous Model = iota
	// Discrete treats samples as delta-function emission lines.
	Discrete
)

// String implements fmt.Stringer.
func (m Model) String() string {
	switch m {
	case Continuous:
		return "continuous"
	case Discrete:
		return "discrete"
	default:
		return fmt.Sprintf("Model(%d)", int(m))
	}
}

// ParseModel converts "continuous" / "discrete" back into a Model.
func ParseModel(name string) (Model, error) {
	switch name {
	case "continuous":
		return Continuous, nil
	case "discrete":
		return Discrete, nil
	}

	return 0, fmt.Errorf("ParseModel(%q): %w", name, ErrUnknownModel)
}

// Weight is the coefficient applied to one wavelength slot.
type Weight struct {
	Slot int
	W    float64
}

// Columns is column-major access to stored emission: one compressed column per
// wavelength slot, each of logical length Len().
type Columns interface {
	// Slots returns the number of wavelength slots.
	Slots() int
	// Len returns the logical length of each column (voxels or table rows).
	Len() int
	// Column returns the row indices and values stored for slot.
	Column(slot int) ([]int32, []float64)
}
