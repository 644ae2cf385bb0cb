package emitter

import (
	"fmt"

	"github.com/katalvlaran/voxemit/grid"
)

// Ray exposes the spectral window a ray currently samples.
type Ray interface {
	MinWavelength() float64
	MaxWavelength() float64
	Bins() int
}

// Window is a fixed spectral window; it implements Ray.
type Window struct {
	Min, Max float64
	N        int
}

// MinWavelength implements Ray.
func (w Window) MinWavelength() float64 { return w.Min }

// MaxWavelength implements Ray.
func (w Window) MaxWavelength() float64 { return w.Max }

// Bins implements Ray.
func (w Window) Bins() int { return w.N }

// Transform maps a world-space point into the emitter's local frame.
type Transform interface {
	Apply(p grid.Point) grid.Point
}

// Identity leaves points unchanged.
type Identity struct{}

// Apply implements Transform.
func (Identity) Apply(p grid.Point) grid.Point { return p }

// Translation adds a fixed offset.
type Translation grid.Point

// Apply implements Transform.
func (t Translation) Apply(p grid.Point) grid.Point { return p.Add(grid.Point(t)) }

// Affine is a row-major 3×4 matrix [R | t]: local = R·p + t.
type Affine [3][4]float64

// Apply implements Transform.
func (a Affine) Apply(p grid.Point) grid.Point {
	return grid.Point{
		X: a[0][0]*p.X + a[0][1]*p.Y + a[0][2]*p.Z + a[0][3],
		Y: a[1][0]*p.X + a[1][1]*p.Y + a[1][2]*p.Z + a[1][3],
		Z: a[2][0]*p.X + a[2][1]*p.Y + a[2][2]*p.Z + a[2][3],
	}
}

// Spectrum accumulates per-bin values over [MinWavelength, MaxWavelength).
// The engine only adds into Samples.
type Spectrum struct {
	MinWavelength float64
	MaxWavelength float64
	Samples       []float64
}

// NewSpectrum returns a zeroed spectrum matching r.
func NewSpectrum(r Ray) *Spectrum {
	return &Spectrum{
		MinWavelength: r.MinWavelength(),
		MaxWavelength: r.MaxWavelength(),
		Samples:       make([]float64, max(r.Bins(), 0)),
	}
}

// Bins returns the sample count.
func (s *Spectrum) Bins() int { return len(s.Samples) }

// Delta returns the bin width.
func (s *Spectrum) Delta() float64 {
	if len(s.Samples) == 0 {
		return 0
	}

	return (s.MaxWavelength - s.MinWavelength) / float64(len(s.Samples))
}

// Density returns Samples divided by the bin width, i.e. per unit wavelength.
func (s *Spectrum) Density() []float64 {
	out := make([]float64, len(s.Samples))
	if d := s.Delta(); d > 0 {
		for b, v := range s.Samples {
			out[b] = v / d
		}
	}

	return out
}

// matches checks that s can receive values for r.
func (s *Spectrum) matches(r Ray) error {
	if s == nil {
		return fmt.Errorf("nil spectrum")
	}
	if len(s.Samples) != r.Bins() {
		return fmt.Errorf("spectrum has %d samples, ray has %d bins", len(s.Samples), r.Bins())
	}

	return nil
}
