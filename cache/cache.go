package cache

import (
	"fmt"
	"math"
	"sync"
	"sync/atomic"

	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/voxemit/matrix"
)

// Key identifies one wavelength window. Comparison is exact: the same ray
// object is expected to pass identical doubles.
type Key struct {
	MinWavelength float64
	MaxWavelength float64
	Bins          int
}

// Validate checks the window.
func (k Key) Validate() error {
	if k.Bins <= 0 || math.IsNaN(k.MinWavelength) || k.MinWavelength < 0 ||
		math.IsInf(k.MaxWavelength, 0) || !(k.MinWavelength < k.MaxWavelength) {
		return fmt.Errorf("%+v: %w", k, ErrBadKey)
	}

	return nil
}

// Edges returns the Bins+1 equally spaced bin boundaries of the window.
func (k Key) Edges() []float64 {
	edges := floats.Span(make([]float64, k.Bins+1), k.MinWavelength, k.MaxWavelength)
	edges[k.Bins] = k.MaxWavelength

	return edges
}

// String implements fmt.Stringer.
func (k Key) String() string {
	return fmt.Sprintf("[%g, %g)/%d", k.MinWavelength, k.MaxWavelength, k.Bins)
}

// Source integrates stored emission over one wavelength window.
// Rows is the length of every returned vector and the row count of the cache.
type Source interface {
	Rows() int
	IntegrateWindow(lower, upper float64) (matrix.SparseVector, error)
}

// Snapshot is one immutable cache generation.
type Snapshot struct {
	Key     Key
	Version uint64
	M       *matrix.CSR // Rows × Key.Bins
}

// Empty reports whether the snapshot stores no emission at all.
func (s *Snapshot) Empty() bool { return s.M.NNZ() == 0 }

// Row returns the bin indices and integrated values of one row.
// A nil Snapshot or out-of-range row yields empty slices.
func (s *Snapshot) Row(r int) ([]int32, []float64) {
	if s == nil {
		return nil, nil
	}

	return s.M.Row(r)
}

// Cache is a single-slot, versioned spectral cache over a Source.
type Cache struct {
	src     Source
	mu      sync.Mutex
	current atomic.Pointer[Snapshot]
	version uint64
}

// New returns an empty cache over src.
func New(src Source) *Cache {
	return &Cache{src: src}
}

// Snapshot returns the current generation, or nil if nothing is built.
func (c *Cache) Snapshot() *Snapshot { return c.current.Load() }

// Valid reports whether the current generation was built for exactly this window.
func (c *Cache) Valid(minWavelength, maxWavelength float64, bins int) bool {
	s := c.current.Load()

	return s != nil && s.Key == Key{MinWavelength: minWavelength, MaxWavelength: maxWavelength, Bins: bins}
}

// Empty reports whether the current generation stores nothing.
// Returns ErrNotBuilt before the first build or override.
func (c *Cache) Empty() (bool, error) {
	s := c.current.Load()
	if s == nil {
		return false, ErrNotBuilt
	}

	return s.Empty(), nil
}

// Acquire returns a snapshot for the window, building it if the slot holds a
// different window.
func (c *Cache) Acquire(minWavelength, maxWavelength float64, bins int) (*Snapshot, error) {
	key := Key{MinWavelength: minWavelength, MaxWavelength: maxWavelength, Bins: bins}
	if s := c.current.Load(); s != nil && s.Key == key {
		lookups.WithLabelValues("hit").Inc()
		return s, nil
	}
	lookups.WithLabelValues("miss").Inc()

	return c.build(key, false)
}

// Build integrates the window into a new generation. It is a no-op when the
// slot already holds this window, unless forced. Identical inputs produce
// bit-identical matrices.
func (c *Cache) Build(minWavelength, maxWavelength float64, bins int, forced bool) (*Snapshot, error) {
	return c.build(Key{MinWavelength: minWavelength, MaxWavelength: maxWavelength, Bins: bins}, forced)
}

func (c *Cache) build(key Key, forced bool) (*Snapshot, error) {
	if err := key.Validate(); err != nil {
		return nil, fmt.Errorf("Build: %w", err)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	// Another caller may have built the same window while we waited.
	if s := c.current.Load(); !forced && s != nil && s.Key == key {
		return s, nil
	}

	m, err := c.assemble(key)
	builds.WithLabelValues(outcome(err)).Inc()
	if err != nil {
		return nil, fmt.Errorf("Build %v: %w", key, err)
	}

	return c.install(key, m), nil
}

// assemble integrates every bin and packs the columns into a rows×bins CSR.
//
// Stages:
//   - Stage 1: one IntegrateWindow call per bin; count entries per row.
//   - Stage 2: prefix-sum row counts into indptr, checking int32 capacity.
//   - Stage 3: scatter bins in ascending order, so each row is column-sorted.
func (c *Cache) assemble(key Key) (*matrix.CSR, error) {
	rows := c.src.Rows()
	edges := key.Edges()
	bins := make([]matrix.SparseVector, key.Bins)
	counts := make([]int, rows+1)
	for b := range bins {
		v, err := c.src.IntegrateWindow(edges[b], edges[b+1])
		if err != nil {
			return nil, err
		}
		if v.N != rows {
			return nil, fmt.Errorf("bin %d has %d rows, source has %d: %w", b, v.N, rows, matrix.ErrDimensionMismatch)
		}
		for _, r := range v.Index {
			counts[r+1]++
		}
		bins[b] = v
	}

	indptr := make([]int32, rows+1)
	total := 0
	for r := 0; r < rows; r++ {
		total += counts[r+1]
		if total > matrix.MaxIndex {
			return nil, fmt.Errorf("%d cached entries: %w", total, matrix.ErrCapacityExceeded)
		}
		indptr[r+1] = int32(total)
	}
	next := append([]int32(nil), indptr[:rows]...)
	indices := make([]int32, total)
	data := make([]float64, total)
	for b, v := range bins {
		for p, r := range v.Index {
			indices[next[r]] = int32(b)
			data[next[r]] = v.Data[p]
			next[r]++
		}
	}

	return matrix.NewCSR(rows, key.Bins, indptr, indices, data)
}

// install publishes a new generation. Callers hold c.mu.
func (c *Cache) install(key Key, m *matrix.CSR) *Snapshot {
	c.version++
	s := &Snapshot{Key: key, Version: c.version, M: m}
	c.current.Store(s)
	storedEntries.Set(float64(m.NNZ()))

	return s
}

// Override installs an externally computed rows×bins matrix for the window
// [minWavelength, maxWavelength), trusting its content. Only the row count and
// the index width are checked; the bin count is the matrix column count.
func (c *Cache) Override(m *matrix.CSR, minWavelength, maxWavelength float64) (*Snapshot, error) {
	s, err := c.override(m, minWavelength, maxWavelength)
	overrides.WithLabelValues(outcome(err)).Inc()

	return s, err
}

func (c *Cache) override(m *matrix.CSR, minWavelength, maxWavelength float64) (*Snapshot, error) {
	if m == nil {
		return nil, fmt.Errorf("Override: %w: %w", ErrOverrideMismatch, matrix.ErrNilMatrix)
	}
	key := Key{MinWavelength: minWavelength, MaxWavelength: maxWavelength, Bins: m.Cols()}
	if err := key.Validate(); err != nil {
		return nil, fmt.Errorf("Override: %w", err)
	}
	if m.Rows() != c.src.Rows() {
		return nil, fmt.Errorf("Override: %d rows, source has %d: %w", m.Rows(), c.src.Rows(), ErrOverrideMismatch)
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.install(key, m), nil
}
