// SPDX-License-Identifier: MIT

// Package matrix: functional configuration for ingestion numeric policy.
// This file defines:
//   - Option (functional option over unexported Options),
//   - documented defaults (constants),
//   - gatherOptions helper that resolves a ...Option list.
//
// Design goals:
//   - Deterministic behavior: no global state.
//   - No dead switches: each flag changes what COO.Add and Dense.Set accept.
package matrix

// ---------- Defaults (single source of truth) ----------

const (
	// DefaultValidateNaNInf toggles strict finite-value validation on ingestion and Set.
	DefaultValidateNaNInf = true

	// DefaultNonNegative toggles rejection of negative values on ingestion.
	// Emission data is non-negative by nature, but the matrix layer itself is generic.
	DefaultNonNegative = false
)

// Option mutates internal options. Safe to apply repeatedly (idempotent).
type Option func(*Options)

// Options stores the effective configuration after applying Option setters.
// Fields are unexported; public entry points accept ...Option.
type Options struct {
	validateNaNInf bool // DefaultValidateNaNInf
	nonNegative    bool // DefaultNonNegative
}

// WithValidateNaNInf enables strict finite-value validation (the default).
func WithValidateNaNInf() Option {
	return func(o *Options) { o.validateNaNInf = true }
}

// WithNoValidateNaNInf disables finite-value validation.
// Use only for controlled ingestion where the data is sanitized upstream.
func WithNoValidateNaNInf() Option {
	return func(o *Options) { o.validateNaNInf = false }
}

// WithNonNegative rejects negative values with ErrNegative.
func WithNonNegative() Option {
	return func(o *Options) { o.nonNegative = true }
}

// defaultOptions returns the documented defaults.
func defaultOptions() Options {
	return Options{
		validateNaNInf: DefaultValidateNaNInf,
		nonNegative:    DefaultNonNegative,
	}
}

// gatherOptions applies opts left-to-right over the defaults.
// Nil options are skipped.
func gatherOptions(opts ...Option) Options {
	o := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	return o
}

// checkValue enforces the numeric policy for a single value.
func (o Options) checkValue(v float64) error {
	if o.validateNaNInf && isNonFinite(v) {
		return ErrNaNInf
	}
	if o.nonNegative && v < 0 {
		return ErrNegative
	}

	return nil
}
