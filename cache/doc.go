// Package cache memoizes per-voxel, per-bin integrated emission for one
// wavelength window at a time.
//
// What:
//
//	A Cache owns a single slot holding a Snapshot: an immutable rows×bins
//	CSR matrix plus the Key (min wavelength, max wavelength, bin count) it
//	was built for and a Version that increments on every replacement.
//	Build partitions [min, max) into equal-width bins and asks its Source to
//	integrate each bin once. Values are integrated emission, W/(sr·m³);
//	traversal multiplies them by path length.
//
// Concurrency:
//
//	Builds and overrides are serialized by a mutex. Readers take a Snapshot
//	(Acquire or Snapshot) and keep using it even if the slot is replaced
//	afterwards, so a reader never observes a half-built matrix. Two callers
//	alternating between different windows still thrash the single slot;
//	pre-build once before parallel rendering when the window is fixed.
//
// Metrics:
//
//	Package-level prometheus counters record hits, builds and overrides,
//	labelled by outcome.
package cache
