// Package emitter is the renderer-facing surface of the engine: a volume
// whose emissivity lives on a regular grid, integrated along ray segments.
//
// 🚀 What it does
//
//	An Emitter ties together a grid.Grid, stored emission (either a sparse
//	emission.Store or the legacy emission.Table), a single-slot spectral
//	cache and a traversal Sampler. For each ray it
//
//	  1. acquires the cache for the ray's (min, max, bins) window, building
//	     it once per window,
//	  2. skips the walk entirely when the window carries no emission,
//	  3. walks the segment in grid-local coordinates and adds
//	     length × cached emission into the caller's Spectrum.
//
// ✨ Variants
//
//   - New:       sparse store, cache rows are voxels.
//   - NewLegacy: voxel map + dense table, cache rows are table rows and the
//     lookup maps voxel → row. Both answer EmissionFunction identically
//     at cell centres.
//
// ⚙️ Errors
//
//	Every failure wraps one of ErrConfiguration, ErrCapacityExceeded,
//	ErrUnsupportedPairing or ErrCacheOverrideMismatch together with the
//	originating sentinel, so errors.Is matches both.
//
// Concurrency:
//
//	Integrate and EmissionFunction may run in parallel. Cache builds are
//	serialized; parallel rays sharing one window should pre-build with
//	CacheBuild (or CacheOverride) to avoid contending on the first build.
package emitter
