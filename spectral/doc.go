// Package spectral integrates stored per-voxel spectra over arbitrary
// wavelength windows.
//
// 🚀 What it does
//
//	A Profile pairs a sorted wavelength axis with a spectral Model. For any
//	window [lower, upper) it produces per-slot Weights such that the window
//	integral of a stored spectrum v is Σ w_k·v_k. Because the weights depend
//	only on the axis, they are computed once per window and applied to every
//	voxel at once, either column-wise on a sparse store (Integrate) or row-wise
//	on a dense table (IntegrateDense).
//
// ✨ Models
//
//   - Continuous: samples are a spectral density (power per unit wavelength),
//     linearly interpolated between axis points. Outside the axis the
//     spectrum is zero, or equal to the nearest end sample when extrapolation
//     is enabled.
//   - Discrete: each sample is a delta-function line carrying its full power.
//     A line counts towards the window containing its exact wavelength,
//     lower ≤ w < upper; extrapolation never applies.
//
// Performance:
//
//   - Weights: O(log m + s) for m axis points and s touched slots.
//   - Integrate: O(Σ nnz of touched columns · log) for the merge.
//   - IntegrateDense: O(rows · s).
//
// Integration runs once per spectral bin while building a cache, never per
// traversal sample.
package spectral
