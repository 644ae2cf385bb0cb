// Package traverse walks a ray segment through a voxel grid and accumulates
// path-length-weighted emission into a spectrum.
//
// The walk is a four-state machine:
//
//	Start   → measure the segment; degenerate segments (shorter than a tenth
//	          of the step) go straight to End.
//	Walking → sample the midpoint of each of n equal sub-steps, with
//	          n = max(MinSamples, floor(length/Step)), and add the sub-step
//	          length to the current voxel's accumulator.
//	Flush   → on a voxel change, and once after the last sample, hand the
//	          accumulated length of the previous voxel to the Lookup.
//	End     → done.
//
// Flushing on change rather than per sample makes the result independent of
// n once n resolves the finest cell. Samples outside the grid resolve to
// voxel -1 and flush nothing.
package traverse
