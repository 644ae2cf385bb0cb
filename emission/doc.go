// Package emission stores per-voxel spectral emission for a regular grid.
//
// What:
//
//	A Store holds non-negative emission keyed by (voxel, wavelength slot),
//	compressed column-wise: one sparse column per slot, indexed by the
//	row-major voxel index i·n2·n3 + j·n3 + k. The wavelength axis is sorted
//	ascending on construction (slots are permuted to follow) and slots that
//	carry no emission anywhere are compacted away unless that would change
//	the integral of the stored spectra.
//
// Ingestion:
//
//	Every input encoding is a Source. Three adapters are provided:
//
//	  - Dense4D:  a dense [i][j][k][slot] array.
//	  - VoxelMap: a dense (i,j,k) → row map into a rows×slots table, with -1
//	              for empty cells. Also the storage of the legacy Table.
//	  - Sparse:   a voxels×slots *matrix.CSR supplied directly.
//
//	NewStore consumes any Source; NewTable keeps a VoxelMap dense, as the
//	first generation of the engine did.
//
// Capacity:
//
//	Voxel indices and stored entries are int32. Exceeding either limit fails
//	with matrix.ErrCapacityExceeded; the only remedy is to partition the
//	domain across several emitters.
//
// Both Store and Table are immutable after construction and safe for
// concurrent readers.
package emission
