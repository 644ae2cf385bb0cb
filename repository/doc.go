// Package repository persists emitter definitions and pre-computed spectral
// caches on the local filesystem.
//
// Layout under the repository root:
//
//	emitters/<group>.json                           named definitions of one group
//	cache/<group>/<name>/<min>_<max>_<bins>.json.sz snappy-compressed cache matrix
//
// Updates read the existing group file, merge the new definitions over it and
// write it back, creating directories as needed. Definitions are validated
// before anything is written. A stored cache can be fed to
// emitter.Emitter.CacheOverride when rebuilding it during parallel rendering
// would cost too much memory.
package repository
