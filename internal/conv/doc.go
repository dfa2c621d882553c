// Package conv provides checked integer narrowing for primitive and voxel ids.
//
// Bucket entries and occupancy lists store int32 ids to halve the memory of
// the voxel store. Counts coming from caller meshes are plain ints, so every
// narrowing at build time goes through this package.
//
// Loop indices that are already bounded by a checked total use direct casts.
package conv
