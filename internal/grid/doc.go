// Package grid maps points of a bounded domain onto a uniform voxel grid.
//
// A Grid is immutable once built. Voxel indices are flattened row-major as
// ix + iy*cx + iz*cx*cy; points outside the domain are clamped onto the
// boundary voxels, so every point has a valid index.
package grid
