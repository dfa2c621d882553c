// Package voxel stores which primitives occupy which voxels.
//
// Vertices, edges and faces share one int32 id space (see Layout). A Store
// maps voxel indices to buckets of ids and keeps, for vertices and edges, the
// inverse occupancy list so index based queries never re-rasterize.
//
// A Store is written once during a build and is safe for concurrent reads
// afterwards.
package voxel
