// Package geometry provides the axis-aligned boxes the broad phase is built on.
//
// Boxes are plain values over mgl64.Vec3. Swept boxes of a primitive moving
// between two time steps are the union of its boxes at both steps:
//
//	box := geometry.EdgeBox(a0, b0).Union(geometry.EdgeBox(a1, b1)).Inflate(radius)
//
// Planar meshes are lifted into 3D with Lift2D; a zero z extent yields a single
// voxel layer in the grid.
package geometry
