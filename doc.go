// Package broadphase provides a spatial-hash broad phase for deforming,
// self-colliding surface meshes.
//
// A SpatialHash buckets the vertices, edges and triangles of a mesh into a
// uniform voxel grid, either at one time step (Build) or swept over the
// straight-line motion between two (BuildContinuous). Queries return the
// primitives whose voxels overlap a query shape; mesh-wide candidate queries
// return the vertex-vertex, edge-vertex, edge-edge and face-vertex pairs a
// narrow phase has to test. The hash never reports fewer pairs than a
// bounding-box test would; false positives are expected.
//
// # Quick Start
//
//	h, err := broadphase.NewFromMeshContinuous(v0, v1, edges, faces, -1)
//	if err != nil {
//	    return err
//	}
//	c, err := h.QueryMeshForCandidatesContinuous(v0, v1, edges, faces)
//	if err != nil {
//	    return err
//	}
//	for _, ee := range c.EE {
//	    // narrow phase on edges ee.EdgeA, ee.EdgeB
//	}
//
// # Combined Identifiers
//
// Internally all primitives share one id space: [0, nV) vertices,
// [nV, nV+nE) edges and [nV+nE, nV+nE+nF) triangles (see EdgeStartIndex and
// FaceStartIndex). Query results are always local indices.
//
// # Exclusion Rules
//
//   - Index based queries never return the queried primitive itself.
//   - Edge-vs-edge queries given an edge index eai return only edges > eai.
//   - Mesh candidate queries drop pairs that share a vertex.
//
// # Concurrency
//
// Build, BuildContinuous and Clear must not run concurrently with anything
// else on the same hash. All query methods are read-only and may be called
// from any number of goroutines once a build has returned.
package broadphase
