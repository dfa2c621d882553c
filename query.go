package broadphase

import (
	"fmt"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/hupe1980/broadphase/geometry"
	"github.com/hupe1980/broadphase/internal/voxel"
)

// All queries return ascending, duplicate-free local indices. A nil result
// means no candidates.

// gather calls fn with every id stored in a voxel overlapped by bb. Ids in
// several voxels are reported several times.
func (h *SpatialHash) gather(bb geometry.AABB, fn func(id int32)) {
	if !h.built {
		return
	}
	h.grid.ForEachVoxel(bb, func(v int) {
		for _, id := range h.store.Bucket(int32(v)) {
			fn(id)
		}
	})
}

// gatherVoxels is gather over a precomputed occupancy list.
func (h *SpatialHash) gatherVoxels(voxels []int32, fn func(id int32)) {
	for _, v := range voxels {
		for _, id := range h.store.Bucket(v) {
			fn(id)
		}
	}
}

// kindFilter adds the local index of ids of kind k accepted by keep to dst.
func (h *SpatialHash) kindFilter(k voxel.Kind, keep func(local int) bool, dst *roaring.Bitmap) func(id int32) {
	return func(id int32) {
		local, ok := h.layout.Local(k, id)
		if !ok {
			return
		}
		if dst.Contains(uint32(local)) {
			return
		}
		if keep != nil && !keep(local) {
			return
		}
		dst.Add(uint32(local))
	}
}

// queryBox returns the local indices of kind k whose voxels overlap bb.
func (h *SpatialHash) queryBox(bb geometry.AABB, k voxel.Kind, keep func(local int) bool) []int {
	if !h.built {
		return nil
	}
	b := getBitmap()
	defer putBitmap(b)
	h.gather(bb, h.kindFilter(k, keep, b))
	return toInts(b)
}

// queryVoxels returns the local indices of kind k stored in voxels.
func (h *SpatialHash) queryVoxels(voxels []int32, k voxel.Kind, keep func(local int) bool) []int {
	b := getBitmap()
	defer putBitmap(b)
	h.gatherVoxels(voxels, h.kindFilter(k, keep, b))
	return toInts(b)
}

// split dispatches ids into one set per kind.
type split struct {
	layout       voxel.Layout
	verts, edges *roaring.Bitmap
	faces        *roaring.Bitmap
}

func (h *SpatialHash) newSplit() *split {
	return &split{layout: h.layout, verts: getBitmap(), edges: getBitmap(), faces: getBitmap()}
}

func (s *split) add(id int32) {
	switch k, local := s.layout.Decode(id); k {
	case voxel.KindVertex:
		s.verts.Add(uint32(local))
	case voxel.KindEdge:
		s.edges.Add(uint32(local))
	default:
		s.faces.Add(uint32(local))
	}
}

func (s *split) release() {
	putBitmap(s.verts)
	putBitmap(s.edges)
	putBitmap(s.faces)
}

func above(self int) func(int) bool {
	return func(local int) bool { return local > self }
}

// QueryPointForTriangles returns the triangles near point p, within radius.
func (h *SpatialHash) QueryPointForTriangles(p mgl64.Vec3, radius float64) []int {
	return h.queryBox(geometry.PointBox(p).Inflate(radius), voxel.KindFace, nil)
}

// QueryPointForTrianglesContinuous returns the triangles near the segment
// swept by a point moving from p0 to p1, within radius.
func (h *SpatialHash) QueryPointForTrianglesContinuous(p0, p1 mgl64.Vec3, radius float64) []int {
	return h.queryBox(geometry.EdgeBox(p0, p1).Inflate(radius), voxel.KindFace, nil)
}

// QueryPointForPrimitives returns the vertices, edges and triangles near a
// point moving from p0 to p1.
func (h *SpatialHash) QueryPointForPrimitives(p0, p1 mgl64.Vec3) (verts, edges, faces []int) {
	if !h.built {
		return nil, nil, nil
	}
	s := h.newSplit()
	defer s.release()
	h.gather(geometry.EdgeBox(p0, p1), s.add)
	return toInts(s.verts), toInts(s.edges), toInts(s.faces)
}

// QueryEdgeForPE returns the vertices and edges near the segment e0e1.
func (h *SpatialHash) QueryEdgeForPE(e0, e1 mgl64.Vec3) (verts, edges []int) {
	if !h.built {
		return nil, nil
	}
	s := h.newSplit()
	defer s.release()
	h.gather(geometry.EdgeBox(e0, e1), s.add)
	return toInts(s.verts), toInts(s.edges)
}

// QueryEdgeForEdges returns the edges near the segment ea0ea1, within
// radius. When eai >= 0 only edges with an index greater than eai are
// returned, so iterating all edges reports each unordered pair once.
func (h *SpatialHash) QueryEdgeForEdges(ea0, ea1 mgl64.Vec3, radius float64, eai int) []int {
	return h.queryBox(geometry.EdgeBox(ea0, ea1).Inflate(radius), voxel.KindEdge, above(eai))
}

// QueryEdgeForEdgesContinuous is QueryEdgeForEdges for an edge moving from
// (ea0t0, ea1t0) to (ea0t1, ea1t1).
func (h *SpatialHash) QueryEdgeForEdgesContinuous(ea0t0, ea1t0, ea0t1, ea1t1 mgl64.Vec3, radius float64, eai int) []int {
	bb := geometry.BoxOf(ea0t0, ea1t0, ea0t1, ea1t1).Inflate(radius)
	return h.queryBox(bb, voxel.KindEdge, above(eai))
}

// QueryEdgeForEdgesWithBBoxCheck is QueryEdgeForEdges followed by an exact
// box test: a candidate edge of (v, e) is kept only if its box intersects the
// query edge box inflated by radius. v and e must be the mesh the hash was
// built from; only the candidate edges actually read have their vertex
// references checked.
func (h *SpatialHash) QueryEdgeForEdgesWithBBoxCheck(v []mgl64.Vec3, e [][2]int, ea0, ea1 mgl64.Vec3, radius float64, eai int) ([]int, error) {
	if !h.built {
		return nil, nil
	}
	if err := h.checkCounts(v, e, nil); err != nil {
		return nil, err
	}
	var refErr error
	qb := geometry.EdgeBox(ea0, ea1).Inflate(radius)
	keep := func(local int) bool {
		if local <= eai || refErr != nil {
			return false
		}
		if refErr = checkEdge(len(v), e, local); refErr != nil {
			return false
		}
		ed := e[local]
		return geometry.EdgeBox(v[ed[0]], v[ed[1]]).Intersects(qb)
	}
	out := h.queryBox(qb, voxel.KindEdge, keep)
	if refErr != nil {
		return nil, refErr
	}
	return out, nil
}

// QueryTriangleForPoints returns the vertices near triangle t0t1t2, within radius.
func (h *SpatialHash) QueryTriangleForPoints(t0, t1, t2 mgl64.Vec3, radius float64) []int {
	return h.queryBox(geometry.TriangleBox(t0, t1, t2).Inflate(radius), voxel.KindVertex, nil)
}

// QueryTriangleForPointsContinuous returns the vertices near a triangle
// moving from (a0, a1, a2) to (b0, b1, b2).
func (h *SpatialHash) QueryTriangleForPointsContinuous(a0, a1, a2, b0, b1, b2 mgl64.Vec3) []int {
	return h.queryBox(geometry.BoxOf(a0, a1, a2, b0, b1, b2), voxel.KindVertex, nil)
}

// QueryTriangleForEdges returns the edges near triangle t0t1t2, within radius.
func (h *SpatialHash) QueryTriangleForEdges(t0, t1, t2 mgl64.Vec3, radius float64) []int {
	return h.queryBox(geometry.TriangleBox(t0, t1, t2).Inflate(radius), voxel.KindEdge, nil)
}

// QueryEdgeForTriangles returns the triangles near segment e0e1, within radius.
func (h *SpatialHash) QueryEdgeForTriangles(e0, e1 mgl64.Vec3, radius float64) []int {
	return h.queryBox(geometry.EdgeBox(e0, e1).Inflate(radius), voxel.KindFace, nil)
}

// QueryPointForPrimitivesByIndex returns the vertices (other than vi), edges
// and triangles sharing a voxel with vertex vi.
func (h *SpatialHash) QueryPointForPrimitivesByIndex(vi int) (verts, edges, faces []int, err error) {
	occ, err := h.occupancy(voxel.KindVertex, vi)
	if err != nil || occ == nil {
		return nil, nil, nil, err
	}
	s := h.newSplit()
	defer s.release()
	h.gatherVoxels(occ, s.add)
	s.verts.Remove(uint32(vi))
	return toInts(s.verts), toInts(s.edges), toInts(s.faces), nil
}

// QueryPointForEdgesByIndex returns the edges sharing a voxel with vertex vi.
func (h *SpatialHash) QueryPointForEdgesByIndex(vi int) ([]int, error) {
	occ, err := h.occupancy(voxel.KindVertex, vi)
	if err != nil || occ == nil {
		return nil, err
	}
	return h.queryVoxels(occ, voxel.KindEdge, nil), nil
}

// QueryPointForTrianglesByIndex returns the triangles sharing a voxel with vertex vi.
func (h *SpatialHash) QueryPointForTrianglesByIndex(vi int) ([]int, error) {
	occ, err := h.occupancy(voxel.KindVertex, vi)
	if err != nil || occ == nil {
		return nil, err
	}
	return h.queryVoxels(occ, voxel.KindFace, nil), nil
}

// QueryEdgeForEdgesByIndex returns the edges with an index greater than eai
// sharing a voxel with edge eai.
func (h *SpatialHash) QueryEdgeForEdgesByIndex(eai int) ([]int, error) {
	occ, err := h.occupancy(voxel.KindEdge, eai)
	if err != nil || occ == nil {
		return nil, err
	}
	return h.queryVoxels(occ, voxel.KindEdge, above(eai)), nil
}

// QueryEdgeForEdgesWithBBoxCheckByIndex is QueryEdgeForEdgesByIndex followed
// by a swept box test between edge eai and each candidate over (v0, v1). The
// query box is inflated by the build inflation radius.
func (h *SpatialHash) QueryEdgeForEdgesWithBBoxCheckByIndex(v0, v1 []mgl64.Vec3, e [][2]int, eai int) ([]int, error) {
	occ, err := h.occupancy(voxel.KindEdge, eai)
	if err != nil || occ == nil {
		return nil, err
	}
	if len(v0) != len(v1) {
		return nil, fmt.Errorf("%w: %d != %d", ErrSizeMismatch, len(v0), len(v1))
	}
	if err := h.checkCounts(v0, e, nil); err != nil {
		return nil, err
	}
	if err := checkEdge(len(v0), e, eai); err != nil {
		return nil, err
	}
	var refErr error
	qb := geometry.SweptEdgeBox(v0, v1, e[eai]).Inflate(h.opts.inflationRadius)
	keep := func(local int) bool {
		if local <= eai || refErr != nil {
			return false
		}
		if refErr = checkEdge(len(v0), e, local); refErr != nil {
			return false
		}
		return geometry.SweptEdgeBox(v0, v1, e[local]).Intersects(qb)
	}
	out := h.queryVoxels(occ, voxel.KindEdge, keep)
	if refErr != nil {
		return nil, refErr
	}
	return out, nil
}

// occupancy returns the voxels of a vertex or edge. An unbuilt hash yields
// nil without error.
func (h *SpatialHash) occupancy(k voxel.Kind, local int) ([]int32, error) {
	if !h.built {
		return nil, nil
	}
	bound := h.layout.NumVertices()
	if k == voxel.KindEdge {
		bound = h.layout.NumEdges()
	}
	if err := checkIndex(k, local, bound); err != nil {
		return nil, err
	}
	return h.store.Occupancy(h.layout.Encode(k, local)), nil
}

// checkCounts verifies that caller arrays have the built primitive counts.
// A nil f skips the face check.
func (h *SpatialHash) checkCounts(v []mgl64.Vec3, e [][2]int, f [][3]int) error {
	if len(v) != h.layout.NumVertices() || len(e) != h.layout.NumEdges() ||
		(f != nil && len(f) != h.layout.NumFaces()) {
		return fmt.Errorf("%w: got %d vertices, %d edges, %d faces; built with %d, %d, %d",
			ErrMeshMismatch, len(v), len(e), len(f),
			h.layout.NumVertices(), h.layout.NumEdges(), h.layout.NumFaces())
	}
	return nil
}

// checkMesh is checkCounts plus a full topology scan. It costs O(E+F) and
// runs once per mesh-wide query, never per primitive.
func (h *SpatialHash) checkMesh(v []mgl64.Vec3, e [][2]int, f [][3]int) error {
	if err := h.checkCounts(v, e, f); err != nil {
		return err
	}
	return validateTopology(len(v), e, f)
}
