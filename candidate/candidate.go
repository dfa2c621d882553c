package candidate

import (
	"cmp"
	"fmt"
	"slices"
)

// VertexVertex is a pair of vertices with VertexA < VertexB.
type VertexVertex struct {
	VertexA int
	VertexB int
}

// EdgeVertex is a vertex that is not an endpoint of the edge.
type EdgeVertex struct {
	Edge   int
	Vertex int
}

// EdgeEdge is a pair of edges with EdgeA < EdgeB sharing no vertex.
type EdgeEdge struct {
	EdgeA int
	EdgeB int
}

// FaceVertex is a vertex that is not a corner of the face.
type FaceVertex struct {
	Face   int
	Vertex int
}

// Candidates is the broad-phase result partitioned by pair type.
type Candidates struct {
	VV []VertexVertex
	EV []EdgeVertex
	EE []EdgeEdge
	FV []FaceVertex
}

// Len returns the total number of pairs.
func (c *Candidates) Len() int {
	return len(c.VV) + len(c.EV) + len(c.EE) + len(c.FV)
}

// IsEmpty reports whether there are no pairs.
func (c *Candidates) IsEmpty() bool {
	return c.Len() == 0
}

// Clear empties all partitions, keeping their capacity.
func (c *Candidates) Clear() {
	c.VV = c.VV[:0]
	c.EV = c.EV[:0]
	c.EE = c.EE[:0]
	c.FV = c.FV[:0]
}

// Append adds every pair of other, partition by partition.
func (c *Candidates) Append(other *Candidates) {
	c.VV = append(c.VV, other.VV...)
	c.EV = append(c.EV, other.EV...)
	c.EE = append(c.EE, other.EE...)
	c.FV = append(c.FV, other.FV...)
}

// Sort orders every partition lexicographically. Useful to compare results of
// two runs independent of insertion order.
func (c *Candidates) Sort() {
	slices.SortFunc(c.VV, func(a, b VertexVertex) int {
		return cmp.Or(cmp.Compare(a.VertexA, b.VertexA), cmp.Compare(a.VertexB, b.VertexB))
	})
	slices.SortFunc(c.EV, func(a, b EdgeVertex) int {
		return cmp.Or(cmp.Compare(a.Edge, b.Edge), cmp.Compare(a.Vertex, b.Vertex))
	})
	slices.SortFunc(c.EE, func(a, b EdgeEdge) int {
		return cmp.Or(cmp.Compare(a.EdgeA, b.EdgeA), cmp.Compare(a.EdgeB, b.EdgeB))
	})
	slices.SortFunc(c.FV, func(a, b FaceVertex) int {
		return cmp.Or(cmp.Compare(a.Face, b.Face), cmp.Compare(a.Vertex, b.Vertex))
	})
}

// String returns a short summary of partition sizes.
func (c *Candidates) String() string {
	return fmt.Sprintf("candidates{vv=%d ev=%d ee=%d fv=%d}", len(c.VV), len(c.EV), len(c.EE), len(c.FV))
}
