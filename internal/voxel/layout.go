package voxel

import "fmt"

// Kind identifies the primitive family of a combined id.
type Kind uint8

const (
	// KindVertex is a mesh vertex.
	KindVertex Kind = iota
	// KindEdge is a mesh edge.
	KindEdge
	// KindFace is a mesh triangle.
	KindFace
)

func (k Kind) String() string {
	switch k {
	case KindVertex:
		return "vertex"
	case KindEdge:
		return "edge"
	case KindFace:
		return "face"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Layout partitions the combined id space:
// [0, EdgeStart) vertices, [EdgeStart, FaceStart) edges, [FaceStart, End) faces.
type Layout struct {
	EdgeStart int32
	FaceStart int32
	End       int32
}

// NewLayout returns the layout for the given primitive counts. The caller
// guarantees the total fits in int32.
func NewLayout(numVertices, numEdges, numFaces int) Layout {
	return Layout{
		EdgeStart: int32(numVertices),
		FaceStart: int32(numVertices + numEdges),
		End:       int32(numVertices + numEdges + numFaces),
	}
}

// NumVertices returns the number of vertex ids.
func (l Layout) NumVertices() int { return int(l.EdgeStart) }

// NumEdges returns the number of edge ids.
func (l Layout) NumEdges() int { return int(l.FaceStart - l.EdgeStart) }

// NumFaces returns the number of face ids.
func (l Layout) NumFaces() int { return int(l.End - l.FaceStart) }

// Encode returns the combined id of the local index of a kind.
func (l Layout) Encode(k Kind, local int) int32 {
	switch k {
	case KindEdge:
		return l.EdgeStart + int32(local)
	case KindFace:
		return l.FaceStart + int32(local)
	default:
		return int32(local)
	}
}

// Decode splits a combined id into kind and local index.
func (l Layout) Decode(id int32) (Kind, int) {
	switch {
	case id < l.EdgeStart:
		return KindVertex, int(id)
	case id < l.FaceStart:
		return KindEdge, int(id - l.EdgeStart)
	default:
		return KindFace, int(id - l.FaceStart)
	}
}

// Local returns the local index of id if it belongs to kind k.
func (l Layout) Local(k Kind, id int32) (int, bool) {
	switch k {
	case KindVertex:
		if id >= 0 && id < l.EdgeStart {
			return int(id), true
		}
	case KindEdge:
		if id >= l.EdgeStart && id < l.FaceStart {
			return int(id - l.EdgeStart), true
		}
	case KindFace:
		if id >= l.FaceStart && id < l.End {
			return int(id - l.FaceStart), true
		}
	}
	return 0, false
}
