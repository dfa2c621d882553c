package geometry

import "github.com/go-gl/mathgl/mgl64"

// Lift2D embeds planar positions into the z = 0 plane.
func Lift2D(points []mgl64.Vec2) []mgl64.Vec3 {
	out := make([]mgl64.Vec3, len(points))
	for i, p := range points {
		out[i] = p.Vec3(0)
	}
	return out
}

// Bounds returns the box of a position array.
func Bounds(v []mgl64.Vec3) AABB {
	return BoxOf(v...)
}

// AverageEdgeLength returns the mean edge length, averaged over both time
// steps. It returns 0 when there are no edges.
func AverageEdgeLength(v0, v1 []mgl64.Vec3, e [][2]int) float64 {
	if len(e) == 0 {
		return 0
	}
	var sum float64
	for _, ed := range e {
		sum += v0[ed[0]].Sub(v0[ed[1]]).Len()
		sum += v1[ed[0]].Sub(v1[ed[1]]).Len()
	}
	return sum / float64(2*len(e))
}

// VertexBox returns the swept box of vertex vi between v0 and v1.
func VertexBox(v0, v1 []mgl64.Vec3, vi int) AABB {
	return EdgeBox(v0[vi], v1[vi])
}

// SweptEdgeBox returns the box of edge ed over both time steps.
func SweptEdgeBox(v0, v1 []mgl64.Vec3, ed [2]int) AABB {
	return BoxOf(v0[ed[0]], v0[ed[1]], v1[ed[0]], v1[ed[1]])
}

// SweptTriangleBox returns the box of face f over both time steps.
func SweptTriangleBox(v0, v1 []mgl64.Vec3, f [3]int) AABB {
	return BoxOf(v0[f[0]], v0[f[1]], v0[f[2]], v1[f[0]], v1[f[1]], v1[f[2]])
}
