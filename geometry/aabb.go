package geometry

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// AABB is an axis-aligned bounding box. A box with Min > Max on any axis is empty.
type AABB struct {
	Min mgl64.Vec3
	Max mgl64.Vec3
}

// Empty returns the identity box for Union and Include.
func Empty() AABB {
	inf := math.Inf(1)
	return AABB{
		Min: mgl64.Vec3{inf, inf, inf},
		Max: mgl64.Vec3{-inf, -inf, -inf},
	}
}

// PointBox returns the degenerate box of a single point.
func PointBox(p mgl64.Vec3) AABB {
	return AABB{Min: p, Max: p}
}

// EdgeBox returns the box of the segment ab.
func EdgeBox(a, b mgl64.Vec3) AABB {
	return PointBox(a).Include(b)
}

// TriangleBox returns the box of the triangle abc.
func TriangleBox(a, b, c mgl64.Vec3) AABB {
	return PointBox(a).Include(b).Include(c)
}

// BoxOf returns the box of all points, or Empty for none.
func BoxOf(points ...mgl64.Vec3) AABB {
	bb := Empty()
	for _, p := range points {
		bb = bb.Include(p)
	}
	return bb
}

// IsEmpty reports whether the box contains no point.
func (bb AABB) IsEmpty() bool {
	return bb.Min[0] > bb.Max[0] || bb.Min[1] > bb.Max[1] || bb.Min[2] > bb.Max[2]
}

// Include returns the smallest box containing bb and p.
func (bb AABB) Include(p mgl64.Vec3) AABB {
	for i := 0; i < 3; i++ {
		bb.Min[i] = math.Min(bb.Min[i], p[i])
		bb.Max[i] = math.Max(bb.Max[i], p[i])
	}
	return bb
}

// Union returns the smallest box containing both boxes.
func (bb AABB) Union(other AABB) AABB {
	for i := 0; i < 3; i++ {
		bb.Min[i] = math.Min(bb.Min[i], other.Min[i])
		bb.Max[i] = math.Max(bb.Max[i], other.Max[i])
	}
	return bb
}

// Inflate grows the box by r on every side. Non-positive r is a no-op.
func (bb AABB) Inflate(r float64) AABB {
	if r <= 0 || bb.IsEmpty() {
		return bb
	}
	for i := 0; i < 3; i++ {
		bb.Min[i] -= r
		bb.Max[i] += r
	}
	return bb
}

// Intersects reports whether the closed boxes overlap.
func (bb AABB) Intersects(other AABB) bool {
	for i := 0; i < 3; i++ {
		if bb.Min[i] > other.Max[i] || other.Min[i] > bb.Max[i] {
			return false
		}
	}
	return true
}

// Contains reports whether p lies in the closed box.
func (bb AABB) Contains(p mgl64.Vec3) bool {
	for i := 0; i < 3; i++ {
		if p[i] < bb.Min[i] || p[i] > bb.Max[i] {
			return false
		}
	}
	return true
}

// Extent returns the per-axis size of the box, zero for an empty box.
func (bb AABB) Extent() mgl64.Vec3 {
	if bb.IsEmpty() {
		return mgl64.Vec3{}
	}
	return bb.Max.Sub(bb.Min)
}

// MaxExtent returns the largest per-axis size.
func (bb AABB) MaxExtent() float64 {
	e := bb.Extent()
	return math.Max(e[0], math.Max(e[1], e[2]))
}

// IsFinite reports whether every coordinate of p is a finite number.
func IsFinite(p mgl64.Vec3) bool {
	for i := 0; i < 3; i++ {
		if math.IsNaN(p[i]) || math.IsInf(p[i], 0) {
			return false
		}
	}
	return true
}
