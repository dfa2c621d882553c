package testutil

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hupe1980/broadphase/geometry"
)

// Pair is an ordered pair of local indices (a of the first kind, b of the second).
type Pair struct {
	A, B int
}

// BruteForceBoxPairs returns every pair (i, j) with boxesA[i] inflated by
// radius intersecting boxesB[j], skipping pairs rejected by skip.
func BruteForceBoxPairs(boxesA, boxesB []geometry.AABB, radius float64, skip func(i, j int) bool) []Pair {
	var out []Pair
	for i, a := range boxesA {
		qa := a.Inflate(radius)
		for j, b := range boxesB {
			if skip != nil && skip(i, j) {
				continue
			}
			if qa.Intersects(b) {
				out = append(out, Pair{A: i, B: j})
			}
		}
	}
	return out
}

// VertexBoxes returns the swept boxes of all vertices.
func VertexBoxes(v0, v1 []mgl64.Vec3) []geometry.AABB {
	out := make([]geometry.AABB, len(v0))
	for i := range v0 {
		out[i] = geometry.VertexBox(v0, v1, i)
	}
	return out
}

// EdgeBoxes returns the swept boxes of all edges.
func EdgeBoxes(v0, v1 []mgl64.Vec3, e [][2]int) []geometry.AABB {
	out := make([]geometry.AABB, len(e))
	for i, ed := range e {
		out[i] = geometry.SweptEdgeBox(v0, v1, ed)
	}
	return out
}

// FaceBoxes returns the swept boxes of all triangles.
func FaceBoxes(v0, v1 []mgl64.Vec3, f [][3]int) []geometry.AABB {
	out := make([]geometry.AABB, len(f))
	for i, fc := range f {
		out[i] = geometry.SweptTriangleBox(v0, v1, fc)
	}
	return out
}

// BruteForcePointTriangle returns every (vertex, face) pair of a static mesh
// whose exact distance is at most radius, skipping incident pairs.
func BruteForcePointTriangle(v []mgl64.Vec3, f [][3]int, radius float64) []Pair {
	var out []Pair
	for vi, p := range v {
		for fi, fc := range f {
			if fc[0] == vi || fc[1] == vi || fc[2] == vi {
				continue
			}
			if PointTriangleDistance(p, v[fc[0]], v[fc[1]], v[fc[2]]) <= radius {
				out = append(out, Pair{A: vi, B: fi})
			}
		}
	}
	return out
}

// BruteForcePointEdge returns every (vertex, edge) pair of a static mesh whose
// exact distance is at most radius, skipping incident pairs.
func BruteForcePointEdge(v []mgl64.Vec3, e [][2]int, radius float64) []Pair {
	var out []Pair
	for vi, p := range v {
		for ei, ed := range e {
			if ed[0] == vi || ed[1] == vi {
				continue
			}
			if PointSegmentDistance(p, v[ed[0]], v[ed[1]]) <= radius {
				out = append(out, Pair{A: vi, B: ei})
			}
		}
	}
	return out
}

// BruteForceEdgeEdge returns every (ea, eb) pair with ea < eb of a static
// mesh whose exact distance is at most radius, skipping adjacent edges.
func BruteForceEdgeEdge(v []mgl64.Vec3, e [][2]int, radius float64) []Pair {
	var out []Pair
	for ea := range e {
		for eb := ea + 1; eb < len(e); eb++ {
			a, b := e[ea], e[eb]
			if a[0] == b[0] || a[0] == b[1] || a[1] == b[0] || a[1] == b[1] {
				continue
			}
			if SegmentSegmentDistance(v[a[0]], v[a[1]], v[b[0]], v[b[1]]) <= radius {
				out = append(out, Pair{A: ea, B: eb})
			}
		}
	}
	return out
}

// PointSegmentDistance returns the distance from p to segment ab.
func PointSegmentDistance(p, a, b mgl64.Vec3) float64 {
	ab := b.Sub(a)
	den := ab.Dot(ab)
	if den == 0 {
		return p.Sub(a).Len()
	}
	t := clamp01(p.Sub(a).Dot(ab) / den)
	return p.Sub(a.Add(ab.Mul(t))).Len()
}

// PointTriangleDistance returns the distance from p to triangle abc.
func PointTriangleDistance(p, a, b, c mgl64.Vec3) float64 {
	return p.Sub(closestPointTriangle(p, a, b, c)).Len()
}

// SegmentSegmentDistance returns the distance between segments p1q1 and p2q2.
func SegmentSegmentDistance(p1, q1, p2, q2 mgl64.Vec3) float64 {
	d1 := q1.Sub(p1)
	d2 := q2.Sub(p2)
	r := p1.Sub(p2)
	a := d1.Dot(d1)
	e := d2.Dot(d2)
	f := d2.Dot(r)

	var s, t float64
	switch {
	case a == 0 && e == 0:
		return r.Len()
	case a == 0:
		t = clamp01(f / e)
	default:
		c := d1.Dot(r)
		if e == 0 {
			s = clamp01(-c / a)
		} else {
			b := d1.Dot(d2)
			den := a*e - b*b
			if den != 0 {
				s = clamp01((b*f - c*e) / den)
			}
			t = (b*s + f) / e
			if t < 0 {
				t = 0
				s = clamp01(-c / a)
			} else if t > 1 {
				t = 1
				s = clamp01((b - c) / a)
			}
		}
	}
	c1 := p1.Add(d1.Mul(s))
	c2 := p2.Add(d2.Mul(t))
	return c1.Sub(c2).Len()
}

func closestPointTriangle(p, a, b, c mgl64.Vec3) mgl64.Vec3 {
	ab := b.Sub(a)
	ac := c.Sub(a)
	ap := p.Sub(a)
	d1, d2 := ab.Dot(ap), ac.Dot(ap)
	if d1 <= 0 && d2 <= 0 {
		return a
	}
	bp := p.Sub(b)
	d3, d4 := ab.Dot(bp), ac.Dot(bp)
	if d3 >= 0 && d4 <= d3 {
		return b
	}
	vc := d1*d4 - d3*d2
	if vc <= 0 && d1 >= 0 && d3 <= 0 {
		return a.Add(ab.Mul(d1 / (d1 - d3)))
	}
	cp := p.Sub(c)
	d5, d6 := ab.Dot(cp), ac.Dot(cp)
	if d6 >= 0 && d5 <= d6 {
		return c
	}
	vb := d5*d2 - d1*d6
	if vb <= 0 && d2 >= 0 && d6 <= 0 {
		return a.Add(ac.Mul(d2 / (d2 - d6)))
	}
	va := d3*d6 - d5*d4
	if va <= 0 && (d4-d3) >= 0 && (d5-d6) >= 0 {
		return b.Add(c.Sub(b).Mul((d4 - d3) / ((d4 - d3) + (d5 - d6))))
	}
	den := va + vb + vc
	if den == 0 || math.IsNaN(den) {
		// Degenerate triangle: fall back to its edges.
		return nearestOf(p, a, b, c)
	}
	v := vb / den
	w := vc / den
	return a.Add(ab.Mul(v)).Add(ac.Mul(w))
}

func nearestOf(p, a, b, c mgl64.Vec3) mgl64.Vec3 {
	best := a
	bestD := math.Inf(1)
	for _, s := range [][2]mgl64.Vec3{{a, b}, {b, c}, {c, a}} {
		ab := s[1].Sub(s[0])
		t := 0.0
		if den := ab.Dot(ab); den > 0 {
			t = clamp01(p.Sub(s[0]).Dot(ab) / den)
		}
		q := s[0].Add(ab.Mul(t))
		if d := p.Sub(q).Len(); d < bestD {
			best, bestD = q, d
		}
	}
	return best
}

func clamp01(x float64) float64 {
	return math.Max(0, math.Min(1, x))
}
