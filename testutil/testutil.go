package testutil

import (
	"math/rand"
	"sync"

	"github.com/go-gl/mathgl/mgl64"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Float64 returns a pseudo-random number in [0.0,1.0).
func (r *RNG) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Float64()
}

// UniformPoints generates num points uniformly in [0, scale)^3.
func (r *RNG) UniformPoints(num int, scale float64) []mgl64.Vec3 {
	r.mu.Lock()
	defer r.mu.Unlock()

	pts := make([]mgl64.Vec3, num)
	for i := range pts {
		pts[i] = mgl64.Vec3{
			r.rand.Float64() * scale,
			r.rand.Float64() * scale,
			r.rand.Float64() * scale,
		}
	}
	return pts
}

// Perturb returns a copy of v with every coordinate moved by a uniform
// offset in [-amplitude, amplitude).
func (r *RNG) Perturb(v []mgl64.Vec3, amplitude float64) []mgl64.Vec3 {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]mgl64.Vec3, len(v))
	for i, p := range v {
		for k := 0; k < 3; k++ {
			out[i][k] = p[k] + (r.rand.Float64()*2-1)*amplitude
		}
	}
	return out
}

// Mesh is a test mesh.
type Mesh struct {
	V []mgl64.Vec3
	E [][2]int
	F [][3]int
}

// RandomMesh generates a soup of random vertices, edges and triangles in
// [0, scale)^3. Edges and triangles reference distinct vertices and are
// short relative to scale, so the grid has more than one voxel.
func (r *RNG) RandomMesh(numVertices, numEdges, numFaces int, scale float64) Mesh {
	m := Mesh{V: r.UniformPoints(numVertices, scale)}

	r.mu.Lock()
	defer r.mu.Unlock()

	if numVertices < 3 {
		numFaces = 0
	}
	if numVertices < 2 {
		numEdges = 0
	}

	for range numEdges {
		a := r.rand.Intn(numVertices)
		b := r.nearLocked(m.V, a, scale/4)
		m.E = append(m.E, [2]int{a, b})
	}
	for range numFaces {
		a := r.rand.Intn(numVertices)
		b := r.nearLocked(m.V, a, scale/4)
		c := r.nearLocked(m.V, a, scale/4)
		for c == b {
			c = (c + 1) % numVertices
			if c == a {
				c = (c + 1) % numVertices
			}
		}
		m.F = append(m.F, [3]int{a, b, c})
	}
	return m
}

// nearLocked picks a vertex other than a, preferring ones within dist.
func (r *RNG) nearLocked(v []mgl64.Vec3, a int, dist float64) int {
	for range 16 {
		b := r.rand.Intn(len(v))
		if b != a && v[a].Sub(v[b]).Len() <= dist {
			return b
		}
	}
	return (a + 1 + r.rand.Intn(len(v)-1)) % len(v)
}

// GridMesh returns an nx by ny cloth patch in the z = 0 plane with spacing h.
// Every quad is split into two triangles; edges are the unique triangle edges.
func GridMesh(nx, ny int, h float64) Mesh {
	var m Mesh
	for j := 0; j < ny; j++ {
		for i := 0; i < nx; i++ {
			m.V = append(m.V, mgl64.Vec3{float64(i) * h, float64(j) * h, 0})
		}
	}
	id := func(i, j int) int { return j*nx + i }
	for j := 0; j+1 < ny; j++ {
		for i := 0; i+1 < nx; i++ {
			a, b, c, d := id(i, j), id(i+1, j), id(i+1, j+1), id(i, j+1)
			m.F = append(m.F, [3]int{a, b, c}, [3]int{a, c, d})
		}
	}
	m.E = EdgesOf(m.F)
	if len(m.F) == 0 {
		for j := 0; j < ny; j++ {
			for i := 0; i+1 < nx; i++ {
				m.E = append(m.E, [2]int{id(i, j), id(i+1, j)})
			}
		}
		for j := 0; j+1 < ny; j++ {
			for i := 0; i < nx; i++ {
				m.E = append(m.E, [2]int{id(i, j), id(i, j+1)})
			}
		}
	}
	return m
}

// EdgesOf returns the unique undirected edges of a triangle list in order of
// first appearance.
func EdgesOf(f [][3]int) [][2]int {
	seen := make(map[[2]int]bool)
	var e [][2]int
	for _, fc := range f {
		for k := 0; k < 3; k++ {
			a, b := fc[k], fc[(k+1)%3]
			if a > b {
				a, b = b, a
			}
			key := [2]int{a, b}
			if !seen[key] {
				seen[key] = true
				e = append(e, key)
			}
		}
	}
	return e
}

// Translate returns a copy of v moved by d.
func Translate(v []mgl64.Vec3, d mgl64.Vec3) []mgl64.Vec3 {
	out := make([]mgl64.Vec3, len(v))
	for i, p := range v {
		out[i] = p.Add(d)
	}
	return out
}
