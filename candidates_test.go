package broadphase

import (
	"sync"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hupe1980/broadphase/candidate"
	"github.com/hupe1980/broadphase/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pairSet map[testutil.Pair]struct{}

func fvSet(c *candidate.Candidates) pairSet {
	s := make(pairSet, len(c.FV))
	for _, p := range c.FV {
		s[testutil.Pair{A: p.Vertex, B: p.Face}] = struct{}{}
	}
	return s
}

func evSet(c *candidate.Candidates) pairSet {
	s := make(pairSet, len(c.EV))
	for _, p := range c.EV {
		s[testutil.Pair{A: p.Vertex, B: p.Edge}] = struct{}{}
	}
	return s
}

func eeSet(c *candidate.Candidates) pairSet {
	s := make(pairSet, len(c.EE))
	for _, p := range c.EE {
		s[testutil.Pair{A: p.EdgeA, B: p.EdgeB}] = struct{}{}
	}
	return s
}

func assertCovers(t *testing.T, got pairSet, want []testutil.Pair, msgAndArgs ...any) {
	t.Helper()
	for _, p := range want {
		if _, ok := got[p]; !ok {
			assert.Failf(t, "missing pair", "pair %v %v", p, msgAndArgs)
		}
	}
}

func allCandidates(o *CandidateOptions) {
	o.QueryVV = true
	o.QueryEV = true
	o.QueryEE = true
	o.QueryFV = true
}

func withRadius(r float64) func(*CandidateOptions) {
	return func(o *CandidateOptions) { o.Radius = r }
}

func TestCandidates_TwoTriangles(t *testing.T) {
	v := []mgl64.Vec3{
		{0, 0, 0}, {1, 0, 0}, {0, 1, 0},
		{0, 0, 0.5}, {1, 0, 0.5}, {0, 1, 0.5},
	}
	f := [][3]int{{0, 1, 2}, {3, 4, 5}}
	e := testutil.EdgesOf(f)

	h, err := NewFromMesh(v, e, f, -1)
	require.NoError(t, err)

	c, err := h.QueryMeshForCandidates(v, e, f, withRadius(1))
	require.NoError(t, err)

	want := []candidate.FaceVertex{
		{Face: 1, Vertex: 0}, {Face: 1, Vertex: 1}, {Face: 1, Vertex: 2},
		{Face: 0, Vertex: 3}, {Face: 0, Vertex: 4}, {Face: 0, Vertex: 5},
	}
	assert.ElementsMatch(t, want, c.FV)
	assert.Empty(t, c.VV)
	assert.Empty(t, c.EV)
	assert.Len(t, c.EE, 9)

	for _, p := range c.EE {
		assert.Less(t, p.EdgeA, p.EdgeB)
	}
}

func TestCandidates_Exclusion(t *testing.T) {
	m := testutil.GridMesh(5, 5, 1)
	h, err := NewFromMesh(m.V, m.E, m.F, 10)
	require.NoError(t, err)

	c, err := h.QueryMeshForCandidates(m.V, m.E, m.F, allCandidates)
	require.NoError(t, err)

	for _, p := range c.VV {
		assert.Less(t, p.VertexA, p.VertexB)
	}
	for _, p := range c.EV {
		ed := m.E[p.Edge]
		assert.NotEqual(t, p.Vertex, ed[0])
		assert.NotEqual(t, p.Vertex, ed[1])
	}
	for _, p := range c.EE {
		a, b := m.E[p.EdgeA], m.E[p.EdgeB]
		assert.Less(t, p.EdgeA, p.EdgeB)
		assert.NotContains(t, []int{b[0], b[1]}, a[0])
		assert.NotContains(t, []int{b[0], b[1]}, a[1])
	}
	for _, p := range c.FV {
		assert.NotContains(t, m.F[p.Face][:], p.Vertex)
	}

	// One voxel holds everything, so every non-incident pair is reported.
	nv := len(m.V)
	assert.Len(t, c.VV, nv*(nv-1)/2)
	assert.Len(t, c.FV, len(m.F)*(nv-3))
	assert.Len(t, c.EV, len(m.E)*(nv-2))
}

func TestCandidates_PairTypes(t *testing.T) {
	m := testutil.GridMesh(4, 4, 1)
	h, err := NewFromMesh(m.V, m.E, m.F, 10)
	require.NoError(t, err)

	c, err := h.QueryMeshForCandidates(m.V, m.E, m.F)
	require.NoError(t, err)
	assert.Empty(t, c.VV)
	assert.Empty(t, c.EV)
	assert.NotEmpty(t, c.EE)
	assert.NotEmpty(t, c.FV)

	c, err = h.QueryMeshForCandidates(m.V, m.E, m.F, func(o *CandidateOptions) {
		*o = CandidateOptions{QueryEV: true}
	})
	require.NoError(t, err)
	assert.Empty(t, c.EE)
	assert.Empty(t, c.FV)
	assert.NotEmpty(t, c.EV)
}

func TestCandidates_Completeness(t *testing.T) {
	rng := testutil.NewRNG(11)
	m := rng.RandomMesh(250, 350, 180, 10)

	h, err := NewFromMesh(m.V, m.E, m.F, -1)
	require.NoError(t, err)

	vb := testutil.VertexBoxes(m.V, m.V)
	eb := testutil.EdgeBoxes(m.V, m.V, m.E)
	fb := testutil.FaceBoxes(m.V, m.V, m.F)

	faceIncident := func(vi, fi int) bool {
		fc := m.F[fi]
		return fc[0] == vi || fc[1] == vi || fc[2] == vi
	}
	edgeIncident := func(vi, ei int) bool {
		ed := m.E[ei]
		return ed[0] == vi || ed[1] == vi
	}
	edgeSkip := func(i, j int) bool {
		a, b := m.E[i], m.E[j]
		return j <= i || a[0] == b[0] || a[0] == b[1] || a[1] == b[0] || a[1] == b[1]
	}

	for _, radius := range []float64{0, 0.1, 0.5, 2} {
		c, err := h.QueryMeshForCandidates(m.V, m.E, m.F, allCandidates, withRadius(radius))
		require.NoError(t, err)

		fv, ev, ee := fvSet(c), evSet(c), eeSet(c)

		assertCovers(t, fv, testutil.BruteForcePointTriangle(m.V, m.F, radius), "exact fv radius", radius)
		assertCovers(t, ev, testutil.BruteForcePointEdge(m.V, m.E, radius), "exact ev radius", radius)
		assertCovers(t, ee, testutil.BruteForceEdgeEdge(m.V, m.E, radius), "exact ee radius", radius)

		assertCovers(t, fv, testutil.BruteForceBoxPairs(vb, fb, radius, faceIncident), "box fv radius", radius)
		assertCovers(t, ev, testutil.BruteForceBoxPairs(vb, eb, radius, edgeIncident), "box ev radius", radius)
		assertCovers(t, ee, testutil.BruteForceBoxPairs(eb, eb, radius, edgeSkip), "box ee radius", radius)
	}
}

func TestCandidates_Continuous(t *testing.T) {
	rng := testutil.NewRNG(5)
	m := rng.RandomMesh(200, 300, 150, 10)
	v1 := rng.Perturb(m.V, 1)

	h, err := NewFromMeshContinuous(m.V, v1, m.E, m.F, -1)
	require.NoError(t, err)

	vb := testutil.VertexBoxes(m.V, v1)
	eb := testutil.EdgeBoxes(m.V, v1, m.E)
	fb := testutil.FaceBoxes(m.V, v1, m.F)

	edgeSkip := func(i, j int) bool {
		a, b := m.E[i], m.E[j]
		return j <= i || a[0] == b[0] || a[0] == b[1] || a[1] == b[0] || a[1] == b[1]
	}
	faceIncident := func(vi, fi int) bool {
		fc := m.F[fi]
		return fc[0] == vi || fc[1] == vi || fc[2] == vi
	}

	for _, radius := range []float64{0, 0.25} {
		c, err := h.QueryMeshForCandidatesContinuous(m.V, v1, m.E, m.F, withRadius(radius))
		require.NoError(t, err)

		assertCovers(t, fvSet(c), testutil.BruteForceBoxPairs(vb, fb, radius, faceIncident), "fv radius", radius)
		assertCovers(t, eeSet(c), testutil.BruteForceBoxPairs(eb, eb, radius, edgeSkip), "ee radius", radius)
	}
}

func TestCandidates_Errors(t *testing.T) {
	m := testutil.GridMesh(4, 4, 1)
	h, err := NewFromMesh(m.V, m.E, m.F, -1)
	require.NoError(t, err)

	t.Run("swept query on static build", func(t *testing.T) {
		_, err := h.QueryMeshForCandidatesContinuous(m.V, m.V, m.E, m.F)
		assert.ErrorIs(t, err, ErrNotContinuous)
	})

	t.Run("mesh mismatch", func(t *testing.T) {
		v := append(append([]mgl64.Vec3(nil), m.V...), mgl64.Vec3{9, 9, 9})
		_, err := h.QueryMeshForCandidates(v, m.E, m.F)
		assert.ErrorIs(t, err, ErrMeshMismatch)

		_, err = h.QueryMeshForCandidates(m.V, m.E, m.F[:1])
		assert.ErrorIs(t, err, ErrMeshMismatch)
	})

	t.Run("size mismatch", func(t *testing.T) {
		_, err := h.QueryMeshForCandidatesContinuous(m.V, m.V[:3], m.E, m.F)
		assert.ErrorIs(t, err, ErrSizeMismatch)
	})

	t.Run("bad topology", func(t *testing.T) {
		e := append([][2]int(nil), m.E...)
		e[0] = [2]int{0, 42}
		_, err := h.QueryMeshForCandidates(m.V, e, m.F)
		assert.ErrorIs(t, err, ErrIndexOutOfRange)
	})

	t.Run("static query on continuous build", func(t *testing.T) {
		hc, err := NewFromMeshContinuous(m.V, m.V, m.E, m.F, -1)
		require.NoError(t, err)
		c, err := hc.QueryMeshForCandidates(m.V, m.E, m.F)
		require.NoError(t, err)
		assert.False(t, c.IsEmpty())
	})
}

func TestCandidates_ConcurrencyDeterministic(t *testing.T) {
	m := testutil.GridMesh(30, 30, 0.1)

	seq, err := NewFromMesh(m.V, m.E, m.F, -1, WithConcurrency(1))
	require.NoError(t, err)
	par, err := NewFromMesh(m.V, m.E, m.F, -1, WithConcurrency(8))
	require.NoError(t, err)

	for _, radius := range []float64{0, 0.05} {
		want, err := seq.QueryMeshForCandidates(m.V, m.E, m.F, allCandidates, withRadius(radius))
		require.NoError(t, err)
		got, err := par.QueryMeshForCandidates(m.V, m.E, m.F, allCandidates, withRadius(radius))
		require.NoError(t, err)

		assert.Equal(t, want, got)
		assert.False(t, got.IsEmpty())
	}
}

func TestConcurrentQueries(t *testing.T) {
	rng := testutil.NewRNG(9)
	m := rng.RandomMesh(300, 400, 200, 10)
	h, err := NewFromMesh(m.V, m.E, m.F, -1)
	require.NoError(t, err)

	want, err := h.QueryMeshForCandidates(m.V, m.E, m.F)
	require.NoError(t, err)

	wantTris := make([][]int, len(m.V))
	for vi, p := range m.V {
		wantTris[vi] = h.QueryPointForTriangles(p, 0.2)
	}

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := h.QueryMeshForCandidates(m.V, m.E, m.F)
			assert.NoError(t, err)
			assert.Equal(t, want, got)

			for vi, p := range m.V {
				assert.Equal(t, wantTris[vi], h.QueryPointForTriangles(p, 0.2))
			}
		}()
	}
	wg.Wait()
}

func TestCandidates_Unbuilt(t *testing.T) {
	m := testutil.GridMesh(3, 3, 1)
	c, err := New().QueryMeshForCandidatesContinuous(m.V, m.V, m.E, m.F)
	require.NoError(t, err)
	assert.True(t, c.IsEmpty())
}
