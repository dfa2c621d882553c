package candidate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCandidates(t *testing.T) {
	var c Candidates
	assert.True(t, c.IsEmpty())

	c.EE = append(c.EE, EdgeEdge{EdgeA: 3, EdgeB: 5}, EdgeEdge{EdgeA: 1, EdgeB: 4})
	c.FV = append(c.FV, FaceVertex{Face: 2, Vertex: 9}, FaceVertex{Face: 0, Vertex: 1})
	assert.Equal(t, 4, c.Len())
	assert.Equal(t, "candidates{vv=0 ev=0 ee=2 fv=2}", c.String())

	c.Sort()
	assert.Equal(t, []EdgeEdge{{1, 4}, {3, 5}}, c.EE)
	assert.Equal(t, []FaceVertex{{0, 1}, {2, 9}}, c.FV)

	other := Candidates{
		VV: []VertexVertex{{VertexA: 0, VertexB: 1}},
		EV: []EdgeVertex{{Edge: 1, Vertex: 7}},
	}
	c.Append(&other)
	assert.Equal(t, 6, c.Len())

	c.Clear()
	assert.True(t, c.IsEmpty())
	assert.GreaterOrEqual(t, cap(c.EE), 2)
}
