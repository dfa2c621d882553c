package grid

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hupe1980/broadphase/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func unitCube() geometry.AABB {
	return geometry.AABB{Min: mgl64.Vec3{0, 0, 0}, Max: mgl64.Vec3{1, 1, 1}}
}

func TestNew(t *testing.T) {
	g := New(unitCube(), 0.25)
	assert.Equal(t, [3]int{4, 4, 4}, g.Counts())
	assert.Equal(t, 16, g.Count01())
	assert.Equal(t, 64, g.NumVoxels())
	assert.InDelta(t, 0.25, g.VoxelSize(), 1e-12)
}

func TestNew_Degenerate(t *testing.T) {
	t.Run("single point", func(t *testing.T) {
		g := New(geometry.PointBox(mgl64.Vec3{3, 4, 5}), 0)
		assert.Equal(t, [3]int{1, 1, 1}, g.Counts())
		assert.Equal(t, 0, g.Locate(mgl64.Vec3{3, 4, 5}))
		assert.Equal(t, 0, g.Locate(mgl64.Vec3{-100, 100, 0}))
	})

	t.Run("planar", func(t *testing.T) {
		bb := geometry.AABB{Min: mgl64.Vec3{0, 0, 0}, Max: mgl64.Vec3{2, 1, 0}}
		g := New(bb, 0.5)
		assert.Equal(t, [3]int{4, 2, 1}, g.Counts())
	})

	t.Run("empty domain", func(t *testing.T) {
		g := New(geometry.Empty(), 1)
		assert.Equal(t, 1, g.NumVoxels())
	})

	t.Run("nan voxel size", func(t *testing.T) {
		g := New(unitCube(), math.NaN())
		assert.Equal(t, [3]int{1, 1, 1}, g.Counts())
	})

	t.Run("tiny voxel size is coarsened", func(t *testing.T) {
		g := New(unitCube(), 1e-9)
		assert.LessOrEqual(t, float64(g.NumVoxels()), float64(math.MaxInt32))
		assert.Greater(t, g.VoxelSize(), 1e-9)
	})
}

func TestZeroGrid(t *testing.T) {
	var g Grid
	assert.Equal(t, 0, g.NumVoxels())
	assert.Equal(t, [3]int{}, g.Unflatten(5))

	called := false
	g.ForEachVoxel(unitCube(), func(int) { called = true })
	assert.False(t, called)
}

func TestFlattenRoundTrip(t *testing.T) {
	bb := geometry.AABB{Min: mgl64.Vec3{-1, -2, -3}, Max: mgl64.Vec3{2, 1, 0.5}}
	g := New(bb, 0.7)
	c := g.Counts()

	seen := make(map[int]bool, g.NumVoxels())
	for iz := 0; iz < c[2]; iz++ {
		for iy := 0; iy < c[1]; iy++ {
			for ix := 0; ix < c[0]; ix++ {
				v := g.Flatten(ix, iy, iz)
				require.GreaterOrEqual(t, v, 0)
				require.Less(t, v, g.NumVoxels())
				require.False(t, seen[v])
				seen[v] = true
				assert.Equal(t, [3]int{ix, iy, iz}, g.Unflatten(v))
			}
		}
	}
	assert.Len(t, seen, g.NumVoxels())
}

func TestAxisIndexClamps(t *testing.T) {
	g := New(unitCube(), 0.25)

	assert.Equal(t, [3]int{0, 0, 0}, g.AxisIndex(mgl64.Vec3{-5, -5, -5}))
	assert.Equal(t, [3]int{3, 3, 3}, g.AxisIndex(mgl64.Vec3{1, 1, 1}))
	assert.Equal(t, [3]int{3, 3, 3}, g.AxisIndex(mgl64.Vec3{9, 9, 9}))
	assert.Equal(t, [3]int{1, 2, 0}, g.AxisIndex(mgl64.Vec3{0.3, 0.6, 0.1}))
}

func TestForEachVoxel(t *testing.T) {
	g := New(unitCube(), 0.25)

	var got []int
	g.ForEachVoxel(geometry.AABB{Min: mgl64.Vec3{0.3, 0.3, 0}, Max: mgl64.Vec3{0.6, 0.3, 0}}, func(v int) {
		got = append(got, v)
	})
	assert.Equal(t, []int{g.Flatten(1, 1, 0), g.Flatten(2, 1, 0)}, got)

	all := g.AppendVoxels(nil, unitCube().Inflate(10))
	assert.Len(t, all, g.NumVoxels())

	none := g.AppendVoxels(nil, geometry.Empty())
	assert.Empty(t, none)
}

func TestDefaultVoxelSize(t *testing.T) {
	bb := unitCube()

	assert.InDelta(t, 0.1, DefaultVoxelSize(bb, 0.1, 0), 1e-12)
	assert.InDelta(t, 1.0, DefaultVoxelSize(bb, 0, 0), 1e-12)
	assert.InDelta(t, 1.0/MaxVoxelsPerAxis, DefaultVoxelSize(bb, 1e-9, 0), 1e-12)
	assert.InDelta(t, 0.5, DefaultVoxelSize(bb, 0.1, 0.25), 1e-12)
	assert.InDelta(t, 1.0, DefaultVoxelSize(geometry.PointBox(mgl64.Vec3{}), 0, 0), 1e-12)
}
