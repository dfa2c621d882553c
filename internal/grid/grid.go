package grid

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hupe1980/broadphase/geometry"
	"github.com/hupe1980/broadphase/internal/conv"
)

// MaxVoxelsPerAxis bounds the resolution of the automatic voxel size.
const MaxVoxelsPerAxis = 1024

// maxVoxels keeps flattened indices inside int32.
const maxVoxels = math.MaxInt32

// Grid is a uniform voxel grid over an axis-aligned domain.
type Grid struct {
	origin       mgl64.Vec3
	upper        mgl64.Vec3
	voxelSize    float64
	invVoxelSize float64
	counts       [3]int
	count01      int
}

// New builds a grid over domain. Non-positive or non-finite voxel sizes
// fall back to a single voxel spanning the largest extent.
func New(domain geometry.AABB, voxelSize float64) Grid {
	if domain.IsEmpty() {
		domain = geometry.PointBox(mgl64.Vec3{})
	}

	extent := domain.Extent()
	maxExtent := domain.MaxExtent()

	if !(voxelSize > 0) || math.IsInf(voxelSize, 0) {
		voxelSize = maxExtent
	}
	if !(voxelSize > 0) {
		voxelSize = 1
	}

	var counts [3]int
	for {
		total := 1.0
		for i := 0; i < 3; i++ {
			c := math.Ceil(extent[i] / voxelSize)
			if c < 1 {
				c = 1
			}
			counts[i] = int(math.Min(c, maxVoxels))
			total *= c
		}
		if total <= maxVoxels {
			break
		}
		// Coarsen until the flattened index fits.
		voxelSize *= math.Cbrt(total/maxVoxels) * 1.01
	}

	return Grid{
		origin:       domain.Min,
		upper:        domain.Max,
		voxelSize:    voxelSize,
		invVoxelSize: 1 / voxelSize,
		counts:       counts,
		count01:      counts[0] * counts[1],
	}
}

// DefaultVoxelSize derives a voxel size from the mean edge length of a mesh,
// floored so the grid never exceeds MaxVoxelsPerAxis along its largest axis
// and never drops below twice the inflation radius.
func DefaultVoxelSize(domain geometry.AABB, meanEdgeLength, inflationRadius float64) float64 {
	size := meanEdgeLength
	maxExtent := domain.MaxExtent()
	if !(size > 0) {
		size = maxExtent
	}
	if floor := maxExtent / MaxVoxelsPerAxis; size < floor {
		size = floor
	}
	if floor := 2 * inflationRadius; size < floor {
		size = floor
	}
	if !(size > 0) {
		size = 1
	}
	return size
}

// VoxelSize returns the edge length of one voxel.
func (g Grid) VoxelSize() float64 { return g.voxelSize }

// Counts returns the number of voxels along each axis.
func (g Grid) Counts() [3]int { return g.counts }

// Count01 returns the number of voxels in one z layer.
func (g Grid) Count01() int { return g.count01 }

// NumVoxels returns the total number of voxels.
func (g Grid) NumVoxels() int { return g.count01 * g.counts[2] }

// Domain returns the box the grid covers.
func (g Grid) Domain() geometry.AABB {
	return geometry.AABB{Min: g.origin, Max: g.upper}
}

// AxisIndex returns the clamped per-axis voxel coordinate of p.
func (g Grid) AxisIndex(p mgl64.Vec3) [3]int {
	var idx [3]int
	for i := 0; i < 3; i++ {
		idx[i] = conv.FloatToAxisIndex((p[i]-g.origin[i])*g.invVoxelSize, g.counts[i])
	}
	return idx
}

// Flatten converts a per-axis coordinate to a voxel index.
func (g Grid) Flatten(ix, iy, iz int) int {
	return ix + iy*g.counts[0] + iz*g.count01
}

// Unflatten converts a voxel index back to per-axis coordinates.
func (g Grid) Unflatten(v int) [3]int {
	if g.count01 == 0 {
		return [3]int{}
	}
	iz := v / g.count01
	rem := v - iz*g.count01
	iy := rem / g.counts[0]
	return [3]int{rem - iy*g.counts[0], iy, iz}
}

// Locate returns the voxel index containing p.
func (g Grid) Locate(p mgl64.Vec3) int {
	idx := g.AxisIndex(p)
	return g.Flatten(idx[0], idx[1], idx[2])
}

// Range returns the inclusive per-axis voxel range covered by bb.
func (g Grid) Range(bb geometry.AABB) (lo, hi [3]int) {
	return g.AxisIndex(bb.Min), g.AxisIndex(bb.Max)
}

// ForEachVoxel calls fn with every voxel index overlapped by bb, z-major.
func (g Grid) ForEachVoxel(bb geometry.AABB, fn func(v int)) {
	if bb.IsEmpty() || g.count01 == 0 {
		return
	}
	lo, hi := g.Range(bb)
	for iz := lo[2]; iz <= hi[2]; iz++ {
		zOff := iz * g.count01
		for iy := lo[1]; iy <= hi[1]; iy++ {
			yzOff := zOff + iy*g.counts[0]
			for ix := lo[0]; ix <= hi[0]; ix++ {
				fn(yzOff + ix)
			}
		}
	}
}

// AppendVoxels appends every voxel index overlapped by bb to dst.
func (g Grid) AppendVoxels(dst []int32, bb geometry.AABB) []int32 {
	g.ForEachVoxel(bb, func(v int) {
		dst = append(dst, int32(v))
	})
	return dst
}
