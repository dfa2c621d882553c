package broadphase

import (
	"fmt"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hupe1980/broadphase/geometry"
	"github.com/hupe1980/broadphase/internal/conv"
	"github.com/hupe1980/broadphase/internal/grid"
	"github.com/hupe1980/broadphase/internal/voxel"
)

// BuildInfo describes the grid produced by the last build.
type BuildInfo struct {
	Vertices  int
	Edges     int
	Faces     int
	VoxelSize float64
	Counts    [3]int
	Buckets   int
}

// Stats reports the occupancy of a built hash.
type Stats struct {
	BuildInfo
	Entries        int
	MaxBucketSize  int
	MeanBucketSize float64
}

// SpatialHash is a uniform voxel hash over the points, edges and triangles of
// a mesh, at one time step or swept between two.
//
// Build and Clear require exclusive access. Once built, every query method
// is safe for concurrent use.
type SpatialHash struct {
	opts       options
	grid       grid.Grid
	layout     voxel.Layout
	store      *voxel.Store
	built      bool
	continuous bool
}

// New creates an empty SpatialHash. Queries return no results until Build
// or BuildContinuous succeeds.
func New(optFns ...Option) *SpatialHash {
	return &SpatialHash{
		opts: applyOptions(optFns),
	}
}

// NewFromMesh creates a SpatialHash and builds it from a static mesh.
func NewFromMesh(v []mgl64.Vec3, e [][2]int, f [][3]int, voxelSize float64, optFns ...Option) (*SpatialHash, error) {
	h := New(optFns...)
	if err := h.Build(v, e, f, voxelSize); err != nil {
		return nil, err
	}
	return h, nil
}

// NewFromMeshContinuous creates a SpatialHash and builds it from two time steps.
func NewFromMeshContinuous(v0, v1 []mgl64.Vec3, e [][2]int, f [][3]int, voxelSize float64, optFns ...Option) (*SpatialHash, error) {
	h := New(optFns...)
	if err := h.BuildContinuous(v0, v1, e, f, voxelSize); err != nil {
		return nil, err
	}
	return h, nil
}

// Build rasterizes the mesh (v, e, f) at a single time step.
//
// A non-positive voxelSize falls back to WithVoxelSize and then to the mean
// edge length. The hash keeps no reference to the arrays.
func (h *SpatialHash) Build(v []mgl64.Vec3, e [][2]int, f [][3]int, voxelSize float64) error {
	return h.build(v, v, e, f, voxelSize, false)
}

// BuildContinuous rasterizes every primitive swept from v0 to v1. The grid
// domain is the union of both time steps.
func (h *SpatialHash) BuildContinuous(v0, v1 []mgl64.Vec3, e [][2]int, f [][3]int, voxelSize float64) error {
	return h.build(v0, v1, e, f, voxelSize, true)
}

func (h *SpatialHash) build(v0, v1 []mgl64.Vec3, e [][2]int, f [][3]int, voxelSize float64, continuous bool) error {
	start := time.Now()
	info := BuildInfo{Vertices: len(v0), Edges: len(e), Faces: len(f)}

	h.Clear()

	err := validateMesh(v0, v1, e, f)
	if err != nil {
		err = fmt.Errorf("build: %w", err)
		h.opts.logger.LogBuild(continuous, info, time.Since(start), err)
		h.opts.metricsCollector.RecordBuild(0, 0, time.Since(start), err)
		return err
	}

	r := h.opts.inflationRadius
	domain := geometry.Bounds(v0).Union(geometry.Bounds(v1)).Inflate(r)

	if voxelSize <= 0 {
		voxelSize = h.opts.voxelSize
	}
	if voxelSize <= 0 {
		voxelSize = grid.DefaultVoxelSize(domain, geometry.AverageEdgeLength(v0, v1, e), r)
	}

	h.grid = grid.New(domain, voxelSize)
	h.layout = voxel.NewLayout(len(v0), len(e), len(f))
	h.store = voxel.NewStore(len(v0) + len(e))

	for vi := range v0 {
		box := geometry.VertexBox(v0, v1, vi).Inflate(r)
		h.store.SetOccupancy(h.layout.Encode(voxel.KindVertex, vi), h.grid.AppendVoxels(nil, box))
	}
	for ei, ed := range e {
		box := geometry.SweptEdgeBox(v0, v1, ed).Inflate(r)
		h.store.SetOccupancy(h.layout.Encode(voxel.KindEdge, ei), h.grid.AppendVoxels(nil, box))
	}
	for fi, fc := range f {
		id := h.layout.Encode(voxel.KindFace, fi)
		box := geometry.SweptTriangleBox(v0, v1, fc).Inflate(r)
		h.grid.ForEachVoxel(box, func(vx int) {
			h.store.Add(int32(vx), id)
		})
	}

	h.built = true
	h.continuous = continuous

	info = h.Info()
	h.opts.logger.WithVoxelSize(info.VoxelSize).LogBuild(continuous, info, time.Since(start), nil)
	h.opts.metricsCollector.RecordBuild(len(v0)+len(e)+len(f), info.Buckets, time.Since(start), nil)
	return nil
}

func validateMesh(v0, v1 []mgl64.Vec3, e [][2]int, f [][3]int) error {
	if len(v0) != len(v1) {
		return fmt.Errorf("%w: %d != %d", ErrSizeMismatch, len(v0), len(v1))
	}
	if !conv.SumFitsInt32(len(v0), len(e), len(f)) {
		return fmt.Errorf("%w: %d vertices, %d edges, %d faces", ErrTooManyPrimitives, len(v0), len(e), len(f))
	}
	for i := range v0 {
		if !geometry.IsFinite(v0[i]) || !geometry.IsFinite(v1[i]) {
			return fmt.Errorf("%w: vertex %d", ErrNonFinite, i)
		}
	}
	return validateTopology(len(v0), e, f)
}

// Clear drops all buckets and occupancy lists. The hash answers every query
// with empty results until the next build.
func (h *SpatialHash) Clear() {
	h.store.Clear()
	h.store = nil
	h.grid = grid.Grid{}
	h.layout = voxel.Layout{}
	h.built = false
	h.continuous = false
}

// IsBuilt reports whether the hash holds a built grid.
func (h *SpatialHash) IsBuilt() bool { return h.built }

// IsContinuous reports whether the last build was swept over two time steps.
func (h *SpatialHash) IsContinuous() bool { return h.continuous }

// EdgeStartIndex returns the first combined id of the edge range.
func (h *SpatialHash) EdgeStartIndex() int { return int(h.layout.EdgeStart) }

// FaceStartIndex returns the first combined id of the triangle range.
func (h *SpatialHash) FaceStartIndex() int { return int(h.layout.FaceStart) }

// VoxelSize returns the voxel edge length of the built grid.
func (h *SpatialHash) VoxelSize() float64 { return h.grid.VoxelSize() }

// VoxelCounts returns the number of voxels along each axis.
func (h *SpatialHash) VoxelCounts() [3]int { return h.grid.Counts() }

// LocateVoxelIndex returns the voxel index of p, clamped into the grid.
func (h *SpatialHash) LocateVoxelIndex(p mgl64.Vec3) int {
	return h.grid.Locate(p)
}

// LocateVoxelAxisIndex returns the per-axis voxel coordinate of p, clamped
// into the grid.
func (h *SpatialHash) LocateVoxelAxisIndex(p mgl64.Vec3) [3]int {
	return h.grid.AxisIndex(p)
}

// VoxelAxisIndexToVoxelIndex flattens a per-axis voxel coordinate.
func (h *SpatialHash) VoxelAxisIndexToVoxelIndex(ix, iy, iz int) int {
	return h.grid.Flatten(ix, iy, iz)
}

// VoxelIndexToVoxelAxisIndex is the inverse of VoxelAxisIndexToVoxelIndex.
func (h *SpatialHash) VoxelIndexToVoxelAxisIndex(vi int) [3]int {
	return h.grid.Unflatten(vi)
}

// Domain returns the box covered by the grid, including the build inflation.
func (h *SpatialHash) Domain() geometry.AABB {
	return h.grid.Domain()
}

// Info returns the dimensions of the last build.
func (h *SpatialHash) Info() BuildInfo {
	return BuildInfo{
		Vertices:  h.layout.NumVertices(),
		Edges:     h.layout.NumEdges(),
		Faces:     h.layout.NumFaces(),
		VoxelSize: h.grid.VoxelSize(),
		Counts:    h.grid.Counts(),
		Buckets:   h.store.Len(),
	}
}

// Stats returns bucket statistics of the built hash.
func (h *SpatialHash) Stats() Stats {
	st := h.store.Stats()
	return Stats{
		BuildInfo:      h.Info(),
		Entries:        st.Entries,
		MaxBucketSize:  st.MaxBucketSize,
		MeanBucketSize: st.MeanBucketSize(),
	}
}
