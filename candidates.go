package broadphase

import (
	"fmt"
	"time"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/hupe1980/broadphase/candidate"
	"github.com/hupe1980/broadphase/geometry"
	"github.com/hupe1980/broadphase/internal/voxel"
	"golang.org/x/sync/errgroup"
)

// minChunk is the smallest slice of primitives handed to one goroutine.
const minChunk = 256

// CandidateStats summarizes one mesh candidate query.
type CandidateStats struct {
	Radius float64
	VV     int
	EV     int
	EE     int
	FV     int
}

// QueryMeshForCandidates collects every candidate pair of the static mesh
// (v, e, f). The mesh must be the one the hash was built from.
//
// At radius 0 the occupancy lists of the build are reused; a positive radius
// re-queries the grid with every primitive box inflated by it.
//
// Example:
//
//	c, err := h.QueryMeshForCandidates(v, e, f, func(o *broadphase.CandidateOptions) {
//	    o.Radius = 1e-3
//	    o.QueryEV = true
//	})
func (h *SpatialHash) QueryMeshForCandidates(v []mgl64.Vec3, e [][2]int, f [][3]int, optFns ...func(o *CandidateOptions)) (*candidate.Candidates, error) {
	return h.queryMeshForCandidates(v, v, e, f, false, optFns)
}

// QueryMeshForCandidatesContinuous collects every candidate pair of the mesh
// moving from v0 to v1. The hash must have been built with BuildContinuous
// from the same positions.
func (h *SpatialHash) QueryMeshForCandidatesContinuous(v0, v1 []mgl64.Vec3, e [][2]int, f [][3]int, optFns ...func(o *CandidateOptions)) (*candidate.Candidates, error) {
	return h.queryMeshForCandidates(v0, v1, e, f, true, optFns)
}

func (h *SpatialHash) queryMeshForCandidates(v0, v1 []mgl64.Vec3, e [][2]int, f [][3]int, swept bool, optFns []func(o *CandidateOptions)) (*candidate.Candidates, error) {
	start := time.Now()

	opts := DefaultCandidateOptions()
	for _, fn := range optFns {
		if fn != nil {
			fn(&opts)
		}
	}
	if opts.Radius < 0 {
		opts.Radius = 0
	}

	out, err := h.assemble(v0, v1, e, f, swept, opts)

	stats := CandidateStats{Radius: opts.Radius}
	if out != nil {
		stats.VV, stats.EV, stats.EE, stats.FV = len(out.VV), len(out.EV), len(out.EE), len(out.FV)
	}
	pairs := 0
	if out != nil {
		pairs = out.Len()
	}
	h.opts.logger.WithCount(pairs).LogCandidates(stats, time.Since(start), err)
	h.opts.metricsCollector.RecordCandidates(pairs, time.Since(start), err)

	if err != nil {
		return nil, err
	}
	return out, nil
}

func (h *SpatialHash) assemble(v0, v1 []mgl64.Vec3, e [][2]int, f [][3]int, swept bool, opts CandidateOptions) (*candidate.Candidates, error) {
	out := &candidate.Candidates{}
	if !h.built {
		return out, nil
	}
	if len(v0) != len(v1) {
		return nil, fmt.Errorf("candidates: %w: %d != %d", ErrSizeMismatch, len(v0), len(v1))
	}
	if swept && !h.continuous {
		return nil, fmt.Errorf("candidates: %w", ErrNotContinuous)
	}
	if err := h.checkMesh(v0, e, f); err != nil {
		return nil, fmt.Errorf("candidates: %w", err)
	}

	useOccupancy := opts.Radius <= 0

	if opts.QueryVV || opts.QueryEV || opts.QueryFV {
		parts, err := h.parallel(len(v0), func(lo, hi int, dst *candidate.Candidates) {
			h.vertexCandidates(v0, v1, e, f, opts, useOccupancy, lo, hi, dst)
		})
		if err != nil {
			return nil, err
		}
		for i := range parts {
			out.Append(&parts[i])
		}
	}

	if opts.QueryEE {
		parts, err := h.parallel(len(e), func(lo, hi int, dst *candidate.Candidates) {
			h.edgeCandidates(v0, v1, e, opts.Radius, useOccupancy, lo, hi, dst)
		})
		if err != nil {
			return nil, err
		}
		for i := range parts {
			out.Append(&parts[i])
		}
	}

	return out, nil
}

// parallel splits [0, n) into contiguous chunks and runs fn on each with at
// most opts.concurrency goroutines. Results keep chunk order.
func (h *SpatialHash) parallel(n int, fn func(lo, hi int, dst *candidate.Candidates)) ([]candidate.Candidates, error) {
	if n == 0 {
		return nil, nil
	}
	workers := h.opts.concurrency
	size := max(minChunk, (n+workers-1)/workers)
	numChunks := (n + size - 1) / size
	parts := make([]candidate.Candidates, numChunks)

	if numChunks == 1 {
		fn(0, n, &parts[0])
		return parts, nil
	}

	var g errgroup.Group
	g.SetLimit(workers)
	for i := range numChunks {
		lo := i * size
		hi := min(lo+size, n)
		g.Go(func() error {
			fn(lo, hi, &parts[i])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return parts, nil
}

// vertexCandidates emits the VV, EV and FV pairs of vertices [lo, hi).
func (h *SpatialHash) vertexCandidates(v0, v1 []mgl64.Vec3, e [][2]int, f [][3]int, opts CandidateOptions, useOccupancy bool, lo, hi int, dst *candidate.Candidates) {
	s := h.newSplit()
	defer s.release()

	for vi := lo; vi < hi; vi++ {
		s.verts.Clear()
		s.edges.Clear()
		s.faces.Clear()

		if useOccupancy {
			h.gatherVoxels(h.store.Occupancy(int32(vi)), s.add)
		} else {
			h.gather(geometry.VertexBox(v0, v1, vi).Inflate(opts.Radius), s.add)
		}

		if opts.QueryVV {
			forEach(s.verts, func(vj int) {
				if vj > vi {
					dst.VV = append(dst.VV, candidate.VertexVertex{VertexA: vi, VertexB: vj})
				}
			})
		}
		if opts.QueryEV {
			forEach(s.edges, func(ej int) {
				if ed := e[ej]; ed[0] != vi && ed[1] != vi {
					dst.EV = append(dst.EV, candidate.EdgeVertex{Edge: ej, Vertex: vi})
				}
			})
		}
		if opts.QueryFV {
			forEach(s.faces, func(fj int) {
				if fc := f[fj]; fc[0] != vi && fc[1] != vi && fc[2] != vi {
					dst.FV = append(dst.FV, candidate.FaceVertex{Face: fj, Vertex: vi})
				}
			})
		}
	}
}

// edgeCandidates emits the EE pairs (eai, ebi) with ebi > eai for edges [lo, hi).
func (h *SpatialHash) edgeCandidates(v0, v1 []mgl64.Vec3, e [][2]int, radius float64, useOccupancy bool, lo, hi int, dst *candidate.Candidates) {
	b := getBitmap()
	defer putBitmap(b)

	for eai := lo; eai < hi; eai++ {
		b.Clear()
		collect := h.kindFilter(voxel.KindEdge, above(eai), b)
		if useOccupancy {
			h.gatherVoxels(h.store.Occupancy(h.layout.Encode(voxel.KindEdge, eai)), collect)
		} else {
			h.gather(geometry.SweptEdgeBox(v0, v1, e[eai]).Inflate(radius), collect)
		}

		ea := e[eai]
		forEach(b, func(ebi int) {
			eb := e[ebi]
			if ea[0] == eb[0] || ea[0] == eb[1] || ea[1] == eb[0] || ea[1] == eb[1] {
				return
			}
			dst.EE = append(dst.EE, candidate.EdgeEdge{EdgeA: eai, EdgeB: ebi})
		})
	}
}

func forEach(b *roaring.Bitmap, fn func(i int)) {
	it := b.Iterator()
	for it.HasNext() {
		fn(int(it.Next()))
	}
}
