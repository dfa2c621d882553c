package broadphase_test

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hupe1980/broadphase"
	"github.com/hupe1980/broadphase/testutil"
)

func TestBuilder_Static(t *testing.T) {
	m := testutil.GridMesh(4, 4, 1)

	h, err := broadphase.NewBuilder().
		VoxelSize(1).
		Build(m.V, m.E, m.F)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	if h.IsContinuous() {
		t.Fatal("expected static build")
	}
	if got := h.VoxelCounts(); got != [3]int{3, 3, 1} {
		t.Fatalf("VoxelCounts = %v, want [3 3 1]", got)
	}
}

func TestBuilder_FullOptions(t *testing.T) {
	m := testutil.GridMesh(4, 4, 1)
	v1 := testutil.Translate(m.V, mgl64.Vec3{0, 0, 1})
	metrics := &broadphase.BasicMetricsCollector{}

	h, err := broadphase.NewBuilder().
		InflationRadius(0.1).
		Concurrency(2).
		Logger(broadphase.NoopLogger()).
		Metrics(metrics).
		Continuous(v1).
		Build(m.V, m.E, m.F)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	if !h.IsContinuous() {
		t.Fatal("expected continuous build")
	}
	if got := metrics.GetStats().BuildCount; got != 1 {
		t.Fatalf("BuildCount = %d, want 1", got)
	}

	c, err := h.QueryMeshForCandidatesContinuous(m.V, v1, m.E, m.F)
	if err != nil {
		t.Fatalf("QueryMeshForCandidatesContinuous failed: %v", err)
	}
	if c.IsEmpty() {
		t.Fatal("expected candidates")
	}
}

func TestBuilder_Immutable(t *testing.T) {
	m := testutil.GridMesh(5, 5, 1)

	base := broadphase.NewBuilder().VoxelSize(1)
	coarse := base.VoxelSize(4)

	h1, err := base.Build(m.V, m.E, m.F)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	h2, err := coarse.Build(m.V, m.E, m.F)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	if h1.VoxelSize() != 1 {
		t.Fatalf("base VoxelSize = %v, want 1", h1.VoxelSize())
	}
	if h2.VoxelSize() != 4 {
		t.Fatalf("derived VoxelSize = %v, want 4", h2.VoxelSize())
	}
}

func TestBuilder_InvalidMesh(t *testing.T) {
	m := testutil.GridMesh(3, 3, 1)
	_, err := broadphase.NewBuilder().
		Continuous(m.V[:2]).
		Build(m.V, m.E, m.F)
	if err == nil {
		t.Fatal("expected error for mismatched time steps")
	}
}
