package broadphase

import (
	"log/slog"

	"github.com/go-gl/mathgl/mgl64"
)

// Builder is an immutable fluent builder for SpatialHash instances.
// Each method returns a new builder with the updated configuration, so a
// partially configured builder can be shared between goroutines.
//
// Example:
//
//	h, err := broadphase.NewBuilder().
//	    VoxelSize(0.05).
//	    InflationRadius(1e-3).
//	    Concurrency(4).
//	    Continuous(v1).
//	    Build(v0, e, f)
type Builder struct {
	voxelSize       float64
	inflationRadius float64
	concurrency     int
	logger          *Logger
	metrics         MetricsCollector
	v1              []mgl64.Vec3
}

// NewBuilder creates a builder with default settings.
func NewBuilder() Builder {
	return Builder{voxelSize: -1}
}

// VoxelSize sets the voxel edge length. Non-positive values keep the
// automatic size derived from the mean edge length.
func (b Builder) VoxelSize(size float64) Builder {
	b.voxelSize = size
	return b
}

// InflationRadius inflates every primitive box at build time.
func (b Builder) InflationRadius(r float64) Builder {
	b.inflationRadius = r
	return b
}

// Concurrency limits the goroutines used by candidate assembly.
func (b Builder) Concurrency(n int) Builder {
	b.concurrency = n
	return b
}

// Logger sets a custom logger.
func (b Builder) Logger(logger *Logger) Builder {
	b.logger = logger
	return b
}

// LogLevel sets a text logger with the given level.
func (b Builder) LogLevel(level slog.Level) Builder {
	b.logger = NewTextLogger(level)
	return b
}

// Metrics sets a metrics collector.
func (b Builder) Metrics(mc MetricsCollector) Builder {
	b.metrics = mc
	return b
}

// Continuous makes Build sweep every primitive from the positions passed to
// Build to v1. Passing nil restores a static build.
func (b Builder) Continuous(v1 []mgl64.Vec3) Builder {
	b.v1 = v1
	return b
}

// Options returns the configuration as functional options for New.
func (b Builder) Options() []Option {
	opts := []Option{
		WithInflationRadius(b.inflationRadius),
		WithConcurrency(b.concurrency),
	}
	if b.voxelSize > 0 {
		opts = append(opts, WithVoxelSize(b.voxelSize))
	}
	if b.logger != nil {
		opts = append(opts, WithLogger(b.logger))
	}
	if b.metrics != nil {
		opts = append(opts, WithMetricsCollector(b.metrics))
	}
	return opts
}

// Build creates a SpatialHash and rasterizes the mesh (v, e, f) into it.
func (b Builder) Build(v []mgl64.Vec3, e [][2]int, f [][3]int) (*SpatialHash, error) {
	if b.v1 != nil {
		return NewFromMeshContinuous(v, b.v1, e, f, b.voxelSize, b.Options()...)
	}
	return NewFromMesh(v, e, f, b.voxelSize, b.Options()...)
}
