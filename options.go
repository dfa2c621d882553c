package broadphase

import (
	"log/slog"
	"runtime"
)

type options struct {
	voxelSize        float64
	inflationRadius  float64
	concurrency      int
	metricsCollector MetricsCollector
	logger           *Logger
}

// Option configures a SpatialHash.
type Option func(*options)

// WithVoxelSize sets the voxel size used when Build is called with a
// non-positive size. Zero or negative keeps the automatic size derived from
// the mean edge length.
func WithVoxelSize(size float64) Option {
	return func(o *options) {
		o.voxelSize = size
	}
}

// WithInflationRadius inflates every primitive box by r at build time.
//
// Index based queries then report every pair whose boxes are within r of
// each other without passing a radius per query.
func WithInflationRadius(r float64) Option {
	return func(o *options) {
		if r < 0 {
			r = 0
		}
		o.inflationRadius = r
	}
}

// WithConcurrency limits the number of goroutines used by candidate assembly.
// Values <= 0 use GOMAXPROCS; 1 runs sequentially.
func WithConcurrency(n int) Option {
	return func(o *options) {
		o.concurrency = n
	}
}

// WithMetricsCollector configures a metrics collector for monitoring builds
// and candidate queries. Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &broadphase.BasicMetricsCollector{}
//	h := broadphase.New(broadphase.WithMetricsCollector(metrics))
//	// ... build and query ...
//	stats := metrics.GetStats()
//	fmt.Printf("Builds: %d, Avg latency: %dns\n", stats.BuildCount, stats.BuildAvgNanos)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging. Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := broadphase.NewJSONLogger(slog.LevelDebug)
//	h := broadphase.New(broadphase.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		voxelSize:        -1,
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	if o.concurrency <= 0 {
		o.concurrency = runtime.GOMAXPROCS(0)
	}
	return o
}

// CandidateOptions selects the pair types and radius of a mesh candidate query.
type CandidateOptions struct {
	// Radius inflates every query footprint. Pairs whose boxes come within
	// Radius of each other are reported.
	Radius float64
	// QueryVV enables vertex-vertex pairs.
	QueryVV bool
	// QueryEV enables edge-vertex pairs.
	QueryEV bool
	// QueryEE enables edge-edge pairs.
	QueryEE bool
	// QueryFV enables face-vertex pairs.
	QueryFV bool
}

// DefaultCandidateOptions returns edge-edge and face-vertex queries at radius 0.
func DefaultCandidateOptions() CandidateOptions {
	return CandidateOptions{
		QueryEE: true,
		QueryFV: true,
	}
}
