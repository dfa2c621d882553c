package broadphase

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
type MetricsCollector interface {
	// RecordBuild is called after each Build or BuildContinuous.
	// primitives is the number of rasterized primitives, buckets the number
	// of materialized voxels, err is nil if successful.
	RecordBuild(primitives, buckets int, duration time.Duration, err error)

	// RecordCandidates is called after each mesh candidate query.
	// pairs is the total number of candidate pairs produced.
	RecordCandidates(pairs int, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordBuild(int, int, time.Duration, error) {}
func (NoopMetricsCollector) RecordCandidates(int, time.Duration, error) {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	BuildCount           atomic.Int64
	BuildErrors          atomic.Int64
	BuildTotalNanos      atomic.Int64
	BuildPrimitives      atomic.Int64
	BuildBuckets         atomic.Int64
	CandidateQueryCount  atomic.Int64
	CandidateQueryErrors atomic.Int64
	CandidateTotalNanos  atomic.Int64
	CandidatePairs       atomic.Int64
}

// RecordBuild implements MetricsCollector.
func (b *BasicMetricsCollector) RecordBuild(primitives, buckets int, duration time.Duration, err error) {
	b.BuildCount.Add(1)
	b.BuildTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.BuildErrors.Add(1)
		return
	}
	b.BuildPrimitives.Add(int64(primitives))
	b.BuildBuckets.Add(int64(buckets))
}

// RecordCandidates implements MetricsCollector.
func (b *BasicMetricsCollector) RecordCandidates(pairs int, duration time.Duration, err error) {
	b.CandidateQueryCount.Add(1)
	b.CandidateTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.CandidateQueryErrors.Add(1)
		return
	}
	b.CandidatePairs.Add(int64(pairs))
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		BuildCount:           b.BuildCount.Load(),
		BuildErrors:          b.BuildErrors.Load(),
		BuildAvgNanos:        avg(b.BuildTotalNanos.Load(), b.BuildCount.Load()),
		BuildPrimitives:      b.BuildPrimitives.Load(),
		BuildBuckets:         b.BuildBuckets.Load(),
		CandidateQueryCount:  b.CandidateQueryCount.Load(),
		CandidateQueryErrors: b.CandidateQueryErrors.Load(),
		CandidateAvgNanos:    avg(b.CandidateTotalNanos.Load(), b.CandidateQueryCount.Load()),
		CandidatePairs:       b.CandidatePairs.Load(),
	}
}

func avg(total, count int64) int64 {
	if count == 0 {
		return 0
	}
	return total / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	BuildCount           int64
	BuildErrors          int64
	BuildAvgNanos        int64
	BuildPrimitives      int64
	BuildBuckets         int64
	CandidateQueryCount  int64
	CandidateQueryErrors int64
	CandidateAvgNanos    int64
	CandidatePairs       int64
}
