package jsdata

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
//
// Example Prometheus integration:
//
//	type PrometheusCollector struct {
//	    addCounter     prometheus.Counter
//	    queryHistogram prometheus.Histogram
//	}
//
//	func (p *PrometheusCollector) RecordAdd(count int, duration time.Duration, err error) {
//	    p.addCounter.Add(float64(count))
//	    // ... record error state, duration, etc.
//	}
type MetricsCollector interface {
	// RecordAdd is called after each add operation.
	// count is the number of records attempted, duration is the total time
	// taken, err is nil if successful.
	RecordAdd(count int, duration time.Duration, err error)

	// RecordRemove is called after each remove operation.
	// count is the number of records actually removed.
	RecordRemove(count int, duration time.Duration, err error)

	// RecordQuery is called after each query run.
	RecordQuery(duration time.Duration, err error)

	// RecordIndexBuild is called after a secondary index is created and
	// backfilled. records is the number of records indexed.
	RecordIndexBuild(records int, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordAdd(int, time.Duration, error)        {}
func (NoopMetricsCollector) RecordRemove(int, time.Duration, error)     {}
func (NoopMetricsCollector) RecordQuery(time.Duration, error)           {}
func (NoopMetricsCollector) RecordIndexBuild(int, time.Duration, error) {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	AddCount         atomic.Int64
	AddRecords       atomic.Int64
	AddErrors        atomic.Int64
	AddTotalNanos    atomic.Int64
	RemoveCount      atomic.Int64
	RemoveRecords    atomic.Int64
	RemoveErrors     atomic.Int64
	QueryCount       atomic.Int64
	QueryErrors      atomic.Int64
	QueryTotalNanos  atomic.Int64
	IndexBuildCount  atomic.Int64
	IndexBuildErrors atomic.Int64
}

// RecordAdd implements MetricsCollector.
func (b *BasicMetricsCollector) RecordAdd(count int, duration time.Duration, err error) {
	b.AddCount.Add(1)
	b.AddRecords.Add(int64(count))
	b.AddTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.AddErrors.Add(1)
	}
}

// RecordRemove implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRemove(count int, duration time.Duration, err error) {
	b.RemoveCount.Add(1)
	b.RemoveRecords.Add(int64(count))
	if err != nil {
		b.RemoveErrors.Add(1)
	}
}

// RecordQuery implements MetricsCollector.
func (b *BasicMetricsCollector) RecordQuery(duration time.Duration, err error) {
	b.QueryCount.Add(1)
	b.QueryTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.QueryErrors.Add(1)
	}
}

// RecordIndexBuild implements MetricsCollector.
func (b *BasicMetricsCollector) RecordIndexBuild(records int, duration time.Duration, err error) {
	b.IndexBuildCount.Add(1)
	if err != nil {
		b.IndexBuildErrors.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		AddCount:         b.AddCount.Load(),
		AddRecords:       b.AddRecords.Load(),
		AddErrors:        b.AddErrors.Load(),
		AddAvgNanos:      b.getAvgAddNanos(),
		RemoveCount:      b.RemoveCount.Load(),
		RemoveRecords:    b.RemoveRecords.Load(),
		RemoveErrors:     b.RemoveErrors.Load(),
		QueryCount:       b.QueryCount.Load(),
		QueryErrors:      b.QueryErrors.Load(),
		QueryAvgNanos:    b.getAvgQueryNanos(),
		IndexBuildCount:  b.IndexBuildCount.Load(),
		IndexBuildErrors: b.IndexBuildErrors.Load(),
	}
}

func (b *BasicMetricsCollector) getAvgAddNanos() int64 {
	count := b.AddCount.Load()
	if count == 0 {
		return 0
	}
	return b.AddTotalNanos.Load() / count
}

func (b *BasicMetricsCollector) getAvgQueryNanos() int64 {
	count := b.QueryCount.Load()
	if count == 0 {
		return 0
	}
	return b.QueryTotalNanos.Load() / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	AddCount         int64
	AddRecords       int64
	AddErrors        int64
	AddAvgNanos      int64
	RemoveCount      int64
	RemoveRecords    int64
	RemoveErrors     int64
	QueryCount       int64
	QueryErrors      int64
	QueryAvgNanos    int64
	IndexBuildCount  int64
	IndexBuildErrors int64
}
