package swapmap

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like
// Prometheus.
//
// Implementations must be safe for concurrent use and must not block:
// RecordGet runs on the lock-free read path.
type MetricsCollector interface {
	// RecordGet is called after each Get or GetHandle.
	// hit reports whether the key was present.
	RecordGet(hit bool)

	// RecordInsert is called after each Insert.
	// fastPath reports whether the insert swapped an existing cell without
	// taking the structural mutex; duration is the total time taken.
	RecordInsert(fastPath bool, duration time.Duration)

	// RecordBatchInsert is called after each BatchInsert.
	// count is the number of items, newKeys the number that required a
	// structural publish, duration the total time taken.
	RecordBatchInsert(count, newKeys int, duration time.Duration)

	// RecordDelete is called after each Delete that removed a key.
	RecordDelete(duration time.Duration)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordGet(bool)                            {}
func (NoopMetricsCollector) RecordInsert(bool, time.Duration)          {}
func (NoopMetricsCollector) RecordBatchInsert(int, int, time.Duration) {}
func (NoopMetricsCollector) RecordDelete(time.Duration)                {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	GetCount         atomic.Int64
	GetHits          atomic.Int64
	InsertCount      atomic.Int64
	InsertFastPath   atomic.Int64
	InsertTotalNanos atomic.Int64
	BatchInsertCount atomic.Int64
	BatchInsertItems atomic.Int64
	BatchInsertNew   atomic.Int64
	DeleteCount      atomic.Int64
}

// RecordGet implements MetricsCollector.
func (b *BasicMetricsCollector) RecordGet(hit bool) {
	b.GetCount.Add(1)
	if hit {
		b.GetHits.Add(1)
	}
}

// RecordInsert implements MetricsCollector.
func (b *BasicMetricsCollector) RecordInsert(fastPath bool, duration time.Duration) {
	b.InsertCount.Add(1)
	b.InsertTotalNanos.Add(duration.Nanoseconds())
	if fastPath {
		b.InsertFastPath.Add(1)
	}
}

// RecordBatchInsert implements MetricsCollector.
func (b *BasicMetricsCollector) RecordBatchInsert(count, newKeys int, duration time.Duration) {
	b.BatchInsertCount.Add(1)
	b.BatchInsertItems.Add(int64(count))
	b.BatchInsertNew.Add(int64(newKeys))
}

// RecordDelete implements MetricsCollector.
func (b *BasicMetricsCollector) RecordDelete(duration time.Duration) {
	b.DeleteCount.Add(1)
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		GetCount:         b.GetCount.Load(),
		GetHits:          b.GetHits.Load(),
		InsertCount:      b.InsertCount.Load(),
		InsertFastPath:   b.InsertFastPath.Load(),
		InsertAvgNanos:   b.getAvgInsertNanos(),
		BatchInsertCount: b.BatchInsertCount.Load(),
		BatchInsertItems: b.BatchInsertItems.Load(),
		BatchInsertNew:   b.BatchInsertNew.Load(),
		DeleteCount:      b.DeleteCount.Load(),
	}
}

func (b *BasicMetricsCollector) getAvgInsertNanos() int64 {
	count := b.InsertCount.Load()
	if count == 0 {
		return 0
	}
	return b.InsertTotalNanos.Load() / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	GetCount         int64
	GetHits          int64
	InsertCount      int64
	InsertFastPath   int64
	InsertAvgNanos   int64
	BatchInsertCount int64
	BatchInsertItems int64
	BatchInsertNew   int64
	DeleteCount      int64
}
