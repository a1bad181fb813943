package psmap

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
//
// Maps call the collector synchronously from the owning goroutine, but one
// collector may be shared by many maps, so implementations must be safe for
// concurrent use.
type MetricsCollector interface {
	// RecordMerge is called after the unsorted suffix has been merged.
	// unsorted is the suffix length before the merge, total the map length.
	RecordMerge(unsorted, total int, duration time.Duration)

	// RecordRemove is called after each removal of a present id.
	RecordRemove(kind RemoveKind)

	// RecordSnapshot is called after a snapshot is encoded or decoded.
	// bytes is the encoded size, err is nil if successful.
	RecordSnapshot(entries, bytes int, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordMerge(int, int, time.Duration)           {}
func (NoopMetricsCollector) RecordRemove(RemoveKind)                       {}
func (NoopMetricsCollector) RecordSnapshot(int, int, time.Duration, error) {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	MergeCount         atomic.Int64
	MergedEntries      atomic.Int64
	MergeTotalNanos    atomic.Int64
	ShiftRemoveCount   atomic.Int64
	SwapRemoveCount    atomic.Int64
	SnapshotCount      atomic.Int64
	SnapshotErrors     atomic.Int64
	SnapshotBytes      atomic.Int64
	SnapshotTotalNanos atomic.Int64
}

// RecordMerge implements MetricsCollector.
func (b *BasicMetricsCollector) RecordMerge(unsorted, _ int, duration time.Duration) {
	b.MergeCount.Add(1)
	b.MergedEntries.Add(int64(unsorted))
	b.MergeTotalNanos.Add(duration.Nanoseconds())
}

// RecordRemove implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRemove(kind RemoveKind) {
	if kind == RemoveShift {
		b.ShiftRemoveCount.Add(1)
		return
	}
	b.SwapRemoveCount.Add(1)
}

// RecordSnapshot implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSnapshot(_, bytes int, duration time.Duration, err error) {
	b.SnapshotCount.Add(1)
	b.SnapshotTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.SnapshotErrors.Add(1)
		return
	}
	b.SnapshotBytes.Add(int64(bytes))
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		MergeCount:       b.MergeCount.Load(),
		MergedEntries:    b.MergedEntries.Load(),
		MergeAvgNanos:    avg(b.MergeTotalNanos.Load(), b.MergeCount.Load()),
		ShiftRemoveCount: b.ShiftRemoveCount.Load(),
		SwapRemoveCount:  b.SwapRemoveCount.Load(),
		SnapshotCount:    b.SnapshotCount.Load(),
		SnapshotErrors:   b.SnapshotErrors.Load(),
		SnapshotBytes:    b.SnapshotBytes.Load(),
		SnapshotAvgNanos: avg(b.SnapshotTotalNanos.Load(), b.SnapshotCount.Load()),
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
	MergeCount       int64
	MergedEntries    int64
	MergeAvgNanos    int64
	ShiftRemoveCount int64
	SwapRemoveCount  int64
	SnapshotCount    int64
	SnapshotErrors   int64
	SnapshotBytes    int64
	SnapshotAvgNanos int64
}
