// Package observe provides observation stages for monitoring, metrics and
// debugging pipelines. Every operator here passes elements through
// unchanged; they are built on core.Hooks and run synchronously from the
// pull that triggered them.
package observe

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/lguimbarda/pullflow/flow/core"
)

// StreamMetrics holds statistics about a stream's execution.
type StreamMetrics struct {
	TotalItems int64

	// Timing
	StartTime     time.Time
	EndTime       time.Time
	FirstItemTime time.Time
	LastItemTime  time.Time

	// Throughput
	ItemsPerSecond float64

	// Latency (time between items)
	MinLatency time.Duration
	MaxLatency time.Duration
	AvgLatency time.Duration

	// Err is the failure that ended the upstream, if any.
	Err error
}

// Meter creates a Transformer that collects metrics about the stream.
// The onComplete callback is called with the final metrics once the
// upstream is exhausted. A drain that stops early (Limit, FindFirst,
// AnyMatch) never reports.
func Meter[T any](onComplete func(StreamMetrics)) core.Transformer[T, T] {
	return func(s *core.Stream[T]) *core.Stream[T] {
		var metrics StreamMetrics
		var lastItemTime time.Time
		var totalLatency time.Duration
		var latencyCount int64

		return s.Observe(core.Hooks[T]{
			OnStart: func() {
				metrics.StartTime = time.Now()
				metrics.MinLatency = time.Duration(1<<63 - 1) // Max duration
			},
			OnValue: func(T) {
				now := time.Now()
				metrics.TotalItems++

				// Track first/last item times
				if metrics.TotalItems == 1 {
					metrics.FirstItemTime = now
				}
				metrics.LastItemTime = now

				if !lastItemTime.IsZero() {
					latency := now.Sub(lastItemTime)
					metrics.MinLatency = min(metrics.MinLatency, latency)
					metrics.MaxLatency = max(metrics.MaxLatency, latency)
					totalLatency += latency
					latencyCount++
				}
				lastItemTime = now
			},
			OnError: func(err error) {
				metrics.Err = err
			},
			OnComplete: func() {
				metrics.EndTime = time.Now()
				if latencyCount == 0 {
					metrics.MinLatency = 0
				} else {
					metrics.AvgLatency = totalLatency / time.Duration(latencyCount)
				}
				if metrics.TotalItems > 0 {
					duration := metrics.EndTime.Sub(metrics.StartTime).Seconds()
					if duration > 0 {
						metrics.ItemsPerSecond = float64(metrics.TotalItems) / duration
					}
				}
				if onComplete != nil {
					onComplete(metrics)
				}
			},
		})
	}
}

// LiveMetrics holds real-time metrics that can be read concurrently while
// another goroutine drains the stream.
type LiveMetrics struct {
	totalItems   atomic.Int64
	startTime    atomic.Int64 // Unix nano
	lastItemTime atomic.Int64 // Unix nano
	done         atomic.Bool
}

// TotalItems returns the total number of items processed.
func (m *LiveMetrics) TotalItems() int64 { return m.totalItems.Load() }

// StartTime returns when the stream started.
func (m *LiveMetrics) StartTime() time.Time {
	return time.Unix(0, m.startTime.Load())
}

// LastItemTime returns when the last item was processed.
func (m *LiveMetrics) LastItemTime() time.Time {
	return time.Unix(0, m.lastItemTime.Load())
}

// Done reports whether the upstream has been exhausted.
func (m *LiveMetrics) Done() bool { return m.done.Load() }

// Duration returns how long the stream has been running.
func (m *LiveMetrics) Duration() time.Duration {
	start := m.startTime.Load()
	if start == 0 {
		return 0
	}
	return time.Since(time.Unix(0, start))
}

// ItemsPerSecond returns the current throughput.
func (m *LiveMetrics) ItemsPerSecond() float64 {
	duration := m.Duration().Seconds()
	if duration <= 0 {
		return 0
	}
	return float64(m.TotalItems()) / duration
}

// MeterLive creates a Transformer that updates live metrics.
func MeterLive[T any](metrics *LiveMetrics) core.Transformer[T, T] {
	return Hooks(core.Hooks[T]{
		OnStart: func() { metrics.startTime.Store(time.Now().UnixNano()) },
		OnValue: func(T) {
			metrics.totalItems.Add(1)
			metrics.lastItemTime.Store(time.Now().UnixNano())
		},
		OnComplete: func() { metrics.done.Store(true) },
	})
}

// ProgressReport holds information for progress reporting.
type ProgressReport struct {
	Processed int64
	Total     int64 // -1 if unknown
	Percent   float64
	Elapsed   time.Duration
	Remaining time.Duration // Estimated, -1 if unknown
	Final     bool
}

// Progress creates a Transformer that reports progress.
// If total is known, pass it; otherwise pass -1.
// onProgress is called after an item once interval has elapsed since the
// previous report (every item if interval <= 0), and once more when the
// upstream is exhausted.
func Progress[T any](total int64, interval time.Duration, onProgress func(ProgressReport)) core.Transformer[T, T] {
	return func(s *core.Stream[T]) *core.Stream[T] {
		var processed int64
		var startTime, lastReport time.Time

		report := func(final bool) {
			elapsed := time.Since(startTime)
			r := ProgressReport{
				Processed: processed,
				Total:     total,
				Elapsed:   elapsed,
				Remaining: -1,
				Final:     final,
			}

			if total > 0 {
				r.Percent = float64(processed) / float64(total) * 100
				if processed > 0 && elapsed > 0 {
					rate := float64(processed) / elapsed.Seconds()
					remaining := float64(total-processed) / rate
					r.Remaining = time.Duration(remaining * float64(time.Second))
				}
			}

			if onProgress != nil {
				onProgress(r)
			}
		}

		return s.Observe(core.Hooks[T]{
			OnStart: func() {
				startTime = time.Now()
				lastReport = startTime
			},
			OnValue: func(T) {
				processed++
				if interval <= 0 || time.Since(lastReport) >= interval {
					report(false)
					lastReport = time.Now()
				}
			},
			OnComplete: func() { report(true) },
		})
	}
}

// Hooks creates a Transformer inserting an observation stage with the given
// hook sets, invoked in order.
func Hooks[T any](hooks ...core.Hooks[T]) core.Transformer[T, T] {
	return func(s *core.Stream[T]) *core.Stream[T] {
		return s.Observe(hooks...)
	}
}

// Histogram tracks the distribution of values. It is safe for concurrent
// reads while a stream records into it.
type Histogram[T comparable] struct {
	mu     sync.Mutex
	counts map[T]int64
	total  int64
}

// NewHistogram creates a new histogram.
func NewHistogram[T comparable]() *Histogram[T] {
	return &Histogram[T]{counts: make(map[T]int64)}
}

// Add records a value.
func (h *Histogram[T]) Add(value T) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.counts[value]++
	h.total++
}

// Count returns the count for a specific value.
func (h *Histogram[T]) Count(value T) int64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.counts[value]
}

// Total returns the total count.
func (h *Histogram[T]) Total() int64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.total
}

// Counts returns a copy of all counts.
func (h *Histogram[T]) Counts() map[T]int64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	result := make(map[T]int64, len(h.counts))
	for k, v := range h.counts {
		result[k] = v
	}
	return result
}

// MeterHistogram creates a Transformer that tracks value distribution.
func MeterHistogram[T comparable](histogram *Histogram[T]) core.Transformer[T, T] {
	return Hooks(core.Hooks[T]{OnValue: histogram.Add})
}
