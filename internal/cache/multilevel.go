package cache

import (
	"sync/atomic"
	"time"
)

// Metrics accumulates hit/miss counts and timing across both tiers of a
// MultiLevelCache, so hot-path average access time can be derived
// without a lock on every lookup.
type Metrics struct {
	totalRequests atomic.Uint64
	l1Hits        atomic.Uint64
	l2Hits        atomic.Uint64
	misses        atomic.Uint64
	l1TimeNanos   atomic.Int64
	l2TimeNanos   atomic.Int64
}

// HitRate returns the fraction of requests served by either tier.
func (m *Metrics) HitRate() float64 {
	total := m.totalRequests.Load()
	if total == 0 {
		return 0
	}
	hits := m.l1Hits.Load() + m.l2Hits.Load()
	return float64(hits) / float64(total)
}

// L1HitRate returns the fraction of requests served by L1 alone.
func (m *Metrics) L1HitRate() float64 {
	total := m.totalRequests.Load()
	if total == 0 {
		return 0
	}
	return float64(m.l1Hits.Load()) / float64(total)
}

// AvgL1AccessTime returns the mean time spent probing L1 across all
// requests that reached it.
func (m *Metrics) AvgL1AccessTime() time.Duration {
	total := m.totalRequests.Load()
	if total == 0 {
		return 0
	}
	return time.Duration(m.l1TimeNanos.Load() / int64(total))
}

// AvgL2AccessTime returns the mean time spent probing L2 across all
// requests that fell through to it.
func (m *Metrics) AvgL2AccessTime() time.Duration {
	attempts := m.l2Hits.Load() + m.misses.Load()
	if attempts == 0 {
		return 0
	}
	return time.Duration(m.l2TimeNanos.Load() / int64(attempts))
}

// MultiLevelCache composes an L1Cache and an L2Cache: lookups probe L1
// first, fall through to L2 on miss, and promote L2 hits back into L1.
// Inserts write through to both tiers. Every operation checks the
// process-wide kill switch first and, when it is off, behaves as a
// pass-through (Get always misses, Insert is a no-op) so benchmarks and
// tests can measure uncached cost without constructing a second cache.
type MultiLevelCache[K comparable, V any] struct {
	l1      *L1Cache[K, V]
	l2      *L2Cache[K, V]
	metrics Metrics
}

// NewMultiLevelCache composes an entry-count-bounded L1 and L2.
func NewMultiLevelCache[K comparable, V any](l1Size, l2Size int) *MultiLevelCache[K, V] {
	return &MultiLevelCache[K, V]{
		l1: NewL1Cache[K, V](l1Size),
		l2: NewL2Cache[K, V](l2Size),
	}
}

// NewByteWeightedMultiLevelCache composes an entry-count-bounded L1
// with a byte-weight-bounded L2, used for the render cache.
func NewByteWeightedMultiLevelCache[K comparable, V any](l1Size int, maxBytes int64, weigher Weigher[V]) *MultiLevelCache[K, V] {
	return &MultiLevelCache[K, V]{
		l1: NewL1Cache[K, V](l1Size),
		l2: NewByteWeightedL2Cache[K, V](maxBytes, weigher),
	}
}

// Get probes L1 then L2, promoting an L2 hit into L1.
func (m *MultiLevelCache[K, V]) Get(key K) (V, bool) {
	if !Enabled.Load() {
		var zero V
		return zero, false
	}
	m.metrics.totalRequests.Add(1)

	l1Start := time.Now()
	if v, ok := m.l1.Get(key); ok {
		m.metrics.l1TimeNanos.Add(int64(time.Since(l1Start)))
		m.metrics.l1Hits.Add(1)
		return v, true
	}
	m.metrics.l1TimeNanos.Add(int64(time.Since(l1Start)))

	l2Start := time.Now()
	v, ok := m.l2.Get(key)
	m.metrics.l2TimeNanos.Add(int64(time.Since(l2Start)))
	if !ok {
		m.metrics.misses.Add(1)
		var zero V
		return zero, false
	}
	m.metrics.l2Hits.Add(1)
	m.l1.Insert(key, v) // promote
	return v, true
}

// Insert writes value into both tiers under key.
func (m *MultiLevelCache[K, V]) Insert(key K, value V) {
	if !Enabled.Load() {
		return
	}
	m.l1.Insert(key, value)
	m.l2.Insert(key, value)
}

// Metrics returns the accumulated hit/miss/timing counters.
func (m *MultiLevelCache[K, V]) Metrics() *Metrics {
	return &m.metrics
}

// L1Stats reports the L1 tier's current occupancy and hit ratio.
func (m *MultiLevelCache[K, V]) L1Stats() Stats { return m.l1.Stats() }

// L2Stats reports the L2 tier's current occupancy and hit ratio.
func (m *MultiLevelCache[K, V]) L2Stats() Stats { return m.l2.Stats() }

// WeightedSize returns the L2 tier's cumulative byte weight (zero
// unless this cache was built with NewByteWeightedMultiLevelCache).
func (m *MultiLevelCache[K, V]) WeightedSize() int64 { return m.l2.WeightedSize() }
