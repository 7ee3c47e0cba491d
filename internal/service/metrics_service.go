package service

import (
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// MetricsSnapshot is a lightweight counter snapshot for CLI consumption.
type MetricsSnapshot struct {
	TransactionsCommitted  uint64  `json:"transactions_committed"`
	TransactionsRolledBack uint64  `json:"transactions_rolled_back"`
	DBQueries              uint64  `json:"db_queries"`
	AvgDBQueryMillis       float64 `json:"avg_db_query_ms"`
	CacheHits              uint64  `json:"cache_hits"`
	CacheMisses            uint64  `json:"cache_misses"`
	CacheHitRatio          float64 `json:"cache_hit_ratio"`
}

// MetricsService encapsulates Prometheus instrumentation for the engine and
// aggregator and provides snapshots without an HTTP scrape surface.
type MetricsService struct {
	registry        *prometheus.Registry
	transactions    *prometheus.CounterVec
	dbQueryDuration *prometheus.HistogramVec
	cacheHits       prometheus.Counter
	cacheMisses     prometheus.Counter
	cacheHitRatio   prometheus.Gauge

	committedCount       uint64
	rolledBackCount      uint64
	cacheHitCount        uint64
	cacheMissCount       uint64
	dbQueryCount         uint64
	dbQueryDurationTotal uint64
}

// NewMetricsService registers core Prometheus collectors.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	transactions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "enrollment_transactions_total",
		Help: "Enrollment engine transactions by operation and result",
	}, []string{"operation", "result"})

	dbQueryDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "db_query_duration_seconds",
		Help:    "Duration of database queries in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"query"})

	cacheHits := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "cache_hits_total",
		Help: "Total cache hits",
	})

	cacheMisses := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "cache_misses_total",
		Help: "Total cache misses",
	})

	cacheHitRatio := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "cache_hit_ratio",
		Help: "Ratio of cache hits to total cache lookups",
	})

	registry.MustRegister(transactions, dbQueryDuration, cacheHits, cacheMisses, cacheHitRatio)

	return &MetricsService{
		registry:        registry,
		transactions:    transactions,
		dbQueryDuration: dbQueryDuration,
		cacheHits:       cacheHits,
		cacheMisses:     cacheMisses,
		cacheHitRatio:   cacheHitRatio,
	}
}

// Registry exposes the prometheus registry for embedding callers.
func (s *MetricsService) Registry() *prometheus.Registry {
	if s == nil {
		return nil
	}
	return s.registry
}

// RecordTransaction counts an engine transaction outcome.
func (s *MetricsService) RecordTransaction(operation string, committed bool) {
	if s == nil {
		return
	}
	result := "committed"
	if committed {
		atomic.AddUint64(&s.committedCount, 1)
	} else {
		result = "rolled_back"
		atomic.AddUint64(&s.rolledBackCount, 1)
	}
	s.transactions.WithLabelValues(operation, result).Inc()
}

// ObserveDBQuery records the duration of a named query.
func (s *MetricsService) ObserveDBQuery(query string, duration time.Duration) {
	if s == nil {
		return
	}
	s.dbQueryDuration.WithLabelValues(query).Observe(duration.Seconds())
	atomic.AddUint64(&s.dbQueryCount, 1)
	atomic.AddUint64(&s.dbQueryDurationTotal, uint64(duration.Milliseconds()))
}

// RecordCacheLookup counts a cache hit or miss and refreshes the hit ratio.
func (s *MetricsService) RecordCacheLookup(hit bool) {
	if s == nil {
		return
	}
	if hit {
		s.cacheHits.Inc()
		atomic.AddUint64(&s.cacheHitCount, 1)
	} else {
		s.cacheMisses.Inc()
		atomic.AddUint64(&s.cacheMissCount, 1)
	}
	hits := atomic.LoadUint64(&s.cacheHitCount)
	total := hits + atomic.LoadUint64(&s.cacheMissCount)
	if total > 0 {
		s.cacheHitRatio.Set(float64(hits) / float64(total))
	}
}

// Snapshot returns current counter values.
func (s *MetricsService) Snapshot() MetricsSnapshot {
	if s == nil {
		return MetricsSnapshot{}
	}
	snapshot := MetricsSnapshot{
		TransactionsCommitted:  atomic.LoadUint64(&s.committedCount),
		TransactionsRolledBack: atomic.LoadUint64(&s.rolledBackCount),
		DBQueries:              atomic.LoadUint64(&s.dbQueryCount),
		CacheHits:              atomic.LoadUint64(&s.cacheHitCount),
		CacheMisses:            atomic.LoadUint64(&s.cacheMissCount),
	}
	if snapshot.DBQueries > 0 {
		snapshot.AvgDBQueryMillis = float64(atomic.LoadUint64(&s.dbQueryDurationTotal)) / float64(snapshot.DBQueries)
	}
	if lookups := snapshot.CacheHits + snapshot.CacheMisses; lookups > 0 {
		snapshot.CacheHitRatio = float64(snapshot.CacheHits) / float64(lookups)
	}
	return snapshot
}
