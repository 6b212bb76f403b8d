// Package metrics holds the Prometheus collectors for share text generation.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	GenerateTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "eventshare_generate_total",
		Help: "Number of share text generations requested",
	})
	GenerateSeconds = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "eventshare_generate_seconds",
		Help:    "Time spent generating share texts",
		Buckets: prometheus.DefBuckets,
	})
	CacheHitsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "eventshare_cache_hits_total",
		Help: "Share results served from the cache",
	})
	CacheMissesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "eventshare_cache_misses_total",
		Help: "Share results that had to be generated",
	})
	TruncatedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "eventshare_truncated_total",
		Help: "Generated share texts that did not fit every event",
	})
	CacheEntries = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "eventshare_cache_entries",
		Help: "Share results currently cached",
	})
	ConfigReloadsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "eventshare_config_reloads_total",
		Help: "Share configuration reloads applied",
	})
)

// MustRegister registers all collectors with the given registerer.
func MustRegister(registerer prometheus.Registerer) {
	registerer.MustRegister(
		GenerateTotal,
		GenerateSeconds,
		CacheHitsTotal,
		CacheMissesTotal,
		TruncatedTotal,
		CacheEntries,
		ConfigReloadsTotal,
	)
}

// IncGenerate counts one generation request.
func IncGenerate() {
	GenerateTotal.Inc()
}

// ObserveGenerateDuration records how long one generation took.
func ObserveGenerateDuration(d time.Duration) {
	GenerateSeconds.Observe(d.Seconds())
}

// IncCacheHit counts a share result served from the cache.
func IncCacheHit() {
	CacheHitsTotal.Inc()
}

// IncCacheMiss counts a share result that had to be generated.
func IncCacheMiss() {
	CacheMissesTotal.Inc()
}

// IncTruncated counts a generated text that dropped events.
func IncTruncated() {
	TruncatedTotal.Inc()
}

// SetCacheEntries records the current cache size.
func SetCacheEntries(n int) {
	CacheEntries.Set(float64(n))
}

// IncConfigReload counts an applied share configuration reload.
func IncConfigReload() {
	ConfigReloadsTotal.Inc()
}
