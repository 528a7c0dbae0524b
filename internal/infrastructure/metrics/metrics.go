package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
)

// Search-API metrics - using explicit registration
var (
	// Request counters
	RequestsTotal *prometheus.CounterVec

	// Search counters by provenance and outcome (live, cache, fallback)
	SearchesTotal *prometheus.CounterVec

	// Result cache lookups
	CacheLookupsTotal *prometheus.CounterVec

	// External provider latency (aggregator, vision, assistant)
	ExternalProviderLatency *prometheus.HistogramVec
)

// init creates and registers all metrics with the default registry
func init() {
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "pricefinder",
			Subsystem: "search",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "status"},
	)

	SearchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "pricefinder",
			Subsystem: "search",
			Name:      "searches_total",
			Help:      "Total product searches by provenance and outcome",
		},
		[]string{"provenance", "outcome"},
	)

	CacheLookupsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "pricefinder",
			Subsystem: "search",
			Name:      "cache_lookups_total",
			Help:      "Result cache lookups by result",
		},
		[]string{"result"},
	)

	ExternalProviderLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "pricefinder",
			Subsystem: "search",
			Name:      "external_provider_latency_seconds",
			Help:      "External provider response time in seconds",
			Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30},
		},
		[]string{"provider"},
	)

	prometheus.MustRegister(RequestsTotal)
	prometheus.MustRegister(SearchesTotal)
	prometheus.MustRegister(CacheLookupsTotal)
	prometheus.MustRegister(ExternalProviderLatency)
	log.Info().Msg("search metrics registered with Prometheus")
}

// RecordRequest records an HTTP request
func RecordRequest(method, status string) {
	RequestsTotal.WithLabelValues(method, status).Inc()
}

// RecordSearch records a completed product search
func RecordSearch(provenance, outcome string) {
	if provenance == "" {
		provenance = "unknown"
	}
	if outcome == "" {
		outcome = "unknown"
	}
	SearchesTotal.WithLabelValues(provenance, outcome).Inc()
}

// RecordCacheLookup records a result cache hit or miss
func RecordCacheLookup(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	CacheLookupsTotal.WithLabelValues(result).Inc()
}

// RecordExternalProviderLatency records external provider response time
func RecordExternalProviderLatency(provider string, durationSec float64) {
	ExternalProviderLatency.WithLabelValues(provider).Observe(durationSec)
}
