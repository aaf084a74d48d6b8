package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	OSMRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "trailmap_osm_requests_total",
		Help: "Requests issued to the OSM API, by operation.",
	}, []string{"op"})

	OSMFailTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "trailmap_osm_failures_total",
		Help: "Failed OSM API requests, by operation.",
	}, []string{"op"})

	OSMDurationSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "trailmap_osm_request_duration_seconds",
		Help:    "OSM API request latency.",
		Buckets: prometheus.DefBuckets,
	})

	IndexUpsertsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "trailmap_index_upserts_total",
		Help: "Features written to the search index.",
	})

	CacheHitsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "trailmap_cache_hits_total",
		Help: "Search cache hits.",
	})

	CacheMissesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "trailmap_cache_misses_total",
		Help: "Search cache misses.",
	})
)
