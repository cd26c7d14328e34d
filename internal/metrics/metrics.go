// Package metrics holds the Prometheus collectors shared across packages.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	catalogRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cinebot_catalog_requests_total",
		Help: "Catalog API calls by endpoint and outcome",
	}, []string{"endpoint", "outcome"})

	catalogLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "cinebot_catalog_request_duration_seconds",
		Help:    "Catalog API call latency including retries",
		Buckets: prometheus.DefBuckets,
	}, []string{"endpoint"})

	cacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cinebot_enrichment_cache_lookups_total",
		Help: "Enrichment cache lookups by result",
	}, []string{"result"})

	turns = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cinebot_turns_total",
		Help: "Conversational turns by handler and result kind",
	}, []string{"handler", "kind"})

	resolutions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cinebot_movie_resolutions_total",
		Help: "Movie title resolutions by path (cache, search, ambiguous, not_found)",
	}, []string{"path"})
)

func ObserveCatalog(endpoint string, start time.Time, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	catalogRequests.WithLabelValues(endpoint, outcome).Inc()
	catalogLatency.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
}

func CacheLookup(hit bool) {
	if hit {
		cacheLookups.WithLabelValues("hit").Inc()
		return
	}
	cacheLookups.WithLabelValues("miss").Inc()
}

func Turn(handler, kind string) {
	turns.WithLabelValues(handler, kind).Inc()
}

func Resolution(path string) {
	resolutions.WithLabelValues(path).Inc()
}
