// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "macromatch"

var (
	once sync.Once

	Recommendations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "engine",
			Name:      "recommendations_total",
			Help:      "Recommendations produced by outcome",
		},
		[]string{"recommendation"},
	)

	Predictions = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "engine",
			Name:      "predictions_total",
			Help:      "Scenario predictions generated",
		},
	)

	UpstreamRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "upstream",
			Name:      "requests_total",
			Help:      "Upstream market data calls by provider and outcome",
		},
		[]string{"provider", "outcome"},
	)

	UpstreamLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "upstream",
			Name:      "latency_seconds",
			Help:      "Latency of upstream market data calls",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"provider"},
	)

	CacheLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "lookups_total",
			Help:      "Cache lookups by layer and result",
		},
		[]string{"layer", "result"},
	)
)

// Register adds the collectors to the default registry once.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(Recommendations, Predictions, UpstreamRequests, UpstreamLatency, CacheLookups)
	})
}

// ObserveUpstream records one provider call.
func ObserveUpstream(provider string, start time.Time, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	UpstreamRequests.WithLabelValues(provider, outcome).Inc()
	UpstreamLatency.WithLabelValues(provider).Observe(time.Since(start).Seconds())
}

func CacheHit(layer string)  { CacheLookups.WithLabelValues(layer, "hit").Inc() }
func CacheMiss(layer string) { CacheLookups.WithLabelValues(layer, "miss").Inc() }
