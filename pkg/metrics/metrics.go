// Package metrics defines the Prometheus collectors for the capture API.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ParseRequests counts parse requests by endpoint and outcome.
	ParseRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "capture_parse_requests_total",
		Help: "Number of capture parse requests.",
	}, []string{"endpoint", "outcome"})

	// ParseConfidence tracks the confidence distribution of parse results,
	// the main signal for lexicon drift.
	ParseConfidence = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "capture_parse_confidence",
		Help:    "Confidence scores of parsed transactions.",
		Buckets: prometheus.LinearBuckets(0, 0.1, 11),
	})

	// ParseDuration tracks request handling latency per endpoint.
	ParseDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "capture_parse_duration_seconds",
		Help:    "Latency of capture endpoints.",
		Buckets: prometheus.DefBuckets,
	}, []string{"endpoint"})
)
