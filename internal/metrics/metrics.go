// Package metrics defines the Prometheus collectors exported by graphview.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// MetadataFetchesTotal counts fetch cycles by outcome: ok, empty, connection, query.
	MetadataFetchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "graphview_metadata_fetches_total",
			Help: "Total number of label/relationship-type fetch cycles",
		},
		[]string{"outcome"},
	)

	// RendersTotal counts render steps by front-end and outcome: rendered, skipped, failed.
	RendersTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "graphview_renders_total",
			Help: "Total number of render attempts",
		},
		[]string{"frontend", "outcome"},
	)

	HttpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "graphview_http_requests_total",
			Help: "Total number of HTTP requests processed",
		},
		[]string{"method", "path", "status"},
	)

	HttpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "graphview_http_request_duration_seconds",
			Help: "Duration of HTTP requests in seconds",
			// The slow end covers LLM generation on the authoring endpoints.
			Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"method", "path"},
	)
)
