// Package metrics holds the Prometheus collectors of the digest service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	OperationSearch = "search"
	OperationStats  = "stats"

	ResultOK    = "ok"
	ResultError = "error"
)

var (
	// DigestRequestsTotal counts /digest requests by outcome (ok, input, upstream, internal).
	DigestRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ytdigest_digest_requests_total",
		Help: "Total number of digest requests, by outcome.",
	}, []string{"outcome"})

	// UpstreamCallsTotal counts calls to the YouTube Data API.
	UpstreamCallsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ytdigest_upstream_calls_total",
		Help: "Total number of YouTube Data API calls, by operation and result.",
	}, []string{"operation", "result"})

	DigestVideosReturned = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "ytdigest_digest_videos_returned",
		Help:    "Number of videos returned per successful digest.",
		Buckets: []float64{0, 10, 25, 50, 100, 250, 500, 1000},
	})
)

func RecordUpstream(operation string, err error) {
	result := ResultOK
	if err != nil {
		result = ResultError
	}
	UpstreamCallsTotal.WithLabelValues(operation, result).Inc()
}
