package service

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	upstreamRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "heavytime_upstream_requests_total",
			Help: "Total number of requests to upstream generation services.",
		},
		[]string{"service", "status"}, // service: poem|audio|comic, status: success|error
	)
	upstreamRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "heavytime_upstream_request_duration_seconds",
			Help:    "Histogram of upstream generation request durations.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"service"},
	)
	storiesCreatedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "heavytime_stories_created_total",
			Help: "Total number of story creation workflows by terminal outcome.",
		},
		[]string{"outcome"}, // complete|partial|poem_failed|persistence_failed
	)
)

func observeUpstream(service string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	upstreamRequestsTotal.WithLabelValues(service, status).Inc()
	upstreamRequestDuration.WithLabelValues(service).Observe(time.Since(start).Seconds())
}
