// Package metrics defines the advisor's Prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	Classifications = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "advisor_classifications_total",
			Help: "Total number of chat messages classified, by detected type",
		},
		[]string{"type"},
	)

	ChancesEstimates = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "advisor_chances_estimates_total",
			Help: "Total number of admission chance estimates, by resulting tier",
		},
		[]string{"tier"},
	)

	DraftsConfirmed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "advisor_drafts_confirmed_total",
			Help: "Total number of draft records confirmed into a profile, by type",
		},
		[]string{"type"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "advisor_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "status"},
	)
)
