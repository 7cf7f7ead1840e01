package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Engagement Metrics
	EventsRecorded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "linkhub_events_recorded_total",
			Help: "Total number of engagement events recorded",
		},
		[]string{"kind"}, // "view", "click"
	)

	EventsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "linkhub_events_failed_total",
			Help: "Total number of engagement events that could not be recorded",
		},
		[]string{"kind", "reason"}, // "not_found", "store"
	)

	// Quota Metrics
	QuotaDenials = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "linkhub_quota_denials_total",
			Help: "Total number of creates rejected by plan limits",
		},
		[]string{"kind"},
	)

	// Ordering Metrics
	SortUpdates = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "linkhub_sort_updates_total",
			Help: "Total number of sort values rewritten by ordering operations",
		},
		[]string{"kind"},
	)

	// API Metrics
	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "linkhub_api_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)
)

// RecordEvent counts a recorded or failed engagement event.
func RecordEvent(kind string, err error, notFound bool) {
	switch {
	case err == nil:
		EventsRecorded.WithLabelValues(kind).Inc()
	case notFound:
		EventsFailed.WithLabelValues(kind, "not_found").Inc()
	default:
		EventsFailed.WithLabelValues(kind, "store").Inc()
	}
}

// RecordAPIRequest observes the latency of one HTTP request.
func RecordAPIRequest(method, route string, status int, duration time.Duration) {
	APIRequestDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(duration.Seconds())
}
