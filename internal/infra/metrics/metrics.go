package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome label values for RequestsTotal.
const (
	OutcomeSuccess         = "success"
	OutcomeNetwork         = "network_error"
	OutcomeDeserialization = "deserialization_error"
	OutcomeRejected        = "breaker_open"
)

var (
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "movie_backend_requests_total",
			Help: "Requests dispatched to the movie backend",
		},
		[]string{"endpoint", "outcome"},
	)

	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "movie_backend_request_duration_seconds",
			Help:    "Duration of backend requests including body decoding",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)

	ResponseBytes = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "movie_backend_response_bytes",
			Help:    "Size of backend response bodies",
			Buckets: prometheus.ExponentialBuckets(512, 4, 8),
		},
		[]string{"endpoint"},
	)

	InFlightRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "movie_backend_in_flight_requests",
			Help: "Backend requests currently awaiting a response",
		},
	)

	ValidationRejections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "movie_database_validation_rejections_total",
			Help: "Calls rejected before any request was sent",
		},
		[]string{"operation"},
	)

	ImagesResolved = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "movie_database_images_resolved_total",
			Help: "Image references produced, by image type and variant",
		},
		[]string{"image", "variant"},
	)
)
