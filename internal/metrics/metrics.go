package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	BookingsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "lendly_bookings_created_total",
		Help: "Number of bookings admitted in WAITING status.",
	})
	BookingsApproved = promauto.NewCounter(prometheus.CounterOpts{
		Name: "lendly_bookings_approved_total",
		Help: "Number of bookings approved by item owners.",
	})
	BookingsRejected = promauto.NewCounter(prometheus.CounterOpts{
		Name: "lendly_bookings_rejected_total",
		Help: "Number of bookings rejected by item owners.",
	})
	CommentsPosted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "lendly_comments_posted_total",
		Help: "Number of comments accepted on items.",
	})

	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lendly_http_requests_total",
		Help: "HTTP requests by method, route and status code.",
	}, []string{"method", "route", "status"})

	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "lendly_http_request_duration_seconds",
		Help:    "HTTP request latency by route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})
)
