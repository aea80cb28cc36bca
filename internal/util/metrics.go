package util

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	QuotesCreatedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "quotes_created_total",
		Help: "Total number of quotes created",
	}, []string{"service_id"})

	QuotesRepricedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "quotes_repriced_total",
		Help: "Total number of quote reprices",
	})

	PromoPreviewsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "promo_previews_total",
		Help: "Total number of promo previews by outcome",
	}, []string{"outcome"})

	QuoteTotalPrice = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "quote_total_price_dollars",
		Help:    "Distribution of quote totals after creation or reprice",
		Buckets: []float64{50, 75, 100, 125, 150, 200, 250, 300},
	})

	BookingsCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bookings_created_total",
		Help: "Total number of bookings created",
	})

	BookingsReplayedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bookings_replayed_total",
		Help: "Total number of booking requests answered from an idempotency key",
	})

	CheckoutsCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "checkouts_created_total",
		Help: "Total number of simulated checkouts",
	})

	BookingStatusPollsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "booking_status_polls_total",
		Help: "Total number of booking status reads by reported status",
	}, []string{"status"})

	EventPublishFailedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "event_publish_failed_total",
		Help: "Total number of lifecycle events that failed to publish",
	}, []string{"event_type"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})
)
