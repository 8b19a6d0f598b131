package utils

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics groups the Prometheus collectors exported on /metrics.
type Metrics struct {
	HTTPRequests        *prometheus.CounterVec
	HTTPDuration        *prometheus.HistogramVec
	BookingsSubmitted   prometheus.Counter
	SubmissionFailures  *prometheus.CounterVec
	PhotosUploaded      prometheus.Counter
	StatusUpdates       *prometheus.CounterVec
	SubmissionsSwept    *prometheus.CounterVec
	NotificationsFailed *prometheus.CounterVec
}

// NewMetrics registers collectors on reg. Tests pass a fresh registry.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		HTTPRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "scrapiz_http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"method", "route", "status"}),

		HTTPDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "scrapiz_http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),

		BookingsSubmitted: factory.NewCounter(prometheus.CounterOpts{
			Name: "scrapiz_bookings_submitted_total",
			Help: "Total number of bookings created through the wizard",
		}),

		SubmissionFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "scrapiz_submission_failures_total",
			Help: "Submission failures by stage",
		}, []string{"stage"}),

		PhotosUploaded: factory.NewCounter(prometheus.CounterOpts{
			Name: "scrapiz_booking_photos_uploaded_total",
			Help: "Total number of booking photos stored",
		}),

		StatusUpdates: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "scrapiz_booking_status_updates_total",
			Help: "Admin status updates by target status",
		}, []string{"status"}),

		SubmissionsSwept: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "scrapiz_submissions_reconciled_total",
			Help: "Stale submissions resolved by the reconciler, by outcome",
		}, []string{"state"}),

		NotificationsFailed: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "scrapiz_notifications_failed_total",
			Help: "Failed outbound notifications by channel",
		}, []string{"channel"}),
	}
}

// NopMetrics registers on a throwaway registry.
func NopMetrics() *Metrics {
	return NewMetrics(prometheus.NewRegistry())
}
