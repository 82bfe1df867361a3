// File: services/prometheus_metrics.go
package services

import (
	"strings"
	"time"

	"gig-web/models"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// PrometheusMetrics exposes the same events as CloudWatchMetrics for scraping.
type PrometheusMetrics struct {
	apiDuration *prometheus.HistogramVec
	apiErrors   *prometheus.CounterVec
	submissions *prometheus.CounterVec
}

// NewPrometheusMetrics registers the collectors on reg.
func NewPrometheusMetrics(reg prometheus.Registerer, namespace string) *PrometheusMetrics {
	namespace = strings.ToLower(namespace)
	return &PrometheusMetrics{
		apiDuration: promauto.With(reg).NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "api_request_duration_seconds",
				Help:      "Duration of gig API calls.",
				Buckets:   prometheus.DefBuckets,
			}, []string{"operation"},
		),
		apiErrors: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "api_errors_total",
				Help:      "Failed gig API calls.",
			}, []string{"operation"},
		),
		submissions: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "gig_submissions_total",
				Help:      "Gig form submissions by mode and outcome.",
			}, []string{"mode", "outcome"},
		),
	}
}

// RecordAPICall observes the call duration and counts failures.
func (m *PrometheusMetrics) RecordAPICall(op string, elapsed time.Duration, err error) {
	m.apiDuration.WithLabelValues(op).Observe(elapsed.Seconds())
	if err != nil {
		m.apiErrors.WithLabelValues(op).Inc()
	}
}

// RecordSubmission counts one submission.
func (m *PrometheusMetrics) RecordSubmission(mode models.FormMode, success bool) {
	outcome := "failure"
	if success {
		outcome = "success"
	}
	m.submissions.WithLabelValues(string(mode), outcome).Inc()
}
