// Package metrics exposes Prometheus counters for contact submissions.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Submission outcomes, used as the "outcome" label.
const (
	OutcomePersisted   = "persisted"
	OutcomeRejected    = "rejected"
	OutcomeFailed      = "failed"
	OutcomeRateLimited = "rate_limited"
)

// Recorder is the metrics surface used by the HTTP layer.
type Recorder interface {
	RecordSubmission(outcome string, duration time.Duration)
}

// Nop discards all observations.
type Nop struct{}

func (Nop) RecordSubmission(string, time.Duration) {}

// Collector records submissions into Prometheus metrics.
type Collector struct {
	submissions *prometheus.CounterVec
	latency     prometheus.Histogram
}

// NewCollector creates a Collector and registers its metrics with reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		submissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "folio_contact_submissions_total",
			Help: "Contact form submissions by outcome.",
		}, []string{"outcome"}),
		latency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "folio_contact_submission_duration_seconds",
			Help:    "Time spent handling a contact form submission.",
			Buckets: prometheus.DefBuckets,
		}),
	}
	reg.MustRegister(c.submissions, c.latency)
	return c
}

// RecordSubmission counts one submission and observes its handling time.
func (c *Collector) RecordSubmission(outcome string, duration time.Duration) {
	c.submissions.WithLabelValues(outcome).Inc()
	c.latency.Observe(duration.Seconds())
}

// Handler returns the scrape endpoint for gatherer.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
