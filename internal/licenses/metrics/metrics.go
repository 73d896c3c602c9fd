package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// Metrics holds the Prometheus metrics for license fetches.
type Metrics struct {
	FetchTotal    *prometheus.CounterVec
	FetchDuration prometheus.Histogram
	LastCount     prometheus.Gauge
}

// New creates and registers the fetch metrics on reg. A nil reg leaves
// them unregistered.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		FetchTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "portal_licenses_fetch_total",
			Help: "License fetches by outcome and failure category",
		}, []string{"outcome", "category"}),
		FetchDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "portal_licenses_fetch_duration_seconds",
			Help:    "Latency of license fetches against the licensing API",
			Buckets: prometheus.DefBuckets,
		}),
		LastCount: f.NewGauge(prometheus.GaugeOpts{
			Name: "portal_licenses_last_count",
			Help: "Number of licenses in the most recent receipt",
		}),
	}
}

func (m *Metrics) ObserveSuccess(count int, elapsed time.Duration) {
	m.FetchTotal.WithLabelValues(OutcomeSuccess, "").Inc()
	m.FetchDuration.Observe(elapsed.Seconds())
	m.LastCount.Set(float64(count))
}

func (m *Metrics) ObserveFailure(category string, elapsed time.Duration) {
	m.FetchTotal.WithLabelValues(OutcomeFailure, category).Inc()
	m.FetchDuration.Observe(elapsed.Seconds())
}
