package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"portal/internal/state"
)

// Metrics holds the store-level Prometheus metrics.
type Metrics struct {
	ActionsDispatched *prometheus.CounterVec
	ReduceDuration    prometheus.Histogram
}

// New creates and registers the metrics on reg. A nil reg leaves them
// unregistered.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		ActionsDispatched: f.NewCounterVec(prometheus.CounterOpts{
			Name: "portal_actions_dispatched_total",
			Help: "Total number of actions dispatched to the portal store",
		}, []string{"type"}),
		ReduceDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "portal_reduce_duration_seconds",
			Help:    "Time spent folding one action into the portal state",
			Buckets: []float64{.00001, .00005, .0001, .0005, .001, .005, .01},
		}),
	}
}

// ObserveDispatch records one folded action. It matches the store observer
// signature.
func (m *Metrics) ObserveDispatch(a state.Action, elapsed time.Duration) {
	m.ActionsDispatched.WithLabelValues(string(a.Type())).Inc()
	m.ReduceDuration.Observe(elapsed.Seconds())
}
