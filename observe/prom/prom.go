// Package prom exports abort lifecycle events as Prometheus metrics.
package prom

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Observer implements abort.Observer on top of a Prometheus registry.
type Observer struct {
	retryAttempts prometheus.Counter
	retryStops    prometheus.Counter
	groupsStarted prometheus.Counter
	groupFutures  prometheus.Counter
	groupsSettled *prometheus.CounterVec
	drainSeconds  prometheus.Histogram
}

// New registers the abort metrics with reg and returns the observer.
// Passing prometheus.DefaultRegisterer wires the default registry.
func New(reg prometheus.Registerer) *Observer {
	factory := promauto.With(reg)
	return &Observer{
		retryAttempts: factory.NewCounter(prometheus.CounterOpts{
			Name: "abort_retry_attempts_failed_total",
			Help: "Failed retry attempts observed before backoff.",
		}),
		retryStops: factory.NewCounter(prometheus.CounterOpts{
			Name: "abort_retry_stopped_total",
			Help: "Retry loops that gave up and propagated an error.",
		}),
		groupsStarted: factory.NewCounter(prometheus.CounterOpts{
			Name: "abort_groups_started_total",
			Help: "Combinator calls that obtained their futures.",
		}),
		groupFutures: factory.NewCounter(prometheus.CounterOpts{
			Name: "abort_group_futures_total",
			Help: "Futures handed to combinator calls.",
		}),
		groupsSettled: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "abort_groups_settled_total",
			Help: "Fully drained combinator calls by outcome.",
		}, []string{"outcome"}),
		drainSeconds: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "abort_group_drain_seconds",
			Help:    "Time from obtaining futures to full settlement.",
			Buckets: prometheus.DefBuckets,
		}),
	}
}

// AttemptFailed counts a failed retry attempt.
func (o *Observer) AttemptFailed(_ int, _ error, _ time.Duration) {
	o.retryAttempts.Inc()
}

// RetryStopped counts a retry loop giving up.
func (o *Observer) RetryStopped(_ int, _ error) {
	o.retryStops.Inc()
}

// GroupStarted counts a combinator call and its futures.
func (o *Observer) GroupStarted(n int) {
	o.groupsStarted.Inc()
	o.groupFutures.Add(float64(n))
}

// GroupSettled records a drained combinator call and its outcome.
func (o *Observer) GroupSettled(_ int, wait time.Duration, err error) {
	outcome := "fulfilled"
	if err != nil {
		outcome = "rejected"
	}
	o.groupsSettled.WithLabelValues(outcome).Inc()
	o.drainSeconds.Observe(wait.Seconds())
}
