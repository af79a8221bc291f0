package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// DecisionsTotal counts quote decisions by product and terminal state.
	DecisionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "okra",
		Name:      "decisions_total",
		Help:      "Quote decisions by product and outcome.",
	}, []string{"product", "outcome"})

	// DecisionDuration observes end-to-end quote evaluation latency.
	DecisionDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "okra",
		Name:      "decision_duration_seconds",
		Help:      "Quote evaluation latency by product.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"product"})

	// EventPublishFailures counts decision events that could not be delivered.
	EventPublishFailures = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "okra",
		Name:      "event_publish_failures_total",
		Help:      "Decision events dropped after a publish error.",
	})
)
