// Package metrics provides Prometheus metrics for form submit cycles.
package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	goform "github.com/reoring/goform"
	"github.com/reoring/goform/form"
)

// Collector holds the Prometheus metrics for one form and implements form.Observer.
type Collector struct {
	SubmitsTotal     *prometheus.CounterVec
	SubmitDuration   *prometheus.HistogramVec
	SubmitsRejected  *prometheus.CounterVec
	FieldIssues      *prometheus.CounterVec
	SubmitsInFlight  prometheus.Gauge
	StateTransitions *prometheus.CounterVec
}

var _ form.Observer = (*Collector)(nil)

// New creates a collector registered with the default registry.
func New(formName string) *Collector {
	return NewWithRegistry(prometheus.DefaultRegisterer, formName)
}

// NewWithRegistry creates a collector with a custom registry.
// Useful for testing to avoid global state.
func NewWithRegistry(reg prometheus.Registerer, formName string) *Collector {
	factory := promauto.With(reg)
	labels := prometheus.Labels{"form": formName}

	return &Collector{
		SubmitsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace:   "goform",
				Name:        "submits_total",
				Help:        "Total number of submit attempts by outcome",
				ConstLabels: labels,
			},
			[]string{"outcome"},
		),
		SubmitDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace:   "goform",
				Name:        "submit_duration_seconds",
				Help:        "Duration of submit cycles in seconds",
				Buckets:     []float64{.001, .01, .05, .1, .25, .5, 1, 2.5, 5, 10},
				ConstLabels: labels,
			},
			[]string{"outcome"},
		),
		SubmitsRejected: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace:   "goform",
				Name:        "submits_rejected_total",
				Help:        "Total number of submit calls rejected by the guard",
				ConstLabels: labels,
			},
			[]string{"reason"},
		),
		FieldIssues: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace:   "goform",
				Name:        "field_issues_total",
				Help:        "Total number of validation issues by field and code",
				ConstLabels: labels,
			},
			[]string{"field", "code"},
		),
		SubmitsInFlight: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace:   "goform",
				Name:        "submits_in_flight",
				Help:        "Number of submit handlers currently running",
				ConstLabels: labels,
			},
		),
		StateTransitions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace:   "goform",
				Name:        "state_transitions_total",
				Help:        "Total number of submit state transitions",
				ConstLabels: labels,
			},
			[]string{"from", "to"},
		),
	}
}

// StateChanged counts the transition and tracks handlers in flight.
func (c *Collector) StateChanged(_ string, from, to form.State) {
	c.StateTransitions.WithLabelValues(from.String(), to.String()).Inc()
	switch {
	case to == form.StateSubmitting:
		c.SubmitsInFlight.Inc()
	case from == form.StateSubmitting:
		c.SubmitsInFlight.Dec()
	}
}

// Validated counts one issue per field and code.
func (c *Collector) Validated(_ string, iss goform.Issues) {
	for _, it := range iss {
		c.FieldIssues.WithLabelValues(it.Field(), it.Code).Inc()
	}
}

// SubmitDone records the outcome and duration.
func (c *Collector) SubmitDone(_ string, outcome form.Outcome, elapsed time.Duration) {
	c.SubmitsTotal.WithLabelValues(outcome.String()).Inc()
	c.SubmitDuration.WithLabelValues(outcome.String()).Observe(elapsed.Seconds())
}

// SubmitRejected counts guard rejections.
func (c *Collector) SubmitRejected(err error) {
	reason := "other"
	switch {
	case errors.Is(err, form.ErrSubmitting):
		reason = "in_progress"
	case errors.Is(err, form.ErrNotDirty):
		reason = "not_dirty"
	}
	c.SubmitsRejected.WithLabelValues(reason).Inc()
}
