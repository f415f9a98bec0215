// Package metrics exports instance activity as Prometheus metrics through
// interactkit lifecycle hooks.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/felixgeelhaar/interactkit"
)

// Collector owns the interactkit metric vectors
type Collector struct {
	transitions *prometheus.CounterVec
	entries     *prometheus.CounterVec
	ignored     *prometheus.CounterVec
	dropped     *prometheus.CounterVec
	active      *prometheus.GaugeVec
}

// NewCollector creates the metric vectors and registers them with reg.
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	c := &Collector{
		transitions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "interactkit_transitions_total",
				Help: "Transitions fired, by source and target leaf",
			},
			[]string{"machine", "from", "to"},
		),
		entries: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "interactkit_state_entries_total",
				Help: "State entry functions run",
			},
			[]string{"machine", "state"},
		),
		ignored: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "interactkit_events_ignored_total",
				Help: "Events with no registration on the active chain",
			},
			[]string{"machine"},
		),
		dropped: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "interactkit_events_dropped_total",
				Help: "Events declined by a guard or computed transition",
			},
			[]string{"machine", "scope"},
		),
		active: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "interactkit_instances_active",
				Help: "Instances started and not yet completed",
			},
			[]string{"machine"},
		),
	}

	for _, col := range []prometheus.Collector{c.transitions, c.entries, c.ignored, c.dropped, c.active} {
		if err := reg.Register(col); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Hooks returns lifecycle hooks feeding the collector. Pass them to
// interactkit.WithHooks.
func (c *Collector) Hooks() interactkit.Hooks {
	return interactkit.Hooks{
		OnStart: func(e *interactkit.StateEvent) {
			c.active.WithLabelValues(e.Machine).Inc()
		},
		OnEnter: func(e *interactkit.StateEvent) {
			c.entries.WithLabelValues(e.Machine, e.State).Inc()
		},
		OnTransition: func(e *interactkit.TransitionEvent) {
			c.transitions.WithLabelValues(e.Machine, e.From, e.To).Inc()
		},
		OnIgnored: func(e *interactkit.StateEvent) {
			c.ignored.WithLabelValues(e.Machine).Inc()
		},
		OnDropped: func(e *interactkit.StateEvent) {
			c.dropped.WithLabelValues(e.Machine, e.State).Inc()
		},
		OnComplete: func(e *interactkit.StateEvent) {
			c.active.WithLabelValues(e.Machine).Dec()
		},
	}
}
