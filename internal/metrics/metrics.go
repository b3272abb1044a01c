package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	MessagesDispatched = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bridge_messages_dispatched_total",
			Help: "Integration messages seen by the dispatcher, by event and outcome.",
		},
		[]string{"event", "outcome"},
	)

	Navigations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bridge_navigations_total",
			Help: "Navigate requests by result.",
		},
		[]string{"result"},
	)

	ConfirmationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "bridge_confirmation_duration_ms",
			Help:    "Time the user took to answer the unsaved changes dialog in milliseconds.",
			Buckets: []float64{100, 250, 500, 1000, 2500, 5000, 10000, 30000, 60000},
		},
		[]string{"answer"},
	)

	ActiveSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "bridge_active_host_sessions",
			Help: "Host page sessions currently connected.",
		},
	)
)

const (
	OutcomeHandled   = "handled"
	OutcomeIgnored   = "ignored"
	OutcomeMalformed = "malformed"
	OutcomeFailed    = "failed"

	ResultNavigated     = "navigated"
	ResultDeclined      = "declined"
	ResultUnknownTarget = "unknown_target"
	ResultInvalid       = "invalid"
)
