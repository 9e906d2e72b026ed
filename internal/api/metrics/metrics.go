// Package metrics defines the custom Prometheus metrics for the clinical
// labs services. It is the single source of truth for metric names, labels
// and help strings; everything registers with the default registry via
// promauto at import time.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "cliniclabs"

// RegistrationsTotal counts successful user registrations by role.
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of users registered, by role.",
	},
	[]string{"role"},
)

// LoginsTotal counts login attempts by outcome.
// Outcomes: success, not_found, inactive, bad_password.
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by outcome.",
	},
	[]string{"outcome"},
)

// AppointmentsCreatedTotal counts newly booked appointments.
var AppointmentsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "appointments_created_total",
		Help:      "Total number of appointments created.",
	},
)

// ResultsCreatedTotal counts newly recorded analysis results by initial status.
var ResultsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "results_created_total",
		Help:      "Total number of analysis results recorded, by initial status.",
	},
	[]string{"status"},
)
