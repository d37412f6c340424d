// Package metrics defines the custom Prometheus metrics for the Technova
// backend. It is the single source of truth for metric names, labels, and
// help strings. Collectors register themselves with the default registry
// at init time via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "technova"

// AuthFailuresTotal counts failed authentication attempts.
// Label:
//   - reason: "missing_token", "invalid_token", "user_not_found", "bad_password"
var AuthFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_failures_total",
		Help:      "Total number of failed authentication attempts, by reason.",
	},
	[]string{"reason"},
)

// RegistrationsTotal counts account registrations by outcome.
// Label:
//   - outcome: "created", "duplicate", "error"
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of registration attempts, by outcome.",
	},
	[]string{"outcome"},
)

// OrdersPlacedTotal counts placed orders (not individual lines).
var OrdersPlacedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "orders_placed_total",
		Help:      "Total number of orders placed.",
	},
)

// PaymentsRecordedTotal counts recorded checkout payments.
// Label:
//   - method: the claimed payment method.
var PaymentsRecordedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "payments_recorded_total",
		Help:      "Total number of payments recorded at checkout, by method.",
	},
	[]string{"method"},
)
