// Package metrics exposes Prometheus counters for the booking and auth
// flows. Counters are registered with the default registry and served at
// /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	bookingsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "bookings_created_total",
			Help: "Total bookings created",
		},
	)

	bookingsCancelled = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "bookings_cancelled_total",
			Help: "Total bookings cancelled",
		},
	)

	bookingsRejected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bookings_rejected_total",
			Help: "Total booking requests rejected",
		},
		[]string{"reason"},
	)

	adminLogins = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "admin_logins_total",
			Help: "Total admin login attempts",
		},
		[]string{"outcome"},
	)
)

// BookingCreated records a successful booking.
func BookingCreated() {
	bookingsCreated.Inc()
}

// BookingCancelled records a successful cancellation.
func BookingCancelled() {
	bookingsCancelled.Inc()
}

// BookingRejected records a rejected booking request, labelled by reason
// (e.g. "insufficient_inventory", "not_found").
func BookingRejected(reason string) {
	bookingsRejected.WithLabelValues(reason).Inc()
}

// LoginAttempt records an admin login attempt, labelled by outcome
// ("success" or "failure").
func LoginAttempt(outcome string) {
	adminLogins.WithLabelValues(outcome).Inc()
}
