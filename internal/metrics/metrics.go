package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	BookingsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "agrirent_bookings_created_total",
		Help: "Total number of booking requests created",
	})

	// outcome: accepted | rejected
	DecisionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "agrirent_booking_decisions_total",
		Help: "Total number of booking decisions by outcome",
	}, []string{"outcome"})

	DecisionConflicts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "agrirent_booking_decision_conflicts_total",
		Help: "Decision attempts refused because the booking was already processed",
	})

	BookingsCancelled = promauto.NewCounter(prometheus.CounterOpts{
		Name: "agrirent_bookings_cancelled_total",
		Help: "Total number of bookings cancelled while pending",
	})
)
