package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the prometheus instruments for the booking lifecycle.
type Metrics struct {
	BookingsCreated  prometheus.Counter
	BookingsApproved prometheus.Counter
	BookingsRejected prometheus.Counter
	BookingsCanceled prometheus.Counter
	ListRequests     *prometheus.CounterVec
}

// New registers and returns the service metrics.
func New() *Metrics {
	return &Metrics{
		BookingsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "rental_bookings_created_total",
			Help: "Total number of bookings created",
		}),
		BookingsApproved: promauto.NewCounter(prometheus.CounterOpts{
			Name: "rental_bookings_approved_total",
			Help: "Total number of bookings approved by item owners",
		}),
		BookingsRejected: promauto.NewCounter(prometheus.CounterOpts{
			Name: "rental_bookings_rejected_total",
			Help: "Total number of bookings rejected by item owners",
		}),
		BookingsCanceled: promauto.NewCounter(prometheus.CounterOpts{
			Name: "rental_bookings_canceled_total",
			Help: "Total number of bookings canceled by bookers",
		}),
		ListRequests: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "rental_booking_list_requests_total",
			Help: "Booking list requests by role and state",
		}, []string{"role", "state"}),
	}
}
