package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	confirmedSlots = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "court_confirmed_slots_total",
			Help: "Current number of confirmed slots per court",
		},
		[]string{"court_id"},
	)

	waitlistLength = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "court_waitlist_length_total",
			Help: "Current waitlist length per court",
		},
		[]string{"court_id"},
	)

	bookingOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "booking_operations_total",
			Help: "Total booking operations",
		},
		[]string{"operation", "court_id", "outcome"},
	)

	promotions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "waitlist_promotions_total",
			Help: "Total waitlist promotions per court",
		},
		[]string{"court_id"},
	)
)

// Monitor is a thin handle over the process-wide collectors. A nil
// Monitor is valid and records nothing, so the engine can run unmetered.
type Monitor struct{}

func NewMonitor() *Monitor {
	return &Monitor{}
}

// TrackBookingOperation counts one booking operation and its outcome.
func (m *Monitor) TrackBookingOperation(operation, courtID, outcome string) {
	if m == nil {
		return
	}
	bookingOperations.WithLabelValues(operation, courtID, outcome).Inc()
}

// SetCourtOccupancy updates the per-court occupancy gauges.
func (m *Monitor) SetCourtOccupancy(courtID string, confirmed, waitlisted int) {
	if m == nil {
		return
	}
	confirmedSlots.WithLabelValues(courtID).Set(float64(confirmed))
	waitlistLength.WithLabelValues(courtID).Set(float64(waitlisted))
}

// TrackPromotion counts one waitlist promotion.
func (m *Monitor) TrackPromotion(courtID string) {
	if m == nil {
		return
	}
	promotions.WithLabelValues(courtID).Inc()
}
