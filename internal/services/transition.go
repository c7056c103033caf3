package services

import (
	"court-booking/internal/status"
	"court-booking/models"
)

// legalTransitions is the state graph for indoor bookings. The empty
// status stands for "no booking yet". Outdoor bookings are a two-state
// going/not-going flag and never pass through here. confirmed->confirmed
// covers the admin move, which re-keys the slot index without a status
// change. cancelled is terminal.
var legalTransitions = map[models.BookingStatus]map[models.BookingStatus]bool{
	"": {
		models.StatusPending: true,
	},
	models.StatusPending: {
		models.StatusConfirmed:  true,
		models.StatusWaitlisted: true,
	},
	models.StatusConfirmed: {
		models.StatusConfirmed: true,
		models.StatusCancelled: true,
	},
	models.StatusWaitlisted: {
		models.StatusConfirmed: true,
		models.StatusCancelled: true,
	},
	models.StatusCancelled: {},
}

// ValidateTransition rejects any move not in the legal state graph with a
// ConflictError naming the current and attempted state.
func ValidateTransition(from, to models.BookingStatus) error {
	if legalTransitions[from][to] {
		return nil
	}
	return status.NewTransitionConflict(string(from), string(to))
}
