package models

// Court is the slice of court metadata the engine needs. The full record
// (name, venue, schedule) lives in the courts collection; mode and capacity
// are resolved externally and passed in.
type Court struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Mode     CourtMode `json:"mode"`
	Capacity int       `json:"capacity"` // indoor mode only
}

// Participant is a roster-display projection of a booking plus the user's
// display name. It is computed from current store state, never persisted.
type Participant struct {
	BookingID   string        `json:"booking_id"`
	UserID      string        `json:"user_id"`
	DisplayName string        `json:"display_name"`
	SlotIndex   int           `json:"slot_index"` // NoSlot while waitlisted
	Status      BookingStatus `json:"status"`
	Position    int           `json:"position,omitempty"` // waitlist position, 0-based
}
