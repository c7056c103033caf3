package models

import (
	"time"
)

type CourtMode string

const (
	ModeOutdoor CourtMode = "outdoor"
	ModeIndoor  CourtMode = "indoor"
)

type BookingStatus string

const (
	StatusPending    BookingStatus = "pending"
	StatusConfirmed  BookingStatus = "confirmed"
	StatusWaitlisted BookingStatus = "waitlisted"
	StatusCancelled  BookingStatus = "cancelled"
)

// NoSlot is the SlotIndex of any booking that does not hold a numbered slot.
const NoSlot = -1

// Booking is one user's relationship to one court. A court operates in
// exactly one mode for its lifetime, so either the RSVP fields or the
// slotted fields are meaningful, never both.
type Booking struct {
	ID      string    `json:"id"`
	UserID  string    `json:"user_id"`
	CourtID string    `json:"court_id"`
	Mode    CourtMode `json:"mode"`

	// Outdoor (RSVP) mode only.
	IsGoing bool `json:"is_going,omitempty"`

	// Indoor (slotted) mode only. SlotIndex is NoSlot unless the booking
	// is confirmed.
	SlotIndex int           `json:"slot_index"`
	Status    BookingStatus `json:"status,omitempty"` // confirmed, pending, waitlisted, cancelled

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Active reports whether the booking still counts against the
// one-active-booking-per-(user, court) rule.
func (b *Booking) Active() bool {
	if b.Mode == ModeOutdoor {
		return b.IsGoing
	}
	return b.Status != "" && b.Status != StatusCancelled
}

// Confirmed reports whether the booking holds a numbered slot.
func (b *Booking) Confirmed() bool {
	return b.Mode == ModeIndoor && b.Status == StatusConfirmed
}

// Waitlisted reports whether the booking is queued for a slot.
func (b *Booking) Waitlisted() bool {
	return b.Mode == ModeIndoor && b.Status == StatusWaitlisted
}
