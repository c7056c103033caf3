package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBooking_Active(t *testing.T) {
	tests := []struct {
		name     string
		booking  Booking
		expected bool
	}{
		{"outdoor going", Booking{Mode: ModeOutdoor, IsGoing: true}, true},
		{"outdoor not going", Booking{Mode: ModeOutdoor, IsGoing: false}, false},
		{"indoor confirmed", Booking{Mode: ModeIndoor, Status: StatusConfirmed, SlotIndex: 0}, true},
		{"indoor pending", Booking{Mode: ModeIndoor, Status: StatusPending, SlotIndex: NoSlot}, true},
		{"indoor waitlisted", Booking{Mode: ModeIndoor, Status: StatusWaitlisted, SlotIndex: NoSlot}, true},
		{"indoor cancelled", Booking{Mode: ModeIndoor, Status: StatusCancelled, SlotIndex: NoSlot}, false},
		{"indoor no status", Booking{Mode: ModeIndoor, SlotIndex: NoSlot}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.booking.Active())
		})
	}
}

func TestBooking_SlotPredicates(t *testing.T) {
	confirmed := Booking{Mode: ModeIndoor, Status: StatusConfirmed, SlotIndex: 2}
	assert.True(t, confirmed.Confirmed())
	assert.False(t, confirmed.Waitlisted())

	waitlisted := Booking{Mode: ModeIndoor, Status: StatusWaitlisted, SlotIndex: NoSlot}
	assert.False(t, waitlisted.Confirmed())
	assert.True(t, waitlisted.Waitlisted())

	// Outdoor bookings never hold or wait for slots regardless of status
	outdoor := Booking{Mode: ModeOutdoor, IsGoing: true, Status: StatusConfirmed}
	assert.False(t, outdoor.Confirmed())
	assert.False(t, outdoor.Waitlisted())
}

func TestBooking_JSONSerialization(t *testing.T) {
	createdAt := time.Now()

	booking := Booking{
		ID:        "booking-123",
		UserID:    "user-456",
		CourtID:   "court-789",
		Mode:      ModeIndoor,
		SlotIndex: 3,
		Status:    StatusConfirmed,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}

	jsonData, err := json.Marshal(booking)
	require.NoError(t, err)

	var unmarshaled Booking
	err = json.Unmarshal(jsonData, &unmarshaled)
	require.NoError(t, err)

	assert.Equal(t, booking.ID, unmarshaled.ID)
	assert.Equal(t, booking.UserID, unmarshaled.UserID)
	assert.Equal(t, booking.CourtID, unmarshaled.CourtID)
	assert.Equal(t, booking.Mode, unmarshaled.Mode)
	assert.Equal(t, booking.SlotIndex, unmarshaled.SlotIndex)
	assert.Equal(t, booking.Status, unmarshaled.Status)
	assert.WithinDuration(t, booking.CreatedAt, unmarshaled.CreatedAt, time.Second)
}

func TestBooking_NoSlotSurvivesJSON(t *testing.T) {
	// SlotIndex has no omitempty: -1 must round-trip rather than decode
	// back as 0, which is a real slot.
	booking := Booking{
		ID:        "booking-123",
		Mode:      ModeIndoor,
		SlotIndex: NoSlot,
		Status:    StatusWaitlisted,
	}

	jsonData, err := json.Marshal(booking)
	require.NoError(t, err)

	var unmarshaled Booking
	err = json.Unmarshal(jsonData, &unmarshaled)
	require.NoError(t, err)

	assert.Equal(t, NoSlot, unmarshaled.SlotIndex)
}
