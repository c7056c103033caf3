package services

import (
	"context"
	"sort"
	"time"

	"court-booking/internal/store"
	"court-booking/models"
)

// SlotAllocator assigns and frees numbered slots for indoor courts. Slot
// state is derived from the confirmed bookings in the store, so the store
// write and the slot table can never disagree.
type SlotAllocator struct {
	store store.Store
}

func NewSlotAllocator(st store.Store) *SlotAllocator {
	return &SlotAllocator{store: st}
}

// Assign tries to confirm the booking into the lowest unused slot index.
// It reports false without writing when the court is at capacity; the
// caller routes the booking to the waitlist instead. Running over capacity
// is never an error here.
func (a *SlotAllocator) Assign(ctx context.Context, court *models.Court, b *models.Booking) (bool, error) {
	confirmed, err := a.Confirmed(ctx, court.ID)
	if err != nil {
		return false, err
	}
	if len(confirmed) >= court.Capacity {
		return false, nil
	}

	if err := ValidateTransition(b.Status, models.StatusConfirmed); err != nil {
		return false, err
	}

	b.Status = models.StatusConfirmed
	b.SlotIndex = lowestFreeSlot(confirmed, court.Capacity)
	b.UpdatedAt = time.Now().UTC()

	if err := a.store.Put(ctx, b); err != nil {
		return false, err
	}
	return true, nil
}

// Free reports whether slotIndex is unheld for the court. The slot table
// being derived, a slot frees the moment its holder stops being confirmed;
// Free lets the caller verify that before running a promotion check.
// Checking an unheld slot is a no-op, not an error.
func (a *SlotAllocator) Free(ctx context.Context, courtID string, slotIndex int) (bool, error) {
	confirmed, err := a.Confirmed(ctx, courtID)
	if err != nil {
		return false, err
	}
	for _, b := range confirmed {
		if b.SlotIndex == slotIndex {
			return false, nil
		}
	}
	return true, nil
}

// Confirmed returns the court's confirmed bookings ordered by slot index.
func (a *SlotAllocator) Confirmed(ctx context.Context, courtID string) ([]*models.Booking, error) {
	bookings, err := a.store.ByCourt(ctx, courtID)
	if err != nil {
		return nil, err
	}

	confirmed := make([]*models.Booking, 0, len(bookings))
	for _, b := range bookings {
		if b.Confirmed() {
			confirmed = append(confirmed, b)
		}
	}
	sort.Slice(confirmed, func(i, j int) bool {
		return confirmed[i].SlotIndex < confirmed[j].SlotIndex
	})
	return confirmed, nil
}

// lowestFreeSlot picks the smallest unused index in [0, capacity). The
// lowest-available rule keeps the visible roster compact: slot numbers are
// shown to participants.
func lowestFreeSlot(confirmed []*models.Booking, capacity int) int {
	held := make(map[int]bool, len(confirmed))
	for _, b := range confirmed {
		held[b.SlotIndex] = true
	}
	for i := 0; i < capacity; i++ {
		if !held[i] {
			return i
		}
	}
	return models.NoSlot
}
