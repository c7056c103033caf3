package services

import (
	"context"
	"sort"
	"time"

	"court-booking/internal/store"
	"court-booking/models"
)

// WaitlistEngine maintains the per-court FIFO of waitlisted bookings and
// promotes the head when a confirmed slot frees. Ordering key is CreatedAt
// ascending with ID as tie-break, a total order so promotion is
// deterministic under concurrent enqueues.
type WaitlistEngine struct {
	store store.Store
	alloc *SlotAllocator
}

func NewWaitlistEngine(st store.Store, alloc *SlotAllocator) *WaitlistEngine {
	return &WaitlistEngine{store: st, alloc: alloc}
}

// Enqueue appends the booking to the court's waitlist. Re-enqueueing an
// already waitlisted booking is a no-op.
func (w *WaitlistEngine) Enqueue(ctx context.Context, b *models.Booking) error {
	if b.Waitlisted() {
		return nil
	}
	if err := ValidateTransition(b.Status, models.StatusWaitlisted); err != nil {
		return err
	}

	b.Status = models.StatusWaitlisted
	b.SlotIndex = models.NoSlot
	b.UpdatedAt = time.Now().UTC()
	return w.store.Put(ctx, b)
}

// Ordered returns the court's waitlist in promotion order.
func (w *WaitlistEngine) Ordered(ctx context.Context, courtID string) ([]*models.Booking, error) {
	bookings, err := w.store.ByCourt(ctx, courtID)
	if err != nil {
		return nil, err
	}

	waiting := make([]*models.Booking, 0, len(bookings))
	for _, b := range bookings {
		if b.Waitlisted() {
			waiting = append(waiting, b)
		}
	}
	sort.Slice(waiting, func(i, j int) bool {
		if !waiting[i].CreatedAt.Equal(waiting[j].CreatedAt) {
			return waiting[i].CreatedAt.Before(waiting[j].CreatedAt)
		}
		return waiting[i].ID < waiting[j].ID
	})
	return waiting, nil
}

// Promote moves the head of the waitlist into a free confirmed slot via
// the allocator. It returns nil when the waitlist is empty or no slot is
// free; the caller notifies the promoted user.
func (w *WaitlistEngine) Promote(ctx context.Context, court *models.Court) (*models.Booking, error) {
	waiting, err := w.Ordered(ctx, court.ID)
	if err != nil {
		return nil, err
	}
	if len(waiting) == 0 {
		return nil, nil
	}

	head := waiting[0]
	assigned, err := w.alloc.Assign(ctx, court, head)
	if err != nil {
		return nil, err
	}
	if !assigned {
		return nil, nil
	}
	return head, nil
}

// Remove drops a waitlisted booking from the ordering without touching
// slot state, marking it cancelled. Non-waitlisted bookings are left
// alone.
func (w *WaitlistEngine) Remove(ctx context.Context, b *models.Booking) error {
	if !b.Waitlisted() {
		return nil
	}
	if err := ValidateTransition(b.Status, models.StatusCancelled); err != nil {
		return err
	}

	b.Status = models.StatusCancelled
	b.UpdatedAt = time.Now().UTC()
	return w.store.Put(ctx, b)
}
