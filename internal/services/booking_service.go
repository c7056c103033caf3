package services

import (
	"context"
	"log"
	"sort"
	"sync"
	"time"

	"court-booking/internal/status"
	"court-booking/internal/store"
	"court-booking/models"
	"court-booking/monitoring"

	"github.com/google/uuid"
)

// CourtResolver supplies court metadata (mode, capacity) from wherever it
// lives; the engine never stores it.
type CourtResolver interface {
	GetCourt(ctx context.Context, courtID string) (*models.Court, error)
}

// UserDirectory resolves display names for the participant roster. May be
// nil, in which case user ids are shown.
type UserDirectory interface {
	DisplayName(ctx context.Context, userID string) (string, error)
}

// BookingService is the public contract of the engine. All slot and
// waitlist mutations for one court are serialized behind that court's
// lock; different courts proceed in parallel. Reads skip the lock and see
// whole records only.
type BookingService struct {
	store    store.Store
	courts   CourtResolver
	users    UserDirectory
	alloc    *SlotAllocator
	waitlist *WaitlistEngine
	notifier Notifier
	monitor  *monitoring.Monitor

	mu         sync.Mutex
	courtLocks map[string]*sync.Mutex
}

func NewBookingService(st store.Store, courts CourtResolver, users UserDirectory, notifier Notifier, monitor *monitoring.Monitor) *BookingService {
	alloc := NewSlotAllocator(st)
	return &BookingService{
		store:      st,
		courts:     courts,
		users:      users,
		alloc:      alloc,
		waitlist:   NewWaitlistEngine(st, alloc),
		notifier:   notifier,
		monitor:    monitor,
		courtLocks: make(map[string]*sync.Mutex),
	}
}

func (s *BookingService) courtLock(courtID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.courtLocks[courtID]
	if !ok {
		l = &sync.Mutex{}
		s.courtLocks[courtID] = l
	}
	return l
}

// GetUserBookings returns the user's non-cancelled bookings ordered by
// creation time.
func (s *BookingService) GetUserBookings(ctx context.Context, userID string) ([]*models.Booking, error) {
	bookings, err := s.store.ByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	active := make([]*models.Booking, 0, len(bookings))
	for _, b := range bookings {
		if b.Active() {
			active = append(active, b)
		}
	}
	sort.Slice(active, func(i, j int) bool {
		if !active[i].CreatedAt.Equal(active[j].CreatedAt) {
			return active[i].CreatedAt.Before(active[j].CreatedAt)
		}
		return active[i].ID < active[j].ID
	})
	return active, nil
}

// CreateOutdoorBooking marks the user as going. Calling it while already
// going returns the existing booking unchanged.
func (s *BookingService) CreateOutdoorBooking(ctx context.Context, courtID, userID string) (*models.Booking, error) {
	court, err := s.resolveCourt(ctx, courtID, models.ModeOutdoor)
	if err != nil {
		return nil, err
	}

	lock := s.courtLock(court.ID)
	lock.Lock()
	defer lock.Unlock()

	existing, err := s.store.ActiveByUserAndCourt(ctx, userID, court.ID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	now := time.Now().UTC()
	b := &models.Booking{
		ID:        uuid.NewString(),
		UserID:    userID,
		CourtID:   court.ID,
		Mode:      models.ModeOutdoor,
		IsGoing:   true,
		SlotIndex: models.NoSlot,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.Put(ctx, b); err != nil {
		return nil, err
	}

	s.monitor.TrackBookingOperation("rsvp", court.ID, "going")
	return b, nil
}

// CancelOutdoorBooking is an idempotent no-op when the user is not going.
func (s *BookingService) CancelOutdoorBooking(ctx context.Context, courtID, userID string) error {
	court, err := s.resolveCourt(ctx, courtID, models.ModeOutdoor)
	if err != nil {
		return err
	}

	lock := s.courtLock(court.ID)
	lock.Lock()
	defer lock.Unlock()

	existing, err := s.store.ActiveByUserAndCourt(ctx, userID, court.ID)
	if err != nil {
		return err
	}
	if existing == nil {
		return nil
	}

	existing.IsGoing = false
	existing.UpdatedAt = time.Now().UTC()
	if err := s.store.Put(ctx, existing); err != nil {
		return err
	}

	s.monitor.TrackBookingOperation("rsvp_cancel", court.ID, "not_going")
	return nil
}

// RequestIndoorSlot confirms the user into the lowest free slot, or
// waitlists them when the court is full. Capacity-full is an outcome, not
// an error; a second active request by the same user is a conflict.
func (s *BookingService) RequestIndoorSlot(ctx context.Context, courtID, userID string) (*models.Booking, error) {
	court, err := s.resolveCourt(ctx, courtID, models.ModeIndoor)
	if err != nil {
		return nil, err
	}

	lock := s.courtLock(court.ID)
	lock.Lock()
	defer lock.Unlock()

	existing, err := s.store.ActiveByUserAndCourt(ctx, userID, court.ID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, &status.ConflictError{
			Reason:    "user already has an active booking for this court",
			Current:   string(existing.Status),
			Attempted: string(models.StatusPending),
		}
	}

	if err := ValidateTransition("", models.StatusPending); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	b := &models.Booking{
		ID:        uuid.NewString(),
		UserID:    userID,
		CourtID:   court.ID,
		Mode:      models.ModeIndoor,
		Status:    models.StatusPending,
		SlotIndex: models.NoSlot,
		CreatedAt: now,
		UpdatedAt: now,
	}

	assigned, err := s.alloc.Assign(ctx, court, b)
	if err != nil {
		return nil, err
	}
	if !assigned {
		if err := s.waitlist.Enqueue(ctx, b); err != nil {
			return nil, err
		}
	}

	s.monitor.TrackBookingOperation("request_slot", court.ID, string(b.Status))
	s.refreshOccupancy(ctx, court.ID)
	return b, nil
}

// CancelIndoorBooking frees the slot or removes the waitlist entry, then
// runs the promotion check. Cancelling an already-cancelled booking is a
// no-op.
func (s *BookingService) CancelIndoorBooking(ctx context.Context, bookingID string) error {
	b, err := s.store.Get(ctx, bookingID)
	if err != nil {
		return err
	}
	if b.Mode != models.ModeIndoor {
		return status.NewConflict("booking is not an indoor slot booking")
	}
	if b.Status == models.StatusCancelled {
		return nil
	}

	lock := s.courtLock(b.CourtID)
	lock.Lock()
	defer lock.Unlock()

	// Re-read inside the lock; a concurrent cancel may have won.
	b, err = s.store.Get(ctx, bookingID)
	if err != nil {
		return err
	}
	if b.Status == models.StatusCancelled {
		return nil
	}

	if b.Waitlisted() {
		if err := s.waitlist.Remove(ctx, b); err != nil {
			return err
		}
		s.monitor.TrackBookingOperation("cancel", b.CourtID, "waitlist_removed")
		s.refreshOccupancy(ctx, b.CourtID)
		return nil
	}

	if err := ValidateTransition(b.Status, models.StatusCancelled); err != nil {
		return err
	}

	freedSlot := b.SlotIndex
	b.Status = models.StatusCancelled
	b.SlotIndex = models.NoSlot
	b.UpdatedAt = time.Now().UTC()

	// The cancellation commits before promotion, so a crash in between
	// leaves a free slot and an intact waitlist head for reconciliation
	// to promote.
	if err := s.store.Put(ctx, b); err != nil {
		return err
	}
	s.monitor.TrackBookingOperation("cancel", b.CourtID, "slot_freed")

	free, err := s.alloc.Free(ctx, b.CourtID, freedSlot)
	if err != nil {
		return err
	}
	if free {
		if err := s.promoteNext(ctx, b.CourtID); err != nil {
			return err
		}
	}

	s.refreshOccupancy(ctx, b.CourtID)
	return nil
}

// promoteNext runs the promotion check for a court. Callers hold the
// court lock.
func (s *BookingService) promoteNext(ctx context.Context, courtID string) error {
	court, err := s.courts.GetCourt(ctx, courtID)
	if err != nil {
		return err
	}

	promoted, err := s.waitlist.Promote(ctx, court)
	if err != nil {
		return err
	}
	if promoted == nil {
		return nil
	}

	log.Printf("Promoted user %s to slot %d on court %s", promoted.UserID, promoted.SlotIndex, courtID)
	s.monitor.TrackPromotion(courtID)
	if s.notifier != nil {
		go s.notifier.NotifyPromoted(promoted)
	}
	return nil
}

// GetCourtParticipants returns the roster: confirmed bookings by slot
// index ascending, then the waitlist in FIFO order.
func (s *BookingService) GetCourtParticipants(ctx context.Context, courtID string) ([]models.Participant, error) {
	confirmed, err := s.alloc.Confirmed(ctx, courtID)
	if err != nil {
		return nil, err
	}
	waiting, err := s.waitlist.Ordered(ctx, courtID)
	if err != nil {
		return nil, err
	}

	participants := make([]models.Participant, 0, len(confirmed)+len(waiting))
	for _, b := range confirmed {
		participants = append(participants, models.Participant{
			BookingID:   b.ID,
			UserID:      b.UserID,
			DisplayName: s.displayName(ctx, b.UserID),
			SlotIndex:   b.SlotIndex,
			Status:      b.Status,
		})
	}
	for i, b := range waiting {
		participants = append(participants, models.Participant{
			BookingID:   b.ID,
			UserID:      b.UserID,
			DisplayName: s.displayName(ctx, b.UserID),
			SlotIndex:   models.NoSlot,
			Status:      b.Status,
			Position:    i,
		})
	}
	return participants, nil
}

// GetBooking returns a booking by id.
func (s *BookingService) GetBooking(ctx context.Context, bookingID string) (*models.Booking, error) {
	return s.store.Get(ctx, bookingID)
}

// GetBookingStatus returns the user's active booking for the court, or
// nil when there is none.
func (s *BookingService) GetBookingStatus(ctx context.Context, courtID, userID string) (*models.Booking, error) {
	return s.store.ActiveByUserAndCourt(ctx, userID, courtID)
}

// MoveParticipant re-keys a confirmed booking to newSlotIndex. When the
// target slot is held by another confirmed booking the two indices swap
// atomically under the court lock; rejecting would make admin reseating
// on a full court impossible.
func (s *BookingService) MoveParticipant(ctx context.Context, courtID, userID string, newSlotIndex int) error {
	court, err := s.resolveCourt(ctx, courtID, models.ModeIndoor)
	if err != nil {
		return err
	}
	if newSlotIndex < 0 || newSlotIndex >= court.Capacity {
		return status.NewConflict("slot index out of range")
	}

	lock := s.courtLock(court.ID)
	lock.Lock()
	defer lock.Unlock()

	b, err := s.store.ActiveByUserAndCourt(ctx, userID, court.ID)
	if err != nil {
		return err
	}
	if b == nil {
		return status.NewNotFound("active booking for user", userID)
	}
	if !b.Confirmed() {
		return &status.ConflictError{
			Reason:    "only confirmed bookings can be moved",
			Current:   string(b.Status),
			Attempted: string(models.StatusConfirmed),
		}
	}
	if err := ValidateTransition(b.Status, models.StatusConfirmed); err != nil {
		return err
	}
	if b.SlotIndex == newSlotIndex {
		return nil
	}

	confirmed, err := s.alloc.Confirmed(ctx, court.ID)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	writes := make([]*models.Booking, 0, 2)
	for _, other := range confirmed {
		if other.SlotIndex == newSlotIndex && other.ID != b.ID {
			other.SlotIndex = b.SlotIndex
			other.UpdatedAt = now
			writes = append(writes, other)
			break
		}
	}

	b.SlotIndex = newSlotIndex
	b.UpdatedAt = now
	writes = append(writes, b)

	// Both sides of a swap commit in one write; readers skip the court
	// lock and must never see two confirmed bookings on one slot index.
	if err := s.store.PutAll(ctx, writes...); err != nil {
		return err
	}

	s.monitor.TrackBookingOperation("move", court.ID, "moved")
	return nil
}

func (s *BookingService) resolveCourt(ctx context.Context, courtID string, want models.CourtMode) (*models.Court, error) {
	court, err := s.courts.GetCourt(ctx, courtID)
	if err != nil {
		return nil, err
	}
	if court.Mode != want {
		return nil, status.NewConflict("court is not in " + string(want) + " mode")
	}
	return court, nil
}

func (s *BookingService) displayName(ctx context.Context, userID string) string {
	if s.users == nil {
		return userID
	}
	name, err := s.users.DisplayName(ctx, userID)
	if err != nil || name == "" {
		return userID
	}
	return name
}

func (s *BookingService) refreshOccupancy(ctx context.Context, courtID string) {
	if s.monitor == nil {
		return
	}
	bookings, err := s.store.ByCourt(ctx, courtID)
	if err != nil {
		return
	}
	confirmed, waitlisted := 0, 0
	for _, b := range bookings {
		switch {
		case b.Confirmed():
			confirmed++
		case b.Waitlisted():
			waitlisted++
		}
	}
	s.monitor.SetCourtOccupancy(courtID, confirmed, waitlisted)
}
