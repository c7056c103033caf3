package store

import (
	"context"
	"sync"

	"court-booking/internal/status"
	"court-booking/models"
)

// MemoryStore is a map-backed Store for tests and local development. It
// hands out copies so callers never share record memory.
type MemoryStore struct {
	mu       sync.RWMutex
	bookings map[string]models.Booking
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{bookings: make(map[string]models.Booking)}
}

func (s *MemoryStore) Put(ctx context.Context, b *models.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bookings[b.ID] = *b
	return nil
}

// PutAll writes all records inside one critical section, so concurrent
// readers see either none or all of them.
func (s *MemoryStore) PutAll(ctx context.Context, bookings ...*models.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, b := range bookings {
		s.bookings[b.ID] = *b
	}
	return nil
}

func (s *MemoryStore) Get(ctx context.Context, id string) (*models.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.bookings[id]
	if !ok {
		return nil, status.NewNotFound("booking", id)
	}
	return &b, nil
}

func (s *MemoryStore) ByCourt(ctx context.Context, courtID string) ([]*models.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]*models.Booking, 0)
	for _, b := range s.bookings {
		if b.CourtID == courtID {
			copied := b
			result = append(result, &copied)
		}
	}
	return result, nil
}

func (s *MemoryStore) ByUser(ctx context.Context, userID string) ([]*models.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]*models.Booking, 0)
	for _, b := range s.bookings {
		if b.UserID == userID {
			copied := b
			result = append(result, &copied)
		}
	}
	return result, nil
}

func (s *MemoryStore) ActiveByUserAndCourt(ctx context.Context, userID, courtID string) (*models.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, b := range s.bookings {
		if b.UserID == userID && b.CourtID == courtID && b.Active() {
			copied := b
			return &copied, nil
		}
	}
	return nil, nil
}
